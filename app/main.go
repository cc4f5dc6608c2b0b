package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"
	"github.com/sashabaranov/go-openai"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/umputun/spamshield/app/config"
	"github.com/umputun/spamshield/app/storage"
	"github.com/umputun/spamshield/app/storage/engine"
	"github.com/umputun/spamshield/app/trainer"
	"github.com/umputun/spamshield/app/webapi"
	"github.com/umputun/spamshield/lib"
	"github.com/umputun/spamshield/lib/shield"
	"github.com/umputun/spamshield/lib/shield/llm"
	"github.com/umputun/spamshield/lib/shield/lua"
	"github.com/umputun/spamshield/lib/spamcheck"
)

type options struct {
	Config string `long:"config" env:"CONFIG" description:"yaml config file, overrides cli and env options"`

	Server struct {
		ListenAddr string `long:"listen" env:"LISTEN" default:":8080" description:"listen address"`
		AuthUser   string `long:"auth-user" env:"AUTH_USER" default:"admin" description:"basic auth user for admin api"`
		AuthPasswd string `long:"auth" env:"AUTH" default:"" description:"basic auth password for admin api, auto-generated if set to 'auto'"`
		RateLimit  int    `long:"rate-limit" env:"RATE_LIMIT" default:"100" description:"detect requests per client per day, 0 to disable"`
	} `group:"server" namespace:"server" env-namespace:"SERVER"`

	Files struct {
		DataDir         string        `long:"data-dir" env:"DATA_DIR" default:"data" description:"corpus files and model directory"`
		Synthetic       bool          `long:"synthetic" env:"SYNTHETIC" description:"train on built-in synthetic set if no corpus found"`
		NoSampleCorpus  bool          `long:"no-sample-corpus" env:"NO_SAMPLE_CORPUS" description:"don't create sample corpus files"`
		WatchCorpus     bool          `long:"watch" env:"WATCH" description:"retrain on corpus file changes"`
		WatchDelay      time.Duration `long:"watch-delay" env:"WATCH_DELAY" default:"5s" description:"delay after the last corpus change"`
		RetrainInterval time.Duration `long:"retrain-interval" env:"RETRAIN_INTERVAL" default:"0s" description:"periodic retrain, disabled if 0"`
	} `group:"files" namespace:"files" env-namespace:"FILES"`

	Model struct {
		Kind              string        `long:"kind" env:"KIND" default:"forest" description:"model kind, forest or bayes"`
		Trees             int           `long:"trees" env:"TREES" default:"100" description:"number of trees in forest"`
		MaxTerms          int           `long:"max-terms" env:"MAX_TERMS" default:"2000" description:"max tf-idf vocabulary size"`
		SubsampleFraction float64       `long:"subsample" env:"SUBSAMPLE" default:"0.25" description:"share of each corpus set kept when training on several sets"`
		Seed              uint64        `long:"seed" env:"SEED" default:"42" description:"random seed for subsampling, split and model"`
		TrainTimeout      time.Duration `long:"train-timeout" env:"TRAIN_TIMEOUT" default:"5m" description:"max duration of a training run"`
	} `group:"model" namespace:"model" env-namespace:"MODEL"`

	Fallback struct {
		SpamProbability float64 `long:"spam" env:"SPAM" default:"0.9" description:"probability of spam found by keyword rule"`
		HamProbability  float64 `long:"ham" env:"HAM" default:"0.8" description:"probability of ham by keyword rule"`
	} `group:"fallback" namespace:"fallback" env-namespace:"FALLBACK"`

	Cache struct {
		Size int           `long:"size" env:"SIZE" default:"1000" description:"max cached predictions, 0 to disable"`
		TTL  time.Duration `long:"ttl" env:"TTL" default:"1h" description:"ttl of cached predictions"`
	} `group:"cache" namespace:"cache" env-namespace:"CACHE"`

	Storage struct {
		DataBaseURL string        `long:"db" env:"DB" default:"data/spamshield.db" description:"database url or sqlite file"`
		GID         string        `long:"gid" env:"GID" default:"" description:"group id to share the database"`
		HistorySize int           `long:"history-size" env:"HISTORY_SIZE" default:"100" description:"in-memory detections kept"`
		Timeout     time.Duration `long:"timeout" env:"TIMEOUT" default:"5s" description:"database connection timeout"`
	} `group:"storage" namespace:"storage" env-namespace:"STORAGE"`

	Logger struct {
		Enabled    bool   `long:"enabled" env:"ENABLED" description:"enable detection rotated logs"`
		FileName   string `long:"file" env:"FILE"  default:"spamshield.log" description:"location of detection log"`
		MaxSize    string `long:"max-size" env:"MAX_SIZE" default:"100M" description:"maximum size before it gets rotated"`
		MaxBackups int    `long:"max-backups" env:"MAX_BACKUPS" default:"10" description:"maximum number of old log files to retain"`
	} `group:"logger" namespace:"logger" env-namespace:"LOGGER"`

	Lua struct {
		Enabled       bool   `long:"enabled" env:"ENABLED" description:"enable lua scorer plugins"`
		PluginsDir    string `long:"plugins-dir" env:"PLUGINS_DIR" default:"data/plugins" description:"directory with lua plugins"`
		DynamicReload bool   `long:"dynamic-reload" env:"DYNAMIC_RELOAD" description:"reload plugins on change"`
	} `group:"lua" namespace:"lua" env-namespace:"LUA"`

	OpenAI struct {
		APIBase           string        `long:"apibase" env:"API_BASE" description:"custom openai-compatible api url"`
		Token             string        `long:"token" env:"TOKEN" description:"openai token, disabled if not set"`
		Model             string        `long:"model" env:"MODEL" default:"gpt-4o-mini" description:"openai model"`
		MaxTokensResponse int           `long:"max-tokens-response" env:"MAX_TOKENS_RESPONSE" default:"256" description:"openai max tokens in response"`
		MaxTokensRequest  int           `long:"max-tokens-request" env:"MAX_TOKENS_REQUEST" default:"1024" description:"openai max tokens in request"`
		MaxSymbolsRequest int           `long:"max-symbols-request" env:"MAX_SYMBOLS_REQUEST" default:"8192" description:"openai max symbols in request, failback if tokenizer failed"`
		Timeout           time.Duration `long:"timeout" env:"TIMEOUT" default:"30s" description:"openai request timeout"`
	} `group:"openai" namespace:"openai" env-namespace:"OPENAI"`

	Gemini struct {
		Token           string        `long:"token" env:"TOKEN" description:"gemini token, disabled if not set"`
		Model           string        `long:"model" env:"MODEL" default:"gemini-2.0-flash" description:"gemini model"`
		MaxOutputTokens int           `long:"max-output-tokens" env:"MAX_OUTPUT_TOKENS" default:"256" description:"gemini max tokens in response"`
		Timeout         time.Duration `long:"timeout" env:"TIMEOUT" default:"30s" description:"gemini request timeout"`
	} `group:"gemini" namespace:"gemini" env-namespace:"GEMINI"`

	Dbg bool `long:"dbg" env:"DEBUG" description:"debug mode"`
}

var revision = "local"

func main() {
	fmt.Printf("spamshield %s\n", revision)
	var opts options
	p := flags.NewParser(&opts, flags.PrintErrors|flags.PassDoubleDash|flags.HelpFlag)
	if _, err := p.Parse(); err != nil {
		var flagsErr *flags.Error
		if !errors.As(err, &flagsErr) || flagsErr.Type != flags.ErrHelp {
			log.Printf("[ERROR] cli error: %v", err)
		}
		os.Exit(2)
	}

	settings, err := makeSettings(opts)
	if err != nil {
		setupLog(opts.Dbg)
		log.Printf("[ERROR] %v", err)
		os.Exit(2)
	}
	setupLog(settings.Transient.Dbg, settings.Secrets()...)
	log.Printf("[DEBUG] settings: %+v", settings)

	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		// catch signal and invoke graceful termination
		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
		<-stop
		log.Printf("[WARN] interrupt signal")
		cancel()
	}()

	if err := execute(ctx, settings); err != nil {
		log.Printf("[ERROR] %v", err)
		os.Exit(1)
	}
}

// makeSettings converts cli options to settings and overlays them with the config file, if set
func makeSettings(opts options) (*config.Settings, error) {
	res := optToSettings(opts)
	if opts.Config != "" {
		if err := res.Load(opts.Config); err != nil {
			return nil, fmt.Errorf("can't load config: %w", err)
		}
	} else if err := res.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	if res.Server.AuthPasswd == "auto" {
		passwd, err := webapi.GenerateRandomPassword(20)
		if err != nil {
			return nil, fmt.Errorf("can't generate password: %w", err)
		}
		res.Server.AuthPasswd = passwd
		log.Printf("[WARN] generated basic auth password for user %s: %q", res.Server.AuthUser, passwd)
	}
	return res, nil
}

func optToSettings(opts options) *config.Settings {
	res := config.New()
	res.Server = config.ServerSettings{ListenAddr: opts.Server.ListenAddr, AuthUser: opts.Server.AuthUser,
		AuthPasswd: opts.Server.AuthPasswd, RateLimit: opts.Server.RateLimit}
	res.Files = config.FilesSettings{DataDir: opts.Files.DataDir, Synthetic: opts.Files.Synthetic,
		NoSampleCorpus: opts.Files.NoSampleCorpus, WatchCorpus: opts.Files.WatchCorpus,
		WatchDelay: opts.Files.WatchDelay, RetrainInterval: opts.Files.RetrainInterval}
	res.Model = config.ModelSettings{Kind: opts.Model.Kind, Trees: opts.Model.Trees, MaxTerms: opts.Model.MaxTerms,
		SubsampleFraction: opts.Model.SubsampleFraction, Seed: opts.Model.Seed, TrainTimeout: opts.Model.TrainTimeout}
	res.Fallback = config.FallbackSettings{SpamProbability: opts.Fallback.SpamProbability,
		HamProbability: opts.Fallback.HamProbability}
	res.Cache = config.CacheSettings{Size: opts.Cache.Size, TTL: opts.Cache.TTL}
	res.Storage = config.StorageSettings{DataBaseURL: opts.Storage.DataBaseURL, GID: opts.Storage.GID,
		HistorySize: opts.Storage.HistorySize, Timeout: opts.Storage.Timeout}
	res.Logger = config.LoggerSettings{Enabled: opts.Logger.Enabled, FileName: opts.Logger.FileName,
		MaxSize: opts.Logger.MaxSize, MaxBackups: opts.Logger.MaxBackups}
	res.Lua = config.LuaSettings{Enabled: opts.Lua.Enabled, PluginsDir: opts.Lua.PluginsDir,
		DynamicReload: opts.Lua.DynamicReload}
	res.OpenAI = config.OpenAISettings{APIBase: opts.OpenAI.APIBase, Token: opts.OpenAI.Token, Model: opts.OpenAI.Model,
		MaxTokensResponse: opts.OpenAI.MaxTokensResponse, MaxTokensRequest: opts.OpenAI.MaxTokensRequest,
		MaxSymbolsRequest: opts.OpenAI.MaxSymbolsRequest, Timeout: opts.OpenAI.Timeout}
	res.Gemini = config.GeminiSettings{Token: opts.Gemini.Token, Model: opts.Gemini.Model,
		MaxOutputTokens: opts.Gemini.MaxOutputTokens, Timeout: opts.Gemini.Timeout}
	res.Transient = config.TransientSettings{ConfigFile: opts.Config, Dbg: opts.Dbg}
	return res
}

func execute(ctx context.Context, settings *config.Settings) error {
	if !settings.Files.NoSampleCorpus {
		if _, err := shield.WriteSampleCorpus(settings.Files.DataDir); err != nil {
			return fmt.Errorf("can't create sample corpus, %w", err)
		}
	}

	db, err := makeDB(ctx, settings)
	if err != nil {
		return fmt.Errorf("can't make database, %w", err)
	}
	defer db.Close()

	samples, err := storage.NewSamples(ctx, db)
	if err != nil {
		return fmt.Errorf("can't make samples storage, %w", err)
	}
	trainingLogs, err := storage.NewTrainingLogs(ctx, db)
	if err != nil {
		return fmt.Errorf("can't make training logs storage, %w", err)
	}
	detections, err := storage.NewDetections(ctx, db)
	if err != nil {
		return fmt.Errorf("can't make detections storage, %w", err)
	}

	scorers, err := makeScorers(ctx, settings)
	if err != nil {
		return fmt.Errorf("can't make scorers, %w", err)
	}
	defer scorers.close()

	detector := makeDetector(ctx, settings, samples, scorers)
	log.Printf("[INFO] detector ready, %+v", detector.Health())

	loggerWr, err := makeDetectionLogWriter(settings)
	if err != nil {
		return fmt.Errorf("can't make detection log writer, %w", err)
	}
	defer loggerWr.Close()

	sched := &trainer.Scheduler{
		Trainer:  detector,
		Recorder: trainingLogs,
		DataDir:  settings.Files.DataDir,
		Watch:    settings.Files.WatchCorpus,
		Delay:    settings.Files.WatchDelay,
		Interval: settings.Files.RetrainInterval,
	}
	go func() {
		if err := sched.Run(ctx); err != nil {
			log.Printf("[WARN] training scheduler failed, %v", err)
		}
	}()

	srv := webapi.NewServer(webapi.Config{
		Version:      revision,
		ListenAddr:   settings.Server.ListenAddr,
		Detector:     detector,
		Detections:   detections,
		TrainingLogs: trainingLogs,
		Samples:      samples,
		DB:           db,
		Logger:       makeDetectionLogger(loggerWr),
		Settings:     settings,
		AuthUser:     settings.Server.AuthUser,
		AuthPasswd:   settings.Server.AuthPasswd,
		RateLimit:    settings.Server.RateLimit,
		WriteTimeout: settings.Model.TrainTimeout + 10*time.Second,
		Dbg:          settings.Transient.Dbg,
	})
	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("web server failed, %w", err)
	}
	return nil
}

// makeDB opens the database, the directory of sqlite file created if missing
func makeDB(ctx context.Context, settings *config.Settings) (*engine.SQL, error) {
	url := settings.Storage.DataBaseURL
	isPostgres := strings.HasPrefix(url, "postgres://") || strings.HasPrefix(url, "postgresql://")
	if !isPostgres && url != ":memory:" {
		dir := filepath.Dir(strings.TrimPrefix(strings.TrimPrefix(url, "sqlite://"), "file:"))
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("can't make db directory %s: %w", dir, err)
		}
	}
	dbCtx, cancel := context.WithTimeout(ctx, settings.Storage.Timeout)
	defer cancel()
	db, err := engine.New(dbCtx, url, settings.Storage.GID)
	if err != nil {
		return nil, err
	}
	log.Printf("[DEBUG] database %s, type %s, gid %q", url, db.Type(), db.GID())
	return db, nil
}

// scorers are optional sentiment and grammar scorers, nil means built-in default
type scorers struct {
	sentiment shield.SentimentScorer
	grammar   shield.GrammarScorer
	timeout   time.Duration
	closers   []func()
}

func (s scorers) close() {
	for _, c := range s.closers {
		c()
	}
}

// makeScorers sets lua plugins and language models as feature scorers.
// Language model scores grammar and sentiment, lua plugins take sentiment over if enabled.
func makeScorers(ctx context.Context, settings *config.Settings) (res scorers, err error) {
	var backend llm.Backend
	switch {
	case settings.IsOpenAIEnabled():
		cfg := openai.DefaultConfig(settings.OpenAI.Token)
		if settings.OpenAI.APIBase != "" {
			cfg.BaseURL = settings.OpenAI.APIBase
		}
		cfg.HTTPClient = &http.Client{Timeout: settings.OpenAI.Timeout}
		backend = llm.NewOpenAI(openai.NewClientWithConfig(cfg), llm.OpenAIConfig{
			Model:             settings.OpenAI.Model,
			MaxTokensResponse: settings.OpenAI.MaxTokensResponse,
			MaxTokensRequest:  settings.OpenAI.MaxTokensRequest,
			MaxSymbolsRequest: settings.OpenAI.MaxSymbolsRequest,
		})
		log.Printf("[INFO] openai scorer enabled, model %s", settings.OpenAI.Model)
	case settings.IsGeminiEnabled():
		client, gerr := llm.NewGeminiClient(ctx, settings.Gemini.Token)
		if gerr != nil {
			return res, fmt.Errorf("can't make gemini client: %w", gerr)
		}
		backend = llm.NewGemini(client, llm.GeminiConfig{Model: settings.Gemini.Model,
			MaxOutputTokens: int32(min(settings.Gemini.MaxOutputTokens, math.MaxInt32))}) //nolint:gosec // capped
		log.Printf("[INFO] gemini scorer enabled, model %s", settings.Gemini.Model)
	}
	if backend != nil {
		sc := llm.NewScorer(backend, llm.Options{CacheSize: settings.Cache.Size, CacheTTL: settings.Cache.TTL})
		res.sentiment, res.grammar = sc, sc
		res.timeout = max(settings.OpenAI.Timeout, settings.Gemini.Timeout)
	}

	if !settings.Lua.Enabled {
		return res, nil
	}
	luaScorer := lua.NewScorer()
	res.closers = append(res.closers, luaScorer.Close)
	if err := luaScorer.LoadDirectory(settings.Lua.PluginsDir); err != nil {
		res.close()
		return scorers{}, fmt.Errorf("can't load lua plugins: %w", err)
	}
	log.Printf("[INFO] lua scorer enabled, plugins: %v", luaScorer.Scripts())
	res.sentiment = luaScorer
	if res.grammar == nil {
		res.grammar = luaScorer
	}

	if settings.Lua.DynamicReload {
		watcher, werr := lua.NewWatcher(luaScorer, settings.Lua.PluginsDir, 0)
		if werr != nil {
			res.close()
			return scorers{}, fmt.Errorf("can't make lua watcher: %w", werr)
		}
		if werr := watcher.Start(); werr != nil {
			res.close()
			return scorers{}, fmt.Errorf("can't start lua watcher: %w", werr)
		}
		res.closers = append([]func(){watcher.Stop}, res.closers...)
		log.Printf("[INFO] lua plugins reload enabled for %s", settings.Lua.PluginsDir)
	}
	return res, nil
}

// makeDetector makes the detector, trained from corpus files and stored samples
func makeDetector(ctx context.Context, settings *config.Settings, samples shield.CorpusSource, sc scorers) *lib.Detector {
	var corpus shield.CorpusSource = shield.DirSource{Dir: settings.Files.DataDir}
	if samples != nil {
		corpus = shield.MultiSource{corpus, samples}
	}
	cfg := lib.Config{
		DataDir:           settings.Files.DataDir,
		Corpus:            corpus,
		Synthetic:         settings.Files.Synthetic,
		Sentiment:         sc.sentiment,
		Grammar:           sc.grammar,
		ScorerTimeout:     sc.timeout,
		NewModel:          modelFactory(settings.Model),
		Fallback:          shield.Fallback{SpamProbability: settings.Fallback.SpamProbability, HamProbability: settings.Fallback.HamProbability},
		TrainTimeout:      settings.Model.TrainTimeout,
		CacheSize:         settings.Cache.Size,
		CacheTTL:          settings.Cache.TTL,
		HistorySize:       settings.Storage.HistorySize,
		SubsampleFraction: settings.Model.SubsampleFraction,
		Seed:              settings.Model.Seed,
	}
	log.Printf("[DEBUG] detector config: %+v", cfg)
	return lib.NewDetector(ctx, cfg)
}

// modelFactory returns constructor of the configured model kind, default forest for unknown kinds
func modelFactory(ms config.ModelSettings) func() shield.Model {
	if ms.Kind == shield.ForestKind || ms.Kind == "" {
		return func() shield.Model {
			return shield.NewForest(shield.ForestOptions{Trees: ms.Trees, MaxTerms: ms.MaxTerms, Seed: ms.Seed})
		}
	}
	if _, err := shield.NewModel(ms.Kind); err != nil {
		log.Printf("[WARN] %v, forest used", err)
		return nil
	}
	return func() shield.Model {
		m, _ := shield.NewModel(ms.Kind)
		return m
	}
}

// makeDetectionLogger creates detection logger to keep reports about checked messages.
// it writes json lines to the provided writer
func makeDetectionLogger(wr io.Writer) webapi.DetectionLogger {
	return webapi.DetectionLoggerFunc(func(req *spamcheck.Request, resp *spamcheck.Response) {
		text := strings.TrimSpace(strings.ReplaceAll(req.Message(), "\n", " "))
		if resp.IsSpam() {
			log.Printf("[INFO] spam detected on %s, probability %.2f", req.Platform, resp.Probability)
		}
		log.Printf("[DEBUG] checked message: %s", text)
		m := struct {
			TimeStamp   string  `json:"ts"`
			Platform    string  `json:"platform"`
			Prediction  string  `json:"prediction"`
			Probability float64 `json:"probability"`
			Fallback    bool    `json:"fallback"`
			ModelID     string  `json:"model_id,omitempty"`
			AnalysisID  int64   `json:"analysis_id,omitempty"`
			Text        string  `json:"text"`
		}{
			TimeStamp:   time.Now().In(time.Local).Format(time.RFC3339),
			Platform:    req.Platform,
			Prediction:  resp.Prediction,
			Probability: resp.Probability,
			Fallback:    resp.Fallback,
			ModelID:     resp.ModelID,
			AnalysisID:  resp.AnalysisID,
			Text:        text,
		}
		line, err := json.Marshal(&m)
		if err != nil {
			log.Printf("[WARN] can't marshal json, %v", err)
			return
		}
		if _, err := wr.Write(append(line, '\n')); err != nil {
			log.Printf("[WARN] can't write to log, %v", err)
		}
	})
}

// makeDetectionLogWriter creates detection log writer with rotation, discards everything if disabled
func makeDetectionLogWriter(settings *config.Settings) (accessLog io.WriteCloser, err error) {
	if !settings.Logger.Enabled {
		return nopWriteCloser{io.Discard}, nil
	}

	maxSize, perr := sizeParse(settings.Logger.MaxSize)
	if perr != nil {
		return nil, fmt.Errorf("can't parse logger MaxSize: %w", perr)
	}
	maxSize /= 1048576

	log.Printf("[INFO] logger enabled for %s, max size %dM", settings.Logger.FileName, maxSize)
	return &lumberjack.Logger{
		Filename:   settings.Logger.FileName,
		MaxSize:    int(maxSize), //nolint:gosec // in MB
		MaxBackups: settings.Logger.MaxBackups,
		Compress:   true,
		LocalTime:  true,
	}, nil
}

// sizeParse parses size with optional k, m, g and t suffix, in any case
func sizeParse(inp string) (uint64, error) {
	if inp == "" {
		return 0, errors.New("empty value")
	}
	for i, sfx := range []string{"k", "m", "g", "t"} {
		if strings.HasSuffix(inp, strings.ToUpper(sfx)) || strings.HasSuffix(inp, strings.ToLower(sfx)) {
			val, err := strconv.Atoi(inp[:len(inp)-1])
			if err != nil {
				return 0, fmt.Errorf("can't parse %s: %w", inp, err)
			}
			return uint64(float64(val) * math.Pow(float64(1024), float64(i+1))), nil
		}
	}
	return strconv.ParseUint(inp, 10, 64)
}

type nopWriteCloser struct{ io.Writer }

func (n nopWriteCloser) Close() error { return nil }

func setupLog(dbg bool, secrets ...string) {
	logOpts := []lgr.Option{lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	if dbg {
		logOpts = []lgr.Option{lgr.Debug, lgr.CallerFile, lgr.CallerFunc, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	}

	colorizer := lgr.Mapper{
		ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
		WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
		InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
		DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
		CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
		TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
	}
	logOpts = append(logOpts, lgr.Map(colorizer))

	if len(secrets) > 0 {
		logOpts = append(logOpts, lgr.Secret(secrets...))
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}
