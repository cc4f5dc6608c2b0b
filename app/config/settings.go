// Package config provides application settings independent of the source. Settings are
// populated from CLI/env options and optionally overlaid by a YAML file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"time"

	"github.com/hashicorp/go-multierror"
	"gopkg.in/yaml.v3"

	"github.com/umputun/spamshield/lib/shield"
)

// Settings represents application configuration independent of source (CLI, file)
type Settings struct {
	Server   ServerSettings   `json:"server" yaml:"server"`
	Files    FilesSettings    `json:"files" yaml:"files"`
	Model    ModelSettings    `json:"model" yaml:"model"`
	Fallback FallbackSettings `json:"fallback" yaml:"fallback"`
	Cache    CacheSettings    `json:"cache" yaml:"cache"`
	Storage  StorageSettings  `json:"storage" yaml:"storage"`
	Logger   LoggerSettings   `json:"logger" yaml:"logger"`
	Lua      LuaSettings      `json:"lua" yaml:"lua"`
	OpenAI   OpenAISettings   `json:"openai" yaml:"openai"`
	Gemini   GeminiSettings   `json:"gemini" yaml:"gemini"`

	// transient fields that should never be stored
	Transient TransientSettings `json:"-" yaml:"-"`
}

// ServerSettings contains web server settings
type ServerSettings struct {
	ListenAddr string `json:"listen_addr" yaml:"listen_addr"`
	AuthUser   string `json:"auth_user" yaml:"auth_user"`
	AuthPasswd string `json:"auth_passwd" yaml:"auth_passwd"`
	RateLimit  int    `json:"rate_limit" yaml:"rate_limit"` // detect requests per client per day, 0 disables
}

// FilesSettings contains data directory and corpus watching settings
type FilesSettings struct {
	DataDir         string        `json:"data_dir" yaml:"data_dir"`
	Synthetic       bool          `json:"synthetic" yaml:"synthetic"`
	NoSampleCorpus  bool          `json:"no_sample_corpus" yaml:"no_sample_corpus"`
	WatchCorpus     bool          `json:"watch_corpus" yaml:"watch_corpus"`
	WatchDelay      time.Duration `json:"watch_delay" yaml:"watch_delay"`
	RetrainInterval time.Duration `json:"retrain_interval" yaml:"retrain_interval"`
}

// ModelSettings contains classifier settings
type ModelSettings struct {
	Kind              string        `json:"kind" yaml:"kind"`
	Trees             int           `json:"trees" yaml:"trees"`
	MaxTerms          int           `json:"max_terms" yaml:"max_terms"`
	SubsampleFraction float64       `json:"subsample_fraction" yaml:"subsample_fraction"`
	Seed              uint64        `json:"seed" yaml:"seed"`
	TrainTimeout      time.Duration `json:"train_timeout" yaml:"train_timeout"`
}

// FallbackSettings contains keyword rule probabilities
type FallbackSettings struct {
	SpamProbability float64 `json:"spam_probability" yaml:"spam_probability"`
	HamProbability  float64 `json:"ham_probability" yaml:"ham_probability"`
}

// CacheSettings contains prediction cache settings
type CacheSettings struct {
	Size int           `json:"size" yaml:"size"`
	TTL  time.Duration `json:"ttl" yaml:"ttl"`
}

// StorageSettings contains database and history settings
type StorageSettings struct {
	DataBaseURL string        `json:"db" yaml:"db"`
	GID         string        `json:"gid" yaml:"gid"`
	HistorySize int           `json:"history_size" yaml:"history_size"`
	Timeout     time.Duration `json:"timeout" yaml:"timeout"`
}

// LoggerSettings contains detection log settings
type LoggerSettings struct {
	Enabled    bool   `json:"enabled" yaml:"enabled"`
	FileName   string `json:"file_name" yaml:"file_name"`
	MaxSize    string `json:"max_size" yaml:"max_size"`
	MaxBackups int    `json:"max_backups" yaml:"max_backups"`
}

// LuaSettings contains lua scorer plugins settings
type LuaSettings struct {
	Enabled       bool   `json:"enabled" yaml:"enabled"`
	PluginsDir    string `json:"plugins_dir" yaml:"plugins_dir"`
	DynamicReload bool   `json:"dynamic_reload" yaml:"dynamic_reload"`
}

// OpenAISettings contains OpenAI scorer settings
type OpenAISettings struct {
	APIBase           string        `json:"api_base" yaml:"api_base"`
	Token             string        `json:"token" yaml:"token"`
	Model             string        `json:"model" yaml:"model"`
	MaxTokensResponse int           `json:"max_tokens_response" yaml:"max_tokens_response"`
	MaxTokensRequest  int           `json:"max_tokens_request" yaml:"max_tokens_request"`
	MaxSymbolsRequest int           `json:"max_symbols_request" yaml:"max_symbols_request"`
	Timeout           time.Duration `json:"timeout" yaml:"timeout"`
}

// GeminiSettings contains Gemini scorer settings
type GeminiSettings struct {
	Token           string        `json:"token" yaml:"token"`
	Model           string        `json:"model" yaml:"model"`
	MaxOutputTokens int           `json:"max_output_tokens" yaml:"max_output_tokens"`
	Timeout         time.Duration `json:"timeout" yaml:"timeout"`
}

// TransientSettings contains settings that should never be persisted
type TransientSettings struct {
	ConfigFile string `json:"-" yaml:"-"`
	Dbg        bool   `json:"-" yaml:"-"`
}

// New creates a new settings instance with defaults
func New() *Settings {
	return &Settings{
		Server:   ServerSettings{ListenAddr: ":8080", AuthUser: "admin", RateLimit: 100},
		Files:    FilesSettings{DataDir: "data", WatchDelay: 5 * time.Second},
		Model:    ModelSettings{Kind: shield.ForestKind, Trees: 100, MaxTerms: 2000, SubsampleFraction: 0.25, Seed: 42, TrainTimeout: 5 * time.Minute},
		Fallback: FallbackSettings{SpamProbability: 0.9, HamProbability: 0.8},
		Cache:    CacheSettings{Size: 1000, TTL: time.Hour},
		Storage:  StorageSettings{DataBaseURL: "data/spamshield.db", HistorySize: 100, Timeout: 5 * time.Second},
		Logger:   LoggerSettings{FileName: "spamshield.log", MaxSize: "100M", MaxBackups: 10},
		Lua:      LuaSettings{PluginsDir: "data/plugins"},
		OpenAI:   OpenAISettings{Model: "gpt-4o-mini", MaxTokensResponse: 256, MaxTokensRequest: 1024, MaxSymbolsRequest: 8192, Timeout: 30 * time.Second},
		Gemini:   GeminiSettings{Model: "gemini-2.0-flash", MaxOutputTokens: 256, Timeout: 30 * time.Second},
	}
}

// Load overlays settings from yaml file. Only keys present in the file change, unknown keys are rejected.
func (s *Settings) Load(path string) error {
	data, err := os.ReadFile(path) //nolint:gosec // path from cli
	if err != nil {
		return fmt.Errorf("can't read config %s: %w", path, err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(s); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("can't parse config %s: %w", path, err)
	}
	s.Transient.ConfigFile = path
	return s.Validate()
}

// Save writes settings as yaml, secrets included
func (s *Settings) Save(path string) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("can't marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("can't write config %s: %w", path, err)
	}
	return nil
}

// Validate checks settings ranges, all problems reported together
func (s *Settings) Validate() error {
	var errs *multierror.Error
	if s.Model.SubsampleFraction <= 0 || s.Model.SubsampleFraction > 1 {
		errs = multierror.Append(errs, fmt.Errorf("subsample fraction %v not in (0, 1]", s.Model.SubsampleFraction))
	}
	if !slices.Contains(shield.ModelKinds(), s.Model.Kind) {
		errs = multierror.Append(errs, fmt.Errorf("unknown model kind %q, supported: %v", s.Model.Kind, shield.ModelKinds()))
	}
	if s.Model.Trees <= 0 {
		errs = multierror.Append(errs, fmt.Errorf("trees %d must be positive", s.Model.Trees))
	}
	if s.Model.MaxTerms <= 0 {
		errs = multierror.Append(errs, fmt.Errorf("max terms %d must be positive", s.Model.MaxTerms))
	}
	for name, p := range map[string]float64{"spam": s.Fallback.SpamProbability, "ham": s.Fallback.HamProbability} {
		if p < 0 || p > 1 {
			errs = multierror.Append(errs, fmt.Errorf("fallback %s probability %v not in [0, 1]", name, p))
		}
	}
	if s.Server.RateLimit < 0 {
		errs = multierror.Append(errs, fmt.Errorf("rate limit %d can't be negative", s.Server.RateLimit))
	}
	if s.Cache.Size < 0 {
		errs = multierror.Append(errs, fmt.Errorf("cache size %d can't be negative", s.Cache.Size))
	}
	return errs.ErrorOrNil()
}

// IsOpenAIEnabled returns true if OpenAI scorer is enabled
func (s *Settings) IsOpenAIEnabled() bool {
	return s.OpenAI.APIBase != "" || s.OpenAI.Token != ""
}

// IsGeminiEnabled returns true if Gemini scorer is enabled
func (s *Settings) IsGeminiEnabled() bool {
	return s.Gemini.Token != ""
}

// Secrets returns non-empty secret values, to be masked in logs
func (s *Settings) Secrets() []string {
	res := []string{}
	for _, v := range []string{s.Server.AuthPasswd, s.OpenAI.Token, s.Gemini.Token} {
		if v != "" {
			res = append(res, v)
		}
	}
	return res
}
