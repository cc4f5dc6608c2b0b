package shield

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	cache "github.com/go-pkgz/expirable-cache/v3"
	"github.com/go-pkgz/fileutils"
)

// State of the engine
type State int32

// enum of engine states
const (
	Uninitialized State = iota
	Loading
	Trained
	FallbackOnly
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Loading:
		return "loading"
	case Trained:
		return "trained"
	case FallbackOnly:
		return "fallback_only"
	}
	return fmt.Sprintf("state(%d)", int32(s))
}

// MarshalText implements encoding.TextMarshaler
func (s State) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// TrainStatus is the outcome of a training run
type TrainStatus string

// enum of training statuses
const (
	TrainInProgress TrainStatus = "in_progress"
	TrainSuccess    TrainStatus = "success"
	TrainFailed     TrainStatus = "failed"
)

// Config of the engine
type Config struct {
	DataDir           string        // model artifact and corpus files directory, nothing persisted if empty
	Corpus            CorpusSource  // training data source, DirSource of DataDir if nil
	Synthetic         bool          // train on the synthetic set if no training data found
	SubsampleFraction float64       // share of each set kept when training on several sets, 0.25 if not set
	Seed              uint64        // seed for subsampling, split and model, 42 if not set
	Extractor         *Extractor    // feature extractor, zero Extractor if nil
	NewModel          func() Model  // model factory, default Forest if nil
	Fallback          Fallback      // keyword rule used when no model available
	TrainTimeout      time.Duration // max duration of a training run, unlimited if 0
	CacheSize         int           // max number of cached predictions, no cache if 0
	CacheTTL          time.Duration // ttl of cached predictions, 5m if not set
}

// Result of a prediction. Predict always returns a usable result, Diagnostic reports
// a failure recovered by the fallback path.
type Result struct {
	Label       Label     `json:"label"`
	Probability float64   `json:"probability"` // spam class probability, confidence of the label for the keyword rule
	Explanation string    `json:"explanation"`
	Fallback    bool      `json:"fallback"`             // made by the fallback path
	Diagnostic  string    `json:"diagnostic,omitempty"` // error of the model path, if any
	ModelID     string    `json:"model_id,omitempty"`   // id of the model made the prediction
	Features    *Features `json:"features,omitempty"`   // features used, nil for the keyword rule
}

// TrainResult is the outcome of Train, to be stored by the caller as a training log
type TrainResult struct {
	Status   TrainStatus   `json:"status"`
	Metrics  Metrics       `json:"metrics"`
	ModelID  string        `json:"model_id,omitempty"`
	Duration time.Duration `json:"duration"`
	Notes    string        `json:"notes,omitempty"`
}

// Health reports the engine state
type Health struct {
	State     State     `json:"state"`
	Trained   bool      `json:"model_trained"`
	ModelID   string    `json:"model_id,omitempty"`
	ModelKind string    `json:"model_kind,omitempty"`
	TrainedAt time.Time `json:"trained_at,omitempty"`
	Metrics   Metrics   `json:"metrics"`
}

// Engine classifies messages with a trained model and falls back to the keyword rule
// when the model is not available. Safe for concurrent use, Train may run along with Predict.
type Engine struct {
	Config
	explainer Explainer
	state     atomic.Int32
	active    atomic.Pointer[Classifier] // trained model, used in Trained state
	minimal   atomic.Pointer[Classifier] // last resort model, used in FallbackOnly state
	trainMu   sync.Mutex
	cache     cache.Cache[string, Result]
}

// predictOutcome is a result of the model path, err set if it failed
type predictOutcome struct {
	Prediction
	features Features
	err      error
}

// NewEngine makes an engine. It loads the saved model from DataDir or trains a new one.
// Never fails, engine switches to FallbackOnly if no model can be loaded or trained.
func NewEngine(ctx context.Context, cfg Config) *Engine {
	if cfg.Extractor == nil {
		cfg.Extractor = &Extractor{}
	}
	if cfg.Corpus == nil && cfg.DataDir != "" {
		cfg.Corpus = DirSource{Dir: cfg.DataDir}
	}
	res := &Engine{Config: cfg, explainer: Explainer{Extractor: cfg.Extractor}}
	if cfg.CacheSize > 0 {
		ttl := cfg.CacheTTL
		if ttl <= 0 {
			ttl = 5 * time.Minute
		}
		res.cache = cache.NewCache[string, Result]().WithMaxKeys(cfg.CacheSize).WithTTL(ttl)
	}
	res.state.Store(int32(Loading))

	res.trainMu.Lock()
	defer res.trainMu.Unlock()

	if path := res.artifactPath(); path != "" && fileutils.IsFile(path) {
		cls, err := LoadClassifier(path, cfg.Extractor)
		if err == nil {
			res.active.Store(cls)
			res.state.Store(int32(Trained))
			return res
		}
		log.Printf("[WARN] can't load saved model, will train a new one: %v", err)
	}

	cls, err := res.fit(ctx)
	if err != nil {
		log.Printf("[WARN] initial training failed, using fallback classifier: %v", err)
		res.state.Store(int32(FallbackOnly))
		return res
	}
	_ = res.persist(cls)
	res.active.Store(cls)
	res.state.Store(int32(Trained))
	return res
}

// Predict classifies text posted on platform. Never fails, errors and panics of the model path
// switch this call to the fallback path and reported in Result.Diagnostic.
func (e *Engine) Predict(text, platform string) Result {
	state := e.State()
	var cls *Classifier
	switch state {
	case Trained:
		cls = e.active.Load()
	case FallbackOnly:
		cls = e.minimal.Load()
	}

	key := e.cacheKey(cls, platform, text)
	if e.cache != nil {
		if res, ok := e.cache.Get(key); ok {
			return res
		}
	}

	var diagnostic string
	if cls != nil {
		out := e.predictWith(cls, text, platform)
		if out.err == nil {
			res := Result{
				Label:       out.Label,
				Probability: out.Probability,
				Explanation: e.explainer.Explain(text, platform, out.Label == Spam, &out.features),
				Fallback:    state != Trained,
				ModelID:     cls.ID(),
				Features:    &out.features,
			}
			if e.cache != nil {
				e.cache.Set(key, res, 0)
			}
			return res
		}
		log.Printf("[WARN] prediction with model %s failed, using fallback: %v", cls.ID(), out.err)
		diagnostic = out.err.Error()
	}

	p := e.Fallback.Predict(text)
	res := Result{
		Label:       p.Label,
		Probability: p.Probability,
		Explanation: e.explainer.Explain(text, platform, p.Label == Spam, nil),
		Fallback:    true,
		Diagnostic:  diagnostic,
	}
	if e.cache != nil && diagnostic == "" {
		e.cache.Set(key, res, 0)
	}
	return res
}

// predictWith runs the model path, panics are reported as errors
func (e *Engine) predictWith(cls *Classifier, text, platform string) (res predictOutcome) {
	defer func() {
		if r := recover(); r != nil {
			res = predictOutcome{err: fmt.Errorf("prediction panic: %v", r)}
		}
	}()
	res.features = cls.Extractor().Extract(text, platform)
	res.Prediction, res.err = cls.PredictFeatures(res.features)
	return res
}

// Train loads the corpus and fits a new model. Only one training runs at a time,
// a concurrent call returns ErrTrainingInProgress immediately. On success the new model
// is saved and replaces the active one. On failure the engine switches to FallbackOnly
// with a minimal model, TrainResult has status failed and zero metrics.
func (e *Engine) Train(ctx context.Context) (TrainResult, error) {
	if !e.trainMu.TryLock() {
		return TrainResult{Status: TrainFailed, Notes: ErrTrainingInProgress.Error()}, ErrTrainingInProgress
	}
	defer e.trainMu.Unlock()

	st := time.Now()
	cls, err := e.fit(ctx)
	if err != nil {
		log.Printf("[WARN] training failed, switching to fallback: %v", err)
		e.active.Store(nil)
		e.minimal.Store(e.fitMinimal(ctx))
		e.state.Store(int32(FallbackOnly))
		e.purgeCache()
		return TrainResult{Status: TrainFailed, Duration: time.Since(st), Notes: err.Error()},
			fmt.Errorf("training failed: %w", err)
	}

	res := TrainResult{Status: TrainSuccess, Metrics: cls.Metrics(), ModelID: cls.ID()}
	if perr := e.persist(cls); perr != nil {
		res.Notes = fmt.Sprintf("model not saved: %v", perr)
	}
	e.active.Store(cls)
	e.minimal.Store(nil)
	e.state.Store(int32(Trained))
	e.purgeCache()
	res.Duration = time.Since(st)
	log.Printf("[INFO] training completed in %v, model %s, samples:%d", res.Duration.Round(time.Millisecond),
		cls.ID(), res.Metrics.SampleCount)
	return res, nil
}

// State returns the current engine state
func (e *Engine) State() State { return State(e.state.Load()) }

// Health returns the state and the active model info
func (e *Engine) Health() Health {
	res := Health{State: e.State()}
	if cls := e.active.Load(); cls != nil && res.State == Trained {
		res.Trained = true
		res.ModelID, res.ModelKind, res.TrainedAt, res.Metrics = cls.ID(), cls.Kind(), cls.TrainedAt(), cls.Metrics()
	}
	return res
}

// fit loads the corpus and fits a classifier, bounded by TrainTimeout
func (e *Engine) fit(ctx context.Context) (*Classifier, error) {
	if e.TrainTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.TrainTimeout)
		defer cancel()
	}
	loader := CorpusLoader{Source: e.Corpus, Synthetic: e.Synthetic, SubsampleFraction: e.SubsampleFraction, Seed: e.Seed}
	examples, err := loader.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("can't load corpus: %w", err)
	}
	rows, labels := Materialize(examples, e.Extractor)
	if err = ctx.Err(); err != nil {
		return nil, fmt.Errorf("training interrupted: %w", err)
	}
	cls, _, err := Fit(ctx, rows, labels, FitOptions{NewModel: e.NewModel, Seed: e.Seed, Extractor: e.Extractor})
	if err != nil {
		return nil, err
	}
	return cls, nil
}

// fitMinimal makes a small forest from the built-in six examples, nil if it fails
func (e *Engine) fitMinimal(ctx context.Context) *Classifier {
	rows := make([]Features, 0, len(minimalExamples))
	labels := make([]Label, 0, len(minimalExamples))
	for _, s := range minimalExamples {
		rows = append(rows, e.Extractor.Extract(s.Text, ""))
		labels = append(labels, s.Label)
	}
	newModel := func() Model { return NewForest(ForestOptions{Trees: 10, MaxTerms: 100, Seed: e.Seed}) }
	cls, _, err := Fit(context.WithoutCancel(ctx), rows, labels, FitOptions{NewModel: newModel, Seed: e.Seed, Extractor: e.Extractor})
	if err != nil {
		log.Printf("[WARN] can't make minimal model: %v", err)
		return nil
	}
	return cls
}

func (e *Engine) persist(cls *Classifier) error {
	path := e.artifactPath()
	if path == "" {
		return nil
	}
	if err := cls.Save(path); err != nil {
		log.Printf("[WARN] can't save model: %v", err)
		return err
	}
	return nil
}

func (e *Engine) artifactPath() string {
	if e.DataDir == "" {
		return ""
	}
	return filepath.Join(e.DataDir, ArtifactName)
}

func (e *Engine) cacheKey(cls *Classifier, platform, text string) string {
	id := "keywords"
	if cls != nil {
		id = cls.ID()
	}
	return id + "\x00" + platform + "\x00" + text
}

func (e *Engine) purgeCache() {
	if e.cache != nil {
		e.cache.Purge()
	}
}
