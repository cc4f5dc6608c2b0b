package lib

import (
	"context"
	"fmt"
	"time"

	"github.com/umputun/spamshield/lib/shield"
	"github.com/umputun/spamshield/lib/spamcheck"
)

// Detector checks messages for spam, thread-safe.
type Detector struct {
	engine  *shield.Engine
	history *spamcheck.LastDetections
}

// Config is a set of parameters for Detector
type Config struct {
	DataDir       string                 // corpus files and saved model directory
	Corpus        shield.CorpusSource    // training data source, corpus files of DataDir if nil
	Synthetic     bool                   // train on the built-in synthetic set if no corpus found
	Sentiment     shield.SentimentScorer // sentiment scorer, lexicon based if nil
	Grammar       shield.GrammarScorer   // grammar scorer, no grammar check if nil
	ScorerTimeout time.Duration          // max time of a single scorer call, 2s if not set
	NewModel      func() shield.Model    // model factory, random forest if nil
	Fallback      shield.Fallback        // keyword rule probabilities
	TrainTimeout  time.Duration          // max duration of a training run, unlimited if 0
	CacheSize     int                    // max number of cached predictions, no cache if 0
	CacheTTL      time.Duration          // ttl of cached predictions
	HistorySize   int                    // number of recent detections kept in memory

	SubsampleFraction float64 // share of each corpus set kept when training on several sets
	Seed              uint64  // seed of subsampling, split and model
}

// NewDetector makes a Detector and loads or trains the model
func NewDetector(ctx context.Context, cfg Config) *Detector {
	if cfg.HistorySize <= 0 {
		cfg.HistorySize = 100
	}
	engine := shield.NewEngine(ctx, shield.Config{
		DataDir:           cfg.DataDir,
		Corpus:            cfg.Corpus,
		Synthetic:         cfg.Synthetic,
		SubsampleFraction: cfg.SubsampleFraction,
		Seed:              cfg.Seed,
		Extractor:         &shield.Extractor{Sentiment: cfg.Sentiment, Grammar: cfg.Grammar, ScorerTimeout: cfg.ScorerTimeout},
		NewModel:          cfg.NewModel,
		Fallback:          cfg.Fallback,
		TrainTimeout:      cfg.TrainTimeout,
		CacheSize:         cfg.CacheSize,
		CacheTTL:          cfg.CacheTTL,
	})
	return &Detector{engine: engine, history: spamcheck.NewLastDetections(cfg.HistorySize)}
}

// Check classifies the message of the request. Error returned for invalid request only,
// model failures are handled by the fallback and reported in Response.Diagnostic.
func (d *Detector) Check(req spamcheck.Request) (spamcheck.Response, error) {
	if err := req.Validate(); err != nil {
		return spamcheck.Response{}, fmt.Errorf("invalid request: %w", err)
	}
	res := d.engine.Predict(req.Message(), req.Platform)
	resp := ResponseFrom(res)
	resp.AnalysisID = d.history.Push(spamcheck.Detection{
		Content:    req.Message(),
		Platform:   req.Platform,
		Prediction: resp.Prediction,
		Confidence: resp.Probability,
		Fallback:   resp.Fallback,
		ModelID:    resp.ModelID,
		CreatedAt:  time.Now(),
	})
	return resp, nil
}

// Train retrains the model from the corpus, see shield.Engine.Train
func (d *Detector) Train(ctx context.Context) (shield.TrainResult, error) {
	return d.engine.Train(ctx)
}

// Health returns the engine state
func (d *Detector) Health() shield.Health {
	return d.engine.Health()
}

// History returns recent detections, newest first
func (d *Detector) History(page, perPage int) spamcheck.HistoryPage {
	return d.history.Page(page, perPage)
}

// ResponseFrom converts engine result to the wire response
func ResponseFrom(res shield.Result) spamcheck.Response {
	return spamcheck.Response{
		Label:       res.Label.String(),
		Prediction:  res.Label.String(),
		Probability: res.Probability,
		Explanation: res.Explanation,
		Fallback:    res.Fallback,
		Diagnostic:  res.Diagnostic,
		ModelID:     res.ModelID,
	}
}
