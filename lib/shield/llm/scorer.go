// Package llm provides sentiment and grammar scorers backed by a language model.
// One completion per text gives both values, results are cached.
package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	cache "github.com/go-pkgz/expirable-cache/v3"
)

//go:generate moq --out mocks/backend.go --pkg mocks --with-resets --skip-ensure . Backend

// Backend sends the system prompt and the text to a language model and returns the raw answer
type Backend interface {
	Complete(ctx context.Context, system, text string) (string, error)
}

const defaultPrompt = `You analyze short messages from email, sms and messengers. ` +
	`Return a json with two fields: {"sentiment": number from -1.0 (very negative) to 1.0 (very positive), ` +
	`"grammar_errors": number of spelling and grammar errors in the message}. Return json only.`

// Options of the Scorer
type Options struct {
	SystemPrompt string        // prompt asking for {"sentiment":..., "grammar_errors":...}, default prompt if empty
	CacheSize    int           // max number of cached scores, 1000 if not set
	CacheTTL     time.Duration // ttl of cached scores, 1h if not set
}

// Scorer implements shield.SentimentScorer and shield.GrammarScorer with a language model
type Scorer struct {
	backend Backend
	opts    Options
	cache   cache.Cache[string, Score]
}

// Score is a language model assessment of a text
type Score struct {
	Sentiment     float64 `json:"sentiment"`
	GrammarErrors int     `json:"grammar_errors"`
}

// NewScorer makes a Scorer for the backend
func NewScorer(backend Backend, opts Options) *Scorer {
	if opts.SystemPrompt == "" {
		opts.SystemPrompt = defaultPrompt
	}
	if opts.CacheSize <= 0 {
		opts.CacheSize = 1000
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = time.Hour
	}
	return &Scorer{
		backend: backend,
		opts:    opts,
		cache:   cache.NewCache[string, Score]().WithMaxKeys(opts.CacheSize).WithTTL(opts.CacheTTL),
	}
}

// Sentiment returns polarity of the text in [-1, 1]
func (s *Scorer) Sentiment(ctx context.Context, text string) (float64, error) {
	sc, err := s.Score(ctx, text)
	if err != nil {
		return 0, err
	}
	return sc.Sentiment, nil
}

// GrammarErrors returns the number of grammar errors in the text
func (s *Scorer) GrammarErrors(ctx context.Context, text string) (int, error) {
	sc, err := s.Score(ctx, text)
	if err != nil {
		return 0, err
	}
	return sc.GrammarErrors, nil
}

// Score returns cached or fresh assessment of the text. Failed calls are not cached.
func (s *Scorer) Score(ctx context.Context, text string) (Score, error) {
	if s.backend == nil {
		return Score{}, errors.New("no llm backend")
	}
	if sc, ok := s.cache.Get(text); ok {
		return sc, nil
	}
	if strings.TrimSpace(text) == "" {
		return Score{}, nil
	}

	resp, err := s.backend.Complete(ctx, s.opts.SystemPrompt, text)
	if err != nil {
		return Score{}, fmt.Errorf("llm request failed: %w", err)
	}
	sc, err := parseScore(resp)
	if err != nil {
		return Score{}, err
	}
	s.cache.Set(text, sc, 0)
	return sc, nil
}

// parseScore decodes the model answer, markdown code fences are allowed
func parseScore(resp string) (Score, error) {
	clean := strings.TrimSpace(resp)
	clean = strings.TrimPrefix(clean, "```json")
	clean = strings.TrimPrefix(clean, "```")
	clean = strings.TrimSuffix(clean, "```")
	clean = strings.TrimSpace(clean)

	var sc Score
	if err := json.Unmarshal([]byte(clean), &sc); err != nil {
		return Score{}, fmt.Errorf("can't unmarshal llm response %q: %w", resp, err)
	}
	sc.Sentiment = math.Max(-1, math.Min(1, sc.Sentiment))
	sc.GrammarErrors = max(0, sc.GrammarErrors)
	return sc, nil
}
