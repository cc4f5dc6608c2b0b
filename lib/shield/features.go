package shield

import (
	"context"
	"fmt"
	"log"
	"math"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/forPelevin/gomoji"
)

//go:generate moq --out mocks/sentiment_scorer.go --pkg mocks --with-resets --skip-ensure . SentimentScorer
//go:generate moq --out mocks/grammar_scorer.go --pkg mocks --with-resets --skip-ensure . GrammarScorer

// Features is a structured representation of a message used as the classifier input.
// CleanedText and Platform are always set, empty string is a valid value.
type Features struct {
	CleanedText      string  `json:"cleaned_text"`
	Platform         string  `json:"platform"`
	TextLength       int     `json:"text_length"`        // length of the original text, in characters
	WordCount        int     `json:"word_count"`         // number of whitespace separated words
	HasURL           bool    `json:"has_url"`            // original text contains an url
	HasPhone         bool    `json:"has_phone"`          // original text contains a phone number
	Sentiment        float64 `json:"sentiment"`          // polarity, -1.0 - 1.0
	GrammarErrors    int     `json:"grammar_errors"`     // number of grammar errors, 0 if no grammar scorer
	UppercaseRatio   float64 `json:"uppercase_ratio"`    // share of uppercase characters, 0.0 - 1.0
	SpecialCharRatio float64 `json:"special_char_ratio"` // share of non-alphanumeric, non-space characters, 0.0 - 1.0
	SpamKeywords     int     `json:"spam_keywords"`      // number of spam vocabulary keywords
	EmojiCount       int     `json:"emoji_count"`        // number of emojis in the original text
}

// SentimentScorer returns polarity of the text, conventionally in [-1, 1].
type SentimentScorer interface {
	Sentiment(ctx context.Context, text string) (float64, error)
}

// GrammarScorer returns the number of grammar errors in the text.
type GrammarScorer interface {
	GrammarErrors(ctx context.Context, text string) (int, error)
}

// NoGrammar is a grammar scorer reporting no errors. No grammar engine is wired by default.
type NoGrammar struct{}

// GrammarErrors always returns 0
func (NoGrammar) GrammarErrors(context.Context, string) (int, error) { return 0, nil }

// NoSentiment is a sentiment scorer reporting neutral polarity for everything.
type NoSentiment struct{}

// Sentiment always returns 0
func (NoSentiment) Sentiment(context.Context, string) (float64, error) { return 0, nil }

const defaultScorerTimeout = 2 * time.Second

// Extractor converts a raw message into Features. Zero value is usable, with lexicon sentiment
// and no grammar checks.
type Extractor struct {
	Sentiment     SentimentScorer // polarity scorer, LexiconSentiment if nil
	Grammar       GrammarScorer   // grammar scorer, NoGrammar if nil
	ScorerTimeout time.Duration   // max time for a single scorer call, 2s if not set
}

// Extract makes Features for text posted on the platform. It never fails, scorer errors,
// panics and timeouts are replaced by neutral values.
func (e *Extractor) Extract(text, platform string) Features {
	res := Features{
		CleanedText:  Clean(text),
		Platform:     platform,
		TextLength:   utf8.RuneCountInString(text),
		WordCount:    len(strings.Fields(text)),
		HasURL:       HasURL(text),
		HasPhone:     HasPhone(text),
		SpamKeywords: SpamKeywordCount(text),
		EmojiCount:   countEmoji(text),
	}
	res.UppercaseRatio, res.SpecialCharRatio = charRatios(text)
	res.Sentiment = e.sentiment(text)
	res.GrammarErrors = e.grammarErrors(text)
	return res
}

func (e *Extractor) sentiment(text string) float64 {
	var scorer SentimentScorer = defaultSentiment
	if e != nil && e.Sentiment != nil {
		scorer = e.Sentiment
	}
	v, err := withTimeout(e.timeout(), func(ctx context.Context) (float64, error) { return scorer.Sentiment(ctx, text) })
	if err != nil {
		log.Printf("[DEBUG] sentiment scorer failed, %v", err)
		return 0
	}
	switch {
	case math.IsNaN(v):
		return 0
	case v > 1:
		return 1
	case v < -1:
		return -1
	}
	return v
}

func (e *Extractor) grammarErrors(text string) int {
	if e == nil || e.Grammar == nil {
		return 0
	}
	v, err := withTimeout(e.timeout(), func(ctx context.Context) (int, error) { return e.Grammar.GrammarErrors(ctx, text) })
	if err != nil {
		log.Printf("[DEBUG] grammar scorer failed, %v", err)
		return 0
	}
	if v < 0 {
		return 0
	}
	return v
}

func (e *Extractor) timeout() time.Duration {
	if e == nil || e.ScorerTimeout <= 0 {
		return defaultScorerTimeout
	}
	return e.ScorerTimeout
}

// withTimeout runs fn in a separate goroutine and gives up after timeout.
// The goroutine is not killed, it gets a cancelled context and its result is discarded.
func withTimeout[T any](timeout time.Duration, fn func(ctx context.Context) (T, error)) (T, error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	type result struct {
		val T
		err error
	}
	ch := make(chan result, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				var zero T
				ch <- result{val: zero, err: fmt.Errorf("scorer panic: %v", r)}
			}
		}()
		v, err := fn(ctx)
		ch <- result{val: v, err: err}
	}()

	select {
	case r := <-ch:
		return r.val, r.err
	case <-ctx.Done():
		var zero T
		return zero, fmt.Errorf("scorer timeout: %w", ctx.Err())
	}
}

// charRatios returns shares of uppercase and special (non-alphanumeric, non-space) characters
func charRatios(text string) (upper, special float64) {
	var total, ups, specials int
	for _, r := range text {
		total++
		if unicode.IsUpper(r) {
			ups++
		}
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && !unicode.IsSpace(r) {
			specials++
		}
	}
	denom := float64(max(1, total))
	return float64(ups) / denom, float64(specials) / denom
}

func countEmoji(text string) int {
	if text == "" {
		return 0
	}
	return len(gomoji.CollectAll(text))
}
