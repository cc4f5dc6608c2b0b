package shield

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
)

// BayesKind is the model kind of Bayes
const BayesKind = "bayes"

// Bayes is a multinomial naive bayes over stemmed tokens of cleaned text, with platform
// and url/phone flags added as pseudo tokens. Faster and smaller than Forest, less accurate.
type Bayes struct {
	Tokens    map[string][2]int `json:"tokens"`     // token -> number of ham and spam documents containing it
	DocCount  [2]int            `json:"doc_count"`  // documents per class
	FreqCount [2]int            `json:"freq_count"` // token occurrences per class
}

// NewBayes makes an unfitted bayes model
func NewBayes() *Bayes {
	return &Bayes{Tokens: map[string][2]int{}}
}

// Kind returns BayesKind
func (b *Bayes) Kind() string { return BayesKind }

// Fit learns token frequencies per class
func (b *Bayes) Fit(ctx context.Context, rows []Features, labels []Label) error {
	if len(rows) != len(labels) {
		return fmt.Errorf("rows and labels mismatch, %d != %d", len(rows), len(labels))
	}
	if !hasBothClasses(labels) {
		return ErrSingleClass
	}
	b.Tokens, b.DocCount, b.FreqCount = map[string][2]int{}, [2]int{}, [2]int{}
	for i, r := range rows {
		if i%1000 == 0 {
			if err := ctx.Err(); err != nil {
				return fmt.Errorf("bayes fit interrupted: %w", err)
			}
		}
		c := labels[i]
		b.DocCount[c]++
		for _, tok := range bayesTokens(r) {
			b.FreqCount[c]++
			counts := b.Tokens[tok]
			counts[c]++
			b.Tokens[tok] = counts
		}
	}
	return nil
}

// SpamProbability returns softmax-normalized posterior of spam class
func (b *Bayes) SpamProbability(f Features) (float64, error) {
	total := b.DocCount[Ham] + b.DocCount[Spam]
	if total == 0 || b.DocCount[Ham] == 0 || b.DocCount[Spam] == 0 {
		return 0, ErrModelUnavailable
	}
	vocab := float64(len(b.Tokens))
	var posterior [2]float64
	for _, c := range []Label{Ham, Spam} {
		posterior[c] = math.Log(float64(b.DocCount[c]) / float64(total))
		for _, tok := range bayesTokens(f) {
			posterior[c] += math.Log(float64(b.Tokens[tok][c]+1) / (float64(b.FreqCount[c]) + vocab))
		}
	}
	// softmax of two log probabilities, shifted by max to avoid underflow
	top := math.Max(posterior[Ham], posterior[Spam])
	ham, spam := math.Exp(posterior[Ham]-top), math.Exp(posterior[Spam]-top)
	return spam / (ham + spam), nil
}

// MarshalJSON stores learned counts
func (b *Bayes) MarshalJSON() ([]byte, error) {
	type plain Bayes
	return json.Marshal((*plain)(b))
}

// UnmarshalJSON restores learned counts
func (b *Bayes) UnmarshalJSON(data []byte) error {
	type plain Bayes
	var v plain
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	if v.DocCount[Ham] == 0 || v.DocCount[Spam] == 0 {
		return errors.New("bayes model has no documents of one class")
	}
	if v.Tokens == nil {
		v.Tokens = map[string][2]int{}
	}
	*b = Bayes(v)
	return nil
}

// bayesTokens returns distinct unigram tokens of the message, with pseudo tokens for platform and flags
func bayesTokens(f Features) []string {
	seen := map[string]struct{}{}
	res := []string{}
	add := func(tok string) {
		if _, ok := seen[tok]; ok {
			return
		}
		seen[tok] = struct{}{}
		res = append(res, tok)
	}
	for _, tok := range terms(f.CleanedText, 1) {
		add(tok)
	}
	add("__platform:" + f.Platform)
	if f.HasURL {
		add("__url")
	}
	if f.HasPhone {
		add("__phone")
	}
	return res
}
