package shield_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/spamshield/lib/shield"
	"github.com/umputun/spamshield/lib/shield/mocks"
)

func TestExtractor_Scorers(t *testing.T) {
	t.Run("scorer values used", func(t *testing.T) {
		sm := &mocks.SentimentScorerMock{SentimentFunc: func(context.Context, string) (float64, error) { return 0.25, nil }}
		gm := &mocks.GrammarScorerMock{GrammarErrorsFunc: func(context.Context, string) (int, error) { return 7, nil }}
		e := &shield.Extractor{Sentiment: sm, Grammar: gm}
		f := e.Extract("some text", "email")
		assert.InDelta(t, 0.25, f.Sentiment, 1e-9)
		assert.Equal(t, 7, f.GrammarErrors)
		require.Len(t, sm.SentimentCalls(), 1)
		assert.Equal(t, "some text", sm.SentimentCalls()[0].Text)
		require.Len(t, gm.GrammarErrorsCalls(), 1)
	})

	t.Run("out of range values", func(t *testing.T) {
		sm := &mocks.SentimentScorerMock{SentimentFunc: func(context.Context, string) (float64, error) { return 5, nil }}
		gm := &mocks.GrammarScorerMock{GrammarErrorsFunc: func(context.Context, string) (int, error) { return -3, nil }}
		f := (&shield.Extractor{Sentiment: sm, Grammar: gm}).Extract("text", "email")
		assert.InDelta(t, 1.0, f.Sentiment, 1e-9)
		assert.Equal(t, 0, f.GrammarErrors)
	})

	t.Run("errors", func(t *testing.T) {
		sm := &mocks.SentimentScorerMock{SentimentFunc: func(context.Context, string) (float64, error) {
			return 0.9, errors.New("failed")
		}}
		gm := &mocks.GrammarScorerMock{GrammarErrorsFunc: func(context.Context, string) (int, error) {
			return 10, errors.New("failed")
		}}
		f := (&shield.Extractor{Sentiment: sm, Grammar: gm}).Extract("text", "email")
		assert.InDelta(t, 0.0, f.Sentiment, 1e-9)
		assert.Equal(t, 0, f.GrammarErrors)
	})

	t.Run("panics", func(t *testing.T) {
		sm := &mocks.SentimentScorerMock{SentimentFunc: func(context.Context, string) (float64, error) { panic("boom") }}
		gm := &mocks.GrammarScorerMock{GrammarErrorsFunc: func(context.Context, string) (int, error) { panic("boom") }}
		f := (&shield.Extractor{Sentiment: sm, Grammar: gm}).Extract("text", "email")
		assert.InDelta(t, 0.0, f.Sentiment, 1e-9)
		assert.Equal(t, 0, f.GrammarErrors)
	})

	t.Run("timeout", func(t *testing.T) {
		sm := &mocks.SentimentScorerMock{SentimentFunc: func(ctx context.Context, _ string) (float64, error) {
			<-ctx.Done()
			return 0.9, nil
		}}
		e := &shield.Extractor{Sentiment: sm, ScorerTimeout: 20 * time.Millisecond}
		st := time.Now()
		f := e.Extract("text", "email")
		assert.InDelta(t, 0.0, f.Sentiment, 1e-9)
		assert.Less(t, time.Since(st), time.Second)
	})
}
