package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/spamshield/lib/shield/llm/mocks"
)

func TestScorer(t *testing.T) {
	backend := &mocks.BackendMock{CompleteFunc: func(_ context.Context, _, text string) (string, error) {
		switch text {
		case "broken":
			return "", errors.New("api down")
		case "garbage":
			return "not a json", nil
		case "fenced":
			return "```json\n{\"sentiment\": -3, \"grammar_errors\": -1}\n```", nil
		}
		return `{"sentiment": 0.5, "grammar_errors": 2}`, nil
	}}
	s := NewScorer(backend, Options{})

	v, err := s.Sentiment(context.Background(), "hello wrld")
	require.NoError(t, err)
	assert.InDelta(t, 0.5, v, 1e-9)
	n, err := s.GrammarErrors(context.Background(), "hello wrld")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	require.Len(t, backend.CompleteCalls(), 1, "second value taken from cache")
	assert.Equal(t, defaultPrompt, backend.CompleteCalls()[0].System)

	sc, err := s.Score(context.Background(), "fenced")
	require.NoError(t, err)
	assert.Equal(t, Score{Sentiment: -1, GrammarErrors: 0}, sc, "clamped")

	_, err = s.Sentiment(context.Background(), "broken")
	require.ErrorContains(t, err, "api down")
	_, err = s.GrammarErrors(context.Background(), "garbage")
	require.ErrorContains(t, err, "can't unmarshal")

	backend.ResetCompleteCalls()
	_, err = s.Score(context.Background(), "broken")
	require.Error(t, err)
	assert.Len(t, backend.CompleteCalls(), 1, "failures not cached")

	backend.ResetCompleteCalls()
	sc, err = s.Score(context.Background(), "   ")
	require.NoError(t, err)
	assert.Equal(t, Score{}, sc)
	assert.Empty(t, backend.CompleteCalls())

	t.Run("no backend", func(t *testing.T) {
		_, err := NewScorer(nil, Options{}).Sentiment(context.Background(), "text")
		require.Error(t, err)
	})

	t.Run("custom prompt", func(t *testing.T) {
		b := &mocks.BackendMock{CompleteFunc: func(context.Context, string, string) (string, error) { return `{}`, nil }}
		_, err := NewScorer(b, Options{SystemPrompt: "rate it"}).Score(context.Background(), "x")
		require.NoError(t, err)
		assert.Equal(t, "rate it", b.CompleteCalls()[0].System)
	})
}
