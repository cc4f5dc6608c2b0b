package shield

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractor_Extract(t *testing.T) {
	e := &Extractor{}

	t.Run("spam message", func(t *testing.T) {
		text := "WINNER!! Call 555-123-4567 or visit http://bad.link to claim"
		f := e.Extract(text, "sms")
		assert.Equal(t, "sms", f.Platform)
		assert.Equal(t, "winner call or visit to claim", f.CleanedText)
		assert.Equal(t, len([]rune(text)), f.TextLength)
		assert.Equal(t, 8, f.WordCount)
		assert.True(t, f.HasURL)
		assert.True(t, f.HasPhone)
		assert.Positive(t, f.SpamKeywords)
		assert.Positive(t, f.UppercaseRatio)
		assert.Positive(t, f.SpecialCharRatio)
		assert.Equal(t, 0, f.GrammarErrors)
	})

	t.Run("empty text", func(t *testing.T) {
		f := e.Extract("", "")
		assert.Equal(t, Features{}, f)
	})

	t.Run("ratios", func(t *testing.T) {
		f := e.Extract("ABC", "email")
		assert.InDelta(t, 1.0, f.UppercaseRatio, 1e-9)
		assert.InDelta(t, 0.0, f.SpecialCharRatio, 1e-9)

		f = e.Extract("a!b", "email")
		assert.InDelta(t, 0.0, f.UppercaseRatio, 1e-9)
		assert.InDelta(t, 1.0/3, f.SpecialCharRatio, 1e-9)
	})

	t.Run("emoji", func(t *testing.T) {
		f := e.Extract("Nice post! 😊🎉", "instagram")
		assert.Equal(t, 2, f.EmojiCount)
	})

	t.Run("ratios in range for any input", func(t *testing.T) {
		inputs := []string{"", " ", "ÀÉÎ", "😊😊😊", "\x00\xff", "日本語テキスト", "UPPER lower 123 !@#"}
		for _, in := range inputs {
			f := e.Extract(in, "telegram")
			assert.GreaterOrEqual(t, f.UppercaseRatio, 0.0, in)
			assert.LessOrEqual(t, f.UppercaseRatio, 1.0, in)
			assert.GreaterOrEqual(t, f.SpecialCharRatio, 0.0, in)
			assert.LessOrEqual(t, f.SpecialCharRatio, 1.0, in)
			assert.GreaterOrEqual(t, f.Sentiment, -1.0, in)
			assert.LessOrEqual(t, f.Sentiment, 1.0, in)
		}
	})

	t.Run("nil extractor", func(t *testing.T) {
		var nilExtractor *Extractor
		f := nilExtractor.Extract("good day", "email")
		assert.Equal(t, "good day", f.CleanedText)
		assert.Positive(t, f.Sentiment)
	})
}

func TestLexiconSentiment(t *testing.T) {
	tests := []struct {
		text string
		want float64
	}{
		{"", 0},
		{"hello there", 0},
		{"good", 0.7},
		{"Very good!", 0.91},
		{"not good", -0.35},
		{"good and bad", 0},
		{"very very terrible", -1},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			v, err := defaultSentiment.Sentiment(context.Background(), tt.text)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, v, 1e-9)
		})
	}
}

func TestNewLexiconSentiment(t *testing.T) {
	t.Run("custom lexicon", func(t *testing.T) {
		l, err := NewLexiconSentiment(strings.NewReader("# comment\n\nnice 0.5\n~super 2\n!never\n"))
		require.NoError(t, err)
		v, err := l.Sentiment(context.Background(), "super nice")
		require.NoError(t, err)
		assert.InDelta(t, 1.0, v, 1e-9)
		v, err = l.Sentiment(context.Background(), "never so very nice")
		require.NoError(t, err)
		assert.InDelta(t, -0.25, v, 1e-9)
	})

	t.Run("bad line", func(t *testing.T) {
		_, err := NewLexiconSentiment(strings.NewReader("nice\n"))
		require.Error(t, err)
		_, err = NewLexiconSentiment(strings.NewReader("nice abc\n"))
		require.Error(t, err)
	})
}
