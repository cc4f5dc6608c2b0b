package shield

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var spamTexts = []string{
	"WINNER!! You've been selected for a free $1000 gift card. Text YES to claim!",
	"Congratulations! You won a free prize, claim your reward now",
	"Free gift card winner, click to claim your prize today",
	"You have been selected to win a free cruise, claim now",
	"URGENT: verify your bank account now at http://secure-bank.example",
	"Claim your free iPhone prize now, you are our lucky winner",
	"Win cash now! Free entry, claim your prize at http://win.example",
	"Your account is suspended, verify your password immediately",
	"Limited offer: free bitcoin, double your money, claim now",
	"Winner! Free gift voucher selected for you, text CLAIM",
	"You won the lottery! Claim your million dollar prize",
	"Exclusive free offer, click here to claim your gift card",
	"Get free followers now, click the link to claim",
	"Earn $1000 daily with this free method, claim your spot",
	"Free prize draw winner, call 555-123-4567 to claim",
}

var hamTexts = []string{
	"Hi, are we still meeting tomorrow at 5pm?",
	"Thanks for your message, I'll get back to you soon.",
	"Can you send me the report by the end of the day?",
	"Let's schedule a meeting for next week.",
	"See you tomorrow at the office",
	"Did you see the message I sent yesterday?",
	"Please find attached the documents you requested.",
	"Looking forward to our call tomorrow afternoon.",
	"Are we still meeting for lunch tomorrow?",
	"I'm running late, will be at the meeting in ten minutes",
	"How was your weekend? Let's catch up soon",
	"The meeting notes are in the shared folder",
	"Happy birthday! Hope you have a lovely day",
	"Could you review my pull request when you have time?",
	"Mom asked if you are coming for dinner tomorrow",
}

func testRows(t *testing.T) ([]Features, []Label) {
	t.Helper()
	e := &Extractor{}
	rows, labels := []Features{}, []Label{}
	for i, text := range spamTexts {
		rows = append(rows, e.Extract(text, []string{"email", "sms", "telegram"}[i%3]))
		labels = append(labels, Spam)
	}
	for i, text := range hamTexts {
		rows = append(rows, e.Extract(text, []string{"email", "sms", "telegram"}[i%3]))
		labels = append(labels, Ham)
	}
	return rows, labels
}

func TestFit(t *testing.T) {
	rows, labels := testRows(t)

	for _, kind := range []string{ForestKind, BayesKind} {
		t.Run(kind, func(t *testing.T) {
			newModel := func() Model { m, err := NewModel(kind); require.NoError(t, err); return m }
			cls, metrics, err := Fit(context.Background(), rows, labels, FitOptions{NewModel: newModel})
			require.NoError(t, err)
			assert.Equal(t, kind, cls.Kind())
			assert.NotEmpty(t, cls.ID())
			assert.Equal(t, 30, metrics.SampleCount, "whole corpus, not only train part")
			assert.Equal(t, metrics, cls.Metrics())
			assert.False(t, cls.TrainedAt().IsZero())
			for _, v := range []float64{metrics.Accuracy, metrics.Precision, metrics.Recall, metrics.F1} {
				assert.GreaterOrEqual(t, v, 0.0)
				assert.LessOrEqual(t, v, 1.0)
			}

			p, err := cls.Predict("Congratulations winner! Claim your free prize now", "email")
			require.NoError(t, err)
			assert.Equal(t, Spam, p.Label)
			assert.Greater(t, p.Probability, 0.5)

			p, err = cls.Predict("Are we still meeting tomorrow at the office?", "sms")
			require.NoError(t, err)
			assert.Equal(t, Ham, p.Label)
			assert.Less(t, p.Probability, 0.5)
			assert.Equal(t, p.Probability, float64(int(p.Probability*1000+0.5))/1000, "rounded to 3 decimals")
		})
	}

	t.Run("single class", func(t *testing.T) {
		_, _, err := Fit(context.Background(), rows[:3], labels[:3], FitOptions{})
		require.ErrorIs(t, err, ErrSingleClass)
	})

	t.Run("mismatch", func(t *testing.T) {
		_, _, err := Fit(context.Background(), rows, labels[:3], FitOptions{})
		require.Error(t, err)
	})

	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, _, err := Fit(ctx, rows, labels, FitOptions{})
		require.ErrorIs(t, err, context.Canceled)
	})

	t.Run("deterministic", func(t *testing.T) {
		c1, m1, err := Fit(context.Background(), rows, labels, FitOptions{})
		require.NoError(t, err)
		c2, m2, err := Fit(context.Background(), rows, labels, FitOptions{})
		require.NoError(t, err)
		assert.Equal(t, m1, m2)
		for _, text := range []string{"free prize", "meeting tomorrow", "", "random words here"} {
			p1, err := c1.Predict(text, "email")
			require.NoError(t, err)
			p2, err := c2.Predict(text, "email")
			require.NoError(t, err)
			assert.Equal(t, p1, p2, text)
		}
	})
}

func TestClassifier_Unavailable(t *testing.T) {
	var cls *Classifier
	_, err := cls.Predict("text", "email")
	require.ErrorIs(t, err, ErrModelUnavailable)
	require.ErrorIs(t, cls.Save(filepath.Join(t.TempDir(), ArtifactName)), ErrModelUnavailable)

	_, err = (&Classifier{model: NewForest(ForestOptions{})}).Predict("text", "email")
	require.ErrorIs(t, err, ErrModelUnavailable)
}

func TestClassifier_SaveLoad(t *testing.T) {
	rows, labels := testRows(t)
	texts := append(append([]string{"", "hello", "FREE PRIZE!!! http://x.example"}, spamTexts[:3]...), hamTexts[:3]...)

	for _, kind := range []string{ForestKind, BayesKind} {
		t.Run(kind, func(t *testing.T) {
			newModel := func() Model { m, err := NewModel(kind); require.NoError(t, err); return m }
			cls, _, err := Fit(context.Background(), rows, labels, FitOptions{NewModel: newModel})
			require.NoError(t, err)

			path := filepath.Join(t.TempDir(), "models", ArtifactName)
			require.NoError(t, cls.Save(path))
			files, err := os.ReadDir(filepath.Dir(path))
			require.NoError(t, err)
			assert.Len(t, files, 1, "no temp files left")

			loaded, err := LoadClassifier(path, nil)
			require.NoError(t, err)
			assert.Equal(t, cls.ID(), loaded.ID())
			assert.Equal(t, cls.Metrics(), loaded.Metrics())
			assert.Equal(t, kind, loaded.Kind())
			for _, platform := range []string{"email", "sms", "unknown"} {
				for _, text := range texts {
					p1, err := cls.Predict(text, platform)
					require.NoError(t, err)
					p2, err := loaded.Predict(text, platform)
					require.NoError(t, err)
					assert.Equal(t, p1, p2, "%s/%s", platform, text)
				}
			}
		})
	}

	t.Run("overwrite", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ArtifactName)
		c1, _, err := Fit(context.Background(), rows, labels, FitOptions{NewModel: func() Model { return NewBayes() }})
		require.NoError(t, err)
		c2, _, err := Fit(context.Background(), rows, labels, FitOptions{NewModel: func() Model { return NewBayes() }})
		require.NoError(t, err)
		require.NoError(t, c1.Save(path))
		require.NoError(t, c2.Save(path))
		loaded, err := LoadClassifier(path, nil)
		require.NoError(t, err)
		assert.Equal(t, c2.ID(), loaded.ID())
	})
}

func TestLoadClassifier_Errors(t *testing.T) {
	rows, labels := testRows(t)
	cls, _, err := Fit(context.Background(), rows, labels, FitOptions{NewModel: func() Model { return NewBayes() }})
	require.NoError(t, err)
	dir := t.TempDir()
	path := filepath.Join(dir, ArtifactName)
	require.NoError(t, cls.Save(path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	rewrite := func(t *testing.T, fn func(a map[string]json.RawMessage)) string {
		var a map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(data, &a))
		fn(a)
		out, err := json.Marshal(a)
		require.NoError(t, err)
		p := filepath.Join(t.TempDir(), ArtifactName)
		require.NoError(t, os.WriteFile(p, out, 0o600))
		return p
	}

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadClassifier(filepath.Join(dir, "nope.json"), nil)
		require.Error(t, err)
	})

	t.Run("not json", func(t *testing.T) {
		p := filepath.Join(t.TempDir(), ArtifactName)
		require.NoError(t, os.WriteFile(p, []byte("{broken"), 0o600))
		_, err := LoadClassifier(p, nil)
		require.Error(t, err)
	})

	t.Run("version mismatch", func(t *testing.T) {
		_, err := LoadClassifier(rewrite(t, func(a map[string]json.RawMessage) { a["version"] = json.RawMessage("99") }), nil)
		require.ErrorContains(t, err, "unsupported model version")
	})

	t.Run("checksum mismatch", func(t *testing.T) {
		_, err := LoadClassifier(rewrite(t, func(a map[string]json.RawMessage) {
			a["checksum"] = json.RawMessage(`"` + strings.Repeat("0", 64) + `"`)
		}), nil)
		require.ErrorContains(t, err, "checksum mismatch")
	})

	t.Run("unknown kind", func(t *testing.T) {
		_, err := LoadClassifier(rewrite(t, func(a map[string]json.RawMessage) { a["kind"] = json.RawMessage(`"svm"`) }), nil)
		require.ErrorContains(t, err, "unknown model kind")
	})
}

func TestModelKinds(t *testing.T) {
	assert.Contains(t, ModelKinds(), ForestKind)
	assert.Contains(t, ModelKinds(), BayesKind)

	RegisterModel("custom", func() Model { return NewBayes() })
	m, err := NewModel("custom")
	require.NoError(t, err)
	assert.Equal(t, BayesKind, m.Kind())

	_, err = NewModel("nope")
	require.Error(t, err)
}
