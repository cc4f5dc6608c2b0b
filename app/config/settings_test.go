package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettings_Defaults(t *testing.T) {
	s := New()
	require.NoError(t, s.Validate())
	assert.Equal(t, 0.25, s.Model.SubsampleFraction)
	assert.Equal(t, uint64(42), s.Model.Seed)
	assert.Equal(t, 0.9, s.Fallback.SpamProbability)
	assert.Equal(t, 0.8, s.Fallback.HamProbability)
	assert.Equal(t, "forest", s.Model.Kind)
	assert.Equal(t, 100, s.Server.RateLimit)
	assert.False(t, s.IsOpenAIEnabled())
	assert.False(t, s.IsGeminiEnabled())
}

func TestSettings_Load(t *testing.T) {
	dir := t.TempDir()
	write := func(t *testing.T, body string) string {
		p := filepath.Join(dir, t.Name()[len("TestSettings_Load/"):]+".yml")
		require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
		return p
	}

	t.Run("overlay", func(t *testing.T) {
		s := New()
		s.Server.ListenAddr = ":9000" // set by cli, not in file
		p := write(t, "model:\n  kind: bayes\n  seed: 7\n  train_timeout: 30s\nfallback:\n  spam_probability: 0.75\nopenai:\n  token: secret\n")
		require.NoError(t, s.Load(p))
		assert.Equal(t, "bayes", s.Model.Kind)
		assert.Equal(t, uint64(7), s.Model.Seed)
		assert.Equal(t, 30*time.Second, s.Model.TrainTimeout)
		assert.Equal(t, 100, s.Model.Trees, "kept default")
		assert.Equal(t, 0.75, s.Fallback.SpamProbability)
		assert.Equal(t, 0.8, s.Fallback.HamProbability)
		assert.Equal(t, ":9000", s.Server.ListenAddr)
		assert.Equal(t, p, s.Transient.ConfigFile)
		assert.True(t, s.IsOpenAIEnabled())
		assert.Equal(t, []string{"secret"}, s.Secrets())
	})

	t.Run("empty", func(t *testing.T) {
		s := New()
		require.NoError(t, s.Load(write(t, "")))
		assert.Equal(t, New().Model, s.Model)
	})

	t.Run("unknown key", func(t *testing.T) {
		err := New().Load(write(t, "model:\n  blah: 1\n"))
		require.ErrorContains(t, err, "can't parse config")
	})

	t.Run("invalid values", func(t *testing.T) {
		err := New().Load(write(t, "model:\n  kind: svm\n  subsample_fraction: 2\nfallback:\n  ham_probability: -1\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown model kind")
		assert.Contains(t, err.Error(), "subsample fraction")
		assert.Contains(t, err.Error(), "fallback ham probability")
	})

	t.Run("missing file", func(t *testing.T) {
		require.Error(t, New().Load(filepath.Join(dir, "nope.yml")))
	})
}

func TestSettings_SaveLoad(t *testing.T) {
	s := New()
	s.Model.Kind = "bayes"
	s.Gemini.Token = "g-token"
	s.Files.RetrainInterval = time.Hour
	s.Transient.Dbg = true
	p := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, s.Save(p))

	data, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Contains(t, string(data), "retrain_interval: 1h0m0s")
	assert.NotContains(t, string(data), "dbg")

	s2 := &Settings{}
	require.NoError(t, s2.Load(p))
	s2.Transient = TransientSettings{}
	s.Transient = TransientSettings{}
	assert.Equal(t, s, s2)
}

func TestSettings_JSON(t *testing.T) {
	s := New()
	s.Transient.Dbg = true
	data, err := json.Marshal(s)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"subsample_fraction":0.25`)
	assert.NotContains(t, string(data), "Transient")
}
