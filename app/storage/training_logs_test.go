package storage

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/spamshield/app/storage/engine"
	"github.com/umputun/spamshield/lib/shield"
)

func TestTrainingLogs(t *testing.T) {
	_, err := NewTrainingLogs(context.Background(), nil)
	require.Error(t, err)

	forEachEngine(t, func(t *testing.T, db *engine.SQL) {
		ctx := context.Background()
		tl, err := NewTrainingLogs(ctx, db)
		require.NoError(t, err)

		logs, err := tl.List(ctx, 10)
		require.NoError(t, err)
		assert.Empty(t, logs)

		id1, err := tl.Start(ctx, "")
		require.NoError(t, err)
		logs, err = tl.List(ctx, 10)
		require.NoError(t, err)
		require.Len(t, logs, 1)
		assert.Equal(t, "in_progress", logs[0].Status)

		err = tl.Finish(ctx, id1, shield.TrainResult{Status: shield.TrainSuccess, ModelID: "m1", Duration: 1500 * time.Millisecond,
			Metrics: shield.Metrics{Accuracy: 0.9, Precision: 0.8, Recall: 0.7, F1: 0.75, SampleCount: 24}})
		require.NoError(t, err)

		time.Sleep(5 * time.Millisecond) // distinct training_date
		id2, err := tl.Start(ctx, "manual")
		require.NoError(t, err)
		require.NoError(t, tl.Finish(ctx, id2, shield.TrainResult{Status: shield.TrainFailed, Notes: "no data"}))

		logs, err = tl.List(ctx, 10)
		require.NoError(t, err)
		require.Len(t, logs, 2)
		assert.Equal(t, id2, logs[0].ID, "newest first")
		assert.Equal(t, "failed", logs[0].Status)
		assert.Equal(t, "Training failed: no data", logs[0].Notes)

		ok := logs[1]
		assert.Equal(t, "success", ok.Status)
		assert.Equal(t, "Model training completed successfully", ok.Notes)
		assert.InDelta(t, 0.9, ok.Accuracy, 1e-9)
		assert.InDelta(t, 0.8, ok.Precision, 1e-9)
		assert.InDelta(t, 0.7, ok.Recall, 1e-9)
		assert.InDelta(t, 0.75, ok.F1Score, 1e-9)
		assert.Equal(t, 24, ok.TrainingSamples)
		assert.InDelta(t, 1.5, ok.Duration, 1e-9)
		assert.Equal(t, "m1", ok.ModelID)

		logs, err = tl.List(ctx, 1)
		require.NoError(t, err)
		assert.Len(t, logs, 1)

		require.ErrorIs(t, tl.Finish(ctx, 12345, shield.TrainResult{Status: shield.TrainSuccess}), ErrNotFound)
	})
}

func TestTrainingLog_JSON(t *testing.T) {
	l := TrainingLog{ID: 1, Accuracy: 0.5, Precision: 0.4, Recall: 0.3, F1Score: 0.2, TrainingSamples: 10,
		Duration: 2, Status: "success", Notes: "ok"}
	data, err := json.Marshal(l)
	require.NoError(t, err)
	var m map[string]any
	require.NoError(t, json.Unmarshal(data, &m))
	for _, k := range []string{"id", "training_date", "accuracy", "precision", "recall", "f1_score", "training_samples",
		"duration", "status", "notes"} {
		assert.Contains(t, m, k)
	}
	assert.NotContains(t, m, "model_id")
}
