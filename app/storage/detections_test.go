package storage

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/spamshield/app/storage/engine"
	"github.com/umputun/spamshield/lib/spamcheck"
)

func TestDetections(t *testing.T) {
	_, err := NewDetections(context.Background(), nil)
	require.Error(t, err)

	forEachEngine(t, func(t *testing.T, db *engine.SQL) {
		ctx := context.Background()
		d, err := NewDetections(ctx, db)
		require.NoError(t, err)

		page, err := d.Page(ctx, 1, 10)
		require.NoError(t, err)
		assert.Equal(t, spamcheck.HistoryPage{History: []spamcheck.Detection{}, Total: 0, Pages: 1, CurrentPage: 1}, page)

		base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
		for i := 0; i < 12; i++ {
			id, err := d.Write(ctx, spamcheck.Detection{Content: fmt.Sprintf("msg %d", i), Platform: "sms",
				Prediction: "spam", Confidence: 0.9, Fallback: i%2 == 0, ModelID: "m1", CreatedAt: base.Add(time.Duration(i) * time.Minute)})
			require.NoError(t, err)
			assert.NotZero(t, id)
		}

		page, err = d.Page(ctx, 1, 5)
		require.NoError(t, err)
		assert.Equal(t, 12, page.Total)
		assert.Equal(t, 3, page.Pages)
		assert.Equal(t, 1, page.CurrentPage)
		require.Len(t, page.History, 5)
		assert.Equal(t, "msg 11", page.History[0].Content, "newest first")
		assert.Equal(t, "msg 7", page.History[4].Content)
		assert.True(t, page.History[1].Fallback)
		assert.Equal(t, "m1", page.History[0].ModelID)
		assert.True(t, base.Add(11*time.Minute).Equal(page.History[0].CreatedAt))

		page, err = d.Page(ctx, 3, 5)
		require.NoError(t, err)
		require.Len(t, page.History, 2)
		assert.Equal(t, "msg 0", page.History[1].Content)

		page, err = d.Page(ctx, 10, 5)
		require.NoError(t, err)
		assert.Empty(t, page.History)
		assert.Equal(t, 12, page.Total)
	})
}

func TestDetections_WriteDefaultTime(t *testing.T) {
	ctx := context.Background()
	db, err := engine.NewSqlite(":memory:", "gr1")
	require.NoError(t, err)
	defer db.Close()
	d, err := NewDetections(ctx, db)
	require.NoError(t, err)

	_, err = d.Write(ctx, spamcheck.Detection{Content: "hi", Platform: "email", Prediction: "ham", Confidence: 0.8})
	require.NoError(t, err)
	page, err := d.Page(ctx, 0, 0)
	require.NoError(t, err)
	require.Len(t, page.History, 1)
	assert.WithinDuration(t, time.Now(), page.History[0].CreatedAt, time.Minute)
}

func TestDetections_Stats(t *testing.T) {
	forEachEngine(t, func(t *testing.T, db *engine.SQL) {
		ctx := context.Background()
		d, err := NewDetections(ctx, db)
		require.NoError(t, err)

		day := time.Now().UTC().Truncate(24 * time.Hour).Add(12 * time.Hour)
		write := func(ts time.Time, prediction string) {
			_, err := d.Write(ctx, spamcheck.Detection{Content: "x", Platform: "sms", Prediction: prediction, CreatedAt: ts})
			require.NoError(t, err)
		}
		write(day.Add(-30*24*time.Hour), "spam") // too old
		write(day.Add(-24*time.Hour), "spam")
		write(day.Add(-24*time.Hour), "spam")
		write(day.Add(-24*time.Hour), "ham")
		write(day, "ham")

		stats, err := d.Stats(ctx, day.Add(-7*24*time.Hour))
		require.NoError(t, err)
		yesterday, today := day.Add(-24*time.Hour).Format("2006-01-02"), day.Format("2006-01-02")
		assert.Equal(t, []DailyStats{
			{Date: yesterday, Prediction: "ham", Count: 1},
			{Date: yesterday, Prediction: "spam", Count: 2},
			{Date: today, Prediction: "ham", Count: 1},
		}, stats)
	})
}

func TestDetections_StatsSqliteTimeFormats(t *testing.T) {
	db, err := engine.NewSqlite(":memory:", "gr1")
	require.NoError(t, err)
	defer db.Close()
	ctx := context.Background()
	d, err := NewDetections(ctx, db)
	require.NoError(t, err)

	// bound go time value and the column default
	ts := time.Date(2026, 3, 14, 23, 59, 59, 500_000_000, time.UTC)
	_, err = d.Write(ctx, spamcheck.Detection{Content: "x", Platform: "sms", Prediction: "spam", CreatedAt: ts})
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, `INSERT INTO detections (gid, content, platform, prediction, confidence, created_at)
		VALUES ('gr1', 'y', 'sms', 'ham', 0.7, '2026-03-15 08:00:00')`)
	require.NoError(t, err)

	stats, err := d.Stats(ctx, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, []DailyStats{
		{Date: "2026-03-14", Prediction: "spam", Count: 1},
		{Date: "2026-03-15", Prediction: "ham", Count: 1},
	}, stats)
}
