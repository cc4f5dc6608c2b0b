package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/umputun/spamshield/app/storage/engine"
	"github.com/umputun/spamshield/lib/spamcheck"
)

// Detections is a storage of detection history
type Detections struct {
	*engine.SQL
	engine.RWLocker
}

// detections command constants
const (
	CmdCreateDetectionsTable engine.DBCmd = iota + 300
	CmdCreateDetectionsIndexes
	CmdDetectionsStats
)

// DailyStats is a number of detections per day and prediction
type DailyStats struct {
	Date       string `json:"date" db:"day"`
	Prediction string `json:"prediction" db:"prediction"`
	Count      int    `json:"count" db:"cnt"`
}

var detectionsQueries = engine.NewQueryMap().
	Add(CmdCreateDetectionsTable, engine.Query{
		Sqlite: `CREATE TABLE IF NOT EXISTS detections (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			gid TEXT NOT NULL DEFAULT '',
			content TEXT NOT NULL,
			platform TEXT NOT NULL,
			prediction TEXT NOT NULL,
			confidence REAL NOT NULL,
			fallback BOOLEAN NOT NULL DEFAULT FALSE,
			model_id TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		Postgres: `CREATE TABLE IF NOT EXISTS detections (
			id SERIAL PRIMARY KEY,
			gid TEXT NOT NULL DEFAULT '',
			content TEXT NOT NULL,
			platform TEXT NOT NULL,
			prediction TEXT NOT NULL,
			confidence DOUBLE PRECISION NOT NULL,
			fallback BOOLEAN NOT NULL DEFAULT FALSE,
			model_id TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
	}).
	AddSame(CmdCreateDetectionsIndexes, `CREATE INDEX IF NOT EXISTS idx_detections_gid_created ON detections(gid, created_at)`).
	// sqlite keeps created_at as text starting with the date, both for bound time values and the default
	Add(CmdDetectionsStats, engine.Query{
		Sqlite: `SELECT substr(created_at, 1, 10) AS day, prediction, COUNT(*) AS cnt FROM detections
			WHERE gid = ? AND created_at >= ? GROUP BY day, prediction ORDER BY day, prediction`,
		Postgres: `SELECT to_char(created_at, 'YYYY-MM-DD') AS day, prediction, COUNT(*) AS cnt FROM detections
			WHERE gid = ? AND created_at >= ? GROUP BY day, prediction ORDER BY day, prediction`,
	})

// NewDetections creates a new Detections storage
func NewDetections(ctx context.Context, db *engine.SQL) (*Detections, error) {
	if db == nil {
		return nil, fmt.Errorf("db connection is nil")
	}
	res := &Detections{SQL: db, RWLocker: db.MakeLock()}
	cfg := engine.TableConfig{Name: "detections", CreateTable: CmdCreateDetectionsTable,
		CreateIndexes: CmdCreateDetectionsIndexes, QueriesMap: detectionsQueries}
	if err := engine.InitTable(ctx, db, cfg); err != nil {
		return nil, fmt.Errorf("failed to init detections storage: %w", err)
	}
	return res, nil
}

// Write stores a detection and returns its id, CreatedAt set to now if zero
func (s *Detections) Write(ctx context.Context, d spamcheck.Detection) (int64, error) {
	if d.CreatedAt.IsZero() {
		d.CreatedAt = time.Now()
	}
	s.Lock()
	defer s.Unlock()
	id, err := insertID(ctx, s.SQL, `INSERT INTO detections (gid, content, platform, prediction, confidence, fallback,
		model_id, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`, s.GID(), d.Content, d.Platform, d.Prediction,
		d.Confidence, d.Fallback, d.ModelID, d.CreatedAt.UTC().Truncate(time.Millisecond))
	if err != nil {
		return 0, fmt.Errorf("failed to write detection: %w", err)
	}
	return id, nil
}

// Page returns a page of detections, newest first. Page numbers start from 1.
func (s *Detections) Page(ctx context.Context, page, perPage int) (spamcheck.HistoryPage, error) {
	page, perPage, offset := pageBounds(page, perPage)
	s.RLock()
	defer s.RUnlock()

	var total int
	if err := s.GetContext(ctx, &total, s.Adopt(`SELECT COUNT(*) FROM detections WHERE gid = ?`), s.GID()); err != nil {
		return spamcheck.HistoryPage{}, fmt.Errorf("failed to count detections: %w", err)
	}

	res := spamcheck.HistoryPage{History: []spamcheck.Detection{}, Total: total,
		Pages: spamcheck.Pages(total, perPage), CurrentPage: page}
	query := s.Adopt(`SELECT id, content, platform, prediction, confidence, fallback, model_id, created_at
		FROM detections WHERE gid = ? ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`)
	if err := s.SelectContext(ctx, &res.History, query, s.GID(), perPage, offset); err != nil {
		return spamcheck.HistoryPage{}, fmt.Errorf("failed to get detections: %w", err)
	}
	for i := range res.History {
		res.History[i].CreatedAt = res.History[i].CreatedAt.Local()
	}
	return res, nil
}

// Stats returns detection counts per day and prediction since the given time, oldest day first
func (s *Detections) Stats(ctx context.Context, since time.Time) ([]DailyStats, error) {
	query, err := detectionsQueries.Pick(s.Type(), CmdDetectionsStats)
	if err != nil {
		return nil, fmt.Errorf("failed to get query: %w", err)
	}
	s.RLock()
	defer s.RUnlock()
	res := []DailyStats{}
	if err := s.SelectContext(ctx, &res, query, s.GID(), since.UTC()); err != nil {
		return nil, fmt.Errorf("failed to get detection stats: %w", err)
	}
	return res, nil
}
