package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/umputun/spamshield/app/storage/engine"
	"github.com/umputun/spamshield/lib/shield"
)

// TrainingLogs is a storage of training runs
type TrainingLogs struct {
	*engine.SQL
	engine.RWLocker
}

// TrainingLog is a record of a training run
type TrainingLog struct {
	ID              int64     `json:"id" db:"id"`
	TrainingDate    time.Time `json:"training_date" db:"training_date"`
	Accuracy        float64   `json:"accuracy" db:"accuracy"`
	Precision       float64   `json:"precision" db:"precision_score"`
	Recall          float64   `json:"recall" db:"recall"`
	F1Score         float64   `json:"f1_score" db:"f1_score"`
	TrainingSamples int       `json:"training_samples" db:"training_samples"`
	Duration        float64   `json:"duration" db:"duration"` // seconds
	Status          string    `json:"status" db:"status"`
	Notes           string    `json:"notes" db:"notes"`
	ModelID         string    `json:"model_id,omitempty" db:"model_id"`
}

// training logs command constants
const (
	CmdCreateTrainingLogsTable engine.DBCmd = iota + 200
	CmdCreateTrainingLogsIndexes
)

var trainingLogsQueries = engine.NewQueryMap().
	Add(CmdCreateTrainingLogsTable, engine.Query{
		Sqlite: `CREATE TABLE IF NOT EXISTS training_logs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			gid TEXT NOT NULL DEFAULT '',
			training_date DATETIME DEFAULT CURRENT_TIMESTAMP,
			accuracy REAL NOT NULL DEFAULT 0,
			precision_score REAL NOT NULL DEFAULT 0,
			recall REAL NOT NULL DEFAULT 0,
			f1_score REAL NOT NULL DEFAULT 0,
			training_samples INTEGER NOT NULL DEFAULT 0,
			duration REAL NOT NULL DEFAULT 0,
			status TEXT CHECK (status IN ('in_progress', 'success', 'failed')),
			notes TEXT NOT NULL DEFAULT '',
			model_id TEXT NOT NULL DEFAULT ''
		)`,
		Postgres: `CREATE TABLE IF NOT EXISTS training_logs (
			id SERIAL PRIMARY KEY,
			gid TEXT NOT NULL DEFAULT '',
			training_date TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			accuracy DOUBLE PRECISION NOT NULL DEFAULT 0,
			precision_score DOUBLE PRECISION NOT NULL DEFAULT 0,
			recall DOUBLE PRECISION NOT NULL DEFAULT 0,
			f1_score DOUBLE PRECISION NOT NULL DEFAULT 0,
			training_samples INTEGER NOT NULL DEFAULT 0,
			duration DOUBLE PRECISION NOT NULL DEFAULT 0,
			status TEXT CHECK (status IN ('in_progress', 'success', 'failed')),
			notes TEXT NOT NULL DEFAULT '',
			model_id TEXT NOT NULL DEFAULT ''
		)`,
	}).
	AddSame(CmdCreateTrainingLogsIndexes, `CREATE INDEX IF NOT EXISTS idx_training_logs_gid_date ON training_logs(gid, training_date)`)

// NewTrainingLogs creates a new TrainingLogs storage
func NewTrainingLogs(ctx context.Context, db *engine.SQL) (*TrainingLogs, error) {
	if db == nil {
		return nil, fmt.Errorf("db connection is nil")
	}
	res := &TrainingLogs{SQL: db, RWLocker: db.MakeLock()}
	cfg := engine.TableConfig{Name: "training_logs", CreateTable: CmdCreateTrainingLogsTable,
		CreateIndexes: CmdCreateTrainingLogsIndexes, QueriesMap: trainingLogsQueries}
	if err := engine.InitTable(ctx, db, cfg); err != nil {
		return nil, fmt.Errorf("failed to init training logs storage: %w", err)
	}
	return res, nil
}

// Start writes an in_progress record and returns its id
func (s *TrainingLogs) Start(ctx context.Context, notes string) (int64, error) {
	s.Lock()
	defer s.Unlock()
	id, err := insertID(ctx, s.SQL, `INSERT INTO training_logs (gid, training_date, status, notes) VALUES (?, ?, ?, ?)`,
		s.GID(), time.Now().UTC().Truncate(time.Millisecond), string(shield.TrainInProgress), notes)
	if err != nil {
		return 0, fmt.Errorf("failed to start training log: %w", err)
	}
	return id, nil
}

// Finish updates the record with the training outcome
func (s *TrainingLogs) Finish(ctx context.Context, id int64, res shield.TrainResult) error {
	s.Lock()
	defer s.Unlock()

	notes := res.Notes
	if notes == "" && res.Status == shield.TrainSuccess {
		notes = "Model training completed successfully"
	}
	if res.Status == shield.TrainFailed {
		notes = "Training failed: " + notes
	}
	m := res.Metrics
	query := s.Adopt(`UPDATE training_logs SET status = ?, accuracy = ?, precision_score = ?, recall = ?, f1_score = ?,
		training_samples = ?, duration = ?, notes = ?, model_id = ? WHERE gid = ? AND id = ?`)
	r, err := s.ExecContext(ctx, query, string(res.Status), m.Accuracy, m.Precision, m.Recall, m.F1, m.SampleCount,
		res.Duration.Seconds(), notes, res.ModelID, s.GID(), id)
	if err != nil {
		return fmt.Errorf("failed to update training log %d: %w", id, err)
	}
	if affected, err := r.RowsAffected(); err == nil && affected == 0 {
		return fmt.Errorf("training log %d: %w", id, ErrNotFound)
	}
	return nil
}

// List returns up to limit last training logs, newest first
func (s *TrainingLogs) List(ctx context.Context, limit int) ([]TrainingLog, error) {
	if limit <= 0 {
		limit = 50
	}
	s.RLock()
	defer s.RUnlock()

	res := []TrainingLog{}
	query := s.Adopt(`SELECT id, training_date, accuracy, precision_score, recall, f1_score, training_samples, duration,
		status, notes, model_id FROM training_logs WHERE gid = ? ORDER BY training_date DESC, id DESC LIMIT ?`)
	if err := s.SelectContext(ctx, &res, query, s.GID(), limit); err != nil {
		return nil, fmt.Errorf("failed to get training logs: %w", err)
	}
	for i := range res {
		res[i].TrainingDate = res[i].TrainingDate.Local()
	}
	return res, nil
}
