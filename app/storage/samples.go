package storage

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"

	"github.com/umputun/spamshield/app/storage/engine"
	"github.com/umputun/spamshield/lib/shield"
)

// Samples is a storage of labeled training samples added via api. Stored samples join
// the corpus files on the next training, see ExampleSets.
type Samples struct {
	*engine.SQL
	engine.RWLocker
}

// Sample is a stored training sample
type Sample struct {
	ID        int64     `json:"id" db:"id"`
	Platform  string    `json:"platform" db:"platform"`
	Label     string    `json:"label" db:"label"`
	Text      string    `json:"text" db:"text"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// samples-related command constants
const (
	CmdCreateSamplesTable engine.DBCmd = iota + 100
	CmdCreateSamplesIndexes
	CmdAddSample
)

var samplesQueries = engine.NewQueryMap().
	Add(CmdCreateSamplesTable, engine.Query{
		Sqlite: `CREATE TABLE IF NOT EXISTS samples (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			gid TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			platform TEXT NOT NULL,
			label TEXT CHECK (label IN ('ham', 'spam')),
			text TEXT NOT NULL,
			UNIQUE(gid, platform, text)
		)`,
		Postgres: `CREATE TABLE IF NOT EXISTS samples (
			id SERIAL PRIMARY KEY,
			gid TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			platform TEXT NOT NULL,
			label TEXT CHECK (label IN ('ham', 'spam')),
			text TEXT NOT NULL,
			text_hash TEXT GENERATED ALWAYS AS (encode(sha256(text::bytea), 'hex')) STORED,
			UNIQUE(gid, platform, text_hash)
		)`,
	}).
	AddSame(CmdCreateSamplesIndexes, `CREATE INDEX IF NOT EXISTS idx_samples_gid_platform ON samples(gid, platform)`).
	Add(CmdAddSample, engine.Query{
		Sqlite: `INSERT INTO samples (gid, platform, label, text, created_at) VALUES (?, ?, ?, ?, ?)
			ON CONFLICT (gid, platform, text) DO UPDATE SET label = excluded.label, created_at = excluded.created_at`,
		Postgres: `INSERT INTO samples (gid, platform, label, text, created_at) VALUES (?, ?, ?, ?, ?)
			ON CONFLICT (gid, platform, text_hash) DO UPDATE SET label = EXCLUDED.label, created_at = EXCLUDED.created_at`,
	})

// NewSamples creates a new Samples storage
func NewSamples(ctx context.Context, db *engine.SQL) (*Samples, error) {
	if db == nil {
		return nil, fmt.Errorf("db connection is nil")
	}
	res := &Samples{SQL: db, RWLocker: db.MakeLock()}
	cfg := engine.TableConfig{Name: "samples", CreateTable: CmdCreateSamplesTable,
		CreateIndexes: CmdCreateSamplesIndexes, QueriesMap: samplesQueries}
	if err := engine.InitTable(ctx, db, cfg); err != nil {
		return nil, fmt.Errorf("failed to init samples storage: %w", err)
	}
	return res, nil
}

// Add stores a sample, the same text on the same platform is updated with the new label
func (s *Samples) Add(ctx context.Context, platform string, label shield.Label, text string) (Sample, error) {
	platform = strings.ToLower(strings.TrimSpace(platform))
	if platform == "" {
		return Sample{}, fmt.Errorf("platform can't be empty")
	}
	if strings.TrimSpace(text) == "" {
		return Sample{}, fmt.Errorf("text can't be empty")
	}

	s.Lock()
	defer s.Unlock()

	query, err := samplesQueries.Pick(s.Type(), CmdAddSample)
	if err != nil {
		return Sample{}, fmt.Errorf("failed to get query: %w", err)
	}
	ts := time.Now().UTC().Truncate(time.Millisecond)
	if _, err = s.ExecContext(ctx, query, s.GID(), platform, label.String(), text, ts); err != nil {
		return Sample{}, fmt.Errorf("failed to add sample: %w", err)
	}

	var res Sample
	err = s.GetContext(ctx, &res, s.Adopt(`SELECT id, platform, label, text, created_at FROM samples
		WHERE gid = ? AND platform = ? AND text = ?`), s.GID(), platform, text)
	if err != nil {
		return Sample{}, fmt.Errorf("failed to read added sample: %w", err)
	}
	log.Printf("[DEBUG] sample %d added, %s/%s", res.ID, platform, res.Label)
	return res, nil
}

// Delete removes a sample by id, ErrNotFound if no such sample
func (s *Samples) Delete(ctx context.Context, id int64) error {
	s.Lock()
	defer s.Unlock()

	res, err := s.ExecContext(ctx, s.Adopt(`DELETE FROM samples WHERE gid = ? AND id = ?`), s.GID(), id)
	if err != nil {
		return fmt.Errorf("failed to remove sample: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("sample %d: %w", id, ErrNotFound)
	}
	return nil
}

// List returns samples of the platform, all platforms if empty, newest first
func (s *Samples) List(ctx context.Context, platform string) ([]Sample, error) {
	s.RLock()
	defer s.RUnlock()

	query := `SELECT id, platform, label, text, created_at FROM samples WHERE gid = ?`
	args := []any{s.GID()}
	if platform != "" {
		query += ` AND platform = ?`
		args = append(args, strings.ToLower(platform))
	}
	query += ` ORDER BY created_at DESC, id DESC`

	res := []Sample{}
	if err := s.SelectContext(ctx, &res, s.Adopt(query), args...); err != nil {
		return nil, fmt.Errorf("failed to get samples: %w", err)
	}
	for i := range res {
		res[i].CreatedAt = res[i].CreatedAt.Local()
	}
	return res, nil
}

// ExampleSets implements shield.CorpusSource, one set per platform in platform order.
// Rows with unknown labels reported as DataLoadError of the platform and skipped.
func (s *Samples) ExampleSets(ctx context.Context) ([]shield.ExampleSet, error) {
	s.RLock()
	defer s.RUnlock()

	var rows []Sample
	query := s.Adopt(`SELECT id, platform, label, text, created_at FROM samples WHERE gid = ? ORDER BY platform, id`)
	if err := s.SelectContext(ctx, &rows, query, s.GID()); err != nil {
		return nil, fmt.Errorf("failed to get samples: %w", err)
	}

	var res []shield.ExampleSet
	var errs *multierror.Error
	for _, r := range rows {
		lbl, err := shield.ParseLabel(r.Label)
		if err != nil {
			errs = multierror.Append(errs, &shield.DataLoadError{Platform: r.Platform, Err: err})
			continue
		}
		if len(res) == 0 || res[len(res)-1].Platform != r.Platform {
			res = append(res, shield.ExampleSet{Platform: r.Platform})
		}
		res[len(res)-1].Samples = append(res[len(res)-1].Samples, shield.Sample{Text: r.Text, Label: lbl})
	}
	return res, errs.ErrorOrNil()
}
