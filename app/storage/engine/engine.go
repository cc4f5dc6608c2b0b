// Package engine provides sql database engines for storage, sqlite and postgres,
// with dialect-specific queries and table initialization.
package engine

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"  // postgres driver loaded here
	_ "modernc.org/sqlite" // sqlite driver loaded here
)

// Type is a type of database engine
type Type string

// enum of supported database engines
const (
	Unknown  Type = ""
	Sqlite   Type = "sqlite"
	Postgres Type = "postgres"
)

// SQL is a wrapper for sqlx.DB with type.
// Type allows distinguishing between different database engines.
type SQL struct {
	sqlx.DB
	gid    string // group id, to allow several services sharing the same database
	dbType Type
}

// New makes a database engine for the url. Postgres urls start with "postgres://" or "postgresql://",
// everything else is a sqlite file, optionally prefixed with "file:" or "sqlite://".
func New(ctx context.Context, url, gid string) (*SQL, error) {
	switch {
	case url == "":
		return nil, fmt.Errorf("empty database url")
	case strings.HasPrefix(url, "postgres://"), strings.HasPrefix(url, "postgresql://"):
		return NewPostgres(ctx, url, gid)
	case strings.HasPrefix(url, "sqlite://"):
		return NewSqlite(strings.TrimPrefix(url, "sqlite://"), gid)
	case strings.HasPrefix(url, "file://"):
		return NewSqlite(strings.TrimPrefix(url, "file://"), gid)
	case strings.HasPrefix(url, "file:"):
		return NewSqlite(strings.TrimPrefix(url, "file:"), gid)
	}
	return NewSqlite(url, gid)
}

// NewSqlite creates a new sqlite database
func NewSqlite(file, gid string) (*SQL, error) {
	db, err := sqlx.Connect("sqlite", file)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to sqlite %s: %w", file, err)
	}
	if file == ":memory:" {
		// each connection to in-memory sqlite is a separate database
		db.SetMaxOpenConns(1)
	}
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		return nil, fmt.Errorf("failed to set sqlite pragma: %w", err)
	}
	return &SQL{DB: *db, gid: gid, dbType: Sqlite}, nil
}

// NewPostgres creates a new postgres database
func NewPostgres(ctx context.Context, connURL, gid string) (*SQL, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", connURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	return &SQL{DB: *db, gid: gid, dbType: Postgres}, nil
}

// GID returns the group id
func (e *SQL) GID() string {
	return e.gid
}

// Type returns the database engine type
func (e *SQL) Type() Type {
	return e.dbType
}

// Adopt converts "?" placeholders of the query to the engine dialect
func (e *SQL) Adopt(query string) string {
	if e.dbType == Postgres {
		return sqlx.Rebind(sqlx.DOLLAR, query)
	}
	return query
}

// MakeLock creates a new lock for the database engine, sqlite writes are serialized
func (e *SQL) MakeLock() RWLocker {
	if e.dbType == Sqlite {
		return new(sync.RWMutex)
	}
	return &NoopLocker{}
}

// TableConfig describes a table created by InitTable
type TableConfig struct {
	Name          string
	CreateTable   DBCmd
	CreateIndexes DBCmd // optional, skipped if not in QueriesMap
	QueriesMap    *QueryMap
}

// InitTable creates the table and its indexes if missing, in a transaction
func InitTable(ctx context.Context, db *SQL, cfg TableConfig) error {
	if db == nil {
		return fmt.Errorf("db connection is nil")
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	createTable, err := cfg.QueriesMap.Pick(db.Type(), cfg.CreateTable)
	if err != nil {
		return fmt.Errorf("failed to get create table query for %s: %w", cfg.Name, err)
	}
	if _, err = tx.ExecContext(ctx, createTable); err != nil {
		return fmt.Errorf("failed to create %s table: %w", cfg.Name, err)
	}

	if cfg.QueriesMap.Has(cfg.CreateIndexes) {
		createIndexes, err := cfg.QueriesMap.Pick(db.Type(), cfg.CreateIndexes)
		if err != nil {
			return fmt.Errorf("failed to get create indexes query for %s: %w", cfg.Name, err)
		}
		if _, err = tx.ExecContext(ctx, createIndexes); err != nil {
			return fmt.Errorf("failed to create indexes for %s: %w", cfg.Name, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// RWLocker is a read-write locker interface
type RWLocker interface {
	sync.Locker
	RLock()
	RUnlock()
}

// NoopLocker is a locker for engines handling concurrent writes themselves
type NoopLocker struct{}

// Lock is a no-op
func (NoopLocker) Lock() {}

// Unlock is a no-op
func (NoopLocker) Unlock() {}

// RLock is a no-op
func (NoopLocker) RLock() {}

// RUnlock is a no-op
func (NoopLocker) RUnlock() {}
