package engine

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	temp := t.TempDir()
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{name: "in-memory sqlite", url: ":memory:"},
		{name: "file:// prefix", url: "file://" + filepath.Join(temp, "file1.db")},
		{name: "file: prefix", url: "file:" + filepath.Join(temp, "file2.db")},
		{name: "sqlite:// prefix", url: "sqlite://" + filepath.Join(temp, "file3.db")},
		{name: "plain path", url: filepath.Join(temp, "file4.sqlite")},
		{name: "empty", url: "", wantErr: true},
		{name: "bad sqlite path", url: filepath.Join(temp, "no-such-dir", "x.db"), wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, err := New(context.Background(), tt.url, "gr1")
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			defer db.Close()
			assert.Equal(t, Sqlite, db.Type())
			assert.Equal(t, "gr1", db.GID())
			require.NoError(t, db.Ping())
		})
	}
}

func TestMakeLock(t *testing.T) {
	db, err := NewSqlite(":memory:", "gr1")
	require.NoError(t, err)
	defer db.Close()
	_, ok := db.MakeLock().(*sync.RWMutex)
	assert.True(t, ok, "sqlite uses mutex")

	_, ok = (&SQL{dbType: Postgres}).MakeLock().(*NoopLocker)
	assert.True(t, ok, "postgres uses noop")

	var l NoopLocker
	l.Lock()
	l.RLock()
	l.RUnlock()
	l.Unlock()
}

func TestAdopt(t *testing.T) {
	q := "SELECT * FROM t WHERE a = ? AND b = ?"
	assert.Equal(t, q, (&SQL{dbType: Sqlite}).Adopt(q))
	assert.Equal(t, "SELECT * FROM t WHERE a = $1 AND b = $2", (&SQL{dbType: Postgres}).Adopt(q))
}

func TestInitTable(t *testing.T) {
	db, err := NewSqlite(":memory:", "gr1")
	require.NoError(t, err)
	defer db.Close()

	queries := NewQueryMap().
		AddSame(1, "CREATE TABLE IF NOT EXISTS things (id INTEGER PRIMARY KEY, name TEXT)").
		AddSame(2, "CREATE INDEX IF NOT EXISTS idx_things_name ON things(name)")
	cfg := TableConfig{Name: "things", CreateTable: 1, CreateIndexes: 2, QueriesMap: queries}
	require.NoError(t, InitTable(context.Background(), db, cfg))
	require.NoError(t, InitTable(context.Background(), db, cfg), "repeated init is fine")

	var count int
	require.NoError(t, db.Get(&count, "SELECT COUNT(*) FROM sqlite_master WHERE type='index' AND name='idx_things_name'"))
	assert.Equal(t, 1, count)

	t.Run("no indexes", func(t *testing.T) {
		cfg := TableConfig{Name: "things", CreateTable: 1, CreateIndexes: 10, QueriesMap: queries}
		require.NoError(t, InitTable(context.Background(), db, cfg))
	})

	t.Run("broken schema", func(t *testing.T) {
		q := NewQueryMap().AddSame(1, "CREATE TABLE broken (")
		require.Error(t, InitTable(context.Background(), db, TableConfig{Name: "broken", CreateTable: 1, QueriesMap: q}))
	})

	t.Run("nil db", func(t *testing.T) {
		require.Error(t, InitTable(context.Background(), nil, cfg))
	})
}
