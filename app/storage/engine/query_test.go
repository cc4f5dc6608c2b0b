package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryMap(t *testing.T) {
	qmap := NewQueryMap().
		Add(1, Query{
			Sqlite:   "INSERT OR IGNORE INTO test VALUES (?, ?)",
			Postgres: "INSERT INTO test VALUES (?, ?) ON CONFLICT DO NOTHING",
		}).
		AddSame(2, "SELECT * FROM test WHERE id = ? AND gid = ?")

	tests := []struct {
		name    string
		dbType  Type
		cmd     DBCmd
		want    string
		wantErr bool
	}{
		{name: "sqlite dialect", dbType: Sqlite, cmd: 1, want: "INSERT OR IGNORE INTO test VALUES (?, ?)"},
		{name: "postgres dialect rebound", dbType: Postgres, cmd: 1, want: "INSERT INTO test VALUES ($1, $2) ON CONFLICT DO NOTHING"},
		{name: "same for sqlite", dbType: Sqlite, cmd: 2, want: "SELECT * FROM test WHERE id = ? AND gid = ?"},
		{name: "same for postgres", dbType: Postgres, cmd: 2, want: "SELECT * FROM test WHERE id = $1 AND gid = $2"},
		{name: "unknown db type", dbType: Unknown, cmd: 1, wantErr: true},
		{name: "unknown command", dbType: Sqlite, cmd: 99, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := qmap.Pick(tt.dbType, tt.cmd)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	assert.True(t, qmap.Has(1))
	assert.False(t, qmap.Has(3))
}
