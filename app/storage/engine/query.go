package engine

import (
	"fmt"

	"github.com/jmoiron/sqlx"
)

// DBCmd represents a database command type
type DBCmd int

// Query represents a SQL query with dialect-specific variants.
// Queries use "?" placeholders, rebound to "$n" for postgres by Pick.
type Query struct {
	Sqlite   string
	Postgres string
}

// QueryMap represents mapping between commands and their SQL queries
type QueryMap struct {
	queries map[DBCmd]Query
}

// NewQueryMap creates a new QueryMap
func NewQueryMap() *QueryMap {
	return &QueryMap{queries: make(map[DBCmd]Query)}
}

// Add adds queries for a command with dialect-specific versions
func (q *QueryMap) Add(cmd DBCmd, query Query) *QueryMap {
	q.queries[cmd] = query
	return q
}

// AddSame adds the same query for all dialects
func (q *QueryMap) AddSame(cmd DBCmd, query string) *QueryMap {
	return q.Add(cmd, Query{Sqlite: query, Postgres: query})
}

// Has checks if the command is in the map
func (q *QueryMap) Has(cmd DBCmd) bool {
	_, ok := q.queries[cmd]
	return ok
}

// Pick returns a query for given db type and command, with placeholders of the dialect
func (q *QueryMap) Pick(dbType Type, cmd DBCmd) (string, error) {
	query, ok := q.queries[cmd]
	if !ok {
		return "", fmt.Errorf("unsupported command type %d", cmd)
	}

	switch dbType {
	case Sqlite:
		return query.Sqlite, nil
	case Postgres:
		return sqlx.Rebind(sqlx.DOLLAR, query.Postgres), nil
	default:
		return "", fmt.Errorf("unsupported database type %q", dbType)
	}
}
