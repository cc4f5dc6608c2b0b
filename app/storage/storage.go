// Package storage provides persistent storage of training logs, detection history and
// labeled training samples. Each table is represented by a struct with methods implementing
// business logic for this data type. Sqlite and postgres engines are supported.
package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/umputun/spamshield/app/storage/engine"
)

// ErrNotFound returned when a record with the given id doesn't exist
var ErrNotFound = errors.New("not found")

// insertID runs insert query and returns id of the new record. Postgres has no LastInsertId,
// "RETURNING id" is used instead.
func insertID(ctx context.Context, db *engine.SQL, query string, args ...any) (int64, error) {
	if db.Type() == engine.Postgres {
		var id int64
		if err := db.GetContext(ctx, &id, db.Adopt(query)+" RETURNING id", args...); err != nil {
			return 0, err
		}
		return id, nil
	}
	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("can't get inserted id: %w", err)
	}
	return id, nil
}

// pageBounds returns normalized page, per-page and offset
func pageBounds(page, perPage int) (p, pp, offset int) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}
	if perPage > 100 {
		perPage = 100
	}
	return page, perPage, (page - 1) * perPage
}
