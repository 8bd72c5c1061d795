package postgresengine_test

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/AntonStoeckl/genevent-go/genevent/postgresengine/internal/adapters"
)

var errFakeDB = errors.New("fake database failure")

// fakeDB records the statements it receives and answers queries with canned rows.
type fakeDB struct {
	queries      []string
	statements   []string
	rows         [][]any
	queryErr     error
	execErr      error
	rowsAffected int64
	useAffected  bool
}

func (f *fakeDB) Query(_ context.Context, query string) (adapters.DBRows, error) {
	f.queries = append(f.queries, query)

	if f.queryErr != nil {
		return nil, f.queryErr
	}

	return &fakeRows{rows: f.rows, index: -1}, nil
}

func (f *fakeDB) Exec(_ context.Context, query string) (adapters.DBResult, error) {
	f.statements = append(f.statements, query)

	if f.execErr != nil {
		return nil, f.execErr
	}

	return fakeResult{rowsAffected: f.rowsAffected, useAffected: f.useAffected, statement: query}, nil
}

type fakeRows struct {
	rows  [][]any
	index int
}

func (r *fakeRows) Next() bool {
	r.index++
	return r.index < len(r.rows)
}

func (r *fakeRows) Scan(dest ...any) error {
	row := r.rows[r.index]
	if len(row) != len(dest) {
		return errFakeDB
	}

	for i, target := range dest {
		switch typed := target.(type) {
		case *int64:
			*typed = row[i].(int64)
		case *string:
			*typed = row[i].(string)
		case *time.Time:
			*typed = row[i].(time.Time)
		case *[]byte:
			*typed = row[i].([]byte)
		default:
			return errFakeDB
		}
	}

	return nil
}

func (r *fakeRows) Err() error {
	return nil
}

func (r *fakeRows) Close() error {
	return nil
}

// fakeResult reports one affected row per VALUES tuple unless useAffected is set.
type fakeResult struct {
	rowsAffected int64
	useAffected  bool
	statement    string
}

func (r fakeResult) RowsAffected() (int64, error) {
	if r.useAffected {
		return r.rowsAffected, nil
	}

	return int64(strings.Count(r.statement, "::jsonb)")), nil
}
