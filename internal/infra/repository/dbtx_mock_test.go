//go:build unit

package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/mock"
)

type MockDBTX struct {
	mock.Mock
}

func (m *MockDBTX) Exec(ctx context.Context, query string, args ...interface{}) (pgconn.CommandTag, error) {
	mockArgs := m.Called(ctx, query, args)
	return mockArgs.Get(0).(pgconn.CommandTag), mockArgs.Error(1)
}

func (m *MockDBTX) Query(ctx context.Context, query string, args ...interface{}) (pgx.Rows, error) {
	mockArgs := m.Called(ctx, query, args)
	return mockArgs.Get(0).(pgx.Rows), mockArgs.Error(1)
}

func (m *MockDBTX) QueryRow(ctx context.Context, query string, args ...interface{}) pgx.Row {
	mockArgs := m.Called(ctx, query, args)
	return mockArgs.Get(0).(pgx.Row)
}

// emptyRows yields no rows and reports err once iteration stops.
type emptyRows struct {
	err error
}

func (r *emptyRows) Close()                                       {}
func (r *emptyRows) Err() error                                   { return r.err }
func (r *emptyRows) CommandTag() pgconn.CommandTag                { return pgconn.NewCommandTag("SELECT 0") }
func (r *emptyRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *emptyRows) Next() bool                                   { return false }
func (r *emptyRows) Scan(...any) error                            { return r.err }
func (r *emptyRows) Values() ([]any, error)                       { return nil, r.err }
func (r *emptyRows) RawValues() [][]byte                          { return nil }
func (r *emptyRows) Conn() *pgx.Conn                              { return nil }

// funcRow lets a test decide what Scan writes.
type funcRow func(dest ...any) error

func (f funcRow) Scan(dest ...any) error { return f(dest...) }

func tag(s string) pgconn.CommandTag {
	return pgconn.NewCommandTag(s)
}

func pgError(code string) error {
	return &pgconn.PgError{Code: code, Message: "constraint violated"}
}
