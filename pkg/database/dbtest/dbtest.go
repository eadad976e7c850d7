// Package dbtest opens a Postgres-dialect gorm handle whose connection only
// records statements. Repository tests use it to check the SQL gorm builds
// without a running database.
package dbtest

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ErrNoRows is returned for every query unless Recorder.QueryErr is set.
// Only the statement text matters.
var ErrNoRows = errors.New("dbtest: queries are not executed")

// Recorder collects the statements sent through a handle from Open.
// ExecErr and RowsAffected shape the result of every Exec; QueryErr, when
// set, replaces ErrNoRows for queries.
type Recorder struct {
	mu           sync.Mutex
	statements   []string
	ExecErr      error
	QueryErr     error
	RowsAffected int64
}

// Open returns a handle configured like database.Connect.
func Open(t testing.TB) (*gorm.DB, *Recorder) {
	t.Helper()

	rec := &Recorder{RowsAffected: 1}
	db, err := gorm.Open(postgres.New(postgres.Config{Conn: &pool{rec: rec}}), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		TranslateError:                           true,
		SkipDefaultTransaction:                   true,
		DisableAutomaticPing:                     true,
		Logger:                                   rec,
	})
	if err != nil {
		t.Fatalf("dbtest: open: %v", err)
	}
	return db, rec
}

// Statements returns the recorded SQL with its arguments inlined.
func (r *Recorder) Statements() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.statements...)
}

// Find returns the recorded statements starting with prefix.
func (r *Recorder) Find(prefix string) []string {
	var out []string
	for _, stmt := range r.Statements() {
		if strings.HasPrefix(stmt, prefix) {
			out = append(out, stmt)
		}
	}
	return out
}

func (r *Recorder) record(stmt string) {
	r.mu.Lock()
	r.statements = append(r.statements, stmt)
	r.mu.Unlock()
}

func (r *Recorder) LogMode(logger.LogLevel) logger.Interface    { return r }
func (r *Recorder) Info(context.Context, string, ...interface{}) {}
func (r *Recorder) Warn(context.Context, string, ...interface{}) {}
func (r *Recorder) Error(context.Context, string, ...interface{}) {}

func (r *Recorder) Trace(_ context.Context, _ time.Time, fc func() (string, int64), _ error) {
	stmt, _ := fc()
	r.record(stmt)
}

type pool struct {
	rec *Recorder
}

func (p *pool) PrepareContext(context.Context, string) (*sql.Stmt, error) {
	return nil, ErrNoRows
}

func (p *pool) ExecContext(context.Context, string, ...interface{}) (sql.Result, error) {
	if p.rec.ExecErr != nil {
		return nil, p.rec.ExecErr
	}
	return driver.RowsAffected(p.rec.RowsAffected), nil
}

func (p *pool) QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error) {
	if p.rec.QueryErr != nil {
		return nil, p.rec.QueryErr
	}
	return nil, ErrNoRows
}

func (p *pool) QueryRowContext(context.Context, string, ...interface{}) *sql.Row {
	return nil
}

func (p *pool) BeginTx(context.Context, *sql.TxOptions) (gorm.ConnPool, error) {
	p.rec.record("BEGIN")
	return &tx{pool: p}, nil
}

type tx struct {
	*pool
}

func (t *tx) Commit() error {
	t.rec.record("COMMIT")
	return nil
}

func (t *tx) Rollback() error {
	t.rec.record("ROLLBACK")
	return nil
}
