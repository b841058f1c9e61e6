package docstore

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestSQLite creates a SQLite-backed store in a temp directory.
func newTestSQLite(t *testing.T) *SQLStore {
	t.Helper()
	s, err := NewSQLite(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

// ─── SQLite ─────────────────────────────────────────────────────────────────

func TestSQLite_FetchMissing(t *testing.T) {
	s := newTestSQLite(t)

	_, err := s.Fetch(context.Background(), "nobody")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLite_WriteThenFetch(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	require.NoError(t, s.Write(ctx, "chris", []byte(`{"personal_info":{"name":"Chris"}}`)))

	got, err := s.Fetch(ctx, "chris")
	require.NoError(t, err)
	assert.JSONEq(t, `{"personal_info":{"name":"Chris"}}`, string(got))
}

func TestSQLite_WriteOverwritesWholeDocument(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	require.NoError(t, s.Write(ctx, "chris", []byte(`{"a":1,"b":2}`)))
	require.NoError(t, s.Write(ctx, "chris", []byte(`{"c":3}`)))

	got, err := s.Fetch(ctx, "chris")
	require.NoError(t, err)
	assert.JSONEq(t, `{"c":3}`, string(got))
}

func TestSQLite_UsersAreIsolated(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	require.NoError(t, s.Write(ctx, "a", []byte(`{"who":"a"}`)))

	_, err := s.Fetch(ctx, "b")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLite_StoresUnderDerivedKey(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	require.NoError(t, s.Write(ctx, "chris", []byte(`{}`)))

	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM profile_documents WHERE doc_key = ?`, "user::chris").Scan(&n)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestSQLite_IdempotentReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	s1, err := NewSQLite(dir)
	require.NoError(t, err)
	require.NoError(t, s1.Write(ctx, "chris", []byte(`{"kept":true}`)))
	require.NoError(t, s1.Close())

	s2, err := NewSQLite(dir)
	require.NoError(t, err)
	defer s2.Close()

	got, err := s2.Fetch(ctx, "chris")
	require.NoError(t, err)
	assert.JSONEq(t, `{"kept":true}`, string(got))
	assert.FileExists(t, filepath.Join(dir, SQLiteFile))
}

func TestSQLite_ClosedDatabaseIsUnavailable(t *testing.T) {
	s, err := NewSQLite(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, s.Close())

	_, err = s.Fetch(context.Background(), "chris")
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.NotErrorIs(t, err, ErrNotFound)

	err = s.Write(context.Background(), "chris", []byte(`{}`))
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestNewSQLite_OpenError(t *testing.T) {
	orig := openDB
	t.Cleanup(func() { openDB = orig })
	openDB = func(string, string) (*sql.DB, error) {
		return nil, errors.New("driver exploded")
	}

	_, err := NewSQLite(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open database")
}

// ─── Postgres dialect (sqlmock) ─────────────────────────────────────────────

func newMockPostgres(t *testing.T) (*SQLStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)

	mock.ExpectExec(DialectPostgres.CreateTable).WillReturnResult(sqlmock.NewResult(0, 0))
	s, err := NewSQLStore(context.Background(), db, DialectPostgres)
	require.NoError(t, err)
	return s, mock
}

func TestPostgres_Fetch(t *testing.T) {
	s, mock := newMockPostgres(t)

	mock.ExpectQuery(DialectPostgres.SelectDoc).
		WithArgs("user::chris").
		WillReturnRows(sqlmock.NewRows([]string{"body"}).AddRow([]byte(`{"metadata":{"version":1}}`)))

	got, err := s.Fetch(context.Background(), "chris")
	require.NoError(t, err)
	assert.JSONEq(t, `{"metadata":{"version":1}}`, string(got))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_FetchNoRows(t *testing.T) {
	s, mock := newMockPostgres(t)

	mock.ExpectQuery(DialectPostgres.SelectDoc).
		WithArgs("user::ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := s.Fetch(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_FetchFailure(t *testing.T) {
	s, mock := newMockPostgres(t)

	mock.ExpectQuery(DialectPostgres.SelectDoc).
		WithArgs("user::chris").
		WillReturnError(errors.New("connection reset"))

	_, err := s.Fetch(context.Background(), "chris")
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Contains(t, err.Error(), "connection reset")
}

func TestPostgres_Write(t *testing.T) {
	s, mock := newMockPostgres(t)

	mock.ExpectExec(DialectPostgres.UpsertDoc).
		WithArgs("user::chris", `{"x":1}`, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, s.Write(context.Background(), "chris", []byte(`{"x":1}`)))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_WriteFailure(t *testing.T) {
	s, mock := newMockPostgres(t)

	mock.ExpectExec(DialectPostgres.UpsertDoc).
		WithArgs("user::chris", `{}`, sqlmock.AnyArg()).
		WillReturnError(errors.New("read-only transaction"))

	err := s.Write(context.Background(), "chris", []byte(`{}`))
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestNewSQLStore_MigrationError(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)

	mock.ExpectExec(DialectPostgres.CreateTable).WillReturnError(errors.New("permission denied"))
	mock.ExpectClose()

	_, err = NewSQLStore(context.Background(), db, DialectPostgres)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "migrate postgres")
	assert.NoError(t, mock.ExpectationsWereMet())
}
