package docstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// openDB is a package-level var to allow test injection.
var openDB = sql.Open

// SQLiteFile is the database file created inside the data directory.
const SQLiteFile = "profiles.db"

// Dialect holds the statements that differ between SQL engines.
type Dialect struct {
	Name        string
	CreateTable string
	SelectDoc   string
	UpsertDoc   string
}

// DialectSQLite stores bodies as TEXT.
var DialectSQLite = Dialect{
	Name: "sqlite",
	CreateTable: `
		CREATE TABLE IF NOT EXISTS profile_documents (
			doc_key    TEXT PRIMARY KEY,
			body       TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`,
	SelectDoc: `SELECT body FROM profile_documents WHERE doc_key = ?`,
	UpsertDoc: `INSERT INTO profile_documents (doc_key, body, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(doc_key) DO UPDATE SET body = excluded.body, updated_at = excluded.updated_at`,
}

// DialectPostgres stores bodies as JSONB.
var DialectPostgres = Dialect{
	Name: "postgres",
	CreateTable: `
		CREATE TABLE IF NOT EXISTS profile_documents (
			doc_key    TEXT PRIMARY KEY,
			body       JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`,
	SelectDoc: `SELECT body FROM profile_documents WHERE doc_key = $1`,
	UpsertDoc: `INSERT INTO profile_documents (doc_key, body, updated_at) VALUES ($1, $2, $3)
		ON CONFLICT (doc_key) DO UPDATE SET body = EXCLUDED.body, updated_at = EXCLUDED.updated_at`,
}

// SQLStore keeps one row per profile document in a database/sql database.
type SQLStore struct {
	db      *sql.DB
	dialect Dialect
}

var _ Handle = (*SQLStore)(nil)

// NewSQLite opens (or creates) dir/profiles.db with WAL mode and
// ensures the documents table exists.
func NewSQLite(dir string) (*SQLStore, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("docstore: create data dir: %w", err)
	}

	db, err := openDB("sqlite", filepath.Join(dir, SQLiteFile))
	if err != nil {
		return nil, fmt.Errorf("docstore: open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("docstore: pragma %q: %w", p, err)
		}
	}

	return NewSQLStore(context.Background(), db, DialectSQLite)
}

// NewPostgres connects through the pgx database/sql driver.
func NewPostgres(ctx context.Context, dsn string) (*SQLStore, error) {
	db, err := openDB("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("docstore: open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("docstore: ping postgres: %w", err)
	}
	return NewSQLStore(ctx, db, DialectPostgres)
}

// NewSQLStore wraps an open database and runs the table migration.
func NewSQLStore(ctx context.Context, db *sql.DB, dialect Dialect) (*SQLStore, error) {
	if _, err := db.ExecContext(ctx, dialect.CreateTable); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("docstore: migrate %s: %w", dialect.Name, err)
	}
	return &SQLStore{db: db, dialect: dialect}, nil
}

// Fetch implements Store.
func (s *SQLStore) Fetch(ctx context.Context, userID string) ([]byte, error) {
	key := Key(userID)

	var body []byte
	err := s.db.QueryRowContext(ctx, s.dialect.SelectDoc, key).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, unavailable("fetch", key, err)
	}
	return body, nil
}

// Write implements Store.
func (s *SQLStore) Write(ctx context.Context, userID string, doc []byte) error {
	key := Key(userID)
	if _, err := s.db.ExecContext(ctx, s.dialect.UpsertDoc, key, string(doc), time.Now().UTC()); err != nil {
		return unavailable("write", key, err)
	}
	return nil
}

// Close closes the underlying database connection.
func (s *SQLStore) Close() error {
	return s.db.Close()
}
