package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mattn/go-sqlite3"

	"github.com/aki/qrlabel/internal/core/logger"
)

// The value column has no declared type so SQLite keeps whatever storage
// class was written, which is how non-integer legacy values survive.
const sqliteSchema = `
CREATE TABLE IF NOT EXISTS sequences (
	prefix      TEXT PRIMARY KEY,
	last_issued,
	updated_at  TEXT NOT NULL
);`

// SQLite stores one row per prefix
type SQLite struct {
	db  *sql.DB
	log logger.Logger
}

// OpenSQLite opens or creates the database at path
func OpenSQLite(path string, log logger.Logger) (*SQLite, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create directory for %q: %w", path, err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, sqliteOpenError("failed to connect to database", err)
	}

	// SQLite only supports one writer at a time
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = FULL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, sqliteOpenError(fmt.Sprintf("failed to execute %q", pragma), err)
		}
	}

	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, sqliteOpenError("failed to apply schema", err)
	}

	return &SQLite{
		db:  db,
		log: logger.OrNop(log).With("store", "sqlite", "path", path),
	}, nil
}

// sqliteOpenError marks errors from a file that is not a database, or a
// malformed one, with ErrCorrupt
func sqliteOpenError(msg string, err error) error {
	var sqlErr sqlite3.Error
	if errors.As(err, &sqlErr) && (sqlErr.Code == sqlite3.ErrNotADB || sqlErr.Code == sqlite3.ErrCorrupt) {
		return fmt.Errorf("%w: %s: %v", ErrCorrupt, msg, err)
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// normalizeSQL maps driver values to the types Value understands
func normalizeSQL(raw any) any {
	if b, ok := raw.([]byte); ok {
		return string(b)
	}
	return raw
}

func (s *SQLite) GetLast(ctx context.Context, prefix string) (int, bool) {
	return lastFrom(s.Lookup(ctx, prefix))
}

func (s *SQLite) Lookup(ctx context.Context, prefix string) (Value, bool) {
	var raw any
	err := s.db.QueryRowContext(ctx,
		"SELECT last_issued FROM sequences WHERE prefix = ?", prefix,
	).Scan(&raw)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			s.log.Warn("sequence lookup failed, treating as no record", "prefix", prefix, "error", err)
		}
		return Value{}, false
	}
	return Value{Raw: normalizeSQL(raw)}, true
}

func (s *SQLite) SetLast(ctx context.Context, prefix string, n int) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sequences (prefix, last_issued, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(prefix) DO UPDATE SET
			last_issued = excluded.last_issued,
			updated_at = excluded.updated_at`,
		prefix, n, time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("failed to persist %q=%d: %w", prefix, n, err)
	}
	return nil
}

func (s *SQLite) List(ctx context.Context) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT prefix, last_issued FROM sequences ORDER BY prefix")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []Record{}
	for rows.Next() {
		var (
			prefix string
			raw    any
		)
		if err := rows.Scan(&prefix, &raw); err != nil {
			return nil, err
		}
		records = append(records, Record{Prefix: prefix, Value: Value{Raw: normalizeSQL(raw)}})
	}
	return records, rows.Err()
}

// Put writes a raw value for prefix. It exists for migrations and tests.
func (s *SQLite) Put(ctx context.Context, prefix string, raw any) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT OR REPLACE INTO sequences (prefix, last_issued, updated_at) VALUES (?, ?, ?)",
		prefix, raw, time.Now().UTC().Format(time.RFC3339Nano),
	)
	return err
}

func (s *SQLite) Close() error {
	return s.db.Close()
}
