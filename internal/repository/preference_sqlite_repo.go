package repository

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const createPreferencesSQL = `
CREATE TABLE IF NOT EXISTS preferences (
	client_id TEXT NOT NULL,
	key TEXT NOT NULL,
	value TEXT NOT NULL,
	updated_at INTEGER NOT NULL,
	PRIMARY KEY (client_id, key)
);
`

// SQLitePreferenceRepo stores preferences in a local SQLite file
type SQLitePreferenceRepo struct {
	db *sql.DB
}

// NewSQLitePreferenceRepo opens (or creates) the database at path
func NewSQLitePreferenceRepo(path string) (*SQLitePreferenceRepo, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create preferences directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open preferences database: %w", err)
	}
	// A single connection serializes writers.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(createPreferencesSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create preferences table: %w", err)
	}

	return &SQLitePreferenceRepo{db: db}, nil
}

// Close closes the database
func (r *SQLitePreferenceRepo) Close() error {
	return r.db.Close()
}

func (r *SQLitePreferenceRepo) Get(ctx context.Context, clientID, key string) (string, bool, error) {
	var value string
	err := r.db.QueryRowContext(ctx,
		`SELECT value FROM preferences WHERE client_id = ? AND key = ?`, clientID, key,
	).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (r *SQLitePreferenceRepo) Set(ctx context.Context, clientID, key, value string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO preferences (client_id, key, value, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT (client_id, key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, clientID, key, value, time.Now().Unix())
	return err
}

func (r *SQLitePreferenceRepo) Delete(ctx context.Context, clientID, key string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM preferences WHERE client_id = ? AND key = ?`, clientID, key)
	return err
}

func (r *SQLitePreferenceRepo) Clear(ctx context.Context, clientID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM preferences WHERE client_id = ?`, clientID)
	return err
}
