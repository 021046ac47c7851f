package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/blog-content-api/internal/database"
)

// preferenceRepo is the Postgres implementation of PreferenceRepository
type preferenceRepo struct {
	db *database.DB
}

// NewPreferenceRepo creates a Postgres-backed preference repository
func NewPreferenceRepo(db *database.DB) PreferenceRepository {
	return &preferenceRepo{db: db}
}

// Get returns the stored value, or found=false if there is none
func (r *preferenceRepo) Get(ctx context.Context, clientID, key string) (string, bool, error) {
	query := `SELECT value FROM preferences WHERE client_id = $1 AND key = $2`

	var value string
	err := r.db.QueryRowContext(ctx, query, clientID, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// Set inserts or replaces a value
func (r *preferenceRepo) Set(ctx context.Context, clientID, key, value string) error {
	query := `
		INSERT INTO preferences (client_id, key, value, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (client_id, key) DO UPDATE SET
			value = EXCLUDED.value,
			updated_at = EXCLUDED.updated_at
	`
	_, err := r.db.ExecContext(ctx, query, clientID, key, value, time.Now())
	return err
}

// Delete removes one value
func (r *preferenceRepo) Delete(ctx context.Context, clientID, key string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM preferences WHERE client_id = $1 AND key = $2`, clientID, key)
	return err
}

// Clear removes every value for the client
func (r *preferenceRepo) Clear(ctx context.Context, clientID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM preferences WHERE client_id = $1`, clientID)
	return err
}
