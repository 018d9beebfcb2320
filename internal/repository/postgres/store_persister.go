// Package postgres offers an alternative user-store persister. The unit
// of persistence stays the whole serialized document: every save upserts
// one row, so switching backends does not change the store's semantics.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"citybeat/internal/domain"
)

// documentName is the key of the single user-store row.
const documentName = "user_store"

type storePersister struct {
	DB *sql.DB
}

// NewStorePersister returns a StorePersister backed by the given database.
func NewStorePersister(db *sql.DB) domain.StorePersister {
	return &storePersister{DB: db}
}

// EnsureSchema creates the document table when it does not exist yet.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	query := `
		CREATE TABLE IF NOT EXISTS store_documents (
			name text PRIMARY KEY,
			document jsonb NOT NULL,
			updated_at timestamptz NOT NULL DEFAULT now()
		)
	`
	_, err := db.ExecContext(ctx, query)
	return err
}

func (r *storePersister) Load() (map[string]*domain.UserRecord, error) {
	query := `
		SELECT document
		FROM store_documents
		WHERE name = $1
	`
	var data []byte
	err := r.DB.QueryRowContext(context.Background(), query, documentName).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return map[string]*domain.UserRecord{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load user store document: %w", err)
	}
	users := map[string]*domain.UserRecord{}
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("parse user store document: %w", err)
	}
	return users, nil
}

func (r *storePersister) Save(users map[string]*domain.UserRecord) error {
	data, err := json.Marshal(users)
	if err != nil {
		return fmt.Errorf("marshal user store document: %w", err)
	}
	query := `
		INSERT INTO store_documents (name, document, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (name) DO UPDATE SET document = EXCLUDED.document, updated_at = now()
	`
	if _, err := r.DB.ExecContext(context.Background(), query, documentName, data); err != nil {
		return fmt.Errorf("save user store document: %w", err)
	}
	return nil
}
