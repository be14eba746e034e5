// Package store reads the stored field-mapping override and maintains the
// per-user document index in Postgres.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/tigagency/contracting-packet/internal/mapping"
)

const mappingConfigKey = "pdf_field_mappings"

// Store wraps the SQL connection used for system_config reads and
// user_documents updates.
type Store struct {
	db  *sql.DB
	log *zap.Logger
}

// Open connects to Postgres with the given DSN.
func Open(dsn string, logger *zap.Logger) (*Store, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	return &Store{db: db, log: logger}, nil
}

// NewWithDB wraps an existing connection, used by tests.
func NewWithDB(db *sql.DB, logger *zap.Logger) *Store {
	return &Store{db: db, log: logger}
}

// Ping tests the connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// FieldMappingConfig fetches the stored pdf_field_mappings blob. A missing
// row is a valid state and returns (nil, nil): built-in defaults apply.
func (s *Store) FieldMappingConfig(ctx context.Context) (*mapping.FieldMappingConfig, error) {
	var raw []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM system_config WHERE key = $1`, mappingConfigKey).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", mappingConfigKey, err)
	}

	var cfg mapping.FieldMappingConfig
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", mappingConfigKey, err)
	}
	return &cfg, nil
}

// SetContractingPacketPath records the storage path of the generated
// packet under uploaded_documents.contracting_packet for the user. The row
// is created when the user has no document index yet.
func (s *Store) SetContractingPacketPath(ctx context.Context, userID, path string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE user_documents
		 SET uploaded_documents = jsonb_set(COALESCE(uploaded_documents, '{}'::jsonb),
		                                    '{contracting_packet}', to_jsonb($2::text), true),
		     updated_at = NOW()
		 WHERE user_id = $1`, userID, path)
	if err != nil {
		return fmt.Errorf("failed to update document index: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		_, err = s.db.ExecContext(ctx,
			`INSERT INTO user_documents (user_id, uploaded_documents, updated_at)
			 VALUES ($1, jsonb_build_object('contracting_packet', $2::text), NOW())`,
			userID, path)
		if err != nil {
			return fmt.Errorf("failed to insert document index: %w", err)
		}
	}
	return nil
}
