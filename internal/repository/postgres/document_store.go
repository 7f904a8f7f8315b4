package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dafibh/finwise/finwise-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DocumentStore implements domain.DocumentStore on user_documents
type DocumentStore[T any] struct {
	pool *pgxpool.Pool
	kind domain.DocumentKind
}

// NewDocumentStore creates a store for one document kind
func NewDocumentStore[T any](pool *pgxpool.Pool, kind domain.DocumentKind) *DocumentStore[T] {
	return &DocumentStore[T]{pool: pool, kind: kind}
}

// Get returns the user's document and whether one was stored
func (s *DocumentStore[T]) Get(ctx context.Context, userID uuid.UUID) (T, bool, error) {
	var doc T
	var data []byte
	err := s.pool.QueryRow(ctx,
		`SELECT data FROM user_documents WHERE user_id = $1 AND kind = $2`,
		userID, string(s.kind)).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return doc, false, nil
		}
		return doc, false, fmt.Errorf("get %s: %w", s.kind, err)
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return doc, false, fmt.Errorf("decode %s: %w", s.kind, err)
	}
	return doc, true, nil
}

// Put creates or replaces the user's document
func (s *DocumentStore[T]) Put(ctx context.Context, userID uuid.UUID, doc T) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode %s: %w", s.kind, err)
	}
	_, err = s.pool.Exec(ctx,
		`INSERT INTO user_documents (user_id, kind, data, updated_at)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (user_id, kind) DO UPDATE SET data = EXCLUDED.data, updated_at = EXCLUDED.updated_at`,
		userID, string(s.kind), data, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("put %s: %w", s.kind, err)
	}
	return nil
}
