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

// RecordStore implements domain.RecordStore for one record kind. Records are
// stored as JSONB documents in user_records.
type RecordStore[T domain.Record] struct {
	pool      *pgxpool.Pool
	kind      domain.RecordKind
	newRecord func() T
}

var _ domain.RecordStore[*domain.Loan] = (*RecordStore[*domain.Loan])(nil)

// NewRecordStore creates a store. newRecord returns an empty record to decode into.
func NewRecordStore[T domain.Record](pool *pgxpool.Pool, newRecord func() T) *RecordStore[T] {
	return &RecordStore[T]{
		pool:      pool,
		kind:      newRecord().Kind(),
		newRecord: newRecord,
	}
}

// Create inserts a record, assigning its id and timestamps
func (s *RecordStore[T]) Create(ctx context.Context, userID uuid.UUID, record T) (T, error) {
	meta := record.Meta()
	if meta.ID == uuid.Nil {
		meta.ID = uuid.New()
	}
	now := time.Now().UTC()
	meta.UserID = userID
	meta.CreatedAt = now
	meta.UpdatedAt = now

	data, err := json.Marshal(record)
	if err != nil {
		return record, fmt.Errorf("encode %s: %w", s.kind, err)
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO user_records (user_id, kind, id, data, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		userID, string(s.kind), meta.ID, data, meta.CreatedAt, meta.UpdatedAt)
	if err != nil {
		return record, fmt.Errorf("insert %s: %w", s.kind, err)
	}
	return record, nil
}

// Get retrieves one record owned by the user
func (s *RecordStore[T]) Get(ctx context.Context, userID, id uuid.UUID) (T, error) {
	var data []byte
	err := s.pool.QueryRow(ctx,
		`SELECT data FROM user_records WHERE user_id = $1 AND kind = $2 AND id = $3`,
		userID, string(s.kind), id).Scan(&data)
	if err != nil {
		var zero T
		if errors.Is(err, pgx.ErrNoRows) {
			return zero, domain.ErrRecordNotFound
		}
		return zero, fmt.Errorf("get %s: %w", s.kind, err)
	}
	return s.decode(data)
}

// List returns every record of this kind owned by the user, oldest first
func (s *RecordStore[T]) List(ctx context.Context, userID uuid.UUID) ([]T, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT data FROM user_records WHERE user_id = $1 AND kind = $2 ORDER BY created_at, id`,
		userID, string(s.kind))
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", s.kind, err)
	}
	defer rows.Close()

	records := make([]T, 0)
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("scan %s: %w", s.kind, err)
		}
		record, err := s.decode(data)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list %s: %w", s.kind, err)
	}
	return records, nil
}

// Update replaces a record's data. The stored creation time is kept.
func (s *RecordStore[T]) Update(ctx context.Context, userID uuid.UUID, record T) (T, error) {
	meta := record.Meta()
	err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		var createdAt time.Time
		err := tx.QueryRow(ctx,
			`SELECT created_at FROM user_records
			 WHERE user_id = $1 AND kind = $2 AND id = $3 FOR UPDATE`,
			userID, string(s.kind), meta.ID).Scan(&createdAt)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.ErrRecordNotFound
			}
			return err
		}

		meta.UserID = userID
		meta.CreatedAt = createdAt.UTC()
		meta.UpdatedAt = time.Now().UTC()

		data, err := json.Marshal(record)
		if err != nil {
			return err
		}
		_, err = tx.Exec(ctx,
			`UPDATE user_records SET data = $4, updated_at = $5
			 WHERE user_id = $1 AND kind = $2 AND id = $3`,
			userID, string(s.kind), meta.ID, data, meta.UpdatedAt)
		return err
	})
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return record, err
		}
		return record, fmt.Errorf("update %s: %w", s.kind, err)
	}
	return record, nil
}

// Delete removes one record owned by the user
func (s *RecordStore[T]) Delete(ctx context.Context, userID, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM user_records WHERE user_id = $1 AND kind = $2 AND id = $3`,
		userID, string(s.kind), id)
	if err != nil {
		return fmt.Errorf("delete %s: %w", s.kind, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}
	return nil
}

func (s *RecordStore[T]) decode(data []byte) (T, error) {
	record := s.newRecord()
	if err := json.Unmarshal(data, record); err != nil {
		var zero T
		return zero, fmt.Errorf("decode %s: %w", s.kind, err)
	}
	return record, nil
}
