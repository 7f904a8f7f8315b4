package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dafibh/finwise/finwise-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// RecordStore caches List results of an inner store. Every write through the
// store drops the cached collection. Cache failures are logged and the inner
// store is used directly.
type RecordStore[T domain.Record] struct {
	inner  domain.RecordStore[T]
	client Client
	kind   domain.RecordKind
	ttl    time.Duration
	logger zerolog.Logger
}

// NewRecordStore wraps inner with a cache for the given kind
func NewRecordStore[T domain.Record](inner domain.RecordStore[T], client Client, kind domain.RecordKind, ttl time.Duration) *RecordStore[T] {
	return &RecordStore[T]{
		inner:  inner,
		client: client,
		kind:   kind,
		ttl:    ttl,
		logger: log.With().Str("component", "record_cache").Str("kind", string(kind)).Logger(),
	}
}

// Key is the cache key of one user's collection
func Key(userID uuid.UUID, kind domain.RecordKind) string {
	return fmt.Sprintf("finwise:records:%s:%s", userID, kind)
}

// List implements domain.RecordStore
func (s *RecordStore[T]) List(ctx context.Context, userID uuid.UUID) ([]T, error) {
	key := Key(userID, s.kind)

	data, err := s.client.Get(ctx, key)
	switch {
	case err == nil:
		var records []T
		if err := json.Unmarshal(data, &records); err == nil {
			return records, nil
		}
		s.logger.Warn().Str("key", key).Msg("Discarding undecodable cache entry")
	case !errors.Is(err, ErrMiss):
		s.logger.Warn().Err(err).Str("key", key).Msg("Cache read failed")
	}

	records, err := s.inner.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	if data, err := json.Marshal(records); err == nil {
		if err := s.client.Set(ctx, key, data, s.ttl); err != nil {
			s.logger.Warn().Err(err).Str("key", key).Msg("Cache write failed")
		}
	}
	return records, nil
}

// Get implements domain.RecordStore
func (s *RecordStore[T]) Get(ctx context.Context, userID, id uuid.UUID) (T, error) {
	return s.inner.Get(ctx, userID, id)
}

// Create implements domain.RecordStore
func (s *RecordStore[T]) Create(ctx context.Context, userID uuid.UUID, record T) (T, error) {
	created, err := s.inner.Create(ctx, userID, record)
	if err == nil {
		s.invalidate(ctx, userID)
	}
	return created, err
}

// Update implements domain.RecordStore
func (s *RecordStore[T]) Update(ctx context.Context, userID uuid.UUID, record T) (T, error) {
	updated, err := s.inner.Update(ctx, userID, record)
	if err == nil {
		s.invalidate(ctx, userID)
	}
	return updated, err
}

// Delete implements domain.RecordStore
func (s *RecordStore[T]) Delete(ctx context.Context, userID, id uuid.UUID) error {
	err := s.inner.Delete(ctx, userID, id)
	if err == nil {
		s.invalidate(ctx, userID)
	}
	return err
}

func (s *RecordStore[T]) invalidate(ctx context.Context, userID uuid.UUID) {
	key := Key(userID, s.kind)
	if err := s.client.Del(ctx, key); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("Cache invalidation failed")
	}
}
