package service

import (
	"context"
	"fmt"

	"github.com/dafibh/finwise/finwise-backend/internal/domain"
	"github.com/dafibh/finwise/finwise-backend/internal/finance"
	"github.com/dafibh/finwise/finwise-backend/internal/websocket"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// RecordHook is told after any write to a user's records
type RecordHook interface {
	RecordsChanged(ctx context.Context, userID uuid.UUID)
}

// RecordService handles CRUD for one record kind
type RecordService[T domain.Record] struct {
	store     domain.RecordStore[T]
	kind      domain.RecordKind
	prepare   func(T)
	publisher websocket.EventPublisher
	hooks     []RecordHook
	logger    zerolog.Logger
}

// NewRecordService creates a service for the record kind of T. prepare, when
// set, fills derived fields before validation.
func NewRecordService[T domain.Record](store domain.RecordStore[T], publisher websocket.EventPublisher, prepare func(T), hooks ...RecordHook) *RecordService[T] {
	var zero T
	kind := zero.Kind()
	return &RecordService[T]{
		store:     store,
		kind:      kind,
		prepare:   prepare,
		publisher: publisher,
		hooks:     hooks,
		logger:    log.With().Str("component", "record_service").Str("kind", string(kind)).Logger(),
	}
}

// Kind returns the record kind the service manages
func (s *RecordService[T]) Kind() domain.RecordKind {
	return s.kind
}

// Create validates and stores a new record
func (s *RecordService[T]) Create(ctx context.Context, userID uuid.UUID, record T) (T, error) {
	record.Meta().ID = uuid.Nil
	if err := s.check(record); err != nil {
		return record, err
	}
	created, err := s.store.Create(ctx, userID, record)
	if err != nil {
		return created, err
	}
	s.changed(ctx, userID, websocket.EventTypeCreated, created)
	return created, nil
}

// List returns all of the user's records of this kind
func (s *RecordService[T]) List(ctx context.Context, userID uuid.UUID) ([]T, error) {
	return s.store.List(ctx, userID)
}

// Get returns one record
func (s *RecordService[T]) Get(ctx context.Context, userID, id uuid.UUID) (T, error) {
	return s.store.Get(ctx, userID, id)
}

// Update validates and replaces the record with the given id
func (s *RecordService[T]) Update(ctx context.Context, userID, id uuid.UUID, record T) (T, error) {
	record.Meta().ID = id
	if err := s.check(record); err != nil {
		return record, err
	}
	updated, err := s.store.Update(ctx, userID, record)
	if err != nil {
		return updated, err
	}
	s.changed(ctx, userID, websocket.EventTypeUpdated, updated)
	return updated, nil
}

// Delete removes one record
func (s *RecordService[T]) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.store.Delete(ctx, userID, id); err != nil {
		return err
	}
	s.changed(ctx, userID, websocket.EventTypeDeleted, map[string]string{"id": id.String()})
	return nil
}

func (s *RecordService[T]) check(record T) error {
	if s.prepare != nil {
		s.prepare(record)
	}
	if err := record.Validate(); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}
	return nil
}

func (s *RecordService[T]) changed(ctx context.Context, userID uuid.UUID, eventType websocket.EventType, payload interface{}) {
	s.logger.Debug().
		Str("user_id", userID.String()).
		Str("event_type", string(eventType)).
		Msg("Record changed")
	s.publisher.Publish(userID, websocket.RecordChanged(eventType, s.kind, payload))
	for _, h := range s.hooks {
		h.RecordsChanged(ctx, userID)
	}
}

// RecordServices groups the services for every user-editable kind
type RecordServices struct {
	Accounts         *RecordService[*domain.BankAccount]
	Incomes          *RecordService[*domain.Income]
	Expenses         *RecordService[*domain.Expense]
	Loans            *RecordService[*domain.Loan]
	Bills            *RecordService[*domain.Bill]
	Goals            *RecordService[*domain.FinancialGoal]
	ExpectedPayments *RecordService[*domain.ExpectedPayment]
	BusinessEntries  *RecordService[*domain.BusinessEntry]
	DailyEntries     *RecordService[*domain.DailyEntry]
}

// NewRecordServices wires a service per kind. Incomes, expenses and business
// entries get their derived amounts recomputed on every write.
func NewRecordServices(stores domain.Stores, publisher websocket.EventPublisher, hooks ...RecordHook) RecordServices {
	return RecordServices{
		Accounts:         NewRecordService(stores.Accounts, publisher, nil, hooks...),
		Incomes:          NewRecordService(stores.Incomes, publisher, finance.NormalizeIncome, hooks...),
		Expenses:         NewRecordService(stores.Expenses, publisher, finance.NormalizeExpense, hooks...),
		Loans:            NewRecordService(stores.Loans, publisher, nil, hooks...),
		Bills:            NewRecordService(stores.Bills, publisher, nil, hooks...),
		Goals:            NewRecordService(stores.Goals, publisher, nil, hooks...),
		ExpectedPayments: NewRecordService(stores.ExpectedPayments, publisher, nil, hooks...),
		BusinessEntries:  NewRecordService(stores.BusinessEntries, publisher, finance.NormalizeBusinessEntry, hooks...),
		DailyEntries:     NewRecordService(stores.DailyEntries, publisher, nil, hooks...),
	}
}
