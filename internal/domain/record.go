package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// RecordKind identifies a user-scoped record collection
type RecordKind string

const (
	KindAccount         RecordKind = "accounts"
	KindIncome          RecordKind = "incomes"
	KindExpense         RecordKind = "expenses"
	KindLoan            RecordKind = "loans"
	KindBill            RecordKind = "bills"
	KindGoal            RecordKind = "goals"
	KindExpectedPayment RecordKind = "expected-payments"
	KindBusinessEntry   RecordKind = "business-entries"
	KindDailyEntry      RecordKind = "daily-entries"
	KindChallenge       RecordKind = "challenges"
	KindNetWorthHistory RecordKind = "net-worth-history"
)

// DocumentKind identifies a single per-user document
type DocumentKind string

const (
	DocumentPreferences DocumentKind = "preferences"
	DocumentProgress    DocumentKind = "progress"
)

// RecordMeta holds the identity and audit fields shared by every record
type RecordMeta struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Meta returns the record's shared fields
func (m *RecordMeta) Meta() *RecordMeta {
	return m
}

// Record is implemented by pointers to every stored record type
type Record interface {
	Meta() *RecordMeta
	Kind() RecordKind
	Validate() error
}

// RecordStore persists one kind of record, always scoped to a user
type RecordStore[T Record] interface {
	Create(ctx context.Context, userID uuid.UUID, record T) (T, error)
	Get(ctx context.Context, userID, id uuid.UUID) (T, error)
	List(ctx context.Context, userID uuid.UUID) ([]T, error)
	Update(ctx context.Context, userID uuid.UUID, record T) (T, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

// DocumentStore persists a single document per user
type DocumentStore[T any] interface {
	Get(ctx context.Context, userID uuid.UUID) (T, bool, error)
	Put(ctx context.Context, userID uuid.UUID, doc T) error
}
