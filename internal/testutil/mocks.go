package testutil

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/dafibh/finwise/finwise-backend/internal/domain"
	"github.com/dafibh/finwise/finwise-backend/internal/notify"
	"github.com/dafibh/finwise/finwise-backend/internal/websocket"
	"github.com/google/uuid"
)

// MockUserRepository is a mock implementation of domain.UserRepository
type MockUserRepository struct {
	Users    map[string]*domain.User
	ByID     map[uuid.UUID]*domain.User
	CreateFn func(auth0ID, email string, name *string) (*domain.User, error)
	mu       sync.Mutex
}

// NewMockUserRepository creates a new MockUserRepository
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		Users: make(map[string]*domain.User),
		ByID:  make(map[uuid.UUID]*domain.User),
	}
}

// GetByID retrieves a user by ID
func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if user, ok := m.ByID[id]; ok {
		return user, nil
	}
	return nil, domain.ErrUserNotFound
}

// GetByAuth0ID retrieves a user by Auth0 ID
func (m *MockUserRepository) GetByAuth0ID(ctx context.Context, auth0ID string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if user, ok := m.Users[auth0ID]; ok {
		return user, nil
	}
	return nil, domain.ErrUserNotFound
}

// CreateOrGetByAuth0ID creates or retrieves a user by Auth0 ID
func (m *MockUserRepository) CreateOrGetByAuth0ID(ctx context.Context, auth0ID, email string, name *string) (*domain.User, error) {
	if m.CreateFn != nil {
		return m.CreateFn(auth0ID, email, name)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if user, ok := m.Users[auth0ID]; ok {
		return user, nil
	}
	now := time.Now()
	user := &domain.User{
		ID:        uuid.New(),
		Auth0ID:   auth0ID,
		Email:     email,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	m.Users[auth0ID] = user
	m.ByID[user.ID] = user
	return user, nil
}

// ListAll returns every user in creation order
func (m *MockUserRepository) ListAll(ctx context.Context) ([]*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	users := make([]*domain.User, 0, len(m.ByID))
	for _, u := range m.ByID {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].CreatedAt.Before(users[j].CreatedAt) })
	return users, nil
}

// AddUser adds a user to the mock repository (helper for tests)
func (m *MockUserRepository) AddUser(user *domain.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Users[user.Auth0ID] = user
	m.ByID[user.ID] = user
}

// MockRecordStore is an in-memory domain.RecordStore. Records are copied on the
// way in and out, the way a real database would.
type MockRecordStore[T domain.Record] struct {
	records map[uuid.UUID]map[uuid.UUID][]byte
	order   map[uuid.UUID][]uuid.UUID
	mu      sync.Mutex

	ListErr   error
	CreateErr error
	ListCalls int
}

// NewMockRecordStore creates an empty store
func NewMockRecordStore[T domain.Record]() *MockRecordStore[T] {
	return &MockRecordStore[T]{
		records: make(map[uuid.UUID]map[uuid.UUID][]byte),
		order:   make(map[uuid.UUID][]uuid.UUID),
	}
}

// Create stores a copy of the record
func (m *MockRecordStore[T]) Create(ctx context.Context, userID uuid.UUID, record T) (T, error) {
	if m.CreateErr != nil {
		return record, m.CreateErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	meta := record.Meta()
	if meta.ID == uuid.Nil {
		meta.ID = uuid.New()
	}
	now := time.Now().UTC()
	meta.UserID = userID
	if meta.CreatedAt.IsZero() {
		meta.CreatedAt = now
	}
	meta.UpdatedAt = now

	if m.records[userID] == nil {
		m.records[userID] = make(map[uuid.UUID][]byte)
	}
	data, err := json.Marshal(record)
	if err != nil {
		return record, err
	}
	m.records[userID][meta.ID] = data
	m.order[userID] = append(m.order[userID], meta.ID)
	return record, nil
}

// Get returns a copy of one record
func (m *MockRecordStore[T]) Get(ctx context.Context, userID, id uuid.UUID) (T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.records[userID][id]
	if !ok {
		var zero T
		return zero, domain.ErrRecordNotFound
	}
	return decodeRecord[T](data)
}

// List returns copies of the user's records in insertion order
func (m *MockRecordStore[T]) List(ctx context.Context, userID uuid.UUID) ([]T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ListCalls++
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	out := make([]T, 0, len(m.order[userID]))
	for _, id := range m.order[userID] {
		record, err := decodeRecord[T](m.records[userID][id])
		if err != nil {
			return nil, err
		}
		out = append(out, record)
	}
	return out, nil
}

// Update replaces a stored record, keeping its creation time
func (m *MockRecordStore[T]) Update(ctx context.Context, userID uuid.UUID, record T) (T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	meta := record.Meta()
	existing, ok := m.records[userID][meta.ID]
	if !ok {
		return record, domain.ErrRecordNotFound
	}
	stored, err := decodeRecord[T](existing)
	if err != nil {
		return record, err
	}
	meta.UserID = userID
	meta.CreatedAt = stored.Meta().CreatedAt
	meta.UpdatedAt = time.Now().UTC()

	data, err := json.Marshal(record)
	if err != nil {
		return record, err
	}
	m.records[userID][meta.ID] = data
	return record, nil
}

// Delete removes a record
func (m *MockRecordStore[T]) Delete(ctx context.Context, userID, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.records[userID][id]; !ok {
		return domain.ErrRecordNotFound
	}
	delete(m.records[userID], id)
	order := m.order[userID]
	for i, existing := range order {
		if existing == id {
			m.order[userID] = append(order[:i:i], order[i+1:]...)
			break
		}
	}
	return nil
}

// Add seeds records without going through a service (helper for tests)
func (m *MockRecordStore[T]) Add(userID uuid.UUID, records ...T) {
	for _, r := range records {
		_, _ = m.Create(context.Background(), userID, r)
	}
}

func decodeRecord[T domain.Record](data []byte) (T, error) {
	var record T
	err := json.Unmarshal(data, &record)
	return record, err
}

// MockDocumentStore is an in-memory domain.DocumentStore
type MockDocumentStore[T any] struct {
	docs   map[uuid.UUID]T
	mu     sync.Mutex
	PutErr error
}

// NewMockDocumentStore creates an empty store
func NewMockDocumentStore[T any]() *MockDocumentStore[T] {
	return &MockDocumentStore[T]{docs: make(map[uuid.UUID]T)}
}

// Get returns the user's document
func (m *MockDocumentStore[T]) Get(ctx context.Context, userID uuid.UUID) (T, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	doc, ok := m.docs[userID]
	return doc, ok, nil
}

// Put stores the user's document
func (m *MockDocumentStore[T]) Put(ctx context.Context, userID uuid.UUID, doc T) error {
	if m.PutErr != nil {
		return m.PutErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[userID] = doc
	return nil
}

// MockStores holds one mock store per collection
type MockStores struct {
	Accounts         *MockRecordStore[*domain.BankAccount]
	Incomes          *MockRecordStore[*domain.Income]
	Expenses         *MockRecordStore[*domain.Expense]
	Loans            *MockRecordStore[*domain.Loan]
	Bills            *MockRecordStore[*domain.Bill]
	Goals            *MockRecordStore[*domain.FinancialGoal]
	ExpectedPayments *MockRecordStore[*domain.ExpectedPayment]
	BusinessEntries  *MockRecordStore[*domain.BusinessEntry]
	DailyEntries     *MockRecordStore[*domain.DailyEntry]
	Challenges       *MockRecordStore[*domain.Challenge]
	NetWorthHistory  *MockRecordStore[*domain.NetWorthSnapshot]
	Preferences      *MockDocumentStore[domain.UserPreferences]
	Progress         *MockDocumentStore[domain.UserProgress]
}

// NewMockStores creates empty mock stores
func NewMockStores() *MockStores {
	return &MockStores{
		Accounts:         NewMockRecordStore[*domain.BankAccount](),
		Incomes:          NewMockRecordStore[*domain.Income](),
		Expenses:         NewMockRecordStore[*domain.Expense](),
		Loans:            NewMockRecordStore[*domain.Loan](),
		Bills:            NewMockRecordStore[*domain.Bill](),
		Goals:            NewMockRecordStore[*domain.FinancialGoal](),
		ExpectedPayments: NewMockRecordStore[*domain.ExpectedPayment](),
		BusinessEntries:  NewMockRecordStore[*domain.BusinessEntry](),
		DailyEntries:     NewMockRecordStore[*domain.DailyEntry](),
		Challenges:       NewMockRecordStore[*domain.Challenge](),
		NetWorthHistory:  NewMockRecordStore[*domain.NetWorthSnapshot](),
		Preferences:      NewMockDocumentStore[domain.UserPreferences](),
		Progress:         NewMockDocumentStore[domain.UserProgress](),
	}
}

// Stores exposes the mocks as domain.Stores
func (m *MockStores) Stores() domain.Stores {
	return domain.Stores{
		Accounts:         m.Accounts,
		Incomes:          m.Incomes,
		Expenses:         m.Expenses,
		Loans:            m.Loans,
		Bills:            m.Bills,
		Goals:            m.Goals,
		ExpectedPayments: m.ExpectedPayments,
		BusinessEntries:  m.BusinessEntries,
		DailyEntries:     m.DailyEntries,
		Challenges:       m.Challenges,
		NetWorthHistory:  m.NetWorthHistory,
		Preferences:      m.Preferences,
		Progress:         m.Progress,
	}
}

// PublishedEvent is one event captured by MockPublisher
type PublishedEvent struct {
	UserID uuid.UUID
	Event  websocket.Event
}

// MockPublisher records published events
type MockPublisher struct {
	Events []PublishedEvent
	mu     sync.Mutex
}

// NewMockPublisher creates a new MockPublisher
func NewMockPublisher() *MockPublisher {
	return &MockPublisher{}
}

// Publish implements websocket.EventPublisher
func (m *MockPublisher) Publish(userID uuid.UUID, event websocket.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Events = append(m.Events, PublishedEvent{UserID: userID, Event: event})
}

// Types returns the type of every captured event in order
func (m *MockPublisher) Types() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	types := make([]string, len(m.Events))
	for i, e := range m.Events {
		types[i] = e.Event.Type
	}
	return types
}

// MockMailer captures messages instead of sending them
type MockMailer struct {
	Sent    []notify.Message
	SendErr error
	mu      sync.Mutex
}

// NewMockMailer creates a new MockMailer
func NewMockMailer() *MockMailer {
	return &MockMailer{}
}

// Send implements notify.Mailer
func (m *MockMailer) Send(ctx context.Context, msg notify.Message) error {
	if m.SendErr != nil {
		return m.SendErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sent = append(m.Sent, msg)
	return nil
}
