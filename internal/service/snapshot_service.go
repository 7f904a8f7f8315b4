package service

import (
	"context"
	"fmt"

	"github.com/dafibh/finwise/finwise-backend/internal/domain"
	"github.com/dafibh/finwise/finwise-backend/internal/finance"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Snapshot is everything the derivation engine needs for one user
type Snapshot struct {
	UserID      uuid.UUID
	Records     finance.Records
	Preferences domain.UserPreferences
}

// SnapshotService loads a user's collections into a Snapshot
type SnapshotService struct {
	stores domain.Stores
}

// NewSnapshotService creates a new SnapshotService
func NewSnapshotService(stores domain.Stores) *SnapshotService {
	return &SnapshotService{stores: stores}
}

// Load reads every collection concurrently. The first failing read cancels the rest.
func (s *SnapshotService) Load(ctx context.Context, userID uuid.UUID) (*Snapshot, error) {
	snap := &Snapshot{UserID: userID}
	r := &snap.Records

	g, gctx := errgroup.WithContext(ctx)
	loadInto(gctx, g, s.stores.Accounts, userID, &r.Accounts)
	loadInto(gctx, g, s.stores.Incomes, userID, &r.Incomes)
	loadInto(gctx, g, s.stores.Expenses, userID, &r.Expenses)
	loadInto(gctx, g, s.stores.Loans, userID, &r.Loans)
	loadInto(gctx, g, s.stores.Bills, userID, &r.Bills)
	loadInto(gctx, g, s.stores.Goals, userID, &r.Goals)
	loadInto(gctx, g, s.stores.ExpectedPayments, userID, &r.ExpectedPayments)
	loadInto(gctx, g, s.stores.BusinessEntries, userID, &r.BusinessEntries)
	loadInto(gctx, g, s.stores.DailyEntries, userID, &r.DailyEntries)
	g.Go(func() error {
		prefs, found, err := s.stores.Preferences.Get(gctx, userID)
		if err != nil {
			return fmt.Errorf("load preferences: %w", err)
		}
		if !found {
			prefs = domain.DefaultPreferences()
		}
		snap.Preferences = prefs
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return snap, nil
}

func loadInto[T domain.Record](ctx context.Context, g *errgroup.Group, store domain.RecordStore[T], userID uuid.UUID, dst *[]T) {
	g.Go(func() error {
		records, err := store.List(ctx, userID)
		if err != nil {
			var zero T
			return fmt.Errorf("load %s: %w", zero.Kind(), err)
		}
		*dst = records
		return nil
	})
}
