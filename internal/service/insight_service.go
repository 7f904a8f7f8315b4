package service

import (
	"context"
	"fmt"
	"time"

	"github.com/dafibh/finwise/finwise-backend/internal/domain"
	"github.com/dafibh/finwise/finwise-backend/internal/finance"
	"github.com/dafibh/finwise/finwise-backend/internal/util"
	"github.com/dafibh/finwise/finwise-backend/internal/websocket"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// DefaultForecastMonths is used when a forecast request names no horizon
const DefaultForecastMonths = 6

// InsightService serves the derived views of a user's finances. Every call
// loads a fresh snapshot and recomputes from it.
type InsightService struct {
	snapshots *SnapshotService
	history   domain.RecordStore[*domain.NetWorthSnapshot]
	publisher websocket.EventPublisher
	now       func() time.Time
	logger    zerolog.Logger
}

var _ RecordHook = (*InsightService)(nil)

// NewInsightService creates a new InsightService
func NewInsightService(snapshots *SnapshotService, history domain.RecordStore[*domain.NetWorthSnapshot], publisher websocket.EventPublisher) *InsightService {
	return &InsightService{
		snapshots: snapshots,
		history:   history,
		publisher: publisher,
		now:       time.Now,
		logger:    log.With().Str("component", "insight_service").Logger(),
	}
}

// Dashboard builds the summary view
func (s *InsightService) Dashboard(ctx context.Context, userID uuid.UUID) (finance.Dashboard, error) {
	snap, err := s.snapshots.Load(ctx, userID)
	if err != nil {
		return finance.Dashboard{}, err
	}
	return finance.BuildDashboard(snap.Records, snap.Preferences, s.now())
}

// Health scores the user's finances
func (s *InsightService) Health(ctx context.Context, userID uuid.UUID) (finance.FinancialHealth, error) {
	snap, err := s.snapshots.Load(ctx, userID)
	if err != nil {
		return finance.FinancialHealth{}, err
	}
	return finance.CalculateFinancialHealth(snap.Records, s.now()), nil
}

// Goals reports progress on every goal
func (s *InsightService) Goals(ctx context.Context, userID uuid.UUID) ([]finance.GoalProgress, error) {
	snap, err := s.snapshots.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return finance.CalculateGoalsProgress(snap.Records.Goals, s.now()), nil
}

// DebtQuery selects how a debt plan is built. An empty Strategy uses the
// user's saved preference.
type DebtQuery struct {
	Strategy     string
	ExtraPayment decimal.Decimal
}

// Debts builds a payoff plan
func (s *InsightService) Debts(ctx context.Context, userID uuid.UUID, q DebtQuery) (finance.DebtPlan, error) {
	if q.ExtraPayment.IsNegative() {
		return finance.DebtPlan{}, fmt.Errorf("%w: %w", domain.ErrInvalidInput, domain.ErrAmountNegative)
	}
	snap, err := s.snapshots.Load(ctx, userID)
	if err != nil {
		return finance.DebtPlan{}, err
	}

	strategy := snap.Preferences.DebtStrategy
	if q.Strategy != "" {
		strategy, err = domain.ParseDebtStrategy(q.Strategy)
		if err != nil {
			return finance.DebtPlan{}, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
		}
	}
	return finance.BuildDebtPlan(snap.Records, strategy, q.ExtraPayment), nil
}

// DebtStrategy suggests a payoff strategy
func (s *InsightService) DebtStrategy(ctx context.Context, userID uuid.UUID) (finance.StrategySuggestion, error) {
	snap, err := s.snapshots.Load(ctx, userID)
	if err != nil {
		return finance.StrategySuggestion{}, err
	}
	return finance.SuggestOptimalDebtStrategy(snap.Records, s.now()), nil
}

// PaymentSuggestions funds the saved debt strategy with the allocation's debt share
func (s *InsightService) PaymentSuggestions(ctx context.Context, userID uuid.UUID) (finance.DebtPlan, error) {
	snap, err := s.snapshots.Load(ctx, userID)
	if err != nil {
		return finance.DebtPlan{}, err
	}
	plan, err := finance.PaymentSuggestions(snap.Records, snap.Preferences, s.now())
	if err != nil {
		return finance.DebtPlan{}, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}
	return plan, nil
}

// Allocation splits income across buckets using the saved strategy
func (s *InsightService) Allocation(ctx context.Context, userID uuid.UUID) (finance.AllocationBreakdown, error) {
	snap, err := s.snapshots.Load(ctx, userID)
	if err != nil {
		return finance.AllocationBreakdown{}, err
	}
	health := finance.CalculateFinancialHealth(snap.Records, s.now())
	return finance.CalculateAutoAllocation(snap.Records, snap.Preferences, health)
}

// Allowance reports the remaining discretionary spending
func (s *InsightService) Allowance(ctx context.Context, userID uuid.UUID) (finance.SpendingAllowance, error) {
	snap, err := s.snapshots.Load(ctx, userID)
	if err != nil {
		return finance.SpendingAllowance{}, err
	}
	return finance.CalculateSpendingAllowance(snap.Records), nil
}

// Forecast projects the cash position for the given number of months
func (s *InsightService) Forecast(ctx context.Context, userID uuid.UUID, months int) ([]finance.ForecastPoint, error) {
	if months < 1 || months > finance.MaxForecastMonths {
		return nil, fmt.Errorf("%w: months must be between 1 and %d", domain.ErrInvalidInput, finance.MaxForecastMonths)
	}
	snap, err := s.snapshots.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return finance.Forecast(snap.Records, months, s.now()), nil
}

// Trend returns stored net worth history plus today's live figure
func (s *InsightService) Trend(ctx context.Context, userID uuid.UUID) ([]finance.TrendPoint, error) {
	snap, err := s.snapshots.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	history, err := s.history.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load net worth history: %w", err)
	}
	return finance.NetWorthTrend(history, snap.Records, s.now()), nil
}

// RecordNetWorth stores today's net worth, replacing an earlier snapshot from today
func (s *InsightService) RecordNetWorth(ctx context.Context, userID uuid.UUID) (*domain.NetWorthSnapshot, error) {
	snap, err := s.snapshots.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	now := s.now()
	point := finance.TakeNetWorthSnapshot(snap.Records, now)

	history, err := s.history.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load net worth history: %w", err)
	}
	for _, existing := range history {
		if util.SameDay(existing.Date, point.Date) {
			point.ID = existing.ID
			return s.history.Update(ctx, userID, point)
		}
	}
	return s.history.Create(ctx, userID, point)
}

// RecordsChanged pushes the recomputed health score after a write
func (s *InsightService) RecordsChanged(ctx context.Context, userID uuid.UUID) {
	health, err := s.Health(ctx, userID)
	if err != nil {
		s.logger.Warn().Err(err).Str("user_id", userID.String()).Msg("Failed to recompute health")
		return
	}
	s.publisher.Publish(userID, websocket.HealthRecomputed(health))
}
