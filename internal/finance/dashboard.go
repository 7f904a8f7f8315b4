package finance

import (
	"time"

	"github.com/dafibh/finwise/finwise-backend/internal/domain"
	"github.com/shopspring/decimal"
)

// UpcomingBillWindowDays is how far ahead the dashboard looks for unpaid bills
const UpcomingBillWindowDays = 7

// Dashboard is the top-level summary of a user's finances
type Dashboard struct {
	NetWorth         decimal.Decimal      `json:"netWorth"`
	NetWorthDisplay  string               `json:"netWorthDisplay"`
	Currency         string               `json:"currency"`
	Aggregates       Aggregates           `json:"aggregates"`
	Health           FinancialHealth      `json:"health"`
	Allowance        SpendingAllowance    `json:"allowance"`
	Allocation       *AllocationBreakdown `json:"allocation,omitempty"`
	DailyAverage     DailyAverages        `json:"dailyAverage"`
	GoalsOnTrack     int                  `json:"goalsOnTrack"`
	GoalsTotal       int                  `json:"goalsTotal"`
	UpcomingBills    []BillDue            `json:"upcomingBills"`
	OverdueBills     []BillDue            `json:"overdueBills"`
	DebtStrategy     StrategySuggestion   `json:"debtStrategy"`
	HasFinancialData bool                 `json:"hasFinancialData"`
	GeneratedAt      time.Time            `json:"generatedAt"`
}

// BuildDashboard derives every dashboard figure from one record snapshot.
// Net worth is taken from the health assessment, which takes it from NetWorth.
func BuildDashboard(r Records, prefs domain.UserPreferences, now time.Time) (Dashboard, error) {
	health := CalculateFinancialHealth(r, now)
	agg := Aggregate(r)

	d := Dashboard{
		NetWorth:         health.NetWorth,
		NetWorthDisplay:  FormatCurrency(health.NetWorth, prefs.Currency),
		Currency:         prefs.Currency,
		Aggregates:       agg,
		Health:           health,
		Allowance:        CalculateSpendingAllowance(r),
		DailyAverage:     DailyAverage(r.DailyEntries, EngagementWindowDays, now),
		GoalsTotal:       len(r.Goals),
		UpcomingBills:    UpcomingBills(r.Bills, now, UpcomingBillWindowDays),
		OverdueBills:     OverdueBills(r.Bills, now),
		DebtStrategy:     SuggestOptimalDebtStrategy(r, now),
		HasFinancialData: r.HasFinancialData(),
		GeneratedAt:      now,
	}

	for _, gp := range CalculateGoalsProgress(r.Goals, now) {
		if gp.OnTrack {
			d.GoalsOnTrack++
		}
	}

	if prefs.AutoAllocate {
		allocation, err := CalculateAutoAllocation(r, prefs, health)
		if err != nil {
			return Dashboard{}, err
		}
		d.Allocation = &allocation
	}
	return d, nil
}
