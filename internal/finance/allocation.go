package finance

import (
	"fmt"

	"github.com/dafibh/finwise/finwise-backend/internal/domain"
	"github.com/shopspring/decimal"
)

// Allocation presets, in percent of available surplus. The remaining 30% of the
// default split is implicitly needs, already spent.
var (
	DefaultAllocation = domain.AllocationPercentages{
		Debt:       decimal.NewFromInt(20),
		Emergency:  decimal.NewFromInt(10),
		Investment: decimal.NewFromInt(10),
		Wants:      decimal.NewFromInt(30),
	}
	DebtFocusedAllocation = domain.AllocationPercentages{
		Debt:       decimal.NewFromInt(50),
		Emergency:  decimal.NewFromInt(10),
		Investment: decimal.NewFromInt(5),
		Wants:      decimal.NewFromInt(15),
	}
	SavingsFocusedAllocation = domain.AllocationPercentages{
		Debt:       decimal.NewFromInt(10),
		Emergency:  decimal.NewFromInt(20),
		Investment: decimal.NewFromInt(20),
		Wants:      decimal.NewFromInt(20),
	}
)

// AllocationBreakdown splits total income into buckets.
// DebtPayment is the debt share of available surplus plus AccountDebtPayment;
// installment minimums are reported in MinimumPayments and fall inside Unallocated.
// DebtPayment + EmergencyFund + Investments + Wants + Needs + Unallocated equals
// TotalIncome unless Deficit is positive; Unallocated is never negative.
type AllocationBreakdown struct {
	Strategy               domain.FinancialStrategy     `json:"strategy"`
	HealthLevel            HealthLevel                  `json:"healthLevel"`
	Percentages            domain.AllocationPercentages `json:"percentages"`
	TotalIncome            decimal.Decimal              `json:"totalIncome"`
	AvailableForAllocation decimal.Decimal              `json:"availableForAllocation"`
	MinimumPayments        decimal.Decimal              `json:"minimumPayments"`
	AccountDebtPayment     decimal.Decimal              `json:"accountDebtPayment"`
	ExtraDebtPayment       decimal.Decimal              `json:"extraDebtPayment"`
	DebtPayment            decimal.Decimal              `json:"debtPayment"`
	EmergencyFund          decimal.Decimal              `json:"emergencyFund"`
	Investments            decimal.Decimal              `json:"investments"`
	Wants                  decimal.Decimal              `json:"wants"`
	Needs                  decimal.Decimal              `json:"needs"`
	Unallocated            decimal.Decimal              `json:"unallocated"`
	Deficit                decimal.Decimal              `json:"deficit"`
	EmergencyFundTarget    decimal.Decimal              `json:"emergencyFundTarget"`
	Notes                  []string                     `json:"notes"`
}

// AccountDebtPayment is the monthly amount directed at account debt:
// 10% of every negative balance plus 20% of every used overdraft.
func AccountDebtPayment(accounts []*domain.BankAccount) decimal.Decimal {
	total := decimal.Zero
	for _, a := range accounts {
		if !a.IsActive {
			continue
		}
		total = total.Add(a.NegativeBalance().Mul(NegativeBalancePayoffRate))
		total = total.Add(a.UsedOverdraft().Mul(OverdraftPayoffRate))
	}
	return total
}

// StrategyPercentages returns the preset for a strategy. Unknown strategies are rejected.
func StrategyPercentages(strategy domain.FinancialStrategy) (domain.AllocationPercentages, error) {
	switch strategy {
	case domain.StrategyBalanced, "":
		return DefaultAllocation, nil
	case domain.StrategyDebtFocused:
		return DebtFocusedAllocation, nil
	case domain.StrategySavingsFocused:
		return SavingsFocusedAllocation, nil
	}
	return domain.AllocationPercentages{}, fmt.Errorf("%w: %q", domain.ErrInvalidStrategy, strategy)
}

// ApplyHealthNudges shifts percentages by health level. Poor health moves 10pp
// each from investment and wants into emergency and debt; excellent health moves
// 5pp each from debt and wants into investment. Shares never go below zero.
func ApplyHealthNudges(p domain.AllocationPercentages, level HealthLevel) domain.AllocationPercentages {
	ten := decimal.NewFromInt(10)
	five := decimal.NewFromInt(5)
	switch level {
	case HealthPoor:
		p.Emergency = p.Emergency.Add(ten)
		p.Debt = p.Debt.Add(ten)
		p.Investment = nonNegative(p.Investment.Sub(ten))
		p.Wants = nonNegative(p.Wants.Sub(ten))
	case HealthExcellent:
		p.Investment = p.Investment.Add(ten)
		p.Debt = nonNegative(p.Debt.Sub(five))
		p.Wants = nonNegative(p.Wants.Sub(five))
	}
	return p
}

// ResolvePercentages picks the preferences' custom split when set, otherwise the
// strategy preset, then applies health nudges. Configurations summing above 100%
// are rejected rather than normalized. If clamping during a nudge would push the
// split above 100%, the un-nudged split is used.
func ResolvePercentages(prefs domain.UserPreferences, level HealthLevel) (domain.AllocationPercentages, error) {
	var base domain.AllocationPercentages
	if prefs.CustomAllocation != nil {
		base = *prefs.CustomAllocation
	} else {
		preset, err := StrategyPercentages(prefs.Strategy)
		if err != nil {
			return domain.AllocationPercentages{}, err
		}
		base = preset
	}
	if err := base.Validate(); err != nil {
		return domain.AllocationPercentages{}, err
	}
	nudged := ApplyHealthNudges(base, level)
	if nudged.Validate() != nil {
		return base, nil
	}
	return nudged, nil
}

// CalculateAutoAllocation splits the user's income across debt, emergency,
// investment, wants and needs buckets.
func CalculateAutoAllocation(r Records, prefs domain.UserPreferences, health FinancialHealth) (AllocationBreakdown, error) {
	pct, err := ResolvePercentages(prefs, health.Level)
	if err != nil {
		return AllocationBreakdown{}, err
	}

	agg := Aggregate(r)
	accountPayment := AccountDebtPayment(r.Accounts)
	available := nonNegative(agg.MonthlyIncome.Sub(agg.MonthlyExpenses).Sub(agg.MinimumPayments).Sub(accountPayment))

	share := func(p decimal.Decimal) decimal.Decimal {
		return available.Mul(p).Div(hundred)
	}

	extraDebt := share(pct.Debt)
	b := AllocationBreakdown{
		Strategy:               prefs.Strategy,
		HealthLevel:            health.Level,
		Percentages:            pct,
		TotalIncome:            agg.MonthlyIncome,
		AvailableForAllocation: available,
		MinimumPayments:        agg.MinimumPayments,
		AccountDebtPayment:     accountPayment,
		ExtraDebtPayment:       extraDebt,
		DebtPayment:            extraDebt.Add(accountPayment),
		EmergencyFund:          share(pct.Emergency),
		Investments:            share(pct.Investment),
		Wants:                  share(pct.Wants),
		Needs:                  agg.MonthlyExpenses,
		Deficit:                decimal.Zero,
	}
	if b.Strategy == "" {
		b.Strategy = domain.StrategyBalanced
	}

	months := prefs.EmergencyFundMonths
	if months <= 0 {
		months = EmergencyFundTargetMonths
	}
	b.EmergencyFundTarget = agg.MonthlyExpenses.Add(agg.MinimumPayments).Mul(decimal.NewFromInt(int64(months)))

	allocated := b.DebtPayment.Add(b.EmergencyFund).Add(b.Investments).Add(b.Wants).Add(b.Needs)
	b.Unallocated = nonNegative(b.TotalIncome.Sub(allocated))

	obligations := agg.MonthlyExpenses.Add(agg.MinimumPayments).Add(accountPayment)
	b.Deficit = nonNegative(obligations.Sub(b.TotalIncome))

	b.Notes = allocationNotes(b)
	return b, nil
}

func allocationNotes(b AllocationBreakdown) []string {
	notes := make([]string, 0, 3)
	if b.AccountDebtPayment.IsPositive() {
		notes = append(notes, fmt.Sprintf("%s is reserved for overdraft and negative balances before any other allocation.", b.AccountDebtPayment.StringFixed(2)))
	}
	if b.Deficit.IsPositive() {
		notes = append(notes, fmt.Sprintf("Expenses and required payments exceed income by %s each month.", b.Deficit.StringFixed(2)))
	} else if b.AvailableForAllocation.IsZero() {
		notes = append(notes, "No surplus is available for allocation this month.")
	}
	if b.HealthLevel == HealthPoor {
		notes = append(notes, "Allocation shifted toward emergency savings and debt while financial health is poor.")
	}
	return notes
}
