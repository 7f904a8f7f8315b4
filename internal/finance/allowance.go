package finance

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// SpendingAllowance reports discretionary headroom. It is advisory only.
type SpendingAllowance struct {
	Ceiling        decimal.Decimal `json:"ceiling"`
	CurrentWants   decimal.Decimal `json:"currentWants"`
	Remaining      decimal.Decimal `json:"remaining"`
	CanSpend       bool            `json:"canSpend"`
	PercentageUsed float64         `json:"percentageUsed"`
	Messages       []string        `json:"messages"`
}

// CalculateSpendingAllowance caps wants at 30% of income (50/30/20) and reports
// how much of that ceiling is left.
func CalculateSpendingAllowance(r Records) SpendingAllowance {
	income := TotalMonthlyIncome(r.Incomes)
	wants := MonthlyWantsSpending(r.Expenses)
	ceiling := income.Mul(WantsShareOfIncome)
	remaining := ceiling.Sub(wants)

	used := 0.0
	if ceiling.IsPositive() {
		used = safeRatio(wants, ceiling) * 100
	} else if wants.IsPositive() {
		used = 100
	}

	a := SpendingAllowance{
		Ceiling:        ceiling,
		CurrentWants:   wants,
		Remaining:      remaining,
		CanSpend:       remaining.IsPositive(),
		PercentageUsed: used,
	}

	switch {
	case income.IsZero():
		a.Messages = []string{"Add your income to see a spending allowance."}
	case !a.CanSpend && remaining.IsNegative():
		a.Messages = []string{fmt.Sprintf("Wants spending is %s over the 30%% guideline. Consider cutting back.", remaining.Neg().StringFixed(2))}
	case !a.CanSpend:
		a.Messages = []string{"You have used your full discretionary budget for the month."}
	case used >= 80:
		a.Messages = []string{fmt.Sprintf("Only %s left for wants this month. Spend carefully.", remaining.StringFixed(2))}
	default:
		a.Messages = []string{fmt.Sprintf("You can spend up to %s more on wants this month.", remaining.StringFixed(2))}
	}
	return a
}
