package finance

import (
	"testing"

	"github.com/dafibh/finwise/finwise-backend/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bucketSum(b AllocationBreakdown) decimal.Decimal {
	return b.DebtPayment.Add(b.EmergencyFund).Add(b.Investments).Add(b.Wants).Add(b.Needs)
}

func TestCalculateAutoAllocation_ZeroIncome(t *testing.T) {
	tests := []struct {
		name    string
		records Records
		needs   string
		deficit string
	}{
		{"no records", Records{}, "0", "0"},
		{"installment loan", Records{Loans: []*domain.Loan{loan("Car", "5000", "1", "300")}}, "0", "300"},
		{"expenses", Records{Expenses: []*domain.Expense{monthlyExpense("Rent", "800", domain.ExpenseNeed)}}, "800", "800"},
		{
			"loan and expenses",
			Records{
				Loans:    []*domain.Loan{loan("Car", "5000", "1", "300")},
				Expenses: []*domain.Expense{monthlyExpense("Rent", "800", domain.ExpenseNeed), monthlyExpense("Dining", "150", domain.ExpenseWant)},
			},
			"950", "1250",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := CalculateAutoAllocation(tt.records, domain.DefaultPreferences(), FinancialHealth{Level: HealthPoor})
			require.NoError(t, err)

			assertDecimal(t, "0", b.TotalIncome)
			assertDecimal(t, "0", b.AvailableForAllocation)
			assertDecimal(t, "0", b.ExtraDebtPayment)
			assertDecimal(t, "0", b.DebtPayment)
			assertDecimal(t, "0", b.EmergencyFund)
			assertDecimal(t, "0", b.Investments)
			assertDecimal(t, "0", b.Wants)
			assertDecimal(t, "0", b.Unallocated)
			assert.False(t, b.Unallocated.IsNegative())
			assertDecimal(t, tt.needs, b.Needs)
			assertDecimal(t, tt.deficit, b.Deficit)
		})
	}
}

func TestCalculateAutoAllocation_Conservation(t *testing.T) {
	r := Records{
		Incomes:  []*domain.Income{monthlyIncome("Salary", "5000")},
		Expenses: []*domain.Expense{monthlyExpense("Rent", "2000", domain.ExpenseNeed)},
		Loans:    []*domain.Loan{loan("Car", "10000", "1", "300")},
	}

	b, err := CalculateAutoAllocation(r, domain.DefaultPreferences(), FinancialHealth{Level: HealthGood})
	require.NoError(t, err)

	assertDecimal(t, "2700", b.AvailableForAllocation)
	assertDecimal(t, "540", b.ExtraDebtPayment)
	assertDecimal(t, "300", b.MinimumPayments)
	assertDecimal(t, "540", b.DebtPayment)
	assertDecimal(t, "270", b.EmergencyFund)
	assertDecimal(t, "270", b.Investments)
	assertDecimal(t, "810", b.Wants)
	assertDecimal(t, "2000", b.Needs)
	// Minimums plus the unassigned 30% of surplus
	assertDecimal(t, "1110", b.Unallocated)
	assertDecimal(t, "0", b.Deficit)
	assertDecimal(t, "5000", bucketSum(b).Add(b.Unallocated))
	assertDecimal(t, "13800", b.EmergencyFundTarget)
	assert.Equal(t, domain.StrategyBalanced, b.Strategy)
}

func TestCalculateAutoAllocation_Deficit(t *testing.T) {
	r := Records{
		Accounts: []*domain.BankAccount{account("Checking", domain.AccountTypeChecking, "-1000")},
		Incomes:  []*domain.Income{monthlyIncome("Salary", "1000")},
		Expenses: []*domain.Expense{monthlyExpense("Rent", "1500", domain.ExpenseNeed)},
	}

	b, err := CalculateAutoAllocation(r, domain.DefaultPreferences(), FinancialHealth{Level: HealthPoor})
	require.NoError(t, err)

	assertDecimal(t, "0", b.AvailableForAllocation)
	assertDecimal(t, "100", b.AccountDebtPayment)
	assertDecimal(t, "50", b.MinimumPayments)
	assertDecimal(t, "100", b.DebtPayment)
	assertDecimal(t, "0", b.Unallocated)
	// Rent 1500 + account minimum 50 + account payoff 100 against income 1000
	assertDecimal(t, "650", b.Deficit)
	assert.Len(t, b.Notes, 3)
}

func TestCalculateAutoAllocation_RejectsInvalidSplit(t *testing.T) {
	prefs := domain.DefaultPreferences()
	prefs.CustomAllocation = &domain.AllocationPercentages{
		Debt:       d("60"),
		Emergency:  d("30"),
		Investment: d("20"),
		Wants:      d("0"),
	}
	_, err := CalculateAutoAllocation(Records{}, prefs, FinancialHealth{Level: HealthGood})
	assert.ErrorIs(t, err, domain.ErrAllocationOverflow)

	prefs = domain.DefaultPreferences()
	prefs.Strategy = "aggressive"
	_, err = CalculateAutoAllocation(Records{}, prefs, FinancialHealth{Level: HealthGood})
	assert.ErrorIs(t, err, domain.ErrInvalidStrategy)
}

func TestApplyHealthNudges(t *testing.T) {
	poor := ApplyHealthNudges(DefaultAllocation, HealthPoor)
	assertDecimal(t, "30", poor.Debt)
	assertDecimal(t, "20", poor.Emergency)
	assertDecimal(t, "0", poor.Investment)
	assertDecimal(t, "20", poor.Wants)

	excellent := ApplyHealthNudges(DefaultAllocation, HealthExcellent)
	assertDecimal(t, "15", excellent.Debt)
	assertDecimal(t, "10", excellent.Emergency)
	assertDecimal(t, "20", excellent.Investment)
	assertDecimal(t, "25", excellent.Wants)

	fair := ApplyHealthNudges(DefaultAllocation, HealthFair)
	assert.Equal(t, DefaultAllocation, fair)

	// Presets are not modified
	assertDecimal(t, "20", DefaultAllocation.Debt)
}

func TestResolvePercentages(t *testing.T) {
	t.Run("strategy preset", func(t *testing.T) {
		prefs := domain.DefaultPreferences()
		prefs.Strategy = domain.StrategyDebtFocused
		pct, err := ResolvePercentages(prefs, HealthGood)
		require.NoError(t, err)
		assert.Equal(t, DebtFocusedAllocation, pct)
	})

	t.Run("nudge overflow keeps base split", func(t *testing.T) {
		custom := domain.AllocationPercentages{Debt: d("50"), Emergency: d("40"), Investment: d("5"), Wants: d("5")}
		prefs := domain.DefaultPreferences()
		prefs.CustomAllocation = &custom
		pct, err := ResolvePercentages(prefs, HealthPoor)
		require.NoError(t, err)
		assert.Equal(t, custom, pct)
	})
}

func TestAccountDebtPayment(t *testing.T) {
	overdrawn := account("Overdrawn", domain.AccountTypeChecking, "0")
	overdrawn.OverdraftLimit = dp("500")
	overdrawn.OverdraftUsed = dp("200")

	closed := account("Closed", domain.AccountTypeChecking, "-5000")
	closed.IsActive = false

	accounts := []*domain.BankAccount{
		account("Checking", domain.AccountTypeChecking, "-1000"),
		overdrawn,
		closed,
	}
	assertDecimal(t, "140", AccountDebtPayment(accounts))
}

func TestCalculateSpendingAllowance(t *testing.T) {
	tests := []struct {
		name      string
		income    string
		wants     string
		remaining string
		canSpend  bool
		message   string
	}{
		{"room to spend", "4000", "300", "900", true, "You can spend up to 900.00 more"},
		{"nearly spent", "4000", "1000", "200", true, "Only 200.00 left"},
		{"exactly spent", "4000", "1200", "0", false, "used your full discretionary budget"},
		{"over budget", "4000", "1500", "-300", false, "300.00 over the 30% guideline"},
		{"no income", "0", "100", "-100", false, "Add your income"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Records{
				Expenses: []*domain.Expense{
					monthlyExpense("Fun", tt.wants, domain.ExpenseWant),
					monthlyExpense("Rent", "900", domain.ExpenseNeed),
				},
			}
			if tt.income != "0" {
				r.Incomes = []*domain.Income{monthlyIncome("Salary", tt.income)}
			}

			a := CalculateSpendingAllowance(r)
			assertDecimal(t, tt.remaining, a.Remaining)
			assert.Equal(t, tt.canSpend, a.CanSpend)
			require.Len(t, a.Messages, 1)
			assert.Contains(t, a.Messages[0], tt.message)
		})
	}
}
