package finance

import (
	"testing"
	"time"

	"github.com/dafibh/finwise/finwise-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

var testNow = time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

func d(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func dp(v string) *decimal.Decimal {
	x := d(v)
	return &x
}

func assertDecimal(t *testing.T, expected string, actual decimal.Decimal) {
	t.Helper()
	assert.True(t, d(expected).Equal(actual), "expected %s, got %s", expected, actual.String())
}

func account(name string, typ domain.AccountType, balance string) *domain.BankAccount {
	return &domain.BankAccount{
		RecordMeta: domain.RecordMeta{ID: uuid.New()},
		Name:       name,
		Type:       typ,
		Balance:    d(balance),
		IsActive:   true,
	}
}

func monthlyIncome(name, amount string) *domain.Income {
	return &domain.Income{
		RecordMeta:    domain.RecordMeta{ID: uuid.New()},
		Name:          name,
		Amount:        d(amount),
		Frequency:     domain.FrequencyMonthly,
		MonthlyAmount: d(amount),
	}
}

func monthlyExpense(name, amount string, category domain.ExpenseCategory) *domain.Expense {
	return &domain.Expense{
		RecordMeta:    domain.RecordMeta{ID: uuid.New()},
		Name:          name,
		Amount:        d(amount),
		Frequency:     domain.FrequencyMonthly,
		MonthlyAmount: d(amount),
		Category:      category,
	}
}

func loan(name, balance, rate, minimum string) *domain.Loan {
	return &domain.Loan{
		RecordMeta:     domain.RecordMeta{ID: uuid.New()},
		Name:           name,
		Principal:      d(balance),
		CurrentBalance: d(balance),
		InterestRate:   d(rate),
		MinimumPayment: d(minimum),
	}
}

func dailyEntries(n int, now time.Time) []*domain.DailyEntry {
	out := make([]*domain.DailyEntry, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, &domain.DailyEntry{
			RecordMeta: domain.RecordMeta{ID: uuid.New()},
			Date:       now.AddDate(0, 0, -i),
			Income:     d("10"),
			Expenses:   d("5"),
		})
	}
	return out
}
