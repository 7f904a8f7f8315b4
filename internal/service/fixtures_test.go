package service

import (
	"context"
	"sync"
	"time"

	"github.com/dafibh/finwise/finwise-backend/internal/domain"
	"github.com/dafibh/finwise/finwise-backend/internal/testutil"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var fixedNow = time.Date(2026, 3, 15, 9, 30, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func amount(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

type recordingHook struct {
	mu    sync.Mutex
	calls []uuid.UUID
}

func (h *recordingHook) RecordsChanged(ctx context.Context, userID uuid.UUID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.calls = append(h.calls, userID)
}

// seedBasicFinances gives a user a checking account, a salary, rent and a car loan
func seedBasicFinances(stores *testutil.MockStores, userID uuid.UUID) {
	stores.Accounts.Add(userID, &domain.BankAccount{Name: "Checking", Type: domain.AccountTypeChecking, Balance: amount("2500"), IsActive: true})
	stores.Incomes.Add(userID, &domain.Income{Name: "Salary", Amount: amount("4000"), Frequency: domain.FrequencyMonthly, MonthlyAmount: amount("4000")})
	stores.Expenses.Add(userID, &domain.Expense{Name: "Rent", Amount: amount("1500"), Frequency: domain.FrequencyMonthly, MonthlyAmount: amount("1500"), Category: domain.ExpenseNeed})
	stores.Loans.Add(userID, &domain.Loan{Name: "Car Loan", Principal: amount("5000"), CurrentBalance: amount("2000"), InterestRate: amount("1"), MinimumPayment: amount("100")})
}
