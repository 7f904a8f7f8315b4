package postgres

import (
	"github.com/dafibh/finwise/finwise-backend/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewStores creates every Postgres-backed store on one pool
func NewStores(pool *pgxpool.Pool) domain.Stores {
	return domain.Stores{
		Accounts:         NewRecordStore(pool, func() *domain.BankAccount { return &domain.BankAccount{} }),
		Incomes:          NewRecordStore(pool, func() *domain.Income { return &domain.Income{} }),
		Expenses:         NewRecordStore(pool, func() *domain.Expense { return &domain.Expense{} }),
		Loans:            NewRecordStore(pool, func() *domain.Loan { return &domain.Loan{} }),
		Bills:            NewRecordStore(pool, func() *domain.Bill { return &domain.Bill{} }),
		Goals:            NewRecordStore(pool, func() *domain.FinancialGoal { return &domain.FinancialGoal{} }),
		ExpectedPayments: NewRecordStore(pool, func() *domain.ExpectedPayment { return &domain.ExpectedPayment{} }),
		BusinessEntries:  NewRecordStore(pool, func() *domain.BusinessEntry { return &domain.BusinessEntry{} }),
		DailyEntries:     NewRecordStore(pool, func() *domain.DailyEntry { return &domain.DailyEntry{} }),
		Challenges:       NewRecordStore(pool, func() *domain.Challenge { return &domain.Challenge{} }),
		NetWorthHistory:  NewRecordStore(pool, func() *domain.NetWorthSnapshot { return &domain.NetWorthSnapshot{} }),
		Preferences:      NewDocumentStore[domain.UserPreferences](pool, domain.DocumentPreferences),
		Progress:         NewDocumentStore[domain.UserProgress](pool, domain.DocumentProgress),
	}
}
