package cache

import (
	"time"

	"github.com/dafibh/finwise/finwise-backend/internal/domain"
)

// WrapStores puts a read-through cache in front of the collections the
// snapshot loader reads on every insight request. Documents, challenges and
// net worth history are left uncached.
func WrapStores(s domain.Stores, client Client, ttl time.Duration) domain.Stores {
	s.Accounts = NewRecordStore(s.Accounts, client, domain.KindAccount, ttl)
	s.Incomes = NewRecordStore(s.Incomes, client, domain.KindIncome, ttl)
	s.Expenses = NewRecordStore(s.Expenses, client, domain.KindExpense, ttl)
	s.Loans = NewRecordStore(s.Loans, client, domain.KindLoan, ttl)
	s.Bills = NewRecordStore(s.Bills, client, domain.KindBill, ttl)
	s.Goals = NewRecordStore(s.Goals, client, domain.KindGoal, ttl)
	s.ExpectedPayments = NewRecordStore(s.ExpectedPayments, client, domain.KindExpectedPayment, ttl)
	s.BusinessEntries = NewRecordStore(s.BusinessEntries, client, domain.KindBusinessEntry, ttl)
	s.DailyEntries = NewRecordStore(s.DailyEntries, client, domain.KindDailyEntry, ttl)
	return s
}
