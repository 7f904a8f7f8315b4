package finance

import (
	"time"

	"github.com/dafibh/finwise/finwise-backend/internal/domain"
	"github.com/shopspring/decimal"
)

// Records is one user's full record set, read consistently by the caller.
// Engines read it and never modify it.
type Records struct {
	Accounts         []*domain.BankAccount
	Incomes          []*domain.Income
	Expenses         []*domain.Expense
	Loans            []*domain.Loan
	Bills            []*domain.Bill
	Goals            []*domain.FinancialGoal
	ExpectedPayments []*domain.ExpectedPayment
	BusinessEntries  []*domain.BusinessEntry
	DailyEntries     []*domain.DailyEntry
}

// HasFinancialData reports whether the user has entered anything at all
func (r Records) HasFinancialData() bool {
	return len(r.Accounts) > 0 || len(r.Incomes) > 0 || len(r.Expenses) > 0 ||
		len(r.Loans) > 0 || len(r.Goals) > 0 || len(r.BusinessEntries) > 0 ||
		len(r.DailyEntries) > 0
}

// TotalMonthlyIncome sums the monthly equivalent of every income
func TotalMonthlyIncome(incomes []*domain.Income) decimal.Decimal {
	total := decimal.Zero
	for _, i := range incomes {
		total = total.Add(i.MonthlyAmount)
	}
	return total
}

// TotalMonthlyExpenses sums the monthly equivalent of every expense
func TotalMonthlyExpenses(expenses []*domain.Expense) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		total = total.Add(e.MonthlyAmount)
	}
	return total
}

// MonthlyWantsSpending sums the monthly equivalent of "want" expenses
func MonthlyWantsSpending(expenses []*domain.Expense) decimal.Decimal {
	return sumExpensesByCategory(expenses, domain.ExpenseWant)
}

// MonthlyNeedsSpending sums the monthly equivalent of "need" expenses
func MonthlyNeedsSpending(expenses []*domain.Expense) decimal.Decimal {
	return sumExpensesByCategory(expenses, domain.ExpenseNeed)
}

func sumExpensesByCategory(expenses []*domain.Expense, category domain.ExpenseCategory) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		if e.Category == category {
			total = total.Add(e.MonthlyAmount)
		}
	}
	return total
}

// AccountDebt returns the debt carried by an account: negative balance plus used overdraft.
// Inactive accounts carry none.
func AccountDebt(a *domain.BankAccount) decimal.Decimal {
	if !a.IsActive {
		return decimal.Zero
	}
	return a.NegativeBalance().Add(a.UsedOverdraft())
}

// TotalAccountDebt sums AccountDebt over all accounts
func TotalAccountDebt(accounts []*domain.BankAccount) decimal.Decimal {
	total := decimal.Zero
	for _, a := range accounts {
		total = total.Add(AccountDebt(a))
	}
	return total
}

// TotalDebt = Σ loan balances + Σ active-account debt
func TotalDebt(loans []*domain.Loan, accounts []*domain.BankAccount) decimal.Decimal {
	total := TotalAccountDebt(accounts)
	for _, l := range loans {
		total = total.Add(l.CurrentBalance)
	}
	return total
}

// AccountMinimumPayment is the minimum due on one account's debt:
// 5% of a negative balance with a floor of 25, plus 5% of used overdraft with no floor.
func AccountMinimumPayment(a *domain.BankAccount) decimal.Decimal {
	if !a.IsActive {
		return decimal.Zero
	}
	payment := decimal.Zero
	if a.Balance.IsNegative() {
		payment = payment.Add(maxDecimal(a.Balance.Abs().Mul(AccountMinimumPaymentRate), AccountMinimumPaymentFloor))
	}
	if used := a.UsedOverdraft(); used.IsPositive() {
		payment = payment.Add(used.Mul(AccountMinimumPaymentRate))
	}
	return payment
}

// MinimumPayments = Σ loan minimums + Σ active-account minimums
func MinimumPayments(loans []*domain.Loan, accounts []*domain.BankAccount) decimal.Decimal {
	total := decimal.Zero
	for _, l := range loans {
		total = total.Add(l.MinimumPayment)
	}
	for _, a := range accounts {
		total = total.Add(AccountMinimumPayment(a))
	}
	return total
}

// EmergencyFunds sums the positive balances of active savings accounts
func EmergencyFunds(accounts []*domain.BankAccount) decimal.Decimal {
	total := decimal.Zero
	for _, a := range accounts {
		if a.IsActive && a.Type == domain.AccountTypeSavings && a.Balance.IsPositive() {
			total = total.Add(a.Balance)
		}
	}
	return total
}

// LiquidBalance sums the positive balances of active accounts
func LiquidBalance(accounts []*domain.BankAccount) decimal.Decimal {
	total := decimal.Zero
	for _, a := range accounts {
		if a.IsActive && a.Balance.IsPositive() {
			total = total.Add(a.Balance)
		}
	}
	return total
}

// NetWorthComponents returns the asset and liability sides of net worth:
//
//	assets      = Σ active positive balances + Σ investment/emergency goal savings + Σ unpaid expected income
//	liabilities = Σ loan balances + Σ active [negative balance + overdraft used] + Σ unpaid expected expense
func NetWorthComponents(
	accounts []*domain.BankAccount,
	loans []*domain.Loan,
	goals []*domain.FinancialGoal,
	expected []*domain.ExpectedPayment,
) (assets, liabilities decimal.Decimal) {
	assets = LiquidBalance(accounts)
	for _, g := range goals {
		if g.CountsAsAsset() {
			assets = assets.Add(g.CurrentAmount)
		}
	}

	liabilities = TotalDebt(loans, accounts)

	for _, p := range expected {
		if p.IsPaid {
			continue
		}
		switch p.Type {
		case domain.PaymentIncome:
			assets = assets.Add(p.Amount)
		case domain.PaymentExpense:
			liabilities = liabilities.Add(p.Amount)
		}
	}
	return assets, liabilities
}

// NetWorth is the one canonical net worth figure. Health scoring, the dashboard
// and the trend tracker all report this value; nothing else recomputes it.
func NetWorth(
	accounts []*domain.BankAccount,
	loans []*domain.Loan,
	goals []*domain.FinancialGoal,
	expected []*domain.ExpectedPayment,
) decimal.Decimal {
	assets, liabilities := NetWorthComponents(accounts, loans, goals, expected)
	return assets.Sub(liabilities)
}

// RecordsNetWorth applies NetWorth to a full record set
func RecordsNetWorth(r Records) decimal.Decimal {
	return NetWorth(r.Accounts, r.Loans, r.Goals, r.ExpectedPayments)
}

// BusinessContribution is the average daily profit over the trailing 30 days,
// scaled back to a 30-day month.
func BusinessContribution(entries []*domain.BusinessEntry, now time.Time) decimal.Decimal {
	cutoff := now.AddDate(0, 0, -BusinessWindowDays)
	profit := decimal.Zero
	for _, e := range entries {
		if e.Date.Before(cutoff) || e.Date.After(now) {
			continue
		}
		profit = profit.Add(e.Profit)
	}
	window := decimal.NewFromInt(BusinessWindowDays)
	dailyAverage := profit.Div(window)
	return dailyAverage.Mul(window)
}

// DailyAverages holds average daily income and spending over a window
type DailyAverages struct {
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
}

// DailyAverage averages daily entries over the trailing window of the given days.
// The divisor is always days, not the number of entries found, so sparse history
// pulls the average toward zero.
func DailyAverage(entries []*domain.DailyEntry, days int, now time.Time) DailyAverages {
	if days <= 0 {
		return DailyAverages{Income: decimal.Zero, Expenses: decimal.Zero}
	}
	cutoff := now.AddDate(0, 0, -days)
	income, expenses := decimal.Zero, decimal.Zero
	for _, e := range entries {
		if e.Date.Before(cutoff) || e.Date.After(now) {
			continue
		}
		income = income.Add(e.Income)
		expenses = expenses.Add(e.Expenses)
	}
	divisor := decimal.NewFromInt(int64(days))
	return DailyAverages{
		Income:   income.Div(divisor),
		Expenses: expenses.Div(divisor),
	}
}

// EntriesInWindow counts daily entries dated within the trailing window
func EntriesInWindow(entries []*domain.DailyEntry, days int, now time.Time) int {
	cutoff := now.AddDate(0, 0, -days)
	n := 0
	for _, e := range entries {
		if !e.Date.Before(cutoff) && !e.Date.After(now) {
			n++
		}
	}
	return n
}

// Aggregates bundles the base figures every downstream engine derives from
type Aggregates struct {
	MonthlyIncome   decimal.Decimal `json:"monthlyIncome"`
	MonthlyExpenses decimal.Decimal `json:"monthlyExpenses"`
	TotalDebt       decimal.Decimal `json:"totalDebt"`
	MinimumPayments decimal.Decimal `json:"minimumPayments"`
	EmergencyFunds  decimal.Decimal `json:"emergencyFunds"`
	NetWorth        decimal.Decimal `json:"netWorth"`
}

// Aggregate computes the base figures for a record set
func Aggregate(r Records) Aggregates {
	return Aggregates{
		MonthlyIncome:   TotalMonthlyIncome(r.Incomes),
		MonthlyExpenses: TotalMonthlyExpenses(r.Expenses),
		TotalDebt:       TotalDebt(r.Loans, r.Accounts),
		MinimumPayments: MinimumPayments(r.Loans, r.Accounts),
		EmergencyFunds:  EmergencyFunds(r.Accounts),
		NetWorth:        RecordsNetWorth(r),
	}
}
