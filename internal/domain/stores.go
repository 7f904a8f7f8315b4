package domain

// Stores bundles every per-user collection and document store
type Stores struct {
	Accounts         RecordStore[*BankAccount]
	Incomes          RecordStore[*Income]
	Expenses         RecordStore[*Expense]
	Loans            RecordStore[*Loan]
	Bills            RecordStore[*Bill]
	Goals            RecordStore[*FinancialGoal]
	ExpectedPayments RecordStore[*ExpectedPayment]
	BusinessEntries  RecordStore[*BusinessEntry]
	DailyEntries     RecordStore[*DailyEntry]
	Challenges       RecordStore[*Challenge]
	NetWorthHistory  RecordStore[*NetWorthSnapshot]

	Preferences DocumentStore[UserPreferences]
	Progress    DocumentStore[UserProgress]
}
