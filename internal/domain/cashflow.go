package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

type Frequency string

const (
	FrequencyWeekly   Frequency = "weekly"
	FrequencyBiweekly Frequency = "biweekly"
	FrequencyMonthly  Frequency = "monthly"
	FrequencyYearly   Frequency = "yearly"
)

// ExpenseCategory splits spending into needs and wants
type ExpenseCategory string

const (
	ExpenseNeed ExpenseCategory = "need"
	ExpenseWant ExpenseCategory = "want"
)

var ErrInvalidFrequency = errors.New("invalid frequency")

// ValidFrequencies lists the accepted recurrence frequencies
var ValidFrequencies = map[Frequency]bool{
	FrequencyWeekly:   true,
	FrequencyBiweekly: true,
	FrequencyMonthly:  true,
	FrequencyYearly:   true,
}

// Income is a recurring income source.
// MonthlyAmount is derived from (Amount, Frequency) and recomputed on every write.
type Income struct {
	RecordMeta
	Name          string          `json:"name"`
	Amount        decimal.Decimal `json:"amount"`
	Frequency     Frequency       `json:"frequency"`
	MonthlyAmount decimal.Decimal `json:"monthlyAmount"`
}

func (i *Income) Kind() RecordKind { return KindIncome }

func (i *Income) Validate() error {
	if err := validateName(i.Name); err != nil {
		return err
	}
	if i.Amount.IsNegative() {
		return ErrAmountNegative
	}
	if !ValidFrequencies[i.Frequency] {
		return ErrInvalidFrequency
	}
	return nil
}

// Expense is a recurring expense classified as a need or a want
type Expense struct {
	RecordMeta
	Name          string          `json:"name"`
	Amount        decimal.Decimal `json:"amount"`
	Frequency     Frequency       `json:"frequency"`
	MonthlyAmount decimal.Decimal `json:"monthlyAmount"`
	Category      ExpenseCategory `json:"category"`
}

func (e *Expense) Kind() RecordKind { return KindExpense }

func (e *Expense) Validate() error {
	if err := validateName(e.Name); err != nil {
		return err
	}
	if e.Amount.IsNegative() {
		return ErrAmountNegative
	}
	if !ValidFrequencies[e.Frequency] {
		return ErrInvalidFrequency
	}
	if e.Category != ExpenseNeed && e.Category != ExpenseWant {
		return ErrInvalidCategory
	}
	return nil
}

// DailyEntry is a single day's logged income and spending
type DailyEntry struct {
	RecordMeta
	Date     time.Time       `json:"date"`
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
	Notes    *string         `json:"notes,omitempty"`
}

func (d *DailyEntry) Kind() RecordKind { return KindDailyEntry }

func (d *DailyEntry) Validate() error {
	if d.Date.IsZero() {
		return ErrInvalidInput
	}
	if d.Income.IsNegative() || d.Expenses.IsNegative() {
		return ErrAmountNegative
	}
	return nil
}

// BusinessEntry is one day of business sales. Profit = Sales - Budget - StockValue.
type BusinessEntry struct {
	RecordMeta
	Date         time.Time       `json:"date"`
	Sales        decimal.Decimal `json:"sales"`
	Budget       decimal.Decimal `json:"budget"`
	StockValue   decimal.Decimal `json:"stockValue"`
	Profit       decimal.Decimal `json:"profit"`
	ProfitToGoal decimal.Decimal `json:"profitToGoal"`
}

func (b *BusinessEntry) Kind() RecordKind { return KindBusinessEntry }

func (b *BusinessEntry) Validate() error {
	if b.Date.IsZero() {
		return ErrInvalidInput
	}
	if b.Sales.IsNegative() || b.Budget.IsNegative() || b.StockValue.IsNegative() {
		return ErrAmountNegative
	}
	return nil
}
