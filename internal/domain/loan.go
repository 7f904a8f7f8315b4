package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrLoanPrincipalInvalid = errors.New("loan principal must be positive")
	ErrLoanRateNegative     = errors.New("interest rate must not be negative")
	ErrBillDueDateRequired  = errors.New("bill due date is required")
)

// Loan is an installment debt. InterestRate is a monthly percentage, not annual.
// CurrentBalance above Principal is accepted; clamping is left to the client.
type Loan struct {
	RecordMeta
	Name           string          `json:"name"`
	Principal      decimal.Decimal `json:"principal"`
	CurrentBalance decimal.Decimal `json:"currentBalance"`
	InterestRate   decimal.Decimal `json:"interestRate"`
	MinimumPayment decimal.Decimal `json:"minimumPayment"`
	DueDate        time.Time       `json:"dueDate"`
}

func (l *Loan) Kind() RecordKind { return KindLoan }

func (l *Loan) Validate() error {
	if err := validateName(l.Name); err != nil {
		return err
	}
	if !l.Principal.IsPositive() {
		return ErrLoanPrincipalInvalid
	}
	if l.CurrentBalance.IsNegative() || l.MinimumPayment.IsNegative() {
		return ErrAmountNegative
	}
	if l.InterestRate.IsNegative() {
		return ErrLoanRateNegative
	}
	return nil
}

// Bill is a scheduled bill
type Bill struct {
	RecordMeta
	Name      string          `json:"name"`
	Amount    decimal.Decimal `json:"amount"`
	DueDate   time.Time       `json:"dueDate"`
	IsPaid    bool            `json:"isPaid"`
	Frequency Frequency       `json:"frequency"`
	Category  string          `json:"category"`
}

func (b *Bill) Kind() RecordKind { return KindBill }

func (b *Bill) Validate() error {
	if err := validateName(b.Name); err != nil {
		return err
	}
	if b.Amount.IsNegative() {
		return ErrAmountNegative
	}
	if b.DueDate.IsZero() {
		return ErrBillDueDateRequired
	}
	if b.Frequency != "" && !ValidFrequencies[b.Frequency] {
		return ErrInvalidFrequency
	}
	return nil
}
