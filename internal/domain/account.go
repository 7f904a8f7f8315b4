package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

type AccountType string

const (
	AccountTypeChecking   AccountType = "checking"
	AccountTypeSavings    AccountType = "savings"
	AccountTypeCredit     AccountType = "credit"
	AccountTypeInvestment AccountType = "investment"
	AccountTypeCash       AccountType = "cash"
)

var (
	ErrInvalidAccountType    = errors.New("invalid account type")
	ErrOverdraftUsedNegative = errors.New("overdraft used must not be negative")
	ErrOverdraftExceedsLimit = errors.New("overdraft used exceeds overdraft limit")
)

// ValidAccountTypes lists the accepted account types
var ValidAccountTypes = map[AccountType]bool{
	AccountTypeChecking:   true,
	AccountTypeSavings:    true,
	AccountTypeCredit:     true,
	AccountTypeInvestment: true,
	AccountTypeCash:       true,
}

// BankAccount is a user's bank, cash or card account.
// A negative balance and a used overdraft are both debt attributable to the account.
type BankAccount struct {
	RecordMeta
	Name           string           `json:"name"`
	Type           AccountType      `json:"type"`
	Balance        decimal.Decimal  `json:"balance"`
	IsActive       bool             `json:"isActive"`
	HasOverdraft   bool             `json:"hasOverdraft"`
	OverdraftLimit *decimal.Decimal `json:"overdraftLimit,omitempty"`
	OverdraftUsed  *decimal.Decimal `json:"overdraftUsed,omitempty"`
}

func (a *BankAccount) Kind() RecordKind { return KindAccount }

func (a *BankAccount) Validate() error {
	if err := validateName(a.Name); err != nil {
		return err
	}
	if !ValidAccountTypes[a.Type] {
		return ErrInvalidAccountType
	}
	if a.OverdraftUsed != nil {
		if a.OverdraftUsed.IsNegative() {
			return ErrOverdraftUsedNegative
		}
		if a.OverdraftUsed.GreaterThan(a.Limit()) {
			return ErrOverdraftExceedsLimit
		}
	}
	return nil
}

// Limit returns the overdraft limit, zero when absent
func (a *BankAccount) Limit() decimal.Decimal {
	if a.OverdraftLimit == nil {
		return decimal.Zero
	}
	return *a.OverdraftLimit
}

// UsedOverdraft returns the overdraft in use, clamped to [0, limit] when a limit is set.
// Absent fields count as zero.
func (a *BankAccount) UsedOverdraft() decimal.Decimal {
	if a.OverdraftUsed == nil || a.OverdraftUsed.IsNegative() {
		return decimal.Zero
	}
	used := *a.OverdraftUsed
	if a.OverdraftLimit != nil && used.GreaterThan(*a.OverdraftLimit) {
		return *a.OverdraftLimit
	}
	return used
}

// NegativeBalance returns max(0, -balance)
func (a *BankAccount) NegativeBalance() decimal.Decimal {
	if a.Balance.IsNegative() {
		return a.Balance.Neg()
	}
	return decimal.Zero
}

// HasDebt reports whether an active account carries a negative balance or used overdraft
func (a *BankAccount) HasDebt() bool {
	return a.IsActive && (a.Balance.IsNegative() || a.UsedOverdraft().IsPositive())
}
