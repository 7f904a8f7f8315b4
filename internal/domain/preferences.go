package domain

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/shopspring/decimal"
)

// FinancialStrategy steers how surplus income is allocated
type FinancialStrategy string

const (
	StrategyDebtFocused    FinancialStrategy = "debt-focused"
	StrategyBalanced       FinancialStrategy = "balanced"
	StrategySavingsFocused FinancialStrategy = "savings-focused"
)

// DebtStrategy orders installment loans for payoff
type DebtStrategy string

const (
	DebtAvalanche DebtStrategy = "avalanche"
	DebtSnowball  DebtStrategy = "snowball"
	DebtHybrid    DebtStrategy = "hybrid"
)

type RiskTolerance string

const (
	RiskConservative RiskTolerance = "conservative"
	RiskModerate     RiskTolerance = "moderate"
	RiskAggressive   RiskTolerance = "aggressive"
)

var (
	ErrInvalidStrategy      = errors.New("invalid strategy")
	ErrInvalidDebtStrategy  = errors.New("invalid debt strategy")
	ErrInvalidRiskTolerance = errors.New("invalid risk tolerance")
	ErrInvalidReminderTime  = errors.New("reminder time must be HH:MM")
	ErrInvalidFundMonths    = errors.New("emergency fund months must be between 1 and 24")
	ErrAllocationNegative   = errors.New("allocation percentages must not be negative")
	ErrAllocationOverflow   = errors.New("allocation percentages sum above 100")
)

var reminderTimePattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// ParseFinancialStrategy rejects unknown strategy strings instead of defaulting
func ParseFinancialStrategy(s string) (FinancialStrategy, error) {
	switch FinancialStrategy(s) {
	case StrategyDebtFocused, StrategyBalanced, StrategySavingsFocused:
		return FinancialStrategy(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStrategy, s)
}

// ParseDebtStrategy rejects unknown debt strategy strings
func ParseDebtStrategy(s string) (DebtStrategy, error) {
	switch DebtStrategy(s) {
	case DebtAvalanche, DebtSnowball, DebtHybrid:
		return DebtStrategy(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidDebtStrategy, s)
}

// AllocationPercentages are shares of available surplus, in percent
type AllocationPercentages struct {
	Debt       decimal.Decimal `json:"debt"`
	Emergency  decimal.Decimal `json:"emergency"`
	Investment decimal.Decimal `json:"investment"`
	Wants      decimal.Decimal `json:"wants"`
}

// Sum returns the total share allocated
func (p AllocationPercentages) Sum() decimal.Decimal {
	return p.Debt.Add(p.Emergency).Add(p.Investment).Add(p.Wants)
}

// Validate rejects negative shares and configurations above 100%
func (p AllocationPercentages) Validate() error {
	for _, v := range []decimal.Decimal{p.Debt, p.Emergency, p.Investment, p.Wants} {
		if v.IsNegative() {
			return ErrAllocationNegative
		}
	}
	if p.Sum().GreaterThan(decimal.NewFromInt(100)) {
		return ErrAllocationOverflow
	}
	return nil
}

// UserPreferences is read-only configuration for the derivation engine
type UserPreferences struct {
	Strategy            FinancialStrategy      `json:"strategy"`
	DebtStrategy        DebtStrategy           `json:"debtStrategy"`
	RiskTolerance       RiskTolerance          `json:"riskTolerance"`
	EmergencyFundMonths int                    `json:"emergencyFundMonths"`
	AutoAllocate        bool                   `json:"autoAllocate"`
	ReminderTime        string                 `json:"reminderTime"`
	Currency            string                 `json:"currency"`
	EmailReminders      bool                   `json:"emailReminders"`
	CustomAllocation    *AllocationPercentages `json:"customAllocation,omitempty"`
}

// DefaultPreferences returns the preferences used when a user has saved none
func DefaultPreferences() UserPreferences {
	return UserPreferences{
		Strategy:            StrategyBalanced,
		DebtStrategy:        DebtAvalanche,
		RiskTolerance:       RiskModerate,
		EmergencyFundMonths: 6,
		AutoAllocate:        true,
		ReminderTime:        "09:00",
		Currency:            "USD",
	}
}

func (p UserPreferences) Validate() error {
	if _, err := ParseFinancialStrategy(string(p.Strategy)); err != nil {
		return err
	}
	if _, err := ParseDebtStrategy(string(p.DebtStrategy)); err != nil {
		return err
	}
	switch p.RiskTolerance {
	case RiskConservative, RiskModerate, RiskAggressive:
	default:
		return ErrInvalidRiskTolerance
	}
	if p.EmergencyFundMonths < 1 || p.EmergencyFundMonths > 24 {
		return ErrInvalidFundMonths
	}
	if !reminderTimePattern.MatchString(p.ReminderTime) {
		return ErrInvalidReminderTime
	}
	if len(p.Currency) != 3 {
		return fmt.Errorf("%w: currency must be an ISO 4217 code", ErrInvalidInput)
	}
	if p.CustomAllocation != nil {
		return p.CustomAllocation.Validate()
	}
	return nil
}

// ReminderHour returns the hour component of ReminderTime, or -1 if malformed
func (p UserPreferences) ReminderHour() int {
	if !reminderTimePattern.MatchString(p.ReminderTime) {
		return -1
	}
	return int(p.ReminderTime[0]-'0')*10 + int(p.ReminderTime[1]-'0')
}
