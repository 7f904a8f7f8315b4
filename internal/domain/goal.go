package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

type GoalCategory string

const (
	GoalEmergency  GoalCategory = "emergency"
	GoalInvestment GoalCategory = "investment"
	GoalPurchase   GoalCategory = "purchase"
	GoalVacation   GoalCategory = "vacation"
	GoalOther      GoalCategory = "other"
)

type GoalPriority string

const (
	PriorityHigh   GoalPriority = "high"
	PriorityMedium GoalPriority = "medium"
	PriorityLow    GoalPriority = "low"
)

var (
	ErrGoalTargetNegative   = errors.New("goal target must not be negative")
	ErrGoalTargetDateNeeded = errors.New("goal target date is required")
	ErrInvalidPriority      = errors.New("invalid priority")
	ErrInvalidPaymentType   = errors.New("expected payment type must be income or expense")
)

var validGoalCategories = map[GoalCategory]bool{
	GoalEmergency:  true,
	GoalInvestment: true,
	GoalPurchase:   true,
	GoalVacation:   true,
	GoalOther:      true,
}

// FinancialGoal is a savings target
type FinancialGoal struct {
	RecordMeta
	Name          string          `json:"name"`
	TargetAmount  decimal.Decimal `json:"targetAmount"`
	CurrentAmount decimal.Decimal `json:"currentAmount"`
	TargetDate    time.Time       `json:"targetDate"`
	Category      GoalCategory    `json:"category"`
	Priority      GoalPriority    `json:"priority"`
}

func (g *FinancialGoal) Kind() RecordKind { return KindGoal }

func (g *FinancialGoal) Validate() error {
	if err := validateName(g.Name); err != nil {
		return err
	}
	if g.TargetAmount.IsNegative() {
		return ErrGoalTargetNegative
	}
	if g.CurrentAmount.IsNegative() {
		return ErrAmountNegative
	}
	if g.TargetDate.IsZero() {
		return ErrGoalTargetDateNeeded
	}
	if !validGoalCategories[g.Category] {
		return ErrInvalidCategory
	}
	switch g.Priority {
	case PriorityHigh, PriorityMedium, PriorityLow:
	default:
		return ErrInvalidPriority
	}
	return nil
}

// CountsAsAsset reports whether the goal's saved balance is counted in net worth.
// Only investment and emergency goals are treated as wealth.
func (g *FinancialGoal) CountsAsAsset() bool {
	return g.Category == GoalInvestment || g.Category == GoalEmergency
}

// IsComplete reports whether the goal has reached its target
func (g *FinancialGoal) IsComplete() bool {
	return g.CurrentAmount.GreaterThanOrEqual(g.TargetAmount)
}

type PaymentType string

const (
	PaymentIncome  PaymentType = "income"
	PaymentExpense PaymentType = "expense"
)

// ExpectedPayment is a one-off payment expected in or out.
// Unpaid entries are provisional assets or liabilities; paid ones are ignored.
type ExpectedPayment struct {
	RecordMeta
	Description  string          `json:"description"`
	Type         PaymentType     `json:"type"`
	Amount       decimal.Decimal `json:"amount"`
	ExpectedDate time.Time       `json:"expectedDate"`
	IsPaid       bool            `json:"isPaid"`
}

func (p *ExpectedPayment) Kind() RecordKind { return KindExpectedPayment }

func (p *ExpectedPayment) Validate() error {
	if err := validateName(p.Description); err != nil {
		return err
	}
	if p.Type != PaymentIncome && p.Type != PaymentExpense {
		return ErrInvalidPaymentType
	}
	if p.Amount.IsNegative() {
		return ErrAmountNegative
	}
	return nil
}
