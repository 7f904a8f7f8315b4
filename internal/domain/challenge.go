package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ChallengeType string

const (
	ChallengeSavings          ChallengeType = "savings"
	ChallengeDebtPayoff       ChallengeType = "debt_payoff"
	ChallengeExpenseReduction ChallengeType = "expense_reduction"
	ChallengeDailyTracking    ChallengeType = "daily_tracking"
	ChallengeEmergencyFund    ChallengeType = "emergency_fund"
	ChallengeBusinessSales    ChallengeType = "business_sales"
)

type ChallengeCategory string

const (
	CategorySaving    ChallengeCategory = "saving"
	CategoryDebt      ChallengeCategory = "debt"
	CategorySpending  ChallengeCategory = "spending"
	CategoryHabit     ChallengeCategory = "habit"
	CategoryBusiness  ChallengeCategory = "business"
	CategoryEmergency ChallengeCategory = "emergency"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

var ErrChallengeTargetInvalid = errors.New("challenge target must be positive")

// Challenge is a gamified objective derived from the user's records.
// LoanID and GoalID reference the entity whose progress the challenge tracks.
type Challenge struct {
	RecordMeta
	Type        ChallengeType     `json:"type"`
	Category    ChallengeCategory `json:"category"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Target      decimal.Decimal   `json:"target"`
	Current     decimal.Decimal   `json:"current"`
	Baseline    decimal.Decimal   `json:"baseline"`
	Points      int               `json:"points"`
	Deadline    time.Time         `json:"deadline"`
	IsCompleted bool              `json:"isCompleted"`
	IsActive    bool              `json:"isActive"`
	Difficulty  Difficulty        `json:"difficulty"`
	LoanID      *uuid.UUID        `json:"loanId,omitempty"`
	GoalID      *uuid.UUID        `json:"goalId,omitempty"`
	CompletedAt *time.Time        `json:"completedAt,omitempty"`
}

func (c *Challenge) Kind() RecordKind { return KindChallenge }

func (c *Challenge) Validate() error {
	if c.Title == "" {
		return ErrNameRequired
	}
	if !c.Target.IsPositive() {
		return ErrChallengeTargetInvalid
	}
	return nil
}

// IsLive reports whether the challenge is active and not yet completed
func (c *Challenge) IsLive() bool {
	return c.IsActive && !c.IsCompleted
}

// UserProgress is the user's accumulated gamification state
type UserProgress struct {
	TotalPoints         int        `json:"totalPoints"`
	Level               int        `json:"level"`
	CurrentStreak       int        `json:"currentStreak"`
	LongestStreak       int        `json:"longestStreak"`
	ChallengesCompleted int        `json:"challengesCompleted"`
	LastActivityDate    *time.Time `json:"lastActivityDate,omitempty"`
}
