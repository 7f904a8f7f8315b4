package finance

import (
	"math"
	"time"

	"github.com/dafibh/finwise/finwise-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type GoalStatus string

const (
	GoalAhead     GoalStatus = "ahead"
	GoalOnTrack   GoalStatus = "on-track"
	GoalBehind    GoalStatus = "behind"
	GoalAtRisk    GoalStatus = "at-risk"
	GoalCompleted GoalStatus = "completed"
)

// GoalProgress is the projection for a single goal
type GoalProgress struct {
	GoalID             uuid.UUID       `json:"goalId"`
	Name               string          `json:"name"`
	ProgressPercentage float64         `json:"progressPercentage"`
	ElapsedPercentage  float64         `json:"elapsedPercentage"`
	DaysRemaining      int             `json:"daysRemaining"`
	MonthsRemaining    int             `json:"monthsRemaining"`
	MonthlyRequired    decimal.Decimal `json:"monthlyRequired"`
	Remaining          decimal.Decimal `json:"remaining"`
	Status             GoalStatus      `json:"status"`
	OnTrack            bool            `json:"onTrack"`
}

// CalculateGoalProgress projects whether a goal will be met by its target date.
// A zero target is treated as already complete.
func CalculateGoalProgress(goal *domain.FinancialGoal, now time.Time) GoalProgress {
	daysRemaining := int(math.Ceil(goal.TargetDate.Sub(now).Hours() / 24))
	if daysRemaining < 0 {
		daysRemaining = 0
	}
	monthsRemaining := int(math.Ceil(float64(daysRemaining) / float64(DaysPerMonthApprx)))
	if monthsRemaining < 1 {
		monthsRemaining = 1
	}

	progress := 100.0
	if goal.TargetAmount.IsPositive() {
		progress = safeRatio(goal.CurrentAmount, goal.TargetAmount) * 100
	}

	remaining := nonNegative(goal.TargetAmount.Sub(goal.CurrentAmount))
	monthlyRequired := remaining.Div(decimal.NewFromInt(int64(monthsRemaining)))

	elapsed := elapsedPercentage(goal.CreatedAt, goal.TargetDate, now)
	status := goalStatus(progress, elapsed)

	return GoalProgress{
		GoalID:             goal.ID,
		Name:               goal.Name,
		ProgressPercentage: progress,
		ElapsedPercentage:  elapsed,
		DaysRemaining:      daysRemaining,
		MonthsRemaining:    monthsRemaining,
		MonthlyRequired:    monthlyRequired,
		Remaining:          remaining,
		Status:             status,
		OnTrack:            status == GoalAhead || status == GoalOnTrack || status == GoalCompleted,
	}
}

// CalculateGoalsProgress projects every goal, preserving input order
func CalculateGoalsProgress(goals []*domain.FinancialGoal, now time.Time) []GoalProgress {
	out := make([]GoalProgress, 0, len(goals))
	for _, g := range goals {
		out = append(out, CalculateGoalProgress(g, now))
	}
	return out
}

// elapsedPercentage is the share of the goal's lifetime already spent, in [0, 100].
// A goal without a creation date, or created on its target date, counts as fully elapsed
// once the target date has passed and as not started otherwise.
func elapsedPercentage(created, target, now time.Time) float64 {
	total := target.Sub(created)
	if created.IsZero() || total <= 0 {
		if now.Before(target) {
			return 0
		}
		return 100
	}
	pct := float64(now.Sub(created)) / float64(total) * 100
	return math.Max(0, math.Min(100, pct))
}

func goalStatus(progress, elapsed float64) GoalStatus {
	switch {
	case progress >= 100:
		return GoalCompleted
	case progress >= elapsed+10:
		return GoalAhead
	case progress >= elapsed-10:
		return GoalOnTrack
	case progress >= elapsed-25:
		return GoalBehind
	default:
		return GoalAtRisk
	}
}
