// Package gamification derives challenges and progress from a user's records.
// Like the finance engine it is pure: every call recomputes from its inputs and
// returns new values without modifying them.
package gamification

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/dafibh/finwise/finwise-backend/internal/domain"
	"github.com/dafibh/finwise/finwise-backend/internal/finance"
	"github.com/dafibh/finwise/finwise-backend/internal/util"
	"github.com/shopspring/decimal"
)

const (
	ChallengeDurationDays = 30
	TrackingChallengeDays = 14
	DailyTrackingTarget   = 7
	PointsPerLevel        = 500
	debtPayoffShare       = "0.10"
	expenseReductionShare = "0.10"
	businessSalesGrowth   = "1.10"
)

var challengeCategories = map[domain.ChallengeType]domain.ChallengeCategory{
	domain.ChallengeSavings:          domain.CategorySaving,
	domain.ChallengeDebtPayoff:       domain.CategoryDebt,
	domain.ChallengeExpenseReduction: domain.CategorySpending,
	domain.ChallengeDailyTracking:    domain.CategoryHabit,
	domain.ChallengeEmergencyFund:    domain.CategoryEmergency,
	domain.ChallengeBusinessSales:    domain.CategoryBusiness,
}

// CategoryFor returns the category a challenge type is filed under
func CategoryFor(t domain.ChallengeType) domain.ChallengeCategory {
	return challengeCategories[t]
}

type challengeKey struct {
	t domain.ChallengeType
	c domain.ChallengeCategory
}

// GenerateChallenges proposes new challenges for the user. Nothing is generated
// for a user without financial data. A challenge is skipped when a live challenge
// with the same (type, category) already exists.
func GenerateChallenges(r finance.Records, existing []*domain.Challenge, now time.Time) []*domain.Challenge {
	if !r.HasFinancialData() {
		return []*domain.Challenge{}
	}

	live := make(map[challengeKey]bool, len(existing))
	for _, c := range existing {
		if c.IsLive() {
			live[challengeKey{c.Type, c.Category}] = true
		}
	}

	builders := []func(finance.Records, time.Time) *domain.Challenge{
		savingsChallenge,
		debtPayoffChallenge,
		expenseReductionChallenge,
		dailyTrackingChallenge,
		emergencyFundChallenge,
		businessSalesChallenge,
	}

	out := make([]*domain.Challenge, 0, len(builders))
	for _, build := range builders {
		c := build(r, now)
		if c == nil {
			continue
		}
		key := challengeKey{c.Type, c.Category}
		if live[key] {
			continue
		}
		live[key] = true
		out = append(out, c)
	}
	return out
}

func newChallenge(t domain.ChallengeType, title, description string, target, baseline decimal.Decimal, points int, difficulty domain.Difficulty, days int, now time.Time) *domain.Challenge {
	return &domain.Challenge{
		RecordMeta:  domain.RecordMeta{CreatedAt: now, UpdatedAt: now},
		Type:        t,
		Category:    CategoryFor(t),
		Title:       title,
		Description: description,
		Target:      target.Round(2),
		Current:     decimal.Zero,
		Baseline:    baseline,
		Points:      points,
		Deadline:    now.AddDate(0, 0, days),
		IsActive:    true,
		Difficulty:  difficulty,
	}
}

var priorityRank = map[domain.GoalPriority]int{
	domain.PriorityHigh:   0,
	domain.PriorityMedium: 1,
	domain.PriorityLow:    2,
}

func savingsChallenge(r finance.Records, now time.Time) *domain.Challenge {
	candidates := make([]*domain.FinancialGoal, 0, len(r.Goals))
	for _, g := range r.Goals {
		if !g.IsComplete() {
			candidates = append(candidates, g)
		}
	}
	if len(candidates) == 0 {
		return nil
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		pi, pj := priorityRank[candidates[i].Priority], priorityRank[candidates[j].Priority]
		if pi != pj {
			return pi < pj
		}
		return candidates[i].TargetDate.Before(candidates[j].TargetDate)
	})
	goal := candidates[0]

	progress := finance.CalculateGoalProgress(goal, now)
	target := progress.MonthlyRequired
	if !target.IsPositive() {
		return nil
	}

	c := newChallenge(domain.ChallengeSavings,
		fmt.Sprintf("Save toward %s", goal.Name),
		fmt.Sprintf("Add %s to your %s goal within %d days", target.StringFixed(2), goal.Name, ChallengeDurationDays),
		target, goal.CurrentAmount, 100, difficultyFor(progress.Status), ChallengeDurationDays, now)
	id := goal.ID
	c.GoalID = &id
	return c
}

func difficultyFor(status finance.GoalStatus) domain.Difficulty {
	switch status {
	case finance.GoalAtRisk:
		return domain.DifficultyHard
	case finance.GoalBehind:
		return domain.DifficultyMedium
	default:
		return domain.DifficultyEasy
	}
}

func debtPayoffChallenge(r finance.Records, now time.Time) *domain.Challenge {
	if len(r.Loans) == 0 {
		return nil
	}
	ordered := finance.OrderLoans(r.Loans, domain.DebtAvalanche)
	if len(ordered) == 0 {
		return nil
	}
	loan := ordered[0]
	target := loan.CurrentBalance.Mul(decimal.RequireFromString(debtPayoffShare))
	if target.LessThan(loan.MinimumPayment) {
		target = decimal.Min(loan.MinimumPayment, loan.CurrentBalance)
	}
	if !target.IsPositive() {
		return nil
	}

	c := newChallenge(domain.ChallengeDebtPayoff,
		fmt.Sprintf("Pay down %s", loan.Name),
		fmt.Sprintf("Reduce the balance of %s by %s within %d days", loan.Name, target.StringFixed(2), ChallengeDurationDays),
		target, loan.CurrentBalance, 150, domain.DifficultyHard, ChallengeDurationDays, now)
	id := loan.ID
	c.LoanID = &id
	return c
}

func expenseReductionChallenge(r finance.Records, now time.Time) *domain.Challenge {
	wants := finance.MonthlyWantsSpending(r.Expenses)
	if !wants.IsPositive() {
		return nil
	}
	target := wants.Mul(decimal.RequireFromString(expenseReductionShare))
	return newChallenge(domain.ChallengeExpenseReduction,
		"Trim discretionary spending",
		fmt.Sprintf("Cut monthly wants spending by %s", target.StringFixed(2)),
		target, wants, 75, domain.DifficultyEasy, ChallengeDurationDays, now)
}

func dailyTrackingChallenge(r finance.Records, now time.Time) *domain.Challenge {
	if len(r.Incomes) == 0 && len(r.Expenses) == 0 {
		return nil
	}
	return newChallenge(domain.ChallengeDailyTracking,
		"Build the tracking habit",
		fmt.Sprintf("Log your daily income and spending on %d days", DailyTrackingTarget),
		decimal.NewFromInt(DailyTrackingTarget), decimal.Zero, 50, domain.DifficultyEasy, TrackingChallengeDays, now)
}

func emergencyFundChallenge(r finance.Records, now time.Time) *domain.Challenge {
	agg := finance.Aggregate(r)
	ratio := finance.EmergencyFundRatio(agg.EmergencyFunds, agg.MonthlyExpenses, agg.MinimumPayments)
	burn := agg.MonthlyExpenses.Add(agg.MinimumPayments)
	if ratio >= 1 || !burn.IsPositive() {
		return nil
	}
	shortfall := burn.Mul(decimal.NewFromInt(finance.EmergencyFundTargetMonths)).Sub(agg.EmergencyFunds)
	target := decimal.Min(burn, shortfall)
	if !target.IsPositive() {
		return nil
	}
	return newChallenge(domain.ChallengeEmergencyFund,
		"Grow your emergency fund",
		fmt.Sprintf("Add %s to your savings accounts", target.StringFixed(2)),
		target, agg.EmergencyFunds, 120, domain.DifficultyMedium, ChallengeDurationDays, now)
}

func businessSalesChallenge(r finance.Records, now time.Time) *domain.Challenge {
	if len(r.BusinessEntries) == 0 {
		return nil
	}
	recent := salesSince(r.BusinessEntries, now.AddDate(0, 0, -ChallengeDurationDays), now)
	if !recent.IsPositive() {
		return nil
	}
	target := recent.Mul(decimal.RequireFromString(businessSalesGrowth))
	return newChallenge(domain.ChallengeBusinessSales,
		"Grow your sales",
		fmt.Sprintf("Reach %s in sales over the next %d days", target.StringFixed(2), ChallengeDurationDays),
		target, decimal.Zero, 100, domain.DifficultyMedium, ChallengeDurationDays, now)
}

func salesSince(entries []*domain.BusinessEntry, from, to time.Time) decimal.Decimal {
	total := decimal.Zero
	for _, e := range entries {
		if !e.Date.Before(from) && !e.Date.After(to) {
			total = total.Add(e.Sales)
		}
	}
	return total
}

// ChallengeUpdate is the recomputed state of one challenge
type ChallengeUpdate struct {
	Challenge     *domain.Challenge
	Changed       bool
	JustCompleted bool
	Expired       bool
}

// UpdateChallengeProgress recomputes Current for every live challenge from the
// current records. Challenges reaching their target are completed; live ones past
// their deadline are deactivated. The input challenges are not modified.
func UpdateChallengeProgress(challenges []*domain.Challenge, r finance.Records, now time.Time) []ChallengeUpdate {
	updates := make([]ChallengeUpdate, 0, len(challenges))
	for _, orig := range challenges {
		c := *orig
		u := ChallengeUpdate{Challenge: &c}
		if !c.IsLive() {
			updates = append(updates, u)
			continue
		}

		if current, ok := currentProgress(&c, r); ok {
			current = nonNegative(current).Round(2)
			if !current.Equal(c.Current) {
				c.Current = current
				u.Changed = true
			}
		}

		switch {
		case c.Current.GreaterThanOrEqual(c.Target):
			c.IsCompleted = true
			completedAt := now
			c.CompletedAt = &completedAt
			u.Changed, u.JustCompleted = true, true
		case now.After(c.Deadline):
			c.IsActive = false
			u.Changed, u.Expired = true, true
		}
		if u.Changed {
			c.UpdatedAt = now
		}
		updates = append(updates, u)
	}
	return updates
}

// currentProgress measures a challenge against the records. It reports false
// when the tracked entity can no longer be found.
func currentProgress(c *domain.Challenge, r finance.Records) (decimal.Decimal, bool) {
	switch c.Type {
	case domain.ChallengeSavings:
		goal := findGoal(c, r.Goals)
		if goal == nil {
			return decimal.Zero, false
		}
		return goal.CurrentAmount.Sub(c.Baseline), true
	case domain.ChallengeDebtPayoff:
		loan := findLoan(c, r.Loans)
		if loan == nil {
			return decimal.Zero, false
		}
		return c.Baseline.Sub(loan.CurrentBalance), true
	case domain.ChallengeExpenseReduction:
		return c.Baseline.Sub(finance.MonthlyWantsSpending(r.Expenses)), true
	case domain.ChallengeDailyTracking:
		return decimal.NewFromInt(int64(distinctEntryDays(r.DailyEntries, c.CreatedAt))), true
	case domain.ChallengeEmergencyFund:
		return finance.EmergencyFunds(r.Accounts).Sub(c.Baseline), true
	case domain.ChallengeBusinessSales:
		return salesSince(r.BusinessEntries, c.CreatedAt, c.Deadline), true
	}
	return decimal.Zero, false
}

// findLoan resolves a challenge's loan by its LoanID. Challenges created before
// the reference existed fall back to matching a loan name inside the description.
// That fallback is ambiguous when one loan name contains another; the first
// match in record order wins.
func findLoan(c *domain.Challenge, loans []*domain.Loan) *domain.Loan {
	if c.LoanID != nil {
		for _, l := range loans {
			if l.ID == *c.LoanID {
				return l
			}
		}
		return nil
	}
	for _, l := range loans {
		if l.Name != "" && containsFold(c.Description, l.Name) {
			return l
		}
	}
	return nil
}

// findGoal resolves a challenge's goal the same way findLoan does
func findGoal(c *domain.Challenge, goals []*domain.FinancialGoal) *domain.FinancialGoal {
	if c.GoalID != nil {
		for _, g := range goals {
			if g.ID == *c.GoalID {
				return g
			}
		}
		return nil
	}
	for _, g := range goals {
		if g.Name != "" && containsFold(c.Description, g.Name) {
			return g
		}
	}
	return nil
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func distinctEntryDays(entries []*domain.DailyEntry, since time.Time) int {
	start := util.CivilDay(since)
	days := make(map[time.Time]bool)
	for _, e := range entries {
		if d := util.CivilDay(e.Date); !d.Before(start) {
			days[d] = true
		}
	}
	return len(days)
}

func nonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
