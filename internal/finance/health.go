package finance

import (
	"time"

	"github.com/dafibh/finwise/finwise-backend/internal/domain"
	"github.com/shopspring/decimal"
)

type HealthLevel string

const (
	HealthPoor      HealthLevel = "poor"
	HealthFair      HealthLevel = "fair"
	HealthGood      HealthLevel = "good"
	HealthExcellent HealthLevel = "excellent"
)

// Recommendation texts, in display order
const (
	RecommendReduceDebt       = "Your debt payments exceed 30% of your income. Focus on paying down high-interest debt first."
	RecommendIncreaseSavings  = "Try to save at least 10% of your income by trimming discretionary spending."
	RecommendEmergencyFund    = "Build an emergency fund that covers at least three months of expenses."
	RecommendNegativeNetWorth = "Your liabilities exceed your assets. Prioritize debt reduction to restore a positive net worth."
	RecommendDiversifyIncome  = "Consider adding another income source to reduce reliance on a single stream."
)

// unpayableDTI stands in for the debt-to-income ratio when there are payments but no income
const unpayableDTI = 100.0

// HealthBreakdown records the points awarded by each scoring bucket
type HealthBreakdown struct {
	DebtToIncome  int `json:"debtToIncome"`
	SavingsRate   int `json:"savingsRate"`
	EmergencyFund int `json:"emergencyFund"`
	NetWorth      int `json:"netWorth"`
	IncomeSources int `json:"incomeSources"`
	Business      int `json:"business"`
}

// Total sums all buckets
func (b HealthBreakdown) Total() int {
	return b.DebtToIncome + b.SavingsRate + b.EmergencyFund + b.NetWorth + b.IncomeSources + b.Business
}

// FinancialHealth is the derived 0-100 health assessment
type FinancialHealth struct {
	Score                int                      `json:"score"`
	Level                HealthLevel              `json:"level"`
	DebtToIncomeRatio    float64                  `json:"debtToIncomeRatio"`
	EmergencyFundRatio   float64                  `json:"emergencyFundRatio"`
	SavingsRate          float64                  `json:"savingsRate"`
	NetWorth             decimal.Decimal          `json:"netWorth"`
	BusinessContribution decimal.Decimal          `json:"businessContribution"`
	Recommendations      []string                 `json:"recommendations"`
	SuggestedStrategy    domain.FinancialStrategy `json:"suggestedStrategy"`
	Breakdown            HealthBreakdown          `json:"breakdown"`
}

// LevelForScore maps a score to its qualitative level
func LevelForScore(score int) HealthLevel {
	switch {
	case score >= 80:
		return HealthExcellent
	case score >= 60:
		return HealthGood
	case score >= 40:
		return HealthFair
	default:
		return HealthPoor
	}
}

// DebtToIncomeRatio returns minimum payments as a percentage of income
func DebtToIncomeRatio(minimumPayments, income decimal.Decimal) float64 {
	if income.IsZero() {
		if minimumPayments.IsPositive() {
			return unpayableDTI
		}
		return 0
	}
	return safeRatio(minimumPayments, income) * 100
}

// SavingsRate returns (income - expenses - minimum payments) as a percentage of income
func SavingsRate(income, expenses, minimumPayments decimal.Decimal) float64 {
	outflow := expenses.Add(minimumPayments)
	if income.IsZero() {
		if outflow.IsPositive() {
			return -100
		}
		return 0
	}
	return safeRatio(income.Sub(outflow), income) * 100
}

// EmergencyFundRatio returns savings divided by six months of burn.
// With no burn, any savings count as fully funded.
func EmergencyFundRatio(emergencyFunds, monthlyExpenses, minimumPayments decimal.Decimal) float64 {
	burn := monthlyExpenses.Add(minimumPayments)
	if !burn.IsPositive() {
		if emergencyFunds.IsPositive() {
			return 1
		}
		return 0
	}
	target := burn.Mul(decimal.NewFromInt(EmergencyFundTargetMonths))
	return safeRatio(emergencyFunds, target)
}

func debtToIncomePoints(dti float64) int {
	switch {
	case dti <= 10:
		return 30
	case dti <= 20:
		return 25
	case dti <= 30:
		return 20
	case dti <= 40:
		return 15
	case dti <= 50:
		return 10
	default:
		return 5
	}
}

func savingsRatePoints(rate float64) int {
	switch {
	case rate >= 20:
		return 30
	case rate >= 15:
		return 25
	case rate >= 10:
		return 20
	case rate >= 5:
		return 15
	case rate >= 0:
		return 10
	default:
		return 0
	}
}

func emergencyFundPoints(ratio float64) int {
	switch {
	case ratio >= 1:
		return 20
	case ratio >= 0.75:
		return 15
	case ratio >= 0.5:
		return 10
	case ratio >= 0.25:
		return 5
	default:
		return 0
	}
}

func netWorthPoints(netWorth, monthlyIncome decimal.Decimal) int {
	if !netWorth.IsPositive() {
		return 0
	}
	if !monthlyIncome.IsPositive() {
		return 4
	}
	annual := monthlyIncome.Mul(MonthsPerYear)
	switch {
	case netWorth.GreaterThan(annual.Mul(decimal.NewFromInt(12))):
		return 10
	case netWorth.GreaterThan(annual.Mul(decimal.NewFromInt(6))):
		return 8
	case netWorth.GreaterThan(annual.Mul(decimal.NewFromInt(3))):
		return 6
	default:
		return 4
	}
}

func incomeSourcePoints(sources int) int {
	switch {
	case sources > 2:
		return 5
	case sources > 1:
		return 3
	default:
		return 0
	}
}

// businessPoints scores business profit as a share of income; no income scores 0
func businessPoints(contribution, income decimal.Decimal) int {
	if !contribution.IsPositive() || !income.IsPositive() {
		return 0
	}
	if safeRatio(contribution, income) > 0.2 {
		return 5
	}
	return 3
}

// SuggestStrategy picks the financial strategy implied by the health ratios
func SuggestStrategy(dti, emergencyRatio, savingsRate float64, totalDebt, income decimal.Decimal) domain.FinancialStrategy {
	if dti > 40 || totalDebt.GreaterThan(income.Mul(decimal.NewFromInt(6))) {
		return domain.StrategyDebtFocused
	}
	if emergencyRatio < 0.5 || savingsRate < 10 {
		return domain.StrategySavingsFocused
	}
	return domain.StrategyBalanced
}

// CalculateFinancialHealth scores a record set from 0 to 100.
// A profile with no income, expenses, debt or emergency funds scores exactly 0.
func CalculateFinancialHealth(r Records, now time.Time) FinancialHealth {
	agg := Aggregate(r)
	business := BusinessContribution(r.BusinessEntries, now)

	dti := DebtToIncomeRatio(agg.MinimumPayments, agg.MonthlyIncome)
	savings := SavingsRate(agg.MonthlyIncome, agg.MonthlyExpenses, agg.MinimumPayments)
	emergency := EmergencyFundRatio(agg.EmergencyFunds, agg.MonthlyExpenses, agg.MinimumPayments)

	health := FinancialHealth{
		DebtToIncomeRatio:    dti,
		EmergencyFundRatio:   emergency,
		SavingsRate:          savings,
		NetWorth:             agg.NetWorth,
		BusinessContribution: business,
		SuggestedStrategy:    SuggestStrategy(dti, emergency, savings, agg.TotalDebt, agg.MonthlyIncome),
	}

	emptyProfile := agg.MonthlyIncome.IsZero() && agg.MonthlyExpenses.IsZero() &&
		agg.TotalDebt.IsZero() && agg.EmergencyFunds.IsZero()

	if !emptyProfile {
		health.Breakdown = HealthBreakdown{
			DebtToIncome:  debtToIncomePoints(dti),
			SavingsRate:   savingsRatePoints(savings),
			EmergencyFund: emergencyFundPoints(emergency),
			NetWorth:      netWorthPoints(agg.NetWorth, agg.MonthlyIncome),
			IncomeSources: incomeSourcePoints(len(r.Incomes)),
			Business:      businessPoints(business, agg.MonthlyIncome),
		}
	}

	score := health.Breakdown.Total()
	if score > 100 {
		score = 100
	}
	health.Score = score
	health.Level = LevelForScore(score)

	recs := make([]string, 0, 5)
	if dti > 30 {
		recs = append(recs, RecommendReduceDebt)
	}
	if savings < 10 {
		recs = append(recs, RecommendIncreaseSavings)
	}
	if emergency < 0.5 {
		recs = append(recs, RecommendEmergencyFund)
	}
	if agg.NetWorth.IsNegative() {
		recs = append(recs, RecommendNegativeNetWorth)
	}
	if len(r.Incomes) <= 1 {
		recs = append(recs, RecommendDiversifyIncome)
	}
	health.Recommendations = recs

	return health
}
