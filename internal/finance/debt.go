package finance

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/dafibh/finwise/finwise-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type DebtSource string

const (
	DebtSourceAccount DebtSource = "account"
	DebtSourceLoan    DebtSource = "loan"
)

// DebtRecommendation is one entry of the priority-ordered payoff list
type DebtRecommendation struct {
	Priority         int             `json:"priority"`
	Source           DebtSource      `json:"source"`
	ID               uuid.UUID       `json:"id"`
	Name             string          `json:"name"`
	Balance          decimal.Decimal `json:"balance"`
	InterestRate     float64         `json:"interestRate"`
	MinimumPayment   decimal.Decimal `json:"minimumPayment"`
	SuggestedPayment decimal.Decimal `json:"suggestedPayment"`
	PayoffMonths     int             `json:"payoffMonths"`
	NeverPaidOff     bool            `json:"neverPaidOff"`
	TotalInterest    decimal.Decimal `json:"totalInterest"`
	Reason           string          `json:"reason"`
}

// DebtPlan summarizes a full recommendation list
type DebtPlan struct {
	Strategy            domain.DebtStrategy  `json:"strategy"`
	TotalDebt           decimal.Decimal      `json:"totalDebt"`
	TotalMinimum        decimal.Decimal      `json:"totalMinimum"`
	ExtraPayment        decimal.Decimal      `json:"extraPayment"`
	TotalInterest       decimal.Decimal      `json:"totalInterest"`
	LongestPayoffMonths int                  `json:"longestPayoffMonths"`
	HasUnpayableDebt    bool                 `json:"hasUnpayableDebt"`
	Recommendations     []DebtRecommendation `json:"recommendations"`
}

// PayoffMonths projects the number of months to clear a balance by amortization.
// monthlyRatePct is a monthly percentage. When the payment does not exceed the
// monthly interest the loan never pays off and NeverPaidOff is returned.
func PayoffMonths(balance decimal.Decimal, monthlyRatePct float64, payment decimal.Decimal) int {
	b := balance.InexactFloat64()
	p := payment.InexactFloat64()
	if b <= 0 {
		return 0
	}
	if p <= 0 {
		return NeverPaidOff
	}
	r := monthlyRatePct / 100
	if r <= 0 {
		return int(math.Ceil(b / p))
	}
	if p <= b*r {
		return NeverPaidOff
	}
	n := -math.Log(1-r*b/p) / math.Log(1+r)
	months := int(math.Ceil(n))
	if months >= NeverPaidOff {
		return NeverPaidOff
	}
	return months
}

// TotalInterest approximates interest paid over a projection. For the
// NeverPaidOff sentinel it returns twice the balance.
func TotalInterest(balance, payment decimal.Decimal, months int) decimal.Decimal {
	if months >= NeverPaidOff {
		return balance.Mul(UnpayableInterestMultiplier)
	}
	return nonNegative(payment.Mul(decimal.NewFromInt(int64(months))).Sub(balance))
}

// HybridScore is the composite ordering score used by the hybrid strategy
func HybridScore(l *domain.Loan) float64 {
	balance := l.CurrentBalance.InexactFloat64()
	inverse := 0.0
	if balance > 0 {
		inverse = 1 / balance
	}
	return l.InterestRate.InexactFloat64()*HybridRateWeight + inverse*HybridBalanceWeight*HybridBalanceScale
}

// OrderLoans returns the outstanding loans ordered by strategy. Paid-off loans are
// dropped. Ties are broken by name, then id.
func OrderLoans(loans []*domain.Loan, strategy domain.DebtStrategy) []*domain.Loan {
	ordered := make([]*domain.Loan, 0, len(loans))
	for _, l := range loans {
		if l.CurrentBalance.IsPositive() {
			ordered = append(ordered, l)
		}
	}

	less := func(a, b *domain.Loan) (bool, bool) {
		switch strategy {
		case domain.DebtSnowball:
			if c := a.CurrentBalance.Cmp(b.CurrentBalance); c != 0 {
				return c < 0, true
			}
		case domain.DebtHybrid:
			sa, sb := HybridScore(a), HybridScore(b)
			if sa != sb {
				return sa > sb, true
			}
		default:
			if c := a.InterestRate.Cmp(b.InterestRate); c != 0 {
				return c > 0, true
			}
		}
		return false, false
	}

	sort.SliceStable(ordered, func(i, j int) bool {
		if v, decided := less(ordered[i], ordered[j]); decided {
			return v
		}
		if ordered[i].Name != ordered[j].Name {
			return ordered[i].Name < ordered[j].Name
		}
		return ordered[i].ID.String() < ordered[j].ID.String()
	})
	return ordered
}

// AccountDebts lists debt-bearing active accounts, largest debt first
func AccountDebts(accounts []*domain.BankAccount) []*domain.BankAccount {
	out := make([]*domain.BankAccount, 0)
	for _, a := range accounts {
		if a.HasDebt() {
			out = append(out, a)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if c := AccountDebt(out[i]).Cmp(AccountDebt(out[j])); c != 0 {
			return c > 0
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// DebtRecommendations merges account debts and loans into one priority list.
// Account debts always come first regardless of strategy. Every entry is
// suggested its minimum payment, except the top-priority entry which also
// receives extraPayment.
func DebtRecommendations(r Records, strategy domain.DebtStrategy, extraPayment decimal.Decimal) []DebtRecommendation {
	extraPayment = nonNegative(extraPayment)
	recs := make([]DebtRecommendation, 0)

	for _, a := range AccountDebts(r.Accounts) {
		recs = append(recs, DebtRecommendation{
			Source:         DebtSourceAccount,
			ID:             a.ID,
			Name:           a.Name,
			Balance:        AccountDebt(a),
			MinimumPayment: AccountMinimumPayment(a),
			Reason:         "Overdraft and negative-balance fees compound fastest; clear account debt first.",
		})
	}

	for _, l := range OrderLoans(r.Loans, strategy) {
		recs = append(recs, DebtRecommendation{
			Source:         DebtSourceLoan,
			ID:             l.ID,
			Name:           l.Name,
			Balance:        l.CurrentBalance,
			InterestRate:   l.InterestRate.InexactFloat64(),
			MinimumPayment: l.MinimumPayment,
			Reason:         loanReason(l, strategy),
		})
	}

	for i := range recs {
		rec := &recs[i]
		rec.Priority = i + 1
		rec.SuggestedPayment = rec.MinimumPayment
		if i == 0 {
			rec.SuggestedPayment = rec.SuggestedPayment.Add(extraPayment)
		}
		rec.PayoffMonths = PayoffMonths(rec.Balance, rec.InterestRate, rec.SuggestedPayment)
		rec.NeverPaidOff = rec.PayoffMonths >= NeverPaidOff
		rec.TotalInterest = TotalInterest(rec.Balance, rec.SuggestedPayment, rec.PayoffMonths)
	}
	return recs
}

func loanReason(l *domain.Loan, strategy domain.DebtStrategy) string {
	switch strategy {
	case domain.DebtSnowball:
		return fmt.Sprintf("Balance of %s: smaller balances are cleared first for quick wins.", l.CurrentBalance.StringFixed(2))
	case domain.DebtHybrid:
		return fmt.Sprintf("Weighted score %.2f combines a %s%% monthly rate with its balance.", HybridScore(l), l.InterestRate.String())
	default:
		return fmt.Sprintf("A %s%% monthly rate: higher rates are cleared first to minimize interest.", l.InterestRate.String())
	}
}

// BuildDebtPlan computes recommendations together with their totals
func BuildDebtPlan(r Records, strategy domain.DebtStrategy, extraPayment decimal.Decimal) DebtPlan {
	recs := DebtRecommendations(r, strategy, extraPayment)
	plan := DebtPlan{
		Strategy:        strategy,
		TotalDebt:       TotalDebt(r.Loans, r.Accounts),
		TotalMinimum:    MinimumPayments(r.Loans, r.Accounts),
		ExtraPayment:    nonNegative(extraPayment),
		TotalInterest:   decimal.Zero,
		Recommendations: recs,
	}
	for _, rec := range recs {
		plan.TotalInterest = plan.TotalInterest.Add(rec.TotalInterest)
		if rec.NeverPaidOff {
			plan.HasUnpayableDebt = true
			continue
		}
		if rec.PayoffMonths > plan.LongestPayoffMonths {
			plan.LongestPayoffMonths = rec.PayoffMonths
		}
	}
	return plan
}

// PaymentSuggestions builds the payoff plan for the saved debt strategy. The top
// priority debt receives the allocation's share of surplus on top of its minimum.
func PaymentSuggestions(r Records, prefs domain.UserPreferences, now time.Time) (DebtPlan, error) {
	strategy := domain.DebtAvalanche
	if prefs.DebtStrategy != "" {
		parsed, err := domain.ParseDebtStrategy(string(prefs.DebtStrategy))
		if err != nil {
			return DebtPlan{}, err
		}
		strategy = parsed
	}

	allocation, err := CalculateAutoAllocation(r, prefs, CalculateFinancialHealth(r, now))
	if err != nil {
		return DebtPlan{}, err
	}
	return BuildDebtPlan(r, strategy, allocation.ExtraDebtPayment), nil
}

// StrategySuggestion is the recommended debt strategy with its rationale
type StrategySuggestion struct {
	Strategy domain.DebtStrategy `json:"strategy"`
	Reason   string              `json:"reason"`
}

// SuggestOptimalDebtStrategy picks snowball for users who need quick wins,
// avalanche when rates are high, and hybrid otherwise.
func SuggestOptimalDebtStrategy(r Records, now time.Time) StrategySuggestion {
	if len(r.Loans) == 0 {
		return StrategySuggestion{Strategy: domain.DebtAvalanche, Reason: "No installment loans recorded; avalanche minimizes interest on any future debt."}
	}

	agg := Aggregate(r)
	disposable := agg.MonthlyIncome.Sub(agg.MonthlyExpenses).Sub(agg.MinimumPayments)
	if disposable.IsNegative() {
		return StrategySuggestion{Strategy: domain.DebtSnowball, Reason: "Spending exceeds income; small early wins help build momentum."}
	}
	if EntriesInWindow(r.DailyEntries, EngagementWindowDays, now) < LowEngagementEntries {
		return StrategySuggestion{Strategy: domain.DebtSnowball, Reason: "Quick payoffs keep motivation up while the tracking habit forms."}
	}
	for _, l := range r.Loans {
		if l.CurrentBalance.IsPositive() && l.CurrentBalance.LessThan(agg.MonthlyIncome) {
			return StrategySuggestion{Strategy: domain.DebtSnowball, Reason: fmt.Sprintf("%s can be cleared within about a month of income.", l.Name)}
		}
	}

	var rateSum float64
	for _, l := range r.Loans {
		rate := l.InterestRate.InexactFloat64()
		if rate > HighInterestRate {
			return StrategySuggestion{Strategy: domain.DebtAvalanche, Reason: fmt.Sprintf("%s carries a rate above %.0f%%; attack it first.", l.Name, HighInterestRate)}
		}
		rateSum += rate
	}
	if rateSum/float64(len(r.Loans)) > HighAverageInterestRate {
		return StrategySuggestion{Strategy: domain.DebtAvalanche, Reason: "Average interest rate is high; avalanche minimizes total interest."}
	}

	return StrategySuggestion{Strategy: domain.DebtHybrid, Reason: "Balances and rates are moderate; a blend of both keeps progress steady."}
}
