package finance

import (
	"sort"
	"time"

	"github.com/dafibh/finwise/finwise-backend/internal/domain"
	"github.com/dafibh/finwise/finwise-backend/internal/util"
	"github.com/shopspring/decimal"
)

// MaxForecastMonths bounds how far ahead a forecast may project
const MaxForecastMonths = 24

// ForecastPoint is the projected cash position at the end of one month
type ForecastPoint struct {
	Month           string          `json:"month"`
	StartingBalance decimal.Decimal `json:"startingBalance"`
	Income          decimal.Decimal `json:"income"`
	Expenses        decimal.Decimal `json:"expenses"`
	DebtPayments    decimal.Decimal `json:"debtPayments"`
	ExpectedIn      decimal.Decimal `json:"expectedIn"`
	ExpectedOut     decimal.Decimal `json:"expectedOut"`
	EndingBalance   decimal.Decimal `json:"endingBalance"`
}

// CashPosition is the signed sum of active balances less used overdraft
func CashPosition(accounts []*domain.BankAccount) decimal.Decimal {
	total := decimal.Zero
	for _, a := range accounts {
		if !a.IsActive {
			continue
		}
		total = total.Add(a.Balance).Sub(a.UsedOverdraft())
	}
	return total
}

// Forecast projects the cash position month by month. Unpaid expected payments
// land in the month of their expected date; overdue ones land in the first month.
func Forecast(r Records, months int, now time.Time) []ForecastPoint {
	if months <= 0 {
		return []ForecastPoint{}
	}
	if months > MaxForecastMonths {
		months = MaxForecastMonths
	}

	agg := Aggregate(r)
	start := util.MonthStart(now)
	balance := CashPosition(r.Accounts)
	points := make([]ForecastPoint, 0, months)

	for i := 0; i < months; i++ {
		monthStart := start.AddDate(0, i, 0)
		monthEnd := monthStart.AddDate(0, 1, 0)

		in, out := decimal.Zero, decimal.Zero
		for _, p := range r.ExpectedPayments {
			if p.IsPaid {
				continue
			}
			inMonth := !p.ExpectedDate.Before(monthStart) && p.ExpectedDate.Before(monthEnd)
			overdue := i == 0 && p.ExpectedDate.Before(monthStart)
			if !inMonth && !overdue {
				continue
			}
			if p.Type == domain.PaymentIncome {
				in = in.Add(p.Amount)
			} else {
				out = out.Add(p.Amount)
			}
		}

		point := ForecastPoint{
			Month:           monthStart.Format(util.MonthLayout),
			StartingBalance: balance,
			Income:          agg.MonthlyIncome,
			Expenses:        agg.MonthlyExpenses,
			DebtPayments:    agg.MinimumPayments,
			ExpectedIn:      in,
			ExpectedOut:     out,
		}
		balance = balance.Add(agg.MonthlyIncome).Sub(agg.MonthlyExpenses).Sub(agg.MinimumPayments).Add(in).Sub(out)
		point.EndingBalance = balance
		points = append(points, point)
	}
	return points
}

// TrendPoint is one entry of the net worth trend
type TrendPoint struct {
	Date     time.Time       `json:"date"`
	NetWorth decimal.Decimal `json:"netWorth"`
	Change   decimal.Decimal `json:"change"`
	Live     bool            `json:"live"`
}

// TakeNetWorthSnapshot records the canonical net worth of a record set at a date
func TakeNetWorthSnapshot(r Records, now time.Time) *domain.NetWorthSnapshot {
	assets, liabilities := NetWorthComponents(r.Accounts, r.Loans, r.Goals, r.ExpectedPayments)
	return &domain.NetWorthSnapshot{
		Date:        util.CivilDay(now),
		NetWorth:    RecordsNetWorth(r),
		Assets:      assets,
		Liabilities: liabilities,
	}
}

// NetWorthTrend orders stored snapshots by date and appends the live figure for
// today, replacing any stored snapshot dated today. The live point is always
// RecordsNetWorth(current).
func NetWorthTrend(history []*domain.NetWorthSnapshot, current Records, now time.Time) []TrendPoint {
	today := util.CivilDay(now)
	sorted := make([]*domain.NetWorthSnapshot, 0, len(history))
	for _, s := range history {
		if !util.SameDay(s.Date, today) {
			sorted = append(sorted, s)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Date.Before(sorted[j].Date) })

	points := make([]TrendPoint, 0, len(sorted)+1)
	prev := decimal.Zero
	for i, s := range sorted {
		change := decimal.Zero
		if i > 0 {
			change = s.NetWorth.Sub(prev)
		}
		points = append(points, TrendPoint{Date: util.CivilDay(s.Date), NetWorth: s.NetWorth, Change: change})
		prev = s.NetWorth
	}

	live := RecordsNetWorth(current)
	change := decimal.Zero
	if len(points) > 0 {
		change = live.Sub(prev)
	}
	return append(points, TrendPoint{Date: today, NetWorth: live, Change: change, Live: true})
}

// BillDue describes an unpaid bill relative to today
type BillDue struct {
	Bill         *domain.Bill `json:"bill"`
	DaysUntilDue int          `json:"daysUntilDue"`
	IsOverdue    bool         `json:"isOverdue"`
}

// UpcomingBills lists unpaid bills due within the next days, soonest first
func UpcomingBills(bills []*domain.Bill, now time.Time, days int) []BillDue {
	return billsWhere(bills, now, func(d int) bool { return d >= 0 && d <= days })
}

// OverdueBills lists unpaid bills whose due date has passed, oldest first
func OverdueBills(bills []*domain.Bill, now time.Time) []BillDue {
	return billsWhere(bills, now, func(d int) bool { return d < 0 })
}

func billsWhere(bills []*domain.Bill, now time.Time, keep func(days int) bool) []BillDue {
	today := util.CivilDay(now)
	out := make([]BillDue, 0)
	for _, b := range bills {
		if b.IsPaid {
			continue
		}
		d := util.DaysBetween(today, b.DueDate)
		if keep(d) {
			out = append(out, BillDue{Bill: b, DaysUntilDue: d, IsOverdue: d < 0})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].DaysUntilDue < out[j].DaysUntilDue })
	return out
}

