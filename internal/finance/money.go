package finance

import (
	"strings"

	"github.com/dafibh/finwise/finwise-backend/internal/domain"
	"github.com/shopspring/decimal"
)

// MonthlyAmount converts an amount at the given frequency to its monthly equivalent.
// An unrecognized frequency is treated as already monthly.
func MonthlyAmount(amount decimal.Decimal, frequency domain.Frequency) decimal.Decimal {
	switch frequency {
	case domain.FrequencyWeekly:
		return amount.Mul(WeeksPerMonth)
	case domain.FrequencyBiweekly:
		return amount.Mul(BiweeksPerMonth)
	case domain.FrequencyYearly:
		return amount.Div(MonthsPerYear)
	default:
		return amount
	}
}

// NormalizeIncome refreshes the cached monthly amount of an income
func NormalizeIncome(i *domain.Income) {
	i.MonthlyAmount = MonthlyAmount(i.Amount, i.Frequency)
}

// NormalizeExpense refreshes the cached monthly amount of an expense
func NormalizeExpense(e *domain.Expense) {
	e.MonthlyAmount = MonthlyAmount(e.Amount, e.Frequency)
}

// NormalizeBusinessEntry derives profit from sales, budget and stock value
func NormalizeBusinessEntry(b *domain.BusinessEntry) {
	b.Profit = b.Sales.Sub(b.Budget).Sub(b.StockValue)
}

var currencySymbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"MXN": "$",
	"CAD": "$",
	"AUD": "$",
	"JPY": "¥",
	"INR": "₹",
}

var zeroDecimalCurrencies = map[string]bool{
	"JPY": true,
	"KRW": true,
}

// FormatCurrency renders an amount in the canonical display form, e.g. "-$1,234.50".
// Unknown currencies are prefixed with their ISO code.
func FormatCurrency(amount decimal.Decimal, currency string) string {
	currency = strings.ToUpper(currency)
	places := int32(2)
	if zeroDecimalCurrencies[currency] {
		places = 0
	}

	fixed := amount.Abs().StringFixed(places)
	intPart, fracPart, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	if amount.Round(places).IsNegative() {
		b.WriteByte('-')
	}
	if sym, ok := currencySymbols[currency]; ok {
		b.WriteString(sym)
	} else if currency != "" {
		b.WriteString(currency)
		b.WriteByte(' ')
	}

	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if fracPart != "" {
		b.WriteByte('.')
		b.WriteString(fracPart)
	}
	return b.String()
}

// safeRatio divides two amounts as float64, returning 0 for a zero denominator
func safeRatio(num, den decimal.Decimal) float64 {
	if den.IsZero() {
		return 0
	}
	return num.Div(den).InexactFloat64()
}

func maxDecimal(a, b decimal.Decimal) decimal.Decimal {
	if a.GreaterThan(b) {
		return a
	}
	return b
}

func nonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
