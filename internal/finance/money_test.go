package finance

import (
	"testing"

	"github.com/dafibh/finwise/finwise-backend/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestMonthlyAmount(t *testing.T) {
	tests := []struct {
		name      string
		amount    string
		frequency domain.Frequency
		expected  string
	}{
		{"weekly", "100", domain.FrequencyWeekly, "433"},
		{"biweekly", "100", domain.FrequencyBiweekly, "217"},
		{"monthly", "50", domain.FrequencyMonthly, "50"},
		{"yearly", "1200", domain.FrequencyYearly, "100"},
		{"unknown treated as monthly", "75", domain.Frequency("daily"), "75"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertDecimal(t, tt.expected, MonthlyAmount(d(tt.amount), tt.frequency))
		})
	}
}

func TestNormalize(t *testing.T) {
	income := &domain.Income{Amount: d("200"), Frequency: domain.FrequencyWeekly}
	NormalizeIncome(income)
	assertDecimal(t, "866", income.MonthlyAmount)

	expense := &domain.Expense{Amount: d("2400"), Frequency: domain.FrequencyYearly}
	NormalizeExpense(expense)
	assertDecimal(t, "200", expense.MonthlyAmount)

	entry := &domain.BusinessEntry{Sales: d("1000"), Budget: d("300"), StockValue: d("150")}
	NormalizeBusinessEntry(entry)
	assertDecimal(t, "550", entry.Profit)
}

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		currency string
		expected string
	}{
		{"negative with grouping", "-1234.5", "USD", "-$1,234.50"},
		{"millions", "1234567.891", "usd", "$1,234,567.89"},
		{"under a thousand", "999", "USD", "$999.00"},
		{"zero", "0", "USD", "$0.00"},
		{"rounds to zero is not negative", "-0.001", "USD", "$0.00"},
		{"euro", "42", "EUR", "€42.00"},
		{"yen has no decimals", "1234.4", "JPY", "¥1,234"},
		{"unknown symbol uses code", "5000", "KRW", "KRW 5,000"},
		{"unknown currency", "12", "CHF", "CHF 12.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatCurrency(d(tt.amount), tt.currency))
		})
	}
}
