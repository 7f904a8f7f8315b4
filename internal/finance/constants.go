package finance

import "github.com/shopspring/decimal"

// Frequency multipliers to a monthly equivalent. These are average weeks per
// month, not calendar-exact: no particular month has exactly this many occurrences.
var (
	WeeksPerMonth     = decimal.RequireFromString("4.33")
	BiweeksPerMonth   = decimal.RequireFromString("2.17")
	MonthsPerYear     = decimal.NewFromInt(12)
	DaysPerMonthApprx = 30
)

// Minimum-payment rules for account debt. The floor applies to the
// negative-balance component only, never to the overdraft component.
var (
	AccountMinimumPaymentRate  = decimal.RequireFromString("0.05")
	AccountMinimumPaymentFloor = decimal.NewFromInt(25)
)

// Account-debt payoff shares used by the allocation engine
var (
	NegativeBalancePayoffRate = decimal.RequireFromString("0.10")
	OverdraftPayoffRate       = decimal.RequireFromString("0.20")
)

// EmergencyFundTargetMonths is the number of months of burn an emergency fund should cover
const EmergencyFundTargetMonths = 6

// WantsShareOfIncome is the discretionary ceiling of the 50/30/20 heuristic
var WantsShareOfIncome = decimal.RequireFromString("0.30")

// NeverPaidOff is the payoff horizon reported when a payment cannot cover interest.
// It flags a loan as unpayable and is not a real projection.
const NeverPaidOff = 999

// UnpayableInterestMultiplier approximates total interest for a NeverPaidOff loan
var UnpayableInterestMultiplier = decimal.NewFromInt(2)

// Hybrid debt ordering weights
const (
	HybridRateWeight    = 0.7
	HybridBalanceWeight = 0.3
	HybridBalanceScale  = 1000.0
)

// Debt strategy suggestion thresholds
const (
	HighInterestRate        = 15.0
	HighAverageInterestRate = 10.0
	LowEngagementEntries    = 7
	EngagementWindowDays    = 30
)

// BusinessWindowDays is the trailing window for business contribution
const BusinessWindowDays = 30

var hundred = decimal.NewFromInt(100)
