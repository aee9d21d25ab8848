package domain

import (
	"github.com/shopspring/decimal"
)

// Recommendation is a corrective recurring-amount change derived from an
// anomaly. The targeted item keeps its frequency; only its amount changes.
// Amounts are carried both per-occurrence and as monthly equivalents so
// that differently-scaled consumers never re-derive the conversion.
type Recommendation struct {
	ID              string
	AnomalyID       string
	AccountName     string
	ItemDescription string
	Frequency       Frequency

	CurrentAmount        decimal.Decimal
	NewAmount            decimal.Decimal
	CurrentAmountMonthly decimal.Decimal
	NewAmountMonthly     decimal.Decimal

	InterventionDate Date

	MonthlyRecovery decimal.Decimal
	YearlyRecovery  decimal.Decimal
	TotalRecovery   decimal.Decimal
}
