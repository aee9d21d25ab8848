package domain

import (
	"github.com/shopspring/decimal"
)

// AnomalyKind classifies a detected balance anomaly.
type AnomalyKind string

const (
	// AnomalyOverdraft is a checking/savings/mortgage balance crossing below zero.
	AnomalyOverdraft AnomalyKind = "overdraft"
	// AnomalyOverpayment is a credit balance crossing below zero: the
	// customer has paid back more than was owed.
	AnomalyOverpayment AnomalyKind = "overpayment"
	// AnomalyApproachingLimit is a credit balance reaching 80% of its limit.
	AnomalyApproachingLimit AnomalyKind = "approaching-limit"
)

// Anomaly is the first crossing event found in an account's day series.
type Anomaly struct {
	ID            string
	AccountName   string
	Kind          AnomalyKind
	Date          Date
	BalanceBefore decimal.Decimal
	BalanceAfter  decimal.Decimal
}
