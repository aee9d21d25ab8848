package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Frequency is the closed set of recurrence semantics a budget item can have.
type Frequency string

const (
	FrequencyMonthly     Frequency = "monthly"
	FrequencySemimonthly Frequency = "semimonthly"
	FrequencyBiweekly    Frequency = "biweekly"
	FrequencyWeekly      Frequency = "weekly"
	FrequencyQuarterly   Frequency = "quarterly"
	FrequencySemiannual  Frequency = "semiannual"
	FrequencyAnnual      Frequency = "annual"
	FrequencyOneTime     Frequency = "one-time"
)

// Valid reports whether f is one of the known frequencies.
func (f Frequency) Valid() bool {
	switch f {
	case FrequencyMonthly, FrequencySemimonthly, FrequencyBiweekly,
		FrequencyWeekly, FrequencyQuarterly, FrequencySemiannual,
		FrequencyAnnual, FrequencyOneTime:
		return true
	}
	return false
}

// BudgetItem is a recurring income or expense rule. Amount is the
// per-occurrence amount and is always stored positive; whether it credits
// or debits an account depends on which list (income/expense) it sits in.
//
// Each frequency reads only its own selector fields; the others are
// carried but ignored:
//
//	monthly, semimonthly, quarterly, semiannual  -> RecurrenceDay
//	biweekly                                     -> Weekday + AnchorDate (falls back to RecurrenceDay)
//	weekly                                       -> Weekday (falls back to RecurrenceDay mod 7)
//	annual                                       -> TargetMonth + RecurrenceDay
//	one-time                                     -> OneTimeDate
type BudgetItem struct {
	Description   string
	Amount        decimal.Decimal
	Frequency     Frequency
	RecurrenceDay int         // day of month, 1-31
	Weekday       *int        // day of week, 0 = Sunday, nil when unset
	AnchorDate    Date        // biweekly reference date, zero when unset
	TargetMonth   time.Month  // annual target month, 0 when unset
	AccountName   string      // empty means the primary (first) account
	EndDate       Date        // item is inactive strictly after this date
	OneTimeDate   Date        // only meaningful for one-time items
}

// ActiveOn reports whether the item has not yet expired on the given date.
func (b *BudgetItem) ActiveOn(date Date) bool {
	return b.EndDate.IsZero() || !date.After(b.EndDate)
}
