package engine

import (
	"github.com/shopspring/decimal"

	"github.com/fincast/fincast/internal/domain"
)

// semimonthlyOffset separates the two firing days of a semimonthly item.
const semimonthlyOffset = 15

var (
	occMonthly     = decimal.NewFromInt(1)
	occSemimonthly = decimal.NewFromInt(2)
	occBiweekly    = decimal.NewFromInt(2)
	occWeekly      = decimal.NewFromFloat(4.33)
	occQuarterly   = decimal.NewFromInt(1).Div(decimal.NewFromInt(3))
	occSemiannual  = decimal.NewFromInt(1).Div(decimal.NewFromInt(6))
	occAnnual      = decimal.NewFromInt(1).Div(decimal.NewFromInt(12))
)

// FiresOn reports whether the item fires on the given calendar date.
//
// Day-of-month selectors clamp to the month's length, so a recurrence day of
// 31 fires on Feb 28 (non-leap) and Apr 30 rather than skipping short months.
func FiresOn(item domain.BudgetItem, date domain.Date) bool {
	if !item.ActiveOn(date) {
		return false
	}

	switch item.Frequency {
	case domain.FrequencyMonthly:
		return date.Day() == clampDay(item.RecurrenceDay, date)

	case domain.FrequencySemimonthly:
		return date.Day() == clampDay(item.RecurrenceDay, date) ||
			date.Day() == clampDay(item.RecurrenceDay+semimonthlyOffset, date)

	case domain.FrequencyBiweekly:
		if item.Weekday == nil || item.AnchorDate.IsZero() {
			// No anchor configured: degrade to the monthly clamped-day rule.
			return date.Day() == clampDay(item.RecurrenceDay, date)
		}
		offset := date.DaysSince(item.AnchorDate)
		return offset >= 0 && offset%14 == 0

	case domain.FrequencyWeekly:
		weekday := item.RecurrenceDay % 7
		if item.Weekday != nil {
			weekday = *item.Weekday
		}
		return int(date.Weekday()) == weekday

	case domain.FrequencyQuarterly:
		return (int(date.Month())-1)%3 == 0 && date.Day() == clampDay(item.RecurrenceDay, date)

	case domain.FrequencySemiannual:
		return (int(date.Month())-1)%6 == 0 && date.Day() == clampDay(item.RecurrenceDay, date)

	case domain.FrequencyAnnual:
		return date.Month() == item.TargetMonth && date.Day() == clampDay(item.RecurrenceDay, date)

	case domain.FrequencyOneTime:
		return !item.OneTimeDate.IsZero() && date.Equal(item.OneTimeDate)
	}

	return false
}

// clampDay clamps a configured recurrence day to the length of date's month.
func clampDay(day int, date domain.Date) int {
	if last := domain.DaysInMonth(date.Year(), date.Month()); day > last {
		return last
	}
	return day
}

// OccurrencesPerMonth returns how many times per month a frequency fires on
// average. One-time items return zero: they have no monthly equivalent and
// must stay out of monthly aggregation.
func OccurrencesPerMonth(f domain.Frequency) decimal.Decimal {
	switch f {
	case domain.FrequencyMonthly:
		return occMonthly
	case domain.FrequencySemimonthly:
		return occSemimonthly
	case domain.FrequencyBiweekly:
		return occBiweekly
	case domain.FrequencyWeekly:
		return occWeekly
	case domain.FrequencyQuarterly:
		return occQuarterly
	case domain.FrequencySemiannual:
		return occSemiannual
	case domain.FrequencyAnnual:
		return occAnnual
	}
	return decimal.Zero
}

// MonthlyAmount converts an item's per-occurrence amount to its monthly
// equivalent.
func MonthlyAmount(item domain.BudgetItem) decimal.Decimal {
	return item.Amount.Mul(OccurrencesPerMonth(item.Frequency))
}

// PerOccurrenceAmount converts a monthly amount back to the per-occurrence
// amount for the given frequency. Zero-occurrence frequencies return zero
// instead of dividing by zero.
func PerOccurrenceAmount(monthly decimal.Decimal, f domain.Frequency) decimal.Decimal {
	occ := OccurrencesPerMonth(f)
	if occ.IsZero() {
		return decimal.Zero
	}
	return monthly.Div(occ)
}
