package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Validation constants
const (
	MaxAccountNameLength = 255
	MinAccountNameLength = 1
)

// ValidateAccount validates a single account definition.
func ValidateAccount(a Account) error {
	name := strings.TrimSpace(a.Name)
	if len(name) < MinAccountNameLength {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidAccountName)
	}
	if len(name) > MaxAccountNameLength {
		return fmt.Errorf("%w: %q exceeds %d characters", ErrInvalidAccountName, a.Name, MaxAccountNameLength)
	}
	if !a.Type.Valid() {
		return fmt.Errorf("%w: %q on account %q", ErrUnknownAccountType, a.Type, a.Name)
	}
	if a.CreditLimit.IsNegative() {
		return fmt.Errorf("%w: account %q", ErrNegativeLimit, a.Name)
	}
	return nil
}

// ValidateAccounts validates a full account set, including name uniqueness.
func ValidateAccounts(accounts []Account) error {
	seen := make(map[string]bool, len(accounts))
	for _, a := range accounts {
		if err := ValidateAccount(a); err != nil {
			return err
		}
		if seen[a.Name] {
			return fmt.Errorf("%w: %q", ErrDuplicateAccount, a.Name)
		}
		seen[a.Name] = true
	}
	return nil
}

// ValidateBudgetItem validates whatever selector fields the item's frequency
// actually reads. Selector fields belonging to other frequencies are ignored
// rather than rejected; real configurations carry stale values in them.
func ValidateBudgetItem(b BudgetItem) error {
	if !b.Frequency.Valid() {
		return fmt.Errorf("%w: %q on item %q", ErrUnknownFrequency, b.Frequency, b.Description)
	}
	if b.Amount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: item %q", ErrInvalidAmount, b.Description)
	}

	switch b.Frequency {
	case FrequencyMonthly, FrequencySemimonthly, FrequencyQuarterly, FrequencySemiannual:
		if b.RecurrenceDay < 1 || b.RecurrenceDay > 31 {
			return fmt.Errorf("%w: item %q", ErrInvalidRecurrenceDay, b.Description)
		}
	case FrequencyWeekly:
		if b.Weekday != nil && (*b.Weekday < 0 || *b.Weekday > 6) {
			return fmt.Errorf("%w: item %q", ErrInvalidWeekday, b.Description)
		}
	case FrequencyBiweekly:
		if b.Weekday != nil && (*b.Weekday < 0 || *b.Weekday > 6) {
			return fmt.Errorf("%w: item %q", ErrInvalidWeekday, b.Description)
		}
		if b.AnchorDate.IsZero() && (b.RecurrenceDay < 1 || b.RecurrenceDay > 31) {
			return fmt.Errorf("%w: item %q", ErrInvalidRecurrenceDay, b.Description)
		}
	case FrequencyAnnual:
		if b.TargetMonth < 1 || b.TargetMonth > 12 {
			return fmt.Errorf("%w: item %q", ErrInvalidTargetMonth, b.Description)
		}
		if b.RecurrenceDay < 1 || b.RecurrenceDay > 31 {
			return fmt.Errorf("%w: item %q", ErrInvalidRecurrenceDay, b.Description)
		}
	case FrequencyOneTime:
		if b.OneTimeDate.IsZero() {
			return fmt.Errorf("%w: item %q", ErrMissingOneTimeDate, b.Description)
		}
	}

	return nil
}

// ValidateBudgetItems validates a full item list.
func ValidateBudgetItems(items []BudgetItem) error {
	for _, b := range items {
		if err := ValidateBudgetItem(b); err != nil {
			return err
		}
	}
	return nil
}
