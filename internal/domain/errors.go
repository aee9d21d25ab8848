package domain

import "errors"

var (
	// Account errors
	ErrAccountNotFound    = errors.New("account not found")
	ErrInvalidAccountName = errors.New("invalid account name")
	ErrDuplicateAccount   = errors.New("duplicate account name")
	ErrUnknownAccountType = errors.New("unknown account type")
	ErrNegativeLimit      = errors.New("credit limit must not be negative")

	// Budget item errors
	ErrUnknownFrequency     = errors.New("unknown frequency")
	ErrInvalidAmount        = errors.New("amount must be positive")
	ErrInvalidRecurrenceDay = errors.New("recurrence day must be between 1 and 31")
	ErrInvalidWeekday       = errors.New("weekday must be between 0 and 6")
	ErrInvalidTargetMonth   = errors.New("target month must be between 1 and 12")
	ErrMissingOneTimeDate   = errors.New("one-time item requires a date")
)
