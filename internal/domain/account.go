package domain

import (
	"github.com/shopspring/decimal"
)

// AccountType classifies an account's balance semantics.
type AccountType string

const (
	AccountChecking AccountType = "checking"
	AccountSavings  AccountType = "savings"
	AccountCredit   AccountType = "credit"
	AccountMortgage AccountType = "mortgage"
)

// Valid reports whether t is one of the known account types.
func (t AccountType) Valid() bool {
	switch t {
	case AccountChecking, AccountSavings, AccountCredit, AccountMortgage:
		return true
	}
	return false
}

// Account is one of the accounts a trajectory is simulated over.
// Immutable during a simulation run.
type Account struct {
	Name        string
	Type        AccountType
	CreditLimit decimal.Decimal
}

// IsCredit reports whether the account carries inverted balance semantics:
// its balance is an amount owed, payments decrease it and charges increase it.
func (a *Account) IsCredit() bool {
	return a.Type == AccountCredit
}

// InitialBalance is an account's signed balance as of the simulation start.
type InitialBalance struct {
	AccountName string
	Balance     decimal.Decimal
}
