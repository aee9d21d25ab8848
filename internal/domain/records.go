package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a single budget-item firing attributed to an account.
type Transaction struct {
	Description string
	Amount      decimal.Decimal
	AccountName string
}

// AccountActivity is one account's view of a period (day, month or year):
// balances at the period's edges plus every transaction that fired inside it.
type AccountActivity struct {
	AccountName  string
	Opening      decimal.Decimal
	Closing      decimal.Decimal
	Income       []Transaction
	Expense      []Transaction
	TotalIncome  decimal.Decimal
	TotalExpense decimal.Decimal
	HasActivity  bool
}

// DayRecord captures one simulated day. Account order matches the caller's
// accounts list, which keeps output deterministic across runs. Immutable
// once emitted.
type DayRecord struct {
	Date            Date
	Accounts        []AccountActivity
	TotalIncome     decimal.Decimal
	TotalExpense    decimal.Decimal
	HasModification bool
}

// Account returns the sub-record for the named account, or nil.
func (d *DayRecord) Account(name string) *AccountActivity {
	for i := range d.Accounts {
		if d.Accounts[i].AccountName == name {
			return &d.Accounts[i]
		}
	}
	return nil
}

// MonthRecord is the day-record shape folded up one level.
type MonthRecord struct {
	Year            int
	Month           time.Month
	Accounts        []AccountActivity
	TotalIncome     decimal.Decimal
	TotalExpense    decimal.Decimal
	HasActivity     bool
	HasModification bool
}

// Account returns the sub-record for the named account, or nil.
func (m *MonthRecord) Account(name string) *AccountActivity {
	for i := range m.Accounts {
		if m.Accounts[i].AccountName == name {
			return &m.Accounts[i]
		}
	}
	return nil
}

// YearRecord is the month-record shape folded up one level.
type YearRecord struct {
	Year            int
	Accounts        []AccountActivity
	TotalIncome     decimal.Decimal
	TotalExpense    decimal.Decimal
	HasActivity     bool
	HasModification bool
}

// Account returns the sub-record for the named account, or nil.
func (y *YearRecord) Account(name string) *AccountActivity {
	for i := range y.Accounts {
		if y.Accounts[i].AccountName == name {
			return &y.Accounts[i]
		}
	}
	return nil
}

// Warning records a tolerated irregularity observed during simulation,
// currently only budget items referencing unknown accounts. The item still
// produces no transaction; the warning just makes the drop visible.
type Warning struct {
	Date            Date
	ItemDescription string
	AccountName     string
}
