package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/fincast/fincast/internal/domain"
)

// DefaultHorizonDays is the projection horizon used when the caller does not
// set one, roughly 54 years of daily steps.
const DefaultHorizonDays = 19710

var (
	// ErrMissingStartDate is returned when a simulation has no start date.
	ErrMissingStartDate = errors.New("simulation start date is required")
)

// SimulationConfig is the full input of one simulation run. The simulator
// never mutates any of its slices, so the same config can be replayed for
// what-if comparisons.
type SimulationConfig struct {
	Accounts        []domain.Account
	InitialBalances []domain.InitialBalance
	IncomeItems     []domain.BudgetItem
	ExpenseItems    []domain.BudgetItem
	Modifications   []domain.BudgetModification
	StartDate       domain.Date
	HorizonDays     int
}

// SimulationResult is the day-record sequence plus any tolerated
// irregularities observed along the way.
type SimulationResult struct {
	Days     []domain.DayRecord
	Warnings []domain.Warning
}

// Simulator walks a horizon one day at a time, firing budget items against
// per-account running balances. Deterministic and side-effect-free:
// identical inputs always produce an identical day sequence.
type Simulator struct {
	logger zerolog.Logger
}

// NewSimulator creates a new Simulator.
func NewSimulator(logger zerolog.Logger) *Simulator {
	return &Simulator{logger: logger}
}

// Simulate runs the projection described by cfg.
func (s *Simulator) Simulate(cfg SimulationConfig) (*SimulationResult, error) {
	if err := domain.ValidateAccounts(cfg.Accounts); err != nil {
		return nil, fmt.Errorf("invalid accounts: %w", err)
	}
	if err := domain.ValidateBudgetItems(cfg.IncomeItems); err != nil {
		return nil, fmt.Errorf("invalid income items: %w", err)
	}
	if err := domain.ValidateBudgetItems(cfg.ExpenseItems); err != nil {
		return nil, fmt.Errorf("invalid expense items: %w", err)
	}

	if len(cfg.Accounts) == 0 {
		return &SimulationResult{Days: []domain.DayRecord{}}, nil
	}
	if cfg.StartDate.IsZero() {
		return nil, ErrMissingStartDate
	}

	horizon := cfg.HorizonDays
	if horizon <= 0 {
		horizon = DefaultHorizonDays
	}

	resolver := NewBudgetResolver(cfg.IncomeItems, cfg.ExpenseItems, cfg.Modifications)

	accountIndex := make(map[string]int, len(cfg.Accounts))
	for i, a := range cfg.Accounts {
		accountIndex[a.Name] = i
	}

	balances := s.openingBalances(cfg)

	start := time.Now()
	days := make([]domain.DayRecord, 0, horizon)
	warnings := []domain.Warning(nil)
	warned := make(map[string]bool)

	for i := 0; i < horizon; i++ {
		date := cfg.StartDate.AddDays(i)
		budget := resolver.Resolve(date)

		day := domain.DayRecord{
			Date:            date,
			Accounts:        make([]domain.AccountActivity, len(cfg.Accounts)),
			HasModification: resolver.IsModificationDate(date),
		}

		for j := range cfg.Accounts {
			day.Accounts[j] = domain.AccountActivity{
				AccountName:  cfg.Accounts[j].Name,
				Opening:      balances[j],
				TotalIncome:  decimal.Zero,
				TotalExpense: decimal.Zero,
			}
		}

		warnings = s.applyItems(&day, cfg.Accounts, accountIndex, budget.Income, true, warnings, warned)
		warnings = s.applyItems(&day, cfg.Accounts, accountIndex, budget.Expense, false, warnings, warned)

		// New balance snapshot per day; the previous day's slice stays intact.
		next := make([]decimal.Decimal, len(balances))
		for j := range cfg.Accounts {
			acct := &day.Accounts[j]
			acct.Closing = closingBalance(&cfg.Accounts[j], acct.Opening, acct.TotalIncome, acct.TotalExpense)
			acct.HasActivity = len(acct.Income) > 0 || len(acct.Expense) > 0
			next[j] = acct.Closing

			day.TotalIncome = day.TotalIncome.Add(acct.TotalIncome)
			day.TotalExpense = day.TotalExpense.Add(acct.TotalExpense)
		}
		balances = next

		days = append(days, day)
	}

	s.logger.Debug().
		Int("days", len(days)).
		Int("accounts", len(cfg.Accounts)).
		Int("warnings", len(warnings)).
		Dur("elapsed", time.Since(start)).
		Msg("simulation completed")

	return &SimulationResult{Days: days, Warnings: warnings}, nil
}

// openingBalances builds the day-zero balance snapshot, one entry per
// account in caller order. Accounts without an initial balance start at zero.
func (s *Simulator) openingBalances(cfg SimulationConfig) []decimal.Decimal {
	balances := make([]decimal.Decimal, len(cfg.Accounts))
	for i := range balances {
		balances[i] = decimal.Zero
	}
	for _, ib := range cfg.InitialBalances {
		for i, a := range cfg.Accounts {
			if a.Name == ib.AccountName {
				balances[i] = ib.Balance
				break
			}
		}
	}
	return balances
}

// applyItems fires every item of one list against the day, attributing
// transactions to accounts. Items naming an unknown account produce no
// transaction; the drop is recorded once per item as a warning.
func (s *Simulator) applyItems(day *domain.DayRecord, accounts []domain.Account, index map[string]int, items []domain.BudgetItem, income bool, warnings []domain.Warning, warned map[string]bool) []domain.Warning {
	for _, item := range items {
		if !FiresOn(item, day.Date) {
			continue
		}

		// An item without an account targets the primary (first) account.
		idx := 0
		if item.AccountName != "" {
			var ok bool
			idx, ok = index[item.AccountName]
			if !ok {
				key := item.Description + "\x00" + item.AccountName
				if !warned[key] {
					warned[key] = true
					warnings = append(warnings, domain.Warning{
						Date:            day.Date,
						ItemDescription: item.Description,
						AccountName:     item.AccountName,
					})
					s.logger.Warn().
						Str("item", item.Description).
						Str("account", item.AccountName).
						Str("date", day.Date.String()).
						Msg("budget item references unknown account, excluded from balances")
				}
				continue
			}
		}

		tx := domain.Transaction{
			Description: item.Description,
			Amount:      item.Amount,
			AccountName: accounts[idx].Name,
		}

		acct := &day.Accounts[idx]
		if income {
			acct.Income = append(acct.Income, tx)
			acct.TotalIncome = acct.TotalIncome.Add(item.Amount)
		} else {
			acct.Expense = append(acct.Expense, tx)
			acct.TotalExpense = acct.TotalExpense.Add(item.Amount)
		}
	}
	return warnings
}

// closingBalance applies one day's totals to an opening balance. Credit
// balances track the amount owed, so payments (income) decrease them and
// charges (expense) increase them; every other type moves the usual way.
func closingBalance(account *domain.Account, opening, income, expense decimal.Decimal) decimal.Decimal {
	if account.IsCredit() {
		return opening.Sub(income).Add(expense)
	}
	return opening.Add(income).Sub(expense)
}
