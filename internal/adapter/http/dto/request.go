package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/fincast/fincast/internal/domain"
	"github.com/fincast/fincast/internal/engine"
)

// AccountRequest describes one account in a plan.
type AccountRequest struct {
	Name        string          `json:"name"`
	Type        string          `json:"type"`
	CreditLimit decimal.Decimal `json:"credit_limit"`
}

// InitialBalanceRequest is an account's balance at the simulation start.
type InitialBalanceRequest struct {
	AccountName string          `json:"account_name"`
	Balance     decimal.Decimal `json:"balance"`
}

// BudgetItemRequest describes one recurring income or expense rule. Dates
// travel as YYYY-MM-DD strings; empty means unset.
type BudgetItemRequest struct {
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`
	Frequency     string          `json:"frequency"`
	RecurrenceDay int             `json:"recurrence_day,omitempty"`
	Weekday       *int            `json:"weekday,omitempty"`
	AnchorDate    string          `json:"anchor_date,omitempty"`
	TargetMonth   int             `json:"target_month,omitempty"`
	AccountName   string          `json:"account_name,omitempty"`
	EndDate       string          `json:"end_date,omitempty"`
	OneTimeDate   string          `json:"one_time_date,omitempty"`
}

// ModificationRequest is one full budget replacement in a plan.
type ModificationRequest struct {
	EffectiveDate    string              `json:"effective_date"`
	Income           []BudgetItemRequest `json:"income"`
	Expense          []BudgetItemRequest `json:"expense"`
	Source           string              `json:"source,omitempty"`
	RecommendationID string              `json:"recommendation_id,omitempty"`
}

// PlanRequest is the full input of a simulation or analysis call. The API
// is stateless: every request carries its whole configuration.
type PlanRequest struct {
	Accounts        []AccountRequest        `json:"accounts"`
	InitialBalances []InitialBalanceRequest `json:"initial_balances"`
	IncomeItems     []BudgetItemRequest     `json:"income_items"`
	ExpenseItems    []BudgetItemRequest     `json:"expense_items"`
	Modifications   []ModificationRequest   `json:"modifications,omitempty"`
	StartDate       string                  `json:"start_date"`
	HorizonDays     int                     `json:"horizon_days,omitempty"`
}

// ToSimulationConfig converts the request into an engine configuration,
// parsing every boundary date. Malformed dates surface as *domain.ParseError.
func (r *PlanRequest) ToSimulationConfig() (engine.SimulationConfig, error) {
	cfg := engine.SimulationConfig{
		HorizonDays: r.HorizonDays,
	}

	start, err := domain.ParseDate(r.StartDate)
	if err != nil {
		return engine.SimulationConfig{}, err
	}
	cfg.StartDate = start

	cfg.Accounts = make([]domain.Account, len(r.Accounts))
	for i, a := range r.Accounts {
		cfg.Accounts[i] = domain.Account{
			Name:        a.Name,
			Type:        domain.AccountType(a.Type),
			CreditLimit: a.CreditLimit,
		}
	}

	cfg.InitialBalances = make([]domain.InitialBalance, len(r.InitialBalances))
	for i, b := range r.InitialBalances {
		cfg.InitialBalances[i] = domain.InitialBalance{
			AccountName: b.AccountName,
			Balance:     b.Balance,
		}
	}

	if cfg.IncomeItems, err = toBudgetItems(r.IncomeItems); err != nil {
		return engine.SimulationConfig{}, err
	}
	if cfg.ExpenseItems, err = toBudgetItems(r.ExpenseItems); err != nil {
		return engine.SimulationConfig{}, err
	}

	cfg.Modifications = make([]domain.BudgetModification, len(r.Modifications))
	for i, m := range r.Modifications {
		mod, err := m.toDomain()
		if err != nil {
			return engine.SimulationConfig{}, err
		}
		cfg.Modifications[i] = mod
	}

	return cfg, nil
}

func (m *ModificationRequest) toDomain() (domain.BudgetModification, error) {
	effective, err := domain.ParseDate(m.EffectiveDate)
	if err != nil {
		return domain.BudgetModification{}, err
	}

	income, err := toBudgetItems(m.Income)
	if err != nil {
		return domain.BudgetModification{}, err
	}
	expense, err := toBudgetItems(m.Expense)
	if err != nil {
		return domain.BudgetModification{}, err
	}

	return domain.BudgetModification{
		EffectiveDate:    effective,
		Income:           income,
		Expense:          expense,
		Source:           m.Source,
		RecommendationID: m.RecommendationID,
	}, nil
}

func toBudgetItems(items []BudgetItemRequest) ([]domain.BudgetItem, error) {
	out := make([]domain.BudgetItem, len(items))
	for i, item := range items {
		converted, err := item.toDomain()
		if err != nil {
			return nil, err
		}
		out[i] = converted
	}
	return out, nil
}

func (b *BudgetItemRequest) toDomain() (domain.BudgetItem, error) {
	item := domain.BudgetItem{
		Description:   b.Description,
		Amount:        b.Amount,
		Frequency:     domain.Frequency(b.Frequency),
		RecurrenceDay: b.RecurrenceDay,
		Weekday:       b.Weekday,
		TargetMonth:   time.Month(b.TargetMonth),
		AccountName:   b.AccountName,
	}

	var err error
	if item.AnchorDate, err = parseOptionalDate(b.AnchorDate); err != nil {
		return domain.BudgetItem{}, err
	}
	if item.EndDate, err = parseOptionalDate(b.EndDate); err != nil {
		return domain.BudgetItem{}, err
	}
	if item.OneTimeDate, err = parseOptionalDate(b.OneTimeDate); err != nil {
		return domain.BudgetItem{}, err
	}

	return item, nil
}

func parseOptionalDate(s string) (domain.Date, error) {
	if s == "" {
		return domain.Date{}, nil
	}
	return domain.ParseDate(s)
}
