package dto

import (
	"github.com/shopspring/decimal"

	"github.com/fincast/fincast/internal/domain"
	"github.com/fincast/fincast/internal/engine"
)

// ErrorResponse represents an API error.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// TransactionResponse is one fired budget item.
type TransactionResponse struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	AccountName string          `json:"account_name"`
}

// AccountActivityResponse is one account's view of a period.
type AccountActivityResponse struct {
	AccountName  string                `json:"account_name"`
	Opening      decimal.Decimal       `json:"opening_balance"`
	Closing      decimal.Decimal       `json:"closing_balance"`
	Income       []TransactionResponse `json:"income,omitempty"`
	Expense      []TransactionResponse `json:"expense,omitempty"`
	TotalIncome  decimal.Decimal       `json:"total_income"`
	TotalExpense decimal.Decimal       `json:"total_expense"`
	HasActivity  bool                  `json:"has_activity"`
}

// DayResponse represents one simulated day.
type DayResponse struct {
	Date            string                    `json:"date"`
	Accounts        []AccountActivityResponse `json:"accounts"`
	TotalIncome     decimal.Decimal           `json:"total_income"`
	TotalExpense    decimal.Decimal           `json:"total_expense"`
	HasModification bool                      `json:"has_modification"`
}

// MonthResponse represents one aggregated month.
type MonthResponse struct {
	Year            int                       `json:"year"`
	Month           int                       `json:"month"`
	Accounts        []AccountActivityResponse `json:"accounts"`
	TotalIncome     decimal.Decimal           `json:"total_income"`
	TotalExpense    decimal.Decimal           `json:"total_expense"`
	HasActivity     bool                      `json:"has_activity"`
	HasModification bool                      `json:"has_modification"`
}

// YearResponse represents one aggregated year.
type YearResponse struct {
	Year            int                       `json:"year"`
	Accounts        []AccountActivityResponse `json:"accounts"`
	TotalIncome     decimal.Decimal           `json:"total_income"`
	TotalExpense    decimal.Decimal           `json:"total_expense"`
	HasActivity     bool                      `json:"has_activity"`
	HasModification bool                      `json:"has_modification"`
}

// WarningResponse is one tolerated irregularity.
type WarningResponse struct {
	Date            string `json:"date"`
	ItemDescription string `json:"item_description"`
	AccountName     string `json:"account_name"`
}

// SimulationResponse is the output of the simulations endpoint. Exactly one
// of Days/Months/Years is populated, matching the requested granularity.
type SimulationResponse struct {
	Days     []DayResponse     `json:"days,omitempty"`
	Months   []MonthResponse   `json:"months,omitempty"`
	Years    []YearResponse    `json:"years,omitempty"`
	Warnings []WarningResponse `json:"warnings,omitempty"`
}

// AnomalyResponse represents a detected anomaly.
type AnomalyResponse struct {
	ID            string          `json:"id"`
	AccountName   string          `json:"account_name"`
	Kind          string          `json:"kind"`
	Date          string          `json:"date"`
	BalanceBefore decimal.Decimal `json:"balance_before"`
	BalanceAfter  decimal.Decimal `json:"balance_after"`
}

// RecommendationResponse represents a corrective recommendation.
type RecommendationResponse struct {
	ID                   string          `json:"id"`
	AnomalyID            string          `json:"anomaly_id"`
	AccountName          string          `json:"account_name"`
	ItemDescription      string          `json:"item_description"`
	Frequency            string          `json:"frequency"`
	CurrentAmount        decimal.Decimal `json:"current_amount"`
	NewAmount            decimal.Decimal `json:"new_amount"`
	CurrentAmountMonthly decimal.Decimal `json:"current_amount_monthly"`
	NewAmountMonthly     decimal.Decimal `json:"new_amount_monthly"`
	InterventionDate     string          `json:"intervention_date"`
	MonthlyRecovery      decimal.Decimal `json:"monthly_recovery"`
	YearlyRecovery       decimal.Decimal `json:"yearly_recovery"`
	TotalRecovery        decimal.Decimal `json:"total_recovery"`
}

// SummaryResponse condenses one analysis run.
type SummaryResponse struct {
	AccountsAnalyzed     int             `json:"accounts_analyzed"`
	AnomalyCount         int             `json:"anomaly_count"`
	RecommendationCount  int             `json:"recommendation_count"`
	TotalMonthlyRecovery decimal.Decimal `json:"total_monthly_recovery"`
	Healthy              bool            `json:"healthy"`
}

// ModificationResponse is one synthesized budget modification.
type ModificationResponse struct {
	EffectiveDate    string              `json:"effective_date"`
	Income           []BudgetItemRequest `json:"income"`
	Expense          []BudgetItemRequest `json:"expense"`
	Source           string              `json:"source,omitempty"`
	RecommendationID string              `json:"recommendation_id,omitempty"`
}

// AnalysisResponse is the output of the analysis endpoint.
type AnalysisResponse struct {
	Anomalies       []AnomalyResponse        `json:"anomalies"`
	Recommendations []RecommendationResponse `json:"recommendations"`
	Summary         SummaryResponse          `json:"summary"`
	Modifications   []ModificationResponse   `json:"modifications"`
	Warnings        []WarningResponse        `json:"warnings,omitempty"`
}

// DaysFromDomain converts day records to responses.
func DaysFromDomain(days []domain.DayRecord) []DayResponse {
	out := make([]DayResponse, len(days))
	for i, day := range days {
		out[i] = DayResponse{
			Date:            day.Date.String(),
			Accounts:        activitiesFromDomain(day.Accounts),
			TotalIncome:     day.TotalIncome,
			TotalExpense:    day.TotalExpense,
			HasModification: day.HasModification,
		}
	}
	return out
}

// MonthsFromDomain converts month records to responses.
func MonthsFromDomain(months []domain.MonthRecord) []MonthResponse {
	out := make([]MonthResponse, len(months))
	for i, month := range months {
		out[i] = MonthResponse{
			Year:            month.Year,
			Month:           int(month.Month),
			Accounts:        activitiesFromDomain(month.Accounts),
			TotalIncome:     month.TotalIncome,
			TotalExpense:    month.TotalExpense,
			HasActivity:     month.HasActivity,
			HasModification: month.HasModification,
		}
	}
	return out
}

// YearsFromDomain converts year records to responses.
func YearsFromDomain(years []domain.YearRecord) []YearResponse {
	out := make([]YearResponse, len(years))
	for i, year := range years {
		out[i] = YearResponse{
			Year:            year.Year,
			Accounts:        activitiesFromDomain(year.Accounts),
			TotalIncome:     year.TotalIncome,
			TotalExpense:    year.TotalExpense,
			HasActivity:     year.HasActivity,
			HasModification: year.HasModification,
		}
	}
	return out
}

// WarningsFromDomain converts simulation warnings to responses.
func WarningsFromDomain(warnings []domain.Warning) []WarningResponse {
	out := make([]WarningResponse, len(warnings))
	for i, w := range warnings {
		out[i] = WarningResponse{
			Date:            w.Date.String(),
			ItemDescription: w.ItemDescription,
			AccountName:     w.AccountName,
		}
	}
	return out
}

// AnalysisFromDomain converts an analysis report plus its synthesized
// modification chain to a response.
func AnalysisFromDomain(report *engine.AnalysisReport, chain []domain.BudgetModification, warnings []domain.Warning) AnalysisResponse {
	anomalies := make([]AnomalyResponse, len(report.Anomalies))
	for i, a := range report.Anomalies {
		anomalies[i] = AnomalyResponse{
			ID:            a.ID,
			AccountName:   a.AccountName,
			Kind:          string(a.Kind),
			Date:          a.Date.String(),
			BalanceBefore: a.BalanceBefore,
			BalanceAfter:  a.BalanceAfter,
		}
	}

	recommendations := make([]RecommendationResponse, len(report.Recommendations))
	for i, r := range report.Recommendations {
		recommendations[i] = RecommendationResponse{
			ID:                   r.ID,
			AnomalyID:            r.AnomalyID,
			AccountName:          r.AccountName,
			ItemDescription:      r.ItemDescription,
			Frequency:            string(r.Frequency),
			CurrentAmount:        r.CurrentAmount,
			NewAmount:            r.NewAmount,
			CurrentAmountMonthly: r.CurrentAmountMonthly,
			NewAmountMonthly:     r.NewAmountMonthly,
			InterventionDate:     r.InterventionDate.String(),
			MonthlyRecovery:      r.MonthlyRecovery,
			YearlyRecovery:       r.YearlyRecovery,
			TotalRecovery:        r.TotalRecovery,
		}
	}

	modifications := make([]ModificationResponse, len(chain))
	for i, m := range chain {
		modifications[i] = ModificationResponse{
			EffectiveDate:    m.EffectiveDate.String(),
			Income:           itemsFromDomain(m.Income),
			Expense:          itemsFromDomain(m.Expense),
			Source:           m.Source,
			RecommendationID: m.RecommendationID,
		}
	}

	return AnalysisResponse{
		Anomalies:       anomalies,
		Recommendations: recommendations,
		Summary: SummaryResponse{
			AccountsAnalyzed:     report.Summary.AccountsAnalyzed,
			AnomalyCount:         report.Summary.AnomalyCount,
			RecommendationCount:  report.Summary.RecommendationCount,
			TotalMonthlyRecovery: report.Summary.TotalMonthlyRecovery,
			Healthy:              report.Summary.Healthy,
		},
		Modifications: modifications,
		Warnings:      WarningsFromDomain(warnings),
	}
}

func activitiesFromDomain(activities []domain.AccountActivity) []AccountActivityResponse {
	out := make([]AccountActivityResponse, len(activities))
	for i, a := range activities {
		out[i] = AccountActivityResponse{
			AccountName:  a.AccountName,
			Opening:      a.Opening,
			Closing:      a.Closing,
			Income:       transactionsFromDomain(a.Income),
			Expense:      transactionsFromDomain(a.Expense),
			TotalIncome:  a.TotalIncome,
			TotalExpense: a.TotalExpense,
			HasActivity:  a.HasActivity,
		}
	}
	return out
}

func transactionsFromDomain(txs []domain.Transaction) []TransactionResponse {
	if len(txs) == 0 {
		return nil
	}
	out := make([]TransactionResponse, len(txs))
	for i, tx := range txs {
		out[i] = TransactionResponse{
			Description: tx.Description,
			Amount:      tx.Amount,
			AccountName: tx.AccountName,
		}
	}
	return out
}

func itemsFromDomain(items []domain.BudgetItem) []BudgetItemRequest {
	out := make([]BudgetItemRequest, len(items))
	for i, item := range items {
		out[i] = BudgetItemRequest{
			Description:   item.Description,
			Amount:        item.Amount,
			Frequency:     string(item.Frequency),
			RecurrenceDay: item.RecurrenceDay,
			Weekday:       item.Weekday,
			AnchorDate:    optionalDateString(item.AnchorDate),
			TargetMonth:   int(item.TargetMonth),
			AccountName:   item.AccountName,
			EndDate:       optionalDateString(item.EndDate),
			OneTimeDate:   optionalDateString(item.OneTimeDate),
		}
	}
	return out
}

func optionalDateString(d domain.Date) string {
	if d.IsZero() {
		return ""
	}
	return d.String()
}
