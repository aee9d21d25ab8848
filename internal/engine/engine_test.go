package engine_test

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/fincast/fincast/internal/domain"
	"github.com/fincast/fincast/internal/engine"
	"github.com/fincast/fincast/internal/engine/mocks"
)

func newEngine() *engine.Engine {
	return engine.New(zerolog.Nop(), mocks.NewMockIDGenerator(), nil)
}

// creditOverpaymentConfig is the reference what-if scenario: a credit card
// paid $800/month against only $200/month of charges, so the owed balance
// crosses below zero within a few months.
func creditOverpaymentConfig() engine.SimulationConfig {
	return engine.SimulationConfig{
		Accounts: []domain.Account{
			{Name: "Checking", Type: domain.AccountChecking},
			{Name: "Visa", Type: domain.AccountCredit, CreditLimit: decimal.NewFromInt(5000)},
		},
		InitialBalances: []domain.InitialBalance{
			{AccountName: "Checking", Balance: decimal.NewFromInt(10000)},
			{AccountName: "Visa", Balance: decimal.Zero},
		},
		IncomeItems: []domain.BudgetItem{
			{Description: "Salary", Amount: decimal.NewFromInt(4000), Frequency: domain.FrequencyMonthly, RecurrenceDay: 1, AccountName: "Checking"},
			{Description: "Card payment", Amount: decimal.NewFromInt(800), Frequency: domain.FrequencyMonthly, RecurrenceDay: 5, AccountName: "Visa"},
		},
		ExpenseItems: []domain.BudgetItem{
			{Description: "Card charges", Amount: decimal.NewFromInt(200), Frequency: domain.FrequencyMonthly, RecurrenceDay: 12, AccountName: "Visa"},
		},
		StartDate:   d("2024-01-01"),
		HorizonDays: 365,
	}
}

func TestAnalyzeAndRecommendCreditOverpayment(t *testing.T) {
	e := newEngine()
	cfg := creditOverpaymentConfig()

	result, err := e.SimulateTrajectory(cfg)
	require.NoError(t, err)

	months := e.AggregateMonths(result.Days, cfg.Accounts, cfg.Modifications)
	years := e.AggregateYears(months, cfg.Accounts, cfg.Modifications)

	report := e.AnalyzeAndRecommend(cfg.Accounts, result.Days, years, cfg.IncomeItems, cfg.ExpenseItems)

	require.False(t, report.Summary.Healthy)
	require.Len(t, report.Anomalies, 1)
	require.Equal(t, domain.AnomalyOverpayment, report.Anomalies[0].Kind)
	require.Equal(t, "Visa", report.Anomalies[0].AccountName)

	require.Len(t, report.Recommendations, 1)
	rec := report.Recommendations[0]
	require.Equal(t, "Card payment", rec.ItemDescription)
	require.True(t, rec.NewAmountMonthly.Equal(decimal.NewFromInt(200)),
		"expected payment reduced to the 200 monthly charge level, got %s", rec.NewAmountMonthly)
	require.True(t, rec.NewAmount.Equal(decimal.NewFromInt(200)))
	require.Equal(t, domain.FrequencyMonthly, rec.Frequency)
	require.True(t, rec.MonthlyRecovery.Equal(decimal.NewFromInt(600)))
	require.Equal(t, rec.AnomalyID, report.Anomalies[0].ID)
	require.True(t, rec.InterventionDate.Equal(report.Anomalies[0].Date))

	require.Equal(t, 1, report.Summary.RecommendationCount)
	require.True(t, report.Summary.TotalMonthlyRecovery.Equal(decimal.NewFromInt(600)))
}

func TestAnalyzeAndRecommendHealthy(t *testing.T) {
	e := newEngine()
	cfg := engine.SimulationConfig{
		Accounts: []domain.Account{{Name: "Checking", Type: domain.AccountChecking}},
		InitialBalances: []domain.InitialBalance{
			{AccountName: "Checking", Balance: decimal.NewFromInt(5000)},
		},
		IncomeItems: []domain.BudgetItem{
			{Description: "Salary", Amount: decimal.NewFromInt(3000), Frequency: domain.FrequencyMonthly, RecurrenceDay: 1},
		},
		ExpenseItems: []domain.BudgetItem{
			{Description: "Rent", Amount: decimal.NewFromInt(1000), Frequency: domain.FrequencyMonthly, RecurrenceDay: 3},
		},
		StartDate:   d("2024-01-01"),
		HorizonDays: 365,
	}

	result, err := e.SimulateTrajectory(cfg)
	require.NoError(t, err)

	report := e.AnalyzeAndRecommend(cfg.Accounts, result.Days, nil, cfg.IncomeItems, cfg.ExpenseItems)
	require.True(t, report.Summary.Healthy)
	require.Empty(t, report.Anomalies)
	require.Empty(t, report.Recommendations)
}

func TestBuildModificationChainReproducesSequentialApplication(t *testing.T) {
	e := newEngine()
	cfg := creditOverpaymentConfig()

	result, err := e.SimulateTrajectory(cfg)
	require.NoError(t, err)
	months := e.AggregateMonths(result.Days, cfg.Accounts, cfg.Modifications)
	years := e.AggregateYears(months, cfg.Accounts, cfg.Modifications)
	report := e.AnalyzeAndRecommend(cfg.Accounts, result.Days, years, cfg.IncomeItems, cfg.ExpenseItems)
	require.NotEmpty(t, report.Recommendations)

	chain := e.BuildModificationChain(cfg.Accounts, report.Recommendations, cfg.IncomeItems, cfg.ExpenseItems)
	require.Len(t, chain, len(report.Recommendations))

	// Re-simulating with the generated chain must match simulating with the
	// recommendation's amount hand-applied from the intervention date on.
	withChain := cfg
	withChain.Modifications = chain
	chained, err := e.SimulateTrajectory(withChain)
	require.NoError(t, err)

	rec := report.Recommendations[0]
	manualIncome := make([]domain.BudgetItem, len(cfg.IncomeItems))
	copy(manualIncome, cfg.IncomeItems)
	for i := range manualIncome {
		if manualIncome[i].Description == rec.ItemDescription {
			manualIncome[i].Amount = rec.NewAmount
		}
	}
	manual := cfg
	manual.Modifications = []domain.BudgetModification{{
		EffectiveDate: rec.InterventionDate,
		Income:        manualIncome,
		Expense:       cfg.ExpenseItems,
	}}
	expected, err := e.SimulateTrajectory(manual)
	require.NoError(t, err)

	require.Equal(t, len(expected.Days), len(chained.Days))
	for i := range expected.Days {
		want := expected.Days[i].Account("Visa").Closing
		got := chained.Days[i].Account("Visa").Closing
		require.True(t, want.Equal(got), "day %d: expected %s, got %s", i, want, got)
	}
}

func TestBuildModificationChainPrimaryAccountAttribution(t *testing.T) {
	// A plan whose items carry no account name: everything lands on the
	// primary credit account, and the chain must still pick up the
	// recommendation generated against it.
	e := newEngine()
	cfg := engine.SimulationConfig{
		Accounts: []domain.Account{
			{Name: "Visa", Type: domain.AccountCredit, CreditLimit: decimal.NewFromInt(5000)},
		},
		InitialBalances: []domain.InitialBalance{
			{AccountName: "Visa", Balance: decimal.NewFromInt(500)},
		},
		IncomeItems: []domain.BudgetItem{
			{Description: "Card payment", Amount: decimal.NewFromInt(800), Frequency: domain.FrequencyMonthly, RecurrenceDay: 5},
		},
		ExpenseItems: []domain.BudgetItem{
			{Description: "Card charges", Amount: decimal.NewFromInt(200), Frequency: domain.FrequencyMonthly, RecurrenceDay: 12},
		},
		StartDate:   d("2024-01-01"),
		HorizonDays: 365,
	}

	result, err := e.SimulateTrajectory(cfg)
	require.NoError(t, err)
	months := e.AggregateMonths(result.Days, cfg.Accounts, cfg.Modifications)
	years := e.AggregateYears(months, cfg.Accounts, cfg.Modifications)
	report := e.AnalyzeAndRecommend(cfg.Accounts, result.Days, years, cfg.IncomeItems, cfg.ExpenseItems)

	require.Len(t, report.Recommendations, 1)
	rec := report.Recommendations[0]
	require.Equal(t, "Card payment", rec.ItemDescription)
	require.True(t, rec.NewAmount.Equal(decimal.NewFromInt(200)))

	chain := e.BuildModificationChain(cfg.Accounts, report.Recommendations, cfg.IncomeItems, cfg.ExpenseItems)
	require.Len(t, chain, 1)
	got := chain[0].Income[0]
	require.Equal(t, "Card payment", got.Description)
	require.True(t, got.Amount.Equal(decimal.NewFromInt(200)),
		"expected the chain to carry the reduced amount, got %s", got.Amount)
}

func TestEngineWhatIfRunsAreIndependent(t *testing.T) {
	e := newEngine()
	cfg := creditOverpaymentConfig()

	before, err := e.SimulateTrajectory(cfg)
	require.NoError(t, err)
	firstClosing := before.Days[len(before.Days)-1].Account("Visa").Closing

	// A what-if rerun with extra modifications must not disturb the
	// original inputs or a replay of the original run.
	whatIf := cfg
	whatIf.Modifications = []domain.BudgetModification{{
		EffectiveDate: d("2024-02-01"),
		Income:        []domain.BudgetItem{},
		Expense:       []domain.BudgetItem{},
	}}
	_, err = e.SimulateTrajectory(whatIf)
	require.NoError(t, err)

	again, err := e.SimulateTrajectory(cfg)
	require.NoError(t, err)
	require.True(t, firstClosing.Equal(again.Days[len(again.Days)-1].Account("Visa").Closing))
}

func TestYearsRemainingScalesTotalRecovery(t *testing.T) {
	e := newEngine()
	cfg := creditOverpaymentConfig()
	cfg.HorizonDays = 365 * 5

	result, err := e.SimulateTrajectory(cfg)
	require.NoError(t, err)
	months := e.AggregateMonths(result.Days, cfg.Accounts, cfg.Modifications)
	years := e.AggregateYears(months, cfg.Accounts, cfg.Modifications)
	report := e.AnalyzeAndRecommend(cfg.Accounts, result.Days, years, cfg.IncomeItems, cfg.ExpenseItems)
	require.Len(t, report.Recommendations, 1)

	rec := report.Recommendations[0]
	// Anomaly falls in the first simulated year, so the whole horizon remains.
	require.True(t, rec.TotalRecovery.Equal(rec.YearlyRecovery.Mul(decimal.NewFromInt(int64(len(years))))),
		"expected total recovery %s to span %d years, got %s", rec.YearlyRecovery, len(years), rec.TotalRecovery)
}
