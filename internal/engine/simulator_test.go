package engine_test

import (
	"reflect"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/fincast/fincast/internal/domain"
	"github.com/fincast/fincast/internal/engine"
)

func newSimulator() *engine.Simulator {
	return engine.NewSimulator(zerolog.Nop())
}

func checkingConfig(start string, horizon int) engine.SimulationConfig {
	return engine.SimulationConfig{
		Accounts: []domain.Account{{Name: "Checking", Type: domain.AccountChecking}},
		InitialBalances: []domain.InitialBalance{
			{AccountName: "Checking", Balance: decimal.NewFromInt(1000)},
		},
		StartDate:   d(start),
		HorizonDays: horizon,
	}
}

func TestSimulateEmptyAccounts(t *testing.T) {
	result, err := newSimulator().Simulate(engine.SimulationConfig{
		StartDate:   d("2024-01-01"),
		HorizonDays: 30,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Days) != 0 {
		t.Errorf("expected empty day sequence, got %d days", len(result.Days))
	}
}

func TestSimulateMissingStartDate(t *testing.T) {
	cfg := checkingConfig("2024-01-01", 10)
	cfg.StartDate = domain.Date{}

	if _, err := newSimulator().Simulate(cfg); err != engine.ErrMissingStartDate {
		t.Fatalf("expected ErrMissingStartDate, got %v", err)
	}
}

func TestSimulateRejectsInvalidConfig(t *testing.T) {
	cfg := checkingConfig("2024-01-01", 10)
	cfg.IncomeItems = []domain.BudgetItem{
		{Description: "bad", Amount: decimal.NewFromInt(-5), Frequency: domain.FrequencyMonthly, RecurrenceDay: 1},
	}

	if _, err := newSimulator().Simulate(cfg); err == nil {
		t.Fatal("expected error for negative item amount, got nil")
	}
}

func TestSimulateBalanceContinuity(t *testing.T) {
	cfg := checkingConfig("2024-01-01", 120)
	cfg.IncomeItems = []domain.BudgetItem{
		{Description: "Salary", Amount: decimal.NewFromInt(2500), Frequency: domain.FrequencySemimonthly, RecurrenceDay: 1},
	}
	cfg.ExpenseItems = []domain.BudgetItem{
		{Description: "Rent", Amount: decimal.NewFromInt(1400), Frequency: domain.FrequencyMonthly, RecurrenceDay: 3},
		{Description: "Groceries", Amount: decimal.NewFromInt(90), Frequency: domain.FrequencyWeekly, Weekday: intPtr(6)},
	}

	result, err := newSimulator().Simulate(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Days) != 120 {
		t.Fatalf("expected 120 days, got %d", len(result.Days))
	}

	for i := 1; i < len(result.Days); i++ {
		prev := result.Days[i-1].Account("Checking")
		curr := result.Days[i].Account("Checking")
		if !prev.Closing.Equal(curr.Opening) {
			t.Fatalf("day %d: closing %s != next opening %s", i-1, prev.Closing, curr.Opening)
		}
	}
}

func TestSimulateCreditSemantics(t *testing.T) {
	cfg := engine.SimulationConfig{
		Accounts: []domain.Account{
			{Name: "Visa", Type: domain.AccountCredit, CreditLimit: decimal.NewFromInt(5000)},
		},
		InitialBalances: []domain.InitialBalance{
			{AccountName: "Visa", Balance: decimal.NewFromInt(1000)},
		},
		IncomeItems: []domain.BudgetItem{
			{Description: "Card payment", Amount: decimal.NewFromInt(300), Frequency: domain.FrequencyMonthly, RecurrenceDay: 5, AccountName: "Visa"},
		},
		ExpenseItems: []domain.BudgetItem{
			{Description: "Subscriptions", Amount: decimal.NewFromInt(50), Frequency: domain.FrequencyMonthly, RecurrenceDay: 10, AccountName: "Visa"},
		},
		StartDate:   d("2024-01-01"),
		HorizonDays: 31,
	}

	result, err := newSimulator().Simulate(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Payment on day 5 decreases the amount owed.
	payDay := result.Days[4].Account("Visa")
	if !payDay.Closing.Equal(decimal.NewFromInt(700)) {
		t.Errorf("expected payment to decrease balance to 700, got %s", payDay.Closing)
	}

	// Charge on day 10 increases the amount owed.
	chargeDay := result.Days[9].Account("Visa")
	if !chargeDay.Closing.Equal(decimal.NewFromInt(750)) {
		t.Errorf("expected charge to increase balance to 750, got %s", chargeDay.Closing)
	}
}

func TestSimulateUnknownAccountWarnsOnce(t *testing.T) {
	cfg := checkingConfig("2024-01-01", 90)
	cfg.ExpenseItems = []domain.BudgetItem{
		{Description: "Orphan", Amount: decimal.NewFromInt(100), Frequency: domain.FrequencyMonthly, RecurrenceDay: 1, AccountName: "Closed account"},
	}

	result, err := newSimulator().Simulate(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The item fired three times but must produce no balance effect.
	last := result.Days[len(result.Days)-1].Account("Checking")
	if !last.Closing.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("expected untouched balance 1000, got %s", last.Closing)
	}

	if len(result.Warnings) != 1 {
		t.Fatalf("expected one deduplicated warning, got %d", len(result.Warnings))
	}
	w := result.Warnings[0]
	if w.ItemDescription != "Orphan" || w.AccountName != "Closed account" {
		t.Errorf("unexpected warning contents: %+v", w)
	}
	if !w.Date.Equal(d("2024-01-01")) {
		t.Errorf("expected warning dated at first firing, got %s", w.Date)
	}
}

func TestSimulateUnsetAccountTargetsPrimary(t *testing.T) {
	cfg := engine.SimulationConfig{
		Accounts: []domain.Account{
			{Name: "Checking", Type: domain.AccountChecking},
			{Name: "Savings", Type: domain.AccountSavings},
		},
		IncomeItems: []domain.BudgetItem{
			{Description: "Salary", Amount: decimal.NewFromInt(100), Frequency: domain.FrequencyMonthly, RecurrenceDay: 1},
		},
		StartDate:   d("2024-01-01"),
		HorizonDays: 1,
	}

	result, err := newSimulator().Simulate(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	day := result.Days[0]
	if got := day.Account("Checking").Closing; !got.Equal(decimal.NewFromInt(100)) {
		t.Errorf("expected salary on the primary account, got %s", got)
	}
	if got := day.Account("Savings").Closing; !got.IsZero() {
		t.Errorf("expected savings untouched, got %s", got)
	}
}

func TestSimulateAppliesModifications(t *testing.T) {
	cfg := checkingConfig("2024-01-01", 90)
	cfg.ExpenseItems = []domain.BudgetItem{
		{Description: "Rent", Amount: decimal.NewFromInt(500), Frequency: domain.FrequencyMonthly, RecurrenceDay: 1},
	}
	cfg.Modifications = []domain.BudgetModification{
		{
			EffectiveDate: d("2024-02-15"),
			Income:        []domain.BudgetItem{},
			Expense: []domain.BudgetItem{
				{Description: "Rent", Amount: decimal.NewFromInt(800), Frequency: domain.FrequencyMonthly, RecurrenceDay: 1},
			},
		},
	}

	result, err := newSimulator().Simulate(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Jan 1 and Feb 1 fire at the base amount, Mar 1 at the modified one.
	if got := result.Days[0].Account("Checking").TotalExpense; !got.Equal(decimal.NewFromInt(500)) {
		t.Errorf("expected base rent on Jan 1, got %s", got)
	}
	mar1 := result.Days[d("2024-03-01").DaysSince(d("2024-01-01"))].Account("Checking")
	if !mar1.TotalExpense.Equal(decimal.NewFromInt(800)) {
		t.Errorf("expected modified rent on Mar 1, got %s", mar1.TotalExpense)
	}

	// The resolved effective date is flagged on its day record.
	feb15 := result.Days[d("2024-02-15").DaysSince(d("2024-01-01"))]
	if !feb15.HasModification {
		t.Error("expected modification flag on the effective date")
	}
	if result.Days[0].HasModification {
		t.Error("expected no modification flag before the effective date")
	}
}

func TestSimulateIdempotent(t *testing.T) {
	cfg := checkingConfig("2024-01-01", 365)
	cfg.IncomeItems = []domain.BudgetItem{
		{Description: "Paycheck", Amount: decimal.NewFromInt(1800), Frequency: domain.FrequencyBiweekly, Weekday: intPtr(5), AnchorDate: d("2024-01-05")},
	}
	cfg.ExpenseItems = []domain.BudgetItem{
		{Description: "Rent", Amount: decimal.NewFromInt(1200), Frequency: domain.FrequencyMonthly, RecurrenceDay: 1},
		{Description: "Tax", Amount: decimal.NewFromInt(2400), Frequency: domain.FrequencyAnnual, RecurrenceDay: 15, TargetMonth: 4},
	}

	first, err := newSimulator().Simulate(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := newSimulator().Simulate(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Error("expected identical inputs to produce identical output sequences")
	}
}

func TestSimulateDefaultHorizon(t *testing.T) {
	cfg := checkingConfig("2024-01-01", 0)

	result, err := newSimulator().Simulate(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Days) != engine.DefaultHorizonDays {
		t.Errorf("expected default horizon of %d days, got %d", engine.DefaultHorizonDays, len(result.Days))
	}
}

func TestSimulateOverdraftScenario(t *testing.T) {
	// One checking account at $1000, one $1500 expense on day 1, no income.
	cfg := checkingConfig("2024-01-01", 31)
	cfg.ExpenseItems = []domain.BudgetItem{
		{Description: "Rent", Amount: decimal.NewFromInt(1500), Frequency: domain.FrequencyMonthly, RecurrenceDay: 1},
	}

	result, err := newSimulator().Simulate(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	day1 := result.Days[0].Account("Checking")
	if !day1.Opening.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("expected opening 1000, got %s", day1.Opening)
	}
	if !day1.Closing.Equal(decimal.NewFromInt(-500)) {
		t.Errorf("expected closing -500, got %s", day1.Closing)
	}
}
