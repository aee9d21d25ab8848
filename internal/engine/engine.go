package engine

import (
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/fincast/fincast/internal/domain"
	"github.com/fincast/fincast/internal/infrastructure/metrics"
)

// AnalysisSummary condenses one analysis run for display surfaces.
type AnalysisSummary struct {
	AccountsAnalyzed     int
	AnomalyCount         int
	RecommendationCount  int
	TotalMonthlyRecovery decimal.Decimal
	Healthy              bool
}

// AnalysisReport is the full output of AnalyzeAndRecommend.
type AnalysisReport struct {
	Anomalies       []domain.Anomaly
	Recommendations []domain.Recommendation
	Summary         AnalysisSummary
}

// Engine bundles the trajectory components behind the functional API the
// adapters consume. Stateless between calls: every method is a pure
// function of its arguments plus observability side effects.
type Engine struct {
	logger      zerolog.Logger
	metrics     *metrics.Metrics
	simulator   *Simulator
	detector    *AnomalyDetector
	recommender *Recommender
}

// New creates a new Engine. metrics may be nil, e.g. in tests.
func New(logger zerolog.Logger, idGen IDGenerator, m *metrics.Metrics) *Engine {
	return &Engine{
		logger:      logger,
		metrics:     m,
		simulator:   NewSimulator(logger),
		detector:    NewAnomalyDetector(idGen),
		recommender: NewRecommender(idGen, logger),
	}
}

// SimulateTrajectory projects daily balances over the configured horizon.
func (e *Engine) SimulateTrajectory(cfg SimulationConfig) (*SimulationResult, error) {
	start := time.Now()

	result, err := e.simulator.Simulate(cfg)
	if err != nil {
		if e.metrics != nil {
			e.metrics.SimulationErrors.WithLabelValues("invalid_config").Inc()
		}
		return nil, err
	}

	if e.metrics != nil {
		e.metrics.SimulationsTotal.Inc()
		e.metrics.SimulationDuration.Observe(time.Since(start).Seconds())
		e.metrics.DaysSimulated.Add(float64(len(result.Days)))
		e.metrics.SimulationWarnings.Add(float64(len(result.Warnings)))
	}

	return result, nil
}

// AggregateMonths folds day records into month records.
func (e *Engine) AggregateMonths(days []domain.DayRecord, accounts []domain.Account, mods []domain.BudgetModification) []domain.MonthRecord {
	return ToMonths(days, accounts, mods)
}

// AggregateYears folds month records into year records.
func (e *Engine) AggregateYears(months []domain.MonthRecord, accounts []domain.Account, mods []domain.BudgetModification) []domain.YearRecord {
	return ToYears(months, accounts, mods)
}

// AnalyzeAndRecommend scans every account's day series for anomalies and
// derives a corrective recommendation per qualifying anomaly. The year
// records bound the horizon for total-recovery figures.
func (e *Engine) AnalyzeAndRecommend(accounts []domain.Account, days []domain.DayRecord, years []domain.YearRecord, incomeItems, expenseItems []domain.BudgetItem) *AnalysisReport {
	anomalies := e.detector.DetectAll(accounts, days)

	recommendations := []domain.Recommendation{}
	totalMonthly := decimal.Zero

	for _, anomaly := range anomalies {
		account := findAccount(accounts, anomaly.AccountName)
		if account == nil {
			continue
		}

		accountIncome := itemsForAccount(incomeItems, accounts, account.Name)
		expenseTotal := monthlyTotal(itemsForAccount(expenseItems, accounts, account.Name))
		remaining := yearsRemaining(years, anomaly.Date)

		rec := e.recommender.Recommend(anomaly, *account, accountIncome, expenseTotal, remaining)
		if rec == nil {
			continue
		}
		recommendations = append(recommendations, *rec)
		totalMonthly = totalMonthly.Add(rec.MonthlyRecovery)
	}

	if e.metrics != nil {
		e.metrics.AnalysesTotal.Inc()
		for _, a := range anomalies {
			e.metrics.AnomaliesDetected.WithLabelValues(string(a.Kind)).Inc()
		}
		e.metrics.RecommendationsGenerated.Add(float64(len(recommendations)))
	}

	report := &AnalysisReport{
		Anomalies:       anomalies,
		Recommendations: recommendations,
		Summary: AnalysisSummary{
			AccountsAnalyzed:     len(accounts),
			AnomalyCount:         len(anomalies),
			RecommendationCount:  len(recommendations),
			TotalMonthlyRecovery: totalMonthly,
			Healthy:              len(anomalies) == 0,
		},
	}

	e.logger.Info().
		Int("accounts", len(accounts)).
		Int("anomalies", len(anomalies)).
		Int("recommendations", len(recommendations)).
		Msg("analysis completed")

	return report
}

// BuildModificationChain converts recommendations into a cumulative,
// time-ordered budget-modification chain.
func (e *Engine) BuildModificationChain(accounts []domain.Account, recs []domain.Recommendation, baseIncome, baseExpense []domain.BudgetItem) []domain.BudgetModification {
	chain := e.recommender.BuildModificationChain(accounts, recs, baseIncome, baseExpense)
	if e.metrics != nil {
		e.metrics.ModificationChainLength.Observe(float64(len(chain)))
	}
	return chain
}

func findAccount(accounts []domain.Account, name string) *domain.Account {
	for i := range accounts {
		if accounts[i].Name == name {
			return &accounts[i]
		}
	}
	return nil
}

// itemsForAccount selects the items whose effective account is the named
// account, per the simulator's attribution rule.
func itemsForAccount(items []domain.BudgetItem, accounts []domain.Account, name string) []domain.BudgetItem {
	out := []domain.BudgetItem{}
	for _, item := range items {
		if itemAccountName(item, accounts) == name {
			out = append(out, item)
		}
	}
	return out
}

// monthlyTotal sums the monthly equivalents of a list of items. One-time
// items contribute zero.
func monthlyTotal(items []domain.BudgetItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(MonthlyAmount(item))
	}
	return total
}

// yearsRemaining counts the year records from the intervention year to the
// horizon's end, inclusive. At least one year whenever the anomaly falls
// inside the horizon.
func yearsRemaining(years []domain.YearRecord, intervention domain.Date) int {
	if len(years) == 0 {
		return 1
	}
	last := years[len(years)-1].Year
	remaining := last - intervention.Year() + 1
	if remaining < 1 {
		return 1
	}
	return remaining
}
