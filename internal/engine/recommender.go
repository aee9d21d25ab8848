package engine

import (
	"sort"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/fincast/fincast/internal/domain"
)

var monthsPerYear = decimal.NewFromInt(12)

// Recommender turns anomalies into corrective recurring-amount changes and
// folds accepted recommendations into a budget-modification chain.
type Recommender struct {
	idGen  IDGenerator
	logger zerolog.Logger
}

// NewRecommender creates a new Recommender.
func NewRecommender(idGen IDGenerator, logger zerolog.Logger) *Recommender {
	return &Recommender{idGen: idGen, logger: logger}
}

// Recommend proposes reducing the account's dominant recurring income item
// so that its monthly equivalent matches the account's actual monthly
// expense total. Only credit accounts whose dominant payment exceeds that
// total qualify; everything else returns nil. The item keeps its frequency,
// only the amount changes.
//
// yearsRemaining scales the total recovery over the rest of the horizon.
func (r *Recommender) Recommend(anomaly domain.Anomaly, account domain.Account, incomeItems []domain.BudgetItem, monthlyExpenseTotal decimal.Decimal, yearsRemaining int) *domain.Recommendation {
	if !account.IsCredit() {
		return nil
	}

	item := dominantIncomeItem(incomeItems)
	if item == nil {
		return nil
	}

	currentMonthly := MonthlyAmount(*item)
	if !currentMonthly.GreaterThan(monthlyExpenseTotal) {
		return nil
	}

	newMonthly := monthlyExpenseTotal
	newPerOccurrence := PerOccurrenceAmount(newMonthly, item.Frequency)
	if newPerOccurrence.IsZero() && !newMonthly.IsZero() {
		// Zero-occurrence frequency: no per-occurrence conversion exists.
		return nil
	}

	monthlyRecovery := currentMonthly.Sub(newMonthly)
	yearlyRecovery := monthlyRecovery.Mul(monthsPerYear)
	if yearsRemaining < 1 {
		yearsRemaining = 1
	}
	totalRecovery := yearlyRecovery.Mul(decimal.NewFromInt(int64(yearsRemaining)))

	rec := &domain.Recommendation{
		ID:                   r.idGen.Generate(),
		AnomalyID:            anomaly.ID,
		AccountName:          account.Name,
		ItemDescription:      item.Description,
		Frequency:            item.Frequency,
		CurrentAmount:        item.Amount,
		NewAmount:            newPerOccurrence,
		CurrentAmountMonthly: currentMonthly,
		NewAmountMonthly:     newMonthly,
		InterventionDate:     anomaly.Date,
		MonthlyRecovery:      monthlyRecovery,
		YearlyRecovery:       yearlyRecovery,
		TotalRecovery:        totalRecovery,
	}

	r.logger.Debug().
		Str("account", account.Name).
		Str("item", item.Description).
		Str("current_monthly", currentMonthly.String()).
		Str("new_monthly", newMonthly.String()).
		Msg("recommendation generated")

	return rec
}

// dominantIncomeItem returns the item with the largest monthly equivalent.
// One-time items never dominate: they have no monthly equivalent.
func dominantIncomeItem(items []domain.BudgetItem) *domain.BudgetItem {
	var dominant *domain.BudgetItem
	var dominantMonthly decimal.Decimal

	for i := range items {
		if items[i].Frequency == domain.FrequencyOneTime {
			continue
		}
		monthly := MonthlyAmount(items[i])
		if dominant == nil || monthly.GreaterThan(dominantMonthly) {
			dominant = &items[i]
			dominantMonthly = monthly
		}
	}
	return dominant
}

// BuildModificationChain converts recommendations into a time-ordered chain
// of budget modifications. Recommendations apply in ascending intervention
// date order and each emitted modification is a full cumulative snapshot:
// it carries the effects of every earlier recommendation, so re-simulating
// with the chain reproduces sequential application exactly. The account
// list resolves items without an account name to the primary account.
func (r *Recommender) BuildModificationChain(accounts []domain.Account, recs []domain.Recommendation, baseIncome, baseExpense []domain.BudgetItem) []domain.BudgetModification {
	ordered := make([]domain.Recommendation, len(recs))
	copy(ordered, recs)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].InterventionDate.Before(ordered[j].InterventionDate)
	})

	mods := make([]domain.BudgetModification, 0, len(ordered))
	income := copyItems(baseIncome)
	expense := copyItems(baseExpense)

	for _, rec := range ordered {
		// Fresh copies per step so consecutive snapshots never alias.
		income = applyRecommendation(income, rec, accounts)
		expense = copyItems(expense)

		mods = append(mods, domain.BudgetModification{
			EffectiveDate:    rec.InterventionDate,
			Income:           income,
			Expense:          expense,
			Source:           domain.ModificationSourceRecommendation,
			RecommendationID: rec.ID,
		})
	}

	return mods
}

// applyRecommendation returns a copy of items with the targeted item's
// amount replaced by the recommendation's new per-occurrence amount. Items
// match on their effective account, so account-less items attributed to the
// primary account still pick up recommendations against it.
func applyRecommendation(items []domain.BudgetItem, rec domain.Recommendation, accounts []domain.Account) []domain.BudgetItem {
	out := copyItems(items)
	for i := range out {
		if out[i].Description == rec.ItemDescription && itemAccountName(out[i], accounts) == rec.AccountName {
			out[i].Amount = rec.NewAmount
		}
	}
	return out
}

// itemAccountName resolves an item's effective account: an empty name
// targets the primary (first) account, matching the simulator's
// attribution rule.
func itemAccountName(item domain.BudgetItem, accounts []domain.Account) string {
	if item.AccountName == "" && len(accounts) > 0 {
		return accounts[0].Name
	}
	return item.AccountName
}

func copyItems(items []domain.BudgetItem) []domain.BudgetItem {
	out := make([]domain.BudgetItem, len(items))
	copy(out, items)
	return out
}
