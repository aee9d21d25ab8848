package engine

import (
	"sort"

	"github.com/fincast/fincast/internal/domain"
)

// ResolvedBudget is the budget in force on one date: either the base lists
// or one modification's complete replacement lists, never a merge.
type ResolvedBudget struct {
	Income        []domain.BudgetItem
	Expense       []domain.BudgetItem
	Modified      bool
	EffectiveDate domain.Date
}

// BudgetResolver answers which budget snapshot is in force on a date.
// Modifications are sorted once at construction; callers' slices are never
// mutated.
type BudgetResolver struct {
	baseIncome  []domain.BudgetItem
	baseExpense []domain.BudgetItem
	mods        []domain.BudgetModification
}

// NewBudgetResolver creates a resolver over the base budget and a timeline
// of modifications.
func NewBudgetResolver(baseIncome, baseExpense []domain.BudgetItem, mods []domain.BudgetModification) *BudgetResolver {
	sorted := make([]domain.BudgetModification, len(mods))
	copy(sorted, mods)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].EffectiveDate.Before(sorted[j].EffectiveDate)
	})

	return &BudgetResolver{
		baseIncome:  baseIncome,
		baseExpense: baseExpense,
		mods:        sorted,
	}
}

// Resolve returns the budget in force on date: the modification with the
// greatest effective date on or before it, else the base budget.
func (r *BudgetResolver) Resolve(date domain.Date) ResolvedBudget {
	// First modification strictly after date; the one before it wins.
	idx := sort.Search(len(r.mods), func(i int) bool {
		return r.mods[i].EffectiveDate.After(date)
	})
	if idx == 0 {
		return ResolvedBudget{Income: r.baseIncome, Expense: r.baseExpense}
	}

	mod := r.mods[idx-1]
	return ResolvedBudget{
		Income:        mod.Income,
		Expense:       mod.Expense,
		Modified:      true,
		EffectiveDate: mod.EffectiveDate,
	}
}

// IsModificationDate reports whether any modification takes effect on date.
func (r *BudgetResolver) IsModificationDate(date domain.Date) bool {
	for _, mod := range r.mods {
		if mod.EffectiveDate.Equal(date) {
			return true
		}
		if mod.EffectiveDate.After(date) {
			break
		}
	}
	return false
}
