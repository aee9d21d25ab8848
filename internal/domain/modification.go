package domain

// ModificationSourceRecommendation marks modifications synthesized from
// accepted recommendations.
const ModificationSourceRecommendation = "recommendation"

// BudgetModification is a dated, full replacement of the budget. The income
// and expense lists are complete snapshots, never deltas: resolving a date
// picks exactly one modification (or the base budget) and never merges two.
type BudgetModification struct {
	EffectiveDate    Date
	Income           []BudgetItem
	Expense          []BudgetItem
	Source           string
	RecommendationID string
}
