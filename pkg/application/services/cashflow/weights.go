package cashflow

import (
	"github.com/shopspring/decimal"

	"github.com/borderlesspc7/281-carlos/pkg/domain/entities"
)

// weightScale is the number of decimal places kept for stored weights
const weightScale = 4

var hundred = decimal.NewFromInt(100)

// ComputeWeights returns each budget's share of the combined total cost, in
// percent, keyed by budget id. When the combined total is zero no weights are
// returned and stored weights are left untouched.
func ComputeWeights(budgets []*entities.UnitBudget) map[string]decimal.Decimal {
	siteTotal := decimal.Zero
	for _, b := range budgets {
		siteTotal = siteTotal.Add(b.TotalCost())
	}

	weights := make(map[string]decimal.Decimal, len(budgets))
	if siteTotal.IsZero() {
		return weights
	}

	for _, b := range budgets {
		weights[b.ID] = b.TotalCost().Div(siteTotal).Mul(hundred).Round(weightScale)
	}
	return weights
}

// ApplyWeights sets the computed weights on the budgets and returns those whose weight changed
func ApplyWeights(budgets []*entities.UnitBudget) []*entities.UnitBudget {
	weights := ComputeWeights(budgets)

	var changed []*entities.UnitBudget
	for _, b := range budgets {
		w, ok := weights[b.ID]
		if !ok || w.Equal(b.Weight) {
			continue
		}
		b.Weight = w
		changed = append(changed, b)
	}
	return changed
}
