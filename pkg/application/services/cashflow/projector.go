package cashflow

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/borderlesspc7/281-carlos/pkg/domain/entities"
)

// Projection is a cash-flow projection plus the units it had to leave out
type Projection struct {
	Months     []entities.MonthlyCashFlow `json:"months"`
	Unbudgeted []entities.UnbudgetedUnit  `json:"unbudgeted"`
}

// ProjectCashFlow spreads each budgeted unit's costs evenly over the calendar
// months its schedule touches and aggregates them per month, ascending.
// Units without a budget contribute nothing.
func ProjectCashFlow(units []*entities.ProductionUnit, budgets []*entities.UnitBudget) []entities.MonthlyCashFlow {
	return Project(units, budgets).Months
}

// Project is ProjectCashFlow that also reports the units skipped for lack of a budget
func Project(units []*entities.ProductionUnit, budgets []*entities.UnitBudget) Projection {
	budgetByUnit := make(map[string]*entities.UnitBudget, len(budgets))
	for _, b := range budgets {
		if b == nil {
			continue
		}
		if _, seen := budgetByUnit[b.UnitID]; !seen {
			budgetByUnit[b.UnitID] = b
		}
	}

	buckets := make(map[entities.YearMonth]*entities.MonthlyCashFlow)
	projection := Projection{
		Months:     []entities.MonthlyCashFlow{},
		Unbudgeted: []entities.UnbudgetedUnit{},
	}

	for _, unit := range units {
		if unit == nil {
			continue
		}
		budget, ok := budgetByUnit[unit.ID]
		if !ok {
			projection.Unbudgeted = append(projection.Unbudgeted, entities.UnbudgetedUnit{UnitID: unit.ID, UnitNumber: unit.Number})
			continue
		}

		months := entities.MonthsBetween(unit.StartDate, unit.EndDate)
		n := decimal.NewFromInt(int64(len(months)))
		share := entities.UnitCashShare{
			UnitNumber:   unit.Number,
			MaterialCost: budget.MaterialCost.Div(n),
			LaborCost:    budget.LaborCost.Div(n),
			TotalCost:    budget.TotalCost().Div(n),
		}

		for _, ym := range months {
			bucket, exists := buckets[ym]
			if !exists {
				bucket = entities.NewMonthlyCashFlow(ym)
				buckets[ym] = bucket
			}
			bucket.Add(share)
		}
	}

	keys := make([]entities.YearMonth, 0, len(buckets))
	for ym := range buckets {
		keys = append(keys, ym)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Before(keys[j]) })

	for _, ym := range keys {
		projection.Months = append(projection.Months, *buckets[ym])
	}
	return projection
}

// Totals sums a projection back into overall material, labor and total cost
func Totals(months []entities.MonthlyCashFlow) (material, labor, total decimal.Decimal) {
	material, labor, total = decimal.Zero, decimal.Zero, decimal.Zero
	for _, m := range months {
		material = material.Add(m.MaterialCost)
		labor = labor.Add(m.LaborCost)
		total = total.Add(m.TotalCost)
	}
	return material, labor, total
}
