package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/borderlesspc7/281-carlos/pkg/application/services/shared"
	"github.com/borderlesspc7/281-carlos/pkg/domain/entities"
)

// Analyzer computes per-kit material deficits by allocating the site stock
// greedily across kits. Kits drawn earlier are served in full before later
// ones see any of the same material.
type Analyzer struct {
	policy AllocationPolicy
}

// NewAnalyzer creates an analyzer with the given allocation policy; nil means input order
func NewAnalyzer(policy AllocationPolicy) *Analyzer {
	if policy == nil {
		policy = InputOrder{}
	}
	return &Analyzer{policy: policy}
}

// Policy returns the allocation policy in use
func (a *Analyzer) Policy() AllocationPolicy {
	return a.policy
}

// AnalyzeKits analyses kits with the default input-order policy
func AnalyzeKits(kits []*entities.Kit, stock []*entities.StockEntry, remaining entities.RemainingProduction) []entities.KitAnalysisResult {
	return NewAnalyzer(nil).AnalyzeKits(kits, stock, remaining)
}

// AnalyzeKits returns one result per kit in input order, whatever the
// allocation order of the policy. Shortages are reported as data; the
// analysis never fails and never modifies its inputs.
func (a *Analyzer) AnalyzeKits(kits []*entities.Kit, stock []*entities.StockEntry, remaining entities.RemainingProduction) []entities.KitAnalysisResult {
	results := make([]entities.KitAnalysisResult, len(kits))
	if len(kits) == 0 {
		return results
	}

	ledger := shared.NewStockLedger(stock)

	for _, idx := range a.policy.Order(kits) {
		kit := kits[idx]
		if kit == nil {
			results[idx] = entities.KitAnalysisResult{Materials: []entities.MaterialNeed{}, Labor: []entities.LaborNeed{}}
			continue
		}
		results[idx] = analyzeKit(kit, remaining.For(kit.ID), ledger)
	}

	return results
}

func analyzeKit(kit *entities.Kit, count int, ledger shared.StockLedger) entities.KitAnalysisResult {
	items := decimal.NewFromInt(int64(count))

	result := entities.KitAnalysisResult{
		KitID:               kit.ID,
		KitName:             kit.Name,
		UnitNumber:          kit.UnitNumber,
		RemainingProduction: count,
		Materials:           make([]entities.MaterialNeed, 0, len(kit.Materials)),
		Labor:               make([]entities.LaborNeed, 0, len(kit.Labor)),
	}

	for _, material := range kit.Materials {
		total := material.QuantityPerItem.Mul(items)
		if total.IsNegative() {
			total = decimal.Zero
		}
		allocated, deficit := ledger.Allocate(material.Key(), total)

		need := entities.MaterialNeed{
			Name:                material.Name,
			Unit:                material.Unit,
			QuantityPerItem:     material.QuantityPerItem,
			TotalQuantityNeeded: total,
			QuantityAllocated:   allocated,
			Deficit:             deficit,
			HasAlert:            deficit.IsPositive(),
		}
		if need.HasAlert {
			result.HasAlert = true
		}
		result.Materials = append(result.Materials, need)
	}

	for _, labor := range kit.Labor {
		result.Labor = append(result.Labor, entities.LaborNeed{
			ItemID:        labor.ItemID,
			ItemName:      labor.ItemName,
			QuantityPer:   labor.Quantity,
			TotalQuantity: labor.Quantity.Mul(items),
		})
	}

	return result
}

// Summary aggregates the outcome of an analysis run
type Summary struct {
	Kits              int
	KitsWithAlert     int
	MaterialsShort    int
	CoverageRatio     float64
	DeficitByMaterial map[entities.StockKey]decimal.Decimal
}

// Summarize computes aggregate figures over analysis results
func Summarize(results []entities.KitAnalysisResult) Summary {
	summary := Summary{
		Kits:              len(results),
		DeficitByMaterial: make(map[entities.StockKey]decimal.Decimal),
	}

	needed, allocated := decimal.Zero, decimal.Zero
	for _, r := range results {
		if r.HasAlert {
			summary.KitsWithAlert++
		}
		for _, m := range r.Materials {
			needed = needed.Add(m.TotalQuantityNeeded)
			allocated = allocated.Add(m.QuantityAllocated)
			if m.HasAlert {
				summary.MaterialsShort++
				key := entities.NewStockKey(m.Name, m.Unit)
				summary.DeficitByMaterial[key] = summary.DeficitByMaterial[key].Add(m.Deficit)
			}
		}
	}

	if needed.IsPositive() {
		summary.CoverageRatio, _ = allocated.Div(needed).Float64()
	}
	return summary
}
