package inventory

import (
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/borderlesspc7/281-carlos/pkg/domain/entities"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func cementKit(id string, unitNumber int, perItem int64) *entities.Kit {
	return &entities.Kit{
		ID:         id,
		Name:       "Kit " + id,
		UnitNumber: unitNumber,
		Materials: []entities.MaterialRequirement{
			{ID: id + "-m1", Name: "Cimento", Unit: "saco", QuantityPerItem: d(perItem)},
		},
	}
}

func cementStock(qty int64) []*entities.StockEntry {
	return []*entities.StockEntry{{ID: "s1", Name: "cimento", Unit: "SACO", QuantityAvailable: d(qty)}}
}

func TestAnalyzeKits_SingleKitShortage(t *testing.T) {
	// Arrange
	kit := cementKit("K1", 1, 2)
	kit.Labor = []entities.LaborRequirement{{ItemID: "L1", ItemName: "Pedreiro", Quantity: d(3)}}

	// Act
	results := AnalyzeKits([]*entities.Kit{kit}, cementStock(8), entities.RemainingProduction{"K1": 5})

	// Assert
	require.Len(t, results, 1)
	r := results[0]
	assert.Equal(t, "K1", r.KitID)
	assert.Equal(t, 5, r.RemainingProduction)
	assert.True(t, r.HasAlert)
	require.Len(t, r.Materials, 1)
	m := r.Materials[0]
	assert.True(t, m.TotalQuantityNeeded.Equal(d(10)), "needed %s", m.TotalQuantityNeeded)
	assert.True(t, m.QuantityAllocated.Equal(d(8)), "allocated %s", m.QuantityAllocated)
	assert.True(t, m.Deficit.Equal(d(2)), "deficit %s", m.Deficit)
	assert.True(t, m.HasAlert)

	require.Len(t, r.Labor, 1)
	assert.True(t, r.Labor[0].TotalQuantity.Equal(d(15)), "labor %s", r.Labor[0].TotalQuantity)
}

func TestAnalyzeKits_OrderDependence(t *testing.T) {
	a := cementKit("A", 1, 1)
	b := cementKit("B", 2, 1)
	remaining := entities.RemainingProduction{"A": 10, "B": 10}
	stock := cementStock(12)

	abResults := AnalyzeKits([]*entities.Kit{a, b}, stock, remaining)
	assert.True(t, abResults[0].Materials[0].Deficit.IsZero())
	assert.True(t, abResults[1].Materials[0].Deficit.Equal(d(8)))
	assert.False(t, abResults[0].HasAlert)
	assert.True(t, abResults[1].HasAlert)

	baResults := AnalyzeKits([]*entities.Kit{b, a}, stock, remaining)
	assert.Equal(t, "B", baResults[0].KitID)
	assert.True(t, baResults[0].Materials[0].Deficit.IsZero())
	assert.True(t, baResults[1].Materials[0].Deficit.Equal(d(8)))
}

func TestAnalyzeKits_EmptyInputs(t *testing.T) {
	assert.Empty(t, AnalyzeKits(nil, cementStock(5), nil))

	results := AnalyzeKits([]*entities.Kit{cementKit("K1", 1, 3)}, nil, nil)
	require.Len(t, results, 1)
	m := results[0].Materials[0]
	assert.True(t, m.TotalQuantityNeeded.IsZero(), "missing remaining production reads as zero")
	assert.True(t, m.Deficit.IsZero())
	assert.False(t, results[0].HasAlert)
}

func TestAnalyzeKits_MissingStockIsFullDeficit(t *testing.T) {
	kit := cementKit("K1", 1, 2)
	kit.Materials = append(kit.Materials, entities.MaterialRequirement{Name: "Areia", Unit: "m3", QuantityPerItem: decimal.RequireFromString("0.5")})

	results := AnalyzeKits([]*entities.Kit{kit}, cementStock(100), entities.RemainingProduction{"K1": 3})

	sand := results[0].Materials[1]
	assert.True(t, sand.TotalQuantityNeeded.Equal(decimal.RequireFromString("1.5")))
	assert.True(t, sand.QuantityAllocated.IsZero())
	assert.True(t, sand.Deficit.Equal(decimal.RequireFromString("1.5")))
	assert.True(t, results[0].HasAlert)
}

func TestAnalyzeKits_NegativeQuantityPerItemNeedsNothing(t *testing.T) {
	kit := cementKit("K1", 1, -2)

	results := AnalyzeKits([]*entities.Kit{kit}, cementStock(8), entities.RemainingProduction{"K1": 5})

	require.Len(t, results, 1)
	m := results[0].Materials[0]
	assert.True(t, m.TotalQuantityNeeded.IsZero(), "needed %s", m.TotalQuantityNeeded)
	assert.True(t, m.QuantityAllocated.Add(m.Deficit).Equal(m.TotalQuantityNeeded))
	assert.False(t, m.HasAlert)
	assert.False(t, results[0].HasAlert)
}

func TestAnalyzeKits_DoesNotMutateInputs(t *testing.T) {
	kit := cementKit("K1", 1, 2)
	stock := cementStock(8)
	remaining := entities.RemainingProduction{"K1": 5}

	first := AnalyzeKits([]*entities.Kit{kit}, stock, remaining)
	second := AnalyzeKits([]*entities.Kit{kit}, stock, remaining)

	assert.True(t, stock[0].QuantityAvailable.Equal(d(8)))
	assert.True(t, kit.Materials[0].QuantityPerItem.Equal(d(2)))
	assert.Equal(t, 5, remaining["K1"])
	assert.Equal(t, first, second)
}

func TestAnalyzeKits_ConservationAndNonNegativity(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	names := []string{"Cimento", "Areia", "Brita", "Tijolo"}

	for round := 0; round < 50; round++ {
		var kits []*entities.Kit
		remaining := entities.RemainingProduction{}
		for k := 0; k < 1+rng.Intn(6); k++ {
			kit := &entities.Kit{ID: string(rune('A' + k)), Name: "kit"}
			for _, n := range names[:1+rng.Intn(len(names))] {
				kit.Materials = append(kit.Materials, entities.MaterialRequirement{Name: n, Unit: "un", QuantityPerItem: d(int64(rng.Intn(5)))})
			}
			remaining[kit.ID] = rng.Intn(20) - 2
			kits = append(kits, kit)
		}
		var stock []*entities.StockEntry
		for _, n := range names {
			stock = append(stock, &entities.StockEntry{Name: n, Unit: "UN", QuantityAvailable: d(int64(rng.Intn(40)))})
		}

		results := AnalyzeKits(kits, stock, remaining)
		require.Len(t, results, len(kits))

		allocatedPerMaterial := map[entities.StockKey]decimal.Decimal{}
		for i, r := range results {
			assert.Equal(t, kits[i].ID, r.KitID)
			anyAlert := false
			for _, m := range r.Materials {
				assert.True(t, m.QuantityAllocated.Add(m.Deficit).Equal(m.TotalQuantityNeeded), "conservation for %s", m.Name)
				assert.False(t, m.QuantityAllocated.IsNegative())
				assert.False(t, m.Deficit.IsNegative())
				assert.Equal(t, m.Deficit.IsPositive(), m.HasAlert)
				anyAlert = anyAlert || m.HasAlert
				key := entities.NewStockKey(m.Name, m.Unit)
				allocatedPerMaterial[key] = allocatedPerMaterial[key].Add(m.QuantityAllocated)
			}
			assert.Equal(t, anyAlert, r.HasAlert)
		}

		for _, entry := range stock {
			assert.True(t, allocatedPerMaterial[entry.Key()].LessThanOrEqual(entry.QuantityAvailable),
				"allocated %s exceeds stock %s of %s", allocatedPerMaterial[entry.Key()], entry.QuantityAvailable, entry.Name)
		}
	}
}

func TestAnalyzer_UnitNumberPolicy(t *testing.T) {
	late := cementKit("LATE", 5, 1)
	early := cementKit("EARLY", 1, 1)
	remaining := entities.RemainingProduction{"LATE": 10, "EARLY": 10}

	results := NewAnalyzer(UnitNumberOrder{}).AnalyzeKits([]*entities.Kit{late, early}, cementStock(12), remaining)

	require.Len(t, results, 2)
	assert.Equal(t, "LATE", results[0].KitID, "results stay in input order")
	assert.True(t, results[0].Materials[0].Deficit.Equal(d(8)))
	assert.True(t, results[1].Materials[0].Deficit.IsZero())
}

func TestAnalyzer_PriorityPolicy(t *testing.T) {
	kits := []*entities.Kit{cementKit("A", 1, 1), cementKit("B", 1, 1), cementKit("C", 1, 1)}
	remaining := entities.RemainingProduction{"A": 5, "B": 5, "C": 5}

	results := NewAnalyzer(PriorityOrder{"C": 0, "B": 1}).AnalyzeKits(kits, cementStock(10), remaining)

	assert.True(t, results[2].Materials[0].Deficit.IsZero(), "C served first")
	assert.True(t, results[1].Materials[0].Deficit.IsZero(), "B served second")
	assert.True(t, results[0].Materials[0].Deficit.Equal(d(5)), "unranked A served last")
}

func TestPolicyByName(t *testing.T) {
	p, err := PolicyByName("")
	require.NoError(t, err)
	assert.Equal(t, "input", p.Name())

	p, err = PolicyByName("unit-number")
	require.NoError(t, err)
	assert.Equal(t, "unit-number", p.Name())

	_, err = PolicyByName("random")
	assert.Error(t, err)
}

func TestSummarize(t *testing.T) {
	results := AnalyzeKits(
		[]*entities.Kit{cementKit("A", 1, 1), cementKit("B", 2, 1)},
		cementStock(12),
		entities.RemainingProduction{"A": 10, "B": 10},
	)

	summary := Summarize(results)

	assert.Equal(t, 2, summary.Kits)
	assert.Equal(t, 1, summary.KitsWithAlert)
	assert.Equal(t, 1, summary.MaterialsShort)
	assert.InDelta(t, 0.6, summary.CoverageRatio, 1e-9)
	assert.True(t, summary.DeficitByMaterial[entities.NewStockKey("Cimento", "saco")].Equal(d(8)))
}
