package site

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/borderlesspc7/281-carlos/pkg/domain/entities"
	"github.com/borderlesspc7/281-carlos/pkg/infrastructure/events"
	"github.com/borderlesspc7/281-carlos/pkg/infrastructure/repositories/memory"
)

func newTestService() (*Service, *events.InMemoryEventStore) {
	store := events.NewInMemoryEventStore()
	return NewService(Repositories{
		Sites:       memory.NewSiteRepository(),
		Stock:       memory.NewStockRepository(),
		Kits:        memory.NewKitRepository(),
		Remaining:   memory.NewRemainingProductionRepository(),
		Units:       memory.NewUnitRepository(),
		Budgets:     memory.NewBudgetRepository(),
		UnitItems:   memory.NewUnitItemRepository(),
		Productions: memory.NewProductionRepository(),
	}, store), store
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestSetBudget_RecomputesWeights(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	site, err := svc.CreateSite(ctx, "Residencial Aurora", 10, 2, "owner-1")
	require.NoError(t, err)
	u1, err := svc.AddUnit(ctx, site.ID, 1, "", date(2025, 1, 1), date(2025, 2, 28), []string{"101", "102"})
	require.NoError(t, err)
	u2, err := svc.AddUnit(ctx, site.ID, 2, u1.ID, date(2025, 3, 1), date(2025, 4, 30), []string{"201", "202"})
	require.NoError(t, err)

	_, err = svc.SetBudget(ctx, site.ID, u1.ID, decimal.NewFromInt(600), decimal.NewFromInt(400))
	require.NoError(t, err)
	_, err = svc.SetBudget(ctx, site.ID, u2.ID, decimal.NewFromInt(2000), decimal.NewFromInt(1000))
	require.NoError(t, err)

	budgets, err := svc.ListBudgets(ctx, site.ID)
	require.NoError(t, err)
	require.Len(t, budgets, 2)
	assert.True(t, budgets[0].Weight.Equal(decimal.NewFromInt(25)), "got %s", budgets[0].Weight)
	assert.True(t, budgets[1].Weight.Equal(decimal.NewFromInt(75)), "got %s", budgets[1].Weight)

	// Replacing a budget keeps one budget per unit
	_, err = svc.SetBudget(ctx, site.ID, u2.ID, decimal.NewFromInt(500), decimal.NewFromInt(500))
	require.NoError(t, err)
	budgets, err = svc.ListBudgets(ctx, site.ID)
	require.NoError(t, err)
	require.Len(t, budgets, 2)
	assert.True(t, budgets[0].Weight.Equal(decimal.NewFromInt(50)))

	require.NoError(t, svc.DeleteBudget(ctx, site.ID, budgets[1].ID))
	budgets, err = svc.ListBudgets(ctx, site.ID)
	require.NoError(t, err)
	require.Len(t, budgets, 1)
	assert.True(t, budgets[0].Weight.Equal(decimal.NewFromInt(100)))

	store.Wait()
	published, err := store.ReadEvents(site.ID, 1)
	require.NoError(t, err)
	assert.NotEmpty(t, published)
	for _, e := range published {
		assert.Equal(t, events.BudgetWeightsUpdatedEvent, e.Type())
	}
}

func TestAddUnit_PredecessorFromAnotherSite(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	other, err := svc.AddUnit(ctx, "site-b", 1, "", date(2025, 1, 1), date(2025, 1, 31), []string{"101"})
	require.NoError(t, err)

	_, err = svc.AddUnit(ctx, "site-a", 2, other.ID, date(2025, 2, 1), date(2025, 2, 28), []string{"201"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "another site")

	_, err = svc.AddUnit(ctx, "site-a", 2, "missing", date(2025, 2, 1), date(2025, 2, 28), []string{"201"})
	assert.True(t, errors.Is(err, entities.ErrNotFound))
}

func TestAddUnitItem_QuantityLimit(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	unit, err := svc.AddUnit(ctx, "site-a", 1, "", date(2025, 1, 1), date(2025, 1, 31), []string{"101", "102", "103"})
	require.NoError(t, err)

	item, err := svc.AddUnitItem(ctx, "site-a", unit.ID, "Construtora Alfa", "Pintura", 2)
	require.NoError(t, err)
	assert.Equal(t, 3, item.MaxQuantity)

	_, err = svc.AddUnitItem(ctx, "site-a", unit.ID, "Construtora Beta", "Pintura", 2)
	require.Error(t, err)
	assert.True(t, errors.Is(err, entities.ErrQuantityExceedsBudget))

	_, err = svc.AddUnitItem(ctx, "site-a", unit.ID, "Construtora Beta", "Pintura", 1)
	require.NoError(t, err)

	items, err := svc.ListUnitItems(ctx, "site-a", unit.ID)
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestSaveRemaining(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	err := svc.SaveRemaining(ctx, "site-a", entities.RemainingProduction{"kit-1": -1})
	require.Error(t, err)

	require.NoError(t, svc.SaveRemaining(ctx, "site-a", entities.RemainingProduction{"kit-1": 4, "kit-2": 2}))
	require.NoError(t, svc.SaveRemaining(ctx, "site-a", entities.RemainingProduction{"kit-1": 3}))

	remaining, err := svc.GetRemaining(ctx, "site-a")
	require.NoError(t, err)
	assert.Equal(t, 3, remaining["kit-1"])
	assert.Equal(t, 2, remaining["kit-2"])

	require.NoError(t, svc.ClearRemaining(ctx, "site-a"))
	remaining, err = svc.GetRemaining(ctx, "site-a")
	require.NoError(t, err)
	assert.Empty(t, remaining)
}

func TestRecordProductionAndMeasurement(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	unit, err := svc.AddUnit(ctx, "site-a", 1, "", date(2025, 1, 1), date(2025, 1, 31), []string{"101", "102"})
	require.NoError(t, err)

	_, err = svc.RecordProduction(ctx, "site-a", unit.ID, []string{"101"})
	require.NoError(t, err)

	_, err = svc.RecordProduction(ctx, "site-a", "missing", []string{"101"})
	assert.True(t, errors.Is(err, entities.ErrNotFound))

	m, err := svc.RecordMeasurement(ctx, "site-a", MeasurementInput{
		Number:     "M-001",
		Date:       date(2025, 1, 20),
		Supplier:   "Construtora Alfa",
		UnitID:     unit.ID,
		Apartments: []string{"101", "102"},
	})
	require.NoError(t, err)
	assert.Equal(t, unit.ID, m.UnitID)
}

func TestRecordsOfAnotherSiteAreNotFound(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	unit, err := svc.AddUnit(ctx, "site-b", 1, "", date(2025, 1, 1), date(2025, 1, 31), []string{"101", "102"})
	require.NoError(t, err)
	budget, err := svc.SetBudget(ctx, "site-b", unit.ID, decimal.NewFromInt(100), decimal.NewFromInt(50))
	require.NoError(t, err)
	stock, err := svc.AddStock(ctx, "site-b", "Cimento", "saco", decimal.NewFromInt(10))
	require.NoError(t, err)
	kit, err := svc.AddKit(ctx, "site-b", unit.ID, 1, "Alvenaria", nil, []entities.MaterialRequirement{
		{Name: "Cimento", Unit: "saco", QuantityPerItem: decimal.NewFromInt(1)},
	})
	require.NoError(t, err)

	notFound := func(err error) {
		t.Helper()
		assert.True(t, errors.Is(err, entities.ErrNotFound), "got %v", err)
	}

	notFound(svc.DeleteStock(ctx, "site-a", stock.ID))
	notFound(svc.DeleteKit(ctx, "site-a", kit.ID))
	notFound(svc.DeleteUnit(ctx, "site-a", unit.ID))
	notFound(svc.DeleteBudget(ctx, "site-a", budget.ID))
	_, err = svc.SetBudget(ctx, "site-a", unit.ID, decimal.NewFromInt(1), decimal.NewFromInt(1))
	notFound(err)
	_, err = svc.AddUnitItem(ctx, "site-a", unit.ID, "Construtora Alfa", "Pintura", 1)
	notFound(err)
	_, err = svc.ListUnitItems(ctx, "site-a", unit.ID)
	notFound(err)
	_, err = svc.RecordProduction(ctx, "site-a", unit.ID, []string{"101"})
	notFound(err)
	_, err = svc.RecordMeasurement(ctx, "site-a", MeasurementInput{Number: "M-1", Date: date(2025, 1, 20), Supplier: "X", UnitID: unit.ID, Apartments: []string{"101"}})
	notFound(err)
	_, err = svc.AddKit(ctx, "site-a", unit.ID, 1, "Reboco", nil, []entities.MaterialRequirement{
		{Name: "Areia", Unit: "m3", QuantityPerItem: decimal.NewFromInt(1)},
	})
	notFound(err)

	stockLeft, err := svc.ListStock(ctx, "site-b")
	require.NoError(t, err)
	assert.Len(t, stockLeft, 1)
	kits, err := svc.ListKits(ctx, "site-b")
	require.NoError(t, err)
	assert.Len(t, kits, 1)
	units, err := svc.ListUnits(ctx, "site-b")
	require.NoError(t, err)
	assert.Len(t, units, 1)
	budgets, err := svc.ListBudgets(ctx, "site-b")
	require.NoError(t, err)
	require.Len(t, budgets, 1)
	assert.True(t, budgets[0].MaterialCost.Equal(decimal.NewFromInt(100)))

	require.NoError(t, svc.DeleteStock(ctx, "site-b", stock.ID))
	require.NoError(t, svc.DeleteKit(ctx, "site-b", kit.ID))
	require.NoError(t, svc.DeleteBudget(ctx, "site-b", budget.ID))
	require.NoError(t, svc.DeleteUnit(ctx, "site-b", unit.ID))
}

func TestListSitesByOwner(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	mine, err := svc.CreateSite(ctx, "Residencial Aurora", 4, 1, "owner-1")
	require.NoError(t, err)
	_, err = svc.CreateSite(ctx, "Edifício Horizonte", 8, 2, "owner-2")
	require.NoError(t, err)

	sites, err := svc.ListSitesByOwner(ctx, "owner-1")
	require.NoError(t, err)
	require.Len(t, sites, 1)
	assert.Equal(t, mine.ID, sites[0].ID)

	sites, err = svc.ListSitesByOwner(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, sites)
}
