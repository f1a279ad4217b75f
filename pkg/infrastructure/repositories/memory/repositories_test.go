package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/borderlesspc7/281-carlos/pkg/domain/entities"
)

func TestStockRepository_SaveFindListDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewStockRepository()

	entry, err := entities.NewStockEntry("s1", "site1", "Cement", "kg", decimal.NewFromInt(100))
	if err != nil {
		t.Fatalf("Failed to create stock entry: %v", err)
	}
	other, _ := entities.NewStockEntry("s2", "site2", "Sand", "m3", decimal.NewFromInt(5))

	if err := repo.Save(ctx, entry); err != nil {
		t.Fatalf("Failed to save stock entry: %v", err)
	}
	_ = repo.Save(ctx, other)

	found, err := repo.FindByID(ctx, "s1")
	if err != nil {
		t.Fatalf("Failed to find stock entry: %v", err)
	}
	if !found.QuantityAvailable.Equal(decimal.NewFromInt(100)) {
		t.Errorf("Expected quantity 100, got %s", found.QuantityAvailable)
	}

	// Updating replaces the record without duplicating it
	entry.QuantityAvailable = decimal.NewFromInt(40)
	_ = repo.Save(ctx, entry)

	list, _ := repo.ListBySite(ctx, "site1")
	if len(list) != 1 {
		t.Fatalf("Expected 1 entry for site1, got %d", len(list))
	}
	if !list[0].QuantityAvailable.Equal(decimal.NewFromInt(40)) {
		t.Errorf("Expected updated quantity 40, got %s", list[0].QuantityAvailable)
	}

	if err := repo.Delete(ctx, "s1"); err != nil {
		t.Fatalf("Failed to delete: %v", err)
	}
	if _, err := repo.FindByID(ctx, "s1"); !errors.Is(err, entities.ErrNotFound) {
		t.Errorf("Expected ErrNotFound after delete, got %v", err)
	}
	if err := repo.Delete(ctx, "s1"); !errors.Is(err, entities.ErrNotFound) {
		t.Errorf("Expected ErrNotFound deleting twice, got %v", err)
	}
}

func TestKitRepository_StoresCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewKitRepository()

	kit, err := entities.NewKit("k1", "site1", "u1", 1, "Hydraulic", nil, []entities.MaterialRequirement{
		{ID: "m1", Name: "Pipe", Unit: "m", QuantityPerItem: decimal.NewFromInt(3)},
	})
	if err != nil {
		t.Fatalf("Failed to create kit: %v", err)
	}
	_ = repo.Save(ctx, kit)

	kit.Materials[0].Name = "Changed"

	found, _ := repo.FindByID(ctx, "k1")
	if found.Materials[0].Name != "Pipe" {
		t.Errorf("Expected stored material to be unaffected, got %s", found.Materials[0].Name)
	}
}

func TestKitRepository_ListBySiteOrdersByUnitThenCreation(t *testing.T) {
	ctx := context.Background()
	repo := NewKitRepository()
	base := time.Date(2025, time.March, 1, 8, 0, 0, 0, time.UTC)

	for _, k := range []entities.Kit{
		{ID: "k3", SiteID: "site1", UnitNumber: 3, CreatedAt: base},
		{ID: "k1-late", SiteID: "site1", UnitNumber: 1, CreatedAt: base.Add(time.Hour)},
		{ID: "other", SiteID: "site2", UnitNumber: 0, CreatedAt: base},
		{ID: "k1-early", SiteID: "site1", UnitNumber: 1, CreatedAt: base},
		{ID: "k2", SiteID: "site1", UnitNumber: 2, CreatedAt: base.Add(2 * time.Hour)},
	} {
		kit := k
		if err := repo.Save(ctx, &kit); err != nil {
			t.Fatalf("Failed to save kit %s: %v", k.ID, err)
		}
	}

	kits, err := repo.ListBySite(ctx, "site1")
	if err != nil {
		t.Fatalf("Failed to list kits: %v", err)
	}
	want := []string{"k1-early", "k1-late", "k2", "k3"}
	if len(kits) != len(want) {
		t.Fatalf("Expected %d kits, got %d", len(want), len(kits))
	}
	for i, id := range want {
		if kits[i].ID != id {
			t.Errorf("Expected kit %d to be %s, got %s", i, id, kits[i].ID)
		}
	}
}

func TestRemainingProductionRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewRemainingProductionRepository()

	_ = repo.SaveAll(ctx, "site1", entities.RemainingProduction{"k1": 10, "k2": 3})
	_ = repo.SaveAll(ctx, "site1", entities.RemainingProduction{"k2": 7})

	got, _ := repo.Get(ctx, "site1")
	if got.For("k1") != 10 || got.For("k2") != 7 {
		t.Errorf("Expected k1=10 k2=7, got %v", got)
	}

	got["k1"] = 0
	again, _ := repo.Get(ctx, "site1")
	if again.For("k1") != 10 {
		t.Errorf("Expected Get to return a copy")
	}

	_ = repo.DeleteBySite(ctx, "site1")
	empty, _ := repo.Get(ctx, "site1")
	if len(empty) != 0 {
		t.Errorf("Expected no counts after delete, got %v", empty)
	}
}

func TestContractRepository_ListBySupplier(t *testing.T) {
	ctx := context.Background()
	repo := NewContractRepository()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	contracts := []*entities.Contract{
		{ID: "c2", SiteID: "site1", Supplier: "Acme", CreatedAt: base.Add(time.Hour)},
		{ID: "c1", SiteID: "site1", Supplier: "acme ", CreatedAt: base},
		{ID: "c3", SiteID: "site1", Supplier: "Other", CreatedAt: base},
		{ID: "c4", SiteID: "site2", Supplier: "Acme", CreatedAt: base},
	}
	for _, c := range contracts {
		_ = repo.Save(ctx, c)
	}

	list, _ := repo.ListBySupplier(ctx, "site1", "ACME")
	if len(list) != 2 {
		t.Fatalf("Expected 2 contracts, got %d", len(list))
	}
	if list[0].ID != "c1" || list[1].ID != "c2" {
		t.Errorf("Expected oldest first [c1 c2], got [%s %s]", list[0].ID, list[1].ID)
	}
}

func TestProductionRepository_ScopesBySite(t *testing.T) {
	ctx := context.Background()
	repo := NewProductionRepository()

	_ = repo.SaveProduction(ctx, &entities.ProductionRecord{ID: "p1", SiteID: "site1", UnitID: "u1", Apartments: []string{"101"}})
	_ = repo.SaveProduction(ctx, &entities.ProductionRecord{ID: "p2", SiteID: "site2", UnitID: "u9"})
	_ = repo.SaveMeasurement(ctx, &entities.MeasurementRecord{ID: "m1", SiteID: "site1", UnitID: "u1"})

	productions, _ := repo.ListProductions(ctx, "site1")
	measurements, _ := repo.ListMeasurements(ctx, "site1")
	if len(productions) != 1 || len(measurements) != 1 {
		t.Errorf("Expected 1 production and 1 measurement, got %d and %d", len(productions), len(measurements))
	}
}
