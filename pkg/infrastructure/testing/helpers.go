package testing

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/borderlesspc7/281-carlos/pkg/domain/entities"
	"github.com/borderlesspc7/281-carlos/pkg/infrastructure/repositories/memory"
)

// TowerSiteID is the id of the site built by BuildTowerSite
const TowerSiteID = "site-tower"

// TowerOwnerID is the user who registered the tower site
const TowerOwnerID = "user-1"

// Repositories bundles the in-memory stores of a test scenario
type Repositories struct {
	Sites       *memory.SiteRepository
	Stock       *memory.StockRepository
	Kits        *memory.KitRepository
	Remaining   *memory.RemainingProductionRepository
	Units       *memory.UnitRepository
	Budgets     *memory.BudgetRepository
	UnitItems   *memory.UnitItemRepository
	Productions *memory.ProductionRepository
	Contracts   *memory.ContractRepository
	Checklists  *memory.ChecklistRepository
}

// NewRepositories creates empty in-memory stores
func NewRepositories() *Repositories {
	return &Repositories{
		Sites:       memory.NewSiteRepository(),
		Stock:       memory.NewStockRepository(),
		Kits:        memory.NewKitRepository(),
		Remaining:   memory.NewRemainingProductionRepository(),
		Units:       memory.NewUnitRepository(),
		Budgets:     memory.NewBudgetRepository(),
		UnitItems:   memory.NewUnitItemRepository(),
		Productions: memory.NewProductionRepository(),
		Contracts:   memory.NewContractRepository(),
		Checklists:  memory.NewChecklistRepository(),
	}
}

// Date returns midnight UTC of the given day
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Dec parses a decimal literal, panicking on malformed input
func Dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// Material builds a kit material requirement
func Material(name, unit, perItem string) entities.MaterialRequirement {
	return entities.MaterialRequirement{ID: name + "-" + unit, Name: name, Unit: unit, QuantityPerItem: Dec(perItem)}
}

// Labor builds a kit labor requirement
func Labor(itemID, itemName, quantity string) entities.LaborRequirement {
	return entities.LaborRequirement{ID: itemID, ItemID: itemID, ItemName: itemName, Quantity: Dec(quantity)}
}

// MustKit creates a kit or panics
func MustKit(id, siteID, unitID string, unitNumber int, name string, labor []entities.LaborRequirement, materials ...entities.MaterialRequirement) *entities.Kit {
	kit, err := entities.NewKit(id, siteID, unitID, unitNumber, name, labor, materials)
	if err != nil {
		panic(err)
	}
	return kit
}

// MustStock creates a stock entry or panics
func MustStock(id, siteID, name, unit, quantity string) *entities.StockEntry {
	entry, err := entities.NewStockEntry(id, siteID, name, unit, Dec(quantity))
	if err != nil {
		panic(err)
	}
	return entry
}

// MustUnit creates a production unit or panics
func MustUnit(id, siteID string, number int, predecessorID string, start, end time.Time, apartments ...string) *entities.ProductionUnit {
	unit, err := entities.NewProductionUnit(id, siteID, number, predecessorID, start, end, apartments)
	if err != nil {
		panic(err)
	}
	return unit
}

// MustBudget creates a unit budget or panics
func MustBudget(id, siteID string, unit *entities.ProductionUnit, material, labor string) *entities.UnitBudget {
	budget, err := entities.NewUnitBudget(id, siteID, unit.ID, unit.Number, Dec(material), Dec(labor))
	if err != nil {
		panic(err)
	}
	return budget
}

// BuildTowerSite builds a three-unit tower scenario:
//
//	stock:  cimento 100 then 120 saco (the later entry wins), areia 10 m3, tijolo 1000 un
//	kit-1 (unit 1, 10 left): 10 saco cimento and 200 un tijolo per item
//	kit-2 (unit 2, 5 left):  8 saco cimento and 1 m3 areia per item
//	unit 1: Jan 15 to Mar 10 2025, budget 3000 material + 1500 labor
//	unit 2: April 2025, budget 1200 material + 800 labor
//	unit 3: May to June 2025, no budget
//
// Unit 1 has apartments 101-103 produced and 101 measured.
func BuildTowerSite() *Repositories {
	ctx := context.Background()
	repos := NewRepositories()
	site := TowerSiteID

	must(repos.Sites.Save(ctx, &entities.Site{ID: site, Name: "Residencial Aurora", Floors: 4, Towers: 1, OwnerID: TowerOwnerID, Status: entities.SiteActive}))

	for _, entry := range []*entities.StockEntry{
		MustStock("stock-1", site, "Cimento", "saco", "100"),
		MustStock("stock-2", site, "Areia", "m3", "10"),
		MustStock("stock-3", site, "Tijolo", "un", "1000"),
		MustStock("stock-4", site, "cimento", "SACO", "120"),
	} {
		must(repos.Stock.Save(ctx, entry))
	}

	u1 := MustUnit("unit-1", site, 1, "", Date(2025, time.January, 15), Date(2025, time.March, 10), "101", "102", "103", "104")
	u2 := MustUnit("unit-2", site, 2, u1.ID, Date(2025, time.April, 1), Date(2025, time.April, 30), "201", "202", "203", "204")
	u3 := MustUnit("unit-3", site, 3, u2.ID, Date(2025, time.May, 1), Date(2025, time.June, 30), "301", "302", "303", "304")
	for _, u := range []*entities.ProductionUnit{u1, u2, u3} {
		must(repos.Units.Save(ctx, u))
	}

	must(repos.Budgets.Save(ctx, MustBudget("budget-1", site, u1, "3000", "1500")))
	must(repos.Budgets.Save(ctx, MustBudget("budget-2", site, u2, "1200", "800")))

	must(repos.Kits.Save(ctx, MustKit("kit-1", site, u1.ID, 1, "Alvenaria",
		[]entities.LaborRequirement{Labor("svc-pedreiro", "Pedreiro", "2")},
		Material("Cimento", "saco", "10"),
		Material("Tijolo", "un", "200"),
	)))
	must(repos.Kits.Save(ctx, MustKit("kit-2", site, u2.ID, 2, "Reboco", nil,
		Material("Cimento", "saco", "8"),
		Material("Areia", "m3", "1"),
	)))
	must(repos.Remaining.SaveAll(ctx, site, entities.RemainingProduction{"kit-1": 10, "kit-2": 5}))

	production1, err := entities.NewProductionRecord("prod-1", site, u1.ID, []string{"101", "102"})
	must(err)
	production2, err := entities.NewProductionRecord("prod-2", site, u1.ID, []string{"102", "103"})
	must(err)
	must(repos.Productions.SaveProduction(ctx, production1))
	must(repos.Productions.SaveProduction(ctx, production2))

	measurement, err := entities.NewMeasurementRecord("meas-1", site, "M-001", Date(2025, time.February, 28), "Construtora Alfa", "", u1.ID, []string{"101"})
	must(err)
	must(repos.Productions.SaveMeasurement(ctx, measurement))

	return repos
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
