package memory

import (
	"context"

	"github.com/borderlesspc7/281-carlos/pkg/domain/entities"
	"github.com/borderlesspc7/281-carlos/pkg/domain/repositories"
)

// SiteRepository provides in-memory site storage
type SiteRepository struct {
	sites *table[entities.Site]
}

func NewSiteRepository() *SiteRepository {
	return &SiteRepository{sites: newTable[entities.Site]("site")}
}

var _ repositories.SiteRepository = (*SiteRepository)(nil)

func (r *SiteRepository) Save(_ context.Context, site *entities.Site) error {
	r.sites.put(site.ID, *site)
	return nil
}

func (r *SiteRepository) FindByID(_ context.Context, id string) (*entities.Site, error) {
	site, err := r.sites.get(id)
	if err != nil {
		return nil, err
	}
	return &site, nil
}

func (r *SiteRepository) ListByOwner(_ context.Context, ownerID string) ([]*entities.Site, error) {
	return pointers(r.sites.filter(func(s entities.Site) bool { return s.OwnerID == ownerID })), nil
}

// UnitRepository provides in-memory production unit storage
type UnitRepository struct {
	units *table[entities.ProductionUnit]
}

func NewUnitRepository() *UnitRepository {
	return &UnitRepository{units: newTable[entities.ProductionUnit]("unit")}
}

var _ repositories.UnitRepository = (*UnitRepository)(nil)

func (r *UnitRepository) Save(_ context.Context, unit *entities.ProductionUnit) error {
	stored := *unit
	stored.Apartments = append([]string(nil), unit.Apartments...)
	r.units.put(unit.ID, stored)
	return nil
}

func (r *UnitRepository) FindByID(_ context.Context, id string) (*entities.ProductionUnit, error) {
	unit, err := r.units.get(id)
	if err != nil {
		return nil, err
	}
	return &unit, nil
}

func (r *UnitRepository) ListBySite(_ context.Context, siteID string) ([]*entities.ProductionUnit, error) {
	return pointers(r.units.filter(func(u entities.ProductionUnit) bool { return u.SiteID == siteID })), nil
}

func (r *UnitRepository) Delete(_ context.Context, id string) error {
	return r.units.remove(id)
}

// BudgetRepository provides in-memory unit budget storage
type BudgetRepository struct {
	budgets *table[entities.UnitBudget]
}

func NewBudgetRepository() *BudgetRepository {
	return &BudgetRepository{budgets: newTable[entities.UnitBudget]("budget")}
}

var _ repositories.BudgetRepository = (*BudgetRepository)(nil)

func (r *BudgetRepository) Save(_ context.Context, budget *entities.UnitBudget) error {
	r.budgets.put(budget.ID, *budget)
	return nil
}

func (r *BudgetRepository) ListBySite(_ context.Context, siteID string) ([]*entities.UnitBudget, error) {
	return pointers(r.budgets.filter(func(b entities.UnitBudget) bool { return b.SiteID == siteID })), nil
}

func (r *BudgetRepository) Delete(_ context.Context, id string) error {
	return r.budgets.remove(id)
}

// UnitItemRepository provides in-memory unit service item storage
type UnitItemRepository struct {
	items *table[entities.UnitItem]
}

func NewUnitItemRepository() *UnitItemRepository {
	return &UnitItemRepository{items: newTable[entities.UnitItem]("unit item")}
}

var _ repositories.UnitItemRepository = (*UnitItemRepository)(nil)

func (r *UnitItemRepository) Save(_ context.Context, item *entities.UnitItem) error {
	r.items.put(item.ID, *item)
	return nil
}

func (r *UnitItemRepository) ListByUnit(_ context.Context, unitID string) ([]*entities.UnitItem, error) {
	return pointers(r.items.filter(func(i entities.UnitItem) bool { return i.UnitID == unitID })), nil
}

// ProductionRepository provides in-memory production and measurement storage
type ProductionRepository struct {
	productions  *table[entities.ProductionRecord]
	measurements *table[entities.MeasurementRecord]
}

func NewProductionRepository() *ProductionRepository {
	return &ProductionRepository{
		productions:  newTable[entities.ProductionRecord]("production"),
		measurements: newTable[entities.MeasurementRecord]("measurement"),
	}
}

var _ repositories.ProductionRepository = (*ProductionRepository)(nil)

func (r *ProductionRepository) SaveProduction(_ context.Context, record *entities.ProductionRecord) error {
	r.productions.put(record.ID, *record)
	return nil
}

func (r *ProductionRepository) ListProductions(_ context.Context, siteID string) ([]*entities.ProductionRecord, error) {
	return pointers(r.productions.filter(func(p entities.ProductionRecord) bool { return p.SiteID == siteID })), nil
}

func (r *ProductionRepository) SaveMeasurement(_ context.Context, record *entities.MeasurementRecord) error {
	r.measurements.put(record.ID, *record)
	return nil
}

func (r *ProductionRepository) ListMeasurements(_ context.Context, siteID string) ([]*entities.MeasurementRecord, error) {
	return pointers(r.measurements.filter(func(m entities.MeasurementRecord) bool { return m.SiteID == siteID })), nil
}
