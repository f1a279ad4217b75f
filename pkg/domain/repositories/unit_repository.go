package repositories

import (
	"context"

	"github.com/borderlesspc7/281-carlos/pkg/domain/entities"
)

// SiteRepository provides access to construction sites
type SiteRepository interface {
	Save(ctx context.Context, site *entities.Site) error
	FindByID(ctx context.Context, id string) (*entities.Site, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*entities.Site, error)
}

// UnitRepository provides access to the production units of a site
type UnitRepository interface {
	Save(ctx context.Context, unit *entities.ProductionUnit) error
	FindByID(ctx context.Context, id string) (*entities.ProductionUnit, error)
	ListBySite(ctx context.Context, siteID string) ([]*entities.ProductionUnit, error)
	Delete(ctx context.Context, id string) error
}

// BudgetRepository provides access to the unit budgets of a site
type BudgetRepository interface {
	Save(ctx context.Context, budget *entities.UnitBudget) error
	ListBySite(ctx context.Context, siteID string) ([]*entities.UnitBudget, error)
	Delete(ctx context.Context, id string) error
}

// UnitItemRepository provides access to the service items attached to units
type UnitItemRepository interface {
	Save(ctx context.Context, item *entities.UnitItem) error
	ListByUnit(ctx context.Context, unitID string) ([]*entities.UnitItem, error)
}

// ProductionRepository provides access to production and measurement records
type ProductionRepository interface {
	SaveProduction(ctx context.Context, record *entities.ProductionRecord) error
	ListProductions(ctx context.Context, siteID string) ([]*entities.ProductionRecord, error)
	SaveMeasurement(ctx context.Context, record *entities.MeasurementRecord) error
	ListMeasurements(ctx context.Context, siteID string) ([]*entities.MeasurementRecord, error)
}
