package repositories

import (
	"context"

	"github.com/borderlesspc7/281-carlos/pkg/domain/entities"
)

// StockRepository provides access to the material stock of a site
type StockRepository interface {
	Save(ctx context.Context, entry *entities.StockEntry) error
	FindByID(ctx context.Context, id string) (*entities.StockEntry, error)
	ListBySite(ctx context.Context, siteID string) ([]*entities.StockEntry, error)
	Delete(ctx context.Context, id string) error
}

// KitRepository provides access to the kits of a site
type KitRepository interface {
	Save(ctx context.Context, kit *entities.Kit) error
	FindByID(ctx context.Context, id string) (*entities.Kit, error)
	ListBySite(ctx context.Context, siteID string) ([]*entities.Kit, error)
	Delete(ctx context.Context, id string) error
}

// RemainingProductionRepository stores how many items of each kit are still to be produced
type RemainingProductionRepository interface {
	Get(ctx context.Context, siteID string) (entities.RemainingProduction, error)
	SaveAll(ctx context.Context, siteID string, remaining entities.RemainingProduction) error
	DeleteBySite(ctx context.Context, siteID string) error
}
