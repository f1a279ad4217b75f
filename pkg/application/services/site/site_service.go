// Package site manages the records of a construction site: stock, kits,
// production units, budgets and the production/measurement log.
package site

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/borderlesspc7/281-carlos/pkg/domain/entities"
	"github.com/borderlesspc7/281-carlos/pkg/domain/repositories"
	"github.com/borderlesspc7/281-carlos/pkg/infrastructure/events"
)

// Repositories groups the stores the service writes to
type Repositories struct {
	Sites       repositories.SiteRepository
	Stock       repositories.StockRepository
	Kits        repositories.KitRepository
	Remaining   repositories.RemainingProductionRepository
	Units       repositories.UnitRepository
	Budgets     repositories.BudgetRepository
	UnitItems   repositories.UnitItemRepository
	Productions repositories.ProductionRepository
}

type Service struct {
	repos     Repositories
	publisher events.Publisher
}

// NewService creates a site service; publisher may be nil
func NewService(repos Repositories, publisher events.Publisher) *Service {
	return &Service{repos: repos, publisher: publisher}
}

func newID() string {
	return uuid.NewString()
}

// CreateSite registers a new active site
func (s *Service) CreateSite(ctx context.Context, name string, floors, towers int, ownerID string) (*entities.Site, error) {
	site, err := entities.NewSite(newID(), name, floors, towers, ownerID)
	if err != nil {
		return nil, err
	}
	if err := s.repos.Sites.Save(ctx, site); err != nil {
		return nil, err
	}
	return site, nil
}

func (s *Service) GetSite(ctx context.Context, id string) (*entities.Site, error) {
	return s.repos.Sites.FindByID(ctx, id)
}

// ListSitesByOwner returns the sites registered by the given user
func (s *Service) ListSitesByOwner(ctx context.Context, ownerID string) ([]*entities.Site, error) {
	return s.repos.Sites.ListByOwner(ctx, ownerID)
}

// AddStock records a material quantity available at the site
func (s *Service) AddStock(ctx context.Context, siteID, name, unit string, quantity decimal.Decimal) (*entities.StockEntry, error) {
	entry, err := entities.NewStockEntry(newID(), siteID, name, unit, quantity)
	if err != nil {
		return nil, err
	}
	if err := s.repos.Stock.Save(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *Service) ListStock(ctx context.Context, siteID string) ([]*entities.StockEntry, error) {
	return s.repos.Stock.ListBySite(ctx, siteID)
}

// DeleteStock removes a stock entry of the site
func (s *Service) DeleteStock(ctx context.Context, siteID, id string) error {
	entry, err := s.repos.Stock.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if entry.SiteID != siteID {
		return fmt.Errorf("stock entry %s: %w", id, entities.ErrNotFound)
	}
	return s.repos.Stock.Delete(ctx, id)
}

// AddKit stores a kit for a unit of the site
func (s *Service) AddKit(ctx context.Context, siteID, unitID string, unitNumber int, name string, labor []entities.LaborRequirement, materials []entities.MaterialRequirement) (*entities.Kit, error) {
	if unitID != "" {
		if _, err := s.unit(ctx, siteID, unitID); err != nil {
			return nil, err
		}
	}
	for i := range materials {
		if materials[i].ID == "" {
			materials[i].ID = newID()
		}
	}
	for i := range labor {
		if labor[i].ID == "" {
			labor[i].ID = newID()
		}
	}
	kit, err := entities.NewKit(newID(), siteID, unitID, unitNumber, name, labor, materials)
	if err != nil {
		return nil, err
	}
	if err := s.repos.Kits.Save(ctx, kit); err != nil {
		return nil, err
	}
	return kit, nil
}

func (s *Service) ListKits(ctx context.Context, siteID string) ([]*entities.Kit, error) {
	return s.repos.Kits.ListBySite(ctx, siteID)
}

// DeleteKit removes a kit of the site
func (s *Service) DeleteKit(ctx context.Context, siteID, id string) error {
	kit, err := s.repos.Kits.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if kit.SiteID != siteID {
		return fmt.Errorf("kit %s: %w", id, entities.ErrNotFound)
	}
	return s.repos.Kits.Delete(ctx, id)
}

// SaveRemaining upserts the remaining production count of each given kit
func (s *Service) SaveRemaining(ctx context.Context, siteID string, remaining entities.RemainingProduction) error {
	for kitID, count := range remaining {
		if count < 0 {
			return fmt.Errorf("remaining production cannot be negative for kit %s, got %d", kitID, count)
		}
	}
	return s.repos.Remaining.SaveAll(ctx, siteID, remaining)
}

func (s *Service) GetRemaining(ctx context.Context, siteID string) (entities.RemainingProduction, error) {
	return s.repos.Remaining.Get(ctx, siteID)
}

func (s *Service) ClearRemaining(ctx context.Context, siteID string) error {
	return s.repos.Remaining.DeleteBySite(ctx, siteID)
}
