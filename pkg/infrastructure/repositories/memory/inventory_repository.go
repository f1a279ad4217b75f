package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/borderlesspc7/281-carlos/pkg/domain/entities"
	"github.com/borderlesspc7/281-carlos/pkg/domain/repositories"
)

// StockRepository provides in-memory stock storage
type StockRepository struct {
	entries *table[entities.StockEntry]
}

// NewStockRepository creates a new in-memory stock repository
func NewStockRepository() *StockRepository {
	return &StockRepository{entries: newTable[entities.StockEntry]("stock entry")}
}

// Verify interface compliance
var _ repositories.StockRepository = (*StockRepository)(nil)

func (r *StockRepository) Save(_ context.Context, entry *entities.StockEntry) error {
	r.entries.put(entry.ID, *entry)
	return nil
}

func (r *StockRepository) FindByID(_ context.Context, id string) (*entities.StockEntry, error) {
	entry, err := r.entries.get(id)
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *StockRepository) ListBySite(_ context.Context, siteID string) ([]*entities.StockEntry, error) {
	rows := r.entries.filter(func(e entities.StockEntry) bool { return e.SiteID == siteID })
	return pointers(rows), nil
}

func (r *StockRepository) Delete(_ context.Context, id string) error {
	return r.entries.remove(id)
}

// KitRepository provides in-memory kit storage
type KitRepository struct {
	kits *table[entities.Kit]
}

// NewKitRepository creates a new in-memory kit repository
func NewKitRepository() *KitRepository {
	return &KitRepository{kits: newTable[entities.Kit]("kit")}
}

var _ repositories.KitRepository = (*KitRepository)(nil)

func (r *KitRepository) Save(_ context.Context, kit *entities.Kit) error {
	stored := *kit
	stored.Materials = append([]entities.MaterialRequirement(nil), kit.Materials...)
	stored.Labor = append([]entities.LaborRequirement(nil), kit.Labor...)
	r.kits.put(kit.ID, stored)
	return nil
}

func (r *KitRepository) FindByID(_ context.Context, id string) (*entities.Kit, error) {
	kit, err := r.kits.get(id)
	if err != nil {
		return nil, err
	}
	return &kit, nil
}

// ListBySite returns the site's kits by unit number, then creation time
func (r *KitRepository) ListBySite(_ context.Context, siteID string) ([]*entities.Kit, error) {
	rows := r.kits.filter(func(k entities.Kit) bool { return k.SiteID == siteID })
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].UnitNumber != rows[j].UnitNumber {
			return rows[i].UnitNumber < rows[j].UnitNumber
		}
		return rows[i].CreatedAt.Before(rows[j].CreatedAt)
	})
	return pointers(rows), nil
}

func (r *KitRepository) Delete(_ context.Context, id string) error {
	return r.kits.remove(id)
}

// RemainingProductionRepository keeps remaining production counts per site
type RemainingProductionRepository struct {
	mu    sync.RWMutex
	sites map[string]entities.RemainingProduction
}

// NewRemainingProductionRepository creates a new in-memory remaining production repository
func NewRemainingProductionRepository() *RemainingProductionRepository {
	return &RemainingProductionRepository{sites: make(map[string]entities.RemainingProduction)}
}

var _ repositories.RemainingProductionRepository = (*RemainingProductionRepository)(nil)

// Get returns a copy of the site's counts; an unknown site yields an empty map
func (r *RemainingProductionRepository) Get(_ context.Context, siteID string) (entities.RemainingProduction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(entities.RemainingProduction, len(r.sites[siteID]))
	for kitID, count := range r.sites[siteID] {
		out[kitID] = count
	}
	return out, nil
}

// SaveAll upserts every count in remaining, leaving other kits untouched
func (r *RemainingProductionRepository) SaveAll(_ context.Context, siteID string, remaining entities.RemainingProduction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	current, ok := r.sites[siteID]
	if !ok {
		current = make(entities.RemainingProduction)
		r.sites[siteID] = current
	}
	for kitID, count := range remaining {
		current[kitID] = count
	}
	return nil
}

func (r *RemainingProductionRepository) DeleteBySite(_ context.Context, siteID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sites, siteID)
	return nil
}

func pointers[T any](rows []T) []*T {
	out := make([]*T, len(rows))
	for i := range rows {
		out[i] = &rows[i]
	}
	return out
}
