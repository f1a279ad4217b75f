package gormstore

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/borderlesspc7/281-carlos/pkg/domain/entities"
	"github.com/borderlesspc7/281-carlos/pkg/domain/repositories"
)

// GormStockRepository implements StockRepository using GORM
type GormStockRepository struct {
	db *gorm.DB
}

// NewGormStockRepository creates a new GORM stock repository
func NewGormStockRepository(db *gorm.DB) *GormStockRepository {
	return &GormStockRepository{db: db}
}

var _ repositories.StockRepository = (*GormStockRepository)(nil)

// Save upserts a stock entry
func (r *GormStockRepository) Save(ctx context.Context, entry *entities.StockEntry) error {
	model := &StockEntryModel{
		ID:                entry.ID,
		SiteID:            entry.SiteID,
		Name:              entry.Name,
		Unit:              entry.Unit,
		QuantityAvailable: entry.QuantityAvailable,
		CreatedAt:         entry.CreatedAt,
		UpdatedAt:         entry.UpdatedAt,
	}
	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return fmt.Errorf("failed to save stock entry: %w", err)
	}
	return nil
}

func (r *GormStockRepository) FindByID(ctx context.Context, id string) (*entities.StockEntry, error) {
	var model StockEntryModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		return nil, translate(err, "stock entry", id)
	}
	return stockModelToEntity(&model), nil
}

func (r *GormStockRepository) ListBySite(ctx context.Context, siteID string) ([]*entities.StockEntry, error) {
	var models []StockEntryModel
	if err := r.db.WithContext(ctx).Where("site_id = ?", siteID).Order("created_at ASC, id ASC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list stock entries: %w", err)
	}
	entries := make([]*entities.StockEntry, 0, len(models))
	for i := range models {
		entries = append(entries, stockModelToEntity(&models[i]))
	}
	return entries, nil
}

func (r *GormStockRepository) Delete(ctx context.Context, id string) error {
	return deleted(r.db.WithContext(ctx).Where("id = ?", id).Delete(&StockEntryModel{}), "stock entry", id)
}

func stockModelToEntity(model *StockEntryModel) *entities.StockEntry {
	return &entities.StockEntry{
		ID:                model.ID,
		SiteID:            model.SiteID,
		Name:              model.Name,
		Unit:              model.Unit,
		QuantityAvailable: model.QuantityAvailable,
		CreatedAt:         model.CreatedAt,
		UpdatedAt:         model.UpdatedAt,
	}
}

// GormKitRepository implements KitRepository using GORM
type GormKitRepository struct {
	db *gorm.DB
}

// NewGormKitRepository creates a new GORM kit repository
func NewGormKitRepository(db *gorm.DB) *GormKitRepository {
	return &GormKitRepository{db: db}
}

var _ repositories.KitRepository = (*GormKitRepository)(nil)

func (r *GormKitRepository) Save(ctx context.Context, kit *entities.Kit) error {
	model, err := r.entityToModel(kit)
	if err != nil {
		return fmt.Errorf("failed to convert kit to model: %w", err)
	}
	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return fmt.Errorf("failed to save kit: %w", err)
	}
	return nil
}

func (r *GormKitRepository) FindByID(ctx context.Context, id string) (*entities.Kit, error) {
	var model KitModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		return nil, translate(err, "kit", id)
	}
	return r.modelToEntity(&model)
}

func (r *GormKitRepository) ListBySite(ctx context.Context, siteID string) ([]*entities.Kit, error) {
	var models []KitModel
	if err := r.db.WithContext(ctx).Where("site_id = ?", siteID).Order("unit_number ASC, created_at ASC, id ASC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list kits: %w", err)
	}
	kits := make([]*entities.Kit, 0, len(models))
	for i := range models {
		kit, err := r.modelToEntity(&models[i])
		if err != nil {
			return nil, fmt.Errorf("failed to convert kit %s: %w", models[i].ID, err)
		}
		kits = append(kits, kit)
	}
	return kits, nil
}

func (r *GormKitRepository) Delete(ctx context.Context, id string) error {
	return deleted(r.db.WithContext(ctx).Where("id = ?", id).Delete(&KitModel{}), "kit", id)
}

func (r *GormKitRepository) entityToModel(kit *entities.Kit) (*KitModel, error) {
	labor, err := marshalJSON(kit.Labor)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal labor: %w", err)
	}
	materials, err := marshalJSON(kit.Materials)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal materials: %w", err)
	}
	return &KitModel{
		ID:            kit.ID,
		SiteID:        kit.SiteID,
		UnitID:        kit.UnitID,
		UnitNumber:    kit.UnitNumber,
		Name:          kit.Name,
		LaborJSON:     labor,
		MaterialsJSON: materials,
		CreatedAt:     kit.CreatedAt,
		UpdatedAt:     kit.UpdatedAt,
	}, nil
}

func (r *GormKitRepository) modelToEntity(model *KitModel) (*entities.Kit, error) {
	kit := &entities.Kit{
		ID:         model.ID,
		SiteID:     model.SiteID,
		UnitID:     model.UnitID,
		UnitNumber: model.UnitNumber,
		Name:       model.Name,
		CreatedAt:  model.CreatedAt,
		UpdatedAt:  model.UpdatedAt,
	}
	if err := unmarshalJSON(model.LaborJSON, &kit.Labor); err != nil {
		return nil, fmt.Errorf("failed to unmarshal labor: %w", err)
	}
	if err := unmarshalJSON(model.MaterialsJSON, &kit.Materials); err != nil {
		return nil, fmt.Errorf("failed to unmarshal materials: %w", err)
	}
	return kit, nil
}

// GormRemainingProductionRepository implements RemainingProductionRepository using GORM
type GormRemainingProductionRepository struct {
	db *gorm.DB
}

// NewGormRemainingProductionRepository creates a new GORM remaining production repository
func NewGormRemainingProductionRepository(db *gorm.DB) *GormRemainingProductionRepository {
	return &GormRemainingProductionRepository{db: db}
}

var _ repositories.RemainingProductionRepository = (*GormRemainingProductionRepository)(nil)

func (r *GormRemainingProductionRepository) Get(ctx context.Context, siteID string) (entities.RemainingProduction, error) {
	var models []RemainingProductionModel
	if err := r.db.WithContext(ctx).Where("site_id = ?", siteID).Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to load remaining production: %w", err)
	}
	remaining := make(entities.RemainingProduction, len(models))
	for _, m := range models {
		remaining[m.KitID] = m.Remaining
	}
	return remaining, nil
}

// SaveAll upserts one row per kit
func (r *GormRemainingProductionRepository) SaveAll(ctx context.Context, siteID string, remaining entities.RemainingProduction) error {
	if len(remaining) == 0 {
		return nil
	}
	models := make([]RemainingProductionModel, 0, len(remaining))
	for kitID, count := range remaining {
		models = append(models, RemainingProductionModel{SiteID: siteID, KitID: kitID, Remaining: count})
	}

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "site_id"}, {Name: "kit_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"remaining"}),
	}).Create(&models).Error
	if err != nil {
		return fmt.Errorf("failed to save remaining production: %w", err)
	}
	return nil
}

func (r *GormRemainingProductionRepository) DeleteBySite(ctx context.Context, siteID string) error {
	if err := r.db.WithContext(ctx).Where("site_id = ?", siteID).Delete(&RemainingProductionModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete remaining production: %w", err)
	}
	return nil
}
