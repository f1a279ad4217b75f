package gormstore

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/borderlesspc7/281-carlos/pkg/domain/entities"
	"github.com/borderlesspc7/281-carlos/pkg/domain/repositories"
)

// GormSiteRepository implements SiteRepository using GORM
type GormSiteRepository struct {
	db *gorm.DB
}

func NewGormSiteRepository(db *gorm.DB) *GormSiteRepository {
	return &GormSiteRepository{db: db}
}

var _ repositories.SiteRepository = (*GormSiteRepository)(nil)

func (r *GormSiteRepository) Save(ctx context.Context, site *entities.Site) error {
	model := &SiteModel{
		ID:        site.ID,
		Name:      site.Name,
		Floors:    site.Floors,
		Towers:    site.Towers,
		OwnerID:   site.OwnerID,
		Status:    site.Status.String(),
		CreatedAt: site.CreatedAt,
		UpdatedAt: site.UpdatedAt,
	}
	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return fmt.Errorf("failed to save site: %w", err)
	}
	return nil
}

func (r *GormSiteRepository) FindByID(ctx context.Context, id string) (*entities.Site, error) {
	var model SiteModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		return nil, translate(err, "site", id)
	}
	return siteModelToEntity(&model)
}

func (r *GormSiteRepository) ListByOwner(ctx context.Context, ownerID string) ([]*entities.Site, error) {
	var models []SiteModel
	if err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).Order("created_at ASC, id ASC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list sites of %s: %w", ownerID, err)
	}
	sites := make([]*entities.Site, 0, len(models))
	for i := range models {
		site, err := siteModelToEntity(&models[i])
		if err != nil {
			return nil, err
		}
		sites = append(sites, site)
	}
	return sites, nil
}

func siteModelToEntity(model *SiteModel) (*entities.Site, error) {
	status, err := entities.ParseSiteStatus(model.Status)
	if err != nil {
		return nil, fmt.Errorf("site %s: %w", model.ID, err)
	}
	return &entities.Site{
		ID:        model.ID,
		Name:      model.Name,
		Floors:    model.Floors,
		Towers:    model.Towers,
		OwnerID:   model.OwnerID,
		Status:    status,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}, nil
}

// GormUnitRepository implements UnitRepository using GORM
type GormUnitRepository struct {
	db *gorm.DB
}

func NewGormUnitRepository(db *gorm.DB) *GormUnitRepository {
	return &GormUnitRepository{db: db}
}

var _ repositories.UnitRepository = (*GormUnitRepository)(nil)

func (r *GormUnitRepository) Save(ctx context.Context, unit *entities.ProductionUnit) error {
	apartments, err := marshalJSON(unit.Apartments)
	if err != nil {
		return fmt.Errorf("failed to marshal apartments: %w", err)
	}
	model := &UnitModel{
		ID:             unit.ID,
		SiteID:         unit.SiteID,
		Number:         unit.Number,
		PredecessorID:  unit.PredecessorID,
		StartDate:      unit.StartDate,
		EndDate:        unit.EndDate,
		ApartmentsJSON: apartments,
		CreatedAt:      unit.CreatedAt,
		UpdatedAt:      unit.UpdatedAt,
	}
	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return fmt.Errorf("failed to save unit: %w", err)
	}
	return nil
}

func (r *GormUnitRepository) FindByID(ctx context.Context, id string) (*entities.ProductionUnit, error) {
	var model UnitModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		return nil, translate(err, "unit", id)
	}
	return unitModelToEntity(&model)
}

func (r *GormUnitRepository) ListBySite(ctx context.Context, siteID string) ([]*entities.ProductionUnit, error) {
	var models []UnitModel
	if err := r.db.WithContext(ctx).Where("site_id = ?", siteID).Order("number ASC, id ASC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list units: %w", err)
	}
	units := make([]*entities.ProductionUnit, 0, len(models))
	for i := range models {
		unit, err := unitModelToEntity(&models[i])
		if err != nil {
			return nil, fmt.Errorf("failed to convert unit %s: %w", models[i].ID, err)
		}
		units = append(units, unit)
	}
	return units, nil
}

func (r *GormUnitRepository) Delete(ctx context.Context, id string) error {
	return deleted(r.db.WithContext(ctx).Where("id = ?", id).Delete(&UnitModel{}), "unit", id)
}

func unitModelToEntity(model *UnitModel) (*entities.ProductionUnit, error) {
	unit := &entities.ProductionUnit{
		ID:            model.ID,
		SiteID:        model.SiteID,
		Number:        model.Number,
		PredecessorID: model.PredecessorID,
		StartDate:     model.StartDate,
		EndDate:       model.EndDate,
		CreatedAt:     model.CreatedAt,
		UpdatedAt:     model.UpdatedAt,
	}
	if err := unmarshalJSON(model.ApartmentsJSON, &unit.Apartments); err != nil {
		return nil, fmt.Errorf("failed to unmarshal apartments: %w", err)
	}
	return unit, nil
}

// GormBudgetRepository implements BudgetRepository using GORM
type GormBudgetRepository struct {
	db *gorm.DB
}

func NewGormBudgetRepository(db *gorm.DB) *GormBudgetRepository {
	return &GormBudgetRepository{db: db}
}

var _ repositories.BudgetRepository = (*GormBudgetRepository)(nil)

func (r *GormBudgetRepository) Save(ctx context.Context, budget *entities.UnitBudget) error {
	model := &BudgetModel{
		ID:           budget.ID,
		SiteID:       budget.SiteID,
		UnitID:       budget.UnitID,
		UnitNumber:   budget.UnitNumber,
		MaterialCost: budget.MaterialCost,
		LaborCost:    budget.LaborCost,
		Weight:       budget.Weight,
		CreatedAt:    budget.CreatedAt,
		UpdatedAt:    budget.UpdatedAt,
	}
	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return fmt.Errorf("failed to save budget: %w", err)
	}
	return nil
}

func (r *GormBudgetRepository) ListBySite(ctx context.Context, siteID string) ([]*entities.UnitBudget, error) {
	var models []BudgetModel
	if err := r.db.WithContext(ctx).Where("site_id = ?", siteID).Order("created_at ASC, id ASC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}
	budgets := make([]*entities.UnitBudget, 0, len(models))
	for _, m := range models {
		budgets = append(budgets, &entities.UnitBudget{
			ID:           m.ID,
			SiteID:       m.SiteID,
			UnitID:       m.UnitID,
			UnitNumber:   m.UnitNumber,
			MaterialCost: m.MaterialCost,
			LaborCost:    m.LaborCost,
			Weight:       m.Weight,
			CreatedAt:    m.CreatedAt,
			UpdatedAt:    m.UpdatedAt,
		})
	}
	return budgets, nil
}

func (r *GormBudgetRepository) Delete(ctx context.Context, id string) error {
	return deleted(r.db.WithContext(ctx).Where("id = ?", id).Delete(&BudgetModel{}), "budget", id)
}

// GormUnitItemRepository implements UnitItemRepository using GORM
type GormUnitItemRepository struct {
	db *gorm.DB
}

func NewGormUnitItemRepository(db *gorm.DB) *GormUnitItemRepository {
	return &GormUnitItemRepository{db: db}
}

var _ repositories.UnitItemRepository = (*GormUnitItemRepository)(nil)

func (r *GormUnitItemRepository) Save(ctx context.Context, item *entities.UnitItem) error {
	model := &UnitItemModel{
		ID:          item.ID,
		SiteID:      item.SiteID,
		UnitID:      item.UnitID,
		UnitNumber:  item.UnitNumber,
		Company:     item.Company,
		Service:     item.Service,
		Quantity:    item.Quantity,
		MaxQuantity: item.MaxQuantity,
		CreatedAt:   item.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return fmt.Errorf("failed to save unit item: %w", err)
	}
	return nil
}

func (r *GormUnitItemRepository) ListByUnit(ctx context.Context, unitID string) ([]*entities.UnitItem, error) {
	var models []UnitItemModel
	if err := r.db.WithContext(ctx).Where("unit_id = ?", unitID).Order("created_at ASC, id ASC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list unit items: %w", err)
	}
	items := make([]*entities.UnitItem, 0, len(models))
	for _, m := range models {
		items = append(items, &entities.UnitItem{
			ID:          m.ID,
			SiteID:      m.SiteID,
			UnitID:      m.UnitID,
			UnitNumber:  m.UnitNumber,
			Company:     m.Company,
			Service:     m.Service,
			Quantity:    m.Quantity,
			MaxQuantity: m.MaxQuantity,
			CreatedAt:   m.CreatedAt,
		})
	}
	return items, nil
}

// GormProductionRepository implements ProductionRepository using GORM
type GormProductionRepository struct {
	db *gorm.DB
}

func NewGormProductionRepository(db *gorm.DB) *GormProductionRepository {
	return &GormProductionRepository{db: db}
}

var _ repositories.ProductionRepository = (*GormProductionRepository)(nil)

func (r *GormProductionRepository) SaveProduction(ctx context.Context, record *entities.ProductionRecord) error {
	apartments, err := marshalJSON(record.Apartments)
	if err != nil {
		return fmt.Errorf("failed to marshal apartments: %w", err)
	}
	model := &ProductionModel{
		ID:             record.ID,
		SiteID:         record.SiteID,
		UnitID:         record.UnitID,
		ApartmentsJSON: apartments,
		CreatedAt:      record.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return fmt.Errorf("failed to save production: %w", err)
	}
	return nil
}

func (r *GormProductionRepository) ListProductions(ctx context.Context, siteID string) ([]*entities.ProductionRecord, error) {
	var models []ProductionModel
	if err := r.db.WithContext(ctx).Where("site_id = ?", siteID).Order("created_at ASC, id ASC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list productions: %w", err)
	}
	records := make([]*entities.ProductionRecord, 0, len(models))
	for _, m := range models {
		record := &entities.ProductionRecord{ID: m.ID, SiteID: m.SiteID, UnitID: m.UnitID, CreatedAt: m.CreatedAt}
		if err := unmarshalJSON(m.ApartmentsJSON, &record.Apartments); err != nil {
			return nil, fmt.Errorf("failed to unmarshal apartments of production %s: %w", m.ID, err)
		}
		records = append(records, record)
	}
	return records, nil
}

func (r *GormProductionRepository) SaveMeasurement(ctx context.Context, record *entities.MeasurementRecord) error {
	model := &MeasurementModel{
		ID:         record.ID,
		SiteID:     record.SiteID,
		Number:     record.Number,
		Date:       record.Date,
		Supplier:   record.Supplier,
		ContractID: record.ContractID,
		UnitID:     record.UnitID,
		CreatedAt:  record.CreatedAt,
	}
	var err error
	if model.AmendmentIDsJSON, err = marshalJSON(record.AmendmentIDs); err != nil {
		return fmt.Errorf("failed to marshal amendment ids: %w", err)
	}
	if model.ItemIDsJSON, err = marshalJSON(record.ItemIDs); err != nil {
		return fmt.Errorf("failed to marshal item ids: %w", err)
	}
	if model.ApartmentsJSON, err = marshalJSON(record.Apartments); err != nil {
		return fmt.Errorf("failed to marshal apartments: %w", err)
	}
	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return fmt.Errorf("failed to save measurement: %w", err)
	}
	return nil
}

func (r *GormProductionRepository) ListMeasurements(ctx context.Context, siteID string) ([]*entities.MeasurementRecord, error) {
	var models []MeasurementModel
	if err := r.db.WithContext(ctx).Where("site_id = ?", siteID).Order("created_at ASC, id ASC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list measurements: %w", err)
	}
	records := make([]*entities.MeasurementRecord, 0, len(models))
	for _, m := range models {
		record := &entities.MeasurementRecord{
			ID:         m.ID,
			SiteID:     m.SiteID,
			Number:     m.Number,
			Date:       m.Date,
			Supplier:   m.Supplier,
			ContractID: m.ContractID,
			UnitID:     m.UnitID,
			CreatedAt:  m.CreatedAt,
		}
		if err := unmarshalJSON(m.AmendmentIDsJSON, &record.AmendmentIDs); err != nil {
			return nil, fmt.Errorf("failed to unmarshal amendment ids of measurement %s: %w", m.ID, err)
		}
		if err := unmarshalJSON(m.ItemIDsJSON, &record.ItemIDs); err != nil {
			return nil, fmt.Errorf("failed to unmarshal item ids of measurement %s: %w", m.ID, err)
		}
		if err := unmarshalJSON(m.ApartmentsJSON, &record.Apartments); err != nil {
			return nil, fmt.Errorf("failed to unmarshal apartments of measurement %s: %w", m.ID, err)
		}
		records = append(records, record)
	}
	return records, nil
}
