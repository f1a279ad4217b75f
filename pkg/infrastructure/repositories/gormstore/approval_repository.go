package gormstore

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/borderlesspc7/281-carlos/pkg/domain/entities"
	"github.com/borderlesspc7/281-carlos/pkg/domain/repositories"
)

// GormContractRepository implements ContractRepository using GORM
type GormContractRepository struct {
	db *gorm.DB
}

// NewGormContractRepository creates a new GORM contract repository
func NewGormContractRepository(db *gorm.DB) *GormContractRepository {
	return &GormContractRepository{db: db}
}

var _ repositories.ContractRepository = (*GormContractRepository)(nil)

// Save upserts a contract together with its approval state
func (r *GormContractRepository) Save(ctx context.Context, contract *entities.Contract) error {
	model, err := r.entityToModel(contract)
	if err != nil {
		return fmt.Errorf("failed to convert contract to model: %w", err)
	}
	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return fmt.Errorf("failed to save contract: %w", err)
	}
	return nil
}

func (r *GormContractRepository) FindByID(ctx context.Context, id string) (*entities.Contract, error) {
	var model ContractModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		return nil, translate(err, "contract", id)
	}
	return r.modelToEntity(&model)
}

func (r *GormContractRepository) ListBySite(ctx context.Context, siteID string) ([]*entities.Contract, error) {
	return r.find(r.db.WithContext(ctx).Where("site_id = ?", siteID))
}

// ListBySupplier matches the supplier name case-insensitively, oldest first
func (r *GormContractRepository) ListBySupplier(ctx context.Context, siteID, supplier string) ([]*entities.Contract, error) {
	return r.find(r.db.WithContext(ctx).Where("site_id = ? AND LOWER(TRIM(supplier)) = LOWER(TRIM(?))", siteID, supplier))
}

func (r *GormContractRepository) find(query *gorm.DB) ([]*entities.Contract, error) {
	var models []ContractModel
	if err := query.Order("created_at ASC, id ASC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list contracts: %w", err)
	}
	contracts := make([]*entities.Contract, 0, len(models))
	for i := range models {
		c, err := r.modelToEntity(&models[i])
		if err != nil {
			return nil, fmt.Errorf("failed to convert contract %s: %w", models[i].ID, err)
		}
		contracts = append(contracts, c)
	}
	return contracts, nil
}

func (r *GormContractRepository) entityToModel(c *entities.Contract) (*ContractModel, error) {
	items, err := marshalJSON(c.Items)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal items: %w", err)
	}
	return &ContractModel{
		ID:                 c.ID,
		SiteID:             c.SiteID,
		Supplier:           c.Supplier,
		Kind:               c.Kind.String(),
		OriginalContractID: c.OriginalContractID,
		Number:             c.Number,
		ItemsJSON:          items,
		TotalValue:         c.TotalValue,
		Status:             c.Approval.Status.String(),
		ApproverID:         c.Approval.Approver.ID,
		ApproverName:       c.Approval.Approver.Name,
		ApproverEmail:      c.Approval.Approver.Email,
		ApprovalToken:      c.Approval.Token,
		DecidedAt:          c.Approval.DecidedAt,
		DecisionNotes:      c.Approval.Notes,
		CreatedAt:          c.CreatedAt,
		UpdatedAt:          c.UpdatedAt,
	}, nil
}

func (r *GormContractRepository) modelToEntity(model *ContractModel) (*entities.Contract, error) {
	kind, err := entities.ParseContractKind(model.Kind)
	if err != nil {
		return nil, err
	}
	approval, err := approvalFromColumns(model.Status, model.ApproverID, model.ApproverName, model.ApproverEmail, model.ApprovalToken, model.DecidedAt, model.DecisionNotes)
	if err != nil {
		return nil, err
	}
	c := &entities.Contract{
		ID:                 model.ID,
		SiteID:             model.SiteID,
		Supplier:           model.Supplier,
		Kind:               kind,
		OriginalContractID: model.OriginalContractID,
		Number:             model.Number,
		TotalValue:         model.TotalValue,
		Approval:           approval,
		CreatedAt:          model.CreatedAt,
		UpdatedAt:          model.UpdatedAt,
	}
	if err := unmarshalJSON(model.ItemsJSON, &c.Items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal items: %w", err)
	}
	return c, nil
}

// GormChecklistRepository implements ChecklistRepository using GORM
type GormChecklistRepository struct {
	db *gorm.DB
}

// NewGormChecklistRepository creates a new GORM checklist repository
func NewGormChecklistRepository(db *gorm.DB) *GormChecklistRepository {
	return &GormChecklistRepository{db: db}
}

var _ repositories.ChecklistRepository = (*GormChecklistRepository)(nil)

func (r *GormChecklistRepository) Save(ctx context.Context, c *entities.MonthlyChecklist) error {
	model := &ChecklistModel{
		ID:            c.ID,
		SiteID:        c.SiteID,
		Month:         int(c.Month),
		Year:          c.Year,
		Notes:         c.Notes,
		DocumentKey:   c.DocumentKey,
		DocumentName:  c.DocumentName,
		Status:        c.Approval.Status.String(),
		ApproverID:    c.Approval.Approver.ID,
		ApproverName:  c.Approval.Approver.Name,
		ApproverEmail: c.Approval.Approver.Email,
		ApprovalToken: c.Approval.Token,
		DecidedAt:     c.Approval.DecidedAt,
		DecisionNotes: c.Approval.Notes,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return fmt.Errorf("failed to save checklist: %w", err)
	}
	return nil
}

func (r *GormChecklistRepository) FindByID(ctx context.Context, id string) (*entities.MonthlyChecklist, error) {
	var model ChecklistModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		return nil, translate(err, "checklist", id)
	}
	return checklistModelToEntity(&model)
}

// ListBySite returns the site's checklists, most recent period first
func (r *GormChecklistRepository) ListBySite(ctx context.Context, siteID string) ([]*entities.MonthlyChecklist, error) {
	var models []ChecklistModel
	if err := r.db.WithContext(ctx).Where("site_id = ?", siteID).Order("year DESC, month DESC, created_at DESC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list checklists: %w", err)
	}
	checklists := make([]*entities.MonthlyChecklist, 0, len(models))
	for i := range models {
		c, err := checklistModelToEntity(&models[i])
		if err != nil {
			return nil, fmt.Errorf("failed to convert checklist %s: %w", models[i].ID, err)
		}
		checklists = append(checklists, c)
	}
	return checklists, nil
}

func (r *GormChecklistRepository) Delete(ctx context.Context, id string) error {
	return deleted(r.db.WithContext(ctx).Where("id = ?", id).Delete(&ChecklistModel{}), "checklist", id)
}

func checklistModelToEntity(model *ChecklistModel) (*entities.MonthlyChecklist, error) {
	approval, err := approvalFromColumns(model.Status, model.ApproverID, model.ApproverName, model.ApproverEmail, model.ApprovalToken, model.DecidedAt, model.DecisionNotes)
	if err != nil {
		return nil, err
	}
	return &entities.MonthlyChecklist{
		ID:           model.ID,
		SiteID:       model.SiteID,
		Month:        time.Month(model.Month),
		Year:         model.Year,
		Notes:        model.Notes,
		DocumentKey:  model.DocumentKey,
		DocumentName: model.DocumentName,
		Approval:     approval,
		CreatedAt:    model.CreatedAt,
		UpdatedAt:    model.UpdatedAt,
	}, nil
}

func approvalFromColumns(status, approverID, approverName, approverEmail, token string, decidedAt *time.Time, notes string) (entities.Approval, error) {
	parsed, err := entities.ParseApprovalStatus(status)
	if err != nil {
		return entities.Approval{}, err
	}
	return entities.Approval{
		Status:    parsed,
		Approver:  entities.Approver{ID: approverID, Name: approverName, Email: approverEmail},
		Token:     token,
		DecidedAt: decidedAt,
		Notes:     notes,
	}, nil
}
