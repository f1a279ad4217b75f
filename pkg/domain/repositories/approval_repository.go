package repositories

import (
	"context"

	"github.com/borderlesspc7/281-carlos/pkg/domain/entities"
)

// ContractRepository provides access to supplier contracts
type ContractRepository interface {
	Save(ctx context.Context, contract *entities.Contract) error
	FindByID(ctx context.Context, id string) (*entities.Contract, error)
	ListBySite(ctx context.Context, siteID string) ([]*entities.Contract, error)
	// ListBySupplier returns the site's contracts of a supplier, oldest first
	ListBySupplier(ctx context.Context, siteID, supplier string) ([]*entities.Contract, error)
}

// ChecklistRepository provides access to monthly checklists
type ChecklistRepository interface {
	Save(ctx context.Context, checklist *entities.MonthlyChecklist) error
	FindByID(ctx context.Context, id string) (*entities.MonthlyChecklist, error)
	ListBySite(ctx context.Context, siteID string) ([]*entities.MonthlyChecklist, error)
	Delete(ctx context.Context, id string) error
}
