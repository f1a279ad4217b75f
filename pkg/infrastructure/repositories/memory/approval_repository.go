package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/borderlesspc7/281-carlos/pkg/domain/entities"
	"github.com/borderlesspc7/281-carlos/pkg/domain/repositories"
)

// ContractRepository provides in-memory contract storage
type ContractRepository struct {
	contracts *table[entities.Contract]
}

func NewContractRepository() *ContractRepository {
	return &ContractRepository{contracts: newTable[entities.Contract]("contract")}
}

var _ repositories.ContractRepository = (*ContractRepository)(nil)

func (r *ContractRepository) Save(_ context.Context, contract *entities.Contract) error {
	stored := *contract
	stored.Items = append([]entities.ContractItem(nil), contract.Items...)
	r.contracts.put(contract.ID, stored)
	return nil
}

func (r *ContractRepository) FindByID(_ context.Context, id string) (*entities.Contract, error) {
	contract, err := r.contracts.get(id)
	if err != nil {
		return nil, err
	}
	return &contract, nil
}

func (r *ContractRepository) ListBySite(_ context.Context, siteID string) ([]*entities.Contract, error) {
	return pointers(r.contracts.filter(func(c entities.Contract) bool { return c.SiteID == siteID })), nil
}

// ListBySupplier matches the supplier name case-insensitively
func (r *ContractRepository) ListBySupplier(_ context.Context, siteID, supplier string) ([]*entities.Contract, error) {
	rows := r.contracts.filter(func(c entities.Contract) bool {
		return c.SiteID == siteID && strings.EqualFold(strings.TrimSpace(c.Supplier), strings.TrimSpace(supplier))
	})
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].CreatedAt.Before(rows[j].CreatedAt)
	})
	return pointers(rows), nil
}

// ChecklistRepository provides in-memory monthly checklist storage
type ChecklistRepository struct {
	checklists *table[entities.MonthlyChecklist]
}

func NewChecklistRepository() *ChecklistRepository {
	return &ChecklistRepository{checklists: newTable[entities.MonthlyChecklist]("checklist")}
}

var _ repositories.ChecklistRepository = (*ChecklistRepository)(nil)

func (r *ChecklistRepository) Save(_ context.Context, checklist *entities.MonthlyChecklist) error {
	r.checklists.put(checklist.ID, *checklist)
	return nil
}

func (r *ChecklistRepository) FindByID(_ context.Context, id string) (*entities.MonthlyChecklist, error) {
	checklist, err := r.checklists.get(id)
	if err != nil {
		return nil, err
	}
	return &checklist, nil
}

// ListBySite returns the site's checklists, most recent period first
func (r *ChecklistRepository) ListBySite(_ context.Context, siteID string) ([]*entities.MonthlyChecklist, error) {
	rows := r.checklists.filter(func(c entities.MonthlyChecklist) bool { return c.SiteID == siteID })
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Year != rows[j].Year {
			return rows[i].Year > rows[j].Year
		}
		return rows[i].Month > rows[j].Month
	})
	return pointers(rows), nil
}

func (r *ChecklistRepository) Delete(_ context.Context, id string) error {
	return r.checklists.remove(id)
}
