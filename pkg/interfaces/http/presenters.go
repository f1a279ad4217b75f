package http

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/borderlesspc7/281-carlos/pkg/domain/entities"
)

type siteResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Floors    int       `json:"floors"`
	Towers    int       `json:"towers"`
	OwnerID   string    `json:"ownerId"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

func presentSite(s *entities.Site) siteResponse {
	return siteResponse{
		ID:        s.ID,
		Name:      s.Name,
		Floors:    s.Floors,
		Towers:    s.Towers,
		OwnerID:   s.OwnerID,
		Status:    s.Status.String(),
		CreatedAt: s.CreatedAt,
	}
}

type stockResponse struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	Unit              string          `json:"unit"`
	QuantityAvailable decimal.Decimal `json:"quantityAvailable"`
}

func presentStock(e *entities.StockEntry) stockResponse {
	return stockResponse{ID: e.ID, Name: e.Name, Unit: e.Unit, QuantityAvailable: e.QuantityAvailable}
}

type kitResponse struct {
	ID         string                         `json:"id"`
	UnitID     string                         `json:"unitId"`
	UnitNumber int                            `json:"unitNumber"`
	Name       string                         `json:"name"`
	Labor      []entities.LaborRequirement    `json:"labor"`
	Materials  []entities.MaterialRequirement `json:"materials"`
}

func presentKit(k *entities.Kit) kitResponse {
	return kitResponse{
		ID:         k.ID,
		UnitID:     k.UnitID,
		UnitNumber: k.UnitNumber,
		Name:       k.Name,
		Labor:      k.Labor,
		Materials:  k.Materials,
	}
}

type unitResponse struct {
	ID            string   `json:"id"`
	Number        int      `json:"number"`
	PredecessorID string   `json:"predecessorId,omitempty"`
	StartDate     string   `json:"startDate"`
	EndDate       string   `json:"endDate"`
	Apartments    []string `json:"apartments"`
}

func presentUnit(u *entities.ProductionUnit) unitResponse {
	return unitResponse{
		ID:            u.ID,
		Number:        u.Number,
		PredecessorID: u.PredecessorID,
		StartDate:     u.StartDate.Format(dateLayout),
		EndDate:       u.EndDate.Format(dateLayout),
		Apartments:    u.Apartments,
	}
}

type budgetResponse struct {
	ID           string          `json:"id"`
	UnitID       string          `json:"unitId"`
	UnitNumber   int             `json:"unitNumber"`
	MaterialCost decimal.Decimal `json:"materialCost"`
	LaborCost    decimal.Decimal `json:"laborCost"`
	TotalCost    decimal.Decimal `json:"totalCost"`
	Weight       decimal.Decimal `json:"weight"`
}

func presentBudget(b *entities.UnitBudget) budgetResponse {
	return budgetResponse{
		ID:           b.ID,
		UnitID:       b.UnitID,
		UnitNumber:   b.UnitNumber,
		MaterialCost: b.MaterialCost,
		LaborCost:    b.LaborCost,
		TotalCost:    b.TotalCost(),
		Weight:       b.Weight,
	}
}

type unitItemResponse struct {
	ID          string `json:"id"`
	UnitID      string `json:"unitId"`
	UnitNumber  int    `json:"unitNumber"`
	Company     string `json:"company"`
	Service     string `json:"service"`
	Quantity    int    `json:"quantity"`
	MaxQuantity int    `json:"maxQuantity"`
}

func presentUnitItem(i *entities.UnitItem) unitItemResponse {
	return unitItemResponse{
		ID:          i.ID,
		UnitID:      i.UnitID,
		UnitNumber:  i.UnitNumber,
		Company:     i.Company,
		Service:     i.Service,
		Quantity:    i.Quantity,
		MaxQuantity: i.MaxQuantity,
	}
}

type approvalResponse struct {
	Status        string            `json:"status"`
	Approver      entities.Approver `json:"approver"`
	DecidedAt     *time.Time        `json:"decidedAt,omitempty"`
	DecisionNotes string            `json:"decisionNotes,omitempty"`
}

func presentApproval(a entities.Approval) approvalResponse {
	return approvalResponse{
		Status:        a.Status.String(),
		Approver:      a.Approver,
		DecidedAt:     a.DecidedAt,
		DecisionNotes: a.Notes,
	}
}

type contractResponse struct {
	ID                 string                  `json:"id"`
	Supplier           string                  `json:"supplier"`
	Kind               string                  `json:"kind"`
	OriginalContractID string                  `json:"originalContractId,omitempty"`
	Number             string                  `json:"number"`
	Items              []entities.ContractItem `json:"items"`
	TotalValue         decimal.Decimal         `json:"totalValue"`
	Approval           approvalResponse        `json:"approval"`
	CreatedAt          time.Time               `json:"createdAt"`
}

func presentContract(c *entities.Contract) contractResponse {
	return contractResponse{
		ID:                 c.ID,
		Supplier:           c.Supplier,
		Kind:               c.Kind.String(),
		OriginalContractID: c.OriginalContractID,
		Number:             c.Number,
		Items:              c.Items,
		TotalValue:         c.TotalValue,
		Approval:           presentApproval(c.Approval),
		CreatedAt:          c.CreatedAt,
	}
}

type checklistResponse struct {
	ID           string           `json:"id"`
	Month        int              `json:"month"`
	Year         int              `json:"year"`
	Period       string           `json:"period"`
	Notes        string           `json:"notes"`
	DocumentName string           `json:"documentName"`
	Approval     approvalResponse `json:"approval"`
	CreatedAt    time.Time        `json:"createdAt"`
}

func presentChecklist(c *entities.MonthlyChecklist) checklistResponse {
	return checklistResponse{
		ID:           c.ID,
		Month:        int(c.Month),
		Year:         c.Year,
		Period:       c.Period(),
		Notes:        c.Notes,
		DocumentName: c.DocumentName,
		Approval:     presentApproval(c.Approval),
		CreatedAt:    c.CreatedAt,
	}
}

func presentAll[T any, R any](rows []T, present func(T) R) []R {
	out := make([]R, len(rows))
	for i, row := range rows {
		out[i] = present(row)
	}
	return out
}
