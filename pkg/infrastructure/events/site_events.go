package events

import (
	"github.com/shopspring/decimal"

	"github.com/borderlesspc7/281-carlos/pkg/domain/entities"
)

const (
	ContractSubmittedEvent = "contract.submitted"
	ContractDecidedEvent   = "contract.decided"

	ChecklistSubmittedEvent = "checklist.submitted"
	ChecklistDecidedEvent   = "checklist.decided"

	BudgetWeightsUpdatedEvent = "budget.weights.updated"

	ShortageIdentifiedEvent = "shortage.identified"
)

type ContractSubmitted struct {
	ContractID    string            `json:"contract_id"`
	SiteID        string            `json:"site_id"`
	Supplier      string            `json:"supplier"`
	Number        string            `json:"number"`
	Kind          string            `json:"kind"`
	TotalValue    decimal.Decimal   `json:"total_value"`
	Approver      entities.Approver `json:"approver"`
	ApprovalToken string            `json:"-"`
}

type ContractDecided struct {
	ContractID string `json:"contract_id"`
	SiteID     string `json:"site_id"`
	Status     string `json:"status"`
	Notes      string `json:"notes"`
}

type ChecklistSubmitted struct {
	ChecklistID   string            `json:"checklist_id"`
	SiteID        string            `json:"site_id"`
	Period        string            `json:"period"`
	DocumentURL   string            `json:"document_url"`
	Approver      entities.Approver `json:"approver"`
	ApprovalToken string            `json:"-"`
}

type ChecklistDecided struct {
	ChecklistID string `json:"checklist_id"`
	SiteID      string `json:"site_id"`
	Status      string `json:"status"`
	DocumentURL string `json:"document_url"`
}

type BudgetWeightsUpdated struct {
	SiteID  string `json:"site_id"`
	Changed int    `json:"changed"`
}

type ShortageIdentified struct {
	SiteID    string                  `json:"site_id"`
	KitID     string                  `json:"kit_id"`
	KitName   string                  `json:"kit_name"`
	Materials []entities.MaterialNeed `json:"materials"`
}

func NewContractSubmittedEvent(c *entities.Contract) Event {
	return NewEvent(ContractSubmittedEvent, c.SiteID, ContractSubmitted{
		ContractID:    c.ID,
		SiteID:        c.SiteID,
		Supplier:      c.Supplier,
		Number:        c.Number,
		Kind:          c.Kind.String(),
		TotalValue:    c.TotalValue,
		Approver:      c.Approval.Approver,
		ApprovalToken: c.Approval.Token,
	})
}

func NewContractDecidedEvent(c *entities.Contract) Event {
	return NewEvent(ContractDecidedEvent, c.SiteID, ContractDecided{
		ContractID: c.ID,
		SiteID:     c.SiteID,
		Status:     c.Approval.Status.String(),
		Notes:      c.Approval.Notes,
	})
}

func NewChecklistSubmittedEvent(c *entities.MonthlyChecklist, documentURL string) Event {
	return NewEvent(ChecklistSubmittedEvent, c.SiteID, ChecklistSubmitted{
		ChecklistID:   c.ID,
		SiteID:        c.SiteID,
		Period:        c.Period(),
		DocumentURL:   documentURL,
		Approver:      c.Approval.Approver,
		ApprovalToken: c.Approval.Token,
	})
}

func NewChecklistDecidedEvent(c *entities.MonthlyChecklist, documentURL string) Event {
	return NewEvent(ChecklistDecidedEvent, c.SiteID, ChecklistDecided{
		ChecklistID: c.ID,
		SiteID:      c.SiteID,
		Status:      c.Approval.Status.String(),
		DocumentURL: documentURL,
	})
}

func NewBudgetWeightsUpdatedEvent(siteID string, changed int) Event {
	return NewEvent(BudgetWeightsUpdatedEvent, siteID, BudgetWeightsUpdated{SiteID: siteID, Changed: changed})
}

func NewShortageIdentifiedEvent(siteID string, result entities.KitAnalysisResult) Event {
	return NewEvent(ShortageIdentifiedEvent, siteID, ShortageIdentified{
		SiteID:    siteID,
		KitID:     result.KitID,
		KitName:   result.KitName,
		Materials: result.AlertedMaterials(),
	})
}
