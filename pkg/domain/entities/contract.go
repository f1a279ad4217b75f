package entities

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ContractKind distinguishes an original contract from its amendments
type ContractKind int

const (
	KindContract ContractKind = iota
	KindAmendment
)

// String method for ContractKind enum
func (k ContractKind) String() string {
	switch k {
	case KindContract:
		return "contract"
	case KindAmendment:
		return "amendment"
	default:
		return "unknown"
	}
}

// ParseContractKind converts the string form back into a ContractKind
func ParseContractKind(s string) (ContractKind, error) {
	switch s {
	case "contract":
		return KindContract, nil
	case "amendment":
		return KindAmendment, nil
	default:
		return KindContract, fmt.Errorf("invalid contract kind: %s", s)
	}
}

// ContractItem is a priced line of a supplier contract
type ContractItem struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Unit        string          `json:"unit"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
}

// Total is quantity times unit price
func (i ContractItem) Total() decimal.Decimal {
	return i.Quantity.Mul(i.UnitPrice)
}

// Contract is a supplier contract, or an amendment to one, pending approval
type Contract struct {
	ID                 string
	SiteID             string
	Supplier           string
	Kind               ContractKind
	OriginalContractID string
	Number             string
	Items              []ContractItem
	TotalValue         decimal.Decimal
	Approval           Approval
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// NewContract creates a validated pending Contract with a fresh approval token.
// Passing a non-empty originalContractID makes it an amendment.
func NewContract(id, siteID, supplier, number string, items []ContractItem, approver Approver, originalContractID string) (*Contract, error) {
	if strings.TrimSpace(supplier) == "" {
		return nil, fmt.Errorf("supplier cannot be empty")
	}
	if strings.TrimSpace(number) == "" {
		return nil, fmt.Errorf("contract number cannot be empty")
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("contract must have at least one item")
	}
	if strings.TrimSpace(approver.Email) == "" {
		return nil, fmt.Errorf("approver email cannot be empty")
	}

	total := decimal.Zero
	for _, item := range items {
		if item.Quantity.IsNegative() {
			return nil, fmt.Errorf("item quantity cannot be negative, got %s", item.Quantity)
		}
		if item.UnitPrice.IsNegative() {
			return nil, fmt.Errorf("item unit price cannot be negative, got %s", item.UnitPrice)
		}
		total = total.Add(item.Total())
	}

	kind := KindContract
	if originalContractID != "" {
		kind = KindAmendment
	}

	now := time.Now()
	return &Contract{
		ID:                 id,
		SiteID:             siteID,
		Supplier:           supplier,
		Kind:               kind,
		OriginalContractID: originalContractID,
		Number:             number,
		Items:              items,
		TotalValue:         total,
		Approval: Approval{
			Status:   ApprovalPending,
			Approver: approver,
			Token:    NewApprovalToken(),
		},
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Decide records the approver's decision: approved or rejected
func (c *Contract) Decide(token string, approved bool, notes string) error {
	outcome := ApprovalRejected
	if approved {
		outcome = ApprovalApproved
	}
	now := time.Now()
	if err := c.Approval.decide(token, outcome, notes, now); err != nil {
		return err
	}
	c.UpdatedAt = now
	return nil
}
