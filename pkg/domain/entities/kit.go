package entities

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// MaterialRequirement is the amount of one material consumed per produced item of a kit
type MaterialRequirement struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Unit            string          `json:"unit"`
	QuantityPerItem decimal.Decimal `json:"quantityPerItem"`
}

// Key returns the stock matching key of the material
func (m MaterialRequirement) Key() StockKey {
	return NewStockKey(m.Name, m.Unit)
}

// LaborRequirement is a labor service needed per produced item of a kit
type LaborRequirement struct {
	ID       string          `json:"id"`
	ItemID   string          `json:"itemId"`
	ItemName string          `json:"itemName"`
	Quantity decimal.Decimal `json:"quantity"`
}

// Kit is the bill of materials and labor for one production item of a unit
type Kit struct {
	ID         string
	SiteID     string
	UnitID     string
	UnitNumber int
	Name       string
	Labor      []LaborRequirement
	Materials  []MaterialRequirement
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewKit creates a validated Kit
func NewKit(id, siteID, unitID string, unitNumber int, name string, labor []LaborRequirement, materials []MaterialRequirement) (*Kit, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("kit id cannot be empty")
	}
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("kit name cannot be empty")
	}
	if unitNumber < 0 {
		return nil, fmt.Errorf("unit number cannot be negative, got %d", unitNumber)
	}
	for _, m := range materials {
		if strings.TrimSpace(m.Name) == "" {
			return nil, fmt.Errorf("material name cannot be empty")
		}
		if m.QuantityPerItem.IsNegative() {
			return nil, fmt.Errorf("quantity per item cannot be negative for material %s, got %s", m.Name, m.QuantityPerItem)
		}
	}
	for _, l := range labor {
		if l.Quantity.IsNegative() {
			return nil, fmt.Errorf("labor quantity cannot be negative for %s, got %s", l.ItemName, l.Quantity)
		}
	}

	now := time.Now()
	return &Kit{
		ID:         id,
		SiteID:     siteID,
		UnitID:     unitID,
		UnitNumber: unitNumber,
		Name:       name,
		Labor:      labor,
		Materials:  materials,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// RemainingProduction maps a kit id to the number of items still to be produced
type RemainingProduction map[string]int

// For returns the remaining count for a kit; unknown kits and negative counts read as zero
func (r RemainingProduction) For(kitID string) int {
	if r == nil {
		return 0
	}
	n := r[kitID]
	if n < 0 {
		return 0
	}
	return n
}
