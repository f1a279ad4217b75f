package entities

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ProductionUnit is a "vagão": a scheduled batch of apartments executed between two dates
type ProductionUnit struct {
	ID            string
	SiteID        string
	Number        int
	PredecessorID string
	StartDate     time.Time
	EndDate       time.Time
	Apartments    []string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewProductionUnit creates a validated ProductionUnit.
// An end date before the start date is accepted; the cash-flow projection
// treats such a unit as a single-month unit.
func NewProductionUnit(id, siteID string, number int, predecessorID string, start, end time.Time, apartments []string) (*ProductionUnit, error) {
	if number <= 0 {
		return nil, fmt.Errorf("unit number must be positive, got %d", number)
	}
	if start.IsZero() {
		return nil, fmt.Errorf("start date cannot be empty")
	}
	if end.IsZero() {
		return nil, fmt.Errorf("end date cannot be empty")
	}
	if predecessorID != "" && predecessorID == id {
		return nil, fmt.Errorf("unit cannot be its own predecessor")
	}

	now := time.Now()
	return &ProductionUnit{
		ID:            id,
		SiteID:        siteID,
		Number:        number,
		PredecessorID: predecessorID,
		StartDate:     start,
		EndDate:       end,
		Apartments:    apartments,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// ApartmentCount returns the number of apartments scheduled in the unit
func (u ProductionUnit) ApartmentCount() int {
	return len(u.Apartments)
}

// UnitBudget is the planned material and labor cost of a production unit
type UnitBudget struct {
	ID           string
	SiteID       string
	UnitID       string
	UnitNumber   int
	MaterialCost decimal.Decimal
	LaborCost    decimal.Decimal
	Weight       decimal.Decimal
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewUnitBudget creates a validated UnitBudget
func NewUnitBudget(id, siteID, unitID string, unitNumber int, materialCost, laborCost decimal.Decimal) (*UnitBudget, error) {
	if strings.TrimSpace(unitID) == "" {
		return nil, fmt.Errorf("unit id cannot be empty")
	}
	if materialCost.IsNegative() {
		return nil, fmt.Errorf("material cost cannot be negative, got %s", materialCost)
	}
	if laborCost.IsNegative() {
		return nil, fmt.Errorf("labor cost cannot be negative, got %s", laborCost)
	}

	now := time.Now()
	return &UnitBudget{
		ID:           id,
		SiteID:       siteID,
		UnitID:       unitID,
		UnitNumber:   unitNumber,
		MaterialCost: materialCost,
		LaborCost:    laborCost,
		Weight:       decimal.Zero,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// TotalCost is material plus labor cost
func (b UnitBudget) TotalCost() decimal.Decimal {
	return b.MaterialCost.Add(b.LaborCost)
}

// UnitItem is a contracted service line attached to a production unit
type UnitItem struct {
	ID          string
	SiteID      string
	UnitID      string
	UnitNumber  int
	Company     string
	Service     string
	Quantity    int
	MaxQuantity int
	CreatedAt   time.Time
}

// NewUnitItem creates a validated UnitItem. The budget limit against the unit's
// apartments is enforced by the service that knows the existing items.
func NewUnitItem(id, siteID string, unit *ProductionUnit, company, service string, quantity int) (*UnitItem, error) {
	if unit == nil {
		return nil, fmt.Errorf("unit cannot be nil")
	}
	if strings.TrimSpace(company) == "" {
		return nil, fmt.Errorf("company cannot be empty")
	}
	if strings.TrimSpace(service) == "" {
		return nil, fmt.Errorf("service cannot be empty")
	}
	if quantity <= 0 {
		return nil, fmt.Errorf("quantity must be positive, got %d", quantity)
	}

	return &UnitItem{
		ID:          id,
		SiteID:      siteID,
		UnitID:      unit.ID,
		UnitNumber:  unit.Number,
		Company:     company,
		Service:     service,
		Quantity:    quantity,
		MaxQuantity: unit.ApartmentCount(),
		CreatedAt:   time.Now(),
	}, nil
}
