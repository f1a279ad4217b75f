package entities

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// StockKey identifies a material in stock independently of letter case
type StockKey struct {
	Name string
	Unit string
}

// NewStockKey builds the case-insensitive matching key for a material name and
// unit. Surrounding spaces are significant.
func NewStockKey(name, unit string) StockKey {
	return StockKey{
		Name: strings.ToLower(name),
		Unit: strings.ToLower(unit),
	}
}

// String renders the key as "name|unit"
func (k StockKey) String() string {
	return fmt.Sprintf("%s|%s", k.Name, k.Unit)
}

// StockEntry is the quantity of one material currently available at a site
type StockEntry struct {
	ID                string
	SiteID            string
	Name              string
	Unit              string
	QuantityAvailable decimal.Decimal
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// NewStockEntry creates a validated StockEntry
func NewStockEntry(id, siteID, name, unit string, quantity decimal.Decimal) (*StockEntry, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("material name cannot be empty")
	}
	if strings.TrimSpace(unit) == "" {
		return nil, fmt.Errorf("unit cannot be empty")
	}
	if quantity.IsNegative() {
		return nil, fmt.Errorf("quantity cannot be negative, got %s", quantity)
	}

	now := time.Now()
	return &StockEntry{
		ID:                id,
		SiteID:            siteID,
		Name:              name,
		Unit:              unit,
		QuantityAvailable: quantity,
		CreatedAt:         now,
		UpdatedAt:         now,
	}, nil
}

// Key returns the matching key of the entry
func (s StockEntry) Key() StockKey {
	return NewStockKey(s.Name, s.Unit)
}
