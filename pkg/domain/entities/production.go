package entities

import (
	"fmt"
	"strings"
	"time"
)

// ProductionRecord lists apartments of a unit whose production was completed
type ProductionRecord struct {
	ID         string
	SiteID     string
	UnitID     string
	Apartments []string
	CreatedAt  time.Time
}

// NewProductionRecord creates a validated ProductionRecord
func NewProductionRecord(id, siteID, unitID string, apartments []string) (*ProductionRecord, error) {
	if strings.TrimSpace(unitID) == "" {
		return nil, fmt.Errorf("unit id cannot be empty")
	}
	if len(apartments) == 0 {
		return nil, fmt.Errorf("production must list at least one apartment")
	}
	return &ProductionRecord{
		ID:         id,
		SiteID:     siteID,
		UnitID:     unitID,
		Apartments: apartments,
		CreatedAt:  time.Now(),
	}, nil
}

// MeasurementRecord lists apartments of a unit measured (billed) against a supplier contract
type MeasurementRecord struct {
	ID           string
	SiteID       string
	Number       string
	Date         time.Time
	Supplier     string
	ContractID   string
	AmendmentIDs []string
	UnitID       string
	ItemIDs      []string
	Apartments   []string
	CreatedAt    time.Time
}

// NewMeasurementRecord creates a validated MeasurementRecord
func NewMeasurementRecord(id, siteID, number string, date time.Time, supplier, contractID, unitID string, apartments []string) (*MeasurementRecord, error) {
	if strings.TrimSpace(number) == "" {
		return nil, fmt.Errorf("measurement number cannot be empty")
	}
	if strings.TrimSpace(unitID) == "" {
		return nil, fmt.Errorf("unit id cannot be empty")
	}
	if len(apartments) == 0 {
		return nil, fmt.Errorf("measurement must list at least one apartment")
	}
	return &MeasurementRecord{
		ID:         id,
		SiteID:     siteID,
		Number:     number,
		Date:       date,
		Supplier:   supplier,
		ContractID: contractID,
		UnitID:     unitID,
		Apartments: apartments,
		CreatedAt:  time.Now(),
	}, nil
}

// UnitProgress reconciles produced and measured apartments of one unit
type UnitProgress struct {
	UnitID             string `json:"unitId"`
	UnitNumber         int    `json:"unitNumber"`
	Total              int    `json:"total"`
	Produced           int    `json:"produced"`
	Measured           int    `json:"measured"`
	ToBeCommitted      int    `json:"toBeCommitted"`
	RemainingToProduce int    `json:"remainingToProduce"`
	RemainingToMeasure int    `json:"remainingToMeasure"`
}
