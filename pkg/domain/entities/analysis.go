package entities

import "github.com/shopspring/decimal"

// MaterialNeed is the allocation outcome of one material of a kit
type MaterialNeed struct {
	Name                string          `json:"name"`
	Unit                string          `json:"unit"`
	QuantityPerItem     decimal.Decimal `json:"quantityPerItem"`
	TotalQuantityNeeded decimal.Decimal `json:"totalQuantityNeeded"`
	QuantityAllocated   decimal.Decimal `json:"quantityAllocated"`
	Deficit             decimal.Decimal `json:"deficit"`
	HasAlert            bool            `json:"hasAlert"`
}

// LaborNeed is the total labor of one service required by the remaining production of a kit
type LaborNeed struct {
	ItemID        string          `json:"itemId"`
	ItemName      string          `json:"itemName"`
	QuantityPer   decimal.Decimal `json:"quantityPerItem"`
	TotalQuantity decimal.Decimal `json:"totalQuantity"`
}

// KitAnalysisResult is the deficit analysis of a single kit
type KitAnalysisResult struct {
	KitID               string         `json:"kitId"`
	KitName             string         `json:"kitName"`
	UnitNumber          int            `json:"unitNumber"`
	RemainingProduction int            `json:"remainingProduction"`
	Materials           []MaterialNeed `json:"materials"`
	Labor               []LaborNeed    `json:"labor"`
	HasAlert            bool           `json:"hasAlert"`
}

// TotalDeficit sums the deficits of all materials of the kit
func (r KitAnalysisResult) TotalDeficit() decimal.Decimal {
	total := decimal.Zero
	for _, m := range r.Materials {
		total = total.Add(m.Deficit)
	}
	return total
}

// AlertedMaterials returns the materials that could not be fully covered
func (r KitAnalysisResult) AlertedMaterials() []MaterialNeed {
	var alerted []MaterialNeed
	for _, m := range r.Materials {
		if m.HasAlert {
			alerted = append(alerted, m)
		}
	}
	return alerted
}
