package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/borderlesspc7/281-carlos/pkg/domain/entities"
)

// AnalysisResult contains the complete output of a kit deficit analysis run
type AnalysisResult struct {
	SiteID     string                       `json:"siteId"`
	Policy     string                       `json:"policy"`
	Kits       []entities.KitAnalysisResult `json:"kits"`
	Summary    AnalysisSummary              `json:"summary"`
	AnalyzedAt time.Time                    `json:"analyzedAt"`
}

// AnalysisSummary aggregates an analysis run for reporting
type AnalysisSummary struct {
	Kits           int               `json:"kits"`
	KitsWithAlert  int               `json:"kitsWithAlert"`
	MaterialsShort int               `json:"materialsShort"`
	CoverageRatio  float64           `json:"coverageRatio"`
	Deficits       []MaterialDeficit `json:"deficits"`
}

// MaterialDeficit is the summed shortage of one material across all kits
type MaterialDeficit struct {
	Name    string          `json:"name"`
	Unit    string          `json:"unit"`
	Deficit decimal.Decimal `json:"deficit"`
}

// CashFlowResult contains the monthly projection of a site
type CashFlowResult struct {
	SiteID       string                     `json:"siteId"`
	Months       []entities.MonthlyCashFlow `json:"months"`
	Unbudgeted   []entities.UnbudgetedUnit  `json:"unbudgeted"`
	MaterialCost decimal.Decimal            `json:"materialCost"`
	LaborCost    decimal.Decimal            `json:"laborCost"`
	TotalCost    decimal.Decimal            `json:"totalCost"`
}

// ProgressResult contains the production/measurement reconciliation of a site
type ProgressResult struct {
	SiteID string                  `json:"siteId"`
	Units  []entities.UnitProgress `json:"units"`
	Total  entities.UnitProgress   `json:"total"`
}
