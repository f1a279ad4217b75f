package orchestration

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/borderlesspc7/281-carlos/pkg/application/dto"
	"github.com/borderlesspc7/281-carlos/pkg/application/services/cashflow"
	"github.com/borderlesspc7/281-carlos/pkg/application/services/inventory"
	"github.com/borderlesspc7/281-carlos/pkg/application/services/reconciliation"
	"github.com/borderlesspc7/281-carlos/pkg/domain/entities"
	"github.com/borderlesspc7/281-carlos/pkg/domain/repositories"
	"github.com/borderlesspc7/281-carlos/pkg/domain/services"
	"github.com/borderlesspc7/281-carlos/pkg/infrastructure/events"
)

// Repositories groups the stores the orchestrator reads from
type Repositories struct {
	Kits        repositories.KitRepository
	Stock       repositories.StockRepository
	Remaining   repositories.RemainingProductionRepository
	Units       repositories.UnitRepository
	Budgets     repositories.BudgetRepository
	Productions repositories.ProductionRepository
}

// PlanningOrchestrator loads a site's records and runs the deficit analysis,
// the cash flow projection and the progress reconciliation over them
type PlanningOrchestrator struct {
	repos     Repositories
	analyzer  *inventory.Analyzer
	validator *services.PlanValidator
	publisher events.Publisher
}

// NewPlanningOrchestrator creates a new planning orchestrator. A nil analyzer
// uses input order, a nil publisher disables shortage events.
func NewPlanningOrchestrator(repos Repositories, analyzer *inventory.Analyzer, publisher events.Publisher) *PlanningOrchestrator {
	if analyzer == nil {
		analyzer = inventory.NewAnalyzer(nil)
	}
	return &PlanningOrchestrator{
		repos:     repos,
		analyzer:  analyzer,
		validator: services.NewPlanValidator(),
		publisher: publisher,
	}
}

// WithAnalyzer returns a copy of the orchestrator that allocates with analyzer
func (po *PlanningOrchestrator) WithAnalyzer(analyzer *inventory.Analyzer) *PlanningOrchestrator {
	clone := *po
	clone.analyzer = analyzer
	return &clone
}

// PlanningResult contains the combined results of one planning run
type PlanningResult struct {
	Analysis     *dto.AnalysisResult
	CashFlow     *dto.CashFlowResult
	Progress     *dto.ProgressResult
	Validation   *services.ValidationResult
	PlanningDate time.Time
}

// AnalyzeKits computes the material deficits of the site's kits and publishes
// one shortage event per alerted kit
func (po *PlanningOrchestrator) AnalyzeKits(ctx context.Context, siteID string) (*dto.AnalysisResult, error) {
	kits, err := po.repos.Kits.ListBySite(ctx, siteID)
	if err != nil {
		return nil, fmt.Errorf("failed to load kits: %w", err)
	}
	stock, err := po.repos.Stock.ListBySite(ctx, siteID)
	if err != nil {
		return nil, fmt.Errorf("failed to load stock: %w", err)
	}
	remaining, err := po.repos.Remaining.Get(ctx, siteID)
	if err != nil {
		return nil, fmt.Errorf("failed to load remaining production: %w", err)
	}

	results := po.analyzer.AnalyzeKits(kits, stock, remaining)
	result := NewAnalysisResult(siteID, po.analyzer.Policy().Name(), results)

	if po.publisher != nil {
		for _, r := range results {
			if !r.HasAlert {
				continue
			}
			if err := po.publisher.Publish(events.NewShortageIdentifiedEvent(siteID, r)); err != nil {
				return nil, fmt.Errorf("failed to publish shortage for kit %s: %w", r.KitID, err)
			}
		}
	}

	return result, nil
}

// NewAnalysisResult wraps analysis results with their summary
func NewAnalysisResult(siteID, policy string, results []entities.KitAnalysisResult) *dto.AnalysisResult {
	summary := inventory.Summarize(results)

	deficits := make([]dto.MaterialDeficit, 0, len(summary.DeficitByMaterial))
	for key, deficit := range summary.DeficitByMaterial {
		deficits = append(deficits, dto.MaterialDeficit{Name: key.Name, Unit: key.Unit, Deficit: deficit})
	}
	sort.Slice(deficits, func(i, j int) bool {
		if !deficits[i].Deficit.Equal(deficits[j].Deficit) {
			return deficits[i].Deficit.GreaterThan(deficits[j].Deficit)
		}
		return deficits[i].Name < deficits[j].Name
	})

	return &dto.AnalysisResult{
		SiteID: siteID,
		Policy: policy,
		Kits:   results,
		Summary: dto.AnalysisSummary{
			Kits:           summary.Kits,
			KitsWithAlert:  summary.KitsWithAlert,
			MaterialsShort: summary.MaterialsShort,
			CoverageRatio:  summary.CoverageRatio,
			Deficits:       deficits,
		},
		AnalyzedAt: time.Now(),
	}
}

// ProjectCashFlow spreads the site's unit budgets over the months each unit runs
func (po *PlanningOrchestrator) ProjectCashFlow(ctx context.Context, siteID string) (*dto.CashFlowResult, error) {
	units, err := po.repos.Units.ListBySite(ctx, siteID)
	if err != nil {
		return nil, fmt.Errorf("failed to load units: %w", err)
	}
	budgets, err := po.repos.Budgets.ListBySite(ctx, siteID)
	if err != nil {
		return nil, fmt.Errorf("failed to load budgets: %w", err)
	}
	return NewCashFlowResult(siteID, units, budgets), nil
}

// NewCashFlowResult projects the budgets and totals the months
func NewCashFlowResult(siteID string, units []*entities.ProductionUnit, budgets []*entities.UnitBudget) *dto.CashFlowResult {
	projection := cashflow.Project(units, budgets)
	material, labor, total := cashflow.Totals(projection.Months)
	return &dto.CashFlowResult{
		SiteID:       siteID,
		Months:       projection.Months,
		Unbudgeted:   projection.Unbudgeted,
		MaterialCost: material,
		LaborCost:    labor,
		TotalCost:    total,
	}
}

// ReconcileProgress compares produced and measured apartments per unit
func (po *PlanningOrchestrator) ReconcileProgress(ctx context.Context, siteID string) (*dto.ProgressResult, error) {
	units, err := po.repos.Units.ListBySite(ctx, siteID)
	if err != nil {
		return nil, fmt.Errorf("failed to load units: %w", err)
	}
	productions, err := po.repos.Productions.ListProductions(ctx, siteID)
	if err != nil {
		return nil, fmt.Errorf("failed to load productions: %w", err)
	}
	measurements, err := po.repos.Productions.ListMeasurements(ctx, siteID)
	if err != nil {
		return nil, fmt.Errorf("failed to load measurements: %w", err)
	}
	return NewProgressResult(siteID, units, productions, measurements), nil
}

// NewProgressResult reconciles the records and adds the site-wide total
func NewProgressResult(siteID string, units []*entities.ProductionUnit, productions []*entities.ProductionRecord, measurements []*entities.MeasurementRecord) *dto.ProgressResult {
	progress := reconciliation.ReconcileProgress(units, productions, measurements)
	return &dto.ProgressResult{
		SiteID: siteID,
		Units:  progress,
		Total:  reconciliation.Totals(progress),
	}
}

// ValidatePlan checks kits against stock and the unit schedule
func (po *PlanningOrchestrator) ValidatePlan(ctx context.Context, siteID string) (*services.ValidationResult, error) {
	kits, err := po.repos.Kits.ListBySite(ctx, siteID)
	if err != nil {
		return nil, fmt.Errorf("failed to load kits: %w", err)
	}
	stock, err := po.repos.Stock.ListBySite(ctx, siteID)
	if err != nil {
		return nil, fmt.Errorf("failed to load stock: %w", err)
	}
	units, err := po.repos.Units.ListBySite(ctx, siteID)
	if err != nil {
		return nil, fmt.Errorf("failed to load units: %w", err)
	}

	result := po.validator.ValidateKits(kits, stock)
	schedule := po.validator.ValidateSchedule(units)
	result.HasCycles = schedule.HasCycles
	result.CyclePaths = append(result.CyclePaths, schedule.CyclePaths...)
	result.Errors = append(result.Errors, schedule.Errors...)
	result.Warnings = append(result.Warnings, schedule.Warnings...)
	return result, nil
}

// RunCompletePlanning runs validation, analysis, projection and reconciliation for a site
func (po *PlanningOrchestrator) RunCompletePlanning(ctx context.Context, siteID string) (*PlanningResult, error) {
	validation, err := po.ValidatePlan(ctx, siteID)
	if err != nil {
		return nil, err
	}
	analysis, err := po.AnalyzeKits(ctx, siteID)
	if err != nil {
		return nil, err
	}
	cash, err := po.ProjectCashFlow(ctx, siteID)
	if err != nil {
		return nil, err
	}
	progress, err := po.ReconcileProgress(ctx, siteID)
	if err != nil {
		return nil, err
	}

	return &PlanningResult{
		Analysis:     analysis,
		CashFlow:     cash,
		Progress:     progress,
		Validation:   validation,
		PlanningDate: time.Now(),
	}, nil
}

// GetSummary returns a formatted summary of the planning results
func (result *PlanningResult) GetSummary() string {
	summary := fmt.Sprintf("Planning Summary (site %s):\n", result.Analysis.SiteID)
	summary += fmt.Sprintf("  Kits: %d analysed, %d with alert, %d materials short\n",
		result.Analysis.Summary.Kits,
		result.Analysis.Summary.KitsWithAlert,
		result.Analysis.Summary.MaterialsShort)
	summary += fmt.Sprintf("  Stock Coverage: %.1f%%\n", result.Analysis.Summary.CoverageRatio*100)
	summary += fmt.Sprintf("  Cash Flow: %d months, total %s, %d units without budget\n",
		len(result.CashFlow.Months),
		result.CashFlow.TotalCost.StringFixed(2),
		len(result.CashFlow.Unbudgeted))
	summary += fmt.Sprintf("  Progress: %d/%d apartments produced, %d measured",
		result.Progress.Total.Produced,
		result.Progress.Total.Total,
		result.Progress.Total.Measured)
	if result.Validation != nil && !result.Validation.IsValid() {
		summary += fmt.Sprintf("\n  Validation: %d errors", len(result.Validation.Errors))
	}
	return summary
}
