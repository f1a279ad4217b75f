package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/borderlesspc7/281-carlos/pkg/application/services/inventory"
	"github.com/borderlesspc7/281-carlos/pkg/application/services/orchestration"
	"github.com/borderlesspc7/281-carlos/pkg/infrastructure/repositories/csv"
	"github.com/borderlesspc7/281-carlos/pkg/infrastructure/repositories/memory"
)

// localSiteID attributes CSV records to a single implicit site
const localSiteID = "local"

// Input file names inside a scenario directory
const (
	KitsFile         = "kits.csv"
	StockFile        = "stock.csv"
	RemainingFile    = "remaining.csv"
	UnitsFile        = "units.csv"
	BudgetsFile      = "budgets.csv"
	ProductionsFile  = "productions.csv"
	MeasurementsFile = "measurements.csv"
)

// resolveInputFiles maps each required file name to a path: an explicit flag
// wins, otherwise the file is looked up in the scenario directory
func resolveInputFiles(scenarioDir string, explicit map[string]string) (map[string]string, error) {
	files := make(map[string]string, len(explicit))
	for name, path := range explicit {
		if path == "" {
			if scenarioDir == "" {
				return nil, fmt.Errorf("must specify either --scenario directory or --%s", flagName(name))
			}
			path = filepath.Join(scenarioDir, name)
		}
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return nil, fmt.Errorf("%s file not found: %s", name, path)
		}
		files[name] = path
	}
	return files, nil
}

func flagName(file string) string {
	return file[:len(file)-len(filepath.Ext(file))]
}

// loadScenario reads every resolved file into in-memory repositories
func loadScenario(ctx context.Context, files map[string]string, verbose bool) (orchestration.Repositories, error) {
	loader := csv.NewLoader(localSiteID)
	repos := orchestration.Repositories{
		Kits:        memory.NewKitRepository(),
		Stock:       memory.NewStockRepository(),
		Remaining:   memory.NewRemainingProductionRepository(),
		Units:       memory.NewUnitRepository(),
		Budgets:     memory.NewBudgetRepository(),
		Productions: memory.NewProductionRepository(),
	}

	if verbose {
		fmt.Println("📂 Loading data from CSV files...")
	}

	if path, ok := files[KitsFile]; ok {
		kits, err := loader.LoadKits(path)
		if err != nil {
			return repos, fmt.Errorf("error loading kits: %w", err)
		}
		for _, kit := range kits {
			if err := repos.Kits.Save(ctx, kit); err != nil {
				return repos, err
			}
		}
		if verbose {
			fmt.Printf("  Kits: %d\n", len(kits))
		}
	}

	if path, ok := files[StockFile]; ok {
		stock, err := loader.LoadStock(path)
		if err != nil {
			return repos, fmt.Errorf("error loading stock: %w", err)
		}
		for _, entry := range stock {
			if err := repos.Stock.Save(ctx, entry); err != nil {
				return repos, err
			}
		}
		if verbose {
			fmt.Printf("  Stock Entries: %d\n", len(stock))
		}
	}

	if path, ok := files[RemainingFile]; ok {
		remaining, err := loader.LoadRemaining(path)
		if err != nil {
			return repos, fmt.Errorf("error loading remaining production: %w", err)
		}
		if err := repos.Remaining.SaveAll(ctx, localSiteID, remaining); err != nil {
			return repos, err
		}
		if verbose {
			fmt.Printf("  Remaining Counts: %d\n", len(remaining))
		}
	}

	if path, ok := files[UnitsFile]; ok {
		units, err := loader.LoadUnits(path)
		if err != nil {
			return repos, fmt.Errorf("error loading units: %w", err)
		}
		for _, unit := range units {
			if err := repos.Units.Save(ctx, unit); err != nil {
				return repos, err
			}
		}
		if verbose {
			fmt.Printf("  Units: %d\n", len(units))
		}
	}

	if path, ok := files[BudgetsFile]; ok {
		budgets, err := loader.LoadBudgets(path)
		if err != nil {
			return repos, fmt.Errorf("error loading budgets: %w", err)
		}
		for _, budget := range budgets {
			if err := repos.Budgets.Save(ctx, budget); err != nil {
				return repos, err
			}
		}
		if verbose {
			fmt.Printf("  Budgets: %d\n", len(budgets))
		}
	}

	if path, ok := files[ProductionsFile]; ok {
		records, err := loader.LoadProductions(path)
		if err != nil {
			return repos, fmt.Errorf("error loading productions: %w", err)
		}
		for _, record := range records {
			if err := repos.Productions.SaveProduction(ctx, record); err != nil {
				return repos, err
			}
		}
		if verbose {
			fmt.Printf("  Productions: %d\n", len(records))
		}
	}

	if path, ok := files[MeasurementsFile]; ok {
		records, err := loader.LoadMeasurements(path)
		if err != nil {
			return repos, fmt.Errorf("error loading measurements: %w", err)
		}
		for _, record := range records {
			if err := repos.Productions.SaveMeasurement(ctx, record); err != nil {
				return repos, err
			}
		}
		if verbose {
			fmt.Printf("  Measurements: %d\n", len(records))
		}
	}

	if verbose {
		fmt.Println()
	}
	return repos, nil
}

// newPlanner builds an orchestrator over the loaded data with the named policy
func newPlanner(repos orchestration.Repositories, policyName string) (*orchestration.PlanningOrchestrator, error) {
	policy, err := inventory.PolicyByName(policyName)
	if err != nil {
		return nil, err
	}
	return orchestration.NewPlanningOrchestrator(repos, inventory.NewAnalyzer(policy), nil), nil
}
