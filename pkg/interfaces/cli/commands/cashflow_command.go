package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/borderlesspc7/281-carlos/pkg/interfaces/cli/output"
)

// CashFlowConfig holds configuration for the cash flow projection command
type CashFlowConfig struct {
	ScenarioDir string
	UnitsFile   string
	BudgetsFile string
	OutputDir   string
	Format      string
	Verbose     bool
	Writer      io.Writer
}

// CashFlowCommand projects unit budgets over the schedule
type CashFlowCommand struct {
	config CashFlowConfig
}

func NewCashFlowCommand(config CashFlowConfig) *CashFlowCommand {
	return &CashFlowCommand{config: config}
}

func (c *CashFlowCommand) Execute(ctx context.Context) error {
	files, err := resolveInputFiles(c.config.ScenarioDir, map[string]string{
		UnitsFile:   c.config.UnitsFile,
		BudgetsFile: c.config.BudgetsFile,
	})
	if err != nil {
		return fmt.Errorf("failed to resolve input files: %w", err)
	}

	repos, err := loadScenario(ctx, files, c.config.Verbose)
	if err != nil {
		return err
	}

	planner, err := newPlanner(repos, "")
	if err != nil {
		return err
	}

	result, err := planner.ProjectCashFlow(ctx, localSiteID)
	if err != nil {
		return fmt.Errorf("error projecting cash flow: %w", err)
	}

	if c.config.Verbose {
		fmt.Printf("✅ Projected %d months\n\n", len(result.Months))
	}

	return output.GenerateCashFlow(result, output.Config{
		Format:     c.config.Format,
		OutputDir:  c.config.OutputDir,
		Verbose:    c.config.Verbose,
		InputFiles: files,
		Writer:     c.config.Writer,
	})
}
