package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/borderlesspc7/281-carlos/pkg/interfaces/cli/output"
)

// ProgressConfig holds configuration for the production/measurement reconciliation command
type ProgressConfig struct {
	ScenarioDir      string
	UnitsFile        string
	ProductionsFile  string
	MeasurementsFile string
	OutputDir        string
	Format           string
	Verbose          bool
	Writer           io.Writer
}

// ProgressCommand reconciles produced and measured apartments per unit
type ProgressCommand struct {
	config ProgressConfig
}

func NewProgressCommand(config ProgressConfig) *ProgressCommand {
	return &ProgressCommand{config: config}
}

func (c *ProgressCommand) Execute(ctx context.Context) error {
	files, err := resolveInputFiles(c.config.ScenarioDir, map[string]string{
		UnitsFile:        c.config.UnitsFile,
		ProductionsFile:  c.config.ProductionsFile,
		MeasurementsFile: c.config.MeasurementsFile,
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

	result, err := planner.ReconcileProgress(ctx, localSiteID)
	if err != nil {
		return fmt.Errorf("error reconciling progress: %w", err)
	}

	return output.GenerateProgress(result, output.Config{
		Format:     c.config.Format,
		OutputDir:  c.config.OutputDir,
		Verbose:    c.config.Verbose,
		InputFiles: files,
		Writer:     c.config.Writer,
	})
}
