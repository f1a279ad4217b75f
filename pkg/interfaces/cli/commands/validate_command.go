package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ValidateConfig holds configuration for the data validation command
type ValidateConfig struct {
	ScenarioDir string
	KitsFile    string
	StockFile   string
	UnitsFile   string
	Writer      io.Writer
}

// ValidateCommand checks kits against stock and the unit schedule
type ValidateCommand struct {
	config ValidateConfig
}

func NewValidateCommand(config ValidateConfig) *ValidateCommand {
	return &ValidateCommand{config: config}
}

// Execute prints every finding and fails when errors were found
func (c *ValidateCommand) Execute(ctx context.Context) error {
	inputs := map[string]string{
		KitsFile:  c.config.KitsFile,
		StockFile: c.config.StockFile,
	}
	if c.config.UnitsFile != "" || c.hasScenarioFile(UnitsFile) {
		inputs[UnitsFile] = c.config.UnitsFile
	}

	files, err := resolveInputFiles(c.config.ScenarioDir, inputs)
	if err != nil {
		return fmt.Errorf("failed to resolve input files: %w", err)
	}

	repos, err := loadScenario(ctx, files, false)
	if err != nil {
		return err
	}
	planner, err := newPlanner(repos, "")
	if err != nil {
		return err
	}

	result, err := planner.ValidatePlan(ctx, localSiteID)
	if err != nil {
		return err
	}

	w := c.config.Writer
	if w == nil {
		w = os.Stdout
	}
	for _, warning := range result.Warnings {
		fmt.Fprintf(w, "⚠️  %s\n", warning)
	}
	for _, e := range result.Errors {
		fmt.Fprintf(w, "❌ %s\n", e)
	}

	if !result.IsValid() {
		return fmt.Errorf("validation failed: %s", strings.Join(result.Errors, "; "))
	}
	fmt.Fprintf(w, "✅ Validation passed with %d warnings\n", len(result.Warnings))
	return nil
}

func (c *ValidateCommand) hasScenarioFile(name string) bool {
	if c.config.ScenarioDir == "" {
		return false
	}
	_, err := os.Stat(filepath.Join(c.config.ScenarioDir, name))
	return err == nil
}
