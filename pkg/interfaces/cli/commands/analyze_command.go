package commands

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/borderlesspc7/281-carlos/pkg/interfaces/cli/output"
)

// AnalyzeConfig holds configuration for the kit deficit analysis command
type AnalyzeConfig struct {
	ScenarioDir   string
	KitsFile      string
	StockFile     string
	RemainingFile string
	Policy        string
	OutputDir     string
	Format        string
	Verbose       bool
	Writer        io.Writer
}

// AnalyzeCommand runs the kit deficit analysis over CSV input
type AnalyzeCommand struct {
	config AnalyzeConfig
}

func NewAnalyzeCommand(config AnalyzeConfig) *AnalyzeCommand {
	return &AnalyzeCommand{config: config}
}

// Execute runs the analysis
func (c *AnalyzeCommand) Execute(ctx context.Context) error {
	files, err := resolveInputFiles(c.config.ScenarioDir, map[string]string{
		KitsFile:      c.config.KitsFile,
		StockFile:     c.config.StockFile,
		RemainingFile: c.config.RemainingFile,
	})
	if err != nil {
		return fmt.Errorf("failed to resolve input files: %w", err)
	}

	if c.config.Verbose {
		fmt.Printf("🚀 Kit Deficit Analysis\n")
		fmt.Printf("Input files:\n")
		fmt.Printf("  Kits: %s\n", files[KitsFile])
		fmt.Printf("  Stock: %s\n", files[StockFile])
		fmt.Printf("  Remaining: %s\n", files[RemainingFile])
		fmt.Printf("Output format: %s\n\n", c.config.Format)
	}

	repos, err := loadScenario(ctx, files, c.config.Verbose)
	if err != nil {
		return err
	}

	planner, err := newPlanner(repos, c.config.Policy)
	if err != nil {
		return err
	}

	if c.config.Verbose {
		fmt.Println("🔄 Allocating stock across kits...")
	}

	startTime := time.Now()
	result, err := planner.AnalyzeKits(ctx, localSiteID)
	if err != nil {
		return fmt.Errorf("error running analysis: %w", err)
	}
	elapsed := time.Since(startTime)

	if c.config.Verbose {
		fmt.Printf("✅ Analysis completed in %v\n\n", elapsed)
	}

	return output.GenerateAnalysis(result, output.Config{
		Format:      c.config.Format,
		OutputDir:   c.config.OutputDir,
		Verbose:     c.config.Verbose,
		ElapsedTime: elapsed,
		InputFiles:  files,
		Writer:      c.config.Writer,
	})
}
