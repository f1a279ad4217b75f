// Package cli wires the obra commands into a cobra command tree.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/borderlesspc7/281-carlos/pkg/interfaces/cli/commands"
)

var (
	// Global flags
	scenarioDir string
	outputDir   string
	format      string
	configFile  string
	verbose     bool
)

// NewRootCommand creates the root command for the CLI
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "obra",
		Short: "Obra - construction site planning",
		Long: `Obra analyses kit material deficits, projects the cash flow of the
production units and reconciles production against measurements. It reads a
scenario directory of CSV files, or serves the same operations over HTTP.

Examples:
  obra generate --output ./scenario --units 4 --apartments 8 --seed 42
  obra analyze --scenario ./scenario --policy unit-number
  obra cashflow --scenario ./scenario --format json
  obra progress --scenario ./scenario --format csv > producao.csv
  obra validate --scenario ./scenario
  obra migrate --config ./configs/config.yaml
  obra serve --config ./configs/config.yaml`,
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	rootCmd.PersistentFlags().StringVarP(&scenarioDir, "scenario", "s", "",
		"Directory holding the scenario CSV files")
	rootCmd.PersistentFlags().StringVarP(&outputDir, "output", "o", "",
		"Output directory for result files")
	rootCmd.PersistentFlags().StringVarP(&format, "format", "f", "text",
		"Output format: text, json or csv")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "",
		"Path to the configuration file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable verbose output")

	rootCmd.AddCommand(NewAnalyzeCommand())
	rootCmd.AddCommand(NewCashFlowCommand())
	rootCmd.AddCommand(NewProgressCommand())
	rootCmd.AddCommand(NewValidateCommand())
	rootCmd.AddCommand(NewGenerateCommand())
	rootCmd.AddCommand(NewServeCommand())
	rootCmd.AddCommand(NewMigrateCommand())

	return rootCmd
}

// NewAnalyzeCommand creates the kit deficit analysis command
func NewAnalyzeCommand() *cobra.Command {
	var kitsFile, stockFile, remainingFile, policy string

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Allocate stock across kits and report material deficits",
		RunE: func(cmd *cobra.Command, args []string) error {
			return commands.NewAnalyzeCommand(commands.AnalyzeConfig{
				ScenarioDir:   scenarioDir,
				KitsFile:      kitsFile,
				StockFile:     stockFile,
				RemainingFile: remainingFile,
				Policy:        policy,
				OutputDir:     outputDir,
				Format:        format,
				Verbose:       verbose,
				Writer:        cmd.OutOrStdout(),
			}).Execute(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&kitsFile, "kits", "", "Kits CSV file")
	cmd.Flags().StringVar(&stockFile, "stock", "", "Stock CSV file")
	cmd.Flags().StringVar(&remainingFile, "remaining", "", "Remaining production CSV file")
	cmd.Flags().StringVar(&policy, "policy", "input", "Allocation order: input or unit-number")

	return cmd
}

// NewCashFlowCommand creates the cash flow projection command
func NewCashFlowCommand() *cobra.Command {
	var unitsFile, budgetsFile string

	cmd := &cobra.Command{
		Use:   "cashflow",
		Short: "Spread unit budgets over the months of the schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			return commands.NewCashFlowCommand(commands.CashFlowConfig{
				ScenarioDir: scenarioDir,
				UnitsFile:   unitsFile,
				BudgetsFile: budgetsFile,
				OutputDir:   outputDir,
				Format:      format,
				Verbose:     verbose,
				Writer:      cmd.OutOrStdout(),
			}).Execute(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&unitsFile, "units", "", "Units CSV file")
	cmd.Flags().StringVar(&budgetsFile, "budgets", "", "Budgets CSV file")

	return cmd
}

// NewProgressCommand creates the production/measurement reconciliation command
func NewProgressCommand() *cobra.Command {
	var unitsFile, productionsFile, measurementsFile string

	cmd := &cobra.Command{
		Use:   "progress",
		Short: "Reconcile produced and measured apartments per unit",
		RunE: func(cmd *cobra.Command, args []string) error {
			return commands.NewProgressCommand(commands.ProgressConfig{
				ScenarioDir:      scenarioDir,
				UnitsFile:        unitsFile,
				ProductionsFile:  productionsFile,
				MeasurementsFile: measurementsFile,
				OutputDir:        outputDir,
				Format:           format,
				Verbose:          verbose,
				Writer:           cmd.OutOrStdout(),
			}).Execute(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&unitsFile, "units", "", "Units CSV file")
	cmd.Flags().StringVar(&productionsFile, "productions", "", "Productions CSV file")
	cmd.Flags().StringVar(&measurementsFile, "measurements", "", "Measurements CSV file")

	return cmd
}

// NewValidateCommand creates the data validation command
func NewValidateCommand() *cobra.Command {
	var kitsFile, stockFile, unitsFile string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check kits against stock and the unit schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			return commands.NewValidateCommand(commands.ValidateConfig{
				ScenarioDir: scenarioDir,
				KitsFile:    kitsFile,
				StockFile:   stockFile,
				UnitsFile:   unitsFile,
				Writer:      cmd.OutOrStdout(),
			}).Execute(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&kitsFile, "kits", "", "Kits CSV file")
	cmd.Flags().StringVar(&stockFile, "stock", "", "Stock CSV file")
	cmd.Flags().StringVar(&unitsFile, "units", "", "Units CSV file")

	return cmd
}

// NewGenerateCommand creates the scenario generator command
func NewGenerateCommand() *cobra.Command {
	var (
		units, apartments, kits int
		stock                   float64
		start                   string
		seed                    int64
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write a synthetic site as scenario CSV files",
		RunE: func(cmd *cobra.Command, args []string) error {
			var startDate time.Time
			if start != "" {
				parsed, err := time.Parse("2006-01-02", start)
				if err != nil {
					return fmt.Errorf("invalid --start date %q: %w", start, err)
				}
				startDate = parsed
			}
			return commands.NewGenerateCommand(commands.GenerateConfig{
				Units:      units,
				Apartments: apartments,
				Kits:       kits,
				Stock:      stock,
				Start:      startDate,
				OutputDir:  outputDir,
				Seed:       seed,
				Verbose:    verbose,
			}).Execute(cmd.Context())
		},
	}

	cmd.Flags().IntVar(&units, "units", 4, "Number of production units")
	cmd.Flags().IntVar(&apartments, "apartments", 8, "Apartments per unit")
	cmd.Flags().IntVar(&kits, "kits", 3, "Kits per unit")
	cmd.Flags().Float64Var(&stock, "stock", 0.8, "Stock multiplier relative to the total need")
	cmd.Flags().StringVar(&start, "start", "", "Start date of the first unit (YYYY-MM-DD)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Random seed for reproducible generation")

	return cmd
}

// NewServeCommand creates the API server command
func NewServeCommand() *cobra.Command {
	var address string
	var migrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return commands.NewServeCommand(commands.ServeConfig{
				ConfigFile: configFile,
				Address:    address,
				Migrate:    migrate,
				Verbose:    verbose,
			}).Execute(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&address, "address", "", "Listen address, overrides server.address")
	cmd.Flags().BoolVar(&migrate, "migrate", false, "Migrate the schema before serving")

	return cmd
}

// NewMigrateCommand creates the schema migration command
func NewMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			return commands.NewMigrateCommand(commands.MigrateConfig{
				ConfigFile: configFile,
				Verbose:    verbose,
			}).Execute(cmd.Context())
		},
	}
}

// Execute runs the root command until it returns or the process is interrupted
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := NewRootCommand()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
