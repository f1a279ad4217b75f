package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/borderlesspc7/281-carlos/pkg/application/dto"
	"github.com/borderlesspc7/281-carlos/pkg/domain/entities"
	csvexport "github.com/borderlesspc7/281-carlos/pkg/infrastructure/repositories/csv"
)

// Config holds configuration for output generation
type Config struct {
	Format      string
	OutputDir   string
	Verbose     bool
	ElapsedTime time.Duration
	InputFiles  map[string]string
	// Writer receives text output and JSON without an output directory; nil means stdout
	Writer io.Writer
}

func (c Config) writer() io.Writer {
	if c.Writer == nil {
		return os.Stdout
	}
	return c.Writer
}

// GenerateAnalysis writes a kit deficit analysis in the configured format
func GenerateAnalysis(result *dto.AnalysisResult, config Config) error {
	switch config.Format {
	case "text":
		writeAnalysisText(result, config)
		return nil
	case "json":
		return generateJSONOutput(result, "kit_analysis.json", config)
	case "csv":
		return generateCSVOutput(config, "kit_analysis.csv", analysisRows(result))
	default:
		return fmt.Errorf("unsupported output format: %s", config.Format)
	}
}

// GenerateCashFlow writes a cash flow projection in the configured format
func GenerateCashFlow(result *dto.CashFlowResult, config Config) error {
	switch config.Format {
	case "text":
		writeCashFlowText(result, config)
		return nil
	case "json":
		return generateJSONOutput(result, "cash_flow.json", config)
	case "csv":
		return generateCSVOutput(config, "cash_flow.csv", cashFlowRows(result))
	default:
		return fmt.Errorf("unsupported output format: %s", config.Format)
	}
}

// GenerateProgress writes a production/measurement reconciliation in the configured format
func GenerateProgress(result *dto.ProgressResult, config Config) error {
	switch config.Format {
	case "text":
		writeProgressText(result, config)
		return nil
	case "json":
		return generateJSONOutput(result, "progress.json", config)
	case "csv":
		if config.OutputDir == "" {
			return csvexport.WriteProgress(config.writer(), result.Units)
		}
		filename, err := outputFile(config, "producao_restante.csv")
		if err != nil {
			return err
		}
		file, err := os.Create(filename)
		if err != nil {
			return fmt.Errorf("failed to create CSV file: %w", err)
		}
		defer file.Close()
		if err := csvexport.WriteProgress(file, result.Units); err != nil {
			return fmt.Errorf("failed to write progress CSV: %w", err)
		}
		if config.Verbose {
			fmt.Fprintf(config.writer(), "💾 CSV results saved to: %s\n", filename)
		}
		return nil
	default:
		return fmt.Errorf("unsupported output format: %s", config.Format)
	}
}

func writeAnalysisText(result *dto.AnalysisResult, config Config) {
	w := config.writer()
	fmt.Fprintf(w, "📊 Kit Deficit Analysis\n")
	fmt.Fprintf(w, "=======================\n\n")

	fmt.Fprintf(w, "Policy: %s\n", result.Policy)
	fmt.Fprintf(w, "Kits: %d\n", result.Summary.Kits)
	fmt.Fprintf(w, "Kits With Alert: %d\n", result.Summary.KitsWithAlert)
	fmt.Fprintf(w, "Stock Coverage: %.1f%%\n", result.Summary.CoverageRatio*100)
	if config.ElapsedTime > 0 {
		fmt.Fprintf(w, "Analysis Time: %v\n", config.ElapsedTime)
	}
	fmt.Fprintln(w)

	for _, kit := range result.Kits {
		marker := "✅"
		if kit.HasAlert {
			marker = "⚠️ "
		}
		fmt.Fprintf(w, "%s %s (unit %d, %d remaining)\n", marker, kit.KitName, kit.UnitNumber, kit.RemainingProduction)
		fmt.Fprintf(w, "   %-20s %-6s %-12s %-12s %-12s\n", "Material", "Unit", "Needed", "Allocated", "Deficit")
		for _, m := range kit.Materials {
			fmt.Fprintf(w, "   %-20s %-6s %-12s %-12s %-12s\n",
				m.Name, m.Unit,
				m.TotalQuantityNeeded.String(),
				m.QuantityAllocated.String(),
				m.Deficit.String())
		}
		for _, l := range kit.Labor {
			fmt.Fprintf(w, "   labor %-14s %s\n", l.ItemName, l.TotalQuantity.String())
		}
		fmt.Fprintln(w)
	}

	if len(result.Summary.Deficits) > 0 {
		fmt.Fprintf(w, "⚠️  Purchase List:\n")
		fmt.Fprintf(w, "%-20s %-6s %-12s\n", "Material", "Unit", "Deficit")
		fmt.Fprintf(w, "%-20s %-6s %-12s\n", "--------------------", "------", "------------")
		for _, d := range result.Summary.Deficits {
			fmt.Fprintf(w, "%-20s %-6s %-12s\n", d.Name, d.Unit, d.Deficit.String())
		}
		fmt.Fprintln(w)
	}
}

func writeCashFlowText(result *dto.CashFlowResult, config Config) {
	w := config.writer()
	fmt.Fprintf(w, "💰 Cash Flow Projection\n")
	fmt.Fprintf(w, "=======================\n\n")

	fmt.Fprintf(w, "%-18s %14s %14s %14s\n", "Month", "Material", "Labor", "Total")
	fmt.Fprintf(w, "%-18s %14s %14s %14s\n", "------------------", "--------------", "--------------", "--------------")
	for _, m := range result.Months {
		fmt.Fprintf(w, "%-18s %14s %14s %14s\n",
			fmt.Sprintf("%s/%d", m.MonthName, m.Year),
			m.MaterialCost.StringFixed(2),
			m.LaborCost.StringFixed(2),
			m.TotalCost.StringFixed(2))
	}
	fmt.Fprintf(w, "%-18s %14s %14s %14s\n\n", "Total",
		result.MaterialCost.StringFixed(2),
		result.LaborCost.StringFixed(2),
		result.TotalCost.StringFixed(2))

	for _, u := range result.Unbudgeted {
		fmt.Fprintf(w, "⚠️  Unit %d has no budget and was left out of the projection\n", u.UnitNumber)
	}
}

func writeProgressText(result *dto.ProgressResult, config Config) {
	w := config.writer()
	fmt.Fprintf(w, "🏗️  Production Progress\n")
	fmt.Fprintf(w, "======================\n\n")

	fmt.Fprintf(w, "%-10s %6s %10s %8s %14s %12s %12s\n",
		"Unit", "Total", "Produced", "Measured", "To Commit", "To Produce", "To Measure")
	row := func(label string, p entities.UnitProgress) {
		fmt.Fprintf(w, "%-10s %6d %10d %8d %14d %12d %12d\n",
			label, p.Total, p.Produced, p.Measured, p.ToBeCommitted, p.RemainingToProduce, p.RemainingToMeasure)
	}
	for _, p := range result.Units {
		row(fmt.Sprintf("Vagão %d", p.UnitNumber), p)
	}
	row("Total", result.Total)
	fmt.Fprintln(w)
}

// generateJSONOutput prints JSON, or saves it under the output directory
func generateJSONOutput(result any, name string, config Config) error {
	jsonData, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if config.OutputDir == "" {
		fmt.Fprintln(config.writer(), string(jsonData))
		return nil
	}

	filename, err := outputFile(config, name)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filename, jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write JSON file: %w", err)
	}
	if config.Verbose {
		fmt.Fprintf(config.writer(), "💾 JSON results saved to: %s\n", filename)
	}
	return nil
}

// generateCSVOutput writes rows to a file in the output directory
func generateCSVOutput(config Config, name string, rows [][]string) error {
	if config.OutputDir == "" {
		return fmt.Errorf("output directory required for CSV format")
	}

	filename, err := outputFile(config, name)
	if err != nil {
		return err
	}
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write CSV file: %w", err)
	}

	if config.Verbose {
		fmt.Fprintf(config.writer(), "💾 CSV results saved to: %s\n", filename)
	}
	return nil
}

func outputFile(config Config, name string) (string, error) {
	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	return filepath.Join(config.OutputDir, name), nil
}

func analysisRows(result *dto.AnalysisResult) [][]string {
	rows := [][]string{{"kit_id", "kit_name", "unit_number", "remaining", "material", "unit", "needed", "allocated", "deficit", "alert"}}
	for _, kit := range result.Kits {
		for _, m := range kit.Materials {
			rows = append(rows, []string{
				kit.KitID,
				kit.KitName,
				strconv.Itoa(kit.UnitNumber),
				strconv.Itoa(kit.RemainingProduction),
				m.Name,
				m.Unit,
				m.TotalQuantityNeeded.String(),
				m.QuantityAllocated.String(),
				m.Deficit.String(),
				strconv.FormatBool(m.HasAlert),
			})
		}
	}
	return rows
}

func cashFlowRows(result *dto.CashFlowResult) [][]string {
	rows := [][]string{{"year", "month", "month_name", "material_cost", "labor_cost", "total_cost"}}
	for _, m := range result.Months {
		rows = append(rows, []string{
			strconv.Itoa(m.Year),
			strconv.Itoa(int(m.Month)),
			m.MonthName,
			m.MaterialCost.StringFixed(2),
			m.LaborCost.StringFixed(2),
			m.TotalCost.StringFixed(2),
		})
	}
	return rows
}
