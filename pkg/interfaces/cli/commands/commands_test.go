package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/borderlesspc7/281-carlos/pkg/application/dto"
)

func writeScenario(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
	return dir
}

func towerScenario(t *testing.T) string {
	return writeScenario(t, map[string]string{
		StockFile: "id,name,unit,quantity_available\n" +
			"s1,Cimento,saco,100\n" +
			"s2,Tijolo,un,1000\n",
		KitsFile: "kit_id,unit_number,kit_name,kind,name,unit,quantity\n" +
			"kit-1,1,Alvenaria,material,Cimento,saco,10\n" +
			"kit-1,1,Alvenaria,material,Tijolo,un,200\n" +
			"kit-1,1,Alvenaria,labor,Pedreiro,h,2\n" +
			"kit-2,2,Reboco,material,Cimento,saco,8\n",
		RemainingFile: "kit_id,remaining\nkit-1,10\nkit-2,5\n",
		UnitsFile: "unit_id,number,predecessor_id,start_date,end_date,apartments\n" +
			"unit-1,1,,2025-01-15,2025-03-10,101;102;103;104\n" +
			"unit-2,2,unit-1,2025-04-01,2025-04-30,201;202\n",
		BudgetsFile: "unit_id,unit_number,material_cost,labor_cost\n" +
			"unit-1,1,3000,1500\n" +
			"unit-2,2,1200,800\n",
		ProductionsFile:  "unit_id,apartments\nunit-1,101;102\nunit-1,102;103\n",
		MeasurementsFile: "number,date,supplier,contract_id,unit_id,apartments\nM-001,2025-03-01,Construtora Alfa,c-1,unit-1,101\n",
	})
}

func TestAnalyzeCommand_JSON(t *testing.T) {
	var out bytes.Buffer
	err := NewAnalyzeCommand(AnalyzeConfig{
		ScenarioDir: towerScenario(t),
		Policy:      "unit-number",
		Format:      "json",
		Writer:      &out,
	}).Execute(context.Background())
	require.NoError(t, err)

	var result dto.AnalysisResult
	require.NoError(t, json.Unmarshal(out.Bytes(), &result))

	assert.Equal(t, "unit-number", result.Policy)
	require.Len(t, result.Kits, 2)

	alvenaria := result.Kits[0]
	assert.Equal(t, "kit-1", alvenaria.KitID)
	require.Len(t, alvenaria.Materials, 2)
	assert.True(t, decimal.NewFromInt(100).Equal(alvenaria.Materials[0].QuantityAllocated))
	assert.False(t, alvenaria.Materials[0].HasAlert)
	assert.True(t, decimal.NewFromInt(1000).Equal(alvenaria.Materials[1].Deficit))
	require.Len(t, alvenaria.Labor, 1)
	assert.True(t, decimal.NewFromInt(20).Equal(alvenaria.Labor[0].TotalQuantity))

	reboco := result.Kits[1]
	assert.True(t, reboco.HasAlert)
	assert.True(t, decimal.NewFromInt(40).Equal(reboco.Materials[0].Deficit))

	assert.Equal(t, 2, result.Summary.KitsWithAlert)
}

func TestAnalyzeCommand_Text(t *testing.T) {
	var out bytes.Buffer
	err := NewAnalyzeCommand(AnalyzeConfig{
		ScenarioDir: towerScenario(t),
		Format:      "text",
		Writer:      &out,
	}).Execute(context.Background())
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "Kit Deficit Analysis")
	assert.Contains(t, text, "Purchase List")
	assert.Contains(t, text, "Tijolo")
}

func TestAnalyzeCommand_Errors(t *testing.T) {
	t.Run("missing scenario and flags", func(t *testing.T) {
		err := NewAnalyzeCommand(AnalyzeConfig{Format: "text"}).Execute(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "--scenario")
	})

	t.Run("missing file", func(t *testing.T) {
		dir := writeScenario(t, map[string]string{KitsFile: "kit_id\n"})
		err := NewAnalyzeCommand(AnalyzeConfig{ScenarioDir: dir, Format: "text"}).Execute(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
	})

	t.Run("unknown policy", func(t *testing.T) {
		err := NewAnalyzeCommand(AnalyzeConfig{
			ScenarioDir: towerScenario(t),
			Policy:      "cheapest",
			Format:      "text",
			Writer:      &bytes.Buffer{},
		}).Execute(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown allocation policy")
	})

	t.Run("explicit file overrides scenario", func(t *testing.T) {
		dir := towerScenario(t)
		other := writeScenario(t, map[string]string{
			RemainingFile: "kit_id,remaining\nkit-1,0\nkit-2,0\n",
		})
		var out bytes.Buffer
		err := NewAnalyzeCommand(AnalyzeConfig{
			ScenarioDir:   dir,
			RemainingFile: filepath.Join(other, RemainingFile),
			Format:        "json",
			Writer:        &out,
		}).Execute(context.Background())
		require.NoError(t, err)

		var result dto.AnalysisResult
		require.NoError(t, json.Unmarshal(out.Bytes(), &result))
		assert.Zero(t, result.Summary.KitsWithAlert)
	})
}

func TestCashFlowCommand(t *testing.T) {
	var out bytes.Buffer
	err := NewCashFlowCommand(CashFlowConfig{
		ScenarioDir: towerScenario(t),
		Format:      "json",
		Writer:      &out,
	}).Execute(context.Background())
	require.NoError(t, err)

	var result dto.CashFlowResult
	require.NoError(t, json.Unmarshal(out.Bytes(), &result))

	require.Len(t, result.Months, 4)
	assert.Equal(t, "Janeiro", result.Months[0].MonthName)
	assert.Equal(t, "Abril", result.Months[3].MonthName)
	assert.True(t, decimal.NewFromInt(1500).Equal(result.Months[1].TotalCost))
	assert.True(t, decimal.NewFromInt(2000).Equal(result.Months[3].TotalCost))
	assert.True(t, decimal.NewFromInt(6500).Equal(result.TotalCost))
	assert.Empty(t, result.Unbudgeted)
}

func TestCashFlowCommand_CSVFile(t *testing.T) {
	outDir := t.TempDir()
	err := NewCashFlowCommand(CashFlowConfig{
		ScenarioDir: towerScenario(t),
		Format:      "csv",
		OutputDir:   outDir,
	}).Execute(context.Background())
	require.NoError(t, err)

	content, err := os.ReadFile(filepath.Join(outDir, "cash_flow.csv"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "2025,1,Janeiro,1000.00,500.00,1500.00", lines[1])
}

func TestProgressCommand_CSV(t *testing.T) {
	var out bytes.Buffer
	err := NewProgressCommand(ProgressConfig{
		ScenarioDir: towerScenario(t),
		Format:      "csv",
		Writer:      &out,
	}).Execute(context.Background())
	require.NoError(t, err)

	text := out.String()
	assert.True(t, strings.HasPrefix(text, "\uFEFFVagão,Total,Produzido"))
	assert.Contains(t, text, "Vagão 1,4,3,1,2,1,3")
	assert.Contains(t, text, "Vagão 2,2,0,0,0,2,2")
}

func TestValidateCommand(t *testing.T) {
	t.Run("valid scenario", func(t *testing.T) {
		var out bytes.Buffer
		err := NewValidateCommand(ValidateConfig{ScenarioDir: towerScenario(t), Writer: &out}).Execute(context.Background())
		require.NoError(t, err)
		assert.Contains(t, out.String(), "Validation passed")
	})

	t.Run("unstocked material is a warning", func(t *testing.T) {
		dir := towerScenario(t)
		kits := "kit_id,unit_number,kit_name,kind,name,unit,quantity\nkit-1,1,Alvenaria,material,Areia,m3,1\n"
		require.NoError(t, os.WriteFile(filepath.Join(dir, KitsFile), []byte(kits), 0644))

		var out bytes.Buffer
		err := NewValidateCommand(ValidateConfig{ScenarioDir: dir, Writer: &out}).Execute(context.Background())
		require.NoError(t, err)
		assert.Contains(t, out.String(), "Areia")
	})

	t.Run("predecessor cycle fails", func(t *testing.T) {
		dir := towerScenario(t)
		units := "unit_id,number,predecessor_id,start_date,end_date,apartments\n" +
			"unit-1,1,unit-2,2025-01-01,2025-01-31,101\n" +
			"unit-2,2,unit-1,2025-02-01,2025-02-28,201\n"
		require.NoError(t, os.WriteFile(filepath.Join(dir, UnitsFile), []byte(units), 0644))

		var out bytes.Buffer
		err := NewValidateCommand(ValidateConfig{ScenarioDir: dir, Writer: &out}).Execute(context.Background())
		require.Error(t, err)
		assert.Contains(t, out.String(), "cycle")
	})
}

func TestGenerateCommand_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	err := NewGenerateCommand(GenerateConfig{
		Units:      3,
		Apartments: 4,
		Kits:       2,
		Stock:      0.5,
		Start:      time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC),
		OutputDir:  dir,
		Seed:       42,
	}).Execute(context.Background())
	require.NoError(t, err)

	for _, name := range []string{KitsFile, StockFile, RemainingFile, UnitsFile, BudgetsFile, ProductionsFile, MeasurementsFile} {
		assert.FileExists(t, filepath.Join(dir, name))
	}

	var analysis bytes.Buffer
	require.NoError(t, NewAnalyzeCommand(AnalyzeConfig{ScenarioDir: dir, Format: "json", Writer: &analysis}).Execute(context.Background()))
	var result dto.AnalysisResult
	require.NoError(t, json.Unmarshal(analysis.Bytes(), &result))
	assert.Len(t, result.Kits, 6)

	var progress bytes.Buffer
	require.NoError(t, NewProgressCommand(ProgressConfig{ScenarioDir: dir, Format: "json", Writer: &progress}).Execute(context.Background()))
	var reconciled dto.ProgressResult
	require.NoError(t, json.Unmarshal(progress.Bytes(), &reconciled))
	assert.Equal(t, 12, reconciled.Total.Total)
	assert.Positive(t, reconciled.Total.Produced)

	require.NoError(t, NewValidateCommand(ValidateConfig{ScenarioDir: dir, Writer: &bytes.Buffer{}}).Execute(context.Background()))
}

func TestGenerateCommand_Reproducible(t *testing.T) {
	config := GenerateConfig{Units: 2, Apartments: 3, Kits: 2, Stock: 1, Seed: 7,
		Start: time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)}

	first, second := t.TempDir(), t.TempDir()
	config.OutputDir = first
	require.NoError(t, NewGenerateCommand(config).Execute(context.Background()))
	config.OutputDir = second
	require.NoError(t, NewGenerateCommand(config).Execute(context.Background()))

	for _, name := range []string{KitsFile, StockFile, UnitsFile, BudgetsFile} {
		a, err := os.ReadFile(filepath.Join(first, name))
		require.NoError(t, err)
		b, err := os.ReadFile(filepath.Join(second, name))
		require.NoError(t, err)
		assert.Equal(t, string(a), string(b), name)
	}
}
