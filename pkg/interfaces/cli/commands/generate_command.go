package commands

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// GenerateConfig holds configuration for site scenario generation
type GenerateConfig struct {
	Units      int       // Number of production units (vagões)
	Apartments int       // Apartments per unit
	Kits       int       // Kits per unit
	Stock      float64   // Stock multiplier (e.g., 0.5 = half coverage, 2.0 = twice the need)
	Start      time.Time // Start date of the first unit
	OutputDir  string    // Output directory for generated files
	Seed       int64     // Random seed for reproducible generation
	Verbose    bool      // Verbose output
}

// GenerateCommand writes a synthetic site as CSV files readable by the other commands
type GenerateCommand struct {
	config GenerateConfig
	rand   *rand.Rand
}

// NewGenerateCommand creates a new generate command
func NewGenerateCommand(config GenerateConfig) *GenerateCommand {
	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if config.Start.IsZero() {
		config.Start = time.Date(time.Now().Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	}

	return &GenerateCommand{
		config: config,
		rand:   rand.New(rand.NewSource(seed)),
	}
}

type catalogMaterial struct {
	name string
	unit string
	min  int
	max  int
}

var materialCatalog = []catalogMaterial{
	{"Cimento", "saco", 2, 12},
	{"Areia", "m3", 1, 4},
	{"Brita", "m3", 1, 3},
	{"Tijolo", "un", 80, 400},
	{"Argamassa", "saco", 1, 6},
	{"Vergalhão", "kg", 10, 60},
	{"Tubo PVC", "m", 4, 20},
	{"Fio elétrico", "m", 20, 120},
	{"Cerâmica", "m2", 8, 40},
	{"Tinta", "lata", 1, 5},
}

var kitNames = []string{"Alvenaria", "Reboco", "Contrapiso", "Hidráulica", "Elétrica", "Revestimento", "Pintura"}

var laborItems = []string{"Pedreiro", "Servente", "Eletricista", "Encanador", "Pintor"}

// generatedUnit is a production unit being written
type generatedUnit struct {
	id         string
	number     int
	start      time.Time
	end        time.Time
	apartments []string
	produced   int
	measured   int
}

// generatedKit is a kit being written
type generatedKit struct {
	id         string
	unitNumber int
	name       string
	materials  map[int]int
	labor      map[string]int
}

// Execute runs the generate command
func (cmd *GenerateCommand) Execute(ctx context.Context) error {
	if cmd.config.Units < 1 || cmd.config.Apartments < 1 || cmd.config.Kits < 1 {
		return fmt.Errorf("units, apartments and kits must be positive")
	}
	if cmd.config.OutputDir == "" {
		return fmt.Errorf("output directory is required")
	}

	if cmd.config.Verbose {
		fmt.Printf(
			"🔧 Generating site with %d units of %d apartments, %d kits per unit, %.1fx stock\n",
			cmd.config.Units,
			cmd.config.Apartments,
			cmd.config.Kits,
			cmd.config.Stock,
		)
		fmt.Printf("📁 Output directory: %s\n", cmd.config.OutputDir)
		fmt.Printf("🎲 Random seed: %d\n", cmd.config.Seed)
	}

	if err := os.MkdirAll(cmd.config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	units := cmd.generateSchedule()
	kits := cmd.generateKitCatalog(units)
	remaining := cmd.generateRemaining(units, kits)

	steps := []struct {
		file  string
		emoji string
		write func(*os.File)
	}{
		{UnitsFile, "🗓️ ", func(f *os.File) { cmd.writeUnits(f, units) }},
		{BudgetsFile, "💰", func(f *os.File) { cmd.writeBudgets(f, units) }},
		{KitsFile, "🧰", func(f *os.File) { cmd.writeKits(f, kits) }},
		{RemainingFile, "📋", func(f *os.File) { cmd.writeRemaining(f, kits, remaining) }},
		{StockFile, "📦", func(f *os.File) { cmd.writeStock(f, kits, remaining) }},
		{ProductionsFile, "🏗️ ", func(f *os.File) { cmd.writeProductions(f, units) }},
		{MeasurementsFile, "📏", func(f *os.File) { cmd.writeMeasurements(f, units) }},
	}

	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		if cmd.config.Verbose {
			fmt.Printf("%s Generating %s...\n", step.emoji, step.file)
		}
		if err := writeFile(filepath.Join(cmd.config.OutputDir, step.file), step.write); err != nil {
			return fmt.Errorf("failed to generate %s: %w", step.file, err)
		}
	}

	if cmd.config.Verbose {
		fmt.Printf("✅ Scenario generated successfully in %s\n", cmd.config.OutputDir)
	}

	return nil
}

func writeFile(path string, write func(*os.File)) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	write(file)
	return file.Close()
}

// generateSchedule chains the units one after another, each lasting one to three months.
// Every unit has produced at least one apartment and measured part of the produced ones.
func (cmd *GenerateCommand) generateSchedule() []generatedUnit {
	units := make([]generatedUnit, cmd.config.Units)
	start := cmd.config.Start
	for i := range units {
		number := i + 1
		end := start.AddDate(0, 1+cmd.rand.Intn(3), 0).AddDate(0, 0, -1)
		apartments := make([]string, cmd.config.Apartments)
		for a := range apartments {
			apartments[a] = fmt.Sprintf("%d%02d", number, a+1)
		}
		produced := 1 + cmd.rand.Intn(len(apartments))
		units[i] = generatedUnit{
			id:         fmt.Sprintf("unit-%d", number),
			number:     number,
			start:      start,
			end:        end,
			apartments: apartments,
			produced:   produced,
			measured:   1 + cmd.rand.Intn(produced),
		}
		start = end.AddDate(0, 0, 1)
	}
	return units
}

func (cmd *GenerateCommand) generateKitCatalog(units []generatedUnit) []generatedKit {
	var kits []generatedKit
	for _, unit := range units {
		for k := 0; k < cmd.config.Kits; k++ {
			kit := generatedKit{
				id:         fmt.Sprintf("kit-%d-%d", unit.number, k+1),
				unitNumber: unit.number,
				name:       kitNames[(unit.number+k)%len(kitNames)],
				materials:  make(map[int]int),
				labor:      make(map[string]int),
			}
			for n := 1 + cmd.rand.Intn(3); n > 0; n-- {
				idx := cmd.rand.Intn(len(materialCatalog))
				m := materialCatalog[idx]
				kit.materials[idx] = m.min + cmd.rand.Intn(m.max-m.min+1)
			}
			kit.labor[laborItems[cmd.rand.Intn(len(laborItems))]] = 1 + cmd.rand.Intn(4)
			kits = append(kits, kit)
		}
	}
	return kits
}

func (cmd *GenerateCommand) generateRemaining(units []generatedUnit, kits []generatedKit) map[string]int {
	remaining := make(map[string]int, len(kits))
	for _, kit := range kits {
		remaining[kit.id] = 1 + cmd.rand.Intn(len(units[kit.unitNumber-1].apartments))
	}
	return remaining
}

func (cmd *GenerateCommand) writeUnits(file *os.File, units []generatedUnit) {
	fmt.Fprintln(file, "unit_id,number,predecessor_id,start_date,end_date,apartments")
	for i, unit := range units {
		predecessor := ""
		if i > 0 {
			predecessor = units[i-1].id
		}
		fmt.Fprintf(file, "%s,%d,%s,%s,%s,%s\n",
			unit.id, unit.number, predecessor,
			unit.start.Format("2006-01-02"), unit.end.Format("2006-01-02"),
			strings.Join(unit.apartments, ";"))
	}
}

func (cmd *GenerateCommand) writeBudgets(file *os.File, units []generatedUnit) {
	fmt.Fprintln(file, "unit_id,unit_number,material_cost,labor_cost")
	for _, unit := range units {
		perApartment := 8000 + cmd.rand.Intn(12000)
		material := decimal.NewFromInt(int64(perApartment * len(unit.apartments)))
		labor := material.Mul(decimal.NewFromFloat(0.3 + cmd.rand.Float64()*0.3)).Round(2)
		fmt.Fprintf(file, "%s,%d,%s,%s\n", unit.id, unit.number, material.StringFixed(2), labor.StringFixed(2))
	}
}

func (cmd *GenerateCommand) writeKits(file *os.File, kits []generatedKit) {
	fmt.Fprintln(file, "kit_id,unit_number,kit_name,kind,name,unit,quantity")
	for _, kit := range kits {
		for idx := range materialCatalog {
			qty, ok := kit.materials[idx]
			if !ok {
				continue
			}
			m := materialCatalog[idx]
			fmt.Fprintf(file, "%s,%d,%s,material,%s,%s,%d\n", kit.id, kit.unitNumber, kit.name, m.name, m.unit, qty)
		}
		for _, item := range laborItems {
			if qty, ok := kit.labor[item]; ok {
				fmt.Fprintf(file, "%s,%d,%s,labor,%s,h,%d\n", kit.id, kit.unitNumber, kit.name, item, qty)
			}
		}
	}
}

func (cmd *GenerateCommand) writeRemaining(file *os.File, kits []generatedKit, remaining map[string]int) {
	fmt.Fprintln(file, "kit_id,remaining")
	for _, kit := range kits {
		fmt.Fprintf(file, "%s,%d\n", kit.id, remaining[kit.id])
	}
}

// writeStock scales the total need of every material by the stock multiplier
func (cmd *GenerateCommand) writeStock(file *os.File, kits []generatedKit, remaining map[string]int) {
	need := make([]int, len(materialCatalog))
	for _, kit := range kits {
		for idx, qty := range kit.materials {
			need[idx] += qty * remaining[kit.id]
		}
	}

	fmt.Fprintln(file, "id,name,unit,quantity_available")
	for idx, m := range materialCatalog {
		if need[idx] == 0 {
			continue
		}
		available := decimal.NewFromInt(int64(need[idx])).Mul(decimal.NewFromFloat(cmd.config.Stock)).Floor()
		fmt.Fprintf(file, "stock-%d,%s,%s,%s\n", idx+1, m.name, m.unit, available.String())
	}
}

func (cmd *GenerateCommand) writeProductions(file *os.File, units []generatedUnit) {
	fmt.Fprintln(file, "unit_id,apartments")
	for _, unit := range units {
		fmt.Fprintf(file, "%s,%s\n", unit.id, strings.Join(unit.apartments[:unit.produced], ";"))
	}
}

func (cmd *GenerateCommand) writeMeasurements(file *os.File, units []generatedUnit) {
	fmt.Fprintln(file, "number,date,supplier,contract_id,unit_id,apartments")
	for i, unit := range units {
		fmt.Fprintf(file, "M-%03d,%s,Construtora Alfa,contract-1,%s,%s\n",
			i+1, unit.end.Format("2006-01-02"), unit.id, strings.Join(unit.apartments[:unit.measured], ";"))
	}
}
