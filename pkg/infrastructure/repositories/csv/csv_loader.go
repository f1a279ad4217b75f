package csv

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/borderlesspc7/281-carlos/pkg/domain/entities"
)

const dateLayout = "2006-01-02"

// Loader handles loading site planning data from CSV files. Every record is
// attributed to the loader's site.
type Loader struct {
	siteID string
}

// NewLoader creates a new CSV loader
func NewLoader(siteID string) *Loader {
	return &Loader{siteID: siteID}
}

// readTable opens a CSV file, checks its header and returns the data rows
func readTable(filename, what string, expectedHeader []string) ([][]string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s file %s: %w", what, filename, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s CSV: %w", what, err)
	}

	if len(records) < 2 {
		return nil, fmt.Errorf("%s CSV must have header and at least one data row", what)
	}

	header := records[0]
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\uFEFF")
	}
	if !validateHeader(header, expectedHeader) {
		return nil, fmt.Errorf("%s CSV header mismatch. Expected: %v, Got: %v", what, expectedHeader, header)
	}

	rows := records[1:]
	for i, record := range rows {
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("%s CSV row %d: expected %d columns, got %d", what, i+2, len(expectedHeader), len(record))
		}
	}
	return rows, nil
}

// LoadStock loads stock entries from a CSV file
func (l *Loader) LoadStock(filename string) ([]*entities.StockEntry, error) {
	rows, err := readTable(filename, "stock", []string{"id", "name", "unit", "quantity_available"})
	if err != nil {
		return nil, err
	}

	var stock []*entities.StockEntry
	for i, record := range rows {
		quantity, err := parseDecimal("quantity_available", record[3])
		if err != nil {
			return nil, fmt.Errorf("stock CSV row %d: %w", i+2, err)
		}
		id := record[0]
		if id == "" {
			id = fmt.Sprintf("stock-%d", i+1)
		}
		entry, err := entities.NewStockEntry(id, l.siteID, record[1], record[2], quantity)
		if err != nil {
			return nil, fmt.Errorf("stock CSV row %d: %w", i+2, err)
		}
		stock = append(stock, entry)
	}

	return stock, nil
}

// LoadKits loads kits from a CSV file with one material or labor line per row.
// Rows of the same kit_id are grouped into one kit, kits keep the order in
// which they first appear.
func (l *Loader) LoadKits(filename string) ([]*entities.Kit, error) {
	rows, err := readTable(filename, "kits", []string{"kit_id", "unit_number", "kit_name", "kind", "name", "unit", "quantity"})
	if err != nil {
		return nil, err
	}

	type draft struct {
		unitNumber int
		name       string
		labor      []entities.LaborRequirement
		materials  []entities.MaterialRequirement
	}
	drafts := make(map[string]*draft)
	var order []string

	for i, record := range rows {
		kitID := record[0]
		unitNumber, err := strconv.Atoi(record[1])
		if err != nil {
			return nil, fmt.Errorf("kits CSV row %d: invalid unit_number: %s", i+2, record[1])
		}
		quantity, err := parseDecimal("quantity", record[6])
		if err != nil {
			return nil, fmt.Errorf("kits CSV row %d: %w", i+2, err)
		}

		d, ok := drafts[kitID]
		if !ok {
			d = &draft{unitNumber: unitNumber, name: record[2]}
			drafts[kitID] = d
			order = append(order, kitID)
		}

		switch strings.ToLower(record[3]) {
		case "material":
			d.materials = append(d.materials, entities.MaterialRequirement{
				ID:              fmt.Sprintf("%s-m%d", kitID, len(d.materials)+1),
				Name:            record[4],
				Unit:            record[5],
				QuantityPerItem: quantity,
			})
		case "labor":
			d.labor = append(d.labor, entities.LaborRequirement{
				ID:       fmt.Sprintf("%s-l%d", kitID, len(d.labor)+1),
				ItemID:   record[4],
				ItemName: record[4],
				Quantity: quantity,
			})
		default:
			return nil, fmt.Errorf("kits CSV row %d: invalid kind: %s (expected: material or labor)", i+2, record[3])
		}
	}

	kits := make([]*entities.Kit, 0, len(order))
	for _, kitID := range order {
		d := drafts[kitID]
		kit, err := entities.NewKit(kitID, l.siteID, "", d.unitNumber, d.name, d.labor, d.materials)
		if err != nil {
			return nil, fmt.Errorf("kits CSV kit %s: %w", kitID, err)
		}
		kits = append(kits, kit)
	}

	return kits, nil
}

// LoadRemaining loads the remaining production count of each kit
func (l *Loader) LoadRemaining(filename string) (entities.RemainingProduction, error) {
	rows, err := readTable(filename, "remaining", []string{"kit_id", "remaining"})
	if err != nil {
		return nil, err
	}

	remaining := make(entities.RemainingProduction, len(rows))
	for i, record := range rows {
		count, err := strconv.Atoi(record[1])
		if err != nil {
			return nil, fmt.Errorf("remaining CSV row %d: invalid remaining: %s", i+2, record[1])
		}
		remaining[record[0]] = count
	}

	return remaining, nil
}

// LoadUnits loads production units; apartments are separated by ';'
func (l *Loader) LoadUnits(filename string) ([]*entities.ProductionUnit, error) {
	rows, err := readTable(filename, "units", []string{"unit_id", "number", "predecessor_id", "start_date", "end_date", "apartments"})
	if err != nil {
		return nil, err
	}

	var units []*entities.ProductionUnit
	for i, record := range rows {
		number, err := strconv.Atoi(record[1])
		if err != nil {
			return nil, fmt.Errorf("units CSV row %d: invalid number: %s", i+2, record[1])
		}
		start, err := parseDate("start_date", record[3])
		if err != nil {
			return nil, fmt.Errorf("units CSV row %d: %w", i+2, err)
		}
		end, err := parseDate("end_date", record[4])
		if err != nil {
			return nil, fmt.Errorf("units CSV row %d: %w", i+2, err)
		}
		unit, err := entities.NewProductionUnit(record[0], l.siteID, number, record[2], start, end, splitList(record[5]))
		if err != nil {
			return nil, fmt.Errorf("units CSV row %d: %w", i+2, err)
		}
		units = append(units, unit)
	}

	return units, nil
}

// LoadBudgets loads unit budgets from a CSV file
func (l *Loader) LoadBudgets(filename string) ([]*entities.UnitBudget, error) {
	rows, err := readTable(filename, "budgets", []string{"unit_id", "unit_number", "material_cost", "labor_cost"})
	if err != nil {
		return nil, err
	}

	var budgets []*entities.UnitBudget
	for i, record := range rows {
		unitNumber, err := strconv.Atoi(record[1])
		if err != nil {
			return nil, fmt.Errorf("budgets CSV row %d: invalid unit_number: %s", i+2, record[1])
		}
		material, err := parseDecimal("material_cost", record[2])
		if err != nil {
			return nil, fmt.Errorf("budgets CSV row %d: %w", i+2, err)
		}
		labor, err := parseDecimal("labor_cost", record[3])
		if err != nil {
			return nil, fmt.Errorf("budgets CSV row %d: %w", i+2, err)
		}
		budget, err := entities.NewUnitBudget(fmt.Sprintf("budget-%d", i+1), l.siteID, record[0], unitNumber, material, labor)
		if err != nil {
			return nil, fmt.Errorf("budgets CSV row %d: %w", i+2, err)
		}
		budgets = append(budgets, budget)
	}

	return budgets, nil
}

// LoadProductions loads production records from a CSV file
func (l *Loader) LoadProductions(filename string) ([]*entities.ProductionRecord, error) {
	rows, err := readTable(filename, "productions", []string{"unit_id", "apartments"})
	if err != nil {
		return nil, err
	}

	var records []*entities.ProductionRecord
	for i, record := range rows {
		p, err := entities.NewProductionRecord(fmt.Sprintf("production-%d", i+1), l.siteID, record[0], splitList(record[1]))
		if err != nil {
			return nil, fmt.Errorf("productions CSV row %d: %w", i+2, err)
		}
		records = append(records, p)
	}

	return records, nil
}

// LoadMeasurements loads measurement records from a CSV file
func (l *Loader) LoadMeasurements(filename string) ([]*entities.MeasurementRecord, error) {
	rows, err := readTable(filename, "measurements", []string{"number", "date", "supplier", "contract_id", "unit_id", "apartments"})
	if err != nil {
		return nil, err
	}

	var records []*entities.MeasurementRecord
	for i, record := range rows {
		date, err := parseDate("date", record[1])
		if err != nil {
			return nil, fmt.Errorf("measurements CSV row %d: %w", i+2, err)
		}
		m, err := entities.NewMeasurementRecord(fmt.Sprintf("measurement-%d", i+1), l.siteID, record[0], date, record[2], record[3], record[4], splitList(record[5]))
		if err != nil {
			return nil, fmt.Errorf("measurements CSV row %d: %w", i+2, err)
		}
		records = append(records, m)
	}

	return records, nil
}

// validateHeader checks if the CSV header matches expected format
func validateHeader(header, expected []string) bool {
	if len(header) != len(expected) {
		return false
	}
	for i, col := range header {
		if strings.TrimSpace(strings.ToLower(col)) != expected[i] {
			return false
		}
	}
	return true
}

func parseDecimal(field, s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s: %s", field, s)
	}
	return d, nil
}

func parseDate(field, s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s format: %s (expected YYYY-MM-DD)", field, s)
	}
	return t, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ";") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
