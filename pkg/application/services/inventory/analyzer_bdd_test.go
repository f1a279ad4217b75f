package inventory

import (
	"context"
	"fmt"
	"testing"

	"github.com/cucumber/godog"
	"github.com/shopspring/decimal"

	"github.com/borderlesspc7/281-carlos/pkg/domain/entities"
)

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeKitDeficitScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}

type kitDeficitContext struct {
	stock     []*entities.StockEntry
	kits      []*entities.Kit
	remaining entities.RemainingProduction
	results   []entities.KitAnalysisResult
}

func (ctx *kitDeficitContext) reset() {
	ctx.stock = nil
	ctx.kits = nil
	ctx.remaining = entities.RemainingProduction{}
	ctx.results = nil
}

type materialRow struct {
	name     string
	unit     string
	quantity decimal.Decimal
}

func parseMaterialTable(table *godog.Table) ([]materialRow, error) {
	var rows []materialRow
	for i, row := range table.Rows {
		if i == 0 {
			continue
		}
		var r materialRow
		for j, cell := range row.Cells {
			switch table.Rows[0].Cells[j].Value {
			case "name":
				r.name = cell.Value
			case "unit":
				r.unit = cell.Value
			case "quantity":
				qty, err := decimal.NewFromString(cell.Value)
				if err != nil {
					return nil, fmt.Errorf("row %d: invalid quantity %q: %w", i, cell.Value, err)
				}
				r.quantity = qty
			}
		}
		rows = append(rows, r)
	}
	return rows, nil
}

// Given steps

func (ctx *kitDeficitContext) theStock(table *godog.Table) error {
	rows, err := parseMaterialTable(table)
	if err != nil {
		return err
	}
	for i, r := range rows {
		entry, err := entities.NewStockEntry(fmt.Sprintf("s%d", i), "site", r.name, r.unit, r.quantity)
		if err != nil {
			return err
		}
		ctx.stock = append(ctx.stock, entry)
	}
	return nil
}

func (ctx *kitDeficitContext) theKitForUnitNeedsPerItem(kitID string, unitNumber int, table *godog.Table) error {
	rows, err := parseMaterialTable(table)
	if err != nil {
		return err
	}
	materials := make([]entities.MaterialRequirement, 0, len(rows))
	for i, r := range rows {
		materials = append(materials, entities.MaterialRequirement{
			ID:              fmt.Sprintf("%s-m%d", kitID, i),
			Name:            r.name,
			Unit:            r.unit,
			QuantityPerItem: r.quantity,
		})
	}
	kit, err := entities.NewKit(kitID, "site", "", unitNumber, "Kit "+kitID, nil, materials)
	if err != nil {
		return err
	}
	ctx.kits = append(ctx.kits, kit)
	return nil
}

func (ctx *kitDeficitContext) itemsOfKitRemain(count int, kitID string) error {
	ctx.remaining[kitID] = count
	return nil
}

// When steps

func (ctx *kitDeficitContext) iAnalyseTheKits() error {
	ctx.results = AnalyzeKits(ctx.kits, ctx.stock, ctx.remaining)
	return nil
}

// Then steps

func (ctx *kitDeficitContext) result(kitID string) (*entities.KitAnalysisResult, error) {
	for i := range ctx.results {
		if ctx.results[i].KitID == kitID {
			return &ctx.results[i], nil
		}
	}
	return nil, fmt.Errorf("no result for kit %s", kitID)
}

func (ctx *kitDeficitContext) kitNeedsGetsAllocatedAndIsShort(kitID string, needed int, material string, allocated, deficit int) error {
	r, err := ctx.result(kitID)
	if err != nil {
		return err
	}
	for _, m := range r.Materials {
		if entities.NewStockKey(m.Name, "").Name != entities.NewStockKey(material, "").Name {
			continue
		}
		if !m.TotalQuantityNeeded.Equal(decimal.NewFromInt(int64(needed))) {
			return fmt.Errorf("expected %d needed, got %s", needed, m.TotalQuantityNeeded)
		}
		if !m.QuantityAllocated.Equal(decimal.NewFromInt(int64(allocated))) {
			return fmt.Errorf("expected %d allocated, got %s", allocated, m.QuantityAllocated)
		}
		if !m.Deficit.Equal(decimal.NewFromInt(int64(deficit))) {
			return fmt.Errorf("expected deficit %d, got %s", deficit, m.Deficit)
		}
		return nil
	}
	return fmt.Errorf("kit %s has no material %s", kitID, material)
}

func (ctx *kitDeficitContext) kitHasAnAlert(kitID string) error {
	r, err := ctx.result(kitID)
	if err != nil {
		return err
	}
	if !r.HasAlert {
		return fmt.Errorf("expected kit %s to have an alert", kitID)
	}
	return nil
}

func (ctx *kitDeficitContext) kitHasNoAlert(kitID string) error {
	r, err := ctx.result(kitID)
	if err != nil {
		return err
	}
	if r.HasAlert {
		return fmt.Errorf("expected kit %s to have no alert", kitID)
	}
	return nil
}

// InitializeKitDeficitScenario registers the kit deficit steps
func InitializeKitDeficitScenario(sc *godog.ScenarioContext) {
	kitCtx := &kitDeficitContext{}

	sc.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		kitCtx.reset()
		return ctx, nil
	})

	sc.Step(`^the stock:$`, kitCtx.theStock)
	sc.Step(`^the kit "([^"]*)" for unit (\d+) needs per item:$`, kitCtx.theKitForUnitNeedsPerItem)
	sc.Step(`^(\d+) items of kit "([^"]*)" remain to be produced$`, kitCtx.itemsOfKitRemain)
	sc.Step(`^I analyse the kits$`, kitCtx.iAnalyseTheKits)
	sc.Step(`^kit "([^"]*)" needs (\d+) of "([^"]*)", gets (\d+) allocated and is short (\d+)$`, kitCtx.kitNeedsGetsAllocatedAndIsShort)
	sc.Step(`^kit "([^"]*)" has an alert$`, kitCtx.kitHasAnAlert)
	sc.Step(`^kit "([^"]*)" has no alert$`, kitCtx.kitHasNoAlert)
}
