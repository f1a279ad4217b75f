package shared

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/borderlesspc7/281-carlos/pkg/domain/entities"
)

// LedgerEntry holds the working balance of one material during an allocation pass
type LedgerEntry struct {
	Available decimal.Decimal
	Allocated decimal.Decimal
	Demand    decimal.Decimal
}

// StockLedger is a working copy of site stock keyed by material name and unit.
// The source entries are never modified.
type StockLedger map[entities.StockKey]*LedgerEntry

// NewStockLedger builds a ledger from stock entries. When entries share a key
// the last one replaces the earlier ones.
func NewStockLedger(stock []*entities.StockEntry) StockLedger {
	ledger := make(StockLedger, len(stock))
	for _, entry := range stock {
		if entry == nil {
			continue
		}
		qty := entry.QuantityAvailable
		if qty.IsNegative() {
			qty = decimal.Zero
		}
		ledger[entry.Key()] = &LedgerEntry{
			Available: qty,
			Allocated: decimal.Zero,
			Demand:    decimal.Zero,
		}
	}
	return ledger
}

// Available returns the remaining working quantity for a key; unknown keys have none
func (l StockLedger) Available(key entities.StockKey) decimal.Decimal {
	if entry, ok := l[key]; ok {
		return entry.Available
	}
	return decimal.Zero
}

// Allocate takes up to quantity from the working stock of key and returns the
// allocated amount and the uncovered deficit. allocated + deficit == quantity.
func (l StockLedger) Allocate(key entities.StockKey, quantity decimal.Decimal) (allocated, deficit decimal.Decimal) {
	if !quantity.IsPositive() {
		return decimal.Zero, decimal.Zero
	}

	entry, ok := l[key]
	if !ok {
		entry = &LedgerEntry{Available: decimal.Zero, Allocated: decimal.Zero, Demand: decimal.Zero}
		l[key] = entry
	}

	allocated = decimal.Min(quantity, entry.Available)
	deficit = quantity.Sub(allocated)

	entry.Available = entry.Available.Sub(allocated)
	entry.Allocated = entry.Allocated.Add(allocated)
	entry.Demand = entry.Demand.Add(quantity)
	return allocated, deficit
}

// Size returns the number of materials tracked
func (l StockLedger) Size() int {
	return len(l)
}

// GetTotalAllocated returns the total allocated quantity across all materials
func (l StockLedger) GetTotalAllocated() decimal.Decimal {
	total := decimal.Zero
	for _, entry := range l {
		total = total.Add(entry.Allocated)
	}
	return total
}

// GetTotalDemand returns the total requested quantity across all materials
func (l StockLedger) GetTotalDemand() decimal.Decimal {
	total := decimal.Zero
	for _, entry := range l {
		total = total.Add(entry.Demand)
	}
	return total
}

// GetCoverageRatio returns the share of demand that stock could cover (0.0 to 1.0)
func (l StockLedger) GetCoverageRatio() float64 {
	demand := l.GetTotalDemand()
	if demand.IsZero() {
		return 0.0
	}
	ratio, _ := l.GetTotalAllocated().Div(demand).Float64()
	return ratio
}

// String returns a string representation of the ledger for debugging
func (l StockLedger) String() string {
	if len(l) == 0 {
		return "StockLedger{empty}"
	}

	keys := make([]entities.StockKey, 0, len(l))
	for key := range l {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })

	result := fmt.Sprintf("StockLedger{%d entries:\n", len(l))
	for _, key := range keys {
		entry := l[key]
		result += fmt.Sprintf(
			"  %s: available=%s, allocated=%s, demand=%s\n",
			key,
			entry.Available,
			entry.Allocated,
			entry.Demand,
		)
	}
	result += "}"
	return result
}
