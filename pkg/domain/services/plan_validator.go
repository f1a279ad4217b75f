package services

import (
	"fmt"

	"github.com/borderlesspc7/281-carlos/pkg/domain/entities"
)

// PlanValidator checks kits and unit schedules for data problems before analysis
type PlanValidator struct{}

// NewPlanValidator creates a new plan validator
func NewPlanValidator() *PlanValidator {
	return &PlanValidator{}
}

// ValidationResult contains the results of a validation run.
// Errors make the input unusable; warnings only degrade the analysis.
type ValidationResult struct {
	HasCycles          bool
	CyclePaths         [][]int
	DuplicateKits      []string
	DuplicateStock     []string
	UnmatchedMaterials []UnmatchedMaterial
	Errors             []string
	Warnings           []string
}

// UnmatchedMaterial is a kit material that no stock entry matches by name and unit
type UnmatchedMaterial struct {
	KitID string
	Name  string
	Unit  string
}

// IsValid reports whether the run found no errors
func (r *ValidationResult) IsValid() bool {
	return len(r.Errors) == 0
}

func newValidationResult() *ValidationResult {
	return &ValidationResult{
		CyclePaths:         make([][]int, 0),
		DuplicateKits:      make([]string, 0),
		DuplicateStock:     make([]string, 0),
		UnmatchedMaterials: make([]UnmatchedMaterial, 0),
		Errors:             make([]string, 0),
		Warnings:           make([]string, 0),
	}
}

// ValidateKits checks kit contents against the site stock. A material with no
// matching stock entry is analysed as fully short, which is usually a typo in
// its name or unit, so it is reported as a warning. Stock entries sharing a
// key are also warned about since only the last one is used.
func (v *PlanValidator) ValidateKits(kits []*entities.Kit, stock []*entities.StockEntry) *ValidationResult {
	result := newValidationResult()

	stocked := make(map[entities.StockKey]bool, len(stock))
	for _, entry := range stock {
		key := entry.Key()
		if stocked[key] {
			result.DuplicateStock = append(result.DuplicateStock, key.String())
			result.Warnings = append(result.Warnings, fmt.Sprintf("stock entry %s (%s) replaces an earlier entry for %s", entry.ID, entry.QuantityAvailable, key))
		}
		stocked[key] = true
	}

	seen := make(map[string]bool, len(kits))
	for _, kit := range kits {
		if seen[kit.ID] {
			result.DuplicateKits = append(result.DuplicateKits, kit.ID)
		}
		seen[kit.ID] = true

		if len(kit.Materials) == 0 && len(kit.Labor) == 0 {
			result.Warnings = append(result.Warnings, fmt.Sprintf("kit %s (%s) has no materials or labor", kit.ID, kit.Name))
		}

		for _, m := range kit.Materials {
			if m.Name == "" {
				result.Errors = append(result.Errors, fmt.Sprintf("kit %s has a material without name", kit.ID))
				continue
			}
			if !m.QuantityPerItem.IsPositive() {
				result.Errors = append(result.Errors, fmt.Sprintf("kit %s material %s has non-positive quantity per item %s", kit.ID, m.Name, m.QuantityPerItem))
			}
			if !stocked[m.Key()] {
				result.UnmatchedMaterials = append(result.UnmatchedMaterials, UnmatchedMaterial{KitID: kit.ID, Name: m.Name, Unit: m.Unit})
				result.Warnings = append(result.Warnings, fmt.Sprintf("kit %s material %s (%s) has no matching stock entry", kit.ID, m.Name, m.Unit))
			}
		}
	}

	if len(result.DuplicateKits) > 0 {
		result.Warnings = append(result.Warnings, fmt.Sprintf("Found %d duplicate kit ids: %v", len(result.DuplicateKits), result.DuplicateKits))
	}

	return result
}

// ValidateSchedule checks the predecessor chain of production units for
// cycles and dangling references, and warns when a unit starts before its
// predecessor ends.
func (v *PlanValidator) ValidateSchedule(units []*entities.ProductionUnit) *ValidationResult {
	result := newValidationResult()

	byID := make(map[string]*entities.ProductionUnit, len(units))
	for _, u := range units {
		byID[u.ID] = u
	}

	for _, u := range units {
		if u.PredecessorID == "" {
			continue
		}
		pred, ok := byID[u.PredecessorID]
		if !ok {
			result.Errors = append(result.Errors, fmt.Sprintf("unit %d references unknown predecessor %s", u.Number, u.PredecessorID))
			continue
		}
		if u.StartDate.Before(pred.EndDate) {
			result.Warnings = append(result.Warnings, fmt.Sprintf("unit %d starts before predecessor unit %d ends", u.Number, pred.Number))
		}
	}

	cycles := v.detectCycles(units, byID)
	result.HasCycles = len(cycles) > 0
	result.CyclePaths = cycles
	for _, cycle := range cycles {
		result.Errors = append(result.Errors, fmt.Sprintf("unit predecessor cycle detected: %v", cycle))
	}

	return result
}

// detectCycles walks each predecessor chain; every unit has at most one
// predecessor so a chain either terminates or loops.
func (v *PlanValidator) detectCycles(units []*entities.ProductionUnit, byID map[string]*entities.ProductionUnit) [][]int {
	cycles := make([][]int, 0)
	done := make(map[string]bool, len(units))

	for _, start := range units {
		if done[start.ID] {
			continue
		}

		onPath := make(map[string]int)
		path := make([]*entities.ProductionUnit, 0)
		for cur := start; cur != nil; cur = byID[cur.PredecessorID] {
			if done[cur.ID] {
				break
			}
			if idx, looped := onPath[cur.ID]; looped {
				cycle := make([]int, 0, len(path)-idx+1)
				for _, u := range path[idx:] {
					cycle = append(cycle, u.Number)
				}
				cycle = append(cycle, cur.Number)
				cycles = append(cycles, cycle)
				break
			}
			onPath[cur.ID] = len(path)
			path = append(path, cur)
			if cur.PredecessorID == "" {
				break
			}
		}

		for _, u := range path {
			done[u.ID] = true
		}
	}

	return cycles
}
