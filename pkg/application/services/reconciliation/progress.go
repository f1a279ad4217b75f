package reconciliation

import (
	"sort"

	"github.com/borderlesspc7/281-carlos/pkg/domain/entities"
)

// ReconcileProgress compares, per unit, how many apartments were produced and
// how many were measured. An apartment recorded more than once counts once.
// Measured apartments ahead of production yield a negative ToBeCommitted.
// Nil elements are skipped.
func ReconcileProgress(units []*entities.ProductionUnit, productions []*entities.ProductionRecord, measurements []*entities.MeasurementRecord) []entities.UnitProgress {
	produced := make(map[string]map[string]bool)
	for _, p := range productions {
		if p == nil {
			continue
		}
		addApartments(produced, p.UnitID, p.Apartments)
	}
	measured := make(map[string]map[string]bool)
	for _, m := range measurements {
		if m == nil {
			continue
		}
		addApartments(measured, m.UnitID, m.Apartments)
	}

	progress := make([]entities.UnitProgress, 0, len(units))
	for _, u := range units {
		if u == nil {
			continue
		}
		total := u.ApartmentCount()
		p := len(produced[u.ID])
		m := len(measured[u.ID])
		progress = append(progress, entities.UnitProgress{
			UnitID:             u.ID,
			UnitNumber:         u.Number,
			Total:              total,
			Produced:           p,
			Measured:           m,
			ToBeCommitted:      p - m,
			RemainingToProduce: total - p,
			RemainingToMeasure: total - m,
		})
	}

	sort.SliceStable(progress, func(i, j int) bool {
		return progress[i].UnitNumber < progress[j].UnitNumber
	})
	return progress
}

func addApartments(index map[string]map[string]bool, unitID string, apartments []string) {
	set, ok := index[unitID]
	if !ok {
		set = make(map[string]bool)
		index[unitID] = set
	}
	for _, a := range apartments {
		if a != "" {
			set[a] = true
		}
	}
}

// Totals sums progress rows into a site-wide row with UnitNumber 0
func Totals(progress []entities.UnitProgress) entities.UnitProgress {
	var total entities.UnitProgress
	for _, p := range progress {
		total.Total += p.Total
		total.Produced += p.Produced
		total.Measured += p.Measured
		total.ToBeCommitted += p.ToBeCommitted
		total.RemainingToProduce += p.RemainingToProduce
		total.RemainingToMeasure += p.RemainingToMeasure
	}
	return total
}
