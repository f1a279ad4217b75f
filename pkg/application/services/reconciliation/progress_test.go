package reconciliation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/borderlesspc7/281-carlos/pkg/domain/entities"
)

func TestReconcileProgress(t *testing.T) {
	// Arrange
	units := []*entities.ProductionUnit{
		{ID: "u2", Number: 2, Apartments: []string{"201", "202"}},
		{ID: "u1", Number: 1, Apartments: []string{"101", "102", "103", "104"}},
	}
	productions := []*entities.ProductionRecord{
		{UnitID: "u1", Apartments: []string{"101", "102"}},
		{UnitID: "u1", Apartments: []string{"102", "103"}},
	}
	measurements := []*entities.MeasurementRecord{
		{UnitID: "u1", Apartments: []string{"101"}},
		{UnitID: "u2", Apartments: []string{"201"}},
	}

	// Act
	progress := ReconcileProgress(units, productions, measurements)

	// Assert
	require.Len(t, progress, 2)

	u1 := progress[0]
	assert.Equal(t, 1, u1.UnitNumber)
	assert.Equal(t, 4, u1.Total)
	assert.Equal(t, 3, u1.Produced)
	assert.Equal(t, 1, u1.Measured)
	assert.Equal(t, 2, u1.ToBeCommitted)
	assert.Equal(t, 1, u1.RemainingToProduce)
	assert.Equal(t, 3, u1.RemainingToMeasure)

	u2 := progress[1]
	assert.Equal(t, 0, u2.Produced)
	assert.Equal(t, 1, u2.Measured)
	assert.Equal(t, -1, u2.ToBeCommitted, "measured ahead of production")
	assert.Equal(t, 2, u2.RemainingToProduce)
	assert.Equal(t, 1, u2.RemainingToMeasure)

	total := Totals(progress)
	assert.Equal(t, 6, total.Total)
	assert.Equal(t, 3, total.Produced)
	assert.Equal(t, 2, total.Measured)
}

func TestReconcileProgress_NoRecords(t *testing.T) {
	progress := ReconcileProgress([]*entities.ProductionUnit{{ID: "u1", Number: 1, Apartments: []string{"1"}}}, nil, nil)

	require.Len(t, progress, 1)
	assert.Equal(t, 1, progress[0].RemainingToProduce)
	assert.Equal(t, 0, progress[0].ToBeCommitted)
}

func TestReconcileProgress_SkipsNilRecords(t *testing.T) {
	units := []*entities.ProductionUnit{nil, {ID: "u1", Number: 1, Apartments: []string{"101", "102"}}}
	productions := []*entities.ProductionRecord{nil, {UnitID: "u1", Apartments: []string{"101"}}}
	measurements := []*entities.MeasurementRecord{{UnitID: "u1", Apartments: []string{"101"}}, nil}

	progress := ReconcileProgress(units, productions, measurements)

	require.Len(t, progress, 1)
	assert.Equal(t, 1, progress[0].Produced)
	assert.Equal(t, 1, progress[0].Measured)
	assert.Equal(t, 1, progress[0].RemainingToProduce)
}
