package entities

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestKit_Validation(t *testing.T) {
	cement := MaterialRequirement{ID: "m1", Name: "Cimento", Unit: "saco", QuantityPerItem: decimal.NewFromInt(2)}

	kit, err := NewKit("k1", "site1", "u1", 1, "Kit Banheiro", nil, []MaterialRequirement{cement})
	if err != nil {
		t.Fatalf("Expected valid kit creation to succeed: %v", err)
	}
	if len(kit.Materials) != 1 {
		t.Errorf("Expected 1 material, got %d", len(kit.Materials))
	}

	testCases := []struct {
		name        string
		id          string
		kitName     string
		unitNumber  int
		materials   []MaterialRequirement
		labor       []LaborRequirement
		expectError string
	}{
		{"empty id", "", "Kit", 1, nil, nil, "kit id cannot be empty"},
		{"empty name", "k1", "", 1, nil, nil, "kit name cannot be empty"},
		{"negative unit", "k1", "Kit", -1, nil, nil, "unit number cannot be negative, got -1"},
		{
			"negative material quantity", "k1", "Kit", 1,
			[]MaterialRequirement{{Name: "Areia", Unit: "m3", QuantityPerItem: decimal.NewFromInt(-1)}}, nil,
			"quantity per item cannot be negative for material Areia, got -1",
		},
		{
			"negative labor quantity", "k1", "Kit", 1, nil,
			[]LaborRequirement{{ItemName: "Pedreiro", Quantity: decimal.NewFromInt(-2)}},
			"labor quantity cannot be negative for Pedreiro, got -2",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewKit(tc.id, "site1", "u1", tc.unitNumber, tc.kitName, tc.labor, tc.materials)
			if err == nil {
				t.Fatalf("Expected error for %s, but got none", tc.name)
			}
			if err.Error() != tc.expectError {
				t.Errorf("Expected error '%s', got '%s'", tc.expectError, err.Error())
			}
		})
	}
}

func TestUnitBudget_TotalCost(t *testing.T) {
	budget, err := NewUnitBudget("b1", "site1", "u1", 1, decimal.NewFromInt(200), decimal.NewFromInt(100))
	if err != nil {
		t.Fatalf("Expected valid budget creation to succeed: %v", err)
	}
	if !budget.TotalCost().Equal(decimal.NewFromInt(300)) {
		t.Errorf("Expected total 300, got %s", budget.TotalCost())
	}

	if _, err := NewUnitBudget("b2", "site1", "u1", 1, decimal.NewFromInt(-1), decimal.Zero); err == nil {
		t.Errorf("Expected error for negative material cost")
	}
	if _, err := NewUnitBudget("b3", "site1", "", 1, decimal.Zero, decimal.Zero); err == nil {
		t.Errorf("Expected error for empty unit id")
	}
}

func TestNewUnitItem(t *testing.T) {
	unit, err := NewProductionUnit("u1", "site1", 1, "", date(2025, 1, 1), date(2025, 3, 1), []string{"101", "102", "103"})
	if err != nil {
		t.Fatalf("Expected valid unit creation to succeed: %v", err)
	}

	item, err := NewUnitItem("i1", "site1", unit, "Empreiteira Y", "Alvenaria", 2)
	if err != nil {
		t.Fatalf("Expected valid item creation to succeed: %v", err)
	}
	if item.MaxQuantity != 3 {
		t.Errorf("Expected max quantity 3, got %d", item.MaxQuantity)
	}
	if item.UnitNumber != 1 {
		t.Errorf("Expected unit number 1, got %d", item.UnitNumber)
	}

	if _, err := NewUnitItem("i2", "site1", unit, "Empreiteira Y", "Alvenaria", 0); err == nil {
		t.Errorf("Expected error for zero quantity")
	}
	if _, err := NewProductionUnit("u2", "site1", 0, "", date(2025, 1, 1), date(2025, 1, 2), nil); err == nil {
		t.Errorf("Expected error for unit number 0")
	}
	if _, err := NewProductionUnit("u2", "site1", 2, "u2", date(2025, 1, 1), date(2025, 1, 2), nil); err == nil {
		t.Errorf("Expected error for self predecessor")
	}
}
