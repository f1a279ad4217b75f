package entities

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func testItems() []ContractItem {
	return []ContractItem{
		{ID: "i1", Description: "Reboco", Unit: "m2", Quantity: decimal.NewFromInt(100), UnitPrice: decimal.RequireFromString("12.50")},
		{ID: "i2", Description: "Pintura", Unit: "m2", Quantity: decimal.NewFromInt(50), UnitPrice: decimal.NewFromInt(8)},
	}
}

func TestNewContract(t *testing.T) {
	approver := Approver{ID: "a1", Name: "Ana", Email: "ana@example.com"}

	contract, err := NewContract("c1", "site1", "Construtora X", "001/2025", testItems(), approver, "")
	if err != nil {
		t.Fatalf("Expected valid contract creation to succeed: %v", err)
	}
	if contract.Kind != KindContract {
		t.Errorf("Expected kind contract, got %s", contract.Kind)
	}
	if !contract.TotalValue.Equal(decimal.NewFromInt(1650)) {
		t.Errorf("Expected total 1650, got %s", contract.TotalValue)
	}
	if contract.Approval.Status != ApprovalPending {
		t.Errorf("Expected pending status, got %s", contract.Approval.Status)
	}
	if contract.Approval.Token == "" {
		t.Errorf("Expected approval token to be generated")
	}

	amendment, err := NewContract("c2", "site1", "Construtora X", "001/2025-A1", testItems(), approver, "c1")
	if err != nil {
		t.Fatalf("Expected valid amendment creation to succeed: %v", err)
	}
	if amendment.Kind != KindAmendment || amendment.OriginalContractID != "c1" {
		t.Errorf("Expected amendment of c1, got %s of %q", amendment.Kind, amendment.OriginalContractID)
	}
	if amendment.Approval.Token == contract.Approval.Token {
		t.Errorf("Expected distinct approval tokens")
	}
}

func TestNewContract_Validation(t *testing.T) {
	approver := Approver{Email: "ana@example.com"}

	testCases := []struct {
		name        string
		supplier    string
		number      string
		items       []ContractItem
		approver    Approver
		expectError string
	}{
		{"empty supplier", "", "001", testItems(), approver, "supplier cannot be empty"},
		{"empty number", "X", "", testItems(), approver, "contract number cannot be empty"},
		{"no items", "X", "001", nil, approver, "contract must have at least one item"},
		{"no approver email", "X", "001", testItems(), Approver{Name: "Ana"}, "approver email cannot be empty"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewContract("c1", "site1", tc.supplier, tc.number, tc.items, tc.approver, "")
			if err == nil {
				t.Fatalf("Expected error for %s, but got none", tc.name)
			}
			if err.Error() != tc.expectError {
				t.Errorf("Expected error '%s', got '%s'", tc.expectError, err.Error())
			}
		})
	}
}

func TestContract_Decide(t *testing.T) {
	approver := Approver{Email: "ana@example.com"}

	t.Run("wrong token", func(t *testing.T) {
		c, _ := NewContract("c1", "site1", "X", "001", testItems(), approver, "")
		if err := c.Decide("nope", true, ""); !errors.Is(err, ErrInvalidApprovalToken) {
			t.Errorf("Expected ErrInvalidApprovalToken, got %v", err)
		}
		if c.Approval.Status != ApprovalPending {
			t.Errorf("Expected status to stay pending, got %s", c.Approval.Status)
		}
	})

	t.Run("approve then decide again", func(t *testing.T) {
		c, _ := NewContract("c1", "site1", "X", "001", testItems(), approver, "")
		if err := c.Decide(c.Approval.Token, true, "ok"); err != nil {
			t.Fatalf("Expected approval to succeed: %v", err)
		}
		if c.Approval.Status != ApprovalApproved {
			t.Errorf("Expected approved, got %s", c.Approval.Status)
		}
		if c.Approval.DecidedAt == nil {
			t.Errorf("Expected decision time to be set")
		}
		if err := c.Decide(c.Approval.Token, false, ""); !errors.Is(err, ErrAlreadyDecided) {
			t.Errorf("Expected ErrAlreadyDecided, got %v", err)
		}
	})

	t.Run("token prefix or extension", func(t *testing.T) {
		c, _ := NewContract("c1", "site1", "X", "001", testItems(), approver, "")
		token := c.Approval.Token
		for _, guess := range []string{token[:len(token)-1], token + "0", ""} {
			if err := c.Decide(guess, true, ""); !errors.Is(err, ErrInvalidApprovalToken) {
				t.Errorf("Expected ErrInvalidApprovalToken for %q, got %v", guess, err)
			}
		}
		if c.Approval.Status != ApprovalPending {
			t.Errorf("Expected status to stay pending, got %s", c.Approval.Status)
		}
	})

	t.Run("reject", func(t *testing.T) {
		c, _ := NewContract("c1", "site1", "X", "001", testItems(), approver, "")
		if err := c.Decide(c.Approval.Token, false, "preço alto"); err != nil {
			t.Fatalf("Expected rejection to succeed: %v", err)
		}
		if c.Approval.Status != ApprovalRejected {
			t.Errorf("Expected rejected, got %s", c.Approval.Status)
		}
		if c.Approval.Notes != "preço alto" {
			t.Errorf("Expected notes to be kept, got %q", c.Approval.Notes)
		}
	})
}

func TestMonthlyChecklist_Decide(t *testing.T) {
	approver := Approver{Name: "Bruno", Email: "bruno@example.com"}

	c, err := NewMonthlyChecklist("m1", "site1", 3, 2025, "", approver)
	if err != nil {
		t.Fatalf("Expected valid checklist creation to succeed: %v", err)
	}
	if c.Period() != "Março/2025" {
		t.Errorf("Expected period Março/2025, got %s", c.Period())
	}
	if err := c.Decide(c.Approval.Token, false, "falta EPI"); err != nil {
		t.Fatalf("Expected decision to succeed: %v", err)
	}
	if c.Approval.Status != ApprovalApprovedWithRestriction {
		t.Errorf("Expected approved_with_restriction, got %s", c.Approval.Status)
	}

	noApprover, _ := NewMonthlyChecklist("m2", "site1", 4, 2025, "", Approver{})
	if noApprover.Approval.Token != "" {
		t.Errorf("Expected no token without approver")
	}
	if err := noApprover.Decide("", true, ""); !errors.Is(err, ErrInvalidApprovalToken) {
		t.Errorf("Expected ErrInvalidApprovalToken for tokenless checklist, got %v", err)
	}

	if _, err := NewMonthlyChecklist("m3", "site1", 13, 2025, "", approver); err == nil {
		t.Errorf("Expected error for month 13")
	}
}

func TestApprovalStatus_RoundTrip(t *testing.T) {
	for _, s := range []ApprovalStatus{ApprovalPending, ApprovalApproved, ApprovalRejected, ApprovalApprovedWithRestriction} {
		parsed, err := ParseApprovalStatus(s.String())
		if err != nil {
			t.Fatalf("Expected %s to parse: %v", s, err)
		}
		if parsed != s {
			t.Errorf("Expected %s, got %s", s, parsed)
		}
	}
}
