package entities

import (
	"fmt"
	"time"
)

// MonthlyChecklist is the monthly inspection report of a site, backed by a PDF document
type MonthlyChecklist struct {
	ID           string
	SiteID       string
	Month        time.Month
	Year         int
	Notes        string
	DocumentKey  string
	DocumentName string
	Approval     Approval
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewMonthlyChecklist creates a validated pending MonthlyChecklist.
// An approval token is only issued when an approver email is given.
func NewMonthlyChecklist(id, siteID string, month, year int, notes string, approver Approver) (*MonthlyChecklist, error) {
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("month must be between 1 and 12, got %d", month)
	}
	if year < 2000 {
		return nil, fmt.Errorf("invalid year %d", year)
	}

	approval := Approval{Status: ApprovalPending, Approver: approver}
	if approver.Email != "" {
		approval.Token = NewApprovalToken()
	}

	now := time.Now()
	return &MonthlyChecklist{
		ID:        id,
		SiteID:    siteID,
		Month:     time.Month(month),
		Year:      year,
		Notes:     notes,
		Approval:  approval,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Period renders the checklist month as "Janeiro/2025"
func (c MonthlyChecklist) Period() string {
	return fmt.Sprintf("%s/%d", MonthName(c.Month), c.Year)
}

// Decide records the approver's decision: approved, or approved with restriction
func (c *MonthlyChecklist) Decide(token string, approved bool, notes string) error {
	outcome := ApprovalApprovedWithRestriction
	if approved {
		outcome = ApprovalApproved
	}
	now := time.Now()
	if err := c.Approval.decide(token, outcome, notes, now); err != nil {
		return err
	}
	c.UpdatedAt = now
	return nil
}
