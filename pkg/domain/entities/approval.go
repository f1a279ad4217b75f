package entities

import (
	"crypto/subtle"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ApprovalStatus represents the state of a record awaiting an approver's decision
type ApprovalStatus int

const (
	ApprovalPending ApprovalStatus = iota
	ApprovalApproved
	ApprovalRejected
	ApprovalApprovedWithRestriction
)

// String method for ApprovalStatus enum
func (s ApprovalStatus) String() string {
	switch s {
	case ApprovalPending:
		return "pending"
	case ApprovalApproved:
		return "approved"
	case ApprovalRejected:
		return "rejected"
	case ApprovalApprovedWithRestriction:
		return "approved_with_restriction"
	default:
		return "unknown"
	}
}

// ParseApprovalStatus converts the string form back into an ApprovalStatus
func ParseApprovalStatus(s string) (ApprovalStatus, error) {
	switch s {
	case "pending":
		return ApprovalPending, nil
	case "approved":
		return ApprovalApproved, nil
	case "rejected":
		return ApprovalRejected, nil
	case "approved_with_restriction":
		return ApprovalApprovedWithRestriction, nil
	default:
		return ApprovalPending, fmt.Errorf("invalid approval status: %s", s)
	}
}

// Approver is the person asked to decide on a contract or checklist
type Approver struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Approval carries the token-guarded decision state shared by contracts and checklists
type Approval struct {
	Status    ApprovalStatus
	Approver  Approver
	Token     string
	DecidedAt *time.Time
	Notes     string
}

// NewApprovalToken generates the secret embedded in an approval link
func NewApprovalToken() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "") + strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

// decide applies a decision when the token matches and the record is still pending
func (a *Approval) decide(token string, outcome ApprovalStatus, notes string, at time.Time) error {
	if a.Token == "" || subtle.ConstantTimeCompare([]byte(token), []byte(a.Token)) != 1 {
		return ErrInvalidApprovalToken
	}
	if a.Status != ApprovalPending {
		return ErrAlreadyDecided
	}
	a.Status = outcome
	a.Notes = notes
	a.DecidedAt = &at
	return nil
}
