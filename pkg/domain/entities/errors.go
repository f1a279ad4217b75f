package entities

import "errors"

var (
	// ErrNotFound is returned by repositories when a record does not exist
	ErrNotFound = errors.New("not found")

	// ErrInvalidApprovalToken is returned when a decision carries the wrong token
	ErrInvalidApprovalToken = errors.New("invalid approval token")

	// ErrAlreadyDecided is returned when a decision targets a record that is no longer pending
	ErrAlreadyDecided = errors.New("already processed")

	// ErrQuantityExceedsBudget is returned when unit items would exceed the unit's apartments
	ErrQuantityExceedsBudget = errors.New("quantity exceeds budgeted limit")
)
