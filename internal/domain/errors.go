package domain

import "errors"

var (
	// Split calculator errors
	ErrInvalidSplitInput = errors.New("invalid split input")

	// Payment state machine errors
	ErrNoOutstandingPayment = errors.New("no outstanding payment between members")
	ErrNoPendingPayment     = errors.New("no payment awaiting confirmation")
	ErrUnauthorized         = errors.New("actor may not perform this transition")

	// Aggregate errors
	ErrGroupNotFound        = errors.New("group not found")
	ErrExpenseNotFound      = errors.New("expense not found")
	ErrMemberNotFound       = errors.New("member not found")
	ErrMemberNotInGroup     = errors.New("member is not part of the group")
	ErrMemberAlreadyInGroup = errors.New("member is already part of the group")
	ErrVersionConflict      = errors.New("group was modified concurrently")

	// Validation errors
	ErrInvalidAmount = errors.New("amount must be positive")
)
