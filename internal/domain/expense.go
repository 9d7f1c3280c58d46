package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// SplitMethod selects how an expense amount is divided into shares.
type SplitMethod string

const (
	SplitEqual      SplitMethod = "equal"
	SplitPercentage SplitMethod = "percentage"
	SplitCustom     SplitMethod = "custom"
	SplitItems      SplitMethod = "items"
)

// ExpenseItem is one line of an item-based expense. The price is split
// equally per head among the assigned members.
type ExpenseItem struct {
	Description string
	Price       decimal.Decimal
	AssignedTo  []string
}

// Expense belongs to exactly one group. The amount is immutable after
// creation; only create and delete are supported.
type Expense struct {
	ID          string
	GroupID     string
	Description string
	Category    string
	PayerID     string
	Amount      decimal.Decimal
	Method      SplitMethod
	Shares      []Share
	Items       []ExpenseItem
	CreatedAt   time.Time
}

// ShareTotal returns the sum of all share amounts.
func (e *Expense) ShareTotal() decimal.Decimal {
	total := decimal.Zero
	for _, s := range e.Shares {
		total = total.Add(s.Amount)
	}

	return total
}

// Validate checks the expense fields and the share-sum invariant: share
// amounts must reconcile with the expense amount within AmountTolerance.
func (e *Expense) Validate() error {
	if strings.TrimSpace(e.Description) == "" {
		return fmt.Errorf("%w: description cannot be empty", ErrInvalidSplitInput)
	}

	if e.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	switch e.Method {
	case SplitEqual, SplitPercentage, SplitCustom, SplitItems:
	default:
		return fmt.Errorf("%w: unknown split method %q", ErrInvalidSplitInput, e.Method)
	}

	if diff := e.ShareTotal().Sub(e.Amount).Abs(); diff.GreaterThan(AmountTolerance) {
		return fmt.Errorf("%w: shares sum to %s, expense amount is %s",
			ErrInvalidSplitInput, e.ShareTotal(), e.Amount)
	}

	return nil
}
