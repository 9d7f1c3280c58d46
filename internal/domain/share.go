package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus is the lifecycle stage of a share's repayment.
type PaymentStatus string

const (
	PaymentStatusUnpaid  PaymentStatus = "unpaid"
	PaymentStatusPending PaymentStatus = "pending_confirmation"
	PaymentStatusPaid    PaymentStatus = "paid"
)

// Share is one member's owed portion of a single expense.
type Share struct {
	MemberID           string
	Amount             decimal.Decimal
	Percentage         decimal.Decimal
	Status             PaymentStatus
	PaymentRequestedAt *time.Time
}

// IsPaid reports whether the share debt has been cleared. This is the single
// derived projection of Status; there is no separate paid flag that could
// disagree with it.
func (s *Share) IsPaid() bool {
	return s.Status == PaymentStatusPaid
}
