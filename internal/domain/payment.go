package domain

import (
	"fmt"
	"time"
)

// ShareRef identifies one share inside the aggregate by position. The
// payment transitions return explicit refs instead of relying on ambient
// in-place mutation being observed, so callers know exactly what to
// persist.
type ShareRef struct {
	ExpenseIndex int
	ShareIndex   int
}

// InitiatePayment marks every share the debtor owes the creditor as
// awaiting confirmation and stamps the request time. Only the debtor may
// initiate, so actor and debtor must match. Shares already pending are
// included again with a refreshed timestamp, which makes retrying a lost
// request safe. Shares already paid are terminal and skipped.
func (g *Group) InitiatePayment(actor, debtor, creditor string, now time.Time) ([]ShareRef, error) {
	if actor != debtor {
		return nil, fmt.Errorf("%w: only the debtor can initiate a payment", ErrUnauthorized)
	}

	var touched []ShareRef

	for ei := range g.Expenses {
		e := &g.Expenses[ei]
		if e.PayerID != creditor {
			continue
		}

		for si := range e.Shares {
			s := &e.Shares[si]
			if s.MemberID != debtor || s.Status == PaymentStatusPaid {
				continue
			}

			requestedAt := now
			s.Status = PaymentStatusPending
			s.PaymentRequestedAt = &requestedAt
			touched = append(touched, ShareRef{ExpenseIndex: ei, ShareIndex: si})
		}
	}

	if len(touched) == 0 {
		return nil, fmt.Errorf("%w: nothing owed from %s to %s", ErrNoOutstandingPayment, debtor, creditor)
	}

	return touched, nil
}

// ConfirmPayment settles every pending share the debtor owes the actor.
// Only the creditor may confirm, so actor and creditor must match. Neither
// party can clear a balance unilaterally: the debtor must have initiated
// first, and only then can the creditor confirm.
func (g *Group) ConfirmPayment(actor, creditor, debtor string) ([]ShareRef, error) {
	if actor != creditor {
		return nil, fmt.Errorf("%w: only the creditor can confirm a payment", ErrUnauthorized)
	}

	refs := g.pendingShares(debtor, creditor)
	if len(refs) == 0 {
		return nil, fmt.Errorf("%w: no pending payment from %s to %s", ErrNoPendingPayment, debtor, creditor)
	}

	for _, ref := range refs {
		g.Expenses[ref.ExpenseIndex].Shares[ref.ShareIndex].Status = PaymentStatusPaid
	}

	return refs, nil
}

// DisputePayment resets every pending share the debtor owes the actor back
// to unpaid, letting the debtor initiate again later. Only the creditor may
// dispute.
func (g *Group) DisputePayment(actor, creditor, debtor string) ([]ShareRef, error) {
	if actor != creditor {
		return nil, fmt.Errorf("%w: only the creditor can dispute a payment", ErrUnauthorized)
	}

	refs := g.pendingShares(debtor, creditor)
	if len(refs) == 0 {
		return nil, fmt.Errorf("%w: no pending payment from %s to %s", ErrNoPendingPayment, debtor, creditor)
	}

	for _, ref := range refs {
		s := &g.Expenses[ref.ExpenseIndex].Shares[ref.ShareIndex]
		s.Status = PaymentStatusUnpaid
		s.PaymentRequestedAt = nil
	}

	return refs, nil
}

func (g *Group) pendingShares(debtor, creditor string) []ShareRef {
	var refs []ShareRef

	for ei := range g.Expenses {
		e := &g.Expenses[ei]
		if e.PayerID != creditor {
			continue
		}

		for si := range e.Shares {
			s := &e.Shares[si]
			if s.MemberID == debtor && s.Status == PaymentStatusPending {
				refs = append(refs, ShareRef{ExpenseIndex: ei, ShareIndex: si})
			}
		}
	}

	return refs
}
