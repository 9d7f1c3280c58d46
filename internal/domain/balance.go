package domain

import "github.com/shopspring/decimal"

// Balances maps member ID to a signed net balance. Positive means the
// member is a net creditor (owed money); negative means a net debtor. A
// Balances value is derived, never stored: it is stale the instant any
// expense or share changes.
type Balances map[string]decimal.Decimal

// ComputeBalances reduces the expense history to one net balance per
// member. For each expense the payer is credited the full amount they
// fronted; each share is then debited from the debtor while outstanding, or
// deducted from the payer's claim once paid. A fully-paid share therefore
// nets to zero.
//
// The second return value is the residual drift Σbalances, which is zero
// for consistent input. Drift beyond AmountTolerance indicates a
// data-integrity bug upstream; the result is still usable best-effort, so
// the caller decides whether to log a reconciliation warning.
func ComputeBalances(expenses []Expense, members []Member) (Balances, decimal.Decimal) {
	balances := make(Balances, len(members))
	for _, m := range members {
		balances[m.ID] = decimal.Zero
	}

	for i := range expenses {
		e := &expenses[i]
		balances[e.PayerID] = balances[e.PayerID].Add(e.Amount)

		for _, s := range e.Shares {
			if s.IsPaid() {
				balances[e.PayerID] = balances[e.PayerID].Sub(s.Amount)
			} else {
				balances[s.MemberID] = balances[s.MemberID].Sub(s.Amount)
			}
		}
	}

	drift := decimal.Zero
	for _, b := range balances {
		drift = drift.Add(b)
	}

	return balances, drift
}
