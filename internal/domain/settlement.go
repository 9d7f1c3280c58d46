package domain

import (
	"sort"

	"github.com/shopspring/decimal"
)

// SettlementTransaction is a proposed transfer that reduces one debtor's
// and one creditor's outstanding balance. Derived at query time, never
// persisted.
type SettlementTransaction struct {
	FromMemberID string
	ToMemberID   string
	Amount       decimal.Decimal
}

// ComputeSettlement converts net balances into pairwise transfers that, if
// executed, zero every balance. Balances within SettleEpsilon of zero are
// treated as settled rounding noise and skipped.
//
// The matching is greedy largest-vs-largest with ties broken by member ID,
// so the output is deterministic and contains at most
// min(#creditors, #debtors) transfers. It is a heuristic: it does not
// guarantee the theoretical minimum transaction count in all inputs.
func ComputeSettlement(balances Balances) []SettlementTransaction {
	type stake struct {
		memberID string
		amount   decimal.Decimal
	}

	var creditors, debtors []stake

	for id, b := range balances {
		if b.Abs().LessThan(SettleEpsilon) {
			continue
		}

		if b.IsPositive() {
			creditors = append(creditors, stake{memberID: id, amount: b})
		} else {
			debtors = append(debtors, stake{memberID: id, amount: b.Neg()})
		}
	}

	byMagnitude := func(s []stake) func(i, j int) bool {
		return func(i, j int) bool {
			if !s[i].amount.Equal(s[j].amount) {
				return s[i].amount.GreaterThan(s[j].amount)
			}

			return s[i].memberID < s[j].memberID
		}
	}
	sort.Slice(creditors, byMagnitude(creditors))
	sort.Slice(debtors, byMagnitude(debtors))

	var plan []SettlementTransaction

	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		transfer := decimal.Min(debtors[i].amount, creditors[j].amount)

		if transfer.GreaterThan(SettleEpsilon) {
			plan = append(plan, SettlementTransaction{
				FromMemberID: debtors[i].memberID,
				ToMemberID:   creditors[j].memberID,
				Amount:       RoundTo2(transfer),
			})
		}

		debtors[i].amount = debtors[i].amount.Sub(transfer)
		creditors[j].amount = creditors[j].amount.Sub(transfer)

		if debtors[i].amount.LessThan(SettleEpsilon) {
			i++
		}

		if creditors[j].amount.LessThan(SettleEpsilon) {
			j++
		}
	}

	return plan
}
