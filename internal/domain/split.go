package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// MemberPercentage assigns a percentage of the total to one member.
// Slices keep the caller's ordering, which the calculator relies on.
type MemberPercentage struct {
	MemberID   string
	Percentage decimal.Decimal
}

// MemberAmount assigns an exact owed amount to one member.
type MemberAmount struct {
	MemberID string
	Amount   decimal.Decimal
}

// SplitParams carries the per-method inputs for ComputeShares. Only the
// field matching the method is consulted.
type SplitParams struct {
	// MemberIDs is the ordered participant list for the equal method.
	MemberIDs []string
	// Percentages is the per-member percentage list for the percentage method.
	Percentages []MemberPercentage
	// Amounts is the per-member amount list for the custom method.
	Amounts []MemberAmount
	// Items is the item list for the items method.
	Items []ExpenseItem
}

// ComputeShares turns one charged amount into per-member shares under the
// given splitting method. For valid input the share amounts always sum
// exactly to RoundTo2(amount); any rounding remainder is assigned to a
// deterministic member, never a random one.
func ComputeShares(amount decimal.Decimal, method SplitMethod, params SplitParams) ([]Share, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: amount must be positive, got %s", ErrInvalidSplitInput, amount)
	}

	amount = RoundTo2(amount)

	switch method {
	case SplitEqual:
		return splitEqual(amount, params.MemberIDs)
	case SplitPercentage:
		return splitPercentage(amount, params.Percentages)
	case SplitCustom:
		return splitCustom(amount, params.Amounts)
	case SplitItems:
		return splitItems(amount, params.Items)
	default:
		return nil, fmt.Errorf("%w: unknown split method %q", ErrInvalidSplitInput, method)
	}
}

// splitEqual divides the amount evenly. The rounding remainder goes to the
// first member so the shares reconcile exactly.
func splitEqual(amount decimal.Decimal, memberIDs []string) ([]Share, error) {
	if len(memberIDs) == 0 {
		return nil, fmt.Errorf("%w: equal split requires at least one member", ErrInvalidSplitInput)
	}

	n := decimal.NewFromInt(int64(len(memberIDs)))
	base := RoundTo2(amount.Div(n))
	remainder := amount.Sub(base.Mul(n))

	shares := make([]Share, len(memberIDs))
	for i, id := range memberIDs {
		owed := base
		if i == 0 {
			owed = owed.Add(remainder)
		}

		shares[i] = Share{
			MemberID:   id,
			Amount:     owed,
			Percentage: sharePercent(owed, amount),
			Status:     PaymentStatusUnpaid,
		}
	}

	return shares, nil
}

// splitPercentage divides by percentage. The last member's share is forced
// to amount minus the running total, so the split reconciles exactly no
// matter what rounding did to the earlier shares.
func splitPercentage(amount decimal.Decimal, percentages []MemberPercentage) ([]Share, error) {
	if len(percentages) == 0 {
		return nil, fmt.Errorf("%w: percentage split requires at least one member", ErrInvalidSplitInput)
	}

	total := decimal.Zero
	for _, p := range percentages {
		if p.Percentage.IsNegative() || p.Percentage.GreaterThan(hundred) {
			return nil, fmt.Errorf("%w: percentage for %s must be between 0 and 100, got %s",
				ErrInvalidSplitInput, p.MemberID, p.Percentage)
		}

		total = total.Add(p.Percentage)
	}

	if total.Sub(hundred).Abs().GreaterThan(PercentTolerance) {
		return nil, fmt.Errorf("%w: percentages sum to %s, want 100", ErrInvalidSplitInput, total)
	}

	shares := make([]Share, len(percentages))
	running := decimal.Zero

	for i, p := range percentages {
		var owed decimal.Decimal
		if i == len(percentages)-1 {
			// A tolerated over-100 sum can push the rounded running total
			// past the amount, which would owe the last member a negative
			// share. Shares are never negative.
			owed = amount.Sub(running)
			if owed.IsNegative() {
				return nil, fmt.Errorf("%w: rounded shares exceed the expense amount by %s",
					ErrInvalidSplitInput, owed.Neg())
			}
		} else {
			owed = RoundTo2(amount.Mul(p.Percentage).Div(hundred))
			running = running.Add(owed)
		}

		shares[i] = Share{
			MemberID:   p.MemberID,
			Amount:     owed,
			Percentage: sharePercent(owed, amount),
			Status:     PaymentStatusUnpaid,
		}
	}

	return shares, nil
}

// splitCustom passes the supplied amounts through, rounded, with the
// percentage back-computed from each share.
func splitCustom(amount decimal.Decimal, amounts []MemberAmount) ([]Share, error) {
	if len(amounts) == 0 {
		return nil, fmt.Errorf("%w: custom split requires at least one member", ErrInvalidSplitInput)
	}

	total := decimal.Zero
	for _, a := range amounts {
		if a.Amount.IsNegative() {
			return nil, fmt.Errorf("%w: amount for %s cannot be negative", ErrInvalidSplitInput, a.MemberID)
		}

		total = total.Add(a.Amount)
	}

	if total.Sub(amount).Abs().GreaterThan(AmountTolerance) {
		return nil, fmt.Errorf("%w: custom amounts sum to %s, expense amount is %s",
			ErrInvalidSplitInput, total, amount)
	}

	shares := make([]Share, len(amounts))
	for i, a := range amounts {
		owed := RoundTo2(a.Amount)
		shares[i] = Share{
			MemberID:   a.MemberID,
			Amount:     owed,
			Percentage: sharePercent(owed, amount),
			Status:     PaymentStatusUnpaid,
		}
	}

	return shares, nil
}

// splitItems splits each item equally per head among its assignees, with the
// per-item remainder going to the item's first assignee, then sums each
// member's cuts across all items. Accumulation is rounded at every step to
// bound drift.
func splitItems(amount decimal.Decimal, items []ExpenseItem) ([]Share, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: item split requires at least one item", ErrInvalidSplitInput)
	}

	totalPrice := decimal.Zero
	for _, item := range items {
		if len(item.AssignedTo) == 0 {
			return nil, fmt.Errorf("%w: item %q has no assigned members", ErrInvalidSplitInput, item.Description)
		}

		if item.Price.IsNegative() {
			return nil, fmt.Errorf("%w: item %q has a negative price", ErrInvalidSplitInput, item.Description)
		}

		totalPrice = totalPrice.Add(item.Price)
	}

	if totalPrice.Sub(amount).Abs().GreaterThan(AmountTolerance) {
		return nil, fmt.Errorf("%w: item prices sum to %s, expense amount is %s",
			ErrInvalidSplitInput, totalPrice, amount)
	}

	totals := make(map[string]decimal.Decimal)

	var order []string

	for _, item := range items {
		price := RoundTo2(item.Price)
		n := decimal.NewFromInt(int64(len(item.AssignedTo)))
		base := RoundTo2(price.Div(n))
		remainder := price.Sub(base.Mul(n))

		for i, id := range item.AssignedTo {
			cut := base
			if i == 0 {
				cut = cut.Add(remainder)
			}

			if _, seen := totals[id]; !seen {
				order = append(order, id)
			}

			totals[id] = RoundTo2(totals[id].Add(cut))
		}
	}

	shares := make([]Share, 0, len(order))
	for _, id := range order {
		shares = append(shares, Share{
			MemberID:   id,
			Amount:     totals[id],
			Percentage: sharePercent(totals[id], amount),
			Status:     PaymentStatusUnpaid,
		})
	}

	return shares, nil
}

func sharePercent(share, amount decimal.Decimal) decimal.Decimal {
	return RoundTo2(share.Mul(hundred).Div(amount))
}
