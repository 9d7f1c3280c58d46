package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestComputeSettlement_GreedyMatching(t *testing.T) {
	balances := Balances{
		"alice": dec("300"),
		"bob":   dec("-200"),
		"carol": dec("-100"),
	}

	plan := ComputeSettlement(balances)

	if len(plan) != 2 {
		t.Fatalf("expected 2 transfers, got %d: %+v", len(plan), plan)
	}

	if plan[0].FromMemberID != "bob" || plan[0].ToMemberID != "alice" || !plan[0].Amount.Equal(dec("200")) {
		t.Errorf("transfer 0: got %+v, want bob->alice 200", plan[0])
	}

	if plan[1].FromMemberID != "carol" || plan[1].ToMemberID != "alice" || !plan[1].Amount.Equal(dec("100")) {
		t.Errorf("transfer 1: got %+v, want carol->alice 100", plan[1])
	}
}

func TestComputeSettlement_CreditorSplitAcrossDebtors(t *testing.T) {
	balances := Balances{
		"alice": dec("150"),
		"bob":   dec("150"),
		"carol": dec("-300"),
	}

	plan := ComputeSettlement(balances)

	if len(plan) != 2 {
		t.Fatalf("expected 2 transfers, got %d: %+v", len(plan), plan)
	}

	for _, tx := range plan {
		if tx.FromMemberID != "carol" {
			t.Errorf("expected carol as sole debtor, got %+v", tx)
		}
	}
}

func TestComputeSettlement_EmptyAndSettled(t *testing.T) {
	if plan := ComputeSettlement(nil); len(plan) != 0 {
		t.Errorf("nil balances: expected empty plan, got %+v", plan)
	}

	balances := Balances{"alice": decimal.Zero, "bob": decimal.Zero}
	if plan := ComputeSettlement(balances); len(plan) != 0 {
		t.Errorf("settled group: expected empty plan, got %+v", plan)
	}
}

func TestComputeSettlement_RoundingNoiseDiscarded(t *testing.T) {
	balances := Balances{
		"alice": dec("0.005"),
		"bob":   dec("-0.005"),
	}

	if plan := ComputeSettlement(balances); len(plan) != 0 {
		t.Errorf("sub-epsilon balances: expected empty plan, got %+v", plan)
	}
}

func TestComputeSettlement_Deterministic(t *testing.T) {
	balances := Balances{
		"alice": dec("100"),
		"bob":   dec("100"),
		"carol": dec("-100"),
		"dave":  dec("-100"),
	}

	first := ComputeSettlement(balances)

	for run := 0; run < 10; run++ {
		again := ComputeSettlement(Balances{
			"alice": dec("100"),
			"bob":   dec("100"),
			"carol": dec("-100"),
			"dave":  dec("-100"),
		})

		if len(again) != len(first) {
			t.Fatalf("run %d: plan length changed: %d vs %d", run, len(again), len(first))
		}

		for i := range first {
			if again[i].FromMemberID != first[i].FromMemberID ||
				again[i].ToMemberID != first[i].ToMemberID ||
				!again[i].Amount.Equal(first[i].Amount) {
				t.Fatalf("run %d: plan diverged at %d: %+v vs %+v", run, i, again[i], first[i])
			}
		}
	}
}

func TestComputeSettlement_PlanZeroesBalances(t *testing.T) {
	balances := Balances{
		"alice": dec("123.45"),
		"bob":   dec("-23.45"),
		"carol": dec("-60"),
		"dave":  dec("-40"),
	}

	plan := ComputeSettlement(balances)

	residual := make(Balances, len(balances))
	for id, b := range balances {
		residual[id] = b
	}

	for _, tx := range plan {
		residual[tx.FromMemberID] = residual[tx.FromMemberID].Add(tx.Amount)
		residual[tx.ToMemberID] = residual[tx.ToMemberID].Sub(tx.Amount)
	}

	for id, b := range residual {
		if b.Abs().GreaterThan(SettleEpsilon) {
			t.Errorf("%s: residual %s after executing plan", id, b)
		}
	}
}

func TestComputeSettlement_TransferCap(t *testing.T) {
	balances := Balances{
		"alice": dec("50"),
		"bob":   dec("30"),
		"carol": dec("-45"),
		"dave":  dec("-35"),
	}

	plan := ComputeSettlement(balances)

	// n members can always settle in at most n-1 transfers.
	if len(plan) > len(balances)-1 {
		t.Errorf("plan uses %d transfers for %d members", len(plan), len(balances))
	}
}
