package domain

import "github.com/shopspring/decimal"

// Monetary tolerances. All arithmetic is exact decimal arithmetic; these
// bound what we accept from callers and what counts as rounding noise.
var (
	// PercentTolerance is the allowed deviation of a percentage sum from 100.
	PercentTolerance = decimal.RequireFromString("0.01")

	// AmountTolerance is the allowed deviation between a share or item sum
	// and the expense amount it must reconcile with.
	AmountTolerance = decimal.RequireFromString("0.05")

	// SettleEpsilon is the threshold below which a balance is treated as
	// already settled.
	SettleEpsilon = decimal.RequireFromString("0.01")

	hundred = decimal.NewFromInt(100)
)

// RoundTo2 rounds a monetary amount to 2 decimal places, half away from
// zero. Every amount stored or compared by the engine goes through this
// before use so repeated accumulation cannot drift.
func RoundTo2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
