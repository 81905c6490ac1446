// Package auction implements the bidding engine: the tiered increment
// policy, bid validation, item lifecycle transitions and budget
// settlement.  The pure pricing rules live in this file; the stateful
// orchestration lives in engine.go.
package auction

// Increment tiers.  Amounts are in the smallest currency unit; the tier
// boundaries correspond to 1, 2 and 5 crore.
const (
	crore = 10_000_000

	incrementBelowOneCrore  = 500_000   // current amount < 1 Cr
	incrementBelowTwoCrore  = 1_000_000 // 1 Cr <= current amount < 2 Cr
	incrementBelowFiveCrore = 2_000_000 // 2 Cr <= current amount < 5 Cr
	incrementAboveFiveCrore = 2_500_000 // current amount >= 5 Cr
)

// Increment returns the amount the next bid must add on top of the
// current leading amount.  Lower boundaries are inclusive: a leading
// amount of exactly 2 Cr already escalates at the 20-lakh tier.
func Increment(current int64) int64 {
	switch {
	case current < 1*crore:
		return incrementBelowOneCrore
	case current < 2*crore:
		return incrementBelowTwoCrore
	case current < 5*crore:
		return incrementBelowFiveCrore
	default:
		return incrementAboveFiveCrore
	}
}

// NextAmount computes the amount the engine will accept for the next
// bid on an item whose current leading amount is current.  The very
// first bid is accepted at the base price exactly; every later bid adds
// the tier increment.  The engine always derives current from the item
// row, never from a caller-supplied figure, so stale dashboard views
// cannot skip ahead.
func NextAmount(current int64, bidCount int) int64 {
	if bidCount == 0 {
		return current
	}
	return current + Increment(current)
}
