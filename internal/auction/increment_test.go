package auction

import (
	"testing"

	"github.com/peterldowns/testy/check"
)

func TestIncrement_Tiers(t *testing.T) {
	cases := []struct {
		name    string
		current int64
		want    int64
	}{
		{"zero amount uses lowest tier", 0, 500_000},
		{"well below one crore", 5_000_000, 500_000},
		{"just below one crore", 9_999_999, 500_000},
		{"exactly one crore", 10_000_000, 1_000_000},
		{"between one and two crore", 15_000_000, 1_000_000},
		{"just below two crore", 19_999_999, 1_000_000},
		{"exactly two crore", 20_000_000, 2_000_000},
		{"between two and five crore", 35_000_000, 2_000_000},
		{"just below five crore", 49_999_999, 2_000_000},
		{"exactly five crore", 50_000_000, 2_500_000},
		{"far above five crore", 120_000_000, 2_500_000},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			check.Equal(t, tc.want, Increment(tc.current))
		})
	}
}

func TestNextAmount_FirstBidIsBasePrice(t *testing.T) {
	// The opening bid is accepted at the item's base price exactly; no
	// increment applies no matter the tier the base price falls into.
	check.Equal(t, int64(5_000_000), NextAmount(5_000_000, 0))
	check.Equal(t, int64(8_000_000), NextAmount(8_000_000, 0))
	check.Equal(t, int64(55_000_000), NextAmount(55_000_000, 0))
}

func TestNextAmount_EscalatesByTier(t *testing.T) {
	cases := []struct {
		name    string
		current int64
		want    int64
	}{
		{"below one crore adds five lakh", 8_000_000, 8_500_000},
		{"above one crore adds ten lakh", 12_000_000, 13_000_000},
		{"above five crore adds twenty-five lakh", 55_000_000, 57_500_000},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			check.Equal(t, tc.want, NextAmount(tc.current, 1))
		})
	}
}

func TestNextAmount_SequenceCrossesTierBoundary(t *testing.T) {
	// Walk a bidding war from just under one crore across the boundary:
	// the increment changes as soon as the leading amount enters the
	// next tier.
	amount := NextAmount(9_500_000, 0) // opening bid at base price
	check.Equal(t, int64(9_500_000), amount)
	amount = NextAmount(amount, 1)
	check.Equal(t, int64(10_000_000), amount)
	amount = NextAmount(amount, 2)
	check.Equal(t, int64(11_000_000), amount) // now escalating by ten lakh
}
