package auction

import (
	"testing"

	"github.com/peterldowns/testy/check"
)

func TestFormatAmount(t *testing.T) {
	cases := []struct {
		name   string
		amount int64
		want   string
	}{
		{"whole lakhs", 5_000_000, "₹50L"},
		{"single lakh", 500_000, "₹5L"},
		{"rounds to nearest lakh", 5_240_000, "₹52L"},
		{"exactly one crore switches unit", 10_000_000, "₹1.00 Cr"},
		{"whole crores", 20_000_000, "₹2.00 Cr"},
		{"fractional crores keep two decimals", 22_500_000, "₹2.25 Cr"},
		{"large amount", 125_000_000, "₹12.50 Cr"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			check.Equal(t, tc.want, FormatAmount(tc.amount))
		})
	}
}
