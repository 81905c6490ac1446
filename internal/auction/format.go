package auction

import (
	"fmt"
	"math"
)

// FormatAmount renders an amount for display using Indian market
// conventions: values of one crore and above are shown as "₹X.XX Cr",
// smaller values as whole lakhs "₹XL".  Display only; stored amounts
// stay in the smallest unit.
func FormatAmount(amount int64) string {
	if amount >= crore {
		return fmt.Sprintf("₹%.2f Cr", float64(amount)/float64(crore))
	}
	lakhs := math.Round(float64(amount) / 100_000)
	return fmt.Sprintf("₹%.0fL", lakhs)
}
