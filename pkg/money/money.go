package money

import (
	"strconv"
	"strings"
)

// ParsePrice converts a free-text retailer price into major currency units.
// A trailing "p" marks pence ("89p" -> 0.89); anything else is treated as
// pounds with currency symbols and noise stripped ("£1.99" -> 1.99).
// Unparseable input yields 0 rather than an error so a malformed upstream
// price never blocks adding an item to the basket.
func ParsePrice(text string) float64 {
	cleaned := strings.ToLower(strings.TrimSpace(text))
	pence := strings.HasSuffix(cleaned, "p")

	var b strings.Builder
	for _, r := range cleaned {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}

	value, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0
	}
	if pence {
		return value / 100
	}
	return value
}
