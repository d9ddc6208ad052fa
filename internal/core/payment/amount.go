package payment

import (
	"strconv"
	"strings"
)

// FormatAmount renders an amount the way receipts show it: shortest exact
// decimal with at least one fractional digit ("100.0", "12.5").
func FormatAmount(amount float64) string {
	s := strconv.FormatFloat(amount, 'f', -1, 64)
	if !strings.ContainsAny(s, ".NI") {
		s += ".0"
	}
	return s
}
