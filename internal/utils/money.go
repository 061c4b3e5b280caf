package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatINR keeps consistent two-decimal formatting for currency fields.
func FormatINR(amount float64) string {
	return fmt.Sprintf("₹%.2f", amount)
}

// FormatINRPlain renders the amount the way the fare summary shows base
// fares: no forced decimals, so whole-rupee values stay whole.
func FormatINRPlain(amount float64) string {
	return "₹" + strconv.FormatFloat(amount, 'f', -1, 64)
}

// ParseINR extracts a numeric amount from a display string such as
// "₹1,575.00". Used when a stored draft total has to feed a payment link.
func ParseINR(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "₹")
	replacer := strings.NewReplacer(",", "", " ", "")
	s = replacer.Replace(s)
	if s == "" {
		return 0, fmt.Errorf("invalid rupee amount")
	}
	return strconv.ParseFloat(s, 64)
}
