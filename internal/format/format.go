// Package format renders money and dates for chat messages and AI prompts.
package format

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Amount renders 1500.5 as "1 500.50 ₽", grouping thousands with spaces.
func Amount(amount decimal.Decimal, symbol string) string {
	s := amount.StringFixed(2)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	whole, frac, _ := strings.Cut(s, ".")

	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}

	out := sign + b.String() + "." + frac
	if symbol != "" {
		out += " " + symbol
	}
	return out
}

// SignedAmount prefixes income with "+" and expenses with "−".
func SignedAmount(amount decimal.Decimal, income bool, symbol string) string {
	if income {
		return "+" + Amount(amount.Abs(), symbol)
	}
	return "−" + Amount(amount.Abs(), symbol)
}
