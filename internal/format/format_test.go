package format

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestAmount(t *testing.T) {
	cases := map[string]string{
		"0":           "0.00 ₽",
		"12.5":        "12.50 ₽",
		"999":         "999.00 ₽",
		"1500":        "1 500.00 ₽",
		"1234567.891": "1 234 567.89 ₽",
		"-25000":      "-25 000.00 ₽",
	}
	for in, want := range cases {
		assert.Equal(t, want, Amount(decimal.RequireFromString(in), "₽"), in)
	}
	assert.Equal(t, "1 000.00", Amount(decimal.NewFromInt(1000), ""))
}

func TestSignedAmount(t *testing.T) {
	assert.Equal(t, "+1 000.00 $", SignedAmount(decimal.NewFromInt(1000), true, "$"))
	assert.Equal(t, "−5.00 $", SignedAmount(decimal.NewFromInt(5), false, "$"))
}
