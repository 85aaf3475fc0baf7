package service

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

const (
	MaxDescriptionLength = 200
	maxDateAgeYears      = 10
	DateLayout           = "2006-01-02"
)

var MaxAmount = decimal.NewFromInt(1_000_000_000)

func ParseTransactionType(s string) (TransactionType, error) {
	t := TransactionType(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", invalid("type", "must be 'income' or 'expense'")
	}
	return t, nil
}

// NormalizeAmount rounds to cents and enforces 0 < amount <= MaxAmount.
func NormalizeAmount(amount decimal.Decimal) (decimal.Decimal, error) {
	rounded := amount.Round(2)
	if !rounded.IsPositive() {
		return decimal.Zero, invalid("amount", "must be greater than zero")
	}
	if rounded.GreaterThan(MaxAmount) {
		return decimal.Zero, invalid("amount", "must not exceed %s", MaxAmount.String())
	}
	return rounded, nil
}

// ParseAmount accepts user-typed amounts such as "1 500,50 ₽".
func ParseAmount(s string) (decimal.Decimal, error) {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r == '.':
			b.WriteRune(r)
		case r == ',':
			b.WriteRune('.')
		}
	}
	amount, err := decimal.NewFromString(b.String())
	if err != nil {
		return decimal.Zero, invalid("amount", "%q is not a number", s)
	}
	return NormalizeAmount(amount)
}

func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, invalid("date", "must be in YYYY-MM-DD format")
	}
	return d, nil
}

// validateDate rejects future dates and dates more than ten years back.
func validateDate(date, today time.Time) error {
	date = AsDate(date)
	if date.After(today) {
		return invalid("date", "must not be in the future")
	}
	if date.Before(today.AddDate(-maxDateAgeYears, 0, 0)) {
		return invalid("date", "must not be more than %d years ago", maxDateAgeYears)
	}
	return nil
}

func normalizeDescription(s string) (string, error) {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) > MaxDescriptionLength {
		return "", invalid("description", "must be at most %d characters", MaxDescriptionLength)
	}
	return s, nil
}

func validateRange(start, end *time.Time) error {
	if start != nil && end != nil && start.After(*end) {
		return invalid("start_date", "must not be after end_date")
	}
	return nil
}
