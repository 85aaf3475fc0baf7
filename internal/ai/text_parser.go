package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

const (
	TypeIncome  = "income"
	TypeExpense = "expense"

	// Unknown category names fall back to these.
	DefaultExpenseCategory = "Other"
	DefaultIncomeCategory  = "Other income"

	dateLayout           = "2006-01-02"
	minTextLength        = 3
	maxDescriptionLength = 200
	maxDateAgeDays       = 365
)

var maxAmount = decimal.NewFromInt(1_000_000_000)

type CategoryOption struct {
	Name string
	Icon string
	Type string
}

type ParsedTransaction struct {
	Type         string
	Amount       decimal.Decimal
	CategoryName string
	CategoryIcon string
	Description  string
	Date         time.Time
}

// rawTransaction tolerates amounts sent as strings.
type rawTransaction struct {
	Type         string          `json:"type"`
	Amount       json.RawMessage `json:"amount"`
	CategoryName string          `json:"category_name"`
	Description  string          `json:"description"`
	Date         string          `json:"date"`
}

// TextParser turns free-form messages like "coffee 250" into transactions.
type TextParser struct {
	model Generator
}

func NewTextParser(model Generator) *TextParser {
	return &TextParser{model: model}
}

// Parse returns the valid transactions found in text. Invalid items are dropped, not reported.
func (p *TextParser) Parse(ctx context.Context, text string, categories []CategoryOption, today time.Time) ([]ParsedTransaction, error) {
	text = strings.TrimSpace(text)
	if utf8.RuneCountInString(text) < minTextLength {
		return nil, nil
	}

	raw, err := p.model.Generate(ctx, GenerateRequest{
		Prompt:      buildParsePrompt(text, categories, today),
		JSON:        true,
		Temperature: 0.1,
	})
	if err != nil {
		return nil, err
	}

	var items []rawTransaction
	if err := json.Unmarshal([]byte(cleanModelJSON(raw)), &items); err != nil {
		return nil, fmt.Errorf("ai.TextParser.Parse: decode model output: %w", err)
	}

	parsed := make([]ParsedTransaction, 0, len(items))
	for _, item := range items {
		tx, ok := normalize(item, categories, today)
		if ok {
			parsed = append(parsed, tx)
		}
	}
	return parsed, nil
}

func normalize(item rawTransaction, categories []CategoryOption, today time.Time) (ParsedTransaction, bool) {
	txType := strings.ToLower(strings.TrimSpace(item.Type))
	if txType != TypeIncome && txType != TypeExpense {
		return ParsedTransaction{}, false
	}

	amount, ok := parseAmount(item.Amount)
	if !ok {
		return ParsedTransaction{}, false
	}

	categoryName := strings.TrimSpace(item.CategoryName)
	if categoryName == "" {
		return ParsedTransaction{}, false
	}

	category, found := findCategory(categories, txType, categoryName)
	if !found {
		category, _ = findCategory(categories, txType, DefaultCategoryName(txType))
	}

	return ParsedTransaction{
		Type:         txType,
		Amount:       amount,
		CategoryName: category.Name,
		CategoryIcon: category.Icon,
		Description:  truncate(strings.TrimSpace(item.Description), maxDescriptionLength),
		Date:         normalizeDate(item.Date, today),
	}, true
}

func DefaultCategoryName(txType string) string {
	if txType == TypeIncome {
		return DefaultIncomeCategory
	}
	return DefaultExpenseCategory
}

// findCategory matches case-insensitively within txType. When nothing matches it returns name without an icon.
func findCategory(categories []CategoryOption, txType, name string) (CategoryOption, bool) {
	for _, c := range categories {
		if c.Type == txType && strings.EqualFold(c.Name, name) {
			return c, true
		}
	}
	return CategoryOption{Name: name, Type: txType}, false
}

func parseAmount(raw json.RawMessage) (decimal.Decimal, bool) {
	s := strings.Trim(strings.TrimSpace(string(raw)), `"`)
	amount, err := decimal.NewFromString(strings.ReplaceAll(s, ",", "."))
	if err != nil {
		return decimal.Zero, false
	}
	amount = amount.Round(2)
	if !amount.IsPositive() || amount.GreaterThan(maxAmount) {
		return decimal.Zero, false
	}
	return amount, true
}

// normalizeDate falls back to today for missing, malformed, future, or year-old dates.
func normalizeDate(s string, today time.Time) time.Time {
	d, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil || d.After(today) || d.Before(today.AddDate(0, 0, -maxDateAgeDays)) {
		return today
	}
	return d
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
