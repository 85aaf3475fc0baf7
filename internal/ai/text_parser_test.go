package ai

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGenerator struct {
	reply string
	err   error
	calls int
	last  GenerateRequest
}

func (s *stubGenerator) Generate(ctx context.Context, req GenerateRequest) (string, error) {
	s.calls++
	s.last = req
	return s.reply, s.err
}

var (
	parserToday = time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	parserCats  = []CategoryOption{
		{Name: "Groceries", Icon: "🛒", Type: TypeExpense},
		{Name: "Other", Icon: "📦", Type: TypeExpense},
		{Name: "Salary", Icon: "💼", Type: TypeIncome},
	}
)

func TestTextParser_ShortTextSkipsModel(t *testing.T) {
	gen := &stubGenerator{}
	out, err := NewTextParser(gen).Parse(context.Background(), " hi ", parserCats, parserToday)
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Equal(t, 0, gen.calls)
}

func TestTextParser_Parse(t *testing.T) {
	gen := &stubGenerator{reply: "```json\n[" +
		`{"type":"expense","amount":250.555,"category_name":"groceries","description":"milk","date":"2025-06-14"},` +
		`{"type":"income","amount":"50000","category_name":"Salary","date":"2030-01-01"},` +
		`{"type":"expense","amount":10,"category_name":"Spaceships","date":"2020-01-01"},` +
		`{"type":"gift","amount":10,"category_name":"Other"},` +
		`{"type":"expense","amount":-5,"category_name":"Other"},` +
		`{"type":"expense","amount":5}` +
		"]\n```"}

	out, err := NewTextParser(gen).Parse(context.Background(), "milk 250.55 yesterday, salary 50000", parserCats, parserToday)
	require.NoError(t, err)
	require.Len(t, out, 3)

	assert.Equal(t, "Groceries", out[0].CategoryName)
	assert.Equal(t, "🛒", out[0].CategoryIcon)
	assert.True(t, out[0].Amount.Equal(decimal.RequireFromString("250.56")))
	assert.Equal(t, time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC), out[0].Date)

	assert.Equal(t, TypeIncome, out[1].Type)
	assert.Equal(t, parserToday, out[1].Date, "future dates become today")

	assert.Equal(t, "Other", out[2].CategoryName, "unknown categories fall back to the default of the type")
	assert.Equal(t, "📦", out[2].CategoryIcon)
	assert.Equal(t, parserToday, out[2].Date, "dates older than a year become today")

	assert.True(t, gen.last.JSON)
	assert.Contains(t, gen.last.Prompt, "Groceries, Other")
	assert.Contains(t, gen.last.Prompt, "Today is 2025-06-15")
}

func TestTextParser_UnknownIncomeCategory(t *testing.T) {
	gen := &stubGenerator{reply: `[{"type":"income","amount":700,"category_name":"Lottery"}]`}

	out, err := NewTextParser(gen).Parse(context.Background(), "won 700 in the lottery", parserCats, parserToday)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, DefaultIncomeCategory, out[0].CategoryName)
	assert.Empty(t, out[0].CategoryIcon, "no icon when the default is not among the options")
}

func TestTextParser_TruncatesDescription(t *testing.T) {
	long := strings.Repeat("я", 250)
	gen := &stubGenerator{reply: `[{"type":"expense","amount":1,"category_name":"Other","description":"` + long + `"}]`}

	out, err := NewTextParser(gen).Parse(context.Background(), "something long", parserCats, parserToday)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, 200, len([]rune(out[0].Description)))
}

func TestTextParser_BadJSON(t *testing.T) {
	gen := &stubGenerator{reply: "I could not find anything"}
	_, err := NewTextParser(gen).Parse(context.Background(), "hello there", parserCats, parserToday)
	assert.Error(t, err)
}
