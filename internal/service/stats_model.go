package service

import (
	"time"

	"github.com/shopspring/decimal"
)

type MonthlyStats struct {
	Year     int
	Month    time.Month
	Income   decimal.Decimal
	Expenses decimal.Decimal
	Balance  decimal.Decimal
	Count    int64
}

type CategoryStat struct {
	CategoryID int64
	Name       string
	Icon       string
	Count      int64
	Total      decimal.Decimal
	Average    decimal.Decimal
}

type DailyTotal struct {
	Date  time.Time
	Total decimal.Decimal
	Count int64
}

// NoTopCategory is shown when the month has no categorized expenses.
const NoTopCategory = "—"

type Dashboard struct {
	Month         MonthlyStats
	TopCategory   string
	CategoryStats []CategoryStat
}
