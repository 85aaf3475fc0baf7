package service

import (
	"context"
	"time"

	"github.com/carson-networks/finance-tracker/internal/storage"
)

const dashboardCategoryCount = 5

type StatsService struct {
	storage *storage.Storage
	clock   Clock
}

func NewStatsService(store *storage.Storage, clock Clock) *StatsService {
	return &StatsService{storage: store, clock: clock}
}

// MonthlyStats totals one calendar month. Zero year or month means the current one.
func (s *StatsService) MonthlyStats(ctx context.Context, userID int64, year int, month int) (*MonthlyStats, error) {
	today := s.clock.Today()
	if year == 0 {
		year = today.Year()
	}
	if month == 0 {
		month = int(today.Month())
	}
	if month < 1 || month > 12 {
		return nil, invalid("month", "must be between 1 and 12")
	}
	if year < 1900 || year > 9999 {
		return nil, invalid("year", "must be between 1900 and 9999")
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	totals, err := s.storage.Transactions.Totals(ctx, userID, start, endOfMonth(year, time.Month(month)))
	if err != nil {
		return nil, err
	}

	return &MonthlyStats{
		Year:     year,
		Month:    time.Month(month),
		Income:   totals.Income,
		Expenses: totals.Expenses,
		Balance:  totals.Income.Sub(totals.Expenses),
		Count:    totals.Count,
	}, nil
}

// CategoryStats defaults to expenses and to all time when no range is given.
func (s *StatsService) CategoryStats(ctx context.Context, userID int64, txType TransactionType, start, end *time.Time) ([]CategoryStat, error) {
	if txType == "" {
		txType = TransactionTypeExpense
	}
	if !txType.Valid() {
		return nil, invalid("type", "must be 'income' or 'expense'")
	}
	if err := validateRange(start, end); err != nil {
		return nil, err
	}

	rows, err := s.storage.Transactions.CategoryTotals(ctx, userID, txType, start, end)
	if err != nil {
		return nil, err
	}

	stats := make([]CategoryStat, len(rows))
	for i, row := range rows {
		stats[i] = CategoryStat{
			CategoryID: row.CategoryID,
			Name:       row.Name,
			Icon:       row.Icon,
			Count:      row.Count,
			Total:      row.Total,
			Average:    row.Average,
		}
	}
	return stats, nil
}

// DailyTotals defaults to the first of the current month through today.
func (s *StatsService) DailyTotals(ctx context.Context, userID int64, txType TransactionType, start, end *time.Time) ([]DailyTotal, error) {
	if txType == "" {
		txType = TransactionTypeExpense
	}
	if !txType.Valid() {
		return nil, invalid("type", "must be 'income' or 'expense'")
	}

	from, to := s.clock.StartOfMonth(), s.clock.Today()
	if start != nil {
		from = AsDate(*start)
	}
	if end != nil {
		to = AsDate(*end)
	}
	if err := validateRange(&from, &to); err != nil {
		return nil, err
	}

	rows, err := s.storage.Transactions.DailyTotals(ctx, userID, txType, from, to)
	if err != nil {
		return nil, err
	}

	totals := make([]DailyTotal, len(rows))
	for i, row := range rows {
		totals[i] = DailyTotal{Date: AsDate(row.Date), Total: row.Total, Count: row.Count}
	}
	return totals, nil
}

// Dashboard summarizes the current month for the home screen.
func (s *StatsService) Dashboard(ctx context.Context, userID int64) (*Dashboard, error) {
	month, err := s.MonthlyStats(ctx, userID, 0, 0)
	if err != nil {
		return nil, err
	}

	start, end := s.clock.StartOfMonth(), s.clock.Today()
	categories, err := s.CategoryStats(ctx, userID, TransactionTypeExpense, &start, &end)
	if err != nil {
		return nil, err
	}

	dashboard := &Dashboard{Month: *month, TopCategory: NoTopCategory}
	if len(categories) > 0 {
		dashboard.TopCategory = categories[0].Name
	}
	if len(categories) > dashboardCategoryCount {
		categories = categories[:dashboardCategoryCount]
	}
	dashboard.CategoryStats = categories

	return dashboard, nil
}
