package stats

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/finance-tracker/internal/auth"
	"github.com/carson-networks/finance-tracker/internal/handlers/v1/httperr"
	"github.com/carson-networks/finance-tracker/internal/service"
)

type MonthlyStats struct {
	Year     int     `json:"year"`
	Month    int     `json:"month"`
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
	Balance  float64 `json:"balance"`
	Count    int64   `json:"count"`
}

type CategoryStat struct {
	CategoryID   int64   `json:"category_id"`
	CategoryName string  `json:"category_name"`
	CategoryIcon string  `json:"category_icon"`
	Count        int64   `json:"count"`
	Total        float64 `json:"total"`
	Average      float64 `json:"average"`
}

type DailyTotal struct {
	Date  string  `json:"date" doc:"YYYY-MM-DD"`
	Total float64 `json:"total"`
	Count int64   `json:"count"`
}

type Dashboard struct {
	Income        float64        `json:"income"`
	Expenses      float64        `json:"expenses"`
	Balance       float64        `json:"balance"`
	Count         int64          `json:"count"`
	TopCategory   string         `json:"top_category" doc:"Largest expense category this month, or a dash"`
	CategoryStats []CategoryStat `json:"category_stats" doc:"Top five expense categories this month"`
}

type statsProvider interface {
	MonthlyStats(ctx context.Context, userID int64, year int, month int) (*service.MonthlyStats, error)
	CategoryStats(ctx context.Context, userID int64, txType service.TransactionType, start, end *time.Time) ([]service.CategoryStat, error)
	DailyTotals(ctx context.Context, userID int64, txType service.TransactionType, start, end *time.Time) ([]service.DailyTotal, error)
	Dashboard(ctx context.Context, userID int64) (*service.Dashboard, error)
}

// Handler serves the /api/stats endpoints.
type Handler struct {
	StatsService statsProvider
}

func NewHandler(svc statsProvider) *Handler {
	return &Handler{StatsService: svc}
}

func (h *Handler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-monthly-stats",
		Method:      http.MethodGet,
		Path:        "/api/stats/monthly",
		Summary:     "Monthly totals",
		Tags:        []string{"Stats"},
	}, h.monthly)
	huma.Register(api, huma.Operation{
		OperationID: "get-category-stats",
		Method:      http.MethodGet,
		Path:        "/api/stats/categories",
		Summary:     "Totals per category",
		Tags:        []string{"Stats"},
	}, h.categories)
	huma.Register(api, huma.Operation{
		OperationID: "get-daily-totals",
		Method:      http.MethodGet,
		Path:        "/api/stats/daily",
		Summary:     "Totals per day",
		Tags:        []string{"Stats"},
	}, h.daily)
	huma.Register(api, huma.Operation{
		OperationID: "get-dashboard",
		Method:      http.MethodGet,
		Path:        "/api/stats/dashboard",
		Summary:     "Current month summary",
		Tags:        []string{"Stats"},
	}, h.dashboard)
}

func toMonthlyStats(m *service.MonthlyStats) MonthlyStats {
	return MonthlyStats{
		Year:     m.Year,
		Month:    int(m.Month),
		Income:   m.Income.InexactFloat64(),
		Expenses: m.Expenses.InexactFloat64(),
		Balance:  m.Balance.InexactFloat64(),
		Count:    m.Count,
	}
}

func toCategoryStats(stats []service.CategoryStat) []CategoryStat {
	out := make([]CategoryStat, len(stats))
	for i, s := range stats {
		out[i] = CategoryStat{
			CategoryID:   s.CategoryID,
			CategoryName: s.Name,
			CategoryIcon: s.Icon,
			Count:        s.Count,
			Total:        s.Total.InexactFloat64(),
			Average:      s.Average.InexactFloat64(),
		}
	}
	return out
}

// RangeInput is shared by the category and daily endpoints.
type RangeInput struct {
	Type      string `query:"type" enum:"income,expense" doc:"Defaults to expense"`
	StartDate string `query:"start_date" doc:"Inclusive start date, YYYY-MM-DD"`
	EndDate   string `query:"end_date" doc:"Inclusive end date, YYYY-MM-DD"`
}

func (in *RangeInput) parse() (service.TransactionType, *time.Time, *time.Time, error) {
	var txType service.TransactionType
	if in.Type != "" {
		t, err := service.ParseTransactionType(in.Type)
		if err != nil {
			return "", nil, nil, err
		}
		txType = t
	}

	var start, end *time.Time
	if in.StartDate != "" {
		d, err := service.ParseDate(in.StartDate)
		if err != nil {
			return "", nil, nil, err
		}
		start = &d
	}
	if in.EndDate != "" {
		d, err := service.ParseDate(in.EndDate)
		if err != nil {
			return "", nil, nil, err
		}
		end = &d
	}
	return txType, start, end, nil
}

type MonthlyInput struct {
	Year  int `query:"year" doc:"Defaults to the current year"`
	Month int `query:"month" doc:"1-12, defaults to the current month"`
}

type MonthlyOutput struct {
	Body MonthlyStats
}

func (h *Handler) monthly(ctx context.Context, input *MonthlyInput) (*MonthlyOutput, error) {
	user, err := auth.RequireUser(ctx)
	if err != nil {
		return nil, err
	}
	stats, err := h.StatsService.MonthlyStats(ctx, user.ID, input.Year, input.Month)
	if err != nil {
		return nil, httperr.FromService(err, "failed to load monthly stats")
	}
	return &MonthlyOutput{Body: toMonthlyStats(stats)}, nil
}

type CategoriesOutput struct {
	Body []CategoryStat
}

func (h *Handler) categories(ctx context.Context, input *RangeInput) (*CategoriesOutput, error) {
	user, err := auth.RequireUser(ctx)
	if err != nil {
		return nil, err
	}
	txType, start, end, err := input.parse()
	if err != nil {
		return nil, httperr.FromService(err, "invalid query")
	}
	stats, err := h.StatsService.CategoryStats(ctx, user.ID, txType, start, end)
	if err != nil {
		return nil, httperr.FromService(err, "failed to load category stats")
	}
	return &CategoriesOutput{Body: toCategoryStats(stats)}, nil
}

type DailyOutput struct {
	Body []DailyTotal
}

func (h *Handler) daily(ctx context.Context, input *RangeInput) (*DailyOutput, error) {
	user, err := auth.RequireUser(ctx)
	if err != nil {
		return nil, err
	}
	txType, start, end, err := input.parse()
	if err != nil {
		return nil, httperr.FromService(err, "invalid query")
	}
	totals, err := h.StatsService.DailyTotals(ctx, user.ID, txType, start, end)
	if err != nil {
		return nil, httperr.FromService(err, "failed to load daily totals")
	}

	out := &DailyOutput{Body: make([]DailyTotal, len(totals))}
	for i, d := range totals {
		out.Body[i] = DailyTotal{
			Date:  d.Date.Format(service.DateLayout),
			Total: d.Total.InexactFloat64(),
			Count: d.Count,
		}
	}
	return out, nil
}

type DashboardOutput struct {
	Body Dashboard
}

func (h *Handler) dashboard(ctx context.Context, _ *struct{}) (*DashboardOutput, error) {
	user, err := auth.RequireUser(ctx)
	if err != nil {
		return nil, err
	}
	d, err := h.StatsService.Dashboard(ctx, user.ID)
	if err != nil {
		return nil, httperr.FromService(err, "failed to load dashboard")
	}

	month := toMonthlyStats(&d.Month)
	return &DashboardOutput{Body: Dashboard{
		Income:        month.Income,
		Expenses:      month.Expenses,
		Balance:       month.Balance,
		Count:         month.Count,
		TopCategory:   d.TopCategory,
		CategoryStats: toCategoryStats(d.CategoryStats),
	}}, nil
}
