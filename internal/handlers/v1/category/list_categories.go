package category

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/finance-tracker/internal/auth"
	"github.com/carson-networks/finance-tracker/internal/handlers/v1/httperr"
	"github.com/carson-networks/finance-tracker/internal/service"
)

// Category is the API response model for a category.
type Category struct {
	ID       int64  `json:"id" doc:"Category id"`
	Name     string `json:"name" doc:"Display name"`
	Icon     string `json:"icon" doc:"Emoji icon"`
	Type     string `json:"type" enum:"income,expense" doc:"Transaction type the category applies to"`
	IsActive bool   `json:"is_active" doc:"Inactive categories cannot be used for new transactions"`
}

type ListCategoriesInput struct {
	Type string `query:"type" enum:"income,expense" doc:"Only categories of this type"`
}

type ListCategoriesOutput struct {
	Body struct {
		Categories []Category `json:"categories"`
	}
}

type categoryLister interface {
	ListCategories(ctx context.Context, categoryType *service.TransactionType) ([]service.Category, error)
}

// ListCategoriesHandler handles GET /api/categories.
type ListCategoriesHandler struct {
	CategoryService categoryLister
}

func NewListCategoriesHandler(svc categoryLister) *ListCategoriesHandler {
	return &ListCategoriesHandler{CategoryService: svc}
}

func (h *ListCategoriesHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-categories",
		Method:      http.MethodGet,
		Path:        "/api/categories",
		Summary:     "List categories",
		Description: "Returns active categories ordered by id.",
		Tags:        []string{"Categories"},
	}, h.handle)
}

func (h *ListCategoriesHandler) handle(ctx context.Context, input *ListCategoriesInput) (*ListCategoriesOutput, error) {
	if _, err := auth.RequireUser(ctx); err != nil {
		return nil, err
	}

	var categoryType *service.TransactionType
	if input.Type != "" {
		t, err := service.ParseTransactionType(input.Type)
		if err != nil {
			return nil, httperr.FromService(err, "invalid type")
		}
		categoryType = &t
	}

	categories, err := h.CategoryService.ListCategories(ctx, categoryType)
	if err != nil {
		return nil, httperr.FromService(err, "failed to list categories")
	}

	out := &ListCategoriesOutput{}
	out.Body.Categories = make([]Category, len(categories))
	for i, c := range categories {
		out.Body.Categories[i] = Category{
			ID:       c.ID,
			Name:     c.Name,
			Icon:     c.Icon,
			Type:     string(c.Type),
			IsActive: c.IsActive,
		}
	}
	return out, nil
}
