package service

import (
	"context"
	"strings"

	"github.com/carson-networks/finance-tracker/internal/storage"
	"github.com/carson-networks/finance-tracker/internal/storage/sqlconfig"
)

type CategoryService struct {
	storage *storage.Storage
}

func NewCategoryService(store *storage.Storage) *CategoryService {
	return &CategoryService{storage: store}
}

// ListCategories returns active categories ordered by id, optionally of one type.
func (s *CategoryService) ListCategories(ctx context.Context, categoryType *TransactionType) ([]Category, error) {
	if categoryType != nil && !categoryType.Valid() {
		return nil, invalid("type", "must be 'income' or 'expense'")
	}

	rows, err := s.storage.Categories.List(ctx, &sqlconfig.CategoryFilter{Type: categoryType, ActiveOnly: true})
	if err != nil {
		return nil, err
	}

	categories := make([]Category, len(rows))
	for i, row := range rows {
		categories[i] = categoryFromRow(row)
	}
	return categories, nil
}

// ResolveByName matches name case-insensitively within the type and falls back to the type's default.
func (s *CategoryService) ResolveByName(ctx context.Context, name string, categoryType TransactionType) (*Category, error) {
	if !categoryType.Valid() {
		return nil, invalid("type", "must be 'income' or 'expense'")
	}

	if name = strings.TrimSpace(name); name != "" {
		row, err := s.storage.Categories.FindByName(ctx, name, categoryType)
		if err != nil {
			return nil, err
		}
		if row != nil && row.IsActive {
			category := categoryFromRow(row)
			return &category, nil
		}
	}

	row, err := s.storage.Categories.FindByName(ctx, DefaultCategoryName(categoryType), categoryType)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, ErrNotFound
	}
	category := categoryFromRow(row)
	return &category, nil
}
