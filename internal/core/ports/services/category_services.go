package services

import (
	"context"

	"github.com/centbook/centbook_backend/internal/core/domain"
	"github.com/centbook/centbook_backend/internal/dto"
)

// CategorySvcFacade defines category CRUD, scoped to the owning user.
type CategorySvcFacade interface {
	CreateCategory(ctx context.Context, ownerID string, req dto.CreateCategoryRequest) (*domain.Category, error)
	GetCategoryByID(ctx context.Context, ownerID string, categoryID string) (*domain.Category, error)
	ListCategories(ctx context.Context, ownerID string) ([]domain.Category, error)
	UpdateCategory(ctx context.Context, ownerID string, categoryID string, req dto.UpdateCategoryRequest) (*domain.Category, error)
	DeleteCategory(ctx context.Context, ownerID string, categoryID string) error
}
