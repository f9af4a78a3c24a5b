package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/centbook/centbook_backend/internal/core/domain"
	portsrepo "github.com/centbook/centbook_backend/internal/core/ports/repositories"
	portssvc "github.com/centbook/centbook_backend/internal/core/ports/services"
	"github.com/centbook/centbook_backend/internal/dto"
	"github.com/centbook/centbook_backend/internal/middleware"
)

// categoryService provides category CRUD scoped to the owning user.
type categoryService struct {
	categoryRepo portsrepo.CategoryRepository
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(categoryRepo portsrepo.CategoryRepository) portssvc.CategorySvcFacade {
	return &categoryService{categoryRepo: categoryRepo}
}

var _ portssvc.CategorySvcFacade = (*categoryService)(nil)

// CreateCategory creates a new category for the user.
func (s *categoryService) CreateCategory(ctx context.Context, ownerID string, req dto.CreateCategoryRequest) (*domain.Category, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now()
	category := domain.Category{
		CategoryID: uuid.NewString(),
		OwnerID:    ownerID,
		Name:       req.Name,
		Color:      req.Color,
		Icon:       req.Icon,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     ownerID,
			LastUpdatedAt: now,
			LastUpdatedBy: ownerID,
		},
	}

	if err := s.categoryRepo.SaveCategory(ctx, category); err != nil {
		logger.Error("Failed to save category", slog.String("error", err.Error()), slog.String("owner_id", ownerID))
		return nil, err
	}

	logger.Info("Category created", slog.String("category_id", category.CategoryID))
	return &category, nil
}

// GetCategoryByID retrieves a single category owned by the caller.
func (s *categoryService) GetCategoryByID(ctx context.Context, ownerID string, categoryID string) (*domain.Category, error) {
	return s.categoryRepo.FindCategoryByID(ctx, ownerID, categoryID)
}

// ListCategories retrieves all of the caller's categories.
func (s *categoryService) ListCategories(ctx context.Context, ownerID string) ([]domain.Category, error) {
	return s.categoryRepo.ListCategories(ctx, ownerID)
}

// UpdateCategory applies a partial update to a category.
func (s *categoryService) UpdateCategory(ctx context.Context, ownerID string, categoryID string, req dto.UpdateCategoryRequest) (*domain.Category, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	category, err := s.categoryRepo.FindCategoryByID(ctx, ownerID, categoryID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		category.Name = *req.Name
	}
	if req.Color != nil {
		category.Color = *req.Color
	}
	if req.Icon != nil {
		category.Icon = *req.Icon
	}
	category.LastUpdatedAt = time.Now()
	category.LastUpdatedBy = ownerID

	if err := s.categoryRepo.UpdateCategory(ctx, *category); err != nil {
		logger.Error("Failed to update category", slog.String("error", err.Error()), slog.String("category_id", categoryID))
		return nil, err
	}

	return category, nil
}

// DeleteCategory removes a category. Existing transactions keep their history;
// their category reference is cleared by the store.
func (s *categoryService) DeleteCategory(ctx context.Context, ownerID string, categoryID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.categoryRepo.DeleteCategory(ctx, ownerID, categoryID); err != nil {
		logger.Warn("Failed to delete category", slog.String("error", err.Error()), slog.String("category_id", categoryID))
		return err
	}

	logger.Info("Category deleted", slog.String("category_id", categoryID))
	return nil
}
