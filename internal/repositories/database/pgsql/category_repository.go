package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/centbook/centbook_backend/internal/apperrors"
	"github.com/centbook/centbook_backend/internal/core/domain"
	portsrepo "github.com/centbook/centbook_backend/internal/core/ports/repositories"
	"github.com/centbook/centbook_backend/internal/models"
	"github.com/centbook/centbook_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxCategoryRepository struct {
	pool *pgxpool.Pool
}

// newPgxCategoryRepository creates a new repository for category data.
func newPgxCategoryRepository(pool *pgxpool.Pool) portsrepo.CategoryRepository {
	return &PgxCategoryRepository{pool: pool}
}

var _ portsrepo.CategoryRepository = (*PgxCategoryRepository)(nil)

const categoryColumns = `category_id, owner_id, name, color, icon, created_at, created_by, last_updated_at, last_updated_by`

func scanCategoryRow(row pgx.Row) (models.Category, error) {
	var m models.Category
	err := row.Scan(
		&m.CategoryID,
		&m.OwnerID,
		&m.Name,
		&m.Color,
		&m.Icon,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveCategory inserts a new category.
func (r *PgxCategoryRepository) SaveCategory(ctx context.Context, category domain.Category) error {
	m := mapping.ToModelCategory(category)

	query := `
		INSERT INTO categories (category_id, owner_id, name, color, icon, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.pool.Exec(ctx, query,
		m.CategoryID,
		m.OwnerID,
		m.Name,
		m.Color,
		m.Icon,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: category with ID %s already exists", apperrors.ErrDuplicate, m.CategoryID)
		}
		return fmt.Errorf("failed to save category %s: %w", m.CategoryID, err)
	}
	return nil
}

// FindCategoryByID retrieves a category by ID, scoped to its owner.
func (r *PgxCategoryRepository) FindCategoryByID(ctx context.Context, ownerID string, categoryID string) (*domain.Category, error) {
	query := `
		SELECT ` + categoryColumns + `
		FROM categories
		WHERE category_id = $1 AND owner_id = $2;
	`
	m, err := scanCategoryRow(r.pool.QueryRow(ctx, query, categoryID, ownerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find category by ID %s: %w", categoryID, err)
	}

	d := mapping.ToDomainCategory(m)
	return &d, nil
}

// ListCategories retrieves all categories belonging to a user, ordered by name.
func (r *PgxCategoryRepository) ListCategories(ctx context.Context, ownerID string) ([]domain.Category, error) {
	query := `
		SELECT ` + categoryColumns + `
		FROM categories
		WHERE owner_id = $1
		ORDER BY name;
	`

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories for owner %s: %w", ownerID, err)
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		m, err := scanCategoryRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan category row for owner %s: %w", ownerID, err)
		}
		categories = append(categories, m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating category rows for owner %s: %w", ownerID, rows.Err())
	}

	return mapping.ToDomainCategorySlice(categories), nil
}

// UpdateCategory updates the mutable fields of an existing category.
func (r *PgxCategoryRepository) UpdateCategory(ctx context.Context, category domain.Category) error {
	m := mapping.ToModelCategory(category)

	query := `
		UPDATE categories
		SET name = $3, color = $4, icon = $5, last_updated_at = $6, last_updated_by = $7
		WHERE category_id = $1 AND owner_id = $2;
	`
	cmdTag, err := r.pool.Exec(ctx, query,
		m.CategoryID,
		m.OwnerID,
		m.Name,
		m.Color,
		m.Icon,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to execute update category %s: %w", m.CategoryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteCategory removes a category row. Transactions referencing the category
// keep their category_id; the FK is ON DELETE SET NULL so history survives.
func (r *PgxCategoryRepository) DeleteCategory(ctx context.Context, ownerID string, categoryID string) error {
	query := `
		DELETE FROM categories
		WHERE category_id = $1 AND owner_id = $2;
	`
	cmdTag, err := r.pool.Exec(ctx, query, categoryID, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete category %s: %w", categoryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
