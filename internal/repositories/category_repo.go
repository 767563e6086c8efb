package repositories

import (
	"context"
	"errors"

	"techmart/internal/common"
	"techmart/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type CategoryRepository interface {
	Create(ctx context.Context, category *models.Category) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
	GetBySlug(ctx context.Context, slug string) (*models.Category, error)
	Update(ctx context.Context, category *models.Category) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, isActive *bool, limit, offset int) ([]*models.Category, error)
	ExistsSlug(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error)
	MaxOrder(ctx context.Context) (int, error)
}

type categoryRepo struct {
	db Database
}

func NewCategoryRepo(db Database) CategoryRepository {
	return &categoryRepo{db: db}
}

const categoryColumns = "id, name, slug, is_active, display_order, created_at, updated_at"

func scanCategory(row pgx.Row) (*models.Category, error) {
	c := &models.Category{}
	err := row.Scan(&c.ID, &c.Name, &c.Slug, &c.IsActive, &c.DisplayOrder, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *categoryRepo) Create(ctx context.Context, category *models.Category) error {
	query := `
		INSERT INTO categories (id, name, slug, is_active, display_order, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, category.ID, category.Name, category.Slug, category.IsActive, category.DisplayOrder)
	return err
}

func (r *categoryRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE id = $1`
	category, err := scanCategory(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.NotFoundf("category %s", id)
	}
	return category, err
}

func (r *categoryRepo) GetBySlug(ctx context.Context, slug string) (*models.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE slug = $1`
	category, err := scanCategory(r.db.QueryRow(ctx, query, slug))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.NotFoundf("category %q", slug)
	}
	return category, err
}

func (r *categoryRepo) Update(ctx context.Context, category *models.Category) error {
	query := `
		UPDATE categories
		SET name = $1, slug = $2, is_active = $3, display_order = $4, updated_at = NOW()
		WHERE id = $5
	`
	_, err := r.db.Exec(ctx, query, category.Name, category.Slug, category.IsActive, category.DisplayOrder, category.ID)
	return err
}

// Delete removes the category; subcategories, products and descriptions
// under it go with it through the schema's ON DELETE CASCADE constraints.
func (r *categoryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return common.NotFoundf("category %s", id)
	}
	return nil
}

// List returns categories, optionally filtered by is_active. A nil
// isActive means no visibility filter.
func (r *categoryRepo) List(ctx context.Context, isActive *bool, limit, offset int) ([]*models.Category, error) {
	query := `
		SELECT ` + categoryColumns + `
		FROM categories
		WHERE ($1::boolean IS NULL OR is_active = $1)
		ORDER BY display_order ASC, name ASC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, isActive, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []*models.Category
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}

func (r *categoryRepo) ExistsSlug(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM categories WHERE slug = $1 AND id <> $2)`
	err := r.db.QueryRow(ctx, query, slug, excludeID).Scan(&exists)
	return exists, err
}

func (r *categoryRepo) MaxOrder(ctx context.Context) (int, error) {
	var max int
	query := `SELECT COALESCE(MAX(display_order), 0) FROM categories`
	err := r.db.QueryRow(ctx, query).Scan(&max)
	return max, err
}
