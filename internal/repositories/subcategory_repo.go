package repositories

import (
	"context"
	"errors"

	"techmart/internal/common"
	"techmart/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type SubcategoryRepository interface {
	Create(ctx context.Context, subcategory *models.Subcategory) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Subcategory, error)
	GetBySlug(ctx context.Context, slug string) (*models.Subcategory, error)
	Update(ctx context.Context, subcategory *models.Subcategory) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, isActive *bool, limit, offset int) ([]*models.Subcategory, error)
	ListByCategory(ctx context.Context, categoryID uuid.UUID, activeOnly bool) ([]*models.Subcategory, error)
	ExistsSlug(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error)
	MaxOrder(ctx context.Context, categoryID uuid.UUID) (int, error)
}

type subcategoryRepo struct {
	db Database
}

func NewSubcategoryRepo(db Database) SubcategoryRepository {
	return &subcategoryRepo{db: db}
}

const subcategoryColumns = "id, category_id, name, slug, is_active, display_order, created_at, updated_at"

func scanSubcategory(row pgx.Row) (*models.Subcategory, error) {
	s := &models.Subcategory{}
	err := row.Scan(&s.ID, &s.CategoryID, &s.Name, &s.Slug, &s.IsActive, &s.DisplayOrder, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *subcategoryRepo) Create(ctx context.Context, subcategory *models.Subcategory) error {
	query := `
		INSERT INTO subcategories (id, category_id, name, slug, is_active, display_order, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, subcategory.ID, subcategory.CategoryID, subcategory.Name,
		subcategory.Slug, subcategory.IsActive, subcategory.DisplayOrder)
	return err
}

func (r *subcategoryRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Subcategory, error) {
	query := `SELECT ` + subcategoryColumns + ` FROM subcategories WHERE id = $1`
	subcategory, err := scanSubcategory(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.NotFoundf("subcategory %s", id)
	}
	return subcategory, err
}

func (r *subcategoryRepo) GetBySlug(ctx context.Context, slug string) (*models.Subcategory, error) {
	query := `SELECT ` + subcategoryColumns + ` FROM subcategories WHERE slug = $1`
	subcategory, err := scanSubcategory(r.db.QueryRow(ctx, query, slug))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.NotFoundf("subcategory %q", slug)
	}
	return subcategory, err
}

func (r *subcategoryRepo) Update(ctx context.Context, subcategory *models.Subcategory) error {
	query := `
		UPDATE subcategories
		SET category_id = $1, name = $2, slug = $3, is_active = $4, display_order = $5, updated_at = NOW()
		WHERE id = $6
	`
	_, err := r.db.Exec(ctx, query, subcategory.CategoryID, subcategory.Name, subcategory.Slug,
		subcategory.IsActive, subcategory.DisplayOrder, subcategory.ID)
	return err
}

func (r *subcategoryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM subcategories WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return common.NotFoundf("subcategory %s", id)
	}
	return nil
}

// List returns subcategories across all categories, optionally filtered
// by is_active. A nil isActive means no visibility filter.
func (r *subcategoryRepo) List(ctx context.Context, isActive *bool, limit, offset int) ([]*models.Subcategory, error) {
	query := `
		SELECT ` + subcategoryColumns + `
		FROM subcategories
		WHERE ($1::boolean IS NULL OR is_active = $1)
		ORDER BY display_order ASC, name ASC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, isActive, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectSubcategories(rows)
}

func (r *subcategoryRepo) ListByCategory(ctx context.Context, categoryID uuid.UUID, activeOnly bool) ([]*models.Subcategory, error) {
	query := `
		SELECT ` + subcategoryColumns + `
		FROM subcategories
		WHERE category_id = $1 AND ($2 = false OR is_active = true)
		ORDER BY display_order ASC, name ASC
	`
	rows, err := r.db.Query(ctx, query, categoryID, activeOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectSubcategories(rows)
}

func collectSubcategories(rows pgx.Rows) ([]*models.Subcategory, error) {
	var subcategories []*models.Subcategory
	for rows.Next() {
		subcategory, err := scanSubcategory(rows)
		if err != nil {
			return nil, err
		}
		subcategories = append(subcategories, subcategory)
	}
	return subcategories, rows.Err()
}

func (r *subcategoryRepo) ExistsSlug(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM subcategories WHERE slug = $1 AND id <> $2)`
	err := r.db.QueryRow(ctx, query, slug, excludeID).Scan(&exists)
	return exists, err
}

func (r *subcategoryRepo) MaxOrder(ctx context.Context, categoryID uuid.UUID) (int, error) {
	var max int
	query := `SELECT COALESCE(MAX(display_order), 0) FROM subcategories WHERE category_id = $1`
	err := r.db.QueryRow(ctx, query, categoryID).Scan(&max)
	return max, err
}
