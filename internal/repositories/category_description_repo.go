package repositories

import (
	"context"
	"errors"

	"techmart/internal/common"
	"techmart/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type CategoryDescriptionRepository interface {
	Create(ctx context.Context, description *models.CategoryDescription) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.CategoryDescription, error)
	Update(ctx context.Context, description *models.CategoryDescription) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListBySubcategory(ctx context.Context, subcategoryID uuid.UUID) ([]*models.CategoryDescription, error)
}

type categoryDescriptionRepo struct {
	db Database
}

func NewCategoryDescriptionRepo(db Database) CategoryDescriptionRepository {
	return &categoryDescriptionRepo{db: db}
}

func scanCategoryDescription(row pgx.Row) (*models.CategoryDescription, error) {
	d := &models.CategoryDescription{}
	err := row.Scan(&d.ID, &d.SubcategoryID, &d.Title, &d.Description, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (r *categoryDescriptionRepo) Create(ctx context.Context, description *models.CategoryDescription) error {
	query := `
		INSERT INTO category_descriptions (id, subcategory_id, title, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, description.ID, description.SubcategoryID, description.Title, description.Description)
	return err
}

func (r *categoryDescriptionRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.CategoryDescription, error) {
	query := `SELECT id, subcategory_id, title, description, created_at, updated_at FROM category_descriptions WHERE id = $1`
	description, err := scanCategoryDescription(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.NotFoundf("category description %s", id)
	}
	return description, err
}

func (r *categoryDescriptionRepo) Update(ctx context.Context, description *models.CategoryDescription) error {
	query := `
		UPDATE category_descriptions
		SET subcategory_id = $1, title = $2, description = $3, updated_at = NOW()
		WHERE id = $4
	`
	_, err := r.db.Exec(ctx, query, description.SubcategoryID, description.Title, description.Description, description.ID)
	return err
}

func (r *categoryDescriptionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM category_descriptions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return common.NotFoundf("category description %s", id)
	}
	return nil
}

func (r *categoryDescriptionRepo) ListBySubcategory(ctx context.Context, subcategoryID uuid.UUID) ([]*models.CategoryDescription, error) {
	query := `
		SELECT id, subcategory_id, title, description, created_at, updated_at
		FROM category_descriptions
		WHERE subcategory_id = $1
		ORDER BY created_at ASC
	`
	rows, err := r.db.Query(ctx, query, subcategoryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var descriptions []*models.CategoryDescription
	for rows.Next() {
		description, err := scanCategoryDescription(rows)
		if err != nil {
			return nil, err
		}
		descriptions = append(descriptions, description)
	}
	return descriptions, rows.Err()
}
