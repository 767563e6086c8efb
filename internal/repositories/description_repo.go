package repositories

import (
	"context"
	"errors"

	"techmart/internal/common"
	"techmart/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type DescriptionRepository interface {
	Create(ctx context.Context, block *models.DescriptionBlock) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.DescriptionBlock, error)
	Update(ctx context.Context, block *models.DescriptionBlock) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByProduct(ctx context.Context, productID uuid.UUID, activeOnly bool) ([]*models.DescriptionBlock, error)
	MaxOrder(ctx context.Context, productID uuid.UUID) (int, error)
}

type descriptionRepo struct {
	db Database
}

func NewDescriptionRepo(db Database) DescriptionRepository {
	return &descriptionRepo{db: db}
}

const descriptionColumns = "id, product_id, title, subtitle, is_active, display_order, created_at, updated_at"

func scanDescription(row pgx.Row) (*models.DescriptionBlock, error) {
	d := &models.DescriptionBlock{}
	err := row.Scan(&d.ID, &d.ProductID, &d.Title, &d.Subtitle, &d.IsActive, &d.DisplayOrder, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (r *descriptionRepo) Create(ctx context.Context, block *models.DescriptionBlock) error {
	query := `
		INSERT INTO product_descriptions (id, product_id, title, subtitle, is_active, display_order, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, block.ID, block.ProductID, block.Title, block.Subtitle, block.IsActive, block.DisplayOrder)
	return err
}

func (r *descriptionRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.DescriptionBlock, error) {
	query := `SELECT ` + descriptionColumns + ` FROM product_descriptions WHERE id = $1`
	block, err := scanDescription(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.NotFoundf("description %s", id)
	}
	return block, err
}

func (r *descriptionRepo) Update(ctx context.Context, block *models.DescriptionBlock) error {
	query := `
		UPDATE product_descriptions
		SET product_id = $1, title = $2, subtitle = $3, is_active = $4, display_order = $5, updated_at = NOW()
		WHERE id = $6
	`
	_, err := r.db.Exec(ctx, query, block.ProductID, block.Title, block.Subtitle, block.IsActive, block.DisplayOrder, block.ID)
	return err
}

func (r *descriptionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM product_descriptions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return common.NotFoundf("description %s", id)
	}
	return nil
}

func (r *descriptionRepo) ListByProduct(ctx context.Context, productID uuid.UUID, activeOnly bool) ([]*models.DescriptionBlock, error) {
	query := `
		SELECT ` + descriptionColumns + `
		FROM product_descriptions
		WHERE product_id = $1 AND ($2 = false OR is_active = true)
		ORDER BY display_order ASC, title ASC
	`
	rows, err := r.db.Query(ctx, query, productID, activeOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var blocks []*models.DescriptionBlock
	for rows.Next() {
		block, err := scanDescription(rows)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, block)
	}
	return blocks, rows.Err()
}

func (r *descriptionRepo) MaxOrder(ctx context.Context, productID uuid.UUID) (int, error) {
	var max int
	query := `SELECT COALESCE(MAX(display_order), 0) FROM product_descriptions WHERE product_id = $1`
	err := r.db.QueryRow(ctx, query, productID).Scan(&max)
	return max, err
}
