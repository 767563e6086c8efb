package repositories

import (
	"context"
	"errors"

	"techmart/internal/common"
	"techmart/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type DescriptionRowRepository interface {
	Create(ctx context.Context, row *models.DescriptionRow) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.DescriptionRow, error)
	Update(ctx context.Context, row *models.DescriptionRow) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByDescription(ctx context.Context, descriptionID uuid.UUID) ([]*models.DescriptionRow, error)
	MaxOrder(ctx context.Context, descriptionID uuid.UUID) (int, error)
}

type descriptionRowRepo struct {
	db Database
}

func NewDescriptionRowRepo(db Database) DescriptionRowRepository {
	return &descriptionRowRepo{db: db}
}

func scanDescriptionRow(row pgx.Row) (*models.DescriptionRow, error) {
	dr := &models.DescriptionRow{}
	err := row.Scan(&dr.ID, &dr.DescriptionID, &dr.Key, &dr.Value, &dr.DisplayOrder)
	if err != nil {
		return nil, err
	}
	return dr, nil
}

func (r *descriptionRowRepo) Create(ctx context.Context, row *models.DescriptionRow) error {
	query := `
		INSERT INTO product_description_rows (id, description_id, key, value, display_order)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.Exec(ctx, query, row.ID, row.DescriptionID, row.Key, row.Value, row.DisplayOrder)
	return err
}

func (r *descriptionRowRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.DescriptionRow, error) {
	query := `SELECT id, description_id, key, value, display_order FROM product_description_rows WHERE id = $1`
	row, err := scanDescriptionRow(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.NotFoundf("description row %s", id)
	}
	return row, err
}

func (r *descriptionRowRepo) Update(ctx context.Context, row *models.DescriptionRow) error {
	query := `
		UPDATE product_description_rows
		SET description_id = $1, key = $2, value = $3, display_order = $4
		WHERE id = $5
	`
	_, err := r.db.Exec(ctx, query, row.DescriptionID, row.Key, row.Value, row.DisplayOrder, row.ID)
	return err
}

func (r *descriptionRowRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM product_description_rows WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return common.NotFoundf("description row %s", id)
	}
	return nil
}

func (r *descriptionRowRepo) ListByDescription(ctx context.Context, descriptionID uuid.UUID) ([]*models.DescriptionRow, error) {
	query := `
		SELECT id, description_id, key, value, display_order
		FROM product_description_rows
		WHERE description_id = $1
		ORDER BY display_order ASC, id ASC
	`
	rows, err := r.db.Query(ctx, query, descriptionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var descriptionRows []*models.DescriptionRow
	for rows.Next() {
		row, err := scanDescriptionRow(rows)
		if err != nil {
			return nil, err
		}
		descriptionRows = append(descriptionRows, row)
	}
	return descriptionRows, rows.Err()
}

func (r *descriptionRowRepo) MaxOrder(ctx context.Context, descriptionID uuid.UUID) (int, error) {
	var max int
	query := `SELECT COALESCE(MAX(display_order), 0) FROM product_description_rows WHERE description_id = $1`
	err := r.db.QueryRow(ctx, query, descriptionID).Scan(&max)
	return max, err
}
