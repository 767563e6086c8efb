package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"techmart/internal/common"
	"techmart/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	GetBySlug(ctx context.Context, slug string) (*models.Product, error)
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter *models.ProductFilter) ([]*models.Product, error)
	ListBySubcategory(ctx context.Context, subcategoryID uuid.UUID, activeOnly bool) ([]*models.Product, error)
	ExistsSlug(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error)
	MaxOrder(ctx context.Context, subcategoryID uuid.UUID) (int, error)
}

type productRepo struct {
	db Database
}

func NewProductRepo(db Database) ProductRepository {
	return &productRepo{db: db}
}

const productColumns = `id, subcategory_id, product_type, name, slug, series, image, msrp, price,
		stock, is_in_stock, mfr_part, vendor_part, unspsc, manufacturer, description,
		is_active, is_featured, display_order, created_at, updated_at`

func scanProduct(row pgx.Row) (*models.Product, error) {
	p := &models.Product{}
	err := row.Scan(&p.ID, &p.SubcategoryID, &p.ProductType, &p.Name, &p.Slug, &p.Series, &p.Image,
		&p.MSRP, &p.Price, &p.Stock, &p.IsInStock, &p.MfrPart, &p.VendorPart, &p.UNSPSC,
		&p.Manufacturer, &p.Description, &p.IsActive, &p.IsFeatured, &p.DisplayOrder,
		&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *productRepo) Create(ctx context.Context, product *models.Product) error {
	query := `
		INSERT INTO products (id, subcategory_id, product_type, name, slug, series, image, msrp, price,
			stock, is_in_stock, mfr_part, vendor_part, unspsc, manufacturer, description,
			is_active, is_featured, display_order, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, product.ID, product.SubcategoryID, product.ProductType,
		product.Name, product.Slug, product.Series, product.Image, product.MSRP, product.Price,
		product.Stock, product.IsInStock, product.MfrPart, product.VendorPart, product.UNSPSC,
		product.Manufacturer, product.Description, product.IsActive, product.IsFeatured, product.DisplayOrder)
	return err
}

func (r *productRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	product, err := scanProduct(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.NotFoundf("product %s", id)
	}
	return product, err
}

func (r *productRepo) GetBySlug(ctx context.Context, slug string) (*models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE slug = $1`
	product, err := scanProduct(r.db.QueryRow(ctx, query, slug))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.NotFoundf("product %q", slug)
	}
	return product, err
}

func (r *productRepo) Update(ctx context.Context, product *models.Product) error {
	query := `
		UPDATE products
		SET subcategory_id = $1, product_type = $2, name = $3, slug = $4, series = $5, image = $6,
			msrp = $7, price = $8, stock = $9, is_in_stock = $10, mfr_part = $11, vendor_part = $12,
			unspsc = $13, manufacturer = $14, description = $15, is_active = $16, is_featured = $17,
			display_order = $18, updated_at = NOW()
		WHERE id = $19
	`
	_, err := r.db.Exec(ctx, query, product.SubcategoryID, product.ProductType, product.Name,
		product.Slug, product.Series, product.Image, product.MSRP, product.Price, product.Stock,
		product.IsInStock, product.MfrPart, product.VendorPart, product.UNSPSC, product.Manufacturer,
		product.Description, product.IsActive, product.IsFeatured, product.DisplayOrder, product.ID)
	return err
}

func (r *productRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return common.NotFoundf("product %s", id)
	}
	return nil
}

// List applies the REST boundary's filters. Slug filters join up the
// hierarchy; search is a case-insensitive substring match against name,
// manufacturer and manufacturer part number.
func (r *productRepo) List(ctx context.Context, filter *models.ProductFilter) ([]*models.Product, error) {
	limit, offset := common.ValidatePaginationParams(filter.Limit, filter.Offset)

	var (
		conditions []string
		args       []interface{}
	)
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.IsActive != nil {
		conditions = append(conditions, "p.is_active = "+arg(*filter.IsActive))
	}
	if filter.IsFeatured != nil {
		conditions = append(conditions, "p.is_featured = "+arg(*filter.IsFeatured))
	}
	if filter.ProductType != "" {
		conditions = append(conditions, "p.product_type = "+arg(filter.ProductType))
	}
	if filter.SubcategorySlug != "" {
		conditions = append(conditions, "s.slug = "+arg(filter.SubcategorySlug))
	}
	if filter.CategorySlug != "" {
		conditions = append(conditions, "c.slug = "+arg(filter.CategorySlug))
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		placeholder := arg(pattern)
		conditions = append(conditions, fmt.Sprintf(
			"(p.name ILIKE %s OR p.manufacturer ILIKE %s OR p.mfr_part ILIKE %s)",
			placeholder, placeholder, placeholder))
	}

	query := `
		SELECT ` + prefixColumns("p", productColumns) + `
		FROM products p
		JOIN subcategories s ON s.id = p.subcategory_id
		JOIN categories c ON c.id = s.category_id
	`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += fmt.Sprintf(" ORDER BY p.display_order ASC, p.created_at DESC LIMIT %s OFFSET %s", arg(limit), arg(offset))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectProducts(rows)
}

func (r *productRepo) ListBySubcategory(ctx context.Context, subcategoryID uuid.UUID, activeOnly bool) ([]*models.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE subcategory_id = $1 AND ($2 = false OR is_active = true)
		ORDER BY display_order ASC, created_at DESC
	`
	rows, err := r.db.Query(ctx, query, subcategoryID, activeOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectProducts(rows)
}

func collectProducts(rows pgx.Rows) ([]*models.Product, error) {
	var products []*models.Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	return products, rows.Err()
}

func prefixColumns(alias, columns string) string {
	parts := strings.Split(columns, ",")
	for i, part := range parts {
		parts[i] = alias + "." + strings.TrimSpace(part)
	}
	return strings.Join(parts, ", ")
}

func (r *productRepo) ExistsSlug(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM products WHERE slug = $1 AND id <> $2)`
	err := r.db.QueryRow(ctx, query, slug, excludeID).Scan(&exists)
	return exists, err
}

func (r *productRepo) MaxOrder(ctx context.Context, subcategoryID uuid.UUID) (int, error) {
	var max int
	query := `SELECT COALESCE(MAX(display_order), 0) FROM products WHERE subcategory_id = $1`
	err := r.db.QueryRow(ctx, query, subcategoryID).Scan(&max)
	return max, err
}
