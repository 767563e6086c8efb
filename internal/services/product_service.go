package services

import (
	"context"
	"log"

	"techmart/internal/common"
	"techmart/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductInput is the create payload for a product.
type ProductInput struct {
	SubcategoryID uuid.UUID       `json:"subcategory_id"`
	ProductType   string          `json:"product_type"`
	Name          string          `json:"name"`
	Slug          string          `json:"slug"`
	Series        *string         `json:"series"`
	Image         *string         `json:"image"`
	MSRP          decimal.Decimal `json:"msrp"`
	Price         decimal.Decimal `json:"price"`
	Stock         *int            `json:"stock"`
	IsInStock     *bool           `json:"is_in_stock"`
	MfrPart       *string         `json:"mfr_part"`
	VendorPart    *string         `json:"vendor_part"`
	UNSPSC        *string         `json:"unspsc"`
	Manufacturer  *string         `json:"manufacturer"`
	Description   string          `json:"description"`
	IsActive      *bool           `json:"is_active"`
	IsFeatured    *bool           `json:"is_featured"`
	DisplayOrder  int             `json:"display_order"`
}

// ProductUpdate is the partial update payload for a product.
type ProductUpdate struct {
	SubcategoryID *uuid.UUID       `json:"subcategory_id"`
	ProductType   *string          `json:"product_type"`
	Name          *string          `json:"name"`
	Slug          *string          `json:"slug"`
	Series        *string          `json:"series"`
	Image         *string          `json:"image"`
	MSRP          *decimal.Decimal `json:"msrp"`
	Price         *decimal.Decimal `json:"price"`
	Stock         *int             `json:"stock"`
	IsInStock     *bool            `json:"is_in_stock"`
	MfrPart       *string          `json:"mfr_part"`
	VendorPart    *string          `json:"vendor_part"`
	UNSPSC        *string          `json:"unspsc"`
	Manufacturer  *string          `json:"manufacturer"`
	Description   *string          `json:"description"`
	IsActive      *bool            `json:"is_active"`
	IsFeatured    *bool            `json:"is_featured"`
	DisplayOrder  *int             `json:"display_order"`
}

func (s *catalogService) CreateProduct(ctx context.Context, in *ProductInput) (*models.Product, error) {
	if _, err := s.subcategoryRepo.GetByID(ctx, in.SubcategoryID); err != nil {
		return nil, err
	}
	if in.ProductType == "" {
		in.ProductType = models.ProductTypeHardware
	}
	if !models.ValidProductType(in.ProductType) {
		return nil, common.Validationf("product_type %q must be hardware or software", in.ProductType)
	}
	if err := validatePricing(in.Price, in.MSRP); err != nil {
		return nil, err
	}

	product := &models.Product{
		ID:            uuid.New(),
		SubcategoryID: in.SubcategoryID,
		ProductType:   in.ProductType,
		Name:          in.Name,
		Series:        in.Series,
		Image:         in.Image,
		MSRP:          in.MSRP,
		Price:         in.Price,
		Stock:         100,
		IsInStock:     true,
		MfrPart:       in.MfrPart,
		VendorPart:    in.VendorPart,
		UNSPSC:        in.UNSPSC,
		Manufacturer:  in.Manufacturer,
		Description:   in.Description,
		IsActive:      true,
		IsFeatured:    false,
	}
	if in.Stock != nil {
		product.Stock = *in.Stock
	}
	if in.IsInStock != nil {
		product.IsInStock = *in.IsInStock
	}
	if in.IsActive != nil {
		product.IsActive = *in.IsActive
	}
	if in.IsFeatured != nil {
		product.IsFeatured = *in.IsFeatured
	}

	order, err := AllocateOrder(ctx, func(ctx context.Context) (int, error) {
		return s.productRepo.MaxOrder(ctx, in.SubcategoryID)
	}, in.DisplayOrder)
	if err != nil {
		return nil, err
	}
	product.DisplayOrder = order

	for attempt := 0; attempt < slugRetryAttempts; attempt++ {
		if in.Slug != "" {
			product.Slug = in.Slug
		} else {
			slug, err := AllocateSlug(ctx, s.productRepo, in.Name, uuid.Nil)
			if err != nil {
				return nil, err
			}
			product.Slug = slug
		}

		err := s.productRepo.Create(ctx, product)
		if err == nil {
			s.invalidateViews(ctx)
			return product, nil
		}
		if !isUniqueViolation(err) {
			return nil, err
		}
		if in.Slug != "" {
			return nil, common.Conflictf("product slug %q already exists", in.Slug)
		}
	}
	return nil, common.Conflictf("product slug allocation for %q", in.Name)
}

func (s *catalogService) UpdateProduct(ctx context.Context, slug string, in *ProductUpdate) (*models.Product, error) {
	product, err := s.productRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	if in.SubcategoryID != nil && *in.SubcategoryID != product.SubcategoryID {
		if _, err := s.subcategoryRepo.GetByID(ctx, *in.SubcategoryID); err != nil {
			return nil, err
		}
		product.SubcategoryID = *in.SubcategoryID
	}
	if in.ProductType != nil {
		if !models.ValidProductType(*in.ProductType) {
			return nil, common.Validationf("product_type %q must be hardware or software", *in.ProductType)
		}
		product.ProductType = *in.ProductType
	}

	nameChanged := in.Name != nil && *in.Name != product.Name
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Series != nil {
		product.Series = in.Series
	}
	if in.Image != nil {
		product.Image = in.Image
	}
	if in.MSRP != nil {
		product.MSRP = *in.MSRP
	}
	if in.Price != nil {
		product.Price = *in.Price
	}
	if err := validatePricing(product.Price, product.MSRP); err != nil {
		return nil, err
	}
	if in.Stock != nil {
		product.Stock = *in.Stock
	}
	if in.IsInStock != nil {
		product.IsInStock = *in.IsInStock
	}
	if in.MfrPart != nil {
		product.MfrPart = in.MfrPart
	}
	if in.VendorPart != nil {
		product.VendorPart = in.VendorPart
	}
	if in.UNSPSC != nil {
		product.UNSPSC = in.UNSPSC
	}
	if in.Manufacturer != nil {
		product.Manufacturer = in.Manufacturer
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.IsActive != nil {
		product.IsActive = *in.IsActive
	}
	if in.IsFeatured != nil {
		product.IsFeatured = *in.IsFeatured
	}
	if in.DisplayOrder != nil {
		order, err := AllocateOrder(ctx, func(ctx context.Context) (int, error) {
			return s.productRepo.MaxOrder(ctx, product.SubcategoryID)
		}, *in.DisplayOrder)
		if err != nil {
			return nil, err
		}
		product.DisplayOrder = order
	}

	switch {
	case in.Slug != nil && *in.Slug != product.Slug:
		exists, err := s.productRepo.ExistsSlug(ctx, *in.Slug, product.ID)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, common.Conflictf("product slug %q already exists", *in.Slug)
		}
		product.Slug = *in.Slug
	case in.Slug == nil && nameChanged:
		newSlug, err := AllocateSlug(ctx, s.productRepo, product.Name, product.ID)
		if err != nil {
			return nil, err
		}
		product.Slug = newSlug
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		if isUniqueViolation(err) {
			return nil, common.Conflictf("product slug %q already exists", product.Slug)
		}
		return nil, err
	}
	s.invalidateProduct(ctx, slug, product.Slug)
	return product, nil
}

func (s *catalogService) DeleteProduct(ctx context.Context, slug string) error {
	product, err := s.productRepo.GetBySlug(ctx, slug)
	if err != nil {
		return err
	}
	if err := s.productRepo.Delete(ctx, product.ID); err != nil {
		return err
	}
	s.invalidateProduct(ctx, slug, product.Slug)
	return nil
}

// invalidateProduct drops the cached detail view under both the pre- and
// post-update slug, then the materialized trees that embedded it.
func (s *catalogService) invalidateProduct(ctx context.Context, oldSlug, newSlug string) {
	if err := s.cacheService.DeleteProductView(ctx, oldSlug); err != nil {
		log.Printf("Failed to invalidate product view %q: %v", oldSlug, err)
	}
	if newSlug != oldSlug {
		if err := s.cacheService.DeleteProductView(ctx, newSlug); err != nil {
			log.Printf("Failed to invalidate product view %q: %v", newSlug, err)
		}
	}
	s.invalidateViews(ctx)
}

func (s *catalogService) ListProducts(ctx context.Context, filter *models.ProductFilter) ([]*models.Product, error) {
	if filter.ProductType != "" && !models.ValidProductType(filter.ProductType) {
		return nil, common.Validationf("type %q must be hardware or software", filter.ProductType)
	}
	return s.productRepo.List(ctx, filter)
}

func (s *catalogService) GetProduct(ctx context.Context, slug string) (*models.ProductView, error) {
	return s.materializer.ProductBySlug(ctx, slug)
}

// DescriptionInput is the create payload for a product description block.
type DescriptionInput struct {
	ProductID    uuid.UUID `json:"product_id"`
	Title        string    `json:"title"`
	Subtitle     *string   `json:"subtitle"`
	IsActive     *bool     `json:"is_active"`
	DisplayOrder int       `json:"display_order"`
}

// DescriptionUpdate is the partial update payload for a description block.
type DescriptionUpdate struct {
	Title        *string `json:"title"`
	Subtitle     *string `json:"subtitle"`
	IsActive     *bool   `json:"is_active"`
	DisplayOrder *int    `json:"display_order"`
}

func (s *catalogService) CreateDescription(ctx context.Context, in *DescriptionInput) (*models.DescriptionBlock, error) {
	if _, err := s.productRepo.GetByID(ctx, in.ProductID); err != nil {
		return nil, err
	}
	if in.Title == "" {
		return nil, common.Validationf("title is required")
	}

	block := &models.DescriptionBlock{
		ID:        uuid.New(),
		ProductID: in.ProductID,
		Title:     in.Title,
		Subtitle:  in.Subtitle,
		IsActive:  true,
	}
	if in.IsActive != nil {
		block.IsActive = *in.IsActive
	}

	order, err := AllocateOrder(ctx, func(ctx context.Context) (int, error) {
		return s.descriptionRepo.MaxOrder(ctx, in.ProductID)
	}, in.DisplayOrder)
	if err != nil {
		return nil, err
	}
	block.DisplayOrder = order

	if err := s.descriptionRepo.Create(ctx, block); err != nil {
		return nil, err
	}
	s.invalidateViews(ctx)
	return block, nil
}

func (s *catalogService) UpdateDescription(ctx context.Context, id uuid.UUID, in *DescriptionUpdate) (*models.DescriptionBlock, error) {
	block, err := s.descriptionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Title != nil {
		block.Title = *in.Title
	}
	if in.Subtitle != nil {
		block.Subtitle = in.Subtitle
	}
	if in.IsActive != nil {
		block.IsActive = *in.IsActive
	}
	if in.DisplayOrder != nil {
		order, err := AllocateOrder(ctx, func(ctx context.Context) (int, error) {
			return s.descriptionRepo.MaxOrder(ctx, block.ProductID)
		}, *in.DisplayOrder)
		if err != nil {
			return nil, err
		}
		block.DisplayOrder = order
	}
	if err := s.descriptionRepo.Update(ctx, block); err != nil {
		return nil, err
	}
	s.invalidateViews(ctx)
	return block, nil
}

func (s *catalogService) DeleteDescription(ctx context.Context, id uuid.UUID) error {
	if err := s.descriptionRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateViews(ctx)
	return nil
}

func (s *catalogService) GetDescription(ctx context.Context, id uuid.UUID) (*models.DescriptionBlockView, error) {
	return s.materializer.DescriptionByID(ctx, id)
}

// DescriptionRowInput is the create payload for a description row.
type DescriptionRowInput struct {
	DescriptionID uuid.UUID `json:"description_id"`
	Key           string    `json:"key"`
	Value         string    `json:"value"`
	DisplayOrder  int       `json:"display_order"`
}

// DescriptionRowUpdate is the partial update payload for a description row.
type DescriptionRowUpdate struct {
	Key          *string `json:"key"`
	Value        *string `json:"value"`
	DisplayOrder *int    `json:"display_order"`
}

func (s *catalogService) CreateDescriptionRow(ctx context.Context, in *DescriptionRowInput) (*models.DescriptionRow, error) {
	if _, err := s.descriptionRepo.GetByID(ctx, in.DescriptionID); err != nil {
		return nil, err
	}

	row := &models.DescriptionRow{
		ID:            uuid.New(),
		DescriptionID: in.DescriptionID,
		Key:           in.Key,
		Value:         in.Value,
	}

	// display_order is unique within the block; concurrent appends retry
	// with a recomputed order, explicit duplicates surface as conflicts.
	for attempt := 0; attempt < slugRetryAttempts; attempt++ {
		order, err := AllocateOrder(ctx, func(ctx context.Context) (int, error) {
			return s.rowRepo.MaxOrder(ctx, in.DescriptionID)
		}, in.DisplayOrder)
		if err != nil {
			return nil, err
		}
		row.DisplayOrder = order

		err = s.rowRepo.Create(ctx, row)
		if err == nil {
			s.invalidateViews(ctx)
			return row, nil
		}
		if !isUniqueViolation(err) {
			return nil, err
		}
		if in.DisplayOrder > 0 {
			return nil, common.Conflictf("display_order %d already taken in description %s", in.DisplayOrder, in.DescriptionID)
		}
	}
	return nil, common.Conflictf("display_order allocation in description %s", in.DescriptionID)
}

func (s *catalogService) UpdateDescriptionRow(ctx context.Context, id uuid.UUID, in *DescriptionRowUpdate) (*models.DescriptionRow, error) {
	row, err := s.rowRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Key != nil {
		row.Key = *in.Key
	}
	if in.Value != nil {
		row.Value = *in.Value
	}
	if in.DisplayOrder != nil {
		order, err := AllocateOrder(ctx, func(ctx context.Context) (int, error) {
			return s.rowRepo.MaxOrder(ctx, row.DescriptionID)
		}, *in.DisplayOrder)
		if err != nil {
			return nil, err
		}
		row.DisplayOrder = order
	}
	if err := s.rowRepo.Update(ctx, row); err != nil {
		if isUniqueViolation(err) {
			return nil, common.Conflictf("display_order %d already taken in description %s", row.DisplayOrder, row.DescriptionID)
		}
		return nil, err
	}
	s.invalidateViews(ctx)
	return row, nil
}

func (s *catalogService) DeleteDescriptionRow(ctx context.Context, id uuid.UUID) error {
	if err := s.rowRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateViews(ctx)
	return nil
}

func (s *catalogService) GetDescriptionRow(ctx context.Context, id uuid.UUID) (*models.DescriptionRow, error) {
	return s.rowRepo.GetByID(ctx, id)
}
