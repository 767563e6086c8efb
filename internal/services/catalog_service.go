package services

import (
	"context"
	"errors"
	"log"

	"techmart/internal/caching"
	"techmart/internal/common"
	"techmart/internal/models"
	"techmart/internal/repositories"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
)

// slugRetryAttempts bounds transparent retries when a concurrent writer wins
// a freshly allocated slug at the storage layer.
const slugRetryAttempts = 3

// CatalogService is the write/read entry point for the catalog hierarchy.
// Writes run the slug and order allocators before persisting; reads go
// through the materializer.
type CatalogService interface {
	// Categories (slug-addressed)
	CreateCategory(ctx context.Context, in *CategoryInput) (*models.Category, error)
	UpdateCategory(ctx context.Context, slug string, in *CategoryUpdate) (*models.Category, error)
	DeleteCategory(ctx context.Context, slug string) error
	ListCategories(ctx context.Context, isActive *bool, limit, offset int) ([]models.CategoryView, error)
	GetCategory(ctx context.Context, slug string, activeOnly bool) (*models.CategoryView, error)

	// Subcategories (slug-addressed)
	CreateSubcategory(ctx context.Context, in *SubcategoryInput) (*models.Subcategory, error)
	UpdateSubcategory(ctx context.Context, slug string, in *SubcategoryUpdate) (*models.Subcategory, error)
	DeleteSubcategory(ctx context.Context, slug string) error
	ListSubcategories(ctx context.Context, isActive *bool, limit, offset int) ([]models.SubcategoryView, error)
	GetSubcategory(ctx context.Context, slug string, activeOnly bool) (*models.SubcategoryView, error)

	// Subcategory descriptions (id-addressed)
	CreateCategoryDescription(ctx context.Context, in *CategoryDescriptionInput) (*models.CategoryDescription, error)
	UpdateCategoryDescription(ctx context.Context, id uuid.UUID, in *CategoryDescriptionUpdate) (*models.CategoryDescription, error)
	DeleteCategoryDescription(ctx context.Context, id uuid.UUID) error

	// Products (slug-addressed)
	CreateProduct(ctx context.Context, in *ProductInput) (*models.Product, error)
	UpdateProduct(ctx context.Context, slug string, in *ProductUpdate) (*models.Product, error)
	DeleteProduct(ctx context.Context, slug string) error
	ListProducts(ctx context.Context, filter *models.ProductFilter) ([]*models.Product, error)
	GetProduct(ctx context.Context, slug string) (*models.ProductView, error)

	// Description blocks and rows (id-addressed)
	CreateDescription(ctx context.Context, in *DescriptionInput) (*models.DescriptionBlock, error)
	UpdateDescription(ctx context.Context, id uuid.UUID, in *DescriptionUpdate) (*models.DescriptionBlock, error)
	DeleteDescription(ctx context.Context, id uuid.UUID) error
	GetDescription(ctx context.Context, id uuid.UUID) (*models.DescriptionBlockView, error)
	CreateDescriptionRow(ctx context.Context, in *DescriptionRowInput) (*models.DescriptionRow, error)
	UpdateDescriptionRow(ctx context.Context, id uuid.UUID, in *DescriptionRowUpdate) (*models.DescriptionRow, error)
	DeleteDescriptionRow(ctx context.Context, id uuid.UUID) error
	GetDescriptionRow(ctx context.Context, id uuid.UUID) (*models.DescriptionRow, error)
}

type catalogService struct {
	categoryRepo     repositories.CategoryRepository
	subcategoryRepo  repositories.SubcategoryRepository
	productRepo      repositories.ProductRepository
	categoryDescRepo repositories.CategoryDescriptionRepository
	descriptionRepo  repositories.DescriptionRepository
	rowRepo          repositories.DescriptionRowRepository
	materializer     *Materializer
	cacheService     caching.CacheService
}

func NewCatalogService(
	categoryRepo repositories.CategoryRepository,
	subcategoryRepo repositories.SubcategoryRepository,
	productRepo repositories.ProductRepository,
	categoryDescRepo repositories.CategoryDescriptionRepository,
	descriptionRepo repositories.DescriptionRepository,
	rowRepo repositories.DescriptionRowRepository,
	materializer *Materializer,
	cacheService caching.CacheService,
) CatalogService {
	return &catalogService{
		categoryRepo:     categoryRepo,
		subcategoryRepo:  subcategoryRepo,
		productRepo:      productRepo,
		categoryDescRepo: categoryDescRepo,
		descriptionRepo:  descriptionRepo,
		rowRepo:          rowRepo,
		materializer:     materializer,
		cacheService:     cacheService,
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// invalidateViews drops all cached materialized views after a write. Cache
// errors are logged, never surfaced.
func (s *catalogService) invalidateViews(ctx context.Context) {
	if err := s.cacheService.InvalidateViews(ctx); err != nil {
		log.Printf("Failed to invalidate view cache: %v", err)
	}
}

// CategoryInput is the create payload for a category.
type CategoryInput struct {
	Name         string `json:"name"`
	Slug         string `json:"slug"` // explicit slug skips the allocator
	IsActive     *bool  `json:"is_active"`
	DisplayOrder int    `json:"display_order"` // zero means append
}

// CategoryUpdate is the partial update payload for a category.
type CategoryUpdate struct {
	Name         *string `json:"name"`
	Slug         *string `json:"slug"`
	IsActive     *bool   `json:"is_active"`
	DisplayOrder *int    `json:"display_order"` // explicit zero re-appends
}

func (s *catalogService) CreateCategory(ctx context.Context, in *CategoryInput) (*models.Category, error) {
	category := &models.Category{
		ID:       uuid.New(),
		Name:     in.Name,
		IsActive: true,
	}
	if in.IsActive != nil {
		category.IsActive = *in.IsActive
	}

	order, err := AllocateOrder(ctx, s.categoryRepo.MaxOrder, in.DisplayOrder)
	if err != nil {
		return nil, err
	}
	category.DisplayOrder = order

	for attempt := 0; attempt < slugRetryAttempts; attempt++ {
		if in.Slug != "" {
			category.Slug = in.Slug
		} else {
			slug, err := AllocateSlug(ctx, s.categoryRepo, in.Name, uuid.Nil)
			if err != nil {
				return nil, err
			}
			category.Slug = slug
		}

		err := s.categoryRepo.Create(ctx, category)
		if err == nil {
			s.invalidateViews(ctx)
			return category, nil
		}
		if !isUniqueViolation(err) {
			return nil, err
		}
		if in.Slug != "" {
			return nil, common.Conflictf("category slug %q already exists", in.Slug)
		}
		// A concurrent writer took the slug between check and insert;
		// re-run the allocator against the updated view.
	}
	return nil, common.Conflictf("category slug allocation for %q", in.Name)
}

func (s *catalogService) UpdateCategory(ctx context.Context, slug string, in *CategoryUpdate) (*models.Category, error) {
	category, err := s.categoryRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	nameChanged := in.Name != nil && *in.Name != category.Name
	if in.Name != nil {
		category.Name = *in.Name
	}
	if in.IsActive != nil {
		category.IsActive = *in.IsActive
	}
	if in.DisplayOrder != nil {
		order, err := AllocateOrder(ctx, s.categoryRepo.MaxOrder, *in.DisplayOrder)
		if err != nil {
			return nil, err
		}
		category.DisplayOrder = order
	}

	switch {
	case in.Slug != nil && *in.Slug != category.Slug:
		exists, err := s.categoryRepo.ExistsSlug(ctx, *in.Slug, category.ID)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, common.Conflictf("category slug %q already exists", *in.Slug)
		}
		category.Slug = *in.Slug
	case in.Slug == nil && nameChanged:
		newSlug, err := AllocateSlug(ctx, s.categoryRepo, category.Name, category.ID)
		if err != nil {
			return nil, err
		}
		category.Slug = newSlug
	}

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		if isUniqueViolation(err) {
			return nil, common.Conflictf("category slug %q already exists", category.Slug)
		}
		return nil, err
	}
	s.invalidateViews(ctx)
	return category, nil
}

func (s *catalogService) DeleteCategory(ctx context.Context, slug string) error {
	category, err := s.categoryRepo.GetBySlug(ctx, slug)
	if err != nil {
		return err
	}
	if err := s.categoryRepo.Delete(ctx, category.ID); err != nil {
		return err
	}
	s.invalidateViews(ctx)
	return nil
}

func (s *catalogService) ListCategories(ctx context.Context, isActive *bool, limit, offset int) ([]models.CategoryView, error) {
	return s.materializer.Categories(ctx, isActive, limit, offset)
}

func (s *catalogService) GetCategory(ctx context.Context, slug string, activeOnly bool) (*models.CategoryView, error) {
	return s.materializer.CategoryBySlug(ctx, slug, activeOnly)
}

// SubcategoryInput is the create payload for a subcategory.
type SubcategoryInput struct {
	CategoryID   uuid.UUID `json:"category_id"`
	Name         string    `json:"name"`
	Slug         string    `json:"slug"`
	IsActive     *bool     `json:"is_active"`
	DisplayOrder int       `json:"display_order"`
}

// SubcategoryUpdate is the partial update payload for a subcategory.
type SubcategoryUpdate struct {
	CategoryID   *uuid.UUID `json:"category_id"`
	Name         *string    `json:"name"`
	Slug         *string    `json:"slug"`
	IsActive     *bool      `json:"is_active"`
	DisplayOrder *int       `json:"display_order"`
}

func (s *catalogService) CreateSubcategory(ctx context.Context, in *SubcategoryInput) (*models.Subcategory, error) {
	if _, err := s.categoryRepo.GetByID(ctx, in.CategoryID); err != nil {
		return nil, err
	}

	subcategory := &models.Subcategory{
		ID:         uuid.New(),
		CategoryID: in.CategoryID,
		Name:       in.Name,
		IsActive:   true,
	}
	if in.IsActive != nil {
		subcategory.IsActive = *in.IsActive
	}

	order, err := AllocateOrder(ctx, func(ctx context.Context) (int, error) {
		return s.subcategoryRepo.MaxOrder(ctx, in.CategoryID)
	}, in.DisplayOrder)
	if err != nil {
		return nil, err
	}
	subcategory.DisplayOrder = order

	for attempt := 0; attempt < slugRetryAttempts; attempt++ {
		if in.Slug != "" {
			subcategory.Slug = in.Slug
		} else {
			slug, err := AllocateSlug(ctx, s.subcategoryRepo, in.Name, uuid.Nil)
			if err != nil {
				return nil, err
			}
			subcategory.Slug = slug
		}

		err := s.subcategoryRepo.Create(ctx, subcategory)
		if err == nil {
			s.invalidateViews(ctx)
			return subcategory, nil
		}
		if !isUniqueViolation(err) {
			return nil, err
		}
		if in.Slug != "" {
			return nil, common.Conflictf("subcategory slug %q already exists", in.Slug)
		}
	}
	return nil, common.Conflictf("subcategory slug allocation for %q", in.Name)
}

func (s *catalogService) UpdateSubcategory(ctx context.Context, slug string, in *SubcategoryUpdate) (*models.Subcategory, error) {
	subcategory, err := s.subcategoryRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	if in.CategoryID != nil && *in.CategoryID != subcategory.CategoryID {
		if _, err := s.categoryRepo.GetByID(ctx, *in.CategoryID); err != nil {
			return nil, err
		}
		subcategory.CategoryID = *in.CategoryID
	}

	nameChanged := in.Name != nil && *in.Name != subcategory.Name
	if in.Name != nil {
		subcategory.Name = *in.Name
	}
	if in.IsActive != nil {
		subcategory.IsActive = *in.IsActive
	}
	if in.DisplayOrder != nil {
		order, err := AllocateOrder(ctx, func(ctx context.Context) (int, error) {
			return s.subcategoryRepo.MaxOrder(ctx, subcategory.CategoryID)
		}, *in.DisplayOrder)
		if err != nil {
			return nil, err
		}
		subcategory.DisplayOrder = order
	}

	switch {
	case in.Slug != nil && *in.Slug != subcategory.Slug:
		exists, err := s.subcategoryRepo.ExistsSlug(ctx, *in.Slug, subcategory.ID)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, common.Conflictf("subcategory slug %q already exists", *in.Slug)
		}
		subcategory.Slug = *in.Slug
	case in.Slug == nil && nameChanged:
		newSlug, err := AllocateSlug(ctx, s.subcategoryRepo, subcategory.Name, subcategory.ID)
		if err != nil {
			return nil, err
		}
		subcategory.Slug = newSlug
	}

	if err := s.subcategoryRepo.Update(ctx, subcategory); err != nil {
		if isUniqueViolation(err) {
			return nil, common.Conflictf("subcategory slug %q already exists", subcategory.Slug)
		}
		return nil, err
	}
	s.invalidateViews(ctx)
	return subcategory, nil
}

func (s *catalogService) DeleteSubcategory(ctx context.Context, slug string) error {
	subcategory, err := s.subcategoryRepo.GetBySlug(ctx, slug)
	if err != nil {
		return err
	}
	if err := s.subcategoryRepo.Delete(ctx, subcategory.ID); err != nil {
		return err
	}
	s.invalidateViews(ctx)
	return nil
}

func (s *catalogService) ListSubcategories(ctx context.Context, isActive *bool, limit, offset int) ([]models.SubcategoryView, error) {
	return s.materializer.Subcategories(ctx, isActive, limit, offset)
}

func (s *catalogService) GetSubcategory(ctx context.Context, slug string, activeOnly bool) (*models.SubcategoryView, error) {
	return s.materializer.SubcategoryBySlug(ctx, slug, activeOnly)
}

// CategoryDescriptionInput is the create payload for a subcategory description.
type CategoryDescriptionInput struct {
	SubcategoryID uuid.UUID `json:"subcategory_id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
}

// CategoryDescriptionUpdate is the partial update payload for a subcategory description.
type CategoryDescriptionUpdate struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

func (s *catalogService) CreateCategoryDescription(ctx context.Context, in *CategoryDescriptionInput) (*models.CategoryDescription, error) {
	if _, err := s.subcategoryRepo.GetByID(ctx, in.SubcategoryID); err != nil {
		return nil, err
	}
	if in.Title == "" {
		return nil, common.Validationf("title is required")
	}

	description := &models.CategoryDescription{
		ID:            uuid.New(),
		SubcategoryID: in.SubcategoryID,
		Title:         in.Title,
		Description:   in.Description,
	}
	if err := s.categoryDescRepo.Create(ctx, description); err != nil {
		return nil, err
	}
	s.invalidateViews(ctx)
	return description, nil
}

func (s *catalogService) UpdateCategoryDescription(ctx context.Context, id uuid.UUID, in *CategoryDescriptionUpdate) (*models.CategoryDescription, error) {
	description, err := s.categoryDescRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Title != nil {
		description.Title = *in.Title
	}
	if in.Description != nil {
		description.Description = *in.Description
	}
	if err := s.categoryDescRepo.Update(ctx, description); err != nil {
		return nil, err
	}
	s.invalidateViews(ctx)
	return description, nil
}

func (s *catalogService) DeleteCategoryDescription(ctx context.Context, id uuid.UUID) error {
	if err := s.categoryDescRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateViews(ctx)
	return nil
}

// validatePricing enforces price <= msrp before anything touches the store.
func validatePricing(price, msrp decimal.Decimal) error {
	if price.GreaterThan(msrp) {
		return common.Validationf("price %s cannot be greater than msrp %s", price, msrp)
	}
	return nil
}
