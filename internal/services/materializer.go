package services

import (
	"context"
	"log"
	"strings"
	"time"

	"techmart/internal/caching"
	"techmart/internal/common"
	"techmart/internal/models"
	"techmart/internal/repositories"

	"github.com/google/uuid"
)

const viewCacheTTL = 15 * time.Minute

// Materializer assembles the nested, filtered read-model for the catalog
// hierarchy. It only reads; ordering at every level comes from the
// repositories' scoped listing queries.
type Materializer struct {
	categoryRepo     repositories.CategoryRepository
	subcategoryRepo  repositories.SubcategoryRepository
	productRepo      repositories.ProductRepository
	categoryDescRepo repositories.CategoryDescriptionRepository
	descriptionRepo  repositories.DescriptionRepository
	rowRepo          repositories.DescriptionRowRepository
	cacheService     caching.CacheService
}

func NewMaterializer(
	categoryRepo repositories.CategoryRepository,
	subcategoryRepo repositories.SubcategoryRepository,
	productRepo repositories.ProductRepository,
	categoryDescRepo repositories.CategoryDescriptionRepository,
	descriptionRepo repositories.DescriptionRepository,
	rowRepo repositories.DescriptionRowRepository,
	cacheService caching.CacheService,
) *Materializer {
	return &Materializer{
		categoryRepo:     categoryRepo,
		subcategoryRepo:  subcategoryRepo,
		productRepo:      productRepo,
		categoryDescRepo: categoryDescRepo,
		descriptionRepo:  descriptionRepo,
		rowRepo:          rowRepo,
		cacheService:     cacheService,
	}
}

// ProductOverview derives the overview bullet list from a product's
// free-text description: split on commas, trim, drop empty segments.
// Recomputed on every materialization, never stored.
func ProductOverview(description string) []string {
	overview := []string{}
	for _, segment := range strings.Split(description, ",") {
		if trimmed := strings.TrimSpace(segment); trimmed != "" {
			overview = append(overview, trimmed)
		}
	}
	return overview
}

// CategoryBySlug materializes one category tree. With activeOnly set, an
// inactive category resolves to NotFound and inactive descendants are
// omitted level by level.
func (m *Materializer) CategoryBySlug(ctx context.Context, slug string, activeOnly bool) (*models.CategoryView, error) {
	if activeOnly {
		if cached, err := m.cacheService.GetCategoryView(ctx, slug); cached != nil {
			return cached, nil
		} else if err != nil {
			log.Printf("Cache error for category view %q: %v", slug, err)
		}
	}

	category, err := m.categoryRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if activeOnly && !category.IsActive {
		return nil, common.NotFoundf("category %q", slug)
	}

	view, err := m.buildCategoryView(ctx, category, activeOnly)
	if err != nil {
		return nil, err
	}

	if activeOnly {
		if err := m.cacheService.SetCategoryView(ctx, view, viewCacheTTL); err != nil {
			log.Printf("Failed to cache category view %q: %v", slug, err)
		}
	}
	return view, nil
}

// Categories materializes the category listing. A non-nil isActive
// filters the top-level rows by that flag; filtered-out categories are
// omitted, not errors. Descendants stay active-only unless the caller
// explicitly asked for inactive rows.
func (m *Materializer) Categories(ctx context.Context, isActive *bool, limit, offset int) ([]models.CategoryView, error) {
	categories, err := m.categoryRepo.List(ctx, isActive, limit, offset)
	if err != nil {
		return nil, err
	}

	activeOnly := isActive == nil || *isActive
	views := make([]models.CategoryView, 0, len(categories))
	for _, category := range categories {
		view, err := m.buildCategoryView(ctx, category, activeOnly)
		if err != nil {
			return nil, err
		}
		views = append(views, *view)
	}
	return views, nil
}

// Subcategories materializes the flat subcategory listing with the same
// isActive semantics as Categories.
func (m *Materializer) Subcategories(ctx context.Context, isActive *bool, limit, offset int) ([]models.SubcategoryView, error) {
	subcategories, err := m.subcategoryRepo.List(ctx, isActive, limit, offset)
	if err != nil {
		return nil, err
	}

	activeOnly := isActive == nil || *isActive
	views := make([]models.SubcategoryView, 0, len(subcategories))
	for _, subcategory := range subcategories {
		view, err := m.buildSubcategoryView(ctx, subcategory, activeOnly)
		if err != nil {
			return nil, err
		}
		views = append(views, *view)
	}
	return views, nil
}

func (m *Materializer) buildCategoryView(ctx context.Context, category *models.Category, activeOnly bool) (*models.CategoryView, error) {
	subcategories, err := m.subcategoryRepo.ListByCategory(ctx, category.ID, activeOnly)
	if err != nil {
		return nil, err
	}

	view := &models.CategoryView{Category: *category, Subcategories: []models.SubcategoryView{}}
	for _, subcategory := range subcategories {
		subView, err := m.buildSubcategoryView(ctx, subcategory, activeOnly)
		if err != nil {
			return nil, err
		}
		if subcategory.IsActive {
			view.ActiveSubcategoryCount++
		}
		view.Subcategories = append(view.Subcategories, *subView)
	}
	return view, nil
}

// SubcategoryBySlug materializes one subcategory subtree. Direct retrieval
// bypasses the parent category's active state: only the subcategory's own
// flag matters under activeOnly.
func (m *Materializer) SubcategoryBySlug(ctx context.Context, slug string, activeOnly bool) (*models.SubcategoryView, error) {
	subcategory, err := m.subcategoryRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if activeOnly && !subcategory.IsActive {
		return nil, common.NotFoundf("subcategory %q", slug)
	}
	return m.buildSubcategoryView(ctx, subcategory, activeOnly)
}

func (m *Materializer) buildSubcategoryView(ctx context.Context, subcategory *models.Subcategory, activeOnly bool) (*models.SubcategoryView, error) {
	descriptions, err := m.categoryDescRepo.ListBySubcategory(ctx, subcategory.ID)
	if err != nil {
		return nil, err
	}

	products, err := m.productRepo.ListBySubcategory(ctx, subcategory.ID, activeOnly)
	if err != nil {
		return nil, err
	}

	view := &models.SubcategoryView{
		Subcategory:  *subcategory,
		Descriptions: []models.CategoryDescription{},
		Products:     []models.ProductView{},
	}
	for _, description := range descriptions {
		view.Descriptions = append(view.Descriptions, *description)
	}
	for _, product := range products {
		productView, err := m.buildProductView(ctx, product, activeOnly)
		if err != nil {
			return nil, err
		}
		if product.IsActive {
			view.ActiveProductCount++
		}
		view.Products = append(view.Products, *productView)
	}
	return view, nil
}

// ProductBySlug materializes a single product detail view. Per the read
// contract, a product stays individually addressable regardless of its
// ancestors' active state; active filtering applies only when traversing
// downward from a parent.
func (m *Materializer) ProductBySlug(ctx context.Context, slug string) (*models.ProductView, error) {
	if cached, err := m.cacheService.GetProductView(ctx, slug); cached != nil {
		return cached, nil
	} else if err != nil {
		log.Printf("Cache error for product view %q: %v", slug, err)
	}

	product, err := m.productRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	view, err := m.buildProductView(ctx, product, true)
	if err != nil {
		return nil, err
	}

	// Detail views name their ancestors.
	if subcategory, err := m.subcategoryRepo.GetByID(ctx, product.SubcategoryID); err == nil {
		view.SubcategoryName = subcategory.Name
		if category, err := m.categoryRepo.GetByID(ctx, subcategory.CategoryID); err == nil {
			view.CategoryName = category.Name
		}
	}

	if err := m.cacheService.SetProductView(ctx, view, viewCacheTTL); err != nil {
		log.Printf("Failed to cache product view %q: %v", slug, err)
	}
	return view, nil
}

func (m *Materializer) buildProductView(ctx context.Context, product *models.Product, activeBlocksOnly bool) (*models.ProductView, error) {
	blocks, err := m.descriptionRepo.ListByProduct(ctx, product.ID, activeBlocksOnly)
	if err != nil {
		return nil, err
	}

	view := &models.ProductView{
		Product:      *product,
		Overview:     ProductOverview(product.Description),
		Descriptions: []models.DescriptionBlockView{},
	}
	for _, block := range blocks {
		blockView, err := m.buildBlockView(ctx, block)
		if err != nil {
			return nil, err
		}
		view.Descriptions = append(view.Descriptions, *blockView)
	}
	return view, nil
}

// DescriptionByID materializes one description block with its rows. Rows
// carry no active flag and are always included.
func (m *Materializer) DescriptionByID(ctx context.Context, id uuid.UUID) (*models.DescriptionBlockView, error) {
	block, err := m.descriptionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return m.buildBlockView(ctx, block)
}

func (m *Materializer) buildBlockView(ctx context.Context, block *models.DescriptionBlock) (*models.DescriptionBlockView, error) {
	rows, err := m.rowRepo.ListByDescription(ctx, block.ID)
	if err != nil {
		return nil, err
	}

	view := &models.DescriptionBlockView{DescriptionBlock: *block, Rows: []models.DescriptionRow{}}
	for _, row := range rows {
		view.Rows = append(view.Rows, *row)
	}
	return view, nil
}
