package services

import (
	"context"
	"testing"

	"techmart/internal/common"
	"techmart/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

func TestProductOverview(t *testing.T) {
	tests := []struct {
		name        string
		description string
		expected    []string
	}{
		{"comma separated", "Fast, Quiet, Energy-efficient", []string{"Fast", "Quiet", "Energy-efficient"}},
		{"whitespace trimmed", "  Fast ,  Quiet  ", []string{"Fast", "Quiet"}},
		{"empty segments dropped", "Fast,,Quiet,", []string{"Fast", "Quiet"}},
		{"no commas", "Just one long sentence", []string{"Just one long sentence"}},
		{"empty description", "", []string{}},
		{"only commas", ",,,", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ProductOverview(tt.description))
		})
	}
}

type MaterializerTestSuite struct {
	suite.Suite
	categoryRepo     *MockCategoryRepository
	subcategoryRepo  *MockSubcategoryRepository
	productRepo      *MockProductRepository
	categoryDescRepo *MockCategoryDescriptionRepository
	descriptionRepo  *MockDescriptionRepository
	rowRepo          *MockDescriptionRowRepository
	materializer     *Materializer
	ctx              context.Context
}

func (suite *MaterializerTestSuite) SetupTest() {
	suite.categoryRepo = new(MockCategoryRepository)
	suite.subcategoryRepo = new(MockSubcategoryRepository)
	suite.productRepo = new(MockProductRepository)
	suite.categoryDescRepo = new(MockCategoryDescriptionRepository)
	suite.descriptionRepo = new(MockDescriptionRepository)
	suite.rowRepo = new(MockDescriptionRowRepository)
	suite.materializer = NewMaterializer(
		suite.categoryRepo, suite.subcategoryRepo, suite.productRepo,
		suite.categoryDescRepo, suite.descriptionRepo, suite.rowRepo,
		newStubCache(),
	)
	suite.ctx = context.Background()
}

func TestMaterializerTestSuite(t *testing.T) {
	suite.Run(t, new(MaterializerTestSuite))
}

func (suite *MaterializerTestSuite) TestCategoryBySlug_BuildsTree() {
	category := &models.Category{ID: uuid.New(), Name: "Peripherals", Slug: "peripherals", IsActive: true}
	subcategory := &models.Subcategory{ID: uuid.New(), CategoryID: category.ID, Name: "Mice", Slug: "mice", IsActive: true}
	product := &models.Product{ID: uuid.New(), SubcategoryID: subcategory.ID, Name: "Basic Mouse", Slug: "basic-mouse", IsActive: true, Description: "Fast, Quiet"}

	suite.categoryRepo.On("GetBySlug", suite.ctx, "peripherals").Return(category, nil)
	suite.subcategoryRepo.On("ListByCategory", suite.ctx, category.ID, true).Return([]*models.Subcategory{subcategory}, nil)
	suite.categoryDescRepo.On("ListBySubcategory", suite.ctx, subcategory.ID).Return([]*models.CategoryDescription{}, nil)
	suite.productRepo.On("ListBySubcategory", suite.ctx, subcategory.ID, true).Return([]*models.Product{product}, nil)
	suite.descriptionRepo.On("ListByProduct", suite.ctx, product.ID, true).Return([]*models.DescriptionBlock{}, nil)

	view, err := suite.materializer.CategoryBySlug(suite.ctx, "peripherals", true)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 1, view.ActiveSubcategoryCount)
	assert.Len(suite.T(), view.Subcategories, 1)
	assert.Equal(suite.T(), 1, view.Subcategories[0].ActiveProductCount)
	assert.Equal(suite.T(), []string{"Fast", "Quiet"}, view.Subcategories[0].Products[0].Overview)
}

func (suite *MaterializerTestSuite) TestCategoryBySlug_InactiveIsNotFound() {
	category := &models.Category{ID: uuid.New(), Name: "Legacy", Slug: "legacy", IsActive: false}
	suite.categoryRepo.On("GetBySlug", suite.ctx, "legacy").Return(category, nil)

	_, err := suite.materializer.CategoryBySlug(suite.ctx, "legacy", true)
	assert.ErrorIs(suite.T(), err, common.ErrNotFound)
}

func (suite *MaterializerTestSuite) TestCategoryBySlug_InactiveVisibleToAdmin() {
	category := &models.Category{ID: uuid.New(), Name: "Legacy", Slug: "legacy", IsActive: false}
	suite.categoryRepo.On("GetBySlug", suite.ctx, "legacy").Return(category, nil)
	suite.subcategoryRepo.On("ListByCategory", suite.ctx, category.ID, false).Return([]*models.Subcategory{}, nil)

	view, err := suite.materializer.CategoryBySlug(suite.ctx, "legacy", false)
	assert.NoError(suite.T(), err)
	assert.False(suite.T(), view.IsActive)
	assert.NotNil(suite.T(), view.Subcategories)
}

func (suite *MaterializerTestSuite) TestSubcategoryBySlug_DirectFetchIgnoresParentState() {
	// The parent category may be inactive; direct retrieval only consults
	// the subcategory's own flag.
	subcategory := &models.Subcategory{ID: uuid.New(), CategoryID: uuid.New(), Name: "Mice", Slug: "mice", IsActive: true}
	suite.subcategoryRepo.On("GetBySlug", suite.ctx, "mice").Return(subcategory, nil)
	suite.categoryDescRepo.On("ListBySubcategory", suite.ctx, subcategory.ID).Return([]*models.CategoryDescription{}, nil)
	suite.productRepo.On("ListBySubcategory", suite.ctx, subcategory.ID, true).Return([]*models.Product{}, nil)

	view, err := suite.materializer.SubcategoryBySlug(suite.ctx, "mice", true)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "mice", view.Slug)
	suite.categoryRepo.AssertNotCalled(suite.T(), "GetByID", suite.ctx, subcategory.CategoryID)
}

func (suite *MaterializerTestSuite) TestSubcategoryBySlug_InactiveIsNotFound() {
	subcategory := &models.Subcategory{ID: uuid.New(), Name: "Mice", Slug: "mice", IsActive: false}
	suite.subcategoryRepo.On("GetBySlug", suite.ctx, "mice").Return(subcategory, nil)

	_, err := suite.materializer.SubcategoryBySlug(suite.ctx, "mice", true)
	assert.ErrorIs(suite.T(), err, common.ErrNotFound)
}

func (suite *MaterializerTestSuite) TestProductBySlug_ResolvesAncestorNames() {
	category := &models.Category{ID: uuid.New(), Name: "Peripherals"}
	subcategory := &models.Subcategory{ID: uuid.New(), CategoryID: category.ID, Name: "Mice"}
	product := &models.Product{ID: uuid.New(), SubcategoryID: subcategory.ID, Name: "Basic Mouse", Slug: "basic-mouse", IsActive: false, Description: ""}
	block := &models.DescriptionBlock{ID: uuid.New(), ProductID: product.ID, Title: "Specs", IsActive: true}
	row := &models.DescriptionRow{ID: uuid.New(), DescriptionID: block.ID, Key: "Weight", Value: "99g"}

	suite.productRepo.On("GetBySlug", suite.ctx, "basic-mouse").Return(product, nil)
	suite.descriptionRepo.On("ListByProduct", suite.ctx, product.ID, true).Return([]*models.DescriptionBlock{block}, nil)
	suite.rowRepo.On("ListByDescription", suite.ctx, block.ID).Return([]*models.DescriptionRow{row}, nil)
	suite.subcategoryRepo.On("GetByID", suite.ctx, product.SubcategoryID).Return(subcategory, nil)
	suite.categoryRepo.On("GetByID", suite.ctx, subcategory.CategoryID).Return(category, nil)

	// An inactive product is still directly addressable.
	view, err := suite.materializer.ProductBySlug(suite.ctx, "basic-mouse")
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Mice", view.SubcategoryName)
	assert.Equal(suite.T(), "Peripherals", view.CategoryName)
	assert.Equal(suite.T(), []string{}, view.Overview)
	assert.Len(suite.T(), view.Descriptions, 1)
	assert.Equal(suite.T(), "99g", view.Descriptions[0].Rows[0].Value)
}

func (suite *MaterializerTestSuite) TestDescriptionByID_RowsAlwaysIncluded() {
	block := &models.DescriptionBlock{ID: uuid.New(), Title: "Specs", IsActive: false}
	row := &models.DescriptionRow{ID: uuid.New(), DescriptionID: block.ID, Key: "DPI", Value: "1600"}

	suite.descriptionRepo.On("GetByID", suite.ctx, block.ID).Return(block, nil)
	suite.rowRepo.On("ListByDescription", suite.ctx, block.ID).Return([]*models.DescriptionRow{row}, nil)

	view, err := suite.materializer.DescriptionByID(suite.ctx, block.ID)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), view.Rows, 1)
}

func (suite *MaterializerTestSuite) TestCategories_ActiveFilterPassedToStore() {
	isActive := true
	category := &models.Category{ID: uuid.New(), Name: "Peripherals", Slug: "peripherals", IsActive: true}

	suite.categoryRepo.On("List", suite.ctx, &isActive, 50, 0).Return([]*models.Category{category}, nil)
	suite.subcategoryRepo.On("ListByCategory", suite.ctx, category.ID, true).Return([]*models.Subcategory{}, nil)

	views, err := suite.materializer.Categories(suite.ctx, &isActive, 50, 0)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), views, 1)
}

func (suite *MaterializerTestSuite) TestCategories_UnfilteredKeepsChildrenActiveOnly() {
	category := &models.Category{ID: uuid.New(), Name: "Legacy", Slug: "legacy", IsActive: false}
	active := &models.Subcategory{ID: uuid.New(), CategoryID: category.ID, Name: "Mice", IsActive: true}

	// No is_active filter: inactive top-level rows appear, descendants
	// still traverse active-only.
	suite.categoryRepo.On("List", suite.ctx, (*bool)(nil), 50, 0).Return([]*models.Category{category}, nil)
	suite.subcategoryRepo.On("ListByCategory", suite.ctx, category.ID, true).Return([]*models.Subcategory{active}, nil)
	suite.categoryDescRepo.On("ListBySubcategory", suite.ctx, active.ID).Return([]*models.CategoryDescription{}, nil)
	suite.productRepo.On("ListBySubcategory", suite.ctx, active.ID, true).Return([]*models.Product{}, nil)

	views, err := suite.materializer.Categories(suite.ctx, nil, 50, 0)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), views, 1)
	assert.False(suite.T(), views[0].IsActive)
}

func (suite *MaterializerTestSuite) TestCategories_InactiveFilterSurfacesWholeSubtree() {
	isActive := false
	category := &models.Category{ID: uuid.New(), Name: "Legacy", Slug: "legacy", IsActive: false}
	active := &models.Subcategory{ID: uuid.New(), CategoryID: category.ID, Name: "Mice", IsActive: true}
	inactive := &models.Subcategory{ID: uuid.New(), CategoryID: category.ID, Name: "Trackballs", IsActive: false}

	suite.categoryRepo.On("List", suite.ctx, &isActive, 50, 0).Return([]*models.Category{category}, nil)
	// Inspecting inactive rows surfaces inactive children too; the count
	// stays active-only.
	suite.subcategoryRepo.On("ListByCategory", suite.ctx, category.ID, false).Return([]*models.Subcategory{active, inactive}, nil)
	suite.categoryDescRepo.On("ListBySubcategory", suite.ctx, active.ID).Return([]*models.CategoryDescription{}, nil)
	suite.categoryDescRepo.On("ListBySubcategory", suite.ctx, inactive.ID).Return([]*models.CategoryDescription{}, nil)
	suite.productRepo.On("ListBySubcategory", suite.ctx, active.ID, false).Return([]*models.Product{}, nil)
	suite.productRepo.On("ListBySubcategory", suite.ctx, inactive.ID, false).Return([]*models.Product{}, nil)

	views, err := suite.materializer.Categories(suite.ctx, &isActive, 50, 0)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), views, 1)
	assert.Equal(suite.T(), 1, views[0].ActiveSubcategoryCount)
	assert.Len(suite.T(), views[0].Subcategories, 2)
}

func (suite *MaterializerTestSuite) TestSubcategories_ListsAcrossCategories() {
	isActive := true
	mice := &models.Subcategory{ID: uuid.New(), CategoryID: uuid.New(), Name: "Mice", Slug: "mice", IsActive: true}
	keyboards := &models.Subcategory{ID: uuid.New(), CategoryID: uuid.New(), Name: "Keyboards", Slug: "keyboards", IsActive: true}

	suite.subcategoryRepo.On("List", suite.ctx, &isActive, 50, 0).Return([]*models.Subcategory{mice, keyboards}, nil)
	for _, sc := range []*models.Subcategory{mice, keyboards} {
		suite.categoryDescRepo.On("ListBySubcategory", suite.ctx, sc.ID).Return([]*models.CategoryDescription{}, nil)
		suite.productRepo.On("ListBySubcategory", suite.ctx, sc.ID, true).Return([]*models.Product{}, nil)
	}

	views, err := suite.materializer.Subcategories(suite.ctx, &isActive, 50, 0)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), views, 2)
	assert.Equal(suite.T(), "mice", views[0].Slug)
	assert.Equal(suite.T(), "keyboards", views[1].Slug)
}
