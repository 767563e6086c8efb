package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"techmart/internal/models"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func listProductsThrough(t *testing.T, target string) *models.ProductFilter {
	t.Helper()

	var seen *models.ProductFilter
	catalog := &stubCatalog{
		listProducts: func(ctx context.Context, filter *models.ProductFilter) ([]*models.Product, error) {
			seen = filter
			return []*models.Product{}, nil
		},
	}
	h := NewProductHandlers(catalog, nil, "")

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.ListProducts(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, seen)
	return seen
}

func TestListProducts_NoFiltersByDefault(t *testing.T) {
	filter := listProductsThrough(t, "/v1/products")

	assert.Nil(t, filter.IsActive)
	assert.Nil(t, filter.IsFeatured)
	assert.Equal(t, 50, filter.Limit)
	assert.Equal(t, 0, filter.Offset)
}

func TestListProducts_ActiveAndFeaturedFalsePassedThrough(t *testing.T) {
	filter := listProductsThrough(t, "/v1/products?is_active=false&is_featured=false")

	require.NotNil(t, filter.IsActive)
	assert.False(t, *filter.IsActive)
	require.NotNil(t, filter.IsFeatured)
	assert.False(t, *filter.IsFeatured)
}

func TestListProducts_ActiveAndFeaturedTruePassedThrough(t *testing.T) {
	filter := listProductsThrough(t, "/v1/products?is_active=true&is_featured=true")

	require.NotNil(t, filter.IsActive)
	assert.True(t, *filter.IsActive)
	require.NotNil(t, filter.IsFeatured)
	assert.True(t, *filter.IsFeatured)
}

func TestListProducts_ScopeAndSearchFilters(t *testing.T) {
	filter := listProductsThrough(t, "/v1/products?category=peripherals&subcategory=mice&type=hardware&search=wireless")

	assert.Equal(t, "peripherals", filter.CategorySlug)
	assert.Equal(t, "mice", filter.SubcategorySlug)
	assert.Equal(t, "hardware", filter.ProductType)
	assert.Equal(t, "wireless", filter.Search)
}
