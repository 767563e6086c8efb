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

func TestListSubcategories_IsActiveFilter(t *testing.T) {
	var seen *bool
	catalog := &stubCatalog{
		listSubcategories: func(ctx context.Context, isActive *bool, limit, offset int) ([]models.SubcategoryView, error) {
			seen = isActive
			return []models.SubcategoryView{}, nil
		},
	}
	h := NewSubcategoryHandlers(catalog)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/subcategories?is_active=false", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.ListSubcategories(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, seen)
	assert.False(t, *seen)
}

func TestListSubcategories_PaginationClamped(t *testing.T) {
	catalog := &stubCatalog{
		listSubcategories: func(ctx context.Context, isActive *bool, limit, offset int) ([]models.SubcategoryView, error) {
			assert.Nil(t, isActive)
			assert.Equal(t, 1000, limit)
			assert.Equal(t, 10, offset)
			return []models.SubcategoryView{}, nil
		},
	}
	h := NewSubcategoryHandlers(catalog)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/subcategories?limit=5000&offset=10", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.ListSubcategories(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}
