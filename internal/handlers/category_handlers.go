package handlers

import (
	"net/http"

	"techmart/internal/common"
	"techmart/internal/services"

	"github.com/labstack/echo/v4"
)

// CategoryHandlers handles category-related HTTP requests
type CategoryHandlers struct {
	catalog services.CatalogService
}

// NewCategoryHandlers creates a new category handlers instance
func NewCategoryHandlers(catalog services.CatalogService) *CategoryHandlers {
	return &CategoryHandlers{catalog: catalog}
}

// ListCategoriesRequest represents query parameters for listing categories
type ListCategoriesRequest struct {
	Limit    int   `query:"limit"`
	Offset   int   `query:"offset"`
	IsActive *bool `query:"is_active"` // absent means no visibility filter
}

// ListCategories returns the materialized category tree
func (h *CategoryHandlers) ListCategories(c echo.Context) error {
	ctx := c.Request().Context()

	var req ListCategoriesRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid query parameters")
	}
	req.Limit, req.Offset = common.ValidatePaginationParams(req.Limit, req.Offset)

	categories, err := h.catalog.ListCategories(ctx, req.IsActive, req.Limit, req.Offset)
	if err != nil {
		return common.RespondError(c, err)
	}
	return common.Success(c, http.StatusOK, "Categories retrieved successfully", categories)
}

// GetCategory returns one category view by slug
func (h *CategoryHandlers) GetCategory(c echo.Context) error {
	ctx := c.Request().Context()
	slug := c.Param("slug")

	includeAll := c.QueryParam("include_all") == "true"
	category, err := h.catalog.GetCategory(ctx, slug, !includeAll)
	if err != nil {
		return common.RespondError(c, err)
	}
	return common.Success(c, http.StatusOK, "Category retrieved successfully", category)
}

// CreateCategory creates a category, allocating slug and display order
func (h *CategoryHandlers) CreateCategory(c echo.Context) error {
	ctx := c.Request().Context()

	var in services.CategoryInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	category, err := h.catalog.CreateCategory(ctx, &in)
	if err != nil {
		return common.RespondError(c, err)
	}
	return common.Success(c, http.StatusCreated, "Category created successfully", category)
}

// UpdateCategory applies a partial update to the category at slug
func (h *CategoryHandlers) UpdateCategory(c echo.Context) error {
	ctx := c.Request().Context()
	slug := c.Param("slug")

	var in services.CategoryUpdate
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	category, err := h.catalog.UpdateCategory(ctx, slug, &in)
	if err != nil {
		return common.RespondError(c, err)
	}
	return common.Success(c, http.StatusOK, "Category updated successfully", category)
}

// DeleteCategory removes the category and everything beneath it
func (h *CategoryHandlers) DeleteCategory(c echo.Context) error {
	ctx := c.Request().Context()
	slug := c.Param("slug")

	if err := h.catalog.DeleteCategory(ctx, slug); err != nil {
		return common.RespondError(c, err)
	}
	return common.Success(c, http.StatusOK, "Category deleted successfully", nil)
}
