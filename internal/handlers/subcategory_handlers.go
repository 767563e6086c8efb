package handlers

import (
	"net/http"

	"techmart/internal/common"
	"techmart/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// SubcategoryHandlers handles subcategory and subcategory-description HTTP requests
type SubcategoryHandlers struct {
	catalog services.CatalogService
}

// NewSubcategoryHandlers creates a new subcategory handlers instance
func NewSubcategoryHandlers(catalog services.CatalogService) *SubcategoryHandlers {
	return &SubcategoryHandlers{catalog: catalog}
}

// ListSubcategoriesRequest represents query parameters for listing subcategories
type ListSubcategoriesRequest struct {
	Limit    int   `query:"limit"`
	Offset   int   `query:"offset"`
	IsActive *bool `query:"is_active"` // absent means no visibility filter
}

// ListSubcategories returns the flat subcategory listing across categories
func (h *SubcategoryHandlers) ListSubcategories(c echo.Context) error {
	ctx := c.Request().Context()

	var req ListSubcategoriesRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid query parameters")
	}
	req.Limit, req.Offset = common.ValidatePaginationParams(req.Limit, req.Offset)

	subcategories, err := h.catalog.ListSubcategories(ctx, req.IsActive, req.Limit, req.Offset)
	if err != nil {
		return common.RespondError(c, err)
	}
	return common.Success(c, http.StatusOK, "Subcategories retrieved successfully", subcategories)
}

// GetSubcategory returns one subcategory view by slug
func (h *SubcategoryHandlers) GetSubcategory(c echo.Context) error {
	ctx := c.Request().Context()
	slug := c.Param("slug")

	includeAll := c.QueryParam("include_all") == "true"
	subcategory, err := h.catalog.GetSubcategory(ctx, slug, !includeAll)
	if err != nil {
		return common.RespondError(c, err)
	}
	return common.Success(c, http.StatusOK, "Subcategory retrieved successfully", subcategory)
}

// CreateSubcategory creates a subcategory under an existing category
func (h *SubcategoryHandlers) CreateSubcategory(c echo.Context) error {
	ctx := c.Request().Context()

	var in services.SubcategoryInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	subcategory, err := h.catalog.CreateSubcategory(ctx, &in)
	if err != nil {
		return common.RespondError(c, err)
	}
	return common.Success(c, http.StatusCreated, "Subcategory created successfully", subcategory)
}

// UpdateSubcategory applies a partial update to the subcategory at slug
func (h *SubcategoryHandlers) UpdateSubcategory(c echo.Context) error {
	ctx := c.Request().Context()
	slug := c.Param("slug")

	var in services.SubcategoryUpdate
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	subcategory, err := h.catalog.UpdateSubcategory(ctx, slug, &in)
	if err != nil {
		return common.RespondError(c, err)
	}
	return common.Success(c, http.StatusOK, "Subcategory updated successfully", subcategory)
}

// DeleteSubcategory removes the subcategory and everything beneath it
func (h *SubcategoryHandlers) DeleteSubcategory(c echo.Context) error {
	ctx := c.Request().Context()
	slug := c.Param("slug")

	if err := h.catalog.DeleteSubcategory(ctx, slug); err != nil {
		return common.RespondError(c, err)
	}
	return common.Success(c, http.StatusOK, "Subcategory deleted successfully", nil)
}

// CreateSubcategoryDescription attaches a description card to a subcategory
func (h *SubcategoryHandlers) CreateSubcategoryDescription(c echo.Context) error {
	ctx := c.Request().Context()

	var in services.CategoryDescriptionInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	desc, err := h.catalog.CreateCategoryDescription(ctx, &in)
	if err != nil {
		return common.RespondError(c, err)
	}
	return common.Success(c, http.StatusCreated, "Subcategory description created successfully", desc)
}

// UpdateSubcategoryDescription applies a partial update to a description card
func (h *SubcategoryHandlers) UpdateSubcategoryDescription(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid description ID")
	}

	var in services.CategoryDescriptionUpdate
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	desc, err := h.catalog.UpdateCategoryDescription(ctx, id, &in)
	if err != nil {
		return common.RespondError(c, err)
	}
	return common.Success(c, http.StatusOK, "Subcategory description updated successfully", desc)
}

// DeleteSubcategoryDescription removes a description card
func (h *SubcategoryHandlers) DeleteSubcategoryDescription(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid description ID")
	}

	if err := h.catalog.DeleteCategoryDescription(ctx, id); err != nil {
		return common.RespondError(c, err)
	}
	return common.Success(c, http.StatusOK, "Subcategory description deleted successfully", nil)
}
