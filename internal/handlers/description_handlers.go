package handlers

import (
	"net/http"

	"techmart/internal/common"
	"techmart/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// DescriptionHandlers handles product description blocks and their rows
type DescriptionHandlers struct {
	catalog services.CatalogService
}

// NewDescriptionHandlers creates a new description handlers instance
func NewDescriptionHandlers(catalog services.CatalogService) *DescriptionHandlers {
	return &DescriptionHandlers{catalog: catalog}
}

func parseIDParam(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "Invalid ID")
	}
	return id, nil
}

// GetDescription returns one description block with its rows
func (h *DescriptionHandlers) GetDescription(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	block, err := h.catalog.GetDescription(ctx, id)
	if err != nil {
		return common.RespondError(c, err)
	}
	return common.Success(c, http.StatusOK, "Description retrieved successfully", block)
}

// CreateDescription attaches a description block to a product
func (h *DescriptionHandlers) CreateDescription(c echo.Context) error {
	ctx := c.Request().Context()

	var in services.DescriptionInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	block, err := h.catalog.CreateDescription(ctx, &in)
	if err != nil {
		return common.RespondError(c, err)
	}
	return common.Success(c, http.StatusCreated, "Description created successfully", block)
}

// UpdateDescription applies a partial update to a description block
func (h *DescriptionHandlers) UpdateDescription(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	var in services.DescriptionUpdate
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	block, err := h.catalog.UpdateDescription(ctx, id, &in)
	if err != nil {
		return common.RespondError(c, err)
	}
	return common.Success(c, http.StatusOK, "Description updated successfully", block)
}

// DeleteDescription removes a description block and its rows
func (h *DescriptionHandlers) DeleteDescription(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	if err := h.catalog.DeleteDescription(ctx, id); err != nil {
		return common.RespondError(c, err)
	}
	return common.Success(c, http.StatusOK, "Description deleted successfully", nil)
}

// GetDescriptionRow returns one spec row
func (h *DescriptionHandlers) GetDescriptionRow(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	row, err := h.catalog.GetDescriptionRow(ctx, id)
	if err != nil {
		return common.RespondError(c, err)
	}
	return common.Success(c, http.StatusOK, "Description row retrieved successfully", row)
}

// CreateDescriptionRow attaches a key/value row to a description block
func (h *DescriptionHandlers) CreateDescriptionRow(c echo.Context) error {
	ctx := c.Request().Context()

	var in services.DescriptionRowInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	row, err := h.catalog.CreateDescriptionRow(ctx, &in)
	if err != nil {
		return common.RespondError(c, err)
	}
	return common.Success(c, http.StatusCreated, "Description row created successfully", row)
}

// UpdateDescriptionRow applies a partial update to a spec row
func (h *DescriptionHandlers) UpdateDescriptionRow(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	var in services.DescriptionRowUpdate
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	row, err := h.catalog.UpdateDescriptionRow(ctx, id, &in)
	if err != nil {
		return common.RespondError(c, err)
	}
	return common.Success(c, http.StatusOK, "Description row updated successfully", row)
}

// DeleteDescriptionRow removes a spec row
func (h *DescriptionHandlers) DeleteDescriptionRow(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	if err := h.catalog.DeleteDescriptionRow(ctx, id); err != nil {
		return common.RespondError(c, err)
	}
	return common.Success(c, http.StatusOK, "Description row deleted successfully", nil)
}
