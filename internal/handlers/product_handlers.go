package handlers

import (
	"fmt"
	"net/http"
	"time"

	"techmart/internal/common"
	"techmart/internal/models"
	"techmart/internal/services"

	"github.com/labstack/echo/v4"
)

// ProductHandlers handles product-related HTTP requests
type ProductHandlers struct {
	catalog services.CatalogService
	minio   services.MinioService
	bucket  string
}

// NewProductHandlers creates a new product handlers instance
func NewProductHandlers(catalog services.CatalogService, minio services.MinioService, bucket string) *ProductHandlers {
	return &ProductHandlers{catalog: catalog, minio: minio, bucket: bucket}
}

// ListProductsRequest represents query parameters for listing products
type ListProductsRequest struct {
	Limit       int    `query:"limit"`
	Offset      int    `query:"offset"`
	IsActive    *bool  `query:"is_active"`
	IsFeatured  *bool  `query:"is_featured"`
	Category    string `query:"category"`
	Subcategory string `query:"subcategory"`
	ProductType string `query:"type"`
	Search      string `query:"search"`
}

// ListProducts returns products filtered by the query parameters
func (h *ProductHandlers) ListProducts(c echo.Context) error {
	ctx := c.Request().Context()

	var req ListProductsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid query parameters")
	}
	req.Limit, req.Offset = common.ValidatePaginationParams(req.Limit, req.Offset)

	filter := &models.ProductFilter{
		IsActive:        req.IsActive,
		IsFeatured:      req.IsFeatured,
		CategorySlug:    req.Category,
		SubcategorySlug: req.Subcategory,
		ProductType:     req.ProductType,
		Search:          req.Search,
		Limit:           req.Limit,
		Offset:          req.Offset,
	}

	products, err := h.catalog.ListProducts(ctx, filter)
	if err != nil {
		return common.RespondError(c, err)
	}
	return common.Success(c, http.StatusOK, "Products retrieved successfully", products)
}

// GetProduct returns one product view by slug
func (h *ProductHandlers) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	slug := c.Param("slug")

	product, err := h.catalog.GetProduct(ctx, slug)
	if err != nil {
		return common.RespondError(c, err)
	}
	return common.Success(c, http.StatusOK, "Product retrieved successfully", product)
}

// CreateProduct creates a product under an existing subcategory
func (h *ProductHandlers) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()

	var in services.ProductInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	product, err := h.catalog.CreateProduct(ctx, &in)
	if err != nil {
		return common.RespondError(c, err)
	}
	return common.Success(c, http.StatusCreated, "Product created successfully", product)
}

// UpdateProduct applies a partial update to the product at slug
func (h *ProductHandlers) UpdateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	slug := c.Param("slug")

	var in services.ProductUpdate
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	product, err := h.catalog.UpdateProduct(ctx, slug, &in)
	if err != nil {
		return common.RespondError(c, err)
	}
	return common.Success(c, http.StatusOK, "Product updated successfully", product)
}

// DeleteProduct removes the product and its description blocks
func (h *ProductHandlers) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()
	slug := c.Param("slug")

	if err := h.catalog.DeleteProduct(ctx, slug); err != nil {
		return common.RespondError(c, err)
	}
	return common.Success(c, http.StatusOK, "Product deleted successfully", nil)
}

// allowedImageTypes are the content types accepted for product images.
var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// UploadProductImage stores an image in object storage and points the
// product's image field at it.
func (h *ProductHandlers) UploadProductImage(c echo.Context) error {
	ctx := c.Request().Context()
	slug := c.Param("slug")

	product, err := h.catalog.GetProduct(ctx, slug)
	if err != nil {
		return common.RespondError(c, err)
	}

	file, err := c.FormFile("image")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Image file is required")
	}

	const maxFileSize = 5 * 1024 * 1024 // 5MB
	if file.Size > maxFileSize {
		return echo.NewHTTPError(http.StatusBadRequest, "File size exceeds maximum limit of 5MB")
	}

	src, err := file.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to open image file")
	}
	defer src.Close()

	buffer := make([]byte, 512)
	n, err := src.Read(buffer)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to read file content")
	}
	contentType := http.DetectContentType(buffer[:n])
	if !allowedImageTypes[contentType] {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid file type. Only JPEG, PNG, GIF, and WebP images are allowed")
	}
	if _, err := src.Seek(0, 0); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to rewind image file")
	}

	objectName := fmt.Sprintf("products/%s/%d-%s", product.Slug, time.Now().UnixNano(), file.Filename)
	if err := h.minio.UploadImage(ctx, h.bucket, objectName, src, file.Size, contentType); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to store image")
	}

	updated, err := h.catalog.UpdateProduct(ctx, slug, &services.ProductUpdate{Image: &objectName})
	if err != nil {
		return common.RespondError(c, err)
	}
	return common.Success(c, http.StatusOK, "Product image uploaded successfully", updated)
}

// GetProductImageURL returns a short-lived presigned URL for the product image
func (h *ProductHandlers) GetProductImageURL(c echo.Context) error {
	ctx := c.Request().Context()
	slug := c.Param("slug")

	product, err := h.catalog.GetProduct(ctx, slug)
	if err != nil {
		return common.RespondError(c, err)
	}
	if product.Image == nil || *product.Image == "" {
		return common.RespondError(c, common.NotFoundf("product %q has no image", slug))
	}

	url, err := h.minio.GetPresignedURL(ctx, h.bucket, *product.Image, 15*time.Minute)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to generate image URL")
	}
	return common.Success(c, http.StatusOK, "Image URL generated successfully", map[string]string{"url": url})
}

// DeleteProductImage removes the stored image and clears the product's image field
func (h *ProductHandlers) DeleteProductImage(c echo.Context) error {
	ctx := c.Request().Context()
	slug := c.Param("slug")

	product, err := h.catalog.GetProduct(ctx, slug)
	if err != nil {
		return common.RespondError(c, err)
	}
	if product.Image == nil || *product.Image == "" {
		return common.RespondError(c, common.NotFoundf("product %q has no image", slug))
	}

	if err := h.minio.DeleteImage(ctx, h.bucket, *product.Image); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete image")
	}

	empty := ""
	updated, err := h.catalog.UpdateProduct(ctx, slug, &services.ProductUpdate{Image: &empty})
	if err != nil {
		return common.RespondError(c, err)
	}
	return common.Success(c, http.StatusOK, "Product image deleted successfully", updated)
}
