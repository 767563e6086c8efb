package common

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

// SuccessResponse is the envelope returned by every successful API call.
type SuccessResponse struct {
	Status  bool        `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// ErrorResponse is the envelope returned by every failed API call.
type ErrorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Success sends the standard success envelope.
func Success(c echo.Context, status int, message string, data interface{}) error {
	return c.JSON(status, SuccessResponse{Status: true, Message: message, Data: data})
}

// RespondError maps a domain error onto the standard error envelope.
func RespondError(c echo.Context, err error) error {
	code, status := "SERVER_ERROR", http.StatusInternalServerError
	switch {
	case errors.Is(err, ErrNotFound):
		code, status = "NOT_FOUND", http.StatusNotFound
	case errors.Is(err, ErrValidation), errors.Is(err, ErrInvalidName):
		code, status = "VALIDATION_ERROR", http.StatusBadRequest
	case errors.Is(err, ErrConflict), errors.Is(err, ErrAllocationExhausted):
		code, status = "CONFLICT", http.StatusConflict
	}

	var resp ErrorResponse
	resp.Error.Code = code
	resp.Error.Message = err.Error()
	return c.JSON(status, resp)
}

// ValidatePaginationParams clamps limit/offset to sane bounds.
func ValidatePaginationParams(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 1000 {
		limit = 1000
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
