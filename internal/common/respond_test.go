package common

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func respond(t *testing.T, err error) (int, ErrorResponse) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, RespondError(c, err))

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return rec.Code, resp
}

func TestRespondError_Mapping(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		expectedCode int
		expectedTag  string
	}{
		{"not found", NotFoundf("category %q", "ghost"), http.StatusNotFound, "NOT_FOUND"},
		{"validation", Validationf("price above msrp"), http.StatusBadRequest, "VALIDATION_ERROR"},
		{"invalid name", ErrInvalidName, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"conflict", Conflictf("slug %q", "mice"), http.StatusConflict, "CONFLICT"},
		{"exhausted allocation", ErrAllocationExhausted, http.StatusConflict, "CONFLICT"},
		{"unknown error", errors.New("disk on fire"), http.StatusInternalServerError, "SERVER_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, resp := respond(t, tt.err)
			assert.Equal(t, tt.expectedCode, status)
			assert.Equal(t, tt.expectedTag, resp.Error.Code)
			assert.Contains(t, resp.Error.Message, tt.err.Error())
		})
	}
}

func TestRespondError_WrappedDetailSurvives(t *testing.T) {
	_, resp := respond(t, NotFoundf("product %q", "basic-mouse"))
	assert.Contains(t, resp.Error.Message, "basic-mouse")
}

func TestSuccessEnvelope(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, Success(c, http.StatusOK, "ok", map[string]int{"count": 3}))

	var resp SuccessResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Status)
	assert.Equal(t, "ok", resp.Message)
}

func TestValidatePaginationParams(t *testing.T) {
	limit, offset := ValidatePaginationParams(0, -5)
	assert.Equal(t, 50, limit)
	assert.Equal(t, 0, offset)

	limit, _ = ValidatePaginationParams(5000, 0)
	assert.Equal(t, 1000, limit)

	limit, offset = ValidatePaginationParams(25, 100)
	assert.Equal(t, 25, limit)
	assert.Equal(t, 100, offset)
}
