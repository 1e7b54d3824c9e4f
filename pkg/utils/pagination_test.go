package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func paginationContext(target string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	return e.NewContext(req, httptest.NewRecorder())
}

func TestGetPaginationParams(t *testing.T) {
	params := GetPaginationParams(paginationContext("/v1/listings?page=3&limit=50"))
	assert.Equal(t, 3, params.Page)
	assert.Equal(t, 50, params.PageSize)
	assert.Equal(t, 100, params.Offset)

	// Missing or junk values fall back to the defaults.
	params = GetPaginationParams(paginationContext("/v1/listings"))
	assert.Equal(t, 1, params.Page)
	assert.Equal(t, DefaultPageSize, params.PageSize)
	assert.Equal(t, 0, params.Offset)

	params = GetPaginationParams(paginationContext("/v1/listings?page=-1&limit=9999"))
	assert.Equal(t, 1, params.Page)
	assert.Equal(t, DefaultPageSize, params.PageSize)
}
