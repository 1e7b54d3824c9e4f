package utils

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

// Listing, booking and notification feeds default to 20 items and never
// serve more than 100 per page.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// PaginationParams is the page window parsed from a request's "page"
// and "limit" query parameters.
type PaginationParams struct {
	Page     int
	PageSize int
	Offset   int
}

// GetPaginationParams reads the page window from the request, clamping
// out-of-range values back to the defaults.
func GetPaginationParams(c echo.Context) PaginationParams {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	if page <= 0 {
		page = 1
	}

	pageSize, _ := strconv.Atoi(c.QueryParam("limit"))
	if pageSize <= 0 || pageSize > MaxPageSize {
		pageSize = DefaultPageSize
	}

	return PaginationParams{
		Page:     page,
		PageSize: pageSize,
		Offset:   (page - 1) * pageSize,
	}
}
