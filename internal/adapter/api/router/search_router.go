package router

import (
	"github.com/labstack/echo/v4"

	"rentitforward/internal/adapter/api/handler"
	"rentitforward/internal/adapter/api/middleware"
)

func SetupSearchRouter(e *echo.Echo) {
	e.GET("/v1/search/suggestions", handler.GetSearchHandler().Suggestions, middleware.SearchRateLimit())
}
