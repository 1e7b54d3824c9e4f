package router

import (
	"github.com/labstack/echo/v4"

	"rentitforward/internal/adapter/api/handler"
	"rentitforward/internal/adapter/api/middleware"
)

func SetupUserRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	userHandler := handler.GetUserHandler()

	e.POST("/v1/auth/register", userHandler.Register, middleware.AuthRateLimit())

	e.GET("/v1/users/:id", userHandler.GetProfile)
	e.GET("/v1/users/:id/reviews", handler.GetReviewHandler().ListUserReviews)

	me := e.Group("/v1/me")
	me.Use(authMiddleware.Authenticate)
	me.GET("", userHandler.Me)
	me.PUT("", userHandler.UpdateProfile)
	me.PUT("/password", userHandler.ChangePassword)
}
