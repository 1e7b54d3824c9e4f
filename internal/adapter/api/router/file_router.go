package router

import (
	"github.com/labstack/echo/v4"

	"rentitforward/internal/adapter/api/handler"
	"rentitforward/internal/adapter/api/middleware"
)

func SetupFileRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	fileHandler := handler.GetFileHandler()

	files := e.Group("/v1/files")
	files.Use(authMiddleware.Authenticate)
	files.POST("/upload", fileHandler.Upload)
	files.POST("/signed-url", fileHandler.SignedUploadURL)
}
