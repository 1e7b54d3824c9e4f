package router

import (
	"github.com/labstack/echo/v4"

	"rentitforward/internal/adapter/api/handler"
	"rentitforward/internal/adapter/api/middleware"
)

func SetupNotificationRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware) {
	notificationHandler := handler.GetNotificationHandler()

	notifications := e.Group("/v1/notifications")
	notifications.Use(authMiddleware.Authenticate)
	notifications.GET("", notificationHandler.ListNotifications)
	notifications.GET("/unread-count", notificationHandler.UnreadCount)
	notifications.PUT("/:id/read", notificationHandler.MarkRead)
	notifications.PUT("/read-all", notificationHandler.MarkAllRead)
	notifications.POST("/devices", notificationHandler.RegisterDevice)
	notifications.DELETE("/devices", notificationHandler.UnregisterDevice)
	notifications.PUT("/preferences", notificationHandler.UpdatePreferences)

	admin := e.Group("/v1/admin")
	admin.Use(authMiddleware.Authenticate, adminMiddleware.AdminOnly)
	admin.POST("/announcements", notificationHandler.Announce)
}
