package router

import (
	"github.com/labstack/echo/v4"

	"rentitforward/internal/adapter/api/handler"
	"rentitforward/internal/adapter/api/middleware"
)

func SetupMessageRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	messageHandler := handler.GetMessageHandler()

	messages := e.Group("/v1/messages")
	messages.Use(authMiddleware.Authenticate)
	messages.POST("", messageHandler.SendMessage)

	conversations := e.Group("/v1/conversations")
	conversations.Use(authMiddleware.Authenticate)
	conversations.GET("", messageHandler.ListConversations)
	conversations.GET("/:id", messageHandler.GetConversation)
	conversations.GET("/:id/messages", messageHandler.ListMessages)
	conversations.PUT("/:id/read", messageHandler.MarkConversationRead)
}
