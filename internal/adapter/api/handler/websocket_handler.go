package handler

import (
	"net/http"

	gorillaws "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"rentitforward/internal/adapter/api/middleware"
	"rentitforward/internal/infrastructure/realtime"
	"rentitforward/pkg/errors"
)

type WebSocketHandler struct {
	manager        *realtime.Manager
	authMiddleware *middleware.AuthMiddleware
}

var upgrader = gorillaws.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // TODO: restrict to the app origins before launch
	},
}

func NewWebSocketHandler(manager *realtime.Manager, authMiddleware *middleware.AuthMiddleware) *WebSocketHandler {
	return &WebSocketHandler{
		manager:        manager,
		authMiddleware: authMiddleware,
	}
}

// HandleNotificationStream upgrades the connection and attaches it as
// the user's live notification stream. Browsers cannot set headers on
// websocket requests, so the token may come as a query parameter.
func (h *WebSocketHandler) HandleNotificationStream(c echo.Context) error {
	userID, ok := c.Get("uid").(string)
	if !ok || userID == "" {
		token := c.QueryParam("token")
		if token == "" {
			return errors.Unauthorized("Authentication required", nil)
		}
		uid, err := h.authMiddleware.GetUIDFromToken(c.Request().Context(), token)
		if err != nil {
			return errors.Unauthorized("Invalid or expired token", err)
		}
		userID = uid
	}

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return errors.Internal("Failed to upgrade connection", err)
	}

	client := &realtime.Client{
		UserID: userID,
		Conn:   conn,
		Send:   make(chan []byte, 256),
	}

	h.manager.Register <- client

	go client.ReadPump(h.manager)
	go client.WritePump()

	return nil
}
