package handler

import (
	"github.com/labstack/echo/v4"

	"rentitforward/internal/domain/entity"
	"rentitforward/internal/usecase"
	"rentitforward/pkg/response"
	"rentitforward/pkg/utils"
)

type NotificationHandler struct {
	notificationUseCase *usecase.NotificationUseCase
}

func NewNotificationHandler(notificationUseCase *usecase.NotificationUseCase) *NotificationHandler {
	return &NotificationHandler{
		notificationUseCase: notificationUseCase,
	}
}

func (h *NotificationHandler) ListNotifications(c echo.Context) error {
	userID := c.Get("uid").(string)
	pagination := utils.GetPaginationParams(c)
	unreadOnly := c.QueryParam("unread") == "true"

	notifications, total, err := h.notificationUseCase.ListNotifications(
		c.Request().Context(),
		userID,
		unreadOnly,
		pagination.PageSize,
		pagination.Offset,
	)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Paginated(c, notifications, total, pagination.Page, pagination.PageSize)
}

func (h *NotificationHandler) UnreadCount(c echo.Context) error {
	userID := c.Get("uid").(string)

	count, err := h.notificationUseCase.CountUnread(c.Request().Context(), userID)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]int64{"unread": count})
}

func (h *NotificationHandler) MarkRead(c echo.Context) error {
	userID := c.Get("uid").(string)

	if err := h.notificationUseCase.MarkRead(c.Request().Context(), userID, c.Param("id")); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]string{"status": "read"})
}

func (h *NotificationHandler) MarkAllRead(c echo.Context) error {
	userID := c.Get("uid").(string)

	if err := h.notificationUseCase.MarkAllRead(c.Request().Context(), userID); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]string{"status": "all read"})
}

func (h *NotificationHandler) RegisterDevice(c echo.Context) error {
	var req usecase.RegisterDeviceInput
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	if err := h.notificationUseCase.RegisterDevice(c.Request().Context(), userID, req); err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, map[string]string{"status": "registered"})
}

type unregisterDeviceRequest struct {
	Token string `json:"token" validate:"required"`
}

func (h *NotificationHandler) UnregisterDevice(c echo.Context) error {
	var req unregisterDeviceRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	if err := h.notificationUseCase.UnregisterDevice(c.Request().Context(), userID, req.Token); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]string{"status": "unregistered"})
}

type announceRequest struct {
	UserIDs   []string `json:"user_ids" validate:"required,min=1"`
	Title     string   `json:"title" validate:"required"`
	Message   string   `json:"message" validate:"required"`
	ActionURL string   `json:"action_url,omitempty"`
}

// Announce is admin-only, guarded by the router.
func (h *NotificationHandler) Announce(c echo.Context) error {
	var req announceRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	err := h.notificationUseCase.Announce(
		c.Request().Context(),
		req.UserIDs,
		req.Title,
		req.Message,
		req.ActionURL,
	)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, map[string]int{"recipients": len(req.UserIDs)})
}

func (h *NotificationHandler) UpdatePreferences(c echo.Context) error {
	var req entity.NotificationPreferences
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	user, err := h.notificationUseCase.UpdatePreferences(c.Request().Context(), userID, req)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, user.Preferences)
}
