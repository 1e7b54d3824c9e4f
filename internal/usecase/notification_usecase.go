package usecase

import (
	"context"
	"time"

	"rentitforward/internal/domain/entity"
	"rentitforward/internal/domain/repository"
	"rentitforward/internal/domain/service"
	"rentitforward/internal/infrastructure/push"
	"rentitforward/internal/infrastructure/realtime"
	"rentitforward/pkg/errors"
	"rentitforward/pkg/logger"
)

type NotificationUseCase struct {
	notificationRepo repository.NotificationRepository
	tokenRepo        repository.DeviceTokenRepository
	userRepo         repository.UserRepository
	pushService      push.Service
	realtimeManager  *realtime.Manager
}

func NewNotificationUseCase(
	notificationRepo repository.NotificationRepository,
	tokenRepo repository.DeviceTokenRepository,
	userRepo repository.UserRepository,
	pushService push.Service,
	realtimeManager *realtime.Manager,
) *NotificationUseCase {
	return &NotificationUseCase{
		notificationRepo: notificationRepo,
		tokenRepo:        tokenRepo,
		userRepo:         userRepo,
		pushService:      pushService,
		realtimeManager:  realtimeManager,
	}
}

// Notify renders, persists and delivers a notification. It never
// returns an error: delivery is best effort and must not fail the
// product flow that triggered it.
func (uc *NotificationUseCase) Notify(ctx context.Context, userID string, notificationType entity.NotificationType, data map[string]interface{}) {
	if _, err := uc.Send(ctx, userID, notificationType, data); err != nil {
		logger.Error("Notification delivery failed for %s (%s): %v", userID, notificationType, err)
	}
}

// Send renders the template for the type, checks the recipient's
// preferences, stores the notification and pushes it to connected
// websocket clients and registered devices.
func (uc *NotificationUseCase) Send(ctx context.Context, userID string, notificationType entity.NotificationType, data map[string]interface{}) (*entity.Notification, error) {
	notification, err := service.BuildNotification(notificationType, data, userID)
	if err != nil {
		return nil, err
	}

	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := uc.notificationRepo.Create(ctx, notification); err != nil {
		return nil, err
	}

	// Realtime delivery is independent of push preferences; an open app
	// always shows its own activity.
	delivered := uc.realtimeManager != nil && uc.realtimeManager.PushNotification(notification)

	if !service.ShouldSendNotification(notificationType, user.Preferences) {
		return notification, nil
	}

	tokens, err := uc.tokenRepo.ListActiveByUserID(ctx, userID)
	if err != nil {
		logger.Warn("Failed to load device tokens for %s: %v", userID, err)
		return notification, nil
	}
	if len(tokens) == 0 {
		return notification, nil
	}

	now := time.Now()
	urgency := service.NotificationUrgency(notificationType)
	priority := service.NotificationPriority(notificationType, urgency == service.UrgencyImmediate)

	tokenStrings := make([]string, len(tokens))
	for i, t := range tokens {
		tokenStrings[i] = t.Token
	}

	messageID, err := uc.pushService.Send(ctx, tokenStrings, notification, push.SendOptions{
		Priority:   priority,
		TTLSeconds: service.OptimalTTL(user.Preferences, urgency, now),
	})
	if err != nil {
		logger.Warn("Push delivery failed for %s: %v", userID, err)
		return notification, nil
	}

	notification.PushMessageID = messageID
	notification.SentAt = &now
	if delivered {
		notification.DeliveredAt = &now
	}
	if err := uc.notificationRepo.Update(ctx, notification); err != nil {
		logger.Warn("Failed to record push delivery for %s: %v", notification.ID, err)
	}
	return notification, nil
}

// Announce broadcasts a system announcement to every connected client
// and persists it for the named recipients.
func (uc *NotificationUseCase) Announce(ctx context.Context, userIDs []string, title, message, actionURL string) error {
	if title == "" || message == "" {
		return errors.BadRequest("Announcement title and message are required", nil)
	}
	for _, userID := range userIDs {
		uc.Notify(ctx, userID, entity.NotificationSystemAnnouncement, map[string]interface{}{
			"announcement_text": title + ": " + message,
			"action_url":        actionURL,
		})
	}
	if uc.realtimeManager != nil {
		uc.realtimeManager.BroadcastAnnouncement(title + ": " + message)
	}
	return nil
}

func (uc *NotificationUseCase) ListNotifications(ctx context.Context, userID string, unreadOnly bool, limit, offset int) ([]*entity.Notification, int64, error) {
	return uc.notificationRepo.ListByUserID(ctx, userID, unreadOnly, limit, offset)
}

func (uc *NotificationUseCase) CountUnread(ctx context.Context, userID string) (int64, error) {
	return uc.notificationRepo.CountUnread(ctx, userID)
}

func (uc *NotificationUseCase) MarkRead(ctx context.Context, userID, notificationID string) error {
	notification, err := uc.notificationRepo.GetByID(ctx, notificationID)
	if err != nil {
		return err
	}
	if notification.UserID != userID {
		return errors.Forbidden("Notification belongs to another user", nil)
	}
	return uc.notificationRepo.MarkRead(ctx, notificationID)
}

func (uc *NotificationUseCase) MarkAllRead(ctx context.Context, userID string) error {
	return uc.notificationRepo.MarkAllRead(ctx, userID)
}

type RegisterDeviceInput struct {
	Token      string `json:"token" validate:"required"`
	Platform   string `json:"platform" validate:"required,oneof=ios android web"`
	DeviceID   string `json:"device_id,omitempty"`
	AppVersion string `json:"app_version,omitempty"`
}

func (uc *NotificationUseCase) RegisterDevice(ctx context.Context, userID string, input RegisterDeviceInput) error {
	token := &entity.DeviceToken{
		UserID:     userID,
		Token:      input.Token,
		Platform:   input.Platform,
		DeviceID:   input.DeviceID,
		AppVersion: input.AppVersion,
		IsActive:   true,
	}
	if err := uc.tokenRepo.Upsert(ctx, token); err != nil {
		return err
	}
	// The user doc mirrors active tokens for FCM multicast fan-out.
	if err := uc.userRepo.AddPushToken(ctx, userID, input.Token); err != nil {
		logger.Warn("Failed to mirror push token for %s: %v", userID, err)
	}
	return nil
}

func (uc *NotificationUseCase) UnregisterDevice(ctx context.Context, userID, token string) error {
	if err := uc.tokenRepo.Deactivate(ctx, token); err != nil {
		return err
	}
	if err := uc.userRepo.RemovePushToken(ctx, userID, token); err != nil {
		logger.Warn("Failed to remove mirrored push token for %s: %v", userID, err)
	}
	return nil
}

// UpdatePreferences replaces the user's notification preferences.
func (uc *NotificationUseCase) UpdatePreferences(ctx context.Context, userID string, prefs entity.NotificationPreferences) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if prefs.QuietHoursEnabled {
		if !service.ValidClockTime(prefs.QuietHoursStart) || !service.ValidClockTime(prefs.QuietHoursEnd) {
			return nil, errors.BadRequest("Quiet hours must be HH:MM times", nil)
		}
	}
	if prefs.Timezone == "" {
		prefs.Timezone = "UTC"
	}
	user.Preferences = prefs
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
