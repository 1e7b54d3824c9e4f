package push

import (
	"context"
	"strings"

	"rentitforward/internal/domain/entity"
)

const (
	// BrandColor tints Android notifications and web icons.
	BrandColor = "#44D62C"

	DefaultTTLSeconds = 86400
)

// SendOptions tunes a single push delivery.
type SendOptions struct {
	Priority   int    // 1-10, above 7 is delivered as high priority
	TTLSeconds int    // 0 means DefaultTTLSeconds
	ImageURL   string // big picture attachment
	ClickURL   string // absolute URL opened on tap
	CollapseID string // replaces earlier pushes with the same ID
}

// Service delivers a rendered notification to a user's devices. The
// returned ID is the provider's message identifier for tracking.
type Service interface {
	Send(ctx context.Context, tokens []string, notification *entity.Notification, opts SendOptions) (string, error)
}

// ChannelFor maps a notification type to its client-side channel, used
// as the Android channel ID and the grouping tag on other platforms.
func ChannelFor(notificationType entity.NotificationType) string {
	switch notificationType {
	case entity.NotificationBookingRequest,
		entity.NotificationBookingConfirmed,
		entity.NotificationBookingCancelled,
		entity.NotificationBookingCompleted:
		return "bookings"
	case entity.NotificationPaymentReceived,
		entity.NotificationPaymentFailed:
		return "payments"
	case entity.NotificationMessageReceived:
		return "messages"
	case entity.NotificationReviewReceived,
		entity.NotificationReviewRequest:
		return "reviews"
	case entity.NotificationListingApproved,
		entity.NotificationListingRejected:
		return "listings"
	case entity.NotificationSystemAnnouncement,
		entity.NotificationReminder:
		return "system"
	default:
		return "default"
	}
}

// CategoryFor maps a notification type to the iOS interactive
// notification category.
func CategoryFor(notificationType entity.NotificationType) string {
	switch notificationType {
	case entity.NotificationBookingRequest,
		entity.NotificationBookingConfirmed,
		entity.NotificationBookingCancelled,
		entity.NotificationBookingCompleted:
		return "booking"
	case entity.NotificationMessageReceived:
		return "message"
	case entity.NotificationPaymentReceived,
		entity.NotificationPaymentFailed:
		return "payment"
	default:
		return "general"
	}
}

// AbsoluteURL resolves a relative action URL against the app base URL.
func AbsoluteURL(actionURL, baseURL string) string {
	if actionURL == "" {
		return ""
	}
	if strings.HasPrefix(actionURL, "http") {
		return actionURL
	}
	if !strings.HasPrefix(actionURL, "/") {
		actionURL = "/" + actionURL
	}
	return strings.TrimSuffix(baseURL, "/") + actionURL
}

// DataPayload flattens a notification into the string map providers
// hand to the client for custom handling.
func DataPayload(notification *entity.Notification) map[string]string {
	data := map[string]string{
		"type":            string(notification.Type),
		"action_url":      notification.ActionURL,
		"notification_id": notification.ID,
		"user_id":         notification.UserID,
	}
	for key, value := range notification.Data {
		data[key] = value
	}
	return data
}
