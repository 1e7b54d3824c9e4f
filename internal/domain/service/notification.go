package service

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"rentitforward/internal/domain/entity"
)

var templateVarPattern = regexp.MustCompile(`\{\{(\w+)\}\}`)

// ReplaceTemplate substitutes {{var}} placeholders from context.
// Unknown placeholders are left intact so the gap is visible.
func ReplaceTemplate(template string, context map[string]interface{}) string {
	return templateVarPattern.ReplaceAllStringFunc(template, func(match string) string {
		key := templateVarPattern.FindStringSubmatch(match)[1]
		value, ok := context[key]
		if !ok {
			return match
		}
		return stringifyTemplateValue(value)
	})
}

// BuildNotification renders the template for a type into a persistable
// notification for userID. The context values are carried along in the
// data payload as strings.
func BuildNotification(notificationType entity.NotificationType, context map[string]interface{}, userID string) (*entity.Notification, error) {
	template, ok := entity.NotificationTemplates[notificationType]
	if !ok {
		return nil, fmt.Errorf("unknown notification type: %s", notificationType)
	}

	data := make(map[string]string, len(context))
	for key, value := range context {
		data[key] = stringifyTemplateValue(value)
	}

	actionURL := ""
	if template.ActionURL != "" {
		actionURL = ReplaceTemplate(template.ActionURL, context)
	}

	return &entity.Notification{
		UserID:    userID,
		Type:      notificationType,
		Title:     ReplaceTemplate(template.Title, context),
		Message:   ReplaceTemplate(template.Message, context),
		Data:      data,
		ActionURL: actionURL,
		IsRead:    false,
	}, nil
}

// ShouldSendNotification applies the user's per-category switches. The
// global push switch gates everything; listing moderation notices ride
// the system category.
func ShouldSendNotification(notificationType entity.NotificationType, prefs entity.NotificationPreferences) bool {
	if !prefs.PushNotifications {
		return false
	}

	switch notificationType {
	case entity.NotificationBookingRequest,
		entity.NotificationBookingConfirmed,
		entity.NotificationBookingCancelled,
		entity.NotificationBookingCompleted:
		return prefs.BookingNotifications
	case entity.NotificationMessageReceived:
		return prefs.MessageNotifications
	case entity.NotificationPaymentReceived,
		entity.NotificationPaymentFailed:
		return prefs.PaymentNotifications
	case entity.NotificationReviewReceived,
		entity.NotificationReviewRequest:
		return prefs.ReviewNotifications
	case entity.NotificationSystemAnnouncement,
		entity.NotificationReminder,
		entity.NotificationListingApproved,
		entity.NotificationListingRejected:
		return prefs.SystemNotifications
	default:
		return true
	}
}

// WithinQuietHours reports whether now, in the user's timezone, falls
// inside the configured quiet window. Overnight windows such as 22:00
// to 08:00 wrap across midnight.
func WithinQuietHours(prefs entity.NotificationPreferences, now time.Time) bool {
	if !prefs.QuietHoursEnabled || prefs.QuietHoursStart == "" || prefs.QuietHoursEnd == "" {
		return false
	}

	location, err := time.LoadLocation(prefs.Timezone)
	if err != nil {
		location = time.UTC
	}
	local := now.In(location)
	current := local.Hour()*60 + local.Minute()

	start, ok := parseClockMinutes(prefs.QuietHoursStart)
	if !ok {
		return false
	}
	end, ok := parseClockMinutes(prefs.QuietHoursEnd)
	if !ok {
		return false
	}

	if start > end {
		return current >= start || current <= end
	}
	return current >= start && current <= end
}

// Urgency classifies how soon a notification must reach the user.
type Urgency string

const (
	UrgencyImmediate Urgency = "immediate"
	UrgencyNormal    Urgency = "normal"
	UrgencyLow       Urgency = "low"
)

// NotificationUrgency maps a type to its delivery urgency: failed
// payments go out immediately, announcement-grade types can wait,
// everything else rides normal delivery.
func NotificationUrgency(notificationType entity.NotificationType) Urgency {
	switch notificationType {
	case entity.NotificationPaymentFailed:
		return UrgencyImmediate
	case entity.NotificationReviewRequest,
		entity.NotificationSystemAnnouncement,
		entity.NotificationReminder:
		return UrgencyLow
	default:
		return UrgencyNormal
	}
}

// Priority levels for push delivery, 10 highest.
const (
	PriorityImmediate = 10
	PriorityHigh      = 9
	PriorityNormal    = 7
	PriorityLow       = 5
	PriorityMarketing = 3
)

// NotificationPriority maps a type to its delivery priority. Urgent
// wins over the per-type default.
func NotificationPriority(notificationType entity.NotificationType, urgent bool) int {
	if urgent {
		return PriorityImmediate
	}

	switch notificationType {
	case entity.NotificationPaymentFailed, entity.NotificationBookingRequest:
		return PriorityHigh
	case entity.NotificationBookingConfirmed,
		entity.NotificationPaymentReceived,
		entity.NotificationMessageReceived:
		return PriorityNormal
	case entity.NotificationReviewRequest,
		entity.NotificationListingApproved,
		entity.NotificationReminder:
		return PriorityLow
	case entity.NotificationSystemAnnouncement:
		return PriorityMarketing
	default:
		return PriorityNormal
	}
}

// OptimalSendTime returns when a non-urgent notification should go
// out. Zero time means send now; during quiet hours delivery is
// deferred to the end of the window. Deferral needs a scheduler the
// API server does not run: it sends immediately and relies on
// OptimalTTL to let quiet-hours pushes land once the window opens.
// Clients with their own queues schedule against this value.
func OptimalSendTime(prefs entity.NotificationPreferences, urgency Urgency, now time.Time) time.Time {
	if urgency == UrgencyImmediate {
		return time.Time{}
	}
	if !WithinQuietHours(prefs, now) {
		return time.Time{}
	}

	end, ok := parseClockMinutes(prefs.QuietHoursEnd)
	if !ok {
		return time.Time{}
	}

	location, err := time.LoadLocation(prefs.Timezone)
	if err != nil {
		location = time.UTC
	}
	local := now.In(location)
	sendAt := time.Date(local.Year(), local.Month(), local.Day(), end/60, end%60, 0, 0, location)
	if !sendAt.After(local) {
		sendAt = sendAt.AddDate(0, 0, 1)
	}
	return sendAt
}

// OptimalTTL picks a push TTL in seconds: urgent sends expire fast,
// quiet-hours sends get extra time to land after the window opens.
func OptimalTTL(prefs entity.NotificationPreferences, urgency Urgency, now time.Time) int {
	if urgency == UrgencyImmediate {
		return 3600
	}
	if WithinQuietHours(prefs, now) {
		return 172800
	}
	if urgency == UrgencyLow {
		return 604800
	}
	return 86400
}

// ValidClockTime reports whether clock is an HH:MM wall time.
func ValidClockTime(clock string) bool {
	_, ok := parseClockMinutes(clock)
	return ok
}

func parseClockMinutes(clock string) (int, bool) {
	parts := strings.SplitN(clock, ":", 2)
	if len(parts) != 2 {
		return 0, false
	}
	var hour, minute int
	if _, err := fmt.Sscanf(clock, "%d:%d", &hour, &minute); err != nil {
		return 0, false
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, false
	}
	return hour*60 + minute, true
}

func stringifyTemplateValue(value interface{}) string {
	switch v := value.(type) {
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	case float64:
		// Trim the trailing .00 for whole amounts.
		if v == float64(int64(v)) {
			return fmt.Sprintf("%d", int64(v))
		}
		return fmt.Sprintf("%.2f", v)
	case int, int32, int64:
		return fmt.Sprintf("%d", v)
	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(encoded)
	}
}
