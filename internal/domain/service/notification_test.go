package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"rentitforward/internal/domain/entity"
)

func TestReplaceTemplate(t *testing.T) {
	context := map[string]interface{}{
		"renter_name": "Alice",
		"duration":    3,
		"amount":      45.5,
	}

	assert.Equal(t, "Alice wants it for 3 days",
		ReplaceTemplate("{{renter_name}} wants it for {{duration}} days", context))
	assert.Equal(t, "You received $45.50",
		ReplaceTemplate("You received ${{amount}}", context))

	// Unknown placeholders stay visible.
	assert.Equal(t, "Hello {{missing}}",
		ReplaceTemplate("Hello {{missing}}", context))
}

func TestReplaceTemplateWholeAmounts(t *testing.T) {
	assert.Equal(t, "Paid $120",
		ReplaceTemplate("Paid ${{amount}}", map[string]interface{}{"amount": 120.0}))
}

func TestBuildNotification(t *testing.T) {
	notification, err := BuildNotification(entity.NotificationBookingRequest, map[string]interface{}{
		"renter_name": "Alice",
		"item_title":  "Power Drill",
		"duration":    3,
		"booking_id":  "bk_1",
	}, "user_1")

	assert.NoError(t, err)
	assert.Equal(t, "user_1", notification.UserID)
	assert.Equal(t, entity.NotificationBookingRequest, notification.Type)
	assert.Equal(t, "New Booking Request", notification.Title)
	assert.Equal(t, `Alice wants to rent your "Power Drill" for 3 days`, notification.Message)
	assert.Equal(t, "/dashboard/bookings", notification.ActionURL)
	assert.Equal(t, "3", notification.Data["duration"])
	assert.False(t, notification.IsRead)
}

func TestBuildNotificationTemplatedActionURL(t *testing.T) {
	notification, err := BuildNotification(entity.NotificationBookingConfirmed, map[string]interface{}{
		"item_title": "Tent",
		"booking_id": "bk_42",
	}, "user_1")

	assert.NoError(t, err)
	assert.Equal(t, "/bookings/bk_42", notification.ActionURL)
}

func TestBuildNotificationUnknownType(t *testing.T) {
	_, err := BuildNotification(entity.NotificationType("nonsense"), nil, "user_1")
	assert.Error(t, err)
}

func TestShouldSendNotification(t *testing.T) {
	prefs := entity.DefaultNotificationPreferences()

	assert.True(t, ShouldSendNotification(entity.NotificationBookingRequest, prefs))
	assert.True(t, ShouldSendNotification(entity.NotificationMessageReceived, prefs))

	prefs.BookingNotifications = false
	assert.False(t, ShouldSendNotification(entity.NotificationBookingRequest, prefs))
	assert.True(t, ShouldSendNotification(entity.NotificationPaymentReceived, prefs))

	// Moderation notices ride the system switch.
	prefs.SystemNotifications = false
	assert.False(t, ShouldSendNotification(entity.NotificationListingApproved, prefs))

	// The global switch gates everything.
	prefs.PushNotifications = false
	assert.False(t, ShouldSendNotification(entity.NotificationPaymentReceived, prefs))
}

func TestWithinQuietHoursOvernight(t *testing.T) {
	prefs := entity.NotificationPreferences{
		QuietHoursEnabled: true,
		QuietHoursStart:   "22:00",
		QuietHoursEnd:     "08:00",
		Timezone:          "UTC",
	}

	assert.True(t, WithinQuietHours(prefs, time.Date(2025, 6, 1, 23, 30, 0, 0, time.UTC)))
	assert.True(t, WithinQuietHours(prefs, time.Date(2025, 6, 1, 6, 0, 0, 0, time.UTC)))
	assert.False(t, WithinQuietHours(prefs, time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)))

	prefs.QuietHoursEnabled = false
	assert.False(t, WithinQuietHours(prefs, time.Date(2025, 6, 1, 23, 30, 0, 0, time.UTC)))
}

func TestWithinQuietHoursSameDay(t *testing.T) {
	prefs := entity.NotificationPreferences{
		QuietHoursEnabled: true,
		QuietHoursStart:   "13:00",
		QuietHoursEnd:     "15:00",
		Timezone:          "UTC",
	}

	assert.True(t, WithinQuietHours(prefs, time.Date(2025, 6, 1, 14, 0, 0, 0, time.UTC)))
	assert.False(t, WithinQuietHours(prefs, time.Date(2025, 6, 1, 16, 0, 0, 0, time.UTC)))
}

func TestNotificationPriority(t *testing.T) {
	assert.Equal(t, PriorityImmediate, NotificationPriority(entity.NotificationReminder, true))
	assert.Equal(t, PriorityHigh, NotificationPriority(entity.NotificationPaymentFailed, false))
	assert.Equal(t, PriorityNormal, NotificationPriority(entity.NotificationMessageReceived, false))
	assert.Equal(t, PriorityLow, NotificationPriority(entity.NotificationReviewRequest, false))
	assert.Equal(t, PriorityMarketing, NotificationPriority(entity.NotificationSystemAnnouncement, false))
}

func TestNotificationUrgency(t *testing.T) {
	assert.Equal(t, UrgencyImmediate, NotificationUrgency(entity.NotificationPaymentFailed))
	assert.Equal(t, UrgencyLow, NotificationUrgency(entity.NotificationReviewRequest))
	assert.Equal(t, UrgencyLow, NotificationUrgency(entity.NotificationSystemAnnouncement))
	assert.Equal(t, UrgencyNormal, NotificationUrgency(entity.NotificationBookingRequest))

	// A failed payment escalates all the way to immediate priority and
	// the short TTL.
	urgency := NotificationUrgency(entity.NotificationPaymentFailed)
	priority := NotificationPriority(entity.NotificationPaymentFailed, urgency == UrgencyImmediate)
	assert.Equal(t, PriorityImmediate, priority)
	assert.Equal(t, 3600, OptimalTTL(entity.NotificationPreferences{}, urgency, time.Now()))
}

func TestOptimalSendTime(t *testing.T) {
	prefs := entity.NotificationPreferences{
		QuietHoursEnabled: true,
		QuietHoursStart:   "22:00",
		QuietHoursEnd:     "08:00",
		Timezone:          "UTC",
	}

	// Urgent always goes now.
	assert.True(t, OptimalSendTime(prefs, UrgencyImmediate, time.Date(2025, 6, 1, 23, 0, 0, 0, time.UTC)).IsZero())

	// Outside quiet hours goes now.
	assert.True(t, OptimalSendTime(prefs, UrgencyNormal, time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)).IsZero())

	// Inside quiet hours defers to the end of the window.
	deferred := OptimalSendTime(prefs, UrgencyNormal, time.Date(2025, 6, 1, 23, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC), deferred)
}

func TestOptimalTTL(t *testing.T) {
	prefs := entity.NotificationPreferences{
		QuietHoursEnabled: true,
		QuietHoursStart:   "22:00",
		QuietHoursEnd:     "08:00",
		Timezone:          "UTC",
	}
	day := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	night := time.Date(2025, 6, 1, 23, 0, 0, 0, time.UTC)

	assert.Equal(t, 3600, OptimalTTL(prefs, UrgencyImmediate, night))
	assert.Equal(t, 172800, OptimalTTL(prefs, UrgencyNormal, night))
	assert.Equal(t, 604800, OptimalTTL(prefs, UrgencyLow, day))
	assert.Equal(t, 86400, OptimalTTL(prefs, UrgencyNormal, day))
}

func TestValidClockTime(t *testing.T) {
	assert.True(t, ValidClockTime("08:30"))
	assert.True(t, ValidClockTime("23:59"))
	assert.False(t, ValidClockTime("24:00"))
	assert.False(t, ValidClockTime("8am"))
	assert.False(t, ValidClockTime(""))
}
