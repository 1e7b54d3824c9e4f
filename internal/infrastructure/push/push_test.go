package push

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"rentitforward/internal/domain/entity"
)

func TestChannelFor(t *testing.T) {
	assert.Equal(t, "bookings", ChannelFor(entity.NotificationBookingRequest))
	assert.Equal(t, "payments", ChannelFor(entity.NotificationPaymentFailed))
	assert.Equal(t, "messages", ChannelFor(entity.NotificationMessageReceived))
	assert.Equal(t, "reviews", ChannelFor(entity.NotificationReviewRequest))
	assert.Equal(t, "listings", ChannelFor(entity.NotificationListingApproved))
	assert.Equal(t, "system", ChannelFor(entity.NotificationReminder))
	assert.Equal(t, "default", ChannelFor(entity.NotificationType("other")))
}

func TestCategoryFor(t *testing.T) {
	assert.Equal(t, "booking", CategoryFor(entity.NotificationBookingConfirmed))
	assert.Equal(t, "message", CategoryFor(entity.NotificationMessageReceived))
	assert.Equal(t, "payment", CategoryFor(entity.NotificationPaymentReceived))
	assert.Equal(t, "general", CategoryFor(entity.NotificationSystemAnnouncement))
}

func TestAbsoluteURL(t *testing.T) {
	assert.Equal(t, "https://app.example.com/bookings/1", AbsoluteURL("/bookings/1", "https://app.example.com"))
	assert.Equal(t, "https://app.example.com/bookings/1", AbsoluteURL("bookings/1", "https://app.example.com/"))
	assert.Equal(t, "https://other.com/x", AbsoluteURL("https://other.com/x", "https://app.example.com"))
	assert.Equal(t, "", AbsoluteURL("", "https://app.example.com"))
}

func TestDataPayload(t *testing.T) {
	notification := &entity.Notification{
		ID:        "n1",
		UserID:    "u1",
		Type:      entity.NotificationBookingRequest,
		ActionURL: "/dashboard/bookings",
		Data:      map[string]string{"booking_id": "b1"},
	}

	payload := DataPayload(notification)

	assert.Equal(t, "booking_request", payload["type"])
	assert.Equal(t, "/dashboard/bookings", payload["action_url"])
	assert.Equal(t, "n1", payload["notification_id"])
	assert.Equal(t, "u1", payload["user_id"])
	assert.Equal(t, "b1", payload["booking_id"])
}
