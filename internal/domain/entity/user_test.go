package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserName(t *testing.T) {
	u := &User{DisplayName: "Ali", FirstName: "Alice", LastName: "Nguyen", Email: "alice@example.com"}
	assert.Equal(t, "Ali", u.Name())

	u.DisplayName = ""
	assert.Equal(t, "Alice Nguyen", u.Name())

	u.FirstName = ""
	assert.Equal(t, "Nguyen", u.Name())

	u.LastName = ""
	assert.Equal(t, "alice", u.Name())

	u.Email = ""
	assert.Equal(t, "", u.Name())
}

func TestDefaultNotificationPreferences(t *testing.T) {
	prefs := DefaultNotificationPreferences()

	assert.True(t, prefs.PushNotifications)
	assert.True(t, prefs.BookingNotifications)
	assert.False(t, prefs.MarketingEmails)
	assert.False(t, prefs.QuietHoursEnabled)
	assert.Equal(t, "UTC", prefs.Timezone)
}
