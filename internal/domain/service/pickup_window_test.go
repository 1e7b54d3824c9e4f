package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"rentitforward/internal/domain/entity"
)

func confirmedBooking(start, end time.Time) *entity.Booking {
	return &entity.Booking{
		Status:    entity.BookingStatusConfirmed,
		StartDate: start,
		EndDate:   end,
	}
}

func TestGetPickupInfoWithinWindow(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, 6, 3, 12, 0, 0, 0, time.UTC)

	info := GetPickupInfo(confirmedBooking(start, end), now)

	assert.True(t, info.IsPickupAvailable)
	assert.True(t, info.CanConfirmPickup)
	assert.True(t, info.ShowPickupButton)
	assert.False(t, info.HasBeenPickedUp)
	assert.Equal(t, "Confirm Pickup", info.ButtonText)
	assert.Empty(t, info.ButtonNote)
	assert.Equal(t, -1, info.DaysUntilPickup)
	// 2 days plus the rest of June 3 rounds up to 3.
	assert.Equal(t, 3, info.DaysUntilReturn)
}

func TestGetPickupInfoBeforeWindow(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, 5, 30, 9, 0, 0, 0, time.UTC)

	info := GetPickupInfo(confirmedBooking(start, end), now)

	assert.False(t, info.IsPickupAvailable)
	assert.Equal(t, "Confirm Pickup (Not Available Yet)", info.ButtonText)
	assert.Equal(t, 2, info.DaysUntilPickup)
	assert.Equal(t,
		"Pickup button will be active starting Sunday, June 1, 2025 at 12:00 AM (2 days from now)",
		info.ButtonNote)
}

func TestGetPickupInfoBeforeWindowSingular(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, 5, 31, 6, 0, 0, 0, time.UTC)

	info := GetPickupInfo(confirmedBooking(start, end), now)

	assert.Equal(t, 1, info.DaysUntilPickup)
	assert.Contains(t, info.ButtonNote, "(1 day from now)")
}

func TestGetPickupInfoDaysUntilPickupAcrossDSTChange(t *testing.T) {
	sydney, err := time.LoadLocation("Australia/Sydney")
	if !assert.NoError(t, err) {
		return
	}

	// Clocks go back on 2025-04-06, stretching the wait to 49 elapsed
	// hours; it is still 2 calendar days.
	start := time.Date(2025, 4, 7, 0, 0, 0, 0, sydney)
	end := time.Date(2025, 4, 10, 0, 0, 0, 0, sydney)
	now := time.Date(2025, 4, 5, 0, 0, 0, 0, sydney)

	info := GetPickupInfo(confirmedBooking(start, end), now)

	assert.Equal(t, 2, info.DaysUntilPickup)
	assert.Contains(t, info.ButtonNote, "(2 days from now)")
}

func TestGetPickupInfoAfterWindow(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, 6, 6, 0, 30, 0, 0, time.UTC)

	info := GetPickupInfo(confirmedBooking(start, end), now)

	assert.False(t, info.IsPickupAvailable)
	assert.Equal(t, "Pickup Date Passed", info.ButtonText)
	assert.Equal(t, "Pickup date has passed. Contact support if you need assistance.", info.ButtonNote)
	assert.Equal(t, -1, info.DaysUntilPickup)
	assert.Equal(t, -1, info.DaysUntilReturn)
}

func TestGetPickupInfoPaymentRequired(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)

	booking := confirmedBooking(start, end)
	booking.Status = entity.BookingStatusPaymentRequired

	info := GetPickupInfo(booking, now)

	assert.False(t, info.IsPickupAvailable)
	assert.True(t, info.ShowPickupButton)
	assert.Equal(t, "Complete Payment First", info.ButtonText)
	assert.Equal(t, "Complete payment first to enable pickup confirmation.", info.ButtonNote)
}

func TestGetPickupInfoAfterPickup(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, 6, 4, 15, 0, 0, 0, time.UTC)

	booking := confirmedBooking(start, end)
	booking.Status = entity.BookingStatusActive
	booking.PickupConfirmed = true

	info := GetPickupInfo(booking, now)

	assert.True(t, info.HasBeenPickedUp)
	assert.True(t, info.IsReturnAvailable)
	assert.True(t, info.CanReturn)
	assert.False(t, info.IsPickupAvailable)
	assert.Equal(t, "Confirm Return", info.ButtonText)
	assert.Equal(t, "Ready for return confirmation.", info.ButtonNote)
}

func TestWithinPickupWindowBoundaries(t *testing.T) {
	start := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 5, 8, 0, 0, 0, time.UTC)

	// Window boundaries ignore the time-of-day on the booking dates.
	assert.True(t, WithinPickupWindow(start, end, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, WithinPickupWindow(start, end, time.Date(2025, 6, 5, 23, 59, 0, 0, time.UTC)))
	assert.False(t, WithinPickupWindow(start, end, time.Date(2025, 5, 31, 23, 59, 59, 0, time.UTC)))
	assert.False(t, WithinPickupWindow(start, end, time.Date(2025, 6, 6, 0, 0, 0, 0, time.UTC)))
}

func TestPickupWindowDescription(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC)

	assert.Equal(t,
		"Available from Sunday, June 1, 2025 at 12:00 AM until Thursday, June 5, 2025 at 11:59 PM",
		PickupWindowDescription(start, end))
}
