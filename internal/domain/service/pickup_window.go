package service

import (
	"fmt"
	"time"

	"rentitforward/internal/domain/entity"
)

// PickupDateLayout matches the long-form date shown next to the
// pickup button, e.g. "Monday, June 2, 2025".
const PickupDateLayout = "Monday, January 2, 2006"

// PickupInfo describes the pickup/return button state for a booking
// at a given moment. The window runs from 12:00 AM on the start date
// through 11:59 PM on the end date.
type PickupInfo struct {
	CanConfirmPickup  bool   `json:"can_confirm_pickup"`
	CanReturn         bool   `json:"can_return"`
	HasBeenPickedUp   bool   `json:"has_been_picked_up"`
	ShowPickupButton  bool   `json:"show_pickup_button"`
	IsPickupAvailable bool   `json:"is_pickup_available"`
	IsReturnAvailable bool   `json:"is_return_available"`
	ButtonText        string `json:"pickup_button_text"`
	ButtonNote        string `json:"pickup_button_note,omitempty"`
	DaysUntilPickup   int    `json:"days_until_pickup"` // -1 when not applicable
	DaysUntilReturn   int    `json:"days_until_return"` // -1 when not applicable
}

// GetPickupInfo computes the button state purely from the booking and
// the supplied clock time, so callers can evaluate any moment.
func GetPickupInfo(booking *entity.Booking, now time.Time) PickupInfo {
	windowStart := startOfDay(booking.StartDate)
	windowEnd := endOfDay(booking.EndDate)

	beforeWindow := now.Before(windowStart)
	afterWindow := now.After(windowEnd)
	withinWindow := !beforeWindow && !afterWindow

	daysUntilPickup := -1
	if beforeWindow {
		daysUntilPickup = dayCount(now, windowStart)
	}
	daysUntilReturn := -1
	if withinWindow {
		// Any part of the final day still counts as a day to return.
		daysUntilReturn = dayCount(now, windowEnd) + 1
	}

	hasBeenPickedUp := booking.Status == entity.BookingStatusActive || booking.PickupConfirmed
	showPickupButton := booking.Status == entity.BookingStatusConfirmed ||
		booking.Status == entity.BookingStatusPaymentRequired

	isPickupAvailable := withinWindow && booking.Status == entity.BookingStatusConfirmed && !hasBeenPickedUp
	isReturnAvailable := withinWindow && hasBeenPickedUp

	var buttonText string
	switch {
	case hasBeenPickedUp && isReturnAvailable:
		buttonText = "Confirm Return"
	case beforeWindow:
		buttonText = "Confirm Pickup (Not Available Yet)"
	case afterWindow && !hasBeenPickedUp:
		buttonText = "Pickup Date Passed"
	case withinWindow && booking.Status != entity.BookingStatusConfirmed:
		buttonText = "Complete Payment First"
	default:
		buttonText = "Confirm Pickup"
	}

	var buttonNote string
	switch {
	case beforeWindow && daysUntilPickup > 0:
		buttonNote = fmt.Sprintf(
			"Pickup button will be active starting %s at 12:00 AM (%d day%s from now)",
			booking.StartDate.Format(PickupDateLayout),
			daysUntilPickup,
			plural(daysUntilPickup),
		)
	case afterWindow && !hasBeenPickedUp:
		buttonNote = "Pickup date has passed. Contact support if you need assistance."
	case withinWindow && booking.Status != entity.BookingStatusConfirmed && !hasBeenPickedUp:
		buttonNote = "Complete payment first to enable pickup confirmation."
	case hasBeenPickedUp && isReturnAvailable:
		buttonNote = "Ready for return confirmation."
	case hasBeenPickedUp:
		buttonNote = fmt.Sprintf(
			"Return confirmation available until %s at 11:59 PM",
			booking.EndDate.Format(PickupDateLayout),
		)
	}

	return PickupInfo{
		CanConfirmPickup:  isPickupAvailable,
		CanReturn:         isReturnAvailable,
		HasBeenPickedUp:   hasBeenPickedUp,
		ShowPickupButton:  showPickupButton,
		IsPickupAvailable: isPickupAvailable,
		IsReturnAvailable: isReturnAvailable,
		ButtonText:        buttonText,
		ButtonNote:        buttonNote,
		DaysUntilPickup:   daysUntilPickup,
		DaysUntilReturn:   daysUntilReturn,
	}
}

// WithinPickupWindow reports whether now falls in the inclusive
// start-of-start-day to end-of-end-day window.
func WithinPickupWindow(start, end, now time.Time) bool {
	return !now.Before(startOfDay(start)) && !now.After(endOfDay(end))
}

// PickupWindowDescription renders the window for display.
func PickupWindowDescription(start, end time.Time) string {
	return fmt.Sprintf(
		"Available from %s at 12:00 AM until %s at 11:59 PM",
		start.Format(PickupDateLayout),
		end.Format(PickupDateLayout),
	)
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(999*time.Millisecond), t.Location())
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
