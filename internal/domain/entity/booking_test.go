package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	assert.True(t, CanTransition(BookingStatusPending, BookingStatusPaymentRequired))
	assert.True(t, CanTransition(BookingStatusPaymentRequired, BookingStatusConfirmed))
	assert.True(t, CanTransition(BookingStatusConfirmed, BookingStatusActive))
	assert.True(t, CanTransition(BookingStatusActive, BookingStatusCompleted))
	assert.True(t, CanTransition(BookingStatusDisputed, BookingStatusRefunded))

	// No skipping payment or resurrecting terminal states.
	assert.False(t, CanTransition(BookingStatusPaymentRequired, BookingStatusActive))
	assert.False(t, CanTransition(BookingStatusCancelled, BookingStatusConfirmed))
	assert.False(t, CanTransition(BookingStatusCompleted, BookingStatusActive))
	assert.False(t, CanTransition(BookingStatusRefunded, BookingStatusPending))
	assert.False(t, CanTransition("unknown", BookingStatusPending))
}
