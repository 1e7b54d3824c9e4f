package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCalculateDurationInclusive(t *testing.T) {
	start := time.Date(2025, 6, 1, 14, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 5, 9, 0, 0, 0, time.UTC)

	// Both endpoints count, regardless of time of day.
	assert.Equal(t, 5, CalculateDuration(start, end))
	assert.Equal(t, 1, CalculateDuration(start, start))
}

func TestCalculateDurationAcrossDSTChange(t *testing.T) {
	sydney, err := time.LoadLocation("Australia/Sydney")
	if !assert.NoError(t, err) {
		return
	}

	// Clocks go forward on 2025-10-05 (a 23-hour day) and back on
	// 2025-04-06 (a 25-hour day); both still count as whole days.
	springStart := time.Date(2025, 10, 5, 0, 0, 0, 0, sydney)
	springEnd := time.Date(2025, 10, 6, 0, 0, 0, 0, sydney)
	assert.Equal(t, 2, CalculateDuration(springStart, springEnd))

	fallStart := time.Date(2025, 4, 6, 0, 0, 0, 0, sydney)
	fallEnd := time.Date(2025, 4, 7, 0, 0, 0, 0, sydney)
	assert.Equal(t, 2, CalculateDuration(fallStart, fallEnd))

	assert.Equal(t, 8, CalculateDuration(
		time.Date(2025, 10, 1, 0, 0, 0, 0, sydney),
		time.Date(2025, 10, 8, 0, 0, 0, 0, sydney),
	))
}

func TestValidBookingGapAcrossDSTChange(t *testing.T) {
	sydney, err := time.LoadLocation("Australia/Sydney")
	if !assert.NoError(t, err) {
		return
	}

	prevEnd := time.Date(2025, 10, 4, 0, 0, 0, 0, sydney)
	nextStart := time.Date(2025, 10, 6, 0, 0, 0, 0, sydney)
	assert.True(t, ValidBookingGap(prevEnd, nextStart, 2))
}

func TestGenerateDateRange(t *testing.T) {
	start := time.Date(2025, 6, 28, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 7, 2, 0, 0, 0, 0, time.UTC)

	dates := GenerateDateRange(start, end)

	assert.Equal(t, []string{"2025-06-28", "2025-06-29", "2025-06-30", "2025-07-01", "2025-07-02"}, dates)
	assert.Empty(t, GenerateDateRange(end, start))
}

func TestIsDateAvailable(t *testing.T) {
	availability := []DayAvailability{
		{Date: "2025-06-01", Status: DateBooked, BookingID: "b1"},
		{Date: "2025-06-02", Status: DateAvailable},
	}

	assert.False(t, IsDateAvailable("2025-06-01", availability))
	assert.True(t, IsDateAvailable("2025-06-02", availability))
	// Days with no record default to available.
	assert.True(t, IsDateAvailable("2025-06-03", availability))
}

func TestCheckDateRangeAvailability(t *testing.T) {
	availability := []DayAvailability{
		{Date: "2025-06-02", Status: DateBooked, BookingID: "b1"},
		{Date: "2025-06-04", Status: DateBlocked, BlockedReason: "owner_blocked"},
	}
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC)

	available, conflicts := CheckDateRangeAvailability(start, end, availability)

	assert.False(t, available)
	assert.Equal(t, []string{"2025-06-02", "2025-06-04"}, conflicts)

	available, conflicts = CheckDateRangeAvailability(start, end, nil)
	assert.True(t, available)
	assert.Empty(t, conflicts)
}

func TestValidateDateRange(t *testing.T) {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	valid := ValidateDateRange(
		time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 7, 0, 0, 0, 0, time.UTC),
		now,
	)
	assert.Empty(t, valid)

	// Same-day start still passes because only whole days count.
	sameDay := ValidateDateRange(
		time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
		now,
	)
	assert.Empty(t, sameDay)

	past := ValidateDateRange(
		time.Date(2025, 5, 20, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 7, 0, 0, 0, 0, time.UTC),
		now,
	)
	assert.Contains(t, past, "Start date cannot be in the past")

	inverted := ValidateDateRange(
		time.Date(2025, 6, 7, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC),
		now,
	)
	assert.Contains(t, inverted, "End date must be after start date")

	missing := ValidateDateRange(time.Time{}, time.Time{}, now)
	assert.Contains(t, missing, "Start date is required")
	assert.Contains(t, missing, "End date is required")

	tooFar := ValidateDateRange(
		time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 7, 5, 0, 0, 0, 0, time.UTC),
		now,
	)
	assert.Contains(t, tooFar, "Start date is too far in the future")
}

func TestNextAvailableDate(t *testing.T) {
	availability := []DayAvailability{
		{Date: "2025-06-01", Status: DateBooked},
		{Date: "2025-06-02", Status: DateBooked},
		{Date: "2025-06-03", Status: DateBlocked},
	}
	from := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	next, found := NextAvailableDate(from, availability, 0)
	assert.True(t, found)
	assert.Equal(t, "2025-06-04", next.Format(DateKeyLayout))

	_, found = NextAvailableDate(from, availability, 2)
	assert.False(t, found)
}

func TestValidBookingGap(t *testing.T) {
	prevEnd := time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC)

	assert.True(t, ValidBookingGap(prevEnd, time.Date(2025, 6, 7, 0, 0, 0, 0, time.UTC), 2))
	assert.False(t, ValidBookingGap(prevEnd, time.Date(2025, 6, 6, 0, 0, 0, 0, time.UTC), 2))
	assert.True(t, ValidBookingGap(prevEnd, time.Date(2025, 6, 6, 0, 0, 0, 0, time.UTC), 0))
}

func TestBookingBlocks(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC)

	blocks := BookingBlocks(start, end, "b1", DateTentative)

	assert.Len(t, blocks, 3)
	assert.Equal(t, "2025-06-01", blocks[0].Date)
	assert.Equal(t, DateTentative, blocks[0].Status)
	assert.Equal(t, "b1", blocks[0].BookingID)

	// Empty status defaults to booked.
	defaulted := BookingBlocks(start, end, "b2", "")
	assert.Equal(t, DateBooked, defaulted[0].Status)
}

func TestUnavailableDates(t *testing.T) {
	availability := []DayAvailability{
		{Date: "2025-06-01", Status: DateBooked},
		{Date: "2025-06-02", Status: DateAvailable},
		{Date: "2025-06-03", Status: DateBlocked},
	}

	assert.Equal(t, []string{"2025-06-01", "2025-06-03"}, UnavailableDates(availability))
}
