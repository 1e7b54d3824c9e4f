package service

import (
	"math"
	"time"
)

const (
	// MaxRentalDays caps a single booking's length.
	MaxRentalDays = 365
	// DefaultAvailabilitySearchDays bounds NextAvailableDate scans.
	DefaultAvailabilitySearchDays = 30
	// DateKeyLayout is the yyyy-mm-dd key used for per-day availability.
	DateKeyLayout = "2006-01-02"
)

type AvailabilityStatus string

const (
	DateAvailable AvailabilityStatus = "available"
	DateBooked    AvailabilityStatus = "booked"
	DateBlocked   AvailabilityStatus = "blocked"
	DateTentative AvailabilityStatus = "tentative"
)

// DayAvailability is the availability record for a single calendar day.
type DayAvailability struct {
	Date          string             `json:"date"` // yyyy-mm-dd
	Status        AvailabilityStatus `json:"status"`
	BookingID     string             `json:"booking_id,omitempty"`
	BlockedReason string             `json:"blocked_reason,omitempty"`
}

// CalculateDuration returns the inclusive rental length in days: both
// the pickup day and the return day count, so a same-day rental is 1.
func CalculateDuration(start, end time.Time) int {
	return dayCount(start, end) + 1
}

// GenerateDateRange returns every yyyy-mm-dd key from start to end
// inclusive. An end before start yields an empty slice.
func GenerateDateRange(start, end time.Time) []string {
	var dates []string
	current := startOfDay(start)
	last := startOfDay(end)
	for !current.After(last) {
		dates = append(dates, current.Format(DateKeyLayout))
		current = current.AddDate(0, 0, 1)
	}
	return dates
}

// IsDateAvailable treats a day with no record as available.
func IsDateAvailable(date string, availability []DayAvailability) bool {
	for _, day := range availability {
		if day.Date == date {
			return day.Status == DateAvailable
		}
	}
	return true
}

// UnavailableDates returns the date keys of every non-available day.
func UnavailableDates(availability []DayAvailability) []string {
	var dates []string
	for _, day := range availability {
		if day.Status != DateAvailable {
			dates = append(dates, day.Date)
		}
	}
	return dates
}

// CheckDateRangeAvailability walks the inclusive range and collects
// the days that are not available.
func CheckDateRangeAvailability(start, end time.Time, availability []DayAvailability) (bool, []string) {
	var conflicts []string
	for _, date := range GenerateDateRange(start, end) {
		if !IsDateAvailable(date, availability) {
			conflicts = append(conflicts, date)
		}
	}
	return len(conflicts) == 0, conflicts
}

// ValidateDateRange applies the booking date rules relative to now:
// nothing in the past, nothing beyond a year out, end on or after
// start, and a duration between 1 and MaxRentalDays.
func ValidateDateRange(start, end, now time.Time) []string {
	var errs []string

	if start.IsZero() {
		errs = append(errs, "Start date is required")
	}
	if end.IsZero() {
		errs = append(errs, "End date is required")
	}
	if start.IsZero() || end.IsZero() {
		return errs
	}

	minDate := startOfDay(now)
	maxDate := now.AddDate(0, 0, MaxRentalDays)

	if start.Before(minDate) {
		errs = append(errs, "Start date cannot be in the past")
	}
	if start.After(maxDate) {
		errs = append(errs, "Start date is too far in the future")
	}
	if end.Before(start) {
		errs = append(errs, "End date must be after start date")
	}
	if end.After(maxDate) {
		errs = append(errs, "End date is too far in the future")
	}

	duration := CalculateDuration(start, end)
	if duration < 1 {
		errs = append(errs, "Minimum rental period is 1 day")
	}
	if duration > MaxRentalDays {
		errs = append(errs, "Maximum rental period is 365 days")
	}

	return errs
}

// NextAvailableDate scans forward from fromDate for the first
// available day, checking at most maxDays days. The second return is
// false when nothing in the window is free.
func NextAvailableDate(fromDate time.Time, availability []DayAvailability, maxDays int) (time.Time, bool) {
	if maxDays <= 0 {
		maxDays = DefaultAvailabilitySearchDays
	}
	current := startOfDay(fromDate)
	for i := 0; i < maxDays; i++ {
		if IsDateAvailable(current.Format(DateKeyLayout), availability) {
			return current, true
		}
		current = current.AddDate(0, 0, 1)
	}
	return time.Time{}, false
}

// ValidBookingGap reports whether the whole days between a booking's
// end and the next booking's start meet the listing's minimum gap.
func ValidBookingGap(prevEnd, nextStart time.Time, minimumGapDays int) bool {
	return dayCount(prevEnd, nextStart) >= minimumGapDays
}

// BookingBlocks expands a booking into per-day availability records.
func BookingBlocks(start, end time.Time, bookingID string, status AvailabilityStatus) []DayAvailability {
	if status == "" {
		status = DateBooked
	}
	dates := GenerateDateRange(start, end)
	blocks := make([]DayAvailability, 0, len(dates))
	for _, date := range dates {
		blocks = append(blocks, DayAvailability{
			Date:      date,
			Status:    status,
			BookingID: bookingID,
		})
	}
	return blocks
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// dayCount returns the number of calendar days from a to b. Rounding
// absorbs DST transitions, which make some local days 23 or 25 hours
// long.
func dayCount(a, b time.Time) int {
	return int(math.Round(startOfDay(b).Sub(startOfDay(a)).Hours() / 24))
}
