package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	assert.Equal(t, "power-drill-18v", Slugify("Power Drill 18V"))
	assert.Equal(t, "hello-world", Slugify("  Hello,   World!  "))
	assert.Equal(t, "a-b", Slugify("a___b---"))
	assert.Equal(t, "", Slugify("!!!"))
}

func TestTruncateText(t *testing.T) {
	assert.Equal(t, "short", TruncateText("short", 10))
	assert.Equal(t, "long tex...", TruncateText("long text here", 8))

	// Counted in runes, never split mid-character.
	assert.Equal(t, "héllo...", TruncateText("héllo wörld", 6))
	assert.Equal(t, "日本語...", TruncateText("日本語のテキスト", 3))
	assert.Equal(t, "日本語", TruncateText("日本語", 3))
}

func TestCapitalizeFirst(t *testing.T) {
	assert.Equal(t, "Drill", CapitalizeFirst("dRILL"))
	assert.Equal(t, "", CapitalizeFirst(""))
}

func TestTitleCase(t *testing.T) {
	assert.Equal(t, "Power Drill Kit", TitleCase("power DRILL kit"))
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "$25", FormatPrice(25, "AUD"))
	assert.Equal(t, "$25.50", FormatPrice(25.5, "AUD"))
	assert.Equal(t, "$1,250", FormatPrice(1250, ""))
	assert.Equal(t, "$12,345.75", FormatPrice(12345.75, "AUD"))
	assert.Equal(t, "EUR 25", FormatPrice(25, "EUR"))
}

func TestFormatPriceRange(t *testing.T) {
	assert.Equal(t, "$10 - $50", FormatPriceRange(10, 50, "AUD"))
}

func TestFormatDate(t *testing.T) {
	date := time.Date(2025, 6, 1, 14, 30, 0, 0, time.UTC)

	assert.Equal(t, "1 Jun 2025", FormatDate(date, "short"))
	assert.Equal(t, "1 June 2025", FormatDate(date, "medium"))
	assert.Equal(t, "Sunday, 1 June 2025", FormatDate(date, "long"))
	assert.Equal(t, "Sunday, 1 June 2025 14:30", FormatDate(date, "full"))
	// Unknown styles fall back to medium.
	assert.Equal(t, "1 June 2025", FormatDate(date, "???"))
}

func TestFormatRelativeTime(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, "just now", FormatRelativeTime(now.Add(-2*time.Second), now))
	assert.Equal(t, "30 seconds ago", FormatRelativeTime(now.Add(-30*time.Second), now))
	assert.Equal(t, "1 minute ago", FormatRelativeTime(now.Add(-90*time.Second), now))
	assert.Equal(t, "5 hours ago", FormatRelativeTime(now.Add(-5*time.Hour), now))
	assert.Equal(t, "3 days ago", FormatRelativeTime(now.AddDate(0, 0, -3), now))
	assert.Equal(t, "2 months ago", FormatRelativeTime(now.AddDate(0, -2, 0), now))
	assert.Equal(t, "1 year ago", FormatRelativeTime(now.AddDate(-1, 0, 0), now))
}

func TestDaysBetween(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 4, DaysBetween(start, start.AddDate(0, 0, 4)))
	// Partial days round up, order does not matter.
	assert.Equal(t, 5, DaysBetween(start.AddDate(0, 0, 4).Add(6*time.Hour), start))
	assert.Equal(t, 0, DaysBetween(start, start))
}

func TestDaysBetweenAcrossDSTChange(t *testing.T) {
	sydney, err := time.LoadLocation("Australia/Sydney")
	if !assert.NoError(t, err) {
		return
	}

	// Clocks go back on 2025-04-06: midnight to midnight is 25 elapsed
	// hours but still one calendar day.
	fallStart := time.Date(2025, 4, 6, 0, 0, 0, 0, sydney)
	assert.Equal(t, 1, DaysBetween(fallStart, fallStart.AddDate(0, 0, 1)))

	// Clocks go forward on 2025-10-05.
	springStart := time.Date(2025, 10, 5, 0, 0, 0, 0, sydney)
	assert.Equal(t, 1, DaysBetween(springStart, springStart.AddDate(0, 0, 1)))
}

func TestFormatRating(t *testing.T) {
	assert.Equal(t, "4.5", FormatRating(4.5, 1))
	assert.Equal(t, "5", FormatRating(5, 0))
}

func TestRatingStars(t *testing.T) {
	assert.Equal(t, "★★★★★", RatingStars(5))
	assert.Equal(t, "★★★☆☆", RatingStars(3))
	assert.Equal(t, "★★★☆☆", RatingStars(3.5))
	assert.Equal(t, "☆☆☆☆☆", RatingStars(0))
}

func TestFormatFileSize(t *testing.T) {
	assert.Equal(t, "0 Bytes", FormatFileSize(0))
	assert.Equal(t, "512 Bytes", FormatFileSize(512))
	assert.Equal(t, "1 KB", FormatFileSize(1024))
	assert.Equal(t, "1.5 MB", FormatFileSize(1572864))
}

func TestImageURL(t *testing.T) {
	assert.Equal(t,
		"https://cdn.example.com/storage/v1/object/public/listings/photo.jpg",
		ImageURL("photo.jpg", "listings", "https://cdn.example.com"))
}

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("alice@example.com"))
	assert.False(t, IsValidEmail("alice@example"))
	assert.False(t, IsValidEmail("not an email"))
}

func TestIsValidPhone(t *testing.T) {
	assert.True(t, IsValidPhone("0412345678"))
	assert.True(t, IsValidPhone("+61412345678"))
	assert.True(t, IsValidPhone("0412 345 678"))
	assert.False(t, IsValidPhone("12345"))
	assert.False(t, IsValidPhone("0112345678"))
}

func TestIsValidPostcode(t *testing.T) {
	assert.True(t, IsValidPostcode("2000"))
	assert.False(t, IsValidPostcode("200"))
	assert.False(t, IsValidPostcode("20000"))
	assert.False(t, IsValidPostcode("abcd"))
}
