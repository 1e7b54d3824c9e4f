package utils

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Validation patterns shared with client applications.
var (
	EmailPattern      = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	PhoneAUPattern    = regexp.MustCompile(`^(\+61|0)[2-9]\d{8}$`)
	PostcodeAUPattern = regexp.MustCompile(`^\d{4}$`)
	PasswordPattern   = regexp.MustCompile(`^.{8,}$`)
)

// Display date layouts (en-AU).
const (
	DateLayoutShort  = "2 Jan 2006"
	DateLayoutMedium = "2 January 2006"
	DateLayoutLong   = "Monday, 2 January 2006"
	DateLayoutFull   = "Monday, 2 January 2006 15:04"
	DateLayoutAPI    = "2006-01-02"
)

// Slugify converts text to a URL-safe slug.
func Slugify(text string) string {
	var b strings.Builder
	lastHyphen := false
	for _, r := range strings.ToLower(strings.TrimSpace(text)) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		case r == ' ' || r == '_' || r == '-':
			if !lastHyphen && b.Len() > 0 {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// TruncateText caps text at maxLength characters, counted in runes so
// multibyte text is never cut mid-character.
func TruncateText(text string, maxLength int) string {
	runes := []rune(text)
	if len(runes) <= maxLength {
		return text
	}
	return strings.TrimSpace(string(runes[:maxLength])) + "..."
}

func CapitalizeFirst(text string) string {
	if text == "" {
		return text
	}
	return strings.ToUpper(text[:1]) + strings.ToLower(text[1:])
}

func TitleCase(text string) string {
	words := strings.Split(strings.ToLower(text), " ")
	for i, word := range words {
		words[i] = CapitalizeFirst(word)
	}
	return strings.Join(words, " ")
}

// FormatPrice renders an amount in dollars. Whole amounts drop the
// cents, fractional amounts keep two decimal places.
func FormatPrice(amount float64, currency string) string {
	symbol := "$"
	if currency != "" && currency != "AUD" && currency != "USD" {
		symbol = currency + " "
	}
	if amount == math.Trunc(amount) {
		return symbol + groupThousands(strconv.FormatFloat(amount, 'f', 0, 64))
	}
	formatted := strconv.FormatFloat(amount, 'f', 2, 64)
	parts := strings.SplitN(formatted, ".", 2)
	return symbol + groupThousands(parts[0]) + "." + parts[1]
}

func FormatPriceRange(minPrice, maxPrice float64, currency string) string {
	return FormatPrice(minPrice, currency) + " - " + FormatPrice(maxPrice, currency)
}

func groupThousands(digits string) string {
	neg := strings.HasPrefix(digits, "-")
	if neg {
		digits = digits[1:]
	}
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}

// FormatDate renders a date in one of the display styles: "short",
// "medium", "long" or "full".
func FormatDate(t time.Time, style string) string {
	switch style {
	case "short":
		return t.Format(DateLayoutShort)
	case "long":
		return t.Format(DateLayoutLong)
	case "full":
		return t.Format(DateLayoutFull)
	default:
		return t.Format(DateLayoutMedium)
	}
}

// FormatRelativeTime renders how long ago a moment was, relative to now.
func FormatRelativeTime(t, now time.Time) string {
	diff := now.Sub(t)
	seconds := int(diff.Seconds())

	switch {
	case seconds < 5:
		return "just now"
	case seconds < 60:
		return plural(seconds, "second") + " ago"
	case seconds < 3600:
		return plural(seconds/60, "minute") + " ago"
	case seconds < 86400:
		return plural(seconds/3600, "hour") + " ago"
	case seconds < 2592000:
		return plural(seconds/86400, "day") + " ago"
	case seconds < 31536000:
		return plural(seconds/2592000, "month") + " ago"
	default:
		return plural(seconds/31536000, "year") + " ago"
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

// DaysBetween returns the number of whole days separating two dates,
// rounding partial days up. Days are counted on the calendar, so DST
// transition days of 23 or 25 hours still count as one.
func DaysBetween(start, end time.Time) int {
	if end.Before(start) {
		start, end = end, start
	}
	startDay := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	endDay := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, end.Location())
	days := int(math.Round(endDay.Sub(startDay).Hours() / 24))
	if clockOffset(end) > clockOffset(start) {
		days++
	}
	return days
}

func clockOffset(t time.Time) time.Duration {
	return time.Duration(t.Hour())*time.Hour +
		time.Duration(t.Minute())*time.Minute +
		time.Duration(t.Second())*time.Second +
		time.Duration(t.Nanosecond())
}

func FormatRating(rating float64, precision int) string {
	return strconv.FormatFloat(rating, 'f', precision, 64)
}

// RatingStars renders a 0-5 rating as filled and empty stars, with a
// half indicator for fractional ratings of .5 and above.
func RatingStars(rating float64) string {
	fullStars := int(rating)
	hasHalf := rating-float64(fullStars) >= 0.5
	emptyStars := 5 - fullStars
	if hasHalf {
		emptyStars--
	}

	stars := strings.Repeat("★", fullStars)
	if hasHalf {
		stars += "☆"
	}
	return stars + strings.Repeat("☆", emptyStars)
}

func FormatFileSize(bytes int64) string {
	if bytes == 0 {
		return "0 Bytes"
	}
	sizes := []string{"Bytes", "KB", "MB", "GB"}
	i := int(math.Floor(math.Log(float64(bytes)) / math.Log(1024)))
	if i >= len(sizes) {
		i = len(sizes) - 1
	}
	value := float64(bytes) / math.Pow(1024, float64(i))
	formatted := strconv.FormatFloat(value, 'f', 2, 64)
	formatted = strings.TrimRight(strings.TrimRight(formatted, "0"), ".")
	return formatted + " " + sizes[i]
}

// ImageURL builds the public URL for an object in a storage bucket.
func ImageURL(path, bucket, baseURL string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", baseURL, bucket, path)
}

func IsValidEmail(email string) bool {
	return EmailPattern.MatchString(email)
}

// IsValidPhone validates Australian phone numbers, with or without the
// +61 country prefix. Whitespace is ignored.
func IsValidPhone(phone string) bool {
	return PhoneAUPattern.MatchString(strings.ReplaceAll(phone, " ", ""))
}

// IsValidPostcode validates Australian four-digit postcodes.
func IsValidPostcode(postcode string) bool {
	return PostcodeAUPattern.MatchString(postcode)
}
