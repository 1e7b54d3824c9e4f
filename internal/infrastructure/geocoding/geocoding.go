package geocoding

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"rentitforward/pkg/geo"
)

// Location is a resolved address with coordinates.
type Location struct {
	geo.Coordinates
	Address    string `json:"address"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

// Geocoder converts between addresses and coordinates. A single call
// is made per request; callers own retries.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (*Location, error)
	ReverseGeocode(ctx context.Context, coords geo.Coordinates) (*Location, error)
}

var (
	addressCharsPattern = regexp.MustCompile(`[^\w\s\-,\.#/]`)
	spacesPattern       = regexp.MustCompile(`\s+`)
)

// CleanAddress normalizes user input before geocoding: collapse
// whitespace, strip characters that never appear in addresses, and cap
// the length.
func CleanAddress(address string) string {
	cleaned := strings.TrimSpace(address)
	cleaned = spacesPattern.ReplaceAllString(cleaned, " ")
	cleaned = addressCharsPattern.ReplaceAllString(cleaned, "")
	if len(cleaned) > 200 {
		cleaned = cleaned[:200]
	}
	return cleaned
}

// ValidAustralianLocation reports whether a result landed inside the
// Australian bounding box.
func ValidAustralianLocation(location *Location) bool {
	return location != nil && geo.WithinAustralia(location.Coordinates)
}

// CacheKey builds the cache key for a geocoding lookup.
func CacheKey(address, provider string) string {
	return fmt.Sprintf("geocoding:%s:%s", provider, strings.ToLower(CleanAddress(address)))
}
