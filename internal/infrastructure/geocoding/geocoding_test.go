package geocoding

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"rentitforward/pkg/geo"
)

func TestCleanAddress(t *testing.T) {
	assert.Equal(t, "123 George St, Sydney NSW 2000",
		CleanAddress("  123   George St,  Sydney NSW 2000  "))
	assert.Equal(t, "Unit 4/21 Smith St", CleanAddress("Unit 4/21 Smith St"))
	assert.Equal(t, "5 Main Rd", CleanAddress("5 Main <Rd>"))

	long := strings.Repeat("a", 300)
	assert.Len(t, CleanAddress(long), 200)
}

func TestValidAustralianLocation(t *testing.T) {
	sydney := &Location{Coordinates: geo.Coordinates{Latitude: -33.8688, Longitude: 151.2093}}
	london := &Location{Coordinates: geo.Coordinates{Latitude: 51.5074, Longitude: -0.1278}}

	assert.True(t, ValidAustralianLocation(sydney))
	assert.False(t, ValidAustralianLocation(london))
	assert.False(t, ValidAustralianLocation(nil))
}

func TestCacheKey(t *testing.T) {
	assert.Equal(t, "geocoding:nominatim:123 george st",
		CacheKey("123  George St", "nominatim"))

	// Same address, different provider, different key.
	assert.NotEqual(t, CacheKey("x", "google"), CacheKey("x", "mapbox"))
}
