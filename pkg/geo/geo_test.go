package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var (
	sydney    = Coordinates{Latitude: -33.8688, Longitude: 151.2093}
	melbourne = Coordinates{Latitude: -37.8136, Longitude: 144.9631}
	brisbane  = Coordinates{Latitude: -27.4698, Longitude: 153.0251}
)

func TestDistance(t *testing.T) {
	d := Distance(sydney, melbourne)
	assert.InDelta(t, 714, d, 5)

	assert.Equal(t, 0.0, Distance(sydney, sydney))
}

func TestDistanceMiles(t *testing.T) {
	km := Distance(sydney, melbourne)
	miles := DistanceMiles(sydney, melbourne)
	assert.InDelta(t, km*kmToMiles, miles, 0.01)
}

func TestCoordinatesValid(t *testing.T) {
	assert.True(t, sydney.Valid())
	assert.False(t, Coordinates{Latitude: 91, Longitude: 0}.Valid())
	assert.False(t, Coordinates{Latitude: 0, Longitude: -181}.Valid())
}

func TestWithinAustralia(t *testing.T) {
	assert.True(t, WithinAustralia(sydney))
	assert.True(t, WithinAustralia(melbourne))

	london := Coordinates{Latitude: 51.5074, Longitude: -0.1278}
	assert.False(t, WithinAustralia(london))
	assert.False(t, WithinAustralia(Coordinates{Latitude: 100, Longitude: 0}))
}

func TestCenterPoint(t *testing.T) {
	center, ok := CenterPoint([]Coordinates{sydney, melbourne})
	assert.True(t, ok)
	assert.InDelta(t, -35.85, center.Latitude, 0.5)
	assert.InDelta(t, 148.1, center.Longitude, 0.5)

	single, ok := CenterPoint([]Coordinates{sydney})
	assert.True(t, ok)
	assert.Equal(t, sydney, single)

	_, ok = CenterPoint(nil)
	assert.False(t, ok)
}

func TestBoundsFor(t *testing.T) {
	bounds, ok := BoundsFor([]Coordinates{sydney, melbourne}, 0)
	assert.True(t, ok)
	assert.Equal(t, melbourne.Latitude, bounds.Southwest.Latitude)
	assert.Equal(t, sydney.Latitude, bounds.Northeast.Latitude)

	padded, _ := BoundsFor([]Coordinates{sydney, melbourne}, 10)
	assert.Less(t, padded.Southwest.Latitude, bounds.Southwest.Latitude)
	assert.Greater(t, padded.Northeast.Longitude, bounds.Northeast.Longitude)

	_, ok = BoundsFor(nil, 0)
	assert.False(t, ok)
}

func TestWithinRadius(t *testing.T) {
	places := []Place{
		{ID: "brisbane", Coordinates: brisbane},
		{ID: "melbourne", Coordinates: melbourne},
		{ID: "sydney", Coordinates: sydney},
	}

	nearby := WithinRadius(sydney, places, 800)

	// Melbourne (~714 km) and Brisbane (~732 km) both make the cut.
	assert.Len(t, nearby, 3)
	assert.Equal(t, "sydney", nearby[0].ID)
	for i := 1; i < len(nearby); i++ {
		assert.LessOrEqual(t, nearby[i-1].Distance, nearby[i].Distance)
		assert.LessOrEqual(t, nearby[i].Distance, 800.0)
	}

	assert.Empty(t, WithinRadius(sydney, places[:2], 100))
}

func TestSortByDistance(t *testing.T) {
	places := []Place{
		{ID: "melbourne", Coordinates: melbourne},
		{ID: "sydney", Coordinates: sydney},
		{ID: "brisbane", Coordinates: brisbane},
	}

	sorted := SortByDistance(sydney, places)

	assert.Equal(t, "sydney", sorted[0].ID)
	assert.Equal(t, "melbourne", sorted[1].ID)
	assert.Equal(t, "brisbane", sorted[2].ID)

	// The input slice is left untouched.
	assert.Equal(t, "melbourne", places[0].ID)
}

func TestFormatDistance(t *testing.T) {
	assert.Equal(t, "500m", FormatDistance(0.5))
	assert.Equal(t, "2.4 km", FormatDistance(2.44))
	assert.Equal(t, "15 km", FormatDistance(15.2))
}

func TestParsePoint(t *testing.T) {
	coords, ok := ParsePoint("POINT(151.2093 -33.8688)")
	assert.True(t, ok)
	assert.Equal(t, sydney, coords)

	coords, ok = ParsePoint("point( 144.9631  -37.8136 )")
	assert.True(t, ok)
	assert.Equal(t, melbourne, coords)

	_, ok = ParsePoint("151.2093,-33.8688")
	assert.False(t, ok)

	// Longitude out of range.
	_, ok = ParsePoint("POINT(200 -33)")
	assert.False(t, ok)
}

func TestFormatPointRoundTrip(t *testing.T) {
	formatted, err := FormatPoint(sydney)
	assert.NoError(t, err)
	assert.Equal(t, "POINT(151.2093 -33.8688)", formatted)

	parsed, ok := ParsePoint(formatted)
	assert.True(t, ok)
	assert.Equal(t, sydney, parsed)

	_, err = FormatPoint(Coordinates{Latitude: 999, Longitude: 0})
	assert.Error(t, err)
}
