package geo

import (
	"fmt"
	"math"
	"sort"
)

const (
	earthRadiusKm = 6371
	kmToMiles     = 0.621371
)

// Coordinates is a WGS84 latitude/longitude pair.
type Coordinates struct {
	Latitude  float64 `json:"latitude" firestore:"latitude"`
	Longitude float64 `json:"longitude" firestore:"longitude"`
}

// Bounds is a rectangle described by its southwest and northeast corners.
type Bounds struct {
	Southwest Coordinates `json:"southwest"`
	Northeast Coordinates `json:"northeast"`
}

// DefaultLocation is the fallback map centre (central Australia).
var DefaultLocation = Coordinates{Latitude: -25.2744, Longitude: 133.7751}

// Approximate bounds of Australia including external territories.
var australiaBounds = Bounds{
	Southwest: Coordinates{Latitude: -55, Longitude: 96},
	Northeast: Coordinates{Latitude: -9, Longitude: 169},
}

// Distance returns the great-circle distance between two coordinates in
// kilometres, rounded to two decimal places (Haversine formula).
func Distance(a, b Coordinates) float64 {
	lat1 := toRadians(a.Latitude)
	lat2 := toRadians(b.Latitude)
	deltaLat := toRadians(b.Latitude - a.Latitude)
	deltaLng := toRadians(b.Longitude - a.Longitude)

	h := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(deltaLng/2)*math.Sin(deltaLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return round2(earthRadiusKm * c)
}

// DistanceMiles returns the great-circle distance in miles.
func DistanceMiles(a, b Coordinates) float64 {
	return round2(Distance(a, b) * kmToMiles)
}

// Valid reports whether the coordinates fall inside the WGS84 ranges.
func (c Coordinates) Valid() bool {
	return !math.IsNaN(c.Latitude) && !math.IsNaN(c.Longitude) &&
		c.Latitude >= -90 && c.Latitude <= 90 &&
		c.Longitude >= -180 && c.Longitude <= 180
}

// WithinAustralia reports whether the coordinates fall inside the
// approximate bounds of Australia.
func WithinAustralia(c Coordinates) bool {
	if !c.Valid() {
		return false
	}
	return WithinBounds(c, australiaBounds)
}

// CenterPoint averages coordinates on the unit sphere; it is accurate
// for points spanning the antimeridian, unlike a plain lat/lng mean.
func CenterPoint(coords []Coordinates) (Coordinates, bool) {
	if len(coords) == 0 {
		return Coordinates{}, false
	}
	if len(coords) == 1 {
		return coords[0], true
	}

	var x, y, z float64
	for _, c := range coords {
		lat := toRadians(c.Latitude)
		lng := toRadians(c.Longitude)
		x += math.Cos(lat) * math.Cos(lng)
		y += math.Cos(lat) * math.Sin(lng)
		z += math.Sin(lat)
	}

	total := float64(len(coords))
	x /= total
	y /= total
	z /= total

	lng := math.Atan2(y, x)
	hyp := math.Sqrt(x*x + y*y)
	lat := math.Atan2(z, hyp)

	return Coordinates{Latitude: toDegrees(lat), Longitude: toDegrees(lng)}, true
}

// BoundsFor computes the bounding rectangle of the coordinates, padded
// outward by paddingKm on all sides.
func BoundsFor(coords []Coordinates, paddingKm float64) (Bounds, bool) {
	if len(coords) == 0 {
		return Bounds{}, false
	}

	minLat, maxLat := coords[0].Latitude, coords[0].Latitude
	minLng, maxLng := coords[0].Longitude, coords[0].Longitude
	for _, c := range coords {
		minLat = math.Min(minLat, c.Latitude)
		maxLat = math.Max(maxLat, c.Latitude)
		minLng = math.Min(minLng, c.Longitude)
		maxLng = math.Max(maxLng, c.Longitude)
	}

	if paddingKm > 0 {
		// ~111 km per degree of latitude; longitude shrinks with latitude
		latPadding := paddingKm / 111
		lngPadding := paddingKm / (111 * math.Cos(toRadians((minLat+maxLat)/2)))
		minLat -= latPadding
		maxLat += latPadding
		minLng -= lngPadding
		maxLng += lngPadding
	}

	return Bounds{
		Southwest: Coordinates{Latitude: minLat, Longitude: minLng},
		Northeast: Coordinates{Latitude: maxLat, Longitude: maxLng},
	}, true
}

// WithinBounds reports whether a coordinate lies inside the rectangle.
func WithinBounds(c Coordinates, b Bounds) bool {
	return c.Latitude >= b.Southwest.Latitude &&
		c.Latitude <= b.Northeast.Latitude &&
		c.Longitude >= b.Southwest.Longitude &&
		c.Longitude <= b.Northeast.Longitude
}

// Place pairs an identifier with a position, used for radius filtering.
type Place struct {
	ID          string
	Coordinates Coordinates
	Distance    float64
}

// WithinRadius filters places to those within radiusKm of the centre,
// sorted nearest first, with distances filled in.
func WithinRadius(center Coordinates, places []Place, radiusKm float64) []Place {
	result := make([]Place, 0, len(places))
	for _, p := range places {
		p.Distance = Distance(center, p.Coordinates)
		if p.Distance <= radiusKm {
			result = append(result, p)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Distance < result[j].Distance
	})
	return result
}

// SortByDistance returns the places ordered by distance from the
// reference point, with distances filled in.
func SortByDistance(reference Coordinates, places []Place) []Place {
	result := make([]Place, len(places))
	copy(result, places)
	for i := range result {
		result[i].Distance = Distance(reference, result[i].Coordinates)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Distance < result[j].Distance
	})
	return result
}

// FormatDistance renders a distance in kilometres for display: metres
// under 1 km, one decimal under 10 km, whole kilometres beyond.
func FormatDistance(distanceKm float64) string {
	if distanceKm < 1 {
		return fmt.Sprintf("%dm", int(math.Round(distanceKm*1000)))
	}
	if distanceKm < 10 {
		return fmt.Sprintf("%.1f km", distanceKm)
	}
	return fmt.Sprintf("%d km", int(math.Round(distanceKm)))
}

func toRadians(degrees float64) float64 {
	return degrees * (math.Pi / 180)
}

func toDegrees(radians float64) float64 {
	return radians * (180 / math.Pi)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
