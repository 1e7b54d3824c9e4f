package geo

import (
	"regexp"
	"strconv"

	"rentitforward/pkg/errors"
)

// PostGIS stores points as "POINT(longitude latitude)". The longitude
// comes first; callers that mix up the order will land in the ocean.
var pointPattern = regexp.MustCompile(`(?i)POINT\s*\(\s*([+-]?\d+\.?\d*)\s+([+-]?\d+\.?\d*)\s*\)`)

// ParsePoint converts a PostGIS POINT string to coordinates. It returns
// false for malformed strings or out-of-range values.
func ParsePoint(pointString string) (Coordinates, bool) {
	match := pointPattern.FindStringSubmatch(pointString)
	if match == nil {
		return Coordinates{}, false
	}

	longitude, err := strconv.ParseFloat(match[1], 64)
	if err != nil {
		return Coordinates{}, false
	}
	latitude, err := strconv.ParseFloat(match[2], 64)
	if err != nil {
		return Coordinates{}, false
	}

	coords := Coordinates{Latitude: latitude, Longitude: longitude}
	if !coords.Valid() {
		return Coordinates{}, false
	}
	return coords, true
}

// FormatPoint converts coordinates to a PostGIS POINT string.
func FormatPoint(c Coordinates) (string, error) {
	if !c.Valid() {
		return "", errors.BadRequest("Invalid coordinates provided", nil)
	}
	return "POINT(" + strconv.FormatFloat(c.Longitude, 'f', -1, 64) + " " +
		strconv.FormatFloat(c.Latitude, 'f', -1, 64) + ")", nil
}
