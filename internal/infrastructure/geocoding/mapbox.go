package geocoding

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"rentitforward/pkg/errors"
	"rentitforward/pkg/geo"
)

const mapboxBaseURL = "https://api.mapbox.com/geocoding/v5/mapbox.places"

// MapboxGeocoder resolves addresses through the Mapbox Places API,
// limited to Australian results.
type MapboxGeocoder struct {
	accessToken string
	client      *http.Client
}

func NewMapboxGeocoder(accessToken string) *MapboxGeocoder {
	return &MapboxGeocoder{
		accessToken: accessToken,
		client:      &http.Client{Timeout: 10 * time.Second},
	}
}

type mapboxResponse struct {
	Features []struct {
		PlaceName string     `json:"place_name"`
		Center    [2]float64 `json:"center"` // [longitude, latitude]
		Context   []struct {
			ID   string `json:"id"`
			Text string `json:"text"`
		} `json:"context"`
	} `json:"features"`
}

func (g *MapboxGeocoder) Geocode(ctx context.Context, address string) (*Location, error) {
	if CleanAddress(address) == "" {
		return nil, errors.BadRequest("Address is required", nil)
	}

	params := url.Values{}
	params.Set("access_token", g.accessToken)
	params.Set("country", "au")
	params.Set("language", "en")
	params.Set("limit", "1")

	endpoint := fmt.Sprintf("%s/%s.json?%s", mapboxBaseURL, url.PathEscape(address), params.Encode())
	return g.query(ctx, endpoint)
}

func (g *MapboxGeocoder) ReverseGeocode(ctx context.Context, coords geo.Coordinates) (*Location, error) {
	if !coords.Valid() {
		return nil, errors.BadRequest("Invalid coordinates provided", nil)
	}

	params := url.Values{}
	params.Set("access_token", g.accessToken)
	params.Set("language", "en")
	params.Set("limit", "1")

	endpoint := fmt.Sprintf("%s/%f,%f.json?%s", mapboxBaseURL, coords.Longitude, coords.Latitude, params.Encode())
	return g.query(ctx, endpoint)
}

func (g *MapboxGeocoder) query(ctx context.Context, endpoint string) (*Location, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.Internal("Failed to build geocoding request", err)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, errors.GatewayError("mapbox", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.GatewayError("mapbox", fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	var data mapboxResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, errors.GatewayError("mapbox", err)
	}
	if len(data.Features) == 0 {
		return nil, errors.NotFound("Address", nil)
	}

	feature := data.Features[0]
	location := &Location{
		Coordinates: geo.Coordinates{
			Latitude:  feature.Center[1],
			Longitude: feature.Center[0],
		},
		Address: feature.PlaceName,
	}
	for _, item := range feature.Context {
		switch {
		case strings.HasPrefix(item.ID, "place"):
			location.City = item.Text
		case strings.HasPrefix(item.ID, "region"):
			location.State = item.Text
		case strings.HasPrefix(item.ID, "postcode"):
			location.PostalCode = item.Text
		case strings.HasPrefix(item.ID, "country"):
			location.Country = item.Text
		}
	}
	return location, nil
}
