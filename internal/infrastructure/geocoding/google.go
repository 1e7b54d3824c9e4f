package geocoding

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"rentitforward/pkg/errors"
	"rentitforward/pkg/geo"
)

const googleGeocodingURL = "https://maps.googleapis.com/maps/api/geocode/json"

// GoogleGeocoder resolves addresses through the Google Maps Geocoding
// API, biased to the Australian region.
type GoogleGeocoder struct {
	apiKey string
	client *http.Client
}

func NewGoogleGeocoder(apiKey string) *GoogleGeocoder {
	return &GoogleGeocoder{
		apiKey: apiKey,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

type googleResponse struct {
	Results []struct {
		FormattedAddress string `json:"formatted_address"`
		Geometry         struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
		AddressComponents []googleComponent `json:"address_components"`
	} `json:"results"`
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
}

type googleComponent struct {
	LongName  string   `json:"long_name"`
	ShortName string   `json:"short_name"`
	Types     []string `json:"types"`
}

func (g *GoogleGeocoder) Geocode(ctx context.Context, address string) (*Location, error) {
	if CleanAddress(address) == "" {
		return nil, errors.BadRequest("Address is required", nil)
	}

	params := url.Values{}
	params.Set("address", address)
	params.Set("key", g.apiKey)
	params.Set("region", "au")
	params.Set("language", "en")

	return g.query(ctx, params)
}

func (g *GoogleGeocoder) ReverseGeocode(ctx context.Context, coords geo.Coordinates) (*Location, error) {
	if !coords.Valid() {
		return nil, errors.BadRequest("Invalid coordinates provided", nil)
	}

	params := url.Values{}
	params.Set("latlng", fmt.Sprintf("%f,%f", coords.Latitude, coords.Longitude))
	params.Set("key", g.apiKey)
	params.Set("language", "en")

	return g.query(ctx, params)
}

func (g *GoogleGeocoder) query(ctx context.Context, params url.Values) (*Location, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, googleGeocodingURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, errors.Internal("Failed to build geocoding request", err)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, errors.GatewayError("google geocoding", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.GatewayError("google geocoding", fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	var data googleResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, errors.GatewayError("google geocoding", err)
	}
	if data.Status != "OK" {
		message := data.ErrorMessage
		if message == "" {
			message = fmt.Sprintf("Geocoding failed: %s", data.Status)
		}
		return nil, errors.BadRequest(message, nil)
	}
	if len(data.Results) == 0 {
		return nil, errors.NotFound("Address", nil)
	}

	result := data.Results[0]
	return &Location{
		Coordinates: geo.Coordinates{
			Latitude:  result.Geometry.Location.Lat,
			Longitude: result.Geometry.Location.Lng,
		},
		Address:    result.FormattedAddress,
		City:       googleComponentValue(result.AddressComponents, "locality", "administrative_area_level_2"),
		State:      googleComponentValue(result.AddressComponents, "administrative_area_level_1"),
		PostalCode: googleComponentValue(result.AddressComponents, "postal_code"),
		Country:    googleComponentValue(result.AddressComponents, "country"),
	}, nil
}

func googleComponentValue(components []googleComponent, types ...string) string {
	for _, component := range components {
		for _, wanted := range types {
			for _, have := range component.Types {
				if have == wanted {
					return component.LongName
				}
			}
		}
	}
	return ""
}
