package geocoding

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"rentitforward/pkg/errors"
	"rentitforward/pkg/geo"
)

const nominatimBaseURL = "https://nominatim.openstreetmap.org"

// NominatimGeocoder uses the OpenStreetMap Nominatim service. It needs
// no API key but requires a User-Agent and fair-use request rates.
type NominatimGeocoder struct {
	baseURL   string
	userAgent string
	client    *http.Client
}

func NewNominatimGeocoder() *NominatimGeocoder {
	return &NominatimGeocoder{
		baseURL:   nominatimBaseURL,
		userAgent: "RentItForward/1.0",
		client:    &http.Client{Timeout: 10 * time.Second},
	}
}

type nominatimResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
	Address     struct {
		Suburb   string `json:"suburb"`
		City     string `json:"city"`
		State    string `json:"state"`
		Postcode string `json:"postcode"`
		Country  string `json:"country"`
	} `json:"address"`
}

func (g *NominatimGeocoder) Geocode(ctx context.Context, address string) (*Location, error) {
	if CleanAddress(address) == "" {
		return nil, errors.BadRequest("Address is required", nil)
	}

	params := url.Values{}
	params.Set("q", address)
	params.Set("format", "json")
	params.Set("addressdetails", "1")
	params.Set("limit", "1")
	params.Set("countrycodes", "au")

	var results []nominatimResult
	if err := g.get(ctx, g.baseURL+"/search?"+params.Encode(), &results); err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, errors.NotFound("Address", nil)
	}
	return g.toLocation(results[0])
}

func (g *NominatimGeocoder) ReverseGeocode(ctx context.Context, coords geo.Coordinates) (*Location, error) {
	if !coords.Valid() {
		return nil, errors.BadRequest("Invalid coordinates provided", nil)
	}

	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(coords.Latitude, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(coords.Longitude, 'f', -1, 64))
	params.Set("format", "json")
	params.Set("addressdetails", "1")

	var result nominatimResult
	if err := g.get(ctx, g.baseURL+"/reverse?"+params.Encode(), &result); err != nil {
		return nil, err
	}
	if result.Lat == "" || result.Lon == "" {
		return nil, errors.NotFound("Address", nil)
	}
	return g.toLocation(result)
}

func (g *NominatimGeocoder) get(ctx context.Context, rawURL string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return errors.Internal("Failed to build geocoding request", err)
	}
	req.Header.Set("User-Agent", g.userAgent)

	resp, err := g.client.Do(req)
	if err != nil {
		return errors.GatewayError("nominatim", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errors.GatewayError("nominatim", fmt.Errorf("unexpected status %d", resp.StatusCode))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.GatewayError("nominatim", err)
	}
	return nil
}

func (g *NominatimGeocoder) toLocation(result nominatimResult) (*Location, error) {
	lat, err := strconv.ParseFloat(result.Lat, 64)
	if err != nil {
		return nil, errors.GatewayError("nominatim", err)
	}
	lon, err := strconv.ParseFloat(result.Lon, 64)
	if err != nil {
		return nil, errors.GatewayError("nominatim", err)
	}

	city := result.Address.City
	if city == "" {
		city = result.Address.Suburb
	}
	country := result.Address.Country
	if country == "" {
		country = "Australia"
	}

	return &Location{
		Coordinates: geo.Coordinates{Latitude: lat, Longitude: lon},
		Address:     result.DisplayName,
		City:        city,
		State:       result.Address.State,
		PostalCode:  result.Address.Postcode,
		Country:     country,
	}, nil
}
