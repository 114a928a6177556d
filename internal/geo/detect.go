package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

// Location is a place detected from the user's public IP address.
type Location struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lon"`
	City      string  `json:"city"`
	Country   string  `json:"country"`
	Timezone  string  `json:"timezone"`
}

// Coordinate returns the detected point.
func (l Location) Coordinate() Coordinate {
	return Coordinate{Latitude: l.Latitude, Longitude: l.Longitude}
}

// ipAPIResponse maps the response from ip-api.com.
type ipAPIResponse struct {
	Status   string  `json:"status"`
	Message  string  `json:"message"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
	City     string  `json:"city"`
	Country  string  `json:"country"`
	Timezone string  `json:"timezone"`
}

// DefaultDetectURL is the ip-api.com endpoint. It is free and needs no key.
const DefaultDetectURL = "http://ip-api.com/json/?fields=status,message,lat,lon,city,country,timezone"

// Detector resolves the user's location through an ip-api.com compatible endpoint.
type Detector struct {
	URL    string
	Client *http.Client
}

// NewDetector returns a Detector for the public endpoint with a 5s timeout.
func NewDetector() *Detector {
	return &Detector{
		URL:    DefaultDetectURL,
		Client: &http.Client{Timeout: 5 * time.Second},
	}
}

// Detect queries the endpoint and validates the returned coordinate.
func (d *Detector) Detect(ctx context.Context) (*Location, error) {
	client := d.Client
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("geolocation request failed: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geolocation request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geolocation API returned status %d", resp.StatusCode)
	}

	var result ipAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode geolocation response: %w", err)
	}

	if result.Status != "success" {
		return nil, fmt.Errorf("geolocation failed: %s", result.Message)
	}

	loc := &Location{
		Latitude:  result.Lat,
		Longitude: result.Lon,
		City:      result.City,
		Country:   result.Country,
		Timezone:  result.Timezone,
	}
	if err := loc.Coordinate().Validate(); err != nil {
		return nil, fmt.Errorf("geolocation returned %w", err)
	}

	log.Debug().Str("city", loc.City).Str("timezone", loc.Timezone).Msg("[geo] detected location")
	return loc, nil
}
