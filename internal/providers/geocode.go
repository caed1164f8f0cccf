package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/paragon-dao/paragondao-org-sub001/internal/env"
)

const openMeteoGeocodeURL = "https://geocoding-api.open-meteo.com/v1/search"

// OpenMeteoGeocoder implements env.Geocoder against the key-less Open-Meteo
// geocoding API. Results come back ranked by the API's own relevance order.
type OpenMeteoGeocoder struct {
	baseURL string
	client  *http.Client
}

func NewOpenMeteoGeocoder(client *http.Client) *OpenMeteoGeocoder {
	return &OpenMeteoGeocoder{baseURL: openMeteoGeocodeURL, client: client}
}

func (g *OpenMeteoGeocoder) Search(ctx context.Context, query string, limit int) ([]env.Location, error) {
	if limit <= 0 {
		limit = 10
	}

	values := url.Values{}
	values.Set("name", query)
	values.Set("count", strconv.Itoa(limit))
	values.Set("language", "en")
	values.Set("format", "json")

	var payload struct {
		Results []struct {
			Name      string  `json:"name"`
			Latitude  float64 `json:"latitude"`
			Longitude float64 `json:"longitude"`
			Admin1    string  `json:"admin1"`
			Country   string  `json:"country"`
		} `json:"results"`
	}
	u := fmt.Sprintf("%s?%s", g.baseURL, values.Encode())
	if err := getJSON(ctx, g.client, u, &payload); err != nil {
		return nil, err
	}

	// No matches is an empty slice, not an error.
	locations := make([]env.Location, 0, len(payload.Results))
	for _, r := range payload.Results {
		locations = append(locations, env.Location{
			Latitude:  r.Latitude,
			Longitude: r.Longitude,
			City:      r.Name,
			Region:    r.Admin1,
			Country:   r.Country,
			Source:    env.SourceManual,
		})
	}
	return locations, nil
}
