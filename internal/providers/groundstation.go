package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/sony/gobreaker"

	"github.com/paragon-dao/paragondao-org-sub001/internal/env"
)

const waqiBaseURL = "https://api.waqi.info/feed"

// WAQIStation implements env.GroundStationProvider against the World Air
// Quality Index feed API. It is only constructed when a token is configured.
type WAQIStation struct {
	name    string
	token   string
	baseURL string
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
}

func NewWAQIStation(client *http.Client, token string) *WAQIStation {
	return &WAQIStation{
		name:    "waqi",
		token:   token,
		baseURL: waqiBaseURL,
		client:  client,
		circuit: newBreaker("waqi"),
	}
}

func (p *WAQIStation) Name() string { return p.name }

func (p *WAQIStation) Fetch(ctx context.Context, loc env.Location) (*env.GroundStationSnapshot, error) {
	if p.token == "" {
		return nil, fmt.Errorf("waqi token is not configured")
	}

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("token", p.token)
		u := fmt.Sprintf("%s/geo:%f;%f/?%s", p.baseURL, loc.Latitude, loc.Longitude, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := doResilient(ctx, p.client, p.circuit, defaultBackoff, buildRequest)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var payload struct {
		Status string `json:"status"`
		Data   struct {
			// AQI is "-" as a string when the station has no current value.
			AQI         json.RawMessage `json:"aqi"`
			DominentPol string          `json:"dominentpol"`
			City        struct {
				Name string `json:"name"`
			} `json:"city"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode waqi response: %w", err)
	}
	if payload.Status != "ok" {
		return nil, fmt.Errorf("waqi returned status %q", payload.Status)
	}

	snap := &env.GroundStationSnapshot{
		DominantPollutant: payload.Data.DominentPol,
		StationName:       payload.Data.City.Name,
	}
	var aqi float64
	if err := json.Unmarshal(payload.Data.AQI, &aqi); err == nil {
		snap.AQI = &aqi
	}
	return snap, nil
}
