package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/paragon-dao/paragondao-org-sub001/internal/env"
)

// The geo chain uses three independent key-less IP geolocation services. Each
// provider is a single guarded call: the chain order is the fallback policy,
// so no per-provider retry or breaker is layered on top.

// IPAPICo queries ipapi.co.
type IPAPICo struct {
	baseURL string
	client  *http.Client
}

func NewIPAPICo(client *http.Client) *IPAPICo {
	return &IPAPICo{baseURL: "https://ipapi.co/json/", client: client}
}

func (p *IPAPICo) Name() string { return "ipapi.co" }

func (p *IPAPICo) Locate(ctx context.Context) (env.Location, error) {
	var payload struct {
		Latitude  *float64 `json:"latitude"`
		Longitude *float64 `json:"longitude"`
		City      string   `json:"city"`
		Region    string   `json:"region"`
		Country   string   `json:"country_name"`
	}
	if err := getJSON(ctx, p.client, p.baseURL, &payload); err != nil {
		return env.Location{}, err
	}
	if payload.Latitude == nil || payload.Longitude == nil {
		return env.Location{}, env.ErrNoCoordinates
	}
	return env.Location{
		Latitude:  *payload.Latitude,
		Longitude: *payload.Longitude,
		City:      payload.City,
		Region:    payload.Region,
		Country:   payload.Country,
	}, nil
}

// IPAPIDotCom queries ip-api.com.
type IPAPIDotCom struct {
	baseURL string
	client  *http.Client
}

func NewIPAPIDotCom(client *http.Client) *IPAPIDotCom {
	return &IPAPIDotCom{baseURL: "http://ip-api.com/json/", client: client}
}

func (p *IPAPIDotCom) Name() string { return "ip-api.com" }

func (p *IPAPIDotCom) Locate(ctx context.Context) (env.Location, error) {
	var payload struct {
		Status     string   `json:"status"`
		Lat        *float64 `json:"lat"`
		Lon        *float64 `json:"lon"`
		City       string   `json:"city"`
		RegionName string   `json:"regionName"`
		Country    string   `json:"country"`
	}
	if err := getJSON(ctx, p.client, p.baseURL, &payload); err != nil {
		return env.Location{}, err
	}
	if payload.Status != "success" || payload.Lat == nil || payload.Lon == nil {
		return env.Location{}, env.ErrNoCoordinates
	}
	return env.Location{
		Latitude:  *payload.Lat,
		Longitude: *payload.Lon,
		City:      payload.City,
		Region:    payload.RegionName,
		Country:   payload.Country,
	}, nil
}

// IPWhois queries ipwho.is.
type IPWhois struct {
	baseURL string
	client  *http.Client
}

func NewIPWhois(client *http.Client) *IPWhois {
	return &IPWhois{baseURL: "https://ipwho.is/", client: client}
}

func (p *IPWhois) Name() string { return "ipwho.is" }

func (p *IPWhois) Locate(ctx context.Context) (env.Location, error) {
	var payload struct {
		Success   bool     `json:"success"`
		Latitude  *float64 `json:"latitude"`
		Longitude *float64 `json:"longitude"`
		City      string   `json:"city"`
		Region    string   `json:"region"`
		Country   string   `json:"country"`
	}
	if err := getJSON(ctx, p.client, p.baseURL, &payload); err != nil {
		return env.Location{}, err
	}
	if !payload.Success || payload.Latitude == nil || payload.Longitude == nil {
		return env.Location{}, env.ErrNoCoordinates
	}
	return env.Location{
		Latitude:  *payload.Latitude,
		Longitude: *payload.Longitude,
		City:      payload.City,
		Region:    payload.Region,
		Country:   payload.Country,
	}, nil
}

// DefaultGeoChain returns the geo providers in priority order.
func DefaultGeoChain(client *http.Client) []env.GeoProvider {
	return []env.GeoProvider{
		NewIPAPICo(client),
		NewIPAPIDotCom(client),
		NewIPWhois(client),
	}
}

// getJSON performs a single GET and decodes the 2xx body into out.
func getJSON(ctx context.Context, client *http.Client, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: %d", errUnexpected, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
