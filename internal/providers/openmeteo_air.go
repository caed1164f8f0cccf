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

const (
	openMeteoAirURL = "https://air-quality-api.open-meteo.com/v1/air-quality"

	airFields = "us_aqi,pm2_5,pm10,ozone,nitrogen_dioxide,sulphur_dioxide," +
		"carbon_monoxide,dust,aerosol_optical_depth," +
		"us_aqi_pm2_5,us_aqi_pm10,us_aqi_ozone,us_aqi_nitrogen_dioxide," +
		"us_aqi_sulphur_dioxide,us_aqi_carbon_monoxide," +
		"alder_pollen,birch_pollen,grass_pollen,mugwort_pollen,olive_pollen,ragweed_pollen"
)

// OpenMeteoAir implements env.AirQualityProvider against the key-less
// Open-Meteo air-quality API. Pollen fields come back null outside Europe and
// stay null in the snapshot.
type OpenMeteoAir struct {
	name    string
	baseURL string
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
}

func NewOpenMeteoAir(client *http.Client) *OpenMeteoAir {
	return &OpenMeteoAir{
		name:    "open-meteo-air",
		baseURL: openMeteoAirURL,
		client:  client,
		circuit: newBreaker("open-meteo-air"),
	}
}

func (p *OpenMeteoAir) Name() string { return p.name }

func (p *OpenMeteoAir) Fetch(ctx context.Context, loc env.Location) (*env.AirQualitySnapshot, error) {
	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("latitude", fmt.Sprintf("%f", loc.Latitude))
		values.Set("longitude", fmt.Sprintf("%f", loc.Longitude))
		values.Set("current", airFields)
		return http.NewRequest(http.MethodGet, fmt.Sprintf("%s?%s", p.baseURL, values.Encode()), nil)
	}

	resp, err := doResilient(ctx, p.client, p.circuit, defaultBackoff, buildRequest)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var payload struct {
		Current struct {
			AQI     *float64 `json:"us_aqi"`
			PM25    *float64 `json:"pm2_5"`
			PM10    *float64 `json:"pm10"`
			Ozone   *float64 `json:"ozone"`
			NO2     *float64 `json:"nitrogen_dioxide"`
			SO2     *float64 `json:"sulphur_dioxide"`
			CO      *float64 `json:"carbon_monoxide"`
			Dust    *float64 `json:"dust"`
			Aerosol *float64 `json:"aerosol_optical_depth"`

			AQIPM25  *float64 `json:"us_aqi_pm2_5"`
			AQIPM10  *float64 `json:"us_aqi_pm10"`
			AQIOzone *float64 `json:"us_aqi_ozone"`
			AQINO2   *float64 `json:"us_aqi_nitrogen_dioxide"`
			AQISO2   *float64 `json:"us_aqi_sulphur_dioxide"`
			AQICO    *float64 `json:"us_aqi_carbon_monoxide"`

			Alder   *float64 `json:"alder_pollen"`
			Birch   *float64 `json:"birch_pollen"`
			Grass   *float64 `json:"grass_pollen"`
			Mugwort *float64 `json:"mugwort_pollen"`
			Olive   *float64 `json:"olive_pollen"`
			Ragweed *float64 `json:"ragweed_pollen"`
		} `json:"current"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode air-quality response: %w", err)
	}

	cur := payload.Current
	return &env.AirQualitySnapshot{
		AQI:     cur.AQI,
		PM25:    cur.PM25,
		PM10:    cur.PM10,
		Ozone:   cur.Ozone,
		NO2:     cur.NO2,
		SO2:     cur.SO2,
		CO:      cur.CO,
		Dust:    cur.Dust,
		Aerosol: cur.Aerosol,
		PollutantAQI: map[string]*float64{
			"pm2_5":            cur.AQIPM25,
			"pm10":             cur.AQIPM10,
			"ozone":            cur.AQIOzone,
			"nitrogen_dioxide": cur.AQINO2,
			"sulphur_dioxide":  cur.AQISO2,
			"carbon_monoxide":  cur.AQICO,
		},
		Pollen: map[string]*float64{
			"alder":   cur.Alder,
			"birch":   cur.Birch,
			"grass":   cur.Grass,
			"mugwort": cur.Mugwort,
			"olive":   cur.Olive,
			"ragweed": cur.Ragweed,
		},
	}, nil
}
