package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"

	"github.com/paragon-dao/paragondao-org-sub001/internal/env"
)

const (
	openMeteoWeatherURL = "https://api.open-meteo.com/v1/forecast"

	currentFields = "temperature_2m,apparent_temperature,relative_humidity_2m," +
		"dew_point_2m,cloud_cover,uv_index,wind_speed_10m,wind_gusts_10m," +
		"wind_direction_10m,precipitation,rain,snowfall,pressure_msl," +
		"surface_pressure,visibility,weather_code"
	dailyFields = "sunrise,sunset,temperature_2m_max,temperature_2m_min," +
		"apparent_temperature_max,apparent_temperature_min," +
		"precipitation_sum,precipitation_probability_max"
)

// OpenMeteoWeather implements env.WeatherProvider against the key-less
// Open-Meteo forecast API.
type OpenMeteoWeather struct {
	name    string
	baseURL string
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
}

func NewOpenMeteoWeather(client *http.Client) *OpenMeteoWeather {
	return &OpenMeteoWeather{
		name:    "open-meteo",
		baseURL: openMeteoWeatherURL,
		client:  client,
		circuit: newBreaker("open-meteo-weather"),
	}
}

func (p *OpenMeteoWeather) Name() string { return p.name }

func (p *OpenMeteoWeather) Fetch(ctx context.Context, loc env.Location) (*env.WeatherSnapshot, error) {
	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("latitude", fmt.Sprintf("%f", loc.Latitude))
		values.Set("longitude", fmt.Sprintf("%f", loc.Longitude))
		values.Set("current", currentFields)
		values.Set("daily", dailyFields)
		values.Set("forecast_days", "1")
		values.Set("timeformat", "unixtime")
		values.Set("timezone", "UTC")
		return http.NewRequest(http.MethodGet, fmt.Sprintf("%s?%s", p.baseURL, values.Encode()), nil)
	}

	resp, err := doResilient(ctx, p.client, p.circuit, defaultBackoff, buildRequest)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var payload struct {
		Current struct {
			Temperature   *float64 `json:"temperature_2m"`
			FeelsLike     *float64 `json:"apparent_temperature"`
			Humidity      *float64 `json:"relative_humidity_2m"`
			DewPoint      *float64 `json:"dew_point_2m"`
			CloudCover    *float64 `json:"cloud_cover"`
			UVIndex       *float64 `json:"uv_index"`
			WindSpeed     *float64 `json:"wind_speed_10m"`
			WindGusts     *float64 `json:"wind_gusts_10m"`
			WindDirection *float64 `json:"wind_direction_10m"`
			Precipitation *float64 `json:"precipitation"`
			Rain          *float64 `json:"rain"`
			Snowfall      *float64 `json:"snowfall"`
			PressureMSL   *float64 `json:"pressure_msl"`
			SurfacePress  *float64 `json:"surface_pressure"`
			Visibility    *float64 `json:"visibility"`
			WeatherCode   *int     `json:"weather_code"`
		} `json:"current"`
		CurrentUnits map[string]string `json:"current_units"`
		Daily        struct {
			Sunrise      []int64    `json:"sunrise"`
			Sunset       []int64    `json:"sunset"`
			TempMax      []*float64 `json:"temperature_2m_max"`
			TempMin      []*float64 `json:"temperature_2m_min"`
			FeelsLikeMax []*float64 `json:"apparent_temperature_max"`
			FeelsLikeMin []*float64 `json:"apparent_temperature_min"`
			PrecipSum    []*float64 `json:"precipitation_sum"`
			PrecipProb   []*float64 `json:"precipitation_probability_max"`
		} `json:"daily"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode open-meteo response: %w", err)
	}

	snap := &env.WeatherSnapshot{
		Temperature:  payload.Current.Temperature,
		FeelsLike:    payload.Current.FeelsLike,
		Humidity:     payload.Current.Humidity,
		DewPoint:     payload.Current.DewPoint,
		CloudCover:   payload.Current.CloudCover,
		UVIndex:      payload.Current.UVIndex,
		WindSpeed:    payload.Current.WindSpeed,
		WindGusts:    payload.Current.WindGusts,
		WindDir:      payload.Current.WindDirection,
		Precip:       payload.Current.Precipitation,
		Rain:         payload.Current.Rain,
		Snowfall:     payload.Current.Snowfall,
		PressureMSL:  payload.Current.PressureMSL,
		SurfacePress: payload.Current.SurfacePress,
		Visibility:   payload.Current.Visibility,
		Units:        payload.CurrentUnits,
		TempMax:      firstOrNil(payload.Daily.TempMax),
		TempMin:      firstOrNil(payload.Daily.TempMin),
		FeelsLikeMax: firstOrNil(payload.Daily.FeelsLikeMax),
		FeelsLikeMin: firstOrNil(payload.Daily.FeelsLikeMin),
		PrecipSum:    firstOrNil(payload.Daily.PrecipSum),
		PrecipProb:   firstOrNil(payload.Daily.PrecipProb),
	}

	if len(payload.Daily.Sunrise) > 0 {
		t := time.Unix(payload.Daily.Sunrise[0], 0).UTC()
		snap.Sunrise = &t
	}
	if len(payload.Daily.Sunset) > 0 {
		t := time.Unix(payload.Daily.Sunset[0], 0).UTC()
		snap.Sunset = &t
	}
	if payload.Current.WeatherCode != nil {
		snap.Description = describeWeatherCode(*payload.Current.WeatherCode)
	}

	return snap, nil
}

func firstOrNil(values []*float64) *float64 {
	if len(values) == 0 {
		return nil
	}
	return values[0]
}

// describeWeatherCode maps WMO weather codes to human-readable descriptions.
func describeWeatherCode(code int) string {
	switch {
	case code == 0:
		return "Clear sky"
	case code >= 1 && code <= 2:
		return "Partly cloudy"
	case code == 3:
		return "Overcast"
	case code == 45 || code == 48:
		return "Fog"
	case code >= 51 && code <= 57:
		return "Drizzle"
	case code >= 61 && code <= 67:
		return "Rain"
	case code >= 71 && code <= 77:
		return "Snow"
	case code >= 80 && code <= 82:
		return "Rain showers"
	case code == 85 || code == 86:
		return "Snow showers"
	case code >= 95:
		return "Thunderstorm"
	default:
		return "Unknown"
	}
}
