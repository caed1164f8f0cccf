package env

import (
	"fmt"
	"time"

	"github.com/paragon-dao/paragondao-org-sub001/internal/risk"
)

// LocationSource records how a location was obtained.
type LocationSource string

const (
	SourceSaved   LocationSource = "saved"
	SourceIP      LocationSource = "ip"
	SourceGPS     LocationSource = "gps"
	SourceManual  LocationSource = "manual"
	SourceDefault LocationSource = "default"
)

// Location is an immutable resolved place. Latitude/longitude are always set;
// the label fields may be empty.
type Location struct {
	Latitude  float64        `json:"latitude"`
	Longitude float64        `json:"longitude"`
	City      string         `json:"city,omitempty"`
	Region    string         `json:"region,omitempty"`
	Country   string         `json:"country,omitempty"`
	Source    LocationSource `json:"source"`
}

// Key returns a canonical string key for this location, used for caching and
// request coalescing. Coordinates are rounded so GPS jitter maps to one key.
func (l Location) Key() string {
	return fmt.Sprintf("%.3f:%.3f", l.Latitude, l.Longitude)
}

// Units describes the measurement units of a WeatherSnapshot's fields, as
// reported by the provider.
type Units map[string]string

// WeatherSnapshot is the normalized current-weather view. Every measurement is
// a pointer: nil means the provider had no data, which is distinct from zero.
type WeatherSnapshot struct {
	Temperature  *float64 `json:"temperature"`
	FeelsLike    *float64 `json:"feelsLike"`
	Humidity     *float64 `json:"humidity"`
	DewPoint     *float64 `json:"dewPoint"`
	CloudCover   *float64 `json:"cloudCover"`
	UVIndex      *float64 `json:"uvIndex"`
	WindSpeed    *float64 `json:"windSpeed"`
	WindGusts    *float64 `json:"windGusts"`
	WindDir      *float64 `json:"windDirection"`
	Precip       *float64 `json:"precipitation"`
	Rain         *float64 `json:"rain"`
	Snowfall     *float64 `json:"snowfall"`
	PrecipSum    *float64 `json:"precipitationSum"`
	PrecipProb   *float64 `json:"precipitationProbability"`
	PressureMSL  *float64 `json:"pressureMsl"`
	SurfacePress *float64 `json:"surfacePressure"`
	Visibility   *float64 `json:"visibilityMeters"`

	Sunrise *time.Time `json:"sunrise"`
	Sunset  *time.Time `json:"sunset"`

	TempMax      *float64 `json:"temperatureMax"`
	TempMin      *float64 `json:"temperatureMin"`
	FeelsLikeMax *float64 `json:"feelsLikeMax"`
	FeelsLikeMin *float64 `json:"feelsLikeMin"`

	Units       Units  `json:"units,omitempty"`
	Description string `json:"description,omitempty"`
}

// AirQualitySnapshot is the normalized modeled air-quality view. Pollen
// concentrations are regionally unavailable outside Europe, hence nullable
// per species.
type AirQualitySnapshot struct {
	AQI     *float64 `json:"aqi"`
	PM25    *float64 `json:"pm25"`
	PM10    *float64 `json:"pm10"`
	Ozone   *float64 `json:"ozone"`
	NO2     *float64 `json:"no2"`
	SO2     *float64 `json:"so2"`
	CO      *float64 `json:"co"`
	Dust    *float64 `json:"dust"`
	Aerosol *float64 `json:"aerosolOpticalDepth"`

	// Per-pollutant AQI breakdown, keyed by pollutant name.
	PollutantAQI map[string]*float64 `json:"pollutantAqi,omitempty"`

	// Raw pollen grain concentrations, keyed by species.
	Pollen map[string]*float64 `json:"pollen,omitempty"`
}

// GroundStationSnapshot is a reading from a real monitoring station, used in
// preference over the modeled AQI when available.
type GroundStationSnapshot struct {
	AQI               *float64 `json:"aqi"`
	DominantPollutant string   `json:"dominantPollutant,omitempty"`
	StationName       string   `json:"stationName,omitempty"`
}

// RawEnvironmentData carries the settled result of the concurrent fetch: each
// source is tagged with its own value or error, never all-or-nothing.
type RawEnvironmentData struct {
	Weather    *WeatherSnapshot
	WeatherErr error
	Air        *AirQualitySnapshot
	AirErr     error
	Ground     *GroundStationSnapshot
	GroundErr  error
}

// AirQualityReport is the air-quality slice of the report with risk categories
// and the station override merged in.
type AirQualityReport struct {
	AirQualitySnapshot
	// AQISource is "modeled" or the reporting station's name.
	AQISource         string         `json:"aqiSource"`
	DominantPollutant string         `json:"dominantPollutant,omitempty"`
	Category          *risk.Category `json:"category"`
	Smoke             *risk.Category `json:"smoke"`
}

// WeatherReport is the weather slice of the report with derived categories.
type WeatherReport struct {
	WeatherSnapshot
	WindChill  *risk.Category `json:"windChill"`
	Pressure   *risk.Category `json:"pressure"`
	Visibility *risk.Category `json:"visibility"`
	Daylight   *risk.Category `json:"daylight"`
}

// IndoorRisks estimates conditions inside from outdoor measurements.
type IndoorRisks struct {
	MoldRisk       *risk.Category `json:"moldRisk"`
	AirQuality     *risk.Category `json:"airQuality"`
	HumidityAdvice string         `json:"humidityAdvice,omitempty"`
}

// EnvironmentReport is the aggregate root returned to callers. It is owned by
// the cache slot until superseded and must be treated as read-only.
type EnvironmentReport struct {
	Location   Location           `json:"location"`
	Weather    *WeatherReport     `json:"weather"`
	AirQuality *AirQualityReport  `json:"airQuality"`
	UV         *risk.Category     `json:"uv"`
	Pollen     *risk.Category     `json:"pollen"`
	Indoor     IndoorRisks        `json:"indoor"`
	Advisory   string             `json:"advisory,omitempty"`
	FetchedAt  time.Time          `json:"fetchedAt"`
}
