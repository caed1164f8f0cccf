package env

import (
	"context"
	"testing"
	"time"
)

func TestSettleAllToleratesPartialFailure(t *testing.T) {
	loc := Location{Latitude: 40.71, Longitude: -74.0, Source: SourceIP}
	weather := &fakeWeather{err: errBoom}
	air := &fakeAir{snap: &AirQualitySnapshot{AQI: fp(45)}}

	raw := settleAll(context.Background(), loc, weather, air, nil)

	if raw.Weather != nil || raw.WeatherErr == nil {
		t.Fatalf("weather should have failed: %+v", raw)
	}
	if raw.Air == nil || raw.AirErr != nil {
		t.Fatalf("air should have succeeded: %+v", raw)
	}
	if raw.Ground != nil || raw.GroundErr != nil {
		t.Fatalf("skipped ground source should be empty: %+v", raw)
	}
}

func TestBuildReportDegradation(t *testing.T) {
	loc := Location{Latitude: 40.71, Longitude: -74.0, Source: SourceIP}
	raw := RawEnvironmentData{
		WeatherErr: errBoom,
		Air:        &AirQualitySnapshot{AQI: fp(45), PM25: fp(8)},
	}

	report := BuildReport(loc, raw, time.Now().UTC())

	if report.Weather != nil {
		t.Fatal("weather section should be nil when the fetch failed")
	}
	if report.AirQuality == nil || report.AirQuality.AQI == nil || *report.AirQuality.AQI != 45 {
		t.Fatalf("air quality should be populated: %+v", report.AirQuality)
	}
	if report.AirQuality.Category == nil || report.AirQuality.Category.Level != "Good" {
		t.Fatalf("aqi category missing: %+v", report.AirQuality.Category)
	}
}

func TestBuildReportGroundStationPrecedence(t *testing.T) {
	loc := Location{Latitude: 40.71, Longitude: -74.0}
	raw := RawEnvironmentData{
		Air: &AirQualitySnapshot{AQI: fp(45)},
		Ground: &GroundStationSnapshot{
			AQI:               fp(160),
			DominantPollutant: "pm25",
			StationName:       "Downtown Monitor",
		},
	}

	report := BuildReport(loc, raw, time.Now().UTC())

	aq := report.AirQuality
	if aq == nil || aq.AQI == nil || *aq.AQI != 160 {
		t.Fatalf("station AQI should override modeled: %+v", aq)
	}
	if aq.AQISource != "Downtown Monitor" {
		t.Fatalf("aqi source = %q, want station name", aq.AQISource)
	}
	if aq.DominantPollutant != "pm25" {
		t.Fatalf("dominant pollutant = %q", aq.DominantPollutant)
	}
	if aq.Category == nil || aq.Category.Level != "Unhealthy" {
		t.Fatalf("category should follow station AQI: %+v", aq.Category)
	}
}

func TestBuildReportModeledTagWithoutStation(t *testing.T) {
	raw := RawEnvironmentData{Air: &AirQualitySnapshot{AQI: fp(45)}}
	report := BuildReport(Location{}, raw, time.Now().UTC())
	if report.AirQuality.AQISource != "modeled" {
		t.Fatalf("aqi source = %q, want modeled", report.AirQuality.AQISource)
	}
}

func TestBuildReportStationOnly(t *testing.T) {
	raw := RawEnvironmentData{
		AirErr: errBoom,
		Ground: &GroundStationSnapshot{AQI: fp(55)},
	}
	report := BuildReport(Location{}, raw, time.Now().UTC())
	if report.AirQuality == nil || report.AirQuality.Category == nil || report.AirQuality.Category.Level != "Moderate" {
		t.Fatalf("station-only report should still carry air quality: %+v", report.AirQuality)
	}
}

// End-to-end scenario from the engine's expected behaviour: a Good AQI day
// with a tight condensation margin.
func TestBuildReportScenario(t *testing.T) {
	loc := Location{Latitude: 40.71, Longitude: -74.0, Source: SourceIP}
	raw := RawEnvironmentData{
		Weather: &WeatherSnapshot{
			Temperature: fp(22),
			FeelsLike:   fp(21),
			Humidity:    fp(85),
			DewPoint:    fp(19),
		},
		Air: &AirQualitySnapshot{AQI: fp(45)},
	}

	report := BuildReport(loc, raw, time.Now().UTC())

	if report.Advisory != "Good for outdoor breathing exercises" {
		t.Fatalf("advisory = %q", report.Advisory)
	}
	// temperature 22, dew point 19: condensation margin 3 means Elevated.
	if report.Indoor.MoldRisk == nil || report.Indoor.MoldRisk.Level != "Elevated" {
		t.Fatalf("mold risk = %+v", report.Indoor.MoldRisk)
	}
	if report.Indoor.HumidityAdvice == "" {
		t.Fatal("humidity advice should be set")
	}
	if report.Indoor.AirQuality == nil {
		t.Fatal("indoor air quality should be set")
	}
}

func TestBuildReportAllSourcesFailed(t *testing.T) {
	raw := RawEnvironmentData{WeatherErr: errBoom, AirErr: errBoom, GroundErr: errBoom}
	report := BuildReport(Location{Source: SourceDefault}, raw, time.Now().UTC())

	if report == nil {
		t.Fatal("report must exist even when every source failed")
	}
	if report.Weather != nil || report.AirQuality != nil || report.UV != nil || report.Pollen != nil {
		t.Fatalf("failed sources should leave nil sections: %+v", report)
	}
	if report.Indoor.MoldRisk != nil || report.Indoor.AirQuality != nil {
		t.Fatalf("indoor risks need data: %+v", report.Indoor)
	}
}
