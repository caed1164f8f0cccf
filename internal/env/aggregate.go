package env

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/paragon-dao/paragondao-org-sub001/internal/risk"
)

// fetchTimeout bounds each outbound source call so a stalled provider cannot
// hold the whole aggregation.
const fetchTimeout = 8 * time.Second

// settleAll runs the configured source fetches concurrently and collects each
// one's value or error independently. A nil ground provider is recorded as
// skipped (nil snapshot, nil error). Source failures never propagate past
// this point as errors to the caller.
func settleAll(ctx context.Context, loc Location, weather WeatherProvider, air AirQualityProvider, ground GroundStationProvider) RawEnvironmentData {
	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	var (
		raw RawEnvironmentData
		wg  sync.WaitGroup
	)

	if weather != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			raw.Weather, raw.WeatherErr = weather.Fetch(ctx, loc)
			if raw.WeatherErr != nil {
				log.Printf("provider %s fetch failed for %s: %v", weather.Name(), loc.Key(), raw.WeatherErr)
			}
		}()
	}

	if air != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			raw.Air, raw.AirErr = air.Fetch(ctx, loc)
			if raw.AirErr != nil {
				log.Printf("provider %s fetch failed for %s: %v", air.Name(), loc.Key(), raw.AirErr)
			}
		}()
	}

	if ground != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			raw.Ground, raw.GroundErr = ground.Fetch(ctx, loc)
			if raw.GroundErr != nil {
				log.Printf("provider %s fetch failed for %s: %v", ground.Name(), loc.Key(), raw.GroundErr)
			}
		}()
	}

	wg.Wait()
	return raw
}

// BuildReport merges settled source results into an EnvironmentReport and
// annotates it with risk categories. It is pure: the merge is commutative over
// source results, and failed sources simply leave their slice of the report
// nil.
func BuildReport(loc Location, raw RawEnvironmentData, now time.Time) *EnvironmentReport {
	report := &EnvironmentReport{
		Location:  loc,
		FetchedAt: now,
	}

	if w := raw.Weather; w != nil {
		report.Weather = &WeatherReport{
			WeatherSnapshot: *w,
			WindChill:       risk.WindChillCategory(w.FeelsLike, w.Temperature),
			Pressure:        risk.PressureCategory(w.PressureMSL),
			Visibility:      risk.VisibilityCategory(w.Visibility),
			Daylight:        risk.DaylightRisk(w.Sunrise, w.Sunset),
		}
		report.UV = risk.UVCategory(w.UVIndex)
	}

	if a := raw.Air; a != nil {
		aq := &AirQualityReport{
			AirQualitySnapshot: *a,
			AQISource:          "modeled",
			Smoke:              risk.SmokeCategory(a.Aerosol),
		}
		// A real station reading, when present, takes precedence over the
		// modeled AQI. The source tag keeps the override transparent.
		if g := raw.Ground; g != nil && g.AQI != nil {
			aq.AQI = g.AQI
			aq.DominantPollutant = g.DominantPollutant
			if g.StationName != "" {
				aq.AQISource = g.StationName
			} else {
				aq.AQISource = "ground-station"
			}
		}
		aq.Category = risk.AQICategory(aq.AQI)
		report.AirQuality = aq
		report.Pollen = risk.PollenCategory(a.Pollen)

		if aq.Category != nil {
			report.Advisory = aq.Category.Advisory
		}
	} else if g := raw.Ground; g != nil && g.AQI != nil {
		// Modeled air data failed but the station answered; report what we
		// have rather than nothing.
		aq := &AirQualityReport{
			AirQualitySnapshot: AirQualitySnapshot{AQI: g.AQI},
			AQISource:          "ground-station",
			DominantPollutant:  g.DominantPollutant,
		}
		if g.StationName != "" {
			aq.AQISource = g.StationName
		}
		aq.Category = risk.AQICategory(g.AQI)
		report.AirQuality = aq
		if aq.Category != nil {
			report.Advisory = aq.Category.Advisory
		}
	}

	report.Indoor = buildIndoor(raw)
	return report
}

func buildIndoor(raw RawEnvironmentData) IndoorRisks {
	var indoor IndoorRisks

	var humidity, dewPoint, temperature *float64
	if raw.Weather != nil {
		humidity = raw.Weather.Humidity
		dewPoint = raw.Weather.DewPoint
		temperature = raw.Weather.Temperature
	}
	indoor.MoldRisk = risk.MoldRisk(humidity, dewPoint, temperature)
	indoor.HumidityAdvice = risk.HumidityAdvice(humidity)

	var aqi, co *float64
	if raw.Air != nil {
		aqi = raw.Air.AQI
		co = raw.Air.CO
	}
	if raw.Ground != nil && raw.Ground.AQI != nil {
		aqi = raw.Ground.AQI
	}
	indoor.AirQuality = risk.IndoorAirQuality(aqi, humidity, co)

	return indoor
}
