// Package risk turns raw environment measurements into graded health
// advisories. Every function here is pure: same input, same category, and a
// nil input always yields a nil category rather than an error.
package risk

import "time"

// Category is a graded advisory derived from one rule family.
type Category struct {
	Level    string   `json:"level"`
	Color    string   `json:"color"`
	Advisory string   `json:"advisory"`
	Score    *float64 `json:"score,omitempty"`
}

// AQICategory maps a US AQI value onto the six EPA bands.
func AQICategory(aqi *float64) *Category {
	if aqi == nil {
		return nil
	}
	c := &Category{Score: aqi}
	switch v := *aqi; {
	case v <= 50:
		c.Level = "Good"
		c.Color = "green"
		c.Advisory = "Good for outdoor breathing exercises"
	case v <= 100:
		c.Level = "Moderate"
		c.Color = "yellow"
		c.Advisory = "Acceptable air; unusually sensitive people should pace outdoor exertion"
	case v <= 150:
		c.Level = "Unhealthy for Sensitive Groups"
		c.Color = "orange"
		c.Advisory = "Sensitive groups should shorten outdoor sessions and breathe through the nose"
	case v <= 200:
		c.Level = "Unhealthy"
		c.Color = "red"
		c.Advisory = "Move breathing exercises indoors and keep windows closed"
	case v <= 300:
		c.Level = "Very Unhealthy"
		c.Color = "purple"
		c.Advisory = "Avoid outdoor exertion; run an air purifier if available"
	default:
		c.Level = "Hazardous"
		c.Color = "maroon"
		c.Advisory = "Stay indoors; seal windows and use filtered air"
	}
	return c
}

// UVCategory maps the UV index onto the WHO exposure bands.
func UVCategory(uv *float64) *Category {
	if uv == nil {
		return nil
	}
	c := &Category{Score: uv}
	switch v := *uv; {
	case v <= 2:
		c.Level = "Low"
		c.Color = "green"
		c.Advisory = "No sun protection needed for most people"
	case v <= 5:
		c.Level = "Moderate"
		c.Color = "yellow"
		c.Advisory = "Wear sunscreen if outside for more than an hour"
	case v <= 7:
		c.Level = "High"
		c.Color = "orange"
		c.Advisory = "Use SPF 30+, seek shade around midday"
	case v <= 10:
		c.Level = "Very High"
		c.Color = "red"
		c.Advisory = "Limit midday sun; cover up and reapply sunscreen"
	default:
		c.Level = "Extreme"
		c.Color = "purple"
		c.Advisory = "Avoid direct sun; full protection required"
	}
	return c
}

// WindChillCategory compares the apparent temperature against the actual one.
// Severity comes from the apparent temperature; a gap of more than 5 degrees
// without cold exposure reads as windy.
func WindChillCategory(feelsLike, actual *float64) *Category {
	if feelsLike == nil || actual == nil {
		return nil
	}
	feels := *feelsLike
	switch {
	case feels <= -27:
		return &Category{Level: "Extreme", Color: "purple", Advisory: "Frostbite possible in minutes; stay indoors"}
	case feels <= -15:
		return &Category{Level: "Very Cold", Color: "red", Advisory: "Cover exposed skin; keep outdoor time short"}
	case feels <= 0:
		return &Category{Level: "Cold", Color: "orange", Advisory: "Dress in layers and warm up breathing air through a scarf"}
	case *actual-feels > 5:
		return &Category{Level: "Windy", Color: "yellow", Advisory: "Wind makes it feel noticeably colder than it is"}
	default:
		return &Category{Level: "Comfortable", Color: "green", Advisory: "Temperature feels close to actual"}
	}
}

// PressureCategory bands mean-sea-level pressure in hPa. Pressure swings
// correlate with headaches and joint pain for sensitive people.
func PressureCategory(hpa *float64) *Category {
	if hpa == nil {
		return nil
	}
	c := &Category{Score: hpa}
	switch v := *hpa; {
	case v < 1000:
		c.Level = "Low"
		c.Color = "orange"
		c.Advisory = "Low pressure; headaches and fatigue more likely"
	case v < 1013:
		c.Level = "Below Normal"
		c.Color = "yellow"
		c.Advisory = "Slightly low pressure; weather may be unsettled"
	case v <= 1023:
		c.Level = "Normal"
		c.Color = "green"
		c.Advisory = "Typical pressure range"
	default:
		c.Level = "High"
		c.Color = "green"
		c.Advisory = "High pressure; usually stable, clear conditions"
	}
	return c
}

// VisibilityCategory bands horizontal visibility in meters.
func VisibilityCategory(meters *float64) *Category {
	if meters == nil {
		return nil
	}
	c := &Category{Score: meters}
	switch v := *meters; {
	case v < 200:
		c.Level = "Dense Fog"
		c.Color = "red"
		c.Advisory = "Very poor visibility; avoid driving if possible"
	case v < 1000:
		c.Level = "Fog"
		c.Color = "orange"
		c.Advisory = "Poor visibility; use low-beam lights"
	case v < 4000:
		c.Level = "Mist"
		c.Color = "yellow"
		c.Advisory = "Reduced visibility"
	case v < 10000:
		c.Level = "Haze"
		c.Color = "yellow"
		c.Advisory = "Slightly reduced visibility; fine particles may be present"
	default:
		c.Level = "Clear"
		c.Color = "green"
		c.Advisory = "Good visibility"
	}
	return c
}

// MoldRisk estimates indoor mold potential from outdoor humidity and the
// condensation margin (temperature minus dew point). A small margin means
// surfaces near outside temperature will collect moisture.
func MoldRisk(humidity, dewPoint, temperature *float64) *Category {
	if humidity == nil || dewPoint == nil || temperature == nil {
		return nil
	}
	margin := *temperature - *dewPoint
	h := *humidity
	switch {
	case h >= 80 && margin < 2:
		return &Category{Level: "High", Color: "red", Advisory: "Condensation likely; ventilate and run a dehumidifier"}
	case h >= 70 || margin < 5:
		return &Category{Level: "Elevated", Color: "orange", Advisory: "Watch bathroom and window surfaces for condensation"}
	case h >= 60:
		return &Category{Level: "Moderate", Color: "yellow", Advisory: "Keep air moving in damp rooms"}
	default:
		return &Category{Level: "Low", Color: "green", Advisory: "Low mold potential"}
	}
}

// IndoorAirQuality scores indoor air from the outdoor AQI plus humidity and
// carbon monoxide when known. The outdoor AQI is required; the other inputs
// contribute a point each when absent so a data gap never reads as clean air.
func IndoorAirQuality(aqi, humidity, co *float64) *Category {
	if aqi == nil {
		return nil
	}
	score := 1
	switch {
	case *aqi > 100:
		score = 3
	case *aqi > 50:
		score = 2
	}
	if humidity != nil && *humidity > 70 {
		score += 2
	} else {
		score++
	}
	if co != nil && *co > 1000 {
		score += 2
	} else {
		score++
	}
	total := float64(score)
	c := &Category{Score: &total}
	switch {
	case score <= 3:
		c.Level = "Good"
		c.Color = "green"
		c.Advisory = "Indoor air should be comfortable with normal ventilation"
	case score <= 5:
		c.Level = "Fair"
		c.Color = "yellow"
		c.Advisory = "Ventilate during the cleanest outdoor hours"
	default:
		c.Level = "Poor"
		c.Color = "red"
		c.Advisory = "Limit outdoor air intake; filter recirculated air"
	}
	return c
}

// DaylightRisk estimates seasonal-affective risk from the daylight span.
func DaylightRisk(sunrise, sunset *time.Time) *Category {
	if sunrise == nil || sunset == nil {
		return nil
	}
	hours := sunset.Sub(*sunrise).Hours()
	c := &Category{Score: &hours}
	switch {
	case hours < 8:
		c.Level = "High"
		c.Color = "red"
		c.Advisory = "Short days; get outside around midday and consider a light box"
	case hours < 10:
		c.Level = "Moderate"
		c.Color = "yellow"
		c.Advisory = "Limited daylight; prioritize morning light exposure"
	default:
		c.Level = "Low"
		c.Color = "green"
		c.Advisory = "Adequate daylight hours"
	}
	return c
}

// PollenCategory sums per-species grain concentrations. Returns nil when no
// species has data, which is the normal case outside Europe.
func PollenCategory(concentrations map[string]*float64) *Category {
	var sum float64
	seen := false
	for _, v := range concentrations {
		if v == nil {
			continue
		}
		seen = true
		sum += *v
	}
	if !seen {
		return nil
	}
	total := sum
	c := &Category{Score: &total}
	switch {
	case sum < 10:
		c.Level = "Low"
		c.Color = "green"
		c.Advisory = "Pollen unlikely to bother most people"
	case sum < 50:
		c.Level = "Moderate"
		c.Color = "yellow"
		c.Advisory = "Sensitive people may notice symptoms outdoors"
	case sum < 100:
		c.Level = "High"
		c.Color = "orange"
		c.Advisory = "Keep windows closed during the day; rinse off after being outside"
	default:
		c.Level = "Very High"
		c.Color = "red"
		c.Advisory = "Stay indoors during peak hours if allergic"
	}
	return c
}

// SmokeCategory bands aerosol optical depth, a proxy for smoke and haze load.
func SmokeCategory(aod *float64) *Category {
	if aod == nil {
		return nil
	}
	c := &Category{Score: aod}
	switch v := *aod; {
	case v <= 0.2:
		c.Level = "Low"
		c.Color = "green"
		c.Advisory = "No significant smoke or haze"
	case v <= 0.5:
		c.Level = "Moderate"
		c.Color = "yellow"
		c.Advisory = "Some haze aloft; air near the ground may still be fine"
	case v <= 1.0:
		c.Level = "High"
		c.Color = "orange"
		c.Advisory = "Noticeable smoke or haze; sensitive people should limit exertion"
	default:
		c.Level = "Severe"
		c.Color = "red"
		c.Advisory = "Heavy smoke; stay indoors with filtered air"
	}
	return c
}

// HumidityAdvice returns a plain-language recommendation for indoor humidity
// management. Empty string when humidity is unknown.
func HumidityAdvice(humidity *float64) string {
	if humidity == nil {
		return ""
	}
	switch v := *humidity; {
	case v < 30:
		return "Air is dry; a humidifier can help skin and airways"
	case v <= 60:
		return "Humidity is in the comfortable range"
	case v <= 70:
		return "Slightly humid; ventilate after showering and cooking"
	default:
		return "Very humid; run a dehumidifier to keep indoor levels below 60%"
	}
}
