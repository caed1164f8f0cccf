package risk

import (
	"testing"
	"time"
)

func fp(v float64) *float64 { return &v }

func TestAQICategoryBands(t *testing.T) {
	cases := []struct {
		aqi   float64
		level string
	}{
		{0, "Good"},
		{50, "Good"},
		{51, "Moderate"},
		{100, "Moderate"},
		{150, "Unhealthy for Sensitive Groups"},
		{151, "Unhealthy"},
		{200, "Unhealthy"},
		{250, "Very Unhealthy"},
		{301, "Hazardous"},
	}
	for _, tc := range cases {
		got := AQICategory(fp(tc.aqi))
		if got == nil || got.Level != tc.level {
			t.Errorf("AQICategory(%v) = %+v, want level %q", tc.aqi, got, tc.level)
		}
	}

	if got := AQICategory(fp(45)); got.Advisory != "Good for outdoor breathing exercises" {
		t.Errorf("unexpected Good advisory: %q", got.Advisory)
	}
}

func TestUVCategoryBands(t *testing.T) {
	cases := []struct {
		uv    float64
		level string
	}{
		{0, "Low"},
		{2, "Low"},
		{3, "Moderate"},
		{5, "Moderate"},
		{7, "High"},
		{10, "Very High"},
		{11, "Extreme"},
	}
	for _, tc := range cases {
		got := UVCategory(fp(tc.uv))
		if got == nil || got.Level != tc.level {
			t.Errorf("UVCategory(%v) = %+v, want level %q", tc.uv, got, tc.level)
		}
	}
}

func TestPressureBoundaryInclusivity(t *testing.T) {
	if got := PressureCategory(fp(999.9)); got.Level != "Low" {
		t.Errorf("999.9 hPa = %q, want Low", got.Level)
	}
	if got := PressureCategory(fp(1000.0)); got.Level != "Below Normal" {
		t.Errorf("1000.0 hPa = %q, want Below Normal", got.Level)
	}
	if got := PressureCategory(fp(1023)); got.Level != "Normal" {
		t.Errorf("1023 hPa = %q, want Normal", got.Level)
	}
	if got := PressureCategory(fp(1023.1)); got.Level != "High" {
		t.Errorf("1023.1 hPa = %q, want High", got.Level)
	}
}

func TestVisibilityBoundaryInclusivity(t *testing.T) {
	if got := VisibilityCategory(fp(199)); got.Level != "Dense Fog" {
		t.Errorf("199m = %q, want Dense Fog", got.Level)
	}
	if got := VisibilityCategory(fp(200)); got.Level != "Fog" {
		t.Errorf("200m = %q, want Fog", got.Level)
	}
	if got := VisibilityCategory(fp(3999)); got.Level != "Mist" {
		t.Errorf("3999m = %q, want Mist", got.Level)
	}
	if got := VisibilityCategory(fp(9999)); got.Level != "Haze" {
		t.Errorf("9999m = %q, want Haze", got.Level)
	}
	if got := VisibilityCategory(fp(10000)); got.Level != "Clear" {
		t.Errorf("10000m = %q, want Clear", got.Level)
	}
}

func TestWindChill(t *testing.T) {
	cases := []struct {
		feels, actual float64
		level         string
	}{
		{-30, -20, "Extreme"},
		{-27, -18, "Extreme"},
		{-20, -10, "Very Cold"},
		{-5, 2, "Cold"},
		{10, 16, "Windy"},
		{18, 20, "Comfortable"},
	}
	for _, tc := range cases {
		got := WindChillCategory(fp(tc.feels), fp(tc.actual))
		if got == nil || got.Level != tc.level {
			t.Errorf("WindChillCategory(%v, %v) = %+v, want %q", tc.feels, tc.actual, got, tc.level)
		}
	}
}

func TestMoldRiskCombination(t *testing.T) {
	// Condensation margin 1 degree forces High even below 80% humidity.
	if got := MoldRisk(fp(85), fp(18), fp(19)); got.Level != "High" {
		t.Errorf("humidity=85 dew=18 temp=19 = %q, want High", got.Level)
	}
	if got := MoldRisk(fp(65), fp(10), fp(20)); got.Level != "Moderate" {
		t.Errorf("humidity=65 dew=10 temp=20 = %q, want Moderate", got.Level)
	}
	// Margin 3 with moderate humidity lands on Elevated.
	if got := MoldRisk(fp(65), fp(19), fp(22)); got.Level != "Elevated" {
		t.Errorf("margin=3 = %q, want Elevated", got.Level)
	}
	if got := MoldRisk(fp(40), fp(5), fp(20)); got.Level != "Low" {
		t.Errorf("dry case = %q, want Low", got.Level)
	}
}

func TestDaylightRisk(t *testing.T) {
	base := time.Date(2025, 1, 10, 8, 0, 0, 0, time.UTC)
	cases := []struct {
		hours float64
		level string
	}{
		{7, "High"},
		{9, "Moderate"},
		{12, "Low"},
	}
	for _, tc := range cases {
		sunset := base.Add(time.Duration(tc.hours * float64(time.Hour)))
		got := DaylightRisk(&base, &sunset)
		if got == nil || got.Level != tc.level {
			t.Errorf("%v daylight hours = %+v, want %q", tc.hours, got, tc.level)
		}
	}
}

func TestPollenCategory(t *testing.T) {
	if got := PollenCategory(nil); got != nil {
		t.Errorf("nil map should yield nil category, got %+v", got)
	}
	// All-nil species means no regional data, not zero pollen.
	if got := PollenCategory(map[string]*float64{"birch": nil, "grass": nil}); got != nil {
		t.Errorf("all-nil species should yield nil category, got %+v", got)
	}
	if got := PollenCategory(map[string]*float64{"birch": fp(2), "grass": fp(3)}); got.Level != "Low" {
		t.Errorf("sum=5 = %q, want Low", got.Level)
	}
	if got := PollenCategory(map[string]*float64{"birch": fp(30), "grass": fp(15)}); got.Level != "Moderate" {
		t.Errorf("sum=45 = %q, want Moderate", got.Level)
	}
	if got := PollenCategory(map[string]*float64{"ragweed": fp(99)}); got.Level != "High" {
		t.Errorf("sum=99 = %q, want High", got.Level)
	}
	if got := PollenCategory(map[string]*float64{"ragweed": fp(100)}); got.Level != "Very High" {
		t.Errorf("sum=100 = %q, want Very High", got.Level)
	}
}

func TestSmokeCategory(t *testing.T) {
	cases := []struct {
		aod   float64
		level string
	}{
		{0.1, "Low"},
		{0.2, "Low"},
		{0.5, "Moderate"},
		{1.0, "High"},
		{1.5, "Severe"},
	}
	for _, tc := range cases {
		got := SmokeCategory(fp(tc.aod))
		if got == nil || got.Level != tc.level {
			t.Errorf("SmokeCategory(%v) = %+v, want %q", tc.aod, got, tc.level)
		}
	}
}

func TestIndoorAirQuality(t *testing.T) {
	if got := IndoorAirQuality(nil, fp(50), fp(100)); got != nil {
		t.Errorf("missing AQI should yield nil, got %+v", got)
	}
	if got := IndoorAirQuality(fp(30), fp(40), fp(100)); got.Level != "Good" {
		t.Errorf("clean case = %q, want Good", got.Level)
	}
	if got := IndoorAirQuality(fp(80), fp(80), fp(100)); got.Level != "Fair" {
		t.Errorf("moderate case = %q, want Fair", got.Level)
	}
	if got := IndoorAirQuality(fp(120), fp(80), fp(2000)); got.Level != "Poor" {
		t.Errorf("bad case = %q, want Poor", got.Level)
	}
}

func TestNullPropagation(t *testing.T) {
	if AQICategory(nil) != nil {
		t.Error("AQICategory(nil) should be nil")
	}
	if UVCategory(nil) != nil {
		t.Error("UVCategory(nil) should be nil")
	}
	if WindChillCategory(nil, fp(5)) != nil || WindChillCategory(fp(5), nil) != nil {
		t.Error("WindChillCategory with a nil input should be nil")
	}
	if PressureCategory(nil) != nil {
		t.Error("PressureCategory(nil) should be nil")
	}
	if VisibilityCategory(nil) != nil {
		t.Error("VisibilityCategory(nil) should be nil")
	}
	if MoldRisk(nil, fp(10), fp(20)) != nil {
		t.Error("MoldRisk with nil humidity should be nil")
	}
	if DaylightRisk(nil, nil) != nil {
		t.Error("DaylightRisk(nil, nil) should be nil")
	}
	if SmokeCategory(nil) != nil {
		t.Error("SmokeCategory(nil) should be nil")
	}
	if HumidityAdvice(nil) != "" {
		t.Error("HumidityAdvice(nil) should be empty")
	}
}
