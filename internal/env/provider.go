package env

import (
	"context"
	"errors"
)

var (
	// ErrLocationDenied is returned by UpgradeToGPS when the device location
	// capability refuses or times out. The previous location is kept.
	ErrLocationDenied = errors.New("device location denied or timed out")

	// ErrNoCoordinates is returned by geo providers whose payload lacks a
	// usable latitude/longitude pair.
	ErrNoCoordinates = errors.New("geo provider returned no coordinates")
)

// WeatherProvider fetches a normalized weather snapshot for a location.
type WeatherProvider interface {
	Name() string
	Fetch(ctx context.Context, loc Location) (*WeatherSnapshot, error)
}

// AirQualityProvider fetches modeled air-quality data for a location.
type AirQualityProvider interface {
	Name() string
	Fetch(ctx context.Context, loc Location) (*AirQualitySnapshot, error)
}

// GroundStationProvider fetches a reading from the nearest monitoring
// station. Configured only when a credential is present.
type GroundStationProvider interface {
	Name() string
	Fetch(ctx context.Context, loc Location) (*GroundStationSnapshot, error)
}

// GeoProvider derives an approximate location from the caller's IP address.
// Providers are tried in chain order; a failing provider never aborts the
// chain.
type GeoProvider interface {
	Name() string
	Locate(ctx context.Context) (Location, error)
}

// Geocoder resolves free-text place names into ranked location candidates.
type Geocoder interface {
	Search(ctx context.Context, query string, limit int) ([]Location, error)
}

// GPSSource abstracts a device-precision location capability. Implementations
// are expected to block until the platform grants or denies access.
type GPSSource interface {
	Coordinates(ctx context.Context) (lat, lon float64, err error)
}

// LocationStore persists the user's explicitly chosen location across
// restarts. Load returns (nil, nil) on a miss; a corrupted record is treated
// as a miss by the resolver, not an error.
type LocationStore interface {
	Load(ctx context.Context) (*Location, error)
	Save(ctx context.Context, loc Location) error
}
