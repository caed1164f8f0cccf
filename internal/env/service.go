package env

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"
)

// ErrEmptyQuery is returned by SearchLocation for a blank query string.
var ErrEmptyQuery = errors.New("search query must not be empty")

const searchLimit = 10

// Service is the environment health engine: it resolves the current location,
// aggregates the data sources with partial-failure tolerance, scores the raw
// measurements, and serves the result through a TTL cache. Construct one
// instance and share it; it holds no hidden global state.
type Service struct {
	resolver *Resolver
	weather  WeatherProvider
	air      AirQualityProvider
	ground   GroundStationProvider // nil when no credential is configured
	geocoder Geocoder
	cache    *ReportCache

	// flight coalesces concurrent cache-miss fetches for the same location
	// into one outbound round trip.
	flight singleflight.Group

	now func() time.Time
}

// NewService wires the engine together. ground may be nil; its absence
// silently disables the station override.
func NewService(resolver *Resolver, weather WeatherProvider, air AirQualityProvider, ground GroundStationProvider, geocoder Geocoder, cache *ReportCache) *Service {
	return &Service{
		resolver: resolver,
		weather:  weather,
		air:      air,
		ground:   ground,
		geocoder: geocoder,
		cache:    cache,
		now:      time.Now,
	}
}

// GetEnvironmentData returns the cached report while fresh, otherwise
// resolves the location, aggregates, scores, caches and returns a new report.
// Source-level failures never surface as errors; at worst the corresponding
// report sections are nil.
func (s *Service) GetEnvironmentData(ctx context.Context) (*EnvironmentReport, error) {
	if r := s.cache.Get(); r != nil {
		return r, nil
	}
	return s.refresh(ctx)
}

// Refresh bypasses the cache and fetches a new report, storing it on success.
func (s *Service) Refresh(ctx context.Context) (*EnvironmentReport, error) {
	return s.refresh(ctx)
}

func (s *Service) refresh(ctx context.Context) (*EnvironmentReport, error) {
	loc := s.resolver.Resolve(ctx)

	v, err, _ := s.flight.Do(loc.Key(), func() (interface{}, error) {
		raw := settleAll(ctx, loc, s.weather, s.air, s.ground)
		report := BuildReport(loc, raw, s.now().UTC())
		s.cache.Store(report)
		return report, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*EnvironmentReport), nil
}

// CurrentLocation resolves and returns the location without fetching data.
func (s *Service) CurrentLocation(ctx context.Context) Location {
	return s.resolver.Resolve(ctx)
}

// SearchLocation performs a stateless geocoding lookup. An empty result set
// means no matches, not an error.
func (s *Service) SearchLocation(ctx context.Context, query string) ([]Location, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}
	return s.geocoder.Search(ctx, query, searchLimit)
}

// SetLocation overrides the current location, persists the choice, and
// invalidates the cached report.
func (s *Service) SetLocation(ctx context.Context, loc Location) (Location, error) {
	set, err := s.resolver.Set(ctx, loc)
	if err != nil {
		return Location{}, err
	}
	s.cache.Clear()
	return set, nil
}

// UpgradeToGPS requests device-precision coordinates and, on success,
// persists the upgraded location and invalidates the cached report. On denial
// or timeout it returns ErrLocationDenied and leaves everything untouched.
func (s *Service) UpgradeToGPS(ctx context.Context) (Location, error) {
	loc, err := s.resolver.UpgradeToGPS(ctx)
	if err != nil {
		return Location{}, err
	}
	s.cache.Clear()
	return loc, nil
}

// ClearCache drops the cached report and the location memo, forcing full
// re-resolution and a refetch on the next call. The persistent store is not
// touched.
func (s *Service) ClearCache() {
	s.cache.Clear()
	s.resolver.Forget()
}
