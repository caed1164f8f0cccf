package env

import (
	"context"
	"log"
	"sync"
	"time"
)

// DefaultLocation is the terminal fallback when every resolution step fails.
var DefaultLocation = Location{
	Latitude:  40.7128,
	Longitude: -74.0060,
	City:      "New York",
	Region:    "New York",
	Country:   "United States",
	Source:    SourceDefault,
}

const gpsTimeout = 8 * time.Second

// Resolver produces the current location. Resolution order: in-process memo,
// persistent store, IP geolocation chain, hardcoded default. Resolve never
// fails.
type Resolver struct {
	mu       sync.Mutex
	memo     *Location
	store    LocationStore
	chain    []GeoProvider
	gps      GPSSource
	fallback Location

	// storeRead tracks whether the persistent store has been consulted this
	// process lifetime. It is read at most once unless Forget is called.
	storeRead bool
}

// NewResolver builds a Resolver. store and gps may be nil; a nil gps makes
// UpgradeToGPS fail with ErrLocationDenied.
func NewResolver(store LocationStore, chain []GeoProvider, gps GPSSource) *Resolver {
	return &Resolver{
		store:    store,
		chain:    chain,
		gps:      gps,
		fallback: DefaultLocation,
	}
}

// Resolve returns the current location, consulting each fallback in order.
func (r *Resolver) Resolve(ctx context.Context) Location {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.memo != nil {
		return *r.memo
	}

	if loc, ok := r.loadSaved(ctx); ok {
		r.memo = &loc
		return loc
	}

	if loc, ok := r.locateByIP(ctx); ok {
		// IP-derived locations are memoized only; they are never persisted.
		r.memo = &loc
		return loc
	}

	loc := r.fallback
	r.memo = &loc
	return loc
}

func (r *Resolver) loadSaved(ctx context.Context) (Location, bool) {
	if r.store == nil || r.storeRead {
		return Location{}, false
	}
	r.storeRead = true

	loc, err := r.store.Load(ctx)
	if err != nil {
		// A broken or corrupted record is a store miss, not a failure.
		log.Printf("location store read failed, falling through: %v", err)
		return Location{}, false
	}
	if loc == nil {
		return Location{}, false
	}
	saved := *loc
	saved.Source = SourceSaved
	return saved, true
}

func (r *Resolver) locateByIP(ctx context.Context) (Location, bool) {
	for _, p := range r.chain {
		loc, err := p.Locate(ctx)
		if err != nil {
			log.Printf("geo provider %s failed: %v", p.Name(), err)
			continue
		}
		loc.Source = SourceIP
		return loc, true
	}
	return Location{}, false
}

// Set overrides the current location with a manual choice and persists it.
func (r *Resolver) Set(ctx context.Context, loc Location) (Location, error) {
	loc.Source = SourceManual

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.store != nil {
		if err := r.store.Save(ctx, loc); err != nil {
			return Location{}, err
		}
	}
	r.memo = &loc
	return loc, nil
}

// UpgradeToGPS requests device-precision coordinates, bounded by an 8 second
// deadline to cover the platform permission dialog. On success the new
// coordinates are merged with the previously known city/region/country labels
// (no reverse geocoding is performed; the labels are approximate, carried over
// from the prior resolution). On denial or timeout the previous location is
// left untouched.
func (r *Resolver) UpgradeToGPS(ctx context.Context) (Location, error) {
	if r.gps == nil {
		return Location{}, ErrLocationDenied
	}

	gpsCtx, cancel := context.WithTimeout(ctx, gpsTimeout)
	defer cancel()

	lat, lon, err := r.gps.Coordinates(gpsCtx)
	if err != nil {
		log.Printf("gps upgrade failed: %v", err)
		return Location{}, ErrLocationDenied
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	loc := Location{Latitude: lat, Longitude: lon, Source: SourceGPS}
	if r.memo != nil {
		loc.City = r.memo.City
		loc.Region = r.memo.Region
		loc.Country = r.memo.Country
	}

	if r.store != nil {
		if err := r.store.Save(ctx, loc); err != nil {
			return Location{}, err
		}
	}
	r.memo = &loc
	return loc, nil
}

// Forget drops the memoized location and re-arms the persistent store read,
// forcing full re-resolution on the next Resolve call.
func (r *Resolver) Forget() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.memo = nil
	r.storeRead = false
}
