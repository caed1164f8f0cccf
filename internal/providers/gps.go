package providers

import "context"

// StaticGPS is a GPSSource backed by fixed coordinates supplied at startup,
// for hosts that expose the device position through configuration rather than
// a live platform API.
type StaticGPS struct {
	lat, lon float64
}

func NewStaticGPS(lat, lon float64) *StaticGPS {
	return &StaticGPS{lat: lat, lon: lon}
}

func (g *StaticGPS) Coordinates(ctx context.Context) (float64, float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, 0, err
	}
	return g.lat, g.lon, nil
}
