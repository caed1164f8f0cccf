// Package providers contains the concrete HTTP adapters behind the engine's
// provider interfaces: Open-Meteo weather and air quality, the WAQI ground
// station feed, the IP geolocation chain, and the geocoding search.
package providers

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
)

// backoffConfig controls exponential retry behaviour for transient failures.
type backoffConfig struct {
	maxRetries      int
	initialInterval time.Duration
	maxInterval     time.Duration
}

// defaultBackoff is used by the weather/air/ground adapters. GPS and the geo
// chain are deliberately not retried: the chain is its own fallback, and GPS
// is user-gated.
var defaultBackoff = backoffConfig{
	maxRetries:      3,
	initialInterval: 500 * time.Millisecond,
	maxInterval:     5 * time.Second,
}

var (
	errRateLimited = errors.New("rate limited")
	errServerError = errors.New("server error")
	errUnexpected  = errors.New("unexpected status code")
	errCircuitOpen = errors.New("circuit breaker open")
)

func newBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})
}

// doResilient executes the request built by buildRequest with bounded retry,
// exponential backoff, and the provider's circuit breaker. Non-2xx statuses
// are converted to errors so the caller only ever sees a usable response.
func doResilient(ctx context.Context, client *http.Client, cb *gobreaker.CircuitBreaker, bo backoffConfig, buildRequest func() (*http.Request, error)) (*http.Response, error) {
	var attempt int
	var lastErr error

	for {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		req, err := buildRequest()
		if err != nil {
			return nil, err
		}
		req = req.WithContext(ctx)

		result, err := cb.Execute(func() (interface{}, error) {
			resp, execErr := client.Do(req)
			if execErr != nil {
				return nil, execErr
			}
			switch {
			case resp.StatusCode == http.StatusTooManyRequests:
				resp.Body.Close()
				return nil, errRateLimited
			case resp.StatusCode >= 500:
				resp.Body.Close()
				return nil, errServerError
			case resp.StatusCode < 200 || resp.StatusCode >= 300:
				resp.Body.Close()
				return nil, fmt.Errorf("%w: %d", errUnexpected, resp.StatusCode)
			}
			return resp, nil
		})

		if err == nil {
			return result.(*http.Response), nil
		}

		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: %v", errCircuitOpen, err)
		}

		lastErr = err
		if attempt >= bo.maxRetries {
			return nil, lastErr
		}

		delay := bo.initialInterval * time.Duration(math.Pow(2, float64(attempt)))
		if bo.maxInterval > 0 && delay > bo.maxInterval {
			delay = bo.maxInterval
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
		attempt++
	}
}
