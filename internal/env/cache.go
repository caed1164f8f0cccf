package env

import (
	"sync"
	"time"
)

// DefaultReportTTL is how long a cached report stays fresh.
const DefaultReportTTL = 10 * time.Minute

// ReportCache is a single-slot, time-boxed cache for the last report. There is
// exactly one "current" report; storing a new one supersedes the old.
type ReportCache struct {
	mu       sync.RWMutex
	report   *EnvironmentReport
	storedAt time.Time
	ttl      time.Duration
	now      func() time.Time
}

// NewReportCache creates a cache with the given TTL. A non-positive TTL falls
// back to DefaultReportTTL.
func NewReportCache(ttl time.Duration) *ReportCache {
	if ttl <= 0 {
		ttl = DefaultReportTTL
	}
	return &ReportCache{ttl: ttl, now: time.Now}
}

// Get returns the stored report while it is fresh, else nil.
func (c *ReportCache) Get() *EnvironmentReport {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.report == nil || c.now().Sub(c.storedAt) >= c.ttl {
		return nil
	}
	return c.report
}

// Store replaces the slot with a new report.
func (c *ReportCache) Store(report *EnvironmentReport) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.report = report
	c.storedAt = c.now()
}

// Clear empties the slot.
func (c *ReportCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.report = nil
	c.storedAt = time.Time{}
}
