package health

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/aatuh/ulid-toolkit/ports"
	"github.com/aatuh/ulid-toolkit/ulid"
)

// BasicChecker always reports healthy.
type BasicChecker struct{}

func NewBasicChecker() ports.HealthChecker {
	return &BasicChecker{}
}

func (c *BasicChecker) Name() string {
	return "basic"
}

func (c *BasicChecker) Check(ctx context.Context) ports.HealthResult {
	return ports.HealthResult{
		Status:  ports.HealthStatusHealthy,
		Message: "Basic health check passed",
	}
}

// Prober is a random source that can report read failures without
// panicking. entropy.ReaderSource implements it.
type Prober interface {
	Probe() error
}

// EntropyChecker reports unhealthy when the random source cannot be read.
type EntropyChecker struct {
	source Prober
}

func NewEntropyChecker(source Prober) ports.HealthChecker {
	return &EntropyChecker{source: source}
}

func (c *EntropyChecker) Name() string {
	return "entropy"
}

func (c *EntropyChecker) Check(ctx context.Context) ports.HealthResult {
	if err := c.source.Probe(); err != nil {
		return ports.HealthResult{
			Status:  ports.HealthStatusUnhealthy,
			Message: fmt.Sprintf("Entropy source failed: %v", err),
		}
	}
	return ports.HealthResult{
		Status:  ports.HealthStatusHealthy,
		Message: "Entropy source readable",
	}
}

// ClockChecker reports unhealthy when the clock reads outside the ULID
// timestamp range, and degraded when it has gone backwards since the
// previous check.
type ClockChecker struct {
	clock ulid.Clock
	mu    sync.Mutex
	last  time.Time
}

func NewClockChecker(c ulid.Clock) *ClockChecker {
	return &ClockChecker{clock: c}
}

func (c *ClockChecker) Name() string {
	return "clock"
}

func (c *ClockChecker) Check(ctx context.Context) ports.HealthResult {
	now := c.clock.Now()
	if now.Before(time.Unix(0, 0)) || !now.Before(time.UnixMilli(int64(ulid.MaxTime)+1)) {
		return ports.HealthResult{
			Status:  ports.HealthStatusUnhealthy,
			Message: fmt.Sprintf("Clock reads %s, outside the ULID timestamp range", now.UTC().Format(time.RFC3339)),
		}
	}
	c.mu.Lock()
	prev := c.last
	c.last = now
	c.mu.Unlock()
	if now.Before(prev) {
		return ports.HealthResult{
			Status:  ports.HealthStatusDegraded,
			Message: fmt.Sprintf("Clock went backwards by %s", prev.Sub(now)),
		}
	}
	return ports.HealthResult{
		Status:  ports.HealthStatusHealthy,
		Message: "Clock within range",
	}
}
