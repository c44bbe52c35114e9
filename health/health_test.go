package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aatuh/ulid-toolkit/chi"
	"github.com/aatuh/ulid-toolkit/clock"
	"github.com/aatuh/ulid-toolkit/entropy"
	"github.com/aatuh/ulid-toolkit/ports"
)

type probeFunc func() error

func (f probeFunc) Probe() error { return f() }

func newManager(src Prober, c *clock.FixedClock) *Manager {
	m := New()
	m.RegisterChecker(NewBasicChecker())
	m.RegisterChecker(NewEntropyChecker(src))
	m.RegisterChecker(NewClockChecker(c))
	return m
}

func TestReadinessHealthy(t *testing.T) {
	m := newManager(entropy.NewCryptoSource(), clock.NewFixedClock(time.Now()))
	res := m.GetReadiness(context.Background())
	assert.Equal(t, ports.HealthStatusHealthy, res.Status)
	assert.Empty(t, res.Message)
}

func TestReadinessEntropyFailure(t *testing.T) {
	m := newManager(probeFunc(func() error { return errors.New("dev/urandom gone") }), clock.NewFixedClock(time.Now()))
	res := m.GetReadiness(context.Background())
	assert.Equal(t, ports.HealthStatusUnhealthy, res.Status)
	assert.Contains(t, res.Message, "dev/urandom gone")
	assert.Equal(t, map[string]ports.HealthStatus{
		"entropy": ports.HealthStatusUnhealthy,
		"clock":   ports.HealthStatusHealthy,
	}, res.Checks)

	assert.Equal(t, ports.HealthStatusHealthy, m.GetLiveness(context.Background()).Status)
}

func TestClockCheckerStates(t *testing.T) {
	c := clock.NewFixedClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	chk := NewClockChecker(c)
	ctx := context.Background()

	assert.Equal(t, ports.HealthStatusHealthy, chk.Check(ctx).Status)
	c.Advance(-time.Second)
	assert.Equal(t, ports.HealthStatusDegraded, chk.Check(ctx).Status)

	c.Set(time.Unix(-10, 0))
	assert.Equal(t, ports.HealthStatusUnhealthy, chk.Check(ctx).Status)

	c.Set(time.Unix(18446744073709552, 0))
	assert.Equal(t, ports.HealthStatusUnhealthy, NewClockChecker(c).Check(ctx).Status)
}

func TestWorstStatusWins(t *testing.T) {
	c := clock.NewFixedClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	m := newManager(entropy.NewCryptoSource(), c)
	require.Equal(t, ports.HealthStatusHealthy, m.GetReadiness(context.Background()).Status)

	c.Advance(-time.Minute)
	res := m.GetReadiness(context.Background())
	assert.Equal(t, ports.HealthStatusDegraded, res.Status)
	assert.True(t, strings.HasPrefix(res.Message, "clock: "))
}

func TestUnknownCheckerDegrades(t *testing.T) {
	m := NewWithConfig(Config{Timeout: time.Second, ReadinessChecks: []string{"missing"}})
	res := m.GetReadiness(context.Background())
	assert.Equal(t, ports.HealthStatusDegraded, res.Status)
	assert.Contains(t, res.Message, "missing")
}

func TestHandlers(t *testing.T) {
	m := newManager(probeFunc(func() error { return errors.New("boom") }), clock.NewFixedClock(time.Now()))
	r := chi.New()
	NewHandler(m).RegisterRoutes(r)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/livez", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "unhealthy", body["status"])
	assert.Equal(t, map[string]any{"entropy": "unhealthy", "clock": "healthy"}, body["checks"])
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
}
