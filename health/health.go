package health

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/aatuh/ulid-toolkit/ports"
)

// Config names the checkers run for each probe.
type Config struct {
	Timeout         time.Duration
	LivenessChecks  []string
	ReadinessChecks []string
}

// DefaultConfig runs "basic" for liveness and "entropy" plus "clock" for
// readiness, with a two second budget.
func DefaultConfig() Config {
	return Config{
		Timeout:         2 * time.Second,
		LivenessChecks:  []string{"basic"},
		ReadinessChecks: []string{"entropy", "clock"},
	}
}

// Manager implements ports.HealthManager.
type Manager struct {
	config   Config
	checkers map[string]ports.HealthChecker
	mu       sync.RWMutex
}

// New creates a manager with DefaultConfig.
func New() *Manager {
	return NewWithConfig(DefaultConfig())
}

// NewWithConfig creates a manager with custom configuration.
func NewWithConfig(config Config) *Manager {
	return &Manager{
		config:   config,
		checkers: make(map[string]ports.HealthChecker),
	}
}

// RegisterChecker registers checker under its Name, replacing any
// previous one.
func (m *Manager) RegisterChecker(checker ports.HealthChecker) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.checkers[checker.Name()] = checker
}

// GetLiveness runs the liveness checks.
func (m *Manager) GetLiveness(ctx context.Context) ports.HealthResult {
	return m.run(ctx, m.config.LivenessChecks)
}

// GetReadiness runs the readiness checks.
func (m *Manager) GetReadiness(ctx context.Context) ports.HealthResult {
	return m.run(ctx, m.config.ReadinessChecks)
}

// run executes every named check and reports the worst status. Messages
// from checks that are not healthy are joined in name order.
func (m *Manager) run(ctx context.Context, names []string) ports.HealthResult {
	start := time.Now()
	out := ports.HealthResult{
		Status: ports.HealthStatusHealthy,
		Checks: make(map[string]ports.HealthStatus, len(names)),
	}
	if len(names) == 0 {
		out.Message = "no checks configured"
		out.Timestamp = time.Now()
		return out
	}

	if m.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.config.Timeout)
		defer cancel()
	}

	issues := make(map[string]string)
	for _, name := range names {
		res := m.check(ctx, name)
		out.Checks[name] = res.Status
		if res.Status != ports.HealthStatusHealthy {
			issues[name] = res.Message
		}
		out.Status = worst(out.Status, res.Status)
	}

	if len(issues) > 0 {
		keys := make([]string, 0, len(issues))
		for k := range issues {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = k + ": " + issues[k]
		}
		out.Message = strings.Join(parts, "; ")
	}
	out.Timestamp = time.Now()
	out.Duration = out.Timestamp.Sub(start)
	return out
}

func (m *Manager) check(ctx context.Context, name string) ports.HealthResult {
	m.mu.RLock()
	checker, ok := m.checkers[name]
	m.mu.RUnlock()
	if !ok {
		return ports.HealthResult{
			Status:  ports.HealthStatusDegraded,
			Message: fmt.Sprintf("checker %q not registered", name),
		}
	}
	return checker.Check(ctx)
}

var rank = map[ports.HealthStatus]int{
	ports.HealthStatusHealthy:   0,
	ports.HealthStatusDegraded:  1,
	ports.HealthStatusUnhealthy: 2,
}

func worst(a, b ports.HealthStatus) ports.HealthStatus {
	if rank[b] > rank[a] {
		return b
	}
	return a
}
