// Package health runs checks against a live simulation. Each check
// inspects one aspect of the running state; the checker aggregates them
// into a single status that shells log or act on.
package health

import (
	"context"
	"errors"
	"fmt"
	"math"
	"runtime"
	"sort"
	"sync"

	"github.com/opd-ai/go-ballpit/pkg/engine"
)

// HealthCheck defines the interface for individual health checks.
type HealthCheck interface {
	// Name returns the unique name of this health check
	Name() string
	// Check performs the health check and returns an error if unhealthy
	Check(ctx context.Context) error
}

// HealthStatus represents the overall health of a simulation.
type HealthStatus struct {
	Status string                     `json:"status"`
	Checks map[string]ComponentHealth `json:"checks"`
}

// Healthy reports whether every check passed
func (s HealthStatus) Healthy() bool {
	return s.Status == StatusHealthy
}

// Failed returns the names of failing checks in sorted order
func (s HealthStatus) Failed() []string {
	var names []string
	for name, c := range s.Checks {
		if c.Status != StatusHealthy {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// ComponentHealth represents the health status of an individual check.
type ComponentHealth struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// Status values
const (
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"
)

// HealthChecker manages and executes health checks.
type HealthChecker struct {
	checks map[string]HealthCheck
	mu     sync.RWMutex
}

// NewHealthChecker creates a new health checker instance.
func NewHealthChecker() *HealthChecker {
	return &HealthChecker{
		checks: make(map[string]HealthCheck),
	}
}

// AddCheck registers a health check. A check with the same name is
// replaced.
func (hc *HealthChecker) AddCheck(check HealthCheck) {
	hc.mu.Lock()
	defer hc.mu.Unlock()
	hc.checks[check.Name()] = check
}

// RemoveCheck removes a health check by name.
func (hc *HealthChecker) RemoveCheck(name string) {
	hc.mu.Lock()
	defer hc.mu.Unlock()
	delete(hc.checks, name)
}

// CheckHealth executes all registered health checks and returns the
// aggregated status. The overall status is healthy only if every check
// passes.
func (hc *HealthChecker) CheckHealth(ctx context.Context) HealthStatus {
	hc.mu.RLock()
	defer hc.mu.RUnlock()

	status := HealthStatus{
		Status: StatusHealthy,
		Checks: make(map[string]ComponentHealth),
	}

	for name, check := range hc.checks {
		if err := check.Check(ctx); err != nil {
			status.Status = StatusUnhealthy
			status.Checks[name] = ComponentHealth{
				Status:  StatusUnhealthy,
				Message: err.Error(),
			}
		} else {
			status.Checks[name] = ComponentHealth{
				Status: StatusHealthy,
			}
		}
	}

	return status
}

// SnapshotSource supplies ball state copies
type SnapshotSource interface {
	Snapshot() []engine.BallState
}

// BallStateCheck verifies the per-ball invariants: a stopped ball has
// zero speed, a direction is a unit vector, speeds are finite and
// non-negative, positions are finite and a held ball is not moving.
type BallStateCheck struct {
	source SnapshotSource
}

const unitTolerance = 1e-6

// NewBallStateCheck creates a ball state check over source
func NewBallStateCheck(source SnapshotSource) *BallStateCheck {
	return &BallStateCheck{source: source}
}

// Name returns the name of this health check.
func (b *BallStateCheck) Name() string {
	return "ball_state"
}

// Check reports every violated invariant
func (b *BallStateCheck) Check(ctx context.Context) error {
	var errs []error
	for _, s := range b.source.Snapshot() {
		if s.Direction == nil && s.Speed != 0 {
			errs = append(errs, fmt.Errorf("ball %d is stopped with speed %v", s.ID, s.Speed))
		}
		if s.Direction != nil && math.Abs(s.Direction.Length()-1) > unitTolerance {
			errs = append(errs, fmt.Errorf("ball %d has non-unit direction %v", s.ID, *s.Direction))
		}
		if math.IsNaN(s.Speed) || math.IsInf(s.Speed, 0) || s.Speed < 0 {
			errs = append(errs, fmt.Errorf("ball %d has invalid speed %v", s.ID, s.Speed))
		}
		if !isFinite(s.X) || !isFinite(s.Y) {
			errs = append(errs, fmt.Errorf("ball %d has non-finite position (%v, %v)", s.ID, s.X, s.Y))
		}
		if s.Caught && s.Direction != nil {
			errs = append(errs, fmt.Errorf("ball %d is caught but moving", s.ID))
		}
	}
	return errors.Join(errs...)
}

// TickCheck verifies the simulation is running and has ticked since the
// previous check.
type TickCheck struct {
	sim  *engine.Simulation
	last uint64
	seen bool
}

// NewTickCheck creates a tick progress check for sim
func NewTickCheck(sim *engine.Simulation) *TickCheck {
	return &TickCheck{sim: sim}
}

// Name returns the name of this health check.
func (t *TickCheck) Name() string {
	return "tick"
}

// Check verifies the tick counter moved
func (t *TickCheck) Check(ctx context.Context) error {
	if !t.sim.Running {
		return errors.New("simulation is not running")
	}
	tick := t.sim.Tick
	stalled := t.seen && tick == t.last
	t.last, t.seen = tick, true
	if stalled {
		return fmt.Errorf("simulation stalled at tick %d", tick)
	}
	return nil
}

// MemoryHealthCheck implements HealthCheck for memory usage monitoring.
type MemoryHealthCheck struct {
	maxMemoryMB    int64
	getMemoryUsage func() int64
}

// NewMemoryHealthCheck creates a health check for memory usage. A nil
// getMemoryUsage reads the Go runtime heap.
func NewMemoryHealthCheck(maxMemoryMB int64, getMemoryUsage func() int64) *MemoryHealthCheck {
	if getMemoryUsage == nil {
		getMemoryUsage = heapMB
	}
	return &MemoryHealthCheck{
		maxMemoryMB:    maxMemoryMB,
		getMemoryUsage: getMemoryUsage,
	}
}

// Name returns the name of this health check.
func (m *MemoryHealthCheck) Name() string {
	return "memory"
}

// Check verifies that memory usage is within acceptable limits.
func (m *MemoryHealthCheck) Check(ctx context.Context) error {
	currentMB := m.getMemoryUsage()
	if currentMB > m.maxMemoryMB {
		return fmt.Errorf("memory usage %dMB exceeds limit %dMB", currentMB, m.maxMemoryMB)
	}
	return nil
}

func heapMB() int64 {
	var stats runtime.MemStats
	runtime.ReadMemStats(&stats)
	return int64(stats.HeapAlloc / (1024 * 1024))
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// ForSimulation returns a checker with the ball state and tick checks
// for sim plus a heap limit of maxMemoryMB
func ForSimulation(sim *engine.Simulation, maxMemoryMB int64) *HealthChecker {
	hc := NewHealthChecker()
	hc.AddCheck(NewBallStateCheck(sim))
	hc.AddCheck(NewTickCheck(sim))
	hc.AddCheck(NewMemoryHealthCheck(maxMemoryMB, nil))
	return hc
}
