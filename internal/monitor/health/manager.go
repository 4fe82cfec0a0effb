// Copyright © 2025 jackelyj <dreamerlyj@gmail.com>
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.
//

package health

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/DansiDanutz/Memory-sub005/pkg/logger"
	"github.com/DansiDanutz/Memory-sub005/pkg/types"
)

// Recorder receives probe outcomes for metrics exposition.
type Recorder interface {
	ObserveCheck(dependency, status string, latency time.Duration)
	SetOverall(status string)
}

// ManagerConfig holds configuration for the health manager.
type ManagerConfig struct {
	Version string
	// Interval between background polls.
	Interval time.Duration
	// ProbeTimeout bounds each individual probe.
	ProbeTimeout time.Duration
	// SlowThreshold reclassifies an up dependency as slow above this latency.
	SlowThreshold time.Duration
	StartTime     time.Time
}

// DefaultManagerConfig returns a working default configuration.
func DefaultManagerConfig() *ManagerConfig {
	return &ManagerConfig{
		Version:       "dev",
		Interval:      30 * time.Second,
		ProbeTimeout:  5 * time.Second,
		SlowThreshold: 500 * time.Millisecond,
		StartTime:     time.Now(),
	}
}

// Manager runs registered checkers, aggregates their results, and keeps
// the latest report cached for readiness answers.
type Manager struct {
	config   *ManagerConfig
	recorder Recorder

	mu       sync.RWMutex
	checkers []Checker

	reportMu sync.RWMutex
	latest   *types.HealthStatus

	stopOnce sync.Once
	stopCh   chan struct{}
	done     chan struct{}
	started  bool
}

// NewManager creates a health manager. recorder may be nil when metrics
// exposition is not wired.
func NewManager(cfg *ManagerConfig, recorder Recorder) *Manager {
	if cfg == nil {
		cfg = DefaultManagerConfig()
	}
	if cfg.StartTime.IsZero() {
		cfg.StartTime = time.Now()
	}
	return &Manager{
		config:   cfg,
		recorder: recorder,
		stopCh:   make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Register adds a checker. Registering after Start is allowed; the next
// poll picks it up.
func (m *Manager) Register(c Checker) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.checkers = append(m.checkers, c)
}

// CheckAll runs every registered checker concurrently, each bounded by the
// configured probe timeout, and aggregates the results. The aggregated
// report is cached for Latest and readiness answers.
func (m *Manager) CheckAll(ctx context.Context) *types.HealthStatus {
	m.mu.RLock()
	checkers := make([]Checker, len(m.checkers))
	copy(checkers, m.checkers)
	m.mu.RUnlock()

	report := types.NewHealthStatus(types.HealthStatusHealthy, m.config.Version, time.Since(m.config.StartTime))

	type result struct {
		name   string
		status *types.DependencyStatus
	}

	results := make(chan result, len(checkers))
	var wg sync.WaitGroup
	for _, c := range checkers {
		wg.Add(1)
		go func(c Checker) {
			defer wg.Done()
			probeCtx, cancel := context.WithTimeout(ctx, m.config.ProbeTimeout)
			defer cancel()
			results <- result{name: c.Name(), status: c.Check(probeCtx)}
		}(c)
	}
	wg.Wait()
	close(results)

	for r := range results {
		status := *r.status
		if status.Status == types.DependencyStatusUp && status.Latency > m.config.SlowThreshold {
			status.Status = types.DependencyStatusSlow
		}
		report.AddDependency(r.name, status)
		if m.recorder != nil {
			m.recorder.ObserveCheck(r.name, status.Status, status.Latency)
		}
	}

	report.Recompute()
	if m.recorder != nil {
		m.recorder.SetOverall(report.Status)
	}

	m.reportMu.Lock()
	m.latest = report
	m.reportMu.Unlock()

	return report
}

// Latest returns the most recent cached report, or nil before the first check.
func (m *Manager) Latest() *types.HealthStatus {
	m.reportMu.RLock()
	defer m.reportMu.RUnlock()
	return m.latest
}

// Ready reports whether the service should accept traffic: the latest
// report exists and is not unhealthy. A degraded service stays ready.
func (m *Manager) Ready() bool {
	report := m.Latest()
	return report != nil && report.Status != types.HealthStatusUnhealthy
}

// Start launches the background poller. It runs an immediate check so a
// readiness answer is available right away, then re-checks on the
// configured interval until Stop is called or ctx is cancelled.
func (m *Manager) Start(ctx context.Context) {
	m.mu.Lock()
	if m.started {
		m.mu.Unlock()
		return
	}
	m.started = true
	m.mu.Unlock()

	go func() {
		defer close(m.done)

		m.CheckAll(ctx)

		ticker := time.NewTicker(m.config.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-m.stopCh:
				return
			case <-ticker.C:
				report := m.CheckAll(ctx)
				if !report.IsHealthy() {
					logger.GetLogger().Warn("health poll found degraded or failed dependencies",
						zap.String("status", report.Status),
						zap.Int("dependencies", len(report.Dependencies)))
				}
			}
		}
	}()
}

// Stop terminates the background poller and waits for it to exit.
// Stopping an unstarted or already stopped manager is a no-op.
func (m *Manager) Stop() {
	m.mu.Lock()
	started := m.started
	m.mu.Unlock()

	m.stopOnce.Do(func() {
		close(m.stopCh)
	})
	if started {
		<-m.done
	}
}
