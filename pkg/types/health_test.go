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

package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHealthStatusConstants(t *testing.T) {
	assert.Equal(t, "healthy", HealthStatusHealthy)
	assert.Equal(t, "unhealthy", HealthStatusUnhealthy)
	assert.Equal(t, "degraded", HealthStatusDegraded)
}

func TestDependencyStatusConstants(t *testing.T) {
	assert.Equal(t, "up", DependencyStatusUp)
	assert.Equal(t, "down", DependencyStatusDown)
	assert.Equal(t, "slow", DependencyStatusSlow)
}

func TestNewHealthStatus(t *testing.T) {
	version := "v1.2.3"
	uptime := 5 * time.Minute

	status := NewHealthStatus(HealthStatusHealthy, version, uptime)

	assert.NotNil(t, status)
	assert.Equal(t, HealthStatusHealthy, status.Status)
	assert.Equal(t, version, status.Version)
	assert.Equal(t, uptime, status.Uptime)
	assert.NotZero(t, status.Timestamp)
	assert.True(t, time.Since(status.Timestamp) < time.Second) // Should be recent
	assert.NotNil(t, status.Dependencies)
	assert.Empty(t, status.Dependencies)
}

func TestAddDependency(t *testing.T) {
	status := NewHealthStatus(HealthStatusHealthy, "v1.0.0", time.Minute)

	dep := NewDependencyStatus(DependencyStatusUp, 5*time.Millisecond)
	status.AddDependency("database", dep)

	assert.Len(t, status.Dependencies, 1)
	assert.Equal(t, DependencyStatusUp, status.Dependencies["database"].Status)
}

func TestAddDependency_NilMap(t *testing.T) {
	status := &HealthStatus{Status: HealthStatusHealthy}

	status.AddDependency("cache", NewDependencyStatus(DependencyStatusUp, time.Millisecond))

	assert.NotNil(t, status.Dependencies)
	assert.Len(t, status.Dependencies, 1)
}

func TestIsHealthy(t *testing.T) {
	assert.True(t, NewHealthStatus(HealthStatusHealthy, "v1", 0).IsHealthy())
	assert.False(t, NewHealthStatus(HealthStatusDegraded, "v1", 0).IsHealthy())
	assert.False(t, NewHealthStatus(HealthStatusUnhealthy, "v1", 0).IsHealthy())
}

func TestRecompute(t *testing.T) {
	testCases := []struct {
		name     string
		deps     map[string]string
		expected string
	}{
		{
			name:     "all up",
			deps:     map[string]string{"database": DependencyStatusUp, "cache": DependencyStatusUp},
			expected: HealthStatusHealthy,
		},
		{
			name:     "one slow",
			deps:     map[string]string{"database": DependencyStatusUp, "cache": DependencyStatusSlow},
			expected: HealthStatusDegraded,
		},
		{
			name:     "one down",
			deps:     map[string]string{"database": DependencyStatusDown, "cache": DependencyStatusSlow},
			expected: HealthStatusUnhealthy,
		},
		{
			name:     "no dependencies",
			deps:     map[string]string{},
			expected: HealthStatusHealthy,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			status := NewHealthStatus(HealthStatusHealthy, "v1.0.0", time.Minute)
			for name, depStatus := range tc.deps {
				status.AddDependency(name, NewDependencyStatus(depStatus, time.Millisecond))
			}

			status.Recompute()

			assert.Equal(t, tc.expected, status.Status)
		})
	}
}

func TestNewDependencyStatusWithError(t *testing.T) {
	dep := NewDependencyStatusWithError(DependencyStatusDown, "connection refused")

	assert.Equal(t, DependencyStatusDown, dep.Status)
	assert.Equal(t, "connection refused", dep.Error)
	assert.NotZero(t, dep.Timestamp)
}

func TestNewServiceInfo(t *testing.T) {
	start := time.Now().Add(-time.Hour)

	info := NewServiceInfo("memory-monitor", "v1.0.0", "health monitoring service", "production", start)

	assert.Equal(t, "memory-monitor", info.Name)
	assert.Equal(t, "v1.0.0", info.Version)
	assert.Equal(t, "production", info.Environment)
	assert.True(t, info.Uptime >= time.Hour)
}
