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

package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DansiDanutz/Memory-sub005/pkg/types"
)

func TestObserveCheck(t *testing.T) {
	m := New()

	m.ObserveCheck("database", types.DependencyStatusUp, 3*time.Millisecond)
	m.ObserveCheck("database", types.DependencyStatusUp, 4*time.Millisecond)
	m.ObserveCheck("cache", types.DependencyStatusDown, time.Millisecond)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.checkTotal.WithLabelValues("database", "up")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.checkTotal.WithLabelValues("cache", "down")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.dependencyUp.WithLabelValues("database")))
	assert.Equal(t, float64(0), testutil.ToFloat64(m.dependencyUp.WithLabelValues("cache")))
}

func TestObserveCheck_SlowValue(t *testing.T) {
	m := New()

	m.ObserveCheck("cache", types.DependencyStatusSlow, 800*time.Millisecond)

	assert.Equal(t, 0.5, testutil.ToFloat64(m.dependencyUp.WithLabelValues("cache")))
}

func TestSetOverall(t *testing.T) {
	m := New()

	m.SetOverall(types.HealthStatusHealthy)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.overallHealth))

	m.SetOverall(types.HealthStatusDegraded)
	assert.Equal(t, 0.5, testutil.ToFloat64(m.overallHealth))

	m.SetOverall(types.HealthStatusUnhealthy)
	assert.Equal(t, float64(0), testutil.ToFloat64(m.overallHealth))
}

func TestObserveHTTPRequest(t *testing.T) {
	m := New()

	m.ObserveHTTPRequest(http.MethodGet, "/health", http.StatusOK, 2*time.Millisecond)
	m.ObserveHTTPRequest(http.MethodGet, "/health", http.StatusOK, 3*time.Millisecond)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "/health", "200")))
}

func TestInFlightGauge(t *testing.T) {
	m := New()

	m.IncInFlight()
	m.IncInFlight()
	assert.Equal(t, float64(2), testutil.ToFloat64(m.httpInFlight))

	m.DecInFlight()
	assert.Equal(t, float64(1), testutil.ToFloat64(m.httpInFlight))
}

func TestHandlerExposition(t *testing.T) {
	m := New()
	m.ObserveCheck("database", types.DependencyStatusUp, 3*time.Millisecond)
	m.SetOverall(types.HealthStatusHealthy)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	m.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "memory_monitor_health_check_total")
	assert.Contains(t, body, "memory_monitor_dependency_up")
	assert.Contains(t, body, "memory_monitor_healthy")
}

func TestRegistryIsDedicated(t *testing.T) {
	a := New()
	b := New()

	require.NotNil(t, a.Registry())
	assert.NotSame(t, a.Registry(), b.Registry())
}
