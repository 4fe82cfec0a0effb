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

// Package metrics defines the Prometheus instruments for the monitor and
// their exposition handler.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/DansiDanutz/Memory-sub005/pkg/types"
)

const namespace = "memory_monitor"

// Metrics holds every instrument registered with the monitor's registry.
type Metrics struct {
	registry *prometheus.Registry

	checkTotal    *prometheus.CounterVec
	checkDuration *prometheus.HistogramVec
	dependencyUp  *prometheus.GaugeVec
	overallHealth prometheus.Gauge

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
	httpInFlight prometheus.Gauge
}

// New creates the instrument set on a dedicated registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		checkTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "health_check_total",
			Help:      "Total number of dependency health probes by outcome.",
		}, []string{"dependency", "status"}),
		checkDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "health_check_duration_seconds",
			Help:      "Latency of dependency health probes.",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		}, []string{"dependency"}),
		dependencyUp: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "dependency_up",
			Help:      "Whether a dependency is up (1), slow (0.5), or down (0).",
		}, []string{"dependency"}),
		overallHealth: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "healthy",
			Help:      "Overall service health: 1 healthy, 0.5 degraded, 0 unhealthy.",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests handled.",
		}, []string{"method", "path", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Latency of handled HTTP requests.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path"}),
		httpInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_requests_in_flight",
			Help:      "Number of HTTP requests currently being served.",
		}),
	}

	registry.MustRegister(
		m.checkTotal,
		m.checkDuration,
		m.dependencyUp,
		m.overallHealth,
		m.httpRequests,
		m.httpDuration,
		m.httpInFlight,
	)

	return m
}

// ObserveCheck records the outcome of a single dependency probe.
func (m *Metrics) ObserveCheck(dependency, status string, latency time.Duration) {
	m.checkTotal.WithLabelValues(dependency, status).Inc()
	m.checkDuration.WithLabelValues(dependency).Observe(latency.Seconds())
	m.dependencyUp.WithLabelValues(dependency).Set(statusValue(status))
}

// SetOverall records the aggregated service health.
func (m *Metrics) SetOverall(status string) {
	m.overallHealth.Set(overallValue(status))
}

// ObserveHTTPRequest records a handled HTTP request.
func (m *Metrics) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	m.httpRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// IncInFlight tracks the start of an HTTP request.
func (m *Metrics) IncInFlight() {
	m.httpInFlight.Inc()
}

// DecInFlight tracks the end of an HTTP request.
func (m *Metrics) DecInFlight() {
	m.httpInFlight.Dec()
}

// Handler returns the exposition handler for the /metrics route.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
		ErrorHandling:     promhttp.ContinueOnError,
	})
}

// Registry exposes the underlying registry for additional collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func statusValue(status string) float64 {
	switch status {
	case types.DependencyStatusUp:
		return 1
	case types.DependencyStatusSlow:
		return 0.5
	default:
		return 0
	}
}

func overallValue(status string) float64 {
	switch status {
	case types.HealthStatusHealthy:
		return 1
	case types.HealthStatusDegraded:
		return 0.5
	default:
		return 0
	}
}
