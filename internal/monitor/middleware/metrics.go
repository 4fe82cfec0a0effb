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

package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/DansiDanutz/Memory-sub005/internal/monitor/metrics"
)

// HTTPMetricsConfig configures the HTTP metrics middleware.
type HTTPMetricsConfig struct {
	// ExcludePaths contains paths excluded from collection. The exposition
	// endpoint itself is excluded by default to keep it out of its own data.
	ExcludePaths []string
}

// DefaultHTTPMetricsConfig returns sensible defaults.
func DefaultHTTPMetricsConfig() *HTTPMetricsConfig {
	return &HTTPMetricsConfig{
		ExcludePaths: []string{"/metrics"},
	}
}

// HTTPMetrics returns middleware that records request counts, latencies,
// and an in-flight gauge on the given instrument set.
func HTTPMetrics(m *metrics.Metrics) gin.HandlerFunc {
	return HTTPMetricsWithConfig(m, DefaultHTTPMetricsConfig())
}

// HTTPMetricsWithConfig creates the metrics middleware with custom configuration.
func HTTPMetricsWithConfig(m *metrics.Metrics, config *HTTPMetricsConfig) gin.HandlerFunc {
	if config == nil {
		config = DefaultHTTPMetricsConfig()
	}

	excluded := make(map[string]bool)
	for _, path := range config.ExcludePaths {
		excluded[path] = true
	}

	return func(c *gin.Context) {
		if m == nil || excluded[c.Request.URL.Path] {
			c.Next()
			return
		}

		m.IncInFlight()
		defer m.DecInFlight()

		start := time.Now()
		c.Next()
		duration := time.Since(start)

		// Route template keeps label cardinality bounded; unmatched
		// requests fall back to a single bucket.
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		m.ObserveHTTPRequest(c.Request.Method, path, c.Writer.Status(), duration)
	}
}
