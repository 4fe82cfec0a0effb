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

package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/DansiDanutz/Memory-sub005/pkg/types"
)

func (s *Server) setupRoutes() {
	s.router.GET("/health", s.handleHealth)
	s.router.GET("/health/live", s.handleLiveness)
	s.router.GET("/health/ready", s.handleReadiness)
	s.router.GET("/info", s.handleInfo)

	if s.metrics != nil {
		s.router.GET("/metrics", gin.WrapH(s.metrics.Handler()))
	}
}

// handleHealth runs a fresh probe round and returns the full report.
// An unhealthy report answers 503 so load balancers drop the instance.
func (s *Server) handleHealth(c *gin.Context) {
	report := s.manager.CheckAll(c.Request.Context())

	code := http.StatusOK
	if report.Status == types.HealthStatusUnhealthy {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, report)
}

// handleLiveness answers whether the process is up. It never consults
// dependencies; a live but unhealthy instance must not be restarted.
func (s *Server) handleLiveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "alive",
		"timestamp": time.Now().Unix(),
	})
}

// handleReadiness answers from the poller's cached report, so it stays
// cheap under load-balancer polling.
func (s *Server) handleReadiness(c *gin.Context) {
	report := s.manager.Latest()
	if report == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unknown",
			"reason": "no health check has completed yet",
		})
		return
	}

	code := http.StatusOK
	if !s.manager.Ready() {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, gin.H{
		"status":    report.Status,
		"timestamp": report.Timestamp,
	})
}

func (s *Server) handleInfo(c *gin.Context) {
	if s.info == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "service info not configured"})
		return
	}
	c.JSON(http.StatusOK, s.info())
}
