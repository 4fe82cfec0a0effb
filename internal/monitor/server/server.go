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

// Package server hosts the monitor's HTTP application: the health and
// readiness routes, the metrics exposition endpoint, and service info.
package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/DansiDanutz/Memory-sub005/internal/monitor/health"
	"github.com/DansiDanutz/Memory-sub005/internal/monitor/metrics"
	"github.com/DansiDanutz/Memory-sub005/internal/monitor/middleware"
	"github.com/DansiDanutz/Memory-sub005/pkg/logger"
	"github.com/DansiDanutz/Memory-sub005/pkg/types"
)

// Config contains configuration for the monitoring web server.
type Config struct {
	// Port is the listening port.
	Port string

	// ReadTimeout is the maximum duration for reading the entire request.
	ReadTimeout time.Duration

	// WriteTimeout is the maximum duration before timing out writes of the response.
	WriteTimeout time.Duration

	// IdleTimeout is the maximum amount of time to wait for the next request.
	IdleTimeout time.Duration

	// GinMode sets the Gin framework mode ("debug", "release", "test").
	GinMode string

	// GracefulShutdownTimeout is the maximum time to wait for graceful shutdown.
	GracefulShutdownTimeout time.Duration
}

// DefaultConfig returns a default server configuration.
func DefaultConfig() *Config {
	return &Config{
		Port:                    "9800",
		ReadTimeout:             30 * time.Second,
		WriteTimeout:            30 * time.Second,
		IdleTimeout:             60 * time.Second,
		GinMode:                 gin.ReleaseMode,
		GracefulShutdownTimeout: 30 * time.Second,
	}
}

// Validate validates the server configuration.
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("port must be specified")
	}
	if c.ReadTimeout < 0 || c.WriteTimeout < 0 || c.IdleTimeout < 0 {
		return fmt.Errorf("timeouts cannot be negative")
	}
	if c.GracefulShutdownTimeout < 0 {
		return fmt.Errorf("graceful shutdown timeout cannot be negative")
	}
	return nil
}

// Address returns the address the server binds to.
func (c *Config) Address() string {
	return ":" + c.Port
}

// InfoProvider supplies the service-info document served on /info.
type InfoProvider func() *types.ServiceInfo

// Server is the monitor's HTTP application.
type Server struct {
	config  *Config
	manager *health.Manager
	metrics *metrics.Metrics
	info    InfoProvider

	router *gin.Engine
	server *http.Server

	mu         sync.RWMutex
	running    atomic.Bool
	actualAddr string
}

// New creates the server and wires its routes. manager is required;
// metrics and info may be nil, in which case the corresponding routes
// degrade gracefully.
func New(cfg *Config, manager *health.Manager, m *metrics.Metrics, info InfoProvider) (*Server, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid server config: %w", err)
	}
	if manager == nil {
		return nil, fmt.Errorf("health manager is required")
	}

	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.CORS())
	if m != nil {
		router.Use(middleware.HTTPMetrics(m))
	}

	s := &Server{
		config:  cfg,
		manager: manager,
		metrics: m,
		info:    info,
		router:  router,
	}
	s.setupRoutes()

	return s, nil
}

// Start binds the listener and begins serving in the background.
// It returns once the listener is bound so readiness is immediate.
func (s *Server) Start(ctx context.Context) error {
	if s.running.Load() {
		return fmt.Errorf("server already running")
	}

	listener, err := net.Listen("tcp", s.config.Address())
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.config.Address(), err)
	}

	s.mu.Lock()
	s.actualAddr = listener.Addr().String()
	s.server = &http.Server{
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}
	s.mu.Unlock()

	s.running.Store(true)

	go func() {
		logger.GetLogger().Info("monitoring server listening",
			zap.String("address", s.actualAddr))
		if err := s.server.Serve(listener); err != nil && err != http.ErrServerClosed {
			logger.GetLogger().Error("monitoring server failed", zap.Error(err))
		}
		s.running.Store(false)
	}()

	return nil
}

// Shutdown drains in-flight requests and stops the server. It waits up
// to the configured graceful shutdown timeout.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.RLock()
	srv := s.server
	s.mu.RUnlock()

	if srv == nil || !s.running.Load() {
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, s.config.GracefulShutdownTimeout)
	defer cancel()

	logger.GetLogger().Info("shutting down monitoring server")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	s.running.Store(false)
	return nil
}

// Address returns the actual listening address after Start.
func (s *Server) Address() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.actualAddr
}

// Running reports whether the server is accepting connections.
func (s *Server) Running() bool {
	return s.running.Load()
}

// Router exposes the gin engine for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}
