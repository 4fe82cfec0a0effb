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

package serve

import (
	"context"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/DansiDanutz/Memory-sub005/internal/monitor/cache"
	"github.com/DansiDanutz/Memory-sub005/internal/monitor/config"
	"github.com/DansiDanutz/Memory-sub005/internal/monitor/health"
	"github.com/DansiDanutz/Memory-sub005/internal/monitor/metrics"
	"github.com/DansiDanutz/Memory-sub005/internal/monitor/server"
	"github.com/DansiDanutz/Memory-sub005/internal/monitor/store"
	"github.com/DansiDanutz/Memory-sub005/pkg/logger"
	"github.com/DansiDanutz/Memory-sub005/pkg/types"
)

// NewServeCmd creates the serve command.
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the health monitoring server",
		Long: `Start the health monitoring server:
- Periodic dependency probes (database, cache, upstream endpoints)
- Liveness and readiness routes for orchestrators
- Prometheus metrics exposition on /metrics`,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			logger.InitLogger()
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMonitor()
		},
	}

	return cmd
}

func runMonitor() error {
	logger.Logger.Info("Starting health monitoring server...")

	cfg := config.GetConfig()
	startTime := time.Now()

	m := metrics.New()

	manager := health.NewManager(&health.ManagerConfig{
		Version:       cfg.Service.Version,
		Interval:      cfg.Health.Interval,
		ProbeTimeout:  cfg.Health.ProbeTimeout,
		SlowThreshold: cfg.Health.SlowThreshold,
		StartTime:     startTime,
	}, m)

	db, err := store.GetDB()
	if err != nil {
		// The checker reports the database as down until it recovers.
		logger.Logger.Warn("database connection unavailable at startup", zap.Error(err))
	}
	manager.Register(store.New(db))

	kv := cache.NewFromConfig(cfg)
	defer kv.Close()
	manager.Register(kv)

	manager.Register(health.NewRuntimeChecker(startTime))

	for _, upstream := range cfg.Upstreams {
		manager.Register(health.NewHTTPChecker(upstream.Name, upstream.URL, nil))
		logger.Logger.Info("upstream probe registered",
			zap.String("name", upstream.Name),
			zap.String("url", upstream.URL))
	}

	info := func() *types.ServiceInfo {
		si := types.NewServiceInfo(cfg.Service.Name, cfg.Service.Version,
			"health monitoring and metrics service", cfg.Service.Environment, startTime)
		si.BuildInfo = &types.BuildInfo{GoVersion: runtime.Version()}
		return si
	}

	srvCfg := server.DefaultConfig()
	srvCfg.Port = cfg.Server.Port

	srv, err := server.New(srvCfg, manager, m, info)
	if err != nil {
		logger.Logger.Error("Failed to create server", zap.Error(err))
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager.Start(ctx)
	defer manager.Stop()

	if err := srv.Start(ctx); err != nil {
		logger.Logger.Error("Failed to start server", zap.Error(err))
		return err
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	logger.Logger.Info("Shutdown signal received, stopping server...")
	cancel()

	if err := srv.Shutdown(context.Background()); err != nil {
		logger.Logger.Error("Error during server shutdown", zap.Error(err))
		return err
	}

	logger.Logger.Info("Server shutdown complete")
	return nil
}
