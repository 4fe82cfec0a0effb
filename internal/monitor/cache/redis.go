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

// Package cache manages the key-value store connection the monitor probes.
package cache

import (
	"context"
	"errors"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/DansiDanutz/Memory-sub005/internal/monitor/config"
	"github.com/DansiDanutz/Memory-sub005/pkg/types"
)

var (
	// ErrConnectionFailed indicates that the Redis connection failed.
	ErrConnectionFailed = errors.New("redis connection failed")

	// ErrConnectionClosed indicates that the Redis connection is closed.
	ErrConnectionClosed = errors.New("redis connection is closed")
)

// RedisClient is the subset of the go-redis client the cache probe needs.
// It is satisfied by redis.Client and redis.ClusterClient.
type RedisClient interface {
	Ping(ctx context.Context) *redis.StatusCmd
	PoolStats() *redis.PoolStats
	Close() error
}

// Cache wraps a Redis client and exposes a health probe over it.
// Close may race with an in-flight probe, so closed is atomic.
type Cache struct {
	client RedisClient
	closed atomic.Bool
}

// NewFromConfig builds a standalone Redis client from the monitor configuration.
func NewFromConfig(cfg *config.MonitorConfig) *Cache {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	})
	return &Cache{client: client}
}

// New creates a Cache over an existing client.
func New(client RedisClient) *Cache {
	return &Cache{client: client}
}

// Name identifies the dependency in health reports.
func (c *Cache) Name() string {
	return "cache"
}

// Check pings the key-value store and reports latency and pool statistics.
func (c *Cache) Check(ctx context.Context) *types.DependencyStatus {
	if c.client == nil || c.closed.Load() {
		status := types.NewDependencyStatusWithError(types.DependencyStatusDown, ErrConnectionClosed.Error())
		return &status
	}

	start := time.Now()
	err := c.client.Ping(ctx).Err()
	latency := time.Since(start)

	if err != nil {
		status := types.NewDependencyStatusWithError(types.DependencyStatusDown, err.Error())
		status.Latency = latency
		return &status
	}

	status := types.NewDependencyStatus(types.DependencyStatusUp, latency)
	if stats := c.client.PoolStats(); stats != nil {
		status.Details = map[string]string{
			"total_conns": strconv.FormatUint(uint64(stats.TotalConns), 10),
			"idle_conns":  strconv.FormatUint(uint64(stats.IdleConns), 10),
			"hits":        strconv.FormatUint(uint64(stats.Hits), 10),
			"misses":      strconv.FormatUint(uint64(stats.Misses), 10),
		}
	}
	return &status
}

// Close releases the underlying client. Further checks report the
// connection as down.
func (c *Cache) Close() error {
	if c.client == nil || !c.closed.CompareAndSwap(false, true) {
		return ErrConnectionClosed
	}
	return c.client.Close()
}
