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

// Package store manages the relational-store connection the monitor probes.
package store

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/DansiDanutz/Memory-sub005/internal/monitor/config"
	"github.com/DansiDanutz/Memory-sub005/pkg/types"
)

var (
	dbConn *gorm.DB
	dbErr  error
	once   sync.Once
)

// GetDB returns the shared gorm connection, opening it on first use.
// The dialector skips the eager version handshake so an unreachable
// database does not fail startup; connection errors surface through
// the store's health probe instead.
func GetDB() (*gorm.DB, error) {
	once.Do(func() {
		cfg := config.GetConfig()
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8&parseTime=True&loc=Local",
			cfg.Database.Username, cfg.Database.Password, cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)
		db, err := gorm.Open(mysql.New(mysql.Config{
			DSN:                       dsn,
			SkipInitializeWithVersion: true,
		}), &gorm.Config{})
		if err != nil {
			dbErr = fmt.Errorf("failed to open database: %w", err)
			return
		}
		dbConn = db
	})
	return dbConn, dbErr
}

// SetDBForTest replaces the shared connection. This should only be used in tests.
func SetDBForTest(db *gorm.DB) {
	once.Do(func() {})
	dbConn = db
	dbErr = nil
}

// ResetDBForTest clears the shared connection so the next GetDB reopens it.
// This should only be used in tests.
func ResetDBForTest() {
	dbConn = nil
	dbErr = nil
	once = sync.Once{}
}

// Store wraps a gorm connection and exposes a health probe over it.
type Store struct {
	db *gorm.DB
}

// New creates a Store over an existing gorm connection.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Name identifies the dependency in health reports.
func (s *Store) Name() string {
	return "database"
}

// Check pings the database and reports latency and pool statistics.
func (s *Store) Check(ctx context.Context) *types.DependencyStatus {
	if s.db == nil {
		status := types.NewDependencyStatusWithError(types.DependencyStatusDown, "database connection not initialized")
		return &status
	}

	sqlDB, err := s.db.DB()
	if err != nil {
		status := types.NewDependencyStatusWithError(types.DependencyStatusDown, err.Error())
		return &status
	}

	start := time.Now()
	err = sqlDB.PingContext(ctx)
	latency := time.Since(start)

	if err != nil {
		status := types.NewDependencyStatusWithError(types.DependencyStatusDown, err.Error())
		status.Latency = latency
		return &status
	}

	stats := sqlDB.Stats()
	status := types.NewDependencyStatus(types.DependencyStatusUp, latency)
	status.Details = map[string]string{
		"open_connections": strconv.Itoa(stats.OpenConnections),
		"in_use":           strconv.Itoa(stats.InUse),
		"idle":             strconv.Itoa(stats.Idle),
	}
	return &status
}
