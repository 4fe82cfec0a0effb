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

package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/DansiDanutz/Memory-sub005/internal/monitor/config"
	"github.com/DansiDanutz/Memory-sub005/pkg/types"
)

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      mockDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	return New(db), mock
}

func TestStoreCheck_Up(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectPing()

	status := s.Check(context.Background())

	require.NotNil(t, status)
	assert.Equal(t, types.DependencyStatusUp, status.Status)
	assert.Empty(t, status.Error)
	assert.Contains(t, status.Details, "open_connections")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreCheck_PingFails(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectPing().WillReturnError(errors.New("connection refused"))

	status := s.Check(context.Background())

	require.NotNil(t, status)
	assert.Equal(t, types.DependencyStatusDown, status.Status)
	assert.Contains(t, status.Error, "connection refused")
}

func TestStoreCheck_NilConnection(t *testing.T) {
	s := New(nil)

	status := s.Check(context.Background())

	require.NotNil(t, status)
	assert.Equal(t, types.DependencyStatusDown, status.Status)
	assert.NotEmpty(t, status.Error)
}

func TestStoreName(t *testing.T) {
	s := New(nil)
	assert.Equal(t, "database", s.Name())
}

func TestGetDB_UnreachableDatabase(t *testing.T) {
	config.ResetForTest()
	defer config.ResetForTest()
	ResetDBForTest()
	defer ResetDBForTest()

	cfg := &config.MonitorConfig{}
	cfg.Database.Username = "monitor"
	cfg.Database.Password = "monitor"
	cfg.Database.Host = "127.0.0.1"
	cfg.Database.Port = "1" // nothing listens here
	cfg.Database.DBName = "memory"
	config.SetConfigForTest(cfg)

	// Opening must not connect, so an unreachable database neither
	// panics nor errors at startup.
	db, err := GetDB()
	require.NoError(t, err)
	require.NotNil(t, db)

	// The failure surfaces as probe data instead.
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	status := New(db).Check(ctx)
	require.NotNil(t, status)
	assert.Equal(t, types.DependencyStatusDown, status.Status)
	assert.NotEmpty(t, status.Error)
}
