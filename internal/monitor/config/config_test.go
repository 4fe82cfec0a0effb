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

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyDefaults(t *testing.T) {
	cfg := &MonitorConfig{}
	cfg.ApplyDefaults()

	assert.Equal(t, "memory-monitor", cfg.Service.Name)
	assert.Equal(t, "dev", cfg.Service.Version)
	assert.Equal(t, "development", cfg.Service.Environment)
	assert.Equal(t, "9800", cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Health.Interval)
	assert.Equal(t, 5*time.Second, cfg.Health.ProbeTimeout)
	assert.Equal(t, 500*time.Millisecond, cfg.Health.SlowThreshold)
	assert.Equal(t, 10, cfg.Redis.PoolSize)
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	cfg := &MonitorConfig{}
	cfg.Server.Port = "8088"
	cfg.Health.Interval = time.Minute
	cfg.ApplyDefaults()

	assert.Equal(t, "8088", cfg.Server.Port)
	assert.Equal(t, time.Minute, cfg.Health.Interval)
}

func TestGetConfig_ReadsYAML(t *testing.T) {
	ResetForTest()
	defer ResetForTest()

	dir := t.TempDir()
	content := []byte(`
service:
  name: memory-monitor
  version: v1.4.0
  environment: staging
server:
  port: "9900"
database:
  username: monitor
  password: secret
  host: db.internal
  port: "3306"
  dbname: memory
redis:
  addr: cache.internal:6379
  db: 2
health:
  interval: 15s
  probe_timeout: 2s
  slow_threshold: 250ms
upstreams:
  - name: api
    url: http://api.internal/healthz
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "memory-monitor.yaml"), content, 0o600))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer os.Chdir(wd)

	cfg := GetConfig()
	require.NotNil(t, cfg)

	assert.Equal(t, "v1.4.0", cfg.Service.Version)
	assert.Equal(t, "staging", cfg.Service.Environment)
	assert.Equal(t, "9900", cfg.Server.Port)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "cache.internal:6379", cfg.Redis.Addr)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, 15*time.Second, cfg.Health.Interval)
	assert.Equal(t, 250*time.Millisecond, cfg.Health.SlowThreshold)
	require.Len(t, cfg.Upstreams, 1)
	assert.Equal(t, "api", cfg.Upstreams[0].Name)
	assert.Equal(t, "http://api.internal/healthz", cfg.Upstreams[0].URL)

	// Singleton behavior: a second call returns the same instance.
	assert.Same(t, cfg, GetConfig())
}

func TestSetConfigForTest(t *testing.T) {
	ResetForTest()
	defer ResetForTest()

	cfg := &MonitorConfig{}
	cfg.Server.Port = "7000"
	SetConfigForTest(cfg)

	got := GetConfig()
	assert.Same(t, cfg, got)
	assert.Equal(t, "7000", got.Server.Port)
	// Defaults still applied to injected configs.
	assert.Equal(t, 30*time.Second, got.Health.Interval)
}
