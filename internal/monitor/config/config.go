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

// Package config loads the monitor configuration from memory-monitor.yaml.
package config

import (
	"sync"
	"time"

	"github.com/spf13/viper"
)

var (
	config *MonitorConfig
	once   sync.Once
)

// UpstreamTarget is an external HTTP endpoint probed by the health manager.
type UpstreamTarget struct {
	Name string `json:"name" yaml:"name" mapstructure:"name"`
	URL  string `json:"url" yaml:"url" mapstructure:"url"`
}

// MonitorConfig is the root configuration for the monitoring service.
type MonitorConfig struct {
	Service struct {
		Name        string `json:"name" yaml:"name" mapstructure:"name"`
		Version     string `json:"version" yaml:"version" mapstructure:"version"`
		Environment string `json:"environment" yaml:"environment" mapstructure:"environment"`
	} `json:"service" yaml:"service" mapstructure:"service"`
	Server struct {
		Port string `json:"port" yaml:"port" mapstructure:"port"`
	} `json:"server" yaml:"server" mapstructure:"server"`
	Database struct {
		Username string `json:"username" yaml:"username" mapstructure:"username"`
		Password string `json:"password" yaml:"password" mapstructure:"password"`
		Host     string `json:"host" yaml:"host" mapstructure:"host"`
		Port     string `json:"port" yaml:"port" mapstructure:"port"`
		DBName   string `json:"dbname" yaml:"dbname" mapstructure:"dbname"`
	} `json:"database" yaml:"database" mapstructure:"database"`
	Redis struct {
		Addr     string `json:"addr" yaml:"addr" mapstructure:"addr"`
		Password string `json:"password" yaml:"password" mapstructure:"password"`
		DB       int    `json:"db" yaml:"db" mapstructure:"db"`
		PoolSize int    `json:"pool_size" yaml:"pool_size" mapstructure:"pool_size"`
	} `json:"redis" yaml:"redis" mapstructure:"redis"`
	Health struct {
		Interval      time.Duration `json:"interval" yaml:"interval" mapstructure:"interval"`
		ProbeTimeout  time.Duration `json:"probe_timeout" yaml:"probe_timeout" mapstructure:"probe_timeout"`
		SlowThreshold time.Duration `json:"slow_threshold" yaml:"slow_threshold" mapstructure:"slow_threshold"`
	} `json:"health" yaml:"health" mapstructure:"health"`
	Upstreams []UpstreamTarget `json:"upstreams" yaml:"upstreams" mapstructure:"upstreams"`
}

// ApplyDefaults fills in zero-valued fields with working defaults.
func (c *MonitorConfig) ApplyDefaults() {
	if c.Service.Name == "" {
		c.Service.Name = "memory-monitor"
	}
	if c.Service.Version == "" {
		c.Service.Version = "dev"
	}
	if c.Service.Environment == "" {
		c.Service.Environment = "development"
	}
	if c.Server.Port == "" {
		c.Server.Port = "9800"
	}
	if c.Health.Interval <= 0 {
		c.Health.Interval = 30 * time.Second
	}
	if c.Health.ProbeTimeout <= 0 {
		c.Health.ProbeTimeout = 5 * time.Second
	}
	if c.Health.SlowThreshold <= 0 {
		c.Health.SlowThreshold = 500 * time.Millisecond
	}
	if c.Redis.PoolSize <= 0 {
		c.Redis.PoolSize = 10
	}
}

// GetConfig loads the configuration once and returns it on every call.
// It panics when the config file cannot be read or parsed; the monitor
// has nothing useful to do without its configuration.
func GetConfig() *MonitorConfig {
	once.Do(func() {
		v := viper.New()
		v.SetConfigName("memory-monitor")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/memory-monitor")
		if err := v.ReadInConfig(); err != nil {
			panic(err)
		}
		cfg := &MonitorConfig{}
		if err := v.Unmarshal(cfg); err != nil {
			panic(err)
		}
		cfg.ApplyDefaults()
		config = cfg
	})
	return config
}

// SetConfigForTest injects a configuration and marks it loaded.
// This should only be used in tests.
func SetConfigForTest(cfg *MonitorConfig) {
	once.Do(func() {})
	if cfg != nil {
		cfg.ApplyDefaults()
	}
	config = cfg
}

// ResetForTest clears the loaded configuration so the next GetConfig
// re-reads it. This should only be used in tests.
func ResetForTest() {
	config = nil
	once = sync.Once{}
}
