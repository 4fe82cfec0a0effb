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

// Package health orchestrates dependency probes and aggregates them into a
// service-level health report. It provides liveness and readiness answers
// for orchestrators and a background poller that keeps a cached report warm.
package health

import (
	"context"
	"fmt"
	"net/http"
	"runtime"
	"strconv"
	"time"

	"github.com/DansiDanutz/Memory-sub005/pkg/types"
)

// Checker is implemented by every dependency probe. Check must respect the
// deadline on ctx and never panic; failures are reported in the returned
// status, not as errors.
type Checker interface {
	Name() string
	Check(ctx context.Context) *types.DependencyStatus
}

// CheckerFunc adapts a function to the Checker interface.
type CheckerFunc struct {
	CheckerName string
	Fn          func(ctx context.Context) *types.DependencyStatus
}

// Name identifies the dependency in health reports.
func (f CheckerFunc) Name() string {
	return f.CheckerName
}

// Check calls the wrapped function.
func (f CheckerFunc) Check(ctx context.Context) *types.DependencyStatus {
	return f.Fn(ctx)
}

// HTTPChecker probes an upstream HTTP endpoint with a GET request.
// Any 2xx or 3xx response counts as up.
type HTTPChecker struct {
	name   string
	url    string
	client *http.Client
}

// NewHTTPChecker creates an HTTP checker for the given endpoint.
// If client is nil a default client is used; per-probe timeouts come
// from the context passed to Check.
func NewHTTPChecker(name, url string, client *http.Client) *HTTPChecker {
	if client == nil {
		client = &http.Client{}
	}
	return &HTTPChecker{name: name, url: url, client: client}
}

// Name identifies the dependency in health reports.
func (h *HTTPChecker) Name() string {
	return h.name
}

// Check performs the GET probe.
func (h *HTTPChecker) Check(ctx context.Context) *types.DependencyStatus {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.url, nil)
	if err != nil {
		status := types.NewDependencyStatusWithError(types.DependencyStatusDown, err.Error())
		return &status
	}

	start := time.Now()
	resp, err := h.client.Do(req)
	latency := time.Since(start)

	if err != nil {
		status := types.NewDependencyStatusWithError(types.DependencyStatusDown, err.Error())
		status.Latency = latency
		return &status
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		status := types.NewDependencyStatusWithError(types.DependencyStatusDown,
			fmt.Sprintf("unexpected status %d", resp.StatusCode))
		status.Latency = latency
		return &status
	}

	status := types.NewDependencyStatus(types.DependencyStatusUp, latency)
	status.Details = map[string]string{"http_status": strconv.Itoa(resp.StatusCode)}
	return &status
}

// RuntimeChecker reports process-level figures. It is always up; the
// numbers ride along as details for operators.
type RuntimeChecker struct {
	startTime time.Time
}

// NewRuntimeChecker creates a runtime checker anchored at the process start time.
func NewRuntimeChecker(startTime time.Time) *RuntimeChecker {
	return &RuntimeChecker{startTime: startTime}
}

// Name identifies the dependency in health reports.
func (r *RuntimeChecker) Name() string {
	return "runtime"
}

// Check gathers goroutine and heap figures.
func (r *RuntimeChecker) Check(ctx context.Context) *types.DependencyStatus {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	status := types.NewDependencyStatus(types.DependencyStatusUp, 0)
	status.Details = map[string]string{
		"goroutines":   strconv.Itoa(runtime.NumGoroutine()),
		"heap_in_use":  strconv.FormatUint(mem.HeapInuse, 10),
		"heap_objects": strconv.FormatUint(mem.HeapObjects, 10),
		"gc_cycles":    strconv.FormatUint(uint64(mem.NumGC), 10),
		"uptime":       time.Since(r.startTime).Truncate(time.Second).String(),
		"go_version":   runtime.Version(),
		"num_cpu":      strconv.Itoa(runtime.NumCPU()),
	}
	return &status
}
