// Package metrics keeps lightweight in-process counters surfaced on
// the admin endpoint. No external metrics backend is involved.
package metrics

import (
	"sync/atomic"
	"time"
)

type Collector struct {
	totalRequests   uint64
	serverErrors    uint64
	clientErrors    uint64
	rateLimited     uint64
	reportDownloads uint64
	totalDurationMs uint64
}

func New() *Collector {
	return &Collector{}
}

func (c *Collector) Record(status int, duration time.Duration) {
	atomic.AddUint64(&c.totalRequests, 1)
	switch {
	case status >= 500:
		atomic.AddUint64(&c.serverErrors, 1)
	case status == 429:
		atomic.AddUint64(&c.rateLimited, 1)
	case status >= 400:
		atomic.AddUint64(&c.clientErrors, 1)
	}
	atomic.AddUint64(&c.totalDurationMs, uint64(duration.Milliseconds()))
}

// RecordReport counts a served CSV export.
func (c *Collector) RecordReport() {
	atomic.AddUint64(&c.reportDownloads, 1)
}

func (c *Collector) Snapshot() map[string]any {
	total := atomic.LoadUint64(&c.totalRequests)
	totalMs := atomic.LoadUint64(&c.totalDurationMs)
	avg := float64(0)
	if total > 0 {
		avg = float64(totalMs) / float64(total)
	}
	return map[string]any{
		"requestsTotal":     total,
		"serverErrorsTotal": atomic.LoadUint64(&c.serverErrors),
		"clientErrorsTotal": atomic.LoadUint64(&c.clientErrors),
		"rateLimitedTotal":  atomic.LoadUint64(&c.rateLimited),
		"reportDownloads":   atomic.LoadUint64(&c.reportDownloads),
		"avgDurationMs":     avg,
	}
}
