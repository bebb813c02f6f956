// Package monitor ships collected store latency statistics to a metrics
// backend at a fixed cadence.
package monitor

import (
	"context"
	"time"

	"code.cloudfoundry.org/clock"
	"github.com/mobile-directing-system/mds-store/metrics"
)

// Collector yields labeled gauge values, e.g. a stats.Histogram.
type Collector interface {
	Collect() map[string]int64
}

type Emitter struct {
	statter   metrics.Statter
	collector Collector
	clock     clock.Clock
}

type EmitterOption func(*Emitter)

func WithClock(c clock.Clock) EmitterOption {
	return func(e *Emitter) {
		e.clock = c
	}
}

func NewEmitter(statter metrics.Statter, collector Collector, opts ...EmitterOption) *Emitter {
	e := &Emitter{
		statter:   statter,
		collector: collector,
		clock:     clock.NewClock(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// EmitOnce sends every collected value as a gauge.
func (e *Emitter) EmitOnce() {
	for metric, value := range e.collector.Collect() {
		e.statter.Gauge(metric, value)
	}
}

// Run emits on every tick until ctx is cancelled.
func (e *Emitter) Run(ctx context.Context, interval time.Duration) {
	ticker := e.clock.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C():
			e.EmitOnce()
		}
	}
}
