package metrics

import "time"

// Statter emits metrics without surfacing transport failures; implementations
// log them instead.
type Statter interface {
	Inc(metric string, value int64)
	Gauge(metric string, value int64)
	TimingDuration(metric string, value time.Duration)
}
