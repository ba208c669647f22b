package status

import (
	"math"
	"sync/atomic"
)

// Metric names shared by the otel instruments and the local registry
const (
	MetricFrames        = "hockey.frames"
	MetricGoals         = "hockey.goals"
	MetricPickups       = "hockey.powerups.consumed"
	MetricSpawns        = "hockey.powerups.spawned"
	MetricSpecials      = "hockey.specials"
	MetricFrameDuration = "hockey.frame.duration"
	MetricFPS           = "hockey.fps"
)

// AtomicFloat provides atomic float64 operations using bit conversion
// Zero value is ready to use (represents 0.0)
type AtomicFloat struct {
	bits atomic.Uint64
}

// Set stores a float64 value atomically
func (f *AtomicFloat) Set(val float64) {
	f.bits.Store(math.Float64bits(val))
}

// Get loads the float64 value atomically
func (f *AtomicFloat) Get() float64 {
	return math.Float64frombits(f.bits.Load())
}

// Registry mirrors exported metrics in process so the HUD and tests can read them
// without an exporter. Writers cache pointers; reads are lock-free.
type Registry struct {
	Counters *MetricMap[atomic.Int64]
	Gauges   *MetricMap[AtomicFloat]
}

// NewRegistry creates an initialized Registry
func NewRegistry() *Registry {
	return &Registry{
		Counters: NewMetricMap[atomic.Int64](),
		Gauges:   NewMetricMap[AtomicFloat](),
	}
}

// Counter returns the current value of a named counter
func (r *Registry) Counter(name string) int64 {
	return r.Counters.Get(name).Load()
}

// Gauge returns the current value of a named gauge
func (r *Registry) Gauge(name string) float64 {
	return r.Gauges.Get(name).Get()
}

// TotalCount returns total metrics across all types
func (r *Registry) TotalCount() int {
	return r.Counters.Count() + r.Gauges.Count()
}
