package rampfx

import (
	"expvar"
	"sync/atomic"
	"time"
)

// Metrics collects operational counters for an Effect. They can be
// published through expvar and read at /debug/vars when an HTTP server
// imports expvar.
//
// Thread-safe for concurrent use.
type Metrics struct {
	// Counters
	starts        atomic.Int64
	stops         atomic.Int64
	restarts      atomic.Int64
	configReloads atomic.Int64
	frames        atomic.Int64
	errorsTotal   atomic.Int64
	eventsEmitted atomic.Int64

	// tileRebuilds mirrors the synthesizer's cumulative rebuild count.
	tileRebuilds atomic.Int64

	// Frame latency (nanoseconds)
	frameLatencyNs    atomic.Int64
	frameLatencyCount atomic.Int64

	currentlyRunning atomic.Int32

	registered atomic.Bool
}

// NewMetrics creates a new Metrics instance.
func NewMetrics() *Metrics {
	return &Metrics{}
}

// RegisterExpvar publishes the metrics with the rampfx_ prefix.
// Safe to call multiple times; subsequent calls are no-ops.
func (m *Metrics) RegisterExpvar() {
	if m.registered.Swap(true) {
		return
	}

	counters := map[string]*atomic.Int64{
		"rampfx_starts_total":         &m.starts,
		"rampfx_stops_total":          &m.stops,
		"rampfx_restarts_total":       &m.restarts,
		"rampfx_config_reloads_total": &m.configReloads,
		"rampfx_frames_total":         &m.frames,
		"rampfx_tile_rebuilds_total":  &m.tileRebuilds,
		"rampfx_errors_total":         &m.errorsTotal,
		"rampfx_events_emitted_total": &m.eventsEmitted,
	}
	for name, v := range counters {
		expvar.Publish(name, expvar.Func(func() any { return v.Load() }))
	}

	expvar.Publish("rampfx_running", expvar.Func(func() any { return m.currentlyRunning.Load() }))
	expvar.Publish("rampfx_frame_latency_avg_ms", expvar.Func(func() any {
		return float64(m.Snapshot().FrameLatencyAvg) / float64(time.Millisecond)
	}))
}

// MetricsSnapshot is a point-in-time copy of all metrics.
type MetricsSnapshot struct {
	Starts        int64
	Stops         int64
	Restarts      int64
	ConfigReloads int64
	Frames        int64
	TileRebuilds  int64
	ErrorsTotal   int64
	EventsEmitted int64

	Running bool

	FrameLatencyAvg time.Duration
}

// Snapshot returns a point-in-time copy of all metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		Starts:          m.starts.Load(),
		Stops:           m.stops.Load(),
		Restarts:        m.restarts.Load(),
		ConfigReloads:   m.configReloads.Load(),
		Frames:          m.frames.Load(),
		TileRebuilds:    m.tileRebuilds.Load(),
		ErrorsTotal:     m.errorsTotal.Load(),
		EventsEmitted:   m.eventsEmitted.Load(),
		Running:         m.currentlyRunning.Load() > 0,
		FrameLatencyAvg: safeDivide(m.frameLatencyNs.Load(), m.frameLatencyCount.Load()),
	}
}

// IncrementStarts records a start operation.
func (m *Metrics) IncrementStarts() { m.starts.Add(1) }

// IncrementStops records a stop operation.
func (m *Metrics) IncrementStops() { m.stops.Add(1) }

// IncrementRestarts records a restart operation.
func (m *Metrics) IncrementRestarts() { m.restarts.Add(1) }

// IncrementConfigReloads records a configuration reload.
func (m *Metrics) IncrementConfigReloads() { m.configReloads.Add(1) }

// IncrementErrors records an error occurrence.
func (m *Metrics) IncrementErrors() { m.errorsTotal.Add(1) }

// IncrementEventsEmitted records an event emission.
func (m *Metrics) IncrementEventsEmitted() { m.eventsEmitted.Add(1) }

// RecordFrame records one drawn frame and how long it took.
func (m *Metrics) RecordFrame(d time.Duration) {
	m.frames.Add(1)
	m.frameLatencyNs.Add(d.Nanoseconds())
	m.frameLatencyCount.Add(1)
}

// SetTileRebuilds stores the synthesizer's cumulative rebuild count.
func (m *Metrics) SetTileRebuilds(n int) {
	m.tileRebuilds.Store(int64(n))
}

// SetRunning updates the running state gauge.
func (m *Metrics) SetRunning(running bool) {
	if running {
		m.currentlyRunning.Store(1)
	} else {
		m.currentlyRunning.Store(0)
	}
}

// Reset clears all metrics. Useful for testing.
func (m *Metrics) Reset() {
	for _, v := range []*atomic.Int64{
		&m.starts, &m.stops, &m.restarts, &m.configReloads, &m.frames,
		&m.tileRebuilds, &m.errorsTotal, &m.eventsEmitted,
		&m.frameLatencyNs, &m.frameLatencyCount,
	} {
		v.Store(0)
	}
	m.currentlyRunning.Store(0)
}

// safeDivide performs safe division, returning 0 for divide by zero.
func safeDivide(total, count int64) time.Duration {
	if count == 0 {
		return 0
	}
	return time.Duration(total / count)
}

var defaultMetrics = NewMetrics()

// DefaultMetrics returns the global default Metrics instance.
func DefaultMetrics() *Metrics {
	return defaultMetrics
}
