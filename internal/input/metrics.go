package input

import (
	"slices"
	"sync"
	"sync/atomic"
	"time"
)

const numEventKinds = int(EventRelease) + 1

// Metrics tracks input processing counts and latency.
type Metrics struct {
	// Event counters
	eventsByKind     [numEventKinds]atomic.Uint64
	keyEventsTotal   atomic.Uint64
	actionsTotal     atomic.Uint64
	scriptsTotal     atomic.Uint64
	scriptErrors     atomic.Uint64
	rejectedKeys     atomic.Uint64
	hookConsumptions atomic.Uint64

	// Latency tracking
	mu                sync.RWMutex
	latencies         []time.Duration
	maxLatencySamples int
	latencyIdx        int

	// Peak latency (all time)
	peakLatency atomic.Int64

	startTime time.Time
	enabled   atomic.Bool
}

// NewMetrics creates a new metrics tracker.
func NewMetrics() *Metrics {
	m := &Metrics{
		latencies:         make([]time.Duration, 1000),
		maxLatencySamples: 1000,
		startTime:         time.Now(),
	}
	m.enabled.Store(true)
	return m
}

// SetEnabled enables or disables metrics collection.
func (m *Metrics) SetEnabled(enabled bool) {
	m.enabled.Store(enabled)
}

// IsEnabled returns whether metrics collection is enabled.
func (m *Metrics) IsEnabled() bool {
	return m.enabled.Load()
}

// RecordEvent records a pointer event with its processing time.
func (m *Metrics) RecordEvent(kind EventKind, latency time.Duration) {
	if !m.enabled.Load() {
		return
	}
	if int(kind) < numEventKinds {
		m.eventsByKind[kind].Add(1)
	}
	m.recordLatency(latency)
}

// RecordKeyEvent records a key event with its processing time.
func (m *Metrics) RecordKeyEvent(latency time.Duration) {
	if !m.enabled.Load() {
		return
	}
	m.keyEventsTotal.Add(1)
	m.recordLatency(latency)
}

func (m *Metrics) recordLatency(latency time.Duration) {
	ns := latency.Nanoseconds()
	for {
		cur := m.peakLatency.Load()
		if ns <= cur || m.peakLatency.CompareAndSwap(cur, ns) {
			break
		}
	}

	m.mu.Lock()
	m.latencies[m.latencyIdx] = latency
	m.latencyIdx = (m.latencyIdx + 1) % m.maxLatencySamples
	m.mu.Unlock()
}

// RecordAction records an event that resolved to a binding.
func (m *Metrics) RecordAction() {
	if m.enabled.Load() {
		m.actionsTotal.Add(1)
	}
}

// RecordScript records a script binding run.
func (m *Metrics) RecordScript() {
	if m.enabled.Load() {
		m.scriptsTotal.Add(1)
	}
}

// RecordScriptError records a script binding that failed.
func (m *Metrics) RecordScriptError() {
	if m.enabled.Load() {
		m.scriptErrors.Add(1)
	}
}

// RecordRejectedKey records a key dropped because other input was in
// flight.
func (m *Metrics) RecordRejectedKey() {
	if m.enabled.Load() {
		m.rejectedKeys.Add(1)
	}
}

// RecordHookConsumption records when a hook consumes an event.
func (m *Metrics) RecordHookConsumption() {
	if m.enabled.Load() {
		m.hookConsumptions.Add(1)
	}
}

// MetricsSnapshot holds a point-in-time view of metrics.
type MetricsSnapshot struct {
	// Counters
	EventsByKind     map[EventKind]uint64
	EventsTotal      uint64
	KeyEventsTotal   uint64
	ActionsTotal     uint64
	ScriptsTotal     uint64
	ScriptErrors     uint64
	RejectedKeys     uint64
	HookConsumptions uint64

	// Latency stats
	AvgLatency  time.Duration
	MaxLatency  time.Duration
	P99Latency  time.Duration
	PeakLatency time.Duration

	EventsPerSecond float64
	Uptime          time.Duration
}

// Snapshot returns a point-in-time view of all metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	m.mu.RLock()
	latencies := slices.Clone(m.latencies)
	start := m.startTime
	m.mu.RUnlock()

	snap := MetricsSnapshot{
		EventsByKind:     make(map[EventKind]uint64, numEventKinds),
		KeyEventsTotal:   m.keyEventsTotal.Load(),
		ActionsTotal:     m.actionsTotal.Load(),
		ScriptsTotal:     m.scriptsTotal.Load(),
		ScriptErrors:     m.scriptErrors.Load(),
		RejectedKeys:     m.rejectedKeys.Load(),
		HookConsumptions: m.hookConsumptions.Load(),
		PeakLatency:      time.Duration(m.peakLatency.Load()),
		Uptime:           time.Since(start),
	}
	for k := range m.eventsByKind {
		n := m.eventsByKind[k].Load()
		snap.EventsByKind[EventKind(k)] = n
		snap.EventsTotal += n
	}
	if snap.Uptime > 0 {
		snap.EventsPerSecond = float64(snap.EventsTotal+snap.KeyEventsTotal) / snap.Uptime.Seconds()
	}
	snap.AvgLatency, snap.MaxLatency, snap.P99Latency = calculateLatencyStats(latencies)
	return snap
}

// calculateLatencyStats computes average, max, and p99 from a slice of latencies.
func calculateLatencyStats(latencies []time.Duration) (avg, maxLat, p99 time.Duration) {
	valid := make([]time.Duration, 0, len(latencies))
	for _, l := range latencies {
		if l > 0 {
			valid = append(valid, l)
		}
	}
	if len(valid) == 0 {
		return 0, 0, 0
	}

	var sum time.Duration
	for _, l := range valid {
		sum += l
	}
	avg = sum / time.Duration(len(valid))

	slices.Sort(valid)
	maxLat = valid[len(valid)-1]
	idx := min(int(float64(len(valid))*0.99), len(valid)-1)
	return avg, maxLat, valid[idx]
}

// Reset clears all metrics.
func (m *Metrics) Reset() {
	for i := range m.eventsByKind {
		m.eventsByKind[i].Store(0)
	}
	m.keyEventsTotal.Store(0)
	m.actionsTotal.Store(0)
	m.scriptsTotal.Store(0)
	m.scriptErrors.Store(0)
	m.rejectedKeys.Store(0)
	m.hookConsumptions.Store(0)
	m.peakLatency.Store(0)

	m.mu.Lock()
	m.latencies = make([]time.Duration, m.maxLatencySamples)
	m.latencyIdx = 0
	m.startTime = time.Now()
	m.mu.Unlock()
}

// EventsTotal returns the number of pointer events of kind processed.
func (m *Metrics) EventsTotal(kind EventKind) uint64 {
	if int(kind) >= numEventKinds {
		return 0
	}
	return m.eventsByKind[kind].Load()
}

// RejectedKeys returns the number of keys dropped while input was in
// flight.
func (m *Metrics) RejectedKeys() uint64 {
	return m.rejectedKeys.Load()
}

// HealthStatus represents the current health status of input processing.
type HealthStatus struct {
	Healthy          bool
	ScriptErrors     uint64
	PeakLatency      time.Duration
	LatencyThreshold time.Duration
	Message          string
}

// HealthCheck returns the current health status.
func (m *Metrics) HealthCheck(latencyThreshold time.Duration) HealthStatus {
	status := HealthStatus{
		Healthy:          true,
		ScriptErrors:     m.scriptErrors.Load(),
		PeakLatency:      time.Duration(m.peakLatency.Load()),
		LatencyThreshold: latencyThreshold,
		Message:          "healthy",
	}
	switch {
	case status.ScriptErrors > 0:
		status.Healthy = false
		status.Message = "script bindings failing"
	case status.PeakLatency > latencyThreshold:
		status.Healthy = false
		status.Message = "latency threshold exceeded"
	}
	return status
}
