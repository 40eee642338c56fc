// Package monitor implements background resource telemetry: a sampler polling
// host utilization at a fixed cadence, threshold alerting with cooldown, an
// append-only time-series, and end-of-run trend/summary analytics.
package monitor

import "time"

// Metric names used in thresholds, summaries and artifact files.
const (
	MetricCPU  = "cpu"
	MetricRAM  = "ram"
	MetricGPU  = "gpu"
	MetricVRAM = "vram"
)

// metricOrder fixes the rendering order of summary output.
var metricOrder = []string{MetricCPU, MetricRAM, MetricGPU, MetricVRAM}

// Sample is one observation of host utilization. GPU and VRAM are nil when
// the metric could not be measured (no GPU, query failure); nil is distinct
// from a legitimate 0% reading. A Sample is never mutated after recording.
type Sample struct {
	CPU  float64
	RAM  float64
	GPU  *float64
	VRAM *float64

	// Taken is when the sample was observed. Go's time.Time carries the
	// monotonic clock reading, so Sub between samples is drift-free.
	Taken time.Time
}

// Value returns the named metric and whether it is present in this sample.
func (s Sample) Value(metric string) (float64, bool) {
	switch metric {
	case MetricCPU:
		return s.CPU, true
	case MetricRAM:
		return s.RAM, true
	case MetricGPU:
		if s.GPU == nil {
			return 0, false
		}
		return *s.GPU, true
	case MetricVRAM:
		if s.VRAM == nil {
			return 0, false
		}
		return *s.VRAM, true
	default:
		return 0, false
	}
}

// AlertEvent records one threshold breach that passed the cooldown gate.
type AlertEvent struct {
	Time   time.Time
	Metric string
	Value  float64
}
