package monitor

import (
	"time"

	"readingrabbit/internal/logger"
)

// AlertFunc receives one alert per metric per cooldown window. It is invoked
// from the monitor's goroutine; panics are recovered and discarded so alert
// delivery can never break sampling.
type AlertFunc func(metric string, value float64)

// Evaluator compares samples against configured thresholds and rate-limits
// alerts per metric. It owns the last-alert bookkeeping and the append-only
// alert history; it is driven only by the monitor goroutine.
type Evaluator struct {
	thresholds map[string]float64
	cooldown   time.Duration
	onAlert    AlertFunc

	lastAlert map[string]time.Time
	history   []AlertEvent
}

// NewEvaluator creates an evaluator. A metric with no entry in thresholds is
// never evaluated. A negative cooldown is treated as zero, meaning every
// qualifying sample alerts.
func NewEvaluator(thresholds map[string]float64, cooldown time.Duration, onAlert AlertFunc) *Evaluator {
	if cooldown < 0 {
		cooldown = 0
	}
	return &Evaluator{
		thresholds: thresholds,
		cooldown:   cooldown,
		onAlert:    onAlert,
		lastAlert:  make(map[string]time.Time),
	}
}

// Evaluate checks one sample against every configured threshold and returns
// the alerts it raised. A metric absent from the sample is skipped. At most
// one alert fires per metric per cooldown window regardless of how many
// consecutive samples stay above threshold.
func (e *Evaluator) Evaluate(s Sample) []AlertEvent {
	var fired []AlertEvent

	for _, metric := range metricOrder {
		threshold, configured := e.thresholds[metric]
		if !configured {
			continue
		}
		value, present := s.Value(metric)
		if !present || value < threshold {
			continue
		}
		if last, seen := e.lastAlert[metric]; seen && s.Taken.Sub(last) < e.cooldown {
			continue
		}
		e.lastAlert[metric] = s.Taken

		ev := AlertEvent{Time: s.Taken, Metric: metric, Value: value}
		e.history = append(e.history, ev)
		fired = append(fired, ev)
		e.deliver(ev)
	}

	return fired
}

// deliver invokes the alert callback, swallowing any panic.
func (e *Evaluator) deliver(ev AlertEvent) {
	if e.onAlert == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			logger.Warn("alert callback panicked for %s: %v", ev.Metric, r)
		}
	}()
	e.onAlert(ev.Metric, ev.Value)
}

// History returns all alerts raised so far, in chronological order.
func (e *Evaluator) History() []AlertEvent {
	return e.history
}
