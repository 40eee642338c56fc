package monitor

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// MetricStats holds per-metric aggregates over the whole run.
type MetricStats struct {
	Average float64 `json:"average"`
	Maximum float64 `json:"maximum"`
	Minimum float64 `json:"minimum"`
}

// Summary is the derived analytics for one completed run. It is computed
// exactly once at finalization and never mutated afterwards.
type Summary struct {
	Interval    time.Duration
	TrendWindow time.Duration

	// Metrics holds aggregates for every metric that had at least one
	// present value; metrics absent in every sample are omitted entirely.
	Metrics map[string]MetricStats

	// Trend maps metric name to last-minus-first over the trailing window.
	// A metric with no present value inside the window is omitted.
	Trend map[string]float64

	AlertCount int
}

// Summarize computes a Summary over the full sample history. It is a pure
// function: the same inputs always produce an identical Summary. Returns nil
// when no samples were recorded, in which case no summary artifact exists.
func Summarize(samples []Sample, interval, window time.Duration, alerts []AlertEvent) *Summary {
	if len(samples) == 0 {
		return nil
	}

	sum := &Summary{
		Interval:    interval,
		TrendWindow: window,
		Metrics:     make(map[string]MetricStats),
		Trend:       make(map[string]float64),
		AlertCount:  len(alerts),
	}

	cutoff := samples[len(samples)-1].Taken.Add(-window)

	for _, metric := range metricOrder {
		var total, min, max float64
		count := 0
		for _, s := range samples {
			v, ok := s.Value(metric)
			if !ok {
				continue
			}
			if count == 0 || v < min {
				min = v
			}
			if count == 0 || v > max {
				max = v
			}
			total += v
			count++
		}
		if count == 0 {
			continue
		}
		sum.Metrics[metric] = MetricStats{
			Average: total / float64(count),
			Maximum: max,
			Minimum: min,
		}
	}

	for _, metric := range metricOrder {
		var first, last float64
		found := false
		for _, s := range samples {
			if s.Taken.Before(cutoff) {
				continue
			}
			v, ok := s.Value(metric)
			if !ok {
				continue
			}
			if !found {
				first = v
				found = true
			}
			last = v
		}
		if !found {
			continue
		}
		sum.Trend[metric] = last - first
	}

	return sum
}

// Render formats the summary as human-readable text. Calling it twice on the
// same Summary yields byte-identical output.
func (s *Summary) Render() string {
	var b strings.Builder
	b.WriteString("Resource Summary:")

	for _, metric := range metricOrder {
		stats, ok := s.Metrics[metric]
		if !ok {
			continue
		}
		trendText := ""
		if delta, ok := s.Trend[metric]; ok {
			direction := "stayed level"
			if delta > 0 {
				direction = "increased"
			} else if delta < 0 {
				direction = "decreased"
			}
			trendText = fmt.Sprintf(" (trend %s by %.1f%%)", direction, abs(delta))
		}
		fmt.Fprintf(&b, "\n- %s: avg %.1f%% | max %.1f%% | min %.1f%%%s",
			strings.ToUpper(metric), stats.Average, stats.Maximum, stats.Minimum, trendText)
	}

	if s.AlertCount > 0 {
		fmt.Fprintf(&b, "\n- Alerts triggered: %d (see alert log)", s.AlertCount)
	} else {
		b.WriteString("\n- Alerts triggered: none")
	}

	return b.String()
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// summaryFile is the wire format of the JSON summary artifact.
type summaryFile struct {
	Generated       string                 `json:"generated"`
	Interval        float64                `json:"interval"`
	TrendWindow     float64                `json:"trend_window"`
	Metrics         map[string]MetricStats `json:"metrics"`
	Trend           map[string]float64     `json:"trend"`
	AlertsTriggered int                    `json:"alerts_triggered"`
}

// WriteJSON persists the summary to path, creating parent directories as
// needed. generated is the wall-clock finalization instant.
func (s *Summary) WriteJSON(path string, generated time.Time) error {
	data, err := json.MarshalIndent(summaryFile{
		Generated:       generated.UTC().Format(time.RFC3339),
		Interval:        s.Interval.Seconds(),
		TrendWindow:     s.TrendWindow.Seconds(),
		Metrics:         s.Metrics,
		Trend:           s.Trend,
		AlertsTriggered: s.AlertCount,
	}, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// WriteAlertHistory persists the alert events as CSV (timestamp,metric,value)
// in chronological order. Callers skip the write when no alerts fired.
func WriteAlertHistory(path string, alerts []AlertEvent) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"timestamp", "metric", "value"}); err != nil {
		return err
	}
	for _, ev := range alerts {
		row := []string{
			ev.Time.UTC().Format(time.RFC3339),
			strings.ToUpper(ev.Metric),
			strconv.FormatFloat(ev.Value, 'f', 2, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
