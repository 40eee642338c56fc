// Package config provides centralized constants for the readingrabbit application.
package config

import "time"

// Monitor defaults and floors
const (
	// DefaultMonitorInterval replaces a non-positive configured interval.
	// A zero or negative interval would otherwise busy-loop the sampler.
	DefaultMonitorInterval = 1 * time.Second

	// MinTrendWindow is the floor for the trailing trend window.
	MinTrendWindow = 10 * time.Second

	// DefaultTrendWindow is used when the config omits trend_window_seconds.
	DefaultTrendWindow = 60 * time.Second

	// DefaultAlertCooldown is the minimum gap between two alerts for the
	// same metric when the config omits alert_cooldown_seconds.
	DefaultAlertCooldown = 60 * time.Second

	// MonitorJoinTimeout bounds how long the host waits for the monitor
	// goroutine after signalling stop. A monitor still running past this
	// is abandoned, not treated as an error.
	MonitorJoinTimeout = 5 * time.Second
)

// Resource graph settings
const (
	// DefaultHistorySeconds is how much telemetry the live chart keeps
	// when the config omits resource_history_seconds.
	DefaultHistorySeconds = 90

	// MinHistorySeconds is the floor for a configured history window.
	MinHistorySeconds = 10

	// DefaultChartHeight is the chart height in pixels when the config
	// omits resource_chart_height.
	DefaultChartHeight = 140

	// MinChartHeight is the floor for a configured chart height.
	MinChartHeight = 80
)

// GPU query settings
const (
	// GPUQueryTimeout bounds a single nvidia-smi invocation.
	GPUQueryTimeout = 2 * time.Second
)

// Retry settings
const (
	DefaultMaxRetries     = 3
	DefaultRetryDelayBase = time.Second
)

// HTTP client settings
const (
	HTTPTimeout             = 2 * time.Minute
	HTTPMaxIdleConns        = 10
	HTTPMaxIdleConnsPerHost = 10
	HTTPIdleConnTimeout     = 90 * time.Second
)

// Cleaner settings
const (
	// CleanerMaxTokens caps the completion size for a single OCR line.
	CleanerMaxTokens = 128
)
