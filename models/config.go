package models

import (
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-yaml"

	appconfig "readingrabbit/internal/config"
)

// Config holds application settings loaded from config.yaml.
type Config struct {
	// Input/output
	VideoPath      string `yaml:"video_path"`
	OutputTextPath string `yaml:"output_text_path"`

	// OCR settings
	OCRLanguages []string `yaml:"ocr_languages"`
	UseGPU       bool     `yaml:"use_gpu"`
	GPUIndex     int      `yaml:"gpu_index"`
	Threads      int      `yaml:"threads"`

	// OCR preprocessing. When both are enabled, adaptive thresholding
	// wins; Otsu applies only when adaptive is off.
	OCRAdaptiveThreshold bool `yaml:"ocr_adaptive_threshold"`
	OCROtsuThreshold     bool `yaml:"ocr_otsu_threshold"`

	// LLM cleanup. An empty model disables cleanup entirely.
	LLMModel       string `yaml:"llm_model"`
	LLMAPIKey      string `yaml:"llm_api_key"`
	LLMEndpoint    string `yaml:"llm_endpoint"`
	PromptTemplate string `yaml:"prompt_template"`

	// Resource monitor. Threshold values are pointers so a blank YAML
	// entry ("cpu:") stays distinguishable from an explicit 0; blank
	// entries are dropped in Normalize instead of alerting on every tick.
	MonitorInterval        float64             `yaml:"monitor_interval"`
	AlertThresholds        map[string]*float64 `yaml:"alert_thresholds"`
	AlertCooldownSeconds   float64             `yaml:"alert_cooldown_seconds"`
	TrendWindowSeconds     float64             `yaml:"trend_window_seconds"`
	ResourceLogPath        string              `yaml:"resource_log_path"`
	SummaryPath            string              `yaml:"summary_path"`
	AlertHistoryPath       string              `yaml:"alert_history_path"`
	ResourceHistorySeconds int                 `yaml:"resource_history_seconds"`
	ResourceChartHeight    int                 `yaml:"resource_chart_height"`

	// Logging
	LogLevel string `yaml:"log_level"`
}

// DefaultConfig returns the built-in settings used when fields are omitted.
func DefaultConfig() *Config {
	return &Config{
		OutputTextPath:       "output.txt",
		OCRLanguages:         []string{"eng"},
		OCRAdaptiveThreshold: true,
		LLMEndpoint:          "https://api.deepseek.com/v1/chat/completions",
		PromptTemplate:       "Clean up this OCR text, fixing recognition errors: {text}",
		MonitorInterval:        appconfig.DefaultMonitorInterval.Seconds(),
		AlertCooldownSeconds:   appconfig.DefaultAlertCooldown.Seconds(),
		TrendWindowSeconds:     appconfig.DefaultTrendWindow.Seconds(),
		ResourceHistorySeconds: appconfig.DefaultHistorySeconds,
		ResourceChartHeight:    appconfig.DefaultChartHeight,
		LogLevel:               "info",
	}
}

// LoadConfig reads and validates a YAML config file. Out-of-range values are
// clamped to safe floors rather than rejected.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	config.Normalize()
	return config, nil
}

// Normalize clamps out-of-range values and canonicalizes threshold keys.
func (c *Config) Normalize() {
	if c.MonitorInterval <= 0 {
		c.MonitorInterval = appconfig.DefaultMonitorInterval.Seconds()
	}
	if c.AlertCooldownSeconds < 0 {
		c.AlertCooldownSeconds = 0
	}
	if c.TrendWindowSeconds < appconfig.MinTrendWindow.Seconds() {
		c.TrendWindowSeconds = appconfig.MinTrendWindow.Seconds()
	}
	if len(c.OCRLanguages) == 0 {
		c.OCRLanguages = []string{"eng"}
	}
	if c.ResourceHistorySeconds <= 0 {
		c.ResourceHistorySeconds = appconfig.DefaultHistorySeconds
	} else if c.ResourceHistorySeconds < appconfig.MinHistorySeconds {
		c.ResourceHistorySeconds = appconfig.MinHistorySeconds
	}
	if c.ResourceChartHeight <= 0 {
		c.ResourceChartHeight = appconfig.DefaultChartHeight
	} else if c.ResourceChartHeight < appconfig.MinChartHeight {
		c.ResourceChartHeight = appconfig.MinChartHeight
	}

	if len(c.AlertThresholds) > 0 {
		normalized := make(map[string]*float64, len(c.AlertThresholds))
		for key, value := range c.AlertThresholds {
			if value == nil {
				continue
			}
			normalized[strings.ToLower(key)] = value
		}
		c.AlertThresholds = normalized
	}
}

// ThresholdValues flattens the normalized thresholds for the monitor. Blank
// entries are already gone after Normalize but are skipped here too so the
// result never contains a spurious zero threshold.
func (c *Config) ThresholdValues() map[string]float64 {
	out := make(map[string]float64, len(c.AlertThresholds))
	for key, value := range c.AlertThresholds {
		if value == nil {
			continue
		}
		out[strings.ToLower(key)] = *value
	}
	return out
}
