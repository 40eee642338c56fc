package models

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	c := DefaultConfig()

	if c.OutputTextPath != "output.txt" {
		t.Errorf("OutputTextPath = %q, want output.txt", c.OutputTextPath)
	}
	if len(c.OCRLanguages) != 1 || c.OCRLanguages[0] != "eng" {
		t.Errorf("OCRLanguages = %v, want [eng]", c.OCRLanguages)
	}
	if !c.OCRAdaptiveThreshold {
		t.Error("adaptive thresholding should default on")
	}
	if c.MonitorInterval != 1 {
		t.Errorf("MonitorInterval = %v, want 1", c.MonitorInterval)
	}
	if c.TrendWindowSeconds != 60 {
		t.Errorf("TrendWindowSeconds = %v, want 60", c.TrendWindowSeconds)
	}
	if c.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", c.LogLevel)
	}
}

func TestNormalize_Clamps(t *testing.T) {
	c := &Config{
		MonitorInterval:      0,
		AlertCooldownSeconds: -5,
		TrendWindowSeconds:   3,
	}
	c.Normalize()

	if c.MonitorInterval != 1 {
		t.Errorf("MonitorInterval = %v, want clamped to 1", c.MonitorInterval)
	}
	if c.AlertCooldownSeconds != 0 {
		t.Errorf("AlertCooldownSeconds = %v, want clamped to 0", c.AlertCooldownSeconds)
	}
	if c.TrendWindowSeconds != 10 {
		t.Errorf("TrendWindowSeconds = %v, want floored at 10", c.TrendWindowSeconds)
	}
	if len(c.OCRLanguages) != 1 || c.OCRLanguages[0] != "eng" {
		t.Errorf("OCRLanguages = %v, want [eng] fallback", c.OCRLanguages)
	}
}

func threshold(v float64) *float64 {
	return &v
}

func TestNormalize_ThresholdKeysLowercased(t *testing.T) {
	c := &Config{
		AlertThresholds: map[string]*float64{"CPU": threshold(80), "Ram": threshold(90), "gpu": threshold(70)},
	}
	c.Normalize()

	values := c.ThresholdValues()
	if values["cpu"] != 80 {
		t.Errorf("cpu threshold = %v, want 80", values["cpu"])
	}
	if values["ram"] != 90 {
		t.Errorf("ram threshold = %v, want 90", values["ram"])
	}
	if values["gpu"] != 70 {
		t.Errorf("gpu threshold = %v, want 70", values["gpu"])
	}
	if _, ok := c.AlertThresholds["CPU"]; ok {
		t.Error("uppercase key should be gone after Normalize")
	}
}

func TestNormalize_BlankThresholdDropped(t *testing.T) {
	c := &Config{
		AlertThresholds: map[string]*float64{"cpu": nil, "ram": threshold(90)},
	}
	c.Normalize()

	if _, ok := c.AlertThresholds["cpu"]; ok {
		t.Error("blank cpu threshold kept; it would alert on every tick")
	}
	values := c.ThresholdValues()
	if _, ok := values["cpu"]; ok {
		t.Error("blank cpu threshold survived into ThresholdValues")
	}
	if values["ram"] != 90 {
		t.Errorf("ram threshold = %v, want 90", values["ram"])
	}
}

func TestNormalize_ZeroThresholdIsKept(t *testing.T) {
	// An explicit 0 is a legitimate always-alert threshold; only a blank
	// entry is dropped.
	c := &Config{
		AlertThresholds: map[string]*float64{"cpu": threshold(0)},
	}
	c.Normalize()

	v, ok := c.ThresholdValues()["cpu"]
	if !ok || v != 0 {
		t.Errorf("explicit zero threshold = %v, %v, want 0, true", v, ok)
	}
}

func TestNormalize_ChartClamps(t *testing.T) {
	c := &Config{ResourceHistorySeconds: 5, ResourceChartHeight: 20}
	c.Normalize()

	if c.ResourceHistorySeconds != 10 {
		t.Errorf("ResourceHistorySeconds = %d, want floored at 10", c.ResourceHistorySeconds)
	}
	if c.ResourceChartHeight != 80 {
		t.Errorf("ResourceChartHeight = %d, want floored at 80", c.ResourceChartHeight)
	}

	c = &Config{}
	c.Normalize()
	if c.ResourceHistorySeconds != 90 {
		t.Errorf("ResourceHistorySeconds = %d, want default 90", c.ResourceHistorySeconds)
	}
	if c.ResourceChartHeight != 140 {
		t.Errorf("ResourceChartHeight = %d, want default 140", c.ResourceChartHeight)
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `video_path: lecture.mp4
output_text_path: lecture.txt
ocr_languages: [eng, deu]
use_gpu: true
gpu_index: 1
monitor_interval: 0.5
alert_thresholds:
  CPU: 85
  vram: 90
alert_cooldown_seconds: 30
trend_window_seconds: 120
log_level: debug
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	c, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if c.VideoPath != "lecture.mp4" {
		t.Errorf("VideoPath = %q", c.VideoPath)
	}
	if len(c.OCRLanguages) != 2 || c.OCRLanguages[1] != "deu" {
		t.Errorf("OCRLanguages = %v", c.OCRLanguages)
	}
	if !c.UseGPU || c.GPUIndex != 1 {
		t.Errorf("UseGPU/GPUIndex = %v/%d", c.UseGPU, c.GPUIndex)
	}
	if c.MonitorInterval != 0.5 {
		t.Errorf("MonitorInterval = %v, want 0.5", c.MonitorInterval)
	}
	values := c.ThresholdValues()
	if values["cpu"] != 85 || values["vram"] != 90 {
		t.Errorf("thresholds = %v", values)
	}
	// Defaults survive for fields the file omits.
	if c.LLMEndpoint == "" {
		t.Error("LLMEndpoint default lost on load")
	}
}

func TestLoadConfig_BlankThresholdEntry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `alert_thresholds:
  cpu:
  ram: 90
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	c, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	values := c.ThresholdValues()
	if _, ok := values["cpu"]; ok {
		t.Errorf("blank cpu entry loaded as a threshold: %v", values)
	}
	if values["ram"] != 90 {
		t.Errorf("ram threshold = %v, want 90", values["ram"])
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("video_path: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Error("expected error for invalid yaml")
	}
}
