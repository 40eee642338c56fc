package services

import (
	"testing"
	"time"

	"readingrabbit/models"
)

func TestNewPipeline(t *testing.T) {
	config := models.DefaultConfig()
	p := NewPipeline(config, NewCleanerService("", "", "", ""))
	if p == nil {
		t.Fatal("NewPipeline returned nil")
	}
	if p.config != config {
		t.Error("pipeline does not hold the given config")
	}
}

func TestEstimateETA(t *testing.T) {
	start := time.Now().Add(-10 * time.Second)

	// 100 of 200 frames in 10s projects roughly 10s remaining.
	eta := estimateETA(start, 100, 200)
	if eta < 9*time.Second || eta > 11*time.Second {
		t.Errorf("eta = %v, want about 10s", eta)
	}
}

func TestEstimateETA_Boundaries(t *testing.T) {
	start := time.Now().Add(-time.Second)

	if eta := estimateETA(start, 0, 100); eta != 0 {
		t.Errorf("eta with no frames done = %v, want 0", eta)
	}
	if eta := estimateETA(start, 100, 100); eta != 0 {
		t.Errorf("eta at completion = %v, want 0", eta)
	}
	if eta := estimateETA(start, 150, 100); eta != 0 {
		t.Errorf("eta past total = %v, want 0", eta)
	}
}
