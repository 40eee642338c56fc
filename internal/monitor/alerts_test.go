package monitor

import (
	"testing"
	"time"
)

func TestEvaluator_ZeroCooldownAlertsEveryBreach(t *testing.T) {
	base := time.Now()
	e := NewEvaluator(map[string]float64{MetricCPU: 20}, 0, nil)

	values := []float64{10, 25, 60, 45, 30}
	total := 0
	for i, v := range values {
		fired := e.Evaluate(sampleAt(base, time.Duration(i)*time.Second, v))
		total += len(fired)
	}

	if total != 4 {
		t.Errorf("alerts fired = %d, want 4 (every sample >= 20)", total)
	}
	if len(e.History()) != 4 {
		t.Errorf("History() = %d events, want 4", len(e.History()))
	}
}

func TestEvaluator_CooldownSuppressesRepeats(t *testing.T) {
	base := time.Now()
	e := NewEvaluator(map[string]float64{MetricCPU: 20}, 10*time.Second, nil)

	// Breaches at t=0..4s; the cooldown admits only the first.
	for i := 0; i < 5; i++ {
		e.Evaluate(sampleAt(base, time.Duration(i)*time.Second, 90))
	}
	if len(e.History()) != 1 {
		t.Fatalf("History() = %d events within cooldown, want 1", len(e.History()))
	}

	// A breach one full cooldown later alerts again.
	fired := e.Evaluate(sampleAt(base, 10*time.Second, 90))
	if len(fired) != 1 {
		t.Errorf("alert after cooldown elapsed = %d, want 1", len(fired))
	}
}

func TestEvaluator_ThresholdIsInclusive(t *testing.T) {
	e := NewEvaluator(map[string]float64{MetricCPU: 20}, 0, nil)

	fired := e.Evaluate(Sample{CPU: 20, Taken: time.Now()})
	if len(fired) != 1 {
		t.Errorf("value equal to threshold fired %d alerts, want 1", len(fired))
	}
}

func TestEvaluator_AbsentMetricSkipped(t *testing.T) {
	e := NewEvaluator(map[string]float64{MetricGPU: 10, MetricVRAM: 10}, 0, nil)

	fired := e.Evaluate(Sample{CPU: 99, RAM: 99, Taken: time.Now()})
	if len(fired) != 0 {
		t.Errorf("absent gpu/vram fired %d alerts, want 0", len(fired))
	}
}

func TestEvaluator_UnconfiguredMetricSkipped(t *testing.T) {
	e := NewEvaluator(map[string]float64{MetricCPU: 20}, 0, nil)

	fired := e.Evaluate(Sample{CPU: 10, RAM: 99, Taken: time.Now()})
	if len(fired) != 0 {
		t.Errorf("ram with no threshold fired %d alerts, want 0", len(fired))
	}
}

func TestEvaluator_IndependentCooldownPerMetric(t *testing.T) {
	base := time.Now()
	e := NewEvaluator(map[string]float64{MetricCPU: 20, MetricRAM: 20}, time.Minute, nil)

	e.Evaluate(Sample{CPU: 90, RAM: 10, Taken: base})
	fired := e.Evaluate(Sample{CPU: 90, RAM: 90, Taken: base.Add(time.Second)})

	if len(fired) != 1 || fired[0].Metric != MetricRAM {
		t.Errorf("fired = %v, want a single ram alert", fired)
	}
}

func TestEvaluator_CallbackReceivesMetricAndValue(t *testing.T) {
	var gotMetric string
	var gotValue float64
	e := NewEvaluator(map[string]float64{MetricCPU: 20}, 0, func(metric string, value float64) {
		gotMetric = metric
		gotValue = value
	})

	e.Evaluate(Sample{CPU: 42.5, Taken: time.Now()})
	if gotMetric != MetricCPU || gotValue != 42.5 {
		t.Errorf("callback got (%q, %v), want (cpu, 42.5)", gotMetric, gotValue)
	}
}

func TestEvaluator_CallbackPanicDoesNotBreakEvaluation(t *testing.T) {
	base := time.Now()
	calls := 0
	e := NewEvaluator(map[string]float64{MetricCPU: 20}, 0, func(metric string, value float64) {
		calls++
		panic("consumer bug")
	})

	e.Evaluate(sampleAt(base, 0, 90))
	e.Evaluate(sampleAt(base, time.Second, 90))

	if calls != 2 {
		t.Errorf("callback invoked %d times, want 2", calls)
	}
	if len(e.History()) != 2 {
		t.Errorf("History() = %d events after panicking callback, want 2", len(e.History()))
	}
}

func TestEvaluator_NegativeCooldownTreatedAsZero(t *testing.T) {
	base := time.Now()
	e := NewEvaluator(map[string]float64{MetricCPU: 20}, -time.Minute, nil)

	e.Evaluate(sampleAt(base, 0, 90))
	fired := e.Evaluate(sampleAt(base, time.Second, 90))
	if len(fired) != 1 {
		t.Errorf("negative cooldown suppressed an alert; fired = %d, want 1", len(fired))
	}
}
