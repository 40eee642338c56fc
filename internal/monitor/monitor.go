package monitor

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"readingrabbit/internal/config"
	"readingrabbit/internal/logger"
)

// State is the monitor lifecycle state, owned by the monitor goroutine.
type State int32

const (
	StateRunning State = iota
	StatePaused
	StateStopped
)

// String returns a readable state name.
func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// UpdateFunc receives the latest reading once per completed tick. It runs on
// the monitor's goroutine; UI hosts must marshal to their own thread.
type UpdateFunc func(cpu float64, gpu, vram *float64, ram float64)

// Options configures one monitor run.
type Options struct {
	// Interval is the sampling cadence. Non-positive values are clamped
	// to config.DefaultMonitorInterval.
	Interval time.Duration

	// Sampler produces readings. Nil selects a HostSampler without GPU.
	Sampler Sampler

	// Thresholds maps metric name to alert threshold percentage. Metrics
	// without an entry are never evaluated.
	Thresholds map[string]float64

	// Cooldown is the minimum gap between two alerts for one metric.
	Cooldown time.Duration

	// TrendWindow is the trailing window for trend deltas, floored at
	// config.MinTrendWindow.
	TrendWindow time.Duration

	// LogPath enables the per-tick raw sample CSV when non-empty.
	LogPath string

	// SummaryPath enables the JSON summary artifact when non-empty.
	SummaryPath string

	// AlertHistoryPath enables the alert CSV artifact when non-empty.
	AlertHistoryPath string

	OnUpdate UpdateFunc
	OnAlert  AlertFunc
}

// Monitor runs the sampling loop on a dedicated goroutine. A Monitor is used
// for exactly one run; create a fresh instance per processing run.
//
// The host communicates only through Stop (one-shot, idempotent), Pause and
// Resume (toggled, checked once per tick), and the two callbacks. The series
// and alert history are owned exclusively by the monitor goroutine; callers
// read derived values only through the callbacks or after Join returns.
type Monitor struct {
	opts    Options
	sampler Sampler

	ctx    context.Context
	cancel context.CancelFunc
	paused atomic.Bool
	state  atomic.Int32

	series *Series
	eval   *Evaluator

	finalizeOnce sync.Once
	summary      *Summary
	summaryText  string

	done chan struct{}
}

// New creates a monitor for one run, clamping option values to safe floors.
func New(opts Options) *Monitor {
	if opts.Interval <= 0 {
		opts.Interval = config.DefaultMonitorInterval
	}
	if opts.TrendWindow < config.MinTrendWindow {
		opts.TrendWindow = config.MinTrendWindow
	}
	if opts.Cooldown < 0 {
		opts.Cooldown = 0
	}
	sampler := opts.Sampler
	if sampler == nil {
		sampler = NewHostSampler(0, nil)
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Monitor{
		opts:    opts,
		sampler: sampler,
		ctx:     ctx,
		cancel:  cancel,
		series:  &Series{},
		eval:    NewEvaluator(opts.Thresholds, opts.Cooldown, opts.OnAlert),
		done:    make(chan struct{}),
	}
}

// Start launches the monitor goroutine.
func (m *Monitor) Start() {
	go m.run()
}

// Stop signals the loop to exit. It is idempotent and safe from any
// goroutine; the loop exits within one tick interval plus the in-flight tick.
func (m *Monitor) Stop() {
	m.cancel()
}

// Pause suspends sampling. While paused the loop sleeps one tick at a time
// and re-checks; no sample is taken and no callback fires.
func (m *Monitor) Pause() {
	m.paused.Store(true)
}

// Resume continues sampling exactly where it left off; there is no backlog
// catch-up for ticks skipped while paused.
func (m *Monitor) Resume() {
	m.paused.Store(false)
}

// Join waits for the monitor goroutine to finish, up to timeout. A false
// return means the goroutine is still running; the caller abandons it rather
// than treating it as an error.
func (m *Monitor) Join(timeout time.Duration) bool {
	select {
	case <-m.done:
		return true
	case <-time.After(timeout):
		return false
	}
}

// State reports the last state the loop published.
func (m *Monitor) State() State {
	return State(m.state.Load())
}

// Summary returns the derived analytics, available after Join. Nil when the
// run recorded no samples.
func (m *Monitor) Summary() *Summary {
	return m.summary
}

// SummaryText returns the rendered summary, or "" when no summary exists.
func (m *Monitor) SummaryText() string {
	return m.summaryText
}

// run is the monitor loop. It finalizes exactly once on every exit path,
// including a panic raised inside a tick.
func (m *Monitor) run() {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("resource monitor tick panicked: %v", r)
		}
		m.state.Store(int32(StateStopped))
		m.finalize()
		close(m.done)
	}()

	rawLog := m.openRawLog()
	if rawLog != nil {
		defer rawLog.close()
	}

	ticker := time.NewTicker(m.opts.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-m.ctx.Done():
			return
		default:
		}

		if m.paused.Load() {
			m.state.Store(int32(StatePaused))
			select {
			case <-m.ctx.Done():
				return
			case <-ticker.C:
			}
			continue
		}
		m.state.Store(int32(StateRunning))

		s := m.sampler.Sample()
		m.series.Append(s)
		m.deliverUpdate(s)
		m.eval.Evaluate(s)
		if rawLog != nil {
			rawLog.append(s)
		}

		select {
		case <-m.ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// deliverUpdate forwards a reading to the host, swallowing any panic so a
// misbehaving consumer cannot stop sampling.
func (m *Monitor) deliverUpdate(s Sample) {
	if m.opts.OnUpdate == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			logger.Warn("update callback panicked: %v", r)
		}
	}()
	m.opts.OnUpdate(s.CPU, s.GPU, s.VRAM, s.RAM)
}

// finalize computes the summary and writes the configured artifacts. Each
// artifact write is isolated: a summary failure never blocks the alert
// history and vice versa.
func (m *Monitor) finalize() {
	m.finalizeOnce.Do(func() {
		alerts := m.eval.History()
		m.summary = Summarize(m.series.All(), m.opts.Interval, m.opts.TrendWindow, alerts)
		if m.summary != nil {
			m.summaryText = m.summary.Render()
			if m.opts.SummaryPath != "" {
				if err := m.summary.WriteJSON(m.opts.SummaryPath, time.Now()); err != nil {
					logger.Error("failed to write resource summary: %v", err)
				}
			}
		}
		if m.opts.AlertHistoryPath != "" && len(alerts) > 0 {
			if err := WriteAlertHistory(m.opts.AlertHistoryPath, alerts); err != nil {
				logger.Error("failed to write alert history: %v", err)
			}
		}
	})
}

// rawLog appends one CSV row per tick, flushed immediately so a crash loses
// at most the in-flight row.
type rawLog struct {
	file   *os.File
	writer *csv.Writer
}

// openRawLog opens the per-tick CSV when configured. Failure to open the
// file disables raw logging for the run; it never aborts the monitor.
func (m *Monitor) openRawLog() *rawLog {
	if m.opts.LogPath == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(m.opts.LogPath), 0755); err != nil {
		logger.Error("failed to create resource log directory: %v", err)
		return nil
	}
	f, err := os.Create(m.opts.LogPath)
	if err != nil {
		logger.Error("failed to open resource log: %v", err)
		return nil
	}
	w := csv.NewWriter(f)
	if err := w.Write([]string{"timestamp", "cpu", "ram", "gpu", "vram"}); err != nil {
		logger.Error("failed to write resource log header: %v", err)
		f.Close()
		return nil
	}
	w.Flush()
	return &rawLog{file: f, writer: w}
}

func (l *rawLog) append(s Sample) {
	row := []string{
		s.Taken.UTC().Format(time.RFC3339),
		strconv.FormatFloat(s.CPU, 'f', 2, 64),
		strconv.FormatFloat(s.RAM, 'f', 2, 64),
		formatOptional(s.GPU),
		formatOptional(s.VRAM),
	}
	if err := l.writer.Write(row); err != nil {
		logger.Error("failed to append resource log row: %v", err)
		return
	}
	l.writer.Flush()
}

func (l *rawLog) close() {
	l.writer.Flush()
	l.file.Close()
}

func formatOptional(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', 2, 64)
}
