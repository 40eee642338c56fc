package ui

import (
	"context"
	"math"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	appconfig "readingrabbit/internal/config"
	"readingrabbit/internal/logger"
	"readingrabbit/internal/monitor"
	"readingrabbit/models"
	"readingrabbit/services"
)

// MainUI is the main application window content. It owns the processing
// pipeline and one resource monitor per run; monitor callbacks arrive on the
// monitor goroutine and each panel marshals to the fyne thread itself.
type MainUI struct {
	window   fyne.Window
	config   *models.Config
	pipeline *services.Pipeline

	progressPanel *ProgressPanel
	resourcePanel *ResourcePanel
	startButton   *widget.Button
	pauseButton   *widget.Button
	stopButton    *widget.Button

	mon    *monitor.Monitor
	cancel context.CancelFunc
	paused bool
}

// NewMainUI creates the main UI for the given configuration.
func NewMainUI(w fyne.Window, config *models.Config) *MainUI {
	cleaner := services.NewCleanerService(
		config.LLMEndpoint,
		config.LLMModel,
		config.LLMAPIKey,
		config.PromptTemplate,
	)
	return &MainUI{
		window:   w,
		config:   config,
		pipeline: services.NewPipeline(config, cleaner),
	}
}

// Build assembles the window content.
func (ui *MainUI) Build() fyne.CanvasObject {
	ui.progressPanel = NewProgressPanel()
	ui.resourcePanel = NewResourcePanel(ui.historyPoints(), float32(ui.config.ResourceChartHeight))

	ui.startButton = widget.NewButton("Start", ui.onStart)
	ui.pauseButton = widget.NewButton("Pause monitor", ui.onPauseResume)
	ui.stopButton = widget.NewButton("Stop", ui.onStop)
	ui.pauseButton.Disable()
	ui.stopButton.Disable()

	ui.progressPanel.SetStatus("Ready: " + ui.config.VideoPath)

	return container.NewVBox(
		ui.progressPanel.Build(),
		container.NewHBox(ui.startButton, ui.pauseButton, ui.stopButton),
		widget.NewSeparator(),
		ui.resourcePanel.Build(),
	)
}

func (ui *MainUI) onStart() {
	if ui.config.VideoPath == "" {
		dialog.ShowInformation("No video", "Set video_path in config.yaml first.", ui.window)
		return
	}

	job := models.NewProcessingJob(ui.config.VideoPath, ui.config.OutputTextPath)
	ui.resourcePanel.Reset()
	ui.progressPanel.SetStatus(job.StatusText())

	ui.mon = monitor.New(monitor.Options{
		Interval:         secondsToDuration(ui.config.MonitorInterval),
		Sampler:          ui.newSampler(),
		Thresholds:       ui.config.ThresholdValues(),
		Cooldown:         secondsToDuration(ui.config.AlertCooldownSeconds),
		TrendWindow:      secondsToDuration(ui.config.TrendWindowSeconds),
		LogPath:          ui.config.ResourceLogPath,
		SummaryPath:      ui.config.SummaryPath,
		AlertHistoryPath: ui.config.AlertHistoryPath,
		OnUpdate:         ui.resourcePanel.SetReading,
		OnAlert:          ui.resourcePanel.SetAlert,
	})
	ui.mon.Start()

	ctx, cancel := context.WithCancel(context.Background())
	ui.cancel = cancel
	ui.setRunning(true)

	go func() {
		err := ui.pipeline.Process(ctx, job, ui.progressPanel.SetProgress)
		if err != nil {
			logger.Error("processing failed: %v", err)
		}

		ui.mon.Stop()
		if !ui.mon.Join(appconfig.MonitorJoinTimeout) {
			logger.Warn("resource monitor did not stop in time, abandoning it")
		} else {
			ui.resourcePanel.SetSummary(ui.mon.SummaryText())
		}

		ui.progressPanel.SetStatus(job.StatusText())
		ui.setRunning(false)
	}()
}

func (ui *MainUI) onPauseResume() {
	if ui.mon == nil {
		return
	}
	if ui.paused {
		ui.mon.Resume()
		ui.paused = false
		ui.pauseButton.SetText("Pause monitor")
	} else {
		ui.mon.Pause()
		ui.paused = true
		ui.pauseButton.SetText("Resume monitor")
	}
}

func (ui *MainUI) onStop() {
	if ui.cancel != nil {
		ui.cancel()
	}
}

func (ui *MainUI) setRunning(running bool) {
	fyne.Do(func() {
		if running {
			ui.startButton.Disable()
			ui.pauseButton.Enable()
			ui.stopButton.Enable()
		} else {
			ui.startButton.Enable()
			ui.pauseButton.Disable()
			ui.stopButton.Disable()
			ui.pauseButton.SetText("Pause monitor")
			ui.paused = false
		}
	})
}

func (ui *MainUI) newSampler() monitor.Sampler {
	if ui.config.UseGPU {
		return monitor.NewHostSampler(ui.config.GPUIndex, monitor.QueryNvidiaSMI)
	}
	return monitor.NewHostSampler(0, nil)
}

// historyPoints converts the configured graph history window into a sample
// count at the configured cadence.
func (ui *MainUI) historyPoints() int {
	interval := ui.config.MonitorInterval
	if interval <= 0 {
		interval = 1
	}
	points := int(math.Round(float64(ui.config.ResourceHistorySeconds) / interval))
	if points < 2 {
		points = 2
	}
	return points
}

func secondsToDuration(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
