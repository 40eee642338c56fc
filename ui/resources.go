package ui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// ResourcePanel shows live telemetry from the resource monitor: current
// CPU/RAM/GPU/VRAM utilization, the most recent alert, and the end-of-run
// summary. All setters marshal to the fyne thread; the monitor invokes them
// from its own goroutine.
type ResourcePanel struct {
	cpuLabel   *widget.Label
	ramLabel   *widget.Label
	gpuLabel   *widget.Label
	vramLabel  *widget.Label
	alertLabel *widget.Label
	summary    *widget.Label
	graph      *ResourceGraph
}

// NewResourcePanel creates the panel. historyPoints bounds the graph window
// and chartHeight is its pixel height, both derived from the config.
func NewResourcePanel(historyPoints int, chartHeight float32) *ResourcePanel {
	p := &ResourcePanel{
		cpuLabel:   widget.NewLabel("CPU: --"),
		ramLabel:   widget.NewLabel("RAM: --"),
		gpuLabel:   widget.NewLabel("GPU: --"),
		vramLabel:  widget.NewLabel("VRAM: --"),
		alertLabel: widget.NewLabel(""),
		summary:    widget.NewLabel(""),
		graph:      NewResourceGraph(historyPoints, chartHeight),
	}
	p.summary.Wrapping = fyne.TextWrapWord
	return p
}

func (p *ResourcePanel) Build() fyne.CanvasObject {
	return container.NewVBox(
		widget.NewLabel("Resources:"),
		container.NewHBox(p.cpuLabel, p.ramLabel, p.gpuLabel, p.vramLabel),
		p.graph.Object(),
		p.alertLabel,
		widget.NewSeparator(),
		p.summary,
	)
}

// SetReading updates the live utilization labels. Absent GPU metrics render
// as "--" rather than 0.
func (p *ResourcePanel) SetReading(cpu float64, gpu, vram *float64, ram float64) {
	fyne.Do(func() {
		p.cpuLabel.SetText(fmt.Sprintf("CPU: %.1f%%", cpu))
		p.ramLabel.SetText(fmt.Sprintf("RAM: %.1f%%", ram))
		p.gpuLabel.SetText("GPU: " + formatReading(gpu))
		p.vramLabel.SetText("VRAM: " + formatReading(vram))
		p.graph.AddSample(cpu, gpu, vram, ram)
	})
}

// SetAlert shows the most recent threshold alert.
func (p *ResourcePanel) SetAlert(metric string, value float64) {
	fyne.Do(func() {
		p.alertLabel.SetText(fmt.Sprintf("Alert: %s at %.1f%%", metric, value))
	})
}

// SetSummary shows the rendered run summary once the monitor has stopped.
func (p *ResourcePanel) SetSummary(text string) {
	fyne.Do(func() {
		p.summary.SetText(text)
	})
}

// Reset clears transient state for a new run.
func (p *ResourcePanel) Reset() {
	fyne.Do(func() {
		p.alertLabel.SetText("")
		p.summary.SetText("")
		p.graph.Clear()
	})
}

func formatReading(v *float64) string {
	if v == nil {
		return "--"
	}
	return fmt.Sprintf("%.1f%%", *v)
}
