package ui

import (
	"fmt"
	"image"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// ProgressPanel shows the live frame preview, the progress bar, and the
// estimated time remaining for the current run.
type ProgressPanel struct {
	preview     *canvas.Image
	progressBar *widget.ProgressBar
	statusLabel *widget.Label
	etaLabel    *widget.Label
}

func NewProgressPanel() *ProgressPanel {
	preview := &canvas.Image{FillMode: canvas.ImageFillContain}
	preview.SetMinSize(fyne.NewSize(480, 270))
	return &ProgressPanel{
		preview:     preview,
		progressBar: widget.NewProgressBar(),
		statusLabel: widget.NewLabel("No file loaded"),
		etaLabel:    widget.NewLabel(""),
	}
}

func (p *ProgressPanel) Build() fyne.CanvasObject {
	p.progressBar.Min = 0
	p.progressBar.Max = 100

	return container.NewVBox(
		p.preview,
		p.progressBar,
		container.NewHBox(p.statusLabel, p.etaLabel),
	)
}

// SetProgress updates the preview frame, progress bar and ETA. It marshals
// to the fyne thread and may be called from the pipeline goroutine. A nil
// frame keeps the previous preview.
func (p *ProgressPanel) SetProgress(frame image.Image, percent float64, eta time.Duration) {
	fyne.Do(func() {
		if frame != nil {
			p.preview.Image = frame
			p.preview.Refresh()
		}
		p.progressBar.SetValue(percent)
		if eta > 0 {
			p.etaLabel.SetText(fmt.Sprintf("ETA: %s", eta.Round(time.Second)))
		} else {
			p.etaLabel.SetText("")
		}
	})
}

// SetStatus updates the status line.
func (p *ProgressPanel) SetStatus(status string) {
	fyne.Do(func() {
		p.statusLabel.SetText(status)
	})
}
