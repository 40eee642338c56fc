package ui

import (
	"image"
	"image/color"
	"image/draw"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
)

const graphMargin = 8

var (
	graphBackground = color.RGBA{R: 0x1f, G: 0x22, B: 0x28, A: 0xff}
	graphGrid       = color.RGBA{R: 0x3a, G: 0x3f, B: 0x47, A: 0xff}

	seriesColors = map[string]color.RGBA{
		"cpu":  {R: 0x4c, G: 0xaf, B: 0x50, A: 0xff},
		"ram":  {R: 0x42, G: 0xa5, B: 0xf5, A: 0xff},
		"gpu":  {R: 0xff, G: 0xa7, B: 0x26, A: 0xff},
		"vram": {R: 0xab, G: 0x47, B: 0xbc, A: 0xff},
	}

	seriesOrder = []string{"cpu", "ram", "gpu", "vram"}
)

// ResourceGraph is a scrolling line chart of recent utilization. It keeps a
// bounded window of samples per metric; absent GPU readings leave gaps
// rather than plotting zero. AddSample and Clear must run on the fyne
// thread, which the ResourcePanel setters already guarantee.
type ResourceGraph struct {
	maxPoints int
	series    map[string][]*float64
	raster    *canvas.Raster
}

// NewResourceGraph creates a graph holding maxPoints samples per metric.
func NewResourceGraph(maxPoints int, height float32) *ResourceGraph {
	if maxPoints < 2 {
		maxPoints = 2
	}
	g := &ResourceGraph{
		maxPoints: maxPoints,
		series:    make(map[string][]*float64, len(seriesOrder)),
	}
	g.raster = canvas.NewRaster(g.render)
	g.raster.SetMinSize(fyne.NewSize(420, height))
	return g
}

func (g *ResourceGraph) Object() fyne.CanvasObject {
	return g.raster
}

// AddSample appends one reading per metric and redraws. Values are clamped
// to 0-100 so a misreported percentage cannot distort the scale.
func (g *ResourceGraph) AddSample(cpu float64, gpu, vram *float64, ram float64) {
	g.push("cpu", clampPct(cpu))
	g.push("ram", clampPct(ram))
	g.pushOptional("gpu", gpu)
	g.pushOptional("vram", vram)
	g.raster.Refresh()
}

// Clear drops all history for a new run.
func (g *ResourceGraph) Clear() {
	g.series = make(map[string][]*float64, len(seriesOrder))
	g.raster.Refresh()
}

func (g *ResourceGraph) push(metric string, v float64) {
	g.pushOptional(metric, &v)
}

func (g *ResourceGraph) pushOptional(metric string, v *float64) {
	var p *float64
	if v != nil {
		c := clampPct(*v)
		p = &c
	}
	points := append(g.series[metric], p)
	if len(points) > g.maxPoints {
		points = points[len(points)-g.maxPoints:]
	}
	g.series[metric] = points
}

// render rasterizes the chart at the requested pixel size.
func (g *ResourceGraph) render(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(graphBackground), image.Point{}, draw.Src)

	plotW := w - 2*graphMargin
	plotH := h - 2*graphMargin
	if plotW < 2 || plotH < 2 {
		return img
	}

	for pct := 0; pct <= 100; pct += 25 {
		y := h - graphMargin - pct*plotH/100
		for x := graphMargin; x < w-graphMargin; x += 4 {
			img.Set(x, y, graphGrid)
		}
	}

	for _, metric := range seriesOrder {
		points := g.series[metric]
		if len(points) < 2 {
			continue
		}
		col := seriesColors[metric]
		step := float64(plotW) / float64(g.maxPoints-1)
		for i := 1; i < len(points); i++ {
			if points[i-1] == nil || points[i] == nil {
				continue
			}
			x0 := graphMargin + int(float64(i-1)*step)
			x1 := graphMargin + int(float64(i)*step)
			y0 := h - graphMargin - int(*points[i-1]/100*float64(plotH))
			y1 := h - graphMargin - int(*points[i]/100*float64(plotH))
			drawLine(img, x0, y0, x1, y1, col)
		}
	}

	return img
}

func clampPct(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// drawLine plots a straight segment with Bresenham's algorithm.
func drawLine(img *image.RGBA, x0, y0, x1, y1 int, col color.RGBA) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		img.Set(x0, y0, col)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
