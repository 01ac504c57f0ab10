package chart

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
)

// SVGRenderer is a self-contained ChartRenderer writing SVG artifacts. It
// keeps the pipeline runnable without external charting tooling; callers
// wanting richer output swap in another ChartRenderer implementation.
type SVGRenderer struct {
	width  int
	height int
}

// NewSVGRenderer creates a new SVG renderer with the given canvas size
func NewSVGRenderer(width, height int) *SVGRenderer {
	if width <= 0 {
		width = 640
	}
	if height <= 0 {
		height = 400
	}
	return &SVGRenderer{width: width, height: height}
}

const svgMargin = 48

// CreateBarChart renders vertical bars, one per datum
func (r *SVGRenderer) CreateBarChart(ctx context.Context, data []ChartValue, title string, colors []string, outPath string) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("bar chart needs at least one value")
	}

	var b strings.Builder
	r.openCanvas(&b, title)

	maxVal := maxValue(data)
	plotW := r.width - 2*svgMargin
	plotH := r.height - 2*svgMargin
	slot := plotW / len(data)
	barW := slot / 2

	for i, d := range data {
		h := 0
		if maxVal > 0 {
			h = int(float64(plotH) * d.Value / maxVal)
		}
		x := svgMargin + i*slot + (slot-barW)/2
		y := r.height - svgMargin - h
		fmt.Fprintf(&b, `<rect x="%d" y="%d" width="%d" height="%d" fill="%s"/>`+"\n",
			x, y, barW, h, pick(colors, i))
		fmt.Fprintf(&b, `<text x="%d" y="%d" font-size="12" text-anchor="middle">%s</text>`+"\n",
			x+barW/2, r.height-svgMargin+16, escape(d.Label))
		fmt.Fprintf(&b, `<text x="%d" y="%d" font-size="12" text-anchor="middle">%s</text>`+"\n",
			x+barW/2, y-6, formatValue(d.Value))
	}

	return r.closeAndWrite(ctx, &b, outPath)
}

// CreateLineChart renders a polyline through the series
func (r *SVGRenderer) CreateLineChart(ctx context.Context, data []ChartValue, title string, colors []string, outPath string) (string, error) {
	if len(data) < 2 {
		return "", fmt.Errorf("line chart needs at least two points")
	}

	var b strings.Builder
	r.openCanvas(&b, title)

	maxVal := maxValue(data)
	plotW := r.width - 2*svgMargin
	plotH := r.height - 2*svgMargin
	step := float64(plotW) / float64(len(data)-1)

	points := make([]string, len(data))
	for i, d := range data {
		x := float64(svgMargin) + step*float64(i)
		y := float64(r.height - svgMargin)
		if maxVal > 0 {
			y -= float64(plotH) * d.Value / maxVal
		}
		points[i] = fmt.Sprintf("%.1f,%.1f", x, y)
		fmt.Fprintf(&b, `<text x="%.1f" y="%d" font-size="11" text-anchor="middle">%s</text>`+"\n",
			x, r.height-svgMargin+16, escape(d.Label))
	}
	fmt.Fprintf(&b, `<polyline points="%s" fill="none" stroke="%s" stroke-width="2"/>`+"\n",
		strings.Join(points, " "), pick(colors, 0))

	return r.closeAndWrite(ctx, &b, outPath)
}

// CreatePieChart renders slices proportional to each value
func (r *SVGRenderer) CreatePieChart(ctx context.Context, data []ChartValue, title string, colors []string, outPath string) (string, error) {
	if len(data) < 2 {
		return "", fmt.Errorf("pie chart needs at least two slices")
	}

	total := 0.0
	for _, d := range data {
		total += d.Value
	}
	if total <= 0 {
		return "", fmt.Errorf("pie chart needs a positive total")
	}

	var b strings.Builder
	r.openCanvas(&b, title)

	cx, cy := float64(r.width)/2, float64(r.height)/2+10
	radius := float64(minInt(r.width, r.height))/2 - float64(svgMargin)

	angle := -90.0 // start at 12 o'clock
	for i, d := range data {
		sweep := 360 * d.Value / total
		fmt.Fprintf(&b, `<path d="%s" fill="%s"/>`+"\n",
			arcPath(cx, cy, radius, angle, angle+sweep), pick(colors, i))
		angle += sweep
	}

	// Legend
	for i, d := range data {
		y := svgMargin + 18*i
		fmt.Fprintf(&b, `<rect x="8" y="%d" width="12" height="12" fill="%s"/>`+"\n", y, pick(colors, i))
		fmt.Fprintf(&b, `<text x="24" y="%d" font-size="12">%s (%s)</text>`+"\n",
			y+10, escape(d.Label), formatValue(d.Value))
	}

	return r.closeAndWrite(ctx, &b, outPath)
}

// CreateGaugeChart renders a horizontal fill bar against the max scale
func (r *SVGRenderer) CreateGaugeChart(ctx context.Context, value, max float64, unit, title string, colors []string, outPath string) (string, error) {
	if max <= 0 {
		return "", fmt.Errorf("gauge needs a positive max")
	}

	var b strings.Builder
	r.openCanvas(&b, title)

	frac := value / max
	if frac > 1 {
		frac = 1
	}
	if frac < 0 {
		frac = 0
	}

	trackW := r.width - 2*svgMargin
	y := r.height / 2
	fmt.Fprintf(&b, `<rect x="%d" y="%d" width="%d" height="28" rx="14" fill="#E5E5E5"/>`+"\n",
		svgMargin, y, trackW)
	fmt.Fprintf(&b, `<rect x="%d" y="%d" width="%d" height="28" rx="14" fill="%s"/>`+"\n",
		svgMargin, y, int(float64(trackW)*frac), pick(colors, 0))
	fmt.Fprintf(&b, `<text x="%d" y="%d" font-size="20" text-anchor="middle">%s%s of %s%s</text>`+"\n",
		r.width/2, y-16, formatValue(value), escape(unit), formatValue(max), escape(unit))

	return r.closeAndWrite(ctx, &b, outPath)
}

// CreateNumberChart renders the figure as a large centered number
func (r *SVGRenderer) CreateNumberChart(ctx context.Context, value float64, unit, title string, colors []string, outPath string) (string, error) {
	var b strings.Builder
	r.openCanvas(&b, title)

	fmt.Fprintf(&b, `<text x="%d" y="%d" font-size="64" text-anchor="middle" fill="%s">%s%s</text>`+"\n",
		r.width/2, r.height/2+20, pick(colors, 0), formatValue(value), escape(unit))

	return r.closeAndWrite(ctx, &b, outPath)
}

func (r *SVGRenderer) openCanvas(b *strings.Builder, title string) {
	fmt.Fprintf(b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`+"\n",
		r.width, r.height, r.width, r.height)
	fmt.Fprintf(b, `<rect width="%d" height="%d" fill="white"/>`+"\n", r.width, r.height)
	fmt.Fprintf(b, `<text x="%d" y="24" font-size="16" font-weight="bold" text-anchor="middle">%s</text>`+"\n",
		r.width/2, escape(title))
}

func (r *SVGRenderer) closeAndWrite(ctx context.Context, b *strings.Builder, outPath string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	b.WriteString("</svg>\n")

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	if err := os.WriteFile(outPath, []byte(b.String()), 0o644); err != nil {
		return "", fmt.Errorf("write chart: %w", err)
	}
	return outPath, nil
}

// arcPath builds an SVG wedge path between two angles in degrees
func arcPath(cx, cy, r, from, to float64) string {
	x1, y1 := polar(cx, cy, r, from)
	x2, y2 := polar(cx, cy, r, to)
	large := 0
	if to-from > 180 {
		large = 1
	}
	return fmt.Sprintf("M %.1f %.1f L %.1f %.1f A %.1f %.1f 0 %d 1 %.1f %.1f Z",
		cx, cy, x1, y1, r, r, large, x2, y2)
}

func polar(cx, cy, r, deg float64) (float64, float64) {
	rad := deg * math.Pi / 180
	return cx + r*math.Cos(rad), cy + r*math.Sin(rad)
}

func maxValue(data []ChartValue) float64 {
	max := 0.0
	for _, d := range data {
		if d.Value > max {
			max = d.Value
		}
	}
	return max
}

func pick(colors []string, i int) string {
	if len(colors) == 0 {
		return "#4472C4"
	}
	return colors[i%len(colors)]
}

func formatValue(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.2f", v)
}

func escape(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	return s
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
