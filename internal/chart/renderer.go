// Package chart turns extracted statistics into chart artifacts through a
// narrow renderer contract, isolating per-statistic failures.
package chart

import "context"

// ChartValue is one labeled datum in a chart series
type ChartValue struct {
	Label string
	Value float64
}

// ChartRenderer is the collaborator contract for producing chart artifacts.
// Implementations return the path of the written artifact.
type ChartRenderer interface {
	CreateBarChart(ctx context.Context, data []ChartValue, title string, colors []string, outPath string) (string, error)
	CreateLineChart(ctx context.Context, data []ChartValue, title string, colors []string, outPath string) (string, error)
	CreatePieChart(ctx context.Context, data []ChartValue, title string, colors []string, outPath string) (string, error)
	CreateGaugeChart(ctx context.Context, value, max float64, unit, title string, colors []string, outPath string) (string, error)
}

// NumberRenderer is an optional extension for renderers with a dedicated
// single-number display. Renderers without it get the gauge fallback.
type NumberRenderer interface {
	CreateNumberChart(ctx context.Context, value float64, unit, title string, colors []string, outPath string) (string, error)
}
