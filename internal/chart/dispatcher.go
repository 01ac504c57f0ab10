package chart

import (
	"context"
	"fmt"
	"math/rand"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/o42sam/rapiddocs-sub000/internal/model"
)

// Dispatcher decides what synthetic data each visualization type needs and
// invokes the matching renderer call. Each statistic is consumed exactly
// once; a failed render is logged and skipped, never aborting the batch.
type Dispatcher struct {
	renderer ChartRenderer
	log      *zap.Logger
	rng      *rand.Rand // injectable for deterministic line jitter in tests
}

// NewDispatcher creates a new visualization dispatcher
func NewDispatcher(renderer ChartRenderer, log *zap.Logger) *Dispatcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Dispatcher{
		renderer: renderer,
		log:      log,
		rng:      rand.New(rand.NewSource(rand.Int63())),
	}
}

// Render produces one chart artifact for a statistic
func (d *Dispatcher) Render(ctx context.Context, stat model.StatisticEntry, colors []string, outPath string) (string, error) {
	switch stat.Viz {
	case model.VizPie:
		return d.renderer.CreatePieChart(ctx, PieSlices(stat), stat.Name, colors, outPath)

	case model.VizLine:
		return d.renderer.CreateLineChart(ctx, d.syntheticHistory(stat.Value), stat.Name, colors, outPath)

	case model.VizGauge:
		return d.renderer.CreateGaugeChart(ctx, stat.Value, GaugeMax(stat.Value, stat.Unit), stat.Unit, stat.Name, colors, outPath)

	case model.VizNumber:
		if nr, ok := d.renderer.(NumberRenderer); ok {
			return nr.CreateNumberChart(ctx, stat.Value, stat.Unit, stat.Name, colors, outPath)
		}
		// No dedicated number display: the gauge path shows the same figure
		return d.renderer.CreateGaugeChart(ctx, stat.Value, GaugeMax(stat.Value, stat.Unit), stat.Unit, stat.Name, colors, outPath)

	default:
		return d.renderer.CreateBarChart(ctx, []ChartValue{{Label: stat.Name, Value: stat.Value}}, stat.Name, colors, outPath)
	}
}

// RenderAll renders every statistic, isolating per-statistic failures. The
// returned slice holds only successfully produced artifact paths; a partial
// set is a valid, non-error outcome.
func (d *Dispatcher) RenderAll(ctx context.Context, stats []model.StatisticEntry, colors []string, outDir, jobID string) []string {
	paths := make([]string, 0, len(stats))

	for i, stat := range stats {
		outPath := filepath.Join(outDir, fmt.Sprintf("%s-chart-%d.svg", jobID, i+1))
		path, err := d.Render(ctx, stat, colors, outPath)
		if err != nil {
			d.log.Warn("chart render failed, skipping statistic",
				zap.String("statistic", stat.Name),
				zap.String("viz", string(stat.Viz)),
				zap.Error(err))
			continue
		}
		paths = append(paths, path)
	}

	return paths
}

// PieSlices synthesizes the slice set for a pie chart. A pie needs at least
// two slices: for a percentage value within 100 the complement is
// 100 - value as "Other"; otherwise the value itself is reused as the
// complement, giving a 50/50 split. This is a documented edge-case policy,
// not a failure.
func PieSlices(stat model.StatisticEntry) []ChartValue {
	complement := stat.Value
	if stat.Unit == "%" && stat.Value <= 100 {
		complement = 100 - stat.Value
	}
	return []ChartValue{
		{Label: stat.Name, Value: stat.Value},
		{Label: "Other", Value: complement},
	}
}

// GaugeMax infers the gauge scale: percentages run to 100, anything else to
// 1.5x the current value
func GaugeMax(value float64, unit string) float64 {
	if unit == "%" {
		return 100
	}
	return 1.5 * value
}

// syntheticHistory builds a 5-point ascending series ending at the current
// value. There is no real historical data; older points are jittered harder
// than recent ones, so this is a visual approximation, not a forecast.
func (d *Dispatcher) syntheticHistory(value float64) []ChartValue {
	const points = 5

	data := make([]ChartValue, points)
	for i := 0; i < points-1; i++ {
		back := float64(points - 1 - i) // steps before the present
		base := value * (1 - 0.1*back)
		jitter := value * 0.05 * back * (d.rng.Float64() - 0.5)
		v := base + jitter
		if v < 0 {
			v = 0
		}
		data[i] = ChartValue{Label: fmt.Sprintf("T-%d", int(back)), Value: v}
	}
	data[points-1] = ChartValue{Label: "Now", Value: value}
	return data
}
