package chart

import (
	"context"
	"errors"
	"testing"

	"github.com/o42sam/rapiddocs-sub000/internal/model"
)

// fakeRenderer records calls and can fail on demand. It deliberately lacks
// CreateNumberChart so the number-to-gauge fallback is exercised.
type fakeRenderer struct {
	calls   []string
	pieData []ChartValue
	gauge   struct {
		value, max float64
	}
	lineData []ChartValue
	failOn   string
}

func (f *fakeRenderer) CreateBarChart(ctx context.Context, data []ChartValue, title string, colors []string, outPath string) (string, error) {
	return f.record("bar", outPath)
}

func (f *fakeRenderer) CreateLineChart(ctx context.Context, data []ChartValue, title string, colors []string, outPath string) (string, error) {
	f.lineData = data
	return f.record("line", outPath)
}

func (f *fakeRenderer) CreatePieChart(ctx context.Context, data []ChartValue, title string, colors []string, outPath string) (string, error) {
	f.pieData = data
	return f.record("pie", outPath)
}

func (f *fakeRenderer) CreateGaugeChart(ctx context.Context, value, max float64, unit, title string, colors []string, outPath string) (string, error) {
	f.gauge.value = value
	f.gauge.max = max
	return f.record("gauge", outPath)
}

func (f *fakeRenderer) record(kind, outPath string) (string, error) {
	f.calls = append(f.calls, kind)
	if kind == f.failOn {
		return "", errors.New("render exploded")
	}
	return outPath, nil
}

// numberRenderer additionally implements the optional number display
type numberRenderer struct {
	fakeRenderer
	numberCalls int
}

func (n *numberRenderer) CreateNumberChart(ctx context.Context, value float64, unit, title string, colors []string, outPath string) (string, error) {
	n.numberCalls++
	return outPath, nil
}

func TestDispatcher_PieComplementPercent(t *testing.T) {
	f := &fakeRenderer{}
	d := NewDispatcher(f, nil)

	stat := model.StatisticEntry{Name: "Market Share", Value: 72, Unit: "%", Viz: model.VizPie}
	if _, err := d.Render(context.Background(), stat, nil, "out.svg"); err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if len(f.pieData) != 2 {
		t.Fatalf("Expected 2 slices, got %d", len(f.pieData))
	}
	if f.pieData[0].Value+f.pieData[1].Value != 100 {
		t.Errorf("Expected slices to sum to 100, got %v + %v", f.pieData[0].Value, f.pieData[1].Value)
	}
	if f.pieData[1].Label != "Other" || f.pieData[1].Value != 28 {
		t.Errorf("Expected Other=28, got %+v", f.pieData[1])
	}
}

func TestDispatcher_PieFiftyFiftyFallback(t *testing.T) {
	f := &fakeRenderer{}
	d := NewDispatcher(f, nil)

	stat := model.StatisticEntry{Name: "Requests", Value: 440, Unit: "req/s", Viz: model.VizPie}
	if _, err := d.Render(context.Background(), stat, nil, "out.svg"); err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if f.pieData[0].Value != 440 || f.pieData[1].Value != 440 {
		t.Errorf("Expected a 50/50 split, got %+v", f.pieData)
	}
}

func TestDispatcher_GaugeMaxInference(t *testing.T) {
	if got := GaugeMax(72, "%"); got != 100 {
		t.Errorf("Expected max 100 for percent, got %v", got)
	}
	if got := GaugeMax(40, "ms"); got != 60 {
		t.Errorf("Expected max 1.5x value, got %v", got)
	}
}

func TestDispatcher_GaugeScenario(t *testing.T) {
	f := &fakeRenderer{}
	d := NewDispatcher(f, nil)

	stat := model.StatisticEntry{Name: "Approval Rate", Value: 72, Unit: "%", Viz: model.VizGauge}
	if _, err := d.Render(context.Background(), stat, nil, "out.svg"); err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if f.gauge.max != 100 {
		t.Errorf("Expected gauge max 100, got %v", f.gauge.max)
	}
	if frac := f.gauge.value / f.gauge.max; frac != 0.72 {
		t.Errorf("Expected displayed fraction 0.72, got %v", frac)
	}
}

func TestDispatcher_LineSyntheticHistory(t *testing.T) {
	f := &fakeRenderer{}
	d := NewDispatcher(f, nil)

	stat := model.StatisticEntry{Name: "Growth", Value: 50, Unit: "%", Viz: model.VizLine}
	if _, err := d.Render(context.Background(), stat, nil, "out.svg"); err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if len(f.lineData) != 5 {
		t.Fatalf("Expected 5 synthetic points, got %d", len(f.lineData))
	}
	if f.lineData[4].Value != 50 {
		t.Errorf("Expected final point to be the current value, got %v", f.lineData[4].Value)
	}
	for i, p := range f.lineData {
		if p.Value < 0 {
			t.Errorf("Point %d negative: %v", i, p.Value)
		}
	}
}

func TestDispatcher_NumberFallsBackToGauge(t *testing.T) {
	f := &fakeRenderer{}
	d := NewDispatcher(f, nil)

	stat := model.StatisticEntry{Name: "Headcount", Value: 40, Viz: model.VizNumber}
	if _, err := d.Render(context.Background(), stat, nil, "out.svg"); err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if len(f.calls) != 1 || f.calls[0] != "gauge" {
		t.Errorf("Expected gauge fallback, got calls %v", f.calls)
	}
	if f.gauge.max != 60 {
		t.Errorf("Expected inferred max 60, got %v", f.gauge.max)
	}
}

func TestDispatcher_NumberUsesDedicatedRenderer(t *testing.T) {
	n := &numberRenderer{}
	d := NewDispatcher(n, nil)

	stat := model.StatisticEntry{Name: "Headcount", Value: 40, Viz: model.VizNumber}
	if _, err := d.Render(context.Background(), stat, nil, "out.svg"); err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if n.numberCalls != 1 {
		t.Errorf("Expected dedicated number renderer used, got %d calls", n.numberCalls)
	}
}

func TestDispatcher_RenderAllIsolatesFailures(t *testing.T) {
	f := &fakeRenderer{failOn: "pie"}
	d := NewDispatcher(f, nil)

	stats := []model.StatisticEntry{
		{Name: "A", Value: 10, Viz: model.VizBar},
		{Name: "B", Value: 30, Unit: "%", Viz: model.VizPie}, // fails
		{Name: "C", Value: 70, Unit: "%", Viz: model.VizGauge},
	}

	paths := d.RenderAll(context.Background(), stats, nil, "out", "job1")

	if len(paths) != 2 {
		t.Errorf("Expected 2 successful paths past the failure, got %d: %v", len(paths), paths)
	}
	if len(f.calls) != 3 {
		t.Errorf("Expected all 3 statistics attempted, got %v", f.calls)
	}
}
