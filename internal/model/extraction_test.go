package model

import "testing"

func TestNormalizeTaxRate(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{0.08, 0.08},
		{0, 0},
		{1, 1},
		{8, 0.08},
		{100, 1},
		{150, 0},
		{-0.1, 0},
	}
	for _, tc := range cases {
		if got := NormalizeTaxRate(tc.in); got != tc.want {
			t.Errorf("NormalizeTaxRate(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestClamps(t *testing.T) {
	if got := ClampReportWords(50); got != MinReportWords {
		t.Errorf("Expected report words clamped up to %d, got %d", MinReportWords, got)
	}
	if got := ClampReportWords(99999); got != MaxReportWords {
		t.Errorf("Expected report words clamped down to %d, got %d", MaxReportWords, got)
	}
	if got := ClampFormalWords(50); got != MinFormalWords {
		t.Errorf("Expected formal words clamped up to %d, got %d", MinFormalWords, got)
	}
	if got := ClampImageCount(1); got != MinImages {
		t.Errorf("Expected image count clamped up to %d, got %d", MinImages, got)
	}
	if got := ClampImageCount(9); got != MaxImages {
		t.Errorf("Expected image count clamped down to %d, got %d", MaxImages, got)
	}
	if got := ClampSectionCount(0); got != 1 {
		t.Errorf("Expected section count clamped to 1, got %d", got)
	}
}

func TestNormalizeViz(t *testing.T) {
	cases := map[string]VisualizationType{
		"bar":         VizBar,
		"line":        VizLine,
		"pie":         VizPie,
		"gauge":       VizGauge,
		"number":      VizNumber,
		"speedometer": VizBar,
		"":            VizBar,
	}
	for in, want := range cases {
		if got := NormalizeViz(in); got != want {
			t.Errorf("NormalizeViz(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestDocumentTypeValid(t *testing.T) {
	if !DocumentInvoice.Valid() || !DocumentReport.Valid() {
		t.Error("Expected built-in document types to be valid")
	}
	if DocumentType("memo").Valid() {
		t.Error("Expected unknown document type to be invalid")
	}
}

func TestLineItemTotal(t *testing.T) {
	item := LineItemEntry{Quantity: 3, UnitPrice: 10, TaxRate: 0.08}
	if got := item.Total(); got != 32.4 {
		t.Errorf("Expected 32.4, got %v", got)
	}
}
