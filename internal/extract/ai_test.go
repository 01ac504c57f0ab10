package extract

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/o42sam/rapiddocs-sub000/internal/cache"
	"github.com/o42sam/rapiddocs-sub000/internal/llm"
	"github.com/o42sam/rapiddocs-sub000/internal/model"
)

// fakeGenerator is a scriptable llm.Generator for tests
type fakeGenerator struct {
	active     bool
	structured string // JSON payload returned by GenerateStructured
	err        error
	calls      int
}

func (f *fakeGenerator) Name() string { return "fake" }

func (f *fakeGenerator) Generate(ctx context.Context, req llm.GenerateRequest) (string, error) {
	return "", errors.New("not used")
}

func (f *fakeGenerator) GenerateStructured(ctx context.Context, req llm.StructuredRequest, out any) error {
	f.calls++
	if f.err != nil {
		return f.err
	}
	return json.Unmarshal([]byte(f.structured), out)
}

func (f *fakeGenerator) IsActive(ctx context.Context) bool { return f.active }

func TestAIExtractor_NilGenerator(t *testing.T) {
	e := NewAIExtractor(nil, nil, 0, nil)

	r := e.Extract(context.Background(), model.DocumentInvoice, "anything")
	if r.VendorName != "" || len(r.LineItems) != 0 {
		t.Errorf("Expected empty result from nil generator, got %+v", r)
	}
	if r.DocType != model.DocumentInvoice {
		t.Errorf("Expected doc type preserved, got %q", r.DocType)
	}
}

func TestAIExtractor_InactiveGenerator(t *testing.T) {
	gen := &fakeGenerator{active: false}
	e := NewAIExtractor(gen, nil, 0, nil)

	r := e.Extract(context.Background(), model.DocumentInvoice, "anything")
	if r.VendorName != "" {
		t.Errorf("Expected empty result from inactive generator, got %+v", r)
	}
	if gen.calls != 0 {
		t.Errorf("Expected no structured call for inactive generator, got %d", gen.calls)
	}
}

func TestAIExtractor_GeneratorErrorYieldsEmpty(t *testing.T) {
	gen := &fakeGenerator{active: true, err: errors.New("rate limited")}
	e := NewAIExtractor(gen, nil, 0, nil)

	r := e.Extract(context.Background(), model.DocumentInvoice, "anything")
	if r.VendorName != "" || len(r.LineItems) != 0 {
		t.Errorf("Expected empty result on generator error, got %+v", r)
	}
}

func TestAIExtractor_ParseFailureYieldsEmpty(t *testing.T) {
	gen := &fakeGenerator{active: true, structured: "this is not json"}
	e := NewAIExtractor(gen, nil, 0, nil)

	r := e.Extract(context.Background(), model.DocumentReport, "anything")
	if r.Title != "" || len(r.Statistics) != 0 {
		t.Errorf("Expected empty result on parse failure, got %+v", r)
	}
}

func TestAIExtractor_InvoiceSuccess(t *testing.T) {
	gen := &fakeGenerator{active: true, structured: `{
		"vendor_name": "Acme Corp",
		"currency": "EUR",
		"line_items": [
			{"description": "Widget", "quantity": 3, "unit_price": 10, "tax_rate": 8}
		]
	}`}
	e := NewAIExtractor(gen, nil, 0, nil)

	r := e.Extract(context.Background(), model.DocumentInvoice, "an invoice prompt")

	if r.VendorName != "Acme Corp" || r.Currency != "EUR" {
		t.Errorf("Unexpected scalars: %+v", r)
	}
	if len(r.LineItems) != 1 {
		t.Fatalf("Expected 1 line item, got %d", len(r.LineItems))
	}
	// tax_rate 8 normalized to 0.08 at the boundary
	if r.LineItems[0].TaxRate != 0.08 {
		t.Errorf("Expected tax rate 0.08, got %v", r.LineItems[0].TaxRate)
	}
	// Missing invoice number is synthesized
	if r.InvoiceNumber == "" {
		t.Error("Expected synthesized invoice number")
	}
}

func TestAIExtractor_ReportVizNormalized(t *testing.T) {
	gen := &fakeGenerator{active: true, structured: `{
		"topic": "solar adoption",
		"statistics": [
			{"name": "Approval Rate", "value": 72, "unit": "%", "visualization": "speedometer"}
		]
	}`}
	e := NewAIExtractor(gen, nil, 0, nil)

	r := e.Extract(context.Background(), model.DocumentReport, "a report prompt")

	if len(r.Statistics) != 1 {
		t.Fatalf("Expected 1 statistic, got %d", len(r.Statistics))
	}
	if r.Statistics[0].Viz != model.VizBar {
		t.Errorf("Expected unknown viz normalized to bar, got %s", r.Statistics[0].Viz)
	}
}

func TestAIExtractor_CachesResults(t *testing.T) {
	gen := &fakeGenerator{active: true, structured: `{"vendor_name": "Acme Corp"}`}
	c := cache.NewMemoryCache(time.Minute, time.Minute)
	e := NewAIExtractor(gen, c, time.Minute, nil)

	first := e.Extract(context.Background(), model.DocumentInvoice, "same prompt")
	second := e.Extract(context.Background(), model.DocumentInvoice, "same prompt")

	if gen.calls != 1 {
		t.Errorf("Expected 1 generator call with cache, got %d", gen.calls)
	}
	if first.VendorName != second.VendorName {
		t.Errorf("Cache returned different result: %q vs %q", first.VendorName, second.VendorName)
	}
}
