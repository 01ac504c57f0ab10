package extract

import (
	"testing"

	"github.com/o42sam/rapiddocs-sub000/internal/model"
)

func TestRegexExtractor_LabeledInvoice(t *testing.T) {
	extractor := NewRegexExtractor()

	prompt := "Vendor: Acme Corp, 1 Main St. Customer: Jane Doe at Widgets Inc, 2 Oak Ave. " +
		"Items: Widget ($10 x 3), Gadget ($25 x 2). tax rate: 8%."

	r := extractor.Extract(model.DocumentInvoice, prompt)

	if r.VendorName != "Acme Corp" {
		t.Errorf("Expected vendor 'Acme Corp', got %q", r.VendorName)
	}
	if r.VendorAddress != "1 Main St" {
		t.Errorf("Expected vendor address '1 Main St', got %q", r.VendorAddress)
	}
	if r.ClientName != "Jane Doe at Widgets Inc" {
		t.Errorf("Expected client 'Jane Doe at Widgets Inc', got %q", r.ClientName)
	}
	if r.ClientAddress != "2 Oak Ave" {
		t.Errorf("Expected client address '2 Oak Ave', got %q", r.ClientAddress)
	}
	if r.Currency != "USD" {
		t.Errorf("Expected currency USD, got %q", r.Currency)
	}

	if len(r.LineItems) != 2 {
		t.Fatalf("Expected 2 line items, got %d: %+v", len(r.LineItems), r.LineItems)
	}
	widget := r.LineItems[0]
	if widget.Description != "Widget" || widget.UnitPrice != 10 || widget.Quantity != 3 {
		t.Errorf("Unexpected first item: %+v", widget)
	}
	gadget := r.LineItems[1]
	if gadget.Description != "Gadget" || gadget.UnitPrice != 25 || gadget.Quantity != 2 {
		t.Errorf("Unexpected second item: %+v", gadget)
	}
	for _, it := range r.LineItems {
		if it.TaxRate != 0.08 {
			t.Errorf("Expected tax rate 0.08 on %q, got %v", it.Description, it.TaxRate)
		}
	}
}

func TestRegexExtractor_HoursPattern(t *testing.T) {
	extractor := NewRegexExtractor()

	r := extractor.Extract(model.DocumentInvoice, "Invoice for 12 hours of web development at $95 per hour")

	if len(r.LineItems) != 1 {
		t.Fatalf("Expected 1 line item, got %d", len(r.LineItems))
	}
	it := r.LineItems[0]
	if it.Description != "web development" {
		t.Errorf("Expected description 'web development', got %q", it.Description)
	}
	if it.Quantity != 12 || it.UnitPrice != 95 {
		t.Errorf("Expected qty=12 price=95, got qty=%v price=%v", it.Quantity, it.UnitPrice)
	}
}

func TestRegexExtractor_RelationalFallback(t *testing.T) {
	extractor := NewRegexExtractor()

	r := extractor.Extract(model.DocumentInvoice, "Create an invoice from Globex Partners, bill to Initech Ltd")

	if r.VendorName != "Globex Partners" {
		t.Errorf("Expected vendor 'Globex Partners', got %q", r.VendorName)
	}
	if r.ClientName != "Initech Ltd" {
		t.Errorf("Expected client 'Initech Ltd', got %q", r.ClientName)
	}
}

func TestRegexExtractor_NotesStopsAtLabels(t *testing.T) {
	extractor := NewRegexExtractor()

	r := extractor.Extract(model.DocumentInvoice, "Notes: deliver by Friday payment terms: Net 15")

	if r.Notes != "deliver by Friday" {
		t.Errorf("Expected notes cut before 'payment', got %q", r.Notes)
	}
	if r.PaymentTerms != "Net 15" {
		t.Errorf("Expected terms 'Net 15', got %q", r.PaymentTerms)
	}
}

func TestRegexExtractor_CurrencyInference(t *testing.T) {
	extractor := NewRegexExtractor()

	tests := []struct {
		prompt string
		want   string
	}{
		{"Invoice Widget ($10 x 1)", "USD"},
		{"Invoice Widget (€10 x 1) in euros", "EUR"},
		{"Invoice for 500 pounds of services", "GBP"},
		{"Invoice with no currency hints at all", "USD"},
	}

	for _, tt := range tests {
		r := extractor.Extract(model.DocumentInvoice, tt.prompt)
		if r.Currency != tt.want {
			t.Errorf("Extract(%q): expected currency %s, got %s", tt.prompt, tt.want, r.Currency)
		}
	}
}

func TestRegexExtractor_NeverFails(t *testing.T) {
	extractor := NewRegexExtractor()

	prompts := []string{
		"",
		"   ",
		"no structure here whatsoever",
		"((((($$$$$ x x x",
		"Vendor: , ,",
	}

	for _, p := range prompts {
		r := extractor.Extract(model.DocumentInvoice, p)
		if r.DocType != model.DocumentInvoice {
			t.Errorf("Extract(%q): doc type lost", p)
		}
		r = extractor.Extract(model.DocumentReport, p)
		if r.DocType != model.DocumentReport {
			t.Errorf("Extract(%q): doc type lost", p)
		}
	}
}

func TestRegexExtractor_ReportParameters(t *testing.T) {
	extractor := NewRegexExtractor()

	prompt := `Write a formal tone report on renewable energy adoption, about 1500 words in 4 sections with 3 illustrations. Approval Rate of 72%.`

	r := extractor.Extract(model.DocumentReport, prompt)

	if r.Topic != "renewable energy adoption" {
		t.Errorf("Expected topic 'renewable energy adoption', got %q", r.Topic)
	}
	if r.Tone != "formal" {
		t.Errorf("Expected tone 'formal', got %q", r.Tone)
	}
	if r.WordCount != 1500 {
		t.Errorf("Expected 1500 words, got %d", r.WordCount)
	}
	if r.SectionCount != 4 {
		t.Errorf("Expected 4 sections, got %d", r.SectionCount)
	}
	if r.ImageCount != 3 {
		t.Errorf("Expected 3 images, got %d", r.ImageCount)
	}

	if len(r.Statistics) != 1 {
		t.Fatalf("Expected 1 statistic, got %d: %+v", len(r.Statistics), r.Statistics)
	}
	stat := r.Statistics[0]
	if stat.Name != "Approval Rate" || stat.Value != 72 || stat.Unit != "%" {
		t.Errorf("Unexpected statistic: %+v", stat)
	}
	if stat.Viz != model.VizGauge {
		t.Errorf("Expected gauge visualization for a percent rate, got %s", stat.Viz)
	}
}

func TestRegexExtractor_StatUnitFiltering(t *testing.T) {
	extractor := NewRegexExtractor()

	// "The report is 1500 words" shapes like a statistic but is a document
	// parameter and must not become one
	r := extractor.Extract(model.DocumentReport, "The report is 1500 words")

	for _, st := range r.Statistics {
		if st.Value == 1500 {
			t.Errorf("Word-count parameter leaked into statistics: %+v", st)
		}
	}
}
