package extract

import (
	"fmt"
	"time"

	"github.com/o42sam/rapiddocs-sub000/internal/model"
)

// Merger reconciles the AI and regex extraction results into one canonical
// ExtractionResult. The two-stage design (merge, then fill) degrades
// gracefully through three quality tiers: real extracted data, regex-only
// data, generic defaults — the pipeline can always proceed.
type Merger struct {
	now func() time.Time // injectable for tests
}

// NewMerger creates a new merger
func NewMerger() *Merger {
	return &Merger{now: time.Now}
}

// Merge applies field-level preference: the AI value wins unless it is empty
// or a known placeholder sentinel; then the regex value under the same check;
// if both are disqualified, whichever is non-empty, preferring AI.
func (m *Merger) Merge(ai, regex model.ExtractionResult) model.ExtractionResult {
	out := model.ExtractionResult{DocType: ai.DocType}
	if out.DocType == "" {
		out.DocType = regex.DocType
	}

	out.VendorName = pickScalar(ai.VendorName, regex.VendorName)
	out.VendorAddress = pickScalar(ai.VendorAddress, regex.VendorAddress)
	out.ClientName = pickScalar(ai.ClientName, regex.ClientName)
	out.ClientAddress = pickScalar(ai.ClientAddress, regex.ClientAddress)
	out.InvoiceNumber = pickScalar(ai.InvoiceNumber, regex.InvoiceNumber)
	out.Currency = pickScalar(ai.Currency, regex.Currency)
	out.PaymentTerms = pickScalar(ai.PaymentTerms, regex.PaymentTerms)
	out.Notes = pickScalar(ai.Notes, regex.Notes)

	out.Title = pickScalar(ai.Title, regex.Title)
	out.Topic = pickScalar(ai.Topic, regex.Topic)
	out.Tone = pickScalar(ai.Tone, regex.Tone)
	out.WordCount = pickCount(ai.WordCount, regex.WordCount)
	out.SectionCount = pickCount(ai.SectionCount, regex.SectionCount)
	out.ImageCount = pickCount(ai.ImageCount, regex.ImageCount)

	// Collections: the AI list wins only if non-empty and not composed
	// entirely of generic placeholder descriptions
	if len(ai.LineItems) > 0 && !allGenericItems(ai.LineItems) {
		out.LineItems = ai.LineItems
	} else {
		out.LineItems = regex.LineItems
	}
	if len(ai.Statistics) > 0 && !allGenericStats(ai.Statistics) {
		out.Statistics = ai.Statistics
	} else {
		out.Statistics = regex.Statistics
	}

	if len(ai.SectionOutline) > 0 {
		out.SectionOutline = ai.SectionOutline
	} else {
		out.SectionOutline = regex.SectionOutline
	}
	if len(ai.ImagePrompts) > 0 {
		out.ImagePrompts = ai.ImagePrompts
	} else {
		out.ImagePrompts = regex.ImagePrompts
	}

	return out
}

// FillDefaults guarantees every required scalar is non-empty, synthesizes
// default collections when still empty, and applies the documented numeric
// clamps. After this pass the result satisfies the pipeline's invariants.
func (m *Merger) FillDefaults(r model.ExtractionResult) model.ExtractionResult {
	switch r.DocType {
	case model.DocumentReport:
		m.fillReportDefaults(&r)
	default:
		m.fillInvoiceDefaults(&r)
	}
	return r
}

func (m *Merger) fillInvoiceDefaults(r *model.ExtractionResult) {
	fill(&r.VendorName, defaultVendorName)
	fill(&r.VendorAddress, defaultVendorAddress)
	fill(&r.ClientName, defaultClientName)
	fill(&r.ClientAddress, defaultClientAddress)
	fill(&r.Currency, defaultCurrency)
	fill(&r.PaymentTerms, defaultPaymentTerms)
	fill(&r.Notes, defaultNotes)
	fill(&r.InvoiceNumber, synthInvoiceNumber(m.now()))

	if len(r.LineItems) == 0 {
		r.LineItems = defaultLineItems()
	}
	for i := range r.LineItems {
		r.LineItems[i].TaxRate = model.NormalizeTaxRate(r.LineItems[i].TaxRate)
		if r.LineItems[i].Quantity <= 0 {
			r.LineItems[i].Quantity = 1
		}
	}
}

func (m *Merger) fillReportDefaults(r *model.ExtractionResult) {
	fill(&r.Topic, defaultTopic)
	if r.Title == "" {
		if r.Topic != defaultTopic {
			r.Title = titleFromTopic(r.Topic)
		} else {
			r.Title = defaultTitle
		}
	}
	fill(&r.Tone, defaultTone)

	if r.WordCount == 0 {
		r.WordCount = defaultWordCount
	}
	r.WordCount = model.ClampReportWords(r.WordCount)

	if r.SectionCount == 0 {
		r.SectionCount = defaultSectionCount
	}
	r.SectionCount = model.ClampSectionCount(r.SectionCount)

	r.ImageCount = model.ClampImageCount(r.ImageCount)

	if len(r.Statistics) == 0 {
		r.Statistics = defaultStatistics()
	}
	for i := range r.Statistics {
		r.Statistics[i].Viz = model.NormalizeViz(string(r.Statistics[i].Viz))
	}

	// Pad the outline to the declared section count so the segmenter always
	// has a heading to fall back on
	for i := len(r.SectionOutline); i < r.SectionCount; i++ {
		if i < len(defaultOutline) {
			r.SectionOutline = append(r.SectionOutline, defaultOutline[i])
		} else {
			r.SectionOutline = append(r.SectionOutline, fmt.Sprintf("Section %d", i+1))
		}
	}

	for i := len(r.ImagePrompts); i < r.ImageCount; i++ {
		r.ImagePrompts = append(r.ImagePrompts, fmt.Sprintf("Professional illustration related to %s", r.Topic))
	}
	if len(r.ImagePrompts) > r.ImageCount {
		r.ImagePrompts = r.ImagePrompts[:r.ImageCount]
	}
}

// pickScalar implements the per-field merge preference
func pickScalar(ai, regex string) string {
	if ai != "" && !IsPlaceholder(ai) {
		return ai
	}
	if regex != "" && !IsPlaceholder(regex) {
		return regex
	}
	if ai != "" {
		return ai
	}
	return regex
}

// pickCount prefers a positive AI count over a positive regex count
func pickCount(ai, regex int) int {
	if ai > 0 {
		return ai
	}
	return regex
}

func fill(field *string, def string) {
	if *field == "" {
		*field = def
	}
}

func titleFromTopic(topic string) string {
	return fmt.Sprintf("Report: %s", topic)
}
