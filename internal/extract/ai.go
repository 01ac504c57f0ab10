package extract

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/o42sam/rapiddocs-sub000/internal/cache"
	"github.com/o42sam/rapiddocs-sub000/internal/llm"
	"github.com/o42sam/rapiddocs-sub000/internal/model"
)

// AIExtractor wraps a text generator to request a schema-constrained
// structured extraction. It never returns an error: any failure of the
// underlying generator (inactive, call error, parse error) yields an
// all-empty result, so the merge stage never special-cases exceptions.
type AIExtractor struct {
	gen      llm.Generator
	cache    cache.Cache
	cacheTTL time.Duration
	log      *zap.Logger
}

// NewAIExtractor creates a new AI extractor. gen may be nil (AI disabled)
// and c may be nil (caching disabled).
func NewAIExtractor(gen llm.Generator, c cache.Cache, cacheTTL time.Duration, log *zap.Logger) *AIExtractor {
	if log == nil {
		log = zap.NewNop()
	}
	return &AIExtractor{gen: gen, cache: c, cacheTTL: cacheTTL, log: log}
}

// aiInvoice is the schema the generator is asked to fill for invoices.
// Missing fields decode to zero values; the merge stage treats those as
// "no data" rather than errors (tagged-result at the boundary).
type aiInvoice struct {
	VendorName    string       `json:"vendor_name"`
	VendorAddress string       `json:"vendor_address"`
	ClientName    string       `json:"client_name"`
	ClientAddress string       `json:"client_address"`
	InvoiceNumber string       `json:"invoice_number"`
	Currency      string       `json:"currency"`
	PaymentTerms  string       `json:"payment_terms"`
	Notes         string       `json:"notes"`
	LineItems     []aiLineItem `json:"line_items"`
}

type aiLineItem struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	TaxRate     float64 `json:"tax_rate"`
}

// aiReport is the schema for report extraction
type aiReport struct {
	Title          string        `json:"title"`
	Topic          string        `json:"topic"`
	Tone           string        `json:"tone"`
	WordCount      int           `json:"word_count"`
	SectionCount   int           `json:"section_count"`
	ImageCount     int           `json:"image_count"`
	SectionOutline []string      `json:"section_outline"`
	ImagePrompts   []string      `json:"image_prompts"`
	Statistics     []aiStatistic `json:"statistics"`
}

type aiStatistic struct {
	Name          string  `json:"name"`
	Value         float64 `json:"value"`
	Unit          string  `json:"unit"`
	Visualization string  `json:"visualization"`
	Category      string  `json:"category"`
	Description   string  `json:"description"`
}

const extractSystemPrompt = "You extract structured billing and report parameters from user prompts. " +
	"Use only information present in the prompt. Leave fields you cannot find empty or zero. " +
	"Never invent names, addresses or amounts."

const invoiceInstruction = `Extract invoice details from the prompt below.
Fields: vendor_name, vendor_address, client_name, client_address,
invoice_number, currency (ISO code), payment_terms, notes, and line_items
(description, quantity, unit_price, tax_rate as a fraction between 0 and 1).

Prompt:
`

const reportInstruction = `Extract report parameters from the prompt below.
Fields: title, topic, tone, word_count, section_count, image_count,
section_outline (ordered headings), image_prompts (one visual description
per requested image), and statistics (name, value, unit, visualization as
one of bar/line/pie/gauge/number, category, description).

Prompt:
`

// Extract requests a structured extraction from the generator. The returned
// result is all-empty (except DocType) on any failure.
func (e *AIExtractor) Extract(ctx context.Context, docType model.DocumentType, prompt string) model.ExtractionResult {
	empty := model.ExtractionResult{DocType: docType}

	if e.gen == nil || !e.gen.IsActive(ctx) {
		e.log.Debug("ai extractor skipped: generator inactive")
		return empty
	}

	key := cache.PromptKey(string(docType) + "|" + prompt)
	if e.cache != nil {
		if raw, ok := e.cache.Get(key); ok {
			var cached model.ExtractionResult
			if err := json.Unmarshal(raw, &cached); err == nil {
				return cached
			}
			// Corrupt entry: drop it and re-extract
			_ = e.cache.Delete(key)
		}
	}

	var result model.ExtractionResult
	switch docType {
	case model.DocumentReport:
		var out aiReport
		req := llm.StructuredRequest{
			Prompt:     reportInstruction + prompt,
			System:     extractSystemPrompt,
			SchemaName: "report_extraction",
		}
		if err := e.gen.GenerateStructured(ctx, req, &out); err != nil {
			e.log.Warn("ai report extraction failed", zap.Error(err))
			return empty
		}
		result = reportFromAI(out)
	default:
		var out aiInvoice
		req := llm.StructuredRequest{
			Prompt:     invoiceInstruction + prompt,
			System:     extractSystemPrompt,
			SchemaName: "invoice_extraction",
		}
		if err := e.gen.GenerateStructured(ctx, req, &out); err != nil {
			e.log.Warn("ai invoice extraction failed", zap.Error(err))
			return empty
		}
		result = invoiceFromAI(out)
	}
	result.DocType = docType

	if e.cache != nil {
		if raw, err := json.Marshal(result); err == nil {
			_ = e.cache.Set(key, raw, e.cacheTTL)
		}
	}

	return result
}

// invoiceFromAI converts the AI payload, normalizing numerics at the boundary
func invoiceFromAI(out aiInvoice) model.ExtractionResult {
	r := model.ExtractionResult{
		VendorName:    out.VendorName,
		VendorAddress: out.VendorAddress,
		ClientName:    out.ClientName,
		ClientAddress: out.ClientAddress,
		InvoiceNumber: out.InvoiceNumber,
		Currency:      out.Currency,
		PaymentTerms:  out.PaymentTerms,
		Notes:         out.Notes,
	}
	if r.InvoiceNumber == "" {
		r.InvoiceNumber = synthInvoiceNumber(time.Now())
	}
	for _, it := range out.LineItems {
		if it.Description == "" {
			continue
		}
		r.LineItems = append(r.LineItems, model.LineItemEntry{
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			TaxRate:     model.NormalizeTaxRate(it.TaxRate),
		})
	}
	return r
}

// reportFromAI converts the AI payload, normalizing enums at the boundary
func reportFromAI(out aiReport) model.ExtractionResult {
	r := model.ExtractionResult{
		Title:          out.Title,
		Topic:          out.Topic,
		Tone:           out.Tone,
		WordCount:      out.WordCount,
		SectionCount:   out.SectionCount,
		ImageCount:     out.ImageCount,
		SectionOutline: out.SectionOutline,
		ImagePrompts:   out.ImagePrompts,
	}
	for _, st := range out.Statistics {
		if st.Name == "" {
			continue
		}
		r.Statistics = append(r.Statistics, model.StatisticEntry{
			Name:        st.Name,
			Value:       st.Value,
			Unit:        st.Unit,
			Viz:         model.NormalizeViz(st.Visualization),
			Category:    st.Category,
			Description: st.Description,
		})
	}
	return r
}
