package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/o42sam/rapiddocs-sub000/internal/model"
)

// RegexExtractor pulls structured fields out of a raw prompt using pattern
// matching alone. It is pure, dependency-free and never fails: unmatched
// fields come back as empty strings and empty collections.
type RegexExtractor struct{}

// NewRegexExtractor creates a new regex extractor
func NewRegexExtractor() *RegexExtractor {
	return &RegexExtractor{}
}

// Invoice patterns, applied in order: labeled fields, relational phrases,
// quantity/price shapes, then the global tax rate.
var (
	vendorLabelRe   = regexp.MustCompile(`(?i)\bvendor:\s*([^,\n]+),\s*([^.\n]+)`)
	customerLabelRe = regexp.MustCompile(`(?i)\bcustomer:\s*([^,\n]+),\s*([^.\n]+)`)

	fromRe   = regexp.MustCompile(`(?i)\bfrom\s+([^,.\n]+)`)
	billToRe = regexp.MustCompile(`(?i)\bbill(?:ed)?\s+to\s+([^,.\n]+)`)
	toRe     = regexp.MustCompile(`\b[Tt]o\s+([A-Z][^,.\n]*)`)

	hoursItemRe = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*hours?\s+of\s+([A-Za-z][A-Za-z0-9 \-]*?)\s+at\s+[$€£]?\s*(\d+(?:\.\d+)?)`)
	parenItemRe = regexp.MustCompile(`(?i)([A-Za-z][A-Za-z0-9 \-]*?)\s*\(\s*[$€£]?\s*(\d+(?:\.\d+)?)\s*x\s*(\d+(?:\.\d+)?)\s*\)`)

	taxRateRe = regexp.MustCompile(`(?i)\btax\s*rate:?\s*(\d+(?:\.\d+)?)\s*%`)

	termsRe = regexp.MustCompile(`(?i)\bpayment\s*terms?:?\s*((?:net\s*\d+|due\s+(?:on|upon)\s+receipt|cod|prepaid)[^.,\n]*)`)
	notesRe = regexp.MustCompile(`(?i)\bnotes?:\s*(.+)`)
	invNoRe = regexp.MustCompile(`(?i)\binvoice\s*(?:number|no\.?|#):?\s*([A-Za-z0-9][A-Za-z0-9\-]*)`)
)

// Report patterns
var (
	topicRe    = regexp.MustCompile(`(?i)\b(?:report|analysis|study|overview)\s+(?:on|about|of)\s+([^.,\n]+)`)
	titleRe    = regexp.MustCompile(`(?i)\btitled?\s*:?\s*"([^"\n]+)"`)
	quotedRe   = regexp.MustCompile(`"([^"\n]{3,80})"`)
	toneRe     = regexp.MustCompile(`(?i)\b(formal|casual|professional|academic|technical|friendly|persuasive|humorous)\s+(?:tone|style|voice)\b`)
	toneLblRe  = regexp.MustCompile(`(?i)\btone:?\s*([a-z]+)`)
	wordsRe    = regexp.MustCompile(`(?i)\b(\d{2,5})\s*words?\b`)
	sectionsRe = regexp.MustCompile(`(?i)\b(\d{1,2})\s*sections?\b`)
	imagesRe   = regexp.MustCompile(`(?i)\b(\d{1,2})\s*(?:images?|illustrations?|pictures?)\b`)
	outlineRe  = regexp.MustCompile(`(?i)\bsections?:\s*([^.\n]+)`)
	statRe     = regexp.MustCompile(`([A-Z][A-Za-z ]{2,40}?)\s+(?:of|at|is|reached|hit)\s+(\d+(?:\.\d+)?)\s*(%|percent|[A-Za-z]+)?`)
)

// notesStopLabels terminate the freeform notes capture. The capture is
// greedy to end of line, then cut at the first of these labels.
var notesStopLabels = []string{"payment", "tax", "items", "vendor", "customer", "client"}

// Extract parses a prompt into a (possibly mostly-empty) extraction result.
// It never fails.
func (e *RegexExtractor) Extract(docType model.DocumentType, prompt string) model.ExtractionResult {
	result := model.ExtractionResult{DocType: docType}

	switch docType {
	case model.DocumentReport:
		e.extractReport(prompt, &result)
	default:
		e.extractInvoice(prompt, &result)
	}

	return result
}

func (e *RegexExtractor) extractInvoice(prompt string, r *model.ExtractionResult) {
	// Labeled fields take precedence over relational phrases
	if m := vendorLabelRe.FindStringSubmatch(prompt); m != nil {
		r.VendorName = strings.TrimSpace(m[1])
		r.VendorAddress = strings.TrimSpace(m[2])
	}
	if m := customerLabelRe.FindStringSubmatch(prompt); m != nil {
		r.ClientName = strings.TrimSpace(m[1])
		r.ClientAddress = strings.TrimSpace(m[2])
	}

	// Relational fallbacks only fill what the labels missed
	if r.VendorName == "" {
		if m := fromRe.FindStringSubmatch(prompt); m != nil {
			r.VendorName = cutAtKeywords(strings.TrimSpace(m[1]), " to ", " bill ")
		}
	}
	if r.ClientName == "" {
		if m := billToRe.FindStringSubmatch(prompt); m != nil {
			r.ClientName = cutAtKeywords(strings.TrimSpace(m[1]), " from ")
		} else if m := toRe.FindStringSubmatch(prompt); m != nil {
			r.ClientName = cutAtKeywords(strings.TrimSpace(m[1]), " from ")
		}
	}

	if m := invNoRe.FindStringSubmatch(prompt); m != nil {
		r.InvoiceNumber = strings.TrimSpace(m[1])
	}
	if m := termsRe.FindStringSubmatch(prompt); m != nil {
		r.PaymentTerms = strings.TrimSpace(m[1])
	}
	if m := notesRe.FindStringSubmatch(prompt); m != nil {
		r.Notes = trimNotes(m[1])
	}

	r.LineItems = extractLineItems(prompt)
	r.Currency = inferCurrency(prompt)
}

func (e *RegexExtractor) extractReport(prompt string, r *model.ExtractionResult) {
	if m := titleRe.FindStringSubmatch(prompt); m != nil {
		r.Title = strings.TrimSpace(m[1])
	} else if m := quotedRe.FindStringSubmatch(prompt); m != nil {
		r.Title = strings.TrimSpace(m[1])
	}
	if m := topicRe.FindStringSubmatch(prompt); m != nil {
		r.Topic = strings.TrimSpace(m[1])
	}
	if m := toneRe.FindStringSubmatch(prompt); m != nil {
		r.Tone = strings.ToLower(m[1])
	} else if m := toneLblRe.FindStringSubmatch(prompt); m != nil {
		r.Tone = strings.ToLower(m[1])
	}

	if m := wordsRe.FindStringSubmatch(prompt); m != nil {
		r.WordCount, _ = strconv.Atoi(m[1])
	}
	if m := sectionsRe.FindStringSubmatch(prompt); m != nil {
		r.SectionCount, _ = strconv.Atoi(m[1])
	}
	if m := imagesRe.FindStringSubmatch(prompt); m != nil {
		r.ImageCount, _ = strconv.Atoi(m[1])
	}

	// An explicit section list overrides a bare count
	if m := outlineRe.FindStringSubmatch(prompt); m != nil && strings.ContainsAny(m[1], "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ") {
		for _, part := range strings.Split(m[1], ",") {
			if h := strings.TrimSpace(part); h != "" {
				r.SectionOutline = append(r.SectionOutline, h)
			}
		}
		if r.SectionCount == 0 {
			r.SectionCount = len(r.SectionOutline)
		}
	}

	r.Statistics = extractStatistics(prompt)
}

// extractLineItems applies the quantity/price patterns, then the global tax
// rate uniformly to every matched item
func extractLineItems(prompt string) []model.LineItemEntry {
	var items []model.LineItemEntry

	for _, m := range hoursItemRe.FindAllStringSubmatch(prompt, -1) {
		qty, _ := strconv.ParseFloat(m[1], 64)
		price, _ := strconv.ParseFloat(m[3], 64)
		items = append(items, model.LineItemEntry{
			Description: strings.TrimSpace(m[2]),
			Quantity:    qty,
			UnitPrice:   price,
		})
	}

	for _, m := range parenItemRe.FindAllStringSubmatch(prompt, -1) {
		price, _ := strconv.ParseFloat(m[2], 64)
		qty, _ := strconv.ParseFloat(m[3], 64)
		items = append(items, model.LineItemEntry{
			Description: strings.TrimSpace(m[1]),
			Quantity:    qty,
			UnitPrice:   price,
		})
	}

	if m := taxRateRe.FindStringSubmatch(prompt); m != nil {
		pct, _ := strconv.ParseFloat(m[1], 64)
		rate := model.NormalizeTaxRate(pct)
		for i := range items {
			items[i].TaxRate = rate
		}
	}

	return items
}

// extractStatistics matches inline "Name <verb> value unit" figures
func extractStatistics(prompt string) []model.StatisticEntry {
	var stats []model.StatisticEntry

	for _, m := range statRe.FindAllStringSubmatch(prompt, -1) {
		unit := strings.TrimSpace(m[3])
		if skipStatUnit(unit) {
			continue
		}
		if strings.EqualFold(unit, "percent") {
			unit = "%"
		}

		value, _ := strconv.ParseFloat(m[2], 64)
		name := strings.TrimSpace(m[1])
		stats = append(stats, model.StatisticEntry{
			Name:  name,
			Value: value,
			Unit:  unit,
			Viz:   inferViz(name, unit),
		})
	}

	return stats
}

// skipStatUnit filters matches that are really document parameters
func skipStatUnit(unit string) bool {
	switch strings.ToLower(unit) {
	case "words", "word", "sections", "section", "images", "image", "illustrations", "illustration", "pages", "page":
		return true
	}
	return false
}

// inferViz picks a visualization type from the statistic's shape
func inferViz(name, unit string) model.VisualizationType {
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "share") || strings.Contains(lower, "distribution") || strings.Contains(lower, "breakdown"):
		return model.VizPie
	case strings.Contains(lower, "growth") || strings.Contains(lower, "trend"):
		return model.VizLine
	case unit == "%":
		return model.VizGauge
	default:
		return model.VizBar
	}
}

// inferCurrency infers currency from symbol or keyword presence, USD default
func inferCurrency(prompt string) string {
	lower := strings.ToLower(prompt)
	switch {
	case strings.Contains(prompt, "€") || strings.Contains(lower, "euro"):
		return "EUR"
	case strings.Contains(prompt, "£") || strings.Contains(lower, "pound"):
		return "GBP"
	default:
		return "USD"
	}
}

// trimNotes cuts the notes capture at the first subsequent field label.
// The label set is fixed; phrasing outside it runs into the notes text.
func trimNotes(s string) string {
	lower := strings.ToLower(s)
	cut := len(s)
	for _, label := range notesStopLabels {
		if i := strings.Index(lower, label); i >= 0 && i < cut {
			cut = i
		}
	}
	return strings.TrimRight(strings.TrimSpace(s[:cut]), ".,;: ")
}

// cutAtKeywords truncates s at the first occurrence of any keyword
func cutAtKeywords(s string, keywords ...string) string {
	lower := strings.ToLower(s)
	cut := len(s)
	for _, kw := range keywords {
		if i := strings.Index(lower, kw); i >= 0 && i < cut {
			cut = i
		}
	}
	return strings.TrimSpace(s[:cut])
}
