package model

// DocumentType selects which document family a request produces
type DocumentType string

const (
	DocumentInvoice DocumentType = "invoice"
	DocumentReport  DocumentType = "report"
)

// Valid reports whether the document type is one the pipeline knows
func (d DocumentType) Valid() bool {
	return d == DocumentInvoice || d == DocumentReport
}

// VisualizationType classifies how a statistic is rendered
type VisualizationType string

const (
	VizBar    VisualizationType = "bar"
	VizLine   VisualizationType = "line"
	VizPie    VisualizationType = "pie"
	VizGauge  VisualizationType = "gauge"
	VizNumber VisualizationType = "number"
)

// NormalizeViz maps free-form visualization names onto the known set,
// defaulting to bar for anything unrecognized
func NormalizeViz(s string) VisualizationType {
	switch VisualizationType(s) {
	case VizBar, VizLine, VizPie, VizGauge, VizNumber:
		return VisualizationType(s)
	default:
		return VizBar
	}
}

// ExtractionResult is the structured output of the extraction stage for one
// document. Both extractors return this shape; the merger reconciles two of
// them into the canonical instance the orchestrator owns for the job.
type ExtractionResult struct {
	DocType DocumentType `json:"doc_type"`

	// Invoice fields
	VendorName    string `json:"vendor_name,omitempty"`
	VendorAddress string `json:"vendor_address,omitempty"`
	ClientName    string `json:"client_name,omitempty"`
	ClientAddress string `json:"client_address,omitempty"`
	InvoiceNumber string `json:"invoice_number,omitempty"`
	Currency      string `json:"currency,omitempty"`
	PaymentTerms  string `json:"payment_terms,omitempty"`
	Notes         string `json:"notes,omitempty"`

	LineItems []LineItemEntry `json:"line_items,omitempty"`

	// Report fields
	Title        string `json:"title,omitempty"`
	Topic        string `json:"topic,omitempty"`
	Tone         string `json:"tone,omitempty"`
	WordCount    int    `json:"word_count,omitempty"`
	SectionCount int    `json:"section_count,omitempty"`
	ImageCount   int    `json:"image_count,omitempty"`

	Statistics     []StatisticEntry `json:"statistics,omitempty"`
	SectionOutline []string         `json:"section_outline,omitempty"`
	ImagePrompts   []string         `json:"image_prompts,omitempty"`
}

// LineItemEntry is a single billable row on an invoice
type LineItemEntry struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	TaxRate     float64 `json:"tax_rate"` // fraction in [0,1]
}

// Total returns the line total including tax
func (l LineItemEntry) Total() float64 {
	return l.Quantity * l.UnitPrice * (1 + l.TaxRate)
}

// StatisticEntry is a single figure a report visualizes exactly once
type StatisticEntry struct {
	Name        string            `json:"name"`
	Value       float64           `json:"value"`
	Unit        string            `json:"unit,omitempty"`
	Viz         VisualizationType `json:"visualization"`
	Category    string            `json:"category,omitempty"`
	Description string            `json:"description,omitempty"`
}

// Word count bounds. Reports are prose-budgeted tighter than formal text
// (contracts, letters) which may legitimately run long.
const (
	MinReportWords = 200
	MaxReportWords = 5000
	MinFormalWords = 100
	MaxFormalWords = 10000

	MinImages = 2
	MaxImages = 4
)

// NormalizeTaxRate coerces a tax rate into [0,1]. Values in (1,100] are read
// as percentages and divided by 100; anything outside a sane percent range
// is zeroed rather than guessed at.
func NormalizeTaxRate(v float64) float64 {
	switch {
	case v >= 0 && v <= 1:
		return v
	case v > 1 && v <= 100:
		return v / 100
	default:
		return 0
	}
}

// ClampReportWords bounds a report word budget, treating 0 as "use default"
func ClampReportWords(n int) int {
	return clamp(n, MinReportWords, MaxReportWords)
}

// ClampFormalWords bounds a formal-text word budget
func ClampFormalWords(n int) int {
	return clamp(n, MinFormalWords, MaxFormalWords)
}

// ClampImageCount bounds the illustration count to [2,4]
func ClampImageCount(n int) int {
	return clamp(n, MinImages, MaxImages)
}

// ClampSectionCount guarantees at least one section
func ClampSectionCount(n int) int {
	if n < 1 {
		return 1
	}
	return n
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
