package extract

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/o42sam/rapiddocs-sub000/internal/model"
)

// Placeholder sentinels: literal values the AI is known to emit when it has
// no real data to extract. A field equal to one of these is treated as
// generic, not as extracted data, when deciding merge precedence. The set is
// kept in one place so the policy stays auditable.
var placeholderScalars = []string{
	"client company llc",
	"professional services inc",
	"123 business rd, suite 100, city, st 12345",
	"456 client ave, city, st 67890",
}

// Generic line-item/statistic descriptions. An AI-produced list composed
// entirely of these is discarded in favor of the regex list.
var placeholderDescriptions = []string{
	"professional services",
	"consultation hours",
	"service",
}

// IsPlaceholder reports whether a scalar value is a known generic default
func IsPlaceholder(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, p := range placeholderScalars {
		if s == p {
			return true
		}
	}
	return false
}

// isGenericDescription reports whether a single description is generic
func isGenericDescription(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, p := range placeholderDescriptions {
		if s == p {
			return true
		}
	}
	return false
}

// allGenericItems reports whether every line item carries a generic description
func allGenericItems(items []model.LineItemEntry) bool {
	for _, it := range items {
		if !isGenericDescription(it.Description) {
			return false
		}
	}
	return len(items) > 0
}

// allGenericStats reports whether every statistic carries a generic name
func allGenericStats(stats []model.StatisticEntry) bool {
	for _, st := range stats {
		if !isGenericDescription(st.Name) {
			return false
		}
	}
	return len(stats) > 0
}

// Hardcoded defaults applied by the final fill pass. These deliberately
// reuse the sentinel values: a defaulted document is the lowest quality tier
// and stays recognizable as such.
const (
	defaultVendorName    = "Professional Services Inc"
	defaultVendorAddress = "123 Business Rd, Suite 100, City, ST 12345"
	defaultClientName    = "Client Company LLC"
	defaultClientAddress = "456 Client Ave, City, ST 67890"
	defaultCurrency      = "USD"
	defaultPaymentTerms  = "Net 30"
	defaultNotes         = "Thank you for your business."

	defaultTitle = "Generated Report"
	defaultTopic = "General Overview"
	defaultTone  = "professional"

	defaultWordCount    = 1000
	defaultSectionCount = 5
)

var defaultOutline = []string{"Introduction", "Background", "Analysis", "Findings", "Conclusion"}

func defaultLineItems() []model.LineItemEntry {
	return []model.LineItemEntry{
		{Description: "Professional Services", Quantity: 10, UnitPrice: 100, TaxRate: 0},
		{Description: "Consultation Hours", Quantity: 5, UnitPrice: 150, TaxRate: 0},
	}
}

func defaultStatistics() []model.StatisticEntry {
	return []model.StatisticEntry{
		{Name: "Completion Rate", Value: 85, Unit: "%", Viz: model.VizGauge},
		{Name: "Quarterly Growth", Value: 12.5, Unit: "%", Viz: model.VizLine},
	}
}

// synthInvoiceNumber builds INV-{yyyymmdd}-{4 random digits}
func synthInvoiceNumber(now time.Time) string {
	return fmt.Sprintf("INV-%s-%04d", now.Format("20060102"), rand.Intn(10000))
}
