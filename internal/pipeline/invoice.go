package pipeline

import (
	"fmt"
	"strings"

	"github.com/o42sam/rapiddocs-sub000/internal/model"
)

// InvoiceTotals holds the computed money summary for an invoice.
type InvoiceTotals struct {
	Subtotal float64
	Tax      float64
	Total    float64
}

// ComputeTotals sums the line items. Tax is applied per item since
// items may carry different rates.
func ComputeTotals(items []model.LineItemEntry) InvoiceTotals {
	var t InvoiceTotals
	for _, item := range items {
		line := item.Quantity * item.UnitPrice
		t.Subtotal += line
		t.Tax += line * item.TaxRate
	}
	t.Total = t.Subtotal + t.Tax
	return t
}

// invoiceSections builds the invoice body without any generator: party
// details, a line-item table, totals, and notes.
func invoiceSections(e model.ExtractionResult) []model.Section {
	totals := ComputeTotals(e.LineItems)

	var details strings.Builder
	fmt.Fprintf(&details, "**From:** %s", e.VendorName)
	if e.VendorAddress != "" {
		fmt.Fprintf(&details, ", %s", e.VendorAddress)
	}
	details.WriteString("\n\n")
	fmt.Fprintf(&details, "**To:** %s", e.ClientName)
	if e.ClientAddress != "" {
		fmt.Fprintf(&details, ", %s", e.ClientAddress)
	}
	details.WriteString("\n\n")
	fmt.Fprintf(&details, "**Invoice Number:** %s", e.InvoiceNumber)

	var table strings.Builder
	table.WriteString("| Description | Quantity | Unit Price | Tax | Amount |\n")
	table.WriteString("|---|---|---|---|---|\n")
	for _, item := range e.LineItems {
		fmt.Fprintf(&table, "| %s | %g | %s | %.1f%% | %s |\n",
			item.Description,
			item.Quantity,
			money(item.UnitPrice, e.Currency),
			item.TaxRate*100,
			money(item.Total(), e.Currency))
	}

	var summary strings.Builder
	fmt.Fprintf(&summary, "**Subtotal:** %s\n\n", money(totals.Subtotal, e.Currency))
	fmt.Fprintf(&summary, "**Tax:** %s\n\n", money(totals.Tax, e.Currency))
	fmt.Fprintf(&summary, "**Total Due:** %s", money(totals.Total, e.Currency))

	var notes strings.Builder
	fmt.Fprintf(&notes, "%s\n\n**Payment Terms:** %s", e.Notes, e.PaymentTerms)

	return []model.Section{
		{Heading: "Invoice Details", Body: details.String()},
		{Heading: "Line Items", Body: table.String()},
		{Heading: "Totals", Body: summary.String()},
		{Heading: "Notes", Body: notes.String()},
	}
}

func money(amount float64, currency string) string {
	switch currency {
	case "USD", "":
		return fmt.Sprintf("$%.2f", amount)
	case "EUR":
		return fmt.Sprintf("€%.2f", amount)
	case "GBP":
		return fmt.Sprintf("£%.2f", amount)
	default:
		return fmt.Sprintf("%.2f %s", amount, currency)
	}
}
