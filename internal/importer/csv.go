// Package importer reads supplemental data files and maps their rows
// onto the extraction result before defaults are filled in.
package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/o42sam/rapiddocs-sub000/internal/model"
)

// RecordKind says which part of the extraction a row belongs to.
type RecordKind string

const (
	KindStatistic RecordKind = "statistic"
	KindLineItem  RecordKind = "line_item"
)

// Record is one imported row, carrying exactly one of the two payloads.
type Record struct {
	Kind      RecordKind
	Statistic model.StatisticEntry
	LineItem  model.LineItemEntry
}

// DataImporter loads Records from an external file.
type DataImporter interface {
	ImportFile(path string) ([]Record, error)
}

// CSVImporter reads UTF-8 CSV files. The header row decides the record
// kind: a "description" column means line items, a "name" column means
// statistics. Header matching is case-insensitive.
type CSVImporter struct{}

func NewCSVImporter() *CSVImporter {
	return &CSVImporter{}
}

func (im *CSVImporter) ImportFile(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("import: opening %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("import: %s is empty", path)
	}
	if err != nil {
		return nil, fmt.Errorf("import: reading header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}

	var parse func(row []string) (Record, error)
	switch {
	case hasCol(cols, "description"):
		parse = func(row []string) (Record, error) { return parseLineItem(cols, row) }
	case hasCol(cols, "name"):
		parse = func(row []string) (Record, error) { return parseStatistic(cols, row) }
	default:
		return nil, fmt.Errorf("import: %s has neither a description nor a name column", path)
	}

	var records []Record
	line := 1
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("import: line %d: %w", line, err)
		}

		rec, err := parse(row)
		if err != nil {
			return nil, fmt.Errorf("import: line %d: %w", line, err)
		}
		records = append(records, rec)
	}

	return records, nil
}

func parseLineItem(cols map[string]int, row []string) (Record, error) {
	item := model.LineItemEntry{
		Description: cell(cols, row, "description"),
		Quantity:    1,
	}
	if item.Description == "" {
		return Record{}, fmt.Errorf("missing description")
	}

	if v := cell(cols, row, "quantity"); v != "" {
		q, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return Record{}, fmt.Errorf("parsing quantity %q: %w", v, err)
		}
		item.Quantity = q
	}
	if v := firstCell(cols, row, "unit_price", "price"); v != "" {
		p, err := strconv.ParseFloat(strings.TrimPrefix(v, "$"), 64)
		if err != nil {
			return Record{}, fmt.Errorf("parsing unit price %q: %w", v, err)
		}
		item.UnitPrice = p
	}
	if v := firstCell(cols, row, "tax_rate", "tax"); v != "" {
		t, err := strconv.ParseFloat(strings.TrimSuffix(v, "%"), 64)
		if err != nil {
			return Record{}, fmt.Errorf("parsing tax rate %q: %w", v, err)
		}
		item.TaxRate = model.NormalizeTaxRate(t)
	}

	return Record{Kind: KindLineItem, LineItem: item}, nil
}

func parseStatistic(cols map[string]int, row []string) (Record, error) {
	stat := model.StatisticEntry{
		Name:        cell(cols, row, "name"),
		Unit:        cell(cols, row, "unit"),
		Category:    cell(cols, row, "category"),
		Description: cell(cols, row, "description_text"),
		Viz:         model.NormalizeViz(cell(cols, row, "visualization")),
	}
	if stat.Name == "" {
		return Record{}, fmt.Errorf("missing name")
	}

	if v := cell(cols, row, "value"); v != "" {
		val, err := strconv.ParseFloat(strings.TrimSuffix(v, "%"), 64)
		if err != nil {
			return Record{}, fmt.Errorf("parsing value %q: %w", v, err)
		}
		stat.Value = val
	}

	return Record{Kind: KindStatistic, Statistic: stat}, nil
}

// Apply appends imported records to the extraction result. Call it
// after merging and before filling defaults so imported rows count when
// deciding whether the generic fallback lists are needed.
func Apply(result *model.ExtractionResult, records []Record) {
	for _, rec := range records {
		switch rec.Kind {
		case KindStatistic:
			result.Statistics = append(result.Statistics, rec.Statistic)
		case KindLineItem:
			result.LineItems = append(result.LineItems, rec.LineItem)
		}
	}
}

func hasCol(cols map[string]int, name string) bool {
	_, ok := cols[name]
	return ok
}

func cell(cols map[string]int, row []string, name string) string {
	i, ok := cols[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func firstCell(cols map[string]int, row []string, names ...string) string {
	for _, n := range names {
		if v := cell(cols, row, n); v != "" {
			return v
		}
	}
	return ""
}
