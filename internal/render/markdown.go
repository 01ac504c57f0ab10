package render

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// MarkdownRenderer writes the document as a single markdown file with
// charts and illustrations embedded as relative image links.
type MarkdownRenderer struct {
	now func() time.Time
}

func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{now: time.Now}
}

func (r *MarkdownRenderer) Render(ctx context.Context, doc Document) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if doc.OutPath == "" {
		return "", fmt.Errorf("render: output path is required")
	}

	var b strings.Builder

	if doc.IncludeCover {
		r.writeCover(&b, doc)
	} else {
		fmt.Fprintf(&b, "# %s\n\n", doc.Title)
	}

	for i, section := range doc.Sections {
		fmt.Fprintf(&b, "## %s\n\n%s\n\n", section.Heading, strings.TrimSpace(section.Body))

		// Interleave media after sections so charts land near the
		// prose that motivates them.
		if i < len(doc.ChartPaths) {
			embedImage(&b, doc.OutPath, doc.ChartPaths[i], fmt.Sprintf("Chart %d", i+1))
		}
		if i < len(doc.ImagePaths) {
			embedImage(&b, doc.OutPath, doc.ImagePaths[i], fmt.Sprintf("Illustration %d", i+1))
		}
	}

	// Leftover media beyond the section count goes in an appendix.
	extraCharts := trailing(doc.ChartPaths, len(doc.Sections))
	extraImages := trailing(doc.ImagePaths, len(doc.Sections))
	if len(extraCharts) > 0 || len(extraImages) > 0 {
		b.WriteString("## Appendix\n\n")
		for i, p := range extraCharts {
			embedImage(&b, doc.OutPath, p, fmt.Sprintf("Chart %d", len(doc.Sections)+i+1))
		}
		for i, p := range extraImages {
			embedImage(&b, doc.OutPath, p, fmt.Sprintf("Illustration %d", len(doc.Sections)+i+1))
		}
	}

	r.writeMetadata(&b, doc.Metadata)

	if err := os.MkdirAll(filepath.Dir(doc.OutPath), 0o755); err != nil {
		return "", fmt.Errorf("render: creating output dir: %w", err)
	}
	if err := os.WriteFile(doc.OutPath, []byte(b.String()), 0o644); err != nil {
		return "", fmt.Errorf("render: writing %s: %w", doc.OutPath, err)
	}

	return doc.OutPath, nil
}

func (r *MarkdownRenderer) writeCover(b *strings.Builder, doc Document) {
	if doc.LogoPath != "" {
		embedImage(b, doc.OutPath, doc.LogoPath, "Logo")
	}
	fmt.Fprintf(b, "# %s\n\n", doc.Title)
	fmt.Fprintf(b, "*%s*\n\n---\n\n", r.now().Format("January 2, 2006"))
}

func (r *MarkdownRenderer) writeMetadata(b *strings.Builder, meta map[string]string) {
	if len(meta) == 0 {
		return
	}

	keys := make([]string, 0, len(meta))
	for k := range meta {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	b.WriteString("---\n\n")
	for _, k := range keys {
		fmt.Fprintf(b, "- **%s**: %s\n", k, meta[k])
	}
}

// embedImage writes a markdown image link relative to the artifact's
// directory so the output folder stays relocatable.
func embedImage(b *strings.Builder, outPath, imagePath, alt string) {
	rel, err := filepath.Rel(filepath.Dir(outPath), imagePath)
	if err != nil {
		rel = imagePath
	}
	fmt.Fprintf(b, "![%s](%s)\n\n", alt, filepath.ToSlash(rel))
}

func trailing(paths []string, from int) []string {
	if from >= len(paths) {
		return nil
	}
	return paths[from:]
}
