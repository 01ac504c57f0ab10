// Package segment splits generated prose into a fixed number of ordered
// sections aligned to an extraction's section outline.
package segment

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/o42sam/rapiddocs-sub000/internal/model"
)

// Segmenter splits a block of generated prose into exactly n sections.
// Downstream rendering allocates layout slots per section up front, so the
// count guarantee holds regardless of how the generator formatted its output.
type Segmenter struct{}

// NewSegmenter creates a new content segmenter
func NewSegmenter() *Segmenter {
	return &Segmenter{}
}

// headingStartRe matches a line beginning a numbered section heading,
// e.g. "3. Findings"
var headingStartRe = regexp.MustCompile(`(?m)^\s*\d+\.\s+[A-Z]`)

// headingNumberRe strips the leading number from a derived heading
var headingNumberRe = regexp.MustCompile(`^\s*\d+\.\s*`)

// Segment returns exactly n sections for any n >= 1 and any text. Primary
// strategy: split at numbered-heading boundaries; fallback: divide the word
// stream into n contiguous, roughly equal chunks.
func (s *Segmenter) Segment(rawText string, outline []string, n int) []model.Section {
	n = model.ClampSectionCount(n)

	if sections, ok := s.splitByHeadings(rawText, outline, n); ok {
		return sections
	}
	return s.splitByWords(rawText, outline, n)
}

// splitByHeadings attempts the numbered-heading split. It reports false when
// the split yields fewer parts than requested.
func (s *Segmenter) splitByHeadings(rawText string, outline []string, n int) ([]model.Section, bool) {
	locs := headingStartRe.FindAllStringIndex(rawText, -1)
	if len(locs) < n {
		return nil, false
	}

	parts := make([]string, 0, len(locs))
	for i, loc := range locs {
		end := len(rawText)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		parts = append(parts, rawText[loc[0]:end])
	}

	sections := make([]model.Section, 0, n)
	for i, part := range parts[:n] {
		heading, body := splitHeadingLine(part)
		heading = headingNumberRe.ReplaceAllString(heading, "")
		if heading == "" && i < len(outline) {
			heading = outline[i]
		}
		if heading == "" {
			heading = fmt.Sprintf("Section %d", i+1)
		}
		sections = append(sections, model.Section{
			Heading: strings.TrimSpace(heading),
			Body:    strings.TrimSpace(body),
		})
	}
	return sections, true
}

// splitByWords is the degenerate strategy: n contiguous, roughly equal word
// chunks paired with outline headings
func (s *Segmenter) splitByWords(rawText string, outline []string, n int) []model.Section {
	words := strings.Fields(rawText)

	sections := make([]model.Section, 0, n)
	per := len(words) / n
	rem := len(words) % n

	start := 0
	for i := 0; i < n; i++ {
		size := per
		if i < rem {
			size++
		}
		body := strings.Join(words[start:start+size], " ")
		start += size

		heading := fmt.Sprintf("Section %d", i+1)
		if i < len(outline) && outline[i] != "" {
			heading = outline[i]
		}
		sections = append(sections, model.Section{Heading: heading, Body: body})
	}
	return sections
}

// splitHeadingLine separates the first line of a part from the rest
func splitHeadingLine(part string) (heading, body string) {
	part = strings.TrimSpace(part)
	if i := strings.IndexByte(part, '\n'); i >= 0 {
		return strings.TrimSpace(part[:i]), part[i+1:]
	}
	return part, ""
}
