// Package render assembles the final document artifact from generated
// sections and media files.
package render

import "context"

// Document is everything the renderer needs to produce an artifact.
type Document struct {
	Title        string
	Sections     []RenderedSection
	ChartPaths   []string
	ImagePaths   []string
	OutPath      string
	LogoPath     string
	IncludeCover bool
	Metadata     map[string]string
}

// RenderedSection is one titled block of body text.
type RenderedSection struct {
	Heading string
	Body    string
}

// Renderer writes a Document to disk and returns the artifact path.
type Renderer interface {
	Render(ctx context.Context, doc Document) (string, error)
}
