// Package image produces illustration files for generated documents.
// A real backend (Imagen) can be swapped for the local placeholder
// renderer, and the batcher paces requests so provider quotas hold.
package image

import "context"

// Generator renders a single illustration for a prompt and writes it to
// path. Implementations return the path actually written.
type Generator interface {
	Name() string
	GenerateToFile(ctx context.Context, prompt, path string, width, height int) (string, error)
	IsActive(ctx context.Context) bool
}
