package image

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"google.golang.org/genai"
)

const defaultImagenModel = "imagen-3.0-generate-002"

// ImagenGenerator renders illustrations through the Gemini API's Imagen
// models.
type ImagenGenerator struct {
	client *genai.Client
	model  string
}

// NewImagenGenerator creates a generator backed by the Gemini API.
func NewImagenGenerator(ctx context.Context, apiKey, model string) (*ImagenGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("imagen: API key is required")
	}
	if model == "" {
		model = defaultImagenModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		Backend: genai.BackendGeminiAPI,
		APIKey:  apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("imagen: creating client: %w", err)
	}

	return &ImagenGenerator{client: client, model: model}, nil
}

func (g *ImagenGenerator) Name() string {
	return "imagen"
}

// GenerateToFile asks the model for one image and writes the raw bytes
// to path. Width and height are advisory only; Imagen picks its own
// resolution per aspect ratio.
func (g *ImagenGenerator) GenerateToFile(ctx context.Context, prompt, path string, width, height int) (string, error) {
	resp, err := g.client.Models.GenerateImages(ctx, g.model, prompt, &genai.GenerateImagesConfig{
		NumberOfImages: 1,
	})
	if err != nil {
		return "", fmt.Errorf("imagen: generating image: %w", err)
	}
	if len(resp.GeneratedImages) == 0 || resp.GeneratedImages[0].Image == nil {
		return "", fmt.Errorf("imagen: empty response for prompt")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("imagen: creating output dir: %w", err)
	}
	if err := os.WriteFile(path, resp.GeneratedImages[0].Image.ImageBytes, 0o644); err != nil {
		return "", fmt.Errorf("imagen: writing image: %w", err)
	}

	return path, nil
}

// IsActive reports whether the backend is usable. The Gemini API has no
// cheap ping, so a constructed client with a key is considered active.
func (g *ImagenGenerator) IsActive(ctx context.Context) bool {
	return g.client != nil
}
