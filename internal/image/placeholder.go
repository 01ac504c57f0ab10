package image

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
)

// PlaceholderGenerator writes a flat gray PNG. It stands in when no
// image backend is configured or when a real backend fails, so the
// rendered document always has something at every illustration slot.
type PlaceholderGenerator struct{}

func NewPlaceholderGenerator() *PlaceholderGenerator {
	return &PlaceholderGenerator{}
}

func (g *PlaceholderGenerator) Name() string {
	return "placeholder"
}

func (g *PlaceholderGenerator) GenerateToFile(ctx context.Context, prompt, path string, width, height int) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if width <= 0 {
		width = 640
	}
	if height <= 0 {
		height = 400
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	fill := color.RGBA{R: 0xe0, G: 0xe0, B: 0xe0, A: 0xff}
	border := color.RGBA{R: 0x9e, G: 0x9e, B: 0x9e, A: 0xff}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if x == 0 || y == 0 || x == width-1 || y == height-1 {
				img.Set(x, y, border)
			} else {
				img.Set(x, y, fill)
			}
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("placeholder: creating output dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("placeholder: creating file: %w", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return "", fmt.Errorf("placeholder: encoding png: %w", err)
	}

	return path, nil
}

func (g *PlaceholderGenerator) IsActive(ctx context.Context) bool {
	return true
}
