package ai

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"

	"github.com/disintegration/imaging"
	"google.golang.org/genai"
)

const (
	DefaultModel = "imagen-4.0-generate-001"
	JPEGQuality  = 95
)

// ErrNoImage is returned when the model answers without any usable image,
// typically because the prompt was filtered.
var ErrNoImage = errors.New("model returned no image")

// imageModel is the slice of *genai.Models the generator uses.
type imageModel interface {
	GenerateImages(ctx context.Context, model, prompt string, config *genai.GenerateImagesConfig) (*genai.GenerateImagesResponse, error)
}

type ImageGenerator struct {
	models imageModel
	model  string
}

// NewImageGenerator creates a Gemini API backed generator.
func NewImageGenerator(ctx context.Context, apiKey, model string) (*ImageGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required for image generation")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return newImageGenerator(client.Models, model), nil
}

func newImageGenerator(m imageModel, model string) *ImageGenerator {
	if model == "" {
		model = DefaultModel
	}
	return &ImageGenerator{models: m, model: model}
}

// Generate produces one square image for prompt and centre-crops it to
// exactly width x height.
func (g *ImageGenerator) Generate(ctx context.Context, prompt string, width, height int) (image.Image, error) {
	resp, err := g.models.GenerateImages(ctx, g.model, prompt, &genai.GenerateImagesConfig{
		NumberOfImages: 1,
		AspectRatio:    "1:1",
	})
	if err != nil {
		return nil, fmt.Errorf("image generation failed: %w", err)
	}

	for _, generated := range resp.GeneratedImages {
		if generated == nil || generated.Image == nil || len(generated.Image.ImageBytes) == 0 {
			if generated != nil && generated.RAIFilteredReason != "" {
				slog.Warn("Generated image filtered", "reason", generated.RAIFilteredReason)
			}
			continue
		}

		img, err := imaging.Decode(bytes.NewReader(generated.Image.ImageBytes))
		if err != nil {
			return nil, fmt.Errorf("failed to decode generated image: %w", err)
		}
		slog.Debug("Generated image", "model", g.model, "width", img.Bounds().Dx(), "height", img.Bounds().Dy())
		return imaging.Fill(img, width, height, imaging.Center, imaging.Lanczos), nil
	}
	return nil, ErrNoImage
}

// Save writes img to path; the format follows the file extension and JPEGs
// use quality 95.
func Save(img image.Image, path string) error {
	if err := imaging.Save(img, path, imaging.JPEGQuality(JPEGQuality)); err != nil {
		return fmt.Errorf("failed to save image %s: %w", path, err)
	}
	return nil
}
