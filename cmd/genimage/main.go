package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/pauljones0/thehub-deal-poster/internal/ai"
	"github.com/pauljones0/thehub-deal-poster/internal/config"
	"github.com/pauljones0/thehub-deal-poster/internal/logging"
	"github.com/pauljones0/thehub-deal-poster/internal/render"
	"github.com/pauljones0/thehub-deal-poster/internal/status"
)

const promptPreviewRunes = 100

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

func run(args []string, stdout io.Writer) int {
	out := status.New(stdout)
	if len(args) < 2 {
		out.Plain("Usage: genimage <prompt> <output_path>")
		return 1
	}
	prompt, outputPath := args[0], args[1]

	cfg, err := config.Load()
	if err != nil {
		out.Fail("Error: %v", err)
		return 1
	}
	_, logCloser, err := logging.Setup(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat, File: cfg.LogFile})
	if err != nil {
		out.Fail("Error: %v", err)
		return 1
	}
	defer logCloser.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	out.Plain("🎨 Generating image...")
	out.Detail("Prompt: %s...", previewPrompt(prompt))

	gen, err := ai.NewImageGenerator(ctx, cfg.GeminiAPIKey, cfg.ImageModel)
	if err != nil {
		out.Fail("Error: %v", err)
		return 1
	}
	if err := generate(ctx, gen, prompt, outputPath); err != nil {
		slog.Error("Image generation failed", "model", cfg.ImageModel, "error", err)
		out.Fail("Error: %v", err)
		return 1
	}

	out.OK("Image generated: %s", outputPath)
	return 0
}

func generate(ctx context.Context, gen *ai.ImageGenerator, prompt, outputPath string) error {
	img, err := gen.Generate(ctx, prompt, render.CanvasSize, render.CanvasSize)
	if err != nil {
		return err
	}
	return ai.Save(img, outputPath)
}

// previewPrompt returns the first 100 characters of the prompt.
func previewPrompt(prompt string) string {
	runes := []rune(prompt)
	if len(runes) > promptPreviewRunes {
		return string(runes[:promptPreviewRunes])
	}
	return prompt
}
