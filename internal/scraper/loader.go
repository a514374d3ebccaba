package scraper

import (
	"embed"
	"log/slog"
	"os"
)

//go:embed selectors.json
var embeddedSelectors embed.FS

// LoadConfig tries to load selectors in the following order:
// 1. External file defined by SELECTORS_CONFIG_PATH, when set
// 2. Embedded selectors.json
// 3. Hardcoded defaults
func LoadConfig() SelectorConfig {
	if configPath := os.Getenv("SELECTORS_CONFIG_PATH"); configPath != "" {
		if fileSel, err := LoadSelectors(configPath); err == nil {
			slog.Debug("Loaded selectors from external file", "path", configPath)
			return fileSel
		} else {
			slog.Warn("Failed to load external selectors, trying embedded config", "path", configPath, "error", err)
		}
	}

	data, err := embeddedSelectors.ReadFile("selectors.json")
	if err == nil {
		sel, parseErr := LoadSelectorsFromBytes(data)
		if parseErr == nil {
			return sel
		}
		slog.Warn("Embedded selectors failed to parse. Using defaults.", "error", parseErr)
	}

	slog.Info("Using hardcoded default selectors")
	return DefaultSelectors()
}
