package brand

import (
	"embed"
	"log/slog"
)

//go:embed brand.yaml
var embeddedTheme embed.FS

// Load resolves the brand theme in the following order:
// 1. External file at overridePath, when set
// 2. Embedded brand.yaml
// 3. Hardcoded defaults
func Load(overridePath string) Theme {
	if overridePath != "" {
		theme, err := LoadTheme(overridePath)
		if err == nil {
			slog.Info("Loaded brand theme from external file", "path", overridePath)
			return theme
		}
		slog.Warn("Failed to load external brand theme, trying embedded", "path", overridePath, "error", err)
	}

	data, err := embeddedTheme.ReadFile("brand.yaml")
	if err == nil {
		theme, parseErr := LoadThemeFromBytes(data)
		if parseErr == nil {
			slog.Debug("Loaded brand theme from embedded config.")
			return theme
		}
		slog.Warn("Embedded brand theme failed to parse. Using defaults.", "error", parseErr)
	}

	return DefaultTheme()
}
