package brand

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedThemeMatchesDefaults(t *testing.T) {
	data, err := embeddedTheme.ReadFile("brand.yaml")
	require.NoError(t, err)

	theme, err := LoadThemeFromBytes(data)
	require.NoError(t, err)
	assert.Equal(t, DefaultTheme(), theme)
}

func TestTheme_Background(t *testing.T) {
	theme := DefaultTheme()

	assert.Equal(t, color.NRGBA{R: 0x16, G: 0x21, B: 0x3e, A: 0xff}, theme.Background("sneakers"))
	assert.Equal(t, color.NRGBA{R: 0x0f, G: 0x34, B: 0x60, A: 0xff}, theme.Background("cars"))
	assert.Equal(t, theme.Background("default"), theme.Background("handbags"))
}

func TestTheme_Hashtags(t *testing.T) {
	theme := DefaultTheme()

	watches := theme.Hashtags("watches")
	assert.Equal(t, []string{"#deals", "#discount", "#sale", "#savemoney", "#thehubdeals"}, watches[:5])
	assert.Contains(t, watches, "#watches")

	other := theme.Hashtags("electronics")
	assert.Len(t, other, 5)
	for _, tag := range []string{"#watches", "#sneakers", "#cars"} {
		assert.NotContains(t, other, tag)
	}
}

func TestParseHex(t *testing.T) {
	c, err := ParseHex("#e94560")
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{R: 0xe9, G: 0x45, B: 0x60, A: 0xff}, c)

	_, err = ParseHex("#fff")
	assert.Error(t, err)
	_, err = ParseHex("#zzzzzz")
	assert.Error(t, err)
}

func TestLoadThemeFromBytes_Invalid(t *testing.T) {
	_, err := LoadThemeFromBytes([]byte("categories:\n  watches:\n    background: \"#000000\"\n"))
	assert.Error(t, err, "a theme without a default category must be rejected")

	_, err = LoadThemeFromBytes([]byte(": not yaml"))
	assert.Error(t, err)
}

func TestLoad_OverrideAndFallback(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "brand.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`name: DEAL DEPOT
accent: "#e94560"
text: "#ffffff"
muted: "#888888"
highlight: "#00ff88"
subtle: "#aaaaaa"
categories:
  default:
    background: "#000000"
`), 0o644))

	got := Load(path)
	assert.Equal(t, "DEAL DEPOT", got.Name)

	missing := Load(filepath.Join(dir, "missing.yaml"))
	assert.Equal(t, DefaultTheme(), missing)
}
