package render

import (
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/gobold"

	"github.com/pauljones0/thehub-deal-poster/internal/brand"
	"github.com/pauljones0/thehub-deal-poster/internal/models"
)

func rolexDeal() models.Deal {
	return models.Deal{
		Title:         "Rolex Submariner",
		Price:         "$8,500",
		OriginalPrice: "$11,000",
		Discount:      "23%",
		Category:      "watches",
		Source:        "Chrono24",
	}
}

func TestTruncateTitle(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{"Short", "Rolex Submariner", "Rolex Submariner"},
		{"40 chars unchanged", strings.Repeat("x", 40), strings.Repeat("x", 40)},
		{"41 chars truncated", strings.Repeat("y", 41), strings.Repeat("y", 37) + "..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TruncateTitle(tt.title)
			assert.Equal(t, tt.want, got)
			assert.LessOrEqual(t, len([]rune(got)), 40)
		})
	}
}

func TestDraw_CanvasAndBackground(t *testing.T) {
	theme := brand.DefaultTheme()
	r := NewWithFaces(theme, DefaultFaces())

	tests := []struct {
		category string
		want     color.NRGBA
	}{
		{"watches", brand.MustHex("#1a1a2e")},
		{"sneakers", brand.MustHex("#16213e")},
		{"cars", brand.MustHex("#0f3460")},
		{"default", brand.MustHex("#1a1a2e")},
		{"furniture", brand.MustHex("#1a1a2e")},
	}

	for _, tt := range tests {
		t.Run(tt.category, func(t *testing.T) {
			img := r.Draw(models.Deal{Title: "Thing", Category: tt.category})
			assert.Equal(t, CanvasSize, img.Bounds().Dx())
			assert.Equal(t, CanvasSize, img.Bounds().Dy())
			assert.Equal(t, tt.want, img.NRGBAAt(5, 5), "corner pixel should be the category background")
		})
	}
}

func TestDraw_PriceBoxOnlyWithPrice(t *testing.T) {
	theme := brand.DefaultTheme()
	r := NewWithFaces(theme, DefaultFaces())
	probeX, probeY := PriceBox.Min.X+20, PriceBox.Min.Y+20

	withPrice := r.Draw(rolexDeal())
	assert.Equal(t, brand.MustHex(theme.Accent), withPrice.NRGBAAt(probeX, probeY))

	noPrice := rolexDeal()
	noPrice.Price = ""
	without := r.Draw(noPrice)
	assert.Equal(t, theme.Background("watches"), without.NRGBAAt(probeX, probeY))
}

func TestDraw_EmptyTitleUsesDefault(t *testing.T) {
	r := NewWithFaces(brand.DefaultTheme(), DefaultFaces())

	blank := r.Draw(models.Deal{})
	explicit := r.Draw(models.Deal{Title: models.DefaultTitle})
	assert.Equal(t, explicit.Pix, blank.Pix)
}

func TestResolveFaces_Fallback(t *testing.T) {
	faces := ResolveFaces(filepath.Join(t.TempDir(), "missing.ttf"))
	assert.True(t, faces.Fallback)
	assert.NotNil(t, faces.Title)
	assert.Equal(t, faces.Title, faces.Small)

	faces = ResolveFaces("")
	assert.True(t, faces.Fallback)
}

func TestResolveFaces_GarbageFileFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.ttf")
	require.NoError(t, os.WriteFile(path, []byte("not a font"), 0o600))

	_, err := LoadFaces(path)
	assert.Error(t, err)
	assert.True(t, ResolveFaces(path).Fallback)
}

func TestLoadFaces_RealFont(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gobold.ttf")
	require.NoError(t, os.WriteFile(path, gobold.TTF, 0o600))

	faces, err := LoadFaces(path)
	require.NoError(t, err)
	assert.False(t, faces.Fallback)
	assert.Greater(t, faces.Price.Metrics().Height.Round(), faces.Small.Metrics().Height.Round())

	img := NewWithFaces(brand.DefaultTheme(), faces).Draw(rolexDeal())
	assert.Equal(t, CanvasSize, img.Bounds().Dx())
}

func TestRender_WritesJPEG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deal.jpg")
	r := New(brand.DefaultTheme(), "")

	require.NoError(t, r.Render(rolexDeal(), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Greater(t, len(data), 2)
	assert.Equal(t, []byte{0xFF, 0xD8}, data[:2], "expected JPEG SOI marker")

	img, err := imaging.Open(path)
	require.NoError(t, err)
	assert.Equal(t, CanvasSize, img.Bounds().Dx())
	assert.Equal(t, CanvasSize, img.Bounds().Dy())
}

func TestRender_UnwritablePath(t *testing.T) {
	r := New(brand.DefaultTheme(), "")
	err := r.Render(rolexDeal(), filepath.Join(t.TempDir(), "no-such-dir", "deal.jpg"))
	assert.Error(t, err)
}
