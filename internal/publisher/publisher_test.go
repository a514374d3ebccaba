package publisher

import (
	"bytes"
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pauljones0/thehub-deal-poster/internal/brand"
	"github.com/pauljones0/thehub-deal-poster/internal/caption"
	"github.com/pauljones0/thehub-deal-poster/internal/models"
	"github.com/pauljones0/thehub-deal-poster/internal/render"
	"github.com/pauljones0/thehub-deal-poster/internal/status"
)

// --- Mock implementations ---

type mockUploader struct {
	photoErr error
	storyErr error

	photoPath    string
	photoCaption string
	storyPath    string
	fileExisted  bool
}

func (m *mockUploader) UploadPhoto(_ context.Context, path, caption string) (*models.Media, error) {
	m.photoPath, m.photoCaption = path, caption
	_, err := os.Stat(path)
	m.fileExisted = err == nil
	if m.photoErr != nil {
		return nil, m.photoErr
	}
	return &models.Media{PK: "3141592", ID: "3141592_12345", Code: "CxYzAbC"}, nil
}

func (m *mockUploader) UploadStory(_ context.Context, path string) (*models.Media, error) {
	m.storyPath = path
	_, err := os.Stat(path)
	m.fileExisted = err == nil
	if m.storyErr != nil {
		return nil, m.storyErr
	}
	return &models.Media{PK: "2718", ID: "2718_12345", Code: "StOrY"}, nil
}

type failingRenderer struct{}

func (failingRenderer) Render(models.Deal, string) error { return errors.New("disk full") }

type fixture struct {
	pub          *Publisher
	uploader     *mockUploader
	sessionCalls int
	out          *bytes.Buffer
	tempDir      string
}

func newFixture(t *testing.T, r AssetRenderer, sessionErr error) *fixture {
	t.Helper()
	theme := brand.DefaultTheme()
	if r == nil {
		r = render.New(theme, "")
	}
	f := &fixture{
		uploader: &mockUploader{},
		out:      &bytes.Buffer{},
		tempDir:  t.TempDir(),
	}
	session := func(context.Context) (Uploader, error) {
		f.sessionCalls++
		if sessionErr != nil {
			return nil, sessionErr
		}
		return f.uploader, nil
	}
	f.pub = New(r, caption.New(theme), session, status.New(f.out), f.tempDir, theme.PostURLPrefix)
	return f
}

func (f *fixture) assertTempDirEmpty(t *testing.T) {
	t.Helper()
	entries, err := os.ReadDir(f.tempDir)
	require.NoError(t, err)
	assert.Empty(t, entries, "rendered asset should be removed")
}

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

func TestPostDeal_DryRunNeverTouchesSession(t *testing.T) {
	f := newFixture(t, nil, errors.New("should not be called"))

	result, err := f.pub.PostDeal(context.Background(), rolexDeal(), true)
	require.NoError(t, err)

	assert.Equal(t, models.PostResult{Success: true, DryRun: true}, result)
	assert.Equal(t, 0, f.sessionCalls)
	f.assertTempDirEmpty(t)

	out := f.out.String()
	assert.Contains(t, out, "✅ Created image: "+f.tempDir)
	assert.Contains(t, out, "📝 DRY RUN - Would post:")
	assert.Contains(t, out, "Image: "+f.tempDir)
	assert.Contains(t, out, "🔥 Rolex Submariner")
	assert.Contains(t, out, "💰 NOW: $8,500")
	assert.Contains(t, out, "📉 Was: $11,000")
	assert.Contains(t, out, "✅ Save 23%!")
	assert.Contains(t, out, "📍 From: Chrono24")
	assert.Contains(t, out, "#thehubdeals #watches #watchdeals #luxurywatches #watchcollector #timepiece")
}

func TestPostStory_DryRun(t *testing.T) {
	f := newFixture(t, nil, errors.New("should not be called"))

	result, err := f.pub.PostStory(context.Background(), rolexDeal(), true)
	require.NoError(t, err)

	assert.Equal(t, models.PostResult{Success: true, DryRun: true}, result)
	assert.Equal(t, 0, f.sessionCalls)
	assert.Contains(t, f.out.String(), "📝 DRY RUN - Would post story")
	assert.NotContains(t, f.out.String(), "Caption:")
	f.assertTempDirEmpty(t)
}

func TestPostDeal_Success(t *testing.T) {
	f := newFixture(t, nil, nil)

	result, err := f.pub.PostDeal(context.Background(), rolexDeal(), false)
	require.NoError(t, err)

	assert.Equal(t, models.PostResult{
		Success:   true,
		MediaID:   "3141592",
		MediaCode: "CxYzAbC",
		URL:       "https://instagram.com/p/CxYzAbC",
	}, result)
	assert.Equal(t, 1, f.sessionCalls)
	assert.True(t, f.uploader.fileExisted, "asset must exist during upload")
	assert.True(t, strings.HasSuffix(f.uploader.photoPath, ".jpg"))
	assert.Contains(t, f.uploader.photoPath, "rolex-submariner")
	assert.Equal(t, caption.New(brand.DefaultTheme()).Compose(rolexDeal()), f.uploader.photoCaption)
	assert.Contains(t, f.out.String(), "✅ Posted to Instagram: 3141592")
	f.assertTempDirEmpty(t)
}

func TestPostStory_Success(t *testing.T) {
	f := newFixture(t, nil, nil)

	result, err := f.pub.PostStory(context.Background(), rolexDeal(), false)
	require.NoError(t, err)

	assert.Equal(t, models.PostResult{Success: true, MediaID: "2718"}, result)
	assert.True(t, f.uploader.fileExisted)
	assert.Empty(t, f.uploader.photoCaption)
	assert.Contains(t, f.out.String(), "✅ Posted story: 2718")
	f.assertTempDirEmpty(t)
}

func TestPost_CleanupOnErrors(t *testing.T) {
	tests := []struct {
		name       string
		renderer   AssetRenderer
		sessionErr error
		photoErr   error
		storyErr   error
	}{
		{name: "Upload error", photoErr: errors.New("upload 500"), storyErr: errors.New("upload 500")},
		{name: "Session error", sessionErr: errors.New("login failed")},
		{name: "Render error", renderer: failingRenderer{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, tt.renderer, tt.sessionErr)
			f.uploader.photoErr = tt.photoErr
			f.uploader.storyErr = tt.storyErr

			result, err := f.pub.PostDeal(context.Background(), rolexDeal(), false)
			require.Error(t, err)
			assert.False(t, result.Success)
			assert.NotEmpty(t, result.Error)
			f.assertTempDirEmpty(t)

			result, err = f.pub.PostStory(context.Background(), rolexDeal(), false)
			require.Error(t, err)
			assert.False(t, result.Success)
			f.assertTempDirEmpty(t)
		})
	}
}

func TestPostDeal_RenderErrorSkipsSession(t *testing.T) {
	f := newFixture(t, failingRenderer{}, nil)

	_, err := f.pub.PostDeal(context.Background(), rolexDeal(), false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.Equal(t, 0, f.sessionCalls)
}

func TestPostDeal_EmptyTitleStillPosts(t *testing.T) {
	f := newFixture(t, nil, nil)

	_, err := f.pub.PostDeal(context.Background(), models.Deal{}, false)
	require.NoError(t, err)
	assert.Contains(t, f.uploader.photoPath, "hot-deal")
	assert.True(t, strings.HasPrefix(f.uploader.photoCaption, "🔥 Hot Deal!"))
}
