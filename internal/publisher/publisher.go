package publisher

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/gosimple/slug"

	"github.com/pauljones0/thehub-deal-poster/internal/models"
	"github.com/pauljones0/thehub-deal-poster/internal/status"
	"github.com/pauljones0/thehub-deal-poster/internal/util"
)

const maxSlugRunes = 40

type Publisher struct {
	renderer      AssetRenderer
	composer      CaptionComposer
	session       SessionFunc
	out           *status.Printer
	tempDir       string
	postURLPrefix string
}

// New wires a Publisher. tempDir may be empty to use the OS default.
func New(r AssetRenderer, c CaptionComposer, session SessionFunc, out *status.Printer, tempDir, postURLPrefix string) *Publisher {
	if out == nil {
		out = status.Discard()
	}
	return &Publisher{
		renderer:      r,
		composer:      c,
		session:       session,
		out:           out,
		tempDir:       tempDir,
		postURLPrefix: postURLPrefix,
	}
}

// PostDeal renders the deal and publishes it to the feed with a caption.
func (p *Publisher) PostDeal(ctx context.Context, deal models.Deal, dryRun bool) (models.PostResult, error) {
	path, cleanup, err := p.renderAsset(deal)
	if err != nil {
		return models.PostResult{Success: false, Error: err.Error()}, err
	}
	defer cleanup()

	caption := p.composer.Compose(deal)

	if dryRun {
		p.out.Plain("")
		p.out.Plain("📝 DRY RUN - Would post:")
		p.out.Plain("Image: %s", path)
		p.out.Plain("Caption:\n%s", caption)
		return models.PostResult{Success: true, DryRun: true}, nil
	}

	uploader, err := p.session(ctx)
	if err != nil {
		return models.PostResult{Success: false, Error: err.Error()}, err
	}

	media, err := uploader.UploadPhoto(ctx, path, caption)
	if err != nil {
		err = fmt.Errorf("failed to post deal: %w", err)
		return models.PostResult{Success: false, Error: err.Error()}, err
	}

	p.out.OK("Posted to Instagram: %s", media.PK)
	slog.Info("Posted deal", "title", deal.DisplayTitle(), "mediaID", media.ID, "code", media.Code)
	return models.PostResult{
		Success:   true,
		MediaID:   media.PK,
		MediaCode: media.Code,
		URL:       p.postURLPrefix + media.Code,
	}, nil
}

// PostStory renders the deal and publishes it as a story. Stories carry no
// caption.
func (p *Publisher) PostStory(ctx context.Context, deal models.Deal, dryRun bool) (models.PostResult, error) {
	path, cleanup, err := p.renderAsset(deal)
	if err != nil {
		return models.PostResult{Success: false, Error: err.Error()}, err
	}
	defer cleanup()

	if dryRun {
		p.out.Plain("")
		p.out.Plain("📝 DRY RUN - Would post story")
		return models.PostResult{Success: true, DryRun: true}, nil
	}

	uploader, err := p.session(ctx)
	if err != nil {
		return models.PostResult{Success: false, Error: err.Error()}, err
	}

	media, err := uploader.UploadStory(ctx, path)
	if err != nil {
		err = fmt.Errorf("failed to post story: %w", err)
		return models.PostResult{Success: false, Error: err.Error()}, err
	}

	p.out.OK("Posted story: %s", media.PK)
	slog.Info("Posted story", "title", deal.DisplayTitle(), "mediaID", media.ID)
	return models.PostResult{Success: true, MediaID: media.PK}, nil
}

// renderAsset reserves a temp .jpg and renders into it. The returned cleanup
// removes the file and is safe to call on every path.
func (p *Publisher) renderAsset(deal models.Deal) (string, func(), error) {
	name := slug.Make(util.Truncate(deal.DisplayTitle(), maxSlugRunes))
	if name == "" {
		name = "deal"
	}

	f, err := os.CreateTemp(p.tempDir, "deal-"+name+"-*.jpg")
	if err != nil {
		return "", nil, fmt.Errorf("failed to create temp image: %w", err)
	}
	path := f.Name()
	cleanup := func() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			slog.Warn("Failed to remove temp image", "path", path, "error", err)
		}
	}
	if err := f.Close(); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("failed to create temp image: %w", err)
	}

	if err := p.renderer.Render(deal, path); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("failed to render deal image: %w", err)
	}
	p.out.OK("Created image: %s", path)
	return path, cleanup, nil
}
