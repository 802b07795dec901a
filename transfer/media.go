package transfer

import (
	"context"
	"log/slog"

	"github.com/fwojciec/wptransfer"
)

// ImageFetcher resolves and stores a post's featured image.
type ImageFetcher interface {
	// FetchImage returns the page-relative path of the stored image, or ""
	// when the post has no usable image.
	FetchImage(ctx context.Context, mediaID int, slug string) string
}

// Ensure MediaFetcher implements ImageFetcher at compile time.
var _ ImageFetcher = (*MediaFetcher)(nil)

// MediaFetcher downloads featured images into an ImageStore. Images that
// already exist are reused without touching the network.
type MediaFetcher struct {
	Media      wptransfer.MediaService
	Downloader wptransfer.Downloader
	Images     wptransfer.ImageStore
	Logger     *slog.Logger
}

// FetchImage never fails: every error is logged as a warning and reported
// as "no image".
func (f *MediaFetcher) FetchImage(ctx context.Context, mediaID int, slug string) string {
	if mediaID == 0 {
		return ""
	}
	logger := f.logger()

	url, err := f.Media.FindMediaURL(ctx, mediaID)
	if err != nil {
		logger.Warn("media lookup failed", "slug", slug, "media", mediaID, "err", wptransfer.ErrorMessage(err))
		return ""
	}

	name := slug + "." + wptransfer.ImageExtension(url)

	exists, err := f.Images.HasImage(ctx, name)
	if err != nil {
		logger.Warn("image check failed", "name", name, "err", err)
		return ""
	}
	if exists {
		logger.Debug("image exists", "name", name)
		return wptransfer.ImagePath(name)
	}

	data, err := f.Downloader.Download(ctx, url)
	if err != nil {
		logger.Warn("image download failed", "url", url, "err", err)
		return ""
	}
	if err := f.Images.SaveImage(ctx, name, data); err != nil {
		logger.Warn("image save failed", "name", name, "err", err)
		return ""
	}

	return wptransfer.ImagePath(name)
}

func (f *MediaFetcher) logger() *slog.Logger {
	if f.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return f.Logger
}
