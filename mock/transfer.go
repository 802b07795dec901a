package mock

import (
	"context"

	"github.com/fwojciec/wptransfer/transfer"
)

var _ transfer.ImageFetcher = (*ImageFetcher)(nil)

// ImageFetcher is a mock implementation of transfer.ImageFetcher.
type ImageFetcher struct {
	FetchImageFn func(ctx context.Context, mediaID int, slug string) string
}

func (f *ImageFetcher) FetchImage(ctx context.Context, mediaID int, slug string) string {
	return f.FetchImageFn(ctx, mediaID, slug)
}
