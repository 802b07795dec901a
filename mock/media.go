package mock

import (
	"context"

	"github.com/fwojciec/wptransfer"
)

var _ wptransfer.MediaService = (*MediaService)(nil)

// MediaService is a mock implementation of wptransfer.MediaService.
type MediaService struct {
	FindMediaURLFn func(ctx context.Context, id int) (string, error)
}

func (s *MediaService) FindMediaURL(ctx context.Context, id int) (string, error) {
	return s.FindMediaURLFn(ctx, id)
}

var _ wptransfer.Downloader = (*Downloader)(nil)

// Downloader is a mock implementation of wptransfer.Downloader.
type Downloader struct {
	DownloadFn func(ctx context.Context, url string) ([]byte, error)
}

func (d *Downloader) Download(ctx context.Context, url string) ([]byte, error) {
	return d.DownloadFn(ctx, url)
}

var _ wptransfer.ImageStore = (*ImageStore)(nil)

// ImageStore is a mock implementation of wptransfer.ImageStore.
type ImageStore struct {
	HasImageFn  func(ctx context.Context, name string) (bool, error)
	SaveImageFn func(ctx context.Context, name string, data []byte) error
}

func (s *ImageStore) HasImage(ctx context.Context, name string) (bool, error) {
	return s.HasImageFn(ctx, name)
}

func (s *ImageStore) SaveImage(ctx context.Context, name string, data []byte) error {
	return s.SaveImageFn(ctx, name, data)
}
