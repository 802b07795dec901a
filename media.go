package wptransfer

import (
	"context"
	"net/url"
	"path"
	"strings"
)

// ImageDir is the directory, relative to the output directory, that holds
// downloaded images.
const ImageDir = "images"

// DefaultImageExtension is used when a media URL has no recognized extension.
const DefaultImageExtension = "jpg"

var imageExtensions = map[string]bool{
	"jpg":  true,
	"jpeg": true,
	"png":  true,
	"webp": true,
	"gif":  true,
}

// MediaService resolves WordPress media items.
type MediaService interface {
	// FindMediaURL returns the source URL of a media item.
	// Returns ENOTFOUND if the item does not exist or has no source URL.
	FindMediaURL(ctx context.Context, id int) (string, error)
}

// Downloader retrieves binary content.
type Downloader interface {
	Download(ctx context.Context, url string) ([]byte, error)
}

// ImageStore persists downloaded images by file name.
type ImageStore interface {
	// HasImage reports whether an image with the given file name exists.
	HasImage(ctx context.Context, name string) (bool, error)

	// SaveImage writes data under the given file name. A failed write
	// leaves no file behind.
	SaveImage(ctx context.Context, name string, data []byte) error
}

// ImageExtension returns the lower-cased file extension of a media URL's
// path when it is a known image type, otherwise DefaultImageExtension.
func ImageExtension(rawURL string) string {
	p := rawURL
	if u, err := url.Parse(rawURL); err == nil {
		p = u.Path
	}
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(p), "."))
	if imageExtensions[ext] {
		return ext
	}
	return DefaultImageExtension
}

// ImagePath returns the page-relative path of an image file name.
func ImagePath(name string) string {
	return ImageDir + "/" + name
}
