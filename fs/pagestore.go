package fs

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/wptransfer"
)

// Compile-time interface verification.
var (
	_ wptransfer.PageStore  = (*PageStore)(nil)
	_ wptransfer.ImageStore = (*ImageStore)(nil)
)

// PageStore writes rendered pages as <slug>.html under a directory.
type PageStore struct {
	dir string
}

// NewPageStore creates a PageStore writing to dir.
func NewPageStore(dir string) *PageStore {
	return &PageStore{dir: dir}
}

// SavePage writes the page, replacing any previous version.
func (s *PageStore) SavePage(ctx context.Context, slug, html string) (string, error) {
	if err := wptransfer.ValidateSlug(slug); err != nil {
		return "", err
	}

	path := filepath.Join(s.dir, slug+".html")
	if err := writeFile(path, []byte(html)); err != nil {
		return "", err
	}
	return path, nil
}

// ImageStore keeps downloaded images in a single directory.
type ImageStore struct {
	dir string
}

// NewImageStore creates an ImageStore writing to dir.
func NewImageStore(dir string) *ImageStore {
	return &ImageStore{dir: dir}
}

// HasImage reports whether an image with the given file name exists.
func (s *ImageStore) HasImage(ctx context.Context, name string) (bool, error) {
	if err := validateName(name); err != nil {
		return false, err
	}

	_, err := os.Stat(filepath.Join(s.dir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// SaveImage writes data under the given file name.
func (s *ImageStore) SaveImage(ctx context.Context, name string, data []byte) error {
	if err := validateName(name); err != nil {
		return err
	}
	return writeFile(filepath.Join(s.dir, name), data)
}

func validateName(name string) error {
	if name == "" || name != filepath.Base(name) || strings.ContainsAny(name, `/\`) || strings.HasPrefix(name, ".") {
		return wptransfer.Errorf(wptransfer.EINVALID, "invalid file name %q", name)
	}
	return nil
}
