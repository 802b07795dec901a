package mock

import (
	"context"

	"github.com/fwojciec/wptransfer"
)

var _ wptransfer.DocumentWriter = (*DocumentWriter)(nil)

// DocumentWriter is a mock implementation of wptransfer.DocumentWriter.
type DocumentWriter struct {
	CreateDocumentFn func(ctx context.Context, doc *wptransfer.Document) error
}

func (w *DocumentWriter) CreateDocument(ctx context.Context, doc *wptransfer.Document) error {
	return w.CreateDocumentFn(ctx, doc)
}

var _ wptransfer.ManifestWriter = (*ManifestWriter)(nil)

// ManifestWriter is a mock implementation of wptransfer.ManifestWriter.
type ManifestWriter struct {
	WriteManifestFn func(ctx context.Context, m *wptransfer.Manifest) error
}

func (w *ManifestWriter) WriteManifest(ctx context.Context, m *wptransfer.Manifest) error {
	return w.WriteManifestFn(ctx, m)
}

var _ wptransfer.SitemapWriter = (*SitemapWriter)(nil)

// SitemapWriter is a mock implementation of wptransfer.SitemapWriter.
type SitemapWriter struct {
	WriteSitemapFn func(ctx context.Context, entries []wptransfer.SitemapEntry) error
}

func (w *SitemapWriter) WriteSitemap(ctx context.Context, entries []wptransfer.SitemapEntry) error {
	return w.WriteSitemapFn(ctx, entries)
}

var _ wptransfer.PageStore = (*PageStore)(nil)

// PageStore is a mock implementation of wptransfer.PageStore.
type PageStore struct {
	SavePageFn func(ctx context.Context, slug, html string) (string, error)
}

func (s *PageStore) SavePage(ctx context.Context, slug, html string) (string, error) {
	return s.SavePageFn(ctx, slug, html)
}
