package fs

import (
	"context"

	"github.com/beevik/etree"
	"github.com/fwojciec/wptransfer"
)

// Ensure SitemapWriter implements wptransfer.SitemapWriter at compile time.
var _ wptransfer.SitemapWriter = (*SitemapWriter)(nil)

const sitemapNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

// SitemapWriter writes a sitemaps.org urlset document.
type SitemapWriter struct {
	path string
}

// NewSitemapWriter creates a SitemapWriter for the file at path.
func NewSitemapWriter(path string) *SitemapWriter {
	return &SitemapWriter{path: path}
}

// WriteSitemap writes one <url> per entry, replacing any previous sitemap.
func (w *SitemapWriter) WriteSitemap(ctx context.Context, entries []wptransfer.SitemapEntry) error {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	urlset := doc.CreateElement("urlset")
	urlset.CreateAttr("xmlns", sitemapNamespace)
	for _, e := range entries {
		u := urlset.CreateElement("url")
		u.CreateElement("loc").SetText(e.Loc)
		if e.LastMod != "" {
			u.CreateElement("lastmod").SetText(e.LastMod)
		}
	}
	doc.Indent(2)

	data, err := doc.WriteToBytes()
	if err != nil {
		return err
	}
	return writeFile(w.path, data)
}
