package wptransfer

import "context"

// Document is a Markdown copy of a rendered post.
type Document struct {
	Slug      string   `json:"slug"`
	Title     string   `json:"title"`
	Date      string   `json:"date"`
	Category  Category `json:"category"`
	SourceURL string   `json:"sourceUrl"`
	Content   string   `json:"content"`
}

// Validate returns an error if the document contains invalid fields.
func (d *Document) Validate() error {
	if err := ValidateSlug(d.Slug); err != nil {
		return err
	}
	if d.Title == "" {
		return Errorf(EINVALID, "document title required")
	}
	return nil
}

// DocumentWriter writes documents to storage.
type DocumentWriter interface {
	CreateDocument(ctx context.Context, doc *Document) error
}

// SitemapEntry is one <url> element of a sitemap.
type SitemapEntry struct {
	Loc     string
	LastMod string
}

// SitemapWriter writes an XML sitemap for the rendered pages.
type SitemapWriter interface {
	WriteSitemap(ctx context.Context, entries []SitemapEntry) error
}
