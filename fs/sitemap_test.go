package fs_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/beevik/etree"
	"github.com/fwojciec/wptransfer"
	"github.com/fwojciec/wptransfer/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSitemapWriter_WriteSitemap(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "sitemap.xml")
	w := fs.NewSitemapWriter(path)

	err := w.WriteSitemap(context.Background(), []wptransfer.SitemapEntry{
		{Loc: "https://example.com/blog/a.html", LastMod: "2024-01-02"},
		{Loc: "https://example.com/blog/b.html?x=1&y=2"},
	})
	require.NoError(t, err)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromFile(path))

	root := doc.SelectElement("urlset")
	require.NotNil(t, root)
	assert.Equal(t, "http://www.sitemaps.org/schemas/sitemap/0.9", root.SelectAttrValue("xmlns", ""))

	urls := root.SelectElements("url")
	require.Len(t, urls, 2)
	assert.Equal(t, "https://example.com/blog/a.html", urls[0].SelectElement("loc").Text())
	assert.Equal(t, "2024-01-02", urls[0].SelectElement("lastmod").Text())
	assert.Equal(t, "https://example.com/blog/b.html?x=1&y=2", urls[1].SelectElement("loc").Text())
	assert.Nil(t, urls[1].SelectElement("lastmod"))
}
