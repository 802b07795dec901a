package transfer_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/fwojciec/wptransfer"
	"github.com/fwojciec/wptransfer/mock"
	"github.com/fwojciec/wptransfer/transfer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const longBody = "<p>Join us this weekend for a full house of mid-century furniture and tools.</p>"

// pagedPosts returns a PostService serving pages in order, then empty pages.
func pagedPosts(pages ...[]*wptransfer.Post) *mock.PostService {
	return &mock.PostService{
		FindPostsFn: func(_ context.Context, filter wptransfer.PostFilter) ([]*wptransfer.Post, error) {
			if filter.Page > len(pages) {
				return []*wptransfer.Post{}, nil
			}
			return pages[filter.Page-1], nil
		},
	}
}

type fakes struct {
	pages     map[string]string
	manifests []*wptransfer.Manifest
}

func newTransferer(posts wptransfer.PostService) (*transfer.Transferer, *fakes) {
	f := &fakes{pages: make(map[string]string)}
	tr := &transfer.Transferer{
		Posts: posts,
		Cleaner: &mock.Cleaner{
			CleanFn: func(html string) (string, error) { return html, nil },
			TextFn: func(html string) (string, error) {
				s := strings.NewReplacer("<p>", "", "</p>", "").Replace(html)
				return strings.TrimSpace(s), nil
			},
		},
		Categorizer: &mock.Categorizer{
			CategorizeFn: func(_, _ string) wptransfer.Category { return wptransfer.CategoryEstateSales },
		},
		Renderer: &mock.Renderer{
			RenderPostFn: func(in *wptransfer.RenderInput) (string, error) {
				return "<html>" + in.Content + "</html>", nil
			},
		},
		Pages: &mock.PageStore{
			SavePageFn: func(_ context.Context, slug, html string) (string, error) {
				f.pages[slug] = html
				return "blog/" + slug + ".html", nil
			},
		},
		Manifests: &mock.ManifestWriter{
			WriteManifestFn: func(_ context.Context, m *wptransfer.Manifest) error {
				f.manifests = append(f.manifests, m)
				return nil
			},
		},
		Site:       wptransfer.Site{BaseURL: "https://example.com/blog"},
		SourceURL:  "https://example.com/wp-json/wp/v2",
		OutputDir:  "blog",
		CategoryID: 5,
		PerPage:    2,
	}
	return tr, f
}

func TestTransferer_FetchAllPosts(t *testing.T) {
	t.Parallel()

	t.Run("pages until an empty page", func(t *testing.T) {
		t.Parallel()

		var filters []wptransfer.PostFilter
		posts := &mock.PostService{
			FindPostsFn: func(_ context.Context, filter wptransfer.PostFilter) ([]*wptransfer.Post, error) {
				filters = append(filters, filter)
				switch filter.Page {
				case 1:
					return []*wptransfer.Post{{Slug: "a"}, {Slug: "b"}}, nil
				case 2:
					return []*wptransfer.Post{{Slug: "c"}}, nil
				}
				return []*wptransfer.Post{}, nil
			},
		}
		tr, _ := newTransferer(posts)

		got, err := tr.FetchAllPosts(context.Background())

		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, "c", got[2].Slug)
		require.Len(t, filters, 3)
		assert.Equal(t, wptransfer.PostFilter{CategoryID: 5, Page: 1, PerPage: 2}, filters[0])
	})

	t.Run("fails on first page error", func(t *testing.T) {
		t.Parallel()

		posts := &mock.PostService{
			FindPostsFn: func(_ context.Context, _ wptransfer.PostFilter) ([]*wptransfer.Post, error) {
				return nil, errors.New("connection refused")
			},
		}
		tr, _ := newTransferer(posts)

		_, err := tr.FetchAllPosts(context.Background())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "connection refused")
	})

	t.Run("keeps collected posts on later page error", func(t *testing.T) {
		t.Parallel()

		posts := &mock.PostService{
			FindPostsFn: func(_ context.Context, filter wptransfer.PostFilter) ([]*wptransfer.Post, error) {
				if filter.Page == 1 {
					return []*wptransfer.Post{{Slug: "a"}}, nil
				}
				return nil, errors.New("HTTP 500")
			},
		}
		tr, _ := newTransferer(posts)

		got, err := tr.FetchAllPosts(context.Background())

		require.NoError(t, err)
		assert.Len(t, got, 1)
	})

	t.Run("stops at max pages", func(t *testing.T) {
		t.Parallel()

		var calls int
		posts := &mock.PostService{
			FindPostsFn: func(_ context.Context, _ wptransfer.PostFilter) ([]*wptransfer.Post, error) {
				calls++
				return []*wptransfer.Post{{Slug: "same"}}, nil
			},
		}
		tr, _ := newTransferer(posts)
		tr.MaxPages = 3

		got, err := tr.FetchAllPosts(context.Background())

		require.NoError(t, err)
		assert.Len(t, got, 3)
		assert.Equal(t, 3, calls)
	})
}

func TestTransferer_Run(t *testing.T) {
	t.Parallel()

	t.Run("writes manifest with successes and failures", func(t *testing.T) {
		t.Parallel()

		tr, f := newTransferer(pagedPosts([]*wptransfer.Post{
			{Slug: "first-sale", Title: "First &amp; Best", Date: "2024-01-02T10:00:00", Content: longBody},
			{Slug: "../etc", Title: "Bad", Content: longBody},
			{Slug: "second-sale", Title: "Second", Date: "2024-02-03T10:00:00", Content: longBody},
		}))

		result, err := tr.Run(context.Background(), nil)

		require.NoError(t, err)
		require.Len(t, f.manifests, 1)
		m := f.manifests[0]
		assert.Same(t, m, result.Manifest)
		assert.Equal(t, 3, m.Total)
		require.Len(t, m.Successful, 2)
		assert.Equal(t, wptransfer.ManifestEntry{Slug: "first-sale", Title: "First & Best", Date: "2024-01-02T10:00:00"}, m.Successful[0])
		assert.Equal(t, "second-sale", m.Successful[1].Slug)
		require.Len(t, m.Failed, 1)
		assert.Equal(t, "../etc", m.Failed[0].Slug)
		assert.NotEmpty(t, m.Failed[0].Error)

		assert.Len(t, result.Results, 3)
		assert.Equal(t, map[wptransfer.Category]int{wptransfer.CategoryEstateSales: 2}, result.Categories())
		assert.False(t, result.FinishedAt.Before(result.StartedAt))
		assert.Positive(t, result.Bytes)
		assert.Len(t, f.pages, 2)
	})

	t.Run("continues after a post fails to clean", func(t *testing.T) {
		t.Parallel()

		tr, f := newTransferer(pagedPosts([]*wptransfer.Post{
			{Slug: "one", Title: "One", Content: longBody},
			{Slug: "two", Title: "Two", Content: "<broken>"},
			{Slug: "three", Title: "Three", Content: longBody},
		}))
		tr.Cleaner = &mock.Cleaner{
			CleanFn: func(html string) (string, error) {
				if html == "<broken>" {
					return "", errors.New("unexpected markup")
				}
				return html, nil
			},
			TextFn: func(html string) (string, error) { return html, nil },
		}

		result, err := tr.Run(context.Background(), nil)

		require.NoError(t, err)
		assert.Len(t, result.Manifest.Successful, 2)
		require.Len(t, result.Manifest.Failed, 1)
		assert.Equal(t, "two", result.Manifest.Failed[0].Slug)
		assert.Equal(t, "clean content: unexpected markup", result.Manifest.Failed[0].Error)
		assert.Len(t, f.pages, 2)
		assert.NotContains(t, f.pages, "two")
	})

	t.Run("writes empty manifest when there are no posts", func(t *testing.T) {
		t.Parallel()

		tr, f := newTransferer(pagedPosts())

		result, err := tr.Run(context.Background(), nil)

		require.NoError(t, err)
		require.Len(t, f.manifests, 1)
		assert.Equal(t, 0, result.Manifest.Total)
		assert.Empty(t, result.Manifest.Successful)
		assert.Empty(t, result.Manifest.Failed)
	})

	t.Run("returns error and writes nothing when first page fails", func(t *testing.T) {
		t.Parallel()

		tr, f := newTransferer(&mock.PostService{
			FindPostsFn: func(_ context.Context, _ wptransfer.PostFilter) ([]*wptransfer.Post, error) {
				return nil, errors.New("dns failure")
			},
		})

		_, err := tr.Run(context.Background(), nil)

		require.Error(t, err)
		assert.Empty(t, f.manifests)
	})

	t.Run("returns error when manifest cannot be written", func(t *testing.T) {
		t.Parallel()

		tr, _ := newTransferer(pagedPosts())
		tr.Manifests = &mock.ManifestWriter{
			WriteManifestFn: func(_ context.Context, _ *wptransfer.Manifest) error {
				return errors.New("read-only file system")
			},
		}

		_, err := tr.Run(context.Background(), nil)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "write manifest")
	})

	t.Run("reports progress events", func(t *testing.T) {
		t.Parallel()

		tr, _ := newTransferer(pagedPosts([]*wptransfer.Post{
			{Slug: "ok", Title: "OK", Content: longBody},
			{Slug: "", Title: "Missing"},
		}))

		var events []transfer.ProgressEvent
		_, err := tr.Run(context.Background(), func(e transfer.ProgressEvent) {
			events = append(events, e)
		})

		require.NoError(t, err)
		require.Len(t, events, 4)
		assert.Equal(t, transfer.ProgressStarted, events[0].Type)
		assert.Equal(t, 2, events[0].Total)
		assert.Equal(t, transfer.ProgressCompleted, events[1].Type)
		assert.Equal(t, "ok", events[1].Slug)
		assert.Equal(t, 1, events[1].Completed)
		assert.Equal(t, transfer.ProgressFailed, events[2].Type)
		assert.Error(t, events[2].Error)
		assert.Equal(t, transfer.ProgressFinished, events[3].Type)
		assert.Equal(t, 2, events[3].Completed)
	})

	t.Run("writes sitemap for successful posts", func(t *testing.T) {
		t.Parallel()

		tr, _ := newTransferer(pagedPosts([]*wptransfer.Post{
			{Slug: "dated", Title: "Dated", Date: "2024-05-06T09:00:00", Content: longBody},
			{Slug: "undated", Title: "Undated", Date: "soon", Content: longBody},
			{Slug: ".bad", Title: "Bad", Content: longBody},
		}))
		var entries []wptransfer.SitemapEntry
		tr.Sitemaps = &mock.SitemapWriter{
			WriteSitemapFn: func(_ context.Context, e []wptransfer.SitemapEntry) error {
				entries = e
				return nil
			},
		}

		_, err := tr.Run(context.Background(), nil)

		require.NoError(t, err)
		assert.Equal(t, []wptransfer.SitemapEntry{
			{Loc: "https://example.com/blog/dated.html", LastMod: "2024-05-06"},
			{Loc: "https://example.com/blog/undated.html"},
		}, entries)
	})

	t.Run("sitemap failure is not fatal", func(t *testing.T) {
		t.Parallel()

		tr, _ := newTransferer(pagedPosts([]*wptransfer.Post{{Slug: "a", Title: "A", Content: longBody}}))
		tr.Sitemaps = &mock.SitemapWriter{
			WriteSitemapFn: func(_ context.Context, _ []wptransfer.SitemapEntry) error {
				return errors.New("disk full")
			},
		}

		result, err := tr.Run(context.Background(), nil)

		require.NoError(t, err)
		assert.Len(t, result.Manifest.Successful, 1)
	})

	t.Run("records run history", func(t *testing.T) {
		t.Parallel()

		tr, _ := newTransferer(pagedPosts([]*wptransfer.Post{{Slug: "a", Title: "A", Content: longBody}}))
		var recorded *wptransfer.Run
		tr.Runs = &mock.RunService{
			CreateRunFn: func(_ context.Context, run *wptransfer.Run) error {
				run.ID = "run-1"
				recorded = run
				return nil
			},
		}

		result, err := tr.Run(context.Background(), nil)

		require.NoError(t, err)
		assert.Equal(t, "run-1", result.RunID)
		require.NotNil(t, recorded)
		assert.Equal(t, "https://example.com/wp-json/wp/v2", recorded.SourceURL)
		assert.Equal(t, "blog", recorded.OutputDir)
		assert.Equal(t, 1, recorded.Total)
		assert.Equal(t, 1, recorded.Successful)
	})

	t.Run("run history failure is not fatal", func(t *testing.T) {
		t.Parallel()

		tr, _ := newTransferer(pagedPosts([]*wptransfer.Post{{Slug: "a", Title: "A", Content: longBody}}))
		tr.Runs = &mock.RunService{
			CreateRunFn: func(_ context.Context, _ *wptransfer.Run) error {
				return errors.New("database is locked")
			},
		}

		result, err := tr.Run(context.Background(), nil)

		require.NoError(t, err)
		assert.Empty(t, result.RunID)
	})

	t.Run("stops between posts when canceled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		tr, f := newTransferer(pagedPosts([]*wptransfer.Post{
			{Slug: "a", Title: "A", Content: longBody},
			{Slug: "b", Title: "B", Content: longBody},
		}))
		tr.Pages = &mock.PageStore{
			SavePageFn: func(_ context.Context, slug, _ string) (string, error) {
				cancel()
				return slug + ".html", nil
			},
		}

		result, err := tr.Run(ctx, nil)

		require.ErrorIs(t, err, context.Canceled)
		require.NotNil(t, result)
		assert.Len(t, result.Results, 1)
		require.Len(t, f.manifests, 1)
		assert.Equal(t, 2, f.manifests[0].Total)
	})
}

func TestTransferer_ProcessPost(t *testing.T) {
	t.Parallel()

	t.Run("renders and saves page", func(t *testing.T) {
		t.Parallel()

		tr, f := newTransferer(pagedPosts())
		var input *wptransfer.RenderInput
		tr.Renderer = &mock.Renderer{
			RenderPostFn: func(in *wptransfer.RenderInput) (string, error) {
				input = in
				return "<html>page</html>", nil
			},
		}
		tr.Media = &mock.ImageFetcher{
			FetchImageFn: func(_ context.Context, mediaID int, slug string) string {
				assert.Equal(t, 11, mediaID)
				return "images/" + slug + ".jpg"
			},
		}
		post := &wptransfer.Post{Slug: "sale", Title: "Sale", Date: "2024-01-02", Content: longBody, FeaturedMedia: 11}
		all := []*wptransfer.Post{post}

		res := tr.ProcessPost(context.Background(), post, all)

		require.NoError(t, res.Err)
		assert.Equal(t, "blog/sale.html", res.OutputPath)
		assert.Equal(t, "images/sale.jpg", res.ImagePath)
		assert.Equal(t, transfer.ComputeHash("<html>page</html>"), res.ContentHash)
		assert.Equal(t, len("<html>page</html>"), res.Bytes)
		assert.Equal(t, "<html>page</html>", f.pages["sale"])

		require.NotNil(t, input)
		assert.Same(t, post, input.Post)
		assert.Equal(t, longBody, input.Content)
		assert.Equal(t, "images/sale.jpg", input.ImagePath)
		assert.Equal(t, all, input.Posts)
	})

	t.Run("substitutes fallback for short content", func(t *testing.T) {
		t.Parallel()

		tr, _ := newTransferer(pagedPosts())
		var input *wptransfer.RenderInput
		tr.Renderer = &mock.Renderer{
			RenderPostFn: func(in *wptransfer.RenderInput) (string, error) {
				input = in
				return "x", nil
			},
		}
		post := &wptransfer.Post{Slug: "gallery", Title: "Oak &amp; Pine", Content: "<p>Photos</p>"}

		res := tr.ProcessPost(context.Background(), post, nil)

		require.NoError(t, res.Err)
		require.NotNil(t, input)
		assert.Equal(t, "<p>Estate sale listing at Oak &amp; Pine. View photos and details.</p>", input.Content)
		assert.Equal(t, "Estate sale listing at Oak & Pine. View photos and details.", input.Description)
	})

	t.Run("describes the post from its content, not the excerpt field", func(t *testing.T) {
		t.Parallel()

		tr, _ := newTransferer(pagedPosts())
		var input *wptransfer.RenderInput
		tr.Renderer = &mock.Renderer{
			RenderPostFn: func(in *wptransfer.RenderInput) (string, error) {
				input = in
				return "x", nil
			},
		}
		body := strings.TrimSpace(strings.Repeat("vintage ", 40))
		post := &wptransfer.Post{
			Slug:    "s",
			Title:   "S",
			Content: "<p>" + body + "</p>",
			Excerpt: "<p>Short teaser [&hellip;]</p>",
		}

		res := tr.ProcessPost(context.Background(), post, nil)

		require.NoError(t, res.Err)
		assert.Equal(t, wptransfer.Excerpt(body, wptransfer.ExcerptLength), input.Description)
		assert.NotContains(t, input.Description, "teaser")
		assert.True(t, strings.HasSuffix(input.Description, "..."))
	})

	t.Run("categorizes on decoded title and raw content", func(t *testing.T) {
		t.Parallel()

		tr, _ := newTransferer(pagedPosts())
		var gotTitle, gotContent string
		tr.Categorizer = &mock.Categorizer{
			CategorizeFn: func(title, content string) wptransfer.Category {
				gotTitle, gotContent = title, content
				return wptransfer.CategorySeniorMoving
			},
		}
		post := &wptransfer.Post{Slug: "s", Title: "Tips &#8211; Moving", Content: longBody}

		res := tr.ProcessPost(context.Background(), post, nil)

		require.NoError(t, res.Err)
		assert.Equal(t, wptransfer.CategorySeniorMoving, res.Category)
		assert.Equal(t, "Tips – Moving", gotTitle)
		assert.Equal(t, longBody, gotContent)
	})

	t.Run("captures render error", func(t *testing.T) {
		t.Parallel()

		tr, f := newTransferer(pagedPosts())
		tr.Renderer = &mock.Renderer{
			RenderPostFn: func(_ *wptransfer.RenderInput) (string, error) {
				return "", errors.New("template failed")
			},
		}

		res := tr.ProcessPost(context.Background(), &wptransfer.Post{Slug: "s", Title: "S", Content: longBody}, nil)

		require.Error(t, res.Err)
		assert.Contains(t, res.Err.Error(), "template failed")
		assert.Empty(t, f.pages)
	})

	t.Run("captures save error", func(t *testing.T) {
		t.Parallel()

		tr, _ := newTransferer(pagedPosts())
		tr.Pages = &mock.PageStore{
			SavePageFn: func(_ context.Context, _, _ string) (string, error) {
				return "", errors.New("permission denied")
			},
		}

		res := tr.ProcessPost(context.Background(), &wptransfer.Post{Slug: "s", Title: "S", Content: longBody}, nil)

		require.Error(t, res.Err)
		assert.Contains(t, res.Err.Error(), "save page")
	})

	t.Run("exports markdown", func(t *testing.T) {
		t.Parallel()

		tr, _ := newTransferer(pagedPosts())
		var doc *wptransfer.Document
		tr.Converter = &mock.Converter{
			ConvertFn: func(html string) (string, error) { return "markdown", nil },
		}
		tr.Documents = &mock.DocumentWriter{
			CreateDocumentFn: func(_ context.Context, d *wptransfer.Document) error {
				doc = d
				return nil
			},
		}

		res := tr.ProcessPost(context.Background(), &wptransfer.Post{Slug: "s", Title: "S", Date: "2024-01-02", Content: longBody}, nil)

		require.NoError(t, res.Err)
		require.NotNil(t, doc)
		assert.Equal(t, "s", doc.Slug)
		assert.Equal(t, "markdown", doc.Content)
		assert.Equal(t, "https://example.com/blog/s.html", doc.SourceURL)
		assert.Equal(t, wptransfer.CategoryEstateSales, doc.Category)
	})

	t.Run("markdown failure does not fail the post", func(t *testing.T) {
		t.Parallel()

		tr, _ := newTransferer(pagedPosts())
		tr.Converter = &mock.Converter{
			ConvertFn: func(_ string) (string, error) { return "", errors.New("bad html") },
		}
		tr.Documents = &mock.DocumentWriter{}

		res := tr.ProcessPost(context.Background(), &wptransfer.Post{Slug: "s", Title: "S", Content: longBody}, nil)

		assert.NoError(t, res.Err)
		assert.True(t, res.Success())
	})
}
