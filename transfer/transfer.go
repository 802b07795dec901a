// Package transfer orchestrates a run: it pages through the WordPress post
// listing, renders each post to a standalone page, and records the outcome
// in a manifest.
package transfer

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/fwojciec/wptransfer"
)

// Transferer converts a WordPress category into static pages.
//
// Posts, Cleaner, Categorizer, Renderer, Pages, and Manifests are required.
// Media, Converter with Documents, Sitemaps, and Runs are optional.
type Transferer struct {
	Posts       wptransfer.PostService
	Media       ImageFetcher
	Cleaner     wptransfer.Cleaner
	Categorizer wptransfer.Categorizer
	Renderer    wptransfer.Renderer
	Pages       wptransfer.PageStore
	Manifests   wptransfer.ManifestWriter
	Converter   wptransfer.Converter
	Documents   wptransfer.DocumentWriter
	Sitemaps    wptransfer.SitemapWriter
	Runs        wptransfer.RunService
	Logger      *slog.Logger

	Site       wptransfer.Site
	SourceURL  string
	OutputDir  string
	CategoryID int
	PerPage    int
	MaxPages   int
}

// Result holds the outcome of a run.
type Result struct {
	Manifest   *wptransfer.Manifest
	Results    []wptransfer.RenderResult
	Bytes      int
	RunID      string
	StartedAt  time.Time
	FinishedAt time.Time
}

// Categories counts successful posts per category.
func (r *Result) Categories() map[wptransfer.Category]int {
	counts := make(map[wptransfer.Category]int)
	for _, res := range r.Results {
		if res.Success() {
			counts[res.Category]++
		}
	}
	return counts
}

// ProgressEvent reports progress during a run.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	Slug      string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting run progress.
type ProgressFunc func(event ProgressEvent)

// FetchAllPosts pages through the listing until a page comes back empty,
// a page fails, or MaxPages pages have been read. Only a failure on the
// first page is returned; later failures end pagination with the posts
// collected so far.
func (t *Transferer) FetchAllPosts(ctx context.Context) ([]*wptransfer.Post, error) {
	maxPages := t.MaxPages
	if maxPages <= 0 {
		maxPages = wptransfer.DefaultMaxPages
	}
	perPage := t.PerPage
	if perPage <= 0 {
		perPage = wptransfer.DefaultPerPage
	}
	logger := t.logger()

	var all []*wptransfer.Post
	for page := 1; page <= maxPages; page++ {
		posts, err := t.Posts.FindPosts(ctx, wptransfer.PostFilter{
			CategoryID: t.CategoryID,
			Page:       page,
			PerPage:    perPage,
		})
		if err != nil {
			if page == 1 {
				return nil, fmt.Errorf("fetch posts: %w", err)
			}
			logger.Warn("pagination stopped", "page", page, "err", wptransfer.ErrorMessage(err))
			break
		}
		if len(posts) == 0 {
			break
		}
		all = append(all, posts...)
		if page == maxPages {
			logger.Warn("page limit reached", "pages", maxPages, "posts", len(all))
		}
	}

	return all, nil
}

// Run fetches every post and processes them in collection order. A failed
// post is recorded in the manifest and does not stop the run. If ctx is
// canceled between posts, the manifest covers the posts processed so far
// and the context error is returned along with the result.
func (t *Transferer) Run(ctx context.Context, progress ProgressFunc) (*Result, error) {
	result := &Result{StartedAt: time.Now()}
	logger := t.logger()

	posts, err := t.FetchAllPosts(ctx)
	if err != nil {
		return nil, err
	}
	total := len(posts)

	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: total})
	}

	var runErr error
	for i, post := range posts {
		if err := ctx.Err(); err != nil {
			runErr = err
			break
		}

		res := t.ProcessPost(ctx, post, posts)
		result.Results = append(result.Results, res)

		if res.Err != nil {
			logger.Warn("post failed", "slug", res.Slug, "err", wptransfer.ErrorMessage(res.Err))
			if progress != nil {
				progress(ProgressEvent{
					Type:      ProgressFailed,
					Completed: i + 1,
					Total:     total,
					Slug:      res.Slug,
					Error:     res.Err,
				})
			}
			continue
		}

		if progress != nil {
			progress(ProgressEvent{
				Type:      ProgressCompleted,
				Completed: i + 1,
				Total:     total,
				Slug:      res.Slug,
			})
		}
	}

	result.Manifest = wptransfer.NewManifest(total, result.Results)
	if err := t.Manifests.WriteManifest(ctx, result.Manifest); err != nil {
		return nil, fmt.Errorf("write manifest: %w", err)
	}

	if t.Sitemaps != nil {
		if err := t.Sitemaps.WriteSitemap(ctx, t.sitemapEntries(result.Results)); err != nil {
			logger.Warn("sitemap failed", "err", err)
		}
	}

	result.FinishedAt = time.Now()

	if t.Runs != nil {
		run := &wptransfer.Run{
			SourceURL:  t.SourceURL,
			OutputDir:  t.OutputDir,
			Total:      total,
			StartedAt:  result.StartedAt,
			FinishedAt: result.FinishedAt,
			Results:    result.Results,
		}
		run.Tally()
		if err := t.Runs.CreateRun(ctx, run); err != nil {
			logger.Warn("run history failed", "err", wptransfer.ErrorMessage(err))
		} else {
			result.RunID = run.ID
		}
	}

	for _, res := range result.Results {
		if res.Success() {
			result.Bytes += res.Bytes
		}
	}

	if progress != nil {
		progress(ProgressEvent{
			Type:      ProgressFinished,
			Completed: len(result.Results),
			Total:     total,
		})
	}

	return result, runErr
}

// ProcessPost renders one post and writes its page. Any failure is stored
// in the returned result's Err.
func (t *Transferer) ProcessPost(ctx context.Context, post *wptransfer.Post, all []*wptransfer.Post) wptransfer.RenderResult {
	res := wptransfer.RenderResult{
		Slug:  post.Slug,
		Title: post.DecodedTitle(),
		Date:  post.Date,
	}

	if err := post.Validate(); err != nil {
		res.Err = err
		return res
	}

	if t.Media != nil {
		res.ImagePath = t.Media.FetchImage(ctx, post.FeaturedMedia, post.Slug)
	}

	content, err := t.Cleaner.Clean(post.Content)
	if err != nil {
		res.Err = fmt.Errorf("clean content: %w", err)
		return res
	}
	text, err := t.Cleaner.Text(content)
	if err != nil {
		res.Err = fmt.Errorf("extract text: %w", err)
		return res
	}

	description := text
	if utf8.RuneCountInString(text) < wptransfer.MinContentLength {
		fallback := wptransfer.FallbackContent(res.Title)
		content = "<p>" + html.EscapeString(fallback) + "</p>"
		description = fallback
	}

	res.Category = t.Categorizer.Categorize(res.Title, post.Content)

	page, err := t.Renderer.RenderPost(&wptransfer.RenderInput{
		Post:        post,
		Category:    res.Category,
		Content:     content,
		Description: wptransfer.Excerpt(description, wptransfer.ExcerptLength),
		ImagePath:   res.ImagePath,
		Posts:       all,
	})
	if err != nil {
		res.Err = fmt.Errorf("render: %w", err)
		return res
	}

	path, err := t.Pages.SavePage(ctx, post.Slug, page)
	if err != nil {
		res.Err = fmt.Errorf("save page: %w", err)
		return res
	}
	res.OutputPath = path
	res.ContentHash = ComputeHash(page)
	res.Bytes = len(page)

	if t.Converter != nil && t.Documents != nil {
		if err := t.exportMarkdown(ctx, &res, content); err != nil {
			t.logger().Warn("markdown export failed", "slug", post.Slug, "err", wptransfer.ErrorMessage(err))
		}
	}

	return res
}

func (t *Transferer) exportMarkdown(ctx context.Context, res *wptransfer.RenderResult, content string) error {
	md, err := t.Converter.Convert(content)
	if err != nil {
		return err
	}
	return t.Documents.CreateDocument(ctx, &wptransfer.Document{
		Slug:      res.Slug,
		Title:     res.Title,
		Date:      res.Date,
		Category:  res.Category,
		SourceURL: t.Site.PageURL(res.Slug),
		Content:   md,
	})
}

func (t *Transferer) sitemapEntries(results []wptransfer.RenderResult) []wptransfer.SitemapEntry {
	entries := make([]wptransfer.SitemapEntry, 0, len(results))
	for _, res := range results {
		if !res.Success() {
			continue
		}
		entry := wptransfer.SitemapEntry{Loc: t.Site.PageURL(res.Slug)}
		if d, ok := wptransfer.ParseDate(res.Date); ok {
			entry.LastMod = d.Format("2006-01-02")
		}
		entries = append(entries, entry)
	}
	return entries
}

func (t *Transferer) logger() *slog.Logger {
	if t.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return t.Logger
}
