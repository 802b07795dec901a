// Package http provides a WordPress REST API client implementing
// wptransfer.PostService, wptransfer.MediaService, and wptransfer.Downloader.
package http

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/fwojciec/wptransfer"
	"golang.org/x/time/rate"
)

// Timeouts for API metadata requests and binary downloads.
const (
	DefaultTimeout         = 10 * time.Second
	DefaultDownloadTimeout = 30 * time.Second
)

// MaxDownloadSize caps the size of a downloaded file.
const MaxDownloadSize = 50 << 20

// postFields limits the post listing to the fields the exporter reads.
const postFields = "id,title,slug,date,content,excerpt,featured_media"

// Compile-time interface verification.
var (
	_ wptransfer.PostService  = (*Client)(nil)
	_ wptransfer.MediaService = (*Client)(nil)
	_ wptransfer.Downloader   = (*Client)(nil)
)

// Client talks to a WordPress REST API (wp-json/wp/v2).
type Client struct {
	baseURL         string
	client          *http.Client
	downloadClient  *http.Client
	timeout         time.Duration
	downloadTimeout time.Duration
	userAgent       string
	limiter         *rate.Limiter
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the timeout for API requests.
// Defaults to DefaultTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithDownloadTimeout sets the timeout for binary downloads.
// Defaults to DefaultDownloadTimeout (30s) if not specified.
func WithDownloadTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.downloadTimeout = d
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithRateLimit paces requests to at most rps per second. Zero or less
// disables pacing.
func WithRateLimit(rps float64) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

// NewClient creates a Client for the API rooted at baseURL,
// e.g. https://example.com/wp-json/wp/v2.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:         strings.TrimRight(baseURL, "/"),
		timeout:         DefaultTimeout,
		downloadTimeout: DefaultDownloadTimeout,
		userAgent:       wptransfer.DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.client = &http.Client{Timeout: c.timeout}
	c.downloadClient = &http.Client{Timeout: c.downloadTimeout}

	return c
}

type rendered struct {
	Rendered string `json:"rendered"`
}

type wpPost struct {
	ID            int      `json:"id"`
	Date          string   `json:"date"`
	Slug          string   `json:"slug"`
	Title         rendered `json:"title"`
	Content       rendered `json:"content"`
	Excerpt       rendered `json:"excerpt"`
	FeaturedMedia int      `json:"featured_media"`
}

type wpMedia struct {
	SourceURL string `json:"source_url"`
}

type wpError struct {
	Code string `json:"code"`
}

// FindPosts returns one page of the post listing. A page past the end of
// the listing yields an empty slice.
func (c *Client) FindPosts(ctx context.Context, filter wptransfer.PostFilter) ([]*wptransfer.Post, error) {
	q := url.Values{}
	if filter.CategoryID > 0 {
		q.Set("categories", strconv.Itoa(filter.CategoryID))
	}
	if filter.PerPage > 0 {
		q.Set("per_page", strconv.Itoa(filter.PerPage))
	}
	if filter.Page > 0 {
		q.Set("page", strconv.Itoa(filter.Page))
	}
	q.Set("_fields", postFields)

	rawURL := c.baseURL + "/posts?" + q.Encode()
	resp, err := c.get(ctx, c.client, rawURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusBadRequest && isInvalidPage(resp.Body) {
		return []*wptransfer.Post{}, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, rawURL)
	}

	var wps []wpPost
	if err := json.NewDecoder(resp.Body).Decode(&wps); err != nil {
		return nil, fmt.Errorf("decoding posts: %w", err)
	}

	posts := make([]*wptransfer.Post, 0, len(wps))
	for _, wp := range wps {
		posts = append(posts, &wptransfer.Post{
			ID:            wp.ID,
			Title:         wp.Title.Rendered,
			Slug:          wp.Slug,
			Date:          wp.Date,
			Content:       wp.Content.Rendered,
			Excerpt:       wp.Excerpt.Rendered,
			FeaturedMedia: wp.FeaturedMedia,
		})
	}
	return posts, nil
}

// FindMediaURL returns the source URL of a media item.
func (c *Client) FindMediaURL(ctx context.Context, id int) (string, error) {
	if id <= 0 {
		return "", wptransfer.Errorf(wptransfer.EINVALID, "invalid media ID %d", id)
	}

	rawURL := c.baseURL + "/media/" + strconv.Itoa(id) + "?_fields=source_url"
	resp, err := c.get(ctx, c.client, rawURL)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", wptransfer.Errorf(wptransfer.ENOTFOUND, "media %d not found", id)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP %d for %s", resp.StatusCode, rawURL)
	}

	var m wpMedia
	if err := json.NewDecoder(resp.Body).Decode(&m); err != nil {
		return "", fmt.Errorf("decoding media %d: %w", id, err)
	}
	if m.SourceURL == "" {
		return "", wptransfer.Errorf(wptransfer.ENOTFOUND, "media %d has no source URL", id)
	}
	return m.SourceURL, nil
}

// Download retrieves the body at rawURL using the download timeout.
func (c *Client) Download(ctx context.Context, rawURL string) ([]byte, error) {
	resp, err := c.get(ctx, c.downloadClient, rawURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, rawURL)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxDownloadSize+1))
	if err != nil {
		return nil, err
	}
	if len(body) > MaxDownloadSize {
		return nil, wptransfer.Errorf(wptransfer.EINVALID, "download larger than %d bytes: %s", MaxDownloadSize, rawURL)
	}
	return body, nil
}

func (c *Client) get(ctx context.Context, client *http.Client, rawURL string) (*http.Response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	return client.Do(req)
}

// isInvalidPage reports whether a 400 response is WordPress signalling a
// page number past the end of the listing.
func isInvalidPage(body io.Reader) bool {
	var e wpError
	if err := json.NewDecoder(io.LimitReader(body, 1<<16)).Decode(&e); err != nil {
		return false
	}
	return e.Code == "rest_post_invalid_page_number"
}
