package wptransfer

import (
	"context"
	"html"
	"strings"
)

// MaxSlugLength bounds slugs used as file names.
const MaxSlugLength = 200

// Post represents a blog post as returned by the WordPress REST API.
// Title, Content, and Excerpt hold the API's rendered (HTML-encoded) values.
type Post struct {
	ID            int    `json:"id"`
	Title         string `json:"title"`
	Slug          string `json:"slug"`
	Date          string `json:"date"`
	Content       string `json:"content"`
	Excerpt       string `json:"excerpt"`
	FeaturedMedia int    `json:"featuredMedia"`
}

// Validate returns an error if the post cannot be written to disk.
func (p *Post) Validate() error {
	return ValidateSlug(p.Slug)
}

// DecodedTitle returns the title with HTML entities decoded.
func (p *Post) DecodedTitle() string {
	return html.UnescapeString(p.Title)
}

// ValidateSlug returns EINVALID unless slug is safe to use as a single path
// component. WordPress percent-encodes non-ASCII slugs, so '%' is allowed.
func ValidateSlug(slug string) error {
	if slug == "" {
		return Errorf(EINVALID, "post slug required")
	}
	if len(slug) > MaxSlugLength {
		return Errorf(EINVALID, "post slug longer than %d bytes", MaxSlugLength)
	}
	if strings.HasPrefix(slug, ".") || strings.Contains(slug, "..") {
		return Errorf(EINVALID, "post slug %q is not filesystem safe", slug)
	}
	for _, r := range slug {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '-', r == '_', r == '.', r == '%':
		default:
			return Errorf(EINVALID, "post slug %q is not filesystem safe", slug)
		}
	}
	return nil
}

// PostFilter selects one page of the post listing.
type PostFilter struct {
	CategoryID int `json:"categoryId"`
	Page       int `json:"page"`
	PerPage    int `json:"perPage"`
}

// PostService represents a source of blog posts.
type PostService interface {
	// FindPosts returns one page of posts. An empty slice means the
	// listing is exhausted.
	FindPosts(ctx context.Context, filter PostFilter) ([]*Post, error)
}

// RelatedPosts returns up to n posts from posts, in order, skipping the
// post identified by slug.
func RelatedPosts(posts []*Post, slug string, n int) []*Post {
	related := make([]*Post, 0, n)
	for _, p := range posts {
		if len(related) >= n {
			break
		}
		if p.Slug == slug {
			continue
		}
		related = append(related, p)
	}
	return related
}
