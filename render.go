package wptransfer

import (
	"context"
	"time"
)

// Excerpt and fallback defaults.
const (
	ExcerptLength    = 160
	RelatedPostCount = 3
	MinContentLength = 50
)

// Site holds the branding and contact details rendered on every page.
type Site struct {
	Name             string `json:"name"`
	Tagline          string `json:"tagline"`
	BaseURL          string `json:"baseUrl"`
	LogoURL          string `json:"logoUrl"`
	DefaultImage     string `json:"defaultImage"`
	BrandColor       string `json:"brandColor"`
	BrandColorDark   string `json:"brandColorDark"`
	DarkColor        string `json:"darkColor"`
	WarmColor        string `json:"warmColor"`
	Phone            string `json:"phone"`
	Email            string `json:"email"`
	Address          string `json:"address"`
	NewsletterAction string `json:"newsletterAction"`
	Year             int    `json:"year"`
}

// PhoneDigits returns the phone number with everything but digits removed,
// for use in tel: links.
func (s *Site) PhoneDigits() string {
	b := make([]byte, 0, len(s.Phone))
	for i := 0; i < len(s.Phone); i++ {
		if c := s.Phone[i]; c >= '0' && c <= '9' {
			b = append(b, c)
		}
	}
	return string(b)
}

// PageURL returns the canonical URL of the page for slug.
func (s *Site) PageURL(slug string) string {
	return s.BaseURL + "/" + slug + ".html"
}

// DefaultSite returns the built-in site settings.
func DefaultSite() Site {
	return Site{
		Name:             "True Legacy Homes",
		Tagline:          "Estate Sale Experts",
		BaseURL:          "https://iambarabbas.github.io/tlh-markdown-demo/blog",
		LogoURL:          "https://www.truelegacyhomes.com/images/tlhLOGO.png",
		DefaultImage:     "../images/TOP-495x400.png",
		BrandColor:       "#38b5ad",
		BrandColorDark:   "#2d9e96",
		DarkColor:        "#1e293b",
		WarmColor:        "#fef3e2",
		Phone:            "(619) 450-1702",
		Email:            "info@truelegacyhomes.com",
		Address:          "3635 Ruffin Rd, Suite 100, San Diego, CA 92123",
		NewsletterAction: "https://truelegacyhomes.us12.list-manage.com/subscribe/post?u=8fb80e36c3f769c67994988e71&id=eb811b621b",
		Year:             time.Now().Year(),
	}
}

// RenderInput is everything needed to render one post page.
type RenderInput struct {
	Post        *Post
	Category    Category
	Content     string // cleaned HTML
	Description string // plain-text excerpt
	ImagePath   string // empty when the post has no downloaded image
	Posts       []*Post
}

// Renderer produces a standalone HTML document for a post.
type Renderer interface {
	RenderPost(in *RenderInput) (string, error)
}

// PageStore persists rendered pages.
type PageStore interface {
	// SavePage writes the page for slug, replacing any previous version,
	// and returns the path written.
	SavePage(ctx context.Context, slug, html string) (string, error)
}

// FallbackContent returns the one-line description used for posts whose
// cleaned body has too little text.
func FallbackContent(title string) string {
	return "Estate sale listing at " + title + ". View photos and details."
}
