// Package template renders post pages with html/template, which escapes
// every value for its context: HTML text, attributes, URLs, CSS, and the
// JSON-LD script block.
package template

import (
	"bytes"
	"embed"
	"html/template"
	"unicode"
	"unicode/utf8"

	"github.com/fwojciec/wptransfer"
)

//go:embed post.html.tmpl
var templates embed.FS

var postTemplate = template.Must(template.ParseFS(templates, "post.html.tmpl"))

// Ensure Renderer implements wptransfer.Renderer at compile time.
var _ wptransfer.Renderer = (*Renderer)(nil)

// Renderer renders post pages for a site.
type Renderer struct {
	site wptransfer.Site
	tmpl *template.Template
}

// NewRenderer creates a Renderer using the embedded post template.
func NewRenderer(site wptransfer.Site) *Renderer {
	return &Renderer{site: site, tmpl: postTemplate}
}

type relatedPost struct {
	Slug  string
	Title string
}

type pageData struct {
	Site         wptransfer.Site
	Slug         string
	Title        string
	Description  string
	Date         string
	DisplayDate  string
	Category     wptransfer.Category
	Image        string
	Content      template.HTML
	CanonicalURL string
	PhoneDigits  string
	Initial      string
	Related      []relatedPost
}

// RenderPost returns the complete HTML document for in.Post.
// in.Content is trusted, already-cleaned HTML and is inserted verbatim.
func (r *Renderer) RenderPost(in *wptransfer.RenderInput) (string, error) {
	if in == nil || in.Post == nil {
		return "", wptransfer.Errorf(wptransfer.EINVALID, "post required")
	}
	post := in.Post

	image := in.ImagePath
	if image == "" {
		image = r.site.DefaultImage
	}

	data := pageData{
		Site:         r.site,
		Slug:         post.Slug,
		Title:        post.DecodedTitle(),
		Description:  in.Description,
		Date:         post.Date,
		DisplayDate:  wptransfer.FormatDate(post.Date),
		Category:     in.Category,
		Image:        image,
		Content:      template.HTML(in.Content),
		CanonicalURL: r.site.PageURL(post.Slug),
		PhoneDigits:  r.site.PhoneDigits(),
		Initial:      initial(r.site.Name),
	}
	for _, p := range wptransfer.RelatedPosts(in.Posts, post.Slug, wptransfer.RelatedPostCount) {
		data.Related = append(data.Related, relatedPost{Slug: p.Slug, Title: p.DecodedTitle()})
	}

	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func initial(name string) string {
	r, _ := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError {
		return ""
	}
	return string(unicode.ToUpper(r))
}
