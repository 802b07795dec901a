package mock

import "github.com/fwojciec/wptransfer"

var _ wptransfer.Cleaner = (*Cleaner)(nil)

// Cleaner is a mock implementation of wptransfer.Cleaner.
type Cleaner struct {
	CleanFn func(html string) (string, error)
	TextFn  func(html string) (string, error)
}

func (c *Cleaner) Clean(html string) (string, error) {
	return c.CleanFn(html)
}

func (c *Cleaner) Text(html string) (string, error) {
	return c.TextFn(html)
}

var _ wptransfer.Categorizer = (*Categorizer)(nil)

// Categorizer is a mock implementation of wptransfer.Categorizer.
type Categorizer struct {
	CategorizeFn func(title, content string) wptransfer.Category
}

func (c *Categorizer) Categorize(title, content string) wptransfer.Category {
	return c.CategorizeFn(title, content)
}

var _ wptransfer.Renderer = (*Renderer)(nil)

// Renderer is a mock implementation of wptransfer.Renderer.
type Renderer struct {
	RenderPostFn func(in *wptransfer.RenderInput) (string, error)
}

func (r *Renderer) RenderPost(in *wptransfer.RenderInput) (string, error) {
	return r.RenderPostFn(in)
}
