package wptransfer

import "context"

// RenderResult is the outcome of processing one post.
type RenderResult struct {
	Slug        string   `json:"slug"`
	Title       string   `json:"title"`
	Date        string   `json:"date"`
	Category    Category `json:"category"`
	ImagePath   string   `json:"imagePath"`
	OutputPath  string   `json:"outputPath"`
	ContentHash string   `json:"contentHash"`
	Bytes       int      `json:"bytes"`
	Err         error    `json:"-"`
}

// Success reports whether the post was rendered and written.
func (r *RenderResult) Success() bool {
	return r.Err == nil
}

// ManifestEntry describes a successfully rendered post.
type ManifestEntry struct {
	Slug  string `json:"slug"`
	Title string `json:"title"`
	Date  string `json:"date"`
}

// ManifestFailure describes a post that could not be rendered.
type ManifestFailure struct {
	Slug  string `json:"slug"`
	Error string `json:"error"`
}

// Manifest summarizes the outcome of a run.
type Manifest struct {
	Total      int               `json:"total"`
	Successful []ManifestEntry   `json:"successful"`
	Failed     []ManifestFailure `json:"failed"`
}

// NewManifest builds a manifest from per-post results. Total is the number
// of posts fetched, which equals len(results) for a completed run.
func NewManifest(total int, results []RenderResult) *Manifest {
	m := &Manifest{
		Total:      total,
		Successful: []ManifestEntry{},
		Failed:     []ManifestFailure{},
	}
	for _, r := range results {
		if r.Success() {
			m.Successful = append(m.Successful, ManifestEntry{Slug: r.Slug, Title: r.Title, Date: r.Date})
			continue
		}
		m.Failed = append(m.Failed, ManifestFailure{Slug: r.Slug, Error: r.Err.Error()})
	}
	return m
}

// ManifestWriter persists a run manifest.
type ManifestWriter interface {
	WriteManifest(ctx context.Context, m *Manifest) error
}
