package wptransfer

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms cleaned post HTML into Markdown.
	Convert(html string) (string, error)
}
