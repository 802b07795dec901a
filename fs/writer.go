package fs

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/fwojciec/wptransfer"
	"gopkg.in/yaml.v3"
)

// frontmatter is the YAML header of an exported Markdown document.
type frontmatter struct {
	Title    string `yaml:"title"`
	Date     string `yaml:"date,omitempty"`
	Category string `yaml:"category,omitempty"`
	Source   string `yaml:"source,omitempty"`
}

// FormatDocument formats a document with YAML frontmatter.
func FormatDocument(doc *wptransfer.Document) (string, error) {
	header, err := yaml.Marshal(frontmatter{
		Title:    doc.Title,
		Date:     doc.Date,
		Category: string(doc.Category),
		Source:   doc.SourceURL,
	})
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(header)
	b.WriteString("---\n\n")
	b.WriteString(doc.Content)
	if !strings.HasSuffix(doc.Content, "\n") {
		b.WriteString("\n")
	}
	return b.String(), nil
}

// Ensure Writer implements wptransfer.DocumentWriter at compile time.
var _ wptransfer.DocumentWriter = (*Writer)(nil)

// Writer writes documents as <slug>.md files to a directory.
type Writer struct {
	baseDir string
}

// NewWriter creates a new Writer that writes to the given base directory.
func NewWriter(baseDir string) *Writer {
	return &Writer{baseDir: baseDir}
}

// CreateDocument writes a document to disk as a markdown file.
func (w *Writer) CreateDocument(ctx context.Context, doc *wptransfer.Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}

	content, err := FormatDocument(doc)
	if err != nil {
		return err
	}
	return writeFile(filepath.Join(w.baseDir, doc.Slug+".md"), []byte(content))
}
