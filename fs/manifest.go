package fs

import (
	"context"
	"encoding/json"

	"github.com/fwojciec/wptransfer"
)

// Ensure ManifestWriter implements wptransfer.ManifestWriter at compile time.
var _ wptransfer.ManifestWriter = (*ManifestWriter)(nil)

// ManifestWriter writes the run manifest as indented JSON.
type ManifestWriter struct {
	path string
}

// NewManifestWriter creates a ManifestWriter for the file at path.
func NewManifestWriter(path string) *ManifestWriter {
	return &ManifestWriter{path: path}
}

// WriteManifest writes m, replacing any previous manifest.
func (w *ManifestWriter) WriteManifest(ctx context.Context, m *wptransfer.Manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return writeFile(w.path, append(data, '\n'))
}
