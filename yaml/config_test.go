package yaml_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fwojciec/wptransfer"
	"github.com/fwojciec/wptransfer/yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeConfig(t *testing.T) {
	t.Parallel()

	t.Run("empty input yields defaults", func(t *testing.T) {
		t.Parallel()

		cfg, err := yaml.DecodeConfig(strings.NewReader(""))

		require.NoError(t, err)
		assert.Equal(t, wptransfer.DefaultConfig().API, cfg.API)
		assert.Equal(t, wptransfer.DefaultCategoryTable(), cfg.Categories)
		assert.Equal(t, wptransfer.DefaultCleanPolicy(), cfg.Clean)
	})

	t.Run("overrides only the keys present", func(t *testing.T) {
		t.Parallel()

		cfg, err := yaml.DecodeConfig(strings.NewReader(`
api:
  base_url: https://blog.example.com/wp-json/wp/v2
  category_id: 9
  timeout: 5s
  rate_limit: 2.5
output_dir: public
site:
  name: Example Estates
  phone: "(555) 010-2000"
`))

		require.NoError(t, err)
		assert.Equal(t, "https://blog.example.com/wp-json/wp/v2", cfg.API.BaseURL)
		assert.Equal(t, 9, cfg.API.CategoryID)
		assert.Equal(t, 5*time.Second, cfg.API.Timeout)
		assert.InDelta(t, 2.5, cfg.API.RateLimit, 0.001)
		assert.Equal(t, wptransfer.DefaultPerPage, cfg.API.PerPage)
		assert.Equal(t, wptransfer.DefaultDownloadTimeout, cfg.API.DownloadTimeout)
		assert.Equal(t, "public", cfg.OutputDir)
		assert.Equal(t, "Example Estates", cfg.Site.Name)
		assert.Equal(t, "(555) 010-2000", cfg.Site.Phone)
		assert.Equal(t, wptransfer.DefaultSite().BrandColor, cfg.Site.BrandColor)
	})

	t.Run("category list replaces defaults in order", func(t *testing.T) {
		t.Parallel()

		cfg, err := yaml.DecodeConfig(strings.NewReader(`
categories:
  - category: Moving
    keywords: [move, relocation]
  - category: Art
    keywords: [painting]
default_category: General
`))

		require.NoError(t, err)
		assert.Equal(t, wptransfer.CategoryTable{
			Rules: []wptransfer.CategoryRule{
				{Category: "Moving", Keywords: []string{"move", "relocation"}},
				{Category: "Art", Keywords: []string{"painting"}},
			},
			Default: "General",
		}, cfg.Categories)
	})

	t.Run("clean policy lists replace defaults", func(t *testing.T) {
		t.Parallel()

		cfg, err := yaml.DecodeConfig(strings.NewReader(`
clean:
  wrapper_classes: [wp-block-group]
`))

		require.NoError(t, err)
		assert.Equal(t, []string{"wp-block-group"}, cfg.Clean.WrapperClasses)
		assert.Equal(t, wptransfer.DefaultCleanPolicy().RemoveElements, cfg.Clean.RemoveElements)
	})

	t.Run("rejects unknown keys", func(t *testing.T) {
		t.Parallel()

		_, err := yaml.DecodeConfig(strings.NewReader("outputdir: x\n"))

		require.Error(t, err)
		assert.Equal(t, wptransfer.EINVALID, wptransfer.ErrorCode(err))
	})

	t.Run("rejects invalid result", func(t *testing.T) {
		t.Parallel()

		_, err := yaml.DecodeConfig(strings.NewReader("api:\n  per_page: 0\n"))

		require.Error(t, err)
		assert.Equal(t, wptransfer.EINVALID, wptransfer.ErrorCode(err))
	})
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	t.Run("reads file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "wptransfer.yaml")
		require.NoError(t, os.WriteFile(path, []byte("output_dir: out\n"), 0644))

		cfg, err := yaml.LoadConfig(path)

		require.NoError(t, err)
		assert.Equal(t, "out", cfg.OutputDir)
	})

	t.Run("returns ENOTFOUND for missing file", func(t *testing.T) {
		t.Parallel()

		_, err := yaml.LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))

		require.Error(t, err)
		assert.Equal(t, wptransfer.ENOTFOUND, wptransfer.ErrorCode(err))
	})
}

func TestEncodeConfig(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, yaml.EncodeConfig(&buf, wptransfer.DefaultConfig()))

	out := buf.String()
	assert.Contains(t, out, "base_url: "+wptransfer.DefaultAPIURL)
	assert.Contains(t, out, "default_category: Estate Sales")

	cfg, err := yaml.DecodeConfig(&buf)
	require.NoError(t, err)
	assert.Equal(t, wptransfer.DefaultConfig().Categories, cfg.Categories)
}
