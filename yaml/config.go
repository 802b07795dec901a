// Package yaml loads wptransfer configuration files.
package yaml

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fwojciec/wptransfer"
	"gopkg.in/yaml.v3"
)

type fileConfig struct {
	API             apiConfig      `yaml:"api"`
	OutputDir       string         `yaml:"output_dir"`
	Site            siteConfig     `yaml:"site"`
	Categories      []categoryRule `yaml:"categories"`
	DefaultCategory string         `yaml:"default_category"`
	Clean           cleanPolicy    `yaml:"clean"`
}

type apiConfig struct {
	BaseURL         string        `yaml:"base_url"`
	CategoryID      int           `yaml:"category_id"`
	PerPage         int           `yaml:"per_page"`
	MaxPages        int           `yaml:"max_pages"`
	UserAgent       string        `yaml:"user_agent"`
	Timeout         time.Duration `yaml:"timeout"`
	DownloadTimeout time.Duration `yaml:"download_timeout"`
	RateLimit       float64       `yaml:"rate_limit"`
}

type siteConfig struct {
	Name             string `yaml:"name"`
	Tagline          string `yaml:"tagline"`
	BaseURL          string `yaml:"base_url"`
	LogoURL          string `yaml:"logo_url"`
	DefaultImage     string `yaml:"default_image"`
	BrandColor       string `yaml:"brand_color"`
	BrandColorDark   string `yaml:"brand_color_dark"`
	DarkColor        string `yaml:"dark_color"`
	WarmColor        string `yaml:"warm_color"`
	Phone            string `yaml:"phone"`
	Email            string `yaml:"email"`
	Address          string `yaml:"address"`
	NewsletterAction string `yaml:"newsletter_action"`
	Year             int    `yaml:"year"`
}

type categoryRule struct {
	Category string   `yaml:"category"`
	Keywords []string `yaml:"keywords"`
}

type cleanPolicy struct {
	RemoveElements         []string `yaml:"remove_elements"`
	DropClasses            []string `yaml:"drop_classes"`
	WrapperClasses         []string `yaml:"wrapper_classes"`
	StripAttributes        []string `yaml:"strip_attributes"`
	StripAttributePrefixes []string `yaml:"strip_attribute_prefixes"`
	EmptyContainers        []string `yaml:"empty_containers"`
	UnwrapElements         []string `yaml:"unwrap_elements"`
}

// LoadConfig reads the YAML file at path over the built-in defaults. Keys
// absent from the file keep their default values; a list present in the
// file replaces the default list.
func LoadConfig(path string) (*wptransfer.Config, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, wptransfer.Errorf(wptransfer.ENOTFOUND, "config file %q not found", path)
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return DecodeConfig(f)
}

// DecodeConfig reads YAML configuration from r over the built-in defaults.
func DecodeConfig(r io.Reader) (*wptransfer.Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	fc := fromConfig(wptransfer.DefaultConfig())
	if len(bytes.TrimSpace(data)) > 0 {
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(fc); err != nil {
			return nil, wptransfer.Errorf(wptransfer.EINVALID, "invalid config: %v", err)
		}
	}

	cfg := fc.toConfig()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// EncodeConfig writes cfg as YAML to w.
func EncodeConfig(w io.Writer, cfg *wptransfer.Config) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(fromConfig(cfg)); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return enc.Close()
}

func fromConfig(cfg *wptransfer.Config) *fileConfig {
	fc := &fileConfig{
		API: apiConfig{
			BaseURL:         cfg.API.BaseURL,
			CategoryID:      cfg.API.CategoryID,
			PerPage:         cfg.API.PerPage,
			MaxPages:        cfg.API.MaxPages,
			UserAgent:       cfg.API.UserAgent,
			Timeout:         cfg.API.Timeout,
			DownloadTimeout: cfg.API.DownloadTimeout,
			RateLimit:       cfg.API.RateLimit,
		},
		OutputDir:       cfg.OutputDir,
		Site:            siteConfig(cfg.Site),
		DefaultCategory: string(cfg.Categories.Default),
		Clean:           cleanPolicy(cfg.Clean),
	}
	for _, r := range cfg.Categories.Rules {
		fc.Categories = append(fc.Categories, categoryRule{Category: string(r.Category), Keywords: r.Keywords})
	}
	return fc
}

func (fc *fileConfig) toConfig() *wptransfer.Config {
	cfg := &wptransfer.Config{
		API: wptransfer.APIConfig{
			BaseURL:         fc.API.BaseURL,
			CategoryID:      fc.API.CategoryID,
			PerPage:         fc.API.PerPage,
			MaxPages:        fc.API.MaxPages,
			UserAgent:       fc.API.UserAgent,
			Timeout:         fc.API.Timeout,
			DownloadTimeout: fc.API.DownloadTimeout,
			RateLimit:       fc.API.RateLimit,
		},
		OutputDir: fc.OutputDir,
		Site:      wptransfer.Site(fc.Site),
		Categories: wptransfer.CategoryTable{
			Default: wptransfer.Category(fc.DefaultCategory),
		},
		Clean: wptransfer.CleanPolicy(fc.Clean),
	}
	for _, r := range fc.Categories {
		cfg.Categories.Rules = append(cfg.Categories.Rules, wptransfer.CategoryRule{
			Category: wptransfer.Category(r.Category),
			Keywords: r.Keywords,
		})
	}
	return cfg
}
