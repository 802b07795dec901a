package wptransfer

import "time"

// Configuration defaults.
const (
	DefaultAPIURL          = "https://www.truelegacyhomes.com/wp-json/wp/v2"
	DefaultCategoryID      = 5
	DefaultPerPage         = 100
	DefaultMaxPages        = 100
	DefaultOutputDir       = "blog"
	DefaultUserAgent       = "Mozilla/5.0 (compatible; wptransfer)"
	DefaultTimeout         = 10 * time.Second
	DefaultDownloadTimeout = 30 * time.Second
)

// APIConfig describes the WordPress source.
type APIConfig struct {
	BaseURL         string        `json:"baseUrl"`
	CategoryID      int           `json:"categoryId"`
	PerPage         int           `json:"perPage"`
	MaxPages        int           `json:"maxPages"`
	UserAgent       string        `json:"userAgent"`
	Timeout         time.Duration `json:"timeout"`
	DownloadTimeout time.Duration `json:"downloadTimeout"`

	// RateLimit is the maximum requests per second. Zero means unlimited.
	RateLimit float64 `json:"rateLimit"`
}

// Config is the complete configuration of a transfer.
type Config struct {
	API        APIConfig     `json:"api"`
	OutputDir  string        `json:"outputDir"`
	Site       Site          `json:"site"`
	Categories CategoryTable `json:"categories"`
	Clean      CleanPolicy   `json:"clean"`
}

// Validate returns an error if the configuration cannot drive a transfer.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return Errorf(EINVALID, "API base URL required")
	}
	if c.API.PerPage <= 0 {
		return Errorf(EINVALID, "per-page must be positive")
	}
	if c.OutputDir == "" {
		return Errorf(EINVALID, "output directory required")
	}
	return c.Categories.Validate()
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:         DefaultAPIURL,
			CategoryID:      DefaultCategoryID,
			PerPage:         DefaultPerPage,
			MaxPages:        DefaultMaxPages,
			UserAgent:       DefaultUserAgent,
			Timeout:         DefaultTimeout,
			DownloadTimeout: DefaultDownloadTimeout,
		},
		OutputDir:  DefaultOutputDir,
		Site:       DefaultSite(),
		Categories: DefaultCategoryTable(),
		Clean:      DefaultCleanPolicy(),
	}
}
