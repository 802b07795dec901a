package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/wptransfer"
	"github.com/fwojciec/wptransfer/transfer"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx         context.Context
	Stdin       io.Reader
	Stdout      io.Writer
	Stderr      io.Writer
	Logger      *slog.Logger
	Config      *wptransfer.Config
	Cleaner     wptransfer.Cleaner
	Categorizer wptransfer.Categorizer
	Runs        wptransfer.RunService
	Transferer  *transfer.Transferer
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config  string `short:"c" env:"WPTRANSFER_CONFIG" type:"existingfile" help:"YAML configuration file"`
	DB      string `help:"Run history database (default ~/.wptransfer/wptransfer.db, or WPTRANSFER_DB)"`
	Verbose bool   `short:"v" help:"Enable debug logging"`

	Transfer   TransferCmd   `cmd:"" help:"Fetch posts and render them as static pages"`
	Clean      CleanCmd      `cmd:"" help:"Clean an HTML file and print the result"`
	Categorize CategorizeCmd `cmd:"" help:"Print the category for a title and optional content"`
	Runs       RunsCmd       `cmd:"" help:"List recorded runs"`
}

// TransferCmd is the "transfer" subcommand. Zero-valued flags leave the
// configured value in place.
type TransferCmd struct {
	API       string  `env:"WPTRANSFER_API" help:"WordPress REST API base URL"`
	Category  int     `help:"WordPress category ID"`
	PerPage   int     `help:"Posts per page"`
	MaxPages  int     `help:"Maximum number of pages to fetch"`
	Output    string  `short:"o" env:"WPTRANSFER_OUTPUT" help:"Output directory"`
	Markdown  bool    `help:"Also write a Markdown copy of each post"`
	Sitemap   bool    `help:"Write sitemap.xml for the rendered pages"`
	NoHistory bool    `help:"Do not record the run in the history database"`
	Rate      float64 `help:"Maximum requests per second (0 for unlimited)"`
}

// apply overrides cfg with the flags that were set.
func (c *TransferCmd) apply(cfg *wptransfer.Config) {
	if c.API != "" {
		cfg.API.BaseURL = c.API
	}
	if c.Category > 0 {
		cfg.API.CategoryID = c.Category
	}
	if c.PerPage > 0 {
		cfg.API.PerPage = c.PerPage
	}
	if c.MaxPages > 0 {
		cfg.API.MaxPages = c.MaxPages
	}
	if c.Output != "" {
		cfg.OutputDir = c.Output
	}
	if c.Rate > 0 {
		cfg.API.RateLimit = c.Rate
	}
}

// CleanCmd is the "clean" subcommand.
type CleanCmd struct {
	File string `arg:"" optional:"" type:"existingfile" help:"HTML file to clean (default stdin)"`
	Text bool   `help:"Print visible text instead of HTML"`
}

// CategorizeCmd is the "categorize" subcommand.
type CategorizeCmd struct {
	Title string `arg:"" help:"Post title"`
	File  string `arg:"" optional:"" type:"existingfile" help:"HTML content file"`
}

// RunsCmd is the "runs" subcommand.
type RunsCmd struct {
	Limit int    `short:"n" default:"20" help:"Maximum number of runs to list"`
	ID    string `arg:"" optional:"" help:"Show the posts of one run"`
}
