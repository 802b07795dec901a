package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/wptransfer"
	"github.com/fwojciec/wptransfer/ahocorasick"
	"github.com/fwojciec/wptransfer/fs"
	"github.com/fwojciec/wptransfer/goquery"
	"github.com/fwojciec/wptransfer/htmltomarkdown"
	wphttp "github.com/fwojciec/wptransfer/http"
	wpslog "github.com/fwojciec/wptransfer/slog"
	"github.com/fwojciec/wptransfer/sqlite"
	"github.com/fwojciec/wptransfer/template"
	"github.com/fwojciec/wptransfer/transfer"
	"github.com/fwojciec/wptransfer/yaml"
	"github.com/joho/godotenv"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "warning: failed to load .env: %v\n", err)
	}

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Run history service, wired when a command needs it.
	RunService wptransfer.RunService

	// Input for commands that read stdin.
	Stdin io.Reader
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
		Stdin:  os.Stdin,
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdin:  m.Stdin,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("wptransfer"),
		kong.Description("Convert WordPress blog posts into standalone static pages."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'wptransfer --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd = strings.Fields(kongCtx.Command())[0]

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	cfg := wptransfer.DefaultConfig()
	if cli.Config != "" {
		if cfg, err = yaml.LoadConfig(cli.Config); err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
	}
	deps.Config = cfg
	deps.Cleaner = goquery.NewCleaner(cfg.Clean)
	deps.Categorizer = ahocorasick.NewCategorizer(cfg.Categories)

	if cli.DB != "" {
		m.DBPath = cli.DB
	}

	needsDB := cmd == "runs" || (cmd == "transfer" && !cli.Transfer.NoHistory)
	if needsDB {
		m.DB = sqlite.NewDB(m.DBPath)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set WPTRANSFER_DB to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
		}
		defer m.Close()

		m.RunService = sqlite.NewRunService(m.DB)
		deps.Runs = m.RunService
	}

	if cmd == "transfer" {
		cli.Transfer.apply(cfg)
		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(stderr, "error: %s\n", wptransfer.ErrorMessage(err))
			return err
		}
		deps.Transferer = newTransferer(cfg, &cli.Transfer, deps)
	}

	return kongCtx.Run(deps)
}

// newTransferer wires the HTTP client, storage, and content pipeline for a run.
func newTransferer(cfg *wptransfer.Config, c *TransferCmd, deps *Dependencies) *transfer.Transferer {
	logger := deps.Logger
	client := wphttp.NewClient(cfg.API.BaseURL,
		wphttp.WithTimeout(cfg.API.Timeout),
		wphttp.WithDownloadTimeout(cfg.API.DownloadTimeout),
		wphttp.WithUserAgent(cfg.API.UserAgent),
		wphttp.WithRateLimit(cfg.API.RateLimit),
	)

	out := cfg.OutputDir
	t := &transfer.Transferer{
		Posts: wpslog.NewLoggingPostService(client, logger),
		Media: &transfer.MediaFetcher{
			Media:      wpslog.NewLoggingMediaService(client, logger),
			Downloader: wpslog.NewLoggingDownloader(client, logger),
			Images:     fs.NewImageStore(filepath.Join(out, wptransfer.ImageDir)),
			Logger:     logger,
		},
		Cleaner:     deps.Cleaner,
		Categorizer: deps.Categorizer,
		Renderer:    template.NewRenderer(cfg.Site),
		Pages:       fs.NewPageStore(out),
		Manifests:   fs.NewManifestWriter(filepath.Join(out, ManifestFile)),
		Logger:      logger,
		Site:        cfg.Site,
		SourceURL:   cfg.API.BaseURL,
		OutputDir:   out,
		CategoryID:  cfg.API.CategoryID,
		PerPage:     cfg.API.PerPage,
		MaxPages:    cfg.API.MaxPages,
	}
	if c.Markdown {
		t.Converter = htmltomarkdown.NewConverter(htmltomarkdown.WithDomain(cfg.Site.BaseURL))
		t.Documents = fs.NewWriter(out)
	}
	if c.Sitemap {
		t.Sitemaps = fs.NewSitemapWriter(filepath.Join(out, SitemapFile))
	}
	if deps.Runs != nil {
		t.Runs = deps.Runs
	}
	return t
}

// Output file names under the output directory.
const (
	ManifestFile = "manifest.json"
	SitemapFile  = "sitemap.xml"
)

func defaultDBPath() string {
	if path := os.Getenv("WPTRANSFER_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "wptransfer.db"
	}
	dir := filepath.Join(home, ".wptransfer")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "wptransfer.db")
}
