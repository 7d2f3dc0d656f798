package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"

	"github.com/metcalfc/prr/internal/config"
	"github.com/metcalfc/prr/internal/fetch"
	"github.com/metcalfc/prr/internal/reader"
	"github.com/metcalfc/prr/internal/state"
	"github.com/spf13/cobra"
)

// Version info (injected via ldflags)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

type options struct {
	configPath string
	bucket     string
	endpoint   string
	cacheDir   string
	logFile    string
	lines      int
	fresh      bool
}

// runFunc starts a front end on source once flags and config are resolved.
type runFunc func(cmd *cobra.Command, cfg config.Config, source string, fresh bool) error

func newRootCmd(short string, run runFunc) *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "prr [flags] [book]",
		Short: short,
		Long: `prr downloads a book from a storage bucket (or opens a local file),
splits it into fixed-height pages and lets you page through it.

The first page shows the cover, the second the title, author and release
details found in the book's front matter, and the rest the book's text.

A book argument that names a local file or an http(s) URL is used as is.
Anything else is an object name in the configured bucket.`,
		Example: `  prr                              Open the configured default object
  prr eBook/Mobidick.epub          Download and open an object from the bucket
  prr -l 30 ~/books/ulysses.epub   Open a local file with 30 lines per page
  prr --fresh notes.md             Start from the cover, ignoring the saved page`,
		Args:         cobra.MaximumNArgs(1),
		Version:      fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, opts)
			if err != nil {
				return err
			}
			source := cfg.Object
			if len(args) > 0 {
				source = args[0]
			}
			return run(cmd, cfg, source, opts.fresh)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.configPath, "config", "", "Config file (default: $XDG_CONFIG_HOME/prr/config.yaml)")
	f.StringVar(&opts.bucket, "bucket", "", "Storage bucket holding remote books")
	f.StringVar(&opts.endpoint, "endpoint", "", "Cloud Storage API endpoint override")
	f.StringVar(&opts.cacheDir, "cache-dir", "", "Directory downloaded books are saved to")
	f.StringVar(&opts.logFile, "log", "", "Write the load log to this file")
	f.IntVarP(&opts.lines, "lines", "l", reader.DefaultLinesPerPage, "Lines per page")
	f.BoolVar(&opts.fresh, "fresh", false, "Ignore saved reading position")
	cmd.SetVersionTemplate("prr {{.Version}}\n")

	return cmd
}

// resolveConfig loads the config file and applies flags given on the
// command line over it. A missing default config file is not an error.
func resolveConfig(cmd *cobra.Command, opts options) (config.Config, error) {
	path := opts.configPath
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil && (opts.configPath != "" || !errors.Is(err, fs.ErrNotExist)) {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("bucket") {
		cfg.Bucket = opts.bucket
	}
	if flags.Changed("endpoint") {
		cfg.Endpoint = opts.endpoint
	}
	if flags.Changed("cache-dir") {
		cfg.CacheDir = opts.cacheDir
	}
	if flags.Changed("log") {
		cfg.LogFile = opts.logFile
	}
	if flags.Changed("lines") {
		cfg.LinesPerPage = opts.lines
	}
	return cfg, nil
}

// book is an open session together with where its position is saved.
type book struct {
	*reader.Session
	store *state.Store
	// hash is the store key: content hash plus page height.
	hash string
}

// openBook fetches and parses source, then builds a session that starts at
// the saved page unless fresh is set.
func openBook(ctx context.Context, cfg config.Config, source string, fresh bool, logger *log.Logger) (*book, error) {
	storage := fetch.New(cfg.Endpoint, cfg.Bucket)
	storage.Log = logger
	loader := &reader.Loader{Fetcher: storage, CacheDir: cfg.CacheDir, Log: logger}

	parsed, err := loader.Open(ctx, source)
	if err != nil {
		return nil, err
	}

	b := &book{}
	start := 0
	if store, err := state.Open(state.DefaultDir()); err != nil {
		logger.Printf("reading positions unavailable: %v", err)
	} else if hash, err := state.ComputeHash(parsed.Source); err == nil {
		b.store, b.hash = store, state.Key(hash, linesPerPage(cfg))
		if !fresh {
			start = store.PageIndex(b.hash)
		}
	}

	b.Session = reader.Build(parsed, reader.BuildOptions{
		LinesPerPage: linesPerPage(cfg),
		InfoFields:   infoFields(cfg.InfoFields),
		Start:        start,
	}, logger)
	return b, nil
}

func linesPerPage(cfg config.Config) int {
	if cfg.LinesPerPage < 1 {
		return reader.DefaultLinesPerPage
	}
	return cfg.LinesPerPage
}

func infoFields(fields []config.InfoField) []reader.InfoField {
	out := make([]reader.InfoField, 0, len(fields))
	for _, f := range fields {
		out = append(out, reader.InfoField{Key: f.Key, Heading: f.Heading})
	}
	return out
}

// savePosition records the current page for the next session.
func (b *book) savePosition() error {
	if b == nil || b.store == nil || b.hash == "" {
		return nil
	}
	return b.store.SetPageIndex(b.hash, b.Index())
}
