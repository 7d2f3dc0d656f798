package reader

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Fetcher copies a named remote object to a local file.
type Fetcher interface {
	Fetch(ctx context.Context, object, dst string) error
}

// Loader resolves a source to a local file, fetching it first when it is
// remote, and opens it.
type Loader struct {
	Fetcher  Fetcher
	CacheDir string
	Log      *log.Logger
}

func (l *Loader) logger() *log.Logger {
	if l.Log == nil {
		return log.New(io.Discard, "", 0)
	}
	return l.Log
}

// LocalPath returns where a remote source is stored once fetched.
func (l *Loader) LocalPath(source string) string {
	name := path.Base(strings.TrimRight(source, "/"))
	if i := strings.IndexAny(name, "?#"); i >= 0 {
		name = name[:i]
	}
	if name == "" || name == "." || name == "/" {
		name = "book.epub"
	}
	return filepath.Join(l.CacheDir, name)
}

// Open returns the parsed book for source. An existing local file is read
// in place; anything else is fetched into the cache dir first. Failures are
// logged and returned; nothing is retried.
func (l *Loader) Open(ctx context.Context, source string) (*Book, error) {
	logger := l.logger()
	if source == "" {
		return nil, ErrNoSource
	}

	local := source
	if info, err := os.Stat(source); err != nil || info.IsDir() {
		if l.Fetcher == nil {
			err := fmt.Errorf("%s is not a local file and no fetcher is configured", source)
			logger.Printf("download failed: %v", err)
			return nil, err
		}
		local = l.LocalPath(source)
		logger.Printf("saving %s to %s", source, local)
		if err := l.Fetcher.Fetch(ctx, source, local); err != nil {
			logger.Printf("download failed: %v", err)
			return nil, fmt.Errorf("failed to download %s: %w", source, err)
		}
		logger.Printf("download complete: %s", local)
	}

	book, err := OpenBook(local)
	if err != nil {
		logger.Printf("failed to read %s: %v", local, err)
		return nil, fmt.Errorf("failed to read %s: %w", local, err)
	}
	logger.Printf("opened %q by %s: %d documents", book.Title, book.Author, len(book.Documents))
	return book, nil
}
