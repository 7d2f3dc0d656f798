package reader

import "errors"

var (
	// ErrNoRootfile is returned for an EPUB container that lists no package document.
	ErrNoRootfile = errors.New("reader: no rootfiles found in epub")

	// ErrNoSource is returned when a book is requested without a file or object name.
	ErrNoSource = errors.New("reader: no source given")
)
