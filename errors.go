package regexgrep

import "errors"

// Error kinds. Concrete errors wrap one of these, test with errors.Is.
var (
	// ErrInvalidArgument covers malformed patterns, malformed globs and
	// out-of-range group indices.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrIO covers files that were selected by the resolver but could not
	// be read.
	ErrIO = errors.New("i/o error")
)
