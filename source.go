package regexgrep

import (
	"context"
	"io"
)

// FragmentsFunc is the callback a Source hands each fragment to. Returning an
// error stops the source.
type FragmentsFunc func(fragment Fragment, err error) error

// Source yields fragments in a deterministic order.
type Source interface {
	Fragments(ctx context.Context, yield FragmentsFunc) error
}

// Reporter writes matches in some output format.
type Reporter interface {
	Write(w io.WriteCloser, matches []Match) error
}
