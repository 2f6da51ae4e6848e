package scan

import (
	"context"

	"github.com/betterleaks/regexgrep"
	"github.com/betterleaks/regexgrep/logging"
	"github.com/betterleaks/regexgrep/sources/files"
)

// Query describes one grep call. The zero value of every option keeps the
// plain behaviour: all resolved files are read, symlinks included.
type Query struct {
	Name string

	Dir     string
	Glob    string
	Pattern string

	// Groups selects capture groups by 1-based index, in output order.
	// Repeats are allowed and 0 selects the whole match. Empty selects
	// every group.
	Groups []int

	// Keywords, when set, skip files that contain none of them
	// (case-insensitive).
	Keywords []string

	// Engine is the regex engine name, empty for the default.
	Engine string

	Ignore       []string
	SkipSymlinks bool
	SkipBinary   bool
	MaxFileSize  int64
}

// Validate compiles the query's pattern and checks its group selection
// without touching the filesystem.
func (q Query) Validate() error {
	_, err := NewScanner(q.Pattern, q.Engine, q.Groups, q.Keywords)
	return err
}

// GrepMatches runs the query and returns its matches in file-then-line
// order. Argument problems are reported before any file is read.
func GrepMatches(ctx context.Context, q Query) ([]regexgrep.Match, error) {
	scanner, err := NewScanner(q.Pattern, q.Engine, q.Groups, q.Keywords)
	if err != nil {
		return nil, err
	}

	dir := q.Dir
	if dir == "" {
		dir = "."
	}
	src := &files.Files{
		Root:         dir,
		Pattern:      q.Glob,
		Ignore:       q.Ignore,
		SkipSymlinks: q.SkipSymlinks,
		SkipBinary:   q.SkipBinary,
		MaxFileSize:  q.MaxFileSize,
	}

	matches, err := NewPipeline(src, scanner).Run(ctx)
	if err != nil {
		return nil, err
	}

	logging.Debug().
		Str("dir", dir).
		Str("glob", q.Glob).
		Str("pattern", q.Pattern).
		Int("groups", scanner.GroupCount()).
		Int("matches", len(matches)).
		Msg("grep complete")
	return matches, nil
}

// Grep is the flat form of GrepMatches: every match contributes its file
// name followed by the selected groups.
func Grep(ctx context.Context, dir, glob, pattern string, groups ...int) ([]string, error) {
	matches, err := GrepMatches(ctx, Query{
		Dir:     dir,
		Glob:    glob,
		Pattern: pattern,
		Groups:  groups,
	})
	if err != nil {
		return nil, err
	}
	return regexgrep.Flatten(matches), nil
}
