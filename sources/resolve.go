package sources

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/betterleaks/regexgrep"
	"github.com/betterleaks/regexgrep/logging"
	"github.com/mattn/go-zglob"
)

// Resolve returns the files under root whose names match pattern, sorted
// lexicographically. Names are relative to root and slash separated unless
// pattern is itself absolute, in which case they are absolute.
//
// A missing root or a pattern that matches nothing yields an empty slice,
// not an error. Directories are never returned. Recursion through
// subdirectories only happens where the pattern asks for it with "**".
//
// The root is never part of the glob, so a root such as "app/[slug]" is
// taken literally.
func Resolve(root, pattern string) ([]string, error) {
	if pattern == "" {
		return nil, fmt.Errorf("%w: empty glob pattern", regexgrep.ErrInvalidArgument)
	}
	pattern = filepath.ToSlash(pattern)
	if _, err := zglob.Match(pattern, ""); err != nil {
		return nil, fmt.Errorf("%w: glob %q: %v", regexgrep.ErrInvalidArgument, pattern, err)
	}
	if root == "" {
		root = "."
	}

	if filepath.IsAbs(filepath.FromSlash(pattern)) {
		return resolveAbsolute(pattern)
	}

	info, err := os.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			logging.Debug().Str("root", root).Msg("root does not exist, nothing to resolve")
			return []string{}, nil
		}
		return nil, fmt.Errorf("%w: %v", regexgrep.ErrIO, err)
	}
	if !info.IsDir() {
		logging.Debug().Str("root", root).Msg("root is not a directory, nothing to resolve")
		return []string{}, nil
	}

	// without "**" nothing deeper than the pattern's own depth can match
	maxDepth := -1
	if !strings.Contains(pattern, "**") {
		maxDepth = strings.Count(pattern, "/") + 1
	}

	names := []string{}
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == root {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if maxDepth > 0 && strings.Count(rel, "/")+1 >= maxDepth {
				return filepath.SkipDir
			}
			return nil
		}
		ok, err := zglob.Match(pattern, rel)
		if err != nil {
			return err
		}
		if ok {
			names = append(names, rel)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: resolve %q under %s: %v", regexgrep.ErrIO, pattern, root, err)
	}
	sort.Strings(names)

	logging.Trace().
		Str("root", root).
		Str("pattern", pattern).
		Int("files", len(names)).
		Msg("resolved glob")
	return names, nil
}

// resolveAbsolute expands a pattern that carries its own root.
func resolveAbsolute(pattern string) ([]string, error) {
	paths, err := zglob.Glob(pattern)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("%w: glob %q: %v", regexgrep.ErrIO, pattern, err)
	}

	names := make([]string, 0, len(paths))
	for _, p := range paths {
		info, err := os.Lstat(p)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", regexgrep.ErrIO, err)
		}
		if info.IsDir() {
			continue
		}
		names = append(names, filepath.ToSlash(p))
	}
	sort.Strings(names)
	return names, nil
}
