package files

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/betterleaks/regexgrep"
	"github.com/betterleaks/regexgrep/logging"
	"github.com/betterleaks/regexgrep/sources"
	"github.com/betterleaks/regexgrep/sources/file"
)

// Files is a source for yielding fragments from the files a glob resolves to
type Files struct {
	// Root is the directory the glob is resolved under
	Root    string
	Pattern string

	// Ignore holds glob patterns, relative to Root, for files to leave out
	Ignore []string

	SkipSymlinks bool
	SkipBinary   bool

	// MaxFileSize in bytes, 0 means no limit
	MaxFileSize int64
}

// ScanTargets returns the resolved file names that will be read, in order.
func (s *Files) ScanTargets() ([]string, error) {
	names, err := sources.Resolve(s.Root, s.Pattern)
	if err != nil {
		return nil, err
	}
	if len(s.Ignore) == 0 {
		return names, nil
	}

	kept := names[:0]
	for _, name := range names {
		if sources.ShouldSkipPath(s.Ignore, name) {
			logging.Debug().Str("path", name).Msg("skipping file: ignored")
			continue
		}
		kept = append(kept, name)
	}
	return kept, nil
}

// Fragments yields one fragment per resolved file, in resolution order. The
// first file that cannot be read stops the walk with regexgrep.ErrIO.
func (s *Files) Fragments(ctx context.Context, yield regexgrep.FragmentsFunc) error {
	names, err := s.ScanTargets()
	if err != nil {
		return err
	}

	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.fragments(ctx, name, yield); err != nil {
			return err
		}
	}
	return nil
}

func (s *Files) fragments(ctx context.Context, name string, yield regexgrep.FragmentsFunc) error {
	logger := logging.With().Str("path", name).Logger()

	path := filepath.FromSlash(name)
	if !filepath.IsAbs(path) {
		path = filepath.Join(s.Root, path)
	}

	target := file.File{
		Path:       name,
		Root:       s.Root,
		SkipBinary: s.SkipBinary,
	}

	info, err := os.Lstat(path)
	if err != nil {
		return fmt.Errorf("%w: %v", regexgrep.ErrIO, err)
	}

	if info.Mode().Type() == fs.ModeSymlink {
		if s.SkipSymlinks {
			logger.Debug().Msg("skipping symlink: symlinks disabled")
			return nil
		}
		realPath, err := filepath.EvalSymlinks(path)
		if err != nil {
			logger.Warn().Err(err).Msg("skipping symlink: could not evaluate")
			return nil
		}
		if info, err = os.Stat(realPath); err != nil {
			return fmt.Errorf("%w: %v", regexgrep.ErrIO, err)
		}
		if info.IsDir() {
			logger.Debug().Str("target", realPath).Msg("skipping symlink: target is directory")
			return nil
		}
		target.Symlink = path
		path = realPath
	}

	if s.MaxFileSize > 0 && info.Size() > s.MaxFileSize {
		logger.Warn().Msgf(
			"skipping file: too large max_size=%dMB, size=%dMB",
			s.MaxFileSize/1_000_000, info.Size()/1_000_000,
		)
		return nil
	}

	logger.Trace().Msg("reading file")
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: %v", regexgrep.ErrIO, err)
	}
	target.Content = f

	err = target.Fragments(ctx, yield)
	_ = f.Close()
	return err
}
