package file

import (
	"context"
	"fmt"
	"io"

	"github.com/betterleaks/regexgrep"
	"github.com/betterleaks/regexgrep/logging"
	"github.com/h2non/filetype"
)

// sniffLen is how much of the content filetype needs to recognise a format.
const sniffLen = 262

// File is a source that yields the content of a single file as one fragment.
type File struct {
	// Content is the file content
	Content io.Reader

	// Path is the name the file was resolved under
	Path string

	// Root is the directory the file was resolved from
	Root string

	// Symlink is the link path when Path was reached through a symlink
	Symlink string

	// SkipBinary drops files whose content is a recognised binary format
	SkipBinary bool
}

// Fragments reads the whole file and yields it. Read failures are reported
// as regexgrep.ErrIO.
func (s *File) Fragments(ctx context.Context, yield regexgrep.FragmentsFunc) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := io.ReadAll(s.Content)
	if err != nil {
		return fmt.Errorf("%w: read %s: %v", regexgrep.ErrIO, s.Path, err)
	}

	if s.SkipBinary && isBinary(data) {
		logging.Debug().Str("path", s.Path).Msg("skipping binary file")
		return nil
	}

	resource := &regexgrep.Resource{
		Name:   s.Path,
		Path:   s.Path,
		Source: "file",
	}
	resource.Set(regexgrep.MetaPath, s.Path)
	if s.Root != "" {
		resource.Set(regexgrep.MetaRoot, s.Root)
	}
	if s.Symlink != "" {
		resource.Set(regexgrep.MetaSymlinkFile, s.Symlink)
	}

	return yield(regexgrep.Fragment{
		Raw:      string(data),
		Path:     s.Path,
		Resource: resource,
	}, nil)
}

func isBinary(data []byte) bool {
	head := data
	if len(head) > sniffLen {
		head = head[:sniffLen]
	}
	kind, err := filetype.Match(head)
	return err == nil && kind != filetype.Unknown
}
