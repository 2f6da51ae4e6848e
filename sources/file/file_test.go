package file

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/betterleaks/regexgrep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("device gone") }

func collect(t *testing.T, f *File) ([]regexgrep.Fragment, error) {
	t.Helper()
	var fragments []regexgrep.Fragment
	err := f.Fragments(context.Background(), func(fragment regexgrep.Fragment, err error) error {
		fragments = append(fragments, fragment)
		return err
	})
	return fragments, err
}

func TestFragments(t *testing.T) {
	fragments, err := collect(t, &File{
		Content: strings.NewReader("#include <a>\n"),
		Path:    "b.hpp",
		Root:    "/src",
		Symlink: "/src/link.hpp",
	})
	require.NoError(t, err)
	require.Len(t, fragments, 1)

	f := fragments[0]
	assert.Equal(t, "#include <a>\n", f.Raw)
	assert.Equal(t, "b.hpp", f.Path)
	assert.Equal(t, "file", f.Resource.Source)
	assert.Equal(t, "b.hpp", f.Resource.Get(regexgrep.MetaPath))
	assert.Equal(t, "/src", f.Resource.Get(regexgrep.MetaRoot))
	assert.Equal(t, "/src/link.hpp", f.Resource.Get(regexgrep.MetaSymlinkFile))
}

func TestFragmentsReadError(t *testing.T) {
	fragments, err := collect(t, &File{Content: failingReader{}, Path: "a.cpp"})
	assert.ErrorIs(t, err, regexgrep.ErrIO)
	assert.ErrorContains(t, err, "device gone")
	assert.Empty(t, fragments)
}

func TestFragmentsSkipBinary(t *testing.T) {
	png := "\x89PNG\r\n\x1a\n#include <a>\n"

	fragments, err := collect(t, &File{Content: strings.NewReader(png), Path: "x.png", SkipBinary: true})
	require.NoError(t, err)
	assert.Empty(t, fragments)

	fragments, err = collect(t, &File{Content: strings.NewReader(png), Path: "x.png"})
	require.NoError(t, err)
	assert.Len(t, fragments, 1)

	fragments, err = collect(t, &File{Content: strings.NewReader("plain text"), Path: "x.txt", SkipBinary: true})
	require.NoError(t, err)
	assert.Len(t, fragments, 1)
}

func TestResourceGetNil(t *testing.T) {
	var r *regexgrep.Resource
	assert.Equal(t, "", r.Get(regexgrep.MetaPath))
}
