package scan

import (
	"context"
	"testing"

	"github.com/betterleaks/regexgrep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// staticSource yields a fixed list of fragments, then fails if err is set.
type staticSource struct {
	fragments []regexgrep.Fragment
	err       error
}

func (s *staticSource) Fragments(ctx context.Context, yield regexgrep.FragmentsFunc) error {
	for _, f := range s.fragments {
		if err := yield(f, nil); err != nil {
			return err
		}
	}
	return s.err
}

func TestPipelineRunOrder(t *testing.T) {
	s, err := NewScanner(includePattern, "", []int{2}, nil)
	require.NoError(t, err)

	src := &staticSource{fragments: []regexgrep.Fragment{
		fragment("z.h", "#include <z1>\n#include <z2>\n"),
		fragment("a.h", "#include <a1>\n"),
	}}
	got, err := NewPipeline(src, s).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"z.h", "z1", "z.h", "z2", "a.h", "a1"}, regexgrep.Flatten(got))
}

func TestPipelineRunErrorDropsPartialResults(t *testing.T) {
	s, err := NewScanner(includePattern, "", nil, nil)
	require.NoError(t, err)

	src := &staticSource{
		fragments: []regexgrep.Fragment{fragment("a.h", "#include <a>\n")},
		err:       regexgrep.ErrIO,
	}
	got, err := NewPipeline(src, s).Run(context.Background())
	assert.ErrorIs(t, err, regexgrep.ErrIO)
	assert.Nil(t, got)
}
