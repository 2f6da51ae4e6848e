package report

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/betterleaks/regexgrep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var includeMatches = []regexgrep.Match{
	{Path: "a.cpp", Line: 2, Groups: []string{"include", "b.hpp"}},
	{Path: "b.hpp", Line: 2, Groups: []string{"include", "a"}},
}

func write(t *testing.T, reporter regexgrep.Reporter, matches []regexgrep.Match) string {
	t.Helper()
	tmpfile, err := os.Create(filepath.Join(t.TempDir(), "report"))
	require.NoError(t, err)
	defer tmpfile.Close()

	require.NoError(t, reporter.Write(tmpfile, matches))
	got, err := os.ReadFile(tmpfile.Name())
	require.NoError(t, err)
	return string(got)
}

func TestWrite(t *testing.T) {
	tests := []struct {
		format   string
		matches  []regexgrep.Match
		expected string
	}{
		{
			format:   "flat",
			matches:  includeMatches,
			expected: "a.cpp\ninclude\nb.hpp\nb.hpp\ninclude\na\n",
		},
		{
			format:   "flat",
			matches:  nil,
			expected: "",
		},
		{
			format:  "json",
			matches: includeMatches,
			expected: `[
 {
  "file": "a.cpp",
  "line": 2,
  "groups": [
   "include",
   "b.hpp"
  ]
 },
 {
  "file": "b.hpp",
  "line": 2,
  "groups": [
   "include",
   "a"
  ]
 }
]
`,
		},
		{
			format:   "json",
			matches:  nil,
			expected: "[]\n",
		},
		{
			format:   "csv",
			matches:  includeMatches,
			expected: "File,Line,Group1,Group2\na.cpp,2,include,b.hpp\nb.hpp,2,include,a\n",
		},
		{
			format:   "csv",
			matches:  []regexgrep.Match{{Path: "x, y.h", Line: 7, Groups: []string{""}}},
			expected: "File,Line,Group1\n\"x, y.h\",7,\n",
		},
		{
			format:   "csv",
			matches:  nil,
			expected: "",
		},
	}

	for _, test := range tests {
		t.Run(test.format, func(t *testing.T) {
			reporter, err := New(test.format)
			require.NoError(t, err)
			assert.Equal(t, test.expected, write(t, reporter, test.matches))
		})
	}
}

func TestNew(t *testing.T) {
	r, err := New("")
	require.NoError(t, err)
	assert.IsType(t, &FlatReporter{}, r)

	r, err = New("JSON")
	require.NoError(t, err)
	assert.IsType(t, &JsonReporter{}, r)

	_, err = New("sarif")
	assert.ErrorIs(t, err, regexgrep.ErrInvalidArgument)
	assert.ErrorContains(t, err, "expected flat, json, csv")
}
