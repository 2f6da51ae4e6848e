package scan

import (
	"context"
	"fmt"
	"strings"

	ahocorasick "github.com/BobuSumisu/aho-corasick"
	"github.com/betterleaks/regexgrep"
	"github.com/betterleaks/regexgrep/logging"
	"github.com/betterleaks/regexgrep/regexp"
)

type Scanner struct {
	Regex *regexp.Regexp

	// Groups maps output position to capture group index. Index 0 is the
	// whole match. Empty means every group in declaration order.
	Groups []int

	// prefilter is a ahocorasick trie used to skip fragments that contain
	// none of the keywords. nil when no keywords were given.
	prefilter *ahocorasick.Trie
}

// NewScanner compiles pattern and checks the group selection against it.
// Problems with either are reported as regexgrep.ErrInvalidArgument.
func NewScanner(pattern, engine string, groups []int, keywords []string) (*Scanner, error) {
	if pattern == "" {
		return nil, fmt.Errorf("%w: empty pattern", regexgrep.ErrInvalidArgument)
	}
	re, err := regexp.Compile(engine, pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: pattern %q: %v", regexgrep.ErrInvalidArgument, pattern, err)
	}

	n := re.NumSubexp()
	for _, g := range groups {
		if g < 0 || g > n {
			return nil, fmt.Errorf("%w: group index %d out of range, pattern %q has %d groups",
				regexgrep.ErrInvalidArgument, g, pattern, n)
		}
	}

	s := &Scanner{
		Regex:  re,
		Groups: groups,
	}
	if len(keywords) > 0 {
		normalized := make([]string, 0, len(keywords))
		for _, k := range keywords {
			if k = strings.ToLower(k); k != "" {
				normalized = append(normalized, k)
			}
		}
		if len(normalized) > 0 {
			s.prefilter = ahocorasick.NewTrieBuilder().AddStrings(normalized).Build()
		}
	}
	return s, nil
}

// GroupCount is the number of capture values every match carries.
func (s *Scanner) GroupCount() int {
	if len(s.Groups) > 0 {
		return len(s.Groups)
	}
	return s.Regex.NumSubexp()
}

// ScanFragment scans a fragment line by line. Each line matches at most
// once; the leftmost match is used.
func (s *Scanner) ScanFragment(ctx context.Context, fragment regexgrep.Fragment) ([]regexgrep.Match, error) {
	if s.prefilter != nil && len(s.prefilter.MatchString(strings.ToLower(fragment.Raw))) == 0 {
		logging.Trace().Str("path", fragment.Path).Msg("skipping fragment: no keyword")
		return nil, nil
	}

	var matches []regexgrep.Match
	for i, line := range splitLines(fragment.Raw) {
		if i%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		submatch := s.Regex.FindStringSubmatch(line)
		if submatch == nil {
			continue
		}
		matches = append(matches, regexgrep.Match{
			Path:   fragment.Path,
			Line:   i + 1,
			Groups: s.selectGroups(submatch),
		})
	}
	return matches, nil
}

func (s *Scanner) selectGroups(submatch []string) []string {
	groups := make([]string, s.GroupCount())
	if len(s.Groups) == 0 {
		copy(groups, submatch[1:])
		return groups
	}
	for i, g := range s.Groups {
		groups[i] = submatch[g]
	}
	return groups
}
