package report

import (
	"encoding/json"
	"io"

	"github.com/betterleaks/regexgrep"
)

type JsonReporter struct {
}

var _ regexgrep.Reporter = (*JsonReporter)(nil)

type jsonMatch struct {
	File   string   `json:"file"`
	Line   int      `json:"line"`
	Groups []string `json:"groups"`
}

func (t *JsonReporter) Write(w io.WriteCloser, matches []regexgrep.Match) error {
	records := make([]jsonMatch, 0, len(matches))
	for _, m := range matches {
		groups := m.Groups
		if groups == nil {
			groups = []string{}
		}
		records = append(records, jsonMatch{File: m.Path, Line: m.Line, Groups: groups})
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", " ")
	encoder.SetEscapeHTML(false)
	return encoder.Encode(records)
}
