package report

import (
	"bufio"
	"io"

	"github.com/betterleaks/regexgrep"
)

// FlatReporter writes the flattened result list, one field per line. This
// is the form build description languages consume.
type FlatReporter struct {
}

var _ regexgrep.Reporter = (*FlatReporter)(nil)

func (r *FlatReporter) Write(w io.WriteCloser, matches []regexgrep.Match) error {
	bw := bufio.NewWriter(w)
	for _, field := range regexgrep.Flatten(matches) {
		if _, err := bw.WriteString(field); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}
