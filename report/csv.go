package report

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/betterleaks/regexgrep"
)

type CsvReporter struct {
}

var _ regexgrep.Reporter = (*CsvReporter)(nil)

func (r *CsvReporter) Write(w io.WriteCloser, matches []regexgrep.Match) error {
	if len(matches) == 0 {
		return nil
	}

	var (
		cw  = csv.NewWriter(w)
		err error
	)
	// every match of one call carries the same number of groups
	columns := []string{"File", "Line"}
	for i := range matches[0].Groups {
		columns = append(columns, "Group"+strconv.Itoa(i+1))
	}

	if err = cw.Write(columns); err != nil {
		return err
	}
	for _, m := range matches {
		row := append([]string{m.Path, strconv.Itoa(m.Line)}, m.Groups...)
		if err = cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
