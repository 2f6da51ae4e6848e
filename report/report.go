package report

import (
	"fmt"
	"strings"

	"github.com/betterleaks/regexgrep"
)

// Formats lists the accepted report format names.
var Formats = []string{"flat", "json", "csv"}

// New returns the reporter for a format name. An empty name means flat.
func New(format string) (regexgrep.Reporter, error) {
	switch strings.ToLower(format) {
	case "", "flat":
		return &FlatReporter{}, nil
	case "json":
		return &JsonReporter{}, nil
	case "csv":
		return &CsvReporter{}, nil
	default:
		return nil, fmt.Errorf("%w: unknown report format %q (expected %s)",
			regexgrep.ErrInvalidArgument, format, strings.Join(Formats, ", "))
	}
}
