package scan

import (
	"context"

	"github.com/betterleaks/regexgrep"
)

type Pipeline struct {
	// resource enumerator, fragment producer
	Source regexgrep.Source

	// fragment consumer, match producer
	Scanner *Scanner
}

func NewPipeline(src regexgrep.Source, scanner *Scanner) *Pipeline {
	return &Pipeline{
		Source:  src,
		Scanner: scanner,
	}
}

// Run scans every fragment of the source in order and returns the matches
// in fragment-then-line order. On error no matches are returned.
func (p *Pipeline) Run(ctx context.Context) ([]regexgrep.Match, error) {
	var retMatches []regexgrep.Match

	err := p.Source.Fragments(ctx, func(fragment regexgrep.Fragment, err error) error {
		if err != nil {
			return err
		}
		matches, err := p.Scanner.ScanFragment(ctx, fragment)
		if err != nil {
			return err
		}
		retMatches = append(retMatches, matches...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return retMatches, nil
}
