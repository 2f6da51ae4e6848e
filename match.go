package regexgrep

// Match represents one matching line: the file it came from and the capture
// group values selected for the call, in the order they were requested.
type Match struct {
	Path string

	// Line is the 1-based line number within the file
	Line int

	Groups []string
}

// Record returns the match as a flat record: the file name followed by the
// selected groups.
func (m Match) Record() []string {
	record := make([]string, 0, len(m.Groups)+1)
	record = append(record, m.Path)
	return append(record, m.Groups...)
}

// Flatten concatenates the records of all matches, in order. The result is
// never nil so it encodes as an empty list rather than null.
func Flatten(matches []Match) []string {
	n := 0
	for _, m := range matches {
		n += len(m.Groups) + 1
	}
	flat := make([]string, 0, n)
	for _, m := range matches {
		flat = append(flat, m.Path)
		flat = append(flat, m.Groups...)
	}
	return flat
}
