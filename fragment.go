package regexgrep

// Fragment represents the content of a resolved file with its meta data
type Fragment struct {
	// Raw is the raw content of the fragment
	Raw string

	// Path is the file name as returned by glob resolution, slash separated
	// and relative to the search root
	Path string

	Resource *Resource
}
