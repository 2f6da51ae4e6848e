package regexgrep

// Metadata keys used across sources.
const (
	MetaPath        = "path"
	MetaRoot        = "root"
	MetaSymlinkFile = "symlink_file"
)

// Resource represents a file a source read fragments from.
type Resource struct {
	Name   string
	Path   string
	Source string // Source type: "file"

	Metadata map[string]string
}

func (r *Resource) Set(key, value string) {
	if r.Metadata == nil {
		r.Metadata = make(map[string]string)
	}
	r.Metadata[key] = value
}

// Get returns a metadata value by key, or empty string if not found.
func (r *Resource) Get(key string) string {
	if r == nil || r.Metadata == nil {
		return ""
	}
	return r.Metadata[key]
}
