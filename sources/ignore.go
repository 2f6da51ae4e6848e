package sources

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"github.com/betterleaks/regexgrep/logging"
	"github.com/mattn/go-zglob"
)

// IgnoreFileName is looked up in the ignore path and the search root.
const IgnoreFileName = ".regexgrepignore"

// ShouldSkipPath checks a resolved file name against the ignore patterns.
func ShouldSkipPath(ignore []string, name string) bool {
	for _, pattern := range ignore {
		ok, err := zglob.Match(pattern, name)
		if err != nil {
			logging.Warn().Err(err).Str("pattern", pattern).Msg("invalid ignore pattern")
			continue
		}
		if ok {
			return true
		}
	}
	return false
}

// LoadIgnoreFile loads a .regexgrepignore file and returns its patterns.
// The file format supports:
// - Comments starting with #
// - Blank lines (ignored)
// - Glob patterns relative to the search root, e.g. vendor/** or *.gen.go
func LoadIgnoreFile(path string) ([]string, error) {
	var ignore []string

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	replacer := strings.NewReplacer("\\", "/")

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Skip blank lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Normalize the path separators
		ignore = append(ignore, strings.TrimPrefix(replacer.Replace(line), "./"))
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return ignore, nil
}

// LoadIgnoreFiles loads ignore files from the ignore path and the search
// root and merges them. ignorePath may name a file or a directory holding
// a .regexgrepignore.
func LoadIgnoreFiles(ignorePath string, root string) []string {
	var (
		ignore []string
		seen   = make(map[string]struct{})
	)

	tryLoad := func(path string) {
		if _, err := os.Stat(path); err != nil {
			return
		}
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		logging.Debug().Str("path", path).Msg("loading ignore file")
		loaded, err := LoadIgnoreFile(path)
		if err != nil {
			logging.Warn().Err(err).Str("path", path).Msg("failed to load ignore file")
			return
		}
		ignore = append(ignore, loaded...)
	}

	if ignorePath != "" {
		if info, err := os.Stat(ignorePath); err == nil && !info.IsDir() {
			tryLoad(ignorePath)
		} else {
			tryLoad(filepath.Join(ignorePath, IgnoreFileName))
		}
	}
	tryLoad(filepath.Join(root, IgnoreFileName))

	return ignore
}
