package sources

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadIgnoreFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), IgnoreFileName)
	content := "# generated code\n\nvendor/**\n  *.gen.go  \n./build/out.h\nwin\\path\\*.h\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	got, err := LoadIgnoreFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"vendor/**", "*.gen.go", "build/out.h", "win/path/*.h"}, got)

	_, err = LoadIgnoreFile(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestLoadIgnoreFiles(t *testing.T) {
	root := t.TempDir()
	other := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, IgnoreFileName), []byte("vendor/**\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(other, IgnoreFileName), []byte("*.gen.go\n"), 0o644))
	explicit := filepath.Join(other, "custom-ignore")
	require.NoError(t, os.WriteFile(explicit, []byte("third_party/**\n"), 0o644))

	assert.Equal(t, []string{"*.gen.go", "vendor/**"}, LoadIgnoreFiles(other, root))
	assert.Equal(t, []string{"third_party/**", "vendor/**"}, LoadIgnoreFiles(explicit, root))
	assert.Equal(t, []string{"vendor/**"}, LoadIgnoreFiles(root, root))
	assert.Equal(t, []string{"vendor/**"}, LoadIgnoreFiles("", root))
	assert.Empty(t, LoadIgnoreFiles("", t.TempDir()))
}

func TestShouldSkipPath(t *testing.T) {
	ignore := []string{"vendor/**", "*.gen.go"}

	assert.True(t, ShouldSkipPath(ignore, "vendor/lib/a.go"))
	assert.True(t, ShouldSkipPath(ignore, "api.gen.go"))
	assert.False(t, ShouldSkipPath(ignore, "main.go"))
	assert.False(t, ShouldSkipPath(nil, "main.go"))
}
