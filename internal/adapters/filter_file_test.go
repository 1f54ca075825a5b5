package adapters

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rostree/internal/types"
)

func writeFilterFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "filter.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadDependencyFilter(t *testing.T) {
	path := writeFilterFile(t, "deny:\n  - boost\ndeny_prefixes:\n  - sys-\n")

	filter, err := LoadDependencyFilter(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"boost"}, filter.Deny)
	assert.Equal(t, []string{"sys-"}, filter.DenyPrefixes)
}

func TestLoadDependencyFilterPartialFallsBackToDefaults(t *testing.T) {
	path := writeFilterFile(t, "deny:\n  - boost\n")

	filter, err := LoadDependencyFilter(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"boost"}, filter.Deny)
	assert.Equal(t, types.DefaultDependencyFilter().DenyPrefixes, filter.DenyPrefixes)
}

func TestLoadDependencyFilterMissingFile(t *testing.T) {
	_, err := LoadDependencyFilter(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeNotFound, errbuilder.CodeOf(err))
}

func TestLoadDependencyFilterBadYAML(t *testing.T) {
	path := writeFilterFile(t, "deny: [unclosed\n")

	_, err := LoadDependencyFilter(path)
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
}
