package adapters

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rostree/internal/types"
	"rostree/tests/testutil"
)

func TestScanFindsWorkspacesUnderRoot(t *testing.T) {
	root := t.TempDir()
	testutil.MakeWorkspace(t, filepath.Join(root, "ros2_ws"), false,
		testutil.Manifest{Name: "pkg_b"},
		testutil.Manifest{Name: "pkg_a"})
	testutil.MakeWorkspace(t, filepath.Join(root, "projects", "robot", "colcon_ws"), false,
		testutil.Manifest{Name: "pkg_c"})

	scanner := NewScanner()
	workspaces, err := scanner.Scan(types.ScanOptions{Roots: []string{root}, MaxDepth: 4})
	require.NoError(t, err)
	require.Len(t, workspaces, 2)

	byBase := map[string]types.WorkspaceInfo{}
	for _, ws := range workspaces {
		byBase[filepath.Base(ws.Path)] = ws
	}
	require.Contains(t, byBase, "ros2_ws")
	require.Contains(t, byBase, "colcon_ws")

	// Packages come back sorted regardless of discovery order.
	assert.Equal(t, []string{"pkg_a", "pkg_b"}, byBase["ros2_ws"].Packages)
	assert.True(t, byBase["ros2_ws"].HasSource)
	assert.False(t, byBase["ros2_ws"].HasInstall)
	assert.True(t, byBase["ros2_ws"].IsValid())
}

func TestScanExplicitWorkspacePath(t *testing.T) {
	ws := testutil.MakeWorkspace(t, t.TempDir(), true,
		testutil.Manifest{Name: "only_pkg"})

	scanner := NewScanner()
	workspaces, err := scanner.Scan(types.ScanOptions{Roots: []string{ws}, MaxDepth: 0})
	require.NoError(t, err)
	require.Len(t, workspaces, 1)
	assert.Equal(t, canonicalPath(ws), workspaces[0].Path)
	assert.True(t, workspaces[0].HasSource)
	assert.True(t, workspaces[0].HasInstall)
	assert.Equal(t, []string{"only_pkg"}, workspaces[0].Packages)
}

func TestScanDepthBoundary(t *testing.T) {
	root := t.TempDir()
	testutil.MakeWorkspace(t, filepath.Join(root, "edge_ws"), false,
		testutil.Manifest{Name: "edge_pkg"})
	testutil.MakeWorkspace(t, filepath.Join(root, "nested", "deep_ws"), false,
		testutil.Manifest{Name: "deep_pkg"})

	// A workspace at exactly MaxDepth below the root qualifies; one
	// level deeper does not.
	scanner := NewScanner()
	workspaces, err := scanner.Scan(types.ScanOptions{Roots: []string{root}, MaxDepth: 1})
	require.NoError(t, err)
	require.Len(t, workspaces, 1)
	assert.Equal(t, "edge_ws", filepath.Base(workspaces[0].Path))

	workspaces, err = scanner.Scan(types.ScanOptions{Roots: []string{root}, MaxDepth: 2})
	require.NoError(t, err)
	assert.Len(t, workspaces, 2)
}

func TestScanDepthLimit(t *testing.T) {
	root := t.TempDir()
	testutil.MakeWorkspace(t, filepath.Join(root, "a", "b", "c", "deep_ws"), false,
		testutil.Manifest{Name: "deep_pkg"})

	scanner := NewScanner()
	workspaces, err := scanner.Scan(types.ScanOptions{Roots: []string{root}, MaxDepth: 1})
	require.NoError(t, err)
	assert.Empty(t, workspaces)
}

func TestScanSkipsHiddenDirectories(t *testing.T) {
	root := t.TempDir()
	testutil.MakeWorkspace(t, filepath.Join(root, ".cache", "hidden_ws"), false,
		testutil.Manifest{Name: "hidden_pkg"})

	scanner := NewScanner()
	workspaces, err := scanner.Scan(types.ScanOptions{Roots: []string{root}, MaxDepth: 4})
	require.NoError(t, err)
	assert.Empty(t, workspaces)
}

func TestScanDoesNotNestWorkspaces(t *testing.T) {
	root := t.TempDir()
	ws := testutil.MakeWorkspace(t, filepath.Join(root, "outer_ws"), false,
		testutil.Manifest{Name: "outer_pkg"})
	testutil.MakeWorkspace(t, filepath.Join(ws, "inner_ws"), false,
		testutil.Manifest{Name: "inner_pkg"})

	scanner := NewScanner()
	workspaces, err := scanner.Scan(types.ScanOptions{Roots: []string{root}, MaxDepth: 4})
	require.NoError(t, err)
	require.Len(t, workspaces, 1)
	assert.Equal(t, canonicalPath(ws), workspaces[0].Path)
}

func TestScanInstallOnlyWorkspace(t *testing.T) {
	ws := t.TempDir()
	testutil.MakeInstallSpace(t, filepath.Join(ws, "install"),
		testutil.Manifest{Name: "deployed_pkg"})

	scanner := NewScanner()
	workspaces, err := scanner.Scan(types.ScanOptions{Roots: []string{ws}, MaxDepth: 0})
	require.NoError(t, err)
	require.Len(t, workspaces, 1)
	assert.False(t, workspaces[0].HasSource)
	assert.True(t, workspaces[0].HasInstall)
	assert.Equal(t, []string{"deployed_pkg"}, workspaces[0].Packages)
}

func TestScanEmptySourceDirStillQualifies(t *testing.T) {
	ws := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(ws, "src"), 0o755))

	scanner := NewScanner()
	workspaces, err := scanner.Scan(types.ScanOptions{Roots: []string{ws}, MaxDepth: 0})
	require.NoError(t, err)
	require.Len(t, workspaces, 1)
	assert.True(t, workspaces[0].IsValid())
	assert.Equal(t, []string{}, workspaces[0].Packages)
}

func TestScanDeduplicatesRoots(t *testing.T) {
	ws := testutil.MakeWorkspace(t, t.TempDir(), false,
		testutil.Manifest{Name: "one_pkg"})

	scanner := NewScanner()
	workspaces, err := scanner.Scan(types.ScanOptions{Roots: []string{ws, ws}, MaxDepth: 0})
	require.NoError(t, err)
	assert.Len(t, workspaces, 1)
}
