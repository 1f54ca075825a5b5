package core

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rostree/internal/adapters"
	"rostree/internal/types"
	"rostree/tests/testutil"
)

func newTestBuilder() TreeBuilder {
	return NewTreeBuilder(adapters.NewLocator(), adapters.NewManifestXMLAdapter())
}

func deps(tag string, names ...string) map[string][]string {
	return map[string][]string{tag: names}
}

func TestBuildSimpleTree(t *testing.T) {
	root := testutil.MakeSourceSpace(t, t.TempDir(),
		testutil.Manifest{Name: "robot_bringup", Version: "1.0.0", Deps: deps("depend", "robot_driver", "robot_msgs")},
		testutil.Manifest{Name: "robot_driver", Deps: deps("depend", "robot_msgs")},
		testutil.Manifest{Name: "robot_msgs"},
	)
	disc := types.Discovery{ExtraRoots: []string{root}}

	node := newTestBuilder().Build(context.Background(), "robot_bringup", BuildOptions{MaxDepth: -1}, disc)
	require.Equal(t, types.NodeStatusResolved, node.Status)
	assert.Equal(t, "robot_bringup", node.Name)
	assert.Equal(t, "1.0.0", node.Version)
	require.Len(t, node.Children, 2)

	driver := node.Children[0]
	assert.Equal(t, "robot_driver", driver.Name)
	require.Len(t, driver.Children, 1)
	assert.Equal(t, "robot_msgs", driver.Children[0].Name)

	// robot_msgs also resolves in the sibling branch.
	assert.Equal(t, "robot_msgs", node.Children[1].Name)
	assert.Equal(t, types.NodeStatusResolved, node.Children[1].Status)
}

func TestBuildRootNotFound(t *testing.T) {
	node := newTestBuilder().Build(context.Background(), "ghost_pkg", BuildOptions{MaxDepth: -1}, types.Discovery{})
	require.NotNil(t, node)
	assert.Equal(t, types.NodeStatusNotFound, node.Status)
	assert.Equal(t, "ghost_pkg", node.Name)
	assert.Empty(t, node.Children)
}

func TestBuildNotFoundDependency(t *testing.T) {
	root := testutil.MakeSourceSpace(t, t.TempDir(),
		testutil.Manifest{Name: "lonely_pkg", Deps: deps("depend", "missing_dep")},
	)
	disc := types.Discovery{ExtraRoots: []string{root}}

	node := newTestBuilder().Build(context.Background(), "lonely_pkg", BuildOptions{MaxDepth: -1}, disc)
	require.Len(t, node.Children, 1)
	assert.Equal(t, types.NodeStatusNotFound, node.Children[0].Status)
	assert.Equal(t, "missing_dep", node.Children[0].Name)
}

func TestBuildCycleDetection(t *testing.T) {
	root := testutil.MakeSourceSpace(t, t.TempDir(),
		testutil.Manifest{Name: "pkg_a", Deps: deps("depend", "pkg_b")},
		testutil.Manifest{Name: "pkg_b", Deps: deps("depend", "pkg_a")},
	)
	disc := types.Discovery{ExtraRoots: []string{root}}

	node := newTestBuilder().Build(context.Background(), "pkg_a", BuildOptions{MaxDepth: -1}, disc)
	require.Len(t, node.Children, 1)
	b := node.Children[0]
	require.Equal(t, types.NodeStatusResolved, b.Status)
	require.Len(t, b.Children, 1)
	assert.Equal(t, types.NodeStatusCycle, b.Children[0].Status)
	assert.Equal(t, "pkg_a", b.Children[0].Name)
}

func TestBuildDepthLimit(t *testing.T) {
	root := testutil.MakeSourceSpace(t, t.TempDir(),
		testutil.Manifest{Name: "pkg_a", Deps: deps("depend", "pkg_b")},
		testutil.Manifest{Name: "pkg_b", Deps: deps("depend", "pkg_c")},
		testutil.Manifest{Name: "pkg_c"},
	)
	disc := types.Discovery{ExtraRoots: []string{root}}
	builder := newTestBuilder()

	shallow := builder.Build(context.Background(), "pkg_a", BuildOptions{MaxDepth: 1}, disc)
	require.Len(t, shallow.Children, 1)
	assert.Empty(t, shallow.Children[0].Children)

	deep := builder.Build(context.Background(), "pkg_a", BuildOptions{MaxDepth: 2}, disc)
	require.Len(t, deep.Children, 1)
	assert.Len(t, deep.Children[0].Children, 1)
}

func TestBuildRuntimeOnly(t *testing.T) {
	root := testutil.MakeSourceSpace(t, t.TempDir(),
		testutil.Manifest{Name: "pkg_a", Deps: map[string][]string{
			"depend":      {"runtime_dep"},
			"test_depend": {"test_dep"},
		}},
		testutil.Manifest{Name: "runtime_dep"},
		testutil.Manifest{Name: "test_dep"},
	)
	disc := types.Discovery{ExtraRoots: []string{root}}
	builder := newTestBuilder()

	full := builder.Build(context.Background(), "pkg_a", BuildOptions{MaxDepth: -1}, disc)
	assert.Len(t, full.Children, 2)

	runtime := builder.Build(context.Background(), "pkg_a", BuildOptions{MaxDepth: -1, RuntimeOnly: true}, disc)
	require.Len(t, runtime.Children, 1)
	assert.Equal(t, "runtime_dep", runtime.Children[0].Name)
}

func TestBuildIncludeBuildtool(t *testing.T) {
	root := testutil.MakeSourceSpace(t, t.TempDir(),
		testutil.Manifest{Name: "pkg_a", Deps: deps("buildtool_depend", "ament_cmake")},
		testutil.Manifest{Name: "ament_cmake"},
	)
	disc := types.Discovery{ExtraRoots: []string{root}}
	builder := newTestBuilder()

	without := builder.Build(context.Background(), "pkg_a", BuildOptions{MaxDepth: -1}, disc)
	assert.Empty(t, without.Children)

	with := builder.Build(context.Background(), "pkg_a", BuildOptions{MaxDepth: -1, IncludeBuildtool: true}, disc)
	require.Len(t, with.Children, 1)
	assert.Equal(t, "ament_cmake", with.Children[0].Name)
}

func TestBuildParseErrorNode(t *testing.T) {
	root := t.TempDir()
	testutil.MakeSourceSpace(t, root,
		testutil.Manifest{Name: "pkg_a", Deps: deps("depend", "broken_pkg")},
	)
	brokenDir := filepath.Join(root, "broken_pkg")
	require.NoError(t, os.MkdirAll(brokenDir, 0o755))
	// The name line satisfies the locator's scan but the document is
	// truncated, so parsing fails.
	require.NoError(t, os.WriteFile(filepath.Join(brokenDir, "package.xml"),
		[]byte("<package>\n  <name>broken_pkg</name>\n"), 0644))
	disc := types.Discovery{ExtraRoots: []string{root}}

	node := newTestBuilder().Build(context.Background(), "pkg_a", BuildOptions{MaxDepth: -1}, disc)
	require.Len(t, node.Children, 1)
	assert.Equal(t, types.NodeStatusParseError, node.Children[0].Status)
	assert.NotEmpty(t, node.Children[0].Path)
}

func TestTreeJSONRoundTrip(t *testing.T) {
	root := testutil.MakeSourceSpace(t, t.TempDir(),
		testutil.Manifest{Name: "pkg_a", Version: "0.2.0", Description: "top", Deps: deps("depend", "pkg_b", "ghost")},
		testutil.Manifest{Name: "pkg_b"},
	)
	disc := types.Discovery{ExtraRoots: []string{root}}

	node := newTestBuilder().Build(context.Background(), "pkg_a", BuildOptions{MaxDepth: -1}, disc)

	data, err := json.Marshal(node)
	require.NoError(t, err)
	var decoded types.DependencyNode
	require.NoError(t, json.Unmarshal(data, &decoded))

	if diff := cmp.Diff(node, &decoded); diff != "" {
		t.Errorf("tree changed across JSON round trip (-want +got):\n%s", diff)
	}
}
