package app

import (
	"context"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rostree/internal/types"
	"rostree/tests/testutil"
)

// fixtureService builds a service whose discovery sees only the given
// source root, independent of the host environment.
func fixtureService(root string) *Service {
	svc := NewService()
	svc.Discovery = types.Discovery{ExtraRoots: []string{root}}
	return svc
}

func TestTreeRejectsEmptyPackage(t *testing.T) {
	svc := fixtureService(t.TempDir())
	_, err := svc.Tree(context.Background(), TreeRequest{})
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
}

func TestTreeReturnsNodeForUnknownPackage(t *testing.T) {
	svc := fixtureService(t.TempDir())
	node, err := svc.Tree(context.Background(), TreeRequest{Package: "ghost", MaxDepth: -1})
	require.NoError(t, err)
	require.NotNil(t, node)
	assert.Equal(t, types.NodeStatusNotFound, node.Status)
}

func TestTreeResolvesFixture(t *testing.T) {
	root := testutil.MakeSourceSpace(t, t.TempDir(),
		testutil.Manifest{Name: "pkg_a", Deps: map[string][]string{"depend": {"pkg_b"}}},
		testutil.Manifest{Name: "pkg_b"},
	)
	svc := fixtureService(root)

	node, err := svc.Tree(context.Background(), TreeRequest{Package: "pkg_a", MaxDepth: -1})
	require.NoError(t, err)
	require.Equal(t, types.NodeStatusResolved, node.Status)
	require.Len(t, node.Children, 1)
	assert.Equal(t, "pkg_b", node.Children[0].Name)
}

func TestPackageInfo(t *testing.T) {
	root := testutil.MakeSourceSpace(t, t.TempDir(),
		testutil.Manifest{Name: "pkg_a", Version: "2.0.1", Description: "fixture"},
	)
	svc := fixtureService(root)

	record, err := svc.PackageInfo(context.Background(), InfoRequest{Package: "pkg_a"})
	require.NoError(t, err)
	assert.Equal(t, "pkg_a", record.Name)
	assert.Equal(t, "2.0.1", record.Version)

	_, err = svc.PackageInfo(context.Background(), InfoRequest{Package: "ghost"})
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeNotFound, errbuilder.CodeOf(err))
}

func TestListAndListBySource(t *testing.T) {
	root := testutil.MakeSourceSpace(t, t.TempDir(),
		testutil.Manifest{Name: "pkg_a"},
		testutil.Manifest{Name: "pkg_b"},
	)
	svc := fixtureService(root)

	all, err := svc.List(context.Background(), ListRequest{})
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.Contains(t, all, "pkg_a")

	groups, err := svc.ListBySource(context.Background(), ListRequest{})
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, types.SourceKindAdded, groups[0].Kind)
	assert.Equal(t, []string{"pkg_a", "pkg_b"}, groups[0].Packages)
}

func TestGraphValidation(t *testing.T) {
	svc := fixtureService(t.TempDir())

	_, err := svc.Graph(context.Background(), GraphRequest{Format: "dot"})
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))

	_, err = svc.Graph(context.Background(), GraphRequest{Packages: []string{"pkg_a"}, Format: "png"})
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))

	_, err = svc.Graph(context.Background(), GraphRequest{Packages: []string{"ghost"}, Format: "dot", MaxDepth: -1})
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeNotFound, errbuilder.CodeOf(err))
}

func TestGraphOutput(t *testing.T) {
	root := testutil.MakeSourceSpace(t, t.TempDir(),
		testutil.Manifest{Name: "pkg_a", Deps: map[string][]string{"depend": {"pkg_b"}}},
		testutil.Manifest{Name: "pkg_b"},
	)
	svc := fixtureService(root)

	result, err := svc.Graph(context.Background(), GraphRequest{
		Packages: []string{"pkg_a", "ghost"},
		MaxDepth: -1,
		Format:   "mermaid",
		Title:    "demo",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Roots)
	assert.Contains(t, result.Output, "pkg_a --> pkg_b")
}

func TestWorkspacePackagesExplicitPath(t *testing.T) {
	ws := testutil.MakeWorkspace(t, t.TempDir(), false,
		testutil.Manifest{Name: "pkg_a"},
		testutil.Manifest{Name: "pkg_b"},
	)
	svc := fixtureService(t.TempDir())

	packages, err := svc.WorkspacePackages(context.Background(), ws, nil)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"pkg_a", "pkg_b"}, packages)
}

func TestWorkspacePackagesFromDiscovery(t *testing.T) {
	root := testutil.MakeSourceSpace(t, t.TempDir(),
		testutil.Manifest{Name: "pkg_a"},
	)
	svc := fixtureService(root)

	packages, err := svc.WorkspacePackages(context.Background(), "", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"pkg_a"}, packages)
}
