package core

import (
	"context"
	"slices"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/rs/zerolog/log"

	"rostree/internal/ports"
	"rostree/internal/types"
)

// TreeBuilder assembles the transitive dependency tree for a package by
// repeatedly resolving dependency names through the locator and parser.
type TreeBuilder struct {
	Locator  ports.LocatorPort
	Manifest ports.ManifestPort
}

func NewTreeBuilder(locator ports.LocatorPort, manifest ports.ManifestPort) TreeBuilder {
	return TreeBuilder{Locator: locator, Manifest: manifest}
}

// BuildOptions controls tree construction.
type BuildOptions struct {
	// MaxDepth bounds recursion; negative means unlimited. The depth-0
	// root is always attempted, only deeper levels are pruned.
	MaxDepth int
	// RuntimeOnly restricts traversal to depend and exec_depend.
	RuntimeOnly bool
	// IncludeBuildtool adds buildtool_depend to the traversed tags.
	// Ignored when RuntimeOnly is set.
	IncludeBuildtool bool
	// Filter overrides the default dependency denylist when non-nil.
	Filter *types.DependencyFilter
}

// Build returns the dependency tree rooted at the named package. The
// result is always a node: resolution failures surface as the root's
// status, never as an error. The walk is depth-first with a single
// ancestor stack, so a name is only flagged as a cycle when it recurs on
// its own ancestor chain; the same package appearing in sibling branches
// is resolved in each of them.
func (b TreeBuilder) Build(ctx context.Context, root string, opts BuildOptions, disc types.Discovery) *types.DependencyNode {
	assert.NotEmpty(ctx, root, "root package name must be set")

	tags := types.DefaultDependencyTags()
	if opts.RuntimeOnly {
		tags = types.RuntimeDependencyTags()
	} else if opts.IncludeBuildtool {
		tags = append(tags, types.TagBuildtoolDepend)
	}

	ancestors := make([]string, 0, 16)
	node := b.resolve(root, 0, opts, tags, disc, &ancestors)
	log.Ctx(ctx).Debug().
		Str("package", root).
		Int("nodes", node.CountNodes()).
		Msg("dependency tree built")
	return node
}

// resolve returns the node for one package, or nil when the branch is
// pruned by the depth limit. Pruning is the only niladic outcome; cycle,
// not-found, and parse-error cases all yield visible terminal nodes.
func (b TreeBuilder) resolve(name string, depth int, opts BuildOptions, tags []types.DependencyTag, disc types.Discovery, ancestors *[]string) *types.DependencyNode {
	// Cycle check comes before everything else, including the depth cap.
	if slices.Contains(*ancestors, name) {
		return &types.DependencyNode{Name: name, Status: types.NodeStatusCycle}
	}
	if opts.MaxDepth >= 0 && depth > opts.MaxDepth {
		return nil
	}

	path, err := b.Locator.Find(name, disc)
	if err != nil {
		return &types.DependencyNode{Name: name, Status: types.NodeStatusNotFound}
	}

	record, err := b.Manifest.Parse(path, types.ParseOptions{Tags: tags, Filter: opts.Filter})
	if err != nil {
		return &types.DependencyNode{Name: name, Status: types.NodeStatusParseError, Path: path}
	}

	*ancestors = append(*ancestors, name)
	children := []*types.DependencyNode{}
	for _, dep := range record.Dependencies {
		if child := b.resolve(dep, depth+1, opts, tags, disc, ancestors); child != nil {
			children = append(children, child)
		}
	}
	*ancestors = (*ancestors)[:len(*ancestors)-1]

	return &types.DependencyNode{
		Name:        record.Name,
		Version:     record.Version,
		Description: record.Description,
		Path:        record.Path,
		Status:      types.NodeStatusResolved,
		Children:    children,
	}
}
