package core

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/goccy/go-graphviz"

	"rostree/internal/types"
)

// Edge is one parent -> child dependency relation in a flattened graph.
type Edge struct {
	From string
	To   string
}

// CollectEdges flattens a forest of dependency trees into a deduplicated
// edge list. Terminal failure nodes (not found, cycle, parse error)
// contribute no edges; each resolved package is expanded once.
func CollectEdges(roots []*types.DependencyNode) []Edge {
	edges := map[Edge]struct{}{}
	for _, root := range roots {
		visited := map[string]struct{}{}
		collectEdges(root, edges, visited)
	}
	out := make([]Edge, 0, len(edges))
	for e := range edges {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].From != out[j].From {
			return out[i].From < out[j].From
		}
		return out[i].To < out[j].To
	})
	return out
}

func collectEdges(node *types.DependencyNode, edges map[Edge]struct{}, visited map[string]struct{}) {
	if _, ok := visited[node.Name]; ok {
		return
	}
	visited[node.Name] = struct{}{}
	for _, child := range node.Children {
		if child.Status != types.NodeStatusResolved {
			continue
		}
		edges[Edge{From: node.Name, To: child.Name}] = struct{}{}
		collectEdges(child, edges, visited)
	}
}

// GraphOptions configures textual graph generation.
type GraphOptions struct {
	Title          string
	HighlightRoots bool
}

// ToDOT renders a forest of dependency trees as a Graphviz digraph.
func ToDOT(roots []*types.DependencyNode, opts GraphOptions) string {
	var buf bytes.Buffer
	buf.WriteString("digraph dependencies {\n")
	if opts.Title != "" {
		fmt.Fprintf(&buf, "    label=%q;\n", opts.Title)
		buf.WriteString("    labelloc=t;\n")
	}
	buf.WriteString("    rankdir=LR;\n")
	buf.WriteString("    node [shape=box, style=rounded, fontname=\"sans-serif\"];\n")

	if opts.HighlightRoots {
		for _, name := range sortedRootNames(roots) {
			fmt.Fprintf(&buf, "    %q [style=\"rounded,filled\", fillcolor=lightblue];\n", name)
		}
	}
	for _, e := range CollectEdges(roots) {
		fmt.Fprintf(&buf, "    %q -> %q;\n", e.From, e.To)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// ToMermaid renders a forest of dependency trees as a Mermaid graph.
func ToMermaid(roots []*types.DependencyNode, opts GraphOptions) string {
	var buf bytes.Buffer
	if opts.Title != "" {
		fmt.Fprintf(&buf, "---\ntitle: %s\n---\n", opts.Title)
	}
	buf.WriteString("graph LR\n")

	if opts.HighlightRoots {
		for _, name := range sortedRootNames(roots) {
			fmt.Fprintf(&buf, "    %s[%s]\n", SanitizeID(name), name)
			fmt.Fprintf(&buf, "    style %s fill:lightblue\n", SanitizeID(name))
		}
	}
	for _, e := range CollectEdges(roots) {
		fmt.Fprintf(&buf, "    %s --> %s\n", SanitizeID(e.From), SanitizeID(e.To))
	}
	return buf.String()
}

// SanitizeID converts a package name into an identifier safe for graph
// description languages: every non-alphanumeric character becomes an
// underscore.
func SanitizeID(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}

func sortedRootNames(roots []*types.DependencyNode) []string {
	seen := map[string]struct{}{}
	var names []string
	for _, root := range roots {
		if _, ok := seen[root.Name]; ok {
			continue
		}
		seen[root.Name] = struct{}{}
		names = append(names, root.Name)
	}
	sort.Strings(names)
	return names
}

// RenderImage renders DOT source to an image using the embedded Graphviz
// engine. Supported formats are "svg" and "png".
func RenderImage(ctx context.Context, dot string, format string) ([]byte, error) {
	var gvFormat graphviz.Format
	switch format {
	case "svg":
		gvFormat = graphviz.SVG
	case "png":
		gvFormat = graphviz.PNG
	default:
		return nil, fmt.Errorf("unsupported render format: %s", format)
	}

	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, gvFormat, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
