package cli

import (
	"fmt"
	"io"

	"rostree/internal/types"
)

// Display markers for terminal node states.
var statusMarkers = map[types.NodeStatus]string{
	types.NodeStatusNotFound:   "[not found]",
	types.NodeStatusCycle:      "[cycle]",
	types.NodeStatusParseError: "[parse error]",
}

// writeTree prints a dependency tree as indented text with box-drawing
// branch prefixes.
func writeTree(w io.Writer, node *types.DependencyNode) {
	fmt.Fprintln(w, nodeLine(node))
	writeChildren(w, node, "")
}

func writeChildren(w io.Writer, node *types.DependencyNode, prefix string) {
	for i, child := range node.Children {
		last := i == len(node.Children)-1
		branch, cont := "├── ", "│   "
		if last {
			branch, cont = "└── ", "    "
		}
		fmt.Fprintln(w, prefix+branch+nodeLine(child))
		writeChildren(w, child, prefix+cont)
	}
}

// nodeLine renders one node: name, version when known, and either its
// description or a failure marker.
func nodeLine(node *types.DependencyNode) string {
	line := node.Name
	if node.Version != "" {
		line += fmt.Sprintf(" (%s)", node.Version)
	}
	if marker, ok := statusMarkers[node.Status]; ok {
		return line + " " + marker
	}
	if node.Description != "" {
		line += " - " + node.Description
	}
	return line
}
