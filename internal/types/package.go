package types

// PackageRecord holds the metadata parsed from one package.xml manifest.
// Dependencies contains ROS package names only, deduplicated with
// declaration order preserved; system and vendor dependencies are
// filtered out by the DependencyFilter heuristic.
type PackageRecord struct {
	Name         string   `json:"name"`
	Version      string   `json:"version"`
	Description  string   `json:"description"`
	Path         string   `json:"path"`
	Dependencies []string `json:"dependencies"`
}

// DependencyNode is one package in a dependency tree. Status marks the
// resolution outcome; for anything other than NodeStatusResolved the node
// is terminal and Children is empty. Path is empty for unresolved nodes
// except parse errors, where it keeps the manifest path that failed.
type DependencyNode struct {
	Name        string            `json:"name"`
	Version     string            `json:"version"`
	Description string            `json:"description"`
	Path        string            `json:"path"`
	Status      NodeStatus        `json:"status"`
	Children    []*DependencyNode `json:"children"`
}

// CountNodes returns the number of nodes in the tree rooted at n,
// including n itself.
func (n *DependencyNode) CountNodes() int {
	if n == nil {
		return 0
	}
	total := 1
	for _, child := range n.Children {
		total += child.CountNodes()
	}
	return total
}
