package app

type TreeRequest struct {
	Package          string
	MaxDepth         int // negative = unlimited
	RuntimeOnly      bool
	IncludeBuildtool bool
	ExtraRoots       []string
}

type ListRequest struct {
	ExtraRoots []string
}

type InfoRequest struct {
	Package    string
	ExtraRoots []string
}

type ScanRequest struct {
	Roots         []string
	MaxDepth      int
	IncludeHome   bool
	IncludeSystem bool
}

type GraphRequest struct {
	// Packages are the roots of the graphed forest.
	Packages    []string
	MaxDepth    int // negative = unlimited
	RuntimeOnly bool
	ExtraRoots  []string
	Format      string // "dot" or "mermaid"
	Title       string
}

type GraphResult struct {
	// Output is the textual graph description in the requested format.
	Output string
	// Roots counts the trees that were actually built.
	Roots int
}
