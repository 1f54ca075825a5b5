package ports

import "rostree/internal/types"

// LocatorPort resolves package names to manifest paths and enumerates
// every package discoverable under a set of roots.
type LocatorPort interface {
	// Find returns the manifest path for a package, searching install
	// prefixes before workspace source trees. First match wins. Returns
	// a CodeNotFound error when no root contains the package.
	Find(name string, disc types.Discovery) (string, error)

	// ListAll maps every discoverable package name to its manifest path.
	// Install-space entries take precedence on name collision.
	ListAll(disc types.Discovery) (map[string]string, error)

	// ListBySource groups discoverable packages by the kind of root they
	// were found under, in scan order. A name appears in exactly one
	// group (first seen wins); names within a group are sorted.
	ListBySource(disc types.Discovery) ([]types.SourceGroup, error)
}

// ScannerPort discovers ROS 2 workspaces on the host.
type ScannerPort interface {
	Scan(opts types.ScanOptions) ([]types.WorkspaceInfo, error)
}
