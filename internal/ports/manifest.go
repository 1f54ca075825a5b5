package ports

import "rostree/internal/types"

// ManifestPort parses package.xml manifests.
type ManifestPort interface {
	// Parse reads one manifest and returns its package record. Expected
	// failures come back as coded errors: CodeNotFound when the path is
	// missing or not a regular file, CodeInvalidArgument when the file is
	// not a well-formed package manifest or has no usable name.
	Parse(path string, opts types.ParseOptions) (*types.PackageRecord, error)
}
