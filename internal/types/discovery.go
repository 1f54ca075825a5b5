package types

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Discovery carries the root directories consulted when locating
// packages. It is built once at the process boundary (from the ROS
// environment variables or from a config file) and threaded explicitly
// into the locator and scanner so nothing deeper reads the environment.
type Discovery struct {
	// AmentPrefixes and ColconPrefixes are install prefixes, in the
	// order the corresponding environment variable listed them.
	AmentPrefixes  []string
	ColconPrefixes []string
	// WorkspaceRoots are explicit workspace directories (ROS2_WORKSPACE,
	// COLCON_WORKSPACE).
	WorkspaceRoots []string
	// ExtraRoots are user-added source directories.
	ExtraRoots []string
}

// WithExtraRoots returns a copy of d with roots appended to ExtraRoots.
func (d Discovery) WithExtraRoots(roots []string) Discovery {
	if len(roots) == 0 {
		return d
	}
	merged := make([]string, 0, len(d.ExtraRoots)+len(roots))
	merged = append(merged, d.ExtraRoots...)
	merged = append(merged, roots...)
	d.ExtraRoots = merged
	return d
}

// DependencyFilter decides which raw dependency strings name ROS packages.
// Manifests mix ROS package names with system and library dependencies in
// the same tags; anything rejected here is never resolved as a package.
type DependencyFilter struct {
	Deny         []string `yaml:"deny"`
	DenyPrefixes []string `yaml:"deny_prefixes"`
}

// DefaultDependencyFilter returns the built-in denylist. The list is
// inherently incomplete; callers can load a replacement from config.
func DefaultDependencyFilter() DependencyFilter {
	return DependencyFilter{
		Deny:         []string{"python3", "python3-pytest", "python3-textual", "python3-rich"},
		DenyPrefixes: []string{"python3-", "lib"},
	}
}

// Accept reports whether name plausibly refers to a ROS package.
func (f DependencyFilter) Accept(name string) bool {
	first, _ := utf8.DecodeRuneInString(name)
	if name == "" || !unicode.IsLetter(first) {
		return false
	}
	for _, deny := range f.Deny {
		if name == deny {
			return false
		}
	}
	for _, prefix := range f.DenyPrefixes {
		if strings.HasPrefix(name, prefix) {
			return false
		}
	}
	return true
}

// ParseOptions selects which dependency tags a manifest parse collects
// and which filter separates ROS packages from system dependencies.
// Zero values mean the defaults.
type ParseOptions struct {
	Tags   []DependencyTag
	Filter *DependencyFilter
}

// ScanOptions configures a workspace scan.
type ScanOptions struct {
	// Roots overrides the default scan locations when non-empty.
	Roots []string
	// MaxDepth bounds recursion below each root.
	MaxDepth int
	// IncludeHome adds common workspace locations under $HOME to the
	// default roots.
	IncludeHome bool
	// IncludeSystem adds the /opt/ros distro directories to the default
	// roots.
	IncludeSystem bool
}
