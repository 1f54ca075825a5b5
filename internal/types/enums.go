package types

type NodeStatus string

const (
	NodeStatusResolved   NodeStatus = "resolved"
	NodeStatusNotFound   NodeStatus = "not_found"
	NodeStatusCycle      NodeStatus = "cycle"
	NodeStatusParseError NodeStatus = "parse_error"
)

type SourceKind string

const (
	SourceKindSystem    SourceKind = "System"
	SourceKindWorkspace SourceKind = "Workspace"
	SourceKindOther     SourceKind = "Other"
	SourceKindSource    SourceKind = "Source"
	SourceKindAdded     SourceKind = "Added"
)

type DependencyTag string

const (
	TagDepend            DependencyTag = "depend"
	TagExecDepend        DependencyTag = "exec_depend"
	TagBuildDepend       DependencyTag = "build_depend"
	TagBuildExportDepend DependencyTag = "build_export_depend"
	TagTestDepend        DependencyTag = "test_depend"
	TagBuildtoolDepend   DependencyTag = "buildtool_depend"
)

// DefaultDependencyTags lists the tags traversed for a full dependency
// tree. buildtool_depend is opt-in via the builder options.
func DefaultDependencyTags() []DependencyTag {
	return []DependencyTag{
		TagDepend,
		TagExecDepend,
		TagBuildDepend,
		TagBuildExportDepend,
		TagTestDepend,
	}
}

// RuntimeDependencyTags lists the tags traversed when only execution-time
// dependencies are wanted.
func RuntimeDependencyTags() []DependencyTag {
	return []DependencyTag{TagDepend, TagExecDepend}
}
