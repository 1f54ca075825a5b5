package types

import (
	"encoding/json"
	"fmt"
)

// WorkspaceInfo describes one discovered ROS 2 workspace.
type WorkspaceInfo struct {
	Path       string   `json:"path"`
	HasSource  bool     `json:"has_src"`
	HasInstall bool     `json:"has_install"`
	HasBuild   bool     `json:"has_build"`
	Packages   []string `json:"packages"`
}

// IsValid reports whether the directory looks like a usable workspace.
func (w WorkspaceInfo) IsValid() bool {
	return w.HasSource || w.HasInstall
}

// MarshalJSON includes the derived is_valid field in the wire form.
func (w WorkspaceInfo) MarshalJSON() ([]byte, error) {
	type alias WorkspaceInfo
	return json.Marshal(struct {
		alias
		IsValid bool `json:"is_valid"`
	}{alias(w), w.IsValid()})
}

// SourceGroup is one bucket of a grouped package listing: the packages
// discovered under a single root, classified by where that root came from.
type SourceGroup struct {
	Kind     SourceKind `json:"kind"`
	Root     string     `json:"root"`
	Packages []string   `json:"packages"`
}

// Label renders the group header shown in listings, e.g.
// "System (/opt/ros/humble)".
func (g SourceGroup) Label() string {
	return fmt.Sprintf("%s (%s)", g.Kind, g.Root)
}
