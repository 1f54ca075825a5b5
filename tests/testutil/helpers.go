// Package testutil provides shared fixture builders used across unit
// test packages: throwaway install prefixes, source trees, and
// package.xml manifests.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// Manifest describes one package.xml fixture.
type Manifest struct {
	Name        string
	Version     string
	Description string
	// Deps maps dependency tag name to dependency names, e.g.
	// "depend" -> ["rclcpp", "std_msgs"].
	Deps map[string][]string
}

// XML renders the manifest as a package.xml document.
func (m Manifest) XML() string {
	version := m.Version
	if version == "" {
		version = "0.1.0"
	}
	var b strings.Builder
	b.WriteString("<?xml version=\"1.0\"?>\n")
	b.WriteString("<package format=\"3\">\n")
	fmt.Fprintf(&b, "  <name>%s</name>\n", m.Name)
	fmt.Fprintf(&b, "  <version>%s</version>\n", version)
	if m.Description != "" {
		fmt.Fprintf(&b, "  <description>%s</description>\n", m.Description)
	}
	for _, tag := range []string{"depend", "exec_depend", "build_depend", "build_export_depend", "test_depend", "buildtool_depend"} {
		for _, dep := range m.Deps[tag] {
			fmt.Fprintf(&b, "  <%s>%s</%s>\n", tag, dep, tag)
		}
	}
	b.WriteString("</package>\n")
	return b.String()
}

// WriteManifest writes the manifest as dir/package.xml and returns the
// file path.
func WriteManifest(t *testing.T, dir string, m Manifest) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	path := filepath.Join(dir, "package.xml")
	require.NoError(t, os.WriteFile(path, []byte(m.XML()), 0o644))
	return path
}

// MakeInstallSpace lays out an install prefix with one share/<pkg>
// directory per manifest and returns the prefix path.
func MakeInstallSpace(t *testing.T, root string, manifests ...Manifest) string {
	t.Helper()
	for _, m := range manifests {
		WriteManifest(t, filepath.Join(root, "share", m.Name), m)
	}
	return root
}

// MakeSourceSpace lays out a source tree with one directory per
// manifest and returns the root path.
func MakeSourceSpace(t *testing.T, root string, manifests ...Manifest) string {
	t.Helper()
	for _, m := range manifests {
		WriteManifest(t, filepath.Join(root, m.Name), m)
	}
	return root
}

// MakeWorkspace lays out a colcon workspace (src plus optional install
// space) under root and returns the workspace path.
func MakeWorkspace(t *testing.T, root string, withInstall bool, manifests ...Manifest) string {
	t.Helper()
	MakeSourceSpace(t, filepath.Join(root, "src"), manifests...)
	if withInstall {
		MakeInstallSpace(t, filepath.Join(root, "install"), manifests...)
	}
	return root
}
