package adapters

import (
	"bufio"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"rostree/internal/ports"
	"rostree/internal/types"
)

const manifestFileName = "package.xml"

// systemInstallMarker identifies ROS distro installs (e.g. /opt/ros/humble).
const systemInstallMarker = "/opt/ros"

// Locator resolves package names to manifest paths by searching install
// prefixes and workspace source trees. All lookups are driven by an
// explicit types.Discovery; the locator itself never reads the
// environment.
type Locator struct{}

func NewLocator() Locator {
	return Locator{}
}

func (l Locator) Find(name string, disc types.Discovery) (string, error) {
	for _, prefix := range installPrefixes(disc) {
		candidate := filepath.Join(prefix, "share", name, manifestFileName)
		if isRegularFile(candidate) {
			return candidate, nil
		}
	}

	for _, root := range sourceRoots(disc) {
		if path := findManifestInSrc(root, name); path != "" {
			return path, nil
		}
	}

	return "", errbuilder.New().
		WithCode(errbuilder.CodeNotFound).
		WithMsg("package not found: " + name)
}

func (l Locator) ListAll(disc types.Discovery) (map[string]string, error) {
	result := map[string]string{}

	// Install space first so it wins name collisions against source trees.
	for _, prefix := range installPrefixes(disc) {
		for pkg, path := range listShareManifests(prefix) {
			result[pkg] = path
		}
	}

	for _, root := range sourceRoots(disc) {
		walkManifests(root, func(path string) {
			name := extractManifestName(path)
			if name == "" {
				return
			}
			if _, ok := result[name]; !ok {
				result[name] = path
			}
		})
	}

	log.Debug().Int("packages", len(result)).Msg("package enumeration complete")
	return result, nil
}

func (l Locator) ListBySource(disc types.Discovery) ([]types.SourceGroup, error) {
	var groups []types.SourceGroup
	index := map[string]int{}
	seen := map[string]struct{}{}

	appendTo := func(kind types.SourceKind, root string, names []string) {
		key := string(kind) + "\x00" + root
		i, ok := index[key]
		if !ok {
			groups = append(groups, types.SourceGroup{Kind: kind, Root: root, Packages: []string{}})
			i = len(groups) - 1
			index[key] = i
		}
		for _, name := range names {
			if _, dup := seen[name]; dup {
				continue
			}
			seen[name] = struct{}{}
			groups[i].Packages = append(groups[i].Packages, name)
		}
	}

	var workspaceRoot string
	for _, prefix := range installPrefixes(disc) {
		share := filepath.Join(prefix, "share")
		if !isDir(share) {
			continue
		}
		var names []string
		for pkg := range listShareManifests(prefix) {
			names = append(names, pkg)
		}
		if strings.Contains(prefix, systemInstallMarker) {
			appendTo(types.SourceKindSystem, prefix, names)
			continue
		}
		root := workspaceRootFromPrefix(prefix)
		if workspaceRoot == "" || root == workspaceRoot {
			workspaceRoot = root
			appendTo(types.SourceKindWorkspace, root, names)
		} else {
			appendTo(types.SourceKindOther, root, names)
		}
	}

	srcRoots := dedupe(append(sourceRootsFromPrefixes(disc), sourceRootsFromWorkspaceEnv(disc)...))
	for _, root := range srcRoots {
		appendTo(types.SourceKindSource, root, collectManifestNames(root))
	}
	for _, root := range existingDirs(disc.ExtraRoots) {
		appendTo(types.SourceKindAdded, root, collectManifestNames(root))
	}

	for i := range groups {
		sort.Strings(groups[i].Packages)
	}
	return groups, nil
}

// installPrefixes returns the existing, canonicalized install prefixes in
// search order: AMENT_PREFIX_PATH entries before COLCON_PREFIX_PATH ones.
func installPrefixes(disc types.Discovery) []string {
	var prefixes []string
	prefixes = append(prefixes, existingDirs(disc.AmentPrefixes)...)
	prefixes = append(prefixes, existingDirs(disc.ColconPrefixes)...)
	return prefixes
}

// sourceRoots gathers every workspace src tree to search, canonicalized
// and deduplicated: src siblings of install prefixes, explicit workspace
// roots, then user-added roots.
func sourceRoots(disc types.Discovery) []string {
	var roots []string
	roots = append(roots, sourceRootsFromPrefixes(disc)...)
	roots = append(roots, sourceRootsFromWorkspaceEnv(disc)...)
	roots = append(roots, existingDirs(disc.ExtraRoots)...)
	return dedupe(roots)
}

// sourceRootsFromPrefixes derives src trees from install prefixes: walk
// upward until a directory named "install" is found, then take its
// sibling "src" if that exists. Colcon prefixes are consulted before
// ament ones, mirroring the historical lookup order for source trees.
func sourceRootsFromPrefixes(disc types.Discovery) []string {
	var roots []string
	ordered := append(existingDirs(disc.ColconPrefixes), existingDirs(disc.AmentPrefixes)...)
	for _, prefix := range ordered {
		installDir := findAncestorNamed(prefix, "install")
		if installDir == "" {
			continue
		}
		src := filepath.Join(filepath.Dir(installDir), "src")
		if isDir(src) {
			roots = append(roots, src)
		}
	}
	return dedupe(roots)
}

// sourceRootsFromWorkspaceEnv resolves explicit workspace roots, using
// the root's src subdirectory when present and the root itself otherwise.
func sourceRootsFromWorkspaceEnv(disc types.Discovery) []string {
	var roots []string
	for _, root := range existingDirs(disc.WorkspaceRoots) {
		if src := filepath.Join(root, "src"); isDir(src) {
			roots = append(roots, src)
		} else {
			roots = append(roots, root)
		}
	}
	return dedupe(roots)
}

// workspaceRootFromPrefix maps an install prefix back to its workspace
// root (the parent of the install directory).
func workspaceRootFromPrefix(prefix string) string {
	if filepath.Base(prefix) == "install" {
		return filepath.Dir(prefix)
	}
	if filepath.Base(filepath.Dir(prefix)) == "install" {
		return filepath.Dir(filepath.Dir(prefix))
	}
	return prefix
}

func findAncestorNamed(path, name string) string {
	for p := path; ; {
		if filepath.Base(p) == name {
			return p
		}
		parent := filepath.Dir(p)
		if parent == p {
			return ""
		}
		p = parent
	}
}

// findManifestInSrc walks a source tree looking for a package.xml whose
// <name> element matches. The match is a line-scan for the literal
// "<name>pkg</name>" pattern, not a full parse; the parser validates any
// hit later. Traversal order follows filesystem iteration order.
func findManifestInSrc(root, name string) string {
	needle := "<name>" + name + "</name>"
	var found string
	walkManifests(root, func(path string) {
		if found != "" {
			return
		}
		if manifestNameLineMatches(path, needle) {
			found = path
		}
	})
	return found
}

// manifestNameLineMatches scans a manifest line by line for the literal
// needle, stopping at the first line containing a <name> element.
func manifestNameLineMatches(path, needle string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.Contains(line, "<name>") {
			continue
		}
		return strings.Contains(line, needle)
	}
	return false
}

// extractManifestName pulls the <name> text out of a manifest with the
// same line-scan shortcut used for matching. Returns "" when no name
// line is found.
func extractManifestName(path string) string {
	f, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer f.Close()
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		start := strings.Index(line, "<name>")
		if start < 0 {
			continue
		}
		end := strings.Index(line, "</name>")
		if end < 0 || end < start {
			return ""
		}
		return strings.TrimSpace(line[start+len("<name>") : end])
	}
	return ""
}

// walkManifests calls fn for every package.xml under root. Read and
// permission errors are swallowed; the affected branch is skipped.
func walkManifests(root string, fn func(path string)) {
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.IsDir() && d.Name() == manifestFileName {
			fn(path)
		}
		return nil
	})
}

// listShareManifests enumerates the immediate share/<pkg>/package.xml
// entries of an install prefix.
func listShareManifests(prefix string) map[string]string {
	result := map[string]string{}
	share := filepath.Join(prefix, "share")
	entries, err := os.ReadDir(share)
	if err != nil {
		return result
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		manifest := filepath.Join(share, entry.Name(), manifestFileName)
		if isRegularFile(manifest) {
			result[entry.Name()] = manifest
		}
	}
	return result
}

// collectManifestNames walks a source tree and returns every manifest
// name found, in traversal order.
func collectManifestNames(root string) []string {
	var names []string
	walkManifests(root, func(path string) {
		if name := extractManifestName(path); name != "" {
			names = append(names, name)
		}
	})
	return names
}

// existingDirs filters a path list down to existing directories in
// canonical form. Blank entries are dropped.
func existingDirs(paths []string) []string {
	var out []string
	for _, raw := range paths {
		p := strings.TrimSpace(raw)
		if p == "" {
			continue
		}
		canonical := canonicalPath(p)
		if isDir(canonical) {
			out = append(out, canonical)
		}
	}
	return out
}

func dedupe(paths []string) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, p := range paths {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func isRegularFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

var _ ports.LocatorPort = Locator{}
