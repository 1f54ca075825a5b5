package adapters

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"

	"rostree/internal/ports"
	"rostree/internal/types"
)

// Scanner discovers ROS 2 workspaces by walking filesystem roots. It is
// independent of the locator but shares its manifest primitives.
type Scanner struct{}

func NewScanner() Scanner {
	return Scanner{}
}

func (s Scanner) Scan(opts types.ScanOptions) ([]types.WorkspaceInfo, error) {
	roots := opts.Roots
	if len(roots) == 0 {
		roots = defaultScanRoots(opts.IncludeHome, opts.IncludeSystem)
	}

	var workspaces []types.WorkspaceInfo
	seen := map[string]struct{}{}

	for _, root := range roots {
		canonical := canonicalPath(root)
		if !isDir(canonical) {
			continue
		}
		s.scanDir(canonical, 0, opts.MaxDepth, seen, &workspaces)
	}

	log.Debug().Int("workspaces", len(workspaces)).Msg("workspace scan complete")
	return workspaces, nil
}

// scanDir checks path at its own depth (the scan root is depth 0) and
// recurses into subdirectories up to maxDepth. A qualifying directory
// terminates its branch: workspaces do not nest. Hidden directories are
// never entered; permission errors abandon the branch silently.
func (s Scanner) scanDir(path string, depth, maxDepth int, seen map[string]struct{}, out *[]types.WorkspaceInfo) {
	if depth > maxDepth {
		return
	}
	if ws, ok := classifyWorkspace(path, seen); ok {
		*out = append(*out, ws)
		return
	}
	entries, err := os.ReadDir(path)
	if err != nil {
		return
	}
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		s.scanDir(filepath.Join(path, entry.Name()), depth+1, maxDepth, seen, out)
	}
}

// classifyWorkspace reports whether path qualifies as a workspace
// (contains src, install, or share) and builds its info. Already-seen
// canonical paths never qualify twice.
func classifyWorkspace(path string, seen map[string]struct{}) (types.WorkspaceInfo, bool) {
	canonical := canonicalPath(path)
	if _, dup := seen[canonical]; dup {
		return types.WorkspaceInfo{}, false
	}
	hasSrc := isDir(filepath.Join(path, "src"))
	hasInstall := isDir(filepath.Join(path, "install"))
	hasBuild := isDir(filepath.Join(path, "build"))
	hasShare := isDir(filepath.Join(path, "share"))
	if !hasSrc && !hasInstall && !hasShare {
		return types.WorkspaceInfo{}, false
	}
	seen[canonical] = struct{}{}

	ws := types.WorkspaceInfo{
		Path:       canonical,
		HasSource:  hasSrc,
		HasInstall: hasInstall || hasShare,
		HasBuild:   hasBuild,
		Packages:   []string{},
	}
	switch {
	case hasSrc:
		ws.Packages = sortedUnique(collectManifestNames(filepath.Join(path, "src")))
	case hasInstall:
		ws.Packages = listInstalledPackages(filepath.Join(path, "install"))
	case hasShare:
		ws.Packages = listInstalledPackages(path)
	}
	return ws, true
}

// listInstalledPackages lists package names from an install-style layout:
// the share subdirectory when present, the directory itself otherwise.
func listInstalledPackages(dir string) []string {
	target := dir
	if isDir(filepath.Join(dir, "share")) {
		target = filepath.Join(dir, "share")
	}
	var packages []string
	entries, err := os.ReadDir(target)
	if err != nil {
		return []string{}
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if isRegularFile(filepath.Join(target, entry.Name(), manifestFileName)) {
			packages = append(packages, entry.Name())
		}
	}
	sort.Strings(packages)
	if packages == nil {
		packages = []string{}
	}
	return packages
}

// defaultScanRoots assembles the host locations checked when no explicit
// roots are given: common workspace names and development directories
// under home, plus the installed ROS distros.
func defaultScanRoots(includeHome, includeSystem bool) []string {
	var roots []string
	if includeHome {
		if home, err := os.UserHomeDir(); err == nil {
			for _, pattern := range []string{"ros*_ws", "ros2_ws", "catkin_ws", "colcon_ws", "*_ws"} {
				matches, _ := filepath.Glob(filepath.Join(home, pattern))
				roots = append(roots, matches...)
			}
			for _, subdir := range []string{"dev", "src", "projects", "workspace", "workspaces"} {
				candidate := filepath.Join(home, subdir)
				if isDir(candidate) {
					roots = append(roots, candidate)
				}
			}
		}
	}
	if includeSystem {
		entries, err := os.ReadDir(systemInstallMarker)
		if err == nil {
			for _, entry := range entries {
				if entry.IsDir() {
					roots = append(roots, filepath.Join(systemInstallMarker, entry.Name()))
				}
			}
		}
	}
	return dedupe(roots)
}

func sortedUnique(names []string) []string {
	unique := dedupe(names)
	sort.Strings(unique)
	if unique == nil {
		unique = []string{}
	}
	return unique
}

var _ ports.ScannerPort = Scanner{}
