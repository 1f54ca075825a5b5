package adapters

import (
	"encoding/xml"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"rostree/internal/ports"
	"rostree/internal/types"
)

// ManifestXMLAdapter parses package.xml files. Parsed manifests are
// cached keyed by path and modification time so repeated lookups during
// tree construction do not re-read unchanged files.
type ManifestXMLAdapter struct {
	mu    sync.Mutex
	cache map[string]manifestCacheEntry
}

func NewManifestXMLAdapter() *ManifestXMLAdapter {
	return &ManifestXMLAdapter{cache: map[string]manifestCacheEntry{}}
}

type manifestXML struct {
	XMLName     xml.Name `xml:"package"`
	Name        string   `xml:"name"`
	Version     string   `xml:"version"`
	Description string   `xml:"description"`

	// Standard ROS dependency tags (REP-149 / REP-140)
	Depend         []simpleDepend `xml:"depend"`
	ExecDepend     []simpleDepend `xml:"exec_depend"`
	BuildDepend    []simpleDepend `xml:"build_depend"`
	BuildExportDep []simpleDepend `xml:"build_export_depend"`
	TestDepend     []simpleDepend `xml:"test_depend"`
	BuildtoolDep   []simpleDepend `xml:"buildtool_depend"`
}

type simpleDepend struct {
	Value string `xml:",chardata"`
}

type manifestCacheEntry struct {
	modTime     time.Time
	name        string
	version     string
	description string
	path        string
	depsByTag   map[types.DependencyTag][]string
}

func (a *ManifestXMLAdapter) Parse(path string, opts types.ParseOptions) (*types.PackageRecord, error) {
	entry, err := a.loadManifest(path)
	if err != nil {
		return nil, err
	}

	tags := opts.Tags
	if len(tags) == 0 {
		tags = types.DefaultDependencyTags()
	}
	filter := types.DefaultDependencyFilter()
	if opts.Filter != nil {
		filter = *opts.Filter
	}

	seen := map[string]struct{}{}
	var deps []string
	for _, tag := range tags {
		for _, dep := range entry.depsByTag[tag] {
			if !filter.Accept(dep) {
				continue
			}
			if _, ok := seen[dep]; ok {
				continue
			}
			seen[dep] = struct{}{}
			deps = append(deps, dep)
		}
	}

	return &types.PackageRecord{
		Name:         entry.name,
		Version:      entry.version,
		Description:  entry.description,
		Path:         entry.path,
		Dependencies: deps,
	}, nil
}

func (a *ManifestXMLAdapter) loadManifest(path string) (manifestCacheEntry, error) {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return manifestCacheEntry{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("failed to read package.xml").
			WithCause(err)
	}
	a.mu.Lock()
	if entry, ok := a.cache[path]; ok && entry.modTime.Equal(info.ModTime()) {
		a.mu.Unlock()
		return entry, nil
	}
	a.mu.Unlock()

	content, err := os.ReadFile(path)
	if err != nil {
		return manifestCacheEntry{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("failed to read package.xml").
			WithCause(err)
	}
	var pkg manifestXML
	if err := xml.Unmarshal(content, &pkg); err != nil {
		return manifestCacheEntry{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse package.xml").
			WithCause(err)
	}
	name := strings.TrimSpace(pkg.Name)
	if name == "" {
		return manifestCacheEntry{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("package.xml has no name element")
	}

	entry := manifestCacheEntry{
		modTime:     info.ModTime(),
		name:        name,
		version:     strings.TrimSpace(pkg.Version),
		description: strings.TrimSpace(pkg.Description),
		path:        canonicalPath(path),
		depsByTag: map[types.DependencyTag][]string{
			types.TagDepend:            dependValues(pkg.Depend),
			types.TagExecDepend:        dependValues(pkg.ExecDepend),
			types.TagBuildDepend:       dependValues(pkg.BuildDepend),
			types.TagBuildExportDepend: dependValues(pkg.BuildExportDep),
			types.TagTestDepend:        dependValues(pkg.TestDepend),
			types.TagBuildtoolDepend:   dependValues(pkg.BuildtoolDep),
		},
	}

	a.mu.Lock()
	a.cache[path] = entry
	a.mu.Unlock()
	return entry, nil
}

func dependValues(deps []simpleDepend) []string {
	var values []string
	for _, dep := range deps {
		if value := strings.TrimSpace(dep.Value); value != "" {
			values = append(values, value)
		}
	}
	return values
}

// canonicalPath resolves symlinks and makes the path absolute. Falls back
// to the cleaned input when resolution fails.
func canonicalPath(path string) string {
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		resolved = path
	}
	abs, err := filepath.Abs(resolved)
	if err != nil {
		return filepath.Clean(resolved)
	}
	return abs
}

var _ ports.ManifestPort = (*ManifestXMLAdapter)(nil)
