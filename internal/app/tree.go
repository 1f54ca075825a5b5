package app

import (
	"context"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"rostree/internal/core"
	"rostree/internal/types"
)

// Tree builds the dependency tree for one package. The returned node is
// never nil: unresolvable roots come back with a failure status, which
// callers render in place.
func (s *Service) Tree(ctx context.Context, req TreeRequest) (*types.DependencyNode, error) {
	if req.Package == "" {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("package name must not be empty")
	}
	node := s.builder().Build(ctx, req.Package, core.BuildOptions{
		MaxDepth:         req.MaxDepth,
		RuntimeOnly:      req.RuntimeOnly,
		IncludeBuildtool: req.IncludeBuildtool,
		Filter:           &s.Filter,
	}, s.discovery(req.ExtraRoots))
	return node, nil
}

// PackageInfo resolves and parses a single package manifest.
func (s *Service) PackageInfo(ctx context.Context, req InfoRequest) (*types.PackageRecord, error) {
	if req.Package == "" {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("package name must not be empty")
	}
	path, err := s.Locator.Find(req.Package, s.discovery(req.ExtraRoots))
	if err != nil {
		return nil, err
	}
	return s.Manifest.Parse(path, types.ParseOptions{Filter: &s.Filter})
}
