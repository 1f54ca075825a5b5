package app

import (
	"context"

	"rostree/internal/types"
)

// List enumerates every discoverable package, mapping name to manifest
// path. Install-space entries win name collisions.
func (s *Service) List(ctx context.Context, req ListRequest) (map[string]string, error) {
	return s.Locator.ListAll(s.discovery(req.ExtraRoots))
}

// ListBySource enumerates packages grouped by originating root.
func (s *Service) ListBySource(ctx context.Context, req ListRequest) ([]types.SourceGroup, error) {
	return s.Locator.ListBySource(s.discovery(req.ExtraRoots))
}

// Scan discovers workspaces on the host.
func (s *Service) Scan(ctx context.Context, req ScanRequest) ([]types.WorkspaceInfo, error) {
	return s.Scanner.Scan(types.ScanOptions{
		Roots:         req.Roots,
		MaxDepth:      req.MaxDepth,
		IncludeHome:   req.IncludeHome,
		IncludeSystem: req.IncludeSystem,
	})
}

// WorkspacePackages returns the packages graphed for a workspace-wide
// view: the contents of an explicit workspace path, or every non-system
// package visible through discovery when path is empty.
func (s *Service) WorkspacePackages(ctx context.Context, workspacePath string, extraRoots []string) ([]string, error) {
	if workspacePath != "" {
		infos, err := s.Scanner.Scan(types.ScanOptions{Roots: []string{workspacePath}, MaxDepth: 0})
		if err != nil {
			return nil, err
		}
		var packages []string
		for _, info := range infos {
			packages = append(packages, info.Packages...)
		}
		return packages, nil
	}

	groups, err := s.Locator.ListBySource(s.discovery(extraRoots))
	if err != nil {
		return nil, err
	}
	var packages []string
	for _, group := range groups {
		if group.Kind == types.SourceKindSystem {
			continue
		}
		packages = append(packages, group.Packages...)
	}
	return packages, nil
}
