package app

import (
	"context"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"rostree/internal/core"
	"rostree/internal/types"
)

// Graph builds dependency trees for every requested package and flattens
// them into a textual graph description.
func (s *Service) Graph(ctx context.Context, req GraphRequest) (GraphResult, error) {
	if len(req.Packages) == 0 {
		return GraphResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("no packages to graph")
	}
	if req.Format != "dot" && req.Format != "mermaid" {
		return GraphResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("graph format must be dot or mermaid")
	}

	builder := s.builder()
	disc := s.discovery(req.ExtraRoots)
	opts := core.BuildOptions{
		MaxDepth:    req.MaxDepth,
		RuntimeOnly: req.RuntimeOnly,
		Filter:      &s.Filter,
	}

	var roots []*types.DependencyNode
	for _, pkg := range req.Packages {
		node := builder.Build(ctx, pkg, opts, disc)
		if node.Status == types.NodeStatusResolved {
			roots = append(roots, node)
		} else {
			log.Ctx(ctx).Warn().Str("package", pkg).Str("status", string(node.Status)).Msg("skipping unresolvable graph root")
		}
	}
	if len(roots) == 0 {
		return GraphResult{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("no valid package trees found")
	}

	graphOpts := core.GraphOptions{Title: req.Title, HighlightRoots: true}
	output := core.ToDOT(roots, graphOpts)
	if req.Format == "mermaid" {
		output = core.ToMermaid(roots, graphOpts)
	}
	return GraphResult{Output: output, Roots: len(roots)}, nil
}
