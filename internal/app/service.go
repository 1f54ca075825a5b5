package app

import (
	"rostree/internal/adapters"
	"rostree/internal/core"
	"rostree/internal/ports"
	"rostree/internal/types"
)

// Service wires the discovery adapters behind their ports and exposes the
// read-only operations consumed by the CLI, TUI, and web API. Everything
// is computed fresh per call; the only state is the manifest parser's
// read-through cache.
type Service struct {
	Locator   ports.LocatorPort
	Manifest  ports.ManifestPort
	Scanner   ports.ScannerPort
	Discovery types.Discovery
	Filter    types.DependencyFilter
}

func NewService() *Service {
	return &Service{
		Locator:   adapters.NewLocator(),
		Manifest:  adapters.NewManifestXMLAdapter(),
		Scanner:   adapters.NewScanner(),
		Discovery: adapters.DiscoveryFromEnv(),
		Filter:    types.DefaultDependencyFilter(),
	}
}

func (s *Service) builder() core.TreeBuilder {
	return core.NewTreeBuilder(s.Locator, s.Manifest)
}

func (s *Service) discovery(extraRoots []string) types.Discovery {
	return s.Discovery.WithExtraRoots(extraRoots)
}
