package adapters

import (
	"os"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"rostree/internal/types"
)

// LoadDependencyFilter reads a dependency-filter definition from a YAML
// file. Fields left empty in the file fall back to the built-in defaults,
// so a file can override just the denylist or just the prefixes.
func LoadDependencyFilter(path string) (types.DependencyFilter, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.DependencyFilter{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("filter file not found").
			WithCause(err)
	}
	var filter types.DependencyFilter
	if err := yaml.Unmarshal(data, &filter); err != nil {
		return types.DependencyFilter{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse filter yaml").
			WithCause(err)
	}
	defaults := types.DefaultDependencyFilter()
	if filter.Deny == nil {
		filter.Deny = defaults.Deny
	}
	if filter.DenyPrefixes == nil {
		filter.DenyPrefixes = defaults.DenyPrefixes
	}
	return filter, nil
}
