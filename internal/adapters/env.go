package adapters

import (
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"rostree/internal/types"
)

// Environment variables consulted for package discovery. Absence or
// emptiness means "no entries", never an error.
const (
	EnvAmentPrefixPath  = "AMENT_PREFIX_PATH"
	EnvColconPrefixPath = "COLCON_PREFIX_PATH"
	EnvROS2Workspace    = "ROS2_WORKSPACE"
	EnvColconWorkspace  = "COLCON_WORKSPACE"
)

// DiscoveryFromEnv captures the ROS environment once, at the process
// boundary. Entries are kept raw here; existence filtering and
// canonicalization happen inside the locator.
func DiscoveryFromEnv() types.Discovery {
	disc := types.Discovery{
		AmentPrefixes:  splitPathList(os.Getenv(EnvAmentPrefixPath)),
		ColconPrefixes: splitPathList(os.Getenv(EnvColconPrefixPath)),
		WorkspaceRoots: append(
			splitPathList(os.Getenv(EnvROS2Workspace)),
			splitPathList(os.Getenv(EnvColconWorkspace))...,
		),
	}
	log.Debug().
		Int("ament_prefixes", len(disc.AmentPrefixes)).
		Int("colcon_prefixes", len(disc.ColconPrefixes)).
		Int("workspace_roots", len(disc.WorkspaceRoots)).
		Msg("discovery roots from environment")
	return disc
}

func splitPathList(value string) []string {
	if value == "" {
		return nil
	}
	return filepath.SplitList(value)
}
