package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkspaceInfoIsValid(t *testing.T) {
	assert.True(t, WorkspaceInfo{HasSource: true}.IsValid())
	assert.True(t, WorkspaceInfo{HasInstall: true}.IsValid())
	assert.False(t, WorkspaceInfo{HasBuild: true}.IsValid())
}

func TestWorkspaceInfoJSONIncludesValidity(t *testing.T) {
	ws := WorkspaceInfo{
		Path:      "/home/dev/ros2_ws",
		HasSource: true,
		Packages:  []string{"pkg_a"},
	}
	data, err := json.Marshal(ws)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, true, decoded["is_valid"])
	assert.Equal(t, "/home/dev/ros2_ws", decoded["path"])
}

func TestSourceGroupLabel(t *testing.T) {
	group := SourceGroup{Kind: SourceKindSystem, Root: "/opt/ros/humble"}
	assert.Equal(t, "System (/opt/ros/humble)", group.Label())
}
