package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRootCommand_RegistersAllFourSubcommands(t *testing.T) {
	root := NewRootCommand()
	names := map[string]bool{}
	for _, c := range root.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["describe"])
	assert.True(t, names["review"])
	assert.True(t, names["check-reviewed"])
	assert.True(t, names["healthcheck"])
}

func TestNewRootCommand_HasVerbosePersistentFlag(t *testing.T) {
	root := NewRootCommand()
	flag := root.PersistentFlags().Lookup("verbose")
	require.NotNil(t, flag)
	assert.Equal(t, "false", flag.DefValue)
}

func TestNewRootCommand_GroupsArtifactsAndDiagnostics(t *testing.T) {
	root := NewRootCommand()
	groups := map[string]bool{}
	for _, g := range root.Groups() {
		groups[g.ID] = true
	}
	assert.True(t, groups["artifacts"])
	assert.True(t, groups["diagnostics"])
}

func TestDescribeAndReviewCommands_AreInArtifactsGroup(t *testing.T) {
	root := NewRootCommand()
	for _, c := range root.Commands() {
		if c.Name() == "describe" || c.Name() == "review" {
			assert.Equal(t, "artifacts", c.GroupID)
		}
		if c.Name() == "check-reviewed" || c.Name() == "healthcheck" {
			assert.Equal(t, "diagnostics", c.GroupID)
		}
	}
}
