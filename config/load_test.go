package config

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crypticcoin/dpos/consensus/dpos/model"
)

func newTestCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "dposvoter"}
	InitializeFlags(cmd.Flags(), DefaultConfig())
	return cmd
}

func TestLoad_Defaults(t *testing.T) {
	cmd := newTestCmd()
	require.NoError(t, cmd.ParseFlags(nil))

	cfg, err := Load(cmd)
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.NumOfVoters)
	assert.Equal(t, 3, cfg.MinQuorum)
}

func TestLoad_FlagOverride(t *testing.T) {
	cmd := newTestCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--num-of-voters=7", "--min-quorum=5"}))

	cfg, err := Load(cmd)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.NumOfVoters)
	assert.Equal(t, 5, cfg.MinQuorum)
}

func TestLoad_RejectsInvalidQuorum(t *testing.T) {
	cmd := newTestCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--num-of-voters=4", "--min-quorum=2"}))

	_, err := Load(cmd)
	require.Error(t, err)
	assert.True(t, model.IsConfigurationError(err))
}

func TestValidate_RejectsEmptyArchiveDir(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ArchiveDir = ""
	err := cfg.Validate()
	require.Error(t, err)
	assert.True(t, model.IsConfigurationError(err))
}
