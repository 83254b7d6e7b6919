package main

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["serve"])
	assert.True(t, names["migrate"])

	status, _, err := rootCmd.Find([]string{"migrate", "status"})
	require.NoError(t, err)
	assert.Equal(t, "status", status.Name())
}

func TestServeFlags(t *testing.T) {
	for _, cmd := range []*cobra.Command{rootCmd, serveCmd} {
		autoMigrate, err := cmd.Flags().GetBool("auto-migrate")
		require.NoError(t, err)
		assert.True(t, autoMigrate)

		timeout := cmd.Flags().Lookup("shutdown-timeout")
		require.NotNil(t, timeout)
		assert.Equal(t, "10s", timeout.DefValue)
	}
}
