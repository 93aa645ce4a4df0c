package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGamesCommandTree(t *testing.T) {
	names := map[string]bool{}
	for _, c := range gamesCmd().Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"add", "list", "deactivate", "reset"} {
		assert.True(t, names[want], "missing games subcommand %q", want)
	}
}

func TestGamesResetRejectsBadID(t *testing.T) {
	cmd := gamesResetCmd()
	require.NotNil(t, cmd.Args(cmd, []string{}), "game id is required")
	assert.Error(t, cmd.RunE(cmd, []string{"not-a-uuid"}))
}
