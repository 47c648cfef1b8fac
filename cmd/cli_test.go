package cmd

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRootCommand_RegistersSubcommands(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}

	for _, want := range []string{"session", "record", "play", "set", "cues", "bank", "config"} {
		require.True(t, names[want], "missing subcommand %q", want)
	}
}

func TestBankCommand_HasExportAndImport(t *testing.T) {
	names := map[string]bool{}
	for _, c := range bankCmd.Commands() {
		names[c.Name()] = true
	}
	require.True(t, names["export"])
	require.True(t, names["import"])
}
