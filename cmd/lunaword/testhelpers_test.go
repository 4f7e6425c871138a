package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

// execute runs the root command with cfgPath and args and returns what it printed.
func execute(t *testing.T, cfgPath string, args ...string) (string, error) {
	t.Helper()
	return executeWithInput(t, "", cfgPath, args...)
}

func executeWithInput(t *testing.T, input string, cfgPath string, args ...string) (string, error) {
	t.Helper()
	oldConfigFile, oldUsername := configFile, username
	t.Cleanup(func() {
		configFile = oldConfigFile
		username = oldUsername
	})

	var stdout bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stdout)
	cmd.SetIn(strings.NewReader(input))
	cmd.SetArgs(append([]string{"--config", cfgPath}, args...))
	err := cmd.Execute()
	return stdout.String(), err
}

func findCommand(t *testing.T, root *cobra.Command, args ...string) *cobra.Command {
	t.Helper()
	cmd, _, err := root.Find(args)
	require.NoError(t, err)
	return cmd
}
