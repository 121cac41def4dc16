package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"
)

func init() {
	color.NoColor = true
}

// setConfigFile sets the global configFile variable and registers a cleanup to restore it.
func setConfigFile(t *testing.T, cfgPath string) {
	t.Helper()
	oldConfigFile := configFile
	configFile = cfgPath
	t.Cleanup(func() { configFile = oldConfigFile })
}

// setupBrokenConfigFile creates a config file with invalid YAML that causes Load() to fail.
func setupBrokenConfigFile(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("{{invalid yaml content"), 0644))
	return cfgPath
}

// execute runs the root command with args and returns what it wrote to stdout and stderr.
func execute(t *testing.T, cfgPath string, stdin string, args ...string) (string, string, error) {
	t.Helper()
	setConfigFile(t, cfgPath)

	var stdout, stderr bytes.Buffer
	cmd := newRootCommand()
	cmd.SetArgs(append([]string{"--config", cfgPath}, args...))
	cmd.SetIn(bytes.NewBufferString(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}
