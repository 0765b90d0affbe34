package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"
)

// cliResult holds the output of one CLI run.
type cliResult struct {
	stdout string
	stderr string
	err    error
}

// runCLI executes the root command with an empty configuration file and a
// private database directory, so no user settings leak into the test.
func runCLI(t *testing.T, stdin io.Reader, dbDir string, args ...string) cliResult {
	t.Helper()

	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("batch:\n  size: 2\n"), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	if dbDir == "" {
		dbDir = t.TempDir()
	}

	var stdout, stderr bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	if stdin != nil {
		cmd.SetIn(stdin)
	} else {
		cmd.SetIn(bytes.NewReader(nil))
	}
	cmd.SetArgs(append([]string{"--config", configPath, "--db-dir", dbDir}, args...))

	err := cmd.Execute()
	return cliResult{stdout: stdout.String(), stderr: stderr.String(), err: err}
}
