// Package testutil provides utilities for testing the resolver in isolation.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// SetupTestEnv creates an isolated working directory for resolver tests and
// returns it. Tests inject it as the resolver's WorkDir so version
// directories and log files never land in the real working directory.
// Cleanup is handled by t.TempDir().
func SetupTestEnv(t *testing.T) string {
	t.Helper()
	return t.TempDir()
}

// WriteExecutable creates a fake binary file at dir/name with the
// executable bit set and returns its path.
func WriteExecutable(t *testing.T, dir, name string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("create parent dir: %v", err)
	}
	if err := os.WriteFile(path, []byte("#!/bin/sh\nexit 0\n"), 0755); err != nil {
		t.Fatalf("write executable: %v", err)
	}
	return path
}
