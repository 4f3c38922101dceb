package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jonathan/profile-scraper/internal/config"
	"github.com/stretchr/testify/require"
)

// getBinaryPath returns the path to the profile_scraper binary for testing
func getBinaryPath(t *testing.T) string {
	binaryName := "profile_scraper"
	if testing.Short() {
		t.Skip("Skipping CLI tests in short mode")
	}

	binaryPath, err := filepath.Abs(filepath.Join("..", "..", "bin", binaryName))
	require.NoError(t, err)
	if _, err := os.Stat(binaryPath); os.IsNotExist(err) {
		t.Skipf("Binary not found at %s, build it first with 'make build'", binaryPath)
	}

	return binaryPath
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// isolatedEnv strips scraper overrides so a developer's .env cannot leak into binary runs.
func isolatedEnv() []string {
	var env []string
	for _, kv := range os.Environ() {
		if strings.HasPrefix(kv, "DATABASE_URL=") || strings.HasPrefix(kv, config.EnvPrefix) {
			continue
		}
		env = append(env, kv)
	}
	return env
}
