package main

import (
	"testing"
	"time"

	"github.com/jonathan/profile-scraper/internal/config"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	addConfigFlags(fs)
	require.NoError(t, fs.Parse(args))
	return fs
}

func TestApplyConfigFlags_OnlyChangedFlags(t *testing.T) {
	cfg := config.Default()
	fs := parseFlags(t, "--urls", "batch.txt", "-n", "5", "--page-timeout", "15s")

	require.NoError(t, applyConfigFlags(fs, &cfg))

	assert.Equal(t, "batch.txt", cfg.URLsFile)
	assert.Equal(t, 5, cfg.MaxProfiles)
	assert.Equal(t, 15*time.Second, cfg.PageTimeout)
	assert.Equal(t, "outputs/improved_profiles.csv", cfg.OutputCSV)
	assert.Equal(t, config.FetchModeBrowser, cfg.FetchMode)
	assert.Equal(t, 2, cfg.MaxRetries)
	assert.True(t, cfg.HeadlessEnabled())
}

func TestApplyConfigFlags_AllFlags(t *testing.T) {
	cfg := config.Default()
	fs := parseFlags(t,
		"-u", "in.txt",
		"-o", "out.csv",
		"--fetch-mode", "http",
		"--user-data-dir", "/tmp/chrome",
		"--retries", "4",
		"--database-url", "postgres://u:p@localhost/db",
	)

	require.NoError(t, applyConfigFlags(fs, &cfg))

	assert.Equal(t, "in.txt", cfg.URLsFile)
	assert.Equal(t, "out.csv", cfg.OutputCSV)
	assert.Equal(t, config.FetchModeHTTP, cfg.FetchMode)
	assert.Equal(t, "/tmp/chrome", cfg.UserDataDir)
	assert.Equal(t, 4, cfg.MaxRetries)
	assert.Equal(t, "postgres://u:p@localhost/db", cfg.DatabaseURL)
}

func TestApplyConfigFlags_ManualLoginShowsWindow(t *testing.T) {
	cfg := config.Default()
	fs := parseFlags(t, "--manual-login")

	require.NoError(t, applyConfigFlags(fs, &cfg))

	assert.True(t, cfg.ManualLogin)
	assert.False(t, cfg.HeadlessEnabled())
	assert.NoError(t, cfg.Validate())
}

func TestApplyConfigFlags_ExplicitHeadlessWins(t *testing.T) {
	cfg := config.Default()
	fs := parseFlags(t, "--manual-login", "--headless=true")

	require.NoError(t, applyConfigFlags(fs, &cfg))

	assert.True(t, cfg.HeadlessEnabled())
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "manual_login")
}

func TestApplyConfigFlags_HeadlessFalse(t *testing.T) {
	cfg := config.Default()
	fs := parseFlags(t, "--headless=false")

	require.NoError(t, applyConfigFlags(fs, &cfg))

	assert.False(t, cfg.HeadlessEnabled())
	assert.False(t, cfg.ManualLogin)
}
