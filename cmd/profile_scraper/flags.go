package main

import (
	"github.com/jonathan/profile-scraper/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// addConfigFlags registers the flags that override config file and environment values.
func addConfigFlags(fs *pflag.FlagSet) {
	fs.StringP("urls", "u", "", "File with one profile URL per line (default urls.txt)")
	fs.StringP("output", "o", "", "Output CSV file (default outputs/improved_profiles.csv)")
	fs.IntP("max", "n", 0, "Maximum number of profiles to process (default 20)")
	fs.String("fetch-mode", "", "Page source: browser or http (default browser)")
	fs.Bool("headless", true, "Run the browser without a window")
	fs.Bool("manual-login", false, "Open the login page and wait for ENTER before scraping")
	fs.String("user-data-dir", "", "Chrome profile directory to reuse between runs")
	fs.Duration("page-timeout", 0, "Timeout for a single page load (default 60s)")
	fs.Int("retries", 0, "Retries for a failed page load (default 2)")
	fs.String("database-url", "", "Also write records to this PostgreSQL database")
}

// applyConfigFlags copies every flag the user actually set into cfg.
func applyConfigFlags(fs *pflag.FlagSet, cfg *config.Config) error {
	strs := map[string]*string{
		"urls":          &cfg.URLsFile,
		"output":        &cfg.OutputCSV,
		"fetch-mode":    &cfg.FetchMode,
		"user-data-dir": &cfg.UserDataDir,
		"database-url":  &cfg.DatabaseURL,
	}
	for name, dst := range strs {
		if !fs.Changed(name) {
			continue
		}
		v, err := fs.GetString(name)
		if err != nil {
			return err
		}
		*dst = v
	}

	ints := map[string]*int{"max": &cfg.MaxProfiles, "retries": &cfg.MaxRetries}
	for name, dst := range ints {
		if !fs.Changed(name) {
			continue
		}
		v, err := fs.GetInt(name)
		if err != nil {
			return err
		}
		*dst = v
	}

	if fs.Changed("page-timeout") {
		d, err := fs.GetDuration("page-timeout")
		if err != nil {
			return err
		}
		cfg.PageTimeout = d
	}

	if fs.Changed("manual-login") {
		v, err := fs.GetBool("manual-login")
		if err != nil {
			return err
		}
		cfg.ManualLogin = v
		// Logging in needs a visible window unless headless was asked for explicitly.
		if v && !fs.Changed("headless") {
			headless := false
			cfg.Headless = &headless
		}
	}
	if fs.Changed("headless") {
		v, err := fs.GetBool("headless")
		if err != nil {
			return err
		}
		cfg.Headless = &v
	}
	return nil
}

// effectiveConfig merges the config file, the environment and the command's flags.
func effectiveConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return config.Config{}, err
	}
	if err := applyConfigFlags(cmd.Flags(), &cfg); err != nil {
		return config.Config{}, err
	}
	if verbose {
		cfg.Verbose = true
	}
	return cfg, nil
}
