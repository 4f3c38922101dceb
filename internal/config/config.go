// Package config provides configuration loading and validation for the CLI.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "PROFILE_SCRAPER_"

// Fetch modes.
const (
	FetchModeBrowser = "browser"
	FetchModeHTTP    = "http"
)

// Config represents the scraper settings. Every field is optional in the YAML file; missing
// values are filled by MergeWithDefaults and CLI flags win over everything else.
type Config struct {
	// Paths
	URLsFile  string `yaml:"urls_file" validate:"required"`  // One profile URL per line
	OutputCSV string `yaml:"output_csv" validate:"required"` // Destination CSV file

	// Batch
	MaxProfiles int `yaml:"max_profiles" validate:"gte=0"` // Cap on URLs taken from the file

	// Fetching
	FetchMode   string        `yaml:"fetch_mode" validate:"omitempty,oneof=browser http"`
	Headless    *bool         `yaml:"headless,omitempty"`          // Browser mode only, default true
	ManualLogin bool          `yaml:"manual_login"`                // Wait for an interactive login first
	UserDataDir string        `yaml:"user_data_dir,omitempty"`     // Chrome profile directory
	PageTimeout time.Duration `yaml:"page_timeout"`                // Per page load
	SettleDelay time.Duration `yaml:"settle_delay"`                // After the body is ready
	MaxRetries  int           `yaml:"max_retries" validate:"gte=0,lte=10"`

	// Pacing
	PoliteDelayMin  time.Duration `yaml:"polite_delay_min"`
	PoliteDelayMax  time.Duration `yaml:"polite_delay_max"`
	ErrorBackoffMin time.Duration `yaml:"error_backoff_min"`
	ErrorBackoffMax time.Duration `yaml:"error_backoff_max"`

	// Storage
	DatabaseURL string `yaml:"database_url,omitempty" validate:"omitempty,url"` // Optional Postgres sink

	// Behavior
	Verbose bool `yaml:"verbose"`
}

// Default returns the built-in settings.
func Default() Config {
	headless := true
	return Config{
		URLsFile:        "urls.txt",
		OutputCSV:       "outputs/improved_profiles.csv",
		MaxProfiles:     20,
		FetchMode:       FetchModeBrowser,
		Headless:        &headless,
		PageTimeout:     60 * time.Second,
		SettleDelay:     2 * time.Second,
		MaxRetries:      2,
		PoliteDelayMin:  2 * time.Second,
		PoliteDelayMax:  4 * time.Second,
		ErrorBackoffMin: 3 * time.Second,
		ErrorBackoffMax: 6 * time.Second,
	}
}

// LoadConfig loads configuration from a YAML file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	return &cfg, nil
}

// Load builds the effective configuration: the YAML file at path (optional), then environment
// overrides, then defaults for whatever is still unset. CLI flags are applied by the caller.
func Load(path string) (Config, error) {
	cfg := &Config{}
	if path != "" {
		loaded, err := LoadConfig(path)
		if err != nil {
			return Config{}, err
		}
		cfg = loaded
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	return cfg.MergeWithDefaults(Default()), nil
}

// ApplyEnv overrides fields from PROFILE_SCRAPER_* variables and DATABASE_URL.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	get := func(name string) (string, bool) {
		v, ok := lookup(EnvPrefix + name)
		return strings.TrimSpace(v), ok && strings.TrimSpace(v) != ""
	}

	if v, ok := get("URLS_FILE"); ok {
		c.URLsFile = v
	}
	if v, ok := get("OUTPUT_CSV"); ok {
		c.OutputCSV = v
	}
	if v, ok := get("FETCH_MODE"); ok {
		c.FetchMode = strings.ToLower(v)
	}
	if v, ok := get("USER_DATA_DIR"); ok {
		c.UserDataDir = v
	}
	if v, ok := lookup("DATABASE_URL"); ok && v != "" {
		c.DatabaseURL = v
	}
	if v, ok := get("DATABASE_URL"); ok {
		c.DatabaseURL = v
	}

	ints := map[string]*int{
		"MAX_PROFILES": &c.MaxProfiles,
		"MAX_RETRIES":  &c.MaxRetries,
	}
	for name, dst := range ints {
		if v, ok := get(name); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("config error: invalid %s%s: %w", EnvPrefix, name, err)
			}
			*dst = n
		}
	}

	durations := map[string]*time.Duration{
		"PAGE_TIMEOUT":      &c.PageTimeout,
		"SETTLE_DELAY":      &c.SettleDelay,
		"POLITE_DELAY_MIN":  &c.PoliteDelayMin,
		"POLITE_DELAY_MAX":  &c.PoliteDelayMax,
		"ERROR_BACKOFF_MIN": &c.ErrorBackoffMin,
		"ERROR_BACKOFF_MAX": &c.ErrorBackoffMax,
	}
	for name, dst := range durations {
		if v, ok := get(name); ok {
			d, err := time.ParseDuration(v)
			if err != nil {
				return fmt.Errorf("config error: invalid %s%s: %w", EnvPrefix, name, err)
			}
			*dst = d
		}
	}

	bools := map[string]**bool{"HEADLESS": &c.Headless}
	for name, dst := range bools {
		if v, ok := get(name); ok {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("config error: invalid %s%s: %w", EnvPrefix, name, err)
			}
			*dst = &b
		}
	}
	for name, dst := range map[string]*bool{"MANUAL_LOGIN": &c.ManualLogin, "VERBOSE": &c.Verbose} {
		if v, ok := get(name); ok {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("config error: invalid %s%s: %w", EnvPrefix, name, err)
			}
			*dst = b
		}
	}
	return nil
}

// HeadlessEnabled reports the headless setting, true when unset.
func (c *Config) HeadlessEnabled() bool {
	return c.Headless == nil || *c.Headless
}

var validate = validator.New()

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return fmt.Errorf("config error: '%s' failed the '%s' check", fe.Field(), fe.Tag())
		}
		return fmt.Errorf("config error: %w", err)
	}

	durations := []struct {
		name  string
		value time.Duration
	}{
		{"page_timeout", c.PageTimeout},
		{"settle_delay", c.SettleDelay},
		{"polite_delay_min", c.PoliteDelayMin},
		{"polite_delay_max", c.PoliteDelayMax},
		{"error_backoff_min", c.ErrorBackoffMin},
		{"error_backoff_max", c.ErrorBackoffMax},
	}
	for _, d := range durations {
		if d.value < 0 {
			return fmt.Errorf("config error: '%s' must be non-negative", d.name)
		}
	}
	if c.PoliteDelayMin > c.PoliteDelayMax {
		return fmt.Errorf("config error: 'polite_delay_min' exceeds 'polite_delay_max'")
	}
	if c.ErrorBackoffMin > c.ErrorBackoffMax {
		return fmt.Errorf("config error: 'error_backoff_min' exceeds 'error_backoff_max'")
	}
	if c.ManualLogin && c.FetchMode == FetchModeHTTP {
		return fmt.Errorf("config error: 'manual_login' requires the browser fetch mode")
	}
	if c.ManualLogin && c.HeadlessEnabled() {
		return fmt.Errorf("config error: 'manual_login' requires 'headless: false'")
	}
	return nil
}

// MergeWithDefaults returns a new Config with unset fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.URLsFile == "" {
		result.URLsFile = defaults.URLsFile
	}
	if result.OutputCSV == "" {
		result.OutputCSV = defaults.OutputCSV
	}
	if result.FetchMode == "" {
		result.FetchMode = defaults.FetchMode
	}
	if result.UserDataDir == "" {
		result.UserDataDir = defaults.UserDataDir
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.Headless == nil {
		result.Headless = defaults.Headless
	}

	if result.MaxProfiles == 0 {
		result.MaxProfiles = defaults.MaxProfiles
	}
	if result.MaxRetries == 0 {
		result.MaxRetries = defaults.MaxRetries
	}

	durations := []struct {
		dst *time.Duration
		def time.Duration
	}{
		{&result.PageTimeout, defaults.PageTimeout},
		{&result.SettleDelay, defaults.SettleDelay},
		{&result.PoliteDelayMin, defaults.PoliteDelayMin},
		{&result.PoliteDelayMax, defaults.PoliteDelayMax},
		{&result.ErrorBackoffMin, defaults.ErrorBackoffMin},
		{&result.ErrorBackoffMax, defaults.ErrorBackoffMax},
	}
	for _, d := range durations {
		if *d.dst == 0 {
			*d.dst = d.def
		}
	}

	// Bool fields other than Headless cannot distinguish unset from false, so they are not
	// merged; CLI flags always win for them.

	return result
}

// Redacted returns a copy safe to print: the database password is masked.
func (c Config) Redacted() Config {
	if c.DatabaseURL == "" {
		return c
	}
	if u, err := url.Parse(c.DatabaseURL); err == nil {
		c.DatabaseURL = u.Redacted()
	}
	return c
}

// YAML renders the configuration in the file format LoadConfig reads.
func (c Config) YAML() (string, error) {
	out, err := yaml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("failed to render config: %w", err)
	}
	return string(out), nil
}
