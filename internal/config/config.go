// Package config handles TOML configuration loading with environment variable substitution.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Client kinds.
const (
	KindSonarr = "sonarr"
	KindRadarr = "radarr"
)

// Config is the root configuration structure.
type Config struct {
	Log       LogConfig               `toml:"log"`
	Plex      PlexConfig              `toml:"plex"`
	Settings  SettingsConfig          `toml:"settings"`
	Libraries map[string]string       `toml:"libraries"`
	Clients   map[string]ClientConfig `toml:"clients"`
}

type LogConfig struct {
	Level     string `toml:"level"`
	File      string `toml:"file"`
	FileLevel string `toml:"file_level"`
}

type PlexConfig struct {
	URL         string `toml:"url"`
	Token       string `toml:"token"`
	Concurrency int    `toml:"concurrency"`
	PageSize    int    `toml:"page_size"`
}

type SettingsConfig struct {
	DaysBack    int           `toml:"days_back"`
	DryRun      bool          `toml:"dry_run"`
	Interval    time.Duration `toml:"interval"`
	HistoryPath string        `toml:"history_path"`
	LockPath    string        `toml:"lock_path"`
}

// ClientConfig describes one Sonarr or Radarr instance.
type ClientConfig struct {
	Kind              string  `toml:"kind"`
	URL               string  `toml:"url"`
	APIKey            string  `toml:"api_key"`
	RequestsPerSecond float64 `toml:"requests_per_second"`
}

// Load reads, parses and validates the configuration file.
func Load(path string) (*Config, error) {
	cfg, missing, err := load(path)
	if err != nil {
		return nil, err
	}

	errs := cfg.Validate()
	if len(missing) > 0 || len(errs) > 0 {
		return nil, &Error{Path: path, Missing: missing, Errors: errs}
	}
	return cfg, nil
}

// LoadWithoutValidation reads and parses the configuration file, applying
// defaults but skipping validation and missing-variable checks.
func LoadWithoutValidation(path string) (*Config, error) {
	cfg, _, err := load(path)
	return cfg, err
}

func load(path string) (*Config, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading config: %w", err)
	}

	content, missing := substituteEnvVars(string(data))

	var cfg Config
	md, err := toml.Decode(content, &cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("parsing config: %w", err)
	}

	// Dry run stays on unless explicitly disabled.
	if !md.IsDefined("settings", "dry_run") {
		cfg.Settings.DryRun = true
	}
	cfg.applyDefaults()

	return &cfg, missing, nil
}

func (c *Config) applyDefaults() {
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if lvl := os.Getenv("UNMONITORR_LOG_LEVEL"); lvl != "" {
		c.Log.Level = strings.ToLower(lvl)
	}
	if c.Log.FileLevel == "" {
		c.Log.FileLevel = "debug"
	}
	if c.Plex.Concurrency == 0 {
		c.Plex.Concurrency = 2
	}
	if c.Settings.HistoryPath == "" {
		c.Settings.HistoryPath = "./data/unmonitorr.db"
	}
	if c.Settings.LockPath == "" {
		c.Settings.LockPath = filepath.Join(filepath.Dir(c.Settings.HistoryPath), "unmonitorr.lock")
	}
	for name, client := range c.Clients {
		if client.Kind == "" {
			client.Kind = inferKind(name)
			c.Clients[name] = client
		}
	}
}

// inferKind guesses the client kind from its name, e.g. "sonarr-anime".
func inferKind(name string) string {
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, KindSonarr):
		return KindSonarr
	case strings.Contains(lower, KindRadarr):
		return KindRadarr
	}
	return ""
}

// LibraryTitles returns the configured library titles.
func (c *Config) LibraryTitles() []string {
	titles := make([]string, 0, len(c.Libraries))
	for title := range c.Libraries {
		titles = append(titles, title)
	}
	return titles
}

// Since returns the watched-time cutoff for days_back, or zero when unlimited.
func (s SettingsConfig) Since(now time.Time) time.Time {
	if s.DaysBack <= 0 {
		return time.Time{}
	}
	return now.AddDate(0, 0, -s.DaysBack)
}

// envVarPattern matches ${VAR}, ${VAR:-default} and ${VAR:?message}.
var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(?:(:-|:\?)([^}]*))?\}`)

// substituteEnvVars expands variable references and returns the names (or
// name: message) of required variables that were unset or empty. Unresolved
// references are left in place.
func substituteEnvVars(content string) (string, []string) {
	var missing []string
	out := envVarPattern.ReplaceAllStringFunc(content, func(match string) string {
		m := envVarPattern.FindStringSubmatch(match)
		name, op, arg := m[1], m[2], m[3]
		value, ok := os.LookupEnv(name)

		switch op {
		case ":-":
			if !ok || value == "" {
				return arg
			}
			return value
		case ":?":
			if !ok || value == "" {
				missing = append(missing, name+": "+arg)
				return match
			}
			return value
		default:
			if !ok {
				missing = append(missing, name)
				return match
			}
			return value
		}
	})
	return out, missing
}
