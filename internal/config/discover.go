package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// EnvConfigPath names the variable that overrides config discovery.
const EnvConfigPath = "UNMONITORR_CONFIG"

// ErrNotFound is returned when no config file exists in any search location.
var ErrNotFound = errors.New("config not found")

// DefaultPath is $XDG_CONFIG_HOME/unmonitorr/config.toml, falling back to
// ~/.config and then the working directory.
func DefaultPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "config.toml"
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "unmonitorr", "config.toml")
}

// SearchPaths lists the locations Discover tries, in order, when
// UNMONITORR_CONFIG is unset.
func SearchPaths() []string {
	return []string{
		"config.toml",
		DefaultPath(),
		"/etc/unmonitorr/config.toml",
	}
}

// Discover returns the path named by UNMONITORR_CONFIG, which must exist, or
// else the first of SearchPaths that does.
func Discover() (string, error) {
	if p := os.Getenv(EnvConfigPath); p != "" {
		if _, err := os.Stat(p); err != nil {
			return "", fmt.Errorf("%s=%s: %w", EnvConfigPath, p, err)
		}
		return p, nil
	}

	candidates := SearchPaths()
	for _, p := range candidates {
		if fi, err := os.Stat(p); err == nil && !fi.IsDir() {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w (looked in %s); create one with `unmonitorr config init`",
		ErrNotFound, strings.Join(candidates, ", "))
}

// Resolve prefers an explicit path (from --config or an argument) over
// discovery. The explicit path is not checked here; Load reports it.
func Resolve(explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	return Discover()
}
