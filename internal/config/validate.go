package config

import (
	"fmt"
	"sort"
)

var validLogLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "error": true,
}

var validKinds = map[string]bool{
	KindSonarr: true, KindRadarr: true,
}

// Validate checks the configuration for errors.
// Returns a slice of error messages (empty if valid).
func (c *Config) Validate() []string {
	var errs []string

	if !validLogLevels[c.Log.Level] {
		errs = append(errs, fmt.Sprintf("log.level: must be one of debug, info, warn, error; got %q", c.Log.Level))
	}
	if c.Log.File != "" && !validLogLevels[c.Log.FileLevel] {
		errs = append(errs, fmt.Sprintf("log.file_level: must be one of debug, info, warn, error; got %q", c.Log.FileLevel))
	}

	if c.Plex.URL == "" {
		errs = append(errs, "plex.url: required")
	}
	if c.Plex.Token == "" {
		errs = append(errs, "plex.token: required")
	}
	if c.Plex.Concurrency < 1 {
		errs = append(errs, fmt.Sprintf("plex.concurrency: must be at least 1, got %d", c.Plex.Concurrency))
	}
	if c.Plex.PageSize < 0 {
		errs = append(errs, fmt.Sprintf("plex.page_size: must not be negative, got %d", c.Plex.PageSize))
	}

	if c.Settings.DaysBack < 0 {
		errs = append(errs, fmt.Sprintf("settings.days_back: must not be negative, got %d", c.Settings.DaysBack))
	}
	if c.Settings.Interval < 0 {
		errs = append(errs, fmt.Sprintf("settings.interval: must not be negative, got %s", c.Settings.Interval))
	}

	if len(c.Libraries) == 0 {
		errs = append(errs, "libraries: at least one library must be mapped to a client")
	}
	for _, title := range sortedKeys(c.Libraries) {
		name := c.Libraries[title]
		if _, ok := c.Clients[name]; !ok {
			errs = append(errs, fmt.Sprintf("libraries.%q: client %q not defined", title, name))
		}
	}

	for _, name := range sortedKeys(c.Clients) {
		client := c.Clients[name]
		if !validKinds[client.Kind] {
			errs = append(errs, fmt.Sprintf("clients.%s.kind: must be one of sonarr, radarr; got %q", name, client.Kind))
		}
		if client.URL == "" {
			errs = append(errs, fmt.Sprintf("clients.%s.url: required", name))
		}
		if client.APIKey == "" {
			errs = append(errs, fmt.Sprintf("clients.%s.api_key: required", name))
		}
		if client.RequestsPerSecond < 0 {
			errs = append(errs, fmt.Sprintf("clients.%s.requests_per_second: must not be negative", name))
		}
	}

	return errs
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
