// Package arr provides clients for the Sonarr and Radarr v3 APIs.
package arr

import (
	"bytes"
	"fmt"

	"github.com/goccy/go-json"
)

// Service kinds.
const (
	KindSonarr = "sonarr"
	KindRadarr = "radarr"
)

// OneOrMany holds a lookup result that the API returns either as a single
// object or as an array. A null or empty body decodes to an empty value.
type OneOrMany[T any] []T

// UnmarshalJSON accepts an object, an array, or null.
func (o *OneOrMany[T]) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*o = nil
		return nil
	}

	if trimmed[0] == '[' {
		var many []T
		if err := json.Unmarshal(trimmed, &many); err != nil {
			return err
		}
		*o = many
		return nil
	}

	var one T
	if err := json.Unmarshal(trimmed, &one); err != nil {
		return err
	}
	*o = OneOrMany[T]{one}
	return nil
}

// First returns the first element. Ambiguous lookups resolve to the first match.
func (o OneOrMany[T]) First() (T, bool) {
	if len(o) == 0 {
		var zero T
		return zero, false
	}
	return o[0], true
}

// Series is a Sonarr series record.
type Series struct {
	ID        int    `json:"id"`
	Title     string `json:"title"`
	TVDBID    int    `json:"tvdbId"`
	Monitored bool   `json:"monitored"`
}

// Episode is a Sonarr episode record.
type Episode struct {
	ID            int    `json:"id"`
	SeriesID      int    `json:"seriesId"`
	SeasonNumber  int    `json:"seasonNumber"`
	EpisodeNumber int    `json:"episodeNumber"`
	Title         string `json:"title"`
	Monitored     bool   `json:"monitored"`
}

// Movie is a Radarr movie record.
//
// Radarr's update endpoint replaces the whole record, so every field of the
// fetched JSON is retained and written back by MarshalJSON. Only the typed
// fields below are interpreted.
type Movie struct {
	ID        int    `json:"id"`
	Title     string `json:"title"`
	TMDBID    int    `json:"tmdbId"`
	Monitored bool   `json:"monitored"`

	fields map[string]json.RawMessage
}

// UnmarshalJSON decodes the typed fields and keeps the raw record.
func (m *Movie) UnmarshalJSON(data []byte) error {
	type plain Movie
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("decode movie: %w", err)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("decode movie fields: %w", err)
	}

	*m = Movie(p)
	m.fields = fields
	return nil
}

// MarshalJSON writes the retained record with the typed fields applied on top.
func (m Movie) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(m.fields)+4)
	for k, v := range m.fields {
		out[k] = v
	}
	out["id"] = m.ID
	out["title"] = m.Title
	out["tmdbId"] = m.TMDBID
	out["monitored"] = m.Monitored
	return json.Marshal(out)
}

// SystemStatus is the response of /api/v3/system/status.
type SystemStatus struct {
	AppName string `json:"appName"`
	Version string `json:"version"`
}
