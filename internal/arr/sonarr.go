package arr

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// Sonarr is a Sonarr v3 API client.
type Sonarr struct {
	*client
}

// NewSonarr creates a new Sonarr client.
func NewSonarr(baseURL, apiKey string, opts ...Option) *Sonarr {
	return &Sonarr{client: newClient(KindSonarr, baseURL, apiKey, opts...)}
}

// LookupSeries returns the series with the given TVDB ID. An empty result
// means Sonarr does not track the series.
func (s *Sonarr) LookupSeries(ctx context.Context, tvdbID string) (OneOrMany[Series], error) {
	var result OneOrMany[Series]
	params := url.Values{"tvdbId": {tvdbID}}
	if err := s.do(ctx, http.MethodGet, "/api/v3/series", params, nil, &result); err != nil {
		return nil, fmt.Errorf("lookup series %s: %w", tvdbID, err)
	}
	return result, nil
}

// ListEpisodes returns every episode of a series.
func (s *Sonarr) ListEpisodes(ctx context.Context, seriesID int) ([]Episode, error) {
	var episodes []Episode
	params := url.Values{"seriesId": {strconv.Itoa(seriesID)}}
	if err := s.do(ctx, http.MethodGet, "/api/v3/episode", params, nil, &episodes); err != nil {
		return nil, fmt.Errorf("list episodes for series %d: %w", seriesID, err)
	}
	return episodes, nil
}

// episodeMonitorRequest is the body of PUT /api/v3/episode/monitor.
type episodeMonitorRequest struct {
	EpisodeIDs []int `json:"episodeIds"`
	Monitored  bool  `json:"monitored"`
}

// SetEpisodesMonitored sets the monitored flag on many episodes in one call.
func (s *Sonarr) SetEpisodesMonitored(ctx context.Context, episodeIDs []int, monitored bool) error {
	body := episodeMonitorRequest{EpisodeIDs: episodeIDs, Monitored: monitored}
	if err := s.do(ctx, http.MethodPut, "/api/v3/episode/monitor", nil, body, nil); err != nil {
		return fmt.Errorf("set monitored=%t on %d episodes: %w", monitored, len(episodeIDs), err)
	}
	return nil
}
