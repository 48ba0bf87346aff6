package arr

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// Radarr is a Radarr v3 API client.
type Radarr struct {
	*client
}

// NewRadarr creates a new Radarr client.
func NewRadarr(baseURL, apiKey string, opts ...Option) *Radarr {
	return &Radarr{client: newClient(KindRadarr, baseURL, apiKey, opts...)}
}

// LookupMovie returns the movie with the given TMDB ID. An empty result
// means Radarr does not track the movie.
func (r *Radarr) LookupMovie(ctx context.Context, tmdbID string) (OneOrMany[Movie], error) {
	var result OneOrMany[Movie]
	params := url.Values{"tmdbId": {tmdbID}}
	if err := r.do(ctx, http.MethodGet, "/api/v3/movie", params, nil, &result); err != nil {
		return nil, fmt.Errorf("lookup movie %s: %w", tmdbID, err)
	}
	return result, nil
}

// UpdateMovie writes the full movie record back to Radarr.
// Radarr has no batch endpoint for the monitored flag.
func (r *Radarr) UpdateMovie(ctx context.Context, movie *Movie) error {
	endpoint := fmt.Sprintf("/api/v3/movie/%d", movie.ID)
	if err := r.do(ctx, http.MethodPut, endpoint, nil, movie, nil); err != nil {
		return fmt.Errorf("update movie %d: %w", movie.ID, err)
	}
	return nil
}
