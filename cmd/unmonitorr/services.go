package main

import (
	"context"
	"log/slog"
	"sort"

	"github.com/vmunix/unmonitorr/internal/arr"
	"github.com/vmunix/unmonitorr/internal/config"
	"github.com/vmunix/unmonitorr/internal/plex"
	"github.com/vmunix/unmonitorr/internal/reconcile"
)

// arrClient is what every configured service client provides.
type arrClient interface {
	Name() string
	Status(ctx context.Context) (*arr.SystemStatus, error)
	Close()
}

// services holds one client per configured [clients.<name>] entry.
type services struct {
	series  map[string]reconcile.SeriesService
	movies  map[string]reconcile.MovieService
	clients map[string]arrClient
}

func newServices(cfg *config.Config, log *slog.Logger) *services {
	s := &services{
		series:  make(map[string]reconcile.SeriesService),
		movies:  make(map[string]reconcile.MovieService),
		clients: make(map[string]arrClient),
	}

	for name, cc := range cfg.Clients {
		opts := []arr.Option{
			arr.WithLogger(log.With("client", name)),
			arr.WithRateLimit(cc.RequestsPerSecond),
		}
		switch cc.Kind {
		case config.KindSonarr:
			c := arr.NewSonarr(cc.URL, cc.APIKey, opts...)
			s.series[name] = c
			s.clients[name] = c
		case config.KindRadarr:
			c := arr.NewRadarr(cc.URL, cc.APIKey, opts...)
			s.movies[name] = c
			s.clients[name] = c
		}
	}
	return s
}

// names returns the client names in order.
func (s *services) names() []string {
	names := make([]string, 0, len(s.clients))
	for name := range s.clients {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s *services) Close() {
	for _, c := range s.clients {
		c.Close()
	}
}

func newPlexClient(cfg *config.Config, log *slog.Logger) *plex.Client {
	return plex.New(cfg.Plex.URL, cfg.Plex.Token,
		plex.WithLogger(log),
		plex.WithPageSize(cfg.Plex.PageSize),
	)
}
