package reconcile

import (
	"context"
	"log/slog"

	"github.com/vmunix/unmonitorr/internal/arr"
)

// plannedMovie pairs a fetched Radarr record with its change entry.
type plannedMovie struct {
	movie  arr.Movie
	change Change
}

// processMovies unmonitors the watched movies of one movie library, one
// update per movie.
func (r *Reconciler) processMovies(ctx context.Context, log *slog.Logger, runID string, lib Library, svc MovieService, rep *LibraryReport) {
	groups := r.group(log, lib.Items, KindMovie, rep)

	base := Change{
		RunID:   runID,
		Library: lib.Title,
		Client:  rep.Client,
		Kind:    KindMovie,
		DryRun:  r.cfg.DryRun,
	}
	seen := make(map[int]bool)
	var planned []plannedMovie

	for tmdbID, items := range groups.All() {
		log.Debug("processing movie", "tmdb_id", tmdbID, "watched", len(items))

		found, err := svc.LookupMovie(ctx, tmdbID)
		if err != nil {
			log.Error("failed to process movie", "tmdb_id", tmdbID, "title", items[0].Title, "error", err)
			rep.Errors++
			continue
		}
		movie, ok := found.First()
		if !ok {
			log.Warn("no movie found", "tmdb_id", tmdbID, "title", items[0].Title)
			rep.NotFound++
			continue
		}
		log.Debug("found movie", "tmdb_id", tmdbID, "movie", movie.Title, "movie_id", movie.ID)

		if !movie.Monitored || seen[movie.ID] {
			continue
		}
		seen[movie.ID] = true

		c := base
		c.RecordID = movie.ID
		c.ExternalID = tmdbID
		c.Title = movie.Title
		if c.Title == "" {
			c.Title = items[0].Title
		}
		planned = append(planned, plannedMovie{movie: movie, change: c})
		log.Info("will unmonitor", "title", c.Title, "movie_id", movie.ID)
	}

	r.applyMovies(ctx, log, svc, planned, rep)
}

// applyMovies writes each movie back with monitored=false. A failed update
// does not stop the remaining ones and nothing is rolled back.
func (r *Reconciler) applyMovies(ctx context.Context, log *slog.Logger, svc MovieService, planned []plannedMovie, rep *LibraryReport) {
	if len(planned) == 0 {
		log.Debug("no movies to unmonitor")
		rep.Status = StatusUnchanged
		return
	}

	if r.cfg.DryRun {
		log.Info("dry run: would unmonitor movies", "count", len(planned))
		rep.Status = StatusDryRun
		for _, p := range planned {
			rep.Changes = append(rep.Changes, p.change)
		}
		r.record(ctx, log, rep.Changes)
		return
	}

	var applied []Change
	for _, p := range planned {
		movie := p.movie
		movie.Monitored = false
		if err := svc.UpdateMovie(ctx, &movie); err != nil {
			log.Error("failed to unmonitor movie", "tmdb_id", p.change.ExternalID, "title", p.change.Title, "error", err)
			rep.Errors++
			continue
		}
		applied = append(applied, p.change)
	}

	rep.Changes = applied
	if len(applied) == 0 {
		rep.Status = StatusFailed
		return
	}
	log.Info("unmonitored movies", "count", len(applied), "failed", len(planned)-len(applied))
	rep.Status = StatusApplied
	r.record(ctx, log, applied)
}
