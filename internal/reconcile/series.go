package reconcile

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vmunix/unmonitorr/internal/arr"
)

type episodeKey struct {
	season, episode int
}

// showPass carries the state of one show library across its groups.
type showPass struct {
	log     *slog.Logger
	svc     SeriesService
	rep     *LibraryReport
	base    Change
	seen    map[int]bool
	changes []Change
}

// processShows unmonitors the watched episodes of one show library with a
// single batched call.
func (r *Reconciler) processShows(ctx context.Context, log *slog.Logger, runID string, lib Library, svc SeriesService, rep *LibraryReport) {
	groups := r.group(log, lib.Items, KindEpisode, rep)

	pass := &showPass{
		log: log,
		svc: svc,
		rep: rep,
		base: Change{
			RunID:   runID,
			Library: lib.Title,
			Client:  rep.Client,
			Kind:    KindEpisode,
			DryRun:  r.cfg.DryRun,
		},
		seen: make(map[int]bool),
	}

	for tvdbID, items := range groups.All() {
		if err := pass.matchSeries(ctx, tvdbID, items); err != nil {
			log.Error("failed to process series", "tvdb_id", tvdbID, "title", items[0].Title, "error", err)
			rep.Errors++
		}
	}

	r.applyEpisodes(ctx, log, svc, pass.changes, rep)
}

// matchSeries resolves one TVDB group to Sonarr episodes and collects the
// monitored ones.
func (p *showPass) matchSeries(ctx context.Context, tvdbID string, items []WatchedItem) error {
	p.log.Debug("processing series", "tvdb_id", tvdbID, "watched", len(items))

	found, err := p.svc.LookupSeries(ctx, tvdbID)
	if err != nil {
		return err
	}
	series, ok := found.First()
	if !ok {
		p.log.Warn("no series found", "tvdb_id", tvdbID, "title", items[0].Title)
		p.rep.NotFound++
		return nil
	}
	p.log.Debug("found series", "tvdb_id", tvdbID, "series", series.Title, "series_id", series.ID)

	episodes, err := p.svc.ListEpisodes(ctx, series.ID)
	if err != nil {
		return err
	}
	index := make(map[episodeKey]arr.Episode, len(episodes))
	for _, ep := range episodes {
		index[episodeKey{ep.SeasonNumber, ep.EpisodeNumber}] = ep
	}

	for _, item := range items {
		if item.Season == nil || item.Episode == nil {
			p.log.Warn("watched item has no season or episode number", "tvdb_id", tvdbID, "title", item.Label())
			p.rep.Unmatched++
			continue
		}

		ep, ok := index[episodeKey{*item.Season, *item.Episode}]
		if !ok {
			p.log.Warn("episode not found", "tvdb_id", tvdbID, "title", item.Label())
			p.rep.Unmatched++
			continue
		}
		if !ep.Monitored || p.seen[ep.ID] {
			continue
		}
		p.seen[ep.ID] = true

		c := p.base
		c.RecordID = ep.ID
		c.ExternalID = tvdbID
		c.Title = fmt.Sprintf("%s - S%02dE%02d", series.Title, ep.SeasonNumber, ep.EpisodeNumber)
		if item.EpisodeTitle != "" {
			c.Title += " - " + item.EpisodeTitle
		}
		p.changes = append(p.changes, c)
		p.log.Info("will unmonitor", "title", c.Title, "episode_id", ep.ID)
	}

	return nil
}

// applyEpisodes issues one batched unmonitor call for the whole library.
func (r *Reconciler) applyEpisodes(ctx context.Context, log *slog.Logger, svc SeriesService, changes []Change, rep *LibraryReport) {
	if len(changes) == 0 {
		log.Debug("no episodes to unmonitor")
		rep.Status = StatusUnchanged
		return
	}

	if r.cfg.DryRun {
		log.Info("dry run: would unmonitor episodes", "count", len(changes))
		rep.Status = StatusDryRun
		rep.Changes = changes
		r.record(ctx, log, changes)
		return
	}

	ids := make([]int, len(changes))
	for i, c := range changes {
		ids[i] = c.RecordID
	}
	if err := svc.SetEpisodesMonitored(ctx, ids, false); err != nil {
		log.Error("failed to unmonitor episodes", "count", len(ids), "error", err)
		rep.Errors++
		rep.Status = StatusFailed
		return
	}

	log.Info("unmonitored episodes", "count", len(ids))
	rep.Status = StatusApplied
	rep.Changes = changes
	r.record(ctx, log, changes)
}
