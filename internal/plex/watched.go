package plex

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vmunix/unmonitorr/internal/reconcile"
)

// Source is the subset of Client used to collect watched items.
type Source interface {
	Sections(ctx context.Context) ([]Section, error)
	SectionItems(ctx context.Context, key string, typ MediaType) ([]Item, error)
}

// Query selects which sections and plays are collected.
type Query struct {
	// Libraries lists the section titles to collect, matched exactly.
	Libraries []string

	// Since drops items last viewed at or before this time. Zero keeps all.
	Since time.Time

	// Concurrency bounds parallel section fetches. Defaults to 1.
	Concurrency int
}

// WatchedLibraries returns the selected sections with their watched items, in
// the order the server lists them. Sections of a type other than show or movie
// are returned without items so the caller can decide how to treat them.
func WatchedLibraries(ctx context.Context, src Source, q Query, log *slog.Logger) ([]reconcile.Library, error) {
	if log == nil {
		log = slog.Default()
	}

	sections, err := src.Sections(ctx)
	if err != nil {
		return nil, err
	}

	var selected []Section
	for _, s := range sections {
		if slices.Contains(q.Libraries, s.Title) {
			selected = append(selected, s)
		}
	}
	for _, title := range q.Libraries {
		if !slices.ContainsFunc(selected, func(s Section) bool { return s.Title == title }) {
			warnMissing(log, title, sections)
		}
	}

	libs := make([]reconcile.Library, len(selected))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(q.Concurrency, 1))

	for i, s := range selected {
		libs[i] = reconcile.Library{Title: s.Title, Type: s.Type}

		var typ MediaType
		switch s.Type {
		case SectionShow:
			typ = TypeEpisode
		case SectionMovie:
			typ = TypeMovie
		default:
			continue
		}

		g.Go(func() error {
			items, err := src.SectionItems(ctx, s.Key, typ)
			if err != nil {
				return err
			}
			libs[i].Items = watchedItems(items, q.Since)
			log.Debug("collected watched items", "library", s.Title, "items", len(items), "watched", len(libs[i].Items))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return libs, nil
}

// warnMissing reports a configured library the server does not have, naming
// the closest server section when the title looks like a typo.
func warnMissing(log *slog.Logger, title string, sections []Section) {
	titles := make([]string, len(sections))
	for i, s := range sections {
		titles[i] = s.Title
	}
	attrs := []any{"library", title}
	if s, ok := reconcile.SuggestTitle(title, titles); ok {
		attrs = append(attrs, "suggestion", s)
	}
	log.Warn("library not found on media server", attrs...)
}

func watchedItems(items []Item, since time.Time) []reconcile.WatchedItem {
	var out []reconcile.WatchedItem
	for _, it := range items {
		if !it.Watched() {
			continue
		}
		viewed := it.LastViewed()
		if !since.IsZero() && !viewed.After(since) {
			continue
		}
		out = append(out, toWatchedItem(it, viewed))
	}
	return out
}

func toWatchedItem(it Item, viewed time.Time) reconcile.WatchedItem {
	w := reconcile.WatchedItem{
		Title:       it.Title,
		ExternalIDs: it.ExternalIDs(),
		FilePaths:   it.Files(),
		WatchedAt:   viewed,
	}
	if it.Type == "episode" {
		w.Title = it.GrandparentTitle
		w.EpisodeTitle = it.Title
		if it.ParentIndex != nil && it.Index != nil {
			w.Season = it.ParentIndex
			w.Episode = it.Index
		}
	}
	return w
}
