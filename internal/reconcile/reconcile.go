// Package reconcile unmonitors watched media in Sonarr and Radarr.
//
// A run walks every library the media server reported, groups its watched
// items by TVDB or TMDB ID, looks each group up in the library's configured
// service, and turns the monitored flag off for every matching record that is
// still monitored. Failures are absorbed at the smallest possible scope: an
// item, a group, a movie, or a library's batch call. The only error that ends
// a run is a library type the reconciler does not know how to process.
package reconcile

//go:generate mockgen -destination=mocks/mocks.go -package=mocks . SeriesService,MovieService,Recorder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
)

// ErrUnsupportedLibraryType is returned for a library type other than show or movie.
var ErrUnsupportedLibraryType = errors.New("unsupported library type")

// Config wires the reconciler to its downstream services.
type Config struct {
	// Libraries maps a media-server library title to a client name.
	Libraries map[string]string

	// Series and Movies hold the clients by name.
	Series map[string]SeriesService
	Movies map[string]MovieService

	// DryRun logs and reports every decision without issuing mutating calls.
	DryRun bool

	// Recorder is optional.
	Recorder Recorder
}

// Reconciler applies watched state to downstream monitoring flags.
type Reconciler struct {
	cfg Config
	log *slog.Logger
}

// New creates a reconciler.
func New(cfg Config, log *slog.Logger) *Reconciler {
	if log == nil {
		log = slog.Default()
	}
	return &Reconciler{
		cfg: cfg,
		log: log.With("component", "reconcile"),
	}
}

// Reconcile processes every library in order. It returns an error only for an
// unsupported library type; libraries processed before it keep their changes.
func (r *Reconciler) Reconcile(ctx context.Context, libraries []Library) (*Report, error) {
	report := &Report{
		RunID:  uuid.NewString(),
		DryRun: r.cfg.DryRun,
	}
	log := r.log.With("run_id", report.RunID)
	if r.cfg.DryRun {
		log.Info("dry run: no changes will be made")
	}

	for _, lib := range libraries {
		libLog := log.With("library", lib.Title)
		libLog.Debug("processing library", "type", lib.Type, "watched", len(lib.Items))

		rep, err := r.dispatch(ctx, libLog, report.RunID, lib)
		if err != nil {
			return report, err
		}
		report.Libraries = append(report.Libraries, rep)
	}

	log.Info("reconciliation finished",
		"libraries", len(report.Libraries),
		"changes", report.Changed(),
		"errors", report.Errors(),
		"dry_run", r.cfg.DryRun)
	return report, nil
}

// dispatch resolves the client and processing path for one library.
func (r *Reconciler) dispatch(ctx context.Context, log *slog.Logger, runID string, lib Library) (LibraryReport, error) {
	rep := LibraryReport{
		Title:   lib.Title,
		Type:    lib.Type,
		Watched: len(lib.Items),
		Status:  StatusSkipped,
	}

	name, ok := r.cfg.Libraries[lib.Title]
	if !ok {
		attrs := []any{}
		if s, ok := suggestLibrary(lib.Title, r.cfg.Libraries); ok {
			attrs = append(attrs, "suggestion", s)
		}
		log.Warn("no client configured for library", attrs...)
		return rep, nil
	}
	rep.Client = name

	switch lib.Type {
	case LibraryTypeShow:
		svc, ok := r.cfg.Series[name]
		if !ok {
			log.Warn("no sonarr client configured for library", "client", name)
			return rep, nil
		}
		r.processShows(ctx, log.With("client", name), runID, lib, svc, &rep)
	case LibraryTypeMovie:
		svc, ok := r.cfg.Movies[name]
		if !ok {
			log.Warn("no radarr client configured for library", "client", name)
			return rep, nil
		}
		r.processMovies(ctx, log.With("client", name), runID, lib, svc, &rep)
	default:
		return rep, fmt.Errorf("%w: %q (library %q)", ErrUnsupportedLibraryType, lib.Type, lib.Title)
	}

	return rep, nil
}

// group partitions a library's items and warns about every unidentified one.
func (r *Reconciler) group(log *slog.Logger, items []WatchedItem, kind MediaKind, rep *LibraryReport) Groups {
	groups, unidentified := GroupByID(items, kind)
	for _, item := range unidentified {
		log.Warn("could not extract external id", "kind", kind.String(), "title", item.Label())
	}
	rep.Groups = groups.Len()
	rep.Unidentified = len(unidentified)
	return groups
}

// record hands applied or planned changes to the recorder. Recorder failures
// are logged and otherwise ignored.
func (r *Reconciler) record(ctx context.Context, log *slog.Logger, changes []Change) {
	if r.cfg.Recorder == nil {
		return
	}
	for _, c := range changes {
		if err := r.cfg.Recorder.Record(ctx, c); err != nil {
			log.Warn("failed to record change", "record_id", c.RecordID, "error", err)
		}
	}
}
