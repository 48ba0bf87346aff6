package reconcile

import (
	"context"
	"fmt"
	"time"

	"github.com/vmunix/unmonitorr/internal/arr"
)

// Library types reported by the media server.
const (
	LibraryTypeShow  = "show"
	LibraryTypeMovie = "movie"
)

// MediaKind selects the identifier namespace and processing path.
type MediaKind int

const (
	KindEpisode MediaKind = iota + 1
	KindMovie
)

func (k MediaKind) String() string {
	switch k {
	case KindEpisode:
		return "episode"
	case KindMovie:
		return "movie"
	default:
		return "unknown"
	}
}

// WatchedItem is a single episode or movie the media server reports as viewed.
type WatchedItem struct {
	Title        string // series title for episodes, movie title for movies
	EpisodeTitle string
	Season       *int // set together with Episode, episodes only
	Episode      *int
	ExternalIDs  []string // namespaced, e.g. "tvdb://70991", "tmdb://603"
	FilePaths    []string
	WatchedAt    time.Time
}

// Label formats the item for log output.
func (w WatchedItem) Label() string {
	if w.Season == nil || w.Episode == nil {
		return w.Title
	}
	label := fmt.Sprintf("%s - S%02dE%02d", w.Title, *w.Season, *w.Episode)
	if w.EpisodeTitle != "" {
		label += " - " + w.EpisodeTitle
	}
	return label
}

// Library is one media-server library with its watched items.
type Library struct {
	Title string
	Type  string // "show" or "movie"
	Items []WatchedItem
}

// SeriesService is the Sonarr surface the reconciler needs.
type SeriesService interface {
	LookupSeries(ctx context.Context, tvdbID string) (arr.OneOrMany[arr.Series], error)
	ListEpisodes(ctx context.Context, seriesID int) ([]arr.Episode, error)
	SetEpisodesMonitored(ctx context.Context, episodeIDs []int, monitored bool) error
}

// MovieService is the Radarr surface the reconciler needs.
type MovieService interface {
	LookupMovie(ctx context.Context, tmdbID string) (arr.OneOrMany[arr.Movie], error)
	UpdateMovie(ctx context.Context, movie *arr.Movie) error
}

// Change is a single unmonitor decision, applied or planned.
type Change struct {
	RunID      string
	Library    string
	Client     string
	Kind       MediaKind
	RecordID   int    // Sonarr episode ID or Radarr movie ID
	ExternalID string // canonical TVDB or TMDB ID of the group
	Title      string
	DryRun     bool
}

// Recorder receives every change after it is applied, or planned in dry-run mode.
type Recorder interface {
	Record(ctx context.Context, c Change) error
}
