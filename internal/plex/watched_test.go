package plex

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vmunix/unmonitorr/internal/reconcile"
)

type fakeSource struct {
	mu       sync.Mutex
	sections []Section
	items    map[string][]Item
	err      error
	fetched  map[string]MediaType
}

func (f *fakeSource) Sections(context.Context) ([]Section, error) {
	return f.sections, nil
}

func (f *fakeSource) SectionItems(_ context.Context, key string, typ MediaType) ([]Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fetched == nil {
		f.fetched = map[string]MediaType{}
	}
	f.fetched[key] = typ
	if f.err != nil {
		return nil, f.err
	}
	return f.items[key], nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func ptr(n int) *int { return &n }

func TestWatchedLibraries(t *testing.T) {
	now := time.Now()
	recent := now.Add(-24 * time.Hour).Unix()
	old := now.Add(-30 * 24 * time.Hour).Unix()

	src := &fakeSource{
		sections: []Section{
			{Key: "1", Title: "Movies", Type: SectionMovie},
			{Key: "2", Title: "TV Shows", Type: SectionShow},
			{Key: "3", Title: "Music", Type: "artist"},
			{Key: "4", Title: "Photos", Type: "photo"},
		},
		items: map[string][]Item{
			"1": {
				{Type: "movie", Title: "The Matrix", ViewCount: 1, LastViewedAt: recent, GUIDs: []GUID{{ID: "tmdb://603"}}},
				{Type: "movie", Title: "Unwatched", ViewCount: 0, GUIDs: []GUID{{ID: "tmdb://1"}}},
				{Type: "movie", Title: "Long Ago", ViewCount: 2, LastViewedAt: old, GUIDs: []GUID{{ID: "tmdb://2"}}},
			},
			"2": {
				{
					Type: "episode", Title: "Pilot", GrandparentTitle: "Show",
					ParentIndex: ptr(1), Index: ptr(2), ViewCount: 1, LastViewedAt: recent,
					Media: []Media{{Parts: []Part{{File: "/tv/Show {tvdb-70991}/S01E02.mkv"}}}},
				},
			},
		},
	}

	libs, err := WatchedLibraries(context.Background(), src, Query{
		Libraries:   []string{"TV Shows", "Movies", "Music", "Missing"},
		Since:       now.Add(-7 * 24 * time.Hour),
		Concurrency: 2,
	}, testLogger())
	require.NoError(t, err)
	require.Len(t, libs, 3)

	assert.Equal(t, "Movies", libs[0].Title)
	assert.Equal(t, reconcile.LibraryTypeMovie, libs[0].Type)
	require.Len(t, libs[0].Items, 1)
	assert.Equal(t, "The Matrix", libs[0].Items[0].Title)
	assert.Equal(t, []string{"tmdb://603"}, libs[0].Items[0].ExternalIDs)
	assert.Nil(t, libs[0].Items[0].Season)

	assert.Equal(t, "TV Shows", libs[1].Title)
	require.Len(t, libs[1].Items, 1)
	ep := libs[1].Items[0]
	assert.Equal(t, "Show", ep.Title)
	assert.Equal(t, "Pilot", ep.EpisodeTitle)
	assert.Equal(t, 1, *ep.Season)
	assert.Equal(t, 2, *ep.Episode)
	assert.Equal(t, time.Unix(recent, 0), ep.WatchedAt)

	assert.Equal(t, "Music", libs[2].Title)
	assert.Equal(t, "artist", libs[2].Type)
	assert.Empty(t, libs[2].Items)

	assert.Equal(t, map[string]MediaType{"1": TypeMovie, "2": TypeEpisode}, src.fetched)
}

func TestWatchedLibraries_NoCutoff(t *testing.T) {
	src := &fakeSource{
		sections: []Section{{Key: "1", Title: "Movies", Type: SectionMovie}},
		items: map[string][]Item{
			"1": {
				{Title: "Ancient", ViewCount: 1, LastViewedAt: 1},
				{Title: "Unknown time", ViewCount: 1},
			},
		},
	}

	libs, err := WatchedLibraries(context.Background(), src, Query{Libraries: []string{"Movies"}}, nil)
	require.NoError(t, err)
	require.Len(t, libs, 1)
	assert.Len(t, libs[0].Items, 2)
}

func TestWatchedLibraries_FetchError(t *testing.T) {
	boom := errors.New("boom")
	src := &fakeSource{
		sections: []Section{{Key: "1", Title: "Movies", Type: SectionMovie}},
		err:      boom,
	}

	_, err := WatchedLibraries(context.Background(), src, Query{Libraries: []string{"Movies"}}, testLogger())
	assert.ErrorIs(t, err, boom)
}

func TestWatchedLibraries_MissingLibrarySuggestsSection(t *testing.T) {
	src := &fakeSource{
		sections: []Section{
			{Key: "1", Title: "Movies", Type: SectionMovie},
			{Key: "2", Title: "TV shows", Type: SectionShow},
		},
	}
	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, nil))

	libs, err := WatchedLibraries(context.Background(), src, Query{
		Libraries: []string{"TV Shows", "Audiobooks"},
	}, log)
	require.NoError(t, err)
	assert.Empty(t, libs)

	out := buf.String()
	assert.Contains(t, out, `"msg":"library not found on media server","library":"TV Shows","suggestion":"TV shows"`)
	assert.Contains(t, out, `"msg":"library not found on media server","library":"Audiobooks"}`)
}

func TestToWatchedItem_PartialEpisodeNumbers(t *testing.T) {
	it := Item{Type: "episode", Title: "Special", GrandparentTitle: "Show", Index: ptr(3)}
	w := toWatchedItem(it, time.Time{})
	assert.Nil(t, w.Season)
	assert.Nil(t, w.Episode)
	assert.Equal(t, "Show", w.Title)

	it = Item{Type: "episode", Title: "Pilot", GrandparentTitle: "Show", ParentIndex: ptr(1), Index: ptr(1)}
	w = toWatchedItem(it, time.Time{})
	require.NotNil(t, w.Season)
	assert.Equal(t, 1, *w.Season)
	assert.Equal(t, 1, *w.Episode)
}
