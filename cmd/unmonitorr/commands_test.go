package main

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStack serves the Plex, Sonarr and Radarr endpoints a run touches.
type fakeStack struct {
	plex, sonarr, radarr *httptest.Server

	mu            sync.Mutex
	episodeBodies []string
	moviePuts     []string
}

func newFakeStack(t *testing.T) *fakeStack {
	t.Helper()
	f := &fakeStack{}
	watchedAt := strconv.FormatInt(time.Now().Add(-time.Hour).Unix(), 10)

	f.plex = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "plex-token", r.Header.Get("X-Plex-Token"))
		switch r.URL.Path {
		case "/identity":
			_, _ = w.Write([]byte(`{"MediaContainer":{"machineIdentifier":"abc","version":"1.40.0","friendlyName":"den"}}`))
		case "/library/sections":
			_, _ = w.Write([]byte(`{"MediaContainer":{"Directory":[
				{"key":"1","title":"TV Shows","type":"show"},
				{"key":"2","title":"Movies","type":"movie"}
			]}}`))
		case "/library/sections/1/all":
			_, _ = w.Write([]byte(`{"MediaContainer":{"totalSize":1,"Metadata":[{
				"type":"episode","title":"Pilot","grandparentTitle":"Show","parentIndex":1,"index":2,
				"viewCount":1,"lastViewedAt":` + watchedAt + `,
				"Media":[{"Part":[{"file":"/tv/Show {tvdb-70991}/S01E02.mkv"}]}]
			}]}}`))
		case "/library/sections/2/all":
			_, _ = w.Write([]byte(`{"MediaContainer":{"totalSize":2,"Metadata":[
				{"type":"movie","title":"The Matrix","viewCount":2,"lastViewedAt":` + watchedAt + `,"Guid":[{"id":"tmdb://603"}]},
				{"type":"movie","title":"Unwatched","Guid":[{"id":"tmdb://1"}]}
			]}}`))
		default:
			http.NotFound(w, r)
		}
	}))

	f.sonarr = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/api/v3/system/status":
			_, _ = w.Write([]byte(`{"appName":"Sonarr","version":"4.0.9"}`))
		case r.Method == http.MethodGet && r.URL.Path == "/api/v3/series":
			assert.Equal(t, "70991", r.URL.Query().Get("tvdbId"))
			_, _ = w.Write([]byte(`[{"id":5,"title":"Show","tvdbId":70991,"monitored":true}]`))
		case r.Method == http.MethodGet && r.URL.Path == "/api/v3/episode":
			_, _ = w.Write([]byte(`[
				{"id":101,"seriesId":5,"seasonNumber":1,"episodeNumber":1,"monitored":true},
				{"id":102,"seriesId":5,"seasonNumber":1,"episodeNumber":2,"monitored":true}
			]`))
		case r.Method == http.MethodPut && r.URL.Path == "/api/v3/episode/monitor":
			var buf bytes.Buffer
			_, _ = buf.ReadFrom(r.Body)
			f.mu.Lock()
			f.episodeBodies = append(f.episodeBodies, buf.String())
			f.mu.Unlock()
			w.WriteHeader(http.StatusAccepted)
		default:
			http.NotFound(w, r)
		}
	}))

	f.radarr = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/api/v3/system/status":
			_, _ = w.Write([]byte(`{"appName":"Radarr","version":"5.2.6"}`))
		case r.Method == http.MethodGet && r.URL.Path == "/api/v3/movie":
			_, _ = w.Write([]byte(`{"id":9,"title":"The Matrix","tmdbId":603,"monitored":true,"year":1999}`))
		case r.Method == http.MethodPut && r.URL.Path == "/api/v3/movie/9":
			var buf bytes.Buffer
			_, _ = buf.ReadFrom(r.Body)
			f.mu.Lock()
			f.moviePuts = append(f.moviePuts, buf.String())
			f.mu.Unlock()
			w.WriteHeader(http.StatusAccepted)
		default:
			http.NotFound(w, r)
		}
	}))

	t.Cleanup(func() {
		f.plex.Close()
		f.sonarr.Close()
		f.radarr.Close()
	})
	return f
}

func (f *fakeStack) writeConfig(t *testing.T, dryRun bool) string {
	t.Helper()
	dir := t.TempDir()
	content := `
[log]
level = "error"

[plex]
url = "` + f.plex.URL + `"
token = "plex-token"

[settings]
days_back = 0
dry_run = ` + strconv.FormatBool(dryRun) + `
history_path = "` + filepath.Join(dir, "data", "history.db") + `"

[libraries]
"TV Shows" = "sonarr"
"Movies" = "radarr"

[clients.sonarr]
url = "` + f.sonarr.URL + `"
api_key = "s"

[clients.radarr]
url = "` + f.radarr.URL + `"
api_key = "r"
`
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		resetFlags(rootCmd)
	})
	err := rootCmd.Execute()
	return out.String(), err
}

// resetFlags restores every flag to its default so package-level flag state
// does not leak between commands run in the same test binary.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func TestRunCommand_EndToEnd(t *testing.T) {
	t.Setenv("UNMONITORR_LOG_LEVEL", "")
	stack := newFakeStack(t)
	cfgPath := stack.writeConfig(t, false)

	out, err := execute(t, "run", "--config", cfgPath)
	require.NoError(t, err)

	require.Len(t, stack.episodeBodies, 1)
	var body struct {
		EpisodeIDs []int `json:"episodeIds"`
		Monitored  bool  `json:"monitored"`
	}
	require.NoError(t, json.Unmarshal([]byte(stack.episodeBodies[0]), &body))
	assert.Equal(t, []int{102}, body.EpisodeIDs)
	assert.False(t, body.Monitored)

	require.Len(t, stack.moviePuts, 1)
	assert.Contains(t, stack.moviePuts[0], `"monitored":false`)
	assert.Contains(t, stack.moviePuts[0], `"year":1999`)

	assert.Contains(t, out, "TV Shows\tsonarr\tapplied")
	assert.Contains(t, out, "Movies\tradarr\tapplied")

	out, err = execute(t, "history", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "The Matrix")
	assert.Contains(t, out, "Show - S01E02 - Pilot")
}

func TestRunCommand_DryRunMakesNoChanges(t *testing.T) {
	t.Setenv("UNMONITORR_LOG_LEVEL", "")
	stack := newFakeStack(t)
	cfgPath := stack.writeConfig(t, true)

	out, err := execute(t, "run", "--config", cfgPath)
	require.NoError(t, err)

	assert.Empty(t, stack.episodeBodies)
	assert.Empty(t, stack.moviePuts)
	assert.Contains(t, out, "TV Shows\tsonarr\tdry-run")
}

func TestHistoryCommand_Filters(t *testing.T) {
	t.Setenv("UNMONITORR_LOG_LEVEL", "")
	stack := newFakeStack(t)
	cfgPath := stack.writeConfig(t, true)

	_, err := execute(t, "run", "--config", cfgPath)
	require.NoError(t, err)
	_, err = execute(t, "run", "--config", cfgPath, "--apply")
	require.NoError(t, err)
	require.Len(t, stack.moviePuts, 1)

	rows := func(out string) []string {
		lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
		require.NotEmpty(t, lines)
		assert.True(t, strings.HasPrefix(lines[0], "Time\tLibrary"), "header: %q", lines[0])
		return lines[1:]
	}

	out, err := execute(t, "history", "--config", cfgPath)
	require.NoError(t, err)
	assert.Len(t, rows(out), 4)

	out, err = execute(t, "history", "--config", cfgPath, "--applied")
	require.NoError(t, err)
	applied := rows(out)
	require.Len(t, applied, 2)
	for _, row := range applied {
		assert.True(t, strings.HasSuffix(row, "\t"), "dry-run column should be empty: %q", row)
	}

	out, err = execute(t, "history", "--config", cfgPath, "--library", "Movies")
	require.NoError(t, err)
	movies := rows(out)
	require.Len(t, movies, 2)
	for _, row := range movies {
		assert.Contains(t, row, "\tMovies\tradarr\tmovie\t9\tThe Matrix\t")
	}
	assert.True(t, strings.HasSuffix(movies[0], "\t"), "newest entry is the applied one")
	assert.True(t, strings.HasSuffix(movies[1], "\tyes"))

	out, err = execute(t, "history", "--config", cfgPath, "-n", "1")
	require.NoError(t, err)
	assert.Len(t, rows(out), 1)
}

func TestStatusCommand(t *testing.T) {
	stack := newFakeStack(t)
	cfgPath := stack.writeConfig(t, true)

	out, err := execute(t, "status", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "plex\tplex\t"+stack.plex.URL+"\tok 1.40.0")
	assert.Contains(t, out, "sonarr\tsonarr\t"+stack.sonarr.URL+"\tok 4.0.9")
	assert.Contains(t, out, "radarr\tradarr\t"+stack.radarr.URL+"\tok 5.2.6")
}

func TestStatusCommand_Unreachable(t *testing.T) {
	stack := newFakeStack(t)
	cfgPath := stack.writeConfig(t, true)
	stack.sonarr.Close()

	out, err := execute(t, "status", "--config", cfgPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 3 services unreachable")
	assert.Contains(t, out, "sonarr\tsonarr\t"+stack.sonarr.URL+"\terror: ")
	assert.Contains(t, out, "radarr\tradarr\t"+stack.radarr.URL+"\tok 5.2.6")
}

func TestConfigTestCommand(t *testing.T) {
	stack := newFakeStack(t)
	cfgPath := stack.writeConfig(t, true)

	out, err := execute(t, "config", "test", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration valid!")
	assert.Contains(t, out, "TV Shows -> sonarr (sonarr)")
}

func TestConfigTestCommand_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[plex]\n"), 0o644))

	out, err := execute(t, "config", "test", path)
	require.Error(t, err)
	assert.Contains(t, out, "Validation errors:")
	assert.Contains(t, out, "plex.url: required")
}

func TestConfigInitCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "unmonitorr", "config.toml")

	out, err := execute(t, "config", "init", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote "+path)

	_, err = execute(t, "config", "init", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--force")
}

func TestReportRows_TSV(t *testing.T) {
	got := renderTSV([]string{"A", "B"}, [][]string{{"1", "2"}, {"x", ""}})
	assert.Equal(t, "A\tB\n1\t2\nx\t\n", got)
}

func TestRenderTable(t *testing.T) {
	out := renderTable([]string{"Library", "Changes"}, [][]string{{"Movies", "3"}, {"TV"}}, []columnAlignment{alignLeft, alignRight})
	assert.Contains(t, out, "Library")
	assert.Contains(t, out, "Movies")
	assert.Empty(t, renderTable(nil, nil, nil))
}

func TestIsTerminal_Buffer(t *testing.T) {
	assert.False(t, isTerminal(&bytes.Buffer{}))
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLogLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, parseLogLevel("warn"))
	assert.Equal(t, slog.LevelError, parseLogLevel("error"))
	assert.Equal(t, slog.LevelInfo, parseLogLevel("bogus"))
}

func TestNewLogger_FileGetsDebug(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "logs", "unmonitorr.log")
	var console bytes.Buffer

	logger, closeLog, err := newLogger(logConfig("warn", logFile, "debug"), &console)
	require.NoError(t, err)

	logger.With("component", "test").Debug("detail", "n", 1)
	logger.Warn("careful")
	closeLog()

	assert.NotContains(t, console.String(), "detail")
	assert.Contains(t, console.String(), "careful")

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "detail")
	assert.Contains(t, string(data), "component=test")
	assert.Equal(t, 2, strings.Count(string(data), "\n"))
}
