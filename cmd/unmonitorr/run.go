package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"github.com/vmunix/unmonitorr/internal/config"
	"github.com/vmunix/unmonitorr/internal/history"
	"github.com/vmunix/unmonitorr/internal/plex"
	"github.com/vmunix/unmonitorr/internal/reconcile"
	"github.com/vmunix/unmonitorr/internal/server"
)

var runFlags struct {
	dryRun   bool
	apply    bool
	daysBack int
	interval time.Duration
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Unmonitor watched media",
	Long: `Reads watched items from the configured Plex libraries and unmonitors the
matching episodes and movies. Runs once, or repeatedly when an interval is set.`,
	Args: cobra.NoArgs,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().BoolVar(&runFlags.dryRun, "dry-run", false, "Log changes without making them")
	runCmd.Flags().BoolVar(&runFlags.apply, "apply", false, "Make changes even if the config enables dry run")
	runCmd.Flags().IntVar(&runFlags.daysBack, "days-back", 0, "Only consider items watched in the last N days (0 for all)")
	runCmd.Flags().DurationVar(&runFlags.interval, "interval", 0, "Repeat on this interval until interrupted")
	runCmd.MarkFlagsMutuallyExclusive("dry-run", "apply")
}

// applyRunFlags overrides config settings with explicitly set flags.
func applyRunFlags(cmd *cobra.Command, s *config.SettingsConfig) error {
	flags := cmd.Flags()
	if flags.Changed("dry-run") {
		s.DryRun = runFlags.dryRun
	}
	if flags.Changed("apply") && runFlags.apply {
		s.DryRun = false
	}
	if flags.Changed("days-back") {
		if runFlags.daysBack < 0 {
			return fmt.Errorf("--days-back must not be negative")
		}
		s.DaysBack = runFlags.daysBack
	}
	if flags.Changed("interval") {
		if runFlags.interval < 0 {
			return fmt.Errorf("--interval must not be negative")
		}
		s.Interval = runFlags.interval
	}
	return nil
}

func runRun(cmd *cobra.Command, _ []string) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}
	if err := applyRunFlags(cmd, &cfg.Settings); err != nil {
		return err
	}

	logger, closeLog, err := newLogger(cfg.Log, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer closeLog()

	if err := os.MkdirAll(filepath.Dir(cfg.Settings.LockPath), 0o755); err != nil {
		return fmt.Errorf("create lock dir: %w", err)
	}
	lock := flock.New(cfg.Settings.LockPath)
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("another unmonitorr run holds %s", cfg.Settings.LockPath)
	}
	defer func() { _ = lock.Unlock() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := history.Open(ctx, cfg.Settings.HistoryPath)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	svcs := newServices(cfg, logger)
	defer svcs.Close()
	plexClient := newPlexClient(cfg, logger)
	defer plexClient.Close()

	rec := reconcile.New(reconcile.Config{
		Libraries: cfg.Libraries,
		Series:    svcs.series,
		Movies:    svcs.movies,
		DryRun:    cfg.Settings.DryRun,
		Recorder:  store,
	}, logger)

	out := cmd.OutOrStdout()
	pass := func(ctx context.Context) error {
		libs, err := plex.WatchedLibraries(ctx, plexClient, plex.Query{
			Libraries:   cfg.LibraryTitles(),
			Since:       cfg.Settings.Since(time.Now()),
			Concurrency: cfg.Plex.Concurrency,
		}, logger)
		if err != nil {
			return fmt.Errorf("fetch watched items: %w", err)
		}

		report, err := rec.Reconcile(ctx, libs)
		if report != nil {
			printReport(out, report)
		}
		return err
	}

	runner := server.NewRunner(pass, server.Config{
		Interval: cfg.Settings.Interval,
		IsFatal: func(err error) bool {
			return errors.Is(err, reconcile.ErrUnsupportedLibraryType)
		},
	}, logger)
	return runner.Run(ctx)
}

func printReport(w io.Writer, report *reconcile.Report) {
	headers := []string{"Library", "Client", "Status", "Watched", "Groups", "Changes", "Unidentified", "Not found", "Unmatched", "Errors"}
	aligns := []columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight, alignRight, alignRight, alignRight, alignRight}
	writeTable(w, headers, reportRows(report), aligns)
}

func reportRows(report *reconcile.Report) [][]string {
	rows := make([][]string, 0, len(report.Libraries))
	for _, lib := range report.Libraries {
		client := lib.Client
		if client == "" {
			client = "-"
		}
		rows = append(rows, []string{
			lib.Title,
			client,
			string(lib.Status),
			strconv.Itoa(lib.Watched),
			strconv.Itoa(lib.Groups),
			strconv.Itoa(len(lib.Changes)),
			strconv.Itoa(lib.Unidentified),
			strconv.Itoa(lib.NotFound),
			strconv.Itoa(lib.Unmatched),
			strconv.Itoa(lib.Errors),
		})
	}
	return rows
}
