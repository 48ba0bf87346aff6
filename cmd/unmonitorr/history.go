package main

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vmunix/unmonitorr/internal/history"
)

var historyFlags struct {
	limit   int
	runID   string
	library string
	applied bool
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recorded unmonitor changes",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntVarP(&historyFlags.limit, "limit", "n", 50, "Maximum entries to show")
	historyCmd.Flags().StringVar(&historyFlags.runID, "run", "", "Only entries from this run ID")
	historyCmd.Flags().StringVar(&historyFlags.library, "library", "", "Only entries for this library")
	historyCmd.Flags().BoolVar(&historyFlags.applied, "applied", false, "Hide dry-run entries")
}

func runHistory(cmd *cobra.Command, _ []string) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := history.Open(cmd.Context(), cfg.Settings.HistoryPath)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	entries, err := store.List(cmd.Context(), history.Filter{
		RunID:   historyFlags.runID,
		Library: historyFlags.library,
		Applied: historyFlags.applied,
		Limit:   historyFlags.limit,
	})
	if err != nil {
		return err
	}

	writeTable(cmd.OutOrStdout(),
		[]string{"Time", "Library", "Client", "Kind", "ID", "Title", "Dry run"},
		historyRows(entries),
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight})
	return nil
}

func historyRows(entries []history.Entry) [][]string {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		dry := ""
		if e.DryRun {
			dry = "yes"
		}
		rows = append(rows, []string{
			e.CreatedAt.Local().Format("2006-01-02 15:04"),
			e.Library,
			e.Client,
			e.Kind,
			strconv.Itoa(e.RecordID),
			e.Title,
			dry,
		})
	}
	return rows
}
