package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check connectivity to Plex and every configured client",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}
	logger, closeLog, err := newLogger(cfg.Log, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer closeLog()

	ctx := cmd.Context()
	var rows [][]string
	failed := 0

	plexClient := newPlexClient(cfg, logger)
	defer plexClient.Close()
	if id, err := plexClient.Identity(ctx); err != nil {
		rows = append(rows, []string{"plex", "plex", cfg.Plex.URL, "error: " + err.Error()})
		failed++
	} else {
		rows = append(rows, []string{"plex", "plex", cfg.Plex.URL, "ok " + id.Version})
	}

	svcs := newServices(cfg, logger)
	defer svcs.Close()
	for _, name := range svcs.names() {
		c := svcs.clients[name]
		url := cfg.Clients[name].URL
		st, err := c.Status(ctx)
		if err != nil {
			rows = append(rows, []string{name, c.Name(), url, "error: " + err.Error()})
			failed++
			continue
		}
		rows = append(rows, []string{name, c.Name(), url, "ok " + st.Version})
	}

	writeTable(cmd.OutOrStdout(), []string{"Name", "Kind", "URL", "Status"}, rows, nil)
	if failed > 0 {
		return fmt.Errorf("%d of %d services unreachable", failed, len(rows))
	}
	return nil
}
