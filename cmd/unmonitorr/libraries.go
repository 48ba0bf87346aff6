package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vmunix/unmonitorr/internal/config"
	"github.com/vmunix/unmonitorr/internal/plex"
)

var librariesCmd = &cobra.Command{
	Use:   "libraries",
	Short: "List Plex libraries and their client mapping",
	Args:  cobra.NoArgs,
	RunE:  runLibraries,
}

func init() {
	rootCmd.AddCommand(librariesCmd)
}

func runLibraries(cmd *cobra.Command, _ []string) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}
	logger, closeLog, err := newLogger(cfg.Log, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer closeLog()

	client := newPlexClient(cfg, logger)
	defer client.Close()

	sections, err := client.Sections(cmd.Context())
	if err != nil {
		return fmt.Errorf("list sections: %w", err)
	}

	writeTable(cmd.OutOrStdout(),
		[]string{"Key", "Library", "Type", "Client", "Kind"},
		libraryRows(sections, cfg),
		nil)
	return nil
}

func libraryRows(sections []plex.Section, cfg *config.Config) [][]string {
	rows := make([][]string, 0, len(sections))
	for _, s := range sections {
		name, kind := "-", "-"
		if n, ok := cfg.Libraries[s.Title]; ok {
			name = n
			if c, ok := cfg.Clients[n]; ok {
				kind = c.Kind
			}
		}
		rows = append(rows, []string{s.Key, s.Title, s.Type, name, kind})
	}
	return rows
}
