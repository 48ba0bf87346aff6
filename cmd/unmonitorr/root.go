package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vmunix/unmonitorr/internal/config"
)

var version = "dev"

var configPath string

var rootCmd = &cobra.Command{
	Use:   "unmonitorr",
	Short: "Unmonitor watched Plex media in Sonarr and Radarr",
	Long: `unmonitorr - stop Sonarr and Radarr from re-grabbing what you've already watched

Reads watched episodes and movies from Plex and turns off the monitored
flag for the matching records in Sonarr and Radarr.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default: discovered)")

	rootCmd.Version = version
	rootCmd.SetVersionTemplate("unmonitorr {{.Version}}\n")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "unmonitorr %s\n", version)
		},
	})
}

// loadConfig resolves, loads and validates the configuration.
func loadConfig() (*config.Config, string, error) {
	path, err := config.Resolve(configPath)
	if err != nil {
		return nil, "", err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, path, err
	}
	return cfg, path, nil
}
