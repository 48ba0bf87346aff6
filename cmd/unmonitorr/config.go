package main

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vmunix/unmonitorr/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration management",
}

var configTestCmd = &cobra.Command{
	Use:   "test [path]",
	Short: "Validate configuration file",
	Long:  "Validates config.toml syntax, required fields, and environment variable substitution without contacting any server.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runConfigTest,
}

var initForce bool

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write an example configuration file",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runConfigInit,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configTestCmd, configInitCmd)
	configInitCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing file")
}

func runConfigTest(cmd *cobra.Command, args []string) error {
	explicit := configPath
	if len(args) > 0 {
		explicit = args[0]
	}
	path, err := config.Resolve(explicit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Validating %s...\n\n", path)

	cfg, err := config.Load(path)
	if err != nil {
		var configErr *config.Error
		if errors.As(err, &configErr) {
			printConfigErrors(out, configErr)
			return fmt.Errorf("configuration invalid")
		}
		return fmt.Errorf("failed to load config: %w", err)
	}

	printConfigSummary(out, cfg)
	fmt.Fprintln(out, "\nConfiguration valid!")
	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := config.DefaultPath()
	if len(args) > 0 {
		path = args[0]
	}
	if err := config.WriteDefault(path, initForce); err != nil {
		if errors.Is(err, config.ErrExists) {
			return fmt.Errorf("%w (use --force to overwrite)", err)
		}
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}

func printConfigErrors(w io.Writer, e *config.Error) {
	if len(e.Missing) > 0 {
		fmt.Fprintln(w, "Missing environment variables:")
		for _, m := range e.Missing {
			fmt.Fprintf(w, "  - %s\n", m)
		}
		fmt.Fprintln(w)
	}

	if len(e.Errors) > 0 {
		fmt.Fprintln(w, "Validation errors:")
		for _, err := range e.Errors {
			fmt.Fprintf(w, "  - %s\n", err)
		}
		fmt.Fprintln(w)
	}
}

func printConfigSummary(w io.Writer, cfg *config.Config) {
	mode := "apply"
	if cfg.Settings.DryRun {
		mode = "dry run"
	}
	window := "all time"
	if cfg.Settings.DaysBack > 0 {
		window = fmt.Sprintf("last %d days", cfg.Settings.DaysBack)
	}

	fmt.Fprintln(w, "Configuration Summary:")
	fmt.Fprintf(w, "  Plex:       %s\n", cfg.Plex.URL)
	fmt.Fprintf(w, "  Mode:       %s, %s\n", mode, window)
	if cfg.Settings.Interval > 0 {
		fmt.Fprintf(w, "  Interval:   %s\n", cfg.Settings.Interval)
	}
	fmt.Fprintf(w, "  History:    %s\n", cfg.Settings.HistoryPath)

	titles := cfg.LibraryTitles()
	sort.Strings(titles)
	libs := make([]string, 0, len(titles))
	for _, t := range titles {
		name := cfg.Libraries[t]
		libs = append(libs, fmt.Sprintf("%s -> %s (%s)", t, name, cfg.Clients[name].Kind))
	}
	fmt.Fprintf(w, "  Libraries:  %s\n", strings.Join(libs, ", "))
}
