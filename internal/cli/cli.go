// Package cli implements the lrucache command line.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
)

// Version is reported by the version command.
const Version = "0.1.0"

// Config holds the flags shared by all commands.
type Config struct {
	Capacity int
	Verbose  bool
	NoColor  bool
	Replay   ReplayConfig
}

// NewCommand returns the root command with all subcommands attached.
func NewCommand() *cobra.Command {
	config := &Config{}

	root := &cobra.Command{
		Use:           "lrucache",
		Short:         "Replay key traces through a read-through LRU cache",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().IntVarP(&config.Capacity, "capacity", "c", 100, "Maximum number of cached entries")
	root.PersistentFlags().BoolVarP(&config.Verbose, "verbose", "v", false, "Verbose output")
	root.PersistentFlags().BoolVarP(&config.NoColor, "no-color", "", false, "Disable colored log output")

	root.AddCommand(newVersionCommand(), newReplayCommand(config))

	return root
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of lrucache",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "lrucache v%s\n", Version)
		},
	}
}

func newLogger(w io.Writer, config *Config) *slog.Logger {
	level := slog.LevelInfo
	if config.Verbose {
		level = slog.LevelDebug
	}

	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
		NoColor:    config.NoColor,
	}))
}

// Execute runs the root command and exits on failure.
func Execute() {
	if err := execute(NewCommand(), os.Stderr); err != nil {
		os.Exit(1)
	}
}

// execute runs cmd and reports a failure on stderr, keeping stdout for
// command output.
func execute(cmd *cobra.Command, stderr io.Writer) error {
	err := cmd.Execute()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
	}

	return err
}
