// Command musiclib-tui is an interactive front end for the name normalizer.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/handiism/musiclib/internal/config"
	"github.com/handiism/musiclib/internal/logging"
	"github.com/handiism/musiclib/internal/tui"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var configPath, logFile string

	cmd := &cobra.Command{
		Use:           "musiclib-tui",
		Short:         "Interactive file and folder name normalizer",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings := config.DefaultSettings()
			if configPath != "" {
				var err error
				if settings, err = config.Load(configPath); err != nil {
					return err
				}
			}

			// The alternate screen owns the terminal, so logs only go to a file.
			logger := zap.NewNop()
			if logFile != "" {
				level := "info"
				if settings.Verbose {
					level = "debug"
				}
				var err error
				logger, err = logging.New(logging.Options{
					Level:            level,
					Format:           settings.LogFormat,
					OutputPaths:      []string{logFile},
					ErrorOutputPaths: []string{logFile},
				})
				if err != nil {
					return err
				}
				defer logger.Sync() //nolint:errcheck
			}

			return tui.Run(settings, logger)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Configuration file path (JSON or TOML)")
	cmd.Flags().StringVar(&logFile, "log-file", "", "Write diagnostic logs to this file")

	return cmd
}
