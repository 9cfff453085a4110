package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/handiism/musiclib/internal/config"
	"github.com/handiism/musiclib/internal/logging"
	"github.com/handiism/musiclib/internal/normalize"
	"github.com/handiism/musiclib/internal/progress"
)

const longDescription = `Replace or remove 'illegal' characters from file and folder names in a folder
and its subfolders, so a music library can be synced between devices that use
different filesystem conventions. Music metadata is not modified, only names.

Colons ':' become dashes '-' with matching spacing, double quotes '"' become
single quotes, trailing periods are removed and the characters ? * ! are
dropped. Files are renamed before folders. Every change is printed.`

func newRootCommand() *cobra.Command {
	var (
		configFlag     string
		saveConfigFlag string
		dryRunFlag     bool
		verboseFlag    bool
	)

	cmd := &cobra.Command{
		Use:           "normalize-names <root_folder>",
		Short:         "Repair file and folder names for cross-filesystem syncing",
		Long:          longDescription,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings := config.DefaultSettings()
			if configFlag != "" {
				var err error
				if settings, err = config.Load(configFlag); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("dry-run") {
				settings.DryRun = dryRunFlag
			}
			if cmd.Flags().Changed("verbose") {
				settings.Verbose = verboseFlag
			}
			if saveConfigFlag != "" {
				if err := settings.Save(saveConfigFlag); err != nil {
					return err
				}
			}

			logger, err := logging.NewCLI(settings.Verbose, settings.LogFormat)
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck

			stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()
			n := normalize.New(normalize.Options{DryRun: settings.DryRun}, logger, func(e progress.Event) {
				switch e.Level {
				case progress.LevelWarning, progress.LevelError:
					fmt.Fprintln(stderr, e.Message)
				default:
					fmt.Fprintln(stdout, e.Message)
				}
			})

			if _, err := n.Run(cmd.Context(), args[0]); err != nil {
				return err
			}

			fmt.Fprintln(stdout, "Finished! Exiting . . .")
			return nil
		},
	}

	cmd.Flags().StringVarP(&configFlag, "config", "c", "", "Configuration file path (JSON or TOML)")
	cmd.Flags().StringVar(&saveConfigFlag, "save-config", "", "Write the effective settings to this file (JSON or TOML) before running")
	cmd.Flags().BoolVarP(&dryRunFlag, "dry-run", "n", false, "Print the renames without applying them")
	cmd.Flags().BoolVarP(&verboseFlag, "verbose", "v", false, "Log every step")

	return cmd
}
