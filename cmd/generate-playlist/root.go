package main

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/handiism/musiclib/internal/audio"
	"github.com/handiism/musiclib/internal/config"
	"github.com/handiism/musiclib/internal/logging"
	"github.com/handiism/musiclib/internal/playlist"
	"github.com/handiism/musiclib/internal/progress"
)

const longDescription = `Generate an M3U playlist from a folder containing music and/or subfolders with music.

The playlist is written into music_directory and lists every .mp3 and .ogg file
below playlist_directory with its duration and its path relative to
music_directory.

The following example generates a playlist called Jazz.m3u in
/home/user/Media/Music containing all songs in the Jazz folder and its subfolders:

  generate-playlist /home/user/Media/Music/Jazz /home/user/Media/Music Jazz.m3u

The optional exclusions argument is a regular expression; files whose full path
matches it are left out. This generates a playlist of everything except Jazz:

  generate-playlist /home/user/Media/Music /home/user/Media/Music 'Everything Except Jazz.m3u' Jazz`

func newRootCommand() *cobra.Command {
	var (
		configFlag     string
		saveConfigFlag string
		formatFlag     string
		titlesFromTags bool
		verboseFlag    bool
	)

	cmd := &cobra.Command{
		Use:           "generate-playlist <playlist_directory> <music_directory> <output_file> [exclusions]",
		Short:         "Generate an M3U playlist from a music folder",
		Long:          longDescription,
		Args:          cobra.RangeArgs(3, 4),
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

			flags := cmd.Flags()
			if flags.Changed("format") {
				settings.PlaylistFormat = formatFlag
			}
			if flags.Changed("title-from-tags") && titlesFromTags {
				settings.TitleSource = config.TitleFromTags
			}
			if flags.Changed("verbose") {
				settings.Verbose = verboseFlag
			}
			if err := settings.Validate(); err != nil {
				return err
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

			var titles audio.TitleReader = audio.FileNameTitles{}
			if settings.TitlesFromTags() {
				titles = audio.TagTitles{}
			}

			opts := playlist.Options{
				ScanDir:    args[0],
				LibraryDir: args[1],
				OutputFile: args[2],
				Format:     settings.ToPlaylistFormat(),
				Extended:   settings.M3UExtended,
			}
			if len(args) == 4 {
				opts.Exclusions = args[3]
			}

			stderr := cmd.ErrOrStderr()
			builder := playlist.NewBuilder(opts, audio.NewFileDurationReader(), titles, logger, func(e progress.Event) {
				if e.Level == progress.LevelVerbose && settings.Verbose {
					fmt.Fprintln(stderr, e.Message)
				}
			})

			pl, err := builder.Build(cmd.Context())
			if err != nil {
				return errors.Wrap(err, "generate playlist")
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Playlist generated: %s\n", pl.Path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configFlag, "config", "c", "", "Configuration file path (JSON or TOML)")
	cmd.Flags().StringVar(&saveConfigFlag, "save-config", "", "Write the effective settings to this file (JSON or TOML) before running")
	cmd.Flags().StringVarP(&formatFlag, "format", "f", "m3u", "Playlist format: m3u, pls, wpl or zpl")
	cmd.Flags().BoolVar(&titlesFromTags, "title-from-tags", false, "Use the ID3 title of MP3 files instead of the file name")
	cmd.Flags().BoolVarP(&verboseFlag, "verbose", "v", false, "Show every added and excluded file")

	return cmd
}
