package playlist

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/handiism/musiclib/internal/audio"
	ioutils "github.com/handiism/musiclib/internal/io"
	"github.com/handiism/musiclib/internal/model"
	"github.com/handiism/musiclib/internal/progress"
)

// Options describes one playlist to build.
type Options struct {
	// ScanDir is the folder whose audio files (and subfolders) go into the playlist.
	ScanDir string

	// LibraryDir is the root of the music library. The playlist file is
	// written here and track paths are relative to it.
	LibraryDir string

	// OutputFile is the playlist file name, including its extension.
	OutputFile string

	// Exclusions is a regular expression matched against each file's full
	// path. Matching files are left out. Empty means no exclusions.
	Exclusions string

	// Format selects the playlist file format.
	Format model.PlaylistFormat

	// Extended adds the #EXTM3U header and #EXTINF lines to M3U output.
	Extended bool
}

// Builder collects tracks and writes playlist files.
type Builder struct {
	opts       Options
	durations  audio.DurationReader
	titles     audio.TitleReader
	logger     *zap.Logger
	onProgress progress.Func
}

// NewBuilder creates a Builder. A nil titles reader uses file names, a nil
// logger discards log output and a nil onProgress discards progress events.
func NewBuilder(opts Options, durations audio.DurationReader, titles audio.TitleReader, logger *zap.Logger, onProgress progress.Func) *Builder {
	if titles == nil {
		titles = audio.FileNameTitles{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Builder{
		opts:       opts,
		durations:  durations,
		titles:     titles,
		logger:     logger,
		onProgress: onProgress,
	}
}

// Build collects the tracks and writes the playlist file. It returns the
// playlist, whose Path is the written file.
func (b *Builder) Build(ctx context.Context) (*model.Playlist, error) {
	pl, err := b.Collect(ctx)
	if err != nil {
		return nil, err
	}

	content := audio.NewPlaylistCreator(pl.Format, b.opts.Extended).CreatePlaylist(pl)
	if err := ioutils.WriteFile(ctx, pl.Path, []byte(content)); err != nil {
		return nil, err
	}

	b.logger.Debug("playlist written",
		zap.String("path", pl.Path),
		zap.Int("tracks", len(pl.Tracks)),
		zap.Int("seconds", pl.TotalDuration()))
	b.onProgress.Emit(fmt.Sprintf("Wrote %d tracks to %s", len(pl.Tracks), pl.Path), progress.LevelSuccess)
	return pl, nil
}

// Collect walks the scan directory and returns the playlist without writing
// it. Tracks are in traversal order: within a folder, its files (by name)
// come before the files of its subfolders.
func (b *Builder) Collect(ctx context.Context) (*model.Playlist, error) {
	exclude, err := compileExclusions(b.opts.Exclusions)
	if err != nil {
		return nil, err
	}

	pl := model.NewPlaylist(b.opts.LibraryDir, b.opts.OutputFile, b.opts.Format)

	err = ioutils.Walk(b.opts.ScanDir, func(dir string, dirs, files []string) ([]string, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for _, name := range files {
			if !audio.IsSupported(name) {
				continue
			}

			path := filepath.Join(dir, name)
			if exclude != nil && exclude.MatchString(path) {
				b.logger.Debug("excluded", zap.String("path", path))
				b.onProgress.Emit(fmt.Sprintf("Excluded: %s", path), progress.LevelVerbose)
				continue
			}

			track, err := b.newTrack(path)
			if err != nil {
				return nil, err
			}
			pl.Tracks = append(pl.Tracks, track)
			b.onProgress.Emit(fmt.Sprintf("Added: %s (%ds)", track.Path, track.Duration), progress.LevelVerbose)
		}
		return dirs, nil
	})
	if err != nil {
		return nil, err
	}

	return pl, nil
}

func (b *Builder) newTrack(path string) (*model.Track, error) {
	duration, err := b.durations.Duration(path)
	if err != nil {
		return nil, err
	}

	track, err := model.NewTrack(b.opts.LibraryDir, path, duration)
	if err != nil {
		return nil, err
	}

	title, err := b.titles.Title(path)
	if err != nil {
		return nil, err
	}
	track.Title = title

	b.logger.Debug("track",
		zap.String("path", track.Path),
		zap.Int("seconds", track.Duration),
		zap.String("title", track.Title))
	return track, nil
}

// compileExclusions compiles the exclusion pattern. An empty pattern yields nil.
func compileExclusions(pattern string) (*regexp.Regexp, error) {
	if pattern == "" {
		return nil, nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid exclusion pattern %q", pattern)
	}
	return re, nil
}
