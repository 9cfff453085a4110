package model

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Track represents a single audio file that will be listed in a playlist.
//
// Track contains:
//   - Path relative to the library root, as written to the playlist
//   - Duration in whole seconds, truncated toward zero
//   - Title shown on the EXTINF line
type Track struct {
	// Path is the file path relative to the library root.
	Path string

	// Duration is the track length in whole seconds.
	Duration int

	// Title is the display title. Defaults to the file name without its extension.
	Title string
}

// NewTrack creates a Track for the file at sourcePath.
//
// The playlist path is computed relative to libraryRoot. Both paths are made
// absolute first, so a relative scan root can be mixed with an absolute
// library root. The duration is truncated to whole seconds.
//
// Example:
//
//	track, err := NewTrack("/music", "/music/Jazz/Blue in Green.ogg", 337*time.Second+600*time.Millisecond)
//	// track.Path = "Jazz/Blue in Green.ogg", track.Duration = 337
func NewTrack(libraryRoot, sourcePath string, duration time.Duration) (*Track, error) {
	absRoot, err := filepath.Abs(libraryRoot)
	if err != nil {
		return nil, errors.Wrapf(err, "resolve library root %s", libraryRoot)
	}
	absSource, err := filepath.Abs(sourcePath)
	if err != nil {
		return nil, errors.Wrapf(err, "resolve track path %s", sourcePath)
	}

	rel, err := filepath.Rel(absRoot, absSource)
	if err != nil {
		return nil, errors.Wrapf(err, "relative path of %s", sourcePath)
	}

	return &Track{
		Path:     rel,
		Duration: int(duration / time.Second),
		Title:    TitleFromFileName(filepath.Base(sourcePath)),
	}, nil
}

// TitleFromFileName returns the file name with its extension removed.
func TitleFromFileName(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}
