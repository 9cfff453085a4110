package model

import (
	"path/filepath"
	"strings"
)

// Playlist is an ordered list of tracks together with the location of the
// playlist file that will hold them.
//
// Tracks are kept in the order the directory walk found them.
type Playlist struct {
	// Name is the playlist file name, including its extension.
	Name string

	// Path is the full path of the playlist file.
	Path string

	// Format determines how the playlist is rendered.
	Format PlaylistFormat

	// Tracks contains the playlist entries in traversal order.
	Tracks []*Track
}

// NewPlaylist creates an empty playlist stored as name inside libraryRoot.
func NewPlaylist(libraryRoot, name string, format PlaylistFormat) *Playlist {
	return &Playlist{
		Name:   name,
		Path:   filepath.Join(libraryRoot, name),
		Format: format,
	}
}

// TotalDuration returns the sum of all track durations in seconds.
func (p *Playlist) TotalDuration() int {
	total := 0
	for _, t := range p.Tracks {
		total += t.Duration
	}
	return total
}

// PlaylistFormat represents supported playlist file formats.
type PlaylistFormat int

const (
	// PlaylistFormatM3U creates .m3u playlist files (most widely supported).
	PlaylistFormatM3U PlaylistFormat = iota

	// PlaylistFormatPLS creates .pls playlist files (used by Winamp).
	PlaylistFormatPLS

	// PlaylistFormatWPL creates .wpl playlist files (Windows Media Player).
	PlaylistFormatWPL

	// PlaylistFormatZPL creates .zpl playlist files (Zune Media Player).
	PlaylistFormatZPL
)

// ParsePlaylistFormat maps a format name ("m3u", "pls", "wpl", "zpl") to a
// PlaylistFormat. Matching is case-insensitive. The second return value is
// false for unknown names, in which case M3U is returned.
func ParsePlaylistFormat(name string) (PlaylistFormat, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "m3u":
		return PlaylistFormatM3U, true
	case "pls":
		return PlaylistFormatPLS, true
	case "wpl":
		return PlaylistFormatWPL, true
	case "zpl":
		return PlaylistFormatZPL, true
	default:
		return PlaylistFormatM3U, false
	}
}

// Extension returns the file extension for the playlist format, including the dot.
//
// Returns:
//   - ".m3u" for PlaylistFormatM3U
//   - ".pls" for PlaylistFormatPLS
//   - ".wpl" for PlaylistFormatWPL
//   - ".zpl" for PlaylistFormatZPL
func (pf PlaylistFormat) Extension() string {
	switch pf {
	case PlaylistFormatM3U:
		return ".m3u"
	case PlaylistFormatPLS:
		return ".pls"
	case PlaylistFormatWPL:
		return ".wpl"
	case PlaylistFormatZPL:
		return ".zpl"
	default:
		return ".m3u"
	}
}

// String returns the lower-case format name.
func (pf PlaylistFormat) String() string {
	return strings.TrimPrefix(pf.Extension(), ".")
}
