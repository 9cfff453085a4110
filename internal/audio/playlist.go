package audio

import (
	"fmt"
	"strings"
	"time"

	"github.com/handiism/musiclib/internal/model"
)

// PlaylistCreator renders a playlist in one of the supported file formats.
//
// Track paths are written exactly as stored on the tracks, which the
// playlist builder sets relative to the library root (the folder the
// playlist file lives in).
//
// Example:
//
//	creator := NewPlaylistCreator(model.PlaylistFormatM3U, true)
//	content := creator.CreatePlaylist(playlist)
//
//	// Result:
//	// #EXTM3U
//	// #EXTINF:562, So What
//	// Jazz/Kind of Blue/So What.mp3
type PlaylistCreator struct {
	format   model.PlaylistFormat
	extended bool // For M3U: include the #EXTM3U header and EXTINF lines
}

// NewPlaylistCreator creates a new PlaylistCreator.
//
// Parameters:
//   - format: The playlist format to generate
//   - extended: For M3U format, whether to include #EXTINF lines
//     (ignored for other formats)
func NewPlaylistCreator(format model.PlaylistFormat, extended bool) *PlaylistCreator {
	return &PlaylistCreator{
		format:   format,
		extended: extended,
	}
}

// CreatePlaylist generates the playlist file content.
//
// Returns the playlist as a string, ready to be written to playlist.Path.
func (p *PlaylistCreator) CreatePlaylist(playlist *model.Playlist) string {
	switch p.format {
	case model.PlaylistFormatM3U:
		return p.createM3U(playlist)
	case model.PlaylistFormatPLS:
		return p.createPLS(playlist)
	case model.PlaylistFormatWPL:
		return p.createWPL(playlist)
	case model.PlaylistFormatZPL:
		return p.createZPL(playlist)
	default:
		return p.createM3U(playlist)
	}
}

// createM3U generates an M3U playlist.
//
// Standard M3U format:
//
//	Jazz/song1.mp3
//	Jazz/song2.ogg
//
// Extended M3U format (when extended=true):
//
//	#EXTM3U
//	#EXTINF:180, song1
//	Jazz/song1.mp3
func (p *PlaylistCreator) createM3U(playlist *model.Playlist) string {
	var sb strings.Builder

	if p.extended {
		sb.WriteString("#EXTM3U\n")
	}

	for _, track := range playlist.Tracks {
		if p.extended {
			fmt.Fprintf(&sb, "#EXTINF:%d, %s\n", track.Duration, track.Title)
		}
		sb.WriteString(track.Path + "\n")
	}

	return sb.String()
}

// createPLS generates a PLS playlist.
//
// PLS format is an INI-style text file:
//
//	[playlist]
//	File1=Jazz/song1.mp3
//	Title1=song1
//	Length1=180
//	NumberOfEntries=1
//	Version=2
func (p *PlaylistCreator) createPLS(playlist *model.Playlist) string {
	var sb strings.Builder

	sb.WriteString("[playlist]\n")

	for i, track := range playlist.Tracks {
		idx := i + 1
		fmt.Fprintf(&sb, "File%d=%s\n", idx, track.Path)
		fmt.Fprintf(&sb, "Title%d=%s\n", idx, track.Title)
		fmt.Fprintf(&sb, "Length%d=%d\n", idx, track.Duration)
	}

	fmt.Fprintf(&sb, "NumberOfEntries=%d\n", len(playlist.Tracks))
	sb.WriteString("Version=2\n")

	return sb.String()
}

// createWPL generates a Windows Media Player playlist.
func (p *PlaylistCreator) createWPL(playlist *model.Playlist) string {
	var sb strings.Builder

	sb.WriteString("<?wpl version=\"1.0\"?>\n")
	sb.WriteString("<smil>\n")
	sb.WriteString("  <head>\n")
	fmt.Fprintf(&sb, "    <title>%s</title>\n", escapeXML(playlistTitle(playlist)))
	sb.WriteString("  </head>\n")
	sb.WriteString("  <body>\n")
	sb.WriteString("    <seq>\n")

	for _, track := range playlist.Tracks {
		fmt.Fprintf(&sb, "      <media src=\"%s\"/>\n", escapeXML(track.Path))
	}

	sb.WriteString("    </seq>\n")
	sb.WriteString("  </body>\n")
	sb.WriteString("</smil>\n")

	return sb.String()
}

// createZPL generates a Zune/Groove Music playlist.
//
// ZPL is similar to WPL but carries the track title and duration.
func (p *PlaylistCreator) createZPL(playlist *model.Playlist) string {
	var sb strings.Builder

	sb.WriteString("<?zpl version=\"2.0\"?>\n")
	sb.WriteString("<smil>\n")
	sb.WriteString("  <head>\n")
	fmt.Fprintf(&sb, "    <title>%s</title>\n", escapeXML(playlistTitle(playlist)))
	sb.WriteString("    <meta name=\"Generator\" content=\"musiclib\"/>\n")
	fmt.Fprintf(&sb, "    <meta name=\"ItemCount\" content=\"%d\"/>\n", len(playlist.Tracks))
	fmt.Fprintf(&sb, "    <meta name=\"TotalDuration\" content=\"%d\"/>\n", playlist.TotalDuration())
	sb.WriteString("  </head>\n")
	sb.WriteString("  <body>\n")
	sb.WriteString("    <seq>\n")

	for _, track := range playlist.Tracks {
		duration := time.Duration(track.Duration) * time.Second
		fmt.Fprintf(&sb, "      <media src=\"%s\" trackTitle=\"%s\" duration=\"%d\"/>\n",
			escapeXML(track.Path),
			escapeXML(track.Title),
			duration.Milliseconds())
	}

	sb.WriteString("    </seq>\n")
	sb.WriteString("  </body>\n")
	sb.WriteString("</smil>\n")

	return sb.String()
}

// playlistTitle is the playlist file name without its extension.
func playlistTitle(playlist *model.Playlist) string {
	return model.TitleFromFileName(playlist.Name)
}

// escapeXML escapes special XML characters in a string.
//
// Replaces: & < > " '
// With:     &amp; &lt; &gt; &quot; &apos;
func escapeXML(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, "\"", "&quot;")
	s = strings.ReplaceAll(s, "'", "&apos;")
	return s
}
