// Package audio provides the audio-file services used by the playlist
// builder: duration probing, title lookup and playlist rendering.
//
// # Durations
//
// FileDurationReader measures MP3 and Ogg Vorbis files:
//
//	reader := audio.NewFileDurationReader()
//	d, err := reader.Duration("/music/Jazz/So What.mp3")
//
// MP3 files are measured by walking every MPEG frame header, Ogg Vorbis
// files by reading the granule position of the last page. Any other
// extension fails with ErrUnsupportedFormat.
//
// # Titles
//
// FileNameTitles derives a title from the file name; TagTitles reads the
// ID3v2 title frame and falls back to the file name:
//
//	title, err := audio.TagTitles{}.Title(path)
//
// # Playlist Generation
//
// Generate playlists in various formats:
//
//	creator := audio.NewPlaylistCreator(model.PlaylistFormatM3U, true) // extended M3U
//	content := creator.CreatePlaylist(playlist)
//
// Supported formats:
//   - M3U (plain and extended with #EXTINF)
//   - PLS (Winamp)
//   - WPL (Windows Media Player)
//   - ZPL (Zune)
package audio
