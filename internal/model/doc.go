// Package model defines the core data structures shared by the playlist
// builder and the name normalizer.
//
// # Playlist
//
// Playlist is the in-memory form of a playlist file before it is rendered:
//
//	pl := model.NewPlaylist("/music", "Jazz.m3u", model.PlaylistFormatM3U)
//	pl.Tracks = append(pl.Tracks, track)
//	fmt.Println(pl.Path) // "/music/Jazz.m3u"
//
// # Track
//
// Track is one audio file found under the scan root:
//
//	track, err := model.NewTrack("/music", "/music/Jazz/So What.mp3", 562*time.Second)
//	fmt.Println(track.Path)  // "Jazz/So What.mp3"
//	fmt.Println(track.Title) // "So What"
//
// # Rename candidates
//
// RenameCandidate pairs an existing path with the repaired base name the
// normalizer wants to give it. IllegalChars returns the fixed set of
// characters that trigger a repair.
package model
