// Package playlist builds a playlist file from the audio files found under a
// directory tree.
//
// The builder walks the scan directory top-down, keeps every .mp3 and .ogg
// file (any letter case) whose full path does not match the exclusion
// pattern, measures each one, and writes the playlist into the library root
// with track paths relative to that root:
//
//	b := playlist.NewBuilder(playlist.Options{
//	    ScanDir:    "/home/user/Music/Jazz",
//	    LibraryDir: "/home/user/Music",
//	    OutputFile: "Jazz.m3u",
//	}, audio.NewFileDurationReader(), audio.FileNameTitles{}, logger, nil)
//	pl, err := b.Build(ctx)
//	fmt.Println(pl.Path) // "/home/user/Music/Jazz.m3u"
//
// A file whose duration cannot be read aborts the build before anything is
// written.
package playlist
