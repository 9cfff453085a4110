// Package ioutils provides the file system helpers shared by the playlist
// builder and the name normalizer.
//
// This package contains functions for:
//   - Writing files and creating directories
//   - Renaming items without clobbering an existing target
//   - Walking a tree top-down with fully materialised directory listings
//
// # Walking
//
// Walk visits one directory at a time. The callback receives the sorted
// names of the directory's subdirectories and files and returns the
// subdirectories to descend into, which lets a caller rename folders and
// keep walking under their new names:
//
//	err := ioutils.Walk("/music", func(dir string, dirs, files []string) ([]string, error) {
//	    for _, f := range files {
//	        fmt.Println(filepath.Join(dir, f))
//	    }
//	    return dirs, nil
//	})
//
// # Renaming
//
//	err := ioutils.Rename(ctx, "/music/What?", "/music/What")
//	if errors.Is(err, ioutils.ErrTargetExists) {
//	    // another item already has the repaired name
//	}
package ioutils
