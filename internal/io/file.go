package ioutils

import (
	"context"
	"os"
	"path/filepath"
	"sort"

	"github.com/pkg/errors"
)

// ErrTargetExists is returned by Rename when the destination path is already taken.
var ErrTargetExists = errors.New("rename target already exists")

// WriteFile writes data to a file, creating it if necessary.
//
// The file is created with mode 0644. If the file already exists,
// it is truncated before writing. The parent directory must exist.
//
// Example:
//
//	playlistContent := []byte("#EXTM3U\n...")
//	err := WriteFile(ctx, "/music/Jazz.m3u", playlistContent)
func WriteFile(ctx context.Context, path string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(err, "write %s", path)
	}
	return nil
}

// EnsureDir creates path and any missing parents with mode 0755. An existing
// directory is not an error.
func EnsureDir(path string) error {
	if err := os.MkdirAll(path, 0755); err != nil {
		return errors.Wrapf(err, "create directory %s", path)
	}
	return nil
}

// Rename moves oldPath to newPath.
//
// Unlike os.Rename, an existing item at newPath is never replaced: the call
// fails with ErrTargetExists instead. Renaming a path to itself is a no-op.
// A case-only change ("abc" to "ABC") is allowed on case-insensitive
// filesystems, where the target appears to exist because it is the same file.
func Rename(ctx context.Context, oldPath, newPath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if oldPath == newPath {
		return nil
	}

	taken, err := TargetTaken(oldPath, newPath)
	if err != nil {
		return err
	}
	if taken {
		return errors.Wrapf(ErrTargetExists, "%s -> %s", oldPath, newPath)
	}

	if err := os.Rename(oldPath, newPath); err != nil {
		return errors.Wrapf(err, "rename %s", oldPath)
	}
	return nil
}

// TargetTaken reports whether renaming oldPath to newPath would replace a
// different existing item. A newPath that names the same file as oldPath,
// as with a case-only change on a case-insensitive filesystem, is not taken.
func TargetTaken(oldPath, newPath string) (bool, error) {
	target, err := os.Lstat(newPath)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, errors.Wrapf(err, "stat %s", newPath)
	}
	source, err := os.Lstat(oldPath)
	if err != nil {
		return true, nil
	}
	return !os.SameFile(source, target), nil
}

// WalkFunc is called by Walk once for every directory it visits.
//
// dirs and files hold the sorted base names of the directory's entries. The
// returned slice lists the subdirectories (base names) Walk descends into
// next; returning dirs unchanged walks the whole tree. A non-nil error stops
// the walk and is returned by Walk.
type WalkFunc func(dir string, dirs, files []string) ([]string, error)

// Walk traverses the tree rooted at root top-down.
//
// Each directory listing is read completely before fn is called, so fn may
// rename entries of dir without disturbing the traversal. Within a
// directory, fn sees the files before Walk descends into any subdirectory.
// Symbolic links are reported as files and never followed.
func Walk(root string, fn WalkFunc) error {
	dirs, files, err := readDir(root)
	if err != nil {
		return err
	}

	next, err := fn(root, dirs, files)
	if err != nil {
		return err
	}

	for _, name := range next {
		if err := Walk(filepath.Join(root, name), fn); err != nil {
			return err
		}
	}
	return nil
}

// readDir splits the entries of dir into sorted directory and file names.
func readDir(dir string) (dirs, files []string, err error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "read directory %s", dir)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			dirs = append(dirs, entry.Name())
		} else {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(dirs)
	sort.Strings(files)
	return dirs, files, nil
}
