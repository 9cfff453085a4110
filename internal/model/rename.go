package model

import "path/filepath"

// illegalChars are the characters that make a file or folder name unusable on
// at least one of the filesystems a library is synced to.
var illegalChars = [...]rune{'?', ':', '"', '*', '!'}

// IllegalChars returns the fixed set of characters that must be replaced or
// removed from file and folder names. The returned slice is a copy.
func IllegalChars() []rune {
	out := make([]rune, len(illegalChars))
	copy(out, illegalChars[:])
	return out
}

// IsIllegalChar reports whether r belongs to the illegal character set.
func IsIllegalChar(r rune) bool {
	for _, c := range illegalChars {
		if r == c {
			return true
		}
	}
	return false
}

// RenameCandidate is a file or folder whose name needs repairing.
type RenameCandidate struct {
	// OldPath is the current full path of the item.
	OldPath string

	// NewName is the repaired base name.
	NewName string

	// IsDir is true for folders.
	IsDir bool
}

// NewPath returns the full path the item will have after the rename.
func (c RenameCandidate) NewPath() string {
	return filepath.Join(filepath.Dir(c.OldPath), c.NewName)
}

// Changed reports whether applying the candidate would change the path.
func (c RenameCandidate) Changed() bool {
	return c.NewPath() != c.OldPath
}
