package audio

import (
	"path/filepath"
	"strings"

	"github.com/bogem/id3v2"
	"github.com/pkg/errors"

	"github.com/handiism/musiclib/internal/model"
)

// TitleReader returns the display title written on a track's EXTINF line.
type TitleReader interface {
	Title(path string) (string, error)
}

// FileNameTitles uses the file name without its extension as the title.
type FileNameTitles struct{}

// Title returns the base name of path minus its extension.
func (FileNameTitles) Title(path string) (string, error) {
	return model.TitleFromFileName(filepath.Base(path)), nil
}

// TagTitles reads the TIT2 (Title) frame of MP3 files.
//
// Files without an ID3v2 tag, with an empty title, or in a format that does
// not carry ID3 tags fall back to FileNameTitles.
type TagTitles struct{}

// Title returns the tagged title of the file at path.
func (TagTitles) Title(path string) (string, error) {
	if strings.ToLower(filepath.Ext(path)) != ".mp3" {
		return FileNameTitles{}.Title(path)
	}

	tag, err := id3v2.Open(path, id3v2.Options{Parse: true, ParseFrames: []string{"Title"}})
	if err != nil {
		return "", errors.Wrapf(err, "read tags of %s", path)
	}
	defer tag.Close()

	if title := strings.TrimSpace(tag.Title()); title != "" {
		return title, nil
	}
	return FileNameTitles{}.Title(path)
}
