package config

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"

	ioutils "github.com/handiism/musiclib/internal/io"
	"github.com/handiism/musiclib/internal/model"
)

// Title sources accepted by Settings.TitleSource.
const (
	TitleFromFileName = "filename"
	TitleFromTags     = "tags"
)

// Settings holds all configuration options.
type Settings struct {
	// Playlist settings
	PlaylistFormat string `json:"playlist_format" toml:"playlist_format"` // m3u, pls, wpl, zpl
	M3UExtended    bool   `json:"m3u_extended" toml:"m3u_extended"`
	TitleSource    string `json:"title_source" toml:"title_source"` // filename, tags

	// Normalizer settings
	DryRun bool `json:"dry_run" toml:"dry_run"`

	// Logging
	Verbose   bool   `json:"verbose" toml:"verbose"`
	LogFormat string `json:"log_format" toml:"log_format"` // console, json
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	return &Settings{
		PlaylistFormat: "m3u",
		M3UExtended:    true,
		TitleSource:    TitleFromFileName,

		DryRun: false,

		Verbose:   false,
		LogFormat: "console",
	}
}

// Load reads settings from a JSON or TOML file.
//
// A missing file is not an error: the defaults are returned instead.
// Values absent from the file keep their default.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, errors.Wrapf(err, "read config %s", path)
	}

	settings := DefaultSettings()
	if isTOML(path) {
		err = toml.Unmarshal(data, settings)
	} else {
		err = json.Unmarshal(data, settings)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "parse config %s", path)
	}

	if err := settings.Validate(); err != nil {
		return nil, errors.Wrapf(err, "config %s", path)
	}
	return settings, nil
}

// Save writes settings to a JSON or TOML file, chosen by extension. Missing
// parent directories are created.
func (s *Settings) Save(path string) error {
	if err := ioutils.EnsureDir(filepath.Dir(path)); err != nil {
		return err
	}

	var (
		data []byte
		err  error
	)
	if isTOML(path) {
		data, err = toml.Marshal(s)
	} else {
		data, err = json.MarshalIndent(s, "", "  ")
	}
	if err != nil {
		return errors.Wrap(err, "encode config")
	}

	return ioutils.WriteFile(context.Background(), path, data)
}

// Validate reports settings that cannot be honoured.
func (s *Settings) Validate() error {
	if _, ok := model.ParsePlaylistFormat(s.PlaylistFormat); !ok {
		return errors.Errorf("unknown playlist format %q", s.PlaylistFormat)
	}
	switch s.TitleSource {
	case "", TitleFromFileName, TitleFromTags:
	default:
		return errors.Errorf("unknown title source %q", s.TitleSource)
	}
	return nil
}

// ToPlaylistFormat converts the configured format name to a model.PlaylistFormat.
func (s *Settings) ToPlaylistFormat() model.PlaylistFormat {
	pf, _ := model.ParsePlaylistFormat(s.PlaylistFormat)
	return pf
}

// TitlesFromTags reports whether track titles should be read from ID3 tags.
func (s *Settings) TitlesFromTags() bool {
	return s.TitleSource == TitleFromTags
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}
