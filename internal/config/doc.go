// Package config provides configuration management for the music library tools.
//
// This package handles:
//   - Loading and saving settings from JSON or TOML files
//   - Default configuration values
//   - Conversion to the option types of the playlist and normalize packages
//
// # Default Settings
//
// Use DefaultSettings() to get sensible defaults:
//
//	settings := config.DefaultSettings()
//	// Extended M3U playlists, titles from file names, renames applied
//
// # Loading from File
//
//	settings, err := config.Load("/path/to/musiclib.toml")
//	if err != nil {
//	    // Uses defaults if file doesn't exist
//	}
//
// Files ending in .toml are decoded as TOML, everything else as JSON.
//
// # Saving Settings
//
//	settings.PlaylistFormat = "pls"
//	err := settings.Save("/path/to/musiclib.json")
package config
