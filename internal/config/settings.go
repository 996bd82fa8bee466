package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/handiism/mp3tagger/internal/audio"
)

// Settings holds all configuration options.
type Settings struct {
	// Batch settings
	Extensions   []string `json:"extensions"`
	LastTemplate string   `json:"last_template"`

	// File naming
	RenameFiles       bool `json:"rename_files"`
	SanitizeFileNames bool `json:"sanitize_file_names"`

	// Tag settings
	ModifyTags       bool `json:"modify_tags"`
	ClearExisting    bool `json:"clear_existing_tags"`
	RemoveID3v1      bool `json:"remove_id3v1"`
	VerifyTags       bool `json:"verify_tags"`
	MaxPreflightJobs int  `json:"max_preflight_jobs"`

	// Cover art settings
	CoverArtPath          string `json:"cover_art_path"`
	DetectCoverArt        bool   `json:"detect_cover_art"`
	CoverArtInTagsMaxSize int    `json:"cover_art_in_tags_max_size"`
	ConvertCoverArtToJPG  bool   `json:"convert_cover_art_to_jpg"`

	// Playlist settings
	CreatePlaylist bool   `json:"create_playlist"`
	PlaylistFormat string `json:"playlist_format"` // m3u, pls, wpl, zpl
	M3UExtended    bool   `json:"m3u_extended"`

	// Run settings (not persisted)
	DryRun bool `json:"-"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	return &Settings{
		Extensions:   []string{".mp3"},
		LastTemplate: "",

		RenameFiles:       true,
		SanitizeFileNames: true,

		ModifyTags:       true,
		ClearExisting:    true,
		RemoveID3v1:      true,
		VerifyTags:       true,
		MaxPreflightJobs: 8,

		CoverArtPath:          "",
		DetectCoverArt:        false,
		CoverArtInTagsMaxSize: 1000,
		ConvertCoverArtToJPG:  true,

		CreatePlaylist: false,
		PlaylistFormat: "m3u",
		M3UExtended:    true,
	}
}

// DefaultPath returns the default location of the settings file,
// e.g. ~/.config/mp3tagger/config.json on Linux.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "mp3tagger", "config.json")
}

// Load reads settings from a JSON file.
//
// A missing file is not an error: the defaults are returned instead.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, err
	}

	settings := DefaultSettings()
	if err := json.Unmarshal(data, settings); err != nil {
		return nil, err
	}

	return settings, nil
}

// Save writes settings to a JSON file.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// NormalizedExtensions returns Extensions lower-cased and with a leading dot.
func (s *Settings) NormalizedExtensions() []string {
	exts := make([]string, 0, len(s.Extensions))
	for _, ext := range s.Extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		exts = append(exts, ext)
	}
	if len(exts) == 0 {
		return []string{".mp3"}
	}
	return exts
}

// ToPlaylistFormat converts the playlist_format setting to an audio.PlaylistFormat.
func (s *Settings) ToPlaylistFormat() audio.PlaylistFormat {
	switch s.PlaylistFormat {
	case "pls":
		return audio.FormatPLS
	case "wpl":
		return audio.FormatWPL
	case "zpl":
		return audio.FormatZPL
	default:
		return audio.FormatM3U
	}
}

// ToTagConfig converts settings to an audio.TagConfig.
func (s *Settings) ToTagConfig() *audio.TagConfig {
	cfg := audio.DefaultTagConfig()
	cfg.ModifyTags = s.ModifyTags
	cfg.ClearExisting = s.ClearExisting
	cfg.RemoveID3v1 = s.RemoveID3v1
	return cfg
}
