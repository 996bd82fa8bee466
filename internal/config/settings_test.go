package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/handiism/mp3tagger/internal/audio"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	settings, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !settings.RenameFiles || !settings.ModifyTags {
		t.Errorf("Load() = %+v, want defaults", settings)
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")

	settings := DefaultSettings()
	settings.LastTemplate = "[tracknum] - [title]"
	settings.PlaylistFormat = "pls"
	settings.DryRun = true
	if err := settings.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.LastTemplate != "[tracknum] - [title]" {
		t.Errorf("LastTemplate = %q, want %q", loaded.LastTemplate, "[tracknum] - [title]")
	}
	if loaded.ToPlaylistFormat() != audio.FormatPLS {
		t.Errorf("ToPlaylistFormat() = %v, want FormatPLS", loaded.ToPlaylistFormat())
	}
	if loaded.DryRun {
		t.Error("DryRun should not be persisted")
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"rename_files": false}`), 0644); err != nil {
		t.Fatal(err)
	}

	settings, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if settings.RenameFiles {
		t.Error("RenameFiles should be false from file")
	}
	if !settings.VerifyTags {
		t.Error("VerifyTags should keep its default")
	}
}

func TestLoad_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load() should fail on invalid JSON")
	}
}

func TestNormalizedExtensions(t *testing.T) {
	settings := DefaultSettings()
	settings.Extensions = []string{"MP3", " .Mp2 ", ""}

	got := settings.NormalizedExtensions()
	want := []string{".mp3", ".mp2"}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("NormalizedExtensions() = %v, want %v", got, want)
	}

	settings.Extensions = nil
	if got := settings.NormalizedExtensions(); len(got) != 1 || got[0] != ".mp3" {
		t.Errorf("NormalizedExtensions() with none = %v, want [.mp3]", got)
	}
}

func TestToTagConfig(t *testing.T) {
	settings := DefaultSettings()
	settings.RemoveID3v1 = false
	settings.ClearExisting = false

	cfg := settings.ToTagConfig()
	if cfg.RemoveID3v1 || cfg.ClearExisting {
		t.Errorf("ToTagConfig() = %+v, want RemoveID3v1 and ClearExisting false", cfg)
	}
	if cfg.Artist != audio.TagModify {
		t.Errorf("ToTagConfig().Artist = %v, want TagModify", cfg.Artist)
	}
}
