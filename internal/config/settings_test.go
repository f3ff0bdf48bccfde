package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempSettings(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "settings.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadSettingsMissingFileUsesDefaults(t *testing.T) {
	s, err := LoadSettings(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("missing file must not be an error: %v", err)
	}
	def := DefaultSettings()
	if s.Viewport != def.Viewport || s.Data != def.Data {
		t.Fatalf("got %+v, want defaults", s)
	}
	if len(s.Combat.StartingWeapons) == 0 {
		t.Fatal("defaults must include a starting weapon")
	}
}

func TestLoadSettingsOverrides(t *testing.T) {
	path := writeTempSettings(t, `
seed: 7
viewport:
  width: 800
  height: 600
combat:
  starting_weapons: [WEAPON_TESLA]
  targeting_mode: weakest
`)
	s, err := LoadSettings(path)
	if err != nil {
		t.Fatal(err)
	}
	if s.Seed != 7 {
		t.Fatalf("seed = %d, want 7", s.Seed)
	}
	if s.Viewport.Width != 800 || s.Viewport.Height != 600 {
		t.Fatalf("viewport = %+v", s.Viewport)
	}
	if len(s.Combat.StartingWeapons) != 1 || s.Combat.StartingWeapons[0] != "WEAPON_TESLA" {
		t.Fatalf("starting weapons = %v", s.Combat.StartingWeapons)
	}
	if s.Combat.TargetingMode != "weakest" {
		t.Fatalf("targeting mode = %q", s.Combat.TargetingMode)
	}
	// Не указанные в файле секции сохраняют значения по умолчанию.
	if s.Data.Agents != DefaultSettings().Data.Agents {
		t.Fatalf("data paths must keep defaults, got %q", s.Data.Agents)
	}
}

func TestLoadSettingsRejectsBadViewport(t *testing.T) {
	path := writeTempSettings(t, `
viewport:
  width: -5
  height: 600
`)
	if _, err := LoadSettings(path); err == nil {
		t.Fatal("negative viewport must be a configuration error")
	}
}

func TestLoadSettingsRejectsMalformedYaml(t *testing.T) {
	path := writeTempSettings(t, "viewport: [not a map")
	if _, err := LoadSettings(path); err == nil {
		t.Fatal("malformed yaml must be a configuration error")
	}
}
