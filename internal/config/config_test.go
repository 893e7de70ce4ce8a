package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := parseTuning(DefaultYAML())
	if err != nil {
		t.Fatalf("embedded tuning does not parse: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultTuning()) {
		t.Errorf("embedded tuning differs from DefaultTuning():\n%+v\n%+v", cfg, DefaultTuning())
	}
}

func TestDefaultTuningIsValid(t *testing.T) {
	if err := DefaultTuning().Validate(); err != nil {
		t.Fatalf("DefaultTuning().Validate() = %v", err)
	}
}

func TestPlayfieldGeometry(t *testing.T) {
	p := DefaultTuning().Playfield
	if p.PlayerY() != 270 {
		t.Errorf("PlayerY() = %f, expected 270", p.PlayerY())
	}
	if p.PlayerMidY() != 334 {
		t.Errorf("PlayerMidY() = %f, expected 334", p.PlayerMidY())
	}
	if got := p.AvoidY(); got < 385.19 || got > 385.21 {
		t.Errorf("AvoidY() = %f, expected 385.2", got)
	}
}

func TestLoadTuningCustomPathOverridesPartially(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	data := []byte("physics:\n  max_frame_delta_ms: 50\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadTuning(path)
	if err != nil {
		t.Fatalf("LoadTuning() failed: %v", err)
	}
	if cfg.Physics.MaxFrameDeltaMs != 50 {
		t.Errorf("MaxFrameDeltaMs = %f, expected 50", cfg.Physics.MaxFrameDeltaMs)
	}
	if cfg.Physics.SpeedMultiplier != 12 {
		t.Errorf("unset keys should keep defaults, SpeedMultiplier = %f", cfg.Physics.SpeedMultiplier)
	}
}

func TestLoadTuningErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadTuning(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected an error for a missing custom file")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("physics: [unclosed"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadTuning(bad); err == nil {
		t.Error("expected an error for malformed YAML")
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("physics:\n  pixels_per_meter: 0\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadTuning(invalid); err == nil {
		t.Error("expected a validation error for zero pixels_per_meter")
	}
}

func TestDifficultyProfiles(t *testing.T) {
	tests := []struct {
		d        Difficulty
		speed    float64
		cooldown float64
		clear    float64
	}{
		{DifficultyEasy, 0.85, 2.6, 400},
		{DifficultyNormal, 1, 1.7, 340},
		{DifficultyHard, 1.12, 1.1, 260},
	}

	for _, tc := range tests {
		t.Run(tc.d.String(), func(t *testing.T) {
			p := tc.d.Profile()
			if p.SpeedMultiplier != tc.speed || p.SpawnCooldownMultiplier != tc.cooldown || p.LaneClearThreshold != tc.clear {
				t.Errorf("Profile() = %+v", p)
			}
		})
	}
}

func TestParseDifficulty(t *testing.T) {
	for _, d := range Difficulties {
		parsed, err := ParseDifficulty(d.String())
		if err != nil || parsed != d {
			t.Errorf("ParseDifficulty(%q) = %v, %v", d.String(), parsed, err)
		}
	}

	if d, err := ParseDifficulty(" HARD "); err != nil || d != DifficultyHard {
		t.Errorf("ParseDifficulty should be case and space insensitive, got %v, %v", d, err)
	}
	if _, err := ParseDifficulty("nightmare"); err == nil {
		t.Error("expected an error for an unknown difficulty")
	}
}

func TestDifficultyText(t *testing.T) {
	var d Difficulty
	if err := d.UnmarshalText([]byte("easy")); err != nil || d != DifficultyEasy {
		t.Errorf("UnmarshalText(easy) = %v, %v", d, err)
	}
	if _, err := Difficulty(42).MarshalText(); err == nil {
		t.Error("MarshalText should reject unknown values")
	}
}
