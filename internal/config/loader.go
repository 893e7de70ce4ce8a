package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// TuningFile is the file name looked up in the config directories.
const TuningFile = "tuning.yaml"

// LoadTuning loads engine tuning.
// Search order: customPath -> ~/.lanerunner/configs/tuning.yaml ->
// ./configs/tuning.yaml -> embedded default.
//
// Files are decoded on top of the defaults, so a partial file only overrides
// the keys it names. A custom path that cannot be read or parsed is an
// error; the other locations are skipped silently.
func LoadTuning(customPath string) (Tuning, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return Tuning{}, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := parseTuning(data)
		if err != nil {
			return Tuning{}, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	for _, path := range []string{userConfigPath(TuningFile), filepath.Join("configs", TuningFile)} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if cfg, err := parseTuning(data); err == nil {
			return cfg, nil
		}
	}

	cfg, err := parseTuning(defaultTuningYAML)
	if err != nil {
		return DefaultTuning(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// parseTuning decodes YAML over the defaults and validates the result.
func parseTuning(data []byte) (Tuning, error) {
	cfg := DefaultTuning()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Tuning{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Tuning{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to a user config file, or empty if the
// home directory is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".lanerunner", "configs", filename)
}
