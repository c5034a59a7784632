package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"dirsweep/internal/domain"
	"dirsweep/internal/logging"
)

const (
	configDirName  = "dirsweep"
	configFileName = "config.json"
)

func DefaultConfig() Config {
	return Config{
		Path:     ".",
		Patterns: []string{"node_modules"},
		SafeMode: true,
		Confirm:  true,
		SortMode: domain.SortByFound,
		Theme:    "dark",
		Log:      logging.DefaultConfig(),
	}
}

func ConfigPath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, configDirName, configFileName), nil
}

func LoadConfig() (Config, error) {
	config := DefaultConfig()
	path, err := ConfigPath()
	if err != nil {
		return config, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return config, err
	}
	var stored fileConfig
	if err := json.Unmarshal(data, &stored); err != nil {
		return config, err
	}
	return mergeConfig(config, stored), nil
}

func SaveConfig(config Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

func mergeConfig(base Config, stored fileConfig) Config {
	merged := base
	if stored.Path != nil {
		merged.Path = *stored.Path
	}
	if stored.Patterns != nil {
		merged.Patterns = stored.Patterns
	}
	if stored.IgnorePatterns != nil {
		merged.IgnorePatterns = stored.IgnorePatterns
	}
	if stored.SafeMode != nil {
		merged.SafeMode = *stored.SafeMode
	}
	if stored.Confirm != nil {
		merged.Confirm = *stored.Confirm
	}
	if stored.SortMode != nil {
		merged.SortMode = domainSortMode(*stored.SortMode, base.SortMode)
	}
	if stored.Theme != nil {
		merged.Theme = *stored.Theme
	}
	if stored.Log != nil {
		merged.Log = mergeLog(base.Log, *stored.Log)
	}
	return merged
}

func mergeLog(base, stored logging.Config) logging.Config {
	merged := stored
	if !logging.ValidLevel(merged.Level) {
		merged.Level = base.Level
	}
	if merged.Format == "" {
		merged.Format = base.Format
	}
	if merged.FileMaxSizeMB <= 0 {
		merged.FileMaxSizeMB = base.FileMaxSizeMB
	}
	if merged.FileMaxFiles <= 0 {
		merged.FileMaxFiles = base.FileMaxFiles
	}
	if merged.FileMaxAgeDays <= 0 {
		merged.FileMaxAgeDays = base.FileMaxAgeDays
	}
	return merged
}

func domainSortMode(value string, fallback domain.SortMode) domain.SortMode {
	switch domain.SortMode(value) {
	case domain.SortByFound, domain.SortBySize, domain.SortByPath:
		return domain.SortMode(value)
	default:
		return fallback
	}
}
