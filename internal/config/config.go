package config

import (
	"dirsweep/internal/domain"
	"dirsweep/internal/logging"
)

type Config struct {
	Path           string          `json:"path"`
	Patterns       []string        `json:"patterns"`
	IgnorePatterns []string        `json:"ignorePatterns"`
	SafeMode       bool            `json:"safeMode"`
	Confirm        bool            `json:"confirm"`
	SortMode       domain.SortMode `json:"sortMode"`
	Theme          string          `json:"theme"`
	Log            logging.Config  `json:"log"`
}

type fileConfig struct {
	Path           *string         `json:"path"`
	Patterns       []string        `json:"patterns"`
	IgnorePatterns []string        `json:"ignorePatterns"`
	SafeMode       *bool           `json:"safeMode"`
	Confirm        *bool           `json:"confirm"`
	SortMode       *string         `json:"sortMode"`
	Theme          *string         `json:"theme"`
	Log            *logging.Config `json:"log"`
}
