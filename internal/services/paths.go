package services

import (
	"os"
	"path/filepath"
	"strings"
	"time"
)

func cleanPath(path string) string {
	if path == "" {
		return path
	}
	clean := filepath.Clean(path)
	abs, err := filepath.Abs(clean)
	if err != nil {
		return clean
	}
	return abs
}

// isCriticalPath guards safe mode: system roots and the home directory
// itself are never deleted, only things below them.
func isCriticalPath(path string) bool {
	path = filepath.Clean(path)
	critical := []string{"/", "/etc", "/usr", "/var", "/bin", "/home"}
	if home, err := os.UserHomeDir(); err == nil {
		critical = append(critical, filepath.Clean(home))
	}
	for _, root := range critical {
		if path == root {
			return true
		}
	}
	return false
}

// parentModTime reports when the directory containing path last changed.
// The parent says more about a project's staleness than the matched
// directory itself does.
func parentModTime(path string) time.Time {
	info, err := os.Stat(filepath.Dir(path))
	if err != nil {
		return time.Time{}
	}
	return info.ModTime()
}

func normalizePaths(paths []string) []string {
	seen := make(map[string]struct{}, len(paths))
	result := make([]string, 0, len(paths))
	for _, path := range paths {
		if strings.TrimSpace(path) == "" {
			continue
		}
		clean := cleanPath(path)
		if _, ok := seen[clean]; ok {
			continue
		}
		seen[clean] = struct{}{}
		result = append(result, clean)
	}
	return result
}
