package services

import (
	"fmt"
	"regexp"
	"strings"
)

// Matcher decides whether a directory name is a target and whether it should
// be ignored. Ignore wins over match: an ignored directory is neither
// reported nor descended into. No I/O happens here.
type Matcher struct {
	patterns []string
	ignore   []*regexp.Regexp
}

func NewMatcher(patterns []string, ignore []string) (*Matcher, error) {
	cleaned := make([]string, 0, len(patterns))
	for _, pattern := range patterns {
		pattern = strings.ToLower(strings.TrimSpace(pattern))
		if pattern != "" {
			cleaned = append(cleaned, pattern)
		}
	}

	compiled := make([]*regexp.Regexp, 0, len(ignore))
	for _, raw := range ignore {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		expr, err := regexp.Compile(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid ignore pattern %q: %w", raw, err)
		}
		compiled = append(compiled, expr)
	}

	return &Matcher{patterns: cleaned, ignore: compiled}, nil
}

// Empty reports whether there is nothing to match. An empty matcher makes a
// scan finish immediately with zero results.
func (m *Matcher) Empty() bool {
	return len(m.patterns) == 0
}

// Match returns the first target pattern the name contains,
// case-insensitively.
func (m *Matcher) Match(name string) (string, bool) {
	lowered := strings.ToLower(name)
	for _, pattern := range m.patterns {
		if strings.Contains(lowered, pattern) {
			return pattern, true
		}
	}
	return "", false
}

func (m *Matcher) Ignored(name string) bool {
	for _, expr := range m.ignore {
		if expr.MatchString(name) {
			return true
		}
	}
	return false
}
