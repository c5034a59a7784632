package config

import (
	"flag"
	"strings"
)

func ParseFlags(base Config) Config {
	patterns := flag.String("patterns", strings.Join(base.Patterns, ","), "Comma-separated directory name patterns to find")
	ignore := flag.String("ignore", strings.Join(base.IgnorePatterns, ","), "Comma-separated regexes for directory names to skip")
	safeMode := flag.Bool("safe-mode", base.SafeMode, "Refuse to delete system and home directories")
	noConfirm := flag.Bool("no-confirm", !base.Confirm, "Delete without asking for confirmation")
	logFile := flag.String("log-file", base.Log.FilePath, "Write logs to this file (logging is off without it)")
	logLevel := flag.String("log-level", base.Log.Level, "Log level: debug, info, warn or error")
	flag.Parse()

	base.Patterns = splitList(*patterns)
	base.IgnorePatterns = splitList(*ignore)
	base.SafeMode = *safeMode
	base.Confirm = !*noConfirm
	base.Log.FilePath = *logFile
	if level := *logLevel; level != "" {
		base.Log.Level = level
	}
	if root := flag.Arg(0); root != "" {
		base.Path = root
	}
	return base
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
