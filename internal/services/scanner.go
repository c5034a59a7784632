package services

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// FSScanner walks a directory tree and reports every directory whose name
// matches a target pattern. Matched and ignored subtrees are pruned, so a
// match inside a match is never reported.
type FSScanner struct {
	logger *slog.Logger
}

func NewFSScanner(logger *slog.Logger) *FSScanner {
	return &FSScanner{logger: logger}
}

// Scan runs one traversal and emits generation-tagged events on out. It
// always finishes with a ScanCompleted, including after cancellation or a
// root that cannot be read. Sends block when out is full; the scan session
// owns no other resources, so a cancelled consumer only has to drain.
func (scanner *FSScanner) Scan(ctx context.Context, req ScanRequest, gen uint64, out chan<- Event) {
	defer func() {
		out <- ScanCompleted{Gen: gen}
	}()

	matcher := req.Matcher
	if matcher == nil || matcher.Empty() {
		return
	}

	root := cleanPath(req.RootPath)
	info, err := os.Stat(root)
	if err != nil {
		out <- ScanError{Gen: gen, Path: root, Message: err.Error()}
		return
	}
	if !info.IsDir() {
		out <- ScanError{Gen: gen, Path: root, Message: "not a directory"}
		return
	}

	start := time.Now()
	found := 0
	errored := 0

	walkErr := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if ctx.Err() != nil {
			return filepath.SkipAll
		}
		if err != nil {
			errored++
			out <- ScanError{Gen: gen, Path: path, Message: err.Error()}
			if entry != nil && entry.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !entry.IsDir() || path == root {
			// Symlinks are not followed: WalkDir reports them as
			// non-directories, so they fall through here.
			return nil
		}

		name := entry.Name()
		if matcher.Ignored(name) {
			return filepath.SkipDir
		}
		if pattern, ok := matcher.Match(name); ok {
			found++
			out <- ScanFound{Gen: gen, Path: path, Pattern: pattern, ModTime: parentModTime(path)}
			return filepath.SkipDir
		}
		return nil
	})
	if walkErr != nil && walkErr != filepath.SkipAll {
		out <- ScanError{Gen: gen, Path: root, Message: walkErr.Error()}
	}

	scanner.logger.Info("scan finished",
		"root", root,
		"generation", gen,
		"found", found,
		"errors", errored,
		"cancelled", ctx.Err() != nil,
		"duration", time.Since(start))
}
