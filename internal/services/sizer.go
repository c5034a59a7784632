package services

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// FSSizer computes the total size of the regular files under a directory.
// Unreadable subtrees count as zero bytes; only an unreadable root fails the
// whole computation.
type FSSizer struct {
	logger *slog.Logger
}

func NewFSSizer(logger *slog.Logger) *FSSizer {
	return &FSSizer{logger: logger}
}

// Compute walks path and emits exactly one terminal event: SizeComputed on
// success, SizeError when the root itself cannot be read. Symlinks are
// neither followed nor counted.
func (sizer *FSSizer) Compute(ctx context.Context, path string, gen uint64, out chan<- Event) {
	root := cleanPath(path)
	if _, err := os.Stat(root); err != nil {
		out <- SizeError{Gen: gen, Path: root, Message: err.Error()}
		return
	}

	start := time.Now()
	var total int64

	walkErr := filepath.WalkDir(root, func(entryPath string, entry fs.DirEntry, err error) error {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err != nil {
			// Stat can succeed on a root whose listing then fails;
			// that still counts as an unreadable root.
			if entryPath == root {
				return err
			}
			if entry != nil && entry.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !entry.Type().IsRegular() {
			return nil
		}
		info, infoErr := entry.Info()
		if infoErr != nil {
			return nil
		}
		total += info.Size()
		return nil
	})
	if walkErr != nil {
		out <- SizeError{Gen: gen, Path: root, Message: walkErr.Error()}
		return
	}

	sizer.logger.Debug("size computed",
		"path", root, "bytes", total, "duration", time.Since(start))
	out <- SizeComputed{Gen: gen, Path: root, Bytes: total}
}
