package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"golang.org/x/sync/errgroup"
)

const deleteWorkers = 4

// FSDeleter removes directories recursively. Each path in a batch gets its
// own Started/terminal pair and its own outcome; one failure never stops the
// rest of the batch.
type FSDeleter struct {
	logger *slog.Logger
}

func NewFSDeleter(logger *slog.Logger) *FSDeleter {
	return &FSDeleter{logger: logger}
}

// Delete removes every path in the request. A path that is already gone
// reports Succeeded, so retrying a finished delete is harmless. Cross-path
// ordering is not defined.
func (deleter *FSDeleter) Delete(ctx context.Context, req DeleteRequest, gen uint64, out chan<- Event) {
	paths := normalizePaths(req.Paths)

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(deleteWorkers)
	for _, path := range paths {
		path := path // per-iteration copy; required while go.mod targets go < 1.22
		group.Go(func() error {
			out <- DeleteStarted{Gen: gen, Path: path}
			if err := deleter.remove(ctx, path, req.SafeMode); err != nil {
				deleter.logger.Warn("delete failed", "path", path, "error", err)
				out <- DeleteFailed{Gen: gen, Path: path, Message: err.Error()}
				return nil
			}
			out <- DeleteSucceeded{Gen: gen, Path: path}
			return nil
		})
	}
	group.Wait() //nolint:errcheck // workers report through events only
}

func (deleter *FSDeleter) remove(ctx context.Context, path string, safeMode bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if safeMode && isCriticalPath(path) {
		return fmt.Errorf("blocked critical path: %s", path)
	}
	if _, err := os.Lstat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}

	start := time.Now()
	if err := os.RemoveAll(path); err != nil {
		return err
	}
	deleter.logger.Info("deleted", "path", path, "duration", time.Since(start))
	return nil
}
