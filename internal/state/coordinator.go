package state

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"dirsweep/internal/domain"
	"dirsweep/internal/services"
)

const eventBuffer = 512

// now is swapped out in tests.
var now = time.Now

// Coordinator owns the authoritative map of discovered directories. Workers
// never touch it: they send events into one shared channel and the consumer
// folds them in through DrainEvents, which never blocks. Starting a new scan
// bumps the generation; events tagged with an older generation are dropped
// on arrival instead of the worker being killed.
type Coordinator struct {
	scanner  services.Scanner
	sizer    services.Sizer
	deleter  services.Deleter
	logger   *slog.Logger
	safeMode bool

	events chan services.Event
	flight singleflight.Group

	baseCtx    context.Context
	baseCancel context.CancelFunc

	mu         sync.Mutex
	gen        uint64
	scanCancel context.CancelFunc
	scanning   bool
	entries    map[string]*domain.Entry
	order      []string
	scanErrors []string
}

func New(scanner services.Scanner, sizer services.Sizer, deleter services.Deleter, logger *slog.Logger, safeMode bool) *Coordinator {
	ctx, cancel := context.WithCancel(context.Background())
	return &Coordinator{
		scanner:    scanner,
		sizer:      sizer,
		deleter:    deleter,
		logger:     logger,
		safeMode:   safeMode,
		events:     make(chan services.Event, eventBuffer),
		baseCtx:    ctx,
		baseCancel: cancel,
		entries:    make(map[string]*domain.Entry),
	}
}

// Close cancels every worker context. In-flight events are left for garbage
// collection along with the coordinator itself.
func (c *Coordinator) Close() {
	c.baseCancel()
}

// StartScan invalidates the previous scan session, clears all entries and
// launches a new scanner. It fails only on an invalid ignore pattern.
func (c *Coordinator) StartScan(root string, patterns, ignore []string) error {
	matcher, err := services.NewMatcher(patterns, ignore)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.scanCancel != nil {
		c.scanCancel()
	}
	ctx, cancel := context.WithCancel(c.baseCtx)
	c.scanCancel = cancel
	c.gen++
	c.scanning = true
	c.entries = make(map[string]*domain.Entry)
	c.order = nil
	c.scanErrors = nil

	gen := c.gen
	c.logger.Info("scan started", "root", root, "generation", gen, "patterns", patterns)
	go c.scanner.Scan(ctx, services.ScanRequest{RootPath: root, Matcher: matcher}, gen, c.events)
	return nil
}

// RequestSize starts a size computation for path unless one already ran or
// is running, or the entry is being deleted. The singleflight group keyed by
// generation and path guarantees at most one concurrent walk per path even
// if callers race past the entry-state check.
func (c *Coordinator) RequestSize(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[path]
	if !ok {
		return
	}
	if entry.SizeState == domain.SizeReady || entry.SizeState == domain.SizeComputing {
		return
	}
	if entry.Status == domain.StatusDeleting || entry.Status == domain.StatusDeleted {
		return
	}
	entry.SizeState = domain.SizeComputing

	gen := c.gen
	key := fmt.Sprintf("%d:%s", gen, path)
	go func() {
		c.flight.Do(key, func() (any, error) { //nolint:errcheck
			c.sizer.Compute(c.baseCtx, path, gen, c.events)
			return nil, nil
		})
	}()
}

func (c *Coordinator) ToggleSelection(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if entry, ok := c.entries[path]; ok && entry.Deletable() {
		entry.Selected = !entry.Selected
	}
}

func (c *Coordinator) SelectAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, entry := range c.entries {
		if entry.Deletable() {
			entry.Selected = true
		}
	}
}

func (c *Coordinator) DeselectAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, entry := range c.entries {
		entry.Selected = false
	}
}

// DeleteOne starts a deletion for a single path. The entry is marked
// Deleting immediately, before any worker event arrives.
func (c *Coordinator) DeleteOne(path string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.startDelete([]string{path}) == 1
}

// DeleteSelected starts one deletion batch over all selected entries and
// returns how many it covers. Each path succeeds or fails on its own.
func (c *Coordinator) DeleteSelected() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	var paths []string
	for _, path := range c.order {
		if entry := c.entries[path]; entry != nil && entry.Selected && entry.Deletable() {
			paths = append(paths, path)
		}
	}
	return c.startDelete(paths)
}

func (c *Coordinator) startDelete(paths []string) int {
	var accepted []string
	for _, path := range paths {
		entry, ok := c.entries[path]
		if !ok || !entry.Deletable() {
			continue
		}
		entry.Status = domain.StatusDeleting
		entry.StatusErr = ""
		accepted = append(accepted, path)
	}
	if len(accepted) == 0 {
		return 0
	}

	gen := c.gen
	go c.deleter.Delete(c.baseCtx, services.DeleteRequest{Paths: accepted, SafeMode: c.safeMode}, gen, c.events)
	return len(accepted)
}

// DrainEvents applies every event currently queued and returns the paths
// whose entries changed, in application order. It never waits for a worker.
func (c *Coordinator) DrainEvents() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	var changed []string
	seen := make(map[string]struct{})
	for {
		select {
		case event := <-c.events:
			if event.EventGen() != c.gen {
				continue
			}
			path, ok := c.apply(event)
			if !ok {
				continue
			}
			if _, dup := seen[path]; !dup {
				seen[path] = struct{}{}
				changed = append(changed, path)
			}
		default:
			return changed
		}
	}
}

func (c *Coordinator) apply(event services.Event) (string, bool) {
	switch event := event.(type) {
	case services.ScanFound:
		if _, ok := c.entries[event.Path]; ok {
			return "", false
		}
		c.entries[event.Path] = &domain.Entry{
			Path:         event.Path,
			Pattern:      event.Pattern,
			FoundAt:      now(),
			LastModified: event.ModTime,
		}
		c.order = append(c.order, event.Path)
		return event.Path, true

	case services.ScanError:
		c.scanErrors = append(c.scanErrors, fmt.Sprintf("%s: %s", event.Path, event.Message))
		c.logger.Warn("scan error", "path", event.Path, "error", event.Message)
		return "", false

	case services.ScanCompleted:
		c.scanning = false
		return "", false

	case services.SizeComputed:
		entry, ok := c.entries[event.Path]
		if !ok || entry.SizeState == domain.SizeReady {
			return "", false
		}
		entry.SizeBytes = event.Bytes
		entry.SizeState = domain.SizeReady
		entry.SizeErr = ""
		return event.Path, true

	case services.SizeError:
		entry, ok := c.entries[event.Path]
		if !ok || entry.SizeState == domain.SizeReady {
			return "", false
		}
		entry.SizeState = domain.SizeFailed
		entry.SizeErr = event.Message
		return event.Path, true

	case services.DeleteStarted:
		return c.advanceStatus(event.Path, domain.StatusDeleting, "")

	case services.DeleteSucceeded:
		return c.advanceStatus(event.Path, domain.StatusDeleted, "")

	case services.DeleteFailed:
		return c.advanceStatus(event.Path, domain.StatusFailed, event.Message)
	}
	return "", false
}

// advanceStatus enforces the forward-only lifecycle: nothing leaves Deleted,
// and a Failed entry only moves again when a new attempt starts.
func (c *Coordinator) advanceStatus(path string, next domain.DeletionStatus, message string) (string, bool) {
	entry, ok := c.entries[path]
	if !ok || entry.Status == domain.StatusDeleted || entry.Status == next {
		return "", false
	}
	if next == domain.StatusDeleting && entry.Status != domain.StatusNormal && entry.Status != domain.StatusFailed {
		return "", false
	}
	entry.Status = next
	entry.StatusErr = message
	if next == domain.StatusDeleted {
		entry.Selected = false
	}
	return path, true
}

// Entries returns a value snapshot in discovery order.
func (c *Coordinator) Entries() []domain.Entry {
	c.mu.Lock()
	defer c.mu.Unlock()

	snapshot := make([]domain.Entry, 0, len(c.order))
	for _, path := range c.order {
		if entry, ok := c.entries[path]; ok {
			snapshot = append(snapshot, *entry)
		}
	}
	return snapshot
}

func (c *Coordinator) Entry(path string) (domain.Entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[path]
	if !ok {
		return domain.Entry{}, false
	}
	return *entry, true
}

// AcknowledgeDeleted removes every Deleted entry from the visible list and
// returns how many were dropped.
func (c *Coordinator) AcknowledgeDeleted() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	kept := c.order[:0]
	removed := 0
	for _, path := range c.order {
		entry, ok := c.entries[path]
		if ok && entry.Status == domain.StatusDeleted {
			delete(c.entries, path)
			removed++
			continue
		}
		kept = append(kept, path)
	}
	c.order = kept
	return removed
}

func (c *Coordinator) Scanning() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.scanning
}

func (c *Coordinator) Generation() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gen
}

func (c *Coordinator) ScanErrors() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.scanErrors...)
}
