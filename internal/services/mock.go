package services

import (
	"context"
	"sync/atomic"
	"time"
)

// Mock workers for coordinator tests: they emit scripted events instead of
// touching the filesystem.

type MockScanner struct {
	Found map[string]string // path -> matched pattern
	Delay time.Duration
	Gate  <-chan struct{} // when set, completion waits for a signal

	Calls atomic.Int64
}

func (scanner *MockScanner) Scan(ctx context.Context, req ScanRequest, gen uint64, out chan<- Event) {
	scanner.Calls.Add(1)
	for path, pattern := range scanner.Found {
		if scanner.Delay > 0 {
			time.Sleep(scanner.Delay)
		}
		out <- ScanFound{Gen: gen, Path: path, Pattern: pattern}
	}
	if scanner.Gate != nil {
		select {
		case <-scanner.Gate:
		case <-ctx.Done():
		}
	}
	out <- ScanCompleted{Gen: gen}
}

type MockSizer struct {
	Sizes map[string]int64
	Errs  map[string]string
	Delay time.Duration

	Calls atomic.Int64
}

func (sizer *MockSizer) Compute(ctx context.Context, path string, gen uint64, out chan<- Event) {
	sizer.Calls.Add(1)
	if sizer.Delay > 0 {
		time.Sleep(sizer.Delay)
	}
	if message, ok := sizer.Errs[path]; ok {
		out <- SizeError{Gen: gen, Path: path, Message: message}
		return
	}
	out <- SizeComputed{Gen: gen, Path: path, Bytes: sizer.Sizes[path]}
}

type MockDeleter struct {
	Fail map[string]string // path -> failure message

	Calls atomic.Int64
}

func (deleter *MockDeleter) Delete(ctx context.Context, req DeleteRequest, gen uint64, out chan<- Event) {
	deleter.Calls.Add(1)
	for _, path := range req.Paths {
		out <- DeleteStarted{Gen: gen, Path: path}
		if message, ok := deleter.Fail[path]; ok {
			out <- DeleteFailed{Gen: gen, Path: path, Message: message}
			continue
		}
		out <- DeleteSucceeded{Gen: gen, Path: path}
	}
}
