package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// runDelete collects events until every path has a terminal outcome.
func runDelete(t *testing.T, req DeleteRequest) map[string]Event {
	t.Helper()
	out := make(chan Event, 64)
	done := make(chan struct{})
	go func() {
		NewFSDeleter(testLogger()).Delete(context.Background(), req, 1, out)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("delete batch did not finish")
	}

	outcomes := make(map[string]Event)
	for {
		select {
		case event := <-out:
			switch event := event.(type) {
			case DeleteSucceeded:
				outcomes[event.Path] = event
			case DeleteFailed:
				outcomes[event.Path] = event
			}
		default:
			return outcomes
		}
	}
}

func TestDeleteRemovesSubtree(t *testing.T) {
	root := t.TempDir()
	target := filepath.Join(root, "node_modules")
	mustMkdirAll(t, filepath.Join(target, "dep", "nested"))
	writeFile(t, filepath.Join(target, "dep", "index.js"), 32)

	outcomes := runDelete(t, DeleteRequest{Paths: []string{target}})
	if _, ok := outcomes[target].(DeleteSucceeded); !ok {
		t.Fatalf("expected success for %s, got %#v", target, outcomes[target])
	}
	if _, err := os.Lstat(target); !os.IsNotExist(err) {
		t.Errorf("target still exists after delete: %v", err)
	}
}

func TestDeletePartialFailure(t *testing.T) {
	root := t.TempDir()
	good := filepath.Join(root, "good")
	mustMkdirAll(t, good)

	outcomes := runDelete(t, DeleteRequest{Paths: []string{good, "/etc"}, SafeMode: true})

	if _, ok := outcomes[good].(DeleteSucceeded); !ok {
		t.Errorf("expected success for %s, got %#v", good, outcomes[good])
	}
	failed, ok := outcomes["/etc"].(DeleteFailed)
	if !ok {
		t.Fatalf("expected failure for /etc, got %#v", outcomes["/etc"])
	}
	if failed.Message == "" {
		t.Error("failure should carry a message")
	}
	if _, err := os.Stat("/etc"); err != nil {
		t.Fatalf("/etc must still exist: %v", err)
	}
}

func TestDeleteMissingPathSucceeds(t *testing.T) {
	gone := filepath.Join(t.TempDir(), "already-gone")
	outcomes := runDelete(t, DeleteRequest{Paths: []string{gone}})
	if _, ok := outcomes[gone].(DeleteSucceeded); !ok {
		t.Fatalf("deleting a missing path should succeed, got %#v", outcomes[gone])
	}
}

func TestDeleteDeduplicatesPaths(t *testing.T) {
	root := t.TempDir()
	target := filepath.Join(root, "dup")
	mustMkdirAll(t, target)

	out := make(chan Event, 64)
	NewFSDeleter(testLogger()).Delete(context.Background(),
		DeleteRequest{Paths: []string{target, target, target + string(filepath.Separator)}}, 1, out)

	started := 0
	for {
		select {
		case event := <-out:
			if _, ok := event.(DeleteStarted); ok {
				started++
			}
		default:
			if started != 1 {
				t.Fatalf("started %d deletions, want 1", started)
			}
			return
		}
	}
}

func TestIsCriticalPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Fatalf("UserHomeDir: %v", err)
	}

	for _, path := range []string{"/", "/etc", "/usr", "/var", home} {
		if !isCriticalPath(path) {
			t.Errorf("%s should be critical", path)
		}
	}
	for _, path := range []string{filepath.Join(home, "code"), "/etc/nginx", t.TempDir()} {
		if isCriticalPath(path) {
			t.Errorf("%s should not be critical", path)
		}
	}
}
