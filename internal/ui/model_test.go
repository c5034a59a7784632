package ui

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"dirsweep/internal/domain"
)

func TestNextSortModeCycles(t *testing.T) {
	mode := domain.SortByFound
	seen := []domain.SortMode{mode}
	for i := 0; i < 3; i++ {
		mode = nextSortMode(mode)
		seen = append(seen, mode)
	}
	want := []domain.SortMode{domain.SortByFound, domain.SortBySize, domain.SortByPath, domain.SortByFound}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("cycle step %d = %v, want %v", i, seen[i], want[i])
		}
	}
}

func TestSortEntriesBySizePutsUnknownLast(t *testing.T) {
	model := Model{sortMode: domain.SortBySize}
	model.entries = []domain.Entry{
		{Path: "/a", SizeState: domain.SizePending},
		{Path: "/b", SizeState: domain.SizeReady, SizeBytes: 10},
		{Path: "/c", SizeState: domain.SizeReady, SizeBytes: 900},
	}
	model.sortEntries()

	want := []string{"/c", "/b", "/a"}
	for i, path := range want {
		if model.entries[i].Path != path {
			t.Fatalf("entries[%d] = %s, want %s", i, model.entries[i].Path, path)
		}
	}
}

func TestSortEntriesByPath(t *testing.T) {
	model := Model{sortMode: domain.SortByPath}
	model.entries = []domain.Entry{{Path: "/z"}, {Path: "/a"}, {Path: "/m"}}
	model.sortEntries()
	if model.entries[0].Path != "/a" || model.entries[2].Path != "/z" {
		t.Fatalf("path sort order wrong: %v", model.entries)
	}
}

func TestSelectionSummarySkipsDeletingAndUnknownSizes(t *testing.T) {
	entries := []domain.Entry{
		{Path: "/a", Selected: true, SizeState: domain.SizeReady, SizeBytes: 100},
		{Path: "/b", Selected: true, SizeState: domain.SizePending},
		{Path: "/c", Selected: true, Status: domain.StatusDeleting, SizeState: domain.SizeReady, SizeBytes: 50},
		{Path: "/d", Selected: false, SizeState: domain.SizeReady, SizeBytes: 70},
	}
	count, bytes := selectionSummary(entries)
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}
	if bytes != 100 {
		t.Errorf("bytes = %d, want 100", bytes)
	}
}

func TestFreedBytes(t *testing.T) {
	entries := []domain.Entry{
		{Path: "/a", Status: domain.StatusDeleted, SizeState: domain.SizeReady, SizeBytes: 300},
		{Path: "/b", Status: domain.StatusDeleted, SizeState: domain.SizePending},
		{Path: "/c", Status: domain.StatusNormal, SizeState: domain.SizeReady, SizeBytes: 500},
	}
	if got := freedBytes(entries); got != 300 {
		t.Errorf("freedBytes = %d, want 300", got)
	}
}

func TestModLabel(t *testing.T) {
	if got := modLabel(domain.Entry{}); got != "-" {
		t.Errorf("modLabel of zero time = %q, want -", got)
	}
	entry := domain.Entry{LastModified: time.Now().Add(-48 * time.Hour)}
	if got := modLabel(entry); !strings.Contains(got, "ago") {
		t.Errorf("modLabel = %q, want a relative time", got)
	}
}

func TestTrimStatusKeepsRunesIntact(t *testing.T) {
	message := "Deleting /проекты/старый/node_modules"
	trimmed := trimStatus(message, 20)
	if !utf8.ValidString(trimmed) {
		t.Fatalf("trimStatus produced invalid UTF-8: %q", trimmed)
	}
	if !strings.HasSuffix(trimmed, "...") {
		t.Errorf("trimmed status %q missing ellipsis", trimmed)
	}
	if got := trimStatus("short", 80); got != "short" {
		t.Errorf("short status altered: %q", got)
	}
}

func TestEnsureCursorVisibleClampsAndScrolls(t *testing.T) {
	model := Model{height: 15, width: 80}
	for i := 0; i < 30; i++ {
		model.entries = append(model.entries, domain.Entry{Path: string(rune('a' + i))})
	}

	model.cursor = 100
	model.ensureCursorVisible()
	if model.cursor != 29 {
		t.Errorf("cursor = %d, want 29", model.cursor)
	}
	if model.viewTop+model.listHeight() <= model.cursor {
		t.Errorf("cursor %d not visible from viewTop %d", model.cursor, model.viewTop)
	}

	model.cursor = 0
	model.ensureCursorVisible()
	if model.viewTop != 0 {
		t.Errorf("viewTop = %d, want 0", model.viewTop)
	}
}
