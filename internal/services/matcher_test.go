package services

import "testing"

func TestMatcherMatchesSubstringCaseInsensitive(t *testing.T) {
	matcher, err := NewMatcher([]string{"node_modules"}, nil)
	if err != nil {
		t.Fatalf("NewMatcher: %v", err)
	}

	for _, name := range []string{"node_modules", "Node_Modules", "old.node_modules.bak"} {
		pattern, ok := matcher.Match(name)
		if !ok {
			t.Errorf("expected %q to match", name)
		}
		if pattern != "node_modules" {
			t.Errorf("matched pattern = %q, want node_modules", pattern)
		}
	}

	if _, ok := matcher.Match("node-modules"); ok {
		t.Error("node-modules should not match node_modules")
	}
}

func TestMatcherFirstPatternWins(t *testing.T) {
	matcher, err := NewMatcher([]string{"modules", "node_modules"}, nil)
	if err != nil {
		t.Fatalf("NewMatcher: %v", err)
	}

	pattern, ok := matcher.Match("node_modules")
	if !ok || pattern != "modules" {
		t.Fatalf("Match = %q, %v; want first pattern modules", pattern, ok)
	}
}

func TestMatcherEmpty(t *testing.T) {
	matcher, err := NewMatcher([]string{"  ", ""}, nil)
	if err != nil {
		t.Fatalf("NewMatcher: %v", err)
	}
	if !matcher.Empty() {
		t.Error("matcher with only blank patterns should be empty")
	}
}

func TestMatcherIgnore(t *testing.T) {
	matcher, err := NewMatcher([]string{"node_modules"}, []string{"^keep", `\.git`})
	if err != nil {
		t.Fatalf("NewMatcher: %v", err)
	}

	if !matcher.Ignored("keep_node_modules") {
		t.Error("keep_node_modules should be ignored")
	}
	if !matcher.Ignored(".git") {
		t.Error(".git should be ignored")
	}
	if matcher.Ignored("node_modules") {
		t.Error("node_modules should not be ignored")
	}
}

func TestMatcherInvalidIgnorePattern(t *testing.T) {
	if _, err := NewMatcher([]string{"dist"}, []string{"["}); err == nil {
		t.Fatal("expected error for invalid ignore regex")
	}
}
