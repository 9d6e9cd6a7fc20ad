package llmschema_test

import (
	"strings"
	"testing"

	llmschema "github.com/shenli/llm-schema"
)

func TestSearch_TextLeaf(t *testing.T) {
	s := meetingSchema()
	hits := s.Search(map[string]any{"summary": "Discuss budget plan"}, "budget")
	if len(hits) != 1 {
		t.Fatalf("expected one hit, got %v", hits)
	}
	h := hits[0]
	if h.Path != "/summary" {
		t.Fatalf("expected hit at /summary, got %s", h.Path)
	}
	if !strings.Contains(h.Excerpt, "budget") {
		t.Fatalf("excerpt must contain the match, got %q", h.Excerpt)
	}
}

func TestSearch_CaseInsensitiveByDefault(t *testing.T) {
	s := meetingSchema()
	data := map[string]any{"summary": "Quarterly Budget Review"}
	if hits := s.Search(data, "budget"); len(hits) != 1 {
		t.Fatalf("expected case-insensitive hit, got %v", hits)
	}
	if hits := s.Search(data, "budget", llmschema.SearchOptions{CaseSensitive: true}); len(hits) != 0 {
		t.Fatalf("expected no case-sensitive hit, got %v", hits)
	}
}

func TestSearch_RecursesThroughArraysAndObjects(t *testing.T) {
	s := meetingSchema()
	data := map[string]any{
		"attendees": []any{
			map[string]any{"name": "Ada Lovelace"},
			map[string]any{"name": "Bob"},
		},
		"meta": map[string]any{"room": "Ada room"},
	}
	hits := s.Search(data, "ada")
	if len(hits) != 2 {
		t.Fatalf("expected hits in array item and nested object, got %v", hits)
	}
	if hits[0].Path != "/attendees/0/name" || hits[1].Path != "/meta/room" {
		t.Fatalf("unexpected hit paths: %v", hits)
	}
}

func TestSearch_ExcerptIsBoundedAndEllipsized(t *testing.T) {
	s := meetingSchema()
	long := strings.Repeat("a", 100) + "needle" + strings.Repeat("b", 100)
	hits := s.Search(map[string]any{"notes": long}, "needle")
	if len(hits) != 1 {
		t.Fatalf("expected one hit, got %v", hits)
	}
	ex := hits[0].Excerpt
	if !strings.HasPrefix(ex, "...") || !strings.HasSuffix(ex, "...") {
		t.Fatalf("expected ellipses at both truncation boundaries, got %q", ex)
	}
	// 30 runes of context each side plus the match and ellipses
	if want := 30 + len("needle") + 30 + 6; len(ex) != want {
		t.Fatalf("expected %d chars, got %d (%q)", want, len(ex), ex)
	}
}

func TestSearch_LimitTruncatesResults(t *testing.T) {
	s := meetingSchema()
	data := map[string]any{
		"attendees": []any{
			map[string]any{"name": "x1"},
			map[string]any{"name": "x2"},
			map[string]any{"name": "x3"},
		},
	}
	hits := s.Search(data, "x", llmschema.SearchOptions{Limit: 2})
	if len(hits) != 2 {
		t.Fatalf("expected the list truncated to the limit, got %v", hits)
	}
}

func TestSearch_SkipsNonTextLeavesAndMissingValues(t *testing.T) {
	s := meetingSchema()
	if hits := s.Search(map[string]any{}, "anything"); len(hits) != 0 {
		t.Fatalf("expected no hits on empty data, got %v", hits)
	}
	if hits := s.Search(map[string]any{"summary": 42}, "42"); len(hits) != 0 {
		t.Fatalf("mistyped values must be skipped, got %v", hits)
	}
}
