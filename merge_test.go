package llmschema_test

import (
	"reflect"
	"testing"

	llmschema "github.com/shenli/llm-schema"
)

func TestMerge_EmptyUpdatesKeepsBase(t *testing.T) {
	s := meetingSchema()
	base := map[string]any{
		"summary":  "Discuss budget",
		"priority": "high",
		"attendees": []any{
			map[string]any{"name": "Ada", "role": "host"},
		},
	}
	out := s.Merge(base, map[string]any{})
	if !reflect.DeepEqual(out, base) {
		t.Fatalf("merge(base, {}) must equal base, got %v", out)
	}
}

func TestMerge_UpdateWinsForLeaves(t *testing.T) {
	s := meetingSchema()
	out := s.Merge(
		map[string]any{"summary": "old", "priority": "low"},
		map[string]any{"priority": "high"},
	)
	if out["summary"] != "old" || out["priority"] != "high" {
		t.Fatalf("unexpected merge result: %v", out)
	}
}

func TestMerge_ArrayReplaceAndAppend(t *testing.T) {
	s := meetingSchema()
	base := map[string]any{"attendees": []any{
		map[string]any{"name": "Ada"},
	}}
	updates := map[string]any{"attendees": []any{
		map[string]any{"name": "Bob"},
	}}

	replaced := s.Merge(base, updates)
	if got := replaced["attendees"].([]any); len(got) != 1 {
		t.Fatalf("replace strategy should keep only the update array, got %v", got)
	}

	appended := s.Merge(base, updates, llmschema.MergeOptions{ArrayStrategy: llmschema.ArrayAppend})
	got := appended["attendees"].([]any)
	if len(got) != 2 {
		t.Fatalf("append strategy should concatenate, got %v", got)
	}
	if got[0].(map[string]any)["name"] != "Ada" || got[1].(map[string]any)["name"] != "Bob" {
		t.Fatalf("append order must be base then update, got %v", got)
	}
	// base must not be mutated
	if len(base["attendees"].([]any)) != 1 {
		t.Fatalf("merge mutated its input")
	}
}

func TestMerge_NestedObjectDefaultsFromBase(t *testing.T) {
	def := llmschema.NewDefinition(
		llmschema.F("meta", llmschema.Object(llmschema.NewDefinition(
			llmschema.F("room", llmschema.Text().Optional()),
			llmschema.F("floor", llmschema.Text().Optional()),
		)).Optional()),
	)
	s := llmschema.New(def)
	out := s.Merge(
		map[string]any{"meta": map[string]any{"room": "A", "floor": "3"}},
		map[string]any{"meta": map[string]any{"room": "B"}},
	)
	meta := out["meta"].(map[string]any)
	if meta["room"] != "B" || meta["floor"] != "3" {
		t.Fatalf("nested merge should default missing values from base, got %v", meta)
	}
}

func TestMerge_UnknownBaseKeysCarriedOver(t *testing.T) {
	s := meetingSchema()
	out := s.Merge(
		map[string]any{"summary": "a", "extra": "kept"},
		map[string]any{},
	)
	if out["extra"] != "kept" {
		t.Fatalf("keys outside the definition must survive, got %v", out)
	}
}
