package schemadoc_test

import (
	"strings"
	"testing"

	llmschema "github.com/shenli/llm-schema"
	"github.com/shenli/llm-schema/schemadoc"
)

const taskYAML = `
name: task
description: a task list
version: 1
strict: true
fields:
  title:
    type: text
    required: true
    minLength: 1
  priority:
    type: enum
    values: [low, medium, high]
    default: medium
  items:
    type: array
    uniqueBy: task
    of:
      task: {type: text, required: true}
      done: {type: boolean, default: false}
`

func TestImportYAML_ParsesLikeDSLSchema(t *testing.T) {
	s, err := schemadoc.ImportYAML([]byte(taskYAML))
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if s.Name() != "task" {
		t.Fatalf("expected name from document, got %q", s.Name())
	}
	res := s.SafeParse(map[string]any{
		"title": "A",
		"items": []any{map[string]any{"task": "x"}},
	})
	if !res.Success {
		t.Fatalf("expected success, got %v", res.Issues)
	}
	if res.Data["priority"] != "medium" {
		t.Fatalf("enum default not applied: %v", res.Data)
	}
	item := res.Data["items"].([]any)[0].(map[string]any)
	if item["done"] != false {
		t.Fatalf("nested boolean default not applied: %v", item)
	}
}

func TestImportYAML_StrictFlagIsHonored(t *testing.T) {
	s, err := schemadoc.ImportYAML([]byte(taskYAML))
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	res := s.SafeParse(map[string]any{"title": "A", "bogus": 1})
	if res.Success {
		t.Fatalf("expected strict rejection of unknown key")
	}
	found := false
	for _, it := range res.Issues {
		if it.Path == "/bogus" && it.Code == llmschema.CodeInvalidType {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected unexpected-field issue at /bogus, got %v", res.Issues)
	}
}

func TestImportYAML_UniqueByFromDocument(t *testing.T) {
	s, err := schemadoc.ImportYAML([]byte(taskYAML))
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	res := s.SafeParse(map[string]any{
		"title": "A",
		"items": []any{
			map[string]any{"task": "x"},
			map[string]any{"task": "x"},
		},
	})
	if res.Success {
		t.Fatalf("expected duplicate rejection")
	}
}

func TestImportYAMLByName_ScansBundle(t *testing.T) {
	bundle := taskYAML + "\n---\n" + `
name: note
fields:
  body: {type: markdown, required: true}
`
	s, err := schemadoc.ImportYAMLByName([]byte(bundle), "note")
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if s.Name() != "note" {
		t.Fatalf("expected the note schema, got %q", s.Name())
	}
	if _, err := schemadoc.ImportYAMLByName([]byte(bundle), "missing"); err == nil {
		t.Fatalf("expected error for unknown schema name")
	}
}

func TestImport_JSONDocument(t *testing.T) {
	doc := []byte(`{
		"name": "profile",
		"fields": {
			"owner": {"type": "entity", "entityType": "person", "required": true},
			"age": {"type": "number", "min": 0, "max": 150}
		}
	}`)
	s, err := schemadoc.Import(doc)
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	res := s.SafeParse(map[string]any{"owner": "Ada", "age": 36})
	if !res.Success {
		t.Fatalf("expected success, got %v", res.Issues)
	}
	res = s.SafeParse(map[string]any{"owner": "Ada", "age": 200})
	if res.Success || res.Issues[0].Code != llmschema.CodeTooBig {
		t.Fatalf("expected too_big for age 200, got %v", res.Issues)
	}
}

func TestImport_Errors(t *testing.T) {
	cases := []struct {
		name string
		doc  string
		want string
	}{
		{"unknown kind", `{"fields":{"x":{"type":"uuid"}}}`, "unknown type"},
		{"missing type", `{"fields":{"x":{}}}`, "no type"},
		{"empty enum", `{"fields":{"x":{"type":"enum","values":[]}}}`, "non-empty values"},
		{"entity without tag", `{"fields":{"x":{"type":"entity"}}}`, "entityType"},
		{"array without items", `{"fields":{"x":{"type":"array"}}}`, "item mapping"},
		{"bad pattern", `{"fields":{"x":{"type":"text","pattern":"("}}}`, "pattern"},
		{"no fields", `{"name":"x"}`, "no fields"},
		{"mismatched default", `{"fields":{"x":{"type":"text","default":5}}}`, "default"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := schemadoc.Import([]byte(tc.doc))
			if err == nil {
				t.Fatalf("expected error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error mentioning %q, got %v", tc.want, err)
			}
		})
	}
}
