package llmschema_test

import (
	"reflect"
	"testing"

	llmschema "github.com/shenli/llm-schema"
)

func TestRef_PointerRendering(t *testing.T) {
	r := llmschema.Root()
	if r.Pointer() != "/" {
		t.Fatalf("root must render as /, got %q", r.Pointer())
	}
	p := r.Field("items").Index(2).Field("task")
	if p.Pointer() != "/items/2/task" {
		t.Fatalf("unexpected pointer: %q", p.Pointer())
	}
	if got := p.Segments(); !reflect.DeepEqual(got, []string{"items", "2", "task"}) {
		t.Fatalf("unexpected segments: %v", got)
	}
}

func TestRef_EscapesSpecialCharacters(t *testing.T) {
	p := llmschema.Root().Field("a/b").Field("c~d")
	if p.Pointer() != "/a~1b/c~0d" {
		t.Fatalf("expected RFC6901 escaping, got %q", p.Pointer())
	}
}

func TestRef_ChainsDoNotAlias(t *testing.T) {
	base := llmschema.Root().Field("x")
	a := base.Field("a")
	b := base.Field("b")
	if a.Pointer() != "/x/a" || b.Pointer() != "/x/b" {
		t.Fatalf("chained refs must not share state: %q / %q", a.Pointer(), b.Pointer())
	}
}

func TestRef_IssueCarriesParams(t *testing.T) {
	it := llmschema.Root().Field("n").Issue(llmschema.CodeTooSmall, "too small", "min", 1, "got", 0)
	if it.Path != "/n" || it.Code != llmschema.CodeTooSmall {
		t.Fatalf("unexpected issue: %+v", it)
	}
	if it.Params["min"] != 1 || it.Params["got"] != 0 {
		t.Fatalf("params not folded: %v", it.Params)
	}
}
