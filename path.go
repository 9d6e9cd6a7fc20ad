package llmschema

import (
	"fmt"
	"strconv"
	"strings"
)

// Ref builds JSON Pointer paths in a chain-safe way and creates Issues.
// The zero value denotes the schema root.
type Ref struct {
	parts []string
}

// Root returns a Ref pointing at the schema root.
func Root() Ref { return Ref{} }

// Field returns a child Ref extended with an object key segment.
func (r Ref) Field(name string) Ref {
	if name == "" {
		return r
	}
	// escape '~' -> '~0', '/' -> '~1' per RFC6901
	esc := strings.ReplaceAll(strings.ReplaceAll(name, "~", "~0"), "/", "~1")
	return Ref{parts: append(append([]string{}, r.parts...), esc)}
}

// Index returns a child Ref extended with an array index segment.
func (r Ref) Index(i int) Ref {
	return Ref{parts: append(append([]string{}, r.parts...), strconv.Itoa(i))}
}

// Pointer renders the path as a JSON Pointer string; the root renders as "/".
func (r Ref) Pointer() string {
	if len(r.parts) == 0 {
		return "/"
	}
	return "/" + strings.Join(r.parts, "/")
}

// Segments returns the raw path segments from the schema root. The root path
// yields an empty slice.
func (r Ref) Segments() []string {
	return append([]string{}, r.parts...)
}

// Issue creates an Issue at this path. kv is an alternating key/value list
// folded into Params.
func (r Ref) Issue(code, msg string, kv ...any) Issue {
	var m map[string]any
	if len(kv) > 1 {
		m = map[string]any{}
		for i := 0; i+1 < len(kv); i += 2 {
			m[fmt.Sprint(kv[i])] = kv[i+1]
		}
	}
	return Issue{Path: r.Pointer(), Code: code, Message: msg, Params: m}
}
