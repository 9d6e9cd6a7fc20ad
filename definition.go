package llmschema

import (
	"fmt"
	"sort"

	"github.com/shenli/llm-schema/i18n"
)

// DefinedField pairs a field name with its descriptor for definition
// construction. Use F to build one.
type DefinedField struct {
	Name  string
	Field *Field
}

// F pairs a name with a field builder's result.
func F(name string, b Builder) DefinedField {
	return DefinedField{Name: name, Field: b.Build()}
}

// Builder is the terminal contract of every field constructor: it yields the
// immutable descriptor. *Field implements it so a descriptor can be reused
// verbatim across definitions.
type Builder interface {
	Build() *Field
}

// Build lets an existing descriptor be embedded where a Builder is expected.
func (f *Field) Build() *Field { return f }

// Definition is an ordered mapping from field name to descriptor: the
// recursive unit of a schema tree. Definitions are immutable after
// construction and must not be cyclic.
type Definition struct {
	names  []string
	byName map[string]*Field
}

// NewDefinition builds a definition from named fields. Duplicate names panic:
// a definition with colliding keys is a schema misconfiguration.
func NewDefinition(fields ...DefinedField) *Definition {
	d := &Definition{
		names:  make([]string, 0, len(fields)),
		byName: make(map[string]*Field, len(fields)),
	}
	for _, df := range fields {
		if df.Name == "" {
			panic("llmschema: empty field name in definition")
		}
		if df.Field == nil {
			panic(fmt.Sprintf("llmschema: nil field %q in definition", df.Name))
		}
		if _, dup := d.byName[df.Name]; dup {
			panic(fmt.Sprintf("llmschema: duplicate field %q in definition", df.Name))
		}
		d.names = append(d.names, df.Name)
		d.byName[df.Name] = df.Field
	}
	return d
}

// Names returns the field names in declaration order.
func (d *Definition) Names() []string { return append([]string{}, d.names...) }

// Field looks up a descriptor by name.
func (d *Definition) Field(name string) (*Field, bool) {
	f, ok := d.byName[name]
	return f, ok
}

// Len returns the number of fields.
func (d *Definition) Len() int { return len(d.names) }

// parse walks the definition against v, aggregating every independently
// failing branch instead of short-circuiting. Issue order follows field
// declaration order with nested issues depth-first; unknown-key issues (strict
// mode) come last in key-sorted order.
func (d *Definition) parse(v any, ref Ref, strict bool) (map[string]any, Issues) {
	src, ok := v.(map[string]any)
	if !ok {
		return nil, Issues{typeIssue(ref, "object", v)}
	}
	out := make(map[string]any, len(d.names))
	var iss Issues
	for _, name := range d.names {
		f := d.byName[name]
		raw, exists := src[name]
		if !exists || raw == nil {
			if !f.optional {
				iss = AppendIssues(iss, ref.Field(name).Issue(CodeRequired, i18n.T(CodeRequired, nil)))
				continue
			}
			if f.hasDefault {
				out[name] = f.applyDefault(ref.Field(name))
			}
			// optional without default: omit the key entirely
			continue
		}
		pv, fi := f.parseValue(raw, ref.Field(name), strict)
		if len(fi) > 0 {
			iss = AppendIssues(iss, fi...)
			continue
		}
		out[name] = pv
	}
	if strict {
		iss = AppendIssues(iss, d.unknownKeyIssues(src, ref)...)
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return out, nil
}

// unknownKeyIssues reports keys present in src but absent from the definition,
// in sorted order for determinism.
func (d *Definition) unknownKeyIssues(src map[string]any, ref Ref) Issues {
	var unknown []string
	for k := range src {
		if _, known := d.byName[k]; !known {
			unknown = append(unknown, k)
		}
	}
	sort.Strings(unknown)
	var iss Issues
	for _, k := range unknown {
		iss = AppendIssues(iss, ref.Field(k).Issue(CodeInvalidType, "unexpected field", "key", k))
	}
	return iss
}
