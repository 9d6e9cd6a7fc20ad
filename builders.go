package llmschema

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// fieldCore holds the construction state shared by every kind: description,
// optionality flags and the lazy default producer.
type fieldCore struct {
	description string
	optionalSet bool
	requiredSet bool
	requiredVal bool
	hasDefault  bool
	defaultFn   func() any
}

// resolveOptional applies the four-way optionality precedence: an explicit
// optional marker wins, then an explicit required marker (negated), then the
// presence of a default, and finally fields are required.
func (c *fieldCore) resolveOptional() bool {
	switch {
	case c.optionalSet:
		return true
	case c.requiredSet:
		return !c.requiredVal
	default:
		return c.hasDefault
	}
}

func (c *fieldCore) setDefault(fn func() any) {
	c.hasDefault = true
	c.defaultFn = fn
}

func (c *fieldCore) finish(f *Field) *Field {
	f.description = c.description
	f.optional = c.resolveOptional()
	f.hasDefault = c.hasDefault
	f.defaultFn = c.defaultFn
	return f
}

// ---- text ----

// TextBuilder accumulates options for a text field.
type TextBuilder struct {
	core fieldCore
	opt  TextOptions
}

// Text starts a text field descriptor.
func Text() *TextBuilder {
	return &TextBuilder{opt: TextOptions{MinLen: -1, MaxLen: -1}}
}

// MinLen sets the inclusive minimum rune count.
func (b *TextBuilder) MinLen(n int) *TextBuilder { b.opt.MinLen = n; return b }

// MaxLen sets the inclusive maximum rune count.
func (b *TextBuilder) MaxLen(n int) *TextBuilder { b.opt.MaxLen = n; return b }

// Pattern sets a regular expression the value must match. An invalid
// expression panics at construction time.
func (b *TextBuilder) Pattern(expr string) *TextBuilder {
	b.opt.Pattern = regexp.MustCompile(expr)
	return b
}

func (b *TextBuilder) Describe(s string) *TextBuilder  { b.core.description = s; return b }
func (b *TextBuilder) Required() *TextBuilder          { b.core.requiredSet, b.core.requiredVal = true, true; return b }
func (b *TextBuilder) Optional() *TextBuilder          { b.core.optionalSet = true; return b }
func (b *TextBuilder) Default(v string) *TextBuilder   { b.core.setDefault(func() any { return v }); return b }
func (b *TextBuilder) DefaultFunc(fn func() any) *TextBuilder { b.core.setDefault(fn); return b }

func (b *TextBuilder) Build() *Field {
	opt := b.opt
	hint := "text"
	if opt.MinLen >= 0 || opt.MaxLen >= 0 {
		hint += " (" + lengthHint(opt.MinLen, opt.MaxLen) + ")"
	}
	return b.core.finish(&Field{kind: KindText, text: &opt, prompt: hint})
}

// ---- markdown ----

// MarkdownBuilder accumulates options for a markdown field. Content is opaque
// text at validation time; only MaxLen is enforced.
type MarkdownBuilder struct {
	core fieldCore
	opt  TextOptions
}

// Markdown starts a markdown field descriptor.
func Markdown() *MarkdownBuilder {
	return &MarkdownBuilder{opt: TextOptions{MinLen: -1, MaxLen: -1}}
}

// MaxLen sets the inclusive maximum rune count.
func (b *MarkdownBuilder) MaxLen(n int) *MarkdownBuilder { b.opt.MaxLen = n; return b }

func (b *MarkdownBuilder) Describe(s string) *MarkdownBuilder { b.core.description = s; return b }
func (b *MarkdownBuilder) Required() *MarkdownBuilder {
	b.core.requiredSet, b.core.requiredVal = true, true
	return b
}
func (b *MarkdownBuilder) Optional() *MarkdownBuilder { b.core.optionalSet = true; return b }
func (b *MarkdownBuilder) Default(v string) *MarkdownBuilder {
	b.core.setDefault(func() any { return v })
	return b
}

func (b *MarkdownBuilder) Build() *Field {
	opt := b.opt
	return b.core.finish(&Field{kind: KindMarkdown, text: &opt, prompt: "markdown text"})
}

// ---- number ----

// NumberBuilder accumulates options for a number field.
type NumberBuilder struct {
	core fieldCore
	opt  NumberOptions
}

// Number starts a number field descriptor.
func Number() *NumberBuilder {
	return &NumberBuilder{opt: NumberOptions{Precision: -1}}
}

// Min sets the inclusive lower bound.
func (b *NumberBuilder) Min(n float64) *NumberBuilder { b.opt.Min = &n; return b }

// Max sets the inclusive upper bound.
func (b *NumberBuilder) Max(n float64) *NumberBuilder { b.opt.Max = &n; return b }

// Precision sets the maximum count of decimal digits.
func (b *NumberBuilder) Precision(n int) *NumberBuilder { b.opt.Precision = n; return b }

func (b *NumberBuilder) Describe(s string) *NumberBuilder { b.core.description = s; return b }
func (b *NumberBuilder) Required() *NumberBuilder {
	b.core.requiredSet, b.core.requiredVal = true, true
	return b
}
func (b *NumberBuilder) Optional() *NumberBuilder { b.core.optionalSet = true; return b }
func (b *NumberBuilder) Default(v float64) *NumberBuilder {
	b.core.setDefault(func() any { return v })
	return b
}

func (b *NumberBuilder) Build() *Field {
	opt := b.opt
	hint := "number"
	if opt.Min != nil && opt.Max != nil {
		hint = fmt.Sprintf("number between %s and %s", trimFloat(*opt.Min), trimFloat(*opt.Max))
	}
	return b.core.finish(&Field{kind: KindNumber, number: &opt, prompt: hint})
}

// ---- boolean ----

// BoolBuilder accumulates options for a boolean field.
type BoolBuilder struct {
	core fieldCore
}

// Bool starts a boolean field descriptor.
func Bool() *BoolBuilder { return &BoolBuilder{} }

func (b *BoolBuilder) Describe(s string) *BoolBuilder { b.core.description = s; return b }
func (b *BoolBuilder) Required() *BoolBuilder {
	b.core.requiredSet, b.core.requiredVal = true, true
	return b
}
func (b *BoolBuilder) Optional() *BoolBuilder { b.core.optionalSet = true; return b }
func (b *BoolBuilder) Default(v bool) *BoolBuilder {
	b.core.setDefault(func() any { return v })
	return b
}

func (b *BoolBuilder) Build() *Field {
	return b.core.finish(&Field{kind: KindBool, prompt: "true or false"})
}

// ---- date ----

// DateBuilder accumulates options for a date field.
type DateBuilder struct {
	core fieldCore
	opt  DateOptions
}

// Date starts a date field descriptor.
func Date() *DateBuilder { return &DateBuilder{} }

// FromUnix marks numeric inputs as seconds since epoch (default milliseconds).
func (b *DateBuilder) FromUnix() *DateBuilder { b.opt.FromUnix = true; return b }

func (b *DateBuilder) Describe(s string) *DateBuilder { b.core.description = s; return b }
func (b *DateBuilder) Required() *DateBuilder {
	b.core.requiredSet, b.core.requiredVal = true, true
	return b
}
func (b *DateBuilder) Optional() *DateBuilder { b.core.optionalSet = true; return b }

// Default accepts any date-resolvable form (time.Time, epoch number, ISO
// string). A default that fails date resolution panics when first applied.
func (b *DateBuilder) Default(v any) *DateBuilder {
	b.core.setDefault(func() any { return v })
	return b
}
func (b *DateBuilder) DefaultFunc(fn func() any) *DateBuilder { b.core.setDefault(fn); return b }

func (b *DateBuilder) Build() *Field {
	opt := b.opt
	hint := "date (ISO 8601)"
	if opt.FromUnix {
		hint = "date (unix seconds)"
	}
	return b.core.finish(&Field{kind: KindDate, date: &opt, prompt: hint})
}

// ---- enum ----

// EnumBuilder accumulates options for an enum field.
type EnumBuilder struct {
	core   fieldCore
	values []string
}

// Enum starts an enum field descriptor over a fixed, ordered, non-empty list
// of allowed literals. An empty list panics.
func Enum(values ...string) *EnumBuilder {
	if len(values) == 0 {
		panic("llmschema: enum requires at least one value")
	}
	return &EnumBuilder{values: append([]string{}, values...)}
}

func (b *EnumBuilder) Describe(s string) *EnumBuilder { b.core.description = s; return b }
func (b *EnumBuilder) Required() *EnumBuilder {
	b.core.requiredSet, b.core.requiredVal = true, true
	return b
}
func (b *EnumBuilder) Optional() *EnumBuilder { b.core.optionalSet = true; return b }
func (b *EnumBuilder) Default(v string) *EnumBuilder {
	b.core.setDefault(func() any { return v })
	return b
}

func (b *EnumBuilder) Build() *Field {
	return b.core.finish(&Field{
		kind:   KindEnum,
		enum:   b.values,
		prompt: "one of: " + strings.Join(b.values, " | "),
	})
}

// ---- entity ----

// EntityBuilder accumulates options for an entity-reference field.
type EntityBuilder struct {
	core       fieldCore
	entityType string
}

// Entity starts an entity field: a string leaf tagged with an opaque
// reference-type label (e.g. "person"). The tag is metadata for extraction,
// not validated.
func Entity(entityType string) *EntityBuilder {
	return &EntityBuilder{entityType: entityType}
}

func (b *EntityBuilder) Describe(s string) *EntityBuilder { b.core.description = s; return b }
func (b *EntityBuilder) Required() *EntityBuilder {
	b.core.requiredSet, b.core.requiredVal = true, true
	return b
}
func (b *EntityBuilder) Optional() *EntityBuilder { b.core.optionalSet = true; return b }
func (b *EntityBuilder) Default(v string) *EntityBuilder {
	b.core.setDefault(func() any { return v })
	return b
}

func (b *EntityBuilder) Build() *Field {
	return b.core.finish(&Field{
		kind:   KindEntity,
		entity: b.entityType,
		prompt: "reference to a " + b.entityType,
	})
}

// ---- array ----

// ArrayBuilder accumulates options for an array field whose elements parse
// against an item definition.
type ArrayBuilder struct {
	core fieldCore
	opt  ArrayOptions
}

// Array starts an array field over the given item definition.
func Array(items *Definition) *ArrayBuilder {
	if items == nil {
		panic("llmschema: array requires an item definition")
	}
	return &ArrayBuilder{opt: ArrayOptions{Items: items, MinItems: -1, MaxItems: -1}}
}

// MinItems sets the inclusive minimum length.
func (b *ArrayBuilder) MinItems(n int) *ArrayBuilder { b.opt.MinItems = n; return b }

// MaxItems sets the inclusive maximum length.
func (b *ArrayBuilder) MaxItems(n int) *ArrayBuilder { b.opt.MaxItems = n; return b }

// UniqueBy names an item sub-field whose parsed value must be unique across
// elements; the first duplicate is reported.
func (b *ArrayBuilder) UniqueBy(key string) *ArrayBuilder { b.opt.UniqueBy = key; return b }

func (b *ArrayBuilder) Describe(s string) *ArrayBuilder { b.core.description = s; return b }
func (b *ArrayBuilder) Required() *ArrayBuilder {
	b.core.requiredSet, b.core.requiredVal = true, true
	return b
}
func (b *ArrayBuilder) Optional() *ArrayBuilder { b.core.optionalSet = true; return b }
func (b *ArrayBuilder) Default(v []any) *ArrayBuilder {
	b.core.setDefault(func() any { return v })
	return b
}

func (b *ArrayBuilder) Build() *Field {
	opt := b.opt
	return b.core.finish(&Field{kind: KindArray, array: &opt, prompt: "list of items"})
}

// ---- object ----

// ObjectBuilder accumulates options for an object field with a nested shape.
type ObjectBuilder struct {
	core  fieldCore
	shape *Definition
}

// Object starts an object field over the given nested definition.
func Object(shape *Definition) *ObjectBuilder {
	if shape == nil {
		panic("llmschema: object requires a shape definition")
	}
	return &ObjectBuilder{shape: shape}
}

func (b *ObjectBuilder) Describe(s string) *ObjectBuilder { b.core.description = s; return b }
func (b *ObjectBuilder) Required() *ObjectBuilder {
	b.core.requiredSet, b.core.requiredVal = true, true
	return b
}
func (b *ObjectBuilder) Optional() *ObjectBuilder { b.core.optionalSet = true; return b }
func (b *ObjectBuilder) Default(v map[string]any) *ObjectBuilder {
	b.core.setDefault(func() any { return v })
	return b
}

func (b *ObjectBuilder) Build() *Field {
	return b.core.finish(&Field{kind: KindObject, object: b.shape, prompt: "nested object"})
}

// ---- hint helpers ----

func lengthHint(min, max int) string {
	switch {
	case min >= 0 && max >= 0:
		return strconv.Itoa(min) + "-" + strconv.Itoa(max) + " chars"
	case min >= 0:
		return "at least " + strconv.Itoa(min) + " chars"
	default:
		return "at most " + strconv.Itoa(max) + " chars"
	}
}

func trimFloat(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }
