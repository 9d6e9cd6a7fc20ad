package llmschema

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shenli/llm-schema/i18n"
)

// Kind tags a field descriptor with one of the nine closed field kinds. The
// set is closed: every switch over Kind in this module enumerates all nine.
type Kind string

const (
	KindText     Kind = "text"
	KindMarkdown Kind = "markdown"
	KindNumber   Kind = "number"
	KindBool     Kind = "boolean"
	KindDate     Kind = "date"
	KindEnum     Kind = "enum"
	KindEntity   Kind = "entity"
	KindArray    Kind = "array"
	KindObject   Kind = "object"
)

// TextOptions carries the constraints of text and markdown fields.
// MinLen/MaxLen are inclusive rune counts; -1 means unset.
type TextOptions struct {
	MinLen  int
	MaxLen  int
	Pattern *regexp.Regexp
}

// NumberOptions carries numeric constraints. Min/Max are inclusive; nil means
// unset. Precision is the maximum count of decimal digits; -1 means unset.
type NumberOptions struct {
	Min       *float64
	Max       *float64
	Precision int
}

// DateOptions configures date interpretation. When FromUnix is set, numeric
// inputs are read as seconds since epoch instead of milliseconds.
type DateOptions struct {
	FromUnix bool
}

// ArrayOptions carries array constraints. MinItems/MaxItems are inclusive;
// -1 means unset. UniqueBy optionally names an item sub-field whose parsed
// value must be unique across elements.
type ArrayOptions struct {
	Items    *Definition
	MinItems int
	MaxItems int
	UniqueBy string
}

// Field is one typed, constraint-bearing node in a schema tree. Fields are
// immutable once constructed and may be shared by reference across schemas
// and concurrent callers.
type Field struct {
	kind        Kind
	description string
	optional    bool
	hasDefault  bool
	defaultFn   func() any
	prompt      string

	text   *TextOptions
	number *NumberOptions
	date   *DateOptions
	enum   []string
	entity string
	array  *ArrayOptions
	object *Definition
}

// Kind returns the field's kind tag.
func (f *Field) Kind() Kind { return f.kind }

// Description returns the optional human description.
func (f *Field) Description() string { return f.description }

// Optional reports whether an absent value is acceptable for this field.
func (f *Field) Optional() bool { return f.optional }

// HasDefault reports whether a default producer is configured.
func (f *Field) HasDefault() bool { return f.hasDefault }

// PromptHint returns a short human-readable fragment describing the field's
// shape, for consumption by prompt generators. It carries no validation
// semantics.
func (f *Field) PromptHint() string { return f.prompt }

// TextOptions returns the text/markdown constraints, or nil for other kinds.
// The returned value must not be mutated.
func (f *Field) TextOptions() *TextOptions { return f.text }

// NumberOptions returns the numeric constraints, or nil for other kinds.
func (f *Field) NumberOptions() *NumberOptions { return f.number }

// DateOptions returns the date options, or nil for other kinds.
func (f *Field) DateOptions() *DateOptions { return f.date }

// EnumValues returns the allowed enum literals in declaration order.
func (f *Field) EnumValues() []string { return append([]string{}, f.enum...) }

// EntityType returns the opaque reference-type tag of an entity field.
func (f *Field) EntityType() string { return f.entity }

// Items returns the item definition of an array field, or nil otherwise.
func (f *Field) Items() *Definition { return f.array.itemsOrNil() }

func (a *ArrayOptions) itemsOrNil() *Definition {
	if a == nil {
		return nil
	}
	return a.Items
}

// ArrayOptions returns the array constraints, or nil for other kinds.
func (f *Field) ArrayOptions() *ArrayOptions { return f.array }

// Shape returns the nested definition of an object field, or nil otherwise.
func (f *Field) Shape() *Definition { return f.object }

// applyDefault resolves the configured default through the field's own parse
// routine. A default that fails its own validation is a schema
// misconfiguration, not a data error, and panics.
func (f *Field) applyDefault(ref Ref) any {
	dv := f.defaultFn()
	out, iss := f.parseValue(dv, ref, false)
	if len(iss) > 0 {
		panic(fmt.Sprintf("llmschema: invalid default for field %s: %s", ref.Pointer(), iss.Error()))
	}
	return out
}

// parseValue validates v against the descriptor, returning the typed value or
// the full set of path-qualified issues. It is pure and total over any input.
func (f *Field) parseValue(v any, ref Ref, strict bool) (any, Issues) {
	switch f.kind {
	case KindText:
		return f.parseText(v, ref, true)
	case KindMarkdown:
		return f.parseText(v, ref, false)
	case KindNumber:
		return f.parseNumber(v, ref)
	case KindBool:
		b, ok := v.(bool)
		if !ok {
			return nil, Issues{typeIssue(ref, "boolean", v)}
		}
		return b, nil
	case KindDate:
		return f.parseDate(v, ref)
	case KindEnum:
		return f.parseEnum(v, ref)
	case KindEntity:
		s, ok := v.(string)
		if !ok {
			return nil, Issues{typeIssue(ref, "string", v)}
		}
		return s, nil
	case KindArray:
		return f.parseArray(v, ref, strict)
	case KindObject:
		return f.object.parse(v, ref, strict)
	}
	// unreachable for the closed kind set
	return nil, Issues{ref.Issue(CodeInvalidType, "unknown field kind")}
}

func (f *Field) parseText(v any, ref Ref, full bool) (any, Issues) {
	s, ok := v.(string)
	if !ok {
		return nil, Issues{typeIssue(ref, "string", v)}
	}
	opt := f.text
	n := utf8.RuneCountInString(s)
	if full && opt.MinLen >= 0 && n < opt.MinLen {
		return nil, Issues{ref.Issue(CodeTooSmall, i18n.T(CodeTooSmall, nil), "minLength", opt.MinLen, "got", n)}
	}
	if opt.MaxLen >= 0 && n > opt.MaxLen {
		return nil, Issues{ref.Issue(CodeTooBig, i18n.T(CodeTooBig, nil), "maxLength", opt.MaxLen, "got", n)}
	}
	if full && opt.Pattern != nil && !opt.Pattern.MatchString(s) {
		return nil, Issues{ref.Issue(CodeInvalidFormat, i18n.T(CodeInvalidFormat, nil), "pattern", opt.Pattern.String())}
	}
	return s, nil
}

func (f *Field) parseNumber(v any, ref Ref) (any, Issues) {
	n, ok := toFloat(v)
	if !ok || math.IsNaN(n) || math.IsInf(n, 0) {
		return nil, Issues{typeIssue(ref, "number", v)}
	}
	opt := f.number
	if opt.Min != nil && n < *opt.Min {
		return nil, Issues{ref.Issue(CodeTooSmall, i18n.T(CodeTooSmall, nil), "min", *opt.Min, "got", n)}
	}
	if opt.Max != nil && n > *opt.Max {
		return nil, Issues{ref.Issue(CodeTooBig, i18n.T(CodeTooBig, nil), "max", *opt.Max, "got", n)}
	}
	if opt.Precision >= 0 && decimalDigits(n) > opt.Precision {
		return nil, Issues{ref.Issue(CodeTooBig, i18n.T(CodeTooBig, nil), "precision", opt.Precision, "got", decimalDigits(n))}
	}
	return n, nil
}

func (f *Field) parseDate(v any, ref Ref) (any, Issues) {
	switch t := v.(type) {
	case time.Time:
		return t, nil
	case string:
		for _, layout := range dateLayouts {
			if ts, err := time.Parse(layout, t); err == nil {
				return ts, nil
			}
		}
		return nil, Issues{ref.Issue(CodeInvalidDate, i18n.T(CodeInvalidDate, nil), "got", t)}
	default:
		if n, ok := toFloat(t); ok && !math.IsNaN(n) && !math.IsInf(n, 0) {
			ms := int64(n)
			if f.date != nil && f.date.FromUnix {
				ms = int64(n * 1000)
			}
			return time.UnixMilli(ms).UTC(), nil
		}
		return nil, Issues{ref.Issue(CodeInvalidDate, i18n.T(CodeInvalidDate, nil))}
	}
}

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func (f *Field) parseEnum(v any, ref Ref) (any, Issues) {
	s, ok := v.(string)
	if !ok {
		return nil, Issues{typeIssue(ref, "string", v)}
	}
	for _, allowed := range f.enum {
		if s == allowed {
			return s, nil
		}
	}
	iss := ref.Issue(CodeInvalidEnumValue, i18n.T(CodeInvalidEnumValue, nil), "values", append([]string{}, f.enum...))
	iss.Expected = strings.Join(f.enum, " | ")
	iss.Received = s
	return nil, Issues{iss}
}

func (f *Field) parseArray(v any, ref Ref, strict bool) (any, Issues) {
	arr, ok := v.([]any)
	if !ok {
		return nil, Issues{typeIssue(ref, "array", v)}
	}
	opt := f.array
	var iss Issues
	if opt.MinItems >= 0 && len(arr) < opt.MinItems {
		iss = AppendIssues(iss, ref.Issue(CodeTooSmall, i18n.T(CodeTooSmall, nil), "minItems", opt.MinItems, "got", len(arr)))
	}
	if opt.MaxItems >= 0 && len(arr) > opt.MaxItems {
		iss = AppendIssues(iss, ref.Issue(CodeTooBig, i18n.T(CodeTooBig, nil), "maxItems", opt.MaxItems, "got", len(arr)))
	}
	out := make([]any, 0, len(arr))
	parsedAt := make([]bool, len(arr))
	for i, el := range arr {
		ev, ei := opt.Items.parse(el, ref.Index(i), strict)
		if len(ei) > 0 {
			iss = AppendIssues(iss, ei...)
			out = append(out, nil)
			continue
		}
		parsedAt[i] = true
		out = append(out, ev)
	}
	if opt.UniqueBy != "" {
		if dup, at, key := firstDuplicate(out, parsedAt, opt.UniqueBy); dup {
			iss = AppendIssues(iss, ref.Index(at).Field(opt.UniqueBy).Issue(
				CodeInvalidLiteral, i18n.T(CodeInvalidLiteral, nil), "uniqueBy", opt.UniqueBy, "value", key))
		}
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return out, nil
}

// firstDuplicate scans successfully parsed elements for a repeated value of
// the uniqueBy sub-field. Only the first duplicate is reported.
func firstDuplicate(elems []any, parsed []bool, key string) (bool, int, string) {
	seen := map[string]struct{}{}
	for i, el := range elems {
		if !parsed[i] {
			continue
		}
		m, ok := el.(map[string]any)
		if !ok {
			continue
		}
		kv, ok := m[key]
		if !ok {
			continue
		}
		ck := canonicalKey(kv)
		if _, dup := seen[ck]; dup {
			return true, i, ck
		}
		seen[ck] = struct{}{}
	}
	return false, -1, ""
}

// canonicalKey renders a parsed value into a stable comparison key.
func canonicalKey(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case time.Time:
		return strconv.FormatInt(t.UnixMilli(), 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprintf("%v", t)
	}
}

func typeIssue(ref Ref, expected string, got any) Issue {
	iss := ref.Issue(CodeInvalidType, i18n.T(CodeInvalidType, map[string]string{"expected": expected}))
	iss.Expected = expected
	iss.Received = typeName(got)
	return iss
}

func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case float64, float32, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, json.Number:
		return "number"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	case time.Time:
		return "date"
	default:
		return fmt.Sprintf("%T", v)
	}
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := strconv.ParseFloat(string(n), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// decimalDigits counts the decimal digits of the minimal decimal rendering
// of n (e.g. 1.25 -> 2, 3 -> 0).
func decimalDigits(n float64) int {
	s := strconv.FormatFloat(n, 'f', -1, 64)
	if i := strings.IndexByte(s, '.'); i >= 0 {
		return len(s) - i - 1
	}
	return 0
}
