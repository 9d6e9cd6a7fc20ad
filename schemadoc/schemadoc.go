// Package schemadoc compiles declarative schema documents (YAML or JSON) into
// llmschema definitions, so schemas can live in configuration instead of Go
// code. A document names the schema, flags strict mode and lists fields with
// their kind and constraints:
//
//	name: task
//	strict: true
//	fields:
//	  title: {type: text, required: true, minLength: 1}
//	  items:
//	    type: array
//	    of:
//	      task: {type: text, required: true}
//	      done: {type: boolean, default: false}
//
// Field names compile in sorted order, which becomes the definition's
// declaration order.
package schemadoc

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strconv"

	json "github.com/goccy/go-json"

	llmschema "github.com/shenli/llm-schema"
)

// Import compiles a schema document into a schema handle. The input can be a
// decoded map[string]any or raw JSON bytes.
func Import(doc any) (*llmschema.Schema, error) {
	var root map[string]any
	switch t := doc.(type) {
	case []byte:
		if err := json.Unmarshal(t, &root); err != nil {
			return nil, fmt.Errorf("schemadoc: invalid JSON: %w", err)
		}
	case map[string]any:
		root = t
	default:
		return nil, fmt.Errorf("schemadoc: unsupported document type %T", doc)
	}
	return compile(root)
}

func compile(root map[string]any) (*llmschema.Schema, error) {
	fieldsRaw, ok := root["fields"].(map[string]any)
	if !ok || len(fieldsRaw) == 0 {
		return nil, errors.New("schemadoc: document has no fields")
	}
	def, err := compileDefinition(fieldsRaw)
	if err != nil {
		return nil, err
	}
	var opts []llmschema.Option
	if name, _ := root["name"].(string); name != "" {
		opts = append(opts, llmschema.WithName(name))
	}
	if desc, _ := root["description"].(string); desc != "" {
		opts = append(opts, llmschema.WithDescription(desc))
	}
	if ver, ok := root["version"]; ok {
		opts = append(opts, llmschema.WithVersion(fmt.Sprint(ver)))
	}
	if strict, _ := root["strict"].(bool); strict {
		opts = append(opts, llmschema.Strict())
	}
	return llmschema.New(def, opts...), nil
}

func compileDefinition(fields map[string]any) (*llmschema.Definition, error) {
	names := make([]string, 0, len(fields))
	for k := range fields {
		names = append(names, k)
	}
	sort.Strings(names)
	defs := make([]llmschema.DefinedField, 0, len(names))
	for _, name := range names {
		spec, ok := fields[name].(map[string]any)
		if !ok {
			return nil, fmt.Errorf("schemadoc: field %q is not a mapping", name)
		}
		f, err := compileField(name, spec)
		if err != nil {
			return nil, err
		}
		defs = append(defs, llmschema.DefinedField{Name: name, Field: f})
	}
	return llmschema.NewDefinition(defs...), nil
}

func compileField(name string, m map[string]any) (*llmschema.Field, error) {
	typ, _ := m["type"].(string)
	c, err := commonOf(name, m)
	if err != nil {
		return nil, err
	}
	switch typ {
	case "text":
		b := llmschema.Text()
		if n, ok := intOpt(m, "minLength"); ok {
			b.MinLen(n)
		}
		if n, ok := intOpt(m, "maxLength"); ok {
			b.MaxLen(n)
		}
		if expr, ok := m["pattern"].(string); ok {
			if _, err := regexp.Compile(expr); err != nil {
				return nil, fmt.Errorf("schemadoc: field %q: invalid pattern: %w", name, err)
			}
			b.Pattern(expr)
		}
		if c.description != "" {
			b.Describe(c.description)
		}
		if c.optional() {
			b.Optional()
		} else if c.requiredSet {
			b.Required()
		}
		if c.hasDefault {
			s, ok := c.defaultVal.(string)
			if !ok {
				return nil, defaultTypeErr(name, "string", c.defaultVal)
			}
			b.Default(s)
		}
		return b.Build(), nil
	case "markdown":
		b := llmschema.Markdown()
		if n, ok := intOpt(m, "maxLength"); ok {
			b.MaxLen(n)
		}
		if c.description != "" {
			b.Describe(c.description)
		}
		if c.optional() {
			b.Optional()
		} else if c.requiredSet {
			b.Required()
		}
		if c.hasDefault {
			s, ok := c.defaultVal.(string)
			if !ok {
				return nil, defaultTypeErr(name, "string", c.defaultVal)
			}
			b.Default(s)
		}
		return b.Build(), nil
	case "number":
		b := llmschema.Number()
		if n, ok := floatOpt(m, "min"); ok {
			b.Min(n)
		}
		if n, ok := floatOpt(m, "max"); ok {
			b.Max(n)
		}
		if n, ok := intOpt(m, "precision"); ok {
			b.Precision(n)
		}
		if c.description != "" {
			b.Describe(c.description)
		}
		if c.optional() {
			b.Optional()
		} else if c.requiredSet {
			b.Required()
		}
		if c.hasDefault {
			n, ok := toFloat(c.defaultVal)
			if !ok {
				return nil, defaultTypeErr(name, "number", c.defaultVal)
			}
			b.Default(n)
		}
		return b.Build(), nil
	case "boolean":
		b := llmschema.Bool()
		if c.description != "" {
			b.Describe(c.description)
		}
		if c.optional() {
			b.Optional()
		} else if c.requiredSet {
			b.Required()
		}
		if c.hasDefault {
			v, ok := c.defaultVal.(bool)
			if !ok {
				return nil, defaultTypeErr(name, "boolean", c.defaultVal)
			}
			b.Default(v)
		}
		return b.Build(), nil
	case "date":
		b := llmschema.Date()
		if fromUnix, _ := m["fromUnix"].(bool); fromUnix {
			b.FromUnix()
		}
		if c.description != "" {
			b.Describe(c.description)
		}
		if c.optional() {
			b.Optional()
		} else if c.requiredSet {
			b.Required()
		}
		if c.hasDefault {
			b.Default(c.defaultVal)
		}
		return b.Build(), nil
	case "enum":
		values, err := stringList(m["values"])
		if err != nil || len(values) == 0 {
			return nil, fmt.Errorf("schemadoc: field %q: enum requires a non-empty values list", name)
		}
		b := llmschema.Enum(values...)
		if c.description != "" {
			b.Describe(c.description)
		}
		if c.optional() {
			b.Optional()
		} else if c.requiredSet {
			b.Required()
		}
		if c.hasDefault {
			s, ok := c.defaultVal.(string)
			if !ok {
				return nil, defaultTypeErr(name, "string", c.defaultVal)
			}
			b.Default(s)
		}
		return b.Build(), nil
	case "entity":
		entityType, _ := m["entityType"].(string)
		if entityType == "" {
			return nil, fmt.Errorf("schemadoc: field %q: entity requires entityType", name)
		}
		b := llmschema.Entity(entityType)
		if c.description != "" {
			b.Describe(c.description)
		}
		if c.optional() {
			b.Optional()
		} else if c.requiredSet {
			b.Required()
		}
		if c.hasDefault {
			s, ok := c.defaultVal.(string)
			if !ok {
				return nil, defaultTypeErr(name, "string", c.defaultVal)
			}
			b.Default(s)
		}
		return b.Build(), nil
	case "array":
		itemsRaw, ok := m["of"].(map[string]any)
		if !ok || len(itemsRaw) == 0 {
			return nil, fmt.Errorf("schemadoc: field %q: array requires an item mapping under 'of'", name)
		}
		items, err := compileDefinition(itemsRaw)
		if err != nil {
			return nil, err
		}
		b := llmschema.Array(items)
		if n, ok := intOpt(m, "minItems"); ok {
			b.MinItems(n)
		}
		if n, ok := intOpt(m, "maxItems"); ok {
			b.MaxItems(n)
		}
		if key, _ := m["uniqueBy"].(string); key != "" {
			b.UniqueBy(key)
		}
		if c.description != "" {
			b.Describe(c.description)
		}
		if c.optional() {
			b.Optional()
		} else if c.requiredSet {
			b.Required()
		}
		if c.hasDefault {
			v, ok := c.defaultVal.([]any)
			if !ok {
				return nil, defaultTypeErr(name, "array", c.defaultVal)
			}
			b.Default(v)
		}
		return b.Build(), nil
	case "object":
		shapeRaw, ok := m["fields"].(map[string]any)
		if !ok || len(shapeRaw) == 0 {
			return nil, fmt.Errorf("schemadoc: field %q: object requires a nested 'fields' mapping", name)
		}
		shape, err := compileDefinition(shapeRaw)
		if err != nil {
			return nil, err
		}
		b := llmschema.Object(shape)
		if c.description != "" {
			b.Describe(c.description)
		}
		if c.optional() {
			b.Optional()
		} else if c.requiredSet {
			b.Required()
		}
		if c.hasDefault {
			v, ok := c.defaultVal.(map[string]any)
			if !ok {
				return nil, defaultTypeErr(name, "object", c.defaultVal)
			}
			b.Default(v)
		}
		return b.Build(), nil
	case "":
		return nil, fmt.Errorf("schemadoc: field %q has no type", name)
	default:
		return nil, fmt.Errorf("schemadoc: field %q has unknown type %q", name, typ)
	}
}

// commonOpts carries the kind-independent settings of a field spec.
type commonOpts struct {
	description string
	optionalVal bool
	requiredSet bool
	requiredVal bool
	hasDefault  bool
	defaultVal  any
}

// optional resolves whether the common flags force the field optional:
// an explicit optional:true wins, then an explicit required:false.
func (c commonOpts) optional() bool {
	if c.optionalVal {
		return true
	}
	return c.requiredSet && !c.requiredVal
}

func commonOf(name string, m map[string]any) (commonOpts, error) {
	var c commonOpts
	c.description, _ = m["description"].(string)
	if v, ok := m["optional"]; ok {
		b, ok := v.(bool)
		if !ok {
			return c, fmt.Errorf("schemadoc: field %q: optional must be a boolean", name)
		}
		c.optionalVal = b
	}
	if v, ok := m["required"]; ok {
		b, ok := v.(bool)
		if !ok {
			return c, fmt.Errorf("schemadoc: field %q: required must be a boolean", name)
		}
		c.requiredSet = true
		c.requiredVal = b
	}
	if v, ok := m["default"]; ok && v != nil {
		c.hasDefault = true
		c.defaultVal = v
	}
	return c, nil
}

func defaultTypeErr(name, want string, got any) error {
	return fmt.Errorf("schemadoc: field %q: default must be a %s, got %T", name, want, got)
}

func intOpt(m map[string]any, key string) (int, bool) {
	f, ok := floatOpt(m, key)
	return int(f), ok
}

func floatOpt(m map[string]any, key string) (float64, bool) {
	v, ok := m[key]
	if !ok {
		return 0, false
	}
	return toFloat(v)
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
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

func stringList(v any) ([]string, error) {
	raw, ok := v.([]any)
	if !ok {
		return nil, errors.New("not a list")
	}
	out := make([]string, 0, len(raw))
	for _, el := range raw {
		s, ok := el.(string)
		if !ok {
			return nil, fmt.Errorf("non-string element %T", el)
		}
		out = append(out, s)
	}
	return out, nil
}
