package llmschema

import (
	json "github.com/goccy/go-json"

	"github.com/shenli/llm-schema/i18n"
)

// Options holds normalized schema-level settings.
type Options struct {
	Name        string
	Description string
	Version     string
	// Strict rejects input keys absent from the definition; the default keeps
	// the asymmetry LLM output needs: unknown keys are silently ignored.
	Strict   bool
	Examples []map[string]any
}

// Option mutates Options during New.
type Option func(*Options)

// WithName sets the schema name.
func WithName(name string) Option { return func(o *Options) { o.Name = name } }

// WithDescription sets the schema description.
func WithDescription(s string) Option { return func(o *Options) { o.Description = s } }

// WithVersion sets the schema version string.
func WithVersion(v string) Option { return func(o *Options) { o.Version = v } }

// Strict enables unknown-key rejection for the whole schema tree.
func Strict() Option { return func(o *Options) { o.Strict = true } }

// WithExamples attaches example instances (metadata for prompt generators).
func WithExamples(examples ...map[string]any) Option {
	return func(o *Options) { o.Examples = append(o.Examples, examples...) }
}

// Schema binds a top-level definition to parse and transform operations. It is
// immutable after New and safe for concurrent use.
type Schema struct {
	def  *Definition
	opts Options
}

// New builds a schema handle over def.
func New(def *Definition, opts ...Option) *Schema {
	if def == nil {
		panic("llmschema: nil definition")
	}
	var o Options
	for _, opt := range opts {
		opt(&o)
	}
	return &Schema{def: def, opts: o}
}

// Definition returns the bound definition for introspection.
func (s *Schema) Definition() *Definition { return s.def }

// Options returns the normalized schema options.
func (s *Schema) Options() Options {
	o := s.opts
	o.Examples = append([]map[string]any{}, s.opts.Examples...)
	return o
}

// Name returns the schema name.
func (s *Schema) Name() string { return s.opts.Name }

// Result is the discriminated outcome of SafeParse: either Data or a
// non-empty Issues list. It is plain serializable data.
type Result struct {
	Success bool           `json:"success"`
	Data    map[string]any `json:"data,omitempty"`
	Issues  Issues         `json:"issues,omitempty"`
}

// SafeParse normalizes input and validates it against the definition,
// aggregating every failing branch. It never panics for data problems and
// never returns an error: the Result carries the complete issue list.
//
// Accepted inputs: an already-decoded map, a JSON-encoded string, or raw JSON
// bytes. A string that fails to decode yields a single root invalid_format
// issue; any other shape yields a root invalid_type issue.
func (s *Schema) SafeParse(input any) Result {
	v, iss := normalizeInput(input)
	if len(iss) > 0 {
		return Result{Success: false, Issues: iss}
	}
	data, iss := s.def.parse(v, Root(), s.opts.Strict)
	if len(iss) > 0 {
		return Result{Success: false, Issues: iss}
	}
	return Result{Success: true, Data: data}
}

// Parse is the strict entry point: it returns the parsed data or an error
// that carries the complete issue list (the error is the Issues value itself,
// recoverable via AsIssues).
func (s *Schema) Parse(input any) (map[string]any, error) {
	res := s.SafeParse(input)
	if !res.Success {
		return nil, res.Issues
	}
	return res.Data, nil
}

// MustParse parses input and panics on failure. Intended for static inputs
// such as schema examples.
func (s *Schema) MustParse(input any) map[string]any {
	data, err := s.Parse(input)
	if err != nil {
		panic(err)
	}
	return data
}

func normalizeInput(input any) (any, Issues) {
	switch t := input.(type) {
	case map[string]any:
		return t, nil
	case string:
		return decodeJSONInput([]byte(t))
	case []byte:
		return decodeJSONInput(t)
	case json.RawMessage:
		return decodeJSONInput(t)
	default:
		return nil, Issues{typeIssue(Root(), "object", input)}
	}
}

func decodeJSONInput(data []byte) (any, Issues) {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, Issues{Root().Issue(CodeInvalidFormat, i18n.T(CodeInvalidFormat, nil), "error", err.Error())}
	}
	if m, ok := v.(map[string]any); ok {
		return m, nil
	}
	return nil, Issues{typeIssue(Root(), "object", v)}
}
