package llmschema

import (
	"strings"
	"unicode/utf8"
)

// excerptContext is the number of context runes kept on each side of the
// first match occurrence.
const excerptContext = 30

// SearchOptions tunes Search behavior.
type SearchOptions struct {
	// CaseSensitive disables the default case-insensitive matching.
	CaseSensitive bool
	// Limit caps the result list; zero or negative means unlimited. The limit
	// is advisory: per-field recursion always completes, the final list is
	// truncated afterwards.
	Limit int
}

// SearchHit records one matching leaf value.
type SearchHit struct {
	Path    string `json:"path"`
	Value   string `json:"value"`
	Excerpt string `json:"excerpt"`
}

// Search scans text, markdown, enum and entity leaves of data for a substring
// match, carrying the accumulated path. It does not validate: missing or
// mistyped sub-values are skipped.
func (s *Schema) Search(data map[string]any, query string, opts ...SearchOptions) []SearchHit {
	var opt SearchOptions
	if len(opts) > 0 {
		opt = opts[len(opts)-1]
	}
	if query == "" {
		return []SearchHit{}
	}
	hits := []SearchHit{}
	for _, name := range s.def.names {
		f := s.def.byName[name]
		v, ok := presentValue(data, name)
		if !ok {
			continue
		}
		hits = searchField(f, v, query, Root().Field(name), opt, hits)
		if opt.Limit > 0 && len(hits) >= opt.Limit {
			break
		}
	}
	if opt.Limit > 0 && len(hits) > opt.Limit {
		hits = hits[:opt.Limit]
	}
	return hits
}

func searchField(f *Field, v any, query string, ref Ref, opt SearchOptions, hits []SearchHit) []SearchHit {
	switch f.kind {
	case KindText, KindMarkdown, KindEnum, KindEntity:
		sv, ok := v.(string)
		if !ok {
			return hits
		}
		if ex, matched := excerptAround(sv, query, opt.CaseSensitive); matched {
			hits = append(hits, SearchHit{Path: ref.Pointer(), Value: sv, Excerpt: ex})
		}
	case KindArray:
		arr, ok := v.([]any)
		if !ok {
			return hits
		}
		for i, el := range arr {
			em, ok := el.(map[string]any)
			if !ok {
				continue
			}
			hits = searchDefinition(f.array.Items, em, query, ref.Index(i), opt, hits)
		}
	case KindObject:
		m, ok := v.(map[string]any)
		if !ok {
			return hits
		}
		hits = searchDefinition(f.object, m, query, ref, opt, hits)
	case KindNumber, KindBool, KindDate:
		// non-text leaves are not searched
	}
	return hits
}

func searchDefinition(def *Definition, data map[string]any, query string, ref Ref, opt SearchOptions, hits []SearchHit) []SearchHit {
	for _, name := range def.names {
		f := def.byName[name]
		v, ok := presentValue(data, name)
		if !ok {
			continue
		}
		hits = searchField(f, v, query, ref.Field(name), opt, hits)
	}
	return hits
}

// excerptAround returns a bounded-width excerpt centered on the first match
// occurrence, ellipsized at truncation boundaries.
func excerptAround(value, query string, caseSensitive bool) (string, bool) {
	hay, needle := value, query
	if !caseSensitive {
		hay = strings.ToLower(value)
		needle = strings.ToLower(query)
	}
	idx := strings.Index(hay, needle)
	if idx < 0 {
		return "", false
	}
	runes := []rune(value)
	start := utf8.RuneCountInString(hay[:idx])
	end := start + utf8.RuneCountInString(needle)
	if end > len(runes) {
		end = len(runes)
	}
	from := start - excerptContext
	if from < 0 {
		from = 0
	}
	to := end + excerptContext
	if to > len(runes) {
		to = len(runes)
	}
	ex := string(runes[from:to])
	if from > 0 {
		ex = "..." + ex
	}
	if to < len(runes) {
		ex = ex + "..."
	}
	return ex, true
}
