package llmschema

// EntityRecord points at one entity-tagged leaf value in a data instance.
type EntityRecord struct {
	Path  string `json:"path"`
	Value string `json:"value"`
	Type  string `json:"type"`
}

// MarkdownField points at one markdown leaf value in a data instance.
type MarkdownField struct {
	Path  string `json:"path"`
	Field string `json:"field"`
	Value string `json:"value"`
}

// Entities collects entity-field values from data in document order (schema
// declaration order, array indices ascending). When entityTypes are given,
// only leaves tagged with one of them are returned. Missing or mistyped
// values are skipped.
func (s *Schema) Entities(data map[string]any, entityTypes ...string) []EntityRecord {
	var filter map[string]struct{}
	if len(entityTypes) > 0 {
		filter = make(map[string]struct{}, len(entityTypes))
		for _, t := range entityTypes {
			filter[t] = struct{}{}
		}
	}
	out := []EntityRecord{}
	walkLeaves(s.def, data, Root(), func(f *Field, name string, v any, ref Ref) {
		if f.kind != KindEntity {
			return
		}
		if filter != nil {
			if _, ok := filter[f.entity]; !ok {
				return
			}
		}
		sv, ok := v.(string)
		if !ok {
			return
		}
		out = append(out, EntityRecord{Path: ref.Pointer(), Value: sv, Type: f.entity})
	})
	return out
}

// MarkdownFields collects markdown-field values from data in document order.
func (s *Schema) MarkdownFields(data map[string]any) []MarkdownField {
	out := []MarkdownField{}
	walkLeaves(s.def, data, Root(), func(f *Field, name string, v any, ref Ref) {
		if f.kind != KindMarkdown {
			return
		}
		sv, ok := v.(string)
		if !ok {
			return
		}
		out = append(out, MarkdownField{Path: ref.Pointer(), Field: name, Value: sv})
	})
	return out
}

// walkLeaves visits every present leaf of data in schema declaration order,
// recursing through array items and object shapes.
func walkLeaves(def *Definition, data map[string]any, ref Ref, visit func(f *Field, name string, v any, ref Ref)) {
	for _, name := range def.names {
		f := def.byName[name]
		v, ok := presentValue(data, name)
		if !ok {
			continue
		}
		fr := ref.Field(name)
		switch f.kind {
		case KindArray:
			arr, ok := v.([]any)
			if !ok {
				continue
			}
			for i, el := range arr {
				em, ok := el.(map[string]any)
				if !ok {
					continue
				}
				walkLeaves(f.array.Items, em, fr.Index(i), visit)
			}
		case KindObject:
			m, ok := v.(map[string]any)
			if !ok {
				continue
			}
			walkLeaves(f.object, m, fr, visit)
		case KindText, KindMarkdown, KindNumber, KindBool, KindDate, KindEnum, KindEntity:
			visit(f, name, v, fr)
		}
	}
}
