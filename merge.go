package llmschema

// ArrayStrategy selects how Merge combines array fields.
type ArrayStrategy string

const (
	ArrayReplace ArrayStrategy = "replace"
	ArrayAppend  ArrayStrategy = "append"
)

// MergeOptions tunes Merge behavior.
type MergeOptions struct {
	ArrayStrategy ArrayStrategy
}

// Merge combines base and updates field by field: absent update values keep
// the base value, object fields merge recursively, array fields replace
// wholesale (or concatenate under ArrayAppend) and every other kind is won
// outright by the update. The inputs are never mutated; keys outside the
// definition are carried over from base unchanged.
func (s *Schema) Merge(base, updates map[string]any, opts ...MergeOptions) map[string]any {
	var opt MergeOptions
	if len(opts) > 0 {
		opt = opts[len(opts)-1]
	}
	if opt.ArrayStrategy == "" {
		opt.ArrayStrategy = ArrayReplace
	}
	return mergeDefinition(s.def, base, updates, opt)
}

func mergeDefinition(def *Definition, base, updates map[string]any, opt MergeOptions) map[string]any {
	out := make(map[string]any, len(base)+len(updates))
	for _, name := range def.names {
		f := def.byName[name]
		bv, bok := presentValue(base, name)
		uv, uok := presentValue(updates, name)
		if !uok {
			if bok {
				out[name] = bv
			}
			continue
		}
		out[name] = mergeField(f, bv, uv, opt)
	}
	// pass through keys the definition does not know about
	for k, v := range base {
		if _, known := def.byName[k]; !known {
			out[k] = v
		}
	}
	return out
}

func mergeField(f *Field, bv, uv any, opt MergeOptions) any {
	switch f.kind {
	case KindArray:
		if opt.ArrayStrategy == ArrayAppend {
			ba, _ := bv.([]any)
			ua, uok := uv.([]any)
			if !uok {
				return uv
			}
			merged := make([]any, 0, len(ba)+len(ua))
			merged = append(merged, ba...)
			merged = append(merged, ua...)
			return merged
		}
		return uv
	case KindObject:
		um, uok := uv.(map[string]any)
		if !uok {
			return uv
		}
		bm, _ := bv.(map[string]any)
		return mergeDefinition(f.object, bm, um, opt)
	case KindText, KindMarkdown, KindNumber, KindBool, KindDate, KindEnum, KindEntity:
		return uv
	}
	return uv
}
