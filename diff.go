package llmschema

// DiffEntry records one structural difference at a path.
type DiffEntry struct {
	Path   string `json:"path"`
	Before any    `json:"before,omitempty"`
	After  any    `json:"after,omitempty"`
}

// DiffResult partitions differences into three disjoint lists keyed by the
// same path convention as Issues.
type DiffResult struct {
	Added   []DiffEntry `json:"added"`
	Removed []DiffEntry `json:"removed"`
	Changed []DiffEntry `json:"changed"`
}

// Empty reports whether the diff found no differences.
func (r DiffResult) Empty() bool {
	return len(r.Added) == 0 && len(r.Removed) == 0 && len(r.Changed) == 0
}

// Diff walks the definition against two data instances in lock-step. It does
// not validate: missing or mistyped sub-values degrade to absent or to a
// plain changed entry. Array elements are compared index-aligned; reordering
// a list therefore reports changed entries rather than a minimal edit.
func (s *Schema) Diff(previous, next map[string]any) DiffResult {
	res := DiffResult{Added: []DiffEntry{}, Removed: []DiffEntry{}, Changed: []DiffEntry{}}
	diffDefinition(s.def, previous, next, Root(), &res)
	return res
}

func diffDefinition(def *Definition, prev, next map[string]any, ref Ref, res *DiffResult) {
	for _, name := range def.names {
		f := def.byName[name]
		fr := ref.Field(name)
		pv, pok := presentValue(prev, name)
		nv, nok := presentValue(next, name)
		switch {
		case !pok && !nok:
			// absent on both sides
		case !pok:
			res.Added = append(res.Added, DiffEntry{Path: fr.Pointer(), After: nv})
		case !nok:
			res.Removed = append(res.Removed, DiffEntry{Path: fr.Pointer(), Before: pv})
		default:
			diffPresent(f, pv, nv, fr, res)
		}
	}
}

func diffPresent(f *Field, pv, nv any, ref Ref, res *DiffResult) {
	switch f.kind {
	case KindArray:
		pa, pok := pv.([]any)
		na, nok := nv.([]any)
		if !pok || !nok {
			if !equalValue(pv, nv) {
				res.Changed = append(res.Changed, DiffEntry{Path: ref.Pointer(), Before: pv, After: nv})
			}
			return
		}
		diffArray(f.array.Items, pa, na, ref, res)
	case KindObject:
		pm, pok := pv.(map[string]any)
		nm, nok := nv.(map[string]any)
		if pok && nok {
			diffDefinition(f.object, pm, nm, ref, res)
			return
		}
		if !equalValue(pv, nv) {
			res.Changed = append(res.Changed, DiffEntry{Path: ref.Pointer(), Before: pv, After: nv})
		}
	case KindText, KindMarkdown, KindNumber, KindBool, KindDate, KindEnum, KindEntity:
		if !equalValue(pv, nv) {
			res.Changed = append(res.Changed, DiffEntry{Path: ref.Pointer(), Before: pv, After: nv})
		}
	}
}

// diffArray compares index i in prev against index i in next up to the longer
// length; no reordering detection.
func diffArray(items *Definition, prev, next []any, ref Ref, res *DiffResult) {
	n := len(prev)
	if len(next) > n {
		n = len(next)
	}
	for i := 0; i < n; i++ {
		er := ref.Index(i)
		switch {
		case i >= len(prev):
			res.Added = append(res.Added, DiffEntry{Path: er.Pointer(), After: next[i]})
		case i >= len(next):
			res.Removed = append(res.Removed, DiffEntry{Path: er.Pointer(), Before: prev[i]})
		default:
			pm, pok := prev[i].(map[string]any)
			nm, nok := next[i].(map[string]any)
			if pok && nok {
				diffDefinition(items, pm, nm, er, res)
				continue
			}
			if !equalValue(prev[i], next[i]) {
				res.Changed = append(res.Changed, DiffEntry{Path: er.Pointer(), Before: prev[i], After: next[i]})
			}
		}
	}
}
