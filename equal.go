package llmschema

import (
	"reflect"
	"time"
)

// equalValue is the structural deep equality used by Diff: time.Time compared
// by timestamp, arrays element-wise, objects key-wise, numbers by value
// regardless of concrete numeric type.
func equalValue(a, b any) bool {
	switch av := a.(type) {
	case nil:
		return b == nil
	case time.Time:
		bv, ok := b.(time.Time)
		return ok && av.Equal(bv)
	case []any:
		bv, ok := b.([]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !equalValue(av[i], bv[i]) {
				return false
			}
		}
		return true
	case map[string]any:
		bv, ok := b.(map[string]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for k, v := range av {
			bvv, ok := bv[k]
			if !ok || !equalValue(v, bvv) {
				return false
			}
		}
		return true
	default:
		if af, ok := toFloat(a); ok {
			bf, ok := toFloat(b)
			return ok && af == bf
		}
		// Mistyped sub-values can carry non-comparable dynamic types
		// (slices, maps of foreign element types); == would panic on those.
		if b == nil {
			return false
		}
		if !reflect.TypeOf(a).Comparable() || !reflect.TypeOf(b).Comparable() {
			return reflect.DeepEqual(a, b)
		}
		return a == b
	}
}

// presentValue reads a key treating nil the same as absent, mirroring how the
// parse walk resolves optionality.
func presentValue(m map[string]any, key string) (any, bool) {
	if m == nil {
		return nil, false
	}
	v, ok := m[key]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}
