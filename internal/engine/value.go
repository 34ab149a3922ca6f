package engine

import (
	"encoding/json"
	"math"
	"reflect"
)

// Value-classification and comparison kernels shared by the compiler, the
// object matcher, and the builders. Everything here is total: malformed or
// unexpected inputs report false, never panic.

// AsNumber coerces any Go numeric kind (and json.Number) to float64.
func AsNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
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
	default:
		return 0, false
	}
}

// AsObject normalizes a value into a property map. Beyond the common
// map[string]any it accepts any map keyed by string via reflection.
func AsObject(v any) (map[string]any, bool) {
	if m, ok := v.(map[string]any); ok {
		return m, true
	}
	rv := reflect.ValueOf(v)
	if !rv.IsValid() || rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	out := make(map[string]any, rv.Len())
	it := rv.MapRange()
	for it.Next() {
		out[it.Key().String()] = it.Value().Interface()
	}
	return out, true
}

// AsSlice normalizes a value into []any, accepting any slice or array kind.
func AsSlice(v any) ([]any, bool) {
	if s, ok := v.([]any); ok {
		return s, true
	}
	rv := reflect.ValueOf(v)
	if !rv.IsValid() || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

// IsNil reports whether v is nil, including typed nil pointers, maps,
// slices, interfaces, channels, and funcs.
func IsNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Interface, reflect.Chan, reflect.Func:
		return rv.IsNil()
	default:
		return false
	}
}

// DeepEqual compares two values structurally, treating all numeric kinds as
// interchangeable so that a pattern literal int(5) equals the float64(5)
// produced by a JSON decoder.
func DeepEqual(a, b any) bool {
	if af, ok := AsNumber(a); ok {
		bf, ok2 := AsNumber(b)
		return ok2 && af == bf
	}
	if as, ok := AsSlice(a); ok {
		bs, ok2 := AsSlice(b)
		if !ok2 || len(as) != len(bs) {
			return false
		}
		for i := range as {
			if !DeepEqual(as[i], bs[i]) {
				return false
			}
		}
		return true
	}
	if am, ok := AsObject(a); ok {
		bm, ok2 := AsObject(b)
		if !ok2 || len(am) != len(bm) {
			return false
		}
		for k, av := range am {
			bv, exists := bm[k]
			if !exists || !DeepEqual(av, bv) {
				return false
			}
		}
		return true
	}
	if IsNil(a) || IsNil(b) {
		return IsNil(a) && IsNil(b)
	}
	return reflect.DeepEqual(a, b)
}

// Identical reports reference identity for pointer-shaped values (pointers,
// maps, slices, funcs, channels). Non-reference kinds are never identical.
func Identical(a, b any) bool {
	ra, rb := reflect.ValueOf(a), reflect.ValueOf(b)
	if !ra.IsValid() || !rb.IsValid() || ra.Type() != rb.Type() {
		return false
	}
	switch ra.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return ra.Pointer() == rb.Pointer()
	case reflect.Slice:
		return ra.Pointer() == rb.Pointer() && ra.Len() == rb.Len()
	default:
		return false
	}
}

// IsMultipleOf reports whether v is an integral multiple of step, with a
// small tolerance so float representation noise does not flip the result.
func IsMultipleOf(v, step float64) bool {
	if step == 0 {
		return false
	}
	q := v / step
	return math.Abs(q-math.Round(q)) < 1e-9
}
