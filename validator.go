package goshape

import (
	"fmt"
	"reflect"

	"github.com/goshape/goshape/i18n"
	"github.com/goshape/goshape/internal/engine"
	js "github.com/goshape/goshape/jsonschema"
)

// CheckFunc is the compiled matching logic behind a Validator. path is the
// JSON Pointer of v within the value under validation. When iss is nil the
// check runs in boolean mode and may short-circuit; otherwise it appends one
// Issue per failure.
type CheckFunc func(path string, v any, iss *Issues) bool

// Validator is a compiled, reusable conformance checker. It is immutable
// after construction and safe for concurrent use.
type Validator struct {
	check CheckFunc
	js    *js.Schema
}

// NewValidator wraps a custom check function and its retained JSON Schema
// descriptor into a Validator. This is the extension point the dsl builders
// are built on.
func NewValidator(check CheckFunc, desc *js.Schema) *Validator {
	if desc == nil {
		desc = &js.Schema{}
	}
	return &Validator{check: check, js: desc}
}

// Matches reports whether v conforms to the schema.
func (s *Validator) Matches(v any) bool { return s.check("/", v, nil) }

// Check runs the compiled matching logic with an explicit JSON Pointer path,
// appending issues when iss is non-nil. It exists so composed validators
// (builders, codecs) report failures under the right location.
func (s *Validator) Check(path string, v any, iss *Issues) bool { return s.check(path, v, iss) }

// Validate returns nil when v conforms, or the collected Issues otherwise.
func (s *Validator) Validate(v any) error {
	var iss Issues
	s.check("/", v, &iss)
	if len(iss) > 0 {
		return iss
	}
	return nil
}

// Explain maps the JSON Pointer of each non-conforming location to a
// human-readable message. A conforming value yields an empty map.
func (s *Validator) Explain(v any) map[string]string {
	var iss Issues
	s.check("/", v, &iss)
	out := make(map[string]string, len(iss))
	for _, it := range iss {
		if cur, ok := out[it.Path]; ok {
			out[it.Path] = cur + "; " + it.Message
		} else {
			out[it.Path] = it.Message
		}
	}
	return out
}

// JSONSchema projects the schema into its retained JSON Schema descriptor.
// The returned value is shared and must be treated as read-only.
func (s *Validator) JSONSchema() (*js.Schema, error) { return s.js, nil }

// Schema returns the Validator itself, so compiled schemas can be embedded
// in larger patterns.
func (s *Validator) Schema() (*Validator, error) { return s, nil }

// Fail records a conformance failure when running in collection mode and
// always returns false, which lets checks end with `return Fail(...)`.
func Fail(iss *Issues, path, code string, params map[string]string) bool {
	if iss != nil {
		*iss = AppendIssues(*iss, Issue{
			Path:    path,
			Code:    code,
			Message: i18n.T(code, params),
			Params:  params,
		})
	}
	return false
}

// ChildPath extends a JSON Pointer with one more segment.
func ChildPath(base, name string) string {
	if base == "" || base == "/" {
		return "/" + name
	}
	return base + "/" + name
}

// FormatValue renders a value for inclusion in an issue message.
func FormatValue(v any) string {
	if engine.IsNil(v) {
		return "null"
	}
	switch t := v.(type) {
	case string:
		if len(t) > 40 {
			t = t[:40] + "..."
		}
		return fmt.Sprintf("%q", t)
	case bool:
		return fmt.Sprintf("%v", t)
	}
	if f, ok := engine.AsNumber(v); ok {
		return fmt.Sprintf("%v", f)
	}
	if _, ok := engine.AsObject(v); ok {
		return "object"
	}
	if _, ok := engine.AsSlice(v); ok {
		return "array"
	}
	return reflect.TypeOf(v).String()
}
