package dsl

import (
	goshape "github.com/goshape/goshape"
	js "github.com/goshape/goshape/jsonschema"
)

// BoolBuilder is the boolean class pattern. It carries no constraints; it
// exists so {"type":"boolean"} has a native counterpart.
type BoolBuilder struct{}

// Bool returns the boolean class pattern.
func Bool() BoolBuilder { return BoolBuilder{} }

// Schema compiles the class check into a Validator.
func (BoolBuilder) Schema() (*goshape.Validator, error) {
	check := func(path string, v any, iss *goshape.Issues) bool {
		if _, ok := v.(bool); !ok {
			return goshape.Fail(iss, path, goshape.CodeInvalidType, map[string]string{"expected": "boolean", "got": goshape.FormatValue(v)})
		}
		return true
	}
	return goshape.NewValidator(check, &js.Schema{Type: "boolean"}), nil
}

// Matches reports whether v is a bool.
func (b BoolBuilder) Matches(v any) bool { return matches(b, v) }

// Validate returns the collected Issues for v, or nil on conformance.
func (b BoolBuilder) Validate(v any) error { return validate(b, v) }
