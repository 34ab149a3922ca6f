package dsl

import (
	"fmt"
	"reflect"

	goshape "github.com/goshape/goshape"
	"github.com/goshape/goshape/internal/engine"
	js "github.com/goshape/goshape/jsonschema"
)

// FunctionBuilder constrains function values. The zero builder accepts any
// func value.
type FunctionBuilder struct {
	c functionConstraints
}

type functionConstraints struct {
	ref    any
	hasRef bool
}

// Function returns the function class pattern.
func Function() FunctionBuilder { return FunctionBuilder{} }

// Reference requires the exact referenced function (code pointer identity).
func (b FunctionBuilder) Reference(fn any) FunctionBuilder {
	b.c.ref, b.c.hasRef = fn, true
	return b
}

// Schema compiles the accumulated constraints into a Validator.
func (b FunctionBuilder) Schema() (*goshape.Validator, error) {
	c := b.c
	check := func(path string, v any, iss *goshape.Issues) bool {
		if c.hasRef {
			if !engine.Identical(c.ref, v) {
				return goshape.Fail(iss, path, goshape.CodeNotIdentical, nil)
			}
			return true
		}
		rv := reflect.ValueOf(v)
		if !rv.IsValid() || rv.Kind() != reflect.Func {
			return goshape.Fail(iss, path, goshape.CodeInvalidType, map[string]string{"expected": "function", "got": goshape.FormatValue(v)})
		}
		return true
	}
	desc := &js.Schema{Description: "go function"}
	if c.hasRef {
		desc = &js.Schema{Description: fmt.Sprintf("reference to go function of type %T", c.ref)}
	}
	return goshape.NewValidator(check, desc), nil
}

// Matches reports whether v conforms to the builder's constraints.
func (b FunctionBuilder) Matches(v any) bool { return matches(b, v) }

// Validate returns the collected Issues for v, or nil on conformance.
func (b FunctionBuilder) Validate(v any) error { return validate(b, v) }
