package dsl

import (
	"fmt"

	goshape "github.com/goshape/goshape"
	"github.com/goshape/goshape/internal/engine"
	js "github.com/goshape/goshape/jsonschema"
)

// ObjectBuilder constrains object values by identity or deep equality. The
// zero builder accepts any object.
type ObjectBuilder struct {
	c objectConstraints
}

type objectConstraints struct {
	ref     any
	hasRef  bool
	like    any
	hasLike bool
}

// Object returns the object class pattern, the root of the object builder
// chain.
func Object() ObjectBuilder { return ObjectBuilder{} }

// Reference requires the exact referenced value (pointer identity).
func (b ObjectBuilder) Reference(obj any) ObjectBuilder {
	b.c.ref, b.c.hasRef = obj, true
	return b
}

// Like requires deep structural equality with the given object.
func (b ObjectBuilder) Like(obj any) ObjectBuilder {
	b.c.like, b.c.hasLike = obj, true
	return b
}

// Schema compiles the accumulated constraints into a Validator.
func (b ObjectBuilder) Schema() (*goshape.Validator, error) {
	c := b.c
	check := func(path string, v any, iss *goshape.Issues) bool {
		if c.hasRef {
			if !engine.Identical(c.ref, v) {
				return goshape.Fail(iss, path, goshape.CodeNotIdentical, nil)
			}
			return true
		}
		if _, ok := engine.AsObject(v); !ok {
			return goshape.Fail(iss, path, goshape.CodeInvalidType, map[string]string{"expected": "object", "got": goshape.FormatValue(v)})
		}
		if c.hasLike && !engine.DeepEqual(c.like, v) {
			return goshape.Fail(iss, path, goshape.CodeNotEqual, map[string]string{"expected": "object", "got": goshape.FormatValue(v)})
		}
		return true
	}
	desc := &js.Schema{Type: "object"}
	switch {
	case c.hasRef:
		desc = &js.Schema{Description: fmt.Sprintf("reference to go value of type %T", c.ref)}
	case c.hasLike:
		desc = &js.Schema{Enum: []any{c.like}}
	}
	return goshape.NewValidator(check, desc), nil
}

// Matches reports whether v conforms to the builder's constraints.
func (b ObjectBuilder) Matches(v any) bool { return matches(b, v) }

// Validate returns the collected Issues for v, or nil on conformance.
func (b ObjectBuilder) Validate(v any) error { return validate(b, v) }
