package dsl

import (
	"strconv"

	goshape "github.com/goshape/goshape"
	"github.com/goshape/goshape/internal/engine"
	js "github.com/goshape/goshape/jsonschema"
)

// ArrayBuilder accumulates length and element constraints over slice and
// array values. The zero builder accepts any of them.
type ArrayBuilder struct {
	c   arrayConstraints
	err error
}

type arrayConstraints struct {
	like     any
	hasLike  bool
	elem     *goshape.Validator
	minItems *int
	maxItems *int
}

// Array returns the array class pattern, the root of the array builder
// chain.
func Array() ArrayBuilder { return ArrayBuilder{} }

// Like requires deep structural equality with the given array literal.
func (b ArrayBuilder) Like(literal any) ArrayBuilder {
	b.c.like, b.c.hasLike = literal, true
	return b
}

// Of requires every element to conform to the given pattern, which may be
// any value Compile accepts.
func (b ArrayBuilder) Of(pattern any) ArrayBuilder {
	sub, err := goshape.Compile(pattern)
	if err != nil {
		b.err = err
		return b
	}
	b.c.elem = sub
	return b
}

// Len requires an exact element count.
func (b ArrayBuilder) Len(n int) ArrayBuilder {
	b.c.minItems, b.c.maxItems = &n, &n
	return b
}

// MinLen requires at least n elements.
func (b ArrayBuilder) MinLen(n int) ArrayBuilder {
	b.c.minItems = &n
	return b
}

// MaxLen requires at most n elements.
func (b ArrayBuilder) MaxLen(n int) ArrayBuilder {
	b.c.maxItems = &n
	return b
}

// Schema compiles the accumulated constraints into a Validator. An error
// recorded mid-chain (for example a malformed element pattern) surfaces
// here.
func (b ArrayBuilder) Schema() (*goshape.Validator, error) {
	if b.err != nil {
		return nil, b.err
	}
	c := b.c
	check := func(path string, v any, iss *goshape.Issues) bool {
		s, ok := engine.AsSlice(v)
		if !ok {
			return goshape.Fail(iss, path, goshape.CodeInvalidType, map[string]string{"expected": "array", "got": goshape.FormatValue(v)})
		}
		if c.hasLike && !engine.DeepEqual(c.like, v) {
			return goshape.Fail(iss, path, goshape.CodeNotEqual, map[string]string{"expected": goshape.FormatValue(c.like), "got": goshape.FormatValue(v)})
		}
		if c.minItems != nil && len(s) < *c.minItems {
			return goshape.Fail(iss, path, goshape.CodeTooShort, map[string]string{"limit": strconv.Itoa(*c.minItems), "got": strconv.Itoa(len(s))})
		}
		if c.maxItems != nil && len(s) > *c.maxItems {
			return goshape.Fail(iss, path, goshape.CodeTooLong, map[string]string{"limit": strconv.Itoa(*c.maxItems), "got": strconv.Itoa(len(s))})
		}
		result := true
		if c.elem != nil {
			for i, el := range s {
				if !c.elem.Check(goshape.ChildPath(path, strconv.Itoa(i)), el, iss) {
					if iss == nil {
						return false
					}
					result = false
				}
			}
		}
		return result
	}
	desc := &js.Schema{Type: "array", MinItems: c.minItems, MaxItems: c.maxItems}
	if c.elem != nil {
		desc.Items, _ = c.elem.JSONSchema()
	}
	if c.hasLike {
		desc = &js.Schema{Enum: []any{c.like}}
	}
	return goshape.NewValidator(check, desc), nil
}

// Matches reports whether v conforms to the builder's constraints.
func (b ArrayBuilder) Matches(v any) bool { return matches(b, v) }

// Validate returns the collected Issues for v, or nil on conformance.
func (b ArrayBuilder) Validate(v any) error { return validate(b, v) }
