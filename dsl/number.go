package dsl

import (
	"strconv"

	goshape "github.com/goshape/goshape"
	"github.com/goshape/goshape/internal/engine"
	js "github.com/goshape/goshape/jsonschema"
)

// NumberBuilder accumulates range and divisibility constraints over numeric
// values. The zero builder accepts any number.
type NumberBuilder struct {
	c numberConstraints
}

type numberConstraints struct {
	min, max *float64
	exclMin  bool
	exclMax  bool
	step     *float64
}

// Number returns the numeric class pattern, the root of the numeric builder
// chain.
func Number() NumberBuilder { return NumberBuilder{} }

// Min requires v >= n.
func (b NumberBuilder) Min(n float64) NumberBuilder {
	b.c.min, b.c.exclMin = &n, false
	return b
}

// Max requires v <= n.
func (b NumberBuilder) Max(n float64) NumberBuilder {
	b.c.max, b.c.exclMax = &n, false
	return b
}

// Above requires v > n.
func (b NumberBuilder) Above(n float64) NumberBuilder {
	b.c.min, b.c.exclMin = &n, true
	return b
}

// Below requires v < n.
func (b NumberBuilder) Below(n float64) NumberBuilder {
	b.c.max, b.c.exclMax = &n, true
	return b
}

// Step requires v to be an integral multiple of n.
func (b NumberBuilder) Step(n float64) NumberBuilder {
	b.c.step = &n
	return b
}

// Schema compiles the accumulated constraints into a Validator.
func (b NumberBuilder) Schema() (*goshape.Validator, error) {
	c := b.c
	check := func(path string, v any, iss *goshape.Issues) bool {
		f, ok := engine.AsNumber(v)
		if !ok {
			return goshape.Fail(iss, path, goshape.CodeInvalidType, map[string]string{"expected": "number", "got": goshape.FormatValue(v)})
		}
		got := strconv.FormatFloat(f, 'g', -1, 64)
		if c.min != nil && (f < *c.min || (c.exclMin && f == *c.min)) {
			return goshape.Fail(iss, path, goshape.CodeTooSmall, map[string]string{"limit": formatBound(*c.min, c.exclMin), "got": got})
		}
		if c.max != nil && (f > *c.max || (c.exclMax && f == *c.max)) {
			return goshape.Fail(iss, path, goshape.CodeTooBig, map[string]string{"limit": formatBound(*c.max, c.exclMax), "got": got})
		}
		if c.step != nil && !engine.IsMultipleOf(f, *c.step) {
			return goshape.Fail(iss, path, goshape.CodeNotMultipleOf, map[string]string{"step": strconv.FormatFloat(*c.step, 'g', -1, 64), "got": got})
		}
		return true
	}
	return goshape.NewValidator(check, &js.Schema{
		Type:             "number",
		Minimum:          c.min,
		Maximum:          c.max,
		ExclusiveMinimum: c.min != nil && c.exclMin,
		ExclusiveMaximum: c.max != nil && c.exclMax,
		MultipleOf:       c.step,
	}), nil
}

// Matches reports whether v conforms to the builder's constraints.
func (b NumberBuilder) Matches(v any) bool { return matches(b, v) }

// Validate returns the collected Issues for v, or nil on conformance.
func (b NumberBuilder) Validate(v any) error { return validate(b, v) }

func formatBound(n float64, exclusive bool) string {
	s := strconv.FormatFloat(n, 'g', -1, 64)
	if exclusive {
		return s + " (exclusive)"
	}
	return s
}
