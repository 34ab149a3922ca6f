// Package dsl provides the chainable constraint builders of goshape.
//
// Builders are immutable values: every chain step copies the accumulated
// constraints, so a previously returned builder is never affected by later
// calls. A bare builder (no constraints) is the class pattern for its
// primitive, e.g. dsl.Number() accepts every numeric value.
//
// Every builder implements goshape.Schemer and can therefore appear anywhere
// inside a pattern handed to goshape.Compile.
package dsl

import goshape "github.com/goshape/goshape"

// matches compiles the builder on the fly; a mid-chain error means no value
// conforms.
func matches(b goshape.Schemer, v any) bool {
	s, err := b.Schema()
	if err != nil {
		return false
	}
	return s.Matches(v)
}

func validate(b goshape.Schemer, v any) error {
	s, err := b.Schema()
	if err != nil {
		return err
	}
	return s.Validate(v)
}
