package codec

import (
	"regexp"

	goshape "github.com/goshape/goshape"
	"github.com/goshape/goshape/dsl"
	js "github.com/goshape/goshape/jsonschema"
)

// toPattern translates a JSON Schema fragment into the native pattern value
// Compile accepts: builders for constrained primitives, maps for objects,
// or-lists for enum/anyOf, markers for $ref "#" and the empty schema.
func toPattern(s *js.Schema) (any, error) {
	if s.IsEmpty() {
		return goshape.Anything, nil
	}
	if s.Ref != "" {
		if s.Ref == "#" {
			return goshape.Self, nil
		}
		return nil, &DecodeError{Construct: `$ref ` + s.Ref}
	}
	if len(s.AnyOf) > 0 || len(s.OneOf) > 0 {
		return unionPattern(s)
	}
	if len(s.Enum) > 0 {
		// An enum is an or-list of literals; array literals stay nested one
		// level deep, which is exactly the native wrapped-literal idiom.
		// Object literals need an explicit deep-equality wrapper because a
		// bare map inside an or-list would read as an object pattern.
		out := make([]any, len(s.Enum))
		for i, el := range s.Enum {
			if m, ok := el.(map[string]any); ok {
				out[i] = dsl.Object().Like(m)
				continue
			}
			out[i] = el
		}
		return out, nil
	}
	switch s.Type {
	case "string":
		return stringPattern(s)
	case "number", "integer":
		return numberPattern(s), nil
	case "boolean":
		return dsl.Bool(), nil
	case "null":
		return nil, nil
	case "array":
		return arrayPattern(s)
	case "object":
		return objectPattern(s)
	case "":
		return nil, &DecodeError{Construct: "descriptor without type"}
	default:
		return nil, &DecodeError{Construct: "type " + s.Type}
	}
}

func unionPattern(s *js.Schema) (any, error) {
	branches := make([]*js.Schema, 0, len(s.AnyOf)+len(s.OneOf))
	branches = append(branches, s.AnyOf...)
	branches = append(branches, s.OneOf...)
	out := make([]any, 0, len(branches))
	for _, sub := range branches {
		p, err := toPattern(sub)
		if err != nil {
			return nil, err
		}
		// A branch that decoded to an or-list contributes alternatives, not
		// a wrapped array literal.
		if alts, ok := p.([]any); ok {
			out = append(out, alts...)
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func stringPattern(s *js.Schema) (any, error) {
	b := dsl.String()
	switch {
	case s.Pattern != "":
		b = b.Pattern(s.Pattern)
	case s.MinLength != nil || s.MaxLength != nil:
		// A length-only descriptor bounds the length, not the alphabet; pin a
		// match-anything pattern so the builder's default charset stays out.
		b = b.Pattern(`(?s).*`)
	}
	if s.MinLength != nil {
		b = b.MinLen(*s.MinLength)
	}
	if s.MaxLength != nil {
		b = b.MaxLen(*s.MaxLength)
	}
	// surface malformed patterns at decode time, not first use
	if _, err := b.Schema(); err != nil {
		return nil, &DecodeError{Construct: "pattern " + s.Pattern, Cause: err}
	}
	return b, nil
}

func numberPattern(s *js.Schema) dsl.NumberBuilder {
	b := dsl.Number()
	if s.Minimum != nil {
		if s.ExclusiveMinimum {
			b = b.Above(*s.Minimum)
		} else {
			b = b.Min(*s.Minimum)
		}
	}
	if s.Maximum != nil {
		if s.ExclusiveMaximum {
			b = b.Below(*s.Maximum)
		} else {
			b = b.Max(*s.Maximum)
		}
	}
	switch {
	case s.MultipleOf != nil:
		b = b.Step(*s.MultipleOf)
	case s.Type == "integer":
		b = b.Step(1)
	}
	return b
}

func arrayPattern(s *js.Schema) (any, error) {
	b := dsl.Array()
	if s.Items != nil {
		p, err := toPattern(s.Items)
		if err != nil {
			return nil, err
		}
		b = b.Of(p)
	}
	if s.MinItems != nil {
		b = b.MinLen(*s.MinItems)
	}
	if s.MaxItems != nil {
		b = b.MaxLen(*s.MaxItems)
	}
	return b, nil
}

func objectPattern(s *js.Schema) (any, error) {
	required := make(map[string]bool, len(s.Required))
	for _, name := range s.Required {
		required[name] = true
	}
	m := make(map[string]any, len(s.Properties)+len(s.PatternProperties)+1)
	for name, sub := range s.Properties {
		p, err := toPattern(sub)
		if err != nil {
			return nil, err
		}
		if required[name] {
			m[regexp.QuoteMeta(name)] = p
			delete(required, name)
			continue
		}
		m["?"+regexp.QuoteMeta(name)] = p
	}
	// required names without a property schema accept anything, presence only
	for name := range required {
		m[regexp.QuoteMeta(name)] = goshape.Anything
	}
	for expr, sub := range s.PatternProperties {
		// Multiplicity bounds are metadata about the key, not a constraint on
		// the property value; strip them before translating the sub-schema.
		cp := *sub
		cp.MinMatches, cp.MaxMatches = nil, nil
		p, err := toPattern(&cp)
		if err != nil {
			return nil, err
		}
		switch {
		case sub.MinMatches != nil && *sub.MinMatches >= 1:
			m["+"+expr] = p
		case sub.MaxMatches != nil && *sub.MaxMatches == 1:
			m["?"+expr] = p
		default:
			m["*"+expr] = p
		}
	}
	if s.AdditionalProperties != nil {
		p, err := toPattern(s.AdditionalProperties)
		if err != nil {
			return nil, err
		}
		m["*"] = p
	}
	return m, nil
}
