package dsl

import (
	"regexp"
	"strconv"

	goshape "github.com/goshape/goshape"
	js "github.com/goshape/goshape/jsonschema"
)

// DefaultCharset is the character-class fragment used when Of is never
// called: ASCII letters and digits.
const DefaultCharset = "a-zA-Z0-9"

// StringBuilder accumulates charset and length constraints over string
// values. The zero builder accepts any string.
type StringBuilder struct {
	c stringConstraints
}

type stringConstraints struct {
	charset string // raw character-class fragment
	pattern string // raw regexp override; wins over charset
	minLen  *int
	maxLen  *int
}

// String returns the string class pattern, the root of the string builder
// chain.
func String() StringBuilder { return StringBuilder{} }

// Of constrains every character to the charset, a raw character-class
// fragment such as "a-f0-9".
func (b StringBuilder) Of(charset string) StringBuilder {
	b.c.charset = charset
	return b
}

// Pattern overrides the generated charset regexp with a raw expression.
// Used by the codec when importing a JSON Schema "pattern" keyword.
func (b StringBuilder) Pattern(expr string) StringBuilder {
	b.c.pattern = expr
	return b
}

// Len requires an exact length.
func (b StringBuilder) Len(n int) StringBuilder {
	b.c.minLen, b.c.maxLen = &n, &n
	return b
}

// MinLen requires a length of at least n.
func (b StringBuilder) MinLen(n int) StringBuilder {
	b.c.minLen = &n
	return b
}

// MaxLen requires a length of at most n.
func (b StringBuilder) MaxLen(n int) StringBuilder {
	b.c.maxLen = &n
	return b
}

// Schema compiles the accumulated constraints into a Validator. A malformed
// charset or pattern surfaces here as a *goshape.CompileError.
func (b StringBuilder) Schema() (*goshape.Validator, error) {
	c := b.c
	expr := c.pattern
	if expr == "" {
		charset := c.charset
		if charset == "" {
			if c.minLen == nil && c.maxLen == nil {
				// bare class check
				check := func(path string, v any, iss *goshape.Issues) bool {
					if _, ok := v.(string); !ok {
						return goshape.Fail(iss, path, goshape.CodeInvalidType, map[string]string{"expected": "string", "got": goshape.FormatValue(v)})
					}
					return true
				}
				return goshape.NewValidator(check, &js.Schema{Type: "string"}), nil
			}
			charset = DefaultCharset
		}
		expr = "^[" + charset + "]*$"
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, &goshape.CompileError{Pattern: expr, Reason: "malformed string constraint", Cause: err}
	}
	check := func(path string, v any, iss *goshape.Issues) bool {
		str, ok := v.(string)
		if !ok {
			return goshape.Fail(iss, path, goshape.CodeInvalidType, map[string]string{"expected": "string", "got": goshape.FormatValue(v)})
		}
		n := len([]rune(str))
		if c.minLen != nil && n < *c.minLen {
			return goshape.Fail(iss, path, goshape.CodeTooShort, map[string]string{"limit": strconv.Itoa(*c.minLen), "got": strconv.Itoa(n)})
		}
		if c.maxLen != nil && n > *c.maxLen {
			return goshape.Fail(iss, path, goshape.CodeTooLong, map[string]string{"limit": strconv.Itoa(*c.maxLen), "got": strconv.Itoa(n)})
		}
		if !re.MatchString(str) {
			return goshape.Fail(iss, path, goshape.CodePattern, map[string]string{"expected": re.String(), "got": goshape.FormatValue(v)})
		}
		return true
	}
	return goshape.NewValidator(check, &js.Schema{
		Type:      "string",
		Pattern:   expr,
		MinLength: c.minLen,
		MaxLength: c.maxLen,
	}), nil
}

// Matches reports whether v conforms to the builder's constraints.
func (b StringBuilder) Matches(v any) bool { return matches(b, v) }

// Validate returns the collected Issues for v, or nil on conformance.
func (b StringBuilder) Validate(v any) error { return validate(b, v) }
