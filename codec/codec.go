// Package codec translates between compiled Validators and their JSON Schema
// descriptors, in both directions and in both JSON and YAML concrete syntax.
//
// Encoding is total: every Validator carries a retained descriptor. Patterns
// that encode host identity (Go types, value/function references,
// self-references) serialize as best-effort annotations; this is a documented
// fidelity limitation, not an error. Decoding accepts exactly the fragments
// encoding can produce and fails with *DecodeError on anything else.
package codec

import (
	"bytes"
	"fmt"

	gojson "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	goshape "github.com/goshape/goshape"
	js "github.com/goshape/goshape/jsonschema"
)

// DecodeError reports a JSON Schema construct with no native pattern form.
type DecodeError struct {
	Construct string
	Cause     error
}

func (e *DecodeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("goshape/codec: cannot decode %s: %v", e.Construct, e.Cause)
	}
	return "goshape/codec: no native pattern for " + e.Construct
}

func (e *DecodeError) Unwrap() error { return e.Cause }

// Encode returns the Validator's retained JSON Schema descriptor.
func Encode(v *goshape.Validator) (*js.Schema, error) { return v.JSONSchema() }

// EncodeJSON marshals the Validator's descriptor to JSON bytes.
func EncodeJSON(v *goshape.Validator) ([]byte, error) {
	s, err := v.JSONSchema()
	if err != nil {
		return nil, err
	}
	return gojson.Marshal(s)
}

// EncodeYAML marshals the Validator's descriptor to YAML bytes.
func EncodeYAML(v *goshape.Validator) ([]byte, error) {
	s, err := v.JSONSchema()
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(s)
}

// Decode reconstructs a Validator from a JSON Schema descriptor. The schema
// is first translated into a native pattern value, then compiled in one
// session, which is how nested $ref "#" self-references come out bound to
// the right root.
func Decode(s *js.Schema) (*goshape.Validator, error) {
	p, err := toPattern(s)
	if err != nil {
		return nil, err
	}
	return goshape.Compile(p)
}

// DecodeJSON parses JSON bytes into a descriptor and decodes it. Unknown
// JSON Schema keywords are rejected rather than silently dropped.
func DecodeJSON(data []byte) (*goshape.Validator, error) {
	var s js.Schema
	dec := gojson.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&s); err != nil {
		return nil, &DecodeError{Construct: "json descriptor", Cause: err}
	}
	return Decode(&s)
}

// DecodeYAML parses YAML bytes into a descriptor and decodes it.
func DecodeYAML(data []byte) (*goshape.Validator, error) {
	var s js.Schema
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return nil, &DecodeError{Construct: "yaml descriptor", Cause: err}
	}
	return Decode(&s)
}
