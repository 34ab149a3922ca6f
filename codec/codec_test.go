package codec_test

import (
	"errors"
	"strings"
	"testing"

	goshape "github.com/goshape/goshape"
	"github.com/goshape/goshape/codec"
	"github.com/goshape/goshape/dsl"
)

// roundTrip encodes v to JSON and decodes it back.
func roundTrip(t *testing.T, v *goshape.Validator) *goshape.Validator {
	t.Helper()
	data, err := codec.EncodeJSON(v)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	out, err := codec.DecodeJSON(data)
	if err != nil {
		t.Fatalf("decode %s: %v", data, err)
	}
	return out
}

// agree asserts both validators classify every probe value identically.
func agree(t *testing.T, a, b *goshape.Validator, probes []any) {
	t.Helper()
	for _, p := range probes {
		if got, want := b.Matches(p), a.Matches(p); got != want {
			t.Fatalf("probe %#v: decoded validator says %v, original says %v", p, got, want)
		}
	}
}

func TestRoundTrip_ObjectWithBuilders(t *testing.T) {
	v := goshape.MustCompile(map[string]any{
		"name": dsl.String(),
		"?age": dsl.Number().Min(0).Max(150),
	})
	probes := []any{
		map[string]any{"name": "x"},
		map[string]any{"name": "x", "age": 30.0},
		map[string]any{"name": "x", "age": -1.0},
		map[string]any{"age": 30.0},
		map[string]any{"name": 5.0},
		"not an object",
	}
	agree(t, v, roundTrip(t, v), probes)
}

func TestRoundTrip_EnumAndWrappedLiteral(t *testing.T) {
	v := goshape.MustCompile([]any{"on", "off", 1})
	probes := []any{"on", "off", 1.0, 2.0, "dim", nil}
	agree(t, v, roundTrip(t, v), probes)

	lit := goshape.MustCompile([]any{[]any{0, 0, 0}})
	probes = []any{[]any{0.0, 0.0, 0.0}, []any{0.0, 1.0, 0.0}, []any{}, "x"}
	agree(t, lit, roundTrip(t, lit), probes)
}

func TestRoundTrip_StringConstraints(t *testing.T) {
	v := goshape.MustCompile(dsl.String().Of("a-f0-9").MinLen(2).MaxLen(8))
	probes := []any{"deadbeef", "zz", "a", "abcdef", "abcdefabc", 5.0}
	agree(t, v, roundTrip(t, v), probes)
}

func TestRoundTrip_ArrayOfNumbers(t *testing.T) {
	v := goshape.MustCompile(dsl.Array().Of(dsl.Number().Step(2)).MinLen(1))
	probes := []any{[]any{2.0, 4.0}, []any{}, []any{3.0}, []any{2.0, "x"}, 7.0}
	agree(t, v, roundTrip(t, v), probes)
}

func TestRoundTrip_QuantifiedObjectKeys(t *testing.T) {
	v := goshape.MustCompile(map[string]any{
		"*opt-.*": dsl.Number(),
		"*":       dsl.String(),
	})
	probes := []any{
		map[string]any{},
		map[string]any{"opt-a": 1.0, "note": "x"},
		map[string]any{"opt-a": "bad"},
		map[string]any{"free": 5.0},
	}
	agree(t, v, roundTrip(t, v), probes)
}

func TestRoundTrip_QuantifierMultiplicity(t *testing.T) {
	// at-least-one and at-most-one counts must survive the descriptor
	v := goshape.MustCompile(map[string]any{
		"+sn-.*":  dsl.Number(),
		"?ver-.*": dsl.String(),
	})
	probes := []any{
		map[string]any{},
		map[string]any{"sn-1": 1.0},
		map[string]any{"sn-1": 1.0, "sn-2": 2.0},
		map[string]any{"sn-1": "bad"},
		map[string]any{"sn-1": 1.0, "ver-a": "x"},
		map[string]any{"sn-1": 1.0, "ver-a": "x", "ver-b": "y"},
		map[string]any{"ver-a": "x"},
		map[string]any{"sn-1": 1.0, "other": true},
	}
	agree(t, v, roundTrip(t, v), probes)
}

func TestRoundTrip_SelfReference(t *testing.T) {
	v := goshape.MustCompile(map[string]any{
		"left":  []any{dsl.Number(), goshape.Self},
		"right": []any{dsl.Number(), goshape.Self},
	})
	probes := []any{
		map[string]any{"left": 3.0, "right": map[string]any{"left": 5.0, "right": 5.0}},
		map[string]any{"left": 3.0, "right": map[string]any{"left": 5.0, "right": "s"}},
		map[string]any{"left": 3.0},
	}
	agree(t, v, roundTrip(t, v), probes)
}

func TestRoundTrip_RegexpAndNull(t *testing.T) {
	v := goshape.MustCompile(map[string]any{
		"?tag":  dsl.String().Pattern(`^v\d+$`),
		"?gone": nil,
	})
	probes := []any{
		map[string]any{},
		map[string]any{"tag": "v1"},
		map[string]any{"tag": "x1"},
		map[string]any{"gone": nil},
		map[string]any{"gone": 1.0},
	}
	agree(t, v, roundTrip(t, v), probes)
}

func TestRoundTrip_ObjectLike(t *testing.T) {
	v := goshape.MustCompile(dsl.Object().Like(map[string]any{"a": 1}))
	probes := []any{
		map[string]any{"a": 1.0},
		map[string]any{"a": 2.0},
		map[string]any{"a": 1.0, "b": 2.0},
		"x",
	}
	agree(t, v, roundTrip(t, v), probes)
}

func TestDecode_ErrorOnUnknownConstruct(t *testing.T) {
	cases := []string{
		`{"allOf":[{"type":"string"}]}`,
		`{"not":{"type":"string"}}`,
		`{"$ref":"http://example.com/s.json"}`,
		`{"type":"quux"}`,
		`{"pattern":"["}`,
	}
	for _, c := range cases {
		_, err := codec.DecodeJSON([]byte(c))
		if err == nil {
			t.Fatalf("expected DecodeError for %s", c)
		}
		var de *codec.DecodeError
		if !errors.As(err, &de) {
			t.Fatalf("expected *DecodeError for %s, got %T", c, err)
		}
	}
}

func TestDecode_IntegerType(t *testing.T) {
	v, err := codec.DecodeJSON([]byte(`{"type":"integer","minimum":0}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !v.Matches(4.0) || v.Matches(4.5) || v.Matches(-1.0) {
		t.Fatalf("expected integer semantics via multipleOf 1")
	}
}

func TestDecode_LengthOnlyString(t *testing.T) {
	v, err := codec.DecodeJSON([]byte(`{"type":"string","minLength":2}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	// only the length is constrained, not the alphabet
	if !v.Matches("héllo") || !v.Matches("a b") {
		t.Fatalf("expected length-only descriptor to accept any alphabet")
	}
	if v.Matches("h") || v.Matches(5.0) {
		t.Fatalf("expected short string and non-string to be rejected")
	}
}

func TestDecode_BareSelfReferenceRejected(t *testing.T) {
	_, err := codec.DecodeJSON([]byte(`{"$ref":"#"}`))
	if err == nil {
		t.Fatalf("expected error for a descriptor that is only a self-reference")
	}
	var ce *goshape.CompileError
	if !errors.As(err, &ce) {
		t.Fatalf("expected *CompileError, got %T", err)
	}
}

func TestDecode_EmptySchemaAcceptsAnything(t *testing.T) {
	v, err := codec.DecodeJSON([]byte(`{}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	for _, p := range []any{nil, 1.0, "x", []any{}, map[string]any{}} {
		if !v.Matches(p) {
			t.Fatalf("expected empty schema to accept %v", p)
		}
	}
}

func TestDecodeYAML(t *testing.T) {
	doc := []byte(strings.TrimSpace(`
type: object
required: [name]
properties:
  name:
    type: string
  age:
    type: number
    minimum: 0
`))
	v, err := codec.DecodeYAML(doc)
	if err != nil {
		t.Fatalf("decode yaml: %v", err)
	}
	if !v.Matches(map[string]any{"name": "x", "age": 3}) {
		t.Fatalf("expected conforming value to pass")
	}
	if v.Matches(map[string]any{"age": 3}) || v.Matches(map[string]any{"name": "x", "age": -1}) {
		t.Fatalf("expected missing name or negative age to fail")
	}
}

func TestEncodeYAML_ProducesDecodableDocument(t *testing.T) {
	v := goshape.MustCompile(map[string]any{"name": dsl.String()})
	data, err := codec.EncodeYAML(v)
	if err != nil {
		t.Fatalf("encode yaml: %v", err)
	}
	back, err := codec.DecodeYAML(data)
	if err != nil {
		t.Fatalf("decode yaml: %v", err)
	}
	if !back.Matches(map[string]any{"name": "x"}) || back.Matches(map[string]any{}) {
		t.Fatalf("yaml round-trip lost conformance behavior")
	}
}

func TestEncode_IdentityFormsAreAnnotations(t *testing.T) {
	target := map[string]any{"a": 1}
	v := goshape.MustCompile(dsl.Object().Reference(target))
	s, err := codec.Encode(v)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if s.Description == "" {
		t.Fatalf("expected a best-effort annotation for the identity form")
	}
}
