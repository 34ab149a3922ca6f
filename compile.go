package goshape

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/goshape/goshape/i18n"
	"github.com/goshape/goshape/internal/engine"
	js "github.com/goshape/goshape/jsonschema"
)

// Compile turns a declarative pattern into a reusable Validator. It fails
// fast with *CompileError when the pattern is not one of the recognized
// forms; conformance mismatches are never compile errors.
//
// Each call gets its own compilation session, so concurrent Compile calls
// are independent: self-references always bind to the schema produced by the
// Compile invocation they appear in.
func Compile(pattern any) (*Validator, error) {
	s := &session{}
	v, err := s.compile(pattern)
	if err != nil {
		return nil, err
	}
	// A root that is nothing but a self-reference has no base case and can
	// never terminate a Matches call.
	if s.selfish[v] {
		return nil, &CompileError{Pattern: pattern, Reason: "pattern reduces to a bare self-reference"}
	}
	s.root = v
	return v, nil
}

// MustCompile is like Compile but panics on error, mirroring
// regexp.MustCompile for patterns known to be well-formed at authoring time.
func MustCompile(pattern any) *Validator {
	v, err := Compile(pattern)
	if err != nil {
		panic(err)
	}
	return v
}

// session carries the deferred self-reference cell through one top-level
// Compile call. The cell is assigned exactly once, after the root Validator
// exists; self-referencing validators dereference it lazily at validation
// time, which is what lets tree-shaped recursive patterns compile in finite
// time.
type session struct {
	root *Validator
	// selfish marks validators that are pure self-references (or or-lists of
	// nothing else), so Compile can refuse them as roots.
	selfish map[*Validator]bool
}

func (s *session) markSelfish(v *Validator) {
	if s.selfish == nil {
		s.selfish = map[*Validator]bool{}
	}
	s.selfish[v] = true
}

func (s *session) compile(pattern any) (*Validator, error) {
	f, err := classify(pattern)
	if err != nil {
		return nil, err
	}
	switch f.kind {
	case formSchemer:
		return f.schemer.Schema()
	case formType:
		return compileType(f.typ), nil
	case formRegexp:
		return compileRegexp(f.re), nil
	case formOr:
		return s.compileOr(f.or)
	case formObject:
		return s.compileObject(f.obj)
	case formLiteral:
		return compileLiteral(f.lit), nil
	case formNull:
		return compileNull(), nil
	case formAnything:
		return compileAnything(), nil
	default: // formSelf
		return s.selfValidator(), nil
	}
}

// selfValidator forwards to the session's root once it is bound. Before the
// top-level compile completes the cell is empty, and since self-references
// are only dereferenced at validation time that window is never observed by
// callers of Compile.
func (s *session) selfValidator() *Validator {
	v := NewValidator(func(path string, v any, iss *Issues) bool {
		if s.root == nil {
			return Fail(iss, path, CodeNoneOf, map[string]string{"branches": "unbound self-reference"})
		}
		return s.root.check(path, v, iss)
	}, &js.Schema{Ref: "#"})
	s.markSelfish(v)
	return v
}

func compileType(t reflect.Type) *Validator {
	return NewValidator(func(path string, v any, iss *Issues) bool {
		rt := reflect.TypeOf(v)
		if rt == nil {
			return Fail(iss, path, CodeInvalidInstance, map[string]string{"expected": t.String(), "got": "null"})
		}
		ok := rt == t
		if !ok && t.Kind() == reflect.Interface {
			ok = rt.Implements(t)
		}
		if !ok {
			ok = rt.AssignableTo(t)
		}
		if !ok {
			return Fail(iss, path, CodeInvalidInstance, map[string]string{"expected": t.String(), "got": rt.String()})
		}
		return true
	}, &js.Schema{Description: "go type " + t.String()})
}

func compileRegexp(re *regexp.Regexp) *Validator {
	return NewValidator(func(path string, v any, iss *Issues) bool {
		str, ok := v.(string)
		if !ok {
			return Fail(iss, path, CodeInvalidType, map[string]string{"expected": "string", "got": FormatValue(v)})
		}
		if !re.MatchString(str) {
			return Fail(iss, path, CodePattern, map[string]string{"expected": re.String(), "got": FormatValue(v)})
		}
		return true
	}, &js.Schema{Type: "string", Pattern: re.String()})
}

func compileLiteral(lit any) *Validator {
	return NewValidator(func(path string, v any, iss *Issues) bool {
		if !engine.DeepEqual(lit, v) {
			return Fail(iss, path, CodeNotEqual, map[string]string{"expected": FormatValue(lit), "got": FormatValue(v)})
		}
		return true
	}, &js.Schema{Enum: []any{lit}})
}

func compileNull() *Validator {
	return NewValidator(func(path string, v any, iss *Issues) bool {
		if !engine.IsNil(v) {
			return Fail(iss, path, CodeNotEqual, map[string]string{"expected": "null", "got": FormatValue(v)})
		}
		return true
	}, &js.Schema{Type: "null"})
}

func compileAnything() *Validator {
	return NewValidator(func(string, any, *Issues) bool { return true }, &js.Schema{})
}

// compileOr builds the "any one of" validator for an array pattern. Two
// elements receive a special reading here and nowhere else: a nested slice
// means deep-equality against that slice, and Anything means a reference to
// the schema under construction.
func (s *session) compileOr(elems []any) (*Validator, error) {
	subs := make([]*Validator, 0, len(elems))
	for _, el := range elems {
		if _, ok := el.(anythingMarker); ok {
			subs = append(subs, s.selfValidator())
			continue
		}
		if _, isSchemer := el.(Schemer); !isSchemer {
			if lit, ok := engine.AsSlice(el); ok {
				subs = append(subs, compileLiteral(lit))
				continue
			}
		}
		sub, err := s.compile(el)
		if err != nil {
			return nil, err
		}
		subs = append(subs, sub)
	}
	check := func(path string, v any, iss *Issues) bool {
		for _, sub := range subs {
			if sub.check(path, v, nil) {
				return true
			}
		}
		if iss == nil {
			return false
		}
		// Re-run every branch in collection mode and fold the failures into
		// one conjunction, so the caller sees why each alternative was ruled
		// out.
		parts := make([]string, 0, len(subs))
		for _, sub := range subs {
			var branch Issues
			sub.check(path, v, &branch)
			parts = append(parts, renderBranch(path, branch))
		}
		return Fail(iss, path, CodeNoneOf, map[string]string{"branches": strings.Join(parts, " AND ")})
	}
	v := NewValidator(check, orDescriptor(subs))
	allSelf := len(subs) > 0
	for _, sub := range subs {
		if !s.selfish[sub] {
			allSelf = false
			break
		}
	}
	if allSelf {
		s.markSelfish(v)
	}
	return v, nil
}

// renderBranch flattens one or-branch's issues into a single clause.
func renderBranch(base string, iss Issues) string {
	if len(iss) == 0 {
		return i18n.T(CodeNoneOf, nil)
	}
	parts := make([]string, 0, len(iss))
	for _, it := range iss {
		if it.Path != base {
			parts = append(parts, "at "+it.Path+": "+it.Message)
			continue
		}
		parts = append(parts, it.Message)
	}
	return strings.Join(parts, "; ")
}

// orDescriptor merges branch descriptors: pure literal branches collapse
// into a single enum, anything richer becomes anyOf.
func orDescriptor(subs []*Validator) *js.Schema {
	enum := make([]any, 0, len(subs))
	literalOnly := true
	for _, sub := range subs {
		d := sub.js
		if len(d.Enum) == 1 && d.Type == "" && d.Ref == "" && d.Pattern == "" &&
			d.Minimum == nil && d.Maximum == nil && len(d.Properties) == 0 &&
			len(d.AnyOf) == 0 && d.Items == nil {
			enum = append(enum, d.Enum[0])
			continue
		}
		literalOnly = false
		break
	}
	if literalOnly && len(enum) == len(subs) {
		return &js.Schema{Enum: enum}
	}
	out := &js.Schema{AnyOf: make([]*js.Schema, 0, len(subs))}
	for _, sub := range subs {
		out.AnyOf = append(out.AnyOf, sub.js)
	}
	return out
}
