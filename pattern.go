package goshape

import (
	"fmt"
	"reflect"
	"regexp"

	"github.com/goshape/goshape/internal/engine"
)

// Schemer is implemented by values that compile themselves into a Validator:
// the dsl builders and Validator itself. A Schemer anywhere inside a pattern
// delegates conformance to the Validator it produces.
type Schemer interface {
	Schema() (*Validator, error)
}

type anythingMarker struct{}
type selfMarker struct{}

// Anything is the pattern that accepts every value. Inside an or-list it is
// reinterpreted as a reference to the schema under construction, which is the
// idiomatic way to write recursive tree-shaped patterns.
var Anything = anythingMarker{}

// Self refers to the schema currently being compiled, enabling explicitly
// recursive patterns.
var Self = selfMarker{}

// formKind enumerates the pattern forms the compiler dispatches over.
type formKind int

const (
	formSchemer formKind = iota
	formType
	formRegexp
	formOr
	formObject
	formLiteral
	formNull
	formAnything
	formSelf
)

// form is the closed tagged variant a raw pattern is classified into at the
// API boundary. Only the field matching kind is populated.
type form struct {
	kind    formKind
	schemer Schemer
	typ     reflect.Type
	re      *regexp.Regexp
	or      []any
	obj     map[string]any
	lit     any
}

// classify inspects a raw pattern once and assigns it one of the recognized
// forms. Dispatch order is significant: a Schemer wins over everything, a
// reflect.Type over a map, and so on.
func classify(p any) (form, error) {
	if p == nil {
		return form{kind: formNull}, nil
	}
	switch v := p.(type) {
	case Schemer:
		return form{kind: formSchemer, schemer: v}, nil
	case reflect.Type:
		return form{kind: formType, typ: v}, nil
	case *regexp.Regexp:
		return form{kind: formRegexp, re: v}, nil
	case anythingMarker:
		return form{kind: formAnything}, nil
	case selfMarker:
		return form{kind: formSelf}, nil
	case bool, string:
		return form{kind: formLiteral, lit: v}, nil
	}
	if _, ok := engine.AsNumber(p); ok {
		return form{kind: formLiteral, lit: p}, nil
	}
	if m, ok := engine.AsObject(p); ok {
		return form{kind: formObject, obj: m}, nil
	}
	if s, ok := engine.AsSlice(p); ok {
		return form{kind: formOr, or: s}, nil
	}
	return form{}, &CompileError{
		Pattern: p,
		Reason:  fmt.Sprintf("unsupported pattern of type %T", p),
	}
}
