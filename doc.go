package goshape

// Package goshape provides:
//
// - Pattern-based structural validation: Compile turns a declarative pattern
//   (literals, regexps, or-lists, quantified object keys, self-references)
//   into a reusable, immutable Validator
// - A stable error model via Issues (JSON Pointer, code, message) with an
//   Explain mode that maps each failing location to a human-readable reason
// - Chainable constraint builders under dsl/ for numeric, string, array,
//   object, and function values
// - A bidirectional JSON Schema codec under codec/
//
// Design policy:
// - Keep only public APIs in the root package; put detailed implementations
//   under internal/.
// - Place the builder DSL under dsl/, the schema codec under codec/.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//  v, err := goshape.Compile(map[string]any{
//      "name": dsl.String(),
//      "?age": dsl.Number().Min(0),
//  })
//  ok := v.Matches(value)
//  why := v.Explain(value)
