package goshape

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/goshape/goshape/internal/engine"
	js "github.com/goshape/goshape/jsonschema"
)

// quantifier is the multiplicity constraint parsed from an object-pattern
// key's leading character.
type quantifier int

const (
	quantRequired   quantifier = iota // plain key
	quantOptional                     // ?key
	quantAtLeastOne                   // +key
	quantAny                          // *key (with a non-empty remainder)
	quantCatchAll                     // bare *
)

// propertyMatcher is the compiled entry for one object-pattern key.
type propertyMatcher struct {
	key     string         // original pattern key, for messages
	expr    string         // key with the quantifier prefix stripped
	name    *regexp.Regexp // anchored name pattern; nil for the catch-all
	literal string         // non-empty when the name pattern is a literal property name
	quant   quantifier
	sub     *Validator
}

type objectMatcher struct {
	matchers []propertyMatcher
	catchAll int // index into matchers, -1 when absent
}

// compileObject compiles a mapping of quantifier-prefixed regex keys into an
// ordered property-matcher list. Keys are processed in sorted order so issue
// ordering and descriptor layout are deterministic.
func (s *session) compileObject(mapping map[string]any) (*Validator, error) {
	keys := make([]string, 0, len(mapping))
	for k := range mapping {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	o := &objectMatcher{catchAll: -1}
	for _, k := range keys {
		sub, err := s.compile(mapping[k])
		if err != nil {
			return nil, err
		}
		pm, err := parsePropertyKey(k)
		if err != nil {
			return nil, err
		}
		pm.sub = sub
		if pm.quant == quantCatchAll {
			o.catchAll = len(o.matchers)
		}
		o.matchers = append(o.matchers, pm)
	}
	return NewValidator(o.check, o.descriptor()), nil
}

// parsePropertyKey splits off the optional leading quantifier and compiles
// the remainder as an anchored name regexp.
func parsePropertyKey(key string) (propertyMatcher, error) {
	pm := propertyMatcher{key: key, quant: quantRequired}
	expr := key
	switch {
	case key == "*":
		pm.quant = quantCatchAll
		return pm, nil
	case strings.HasPrefix(key, "*"):
		pm.quant = quantAny
		expr = key[1:]
	case strings.HasPrefix(key, "+"):
		pm.quant = quantAtLeastOne
		expr = key[1:]
	case strings.HasPrefix(key, "?"):
		pm.quant = quantOptional
		expr = key[1:]
	}
	pm.expr = expr
	re, err := regexp.Compile("^(?:" + expr + ")$")
	if err != nil {
		return pm, &CompileError{Key: key, Reason: "malformed property name pattern", Cause: err}
	}
	pm.name = re
	if lit, ok := literalName(expr); ok {
		pm.literal = lit
	}
	return pm, nil
}

// literalName reports whether expr denotes exactly one literal property name
// (no unescaped regex metacharacters), returning the unescaped name.
func literalName(expr string) (string, bool) {
	var b strings.Builder
	escaped := false
	for _, r := range expr {
		if escaped {
			b.WriteRune(r)
			escaped = false
			continue
		}
		if r == '\\' {
			escaped = true
			continue
		}
		if strings.ContainsRune(`.+*?()|[]{}^$`, r) {
			return "", false
		}
		b.WriteRune(r)
	}
	if escaped {
		return "", false
	}
	return b.String(), true
}

func (o *objectMatcher) check(path string, v any, iss *Issues) bool {
	m, ok := engine.AsObject(v)
	if !ok {
		return Fail(iss, path, CodeInvalidType, map[string]string{"expected": "object", "got": FormatValue(v)})
	}
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	result := true
	counts := make([]int, len(o.matchers))
	for _, name := range names {
		val := m[name]
		claimed := false
		for i := range o.matchers {
			pm := &o.matchers[i]
			if pm.quant == quantCatchAll || !pm.name.MatchString(name) {
				continue
			}
			claimed = true
			counts[i]++
			if !pm.sub.check(ChildPath(path, name), val, iss) {
				if iss == nil {
					return false
				}
				result = false
			}
		}
		// Unclaimed properties are allowed in the open world; a declared
		// catch-all closes it.
		if !claimed && o.catchAll >= 0 {
			counts[o.catchAll]++
			if !o.matchers[o.catchAll].sub.check(ChildPath(path, name), val, iss) {
				if iss == nil {
					return false
				}
				result = false
			}
		}
	}
	for i := range o.matchers {
		pm := &o.matchers[i]
		switch pm.quant {
		case quantRequired:
			// Plain keys require presence only when they name one literal
			// property; a plain regex key just constrains whatever matches.
			if pm.literal != "" && counts[i] == 0 {
				if iss == nil {
					return false
				}
				result = Fail(iss, ChildPath(path, pm.literal), CodeRequired, map[string]string{"key": pm.literal})
			}
		case quantAtLeastOne:
			if counts[i] == 0 {
				if iss == nil {
					return false
				}
				result = Fail(iss, path, CodeRequired, map[string]string{"key": pm.key})
			}
		case quantOptional:
			if counts[i] > 1 {
				if iss == nil {
					return false
				}
				result = Fail(iss, path, CodeTooMany, map[string]string{"key": pm.key, "got": strconv.Itoa(counts[i])})
			}
		}
	}
	return result
}

func (o *objectMatcher) descriptor() *js.Schema {
	out := &js.Schema{Type: "object"}
	for i := range o.matchers {
		pm := &o.matchers[i]
		sub := pm.sub.js
		switch {
		case pm.quant == quantCatchAll:
			if !sub.IsEmpty() {
				out.AdditionalProperties = sub
			}
		case pm.literal != "" && pm.quant == quantRequired:
			if out.Properties == nil {
				out.Properties = map[string]*js.Schema{}
			}
			out.Properties[pm.literal] = sub
			out.Required = append(out.Required, pm.literal)
		case pm.literal != "" && pm.quant == quantOptional:
			if out.Properties == nil {
				out.Properties = map[string]*js.Schema{}
			}
			out.Properties[pm.literal] = sub
		default:
			if out.PatternProperties == nil {
				out.PatternProperties = map[string]*js.Schema{}
			}
			// Quantifier multiplicity rides along as a vendor extension so the
			// codec can reconstruct the key prefix.
			switch pm.quant {
			case quantAtLeastOne:
				cp := *sub
				cp.MinMatches = js.Int(1)
				out.PatternProperties[pm.expr] = &cp
			case quantOptional:
				cp := *sub
				cp.MaxMatches = js.Int(1)
				out.PatternProperties[pm.expr] = &cp
			default:
				out.PatternProperties[pm.expr] = sub
			}
		}
	}
	sort.Strings(out.Required)
	return out
}
