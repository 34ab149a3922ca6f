package goshape

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	CodeInvalidType     = "invalid_type"
	CodeInvalidInstance = "invalid_instance"
	CodeRequired        = "required"
	CodeTooSmall        = "too_small"
	CodeTooBig          = "too_big"
	CodeTooShort        = "too_short"
	CodeTooLong         = "too_long"
	CodeTooMany         = "too_many"
	CodePattern         = "pattern"
	CodeNotEqual        = "not_equal"
	CodeNotMultipleOf   = "not_multiple_of"
	CodeNotIdentical    = "not_identical"
	CodeNoneOf          = "none_of"
)

// Issue represents a single conformance failure.
type Issue struct {
	Path    string // JSON Pointer (for example: /items/2/price).
	Code    string // One of the codes listed above.
	Message string
	Hint    string // Optional: remediation hints.
	Cause   error  // Optional: underlying error.
	// Params carries structured parameters (e.g., {"expected":"number",
	// "got":"\"x\""}) for i18n and observability.
	Params map[string]string
}

// Issues is a collection of conformance failures that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. invalid_type at /path
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// CompileError reports that a pattern is not one of the recognized forms or
// that an object-pattern key is malformed. It is returned by Compile, never
// raised during validation.
type CompileError struct {
	Pattern any    // offending pattern fragment
	Key     string // object-pattern key, when the failure is key syntax
	Reason  string
	Cause   error
}

func (e *CompileError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("goshape: compile: key %q: %s", e.Key, e.Reason)
	}
	return "goshape: compile: " + e.Reason
}

func (e *CompileError) Unwrap() error { return e.Cause }
