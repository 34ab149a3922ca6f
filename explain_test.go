package goshape_test

import (
	"strings"
	"testing"

	goshape "github.com/goshape/goshape"
	"github.com/goshape/goshape/dsl"
)

func TestExplain_EmptyOnConformance(t *testing.T) {
	v := goshape.MustCompile(map[string]any{"name": dsl.String()})
	rep := v.Explain(map[string]any{"name": "x"})
	if len(rep) != 0 {
		t.Fatalf("expected empty report, got %v", rep)
	}
}

func TestExplain_NonEmptyOnFailure(t *testing.T) {
	v := goshape.MustCompile(map[string]any{"name": dsl.String(), "age": dsl.Number().Min(0)})
	rep := v.Explain(map[string]any{"name": 5, "age": -1})
	if len(rep) == 0 {
		t.Fatalf("expected a non-empty report")
	}
	if msg := rep["/name"]; msg == "" || !strings.Contains(msg, "string") {
		t.Fatalf("expected /name message naming the expected type, got %q", msg)
	}
	if msg := rep["/age"]; msg == "" {
		t.Fatalf("expected /age message, got %v", rep)
	}
}

func TestExplain_MissingRequiredProperty(t *testing.T) {
	v := goshape.MustCompile(map[string]any{"name": dsl.String()})
	rep := v.Explain(map[string]any{})
	if msg := rep["/name"]; !strings.Contains(msg, "required") {
		t.Fatalf("expected required-property message at /name, got %v", rep)
	}
}

func TestExplain_OrBranchesJoinedWithAnd(t *testing.T) {
	v := goshape.MustCompile([]any{dsl.Number(), dsl.String().Of("a-f")})
	rep := v.Explain(true)
	msg := rep["/"]
	if msg == "" {
		t.Fatalf("expected a message at the root, got %v", rep)
	}
	if !strings.Contains(msg, " AND ") {
		t.Fatalf("expected branch failures joined with AND, got %q", msg)
	}
	if !strings.Contains(msg, "number") || !strings.Contains(msg, "string") {
		t.Fatalf("expected each branch's reason, got %q", msg)
	}
}

func TestExplain_NestedPath(t *testing.T) {
	v := goshape.MustCompile(map[string]any{
		"items": dsl.Array().Of(dsl.Number()),
	})
	rep := v.Explain(map[string]any{"items": []any{1, "x", 3}})
	if msg := rep["/items/1"]; msg == "" {
		t.Fatalf("expected issue at /items/1, got %v", rep)
	}
}

func TestValidate_ReturnsIssues(t *testing.T) {
	v := goshape.MustCompile(map[string]any{"name": dsl.String()})
	err := v.Validate(map[string]any{"name": 1})
	if err == nil {
		t.Fatalf("expected error")
	}
	iss, ok := goshape.AsIssues(err)
	if !ok || len(iss) == 0 {
		t.Fatalf("expected Issues, got %T", err)
	}
	if iss[0].Path != "/name" || iss[0].Code != goshape.CodeInvalidType {
		t.Fatalf("unexpected issue %+v", iss[0])
	}
	if err := v.Validate(map[string]any{"name": "ok"}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
}

func TestValidate_NeverPanicsOnHostileValues(t *testing.T) {
	v := goshape.MustCompile(map[string]any{
		"name": dsl.String(),
		"+n.*": dsl.Number(),
	})
	hostile := []any{nil, 0, "", []any{nil}, map[string]any{"name": map[string]any{"deep": nil}}, make(chan int)}
	for _, val := range hostile {
		// a panic here fails the test by crashing it
		_ = v.Matches(val)
		_ = v.Explain(val)
	}
}
