package goshape_test

import (
	"testing"

	goshape "github.com/goshape/goshape"
	"github.com/goshape/goshape/dsl"
)

func treePattern(leaf any) map[string]any {
	return map[string]any{
		"left":  []any{leaf, goshape.Self},
		"right": []any{leaf, goshape.Self},
	}
}

func TestSelf_BinaryTree(t *testing.T) {
	tree := goshape.MustCompile(treePattern(dsl.Number()))

	if !tree.Matches(map[string]any{"left": 3, "right": map[string]any{"left": 5, "right": 5}}) {
		t.Fatalf("expected two-level tree to conform")
	}
	if tree.Matches(map[string]any{"left": 3, "right": map[string]any{"left": 5, "right": "s"}}) {
		t.Fatalf("expected string leaf to be rejected")
	}
}

func TestSelf_ArbitraryDepth(t *testing.T) {
	tree := goshape.MustCompile(treePattern(dsl.Number()))

	// build a left-spine of depth 50
	node := map[string]any{"left": 1, "right": 1}
	for i := 0; i < 50; i++ {
		node = map[string]any{"left": node, "right": 0}
	}
	if !tree.Matches(node) {
		t.Fatalf("expected deep tree to conform")
	}
	node["right"] = "leafless"
	if tree.Matches(node) {
		t.Fatalf("expected corrupted deep tree to fail")
	}
}

func TestSelf_AnythingInsideOrIsSelfReference(t *testing.T) {
	// the implicit idiom: Anything inside an or-list refers to the schema
	// under construction
	tree := goshape.MustCompile(map[string]any{
		"value": dsl.Number(),
		"?next": []any{nil, goshape.Anything},
	})
	list := map[string]any{
		"value": 1,
		"next":  map[string]any{"value": 2, "next": nil},
	}
	if !tree.Matches(list) {
		t.Fatalf("expected linked list to conform")
	}
	bad := map[string]any{
		"value": 1,
		"next":  map[string]any{"value": "x", "next": nil},
	}
	if tree.Matches(bad) {
		t.Fatalf("expected bad nested node to fail")
	}
}

func TestSelf_IndependentSessions(t *testing.T) {
	// two top-level compiles must not share a self-reference slot
	a := goshape.MustCompile(map[string]any{"a": dsl.Number(), "?sub": []any{nil, goshape.Self}})
	b := goshape.MustCompile(map[string]any{"b": dsl.String(), "?sub": []any{nil, goshape.Self}})

	if !a.Matches(map[string]any{"a": 1, "sub": map[string]any{"a": 2}}) {
		t.Fatalf("expected a's self to resolve to a")
	}
	if a.Matches(map[string]any{"a": 1, "sub": map[string]any{"b": "x"}}) {
		t.Fatalf("expected a's self not to accept b-shaped nodes")
	}
	if !b.Matches(map[string]any{"b": "x", "sub": map[string]any{"b": "y"}}) {
		t.Fatalf("expected b's self to resolve to b")
	}
}

func TestSelf_TopLevelAnythingIsNotSelf(t *testing.T) {
	// outside an or-list, Anything is just the universal pattern
	v := goshape.MustCompile(map[string]any{"meta": goshape.Anything})
	if !v.Matches(map[string]any{"meta": 42}) {
		t.Fatalf("expected Anything property to accept a number")
	}
}
