package assemble

import (
	"errors"
	"strings"
	"testing"

	"github.com/assemyaml/assemyaml/ir"
	"github.com/assemyaml/assemyaml/parse"

	"github.com/google/go-cmp/cmp"
)

func mustParse(t *testing.T, name, src string) *ir.Node {
	t.Helper()
	node, err := parse.ParseString(src, parse.DocName(name), parse.LocalTags(true))
	if err != nil {
		t.Fatal(err)
	}
	return node
}

// native converts a resolved tree to plain Go values for comparison.
func native(n *ir.Node) any {
	switch n.Type {
	case ir.NullType:
		return nil
	case ir.BoolType:
		return n.Bool
	case ir.NumberType:
		if n.Int64 != nil {
			return *n.Int64
		}
		if n.Float64 != nil {
			return *n.Float64
		}
		return n.Number
	case ir.StringType:
		return n.String
	case ir.ArrayType:
		res := []any{}
		for _, v := range n.Values {
			res = append(res, native(v))
		}
		return res
	case ir.ObjectType:
		res := [][2]any{}
		for i := range n.Fields {
			res = append(res, [2]any{n.Fields[i].ScalarText(), native(n.Values[i])})
		}
		return res
	}
	return "marker:" + n.ScalarText()
}

func entry(t *testing.T, reg *Registry, name string) *ir.Node {
	t.Helper()
	v, ok := reg.Lookup(name)
	if !ok {
		t.Fatalf("no assembly %q", name)
	}
	return v
}

func TestNoAssemblies(t *testing.T) {
	src := "a: [1, {b: c}]\nd: !Ref e\n? [k]\n: v\n"
	node := mustParse(t, "doc", src)
	before := node.Clone()
	reg := NewRegistry()
	if err := ResolveAssemblies(node, reg); err != nil {
		t.Fatal(err)
	}
	if !ir.Equal(before, node) {
		t.Errorf("tree changed")
	}
	if reg.Len() != 0 {
		t.Errorf("registry has %d entries", reg.Len())
	}
}

func TestListMerge(t *testing.T) {
	node := mustParse(t, "doc", `
x: {!Assembly X: [1, 2]}
y:
  - {!Assembly X: [3]}
`)
	reg := NewRegistry()
	if err := ResolveAssemblies(node, reg); err != nil {
		t.Fatal(err)
	}
	want := []any{int64(1), int64(2), int64(3)}
	if diff := cmp.Diff(want, native(entry(t, reg, "X"))); diff != "" {
		t.Errorf("registry (-want +got):\n%s", diff)
	}
	x := ir.Get(node, "x")
	y := ir.Get(node, "y").Values[0]
	if x != y || x != entry(t, reg, "X") {
		t.Errorf("splice points do not share the registry value")
	}
}

func TestDictMerge(t *testing.T) {
	node := mustParse(t, "doc", `
- {!Assembly Y: {a: 1}}
- {!Assembly Y: {b: 2}}
`)
	reg := NewRegistry()
	if err := ResolveAssemblies(node, reg); err != nil {
		t.Fatal(err)
	}
	want := [][2]any{{"a", int64(1)}, {"b", int64(2)}}
	if diff := cmp.Diff(want, native(entry(t, reg, "Y"))); diff != "" {
		t.Errorf("registry (-want +got):\n%s", diff)
	}
}

func TestDictConflict(t *testing.T) {
	node := mustParse(t, "doc.yaml", "- {!Assembly Y: {a: 1}}\n- {!Assembly Y: {c: 3, a: 2}}\n")
	reg := NewRegistry()
	err := ResolveAssemblies(node, reg)
	if !errors.Is(err, ErrDuplicateAssemblyKey) {
		t.Fatalf("got %v", err)
	}
	var aerr *Error
	if !errors.As(err, &aerr) || len(aerr.Marks) != 2 {
		t.Fatalf("expected two marks, got %#v", err)
	}
	want := "Duplicate key 'a' for assembly Y: first occurence at doc.yaml:1:17, second occurrence at doc.yaml:2:17."
	if err.Error() != want {
		t.Errorf("message\n got %q\nwant %q", err.Error(), want)
	}
	if aerr.Path != "$[1]" {
		t.Errorf("path %q", aerr.Path)
	}
	got := native(entry(t, reg, "Y"))
	if diff := cmp.Diff([][2]any{{"a", int64(1)}}, got); diff != "" {
		t.Errorf("partial merge (-want +got):\n%s", diff)
	}
}

func TestScalarReoccurrence(t *testing.T) {
	node := mustParse(t, "doc", "- {!Assembly Z: 5}\n- {!Assembly Z: 5}\n")
	err := ResolveAssemblies(node, NewRegistry())
	if !errors.Is(err, ErrUnmergeableAssembly) {
		t.Fatalf("got %v", err)
	}
	if !strings.HasPrefix(err.Error(), "Cannot set value for assembly Z: int at doc:1:17, int at doc:2:17") {
		t.Errorf("message %q", err.Error())
	}
}

func TestTypeMismatch(t *testing.T) {
	tests := []struct {
		name string
		src  string
		msg  string
	}{
		{"list then dict", "- {!Assembly T: [1]}\n- {!Assembly T: {a: 1}}\n", "Mismatched assembly types for T: list at"},
		{"dict then str", "- {!Assembly T: {a: 1}}\n- {!Assembly T: s}\n", "Mismatched assembly types for T: dict at"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ResolveAssemblies(mustParse(t, "doc", tt.src), NewRegistry())
			if !errors.Is(err, ErrAssemblyTypeMismatch) {
				t.Fatalf("got %v", err)
			}
			if !strings.HasPrefix(err.Error(), tt.msg) {
				t.Errorf("message %q", err.Error())
			}
		})
	}
}

func TestShape(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want error
		msg  string
	}{
		{"two entries", "x: {!Assembly Foo: 1, other: 2}\n", ErrMalformedAssembly, "Assembly must be a single-entry mapping"},
		{"sequence name", "x:\n  ? !Assembly [1, 2]\n  : 1\n", ErrInvalidAssemblyName, "Assembly name must be a scalar"},
		{"mapping name", "x:\n  ? !Assembly {a: b}\n  : 1\n", ErrInvalidAssemblyName, "Assembly name must be a scalar"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ResolveAssemblies(mustParse(t, "doc", tt.src), NewRegistry())
			if !errors.Is(err, tt.want) {
				t.Fatalf("got %v, want %v", err, tt.want)
			}
			if !strings.HasPrefix(err.Error(), tt.msg+" doc:") {
				t.Errorf("message %q", err.Error())
			}
		})
	}
}

func TestAliasing(t *testing.T) {
	node := mustParse(t, "doc", "a: {!Assembly W: [1]}\nb: {!Assembly W: [2]}\n")
	reg := NewRegistry()
	if err := ResolveAssemblies(node, reg); err != nil {
		t.Fatal(err)
	}
	if err := entry(t, reg, "W").Append(ir.FromInt(3)); err != nil {
		t.Fatal(err)
	}
	want := []any{int64(1), int64(2), int64(3)}
	for _, k := range []string{"a", "b"} {
		if diff := cmp.Diff(want, native(ir.Get(node, k))); diff != "" {
			t.Errorf("%s (-want +got):\n%s", k, diff)
		}
	}
}

func TestCrossDocument(t *testing.T) {
	a := mustParse(t, "a", "x: {!Assembly Shared: [1]}\n")
	b := mustParse(t, "b", "y: [{!Assembly Shared: [2]}]\n")
	reg := NewRegistry()
	for _, doc := range []*ir.Node{a, b} {
		if err := ResolveAssemblies(doc, reg); err != nil {
			t.Fatal(err)
		}
	}
	want := []any{int64(1), int64(2)}
	if diff := cmp.Diff(want, native(entry(t, reg, "Shared"))); diff != "" {
		t.Errorf("registry (-want +got):\n%s", diff)
	}
	if ir.Get(a, "x") != ir.Get(b, "y").Values[0] {
		t.Errorf("documents do not share the merged value")
	}
}

func TestNested(t *testing.T) {
	node := mustParse(t, "doc", `
!Assembly Outer:
  - {!Assembly Inner: {k: v}}
  - plain
`)
	reg := NewRegistry()
	root, err := Resolve(node, reg)
	if err != nil {
		t.Fatal(err)
	}
	if root != entry(t, reg, "Outer") {
		t.Errorf("root not replaced by its assembly value")
	}
	if root.Values[0] != entry(t, reg, "Inner") {
		t.Errorf("nested assembly not spliced")
	}
	names := []string{}
	for _, n := range reg.Names() {
		names = append(names, n.String)
	}
	if diff := cmp.Diff([]string{"Outer", "Inner"}, names); diff != "" {
		t.Errorf("names (-want +got):\n%s", diff)
	}
}

func TestMarkerKeyNotPlain(t *testing.T) {
	node := mustParse(t, "doc", "x: {Foo: [1]}\ny: {!Assembly Foo: [2]}\n")
	reg := NewRegistry()
	if err := ResolveAssemblies(node, reg); err != nil {
		t.Fatal(err)
	}
	if got := ir.Get(node, "x").Type; got != ir.ObjectType {
		t.Errorf("plain key treated as assembly: %v", got)
	}
	if reg.Len() != 1 {
		t.Errorf("registry len %d", reg.Len())
	}
}

func TestAnchoredAssembly(t *testing.T) {
	node := mustParse(t, "doc", "a: &x {!Assembly A: [1]}\nb: *x\n")
	reg := NewRegistry()
	if err := ResolveAssemblies(node, reg); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]any{int64(1)}, native(entry(t, reg, "A"))); diff != "" {
		t.Errorf("alias merged twice (-want +got):\n%s", diff)
	}
}

func TestRecursive(t *testing.T) {
	node := mustParse(t, "doc", "!Assembly Loop:\n  - {!Assembly Loop: [1]}\n")
	_, err := Resolve(node, NewRegistry())
	if !errors.Is(err, ErrRecursiveAssembly) {
		t.Fatalf("got %v", err)
	}
}
