package transclude

import (
	"errors"
	"testing"

	"github.com/assemyaml/assemyaml/assemble"
	"github.com/assemyaml/assemyaml/ir"
	"github.com/assemyaml/assemyaml/parse"

	"github.com/google/go-cmp/cmp"
)

func load(t *testing.T, src string) *ir.Node {
	t.Helper()
	node, err := parse.ParseString(src, parse.DocName("t"), parse.LocalTags(true))
	if err != nil {
		t.Fatal(err)
	}
	return node
}

func registry(t *testing.T, src string) *assemble.Registry {
	t.Helper()
	reg := assemble.NewRegistry()
	if err := assemble.ResolveAssemblies(load(t, src), reg); err != nil {
		t.Fatal(err)
	}
	return reg
}

func texts(n *ir.Node) []string {
	res := []string{}
	if n.Type == ir.ObjectType {
		for i := range n.Fields {
			res = append(res, n.Fields[i].ScalarText()+"="+n.Values[i].ScalarText())
		}
		return res
	}
	for _, v := range n.Values {
		res = append(res, v.ScalarText())
	}
	return res
}

const resources = `
- {!Assembly List: [a, b]}
- {!Assembly Dict: {x: 1, y: 2}}
- {!Assembly Str: hello}
`

func TestValueForm(t *testing.T) {
	reg := registry(t, resources)
	node := load(t, "l: !Transclude List\ns: !Transclude Str\nl2: [!Transclude List]\n")
	res, err := Resolve(node, reg)
	if err != nil {
		t.Fatal(err)
	}
	list, _ := reg.Lookup("List")
	if ir.Get(res, "l") != list || ir.Get(res, "l2").Values[0] != list {
		t.Errorf("list not spliced by reference")
	}
	if got := ir.Get(res, "s").String; got != "hello" {
		t.Errorf("s = %q", got)
	}
}

func TestRootTransclusion(t *testing.T) {
	reg := registry(t, resources)
	res, err := Resolve(load(t, "!Transclude Dict"), reg)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"x=1", "y=2"}, texts(res)); diff != "" {
		t.Errorf("root (-want +got):\n%s", diff)
	}
}

func TestMappingForm(t *testing.T) {
	reg := registry(t, resources)
	tests := []struct {
		name string
		src  string
		want []string
	}{
		{"null local", "v: {!Transclude List: ~}", []string{"a", "b"}},
		{"list local", "v: {!Transclude List: [z]}", []string{"z", "a", "b"}},
		{"dict local", "v: {!Transclude Dict: {w: 0}}", []string{"w=0", "x=1", "y=2"}},
		{"unregistered", "v: {!Transclude Missing: [only]}", []string{"only"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Resolve(load(t, tt.src), reg)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tt.want, texts(ir.Get(res, "v"))); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
	list, _ := reg.Lookup("List")
	if list.Len() != 2 {
		t.Errorf("registered value modified: len %d", list.Len())
	}
}

func TestErrors(t *testing.T) {
	reg := registry(t, resources)
	tests := []struct {
		name string
		src  string
		want error
	}{
		{"unknown", "v: !Transclude Nope", ErrUnknownAssembly},
		{"two entries", "v: {!Transclude List: [z], k: v}", ErrMalformedTransclusion},
		{"kind mismatch", "v: {!Transclude List: {k: v}}", assemble.ErrAssemblyTypeMismatch},
		{"duplicate key", "v: {!Transclude Dict: {x: 9}}", assemble.ErrDuplicateAssemblyKey},
		{"scalar", "v: {!Transclude Str: other}", assemble.ErrUnmergeableAssembly},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Resolve(load(t, tt.src), reg)
			if !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestNestedTransclusion(t *testing.T) {
	reg := registry(t, "- {!Assembly Inner: [1]}\n- {!Assembly Outer: {i: !Transclude Inner}}\n")
	res, err := Resolve(load(t, "o: !Transclude Outer\n"), reg)
	if err != nil {
		t.Fatal(err)
	}
	inner, _ := reg.Lookup("Inner")
	if ir.Get(ir.Get(res, "o"), "i") != inner {
		t.Errorf("nested transclusion not resolved")
	}
}

func TestRecursion(t *testing.T) {
	reg := registry(t, "- {!Assembly Self: {me: !Transclude Self}}\n")
	_, err := Resolve(load(t, "x: !Transclude Self\n"), reg)
	if !errors.Is(err, ErrRecursiveTransclusion) {
		t.Errorf("got %v", err)
	}
}

func TestUnreferenced(t *testing.T) {
	reg := registry(t, resources)
	r := NewResolver(reg)
	if _, err := r.Resolve(load(t, "a: !Transclude Str\nb: {!Transclude Missing: ~}\n")); err != nil {
		t.Fatal(err)
	}
	names := func(ns []*ir.Node) []string {
		res := []string{}
		for _, n := range ns {
			res = append(res, n.ScalarText())
		}
		return res
	}
	if diff := cmp.Diff([]string{"Str", "Missing"}, names(r.Referenced())); diff != "" {
		t.Errorf("referenced (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"List", "Dict"}, names(r.Unreferenced())); diff != "" {
		t.Errorf("unreferenced (-want +got):\n%s", diff)
	}
}
