package parse

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/assemyaml/assemyaml/ir"
	"github.com/assemyaml/assemyaml/marker"

	"github.com/google/go-cmp/cmp"
)

type parseTest struct {
	in string
	e  error
}

func TestParseOK(t *testing.T) {
	pts := []parseTest{
		{in: `null`},
		{in: `true`},
		{in: `22`},
		{in: `1e14`},
		{in: `"hello"`},
		{in: `hello`},
		{in: "|\n  z\n"},
		{in: `[a,b]`},
		{in: `[[[a],b],c]`},
		{in: `!Ref a`},
		{in: `!Ref []`},
		{in: "# comment\n[0, !Ref a, 1]"},
		{in: "a: 1\nb: [x, y]\n"},
		{in: "a: &x [1]\nb: *x\n"},
		{in: "!<tag:assemyaml.nz,2017:Assembly> Foo: [1]\n"},
	}
	for _, pt := range pts {
		if _, err := ParseString(pt.in); err != nil {
			t.Errorf("%q: %v", pt.in, err)
		}
	}
}

func TestParseErrors(t *testing.T) {
	deep := strings.Repeat("[", 20) + strings.Repeat("]", 20)
	pts := []parseTest{
		{in: "a: 1\na: 2\n", e: ErrDuplicateKey},
		{in: "[a, b", e: ErrParse},
		{in: deep, e: ErrMaxDepth},
	}
	for _, pt := range pts {
		_, err := ParseString(pt.in, MaxDepth(10))
		if !errors.Is(err, pt.e) {
			t.Errorf("%q: got %v, want %v", pt.in, err, pt.e)
		}
	}
}

func TestScalarTypes(t *testing.T) {
	node, err := ParseString(`[~, yes-no, TRUE, 0x1F, 1_000, 1.5, .inf, "12", 12, !Ref x, !!binary aGk=]`)
	if err != nil {
		t.Fatal(err)
	}
	got := []string{}
	for _, v := range node.Values {
		got = append(got, v.Type.String()+":"+v.Tag+":"+v.ScalarText())
	}
	want := []string{
		"Null::null",
		"String::yes-no",
		"Bool::true",
		"Number::31",
		"Number::1000",
		"Number::1.5",
		"Number::+Inf",
		"String::12",
		"Number::12",
		"String:!Ref:x",
		"String:!!binary:aGk=",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("scalar types (-want +got):\n%s", diff)
	}
	if !math.IsInf(*node.Values[6].Float64, 1) {
		t.Errorf("expected +Inf")
	}
}

func TestPositions(t *testing.T) {
	node, err := ParseString("a:\n  - x\n  - yy\nb: 3\n", DocName("t.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	seq := ir.Get(node, "a")
	if got := seq.Start.String(); got != "t.yaml:2:3" {
		t.Errorf("seq start %s", got)
	}
	if got := seq.Values[1].Start.String(); got != "t.yaml:3:5" {
		t.Errorf("elem start %s", got)
	}
	if got := seq.End.String(); got != "t.yaml:3:7" {
		t.Errorf("seq end %s", got)
	}
	if got := node.Fields[1].Start.String(); got != "t.yaml:4:1" {
		t.Errorf("key start %s", got)
	}
}

func TestMarkers(t *testing.T) {
	src := "x: {!Assembly Foo: [1]}\ny: !Transclude Foo\n"

	node, err := ParseString(src)
	if err != nil {
		t.Fatal(err)
	}
	if k := marker.SoleKey(ir.Get(node, "x")); marker.IsAssemblyPoint(k) {
		t.Errorf("local tag recognized without opt-in")
	}
	if y := ir.Get(node, "y"); y.Type != ir.StringType || y.Tag != "!Transclude" {
		t.Errorf("unrecognized local tag should pass through, got %v %q", y.Type, y.Tag)
	}

	node, err = ParseString(src, LocalTags(true))
	if err != nil {
		t.Fatal(err)
	}
	k := marker.SoleKey(ir.Get(node, "x"))
	a, ok := marker.AsAssemblyPoint(k)
	if !ok {
		t.Fatalf("expected assembly point, got %v", k.Type)
	}
	if a.AssemblyName().String != "Foo" {
		t.Errorf("name %q", a.AssemblyName().String)
	}
	if !marker.IsTranscludePoint(ir.Get(node, "y")) {
		t.Errorf("expected transclude point")
	}
}

func TestMarkerNames(t *testing.T) {
	node, err := ParseString("- {!Assembly 12: a}\n- ? !Assembly [1, 2]\n  : b\n", LocalTags(true))
	if err != nil {
		t.Fatal(err)
	}
	n0, _ := marker.AsAssemblyPoint(marker.SoleKey(node.Values[0]))
	if n := n0.AssemblyName(); n.Type != ir.StringType || n.String != "12" {
		t.Errorf("scalar names are strings, got %v %q", n.Type, n.ScalarText())
	}
	n1, _ := marker.AsAssemblyPoint(marker.SoleKey(node.Values[1]))
	if n := n1.AssemblyName(); n.Type != ir.ArrayType || n.Len() != 2 {
		t.Errorf("sequence name should keep its structure, got %v", n.Type)
	}
}

func TestMarkerKeysDistinct(t *testing.T) {
	_, err := ParseString("!Assembly Foo: 1\nFoo: 2\n", LocalTags(true))
	if err != nil {
		t.Errorf("marker and plain key should be distinct: %v", err)
	}
	_, err = ParseString("!Assembly Foo: 1\n!<tag:assemyaml.nz,2017:Assembly> Foo: 2\n", LocalTags(true))
	if !errors.Is(err, ErrDuplicateKey) {
		t.Errorf("global and local spellings are one key: %v", err)
	}
}

func TestAliasShared(t *testing.T) {
	node, err := ParseString("a: &x [1]\nb: *x\n")
	if err != nil {
		t.Fatal(err)
	}
	if ir.Get(node, "a") != ir.Get(node, "b") {
		t.Errorf("alias should share the anchored node")
	}
}

func TestStream(t *testing.T) {
	docs, err := ParseStream(strings.NewReader("a: 1\n---\n- 2\n---\n"))
	if err != nil {
		t.Fatal(err)
	}
	if len(docs) != 3 {
		t.Fatalf("got %d docs", len(docs))
	}
	if docs[1].Type != ir.ArrayType || docs[2].Type != ir.NullType {
		t.Errorf("types %v %v", docs[1].Type, docs[2].Type)
	}
	node, err := ParseString("")
	if err != nil || node.Type != ir.NullType {
		t.Errorf("empty input: %v %v", node, err)
	}
}
