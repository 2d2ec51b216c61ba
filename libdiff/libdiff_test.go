package libdiff

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLines(t *testing.T) {
	from := "a\nb\nc\n"
	to := "a\nB\nc\nd\n"
	got := Lines(from, to)
	want := []Line{
		{Equal, "a"},
		{Delete, "b"},
		{Insert, "B"},
		{Equal, "c"},
		{Insert, "d"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if !Changed(got) {
		t.Error("expected a change")
	}
	if Changed(Lines(from, from)) {
		t.Error("identical inputs changed")
	}
}

func TestWrite(t *testing.T) {
	lines := []Line{
		{Equal, "1"},
		{Equal, "2"},
		{Equal, "3"},
		{Delete, "x"},
		{Insert, "y"},
		{Equal, "4"},
	}
	buf := &bytes.Buffer{}
	if err := Write(buf, lines, 1, nil); err != nil {
		t.Fatal(err)
	}
	want := "@@\n  3\n- x\n+ y\n  4\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
	buf.Reset()
	if err := Write(buf, lines[:3], -1, nil); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "  1\n  2\n  3\n" {
		t.Errorf("got %q", buf.String())
	}
}
