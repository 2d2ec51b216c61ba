package artifact

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/assemyaml/assemyaml/format"
	"github.com/assemyaml/assemyaml/params"

	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/require"
)

func writeArtifact(t *testing.T, dir, name string, files map[string]string) string {
	t.Helper()
	path := filepath.Join(dir, name+".zip")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	zw := zip.NewWriter(f)
	for fn, content := range files {
		w, err := zw.Create(fn)
		require.NoError(t, err)
		_, err = io.WriteString(w, content)
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return name + "=" + path
}

func readOutput(t *testing.T, d []byte) map[string]string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(d), int64(len(d)))
	require.NoError(t, err)
	res := map[string]string{}
	for _, f := range zr.File {
		r, err := f.Open()
		require.NoError(t, err)
		content, err := io.ReadAll(r)
		require.NoError(t, err)
		require.NoError(t, r.Close())
		res[f.Name] = string(content)
	}
	return res
}

func openSet(t *testing.T, inputs ...string) *Set {
	t.Helper()
	set, err := OpenSet(inputs)
	require.NoError(t, err)
	t.Cleanup(func() { set.Close() })
	return set
}

func TestJobDefaults(t *testing.T) {
	dir := t.TempDir()
	set := openSet(t,
		writeArtifact(t, dir, "Source", map[string]string{
			"assemble.yml": "Policies: !Transclude P\n",
		}),
		writeArtifact(t, dir, "Extra", map[string]string{
			"assemble.yml": "{!Assembly P: [a, b]}\n",
		}),
		writeArtifact(t, dir, "Empty", map[string]string{"other.yml": "x: 1\n"}),
	)
	job := &Job{Params: params.Default(), Inputs: set}
	buf := &bytes.Buffer{}
	require.NoError(t, job.Run(buf))
	require.Equal(t, map[string]string{
		"assemble.yml": "Policies:\n  - a\n  - b\n",
	}, readOutput(t, buf.Bytes()))
}

func TestJobExplicitRefs(t *testing.T) {
	dir := t.TempDir()
	set := openSet(t,
		writeArtifact(t, dir, "A", map[string]string{
			"res.yml": "{!Assembly M: {k: v}}\n",
		}),
		writeArtifact(t, dir, "B", map[string]string{
			"tmpl.yml": "m: !Transclude M\n",
		}),
	)
	p := params.Default()
	p.TemplateDocument = &params.Ref{Artifact: "B", Filename: "tmpl.yml"}
	p.ResourceDocuments = []params.Ref{{Artifact: "A", Filename: "res.yml"}}
	p.Format = format.JSONFormat
	job := &Job{Params: p, Inputs: set}
	buf := &bytes.Buffer{}
	require.NoError(t, job.Run(buf))
	out := readOutput(t, buf.Bytes())
	require.JSONEq(t, `{"m": {"k": "v"}}`, out["tmpl.yml"])
}

func TestJobErrors(t *testing.T) {
	dir := t.TempDir()
	set := openSet(t, writeArtifact(t, dir, "Input", map[string]string{"assemble.yml": "a: 1\n"}))

	p := params.Default()
	p.TemplateDocument = &params.Ref{Artifact: "Foo", Filename: "bar"}
	err := (&Job{Params: p, Inputs: set}).Run(io.Discard)
	require.ErrorIs(t, err, ErrUnknownArtifact)
	require.Contains(t, err.Error(), "Invalid value for TemplateDocument: unknown input artifact Foo")

	p = params.Default()
	p.ResourceDocuments = []params.Ref{{Artifact: "Bar", Filename: "x"}}
	err = (&Job{Params: p, Inputs: set}).Run(io.Discard)
	require.Contains(t, err.Error(), "Invalid value for ResourceDocuments: unknown input artifact Bar")

	p = params.Default()
	p.DefaultInputFilename = "missing.yml"
	err = (&Job{Params: p, Inputs: set}).Run(io.Discard)
	require.ErrorIs(t, err, ErrMissingFile)

	err = (&Job{Params: params.Default(), Inputs: &Set{}}).Run(io.Discard)
	require.ErrorIs(t, err, ErrNoInputs)
}

func TestOpenErrors(t *testing.T) {
	_, err := Open("Input", "ftp://host/key")
	require.ErrorIs(t, err, ErrArtifactType)
	require.Contains(t, err.Error(), "Can't handle input artifact type ftp")

	missing := filepath.Join(t.TempDir(), "missing.zip")
	_, err = Open("Input", missing)
	require.ErrorIs(t, err, ErrReadArtifact)
	require.Contains(t, err.Error(), "Unable to read input artifact 'Input' ("+missing+")")

	_, err = OpenSet([]string{"noequals"})
	require.ErrorIs(t, err, ErrReadArtifact)

	dir := t.TempDir()
	in := writeArtifact(t, dir, "X", map[string]string{"a": "b"})
	_, err = OpenSet([]string{in, in})
	require.ErrorContains(t, err, "duplicate input artifact X")
}

func TestFileURL(t *testing.T) {
	dir := t.TempDir()
	in := writeArtifact(t, dir, "X", map[string]string{"f.yml": "v: 1\n"})
	_, path, err := ParseInput(in)
	require.NoError(t, err)
	a, err := Open("X", "file://"+path)
	require.NoError(t, err)
	defer a.Close()
	d, err := a.ReadFile("f.yml")
	require.NoError(t, err)
	require.Equal(t, "v: 1\n", string(d))
}
