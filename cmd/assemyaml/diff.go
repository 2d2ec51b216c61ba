package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/assemyaml/assemyaml"
	"github.com/assemyaml/assemyaml/encode"
	"github.com/assemyaml/assemyaml/format"
	"github.com/assemyaml/assemyaml/libdiff"
	"github.com/assemyaml/assemyaml/parse"

	"github.com/scott-cotton/cli"
)

func diffRun(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		cfg.Diff.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: diff requires a template", cli.ErrUsage)
	}
	inputs, err := readInputs(cc.In, args)
	if err != nil {
		return err
	}
	changed, err := diffInputs(cfg, cc.Out, inputs, cfg.diffColors(cc.Out))
	if err != nil {
		return err
	}
	if changed {
		return cli.ExitCodeErr(1)
	}
	return nil
}

// diffInputs writes a line diff between the template, rendered with its
// markers in place, and the assembled result. Both sides go through the
// encoder so only assembly changes show.
func diffInputs(cfg *DiffConfig, w io.Writer, inputs []assemyaml.Input, colors *libdiff.Colors) (bool, error) {
	tmpl := inputs[0]
	dec := parse.NewDecoder(bytes.NewReader(tmpl.Data), cfg.parseOpts(tmpl.Name)...)
	before, err := dec.Decode()
	if errors.Is(err, io.EOF) {
		return false, fmt.Errorf("%w: %s", assemyaml.ErrNoTemplate, tmpl.Name)
	}
	if err != nil {
		return false, err
	}
	tool := &assemyaml.Tool{LocalTags: cfg.Local, Format: format.YAMLFormat, Indent: cfg.Indent, Log: cfg.log()}
	after, err := tool.Assemble(tmpl, inputs[1:]...)
	if err != nil {
		return false, err
	}
	from := &bytes.Buffer{}
	if err := encode.Encode(before, from, append(tool.EncodeOptions(), encode.AllowMarkers(true))...); err != nil {
		return false, err
	}
	to := &bytes.Buffer{}
	if err := tool.Render(after, to); err != nil {
		return false, err
	}
	lines := libdiff.Lines(from.String(), to.String())
	if !libdiff.Changed(lines) {
		return false, nil
	}
	return true, libdiff.Write(w, lines, cfg.Context, colors)
}
