package main

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/assemyaml/assemyaml"
	"github.com/assemyaml/assemyaml/assemble"
	"github.com/assemyaml/assemyaml/encode"

	"github.com/scott-cotton/cli"
)

func recordRun(cfg *RecordConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Record.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		args = []string{"-"}
	}
	inputs, err := readInputs(cc.In, args)
	if err != nil {
		return err
	}
	return recordInputs(cfg, cc.Out, inputs)
}

func recordInputs(cfg *RecordConfig, w io.Writer, inputs []assemyaml.Input) error {
	var (
		reg *assemble.Registry
		err error
	)
	if cfg.Concurrent {
		opts := []assemyaml.RecordOption{
			assemyaml.LocalTags(cfg.Local),
			assemyaml.ContinueOnError(cfg.Keep),
			assemyaml.Logger(cfg.log()),
		}
		reg, err = assemyaml.RecordConcurrent(context.Background(), inputs, opts...)
		if err != nil {
			return err
		}
	} else {
		reg = assemble.NewRegistry()
		for _, in := range inputs {
			opts := append(cfg.recordOpts(in.Name), assemyaml.ContinueOnError(cfg.Keep))
			docs, err := assemyaml.RecordAssemblies(bytes.NewReader(in.Data), reg, opts...)
			if err != nil {
				return err
			}
			cfg.log().Debug("recorded", "file", in.Name, "documents", len(docs), "assemblies", reg.Len())
		}
	}
	if err := encode.Encode(reg.Node(), w, cfg.encOpts()...); err != nil {
		return fmt.Errorf("error encoding assemblies: %w", err)
	}
	return nil
}
