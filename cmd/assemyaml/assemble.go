package main

import (
	"fmt"
	"io"

	"github.com/assemyaml/assemyaml"

	"github.com/scott-cotton/cli"
)

func assembleRun(cfg *AssembleConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Assemble.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: assemble requires a template", cli.ErrUsage)
	}
	tool, err := cfg.tool()
	if err != nil {
		return err
	}
	inputs, err := readInputs(cc.In, args)
	if err != nil {
		return err
	}
	return assembleInputs(tool, cc.Out, inputs)
}

func assembleInputs(tool *assemyaml.Tool, w io.Writer, inputs []assemyaml.Input) error {
	doc, err := tool.Assemble(inputs[0], inputs[1:]...)
	if err != nil {
		return err
	}
	if err := tool.Render(doc, w); err != nil {
		return fmt.Errorf("error encoding result: %w", err)
	}
	return nil
}
