package main

import (
	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, []*cli.Opt{
		&cli.Opt{
			Name:        "o",
			Description: "output file (default stdout)",
			Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
		},
		&cli.Opt{
			Name:        "f",
			Aliases:     []string{"ofmt"},
			Description: "output format: json/j, yaml/y",
			Type:        cli.NamedFuncOpt(cfg.fmtFunc(&cfg.OutFormat), "(format)"),
		}}...)

	return cli.NewCommandAt(&cfg.Main, "assemyaml").
		WithSynopsis("assemyaml [opts] command [opts]").
		WithDescription("assemyaml assembles YAML documents from !Assembly and !Transclude tagged fragments.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return mainRun(cfg, cc, args)
		}).
		WithSubs(
			AssembleCommand(cfg),
			RecordCommand(cfg),
			DiffCommand(cfg),
			ArtifactCommand(cfg))
}

func AssembleCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &AssembleConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts = append(opts, &cli.Opt{
		Name:        "patch",
		Description: "json patch or merge patch applied to the result, may be repeated",
		Type:        cli.NamedFuncOpt(cfg.patchOpt, "(file)"),
	})
	return cli.NewCommandAt(&cfg.Assemble, "assemble").
		WithAliases("a").
		WithSynopsis("assemble [-strict] [-patch file] template [resources...]").
		WithDescription(assembleDescription).
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return assembleRun(cfg, cc, args)
		})
}

const assembleDescription = `assemble resolves a template against resource documents.

Assemblies found in the first document of the template and in every
document of the resources are merged by name: sequences are concatenated
and mappings are joined, refusing duplicate keys. Each !Transclude in the
template is then replaced by the merged value of its name.

Tags are recognized in their global form, tag:assemyaml.nz,2017:Assembly
and tag:assemyaml.nz,2017:Transclude. With -l the local forms !Assembly
and !Transclude are recognized too.`

func RecordCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &RecordConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Record, "record").
		WithAliases("r").
		WithSynopsis("record [-k] [-c] [files]").
		WithDescription("record the assemblies of the given documents and print them as a mapping").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return recordRun(cfg, cc, args)
		})
}

func DiffCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DiffConfig{MainConfig: mainCfg, Context: 3}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Diff, "diff").
		WithAliases("d").
		WithSynopsis("diff [-U n] template [resources...]").
		WithDescription("show how assembling changes the template").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return diffRun(cfg, cc, args)
		})
}

func ArtifactCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ArtifactConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Artifact, "artifact").
		WithSynopsis("artifact -params params.json -o out.zip name=input.zip...").
		WithDescription(artifactDescription).
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return artifactRun(cfg, cc, args)
		})
}

const artifactDescription = `artifact runs an assembly job over zip input artifacts.

Inputs are given as name=path, where path is a zip file or a file:// URL.
The user parameters select the template and resources as
artifact::filename references:

  {
    "TemplateDocument": "Source::template.yml",
    "ResourceDocuments": ["Extra::resources.yml"],
    "DefaultInputFilename": "assemble.yml",
    "LocalTags": true,
    "Format": "yaml"
  }

Without TemplateDocument the template is the default input file of the
first artifact. Without ResourceDocuments every other artifact holding
the default input file contributes it. The output zip holds the result
under the template's filename.`
