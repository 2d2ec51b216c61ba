package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/assemyaml/assemyaml"
	"github.com/assemyaml/assemyaml/encode"
	"github.com/assemyaml/assemyaml/format"
	"github.com/assemyaml/assemyaml/libdiff"
	"github.com/assemyaml/assemyaml/parse"

	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"
)

type MainConfig struct {
	Local   bool `cli:"name=l aliases=local desc='recognize the !Assembly and !Transclude local tags'"`
	J       bool `cli:"name=j aliases=json desc='output json'"`
	Y       bool `cli:"name=y aliases=yaml desc='output yaml'"`
	Color   bool `cli:"name=color desc='color diff output'"`
	Verbose bool `cli:"name=v desc='log progress to stderr'"`
	Indent  int  `cli:"name=indent desc='yaml indentation width'"`

	OutFormat *format.Format

	Out      string
	CloseOut func() error

	Main *cli.Command
}

func (cfg *MainConfig) fmtFunc(fp **format.Format) cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		f, err := format.ParseFormat(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		*fp = &f
		return f, nil
	})
}

func (cfg *MainConfig) format() format.Format {
	f := format.YAMLFormat
	if cfg.J {
		f = format.JSONFormat
	}
	if cfg.OutFormat != nil {
		f = *cfg.OutFormat
	}
	return f
}

func (cfg *MainConfig) encOpts() []encode.EncodeOption {
	res := []encode.EncodeOption{encode.EncodeFormat(cfg.format())}
	if cfg.Indent > 0 {
		res = append(res, encode.Indent(cfg.Indent))
	}
	return res
}

func (cfg *MainConfig) log() *slog.Logger {
	if cfg.Verbose {
		logLevel.Set(slog.LevelDebug)
	}
	return theLog
}

func (cfg *MainConfig) recordOpts(name string) []assemyaml.RecordOption {
	return []assemyaml.RecordOption{
		assemyaml.DocName(name),
		assemyaml.LocalTags(cfg.Local),
		assemyaml.Logger(cfg.log()),
	}
}

func (cfg *MainConfig) parseOpts(name string) []parse.ParseOption {
	return []parse.ParseOption{parse.DocName(name), parse.LocalTags(cfg.Local)}
}

func (cfg *MainConfig) diffColors(w io.Writer) *libdiff.Colors {
	if cfg.Color {
		return libdiff.NewColors()
	}
	f, ok := w.(*os.File)
	if !ok {
		return nil
	}
	if isatty.IsTerminal(f.Fd()) {
		return libdiff.NewColors()
	}
	return nil
}

type AssembleConfig struct {
	*MainConfig
	Strict  bool `cli:"name=strict desc='fail when an assembly is never transcluded'"`
	Patches []string

	Assemble *cli.Command
}

func (cfg *AssembleConfig) patchOpt(_ *cli.Context, v string) (any, error) {
	cfg.Patches = append(cfg.Patches, v)
	return v, nil
}

func (cfg *AssembleConfig) tool() (*assemyaml.Tool, error) {
	t := &assemyaml.Tool{
		LocalTags: cfg.Local,
		Format:    cfg.format(),
		Strict:    cfg.Strict,
		Indent:    cfg.Indent,
		Log:       cfg.log(),
	}
	for _, file := range cfg.Patches {
		d, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("could not read patch %q: %w", file, err)
		}
		p, err := assemyaml.ParsePatch(file, d)
		if err != nil {
			return nil, err
		}
		t.Patches = append(t.Patches, p)
	}
	return t, nil
}

type RecordConfig struct {
	*MainConfig
	Keep       bool `cli:"name=k desc='skip documents that fail and keep going'"`
	Concurrent bool `cli:"name=c desc='record files concurrently'"`

	Record *cli.Command
}

type DiffConfig struct {
	*MainConfig
	Context int `cli:"name=U desc='lines of context around changes'"`

	Diff *cli.Command
}

type ArtifactConfig struct {
	*MainConfig
	Params string `cli:"name=params desc='user parameters: a json file or a literal json object'"`
	Dest   string `cli:"name=o desc='output artifact zip file'"`

	Artifact *cli.Command
}
