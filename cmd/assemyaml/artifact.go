package main

import (
	"fmt"
	"os"

	"github.com/assemyaml/assemyaml/artifact"
	"github.com/assemyaml/assemyaml/params"

	"github.com/scott-cotton/cli"
)

func artifactRun(cfg *ArtifactConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Artifact.Parse(cc, args)
	if err != nil {
		return err
	}
	if cfg.Dest == "" {
		return fmt.Errorf("%w: artifact requires -o", cli.ErrUsage)
	}
	p := params.Default()
	if cfg.Params != "" {
		p, err = params.ReadFile(cfg.Params)
		if err != nil {
			return err
		}
	}
	return runJob(cfg, p, args)
}

func runJob(cfg *ArtifactConfig, p *params.Params, inputs []string) (err error) {
	set, err := artifact.OpenSet(inputs)
	if err != nil {
		return err
	}
	defer set.Close()
	f, err := os.Create(cfg.Dest)
	if err != nil {
		return fmt.Errorf("could not create %q: %w", cfg.Dest, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			os.Remove(cfg.Dest)
		}
	}()
	job := &artifact.Job{Params: p, Inputs: set, Log: cfg.log()}
	if err := job.Run(f); err != nil {
		cfg.log().Error("job failed", "error", err)
		return err
	}
	cfg.log().Info("wrote output artifact", "path", cfg.Dest)
	return nil
}
