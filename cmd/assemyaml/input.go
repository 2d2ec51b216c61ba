package main

import (
	"fmt"
	"io"
	"os"

	"github.com/assemyaml/assemyaml"
)

// readInputs reads each path, with "-" standing for in.
func readInputs(in io.Reader, paths []string) ([]assemyaml.Input, error) {
	res := make([]assemyaml.Input, len(paths))
	for i, path := range paths {
		var r io.Reader
		if path != "-" {
			f, err := os.Open(path)
			if err != nil {
				return nil, fmt.Errorf("could not open %q: %w", path, err)
			}
			defer f.Close()
			r = f
		} else {
			r = in
		}
		d, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("error reading %q: %w", path, err)
		}
		res[i] = assemyaml.Input{Name: path, Data: d}
	}
	return res, nil
}
