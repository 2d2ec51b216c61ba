package parse

import (
	"github.com/assemyaml/assemyaml/marker"
)

const DefaultMaxDepth = 10000

type parseOpts struct {
	docName  string
	local    bool
	maxDepth int
	symbols  map[string]marker.Symbol
}

type ParseOption func(*parseOpts)

// DocName names the source in positions and messages.
func DocName(name string) ParseOption {
	return func(o *parseOpts) { o.docName = name }
}

// LocalTags enables the local "!Kind" marker tags in addition to the global
// ones.
func LocalTags(v bool) ParseOption {
	return func(o *parseOpts) { o.local = v }
}

func MaxDepth(n int) ParseOption {
	return func(o *parseOpts) { o.maxDepth = n }
}

// Constructors replaces the marker tag table. By default it is
// marker.Constructors(local).
func Constructors(m map[string]marker.Symbol) ParseOption {
	return func(o *parseOpts) { o.symbols = m }
}

func makeOpts(opts []ParseOption) *parseOpts {
	o := &parseOpts{maxDepth: DefaultMaxDepth}
	for _, f := range opts {
		f(o)
	}
	if o.symbols == nil {
		o.symbols = marker.Constructors(o.local)
	}
	return o
}
