package assemyaml

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/assemyaml/assemyaml/assemble"
	"github.com/assemyaml/assemyaml/debug"
	"github.com/assemyaml/assemyaml/ir"
	"github.com/assemyaml/assemyaml/parse"

	"golang.org/x/sync/errgroup"
)

type recordOpts struct {
	docName  string
	local    bool
	atomic   bool
	cont     bool
	maxDepth int
	log      *slog.Logger
}

type RecordOption func(*recordOpts)

// DocName names the stream in positions and messages.
func DocName(name string) RecordOption {
	return func(o *recordOpts) { o.docName = name }
}

// LocalTags enables the "!Assembly" and "!Transclude" tag spellings.
func LocalTags(v bool) RecordOption {
	return func(o *recordOpts) { o.local = v }
}

// Atomic undoes the registry changes of a document that fails to resolve.
func Atomic(v bool) RecordOption {
	return func(o *recordOpts) { o.atomic = v }
}

// ContinueOnError logs a document that fails to resolve and goes on with
// the next one. It implies Atomic. Syntax errors still stop the stream.
func ContinueOnError(v bool) RecordOption {
	return func(o *recordOpts) { o.cont = v }
}

func MaxDepth(n int) RecordOption {
	return func(o *recordOpts) { o.maxDepth = n }
}

func Logger(l *slog.Logger) RecordOption {
	return func(o *recordOpts) { o.log = l }
}

func makeRecordOpts(opts []RecordOption) *recordOpts {
	o := &recordOpts{maxDepth: parse.DefaultMaxDepth}
	for _, f := range opts {
		f(o)
	}
	if o.cont {
		o.atomic = true
	}
	if o.log == nil {
		o.log = discardLogger()
	}
	return o
}

func (o *recordOpts) parseOpts() []parse.ParseOption {
	return []parse.ParseOption{
		parse.DocName(o.docName),
		parse.LocalTags(o.local),
		parse.MaxDepth(o.maxDepth),
	}
}

// RecordAssemblies resolves the assemblies of every document of r into reg,
// in document order, and returns the resolved documents.
func RecordAssemblies(r io.Reader, reg *assemble.Registry, opts ...RecordOption) ([]*ir.Node, error) {
	o := makeRecordOpts(opts)
	dec := parse.NewDecoder(r, o.parseOpts()...)
	res := []*ir.Node{}
	for i := 0; ; i++ {
		doc, err := dec.Decode()
		if errors.Is(err, io.EOF) {
			return res, nil
		}
		if err != nil {
			return nil, err
		}
		var cp *assemble.Checkpoint
		if o.atomic {
			cp = reg.Checkpoint()
		}
		resolved, err := assemble.Resolve(doc, reg)
		if err == nil {
			res = append(res, resolved)
			continue
		}
		if cp != nil {
			reg.Rollback(cp)
		}
		if !o.cont {
			return nil, fmt.Errorf("%s document %d: %w", streamName(o.docName), i, err)
		}
		o.log.Warn("skipping document", "doc", streamName(o.docName), "index", i, "error", err)
	}
}

// Input is a named YAML stream.
type Input struct {
	Name string
	Data []byte
}

// RecordConcurrent parses and resolves inputs in parallel, each against a
// registry of its own, and merges those registries in input order. Because
// values are merged after the fact, splice points of different inputs do
// not share merged values.
func RecordConcurrent(ctx context.Context, inputs []Input, opts ...RecordOption) (*assemble.Registry, error) {
	regs := make([]*assemble.Registry, len(inputs))
	g, ctx := errgroup.WithContext(ctx)
	for i := range inputs {
		in := &inputs[i]
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			reg := assemble.NewRegistry()
			iOpts := append(opts[:len(opts):len(opts)], DocName(in.Name))
			if _, err := RecordAssemblies(bytes.NewReader(in.Data), reg, iOpts...); err != nil {
				return err
			}
			regs[i] = reg
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	res := assemble.NewRegistry()
	for i, reg := range regs {
		if err := res.Merge(reg); err != nil {
			return nil, fmt.Errorf("merging %s: %w", streamName(inputs[i].Name), err)
		}
	}
	if debug.Job() {
		debug.Logf("merged %d registries into %d assemblies\n", len(regs), res.Len())
	}
	return res, nil
}

// LockedRegistry serializes whole-document resolutions against one shared
// registry.
type LockedRegistry struct {
	mu  sync.Mutex
	reg *assemble.Registry
}

func NewLockedRegistry(reg *assemble.Registry) *LockedRegistry {
	if reg == nil {
		reg = assemble.NewRegistry()
	}
	return &LockedRegistry{reg: reg}
}

// Resolve resolves the assemblies of node holding the lock for the whole
// pass. A failed document leaves no trace in the registry.
func (l *LockedRegistry) Resolve(node *ir.Node) (*ir.Node, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	cp := l.reg.Checkpoint()
	res, err := assemble.Resolve(node, l.reg)
	if err != nil {
		l.reg.Rollback(cp)
		return nil, err
	}
	return res, nil
}

// Do runs f with exclusive access to the registry.
func (l *LockedRegistry) Do(f func(*assemble.Registry) error) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return f(l.reg)
}

func streamName(name string) string {
	if name == "" {
		return "<input>"
	}
	return name
}
