package marker

import (
	"github.com/assemyaml/assemyaml/ir"
)

const (
	AssemblyKind   = "Assembly"
	TranscludeKind = "Transclude"
)

// Assembler is implemented by markers that declare a named assembly.
type Assembler interface {
	ir.Marker
	AssemblyName() *ir.Node
}

// Transcluder is implemented by markers that reference a named assembly.
type Transcluder interface {
	ir.Marker
	TranscludeName() *ir.Node
}

type AssemblyPoint struct {
	name *ir.Node
}

func NewAssemblyPoint(name *ir.Node) *AssemblyPoint {
	return &AssemblyPoint{name: name}
}

func (p *AssemblyPoint) Kind() string           { return AssemblyKind }
func (p *AssemblyPoint) Name() *ir.Node         { return p.name }
func (p *AssemblyPoint) AssemblyName() *ir.Node { return p.name }

type TranscludePoint struct {
	name *ir.Node
}

func NewTranscludePoint(name *ir.Node) *TranscludePoint {
	return &TranscludePoint{name: name}
}

func (p *TranscludePoint) Kind() string             { return TranscludeKind }
func (p *TranscludePoint) Name() *ir.Node           { return p.name }
func (p *TranscludePoint) TranscludeName() *ir.Node { return p.name }

func AsAssemblyPoint(n *ir.Node) (Assembler, bool) {
	if n == nil || n.Type != ir.MarkerType {
		return nil, false
	}
	a, ok := n.Marker.(Assembler)
	return a, ok
}

func AsTranscludePoint(n *ir.Node) (Transcluder, bool) {
	if n == nil || n.Type != ir.MarkerType {
		return nil, false
	}
	t, ok := n.Marker.(Transcluder)
	return t, ok
}

func IsAssemblyPoint(n *ir.Node) bool {
	_, ok := AsAssemblyPoint(n)
	return ok
}

func IsTranscludePoint(n *ir.Node) bool {
	_, ok := AsTranscludePoint(n)
	return ok
}

// SoleKey returns the only key of object n, or nil when n is not an object
// with exactly one entry.
func SoleKey(n *ir.Node) *ir.Node {
	if n == nil || n.Type != ir.ObjectType || len(n.Fields) != 1 {
		return nil
	}
	return n.Fields[0]
}

// MarkerKey returns the first marker key of object n satisfying is, and its
// index.
func MarkerKey(n *ir.Node, is func(*ir.Node) bool) (*ir.Node, int) {
	if n == nil || n.Type != ir.ObjectType {
		return nil, -1
	}
	for i, f := range n.Fields {
		if is(f) {
			return f, i
		}
	}
	return nil, -1
}
