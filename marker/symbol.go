package marker

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/assemyaml/assemyaml/ir"
)

const TagPrefix = "tag:assemyaml.nz,2017:"

var ErrDuplicateSymbol = errors.New("duplicate marker symbol")

// Symbol binds a marker kind to its tags and constructor.
type Symbol interface {
	Kind() string
	GlobalTag() string
	LocalTag() string
	Instance(name *ir.Node) (ir.Marker, error)
}

type symbol struct {
	kind string
	mk   func(*ir.Node) ir.Marker
}

func (s *symbol) Kind() string      { return s.kind }
func (s *symbol) GlobalTag() string { return TagPrefix + s.kind }
func (s *symbol) LocalTag() string  { return "!" + s.kind }
func (s *symbol) String() string    { return s.kind }

func (s *symbol) Instance(name *ir.Node) (ir.Marker, error) {
	if name == nil {
		return nil, fmt.Errorf("%s marker requires a name", s.kind)
	}
	return s.mk(name), nil
}

var (
	assemblySym = &symbol{kind: AssemblyKind, mk: func(n *ir.Node) ir.Marker {
		return NewAssemblyPoint(n)
	}}
	transcludeSym = &symbol{kind: TranscludeKind, mk: func(n *ir.Node) ir.Marker {
		return NewTranscludePoint(n)
	}}
)

func Assembly() Symbol {
	return assemblySym
}

func Transclude() Symbol {
	return transcludeSym
}

var (
	symMu   sync.RWMutex
	symbols = map[string]Symbol{
		AssemblyKind:   assemblySym,
		TranscludeKind: transcludeSym,
	}
)

// Register adds a marker kind. Registering a kind twice is an error.
func Register(s Symbol) error {
	symMu.Lock()
	defer symMu.Unlock()
	if _, ok := symbols[s.Kind()]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateSymbol, s.Kind())
	}
	symbols[s.Kind()] = s
	return nil
}

// Lookup finds the symbol for a tag. Local tags only match when local is
// set.
func Lookup(tag string, local bool) Symbol {
	symMu.RLock()
	defer symMu.RUnlock()
	for _, s := range symbols {
		if s.GlobalTag() == tag {
			return s
		}
		if local && s.LocalTag() == tag {
			return s
		}
	}
	return nil
}

// Symbols lists registered symbols ordered by kind.
func Symbols() []Symbol {
	symMu.RLock()
	defer symMu.RUnlock()
	res := make([]Symbol, 0, len(symbols))
	for _, s := range symbols {
		res = append(res, s)
	}
	slices.SortFunc(res, func(a, b Symbol) int {
		return cmp.Compare(a.Kind(), b.Kind())
	})
	return res
}

// Constructors returns the tag table a loader installs: global tags always,
// local tags when local is set.
func Constructors(local bool) map[string]Symbol {
	res := map[string]Symbol{}
	for _, s := range Symbols() {
		res[s.GlobalTag()] = s
		if local {
			res[s.LocalTag()] = s
		}
	}
	return res
}
