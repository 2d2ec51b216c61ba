package assemble

import (
	"errors"
	"strings"

	"github.com/assemyaml/assemyaml/ir"
	"github.com/assemyaml/assemyaml/token"
)

var (
	ErrMalformedAssembly    = errors.New("malformed assembly")
	ErrInvalidAssemblyName  = errors.New("invalid assembly name")
	ErrAssemblyTypeMismatch = errors.New("assembly type mismatch")
	ErrDuplicateAssemblyKey = errors.New("duplicate assembly key")
	ErrUnmergeableAssembly  = errors.New("unmergeable assembly")
	ErrRecursiveAssembly    = errors.New("recursive assembly")
)

// Mark is one message fragment of an Error and the source span it refers
// to.
type Mark struct {
	Msg   string
	Start *token.Pos
	End   *token.Pos
}

// Error is a resolution failure. It carries up to two marks and renders as
// "<msg1> <pos1>, <msg2> <pos2>.". Kind is one of the sentinel errors above
// and is what errors.Is matches.
type Error struct {
	Kind  error
	Marks []Mark
	// Path locates the failing slot in the document being resolved.
	Path string
}

func (e *Error) Error() string {
	buf := &strings.Builder{}
	for i := range e.Marks {
		m := &e.Marks[i]
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(m.Msg)
		buf.WriteByte(' ')
		buf.WriteString(token.Span(m.Start, m.End))
	}
	buf.WriteByte('.')
	return buf.String()
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func newError(kind error, path string, marks ...Mark) *Error {
	return &Error{Kind: kind, Path: path, Marks: marks}
}

func markAt(msg string, n *ir.Node) Mark {
	if n == nil {
		return Mark{Msg: msg}
	}
	return Mark{Msg: msg, Start: n.Start, End: n.End}
}

// startAt marks only the start of n, as conflicting values are reported by
// where they begin.
func startAt(msg string, n *ir.Node) Mark {
	if n == nil {
		return Mark{Msg: msg}
	}
	return Mark{Msg: msg, Start: n.Start}
}

// TypeName names the kind of n in messages: list, dict, str, int, float,
// bool, null, or the marker kind.
func TypeName(n *ir.Node) string {
	if n == nil {
		return "null"
	}
	switch n.Type {
	case ir.ArrayType:
		return "list"
	case ir.ObjectType:
		return "dict"
	case ir.StringType:
		return "str"
	case ir.BoolType:
		return "bool"
	case ir.NullType:
		return "null"
	case ir.NumberType:
		if n.Float64 != nil {
			return "float"
		}
		return "int"
	case ir.MarkerType:
		if n.Marker != nil {
			return n.Marker.Kind()
		}
		return "marker"
	}
	return n.Type.String()
}
