package token

import (
	"fmt"
)

// Pos is a location in a named source document. Line and Col are 1-based, as
// reported by the YAML decoder. A zero Line means the position is unknown.
type Pos struct {
	Doc  string
	Line int
	Col  int
}

func New(doc string, line, col int) *Pos {
	return &Pos{Doc: doc, Line: line, Col: col}
}

func (p *Pos) Known() bool {
	return p != nil && p.Line > 0
}

// Before reports whether p occurs strictly before o in the same document.
func (p *Pos) Before(o *Pos) bool {
	if p == nil || o == nil || p.Doc != o.Doc {
		return false
	}
	if p.Line != o.Line {
		return p.Line < o.Line
	}
	return p.Col < o.Col
}

// Advance returns a position n columns to the right of p on the same line.
func (p *Pos) Advance(n int) *Pos {
	if p == nil {
		return nil
	}
	return &Pos{Doc: p.Doc, Line: p.Line, Col: p.Col + n}
}

func (p *Pos) String() string {
	if !p.Known() {
		return "<unknown>"
	}
	doc := p.Doc
	if doc == "" {
		doc = "<input>"
	}
	return fmt.Sprintf("%s:%d:%d", doc, p.Line, p.Col)
}

// Span renders a start/end pair. When end is unknown or in another document
// only the start is rendered.
func Span(start, end *Pos) string {
	if !end.Known() || !start.Known() || start.Doc != end.Doc {
		return start.String()
	}
	if start.Line == end.Line && start.Col == end.Col {
		return start.String()
	}
	return fmt.Sprintf("%s-%d:%d", start, end.Line, end.Col)
}
