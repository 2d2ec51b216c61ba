package libdiff

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

type Colors struct {
	Insert func(string, ...any) string
	Delete func(string, ...any) string
	Hunk   func(string, ...any) string
}

func NewColors() *Colors {
	return &Colors{
		Insert: color.GreenString,
		Delete: color.RedString,
		Hunk:   color.CyanString,
	}
}

// Write prints lines with "+", "-" and " " prefixes. Runs of unchanged
// lines longer than 2*context are folded to their first and last context
// lines; a negative context prints every line. colors may be nil.
func Write(w io.Writer, lines []Line, context int, colors *Colors) error {
	keep := make([]bool, len(lines))
	for i := range lines {
		if context < 0 || lines[i].Op != Equal {
			keep[i] = true
			continue
		}
		for j := max(0, i-context); j <= min(len(lines)-1, i+context); j++ {
			if lines[j].Op != Equal {
				keep[i] = true
				break
			}
		}
	}
	skipped := false
	for i := range lines {
		if !keep[i] {
			skipped = true
			continue
		}
		if skipped {
			if err := writeLine(w, colors, "@@", "", Equal); err != nil {
				return err
			}
			skipped = false
		}
		ln := &lines[i]
		if err := writeLine(w, colors, ln.Op.Prefix(), ln.Text, ln.Op); err != nil {
			return err
		}
	}
	return nil
}

func writeLine(w io.Writer, colors *Colors, prefix, text string, op Op) error {
	s := prefix + " " + text
	if prefix == "@@" {
		s = prefix
	}
	if colors != nil {
		switch {
		case prefix == "@@":
			s = colors.Hunk("%s", s)
		case op == Insert:
			s = colors.Insert("%s", s)
		case op == Delete:
			s = colors.Delete("%s", s)
		}
	}
	_, err := fmt.Fprintln(w, s)
	return err
}
