package parse

import (
	"errors"
	"fmt"

	"github.com/assemyaml/assemyaml/token"
)

var (
	errInternal     = errors.New("internal parse error")
	ErrParse        = errors.New("parse error")
	ErrDuplicateKey = fmt.Errorf("%w: duplicate key", ErrParse)
	ErrMaxDepth     = fmt.Errorf("%w: maximum nesting depth exceeded", ErrParse)
	ErrBadMarker    = fmt.Errorf("%w: bad marker", ErrParse)
)

func posErr(err error, pos *token.Pos, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	if msg == "" {
		return fmt.Errorf("%w at %s", err, pos)
	}
	return fmt.Errorf("%w: %s at %s", err, msg, pos)
}
