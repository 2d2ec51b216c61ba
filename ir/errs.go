package ir

import (
	"errors"
)

var (
	ErrNotObject = errors.New("not an object")
	ErrNotArray  = errors.New("not an array")
)
