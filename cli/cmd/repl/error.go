package repl

import "github.com/ardnew/rulex/pkg"

var (
	ErrOutOfBounds    = pkg.NewError("history index out of range")
	ErrUnknownCommand = pkg.NewError("unknown command")
)
