package rule

import "github.com/ardnew/rulex/pkg"

var (
	// ErrNoMatch reports that no rule matched before the end of input.
	// It is not fatal: the caller decides whether it is a syntax error.
	ErrNoMatch = pkg.NewError("no rule matched")

	// ErrZeroProgress reports a rule that matched without consuming input.
	ErrZeroProgress = pkg.NewError("rule matched without advancing")

	// ErrRestore reports a checkpoint that does not belong to the context.
	ErrRestore = pkg.NewError("invalid checkpoint")
)
