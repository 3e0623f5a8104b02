package parser

import "github.com/ardnew/rulex/pkg"

var (
	// ErrWindowExceeded reports a restore to a token the [Window] has
	// already discarded. The window is too small for the grammar's
	// backtracking, or a commit was made too early.
	ErrWindowExceeded = pkg.NewError("backtrack window exceeded")

	// ErrInvalidRestore reports a restore past the buffered tokens.
	ErrInvalidRestore = pkg.NewError("restore beyond buffered input")

	// ErrNoPrefix reports a token that cannot start an expression.
	ErrNoPrefix = pkg.NewError("token cannot start an expression")

	// ErrIncomplete reports input that ended inside an expression.
	ErrIncomplete = pkg.NewError("unexpected end of input")
)
