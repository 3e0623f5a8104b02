package calc

import "github.com/ardnew/rulex/pkg"

var (
	ErrDivideByZero    = pkg.NewError("division by zero")
	ErrUnknownOperator = pkg.NewError("unknown operator")
	ErrSyntax          = pkg.NewError("syntax error")
	ErrCompile         = pkg.NewError("compile expression")
	ErrEvaluate        = pkg.NewError("evaluate expression")
)
