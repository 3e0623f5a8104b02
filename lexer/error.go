package lexer

import (
	"errors"

	"github.com/ardnew/rulex/rule"
)

func isNoMatch(err error) bool { return errors.Is(err, rule.ErrNoMatch) }
