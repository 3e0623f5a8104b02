package cmd

import "github.com/ardnew/rulex/pkg"

var (
	ErrReadInput       = pkg.NewError("read input")
	ErrJSONMarshal     = pkg.NewError("marshal JSON")
	ErrYAMLMarshal     = pkg.NewError("marshal YAML")
	ErrInvalidFormat   = pkg.NewError("invalid output format")
	ErrUnknownLanguage = pkg.NewError("unknown language")
	ErrCheck           = pkg.NewError("evaluators disagree")
)
