//nolint:gochecknoglobals
package pkg

import (
	_ "embed"
	"strings"
)

// Version is the semantic version of the rulex module embedded at build time.
//
//go:embed VERSION
var version string

const (
	// Name is the canonical command and module identifier used in help text
	// and default config paths.
	Name = "rulex"
	// Description is a short summary of the project used in help output.
	Description = "Rule-based lexer and parser engine"
)

// Version returns the embedded semantic version without surrounding space.
func Version() string { return strings.TrimSpace(version) }

// AuthorInfo represents an individual author's name and email address.
type AuthorInfo struct {
	Name  string
	Email string
}

// Author lists the primary author(s) of the project.
//
//nolint:gochecknoglobals
var Author = []AuthorInfo{
	{"ardnew", "andrew@ardnew.com"},
}
