package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/rulex/cli/cmd/repl"
	"github.com/ardnew/rulex/log"
)

// Repl starts an interactive calculator.
type Repl struct {
	History bool `default:"true" help:"Persist input history in the cache directory." negatable:""`
}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) error {
	dir := ""

	if ktx := kongContextFrom(ctx); ktx != nil && r.History {
		dir = ktx.Model.Vars()[CacheIdentifier]
	}

	return repl.Run(ctx, dir, repl.WithLogger(log.With(slog.String("command", "repl"))))
}
