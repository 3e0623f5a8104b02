package pipeline

import "github.com/ardnew/rulex/pkg"

// ErrAborted reports a pipeline halted by an abort or a blocked side. The
// reason is attached as the "reason" attribute.
var ErrAborted = pkg.NewError("pipeline aborted")
