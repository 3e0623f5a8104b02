// Package profile starts optional runtime profiling of the rulex command.
//
// Profiling is compiled in only with the pprof build tag:
//
//	go build -tags pprof -o rulex .
//
// Without the tag [Start] always returns a no-op [Stopper] and [Modes] is
// empty. With the tag, [github.com/pkg/profile] writes one profile per run
// into the configured directory, for example cpu.pprof or mem.pprof, which
// can be inspected with
//
//	go tool pprof -http=: rulex cpu.pprof
//
// The tag also imports [net/http/pprof], registering its handlers on
// [net/http.DefaultServeMux] for programs that serve HTTP.
//
// Lexing hot paths worth profiling are the rule lookup table against the
// naive scan (rulex lex --log-level=trace shows which rules were skipped) and
// the lazy parser window (rulex parse --lazy N).
package profile

// Tag is the build tag required to enable profiling.
const Tag = `pprof`
