package profile

// Stopper ends a profiling session and flushes its output.
type Stopper interface{ Stop() }

// Option configures [Start].
type Option func(*config)

type config struct {
	mode  string
	dir   string
	quiet bool
}

// WithMode selects the profile to record. An empty mode disables profiling.
func WithMode(mode string) Option { return func(c *config) { c.mode = mode } }

// WithDir sets the directory receiving profile output.
func WithDir(dir string) Option { return func(c *config) { c.dir = dir } }

// WithQuiet suppresses the profiler's own start and stop messages.
func WithQuiet(quiet bool) Option { return func(c *config) { c.quiet = quiet } }

// Start begins profiling as configured by opts. Stop is always safe to call
// on the result, even when profiling is disabled or unsupported.
func Start(opts ...Option) Stopper {
	var cfg config

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if cfg.mode == "" {
		return nop{}
	}

	return start(cfg)
}

type nop struct{}

func (nop) Stop() {}
