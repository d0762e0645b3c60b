package reorder

import "github.com/charmbracelet/log"

// Option configures a reorder call.
type Option func(*options)

type options struct {
	logger *log.Logger
	strict bool
}

func newOptions(opts []Option) *options {
	o := &options{logger: log.Default()}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithLogger sets the logger used to report non-fatal anomalies.
func WithLogger(logger *log.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithStrict makes an entry without a key fail with ErrMalformedSegment
// instead of continuing under the previously seen key.
func WithStrict(strict bool) Option {
	return func(o *options) {
		o.strict = strict
	}
}
