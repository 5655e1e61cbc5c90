package objstore

type options struct {
	providers map[string]Provider
	logger    *Logger
}

// Option configures a Registry.
type Option func(*options)

// WithProvider registers p for scheme. Later registrations of the same
// scheme replace earlier ones.
func WithProvider(scheme string, p Provider) Option {
	return func(o *options) {
		if o.providers == nil {
			o.providers = make(map[string]Provider)
		}
		o.providers[normalizeScheme(scheme)] = p
	}
}

// WithLogger sets the logger used for resolution and construction.
//
// If nil is passed, logging is disabled.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}
