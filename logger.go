package objstore

import (
	"context"
	"log/slog"
	"net/url"
	"os"
	"sort"
)

// Logger wraps slog.Logger with objstore-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return &Logger{
		Logger: slog.New(slog.DiscardHandler),
	}
}

// WithScheme adds a scheme field to the logger.
func (l *Logger) WithScheme(scheme string) *Logger {
	return &Logger{
		Logger: l.Logger.With("scheme", scheme),
	}
}

// WithLocation adds a location field to the logger. User info is redacted.
func (l *Logger) WithLocation(u *url.URL) *Logger {
	return &Logger{
		Logger: l.Logger.With("location", u.Redacted()),
	}
}

// LogResolve logs a scheme lookup.
func (l *Logger) LogResolve(ctx context.Context, scheme string, err error) {
	if err != nil {
		l.WarnContext(ctx, "provider resolution failed",
			"scheme", scheme,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "provider resolved",
			"scheme", scheme,
		)
	}
}

// LogConfig logs the keys of a resolved configuration map.
// Values are never logged since they may carry secrets.
func (l *Logger) LogConfig(ctx context.Context, config map[string]string) {
	keys := make([]string, 0, len(config))
	for k := range config {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	l.DebugContext(ctx, "configuration resolved",
		"keys", keys,
		"bucket", config[keyBucket],
	)
}

// LogStoreCreated logs a successfully constructed store.
func (l *Logger) LogStoreCreated(ctx context.Context, s *Store) {
	l.DebugContext(ctx, "store created",
		"store_prefix", s.StorePrefix(),
		"block_size", s.BlockSize(),
		"io_parallelism", s.IOParallelism(),
		"download_retry_count", s.DownloadRetryCount(),
		"list_is_lexically_ordered", s.ListIsLexicallyOrdered(),
	)
}

// LogStoreFailed logs a failed construction.
func (l *Logger) LogStoreFailed(ctx context.Context, err error) {
	l.ErrorContext(ctx, "store construction failed",
		"error", err,
	)
}
