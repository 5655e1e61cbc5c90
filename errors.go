package objstore

import (
	"errors"
	"fmt"

	"github.com/hupe1980/objstore/blobstore"
)

var (
	// ErrUnsupportedScheme is returned when no provider is registered for a scheme.
	ErrUnsupportedScheme = errors.New("unsupported scheme")

	// ErrInvalidLocation is returned when a store location cannot be parsed.
	ErrInvalidLocation = errors.New("invalid store location")

	// ErrInvalidName is returned for blob names that escape the store location.
	ErrInvalidName = blobstore.ErrInvalidName

	// ErrMissingBucket is returned when a cloud location has no host.
	ErrMissingBucket = errors.New("missing bucket")

	// ErrMissingEndpoint is returned when no configuration source supplies an endpoint.
	ErrMissingEndpoint = errors.New("missing endpoint")

	// ErrMissingTable is returned when an s3+ddb location has no commit table.
	ErrMissingTable = errors.New("missing table")

	// ErrBackendConstruction is matched by every *BackendError.
	ErrBackendConstruction = errors.New("backend construction failed")

	// ErrClosed is returned by I/O on a closed Store.
	ErrClosed = errors.New("store is closed")
)

// ConfigError reports an input error together with a remediation hint.
//
// The sentinel (ErrMissingBucket, ErrMissingEndpoint, ...) can be matched with errors.Is.
type ConfigError struct {
	Scheme string
	Key    string
	Hint   string
	err    error
}

func newConfigError(scheme, key string, err error, hint string) *ConfigError {
	return &ConfigError{Scheme: scheme, Key: key, Hint: hint, err: err}
}

func (e *ConfigError) Error() string {
	if e.Hint == "" {
		return fmt.Sprintf("%s: %v (%s)", e.Scheme, e.err, e.Key)
	}
	return fmt.Sprintf("%s: %v: %s", e.Scheme, e.err, e.Hint)
}

func (e *ConfigError) Unwrap() error { return e.err }

// BackendError indicates that the transport rejected the resolved configuration.
//
// errors.Is(err, ErrBackendConstruction) holds; the transport's error can be
// accessed via errors.Unwrap.
type BackendError struct {
	Scheme string
	cause  error
}

func newBackendError(scheme string, cause error) *BackendError {
	return &BackendError{Scheme: scheme, cause: cause}
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("%s: %v: %v", e.Scheme, ErrBackendConstruction, e.cause)
}

func (e *BackendError) Is(target error) bool { return target == ErrBackendConstruction }

func (e *BackendError) Unwrap() error { return e.cause }
