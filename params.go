package objstore

import (
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

const (
	// DefaultCloudBlockSize is the I/O unit for object stores.
	DefaultCloudBlockSize = 64 * 1024
	// DefaultLocalBlockSize is the I/O unit for local and in-memory stores.
	DefaultLocalBlockSize = 4 * 1024

	// DefaultCloudIOParallelism bounds concurrent requests to object stores.
	DefaultCloudIOParallelism = 64
	// DefaultLocalIOParallelism bounds concurrent requests to local stores.
	DefaultLocalIOParallelism = 8

	// DefaultMaxIOPSize is the largest single request issued by Get.
	DefaultMaxIOPSize = 16 * 1024 * 1024

	// DefaultDownloadRetryCount is the retry budget for downloads.
	DefaultDownloadRetryCount = 3
	// DefaultClientMaxRetries is the retry budget for transport clients.
	DefaultClientMaxRetries = 10
	// DefaultClientRetryTimeout bounds the total time spent retrying.
	DefaultClientRetryTimeout = 180 * time.Second

	// MaxIOPSizeEnv overrides DefaultMaxIOPSize. It is read once per process.
	MaxIOPSizeEnv = "OBJSTORE_MAX_IOP_SIZE"
)

var maxIOPSize = sync.OnceValue(func() int64 {
	if v, err := strconv.ParseInt(os.Getenv(MaxIOPSizeEnv), 10, 64); err == nil && v > 0 {
		return v
	}
	return DefaultMaxIOPSize
})

// Storage option keys understood by StorageOptions accessors.
const (
	OptionDownloadRetryCount = "download_retry_count"
	OptionClientMaxRetries   = "client_max_retries"
	OptionClientRetryTimeout = "client_retry_timeout"
	OptionAllowHTTP          = "allow_http"
)

// StorageOptions are backend-specific string options supplied by the caller.
type StorageOptions map[string]string

// Get returns the value for key and whether it was set.
func (o StorageOptions) Get(key string) (string, bool) {
	v, ok := o[key]
	return v, ok
}

// DownloadRetryCount returns the download retry budget.
func (o StorageOptions) DownloadRetryCount() int {
	return o.intValue(OptionDownloadRetryCount, DefaultDownloadRetryCount)
}

// ClientMaxRetries returns the retry budget handed to transport clients.
func (o StorageOptions) ClientMaxRetries() int {
	return o.intValue(OptionClientMaxRetries, DefaultClientMaxRetries)
}

// ClientRetryTimeout returns the total retry timeout. The option is in seconds.
func (o StorageOptions) ClientRetryTimeout() time.Duration {
	secs := o.intValue(OptionClientRetryTimeout, -1)
	if secs < 0 {
		return DefaultClientRetryTimeout
	}
	return time.Duration(secs) * time.Second
}

// AllowHTTP reports whether plain HTTP endpoints are allowed.
func (o StorageOptions) AllowHTTP() bool {
	v, ok := o[OptionAllowHTTP]
	if !ok {
		return false
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	return err == nil && b
}

func (o StorageOptions) intValue(key string, def int) int {
	v, ok := o[key]
	if !ok {
		return def
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n < 0 {
		return def
	}
	return n
}

// Params are the caller options for constructing a Store.
// The zero value selects backend defaults everywhere.
type Params struct {
	// BlockSize overrides the backend's I/O unit when > 0.
	BlockSize int

	// StorageOptions are passed to the provider.
	StorageOptions StorageOptions

	// UseConstantSizeUploadParts keeps multipart upload parts at a fixed size.
	UseConstantSizeUploadParts bool

	// ListIsLexicallyOrdered overrides the backend's listing order guarantee.
	ListIsLexicallyOrdered *bool

	// Env supplies the environment snapshot. Nil means os.Environ.
	Env EnvFunc

	// Tracker receives I/O records. Nil means a fresh BasicIOTracker.
	Tracker IOTracker

	// MaxIOBytesPerSec caps throughput when > 0.
	MaxIOBytesPerSec int64

	// Logger receives construction and I/O logs. Nil means NoopLogger.
	Logger *Logger
}

// Bool returns a pointer to b, for Params.ListIsLexicallyOrdered.
func Bool(b bool) *bool { return &b }

func (p *Params) blockSize(def int) int {
	if p.BlockSize > 0 {
		return p.BlockSize
	}
	return def
}

func (p *Params) listIsLexicallyOrdered(def bool) bool {
	if p.ListIsLexicallyOrdered != nil {
		return *p.ListIsLexicallyOrdered
	}
	return def
}

func (p *Params) environ() EnvFunc {
	if p.Env != nil {
		return p.Env
	}
	return os.Environ
}

func (p *Params) tracker() IOTracker {
	if p.Tracker != nil {
		return p.Tracker
	}
	return &BasicIOTracker{}
}

func (p *Params) logger() *Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return NoopLogger()
}

func paramsOrDefault(p *Params) *Params {
	if p == nil {
		return &Params{}
	}
	return p
}
