package prom

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	opRead   = "read"
	opWrite  = "write"
	opList   = "list"
	opDelete = "delete"
)

type options struct {
	namespace   string
	storePrefix string
	buckets     []float64
}

// Option configures a Tracker.
type Option func(*options)

// WithNamespace sets the metric namespace. Defaults to "objstore".
func WithNamespace(ns string) Option {
	return func(o *options) { o.namespace = ns }
}

// WithStorePrefix attaches a constant "store" label, typically Store.StorePrefix().
func WithStorePrefix(prefix string) Option {
	return func(o *options) { o.storePrefix = prefix }
}

// WithBuckets sets the latency histogram buckets in seconds.
func WithBuckets(b []float64) Option {
	return func(o *options) { o.buckets = b }
}

// Tracker implements objstore.IOTracker on Prometheus collectors.
type Tracker struct {
	requests *prometheus.CounterVec
	bytes    *prometheus.CounterVec
	latency  *prometheus.HistogramVec
}

// NewTracker creates a Tracker and registers its collectors with reg.
func NewTracker(reg prometheus.Registerer, optFns ...Option) (*Tracker, error) {
	o := options{
		namespace: "objstore",
		buckets:   prometheus.DefBuckets,
	}
	for _, fn := range optFns {
		fn(&o)
	}

	var constLabels prometheus.Labels
	if o.storePrefix != "" {
		constLabels = prometheus.Labels{"store": o.storePrefix}
	}

	t := &Tracker{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   o.namespace,
			Name:        "requests_total",
			Help:        "Total storage requests by operation and status",
			ConstLabels: constLabels,
		}, []string{"op", "status"}),
		bytes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   o.namespace,
			Name:        "bytes_total",
			Help:        "Total bytes transferred by operation",
			ConstLabels: constLabels,
		}, []string{"op"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   o.namespace,
			Name:        "request_duration_seconds",
			Help:        "Latency of storage requests",
			Buckets:     o.buckets,
			ConstLabels: constLabels,
		}, []string{"op"}),
	}

	for _, c := range []prometheus.Collector{t.requests, t.bytes, t.latency} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// RecordRead implements objstore.IOTracker.
func (t *Tracker) RecordRead(bytes int64, d time.Duration, err error) {
	t.record(opRead, bytes, d, err)
}

// RecordWrite implements objstore.IOTracker.
func (t *Tracker) RecordWrite(bytes int64, d time.Duration, err error) {
	t.record(opWrite, bytes, d, err)
}

// RecordList implements objstore.IOTracker.
func (t *Tracker) RecordList(_ int64, d time.Duration, err error) {
	t.record(opList, 0, d, err)
}

// RecordDelete implements objstore.IOTracker.
func (t *Tracker) RecordDelete(d time.Duration, err error) {
	t.record(opDelete, 0, d, err)
}

func (t *Tracker) record(op string, bytes int64, d time.Duration, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	t.requests.WithLabelValues(op, status).Inc()
	if bytes > 0 {
		t.bytes.WithLabelValues(op).Add(float64(bytes))
	}
	t.latency.WithLabelValues(op).Observe(d.Seconds())
}
