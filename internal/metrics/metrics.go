// Package metrics instruments dispatched requests with Prometheus
// counters and histograms. A nil *Recorder is valid and records nothing,
// so the dispatcher works without a registry wired in.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Recorder tracks per-operation request outcomes and latencies.
type Recorder struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewRecorder creates a Recorder and registers its collectors with reg.
func NewRecorder(reg prometheus.Registerer) (*Recorder, error) {
	r := &Recorder{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "s3kit",
			Name:      "requests_total",
			Help:      "Dispatched requests by operation and result.",
		}, []string{"operation", "result"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "s3kit",
			Name:      "request_duration_seconds",
			Help:      "Wall time of dispatched requests, including decoding.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
	}

	for _, c := range []prometheus.Collector{r.requests, r.duration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Observe records one dispatched request. The result label is "success"
// for nil errors and the error kind's name otherwise.
func (r *Recorder) Observe(operation, result string, elapsed time.Duration) {
	if r == nil {
		return
	}
	r.requests.WithLabelValues(operation, result).Inc()
	r.duration.WithLabelValues(operation).Observe(elapsed.Seconds())
}
