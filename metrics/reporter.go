// Package metrics exposes what the kafka Consumer routes as
// Prometheus metrics.
package metrics

import (
	"strconv"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/heetch/relay/kafka"
	"github.com/heetch/relay/message"
)

// Reporter implements kafka.MetricsReporter.
type Reporter struct {
	messages *prometheus.CounterVec
	replies  *prometheus.CounterVec
	elapsed  *prometheus.HistogramVec
	lag      *prometheus.GaugeVec
}

// NewReporter creates a Reporter and registers its collectors with reg.
func NewReporter(reg prometheus.Registerer) (*Reporter, error) {
	r := &Reporter{
		messages: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "relay_messages_total", Help: "messages routed, by topic and outcome"},
			[]string{"topic", "outcome"},
		),
		replies: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "relay_replies_total", Help: "replies published, by source topic"},
			[]string{"topic"},
		),
		elapsed: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "relay_processing_seconds",
				Help:    "time spent routing a message and publishing its replies",
				Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
			},
			[]string{"topic"},
		),
		lag: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{Name: "relay_remaining_offset", Help: "records left behind the last routed one"},
			[]string{"topic", "partition"},
		),
	}
	for _, c := range []prometheus.Collector{r.messages, r.replies, r.elapsed, r.lag} {
		if err := reg.Register(c); err != nil {
			return nil, errors.Wrap(err, "failed to register relay metrics")
		}
	}
	return r, nil
}

// Report implements kafka.MetricsReporter.
func (r *Reporter) Report(m message.Message, metrics *kafka.Metrics) {
	r.messages.WithLabelValues(m.Topic, metrics.Outcome.String()).Inc()
	r.replies.WithLabelValues(m.Topic).Add(float64(metrics.Replies))
	r.elapsed.WithLabelValues(m.Topic).Observe(metrics.Elapsed.Seconds())
	r.lag.WithLabelValues(m.Topic, strconv.FormatInt(int64(metrics.Partition), 10)).Set(float64(metrics.RemainingOffset))
}
