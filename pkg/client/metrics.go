package client

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsConfig configures the Prometheus metrics for a client.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "apclient").
	Namespace string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer.
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus metrics.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

// Metrics holds the Prometheus metrics of one client connection. A nil
// *Metrics is valid and records nothing, so instrumentation is opt-in.
//
// Metrics collected:
//   - apclient_messages_received_total: Counter of inbound messages by cmd
//   - apclient_messages_sent_total: Counter of outbound messages by cmd
//   - apclient_frames_received_total: Counter of transport frames by kind
//   - apclient_parse_errors_total: Counter of payloads that failed to decode
//   - apclient_transport_errors_total: Counter of connection failures
//   - apclient_bytes_received_total / apclient_bytes_sent_total
type Metrics struct {
	messagesReceived *prometheus.CounterVec
	messagesSent     *prometheus.CounterVec
	framesReceived   *prometheus.CounterVec
	parseErrors      prometheus.Counter
	transportErrors  prometheus.Counter
	bytesReceived    prometheus.Counter
	bytesSent        prometheus.Counter
}

// NewMetrics creates and registers the client metrics.
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := MetricsConfig{
		Namespace: "apclient",
		Registry:  prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(&config)
	}

	factory := promauto.With(config.Registry)

	return &Metrics{
		messagesReceived: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Name:        "messages_received_total",
			Help:        "Total number of protocol messages received, by cmd",
			ConstLabels: config.ConstLabels,
		}, []string{"cmd"}),

		messagesSent: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Name:        "messages_sent_total",
			Help:        "Total number of protocol messages sent, by cmd",
			ConstLabels: config.ConstLabels,
		}, []string{"cmd"}),

		framesReceived: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Name:        "frames_received_total",
			Help:        "Total number of transport frames received, by kind",
			ConstLabels: config.ConstLabels,
		}, []string{"kind"}),

		parseErrors: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Name:        "parse_errors_total",
			Help:        "Total number of payloads that failed to decode",
			ConstLabels: config.ConstLabels,
		}),

		transportErrors: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Name:        "transport_errors_total",
			Help:        "Total number of transport failures",
			ConstLabels: config.ConstLabels,
		}),

		bytesReceived: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Name:        "bytes_received_total",
			Help:        "Total payload bytes received",
			ConstLabels: config.ConstLabels,
		}),

		bytesSent: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Name:        "bytes_sent_total",
			Help:        "Total payload bytes sent",
			ConstLabels: config.ConstLabels,
		}),
	}
}

func (m *Metrics) recordReceived(cmd string) {
	if m != nil {
		m.messagesReceived.WithLabelValues(cmd).Inc()
	}
}

func (m *Metrics) recordSent(cmd string, bytes int) {
	if m != nil {
		m.messagesSent.WithLabelValues(cmd).Inc()
		m.bytesSent.Add(float64(bytes))
	}
}

func (m *Metrics) recordFrame(kind FrameKind, bytes int) {
	if m != nil {
		m.framesReceived.WithLabelValues(kind.String()).Inc()
		m.bytesReceived.Add(float64(bytes))
	}
}

func (m *Metrics) recordParseError() {
	if m != nil {
		m.parseErrors.Inc()
	}
}

func (m *Metrics) recordTransportError() {
	if m != nil {
		m.transportErrors.Inc()
	}
}
