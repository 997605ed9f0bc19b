package usecase

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records orchestrator activity. A nil *Metrics records nothing.
type Metrics struct {
	messages       *prometheus.CounterVec
	clarifications *prometheus.CounterVec
	steps          *prometheus.CounterVec
	fallbacks      *prometheus.CounterVec
	latency        prometheus.Histogram
	sessions       prometheus.GaugeFunc
}

// NewMetrics registers the orchestrator metrics on registry. activeSessions
// is sampled on every scrape. It returns nil when registry is nil.
func NewMetrics(registry *prometheus.Registry, activeSessions func() int) *Metrics {
	if registry == nil {
		return nil
	}

	m := &Metrics{
		messages: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "assistant_messages_processed_total",
				Help: "Messages processed by effective intent and result kind",
			},
			[]string{"intent", "kind", "success"},
		),
		clarifications: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "assistant_clarifications_total",
				Help: "Clarifications asked by intent",
			},
			[]string{"intent"},
		),
		steps: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "assistant_multistep_steps_total",
				Help: "Steps of compound messages by intent and outcome",
			},
			[]string{"intent", "outcome"},
		),
		fallbacks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "assistant_extraction_fallbacks_total",
				Help: "Extractions that fell back to general chat by reason",
			},
			[]string{"reason"},
		),
		latency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "assistant_message_duration_seconds",
			Help:    "Time to process one message",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		}),
	}

	collectors := []prometheus.Collector{m.messages, m.clarifications, m.steps, m.fallbacks, m.latency}
	if activeSessions != nil {
		m.sessions = prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{
				Name: "assistant_active_sessions",
				Help: "Conversation sessions held in memory",
			},
			func() float64 { return float64(activeSessions()) },
		)
		collectors = append(collectors, m.sessions)
	}
	registry.MustRegister(collectors...)

	return m
}

func (m *Metrics) ObserveMessage(intent, kind string, success bool, took time.Duration) {
	if m == nil {
		return
	}
	outcome := "false"
	if success {
		outcome = "true"
	}
	m.messages.WithLabelValues(intent, kind, outcome).Inc()
	m.latency.Observe(took.Seconds())
}

func (m *Metrics) IncrementClarification(intent string) {
	if m != nil {
		m.clarifications.WithLabelValues(intent).Inc()
	}
}

func (m *Metrics) IncrementStep(intent string, success bool) {
	if m == nil {
		return
	}
	outcome := "failed"
	if success {
		outcome = "succeeded"
	}
	m.steps.WithLabelValues(intent, outcome).Inc()
}

func (m *Metrics) IncrementFallback(reason string) {
	if m != nil {
		m.fallbacks.WithLabelValues(reason).Inc()
	}
}
