package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Submission outcomes.
const (
	OutcomeSuccess    = "success"
	OutcomeDegraded   = "degraded"
	OutcomeValidation = "validation_failed"
	OutcomeServer     = "server_error"
	OutcomeNetwork    = "network_error"
)

// Reminder fire results.
const (
	ReminderShown   = "shown"
	ReminderDropped = "permission_denied"
	ReminderFailed  = "failed"
)

// Metrics holds client agent counters on a dedicated registry.
type Metrics struct {
	registry           *prometheus.Registry
	submissions        *prometheus.CounterVec
	remindersScheduled prometheus.Counter
	remindersFired     *prometheus.CounterVec
}

// New registers counters together with Go runtime collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cleanorder",
			Name:      "order_submissions_total",
			Help:      "Order submissions by outcome.",
		}, []string{"outcome"}),
		remindersScheduled: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "cleanorder",
			Name:      "reminders_scheduled_total",
			Help:      "Reminders enqueued for future delivery.",
		}),
		remindersFired: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cleanorder",
			Name:      "reminders_fired_total",
			Help:      "Reminders processed by result.",
		}, []string{"result"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.submissions,
		m.remindersScheduled,
		m.remindersFired,
	)
	return m
}

// ObserveSubmission counts a submission outcome.
func (m *Metrics) ObserveSubmission(outcome string) {
	m.submissions.WithLabelValues(outcome).Inc()
}

// ReminderScheduled counts an enqueued reminder.
func (m *Metrics) ReminderScheduled() {
	m.remindersScheduled.Inc()
}

// ObserveReminder counts a processed reminder.
func (m *Metrics) ObserveReminder(result string) {
	m.remindersFired.WithLabelValues(result).Inc()
}

// Handler exposes the registry in Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
