package metrics

import "github.com/prometheus/client_golang/prometheus"

// BookingMetrics exposes counters/histograms for the widget booking flow.
type BookingMetrics struct {
	sessionsTotal      *prometheus.CounterVec
	submissionsTotal   *prometheus.CounterVec
	submissionLatency  *prometheus.HistogramVec
	calendarGeneration *prometheus.CounterVec
}

func NewBookingMetrics(reg prometheus.Registerer) *BookingMetrics {
	m := &BookingMetrics{
		sessionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "booking",
			Subsystem: "widget",
			Name:      "sessions_total",
			Help:      "Widget sessions by lifecycle event",
		}, []string{"event"}),
		submissionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "booking",
			Subsystem: "widget",
			Name:      "submissions_total",
			Help:      "Booking submissions by outcome",
		}, []string{"status"}),
		submissionLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "booking",
			Subsystem: "widget",
			Name:      "submission_latency_seconds",
			Help:      "Latency of the booking backend call",
			Buckets:   prometheus.DefBuckets,
		}, []string{"status"}),
		calendarGeneration: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "booking",
			Subsystem: "availability",
			Name:      "calendar_lookups_total",
			Help:      "Calendar lookups by source (cache or generated)",
		}, []string{"source"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.sessionsTotal, m.submissionsTotal, m.submissionLatency, m.calendarGeneration)
	return m
}

func (m *BookingMetrics) ObserveSession(event string) {
	if m == nil {
		return
	}
	m.sessionsTotal.WithLabelValues(event).Inc()
}

func (m *BookingMetrics) ObserveSubmission(status string, seconds float64) {
	if m == nil {
		return
	}
	m.submissionsTotal.WithLabelValues(status).Inc()
	m.submissionLatency.WithLabelValues(status).Observe(seconds)
}

func (m *BookingMetrics) ObserveCalendar(source string) {
	if m == nil {
		return
	}
	m.calendarGeneration.WithLabelValues(source).Inc()
}
