package service

import (
	"context"
	"strconv"

	"github.com/dechbar/kpause/internal/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records measurement and use-case telemetry in Prometheus form.
// It is also a UseCaseObserver.
type Metrics struct {
	saved     *prometheus.CounterVec
	deleted   prometheus.Counter
	score     prometheus.Histogram
	lastScore prometheus.Gauge
	lastAt    prometheus.Gauge
	useCases  *prometheus.HistogramVec
	published *prometheus.CounterVec

	windowMean  prometheus.Gauge
	windowCount *prometheus.GaugeVec
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		saved: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "kpause",
			Subsystem: "measurements",
			Name:      "saved_total",
			Help:      "Completed measurements stored, by time of day and validity.",
		}, []string{"time_of_day", "valid"}),
		deleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "kpause",
			Subsystem: "measurements",
			Name:      "deleted_total",
			Help:      "Measurements removed.",
		}),
		score: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "kpause",
			Subsystem: "measurements",
			Name:      "score_seconds",
			Help:      "Control pause score of stored measurements.",
			Buckets:   []float64{10, 20, 30, 40, 60, 90},
		}),
		lastScore: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "kpause",
			Subsystem: "measurements",
			Name:      "last_score_seconds",
			Help:      "Score of the most recently stored measurement.",
		}),
		lastAt: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "kpause",
			Subsystem: "measurements",
			Name:      "last_measured_timestamp_seconds",
			Help:      "Unix timestamp of the most recently stored measurement.",
		}),
		useCases: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "kpause",
			Subsystem: "service",
			Name:      "use_case_duration_seconds",
			Help:      "Service use-case latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"use_case", "success"}),
		published: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "kpause",
			Subsystem: "events",
			Name:      "published_total",
			Help:      "Event publish attempts, by outcome.",
		}, []string{"outcome"}),
		windowMean: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "kpause",
			Subsystem: "window",
			Name:      "mean_score_seconds",
			Help:      "Mean score over the last summarized window.",
		}),
		windowCount: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "kpause",
			Subsystem: "window",
			Name:      "measurements",
			Help:      "Measurements in the last summarized window, by validity.",
		}, []string{"valid"}),
	}
	reg.MustRegister(m.saved, m.deleted, m.score, m.lastScore, m.lastAt, m.useCases, m.published,
		m.windowMean, m.windowCount)
	return m
}

// RecordSaved updates counters for a stored measurement.
func (m *Metrics) RecordSaved(ms *domain.Measurement) {
	if m == nil || ms == nil {
		return
	}
	m.saved.WithLabelValues(string(ms.TimeOfDay), strconv.FormatBool(ms.Valid)).Inc()
	m.score.Observe(float64(ms.Score))
	m.lastScore.Set(float64(ms.Score))
	if !ms.MeasuredAt.IsZero() {
		m.lastAt.Set(float64(ms.MeasuredAt.Unix()))
	}
}

// RecordSummary publishes a window summary as gauges, seeding the "last"
// gauges from the stored history.
func (m *Metrics) RecordSummary(s *Summary) {
	if m == nil || s == nil {
		return
	}
	m.windowMean.Set(float64(s.Mean))
	m.windowCount.WithLabelValues("true").Set(float64(s.ValidCount))
	m.windowCount.WithLabelValues("false").Set(float64(s.Count - s.ValidCount))
	if s.Latest != nil {
		m.lastScore.Set(float64(s.Latest.Score))
		m.lastAt.Set(float64(s.Latest.MeasuredAt.Unix()))
	}
}

// RecordDeleted counts a removal.
func (m *Metrics) RecordDeleted() {
	if m == nil {
		return
	}
	m.deleted.Inc()
}

// RecordPublish counts an event publish outcome.
func (m *Metrics) RecordPublish(err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.published.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveUseCase(_ context.Context, event UseCaseEvent) {
	if m == nil {
		return
	}
	m.useCases.WithLabelValues(event.Name, strconv.FormatBool(event.Success)).Observe(event.Duration.Seconds())
}
