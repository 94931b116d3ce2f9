// Package metrics - prometheus-коллекторы HTTP-слоя и доменных событий.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry - собственный реестр, чтобы несколько роутеров в тестах не
// регистрировали коллекторы повторно в глобальном
var Registry = prometheus.NewRegistry()

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	InvitationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "invitations_total",
			Help: "Invitation state changes by resulting status.",
		},
		[]string{"status"},
	)

	DraftTransitionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "draft_transitions_total",
			Help: "Draft workflow transitions by action.",
		},
		[]string{"action"},
	)
)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		HTTPRequestsTotal,
		HTTPRequestDuration,
		InvitationsTotal,
		DraftTransitionsTotal,
	)
}

// Handler отдает метрики в формате prometheus text
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

func RecordInvitation(status string) {
	InvitationsTotal.WithLabelValues(status).Inc()
}

func RecordDraftTransition(action string) {
	DraftTransitionsTotal.WithLabelValues(action).Inc()
}
