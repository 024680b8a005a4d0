package metrics

import (
	"regexp"
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// RequestDuration tracks HTTP request duration in seconds by method, path, status.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// RequestTotal counts HTTP requests by method, path, status.
	RequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// AttendanceSubmissions counts submissions by equipment outcome
	// (complete, missing).
	AttendanceSubmissions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "attendance_submissions_total",
			Help: "Total number of attendance submissions by equipment outcome",
		},
		[]string{"equipment"},
	)

	// TicketsOpened counts tickets by how they were opened (manual, escalation).
	TicketsOpened = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tickets_opened_total",
			Help: "Total number of tickets opened by origin",
		},
		[]string{"origin"},
	)
)

var (
	numericPathSegment = regexp.MustCompile(`/[0-9]+(/|$)`)
	initOnce           sync.Once
)

func init() {
	initOnce.Do(func() {
		prometheus.MustRegister(RequestDuration, RequestTotal, AttendanceSubmissions, TicketsOpened)
	})
}

// NormalizePath reduces cardinality by replacing numeric path segments with {id}.
// E.g. /api/rooms/123 -> /api/rooms/{id}.
func NormalizePath(path string) string {
	return numericPathSegment.ReplaceAllString(path, "/{id}$1")
}

// RecordRequest records duration and count for an HTTP request.
func RecordRequest(method, path string, statusCode int, durationSeconds float64) {
	path = NormalizePath(path)
	status := strconv.Itoa(statusCode)
	RequestDuration.WithLabelValues(method, path, status).Observe(durationSeconds)
	RequestTotal.WithLabelValues(method, path, status).Inc()
}

// RecordAttendance counts one submission. complete is the all-equipment-present outcome.
func RecordAttendance(complete bool) {
	outcome := "complete"
	if !complete {
		outcome = "missing"
	}
	AttendanceSubmissions.WithLabelValues(outcome).Inc()
}

// RecordTicketOpened counts a ticket by origin (manual, escalation).
func RecordTicketOpened(origin string) {
	TicketsOpened.WithLabelValues(origin).Inc()
}
