// AngelaMos | 2026
// metrics.go

package metrics

import (
	"bufio"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "loyalty"

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	purchasesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "purchases_total",
			Help:      "Purchases processed, by outcome",
		},
		[]string{"outcome"},
	)

	pointsAwardedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "points_awarded_total",
			Help:      "Points credited to customers, split into base and bonus",
		},
		[]string{"kind"},
	)

	statusChangesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "status_changes_total",
			Help:      "Tier changes caused by purchases, by new status",
		},
		[]string{"status"},
	)

	emailUpdatesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "email_updates_total",
			Help:      "Email assignments, by path and outcome",
		},
		[]string{"path", "outcome"},
	)
)

const (
	OutcomeSuccess  = "success"
	OutcomeRejected = "rejected"
)

func Handler() http.Handler {
	return promhttp.Handler()
}

// ObservePurchase records an accepted purchase.
func ObservePurchase(base, bonus int, status string, statusChanged bool) {
	purchasesTotal.WithLabelValues(OutcomeSuccess).Inc()
	pointsAwardedTotal.WithLabelValues("base").Add(float64(base))
	pointsAwardedTotal.WithLabelValues("bonus").Add(float64(bonus))
	if statusChanged {
		statusChangesTotal.WithLabelValues(status).Inc()
	}
}

func ObservePurchaseRejected() {
	purchasesTotal.WithLabelValues(OutcomeRejected).Inc()
}

func ObserveEmailUpdate(path, outcome string) {
	emailUpdatesTotal.WithLabelValues(path, outcome).Inc()
}

// Middleware records request count and latency keyed by chi route pattern.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := &statusWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(ww, r)

		path := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			path = rctx.RoutePattern()
		}

		httpRequestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(ww.status)).Inc()
		httpRequestDuration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func (w *statusWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	if hj, ok := w.ResponseWriter.(http.Hijacker); ok {
		return hj.Hijack()
	}
	return nil, nil, fmt.Errorf("underlying ResponseWriter does not implement http.Hijacker")
}
