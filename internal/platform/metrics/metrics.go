package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pethealth_http_requests_total",
		Help: "Total de requests HTTP procesados.",
	}, []string{"method", "route", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "pethealth_http_request_duration_seconds",
		Help:    "Latencia de requests HTTP.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	fetchFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pethealth_fetch_failures_total",
		Help: "Fetches al record store que fallaron y degradaron la vista a vacío.",
	}, []string{"view"})

	fetchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "pethealth_fetch_duration_seconds",
		Help:    "Latencia de un ciclo de fetch completo por vista.",
		Buckets: prometheus.DefBuckets,
	}, []string{"view"})

	storeLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "pethealth_store_latency_seconds",
		Help:    "Latencia de cada operación contra el record store.",
		Buckets: prometheus.DefBuckets,
	}, []string{"backend", "operation"})
)

// Middleware registra conteo y latencia por ruta (patrón chi, no path crudo).
func Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			// El patrón solo se conoce después de rutear.
			route := routePattern(r)
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			httpRequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
			httpRequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
		})
	}
}

// Handler expone /metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}

// FetchFailed cuenta una degradación silenciosa de la vista.
func FetchFailed(view string) {
	fetchFailuresTotal.WithLabelValues(view).Inc()
}

// ObserveFetch mide un ciclo de fetch desde start.
func ObserveFetch(view string, start time.Time) {
	fetchDuration.WithLabelValues(view).Observe(time.Since(start).Seconds())
}

// ObserveStore mide una operación de un adapter (postgres, rest).
func ObserveStore(backend, operation string, start time.Time) {
	storeLatency.WithLabelValues(backend, operation).Observe(time.Since(start).Seconds())
}

func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := strings.TrimSpace(rctx.RoutePattern()); pattern != "" {
			return pattern
		}
	}
	return "unmatched"
}
