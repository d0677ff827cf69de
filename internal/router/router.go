package router

import (
	"net/http"
	"time"

	_ "pet-health-record/docs"
	mem "pet-health-record/internal/adapters/storage/memory"
	"pet-health-record/internal/domain/dashboard"
	"pet-health-record/internal/domain/records"
	"pet-health-record/internal/middleware"
	"pet-health-record/internal/platform/logger"
	"pet-health-record/internal/platform/metrics"
	"pet-health-record/internal/ports/auth"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// Opcional: si viene nil, store in-memory vacío.
	Store records.Store

	Logger         logger.Logger
	MetricsEnabled bool

	// nil => sin rate limit.
	RateLimit *middleware.RateLimiter

	FetchTimeout       time.Duration
	AlertDaysThreshold int
	Now                func() time.Time
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	store := opts.Store
	if store == nil {
		store = mem.NewStore()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(metrics.Middleware())

	r.Use(middleware.AuthContext(opts.AuthVerifier, log))
	r.Use(middleware.AccessLog(log))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	svc := dashboard.NewService(store, dashboard.Options{
		Logger:             log,
		FetchTimeout:       opts.FetchTimeout,
		AlertDaysThreshold: opts.AlertDaysThreshold,
		Now:                opts.Now,
	})

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Ready(r.Context()); err != nil {
			log.Warn("readiness check failed", map[string]any{"err": err.Error()})
			http.Error(w, "store unavailable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	if opts.MetricsEnabled {
		r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
			metrics.Handler().ServeHTTP(w, r)
		})
	}

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	// Rutas con rate limit (por usuario o IP)
	r.Group(func(gr chi.Router) {
		if opts.RateLimit != nil {
			gr.Use(opts.RateLimit.Middleware())
		}
		dashboard.RegisterRoutes(gr, svc)
	})

	return r
}
